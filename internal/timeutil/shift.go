package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Shift is one of the two 12-hour operational periods.
type Shift int

const (
	ShiftDay   Shift = 1
	ShiftNight Shift = 2
)

const (
	DayShiftStartHour   = 6
	NightShiftStartHour = 18
)

// ShiftForHour maps a local hour of day to its shift: [6,18) is day shift,
// everything else, including the wrap over midnight, is night shift.
func ShiftForHour(hour int) Shift {
	if hour >= DayShiftStartHour && hour < NightShiftStartHour {
		return ShiftDay
	}
	return ShiftNight
}

func (s Shift) Number() int {
	return int(s)
}

// Label is the form-select value ("1" or "2").
func (s Shift) Label() string {
	return strconv.Itoa(int(s))
}

func (s Shift) Valid() bool {
	return s == ShiftDay || s == ShiftNight
}

func (s Shift) String() string {
	switch s {
	case ShiftDay:
		return "Shift 1 (Day)"
	case ShiftNight:
		return "Shift 2 (Night)"
	default:
		return fmt.Sprintf("Shift(%d)", int(s))
	}
}

// Next returns the shift that follows s.
func (s Shift) Next() Shift {
	if s == ShiftDay {
		return ShiftNight
	}
	return ShiftDay
}

// ParseShift accepts "1", "2", "s1", "shift 2", "day" and "night" (any case).
func ParseShift(raw string) (Shift, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimSpace(strings.TrimPrefix(v, "shift"))
	if len(v) == 2 && v[0] == 's' {
		v = v[1:]
	}
	switch v {
	case "1", "day", "siang":
		return ShiftDay, nil
	case "2", "night", "malam":
		return ShiftNight, nil
	}
	return 0, fmt.Errorf("unknown shift %q (use 1 or 2)", raw)
}
