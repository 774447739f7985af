package timeutil

import "time"

// CurrentMonthWindow uses the host's local clock and zone.
func CurrentMonthWindow() Window {
	return MonthWindowAt(time.Now())
}

// PreviousMonthWindow uses the host's local clock and zone.
func PreviousMonthWindow() Window {
	return PreviousMonthWindowAt(time.Now())
}

// MonthWindowAt returns the first and last day of now's month, in now's location.
func MonthWindowAt(now time.Time) Window {
	y, m, _ := now.Date()
	loc := now.Location()
	return Window{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		End:   time.Date(y, m+1, 0, 0, 0, 0, 0, loc),
	}
}

func PreviousMonthWindowAt(now time.Time) Window {
	y, m, _ := now.Date()
	loc := now.Location()
	return Window{
		Start: time.Date(y, m-1, 1, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, 0, 0, 0, 0, 0, loc),
	}
}
