package timeutil

import "time"

// Clock binds the current instant to a business location so callers can
// ask "which shift is it now" without reading the wall clock themselves.
// Tests build one with FixedClock.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a wall-clock Clock. A nil loc means the business location.
func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: orBusiness(loc), now: time.Now}
}

// FixedClock always reports t.
func FixedClock(t time.Time, loc *time.Location) *Clock {
	return &Clock{loc: orBusiness(loc), now: func() time.Time { return t }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now is the current instant in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) BusinessDate() string {
	return DateString(c.now(), c.loc)
}

func (c *Clock) Shift() Shift {
	return ShiftAt(c.now(), c.loc)
}

func (c *Clock) ShiftDate() time.Time {
	return ShiftDateAt(c.now(), c.loc)
}

func (c *Clock) ShiftDateString() string {
	return ShiftDateStringAt(c.now(), c.loc)
}

var defaultClock = NewClock(nil)

// BusinessNow is the current instant in Asia/Makassar.
func BusinessNow() time.Time { return defaultClock.Now() }

// BusinessDateString is today's date in Asia/Makassar.
func BusinessDateString() string { return defaultClock.BusinessDate() }

func CurrentShift() int { return defaultClock.Shift().Number() }

func CurrentShiftLabel() string { return defaultClock.Shift().Label() }

func ShiftAttributedDate() time.Time { return defaultClock.ShiftDate() }

func ShiftAttributedDateString() string { return defaultClock.ShiftDateString() }
