package timeutil

import "time"

// Window is an inclusive range of calendar dates, both at 00:00 in the
// same location.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t's calendar date (in the window's location)
// falls between Start and End inclusive.
func (w Window) Contains(t time.Time) bool {
	d := t.In(w.Start.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days counts the calendar dates covered by the window.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

// DateStrings returns Start and End as YYYY-MM-DD.
func (w Window) DateStrings() (string, string) {
	return w.Start.Format(dateLayout), w.End.Format(dateLayout)
}

// WeekNumber returns the ISO-8601 week number of d. Only the number is
// returned; use ISOWeekYear when the ISO year may differ from d.Year().
func WeekNumber(d time.Time) int {
	dayNum := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	thursday := civilDate(d).AddDate(0, 0, 3-dayNum)
	first := firstThursday(thursday.Year(), time.UTC)
	return 1 + daysBetween(first, thursday)/7
}

// ISOWeekYear returns the ISO year together with the week number.
func ISOWeekYear(d time.Time) (year, week int) {
	return d.ISOWeek()
}

// WeekBounds returns Monday..Sunday of ISO week `week` of `year` in loc.
// week is not validated; values outside 1..53 spill into adjacent years.
func WeekBounds(year, week int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	thu := firstThursday(year, loc)
	start := time.Date(year, time.January, thu.Day()-3+(week-1)*7, 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+6, 0, 0, 0, 0, loc)
	return Window{Start: start, End: end}
}

func firstThursday(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	offset := (int(time.Thursday) - int(jan1.Weekday()) + 7) % 7
	return time.Date(year, time.January, 1+offset, 0, 0, 0, 0, loc)
}

// civilDate drops the time of day and zone, keeping the wall-clock date.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(civilDate(b).Sub(civilDate(a)).Hours() / 24)
}
