package timeutil

import (
	"log"
	"time"
)

// BusinessTimezone is the site's operating timezone (WITA, UTC+8, no DST).
const BusinessTimezone = "Asia/Makassar"

const dateLayout = "2006-01-02"

var businessLocation = loadBusinessLocation()

func loadBusinessLocation() *time.Location {
	loc, err := time.LoadLocation(BusinessTimezone)
	if err != nil {
		log.Printf("timezone %s unavailable, using fixed UTC+8: %v", BusinessTimezone, err)
		return time.FixedZone("WITA", 8*60*60)
	}
	return loc
}

// BusinessLocation returns the location used to decide which shift is running.
func BusinessLocation() *time.Location {
	return businessLocation
}

func orBusiness(loc *time.Location) *time.Location {
	if loc == nil {
		return businessLocation
	}
	return loc
}

// InZone re-expresses t in loc. A nil loc means the business location.
func InZone(t time.Time, loc *time.Location) time.Time {
	return t.In(orBusiness(loc))
}

// DateString returns t's calendar date in loc as YYYY-MM-DD.
func DateString(t time.Time, loc *time.Location) string {
	return InZone(t, loc).Format(dateLayout)
}

// ShiftAt classifies t by its wall-clock hour in loc.
func ShiftAt(t time.Time, loc *time.Location) Shift {
	return ShiftForHour(InZone(t, loc).Hour())
}

// ShiftDateAt returns t in loc, moved back one calendar day when it falls
// in the [00:00, 06:00) tail of the previous day's night shift.
func ShiftDateAt(t time.Time, loc *time.Location) time.Time {
	zoned := InZone(t, loc)
	if zoned.Hour() < DayShiftStartHour {
		return zoned.AddDate(0, 0, -1)
	}
	return zoned
}

// ShiftDateStringAt is ShiftDateAt formatted as YYYY-MM-DD.
func ShiftDateStringAt(t time.Time, loc *time.Location) string {
	return ShiftDateAt(t, loc).Format(dateLayout)
}

// ShiftStartAt returns the 06:00 or 18:00 boundary in loc at which the
// shift containing t began. Night shifts that cross midnight start at
// 18:00 on the previous day.
func ShiftStartAt(t time.Time, loc *time.Location) time.Time {
	zoned := InZone(t, loc)
	y, m, d := zoned.Date()
	switch h := zoned.Hour(); {
	case h < DayShiftStartHour:
		return time.Date(y, m, d-1, NightShiftStartHour, 0, 0, 0, zoned.Location())
	case h < NightShiftStartHour:
		return time.Date(y, m, d, DayShiftStartHour, 0, 0, 0, zoned.Location())
	default:
		return time.Date(y, m, d, NightShiftStartHour, 0, 0, 0, zoned.Location())
	}
}
