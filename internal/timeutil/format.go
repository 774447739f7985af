package timeutil

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var utc8 = time.FixedZone("UTC+8", 8*60*60)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var enUS = message.NewPrinter(language.AmericanEnglish)

// FormatTime renders t as zero-padded HH:mm in t's own location.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatUnixMilli renders a millisecond timestamp as HH:mm in the host zone.
func FormatUnixMilli(ms int64) string {
	return FormatTime(time.UnixMilli(ms).Local())
}

// FormatDateTimeUTC8 renders a millisecond timestamp as dd/MM/yyyy HH:mm:ss at UTC+8.
func FormatDateTimeUTC8(ms int64) string {
	return time.UnixMilli(ms).In(utc8).Format("02/01/2006 15:04:05")
}

func FormatISODate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatSlashDate renders yyyy/M/d without padding.
func FormatSlashDate(t time.Time) string {
	return t.Format("2006/1/2")
}

// FormatDDMMYY is used in document numbers, e.g. 150324.
func FormatDDMMYY(t time.Time) string {
	return t.Format("020106")
}

// FormatIndonesianDate renders a millisecond timestamp at UTC+8 as
// "02 Maret 2024".
func FormatIndonesianDate(ms int64) string {
	return FormatIndonesianDateOf(time.UnixMilli(ms).In(utc8))
}

// FormatIndonesianDateOf renders the calendar date of t in t's own location,
// without the UTC+8 shift FormatIndonesianDate applies. Callers pass dates
// already resolved in the business zone, e.g. a shift-attributed date.
func FormatIndonesianDateOf(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// FormatNumberWithSeparator groups thousands the en-US way (1,234.5).
func FormatNumberWithSeparator(n float64) string {
	return enUS.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(3)))
}
