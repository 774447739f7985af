package timeutil

import (
	"regexp"
	"testing"
	"time"
)

var hhmm = regexp.MustCompile(`^\d{2}:\d{2}$`)

func TestFormatTimeIsZeroPadded(t *testing.T) {
	got := FormatTime(time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC))
	if got != "06:05" {
		t.Fatalf("FormatTime = %q, want 06:05", got)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*60; i += 17 {
		s := FormatTime(base.Add(time.Duration(i) * time.Minute))
		if !hhmm.MatchString(s) {
			t.Fatalf("FormatTime produced %q", s)
		}
	}
}

func TestFormatUnixMilli(t *testing.T) {
	ms := time.Date(2024, 3, 15, 2, 30, 0, 0, time.Local).UnixMilli()
	if got := FormatUnixMilli(ms); got != "02:30" {
		t.Fatalf("FormatUnixMilli = %q, want 02:30", got)
	}
}

func TestDateFormats(t *testing.T) {
	// 2024-03-14T18:30:00Z is 2024-03-15 02:30 at UTC+8.
	ms := time.Date(2024, 3, 14, 18, 30, 0, 0, time.UTC).UnixMilli()
	if got := FormatDateTimeUTC8(ms); got != "15/03/2024 02:30:00" {
		t.Errorf("FormatDateTimeUTC8 = %q", got)
	}
	if got := FormatIndonesianDate(ms); got != "15 Maret 2024" {
		t.Errorf("FormatIndonesianDate = %q", got)
	}

	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatISODate(d); got != "2024-03-05" {
		t.Errorf("FormatISODate = %q", got)
	}
	if got := FormatSlashDate(d); got != "2024/3/5" {
		t.Errorf("FormatSlashDate = %q", got)
	}
	if got := FormatDDMMYY(d); got != "050324" {
		t.Errorf("FormatDDMMYY = %q", got)
	}
	if got := FormatIndonesianDateOf(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)); got != "01 Desember 2023" {
		t.Errorf("FormatIndonesianDateOf = %q", got)
	}
}

func TestIndonesianDateZones(t *testing.T) {
	// 20:00 UTC on New Year's Eve is already 1 January at UTC+8.
	evening := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)
	if got := FormatIndonesianDate(evening.UnixMilli()); got != "01 Januari 2024" {
		t.Errorf("FormatIndonesianDate = %q, want UTC+8 date", got)
	}
	if got := FormatIndonesianDateOf(evening); got != "31 Desember 2023" {
		t.Errorf("FormatIndonesianDateOf = %q, want the date in t's own zone", got)
	}
	jakarta := time.FixedZone("WIB", 7*3600)
	if got := FormatIndonesianDateOf(time.Date(2024, 3, 14, 23, 30, 0, 0, jakarta)); got != "14 Maret 2024" {
		t.Errorf("FormatIndonesianDateOf(WIB) = %q", got)
	}
}

func TestFormatNumberWithSeparator(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234567, "1,234,567"},
		{1234.5, "1,234.5"},
		{12, "12"},
	}
	for _, tt := range tests {
		if got := FormatNumberWithSeparator(tt.in); got != tt.want {
			t.Errorf("FormatNumberWithSeparator(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
