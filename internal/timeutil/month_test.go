package timeutil

import (
	"testing"
	"time"
)

func TestMonthWindowAt(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "2023-02-01", "2023-02-28"},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{time.Date(2024, 4, 30, 8, 0, 0, 0, time.UTC), "2024-04-01", "2024-04-30"},
	}
	for _, tt := range tests {
		w := MonthWindowAt(tt.now)
		from, to := w.DateStrings()
		if from != tt.wantStart || to != tt.wantEnd {
			t.Errorf("MonthWindowAt(%s) = %s..%s, want %s..%s", tt.now, from, to, tt.wantStart, tt.wantEnd)
		}
		if w.Start.Day() != 1 {
			t.Errorf("start day = %d, want 1", w.Start.Day())
		}
		if w.End.AddDate(0, 0, 1).Day() != 1 {
			t.Errorf("end %s is not the last day of the month", w.End)
		}
	}
}

func TestPreviousMonthWindowAdjoinsCurrent(t *testing.T) {
	for _, now := range []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, BusinessLocation()),
	} {
		prev := PreviousMonthWindowAt(now)
		cur := MonthWindowAt(now)
		if !prev.End.AddDate(0, 0, 1).Equal(cur.Start) {
			t.Errorf("previous end %s + 1 day != current start %s", prev.End, cur.Start)
		}
		if prev.Start.Day() != 1 {
			t.Errorf("previous start day = %d, want 1", prev.Start.Day())
		}
	}

	prev := PreviousMonthWindowAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	from, to := prev.DateStrings()
	if from != "2023-12-01" || to != "2023-12-31" {
		t.Fatalf("unexpected previous month across year: %s..%s", from, to)
	}
}

func TestAmbientMonthWindowsAgree(t *testing.T) {
	cur := CurrentMonthWindow()
	prev := PreviousMonthWindow()
	if cur.Start.Day() != 1 || prev.Start.Day() != 1 {
		t.Fatalf("expected both windows to start on day 1: %v %v", cur, prev)
	}
	if !prev.End.AddDate(0, 0, 1).Equal(cur.Start) {
		t.Fatalf("previous month does not end the day before the current month starts")
	}
}
