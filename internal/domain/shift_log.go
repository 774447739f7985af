package domain

import (
	"time"

	"shiftbot/internal/timeutil"
)

type ShiftLog struct {
	ID          int64
	Description string
	Author      string
	AuthorID    string // Slack user ID (immutable, for authorization)
	Shift       timeutil.Shift
	ShiftDate   string // YYYY-MM-DD, the business day the shift belongs to
	ReportedAt  time.Time
	CreatedAt   time.Time
}

// ShiftSummary describes one shift on one business day.
type ShiftSummary struct {
	ShiftDate string
	Shift     timeutil.Shift
	Entries   int
	Authors   []string
}
