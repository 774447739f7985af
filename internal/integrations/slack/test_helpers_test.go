package slackbot

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	sqlitedb "shiftbot/internal/storage/sqlite"
	"shiftbot/internal/timeutil"
)

var wita = time.FixedZone("WITA", 8*3600)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlitedb.InitDB(dbPath)
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// nightClock is 2024-03-15 02:30 WITA: Shift 2 attributed to 2024-03-14.
func nightClock() *timeutil.Clock {
	return timeutil.FixedClock(time.Date(2024, 3, 15, 2, 30, 0, 0, wita), wita)
}

func dayClock() *timeutil.Clock {
	return timeutil.FixedClock(time.Date(2024, 3, 15, 10, 0, 0, 0, wita), wita)
}
