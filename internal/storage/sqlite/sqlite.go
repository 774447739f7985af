package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"shiftbot/internal/domain"
	"shiftbot/internal/timeutil"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS shift_logs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		author      TEXT NOT NULL,
		author_id   TEXT DEFAULT '',
		shift       INTEGER NOT NULL CHECK (shift IN (1, 2)),
		shift_date  TEXT NOT NULL,
		reported_at DATETIME NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_shift_logs_date ON shift_logs(shift_date, shift);
	CREATE INDEX IF NOT EXISTS idx_shift_logs_author_id ON shift_logs(author_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

func InsertShiftLog(db *sql.DB, entry domain.ShiftLog) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO shift_logs (description, author, author_id, shift, shift_date, reported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Description, entry.Author, entry.AuthorID, entry.Shift.Number(), entry.ShiftDate, entry.ReportedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const selectShiftLog = `SELECT id, description, author, author_id, shift, shift_date, reported_at, created_at FROM shift_logs`

func scanShiftLogs(rows *sql.Rows) ([]domain.ShiftLog, error) {
	defer rows.Close()

	var entries []domain.ShiftLog
	for rows.Next() {
		var e domain.ShiftLog
		var shift int
		if err := rows.Scan(&e.ID, &e.Description, &e.Author, &e.AuthorID, &shift, &e.ShiftDate, &e.ReportedAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Shift = timeutil.Shift(shift)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func GetShiftLogByID(db *sql.DB, id int64) (domain.ShiftLog, error) {
	var e domain.ShiftLog
	var shift int
	err := db.QueryRow(selectShiftLog+` WHERE id = ?`, id).Scan(
		&e.ID, &e.Description, &e.Author, &e.AuthorID, &shift, &e.ShiftDate, &e.ReportedAt, &e.CreatedAt,
	)
	e.Shift = timeutil.Shift(shift)
	return e, err
}

func DeleteShiftLogByID(db *sql.DB, id int64) error {
	_, err := db.Exec(`DELETE FROM shift_logs WHERE id = ?`, id)
	return err
}

// GetShiftLogsByDateRange returns entries whose shift date lies in
// [from, to] (inclusive, YYYY-MM-DD), ordered by date, shift, then time.
func GetShiftLogsByDateRange(db *sql.DB, from, to string) ([]domain.ShiftLog, error) {
	rows, err := db.Query(
		selectShiftLog+` WHERE shift_date >= ? AND shift_date <= ? ORDER BY shift_date, shift, reported_at, id`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanShiftLogs(rows)
}

// GetShiftLogsInWindow is GetShiftLogsByDateRange over a calendar window.
func GetShiftLogsInWindow(db *sql.DB, w timeutil.Window) ([]domain.ShiftLog, error) {
	from, to := w.DateStrings()
	return GetShiftLogsByDateRange(db, from, to)
}

func GetShiftLogsByAuthorAndDateRange(db *sql.DB, authorID, from, to string) ([]domain.ShiftLog, error) {
	rows, err := db.Query(
		selectShiftLog+` WHERE author_id = ? AND shift_date >= ? AND shift_date <= ? ORDER BY shift_date, shift, reported_at, id`,
		authorID, from, to,
	)
	if err != nil {
		return nil, err
	}
	return scanShiftLogs(rows)
}

func GetShiftLogsForShift(db *sql.DB, shiftDate string, shift timeutil.Shift) ([]domain.ShiftLog, error) {
	rows, err := db.Query(
		selectShiftLog+` WHERE shift_date = ? AND shift = ? ORDER BY reported_at, id`,
		shiftDate, shift.Number(),
	)
	if err != nil {
		return nil, err
	}
	return scanShiftLogs(rows)
}

func CountShiftLogsByShift(db *sql.DB, from, to string) (map[timeutil.Shift]int, error) {
	rows, err := db.Query(
		`SELECT shift, COUNT(*) FROM shift_logs WHERE shift_date >= ? AND shift_date <= ? GROUP BY shift`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[timeutil.Shift]int)
	for rows.Next() {
		var shift, count int
		if err := rows.Scan(&shift, &count); err != nil {
			return nil, err
		}
		counts[timeutil.Shift(shift)] = count
	}
	return counts, rows.Err()
}

// SummarizeShift collects the entry count and distinct authors of one shift.
func SummarizeShift(db *sql.DB, shiftDate string, shift timeutil.Shift) (domain.ShiftSummary, error) {
	summary := domain.ShiftSummary{ShiftDate: shiftDate, Shift: shift}
	entries, err := GetShiftLogsForShift(db, shiftDate, shift)
	if err != nil {
		return summary, err
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		summary.Entries++
		if !seen[e.Author] {
			seen[e.Author] = true
			summary.Authors = append(summary.Authors, e.Author)
		}
	}
	return summary, nil
}
