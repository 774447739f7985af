package announce

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"shiftbot/internal/config"
	"shiftbot/internal/domain"
	"shiftbot/internal/storage/sqlite"
	"shiftbot/internal/timeutil"
)

type Config = config.Config

// Poster is the part of *slack.Client the announcer needs.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// StartShiftAnnouncer posts a shift-change message to the report channel at
// every fire time of shift_announce_schedule, evaluated in cfg.Location.
// Typical schedule: "0 6,18 * * *".
func StartShiftAnnouncer(cfg Config, db *sql.DB, api Poster) {
	schedule := strings.TrimSpace(cfg.ShiftAnnounceSchedule)
	if schedule == "" {
		log.Println("Shift announcements disabled (shift_announce_schedule not set)")
		return
	}
	if cfg.ReportChannelID == "" {
		log.Println("Shift announcements disabled: report_channel_id not set")
		return
	}

	sched, err := config.ParseSchedule(schedule)
	if err != nil {
		log.Printf("Invalid shift_announce_schedule '%s': %v, announcements disabled", schedule, err)
		return
	}
	log.Printf("Shift announcements scheduled (cron: %s, tz: %s)", schedule, cfg.Location)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next shift announcement at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			if err := Announce(api, cfg, db, next); err != nil {
				log.Printf("Shift announcement error: %v", err)
			}
		}
	}()
}

// Announce builds the message for instant `at` and posts it.
func Announce(api Poster, cfg Config, db *sql.DB, at time.Time) error {
	msg, err := BuildAnnouncement(db, cfg, at)
	if err != nil {
		return err
	}
	if _, _, err := api.PostMessage(cfg.ReportChannelID, slack.MsgOptionText(msg, false)); err != nil {
		return fmt.Errorf("post to %s: %w", cfg.ReportChannelID, err)
	}
	log.Printf("shift-announce posted channel=%s at=%s", cfg.ReportChannelID, at.Format(time.RFC3339))
	return nil
}

// BuildAnnouncement describes the shift running at `at` and summarises the
// shift before it. Fire times off the 06:00/18:00 boundaries report the
// shift that started at the most recent boundary.
func BuildAnnouncement(db *sql.DB, cfg Config, at time.Time) (string, error) {
	start := timeutil.ShiftStartAt(at, cfg.Location)
	starting := timeutil.ShiftAt(start, cfg.Location)
	startingDate := timeutil.ShiftDateStringAt(start, cfg.Location)

	ended := EndedShiftInstant(at, cfg.Location)
	summary, err := sqlite.SummarizeShift(db,
		timeutil.ShiftDateStringAt(ended, cfg.Location),
		timeutil.ShiftAt(ended, cfg.Location),
	)
	if err != nil {
		return "", fmt.Errorf("summarize previous shift: %w", err)
	}
	return formatAnnouncement(cfg.TeamName, starting, startingDate, start, summary), nil
}

// EndedShiftInstant is the last minute of the shift preceding the one that
// contains `at`.
func EndedShiftInstant(at time.Time, loc *time.Location) time.Time {
	return timeutil.ShiftStartAt(at, loc).Add(-time.Minute)
}

func formatAnnouncement(teamName string, starting timeutil.Shift, startingDate string, at time.Time, prev domain.ShiftSummary) string {
	zone, _ := at.Zone()
	var b strings.Builder
	fmt.Fprintf(&b, "*%s: %s has started* (shift date %s, %s %s)\n",
		teamName, starting, startingDate, timeutil.FormatTime(at), zone)

	fmt.Fprintf(&b, "Previous: %s on %s — ", prev.Shift, prev.ShiftDate)
	switch prev.Entries {
	case 0:
		b.WriteString("no log entries were recorded.")
	case 1:
		fmt.Fprintf(&b, "1 log entry by %s.", strings.Join(prev.Authors, ", "))
	default:
		fmt.Fprintf(&b, "%d log entries by %s.", prev.Entries, strings.Join(prev.Authors, ", "))
	}
	b.WriteString("\nUse `/log <what happened>` to record this shift's events.")
	return b.String()
}
