package slackbot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shiftbot/internal/timeutil"
)

var leadingTagRegex = regexp.MustCompile(`^\[([^\[\]]+)\]\s*`)
var dateTagRegex = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
var delegatedAuthorRegex = regexp.MustCompile(`^\{([^{}]+)\}\s*`)

var validate = validator.New()

const maxListedEntries = 50

type logInput struct {
	Description string `validate:"required,min=3"`
	ShiftDate   string `validate:"required,datetime=2006-01-02"`
	Shift       int    `validate:"oneof=1 2"`
	ReportedAt  time.Time
}

// parseLogInput reads "/log [s2] [2024-03-14] description". Shift and date
// default to the clock's current shift and shift-attributed date. Leading
// tags stop at the first one that is neither a shift nor a date.
func parseLogInput(text string, clock *timeutil.Clock, maxChars int) (logInput, error) {
	in := logInput{
		Shift:      clock.Shift().Number(),
		ShiftDate:  clock.ShiftDateString(),
		ReportedAt: clock.Now(),
	}

	rest := strings.TrimSpace(text)
	for {
		m := leadingTagRegex.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		tag := strings.TrimSpace(m[1])
		if s, err := timeutil.ParseShift(tag); err == nil {
			in.Shift = s.Number()
		} else if dateTagRegex.MatchString(tag) {
			in.ShiftDate = tag
		} else {
			// Not an override, e.g. "[urgent]": keep it in the description.
			break
		}
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	in.Description = rest

	if err := validate.Struct(in); err != nil {
		return in, errors.New(describeValidationError(err))
	}
	if err := validate.Var(in.Description, fmt.Sprintf("max=%d", maxChars)); err != nil {
		return in, fmt.Errorf("Description is too long (max %d characters).", maxChars)
	}
	if in.ShiftDate > clock.ShiftDateString() {
		return in, fmt.Errorf("Shift date %s is in the future (current shift date is %s).", in.ShiftDate, clock.ShiftDateString())
	}
	return in, nil
}

// splitDelegatedAuthor strips a leading "{Name}" used by managers to log on
// behalf of a crew member.
func splitDelegatedAuthor(text string) (who, rest string, ok bool) {
	text = strings.TrimSpace(text)
	m := delegatedAuthorRegex.FindStringSubmatch(text)
	if m == nil {
		return "", text, false
	}
	who = strings.TrimSpace(m[1])
	rest = strings.TrimSpace(text[len(m[0]):])
	return who, rest, who != ""
}

func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Field() + ":" + fe.Tag() {
		case "Description:required":
			msgs = append(msgs, "Please describe what happened.")
		case "Description:min":
			msgs = append(msgs, "Description is too short.")
		case "ShiftDate:datetime", "ShiftDate:required":
			msgs = append(msgs, fmt.Sprintf("Shift date %q must look like YYYY-MM-DD.", fe.Value()))
		case "Shift:oneof":
			msgs = append(msgs, "Shift must be 1 or 2.")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation '%s'.", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, " ")
}

// parseLogsArgs maps "/logs" arguments to a date window anchored on the
// shift-attributed date of `now`.
//
//	""            current ISO week
//	"week"        current ISO week
//	"week N"      ISO week N of the current ISO year
//	"today"       current shift date
//	"month"       current calendar month
//	"last-month"  previous calendar month
func parseLogsArgs(text string, clock *timeutil.Clock) (timeutil.Window, string, error) {
	anchor := clock.ShiftDate()
	loc := clock.Location()
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		fields = []string{"week"}
	}

	switch fields[0] {
	case "week":
		year, week := timeutil.ISOWeekYear(day)
		if len(fields) > 2 {
			return timeutil.Window{}, "", fmt.Errorf("Usage: /logs week [number]")
		}
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > 53 {
				return timeutil.Window{}, "", fmt.Errorf("Week must be a number between 1 and 53, got %q.", fields[1])
			}
			week = n
		}
		w := timeutil.WeekBounds(year, week, loc)
		if y, wk := timeutil.ISOWeekYear(w.Start); y != year || wk != week {
			return timeutil.Window{}, "", fmt.Errorf("%d has no ISO week %d.", year, week)
		}
		return w, fmt.Sprintf("%d-W%02d", year, week), nil
	case "today":
		if len(fields) > 1 {
			return timeutil.Window{}, "", fmt.Errorf("Usage: /logs today")
		}
		return timeutil.Window{Start: day, End: day}, "shift date " + day.Format("2006-01-02"), nil
	case "month":
		w := timeutil.MonthWindowAt(day)
		return w, w.Start.Format("January 2006"), nil
	case "last-month", "lastmonth", "prev":
		w := timeutil.PreviousMonthWindowAt(day)
		return w, w.Start.Format("January 2006"), nil
	}
	return timeutil.Window{}, "", fmt.Errorf("Unknown period %q. Use week [N], today, month or last-month.", fields[0])
}

func renderShiftStatus(clock *timeutil.Clock, teamName string) string {
	now := clock.Now()
	shift := clock.Shift()
	shiftDate := clock.ShiftDate()
	zone, _ := now.Zone()
	year, week := timeutil.ISOWeekYear(shiftDate)

	nextChange := timeutil.NightShiftStartHour
	if shift == timeutil.ShiftNight {
		nextChange = timeutil.DayShiftStartHour
	}

	lines := []string{
		fmt.Sprintf("*%s* is running for %s (%s %s, %s).",
			shift, teamName, timeutil.FormatTime(now), zone, now.Format("Mon 2 Jan")),
		fmt.Sprintf("Shift date: %s (%s) · ISO week %d-W%02d",
			clock.ShiftDateString(), timeutil.FormatIndonesianDateOf(shiftDate), year, week),
		fmt.Sprintf("Next shift change: %02d:00 %s (%s).", nextChange, zone, shift.Next()),
	}
	return strings.Join(lines, "\n")
}

func renderShiftLogs(entries []ShiftLog, counts map[timeutil.Shift]int, label string, w timeutil.Window, loc *time.Location) string {
	from, to := w.DateStrings()
	var b strings.Builder
	fmt.Fprintf(&b, "*Shift log %s* (%s to %s): %s entries", label, from, to,
		timeutil.FormatNumberWithSeparator(float64(len(entries))))
	if len(entries) == 0 {
		b.WriteString("\nNothing logged in this period.")
		return b.String()
	}
	fmt.Fprintf(&b, " (Shift 1: %d, Shift 2: %d)", counts[timeutil.ShiftDay], counts[timeutil.ShiftNight])

	var lastDate string
	var lastShift timeutil.Shift
	for i, e := range entries {
		if i == maxListedEntries {
			fmt.Fprintf(&b, "\n_…and %d more._", len(entries)-maxListedEntries)
			break
		}
		if e.ShiftDate != lastDate || e.Shift != lastShift {
			fmt.Fprintf(&b, "\n*%s · %s*", e.ShiftDate, e.Shift)
			lastDate, lastShift = e.ShiftDate, e.Shift
		}
		fmt.Fprintf(&b, "\n• `#%d` %s %s: %s", e.ID, timeutil.FormatTime(e.ReportedAt.In(loc)), e.Author, e.Description)
	}
	return b.String()
}

// splitMineFlag removes a "mine" token from /logs arguments.
func splitMineFlag(text string) (string, bool) {
	var kept []string
	mine := false
	for _, f := range strings.Fields(text) {
		if strings.EqualFold(f, "mine") {
			mine = true
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " "), mine
}

func countByShift(entries []ShiftLog) map[timeutil.Shift]int {
	counts := make(map[timeutil.Shift]int)
	for _, e := range entries {
		counts[e.Shift]++
	}
	return counts
}

func parseEntryID(text string) (int64, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(text), "#")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("Usage: /unlog <entry id>, e.g. /unlog 42")
	}
	return id, nil
}

func canDeleteEntry(e ShiftLog, userID string, isManager bool) bool {
	return isManager || (e.AuthorID != "" && e.AuthorID == userID)
}
