package slackbot

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"shiftbot/internal/storage/sqlite"
	"shiftbot/internal/timeutil"
)

func StartSlackBot(cfg Config, db *sql.DB, api *slack.Client) error {
	client := socketmode.New(api)
	clock := timeutil.NewClock(cfg.Location)

	go func() {
		for evt := range client.Events {
			switch evt.Type {
			case socketmode.EventTypeSlashCommand:
				client.Ack(*evt.Request)
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					continue
				}
				log.Printf("Slash command received: %s from user=%s channel=%s", cmd.Command, cmd.UserID, cmd.ChannelID)
				go handleSlashCommand(api, db, cfg, clock, cmd)
			case socketmode.EventTypeEventsAPI:
				client.Ack(*evt.Request)
				eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				go handleEventsAPI(api, cfg, eventsAPIEvent)
			}
		}
	}()

	log.Println("Slack bot connected via Socket Mode")
	return client.Run()
}

func handleSlashCommand(api *slack.Client, db *sql.DB, cfg Config, clock *timeutil.Clock, cmd slack.SlashCommand) {
	switch cmd.Command {
	case "/shift":
		handleShift(api, cfg, clock, cmd)
	case "/log":
		handleLog(api, db, cfg, clock, cmd)
	case "/logs":
		handleLogs(api, db, cfg, clock, cmd)
	case "/unlog":
		handleUnlog(api, db, cfg, cmd)
	case "/help":
		handleHelp(api, cfg, cmd)
	}
}

func handleEventsAPI(api *slack.Client, cfg Config, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MemberJoinedChannelEvent:
		handleMemberJoined(api, cfg, ev)
	}
}

func handleMemberJoined(api *slack.Client, cfg Config, ev *slackevents.MemberJoinedChannelEvent) {
	log.Printf("member-joined user=%s channel=%s", ev.User, ev.Channel)

	_, _, err := api.PostMessage(ev.Channel,
		slack.MsgOptionText(welcomeText(cfg.TeamName), false),
		slack.MsgOptionPostEphemeral(ev.User),
	)
	if err != nil {
		log.Printf("member-joined intro error user=%s channel=%s: %v", ev.User, ev.Channel, err)
	}
}

func welcomeText(teamName string) string {
	if teamName == "" {
		teamName = "the crew"
	}
	return fmt.Sprintf("Welcome to %s! I'm ShiftBot, I keep the shift log.\n\n"+
		"Here's how to get started:\n"+
		"• `/shift` to see which shift is running and its shift date\n"+
		"• `/log <what happened>` to record an event (shift and date are filled in for you)\n"+
		"• `/logs` to view this week's log\n"+
		"• `/help` to see all commands\n\n"+
		"Between 00:00 and 06:00 your entries still count toward the night shift that started the evening before.",
		teamName,
	)
}

func handleShift(api *slack.Client, cfg Config, clock *timeutil.Clock, cmd slack.SlashCommand) {
	postEphemeral(api, cmd, renderShiftStatus(clock, cfg.TeamName))
	log.Printf("shift status sent user=%s shift=%d", cmd.UserID, clock.Shift().Number())
}

func handleLog(api *slack.Client, db *sql.DB, cfg Config, clock *timeutil.Clock, cmd slack.SlashCommand) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		postEphemeral(api, cmd, "Usage: /log [s1|s2] [YYYY-MM-DD] <what happened>\nExample: /log Refuelled HD785 #12, 450 L solar\nExample: /log [s2] [2024-03-14] Lube truck LT-03 back from workshop")
		return
	}

	author := authorName(api, cmd.UserID, cmd.UserName)
	authorID := cmd.UserID

	// Manager-only delegated logging: /log {Crew Member} ...
	if who, rest, ok := splitDelegatedAuthor(text); ok {
		if !cfg.IsManagerID(cmd.UserID) {
			postEphemeral(api, cmd, "Only managers can log on behalf of someone else.")
			return
		}
		id, name, err := resolveCrewMember(api, who)
		if err != nil {
			postEphemeral(api, cmd, fmt.Sprintf("Could not find crew member %q: %v", who, err))
			log.Printf("log delegate resolve error user=%s who=%q: %v", cmd.UserID, who, err)
			return
		}
		author, authorID, text = name, id, rest
	}

	in, err := parseLogInput(text, clock, cfg.LogMaxChars)
	if err != nil {
		postEphemeral(api, cmd, err.Error())
		log.Printf("log parse error user=%s: %v", cmd.UserID, err)
		return
	}

	entry := ShiftLog{
		Description: in.Description,
		Author:      author,
		AuthorID:    authorID,
		Shift:       timeutil.Shift(in.Shift),
		ShiftDate:   in.ShiftDate,
		ReportedAt:  in.ReportedAt,
	}
	id, err := sqlite.InsertShiftLog(db, entry)
	if err != nil {
		postEphemeral(api, cmd, fmt.Sprintf("Error saving log entry: %v", err))
		log.Printf("shift-log insert error user=%s: %v", cmd.UserID, err)
		return
	}

	msg := fmt.Sprintf("Logged `#%d` for %s, %s (shift date %s).", id, author, entry.Shift, entry.ShiftDate)
	if entry.Shift != clock.Shift() || entry.ShiftDate != clock.ShiftDateString() {
		msg += fmt.Sprintf("\n_Note: the current shift is %s on %s._", clock.Shift(), clock.ShiftDateString())
	}
	if sameShift, err := sqlite.GetShiftLogsForShift(db, entry.ShiftDate, entry.Shift); err == nil && len(sameShift) > 1 {
		msg += fmt.Sprintf("\n%d entries logged for this shift so far.", len(sameShift))
	}
	postEphemeral(api, cmd, msg)
	log.Printf("shift-log saved id=%d user=%s author=%s shift=%d date=%s", id, cmd.UserID, author, entry.Shift.Number(), entry.ShiftDate)
}

func handleLogs(api *slack.Client, db *sql.DB, cfg Config, clock *timeutil.Clock, cmd slack.SlashCommand) {
	args, mine := splitMineFlag(cmd.Text)
	w, label, err := parseLogsArgs(args, clock)
	if err != nil {
		postEphemeral(api, cmd, err.Error())
		return
	}
	from, to := w.DateStrings()

	var (
		entries []ShiftLog
		counts  map[timeutil.Shift]int
	)
	if mine {
		entries, err = sqlite.GetShiftLogsByAuthorAndDateRange(db, cmd.UserID, from, to)
		counts = countByShift(entries)
		label += " (mine)"
	} else {
		entries, err = sqlite.GetShiftLogsInWindow(db, w)
		if err == nil {
			counts, err = sqlite.CountShiftLogsByShift(db, from, to)
		}
	}
	if err != nil {
		postEphemeral(api, cmd, fmt.Sprintf("Error loading shift log: %v", err))
		log.Printf("logs load error user=%s from=%s to=%s: %v", cmd.UserID, from, to, err)
		return
	}

	postEphemeral(api, cmd, renderShiftLogs(entries, counts, label, w, clock.Location()))
	log.Printf("logs sent user=%s from=%s to=%s count=%d mine=%v", cmd.UserID, from, to, len(entries), mine)
}

func handleUnlog(api *slack.Client, db *sql.DB, cfg Config, cmd slack.SlashCommand) {
	id, err := parseEntryID(cmd.Text)
	if err != nil {
		postEphemeral(api, cmd, err.Error())
		return
	}

	entry, err := sqlite.GetShiftLogByID(db, id)
	if errors.Is(err, sql.ErrNoRows) {
		postEphemeral(api, cmd, fmt.Sprintf("Log entry #%d not found.", id))
		return
	}
	if err != nil {
		postEphemeral(api, cmd, fmt.Sprintf("Error loading log entry: %v", err))
		log.Printf("unlog load error user=%s id=%d: %v", cmd.UserID, id, err)
		return
	}
	if !canDeleteEntry(entry, cmd.UserID, cfg.IsManagerID(cmd.UserID)) {
		postEphemeral(api, cmd, "You can only delete your own log entries.")
		log.Printf("unlog denied user=%s id=%d author_id=%s", cmd.UserID, id, entry.AuthorID)
		return
	}
	if err := sqlite.DeleteShiftLogByID(db, id); err != nil {
		postEphemeral(api, cmd, fmt.Sprintf("Error deleting log entry: %v", err))
		log.Printf("unlog delete error user=%s id=%d: %v", cmd.UserID, id, err)
		return
	}

	postEphemeral(api, cmd, fmt.Sprintf("Deleted `#%d` (%s, %s on %s): %s", id, entry.Author, entry.Shift, entry.ShiftDate, entry.Description))
	log.Printf("unlog deleted user=%s id=%d", cmd.UserID, id)
}

func handleHelp(api *slack.Client, cfg Config, cmd slack.SlashCommand) {
	postEphemeral(api, cmd, helpText(cfg.IsManagerID(cmd.UserID)))
}

func helpText(isManager bool) string {
	lines := []string{
		"*ShiftBot Commands*",
		"",
		fmt.Sprintf("Shift 1 runs %02d:00-%02d:00, Shift 2 runs %02d:00-%02d:00. Night entries after midnight count toward the previous day.",
			timeutil.DayShiftStartHour, timeutil.NightShiftStartHour, timeutil.NightShiftStartHour, timeutil.DayShiftStartHour),
		"",
		"`/shift` — Show the running shift, shift date and ISO week.",
		"`/log <text>` — Record a shift event.",
		">*Override shift/date:* `/log [s2] [2024-03-14] Genset GS-02 refuelled 200 L`",
		"`/logs [week [N] | today | month | last-month] [mine]` — List log entries (default: this week).",
		"`/unlog <id>` — Delete one of your entries.",
		"`/help` — Show this help.",
	}
	if isManager {
		lines = append(lines,
			"",
			"*Manager Commands*",
			"",
			"`/log {Crew Member} <text>` — Log on behalf of a crew member.",
			"`/unlog <id>` — Delete any entry.",
		)
	}
	return strings.Join(lines, "\n")
}

func postEphemeral(api *slack.Client, cmd slack.SlashCommand, text string) {
	postEphemeralTo(api, cmd.ChannelID, cmd.UserID, text)
}

func postEphemeralTo(api *slack.Client, channelID, userID, text string) {
	_, err := api.PostEphemeral(channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Error posting ephemeral: %v", err)
	}
}
