package app

import (
	"log"

	"github.com/slack-go/slack"

	"shiftbot/internal/announce"
	"shiftbot/internal/config"
	"shiftbot/internal/httpx"
	slackbot "shiftbot/internal/integrations/slack"
	"shiftbot/internal/storage/sqlite"
	"shiftbot/internal/timeutil"
)

func Main() {
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. Team=%s Managers=%d Timezone=%s Announce=%v AnnounceSchedule=%q LogMaxChars=%d ExternalHTTPTimeout=%s",
		cfg.TeamName,
		len(cfg.ManagerSlackIDs),
		cfg.Timezone,
		cfg.AnnounceEnabled(),
		cfg.ShiftAnnounceSchedule,
		cfg.LogMaxChars,
		appliedHTTPTimeout,
	)

	clock := timeutil.NewClock(cfg.Location)
	log.Printf("Current shift=%d shift_date=%s now=%s",
		clock.Shift().Number(), clock.ShiftDateString(), timeutil.FormatTime(clock.Now()))

	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	log.Printf("Database initialized at %s", cfg.DBPath)
	defer db.Close()

	api := slack.New(
		cfg.SlackBotToken,
		slack.OptionAppLevelToken(cfg.SlackAppToken),
		slack.OptionHTTPClient(httpx.Client()),
	)

	announce.StartShiftAnnouncer(cfg, db, api)

	log.Println("Starting Shift Log Bot...")
	if err := slackbot.StartSlackBot(cfg, db, api); err != nil {
		log.Fatalf("Slack bot error: %v", err)
	}
}
