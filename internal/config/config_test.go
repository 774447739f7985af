package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"
)

func setMinimalValidConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	for _, key := range []string{
		"DB_PATH", "REPORT_CHANNEL_ID", "TIMEZONE", "TEAM_NAME",
		"EXTERNAL_HTTP_TIMEOUT_SECONDS", "LOG_MAX_CHARS", "MANAGER_SLACK_IDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvWithDefaults(t *testing.T) {
	setMinimalValidConfigEnv(t)
	t.Setenv("MANAGER_SLACK_IDS", "U12345, U67890")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SlackBotToken != "xoxb-test" || cfg.SlackAppToken != "xapp-test" {
		t.Fatalf("unexpected slack tokens: %q %q", cfg.SlackBotToken, cfg.SlackAppToken)
	}
	if cfg.DBPath != "./shiftbot.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.ExternalHTTPTimeoutSeconds != int(defaultExternalHTTPTimeout/time.Second) {
		t.Fatalf("unexpected external HTTP timeout default: %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.TeamName != "Fuel Crew" {
		t.Fatalf("unexpected team name default: %q", cfg.TeamName)
	}
	if cfg.LogMaxChars != defaultLogMaxChars {
		t.Fatalf("unexpected log max chars default: %d", cfg.LogMaxChars)
	}
	if cfg.Location == nil || cfg.Location.String() != "Asia/Makassar" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
	if len(cfg.ManagerSlackIDs) != 2 || !cfg.IsManagerID("U67890") {
		t.Fatalf("unexpected manager IDs: %v", cfg.ManagerSlackIDs)
	}
	if cfg.AnnounceEnabled() {
		t.Fatal("expected announcements disabled without schedule and channel")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	setMinimalValidConfigEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
slack_bot_token: "yaml-bot"
slack_app_token: "yaml-app"
team_name: "YAML Crew"
timezone: "UTC"
db_path: "/tmp/yaml.db"
report_channel_id: "C123"
shift_announce_schedule: "0 6,18 * * *"
external_http_timeout_seconds: 75
manager_slack_ids: ["U1"]
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_APP_TOKEN", "")
	t.Setenv("TEAM_NAME", "Env Crew")
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("EXTERNAL_HTTP_TIMEOUT_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SlackBotToken != "yaml-bot" {
		t.Fatalf("expected yaml bot token, got %q", cfg.SlackBotToken)
	}
	if cfg.TeamName != "Env Crew" {
		t.Fatalf("expected env team name override, got %q", cfg.TeamName)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db path override, got %q", cfg.DBPath)
	}
	if cfg.ExternalHTTPTimeoutSeconds != 120 {
		t.Fatalf("expected env timeout override, got %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.Location != time.UTC && cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if !cfg.AnnounceEnabled() {
		t.Fatal("expected announcements enabled with schedule and channel")
	}
	if !cfg.IsManagerID("U1") {
		t.Fatalf("expected U1 to be a manager, got %v", cfg.ManagerSlackIDs)
	}
}

func TestLoadScheduleCanBeClearedFromEnv(t *testing.T) {
	setMinimalValidConfigEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("shift_announce_schedule: \"0 6,18 * * *\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("SHIFT_ANNOUNCE_SCHEDULE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ShiftAnnounceSchedule != "" {
		t.Fatalf("expected schedule cleared by env, got %q", cfg.ShiftAnnounceSchedule)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing bot token", env: map[string]string{"SLACK_BOT_TOKEN": ""}},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "bad schedule", env: map[string]string{"SHIFT_ANNOUNCE_SCHEDULE": "every shift"}},
		{name: "short timeout", env: map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "2"}},
		{name: "non-numeric timeout", env: map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "soon"}},
		{name: "tiny log limit", env: map[string]string{"LOG_MAX_CHARS": "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMinimalValidConfigEnv(t)
			t.Setenv("SHIFT_ANNOUNCE_SCHEDULE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected Load to fail")
			}
		})
	}
}

func TestParseSchedule(t *testing.T) {
	sched, err := ParseSchedule("0 6,18 * * *")
	if err != nil {
		t.Fatalf("ParseSchedule returned error: %v", err)
	}
	loc := time.FixedZone("WITA", 8*60*60)
	next := sched.Next(time.Date(2024, 3, 15, 7, 0, 0, 0, loc))
	want := time.Date(2024, 3, 15, 18, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("next = %s, want %s", next, want)
	}
}
