package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

const (
	defaultTimezone    = "Asia/Makassar"
	defaultLogMaxChars = 500
)

type Config struct {
	SlackBotToken string `yaml:"slack_bot_token"`
	SlackAppToken string `yaml:"slack_app_token"`

	DBPath                     string `yaml:"db_path"`
	ReportChannelID            string `yaml:"report_channel_id"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`

	ManagerSlackIDs       []string `yaml:"manager_slack_ids"`
	ShiftAnnounceSchedule string   `yaml:"shift_announce_schedule"`
	Timezone              string   `yaml:"timezone"`
	TeamName              string   `yaml:"team_name"`
	LogMaxChars           int      `yaml:"log_max_chars"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

// LoadConfig is Load that exits the process on any configuration error.
func LoadConfig() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}

// Load reads .env (if present), config.yaml (or CONFIG_PATH), then applies
// environment overrides and defaults.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing %s: %w", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackAppToken, "SLACK_APP_TOKEN")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverrideAllowEmpty(&cfg.ShiftAnnounceSchedule, "SHIFT_ANNOUNCE_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.TeamName, "TEAM_NAME")
	if err := envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS"); err != nil {
		return cfg, err
	}
	if err := envOverrideInt(&cfg.LogMaxChars, "LOG_MAX_CHARS"); err != nil {
		return cfg, err
	}

	if ids := os.Getenv("MANAGER_SLACK_IDS"); ids != "" {
		cfg.ManagerSlackIDs = nil
		for _, id := range strings.Split(ids, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				cfg.ManagerSlackIDs = append(cfg.ManagerSlackIDs, id)
			}
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "./shiftbot.db"
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "Fuel Crew"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.LogMaxChars == 0 {
		cfg.LogMaxChars = defaultLogMaxChars
	}

	required := map[string]string{
		"slack_bot_token": cfg.SlackBotToken,
		"slack_app_token": cfg.SlackAppToken,
	}
	for name, val := range required {
		if val == "" {
			return cfg, fmt.Errorf("required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return cfg, fmt.Errorf("invalid timezone '%s': %w", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	if schedule := strings.TrimSpace(cfg.ShiftAnnounceSchedule); schedule != "" {
		if _, err := ParseSchedule(schedule); err != nil {
			return cfg, fmt.Errorf("invalid shift_announce_schedule '%s': %w", schedule, err)
		}
	}
	if cfg.ExternalHTTPTimeoutSeconds < 5 {
		return cfg, fmt.Errorf("invalid external_http_timeout_seconds '%d': must be >= 5", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.LogMaxChars < 20 {
		return cfg, fmt.Errorf("invalid log_max_chars '%d': must be >= 20", cfg.LogMaxChars)
	}

	return cfg, nil
}

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(spec)
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideAllowEmpty(field *string, envKey string) {
	if val, ok := os.LookupEnv(envKey); ok {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func (c Config) IsManagerID(userID string) bool {
	for _, id := range c.ManagerSlackIDs {
		if strings.TrimSpace(id) == userID {
			return true
		}
	}
	return false
}

// AnnounceEnabled reports whether shift-change announcements can be posted.
func (c Config) AnnounceEnabled() bool {
	return strings.TrimSpace(c.ShiftAnnounceSchedule) != "" && c.ReportChannelID != ""
}
