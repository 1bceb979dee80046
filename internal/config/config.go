package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"ChartBalance/internal/logging"
	"ChartBalance/internal/parser"
)

// Config holds all application configuration.
type Config struct {
	Log    logging.Config `yaml:"log"`
	Parser struct {
		TieBreak string `yaml:"tie_break"`
	} `yaml:"parser"`
	Source struct {
		// Page is the 1-based form-feed separated page to read; 0 reads the
		// whole file.
		Page int `yaml:"page"`
	} `yaml:"source"`
	Inbox struct {
		Dir      string `yaml:"dir"`
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"inbox"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("PARSER_TIE_BREAK"); v != "" {
		cfg.Parser.TieBreak = v
	}
	if v := os.Getenv("SOURCE_PAGE"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SOURCE_PAGE: %w", err)
		}
		cfg.Source.Page = page
	}
	if v := os.Getenv("INBOX_DIR"); v != "" {
		cfg.Inbox.Dir = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Inbox.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Parser.TieBreak == "" {
		cfg.Parser.TieBreak = parser.DeclarationOrder.String()
	}
	if cfg.Inbox.Dir == "" {
		cfg.Inbox.Dir = "data/inbox"
	}
	if cfg.Inbox.ScanCron == "" {
		cfg.Inbox.ScanCron = "0 */5 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/chart_balance.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	return cfg, nil
}

// Validate checks field values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := parser.ParseTieBreak(c.Parser.TieBreak); err != nil {
		return fmt.Errorf("parser.tie_break: %w", err)
	}
	if c.Source.Page < 0 {
		return fmt.Errorf("source.page must not be negative")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Inbox.ScanCron); err != nil {
		return fmt.Errorf("inbox.scan_cron: %w", err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TieBreak returns the validated parser tie-break.
func (c *Config) TieBreak() parser.TieBreak {
	tb, _ := parser.ParseTieBreak(c.Parser.TieBreak)
	return tb
}

// TelegramEnabled reports whether notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
