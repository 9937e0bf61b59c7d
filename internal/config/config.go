package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		StaticDir  string `yaml:"static_dir"`
	} `yaml:"server"`
	Providers struct {
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Disabled       []string `yaml:"disabled"`
	} `yaml:"providers"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Predictor struct {
		TechnicalWeight         float64 `yaml:"technical_weight"`
		MLWeight                float64 `yaml:"ml_weight"`
		SupportResistanceWeight float64 `yaml:"support_resistance_weight"`
	} `yaml:"predictor"`
	Sectors struct {
		TopN         int      `yaml:"top_n"`
		ForceInclude []string `yaml:"force_include"`
	} `yaml:"sectors"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
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
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "web/static"
	}
	if cfg.Providers.TimeoutSeconds == 0 {
		cfg.Providers.TimeoutSeconds = 8
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stocks.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *" // every 5 minutes
	}
	if cfg.Predictor.TechnicalWeight == 0 && cfg.Predictor.MLWeight == 0 && cfg.Predictor.SupportResistanceWeight == 0 {
		cfg.Predictor.TechnicalWeight = 0.3
		cfg.Predictor.MLWeight = 0.4
		cfg.Predictor.SupportResistanceWeight = 0.3
	}
	if cfg.Sectors.TopN == 0 {
		cfg.Sectors.TopN = 10
	}
	if cfg.Sectors.ForceInclude == nil {
		cfg.Sectors.ForceInclude = []string{"人工智能", "AI"}
	}

	return cfg, nil
}

// ProviderEnabled reports whether the named provider is not disabled.
func (c *Config) ProviderEnabled(name string) bool {
	for _, d := range c.Providers.Disabled {
		if d == name {
			return false
		}
	}
	return true
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Providers.TimeoutSeconds < 1 || c.Providers.TimeoutSeconds > 60 {
		return fmt.Errorf("providers.timeout_seconds must be between 1 and 60")
	}
	if c.Predictor.TechnicalWeight < 0 || c.Predictor.MLWeight < 0 || c.Predictor.SupportResistanceWeight < 0 {
		return fmt.Errorf("predictor weights must be non-negative")
	}
	if c.Predictor.TechnicalWeight+c.Predictor.MLWeight+c.Predictor.SupportResistanceWeight <= 0 {
		return fmt.Errorf("predictor weights must sum to a positive value")
	}
	return nil
}
