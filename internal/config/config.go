package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	HISDatabaseURL string   `mapstructure:"HIS_DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	SettingsFile   string   `mapstructure:"SETTINGS_FILE"`
	MigrationsDir  string   `mapstructure:"MIGRATIONS_DIR"`
	SheetsTimeout  int      `mapstructure:"SHEETS_TIMEOUT_SECONDS"`
	HISTimeout     int      `mapstructure:"HIS_TIMEOUT_SECONDS"`
	RequestTimeout int      `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SETTINGS_FILE", "settings.json")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("SHEETS_TIMEOUT_SECONDS", 15)
	v.SetDefault("HIS_TIMEOUT_SECONDS", 10)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("HIS_DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SETTINGS_FILE")
	v.BindEnv("MIGRATIONS_DIR")
	v.BindEnv("SHEETS_TIMEOUT_SECONDS")
	v.BindEnv("HIS_TIMEOUT_SECONDS")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HISDSN returns the connection string for the HIS warehouse, falling back
// to the main database when no dedicated warehouse is configured.
func (c *Config) HISDSN() string {
	if c.HISDatabaseURL != "" {
		return c.HISDatabaseURL
	}
	return c.DatabaseURL
}

// SheetsFetchTimeout returns the timeout for fetching published spreadsheets.
func (c *Config) SheetsFetchTimeout() time.Duration {
	return time.Duration(c.SheetsTimeout) * time.Second
}

// HISQueryTimeout returns the per-request timeout for HIS census queries.
func (c *Config) HISQueryTimeout() time.Duration {
	return time.Duration(c.HISTimeout) * time.Second
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.SheetsTimeout <= 0 {
		return fmt.Errorf("SHEETS_TIMEOUT_SECONDS must be positive, got %d", c.SheetsTimeout)
	}
	if c.HISTimeout <= 0 {
		return fmt.Errorf("HIS_TIMEOUT_SECONDS must be positive, got %d", c.HISTimeout)
	}
	return nil
}
