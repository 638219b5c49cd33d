package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Fitness   FitnessConfig   `yaml:"fitness"`
	Import    ImportConfig    `yaml:"import"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// FitnessConfig tunes the derived workout views.
type FitnessConfig struct {
	WeeklyGoal    int    `yaml:"weekly_goal"`
	HistoryWindow int    `yaml:"history_window"`
	RecentLimit   int    `yaml:"recent_limit"`
	MonthLocale   string `yaml:"month_locale"`
	Timezone      string `yaml:"timezone"`
}

// ImportConfig configures the CSV importer.
type ImportConfig struct {
	StateDir string        `yaml:"state_dir"`
	Debounce time.Duration `yaml:"debounce"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Location resolves the configured timezone. Empty and "Local" mean the
// process's local zone.
func (f FitnessConfig) Location() (*time.Location, error) {
	if f.Timezone == "" || f.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", f.Timezone, err)
	}
	return loc, nil
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. Env vars use the prefix LIFEOPS_ and underscore-separated paths:
//
//	LIFEOPS_SERVER_HOST, LIFEOPS_SERVER_PORT,
//	LIFEOPS_DB_HOST, LIFEOPS_DB_PORT, LIFEOPS_DB_NAME,
//	LIFEOPS_DB_USER, LIFEOPS_DB_PASSWORD, LIFEOPS_DB_SSLMODE,
//	LIFEOPS_AUTH_API_KEY, LIFEOPS_TAILSCALE_ENABLED,
//	LIFEOPS_FITNESS_WEEKLY_GOAL, LIFEOPS_FITNESS_TIMEZONE,
//	LIFEOPS_IMPORT_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv copies KEY=VALUE pairs from a .env file into the process
// environment so they reach the LIFEOPS_* overrides. Variables already set
// win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFEOPS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFEOPS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFEOPS_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFEOPS_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFEOPS_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFEOPS_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFEOPS_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFEOPS_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFEOPS_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("LIFEOPS_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("LIFEOPS_FITNESS_WEEKLY_GOAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fitness.WeeklyGoal = n
		}
	}
	if v := os.Getenv("LIFEOPS_FITNESS_TIMEZONE"); v != "" {
		cfg.Fitness.Timezone = v
	}
	if v := os.Getenv("LIFEOPS_IMPORT_STATE_DIR"); v != "" {
		cfg.Import.StateDir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "lifeops"
	}
	if cfg.Tailscale.StateDir == "" {
		cfg.Tailscale.StateDir = "tsnet-state"
	}
	if cfg.Fitness.WeeklyGoal == 0 {
		cfg.Fitness.WeeklyGoal = 3
	}
	if cfg.Fitness.HistoryWindow == 0 {
		cfg.Fitness.HistoryWindow = 30
	}
	if cfg.Fitness.RecentLimit == 0 {
		cfg.Fitness.RecentLimit = 20
	}
	if cfg.Fitness.MonthLocale == "" {
		cfg.Fitness.MonthLocale = "zh"
	}
	if cfg.Fitness.Timezone == "" {
		cfg.Fitness.Timezone = "Local"
	}
	if cfg.Import.StateDir == "" {
		cfg.Import.StateDir = ".lifeops"
	}
	if cfg.Import.Debounce == 0 {
		cfg.Import.Debounce = 2 * time.Second
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Fitness.WeeklyGoal < 0 {
		return fmt.Errorf("fitness.weekly_goal must not be negative")
	}
	if c.Fitness.HistoryWindow < 0 || c.Fitness.RecentLimit < 0 {
		return fmt.Errorf("fitness.history_window and fitness.recent_limit must not be negative")
	}
	if _, err := c.Fitness.Location(); err != nil {
		return fmt.Errorf("fitness.timezone: %w", err)
	}
	return nil
}
