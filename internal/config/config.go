package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the CLI and MCP server configuration. Every field has a usable
// default, so a config file is optional.
type Config struct {
	Units    string         `yaml:"units"`
	Weights  WeightsConfig  `yaml:"weights"`
	Warmup   WarmupConfig   `yaml:"warmup"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
}

// WeightsConfig selects where the last-known weight list lives.
type WeightsConfig struct {
	Store    string `yaml:"store"` // "file" or "sqlite"
	File     string `yaml:"file"`
	StateDir string `yaml:"state_dir"`
	Exercise string `yaml:"exercise"`
}

// WarmupConfig picks the warm-up schedule and caps warm-up weights as a
// fraction of the estimated 1RM.
type WarmupConfig struct {
	Schedule    string  `yaml:"schedule"` // "target" or "max"
	MaxFraction float64 `yaml:"max_fraction"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig points at a FreeReps PostgreSQL database used as an optional
// source for the last performance.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	UserID   int    `yaml:"user_id"`
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

// Enabled reports whether enough of the database section is set to connect.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Units: "lb",
		Weights: WeightsConfig{
			Store:    "file",
			File:     "weights.txt",
			StateDir: ".progression",
		},
		Warmup: WarmupConfig{
			Schedule:    "target",
			MaxFraction: 0.958,
		},
		Log:      LogConfig{Level: "info"},
		Database: DatabaseConfig{Port: 5432, UserID: 1},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (skipped
// when path is empty), then a .env file in the working directory if present,
// then environment overrides. Env vars use the prefix PROGRESSION_:
//
//	PROGRESSION_UNITS,
//	PROGRESSION_WEIGHTS_STORE, PROGRESSION_WEIGHTS_FILE,
//	PROGRESSION_WEIGHTS_STATE_DIR, PROGRESSION_WEIGHTS_EXERCISE,
//	PROGRESSION_WARMUP_SCHEDULE, PROGRESSION_WARMUP_MAX_FRACTION,
//	PROGRESSION_LOG_LEVEL,
//	PROGRESSION_DB_HOST, PROGRESSION_DB_PORT, PROGRESSION_DB_NAME,
//	PROGRESSION_DB_USER, PROGRESSION_DB_PASSWORD, PROGRESSION_DB_SSLMODE,
//	PROGRESSION_DB_USER_ID
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// A missing .env is normal; any other failure is reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROGRESSION_UNITS"); v != "" {
		cfg.Units = v
	}
	if v := os.Getenv("PROGRESSION_WEIGHTS_STORE"); v != "" {
		cfg.Weights.Store = v
	}
	if v := os.Getenv("PROGRESSION_WEIGHTS_FILE"); v != "" {
		cfg.Weights.File = v
	}
	if v := os.Getenv("PROGRESSION_WEIGHTS_STATE_DIR"); v != "" {
		cfg.Weights.StateDir = v
	}
	if v := os.Getenv("PROGRESSION_WEIGHTS_EXERCISE"); v != "" {
		cfg.Weights.Exercise = v
	}
	if v := os.Getenv("PROGRESSION_WARMUP_SCHEDULE"); v != "" {
		cfg.Warmup.Schedule = v
	}
	if v := os.Getenv("PROGRESSION_WARMUP_MAX_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Warmup.MaxFraction = f
		}
	}
	if v := os.Getenv("PROGRESSION_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PROGRESSION_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("PROGRESSION_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("PROGRESSION_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("PROGRESSION_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("PROGRESSION_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PROGRESSION_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("PROGRESSION_DB_USER_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Database.UserID = id
		}
	}
}

func (c *Config) validate() error {
	switch c.Weights.Store {
	case "file":
		if c.Weights.File == "" {
			return fmt.Errorf("weights.file is required for the file store")
		}
	case "sqlite":
		if c.Weights.StateDir == "" {
			return fmt.Errorf("weights.state_dir is required for the sqlite store")
		}
	default:
		return fmt.Errorf("weights.store must be \"file\" or \"sqlite\", got %q", c.Weights.Store)
	}
	if c.Warmup.Schedule != "target" && c.Warmup.Schedule != "max" {
		return fmt.Errorf("warmup.schedule must be \"target\" or \"max\", got %q", c.Warmup.Schedule)
	}
	if c.Warmup.MaxFraction <= 0 || c.Warmup.MaxFraction > 1 {
		return fmt.Errorf("warmup.max_fraction must be in (0, 1], got %v", c.Warmup.MaxFraction)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Database.Enabled() && c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
