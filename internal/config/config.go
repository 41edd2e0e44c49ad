// Package config layers the exportlens configuration: built-in defaults,
// then the ini file at ~/.exportlens/config, then EXPORTLENS_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/ini.v1"
)

// envPrefix is the environment variable prefix, e.g.
// EXPORTLENS_TIMESTAMP_OFFSET_HOURS.
const envPrefix = "exportlens"

// Env holds the environment-variable overrides.
type Env struct {
	TimestampOffsetHours int    `envconfig:"TIMESTAMP_OFFSET_HOURS" default:"-5"`
	Timezone             string `envconfig:"TIMEZONE" default:""`
	DBPath               string `envconfig:"DB_PATH" default:""`
}

// Config represents the exportlens configuration.
type Config struct {
	file *ini.File
	env  Env
}

// Load reads the configuration file from ~/.exportlens/config and the
// process environment. A missing config file is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(home, ".exportlens", "config")

	var file *ini.File
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		file = ini.Empty()
	} else {
		file, err = ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg := &Config{file: file}
	if err := envconfig.Process(envPrefix, &cfg.env); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return cfg, nil
}

// TimestampOffset returns the correction applied to export timestamps.
// Priority: explicit environment variable, then the ini key
// parse.timestamp-offset-hours, then the -5h default.
func (c *Config) TimestampOffset() time.Duration {
	if _, ok := os.LookupEnv("EXPORTLENS_TIMESTAMP_OFFSET_HOURS"); ok {
		return time.Duration(c.env.TimestampOffsetHours) * time.Hour
	}
	if c.HasKey("parse.timestamp-offset-hours") {
		if hours, err := c.GetInt("parse.timestamp-offset-hours"); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return time.Duration(c.env.TimestampOffsetHours) * time.Hour
}

// Location returns the time zone used for calendar aggregation. An empty
// setting means the process-local zone.
func (c *Config) Location() (*time.Location, error) {
	name := c.env.Timezone
	if name == "" {
		name = c.GetString("parse.timezone")
	}
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// DBPath returns the corpus database path, defaulting to
// ~/.exportlens/exportlens.db.
func (c *Config) DBPath() (string, error) {
	if c.env.DBPath != "" {
		return c.env.DBPath, nil
	}
	if path := c.GetString("db.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".exportlens", "exportlens.db"), nil
}

// GetString retrieves a string value from the config file.
// section.key format (e.g., "parse.timezone").
func (c *Config) GetString(key string) string {
	section, keyName := c.parseKey(key)
	if section == "" {
		return ""
	}
	return c.file.Section(section).Key(keyName).String()
}

// GetInt retrieves an integer value from the config file.
func (c *Config) GetInt(key string) (int, error) {
	val := c.GetString(key)
	if val == "" {
		return 0, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %w", key, err)
	}
	return intVal, nil
}

// GetBool retrieves a boolean value from the config file.
func (c *Config) GetBool(key string) bool {
	val := strings.ToLower(c.GetString(key))
	return val == "true" || val == "yes" || val == "1" || val == "on"
}

// HasKey checks if a key exists in the config file.
func (c *Config) HasKey(key string) bool {
	section, keyName := c.parseKey(key)
	if section == "" {
		return false
	}
	return c.file.Section(section).HasKey(keyName)
}

// parseKey splits a dotted key into section and key name. The last dot
// is the separator, for Git config compatibility.
func (c *Config) parseKey(key string) (string, string) {
	lastDot := strings.LastIndex(key, ".")
	if lastDot == -1 {
		return "", ""
	}
	return key[:lastDot], key[lastDot+1:]
}
