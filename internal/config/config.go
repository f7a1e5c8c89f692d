// ABOUTME: Gym configuration stored as JSON at the XDG config path.
// ABOUTME: Resolves the data directory, logging options, and opens the store.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/gym/internal/logging"
	"github.com/harperreed/gym/internal/storage"
)

// DataDirEnv overrides the configured data directory when set.
const DataDirEnv = "GYM_DATA_DIR"

// DBFileName is the database file inside the data directory.
const DBFileName = "gym.db"

// Config stores gym tool configuration.
type Config struct {
	// DataDir is the directory holding gym.db.
	// Supports ~ expansion. Defaults to ~/.local/share/gym.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is a logrus level name. Defaults to "warn".
	LogLevel string `json:"log_level,omitempty"`

	// LogFile, when set, receives logs through a rotating writer instead of stderr.
	LogFile string `json:"log_file,omitempty"`

	// LogJSON switches the log formatter to JSON.
	LogJSON bool `json:"log_json,omitempty"`

	// DeriveRecords stores personal records automatically when a workout
	// finishes. Nil means enabled.
	DeriveRecords *bool `json:"derive_records,omitempty"`
}

// GetDataDir returns the data directory: $GYM_DATA_DIR, then the configured
// value with ~ expanded, then the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if env := os.Getenv(DataDirEnv); env != "" {
		return ExpandPath(env)
	}
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file path.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), DBFileName)
}

// GetLogLevel returns the configured level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// DeriveRecordsEnabled reports whether finishing a workout records new bests.
func (c *Config) DeriveRecordsEnabled() bool {
	return c.DeriveRecords == nil || *c.DeriveRecords
}

// LogOptions converts the logging fields for logging.Setup.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level: c.GetLogLevel(),
		File:  ExpandPath(c.LogFile),
		JSON:  c.LogJSON,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	db, err := storage.Open(c.GetDBPath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gym", "config.json")
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
