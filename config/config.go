// Package config loads console settings from an optional YAML file merged
// with environment variables. Environment wins; everything has a default
// so a fresh install works with no file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved console configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	SessionFile string
	ActivityDB  string
	ReportDir   string
	LogLevel    string
}

// fileConfig is the YAML shape; timeout is a duration string like "30s".
type fileConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	SessionFile string `yaml:"session_file"`
	ActivityDB  string `yaml:"activity_db"`
	ReportDir   string `yaml:"report_dir"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultPath returns the default config file location under the user's
// home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".library-console", "config.yaml")
	}
	return filepath.Join(home, ".library-console", "config.yaml")
}

// Load reads the config at path (missing file is fine), loads a local
// .env when present, and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if err := fc.apply(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	// .env beside the working directory, for development setups.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fc.SessionFile != "" {
		cfg.SessionFile = fc.SessionFile
	}
	if fc.ActivityDB != "" {
		cfg.ActivityDB = fc.ActivityDB
	}
	if fc.ReportDir != "" {
		cfg.ReportDir = fc.ReportDir
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}

func defaults() Config {
	dir := filepath.Dir(DefaultPath())
	return Config{
		BaseURL:     "http://localhost:5555",
		Timeout:     30 * time.Second,
		SessionFile: filepath.Join(dir, "session.json"),
		ActivityDB:  filepath.Join(dir, "activity.db"),
		ReportDir:   ".",
		LogLevel:    "warning",
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LIBRARY_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LIBRARY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LIBRARY_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("LIBRARY_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("LIBRARY_ACTIVITY_DB"); v != "" {
		cfg.ActivityDB = v
	}
	if v := os.Getenv("LIBRARY_REPORT_DIR"); v != "" {
		cfg.ReportDir = v
	}
	if v := os.Getenv("LIBRARY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
