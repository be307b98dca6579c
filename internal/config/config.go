package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults. The production endpoint base matches the tool's target API;
// every value can be overridden by the config file and then by
// environment variables.
const (
	DefaultBaseURL        = "https://api.ebanx.com/"
	DefaultTimeoutSeconds = 30
	DefaultMaxRetries     = 3

	EnvConfigPath     = "PTPT_CONFIG"
	EnvBaseURL        = "PTPT_BASE_URL"
	EnvIntegrationKey = "PTPT_INTEGRATION_KEY"
	EnvDataDir        = "PTPT_DATA_DIR"
	EnvLogFile        = "PTPT_LOG_FILE"
	EnvTimeoutSeconds = "PTPT_TIMEOUT_SECONDS"
)

// Config is the operator's persisted settings plus runtime overrides.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	IntegrationKey string `yaml:"integration_key"`
	DataDir        string `yaml:"data_dir"`
	LogFile        string `yaml:"log_file,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryPath is the SQLite file holding the request history.
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

// DefaultPath resolves the config file location: the PTPT_CONFIG
// variable when set, otherwise ~/.ptpt/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ptpt", "config.yaml")
	}
	return filepath.Join(home, ".ptpt", "config.yaml")
}

func defaults(path string) Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		DataDir:        filepath.Join(filepath.Dir(path), "data"),
		TimeoutSeconds: DefaultTimeoutSeconds,
		MaxRetries:     DefaultMaxRetries,
	}
}

// Load reads the config file at path, fills gaps with defaults and
// applies environment overrides. A missing or unreadable file is not an
// error: the tool starts fresh with defaults, matching first-run use.
func Load(path string) (Config, error) {
	cfg := defaults(path)
	var loadErr error

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run
	case err != nil:
		// unreadable file: start fresh, the next Save rewrites it
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			cfg = defaults(path)
			loadErr = fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyDefaults(&cfg, path)
	applyEnv(&cfg)
	return cfg, loadErr
}

func applyDefaults(cfg *Config, path string) {
	base := defaults(path)
	if cfg.BaseURL == "" {
		cfg.BaseURL = base.BaseURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = base.DataDir
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = base.TimeoutSeconds
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = base.MaxRetries
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvIntegrationKey); v != "" {
		cfg.IntegrationKey = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
}

// Save persists the operator settings. Settings survive runs; the file
// is created with owner-only permissions because it can hold the
// integration key.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}
