package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/config"
)

func TestLoad_MissingFile_ShouldReturnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != config.DefaultTimeoutSeconds {
		t.Errorf("expected default timeout, got %d", cfg.TimeoutSeconds)
	}
	if cfg.IntegrationKey != "" {
		t.Errorf("expected no integration key, got %q", cfg.IntegrationKey)
	}
}

func TestLoad_CorruptFile_ShouldFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("expected defaults on corrupt file, got %q", cfg.BaseURL)
	}
}

func TestSaveThenLoad_ShouldRoundTripSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := config.Config{
		BaseURL:        "http://localhost:8080/",
		IntegrationKey: "test_ik_1234567890",
		DataDir:        filepath.Join(t.TempDir(), "data"),
		TimeoutSeconds: 10,
		MaxRetries:     2,
	}

	if err := config.Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	saved := config.Config{BaseURL: "http://from-file/", TimeoutSeconds: 30, MaxRetries: 3, DataDir: "d"}
	if err := config.Save(path, saved); err != nil {
		t.Fatal(err)
	}

	t.Setenv(config.EnvBaseURL, "http://from-env/")
	t.Setenv(config.EnvIntegrationKey, "env_key")
	t.Setenv(config.EnvTimeoutSeconds, "5")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseURL != "http://from-env/" {
		t.Errorf("expected env base URL, got %q", cfg.BaseURL)
	}
	if cfg.IntegrationKey != "env_key" {
		t.Errorf("expected env integration key, got %q", cfg.IntegrationKey)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("expected env timeout, got %d", cfg.TimeoutSeconds)
	}
}
