package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"MODELPICKER_CONFIG",
		"MODELPICKER_MODEL",
		"MODELPICKER_RECOMMENDED",
		"MODELPICKER_PROVIDER_DRIVER",
		"MODELPICKER_PROVIDER_TIMEOUT",
		"MODELPICKER_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Model != "o4-mini" {
		t.Errorf("Expected default model o4-mini, got %s", cfg.Model)
	}
	if !reflect.DeepEqual(cfg.Recommended, []string{"o4-mini", "o3"}) {
		t.Errorf("Unexpected recommended models: %v", cfg.Recommended)
	}
	if cfg.Provider.Driver != "openai" || cfg.Provider.GroupLabel != "OpenAI" {
		t.Errorf("Unexpected provider defaults: %+v", cfg.Provider)
	}
	if cfg.Provider.Timeout != 15*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.Provider.Timeout)
	}
	if cfg.Path() != "" {
		t.Errorf("Expected no config file, got %s", cfg.Path())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `model: gpt-4
recommended:
  - gpt-4
  - gpt-3.5
provider:
  driver: static
  models: [gpt-4, gpt-3.5, custom-1]
  group_label: Everything else
  timeout: 3s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("MODELPICKER_MODEL", "gpt-3.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Model != "gpt-3.5" {
		t.Errorf("Expected env to override model, got %s", cfg.Model)
	}
	if !reflect.DeepEqual(cfg.Recommended, []string{"gpt-4", "gpt-3.5"}) {
		t.Errorf("Unexpected recommended models: %v", cfg.Recommended)
	}
	if !reflect.DeepEqual(cfg.Provider.Models, []string{"gpt-4", "gpt-3.5", "custom-1"}) {
		t.Errorf("Unexpected provider models: %v", cfg.Provider.Models)
	}
	if cfg.Provider.Driver != "static" || cfg.Provider.GroupLabel != "Everything else" {
		t.Errorf("Unexpected provider config: %+v", cfg.Provider)
	}
	if cfg.Provider.Timeout != 3*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.Provider.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Path() != path {
		t.Errorf("Expected config path %s, got %s", path, cfg.Path())
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Expected error for missing explicit config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: \"  \"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Expected validation error for empty model")
	}
}

func TestSaveModel(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("model: o3\nprovider:\n  driver: static\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := SaveModel(path, "gpt-4.1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Model != "gpt-4.1" {
		t.Errorf("Expected saved model gpt-4.1, got %s", cfg.Model)
	}
	if cfg.Provider.Driver != "static" {
		t.Errorf("Expected other keys to survive, got driver %s", cfg.Provider.Driver)
	}
}

func TestSaveModel_CreatesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "fresh", "config.yaml")
	if err := SaveModel(path, "o3"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Model != "o3" {
		t.Errorf("Expected model o3, got %s", cfg.Model)
	}
}
