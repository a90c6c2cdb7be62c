package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alexmk92/modelpicker/core"
	"github.com/alexmk92/modelpicker/core/config"
)

func TestNewModelService_StaticDriver(t *testing.T) {
	cfg := config.Config{
		Recommended: []string{"gpt-4"},
		Provider: config.ProviderConfig{
			Driver:          "static",
			Profile:         "default",
			CredentialsFile: filepath.Join(t.TempDir(), "missing"),
			Models:          []string{"gpt-4", "custom-1"},
		},
	}

	service, err := newModelService(cfg)
	if err != nil {
		t.Fatalf("newModelService() error = %v", err)
	}

	available, err := service.AvailableModels(context.Background())
	if err != nil {
		t.Fatalf("AvailableModels() error = %v", err)
	}
	partition := core.Partition(available, service.Recommended())
	if len(partition.Recommended) != 1 || partition.Recommended[0] != "gpt-4" {
		t.Errorf("Recommended = %v, want [gpt-4]", partition.Recommended)
	}
	if len(partition.Other) != 1 || partition.Other[0] != "custom-1" {
		t.Errorf("Other = %v, want [custom-1]", partition.Other)
	}
}

func TestNewModelService_UnknownDriver(t *testing.T) {
	cfg := config.Config{
		Provider: config.ProviderConfig{
			Driver:          "bedrock",
			CredentialsFile: filepath.Join(t.TempDir(), "missing"),
		},
	}

	if _, err := newModelService(cfg); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetOutput(os.Stderr)
	})

	path := filepath.Join(t.TempDir(), "modelpicker.log")
	closeLog, err := setupLogging(config.LogConfig{Level: "warn", File: path}, true)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug when --debug is set", log.GetLevel())
	}

	log.Debug("hello from the test")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected the log file to have content")
	}

	if _, err := setupLogging(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Error("expected an error for an invalid level")
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "model", "driver", "locked", "debug"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}
