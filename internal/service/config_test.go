package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/clientclock/internal/config"
)

func TestConfigService_GetAndPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "nord"
	svc := NewConfigService("/tmp/test/config.toml", cfg)

	if svc.Get() != cfg {
		t.Errorf("Get() = %+v, expected %+v", svc.Get(), cfg)
	}
	if svc.GetPath() != "/tmp/test/config.toml" {
		t.Errorf("GetPath() = %q, expected '/tmp/test/config.toml'", svc.GetPath())
	}
}

func TestConfigService_Exists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if svc.Exists() {
		t.Error("expected Exists() to return false")
	}
	if err := os.WriteFile(configPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if !svc.Exists() {
		t.Error("expected Exists() to return true")
	}

	if NewConfigService("", config.DefaultConfig()).Exists() {
		t.Error("expected Exists() to be false without a path")
	}
}

func TestConfigService_Update(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	newCfg := config.DefaultConfig()
	newCfg.Theme = "nord"
	newCfg.PauseAccounting = "Persistent"

	if err := svc.Update(newCfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := svc.Get()
	if result.Theme != "nord" {
		t.Errorf("expected Theme 'nord', got %q", result.Theme)
	}
	if result.PauseAccounting != "persistent" {
		t.Errorf("expected normalized PauseAccounting 'persistent', got %q", result.PauseAccounting)
	}

	onDisk, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load() returned error: %v", err)
	}
	if onDisk != result {
		t.Errorf("on-disk config = %+v, expected %+v", onDisk, result)
	}
}

func TestConfigService_Update_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	invalid := config.DefaultConfig()
	invalid.SummaryFormat = "xml"

	if err := svc.Update(invalid); err == nil {
		t.Error("expected error for invalid config")
	}
	if svc.Exists() {
		t.Error("invalid config should not be written")
	}
}

func TestConfigService_Update_NoPath(t *testing.T) {
	svc := NewConfigService("", config.DefaultConfig())
	cfg := config.DefaultConfig()
	cfg.Theme = "nord"
	if err := svc.Update(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Get().Theme != "nord" {
		t.Error("expected in-memory update without a path")
	}
}

func TestConfigService_Init(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if err := svc.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "pause_accounting") {
		t.Error("expected sample config content after Init")
	}

	if err := svc.Init(); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestConfigService_Reload(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte(`summary_format = "yaml"`), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Get().SummaryFormat != "yaml" {
		t.Errorf("expected SummaryFormat 'yaml', got %q", svc.Get().SummaryFormat)
	}
}

func TestConfigService_Reload_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("invalid toml {{{"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Reload(); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestConfigService_WriteErrors(t *testing.T) {
	svc := NewConfigService("/nonexistent/dir/config.toml", config.DefaultConfig())

	if err := svc.Update(config.DefaultConfig()); err == nil {
		t.Error("expected Update() error for invalid path")
	}
	if err := svc.Init(); err == nil {
		t.Error("expected Init() error for invalid path")
	}
}
