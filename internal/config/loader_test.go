package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("addr = %q, want :8000", cfg.Server.Addr)
	}
	if cfg.Agent.MaxRounds != 10 {
		t.Errorf("max rounds = %d, want 10", cfg.Agent.MaxRounds)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  addr: \":9090\"\nagent:\n  model: llama3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Agent.Model != "llama3" {
		t.Errorf("model = %q, want llama3", cfg.Agent.Model)
	}
	// Untouched sections keep their defaults.
	if cfg.Worldpay.BaseURL != "https://try.access.worldpay.com" {
		t.Errorf("worldpay base url lost its default: %q", cfg.Worldpay.BaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WORLDPAY_USERNAME", "merchant-user")
	t.Setenv("WORLDPAY_PASSWORD", "merchant-pass")
	t.Setenv("SHOPBOT_API_KEY", "sekrit")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Worldpay.Username != "merchant-user" || cfg.Worldpay.Password != "merchant-pass" {
		t.Error("worldpay credentials not taken from environment")
	}
	if cfg.Server.APIKey != "sekrit" {
		t.Errorf("api key = %q, want sekrit", cfg.Server.APIKey)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
