package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Atoms <= 0 {
		t.Error("atoms should be positive")
	}
	if cfg.Configs <= 0 {
		t.Error("configs should be positive")
	}
	if cfg.Kernel != "auto" {
		t.Errorf("expected kernel auto, got %s", cfg.Kernel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero atoms", func(c *Config) { c.Atoms = 0 }},
		{"negative configs", func(c *Config) { c.Configs = -1 }},
		{"zero cell", func(c *Config) { c.Cell = 0 }},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }},
		{"zero sigma", func(c *Config) { c.Sigma = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enslab.yaml")

	cfg := DefaultConfig()
	cfg.Atoms = 48
	cfg.Temperature = 4.2

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Atoms != 48 || loaded.Temperature != 4.2 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("atoms: 16\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Atoms != 16 {
		t.Errorf("expected atoms 16, got %d", cfg.Atoms)
	}
	if cfg.Sigma != DefaultSigma {
		t.Errorf("expected default sigma, got %f", cfg.Sigma)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("atoms: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("liquid")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Temperature != 4.2 {
		t.Errorf("expected temperature 4.2, got %f", cfg.Temperature)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
