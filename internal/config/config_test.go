package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Power != 2.0 {
		t.Errorf("expected power 2.0, got %f", cfg.Power)
	}
	if cfg.Mode != "blend" {
		t.Errorf("expected blend mode, got %s", cfg.Mode)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero bounds", func(c *Config) { c.Bounds = 0 }},
		{"zero zoom", func(c *Config) { c.Zoom = 0 }},
		{"negative delta", func(c *Config) { c.Delta = -0.1 }},
		{"zero loop limit", func(c *Config) { c.LoopLimit = 0 }},
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"opacity above one", func(c *Config) { c.Opacity = 1.5 }},
		{"zero factor", func(c *Config) { c.Factor = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = "additive" }},
		{"unknown colour policy", func(c *Config) { c.Colour = "rainbow" }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"absurd grid", func(c *Config) { c.Bounds = 100; c.Delta = 1e-4 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	partial := "delta: 0.01\nmode: density\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Delta != 0.01 || got.Mode != "density" {
		t.Errorf("loaded config lost overrides: %+v", got)
	}
	// Fields absent from the file keep their defaults.
	if got.Zoom != DefaultZoom {
		t.Errorf("expected default zoom %d, got %d", DefaultZoom, got.Zoom)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	want := GetPreset("nebula")
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("%s: listed preset not found", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset does not validate: %v", name, err)
		}
	}
}

func TestGetPresetCopies(t *testing.T) {
	a := GetPreset("classic")
	a.Width = 1

	b := GetPreset("classic")
	if b.Width == 1 {
		t.Error("mutating a returned preset must not change the table")
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("no-such") != nil {
		t.Error("expected nil for unknown preset")
	}
}
