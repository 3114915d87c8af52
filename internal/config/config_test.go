package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies != dynamo.DefaultBodyCount {
		t.Errorf("expected %d bodies, got %d", dynamo.DefaultBodyCount, cfg.Bodies)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.World().Validate(); err != nil {
		t.Errorf("default world invalid: %v", err)
	}
}

func TestWorld(t *testing.T) {
	cfg := &Config{
		Bodies:   3,
		Radius:   RangeConfig{5, 10},
		Speed:    RangeConfig{1, 2},
		Viewport: ViewportConfig{300, 200},
		Visuals:  4,
		Seed:     99,
	}

	want := dynamo.Config{
		BodyCount: 3, RadiusMin: 5, RadiusMax: 10,
		Viewport: dynamo.Viewport{Width: 300, Height: 200},
		SpeedMin: 1, SpeedMax: 2, Visuals: 4, Seed: 99,
	}
	if got := cfg.World(); got != want {
		t.Errorf("World() = %+v, want %+v", got, want)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", cfg.Bodies)
	}

	cfg.Bodies = 500
	if GetPreset("pair").Bodies != 2 {
		t.Error("mutating a returned preset changed the registry")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).World().Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "ballpit" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")

	cfg := GetPreset("marbles")
	cfg.Seed = 1234
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("bodies: 7\nradius:\n  max: 45\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Bodies != 7 || cfg.Radius.Max != 45 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Radius.Min != dynamo.DefaultRadiusMin || cfg.Viewport.Width != dynamo.DefaultWidth {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInto_OverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("seed: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("crowded")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 8 || cfg.Bodies != 60 {
		t.Errorf("expected preset bodies with file seed, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("bodies: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
