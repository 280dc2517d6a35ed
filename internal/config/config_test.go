package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if len(cfg.Viewpoints) != 6 || cfg.Viewpoints[0].Delay != 3 {
		t.Errorf("viewpoints = %+v, want six with a 3s first delay", cfg.Viewpoints)
	}
	if len(cfg.Auxiliary) != 6 || cfg.Auxiliary[2].Name != "Run To Flip" {
		t.Errorf("auxiliary = %+v", cfg.Auxiliary)
	}
	if cfg.Animation.Fade != 0.5 {
		t.Errorf("fade = %v, want 0.5", cfg.Animation.Fade)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
viewpoints:
  - name: only
    position: [1, 2, 3]
    duration: 1.5
animation:
  time_scale: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Viewpoints) != 1 || cfg.Viewpoints[0].Position != [3]float32{1, 2, 3} {
		t.Errorf("viewpoints = %+v, want the single file entry", cfg.Viewpoints)
	}
	if cfg.Animation.TimeScale != 2 || cfg.Animation.Fade != 0.5 {
		t.Errorf("animation = %+v, want time_scale 2 and default fade", cfg.Animation)
	}
	if cfg.Camera.Fov != 75 {
		t.Errorf("camera fov = %v, want default 75", cfg.Camera.Fov)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no viewpoints", func(c *Config) { c.Viewpoints = nil }},
		{"negative delay", func(c *Config) { c.Viewpoints[1].Delay = -1 }},
		{"zero fade", func(c *Config) { c.Animation.Fade = 0 }},
		{"bad colour", func(c *Config) { c.Stage.Floor.Color = "grey" }},
		{"inverted planes", func(c *Config) { c.Camera.Far = 0.01 }},
		{"damping of one", func(c *Config) { c.Camera.Damping = 1 }},
		{"empty aux path", func(c *Config) { c.Auxiliary[0].Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error")
	}
	if _, err := Load(writeFile(t, "viewpoints: {")); err == nil {
		t.Error("Load(malformed) = nil error")
	}
}

func TestColor(t *testing.T) {
	if got := Color("#444444"); got[0] != float32(0x44)/255 || got[3] != 1 {
		t.Errorf("Color(#444444) = %v", got)
	}
	if got := Color("nope"); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("Color(nope) = %v, want opaque black", got)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "showreel.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
