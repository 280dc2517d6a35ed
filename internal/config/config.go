// Package config loads the showreel configuration from YAML on top of compiled-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete showreel configuration.
type Config struct {
	Log        LogConfig         `yaml:"log"`
	Window     WindowConfig      `yaml:"window"`
	Panel      PanelConfig       `yaml:"panel"`
	Stage      StageConfig       `yaml:"stage"`
	Camera     CameraConfig      `yaml:"camera"`
	Character  CharacterConfig   `yaml:"character"`
	Auxiliary  []AuxiliaryClip   `yaml:"auxiliary"`
	Viewpoints []ViewpointConfig `yaml:"viewpoints"`
	Animation  AnimationConfig   `yaml:"animation"`
	Loader     LoaderConfig      `yaml:"loader"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FrameLimit float64 `yaml:"frame_limit"`
	VSync      bool    `yaml:"vsync"`
	MSAA       bool    `yaml:"msaa"`
	Profile    bool    `yaml:"profile"`
}

// PanelConfig controls the HTTP control panel. An empty Addr disables it.
type PanelConfig struct {
	Addr string `yaml:"addr"`
}

type StageConfig struct {
	Background string           `yaml:"background"`
	Floor      FloorConfig      `yaml:"floor"`
	Ambient    LightConfig      `yaml:"ambient"`
	Sun        DirectionalLight `yaml:"sun"`
}

type FloorConfig struct {
	Width float32 `yaml:"width"`
	Depth float32 `yaml:"depth"`
	Color string  `yaml:"color"`
}

type LightConfig struct {
	Color     string  `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
}

type DirectionalLight struct {
	Color     string       `yaml:"color"`
	Intensity float32      `yaml:"intensity"`
	Position  [3]float32   `yaml:"position"`
	Shadow    ShadowConfig `yaml:"shadow"`
}

type ShadowConfig struct {
	MapSize int     `yaml:"map_size"`
	Far     float32 `yaml:"far"`
	Extent  float32 `yaml:"extent"`
	Bias    float32 `yaml:"bias"`
}

type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov     float32    `yaml:"fov"`
	Near    float32    `yaml:"near"`
	Far     float32    `yaml:"far"`
	Start   [3]float32 `yaml:"start"`
	Target  [3]float32 `yaml:"target"`
	Damping float32    `yaml:"damping"`
}

type CharacterConfig struct {
	Path     string     `yaml:"path"`
	Scale    float32    `yaml:"scale"`
	Position [3]float32 `yaml:"position"`
}

// AuxiliaryClip is one extra animation file; its position in the list is its slot.
type AuxiliaryClip struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type ViewpointConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Duration float32    `yaml:"duration"`
	Delay    float32    `yaml:"delay"`
}

type AnimationConfig struct {
	Fade         float32 `yaml:"fade"`
	TimeScale    float32 `yaml:"time_scale"`
	MaxFadingOut int     `yaml:"max_fading_out"`
}

type LoaderConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aux := []string{
		"Push Up",
		"Flair",
		"Run To Flip",
		"Swimming To Edge",
		"Northern Soul Spin Combo",
		"Northern Soul Floor Combo",
	}
	auxiliary := make([]AuxiliaryClip, len(aux))
	for i, name := range aux {
		auxiliary[i] = AuxiliaryClip{Name: name, Path: filepath.Join("Character", name+".glb")}
	}

	return &Config{
		Log: LogConfig{Level: "info"},
		Window: WindowConfig{
			Title:  "Showreel",
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   true,
		},
		Panel: PanelConfig{Addr: "127.0.0.1:8088"},
		Stage: StageConfig{
			Background: "#000000",
			Floor:      FloorConfig{Width: 10, Depth: 10, Color: "#444444"},
			Ambient:    LightConfig{Color: "#ffffff", Intensity: 2.4},
			Sun: DirectionalLight{
				Color:     "#ffffff",
				Intensity: 1.8,
				Position:  [3]float32{5, 5, 5},
				Shadow:    ShadowConfig{MapSize: 1024, Far: 15, Extent: 7, Bias: -0.005},
			},
		},
		Camera: CameraConfig{
			Fov:     75,
			Near:    0.1,
			Far:     100,
			Start:   [3]float32{0.22, 1.020, 3.02},
			Target:  [3]float32{0, 0.75, 0},
			Damping: 0.05,
		},
		Character: CharacterConfig{
			Path:     filepath.Join("Character", "Hip Hop Dancing(skin).glb"),
			Scale:    0.01,
			Position: [3]float32{-0.2, 0, -0.2},
		},
		Auxiliary: auxiliary,
		Viewpoints: []ViewpointConfig{
			{Name: "front", Position: [3]float32{0.22, 1.020, 3.02}, Duration: 2, Delay: 3},
			{Name: "left", Position: [3]float32{-3.38, 1.020, -0.18}, Duration: 2},
			{Name: "back", Position: [3]float32{-0.18, 1.020, -2.979}, Duration: 2},
			{Name: "right", Position: [3]float32{3.22, 1.020, -0.180}, Duration: 2},
			{Name: "wide", Position: [3]float32{0.22, 1.019, 7.80}, Duration: 2},
			{Name: "close", Position: [3]float32{-0.05, 1.019, 3.82}, Duration: 2},
		},
		Animation: AnimationConfig{Fade: 0.5, TimeScale: 1},
		Loader:    LoaderConfig{Workers: 4},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default values;
// a list present in the file (viewpoints, auxiliary) replaces the default list entirely.
// An empty path returns the validated defaults.
//
// Parameters:
//   - path: the YAML file, or "" for defaults only
//
// Returns:
//   - *Config: the merged configuration
//   - error: read, parse or validation failure
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the showreel cannot run with.
func (c *Config) Validate() error {
	if len(c.Viewpoints) == 0 {
		return fmt.Errorf("%w: at least one viewpoint is required", ErrInvalidConfig)
	}
	for i, vp := range c.Viewpoints {
		if vp.Duration < 0 || vp.Delay < 0 {
			return fmt.Errorf("%w: viewpoint %d (%s) has negative timing", ErrInvalidConfig, i, vp.Name)
		}
	}
	if c.Animation.Fade <= 0 {
		return fmt.Errorf("%w: animation fade must be positive, got %v", ErrInvalidConfig, c.Animation.Fade)
	}
	if c.Animation.TimeScale < 0 {
		return fmt.Errorf("%w: animation time scale must not be negative", ErrInvalidConfig)
	}
	if c.Character.Path == "" {
		return fmt.Errorf("%w: character path is required", ErrInvalidConfig)
	}
	for i, aux := range c.Auxiliary {
		if aux.Path == "" {
			return fmt.Errorf("%w: auxiliary clip %d has no path", ErrInvalidConfig, i)
		}
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping >= 1 {
		return fmt.Errorf("%w: camera damping must be in [0, 1)", ErrInvalidConfig)
	}
	for name, color := range map[string]string{
		"stage.background":    c.Stage.Background,
		"stage.floor.color":   c.Stage.Floor.Color,
		"stage.ambient.color": c.Stage.Ambient.Color,
		"stage.sun.color":     c.Stage.Sun.Color,
	} {
		if _, ok := common.HexColor(color); !ok {
			return fmt.Errorf("%w: %s %q is not a #rrggbb colour", ErrInvalidConfig, name, color)
		}
	}
	if c.Loader.Workers < 1 {
		return fmt.Errorf("%w: loader workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Color parses a validated colour field. Malformed values yield opaque black.
func Color(hex string) [4]float32 {
	rgba, ok := common.HexColor(hex)
	if !ok {
		return [4]float32{0, 0, 0, 1}
	}
	return rgba
}
