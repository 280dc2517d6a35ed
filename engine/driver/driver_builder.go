package driver

import (
	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"go.uber.org/zap"
)

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*driver)

// WithClock sets the time source read at the start of every tick.
//
// Parameters:
//   - c: the clock, typically the window's
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithClock(c Clock) DriverBuilderOption {
	return func(d *driver) {
		d.clock = c
	}
}

// WithUpdaters registers updaters in the order given.
//
// Parameters:
//   - updaters: the per-frame updaters
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithUpdaters(updaters ...Updater) DriverBuilderOption {
	return func(d *driver) {
		for _, u := range updaters {
			if u != nil {
				d.updaters = append(d.updaters, u)
			}
		}
	}
}

// WithRenderer sets the renderer invoked once per tick.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithRenderer(r Renderer) DriverBuilderOption {
	return func(d *driver) {
		d.renderer = r
	}
}

// WithScene sets the scene handed to the renderer.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithScene(s scene.Scene) DriverBuilderOption {
	return func(d *driver) {
		d.scene = s
	}
}

// WithCamera sets the camera handed to the renderer and resized by Resize.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithCamera(c camera.Camera) DriverBuilderOption {
	return func(d *driver) {
		d.camera = c
	}
}

// WithLogger sets the logger used for render failures.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) DriverBuilderOption {
	return func(d *driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}
