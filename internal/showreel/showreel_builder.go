package showreel

import (
	"github.com/Carmen-Shannon/oxy-showreel/engine/viewpoint"
	"go.uber.org/zap"
)

// ShowreelBuilderOption is a functional option for NewShowreel.
type ShowreelBuilderOption func(*showreel)

// WithCharacterTransform sets the uniform scale and position of the character object.
//
// Parameters:
//   - scale: uniform scale factor
//   - x, y, z: world position
//
// Returns:
//   - ShowreelBuilderOption: a function that applies the transform option to a showreel
func WithCharacterTransform(scale, x, y, z float32) ShowreelBuilderOption {
	return func(r *showreel) {
		if scale > 0 {
			r.scale = scale
		}
		r.position = [3]float32{x, y, z}
	}
}

// WithAuxiliary sets the extra clip files. A file's position in the list is its slot.
//
// Parameters:
//   - paths: the clip files in slot order
//
// Returns:
//   - ShowreelBuilderOption: a function that applies the auxiliary option to a showreel
func WithAuxiliary(paths ...string) ShowreelBuilderOption {
	return func(r *showreel) {
		r.auxiliaryPath = append([]string(nil), paths...)
	}
}

// WithSequencer reports the camera tour in Status.
func WithSequencer(s viewpoint.Sequencer) ShowreelBuilderOption {
	return func(r *showreel) {
		r.sequencer = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ShowreelBuilderOption {
	return func(r *showreel) {
		if logger != nil {
			r.logger = logger
		}
	}
}
