package viewpoint

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// SequencerBuilderOption is a functional option for configuring a Sequencer.
type SequencerBuilderOption func(*sequencer)

// WithEasing replaces the default ease-in/ease-out curve (quadratic in-out).
//
// Parameters:
//   - fn: the easing function
//
// Returns:
//   - SequencerBuilderOption: option function to apply
func WithEasing(fn ease.TweenFunc) SequencerBuilderOption {
	return func(s *sequencer) {
		if fn != nil {
			s.easing = fn
		}
	}
}

// WithLogger sets the sequencer's logger.
//
// Parameters:
//   - log: the logger (nil keeps the no-op default)
//
// Returns:
//   - SequencerBuilderOption: option function to apply
func WithLogger(log *zap.Logger) SequencerBuilderOption {
	return func(s *sequencer) {
		if log != nil {
			s.log = log
		}
	}
}
