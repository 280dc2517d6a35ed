package animator

import "go.uber.org/zap"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithFadeDuration sets the cross-fade length used by SwitchTo.
//
// Parameters:
//   - seconds: fade length (values <= 0 keep the default)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFadeDuration(seconds float32) ControllerBuilderOption {
	return func(c *controller) {
		if seconds > 0 {
			c.fadeDuration = seconds
		}
	}
}

// WithMaxFadingOut caps the number of clips fading out at once; the oldest are stopped first.
// 0 leaves fade-outs uncapped.
//
// Parameters:
//   - n: maximum concurrent fade-outs
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithMaxFadingOut(n int) ControllerBuilderOption {
	return func(c *controller) {
		c.maxFadingOut = max(n, 0)
	}
}

// WithTimeScale sets the playback speed applied to the mixer created by Attach.
//
// Parameters:
//   - scale: speed multiplier (1 = real time)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTimeScale(scale float32) ControllerBuilderOption {
	return func(c *controller) {
		c.timeScale = scale
	}
}

// WithLogger sets the controller's logger.
//
// Parameters:
//   - log: the logger (nil keeps the no-op default)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(log *zap.Logger) ControllerBuilderOption {
	return func(c *controller) {
		if log != nil {
			c.log = log
		}
	}
}
