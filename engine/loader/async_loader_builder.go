package loader

import "go.uber.org/zap"

// AsyncLoaderBuilderOption is a functional option for configuring an AsyncLoader.
type AsyncLoaderBuilderOption func(*asyncLoader)

// WithWorkers sets the maximum number of concurrent load workers.
//
// Parameters:
//   - n: worker count (values <= 0 keep the default of 4)
//
// Returns:
//   - AsyncLoaderBuilderOption: option function to apply
func WithWorkers(n int) AsyncLoaderBuilderOption {
	return func(a *asyncLoader) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithAsyncLogger sets the logger used for scheduling diagnostics.
//
// Parameters:
//   - log: the logger (nil keeps the no-op default)
//
// Returns:
//   - AsyncLoaderBuilderOption: option function to apply
func WithAsyncLogger(log *zap.Logger) AsyncLoaderBuilderOption {
	return func(a *asyncLoader) {
		if log != nil {
			a.log = log
		}
	}
}
