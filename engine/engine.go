package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-showreel/engine/driver"
	"github.com/Carmen-Shannon/oxy-showreel/engine/profiler"
	"github.com/Carmen-Shannon/oxy-showreel/engine/window"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// ErrNoDriver is returned by Run when the engine was built without a frame driver.
var ErrNoDriver = errors.New("engine has no frame driver")

// engine implements the Engine interface.
// Runs the frame driver inside the window's message loop.
type engine struct {
	window window.Window
	driver driver.Driver
	logger *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)

	quitRequested atomic.Bool
	closeOnce     sync.Once
}

// Engine is the main entry point for the engine.
// It owns the window message loop and advances the frame driver once per loop iteration,
// so every tick runs on the thread that called Run.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Driver returns the frame driver advanced by the message loop.
	//
	// Returns:
	//   - driver.Driver: the frame driver
	Driver() driver.Driver

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run wires window resize into the driver and runs the message loop.
	// Blocks until the window closes or Quit is called, then closes the window.
	//
	// Returns:
	//   - error: ErrNoWindow or ErrNoDriver if the engine is incomplete
	Run() error

	// Quit asks the message loop to stop after the current frame.
	// Safe to call from any goroutine and multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zap.NewNop(),
		sleep:  time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Driver() driver.Driver {
	return e.driver
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	if e.driver == nil {
		return ErrNoDriver
	}

	// Resize notifications arrive from the platform; apply them on the next tick.
	e.window.SetResizeCallback(func(width, height int) {
		e.driver.Post(func() { e.driver.Resize(width, height) })
	})
	e.window.SetUpdateCallback(e.frame)

	e.logger.Info("engine running",
		zap.Int("width", e.window.Width()),
		zap.Int("height", e.window.Height()),
		zap.Duration("frame_limit", e.renderFrameLimit),
	)
	e.window.ProcessMessages()
	e.close()
	e.logger.Info("engine stopped", zap.Uint64("frames", e.driver.Frames()))
	return nil
}

// frame is the message loop's per-iteration callback.
func (e *engine) frame() {
	if e.quitRequested.Load() {
		e.close()
		return
	}

	start := time.Now()
	e.driver.Tick()

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

func (e *engine) close() {
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("window close failed", zap.Error(err))
		}
	})
}

func (e *engine) Quit() {
	e.quitRequested.Store(true)
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
