package driver

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"go.uber.org/zap"
)

// Clock reports monotonic time in seconds.
type Clock interface {
	Time() float64
}

// Updater is advanced once per tick with the elapsed seconds since the previous tick.
type Updater interface {
	Update(deltaTime float32)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(deltaTime float32)

// Update calls f(deltaTime).
func (f UpdaterFunc) Update(deltaTime float32) {
	f(deltaTime)
}

// Renderer draws one frame of a scene through a camera.
type Renderer interface {
	Render(s scene.Scene, c camera.Camera) error
	Resize(width, height int)
}

// driver implements the Driver interface.
type driver struct {
	mu *sync.Mutex

	clock    Clock
	updaters []Updater
	renderer Renderer
	scene    scene.Scene
	camera   camera.Camera
	logger   *zap.Logger

	lastTime float64
	started  bool
	frames   uint64

	pending []func()
}

// Driver runs the per-frame update sequence on a single frame context.
// Every state change to sequencing state happens inside Tick; work originating on other goroutines
// (load completions, HTTP panel requests, window callbacks) is handed over with Post.
type Driver interface {
	// Tick advances one frame.
	// Reads the clock, computes the delta (0 on the first tick, never negative), runs tasks queued
	// via Post in submission order, updates every Updater in registration order and renders once.
	// Render errors are logged and do not stop the driver.
	//
	// Returns:
	//   - float32: the delta used for this frame in seconds
	Tick() float32

	// Post queues a task to run at the start of the next Tick.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - task: the function to run on the frame context
	Post(task func())

	// AddUpdater appends an Updater to the per-frame sequence.
	//
	// Parameters:
	//   - u: the updater to register
	AddUpdater(u Updater)

	// Resize applies a new output size to the camera aspect and the renderer.
	// Zero sizes (minimised windows) are ignored.
	//
	// Parameters:
	//   - width: output width in pixels
	//   - height: output height in pixels
	Resize(width, height int)

	// Frames returns the number of completed ticks.
	//
	// Returns:
	//   - uint64: the tick count
	Frames() uint64
}

var _ Driver = &driver{}

// NewDriver creates a Driver with the provided options.
// Without WithClock the driver uses wall-clock time since construction.
//
// Parameters:
//   - options: functional options for driver configuration
//
// Returns:
//   - Driver: the newly created driver
func NewDriver(options ...DriverBuilderOption) Driver {
	d := &driver{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(d)
	}
	if d.clock == nil {
		d.clock = newWallClock()
	}
	return d
}

func (d *driver) Tick() float32 {
	now := d.clock.Time()

	d.mu.Lock()
	var dt float32
	if d.started {
		dt = float32(now - d.lastTime)
		if dt < 0 {
			dt = 0
		}
	}
	d.started = true
	d.lastTime = now
	tasks := d.pending
	d.pending = nil
	updaters := d.updaters
	d.mu.Unlock()

	for _, task := range tasks {
		task()
	}

	for _, u := range updaters {
		u.Update(dt)
	}

	if d.renderer != nil {
		if err := d.renderer.Render(d.scene, d.camera); err != nil {
			d.logger.Warn("render failed", zap.Error(err), zap.Uint64("frame", d.Frames()))
		}
	}

	d.mu.Lock()
	d.frames++
	d.mu.Unlock()
	return dt
}

func (d *driver) Post(task func()) {
	if task == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, task)
}

func (d *driver) AddUpdater(u Updater) {
	if u == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updaters = append(d.updaters, u)
}

func (d *driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if d.camera != nil {
		d.camera.SetAspect(float32(width) / float32(height))
	}
	if d.renderer != nil {
		d.renderer.Resize(width, height)
	}
	d.logger.Debug("output resized", zap.Int("width", width), zap.Int("height", height))
}

func (d *driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Time() float64 {
	return time.Since(c.start).Seconds()
}
