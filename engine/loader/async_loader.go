package loader

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"go.uber.org/zap"
)

// LoadCallback receives the outcome of an asynchronous load. Exactly one of m and err is non-nil.
type LoadCallback func(m model.Model, err error)

// Dispatcher hands a function to the goroutine that owns the caller's state (typically the frame driver's Post).
type Dispatcher func(task func())

// asyncLoader is the implementation of the AsyncLoader interface.
type asyncLoader struct {
	loader   Loader
	dispatch Dispatcher
	log      *zap.Logger

	workers int
	pool    worker.DynamicWorkerPool
	once    sync.Once

	nextID  atomic.Int64
	pending atomic.Int64
}

// AsyncLoader runs Loader.Load calls on a worker pool and delivers each result through a Dispatcher,
// so completions are observed on the dispatcher's goroutine rather than the worker's.
// Every request is independent: a failing file never affects its siblings and is never retried.
type AsyncLoader interface {
	// LoadAsync schedules a load and returns immediately.
	// done is invoked exactly once with either the model or the error, via the dispatcher.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - done: completion callback
	LoadAsync(path string, done LoadCallback)

	// Pending returns the number of loads whose callbacks have not yet been dispatched.
	//
	// Returns:
	//   - int: in-flight load count
	Pending() int

	// Loader returns the synchronous loader backing this instance.
	//
	// Returns:
	//   - Loader: the wrapped loader
	Loader() Loader
}

var _ AsyncLoader = &asyncLoader{}

// NewAsyncLoader wraps a Loader with a worker pool.
// A nil dispatch invokes callbacks directly on the worker goroutine.
//
// Parameters:
//   - l: the synchronous loader
//   - dispatch: delivers completions to the owning goroutine
//   - options: functional options
//
// Returns:
//   - AsyncLoader: the async loader
func NewAsyncLoader(l Loader, dispatch Dispatcher, options ...AsyncLoaderBuilderOption) AsyncLoader {
	a := &asyncLoader{
		loader:   l,
		dispatch: dispatch,
		log:      zap.NewNop(),
		workers:  4,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.dispatch == nil {
		a.dispatch = func(task func()) { task() }
	}
	return a
}

func (a *asyncLoader) LoadAsync(path string, done LoadCallback) {
	// The pool is created lazily so that options can set the worker count first
	// and loaders that never load never spawn workers.
	a.once.Do(func() {
		a.pool = worker.NewDynamicWorkerPool(a.workers, 64, 1*time.Second)
	})

	a.pending.Add(1)
	id := int(a.nextID.Add(1))
	a.log.Debug("load scheduled", zap.String("path", path), zap.Int("task", id))

	a.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			m, err := a.loadRecovered(path)
			a.dispatch(func() {
				a.pending.Add(-1)
				done(m, err)
			})
			return m, err
		},
	})
}

func (a *asyncLoader) Pending() int {
	return int(a.pending.Load())
}

func (a *asyncLoader) Loader() Loader {
	return a.loader
}

// loadRecovered turns a panicking import into an error so one malformed file cannot take down the pool.
func (a *asyncLoader) loadRecovered(path string) (m model.Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("failed to load %s: importer panic: %v", path, r)
		}
	}()
	return a.loader.Load(path)
}
