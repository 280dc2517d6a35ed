package loader

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

var errBroken = errors.New("broken file")

// fakeBackend fails for paths listed in broken and panics for paths listed in panics.
type fakeBackend struct {
	broken map[string]bool
	panics map[string]bool
}

func (f *fakeBackend) Load(path string) (model.Model, error) {
	if f.panics[path] {
		panic("corrupt accessor")
	}
	if f.broken[path] {
		return nil, errBroken
	}
	return model.NewModel(model.WithName(path)), nil
}

func (f *fakeBackend) LoadReader(name string, r io.Reader) (model.Model, error) {
	return nil, errBroken
}

func newFakeLoader(b *fakeBackend) Loader {
	l := NewLoader(BackendTypeGLTF).(*loader)
	l.backend = b
	return l
}

type result struct {
	path string
	m    model.Model
	err  error
}

func TestAsyncLoaderIsolatesFailures(t *testing.T) {
	paths := []string{"a.glb", "b.glb", "c.glb", "d.glb", "e.glb", "f.glb"}
	backend := &fakeBackend{
		broken: map[string]bool{"c.glb": true},
		panics: map[string]bool{"e.glb": true},
	}

	var mu sync.Mutex
	var dispatched int
	dispatch := func(task func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		task()
	}

	al := NewAsyncLoader(newFakeLoader(backend), dispatch, WithWorkers(2))
	results := make(chan result, len(paths))
	for _, p := range paths {
		path := p
		al.LoadAsync(path, func(m model.Model, err error) {
			results <- result{path: path, m: m, err: err}
		})
	}

	got := make(map[string]result)
	timeout := time.After(5 * time.Second)
	for len(got) < len(paths) {
		select {
		case r := <-results:
			got[r.path] = r
		case <-timeout:
			t.Fatalf("timed out with %d of %d results", len(got), len(paths))
		}
	}

	for _, p := range paths {
		r := got[p]
		switch p {
		case "c.glb":
			if !errors.Is(r.err, errBroken) || r.m != nil {
				t.Errorf("%s: expected errBroken, got (%v, %v)", p, r.m, r.err)
			}
		case "e.glb":
			if r.err == nil || r.m != nil {
				t.Errorf("%s: expected a recovered panic error, got (%v, %v)", p, r.m, r.err)
			}
		default:
			if r.err != nil || r.m == nil || r.m.Name() != p {
				t.Errorf("%s: expected a model, got (%v, %v)", p, r.m, r.err)
			}
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if dispatched != len(paths) {
		t.Errorf("dispatched %d callbacks, want %d", dispatched, len(paths))
	}
	if al.Pending() != 0 {
		t.Errorf("Pending = %d after all callbacks ran", al.Pending())
	}
}

func TestAsyncLoaderUnsupportedFormat(t *testing.T) {
	al := NewAsyncLoader(NewLoader(BackendTypeGLTF), nil)
	done := make(chan error, 1)
	al.LoadAsync("clip.fbx", func(m model.Model, err error) { done <- err })
	select {
	case err := <-done:
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback never ran")
	}
}
