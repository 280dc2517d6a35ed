package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeBackend struct {
	configured [][2]int
	clears     []wgpu.Color
	presents   int
	beginErr   error
	mode       PresentMode
	released   bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}
func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.mode = mode }
func (f *fakeBackend) BeginFrame(c wgpu.Color) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.clears = append(f.clears, c)
	return nil
}
func (f *fakeBackend) EndFrame() error { return nil }
func (f *fakeBackend) Present()        { f.presents++ }
func (f *fakeBackend) Release()        { f.released = true }

func newTestRenderer(b *fakeBackend) *renderer {
	return &renderer{mu: &sync.Mutex{}, backend: b, width: 800, height: 600}
}

func TestRenderClearsToSceneBackground(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)
	s := scene.NewScene("s", scene.WithBackground([4]float32{0.5, 0.25, 0, 1}))

	if err := r.Render(s, nil); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if len(b.clears) != 1 || b.clears[0] != (wgpu.Color{R: 0.5, G: 0.25, B: 0, A: 1}) {
		t.Errorf("clears = %v, want one clear to the background", b.clears)
	}
	if b.presents != 1 {
		t.Errorf("presents = %d, want 1", b.presents)
	}
}

func TestRenderWrapsBackendErrors(t *testing.T) {
	lost := errors.New("surface lost")
	b := &fakeBackend{beginErr: lost}
	r := newTestRenderer(b)

	if err := r.Render(nil, nil); !errors.Is(err, lost) {
		t.Errorf("Render() = %v, want wrapped surface lost", err)
	}
	if b.presents != 0 {
		t.Error("presented a frame that failed to begin")
	}
}

func TestMinimisedSurfaceSkipsFrames(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)

	r.Resize(0, 0)
	if err := r.Render(nil, nil); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if len(b.clears) != 0 || len(b.configured) != 0 {
		t.Errorf("clears = %d, configured = %v, want nothing while minimised", len(b.clears), b.configured)
	}

	r.Resize(1024, 768)
	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}
	if err := r.Render(nil, nil); err != nil || len(b.clears) != 1 {
		t.Errorf("Render() after restore = %v with %d clears", err, len(b.clears))
	}
}

func TestSetPresentModeReconfigures(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)
	r.SetPresentMode(PresentModeUncapped)

	if b.mode != PresentModeUncapped || len(b.configured) != 1 {
		t.Errorf("mode = %v, configured = %v", b.mode, b.configured)
	}
	r.Release()
	if !b.released {
		t.Error("Release() did not reach the backend")
	}
}
