package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"github.com/Carmen-Shannon/oxy-showreel/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedBackend is returned by NewRenderer for unknown backend types.
var ErrUnsupportedBackend = errors.New("unsupported renderer backend")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	msaa                 MSAASampleCount
}

// Renderer presents frames of a scene to a window surface.
//
// Each Render call clears the surface to the scene's background colour and presents it.
// Mesh, skinning and shadow passes are not drawn.
type Renderer interface {
	// Render draws one frame of the scene as seen through the camera.
	// A nil scene clears to black.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - c: the viewing camera
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	Render(s scene.Scene, c camera.Camera) error

	// Resize configures the underlying backend to handle a new surface size.
	// Zero sizes (minimised windows) are ignored until a non-zero size arrives.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the surface present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - width, height: the surface size
	Size() (width, height int)

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - w: the window providing the surface and initial size
//   - options: functional options for the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if the GPU device or surface could not be created
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		msaa:        MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBackend, backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.width, r.height = w.Width(), w.Height()
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) Render(s scene.Scene, _ camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width == 0 || r.height == 0 {
		return nil
	}

	clearColor := wgpu.Color{R: 0, G: 0, B: 0, A: 1}
	if s != nil {
		bg := s.Background()
		clearColor = wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: float64(bg[3])}
	}

	if err := r.backend.BeginFrame(clearColor); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		r.width, r.height = 0, 0
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return
	}
	r.width, r.height = width, height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		_ = r.backend.ConfigureSurface(r.width, r.height)
	}
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		r.backend.Release()
	}
}
