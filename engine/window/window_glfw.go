package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errWindowNotInitialized = errors.New("window is not initialized")

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates a GLFW window without a client API (WebGPU brings its own)
// and routes its events to the engineWindow callbacks.
// GLFW must be driven from the thread that created it, so the calling goroutine is locked to its thread.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create glfw window: %w", err)
	}

	gw := &glfwWindow{parent: w, window: win, running: true}
	w.internalWindow = gw

	win.SetKeyCallback(gw.onKey)
	win.SetScrollCallback(gw.onScroll)
	win.SetMouseButtonCallback(gw.onMouseButton)
	win.SetCursorPosCallback(gw.onCursorPos)
	// Framebuffer size, not window size: they differ on high-DPI displays and the surface needs pixels.
	win.SetFramebufferSizeCallback(gw.onFramebufferSize)
	win.SetSizeLimits(sizeLimit(w.minWidth), sizeLimit(w.minHeight), sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// onKey closes on Escape and forwards presses and releases. Auto-repeat is dropped
// so a held key triggers its action once.
func (gw *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w := gw.parent
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.running = false
		gw.window.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press:
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	case glfw.Release:
		if w.onKeyUp != nil {
			w.onKeyUp(uint32(key))
		}
	}
}

func (gw *glfwWindow) onScroll(_ *glfw.Window, _, yoff float64) {
	if gw.parent.onScroll != nil {
		gw.parent.onScroll(float32(yoff))
	}
}

func (gw *glfwWindow) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := mouseButton(button)
	if !ok {
		return
	}
	x, y := gw.window.GetCursorPos()
	w := gw.parent
	switch {
	case action == glfw.Press && w.onMouseDown != nil:
		w.onMouseDown(b, int32(x), int32(y))
	case action == glfw.Release && w.onMouseUp != nil:
		w.onMouseUp(b, int32(x), int32(y))
	}
}

func (gw *glfwWindow) onCursorPos(_ *glfw.Window, x, y float64) {
	if gw.parent.onMouseMove != nil {
		gw.parent.onMouseMove(int32(x), int32(y))
	}
}

func (gw *glfwWindow) onFramebufferSize(_ *glfw.Window, width, height int) {
	w := gw.parent
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// platformGetSurfaceDescriptor bridges the GLFW window to a WebGPU surface via wgpuglfw.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the window and terminates GLFW.
//
// Returns:
//   - error: errWindowNotInitialized if there is no window
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return errWindowNotInitialized
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

// platformTime reads the GLFW timer in seconds since glfw.Init.
func platformTime() float64 {
	return glfw.GetTime()
}

func mouseButton(b glfw.MouseButton) (MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle, true
	}
	return 0, false
}

// sizeLimit maps an unset (non-positive) limit to glfw.DontCare.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}
