// Package input maps window events onto the orbit camera and the control panel.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/panel"
	"github.com/Carmen-Shannon/oxy-showreel/engine/window"
)

// Input turns window events into orbit, zoom and pan requests on the camera controller
// and number keys into panel actions. It is registered with the driver so held pan keys
// move the camera at a frame-rate independent speed.
type Input struct {
	mu *sync.Mutex

	controller camera.CameraController
	panel      panel.Panel

	held     map[uint32]bool
	dragging bool
	lastX    int32
	lastY    int32
}

// NewInput creates an input handler. p may be nil.
func NewInput(ctrl camera.CameraController, p panel.Panel) *Input {
	return &Input{
		mu:         &sync.Mutex{},
		controller: ctrl,
		panel:      p,
		held:       map[uint32]bool{},
	}
}

// Bind installs the handler's callbacks on w.
func (in *Input) Bind(w window.Window) {
	w.SetKeyDownCallback(in.KeyDown)
	w.SetKeyUpCallback(in.KeyUp)
	w.SetMouseDownCallback(in.MouseDown)
	w.SetMouseUpCallback(in.MouseUp)
	w.SetMouseMoveCallback(in.MouseMove)
	w.SetScrollCallback(in.Scroll)
}

func (in *Input) KeyDown(keyCode uint32) {
	if in.panel != nil && in.panel.HandleKey(keyCode) {
		return
	}
	in.mu.Lock()
	in.held[keyCode] = true
	in.mu.Unlock()
}

func (in *Input) KeyUp(keyCode uint32) {
	in.mu.Lock()
	delete(in.held, keyCode)
	in.mu.Unlock()
}

// MouseDown starts an orbit drag on the left or middle button.
func (in *Input) MouseDown(button window.MouseButton, x, y int32) {
	if button == window.MouseButtonRight {
		return
	}
	in.mu.Lock()
	in.dragging = true
	in.lastX, in.lastY = x, y
	in.mu.Unlock()
}

func (in *Input) MouseUp(button window.MouseButton, _, _ int32) {
	if button == window.MouseButtonRight {
		return
	}
	in.mu.Lock()
	in.dragging = false
	in.mu.Unlock()
}

func (in *Input) MouseMove(x, y int32) {
	in.mu.Lock()
	if !in.dragging {
		in.mu.Unlock()
		return
	}
	dx, dy := float32(x-in.lastX), float32(y-in.lastY)
	in.lastX, in.lastY = x, y
	in.mu.Unlock()

	s := in.controller.MouseSensitivity()
	in.controller.Rotate(-dx*s, dy*s)
}

func (in *Input) Scroll(delta float32) {
	in.controller.Zoom(delta)
}

// Update pans the camera for every held WASD/QE key.
func (in *Input) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	in.mu.Lock()
	var right, up float32
	if in.held[common.KeyD] {
		right++
	}
	if in.held[common.KeyA] {
		right--
	}
	if in.held[common.KeyE] || in.held[common.KeyW] {
		up++
	}
	if in.held[common.KeyQ] || in.held[common.KeyS] {
		up--
	}
	in.mu.Unlock()

	if right != 0 {
		in.controller.PanRight(right * deltaTime)
	}
	if up != 0 {
		in.controller.PanUp(up * deltaTime)
	}
}
