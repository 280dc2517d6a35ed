package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/panel"
	"github.com/Carmen-Shannon/oxy-showreel/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func newOrbit() camera.CameraController {
	return camera.NewCameraController(
		camera.WithTarget(0, 0.75, 0),
		camera.WithPosition(0.22, 1.02, 3.02),
		camera.WithDamping(0),
		camera.WithMouseSensitivity(0.01),
		camera.WithPanSpeed(1),
	)
}

func TestDigitKeysInvokePanelActions(t *testing.T) {
	p := panel.NewPanel()
	var ran []int
	for i := 0; i < 3; i++ {
		i := i
		p.Register(i, "x", func() { ran = append(ran, i) })
	}
	in := NewInput(newOrbit(), p)

	in.KeyDown(common.Key2)
	in.KeyDown(common.Key9)
	if len(ran) != 1 || ran[0] != 1 {
		t.Errorf("ran = %v, want [1]", ran)
	}
}

func TestDragOrbits(t *testing.T) {
	ctrl := newOrbit()
	in := NewInput(ctrl, nil)
	az := ctrl.Azimuth()

	in.MouseMove(50, 0)
	ctrl.Update(1.0 / 60)
	if ctrl.Azimuth() != az {
		t.Fatalf("moving without a drag rotated the camera")
	}

	in.MouseDown(window.MouseButtonLeft, 100, 100)
	in.MouseMove(110, 100)
	in.MouseUp(window.MouseButtonLeft, 110, 100)
	ctrl.Update(1.0 / 60)
	if !mgl32.FloatEqualThreshold(ctrl.Azimuth(), az-0.1, 1e-5) {
		t.Errorf("azimuth = %v, want %v", ctrl.Azimuth(), az-0.1)
	}
}

func TestHeldKeysPan(t *testing.T) {
	ctrl := newOrbit()
	in := NewInput(ctrl, nil)
	_, y0, _ := ctrl.Target()

	in.KeyDown(common.KeyE)
	in.Update(0.5)
	in.KeyUp(common.KeyE)
	in.Update(0.5)

	_, y1, _ := ctrl.Target()
	if y1 <= y0 {
		t.Errorf("target y = %v, want above %v after panning up", y1, y0)
	}
}
