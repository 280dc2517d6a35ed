package viewpoint

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoViewpoints is returned when a sequencer is built from an empty list.
	ErrNoViewpoints = errors.New("viewpoint list is empty")

	// ErrAlreadyRunning is returned by Start on a sequence that has already started.
	ErrAlreadyRunning = errors.New("viewpoint sequence already running")

	// ErrInvalidViewpoint is returned for negative durations or delays.
	ErrInvalidViewpoint = errors.New("invalid viewpoint timing")
)

// Viewpoint is one stop of the camera tour.
type Viewpoint struct {
	// Name identifies the viewpoint in logs and status output.
	Name string

	// Position is the world-space camera position to travel to.
	Position mgl32.Vec3

	// Duration is the travel time in seconds.
	Duration float32

	// Delay is the wait in seconds before travel starts.
	Delay float32
}

// Subject is what the sequencer moves. CameraController satisfies it.
type Subject interface {
	Position() (x, y, z float32)
	SetPosition(x, y, z float32)
}

// Phase is the sequencer's position within the current leg.
type Phase int

const (
	// PhaseIdle is the state before Start.
	PhaseIdle Phase = iota

	// PhaseDelay waits out the current viewpoint's Delay.
	PhaseDelay

	// PhaseTransition moves the subject towards the current viewpoint.
	PhaseTransition
)

func (p Phase) String() string {
	switch p {
	case PhaseDelay:
		return "delay"
	case PhaseTransition:
		return "transition"
	}
	return "idle"
}
