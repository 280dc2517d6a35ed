package viewpoint

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Sequencer tours a Subject through a fixed, cyclic list of viewpoints.
// It is a state machine advanced by Update; nothing happens between calls.
// Each leg waits the target's Delay, then eases the subject from wherever it is
// to the target's Position over Duration, then moves on to the next entry, wrapping after the last.
type Sequencer interface {
	// Start arms the tour at entry 0. A sequence can only be started once.
	//
	// Returns:
	//   - error: ErrAlreadyRunning on the second call
	Start() error

	// Update advances the tour by deltaTime seconds.
	// Time left over after a leg completes carries into the next leg.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds (negative values are treated as 0)
	Update(deltaTime float32)

	// Running reports whether Start has been called.
	//
	// Returns:
	//   - bool: true once started
	Running() bool

	// Cursor returns the index of the viewpoint the current leg targets.
	//
	// Returns:
	//   - int: index in [0, Len())
	Cursor() int

	// Target returns the viewpoint the current leg targets.
	//
	// Returns:
	//   - Viewpoint: the current target
	Target() Viewpoint

	// Phase returns where in the current leg the tour is.
	//
	// Returns:
	//   - Phase: idle, delay or transition
	Phase() Phase

	// Transitions returns the number of completed legs.
	//
	// Returns:
	//   - int: completed legs since Start
	Transitions() int

	// Len returns the number of viewpoints.
	//
	// Returns:
	//   - int: list length
	Len() int
}

// sequencer is the implementation of the Sequencer interface.
type sequencer struct {
	mu *sync.Mutex

	log        *zap.Logger
	easing     ease.TweenFunc
	viewpoints []Viewpoint
	subject    Subject

	running     bool
	cursor      int
	phase       Phase
	elapsed     float32
	from        mgl32.Vec3
	tween       *gween.Tween
	transitions int
}

var _ Sequencer = &sequencer{}

// NewSequencer builds a tour over viewpoints that moves subject.
// The list is copied; later changes to the caller's slice have no effect.
//
// Parameters:
//   - viewpoints: the cyclic list of stops
//   - subject: the object whose position is driven
//   - options: functional options
//
// Returns:
//   - Sequencer: the sequencer, idle until Start
//   - error: ErrNoViewpoints for an empty list, ErrInvalidViewpoint for negative timings
func NewSequencer(viewpoints []Viewpoint, subject Subject, options ...SequencerBuilderOption) (Sequencer, error) {
	if len(viewpoints) == 0 {
		return nil, ErrNoViewpoints
	}
	for i, vp := range viewpoints {
		if vp.Duration < 0 || vp.Delay < 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) duration=%g delay=%g", ErrInvalidViewpoint, i, vp.Name, vp.Duration, vp.Delay)
		}
	}

	s := &sequencer{
		mu:         &sync.Mutex{},
		log:        zap.NewNop(),
		easing:     ease.InOutQuad,
		viewpoints: append([]Viewpoint(nil), viewpoints...),
		subject:    subject,
		phase:      PhaseIdle,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *sequencer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.cursor = 0
	s.elapsed = 0
	s.phase = PhaseDelay
	s.log.Info("viewpoint tour started", zap.Int("viewpoints", len(s.viewpoints)))
	return nil
}

func (s *sequencer) Update(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}

	// At most one full lap per update so zero-length legs cannot spin forever.
	for legs := 0; legs < len(s.viewpoints); {
		vp := s.viewpoints[s.cursor]

		switch s.phase {
		case PhaseDelay:
			remaining := vp.Delay - s.elapsed
			if deltaTime < remaining {
				s.elapsed += deltaTime
				return
			}
			deltaTime -= remaining
			s.beginTransition(vp)

		case PhaseTransition:
			if s.elapsed+deltaTime < vp.Duration {
				s.elapsed += deltaTime
				t, _ := s.tween.Set(s.elapsed)
				p := common.Lerp3(s.from, vp.Position, t)
				s.subject.SetPosition(p.X(), p.Y(), p.Z())
				return
			}
			deltaTime -= vp.Duration - s.elapsed
			s.subject.SetPosition(vp.Position.X(), vp.Position.Y(), vp.Position.Z())
			s.completeLeg(vp)
			legs++

		default:
			return
		}
	}
}

func (s *sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *sequencer) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *sequencer) Target() Viewpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewpoints[s.cursor]
}

func (s *sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *sequencer) Transitions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitions
}

func (s *sequencer) Len() int {
	return len(s.viewpoints)
}

// beginTransition captures the subject's current position as the leg origin. Caller must hold the mutex.
func (s *sequencer) beginTransition(vp Viewpoint) {
	x, y, z := s.subject.Position()
	s.from = mgl32.Vec3{x, y, z}
	s.elapsed = 0
	s.phase = PhaseTransition
	if vp.Duration > 0 {
		s.tween = gween.New(0, 1, vp.Duration, s.easing)
	}
}

// completeLeg advances the cursor with wrap-around and re-arms the delay. Caller must hold the mutex.
func (s *sequencer) completeLeg(vp Viewpoint) {
	s.transitions++
	s.cursor = common.Wrap(s.cursor+1, len(s.viewpoints))
	s.elapsed = 0
	s.phase = PhaseDelay
	s.tween = nil
	s.log.Debug("viewpoint reached",
		zap.String("viewpoint", vp.Name),
		zap.Int("next", s.cursor),
		zap.Int("transitions", s.transitions),
	)
}
