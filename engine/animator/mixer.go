package animator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

// ActionState is a point-in-time snapshot of one scheduled action, consumed by pose sampling.
type ActionState struct {
	Clip    *model.AnimationClip
	Time    float32
	Weight  float32
	Enabled bool
}

// Mixer owns the actions of one animated object and advances them on a shared clock.
type Mixer interface {
	// ClipAction returns the action for clip, creating it on first use.
	// Repeated calls with the same clip return the same action.
	//
	// Parameters:
	//   - clip: the animation clip
	//
	// Returns:
	//   - Action: the cached action
	ClipAction(clip *model.AnimationClip) Action

	// Update advances mixer time and every running action by deltaTime scaled by the time scale.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous update (negative values are treated as 0)
	Update(deltaTime float32)

	// Time returns the accumulated mixer time in seconds.
	//
	// Returns:
	//   - float32: mixer time
	Time() float32

	// TimeScale returns the global playback speed multiplier.
	//
	// Returns:
	//   - float32: the time scale
	TimeScale() float32

	// SetTimeScale sets the global playback speed multiplier.
	//
	// Parameters:
	//   - scale: the new time scale (1 = real time)
	SetTimeScale(scale float32)

	// States returns snapshots of every running action in creation order.
	//
	// Returns:
	//   - []ActionState: the snapshots
	States() []ActionState
}

// mixer is the implementation of the Mixer interface.
type mixer struct {
	mu *sync.Mutex

	time      float64
	timeScale float32

	actions []*clipAction
	byClip  map[*model.AnimationClip]*clipAction
}

var _ Mixer = &mixer{}

// NewMixer creates an empty mixer with a time scale of 1.
//
// Returns:
//   - Mixer: the mixer
func NewMixer() Mixer {
	return &mixer{
		mu:        &sync.Mutex{},
		timeScale: 1,
		byClip:    make(map[*model.AnimationClip]*clipAction),
	}
}

func (m *mixer) ClipAction(clip *model.AnimationClip) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	a := newClipAction(m, clip)
	m.byClip[clip] = a
	m.actions = append(m.actions, a)
	return a
}

func (m *mixer) Update(deltaTime float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deltaTime < 0 {
		deltaTime = 0
	}
	dt := deltaTime * m.timeScale
	m.time += float64(dt)
	for _, a := range m.actions {
		if a.running {
			a.advance(dt)
		}
	}
}

func (m *mixer) Time() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float32(m.time)
}

func (m *mixer) TimeScale() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeScale
}

func (m *mixer) SetTimeScale(scale float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeScale = scale
}

func (m *mixer) States() []ActionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	states := make([]ActionState, 0, len(m.actions))
	for _, a := range m.actions {
		if !a.running {
			continue
		}
		states = append(states, ActionState{
			Clip:    a.clip,
			Time:    a.time,
			Weight:  a.effectiveWeightLocked(),
			Enabled: a.enabled,
		})
	}
	return states
}
