package animator

import (
	"math"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

// Action is the playback state of one clip inside a Mixer.
// All methods are safe for concurrent use; they share the owning mixer's lock.
type Action interface {
	// Clip returns the clip this action plays.
	//
	// Returns:
	//   - *model.AnimationClip: the clip
	Clip() *model.AnimationClip

	// Play schedules the action in its mixer so Update advances it.
	Play()

	// Stop unschedules the action and resets it.
	Stop()

	// Reset rewinds local time to 0, re-enables the action and cancels any fade.
	Reset()

	// FadeIn ramps the weight from 0 to 1 over duration seconds of mixer time.
	//
	// Parameters:
	//   - duration: fade length in seconds
	FadeIn(duration float32)

	// FadeOut ramps the weight from its current value to 0 over duration seconds of mixer time.
	// The action keeps running during the fade and is disabled when the fade completes.
	//
	// Parameters:
	//   - duration: fade length in seconds
	FadeOut(duration float32)

	// Weight returns the effective blend weight in [0, 1]; 0 while disabled.
	//
	// Returns:
	//   - float32: the effective weight
	Weight() float32

	// Time returns the local playback time in seconds.
	//
	// Returns:
	//   - float32: local time, wrapped to the clip duration
	Time() float32

	// Enabled reports whether the action contributes to the pose.
	//
	// Returns:
	//   - bool: false once a fade-out has completed
	Enabled() bool

	// Running reports whether the action is scheduled in the mixer.
	//
	// Returns:
	//   - bool: true between Play and Stop
	Running() bool

	// FadingOut reports whether a fade towards weight 0 is in progress.
	//
	// Returns:
	//   - bool: true while fading out
	FadingOut() bool

	// FadingIn reports whether a fade towards weight 1 is in progress.
	//
	// Returns:
	//   - bool: true while fading in
	FadingIn() bool
}

// weightFade is a linear weight ramp. It counts its own elapsed time so that
// its resolution never depends on how long the mixer has been running.
type weightFade struct {
	elapsed  float32
	duration float32
	from, to float32
}

// value evaluates the ramp, clamping past the end.
func (f *weightFade) value() float32 {
	if f.duration <= 0 || f.elapsed >= f.duration {
		return f.to
	}
	return f.from + (f.to-f.from)*(f.elapsed/f.duration)
}

// clipAction is the implementation of the Action interface.
type clipAction struct {
	mixer *mixer
	clip  *model.AnimationClip

	time      float32
	timeScale float32
	weight    float32
	loop      bool

	enabled bool
	running bool
	fade    *weightFade
}

var _ Action = &clipAction{}

func newClipAction(m *mixer, clip *model.AnimationClip) *clipAction {
	return &clipAction{
		mixer:     m,
		clip:      clip,
		timeScale: 1,
		weight:    1,
		loop:      true,
		enabled:   true,
	}
}

func (a *clipAction) Clip() *model.AnimationClip {
	return a.clip
}

func (a *clipAction) Play() {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.running = true
}

func (a *clipAction) Stop() {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.running = false
	a.resetLocked()
}

func (a *clipAction) Reset() {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.resetLocked()
}

func (a *clipAction) FadeIn(duration float32) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.scheduleFadeLocked(duration, 0, 1)
}

func (a *clipAction) FadeOut(duration float32) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.scheduleFadeLocked(duration, a.fadeValueLocked(), 0)
}

func (a *clipAction) Weight() float32 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.effectiveWeightLocked()
}

func (a *clipAction) Time() float32 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.time
}

func (a *clipAction) Enabled() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.enabled
}

func (a *clipAction) Running() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.running
}

func (a *clipAction) FadingOut() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.fade != nil && a.fade.to == 0
}

func (a *clipAction) FadingIn() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.fade != nil && a.fade.to > 0
}

// --- internal helpers; caller must hold the mixer lock ---

func (a *clipAction) resetLocked() {
	a.time = 0
	a.enabled = true
	a.fade = nil
}

func (a *clipAction) scheduleFadeLocked(duration, from, to float32) {
	a.fade = &weightFade{
		duration: duration,
		from:     from,
		to:       to,
	}
}

func (a *clipAction) fadeValueLocked() float32 {
	if a.fade == nil {
		return 1
	}
	return a.fade.value()
}

func (a *clipAction) effectiveWeightLocked() float32 {
	if !a.enabled {
		return 0
	}
	return a.weight * a.fadeValueLocked()
}

// advance moves local time forward by deltaTime and settles a finished fade.
func (a *clipAction) advance(deltaTime float32) {
	if !a.enabled {
		return
	}

	a.time += deltaTime * a.timeScale
	if d := a.clip.Duration; d > 0 {
		if a.loop {
			a.time = float32(math.Mod(float64(a.time), float64(d)))
			if a.time < 0 {
				a.time += d
			}
		} else if a.time > d {
			a.time = d
		}
	}

	if a.fade == nil {
		return
	}
	a.fade.elapsed += deltaTime
	if a.fade.elapsed >= a.fade.duration {
		done := a.fade.to
		a.fade = nil
		if done == 0 {
			a.enabled = false
		}
	}
}
