package animator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"go.uber.org/zap"
)

var (
	// ErrNotAttached is returned when switching before a model has been attached.
	ErrNotAttached = errors.New("animation controller has no model attached")

	// ErrClipOutOfRange is returned for indices outside [0, primary+auxiliary).
	ErrClipOutOfRange = errors.New("clip index out of range")

	// ErrClipNotLoaded is returned for auxiliary slots whose file has not (or never will have) loaded.
	ErrClipNotLoaded = errors.New("clip not loaded")
)

// DefaultFadeDuration is the cross-fade length used by SwitchTo.
const DefaultFadeDuration float32 = 0.5

// Controller switches the single active clip of an animated character.
//
// Clips live in two groups addressed by one continuous index:
// indices [0, P) are the clips bundled with the character (primary group) and
// [P, P+A) are auxiliary slots, one per separately loaded clip file, filled as those files arrive.
type Controller interface {
	// Attach creates the mixer for m, takes its clips as the primary group and
	// starts clip 0 playing (if there is one) as the active clip.
	//
	// Parameters:
	//   - m: the loaded character
	//
	// Returns:
	//   - Mixer: the newly created mixer
	Attach(m model.Model) Mixer

	// SetAuxiliary fills an auxiliary slot. Slots are fixed by file order, not arrival order.
	//
	// Parameters:
	//   - slot: the auxiliary slot in [0, AuxiliarySlots())
	//   - clip: the clip for the slot
	//
	// Returns:
	//   - int: the global clip index of the slot
	//   - error: ErrNotAttached before Attach, ErrClipOutOfRange for a bad slot
	SetAuxiliary(slot int, clip *model.AnimationClip) (int, error)

	// SwitchTo cross-fades from the active clip to the clip at index.
	// The previously active clip fades out while it keeps playing; the target is rewound,
	// faded in and played. Selecting the active clip again restarts it with a fade-in.
	//
	// Parameters:
	//   - index: global clip index
	//
	// Returns:
	//   - error: ErrNotAttached, ErrClipOutOfRange or ErrClipNotLoaded; nil on success
	SwitchTo(index int) error

	// Active returns the global index of the active clip.
	//
	// Returns:
	//   - int: the active index
	//   - bool: false while nothing is active
	Active() (int, bool)

	// PrimaryCount returns the number of clips bundled with the attached character.
	//
	// Returns:
	//   - int: P
	PrimaryCount() int

	// AuxiliarySlots returns the number of auxiliary slots.
	//
	// Returns:
	//   - int: A
	AuxiliarySlots() int

	// Mixer returns the mixer created by Attach, or nil before Attach.
	//
	// Returns:
	//   - Mixer: the mixer or nil
	Mixer() Mixer

	// Update advances the mixer. It is a no-op before Attach.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous frame
	Update(deltaTime float32)
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu *sync.Mutex

	log *zap.Logger

	fadeDuration  float32
	maxFadingOut  int
	timeScale     float32
	skeleton      *model.Skeleton
	mixer         Mixer
	primary       []*model.AnimationClip
	auxiliary     []*model.AnimationClip
	active        Action
	activeIndex   int
	fadingOutList []Action
}

var _ Controller = &controller{}

// NewController creates a controller with the given number of auxiliary slots.
//
// Parameters:
//   - auxiliarySlots: number of separately loaded clip files
//   - options: functional options
//
// Returns:
//   - Controller: the controller
func NewController(auxiliarySlots int, options ...ControllerBuilderOption) Controller {
	if auxiliarySlots < 0 {
		auxiliarySlots = 0
	}
	c := &controller{
		mu:           &sync.Mutex{},
		log:          zap.NewNop(),
		fadeDuration: DefaultFadeDuration,
		timeScale:    1,
		auxiliary:    make([]*model.AnimationClip, auxiliarySlots),
		activeIndex:  -1,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) Attach(m model.Model) Mixer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mixer = NewMixer()
	c.mixer.SetTimeScale(c.timeScale)
	c.skeleton = m.Skeleton()
	c.primary = append([]*model.AnimationClip(nil), m.Animations()...)
	c.active = nil
	c.activeIndex = -1
	c.fadingOutList = nil

	if len(c.primary) == 0 {
		c.log.Warn("character has no bundled clips", zap.String("model", m.Name()))
		return c.mixer
	}

	first := c.mixer.ClipAction(c.primary[0])
	first.Play()
	c.active = first
	c.activeIndex = 0
	c.log.Info("animation attached",
		zap.String("model", m.Name()),
		zap.Int("primary", len(c.primary)),
		zap.Int("auxiliary_slots", len(c.auxiliary)),
	)
	return c.mixer
}

func (c *controller) SetAuxiliary(slot int, clip *model.AnimationClip) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mixer == nil {
		return -1, ErrNotAttached
	}
	if slot < 0 || slot >= len(c.auxiliary) {
		return -1, fmt.Errorf("%w: auxiliary slot %d of %d", ErrClipOutOfRange, slot, len(c.auxiliary))
	}
	if clip == nil {
		return -1, fmt.Errorf("%w: auxiliary slot %d", ErrClipNotLoaded, slot)
	}
	if c.skeleton != nil && clip.BoundChannels(c.skeleton) == 0 {
		c.log.Warn("auxiliary clip binds no bones of the character",
			zap.String("clip", clip.Name),
			zap.Int("slot", slot),
		)
	}
	c.auxiliary[slot] = clip
	return len(c.primary) + slot, nil
}

func (c *controller) SwitchTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mixer == nil {
		return ErrNotAttached
	}
	clip, err := c.resolve(index)
	if err != nil {
		return err
	}

	target := c.mixer.ClipAction(clip)
	if c.active != nil {
		c.active.FadeOut(c.fadeDuration)
		if c.active != target {
			c.fadingOutList = append(c.fadingOutList, c.active)
		}
	}

	target.Reset()
	target.FadeIn(c.fadeDuration)
	target.Play()

	c.active = target
	c.activeIndex = index
	c.capFadingOut()

	c.log.Debug("switched clip", zap.Int("index", index), zap.String("clip", clip.Name))
	return nil
}

func (c *controller) Active() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeIndex, c.activeIndex >= 0
}

func (c *controller) PrimaryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.primary)
}

func (c *controller) AuxiliarySlots() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.auxiliary)
}

func (c *controller) Mixer() Mixer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixer
}

func (c *controller) Update(deltaTime float32) {
	c.mu.Lock()
	m := c.mixer
	c.mu.Unlock()
	if m == nil {
		return
	}
	m.Update(deltaTime)
}

// resolve maps a global index onto the primary or auxiliary group. Caller must hold the mutex.
func (c *controller) resolve(index int) (*model.AnimationClip, error) {
	p, a := len(c.primary), len(c.auxiliary)
	switch {
	case index >= 0 && index < p:
		return c.primary[index], nil
	case index >= p && index < p+a:
		if clip := c.auxiliary[index-p]; clip != nil {
			return clip, nil
		}
		return nil, fmt.Errorf("%w: index %d (auxiliary slot %d)", ErrClipNotLoaded, index, index-p)
	}
	return nil, fmt.Errorf("%w: index %d, have %d", ErrClipOutOfRange, index, p+a)
}

// capFadingOut drops settled fades from the tracking list and, when a cap is set,
// stops the oldest fade-outs beyond it. Caller must hold the mutex.
func (c *controller) capFadingOut() {
	live := c.fadingOutList[:0]
	for _, a := range c.fadingOutList {
		if a != c.active && a.FadingOut() {
			live = append(live, a)
		}
	}
	c.fadingOutList = live

	if c.maxFadingOut <= 0 {
		return
	}
	for len(c.fadingOutList) > c.maxFadingOut {
		c.fadingOutList[0].Stop()
		c.fadingOutList = c.fadingOutList[1:]
	}
}
