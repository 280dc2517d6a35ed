// Package showreel stages the character scene: it loads the character and its extra clip files,
// places the character, wires clips into the animation controller and publishes one control per clip.
package showreel

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/engine/animator"
	"github.com/Carmen-Shannon/oxy-showreel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showreel/engine/loader"
	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/Carmen-Shannon/oxy-showreel/engine/panel"
	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"github.com/Carmen-Shannon/oxy-showreel/engine/viewpoint"
	"go.uber.org/zap"
)

// AssetLoader is the part of loader.AsyncLoader the showreel needs.
type AssetLoader interface {
	LoadAsync(path string, done loader.LoadCallback)
}

// Status is a snapshot for the control panel.
type Status struct {
	Character   string   `json:"character"`
	Loaded      bool     `json:"loaded"`
	ActiveClip  int      `json:"active_clip"`
	Primary     int      `json:"primary_clips"`
	Auxiliary   []string `json:"auxiliary_clips"`
	Viewpoint   string   `json:"viewpoint,omitempty"`
	Transitions int      `json:"transitions"`
	Failures    []string `json:"failures,omitempty"`
}

// showreel implements the Showreel interface.
type showreel struct {
	mu *sync.Mutex

	loader     AssetLoader
	scene      scene.Scene
	controller animator.Controller
	panel      panel.Panel
	sequencer  viewpoint.Sequencer
	logger     *zap.Logger

	characterPath string
	scale         float32
	position      [3]float32
	auxiliaryPath []string

	started   bool
	character game_object.GameObject
	auxNames  []string
	failures  []*AssetLoadFailure
}

// Showreel owns the asset side of the scene.
// Every callback it schedules runs on the frame context through the loader's dispatcher.
type Showreel interface {
	// Start requests the character file. Auxiliary files are requested once the character is in place.
	//
	// Returns:
	//   - error: ErrAlreadyStarted on a second call
	Start() error

	// Character returns the character's scene object, or nil until it has loaded.
	//
	// Returns:
	//   - game_object.GameObject: the character or nil
	Character() game_object.GameObject

	// Failures returns the files that could not be used, in the order they failed.
	//
	// Returns:
	//   - []*AssetLoadFailure: a copy of the failure list
	Failures() []*AssetLoadFailure

	// Status returns a snapshot of the loaded clips, active clip and tour position.
	//
	// Returns:
	//   - Status: the snapshot
	Status() Status
}

var _ Showreel = &showreel{}

// NewShowreel creates a showreel for the character at characterPath.
// The controller must have one auxiliary slot per path given with WithAuxiliary.
//
// Parameters:
//   - l: asynchronous loader whose callbacks run on the frame context
//   - s: the scene the character is added to
//   - c: the animation controller
//   - p: the panel that receives one control per clip
//   - characterPath: the character model file
//   - options: functional options
//
// Returns:
//   - Showreel: the showreel
func NewShowreel(l AssetLoader, s scene.Scene, c animator.Controller, p panel.Panel, characterPath string, options ...ShowreelBuilderOption) Showreel {
	r := &showreel{
		mu:            &sync.Mutex{},
		loader:        l,
		scene:         s,
		controller:    c,
		panel:         p,
		logger:        zap.NewNop(),
		characterPath: characterPath,
		scale:         1,
	}
	for _, opt := range options {
		opt(r)
	}
	r.auxNames = make([]string, len(r.auxiliaryPath))
	return r
}

func (r *showreel) Start() error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	r.logger.Info("loading character", zap.String("path", r.characterPath))
	r.loader.LoadAsync(r.characterPath, r.onCharacter)
	return nil
}

func (r *showreel) Character() game_object.GameObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.character
}

func (r *showreel) Failures() []*AssetLoadFailure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*AssetLoadFailure, len(r.failures))
	copy(out, r.failures)
	return out
}

func (r *showreel) Status() Status {
	r.mu.Lock()
	st := Status{
		Character: r.characterPath,
		Loaded:    r.character != nil,
		Auxiliary: append([]string(nil), r.auxNames...),
	}
	for _, f := range r.failures {
		st.Failures = append(st.Failures, f.Error())
	}
	r.mu.Unlock()

	st.ActiveClip = -1
	if idx, ok := r.controller.Active(); ok {
		st.ActiveClip = idx
	}
	st.Primary = r.controller.PrimaryCount()
	if r.sequencer != nil {
		st.Viewpoint = r.sequencer.Target().Name
		st.Transitions = r.sequencer.Transitions()
	}
	return st
}

func (r *showreel) onCharacter(m model.Model, err error) {
	if err != nil {
		r.fail(&AssetLoadFailure{Path: r.characterPath, Group: GroupPrimary, Err: err})
		return
	}

	obj := game_object.NewGameObject(
		game_object.WithModel(m),
		game_object.WithName(assetName(r.characterPath)),
		game_object.WithUniformScale(r.scale),
		game_object.WithPosition(r.position[0], r.position[1], r.position[2]),
	)
	obj.EnableShadows(true, true)
	r.scene.Add(obj)

	r.mu.Lock()
	r.character = obj
	r.mu.Unlock()

	r.controller.Attach(m)
	for i := 0; i < m.AnimationCount(); i++ {
		r.registerControl(i)
	}
	r.logger.Info("character ready",
		zap.String("path", r.characterPath),
		zap.Int("clips", m.AnimationCount()),
		zap.Bool("skinned", m.Skinned()))

	for slot, path := range r.auxiliaryPath {
		slot, path := slot, path
		r.loader.LoadAsync(path, func(m model.Model, err error) {
			r.onAuxiliary(slot, path, m, err)
		})
	}
}

func (r *showreel) onAuxiliary(slot int, path string, m model.Model, err error) {
	if err == nil && m.AnimationCount() == 0 {
		err = ErrNoClips
	}
	if err != nil {
		r.fail(&AssetLoadFailure{Path: path, Group: GroupAuxiliary, Slot: slot, Err: err})
		return
	}

	clip := m.Animations()[0]
	index, err := r.controller.SetAuxiliary(slot, clip)
	if err != nil {
		r.fail(&AssetLoadFailure{Path: path, Group: GroupAuxiliary, Slot: slot, Err: err})
		return
	}

	r.mu.Lock()
	r.auxNames[slot] = assetName(path)
	r.mu.Unlock()

	r.registerControl(index)
	r.logger.Debug("auxiliary clip ready",
		zap.String("path", path),
		zap.Int("slot", slot),
		zap.Int("index", index),
		zap.String("clip", clip.Name))
}

// registerControl publishes "Animation N" for the clip at the global index.
// The control is addressed by that same index, so keys and URLs do not depend on load order.
func (r *showreel) registerControl(index int) {
	r.panel.Register(index, fmt.Sprintf("Animation %d", index+1), func() {
		if err := r.controller.SwitchTo(index); err != nil {
			r.logger.Warn("switch animation", zap.Int("index", index), zap.Error(err))
		}
	})
}

func (r *showreel) fail(f *AssetLoadFailure) {
	r.mu.Lock()
	r.failures = append(r.failures, f)
	r.mu.Unlock()
	r.logger.Error("asset load failed",
		zap.String("path", f.Path),
		zap.Stringer("group", f.Group),
		zap.Int("slot", f.Slot),
		zap.Error(f.Err))
}

func assetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
