package scene

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showreel/engine/light"
)

// Scene holds everything a frame draws: a registry of GameObjects, the lights,
// the camera and the background colour.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Background returns the clear colour as RGBA in [0, 1].
	Background() [4]float32

	// SetBackground sets the clear colour.
	//
	// Parameters:
	//   - rgba: the colour components
	SetBackground(rgba [4]float32)

	// Count returns the number of GameObjects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add registers a GameObject. Objects without an ID are assigned the next free one.
	// Adding nil is a no-op that returns 0.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns the registered objects in ascending ID order.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Clear removes all objects and lights from the scene.
	Clear()

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// AmbientColor sums the colour * intensity of every enabled ambient light.
	//
	// Returns:
	//   - [3]float32: the ambient RGB term
	AmbientColor() [3]float32

	// ShadowCaster returns the first enabled light that casts shadows, or nil.
	//
	// Returns:
	//   - light.Light: the shadow-casting light or nil
	ShadowCaster() light.Light
}

type scene struct {
	mu *sync.RWMutex

	name       string
	background [4]float32

	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam    camera.Camera
	lights []light.Light
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new empty Scene with a black background.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		background: [4]float32{0, 0, 0, 1},
		registry:   make(map[uint64]game_object.GameObject),
		nextID:     1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Background() [4]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(rgba [4]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = rgba
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj. Caller must hold the write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	id := obj.ID()
	if id == 0 {
		for s.registry[s.nextID] != nil {
			s.nextID++
		}
		id = s.nextID
		s.nextID++
		obj.SetID(id)
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.lights = nil
	s.nextID = 1
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AmbientColor() [3]float32 {
	var out [3]float32
	for _, l := range s.Lights() {
		if l.Type() != light.LightTypeAmbient || !l.Enabled() {
			continue
		}
		c := l.Color().Mul(l.Intensity())
		out[0] += c.X()
		out[1] += c.Y()
		out[2] += c.Z()
	}
	return out
}

func (s *scene) ShadowCaster() light.Light {
	for _, l := range s.Lights() {
		if l.Enabled() && l.CastsShadows() {
			return l
		}
	}
	return nil
}
