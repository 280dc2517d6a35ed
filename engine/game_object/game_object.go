package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool
	mdl     model.Model

	position mgl32.Vec3
	rotation mgl32.Vec3 // Euler angles in radians, applied Y then X then Z
	scale    mgl32.Vec3
	color    [4]float32
}

// GameObject defines the interface for a placed entity in a scene.
// It pairs an optional Model with a world transform.
type GameObject interface {
	// ID returns the object's unique identifier. Zero until the object is added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Position returns the world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// Color returns the base RGBA colour used for untextured surfaces.
	//
	// Returns:
	//   - [4]float32: the colour
	Color() [4]float32

	// WorldMatrix composes translation * rotation * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model-to-world matrix
	WorldMatrix() mgl32.Mat4

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// EnableShadows sets the cast and receive shadow flags on every mesh of the attached model.
	// Does nothing when no model is attached.
	//
	// Parameters:
	//   - cast: whether meshes cast shadows
	//   - receive: whether meshes receive shadows
	EnableShadows(cast, receive bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with unit scale, configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: mgl32.Vec3{1, 1, 1},
		color: [4]float32{1, 1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.name == "" && obj.mdl != nil {
		obj.name = obj.mdl.Name()
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position.X(), g.position.Y(), g.position.Z()
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation.X(), g.rotation.Y(), g.rotation.Z()
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale.X(), g.scale.Y(), g.scale.Z()
}

func (g *gameObject) Color() [4]float32 {
	return g.color
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z())
	r := mgl32.HomogRotate3DY(g.rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(g.rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(g.rotation.Z()))
	s := mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) EnableShadows(cast, receive bool) {
	if m := g.Model(); m != nil {
		m.EnableShadows(cast, receive)
	}
}
