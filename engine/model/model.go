package model

import (
	"math"
	"sync"
)

// model is the implementation of the Model interface.
type model struct {
	mu             *sync.Mutex
	name           string
	skeleton       *Skeleton
	animations     []*AnimationClip
	meshes         []Mesh
	boundingRadius float32
}

// Model defines the interface for a loaded 3D model.
// A Model holds mesh geometry, the skeleton hierarchy and the animation clips bundled with the file.
// It is produced by the Loader after importing a model file, or built procedurally.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skinned reports whether this model has a skeleton.
	//
	// Returns:
	//   - bool: true if the model has bone data
	Skinned() bool

	// Skeleton retrieves the bone hierarchy for this model.
	// Returns nil for static (non-skinned) models.
	//
	// Returns:
	//   - *Skeleton: the skeleton or nil
	Skeleton() *Skeleton

	// Animations retrieves all animation clips bundled with this model, in file order.
	//
	// Returns:
	//   - []*AnimationClip: the animation clips
	Animations() []*AnimationClip

	// AnimationCount returns the number of available animation clips.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationNames returns the names of all animation clips.
	//
	// Returns:
	//   - []string: the animation clip names
	AnimationNames() []string

	// GetAnimationIndex returns the index of an animation by name, or -1 if not found.
	//
	// Parameters:
	//   - name: the animation clip name to search for
	//
	// Returns:
	//   - int: the animation index, or -1 if not found
	GetAnimationIndex(name string) int

	// Meshes returns a copy of the model's meshes including their shadow flags.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// EnableShadows sets the cast and receive shadow flags on every mesh of the model.
	//
	// Parameters:
	//   - cast: whether meshes cast shadows
	//   - receive: whether meshes receive shadows
	EnableShadows(cast, receive bool)

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// The bounding radius is derived from the meshes unless set explicitly.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(m)
	}
	for i := range m.meshes {
		m.meshes[i].computeBounds()
	}
	if m.boundingRadius == 0 {
		m.boundingRadius = m.computeBoundingRadius()
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.skeleton != nil && len(m.skeleton.Bones) > 0
}

func (m *model) Skeleton() *Skeleton {
	return m.skeleton
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, anim := range m.animations {
		names[i] = anim.Name
	}
	return names
}

func (m *model) GetAnimationIndex(name string) int {
	for i, anim := range m.animations {
		if anim.Name == name {
			return i
		}
	}
	return -1
}

func (m *model) Meshes() []Mesh {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

func (m *model) EnableShadows(cast, receive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.meshes {
		m.meshes[i].CastShadow = cast
		m.meshes[i].ReceiveShadow = receive
	}
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// computeBoundingRadius returns the farthest bounding-box corner distance from the origin.
func (m *model) computeBoundingRadius() float32 {
	var maxSq float32
	for _, mesh := range m.meshes {
		for _, corner := range [2][3]float32{mesh.BoundingMin, mesh.BoundingMax} {
			sq := corner[0]*corner[0] + corner[1]*corner[1] + corner[2]*corner[2]
			if sq > maxSq {
				maxSq = sq
			}
		}
	}
	return float32(math.Sqrt(float64(maxSq)))
}
