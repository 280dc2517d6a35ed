package model

// --- Transform & Skeleton Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// Bone represents a single joint in a skeleton hierarchy.
type Bone struct {
	// Name is the joint's node name. Clips bind to bones by this name.
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// LocalTransform is the rest transform relative to the parent.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy for skeletal animation.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// BoneIndex looks up a bone by name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - int32: the bone index, or -1 if the skeleton has no such bone
func (s *Skeleton) BoneIndex(name string) int32 {
	if s == nil {
		return -1
	}
	if idx, ok := s.BoneNameToIndex[name]; ok {
		return idx
	}
	return -1
}

// --- Animation Types ---

// AnimationClip is a named, fixed-length animation.
// Channels address bones by name so a clip imported from one file can drive the skeleton of another.
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Channels contains animation data for each animated bone.
	Channels []AnimationChannel
}

// AnimationChannel contains keyframe data for a single bone.
type AnimationChannel struct {
	// BoneName is the name of the node this channel animates.
	BoneName string

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe (x, y, z, w).
	Value [4]float32
}

// BoundChannels counts the channels of the clip that resolve to a bone in the given skeleton.
// A clip with zero bound channels plays without moving anything.
//
// Parameters:
//   - s: the target skeleton (nil binds nothing)
//
// Returns:
//   - int: number of channels whose BoneName exists in s
func (c *AnimationClip) BoundChannels(s *Skeleton) int {
	n := 0
	for _, ch := range c.Channels {
		if s.BoneIndex(ch.BoneName) >= 0 {
			n++
		}
	}
	return n
}

// --- Mesh Types ---

// Mesh is a single drawable primitive of a model.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Positions are the vertex positions in model space.
	Positions [][3]float32

	// Indices are the triangle indices.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32

	// CastShadow marks the mesh as a shadow caster.
	CastShadow bool

	// ReceiveShadow marks the mesh as a shadow receiver.
	ReceiveShadow bool
}

// computeBounds fills BoundingMin and BoundingMax from Positions.
func (m *Mesh) computeBounds() {
	if len(m.Positions) == 0 {
		return
	}
	m.BoundingMin = m.Positions[0]
	m.BoundingMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < m.BoundingMin[i] {
				m.BoundingMin[i] = p[i]
			}
			if p[i] > m.BoundingMax[i] {
				m.BoundingMax[i] = p[i]
			}
		}
	}
}
