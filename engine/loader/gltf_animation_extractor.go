package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	doc *gltf.Document
}

// gltfAnimationExtractor defines the interface for extracting animation data from a glTF document.
// Channels are keyed by target node name rather than skeleton index so that clips exported
// on their own (one clip per file) can be bound to a separately loaded character by name.
type gltfAnimationExtractor interface {
	// ExtractAnimation extracts a single animation by index.
	//
	// Parameters:
	//   - animIndex: the index of the animation in the document
	//
	// Returns:
	//   - *model.AnimationClip: the extracted animation clip
	//   - error: error if extraction fails
	ExtractAnimation(animIndex int) (*model.AnimationClip, error)

	// ExtractAllAnimations extracts every animation from the document in file order.
	//
	// Returns:
	//   - []*model.AnimationClip: all extracted animation clips
	//   - error: error if extraction fails
	ExtractAllAnimations() ([]*model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

func newGLTFAnimationExtractor(doc *gltf.Document) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{doc: doc}
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]*model.AnimationClip, error) {
	clips := make([]*model.AnimationClip, 0, len(e.doc.Animations))
	for i := range e.doc.Animations {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int) (*model.AnimationClip, error) {
	if animIndex < 0 || animIndex >= len(e.doc.Animations) {
		return nil, fmt.Errorf("animation index %d out of range", animIndex)
	}
	anim := e.doc.Animations[animIndex]

	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}

	// Merge translation/rotation/scale channels of the same node into one AnimationChannel.
	byNode := make(map[int]*model.AnimationChannel)
	var order []int
	var maxTime float32

	for i, ch := range anim.Channels {
		// Morph target and pointer channels carry no node.
		if ch.Target.Node == nil {
			continue
		}
		nodeIdx := *ch.Target.Node

		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: invalid sampler index %d", name, i, ch.Sampler)
		}
		sampler := anim.Samplers[ch.Sampler]

		times, err := e.readTimes(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: failed to read timestamps: %w", name, i, err)
		}
		if n := len(times); n > 0 && times[n-1] > maxTime {
			maxTime = times[n-1]
		}

		animCh, ok := byNode[nodeIdx]
		if !ok {
			animCh = &model.AnimationChannel{BoneName: gltfNodeName(e.doc, nodeIdx)}
			byNode[nodeIdx] = animCh
			order = append(order, nodeIdx)
		}

		// Cubic spline samplers store (in-tangent, value, out-tangent) triplets per key.
		stride := 1
		if sampler.Interpolation == gltf.InterpolationCubicSpline {
			stride = 3
		}

		switch ch.Target.Path {
		case gltf.TRSTranslation, gltf.TRSScale:
			values, err := e.readVec3(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: %w", name, i, err)
			}
			keys := gltfVectorKeys(times, values, stride)
			if ch.Target.Path == gltf.TRSTranslation {
				animCh.PositionKeys = keys
			} else {
				animCh.ScaleKeys = keys
			}
		case gltf.TRSRotation:
			values, err := e.readVec4(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: %w", name, i, err)
			}
			animCh.RotationKeys = gltfQuaternionKeys(times, values, stride)
		}
	}

	clip := &model.AnimationClip{
		Name:     name,
		Duration: maxTime,
		Channels: make([]model.AnimationChannel, 0, len(order)),
	}
	for _, nodeIdx := range order {
		clip.Channels = append(clip.Channels, *byNode[nodeIdx])
	}
	return clip, nil
}

func (e *gltfAnimationExtractorImpl) accessor(index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", index)
	}
	return e.doc.Accessors[index], nil
}

func (e *gltfAnimationExtractorImpl) readTimes(index int) ([]float32, error) {
	acr, err := e.accessor(index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(e.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	times, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float scalars, got %T", index, data)
	}
	return times, nil
}

func (e *gltfAnimationExtractorImpl) readVec3(index int) ([][3]float32, error) {
	acr, err := e.accessor(index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(e.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	values, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float vec3, got %T", index, data)
	}
	return values, nil
}

func (e *gltfAnimationExtractorImpl) readVec4(index int) ([][4]float32, error) {
	acr, err := e.accessor(index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(e.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case [][4]float32:
		return v, nil
	case [][4]int16:
		// Normalized signed shorts (KHR_mesh_quantization).
		out := make([][4]float32, len(v))
		for i, q := range v {
			for c := 0; c < 4; c++ {
				out[i][c] = max(float32(q[c])/32767, -1)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("accessor %d: expected vec4 rotations, got %T", index, data)
}

func gltfVectorKeys(times []float32, values [][3]float32, stride int) []model.VectorKeyframe {
	keys := make([]model.VectorKeyframe, 0, len(times))
	for i, t := range times {
		vi := i*stride + stride/2
		if vi >= len(values) {
			break
		}
		keys = append(keys, model.VectorKeyframe{Time: t, Value: values[vi]})
	}
	return keys
}

func gltfQuaternionKeys(times []float32, values [][4]float32, stride int) []model.QuaternionKeyframe {
	keys := make([]model.QuaternionKeyframe, 0, len(times))
	for i, t := range times {
		vi := i*stride + stride/2
		if vi >= len(values) {
			break
		}
		keys = append(keys, model.QuaternionKeyframe{Time: t, Value: values[vi]})
	}
	return keys
}
