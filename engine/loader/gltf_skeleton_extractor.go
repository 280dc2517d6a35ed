package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/qmuntal/gltf"
)

// gltfSkeletonExtractorImpl is the implementation of the gltfSkeletonExtractor interface.
type gltfSkeletonExtractorImpl struct {
	doc *gltf.Document
}

// gltfSkeletonExtractor defines the interface for extracting bone hierarchies from a glTF document.
type gltfSkeletonExtractor interface {
	// ExtractSkeleton builds the skeleton of a single skin.
	// Bones keep skin joint order; ParentIndex is -1 for joints whose parent is not a joint.
	//
	// Parameters:
	//   - skinIndex: the skin index in the document
	//
	// Returns:
	//   - *model.Skeleton: the skeleton
	//   - error: error if the skin or a joint index is invalid
	ExtractSkeleton(skinIndex int) (*model.Skeleton, error)
}

var _ gltfSkeletonExtractor = &gltfSkeletonExtractorImpl{}

func newGLTFSkeletonExtractor(doc *gltf.Document) gltfSkeletonExtractor {
	return &gltfSkeletonExtractorImpl{doc: doc}
}

func (e *gltfSkeletonExtractorImpl) ExtractSkeleton(skinIndex int) (*model.Skeleton, error) {
	if skinIndex < 0 || skinIndex >= len(e.doc.Skins) {
		return nil, fmt.Errorf("skin index %d out of range", skinIndex)
	}
	skin := e.doc.Skins[skinIndex]

	parents := gltfParentIndex(e.doc)
	nodeToBone := make(map[int]int32, len(skin.Joints))
	for boneIdx, nodeIdx := range skin.Joints {
		if nodeIdx < 0 || nodeIdx >= len(e.doc.Nodes) {
			return nil, fmt.Errorf("joint %d: invalid node index %d", boneIdx, nodeIdx)
		}
		nodeToBone[nodeIdx] = int32(boneIdx)
	}

	skel := &model.Skeleton{
		Bones:           make([]model.Bone, len(skin.Joints)),
		BoneNameToIndex: make(map[string]int32, len(skin.Joints)),
	}
	for boneIdx, nodeIdx := range skin.Joints {
		node := e.doc.Nodes[nodeIdx]
		name := gltfNodeName(e.doc, nodeIdx)

		parent := int32(-1)
		if p, ok := parents[nodeIdx]; ok {
			if pb, isJoint := nodeToBone[p]; isJoint {
				parent = pb
			}
		}
		if parent < 0 {
			skel.RootBoneIndices = append(skel.RootBoneIndices, int32(boneIdx))
		}

		skel.Bones[boneIdx] = model.Bone{
			Name:           name,
			ParentIndex:    parent,
			LocalTransform: gltfNodeTransform(node),
		}
		skel.BoneNameToIndex[name] = int32(boneIdx)
	}
	return skel, nil
}

// gltfParentIndex maps each child node index to its parent node index.
func gltfParentIndex(doc *gltf.Document) map[int]int {
	parents := make(map[int]int)
	for parentIdx, node := range doc.Nodes {
		for _, child := range node.Children {
			parents[child] = parentIdx
		}
	}
	return parents
}

// gltfNodeName returns the node's name, falling back to its index for unnamed nodes.
func gltfNodeName(doc *gltf.Document, nodeIdx int) string {
	if nodeIdx >= 0 && nodeIdx < len(doc.Nodes) && doc.Nodes[nodeIdx].Name != "" {
		return doc.Nodes[nodeIdx].Name
	}
	return fmt.Sprintf("node_%d", nodeIdx)
}

// gltfNodeTransform reads the TRS rest transform of a node.
func gltfNodeTransform(node *gltf.Node) model.Transform {
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	return model.Transform{
		Translation: [3]float32{float32(t[0]), float32(t[1]), float32(t[2])},
		Rotation:    [4]float32{float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])},
		Scale:       [3]float32{float32(s[0]), float32(s[1]), float32(s[2])},
	}
}
