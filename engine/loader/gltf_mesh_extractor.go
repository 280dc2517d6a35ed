package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc *gltf.Document
}

// gltfMeshExtractor defines the interface for extracting mesh geometry from a glTF document.
type gltfMeshExtractor interface {
	// ExtractAllMeshes extracts every triangle primitive in the document, flattened one Mesh per primitive.
	//
	// Returns:
	//   - []model.Mesh: the meshes
	//   - error: error if an accessor cannot be read
	ExtractAllMeshes() ([]model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(doc *gltf.Document) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{doc: doc}
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([]model.Mesh, error) {
	var meshes []model.Mesh
	for meshIdx, mesh := range e.doc.Meshes {
		for primIdx, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			m, err := e.extractPrimitive(prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIdx, primIdx, err)
			}
			m.Name = mesh.Name
			if m.Name == "" {
				m.Name = fmt.Sprintf("mesh_%d", meshIdx)
			}
			if len(mesh.Primitives) > 1 {
				m.Name = fmt.Sprintf("%s_%d", m.Name, primIdx)
			}
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltf.Primitive) (model.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return model.Mesh{}, fmt.Errorf("primitive has no POSITION attribute")
	}
	if posIdx < 0 || posIdx >= len(e.doc.Accessors) {
		return model.Mesh{}, fmt.Errorf("position accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(e.doc, e.doc.Accessors[posIdx], nil)
	if err != nil {
		return model.Mesh{}, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		idx := *prim.Indices
		if idx < 0 || idx >= len(e.doc.Accessors) {
			return model.Mesh{}, fmt.Errorf("index accessor %d out of range", idx)
		}
		indices, err = modeler.ReadIndices(e.doc, e.doc.Accessors[idx], nil)
		if err != nil {
			return model.Mesh{}, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		// Non-indexed primitives draw vertices in order.
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return model.Mesh{Positions: positions, Indices: indices}, nil
}
