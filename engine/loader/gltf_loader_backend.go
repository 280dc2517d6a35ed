package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// Parsing and buffer resolution are delegated to qmuntal/gltf; the extractors
// turn the document into engine meshes, a skeleton and animation clips.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (model.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return b.importDocument(doc, path)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (model.Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	return b.importDocument(doc, name)
}

// importDocument extracts meshes, the first skin's skeleton and every animation from doc.
func (b *gltfLoaderBackendImpl) importDocument(doc *gltf.Document, fallbackName string) (model.Model, error) {
	meshes, err := newGLTFMeshExtractor(doc).ExtractAllMeshes()
	if err != nil {
		return nil, err
	}

	var skeleton *model.Skeleton
	if len(doc.Skins) > 0 {
		skeleton, err = newGLTFSkeletonExtractor(doc).ExtractSkeleton(0)
		if err != nil {
			return nil, fmt.Errorf("skeleton: %w", err)
		}
	}

	clips, err := newGLTFAnimationExtractor(doc).ExtractAllAnimations()
	if err != nil {
		return nil, err
	}

	return model.NewModel(
		model.WithName(gltfModelName(doc, fallbackName)),
		model.WithMeshes(meshes...),
		model.WithSkeleton(skeleton),
		model.WithAnimations(clips),
	), nil
}

// gltfModelName prefers the default scene name, then the file name without extension.
func gltfModelName(doc *gltf.Document, fallback string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) && doc.Scenes[*doc.Scene].Name != "" {
		return doc.Scenes[*doc.Scene].Name
	}
	base := filepath.Base(fallback)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
