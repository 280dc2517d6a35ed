package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

// loaderBackend defines the generic interface for loading models from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full model import from the given file path.
	// This extracts meshes, skeleton and animations.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a self-contained model (GLB or glTF with embedded buffers) from a stream.
	//
	// Parameters:
	//   - name: fallback model name
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)
}
