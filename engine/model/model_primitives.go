package model

// NewPlaneMesh builds a flat quad of the given size centred on the origin in the XZ plane, facing +Y.
//
// Parameters:
//   - name: the mesh name
//   - width: extent along X
//   - depth: extent along Z
//
// Returns:
//   - Mesh: the quad (4 vertices, 2 triangles)
func NewPlaneMesh(name string, width, depth float32) Mesh {
	hw, hd := width/2, depth/2
	return Mesh{
		Name: name,
		Positions: [][3]float32{
			{-hw, 0, -hd},
			{hw, 0, -hd},
			{hw, 0, hd},
			{-hw, 0, hd},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
