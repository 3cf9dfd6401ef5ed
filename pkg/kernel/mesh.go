package kernel

// Mesh is a triangle soup: nine floats per triangle, no shared indices.
// This is the form the splitter consumes and the STL writer emits.
type Mesh struct {
	Positions []float32 `json:"positions"` // [x0,y0,z0, x1,y1,z1, x2,y2,z2, ...]
	PartName  string    `json:"partName"`  // which scene part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Bounds returns the axis-aligned bounding box of the vertices. ok is false
// for an empty mesh.
func (m *Mesh) Bounds() (min, max [3]float32, ok bool) {
	return Bounds(m.Positions)
}

// Bounds returns the axis-aligned bounding box of a flat position buffer.
func Bounds(pos []float32) (min, max [3]float32, ok bool) {
	if len(pos) < 3 {
		return min, max, false
	}
	copy(min[:], pos[:3])
	copy(max[:], pos[:3])
	for i := 3; i+2 < len(pos); i += 3 {
		for a := 0; a < 3; a++ {
			v := pos[i+a]
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max, true
}

// Merge concatenates the soups of meshes in order. Nil meshes are skipped.
func Merge(meshes []*Mesh) []float32 {
	n := 0
	for _, m := range meshes {
		if m != nil {
			n += len(m.Positions)
		}
	}
	out := make([]float32, 0, n)
	for _, m := range meshes {
		if m != nil {
			out = append(out, m.Positions...)
		}
	}
	return out
}
