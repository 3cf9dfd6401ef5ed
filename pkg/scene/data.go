package scene

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// BoxData is an axis-aligned box with its minimum corner at the origin.
type BoxData struct {
	Size     Vec3   `json:"size"`
	Segments [3]int `json:"segments"` // grid cells per axis, at least 1
}

func (BoxData) nodeData() {}

// CylinderData is a cylinder centred on the origin with its axis along Z.
type CylinderData struct {
	Radius   float64 `json:"radius"`
	Height   float64 `json:"height"`
	Segments int     `json:"segments"` // facets around the axis
}

func (CylinderData) nodeData() {}

// TrianglesData is a literal triangle soup, nine floats per triangle.
type TrianglesData struct {
	Positions []float32 `json:"positions"`
}

func (TrianglesData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to a child node.
// Rotation is applied before translation.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Part
// ---------------------------------------------------------------------------

// PartData marks a named output part. Its children are merged into one
// mesh.
type PartData struct{}

func (PartData) nodeData() {}
