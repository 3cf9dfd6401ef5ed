// Package kernel defines the abstract geometry kernel interface.
// Implementations (poly, sdfx) build solids from primitives and emit them
// as triangle soups. The kernel abstraction allows swapping backends
// without changing the rest of the system.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box spans [0,x]x[0,y]x[0,z]; segments subdivides each
	// axis where the backend supports it. Cylinder is centred on the
	// origin with its axis along Z.
	Box(x, y, z float64, segments [3]int) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
