package scene

import "fmt"

// NodeID identifies a node within one Scene.
type NodeID string

// Short returns the ID in the form used in messages.
func (id NodeID) Short() string {
	return string(id)
}

// Vec3 is a double-precision vector used for sizes and placements.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}
