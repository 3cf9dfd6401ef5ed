package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexKey is the raw bit pattern of a Vector3. Two vectors are the same
// vertex only when their keys are identical.
type VertexKey [3]uint32

// Vector3 is an immutable 3D point or direction. Arithmetic goes through
// mgl32; identity is defined by Key, never by float comparison.
type Vector3 mgl32.Vec3

// V3 builds a Vector3 from components.
func V3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// At reads the vector starting at offset i of a flat float buffer.
func At(buf []float32, i int) Vector3 {
	return Vector3{buf[i], buf[i+1], buf[i+2]}
}

// Vec returns the underlying mgl32 vector.
func (v Vector3) Vec() mgl32.Vec3 { return mgl32.Vec3(v) }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3(v.Vec().Add(o.Vec())) }

func (v Vector3) Sub(o Vector3) Vector3 { return Vector3(v.Vec().Sub(o.Vec())) }

func (v Vector3) Mul(s float32) Vector3 { return Vector3(v.Vec().Mul(s)) }

func (v Vector3) Dot(o Vector3) float32 { return v.Vec().Dot(o.Vec()) }

func (v Vector3) Cross(o Vector3) Vector3 { return Vector3(v.Vec().Cross(o.Vec())) }

func (v Vector3) Len() float32 { return v.Vec().Len() }

// Key returns the bit pattern used for hashing. +0 and -0 differ; a NaN
// matches only the same NaN payload.
func (v Vector3) Key() VertexKey {
	return VertexKey{
		math.Float32bits(v[0]),
		math.Float32bits(v[1]),
		math.Float32bits(v[2]),
	}
}

// Equal reports bit-exact equality.
func (v Vector3) Equal(o Vector3) bool {
	return v.Key() == o.Key()
}

// TriangleNormal returns the unnormalized normal (b-a) x (c-a).
func TriangleNormal(a, b, c Vector3) Vector3 {
	return b.Sub(a).Cross(c.Sub(a))
}
