// Package poly implements the kernel.Kernel interface with exact faceted
// geometry. Every vertex shared between faces is produced by the same
// arithmetic, so the emitted soup is welded bit for bit and splits into one
// body per closed solid.
package poly

import (
	"fmt"
	"math"

	"github.com/chazu/bodysplit/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PolyKernel)(nil)

// DefaultCylinderSegments is used when a cylinder asks for fewer than three.
const DefaultCylinderSegments = 32

// polySolid is a soup held in float64 until it is meshed.
type polySolid struct {
	pos []float64
}

// BoundingBox returns the axis-aligned bounding box.
func (s *polySolid) BoundingBox() (min, max [3]float64) {
	if len(s.pos) < 3 {
		return min, max
	}
	copy(min[:], s.pos[:3])
	copy(max[:], s.pos[:3])
	for i := 3; i+2 < len(s.pos); i += 3 {
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], s.pos[i+a])
			max[a] = math.Max(max[a], s.pos[i+a])
		}
	}
	return min, max
}

// PolyKernel implements kernel.Kernel with triangle soups.
type PolyKernel struct{}

// New returns a new PolyKernel.
func New() *PolyKernel {
	return &PolyKernel{}
}

func unwrap(s kernel.Solid) *polySolid {
	return s.(*polySolid)
}

// coord places grid line i of n along an edge of the given size. The end
// points are returned exactly so neighbouring faces agree on them.
func coord(i, n int, size float64) float64 {
	switch i {
	case 0:
		return 0
	case n:
		return size
	}
	return size * float64(i) / float64(n)
}

// Box creates a box spanning [0,x]x[0,y]x[0,z], each face divided into a
// segments[a] x segments[b] grid of quads, two triangles per quad.
func (k *PolyKernel) Box(x, y, z float64, segments [3]int) kernel.Solid {
	size := [3]float64{x, y, z}
	for a := range segments {
		if segments[a] < 1 {
			segments[a] = 1
		}
	}

	var pos []float64
	for axis := 0; axis < 3; axis++ {
		for _, outward := range []bool{false, true} {
			u, v := (axis+1)%3, (axis+2)%3
			if !outward {
				u, v = v, u
			}
			fixed := 0.0
			if outward {
				fixed = size[axis]
			}
			point := func(i, j int) [3]float64 {
				var p [3]float64
				p[axis] = fixed
				p[u] = coord(i, segments[u], size[u])
				p[v] = coord(j, segments[v], size[v])
				return p
			}
			for i := 0; i < segments[u]; i++ {
				for j := 0; j < segments[v]; j++ {
					p00, p10 := point(i, j), point(i+1, j)
					p11, p01 := point(i+1, j+1), point(i, j+1)
					pos = appendTri(pos, p00, p10, p11)
					pos = appendTri(pos, p00, p11, p01)
				}
			}
		}
	}
	return &polySolid{pos: pos}
}

// Cylinder creates a closed prism approximating a cylinder, centred on the
// origin with its axis along Z.
func (k *PolyKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments < 3 {
		segments = DefaultCylinderSegments
	}
	lo, hi := -height/2, height/2
	ring := make([][2]float64, segments)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = [2]float64{radius * math.Cos(theta), radius * math.Sin(theta)}
	}
	bottom := func(i int) [3]float64 { p := ring[i%segments]; return [3]float64{p[0], p[1], lo} }
	top := func(i int) [3]float64 { p := ring[i%segments]; return [3]float64{p[0], p[1], hi} }
	cb, ct := [3]float64{0, 0, lo}, [3]float64{0, 0, hi}

	pos := make([]float64, 0, segments*4*9)
	for i := 0; i < segments; i++ {
		pos = appendTri(pos, bottom(i), bottom(i+1), top(i+1))
		pos = appendTri(pos, bottom(i), top(i+1), top(i))
		pos = appendTri(pos, ct, top(i), top(i+1))
		pos = appendTri(pos, cb, bottom(i+1), bottom(i))
	}
	return &polySolid{pos: pos}
}

func appendTri(pos []float64, a, b, c [3]float64) []float64 {
	return append(pos, a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2])
}

// Translate moves a solid by (x, y, z).
func (k *PolyKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	pos := append([]float64(nil), unwrap(s).pos...)
	kernel.TranslatePositions(pos, x, y, z)
	return &polySolid{pos: pos}
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *PolyKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	pos := append([]float64(nil), unwrap(s).pos...)
	kernel.RotatePositions(pos, x, y, z)
	return &polySolid{pos: pos}
}

// ToMesh narrows the solid to a float32 soup.
func (k *PolyKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ps, ok := s.(*polySolid)
	if !ok {
		return nil, fmt.Errorf("poly: foreign solid %T", s)
	}
	return &kernel.Mesh{Positions: kernel.Narrow(ps.pos)}, nil
}
