package stlio

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// WriteBinary encodes a triangle soup as binary STL. name is stored in the
// 80-byte header, truncated if longer. Each facet carries the unit normal of
// its winding, or zero for a degenerate triangle.
func WriteBinary(w io.Writer, name string, pos []float32) error {
	if len(pos)%9 != 0 {
		return errors.Wrapf(ErrPartialTriangle, "got %d floats", len(pos))
	}
	n := len(pos) / 9
	if uint64(n) > math.MaxUint32 {
		return errors.Errorf("stlio: %d triangles exceed the binary STL limit", n)
	}

	bw := bufio.NewWriter(w)
	var header [headerSize + 4]byte
	copy(header[:headerSize], name)
	binary.LittleEndian.PutUint32(header[headerSize:], uint32(n))
	if _, err := bw.Write(header[:]); err != nil {
		return errors.Wrap(err, "stlio: write header")
	}

	var rec [recordSize]byte
	for t := 0; t < n; t++ {
		p := pos[t*9 : t*9+9]
		normal := facetNormal(p)
		put := func(off int, v float32) {
			binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(v))
		}
		for c := 0; c < 3; c++ {
			put(4*c, normal[c])
		}
		for c := 0; c < 9; c++ {
			put(12+4*c, p[c])
		}
		if _, err := bw.Write(rec[:]); err != nil {
			return errors.Wrapf(err, "stlio: write triangle %d", t)
		}
	}
	return errors.Wrap(bw.Flush(), "stlio: flush")
}

func facetNormal(p []float32) mgl32.Vec3 {
	a := mgl32.Vec3{p[0], p[1], p[2]}
	b := mgl32.Vec3{p[3], p[4], p[5]}
	c := mgl32.Vec3{p[6], p[7], p[8]}
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}
