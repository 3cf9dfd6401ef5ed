package split

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cubeVertices = [8][3]float32{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

var cubeFaces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, {4, 5, 6}, {4, 6, 7},
	{1, 2, 6}, {1, 6, 5}, {0, 7, 3}, {0, 4, 7},
	{3, 6, 2}, {3, 7, 6}, {0, 1, 5}, {0, 5, 4},
}

// cube returns a unit cube centred on (dx, dy, dz) with outward winding.
func cube(dx, dy, dz float32) []float32 {
	out := make([]float32, 0, len(cubeFaces)*FloatsPerTriangle)
	for _, f := range cubeFaces {
		for _, vi := range f {
			v := cubeVertices[vi]
			out = append(out, v[0]+dx, v[1]+dy, v[2]+dz)
		}
	}
	return out
}

type triKey [9]uint32

// triangles counts the triangles of a buffer by bit pattern.
func triangles(buf []float32) map[triKey]int {
	m := make(map[triKey]int)
	for o := 0; o+FloatsPerTriangle <= len(buf); o += FloatsPerTriangle {
		var k triKey
		for j := range k {
			k[j] = math.Float32bits(buf[o+j])
		}
		m[k]++
	}
	return m
}

func concat(parts ...[]float32) []float32 {
	var out []float32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(nil))
	assert.Empty(t, Split([]float32{}))
}

func TestSplitMalformedLength(t *testing.T) {
	assert.Empty(t, Split(make([]float32, 10)))
	assert.Empty(t, Split(make([]float32, 8)))

	_, err := SplitWithOptions(make([]float32, 10), Options{})
	require.Error(t, err)
	assert.Equal(t, ErrMalformedInput, errors.Cause(err))
	assert.Contains(t, err.Error(), "10 floats")
}

func TestSplitSingleTriangle(t *testing.T) {
	in := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	parts := Split(in)
	require.Len(t, parts, 1)
	assert.Equal(t, in, parts[0])
}

func TestSplitDegenerateTriangle(t *testing.T) {
	in := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}
	parts := Split(in)
	require.Len(t, parts, 1)
	assert.Equal(t, in, parts[0])
}

func TestSplitDisjointTriangles(t *testing.T) {
	a := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	b := []float32{10, 0, 0, 11, 0, 0, 10, 1, 0}
	parts := Split(concat(a, b))
	require.Len(t, parts, 2)
	assert.Equal(t, a, parts[0])
	assert.Equal(t, b, parts[1])
}

func TestSplitCube(t *testing.T) {
	in := cube(0, 0, 0)
	parts := Split(in)
	require.Len(t, parts, 1)
	assert.Len(t, parts[0], 12*FloatsPerTriangle)
	assert.Equal(t, triangles(in), triangles(parts[0]))
}

func TestSplitSeparatedCubes(t *testing.T) {
	a, b := cube(0, 0, 0), cube(10, 0, 0)
	parts := Split(concat(a, b))
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 108)
	assert.Len(t, parts[1], 108)
	assert.Equal(t, triangles(a), triangles(parts[0]))
	assert.Equal(t, triangles(b), triangles(parts[1]))
}

func TestSplitContactingCubes(t *testing.T) {
	a, b := cube(0, 0, 0), cube(1, 0, 0)
	parts := Split(concat(a, b))
	require.Len(t, parts, 2)
	assert.Equal(t, triangles(a), triangles(parts[0]))
	assert.Equal(t, triangles(b), triangles(parts[1]))
}

func TestSplitFoldedEdgeChoosesTightestTurn(t *testing.T) {
	// Four triangles fan around the z axis edge. The pairs that close the
	// smallest angle belong together.
	t0 := []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}
	t1 := []float32{0, 0, 0, 0, 0, 1, 1, 0.1, 0}
	t2 := []float32{0, 0, 0, 2, 0.1999, 0, 0, 0, 1}
	t3 := []float32{0, 0, 0, 0, 0, 1, 2, -0.2, 0}

	parts := Split(concat(t0, t1, t2, t3))
	require.Len(t, parts, 2)
	assert.Equal(t, concat(t0, t1), parts[0])
	assert.Equal(t, concat(t2, t3), parts[1])
}

func TestSplitStressAllTriples(t *testing.T) {
	// Eight points on each of two stacked circles, every ordered triple.
	var pts [][3]float32
	for k := 0; k < 8; k++ {
		a := float64(2 * float32(math.Pi) * float32(k) / 8)
		x, y := float32(math.Cos(a)), float32(math.Sin(a))
		pts = append(pts, [3]float32{x, y, 0}, [3]float32{x, y, 1})
	}
	var in []float32
	for i := range pts {
		for j := range pts {
			for k := range pts {
				if i == j || j == k || i == k {
					continue
				}
				in = append(in, pts[i][:]...)
				in = append(in, pts[j][:]...)
				in = append(in, pts[k][:]...)
			}
		}
	}
	n := len(in) / FloatsPerTriangle
	require.Equal(t, 16*15*14, n)

	parts := Split(in)
	assert.Greater(t, len(parts), 1)
	assert.Less(t, len(parts), n)
	assert.Equal(t, triangles(in), triangles(concat(parts...)))
}

func TestSplitDeterministic(t *testing.T) {
	in := concat(cube(0, 0, 0), cube(1, 0, 0), cube(0, 5, 0))
	first := Split(in)
	second := Split(in)
	assert.Equal(t, first, second)
}

func TestSplitWithOptionsStats(t *testing.T) {
	in := concat(cube(0, 0, 0), cube(3, 0, 0))
	res, err := SplitWithOptions(in, Options{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 24, res.TriangleCount)
	assert.Equal(t, 72, res.EdgeCount)
	assert.Equal(t, 0, res.NonManifoldEdges)
	require.Len(t, res.Bodies, 2)
	assert.Equal(t, 0, res.Bodies[0][0])
	assert.Equal(t, 12, res.Bodies[1][0])
	assert.Equal(t, Split(in), res.Parts)
}

func TestSplitWithOptionsEmpty(t *testing.T) {
	res, err := SplitWithOptions(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Parts)
	assert.Equal(t, 0, res.TriangleCount)
}

func TestContactingCubesShareEdges(t *testing.T) {
	res, err := SplitWithOptions(concat(cube(0, 0, 0), cube(1, 0, 0)), Options{})
	require.NoError(t, err)
	assert.Positive(t, res.NonManifoldEdges)
}

func BenchmarkSplitCube(b *testing.B) {
	var in []float32
	for i := 0; i < 64; i++ {
		in = append(in, cube(float32(i)*2, 0, 0)...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Split(in)
	}
}
