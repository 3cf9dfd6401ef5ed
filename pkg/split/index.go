package split

import "github.com/chazu/bodysplit/pkg/geom"

// FloatsPerTriangle is the stride of a triangle soup.
const FloatsPerTriangle = 9

// TriangleInfo is one adjacency entry: a triangle and its cached,
// unnormalized normal.
type TriangleInfo struct {
	Index  int
	Normal geom.Vector3
}

// Index maps every directed edge of a soup to the triangles that contain it
// with that direction, in insertion order.
type Index struct {
	edges map[geom.EdgeKey][]TriangleInfo
}

// Vertices returns the three corners of triangle i.
func Vertices(pos []float32, i int) (geom.Vector3, geom.Vector3, geom.Vector3) {
	o := i * FloatsPerTriangle
	return geom.At(pos, o), geom.At(pos, o+3), geom.At(pos, o+6)
}

// BuildIndex inserts the edges v1->v2, v2->v3, v3->v1 of every triangle.
// Degenerate triangles and repeated edges are inserted unchanged. pos must
// hold a whole number of triangles.
func BuildIndex(pos []float32) *Index {
	n := len(pos) / FloatsPerTriangle
	idx := &Index{edges: make(map[geom.EdgeKey][]TriangleInfo, n*3)}
	for i := 0; i < n; i++ {
		v1, v2, v3 := Vertices(pos, i)
		info := TriangleInfo{Index: i, Normal: geom.TriangleNormal(v1, v2, v3)}
		idx.insert(geom.Edge{From: v1, To: v2}, info)
		idx.insert(geom.Edge{From: v2, To: v3}, info)
		idx.insert(geom.Edge{From: v3, To: v1}, info)
	}
	return idx
}

func (x *Index) insert(e geom.Edge, info TriangleInfo) {
	k := e.Key()
	x.edges[k] = append(x.edges[k], info)
}

// Lookup returns the triangles containing e in the given direction. The
// returned slice is shared with the index and must not be modified.
func (x *Index) Lookup(e geom.Edge) []TriangleInfo {
	return x.edges[e.Key()]
}

// Len returns the number of distinct directed edges.
func (x *Index) Len() int {
	return len(x.edges)
}

// NonManifold counts directed edges shared by more than one triangle.
func (x *Index) NonManifold() int {
	n := 0
	for _, bucket := range x.edges {
		if len(bucket) > 1 {
			n++
		}
	}
	return n
}
