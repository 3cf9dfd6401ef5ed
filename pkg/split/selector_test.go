package split

import (
	"testing"

	"github.com/chazu/bodysplit/pkg/geom"
	"github.com/stretchr/testify/assert"
)

func TestSelectNeighborSingleCandidate(t *testing.T) {
	got := SelectNeighbor(geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0),
		[]TriangleInfo{{Index: 7}})
	assert.Equal(t, 0, got)
}

func TestSelectNeighborEmptyPanics(t *testing.T) {
	assert.Panics(t, func() {
		SelectNeighbor(geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0), nil)
	})
}

func TestSelectNeighborTieKeepsFirst(t *testing.T) {
	n := geom.V3(0, 0, -1)
	got := SelectNeighbor(geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0),
		[]TriangleInfo{{Index: 3, Normal: n}, {Index: 4, Normal: n}})
	assert.Equal(t, 0, got)
}

func TestSelectNeighborRanksFoldBackLast(t *testing.T) {
	// Current triangle lies in z=0 facing +z. The coplanar candidate facing
	// -z folds straight back and must lose to the perpendicular one.
	v1, v2, v3 := geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0)
	candidates := []TriangleInfo{
		{Index: 1, Normal: geom.V3(0, 0, -1)},
		{Index: 2, Normal: geom.V3(0, 1, 0)},
	}
	assert.Equal(t, 1, SelectNeighbor(v1, v2, v3, candidates))
}

func TestBuildIndexLookup(t *testing.T) {
	pos := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	idx := BuildIndex(pos)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 0, idx.NonManifold())

	e := geom.Edge{From: geom.V3(0, 0, 0), To: geom.V3(1, 0, 0)}
	got := idx.Lookup(e)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 0, got[0].Index)
		assert.Equal(t, geom.V3(0, 0, 1), got[0].Normal)
	}
	assert.Empty(t, idx.Lookup(e.Reverse()))
}

func TestBuildIndexKeepsDuplicates(t *testing.T) {
	tri := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	idx := BuildIndex(append(append([]float32{}, tri...), tri...))
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 3, idx.NonManifold())
	got := idx.Lookup(geom.Edge{From: geom.V3(1, 0, 0), To: geom.V3(0, 1, 0)})
	if assert.Len(t, got, 2) {
		assert.Equal(t, 0, got[0].Index)
		assert.Equal(t, 1, got[1].Index)
	}
}

func TestExtractAllWorkerCountInvariant(t *testing.T) {
	var pos []float32
	var bodies [][]int
	for i := 0; i < 13; i++ {
		pos = append(pos, cube(float32(i)*3, 0, 0)...)
		body := make([]int, 12)
		for j := range body {
			body[j] = i*12 + (11 - j)
		}
		bodies = append(bodies, body)
	}
	want := ExtractAll(bodies, pos, 1)
	for _, w := range []int{0, 2, 3, 8, 64} {
		assert.Equal(t, want, ExtractAll(bodies, pos, w), "workers=%d", w)
	}
	assert.Equal(t, pos[11*9:12*9], want[0][:9])
}
