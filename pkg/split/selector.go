package split

import (
	"math"

	"github.com/chazu/bodysplit/pkg/geom"
)

const pi = float32(math.Pi)

// SelectNeighbor picks, among the triangles that share the edge v1->v2 with
// opposite winding, the one whose normal makes the largest signed angle with
// the normal of (v1, v2, v3) about the edge, as ranked by geom.AngleRank of
// ((n x c) . edge, n . c). It returns the position in candidates.
//
// A candidate whose angle is within eps of pi folds back onto the current
// triangle and is ranked last. Ties keep the earliest candidate. candidates
// must not be empty.
func SelectNeighbor(v1, v2, v3 geom.Vector3, candidates []TriangleInfo) int {
	switch len(candidates) {
	case 0:
		panic("split: SelectNeighbor called with no candidates")
	case 1:
		return 0
	}

	edge := v2.Sub(v1)
	n := geom.TriangleNormal(v1, v2, v3)
	eps := 0.001 * edge.Len()

	best := 0
	bestAngle := float32(math.Inf(-1))
	for i, c := range candidates {
		dot := n.Dot(c.Normal)
		cross := n.Cross(c.Normal).Dot(edge)
		angle := geom.AngleRank(cross, dot)
		if angle > pi-eps {
			angle = -pi
		}
		if angle > bestAngle {
			best = i
			bestAngle = angle
		}
	}
	return best
}
