package split

import (
	"github.com/chazu/bodysplit/pkg/geom"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Traverse groups the triangles of pos into bodies. Seeds are taken in
// ascending index order and each body grows depth first from its seed, so
// bodies come out ordered by their lowest member and each body lists its
// triangles in visit order.
func Traverse(pos []float32, idx *Index) [][]int {
	n := len(pos) / FloatsPerTriangle
	visited := make([]bool, n)
	stack := arraystack.New()

	var bodies [][]int
	var body []int
	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		if !stack.Empty() || len(body) != 0 {
			panic("split: traversal state not reset between bodies")
		}

		visited[seed] = true
		stack.Push(seed)
		for !stack.Empty() {
			top, _ := stack.Pop()
			cur := top.(int)
			body = append(body, cur)

			v1, v2, v3 := Vertices(pos, cur)
			for _, c := range [3][3]geom.Vector3{{v1, v2, v3}, {v2, v3, v1}, {v3, v1, v2}} {
				e := geom.Edge{From: c[0], To: c[1]}
				candidates := idx.Lookup(e.Reverse())
				if len(candidates) == 0 {
					continue
				}
				next := candidates[SelectNeighbor(c[0], c[1], c[2], candidates)].Index
				if !visited[next] {
					visited[next] = true
					stack.Push(next)
				}
			}
		}

		bodies = append(bodies, body)
		body = nil
	}
	return bodies
}
