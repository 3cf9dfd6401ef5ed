package split

import "github.com/pkg/errors"

// Split partitions pos into bodies and returns one triangle buffer per body,
// ordered by each body's lowest triangle index. An empty buffer, or one whose
// length is not a multiple of nine, yields nil.
func Split(pos []float32) [][]float32 {
	if len(pos) == 0 || len(pos)%FloatsPerTriangle != 0 {
		return nil
	}
	idx := BuildIndex(pos)
	return ExtractAll(Traverse(pos, idx), pos, 1)
}

// Options tunes SplitWithOptions.
type Options struct {
	// Workers bounds the goroutines used to copy bodies out. Zero means
	// GOMAXPROCS. Traversal itself is always sequential.
	Workers int
}

// Result is a partition together with the statistics gathered on the way.
type Result struct {
	Bodies           [][]int
	Parts            [][]float32
	TriangleCount    int
	EdgeCount        int
	NonManifoldEdges int
}

// SplitWithOptions behaves like Split but reports a malformed buffer as
// ErrMalformedInput and returns the triangle indices of every body alongside
// the copied parts. An empty buffer is valid and yields an empty Result.
func SplitWithOptions(pos []float32, opts Options) (*Result, error) {
	if len(pos)%FloatsPerTriangle != 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "got %d floats", len(pos))
	}
	idx := BuildIndex(pos)
	bodies := Traverse(pos, idx)
	return &Result{
		Bodies:           bodies,
		Parts:            ExtractAll(bodies, pos, opts.Workers),
		TriangleCount:    len(pos) / FloatsPerTriangle,
		EdgeCount:        idx.Len(),
		NonManifoldEdges: idx.NonManifold(),
	}, nil
}
