// Package split partitions a triangle soup into its connected bodies.
//
// A soup is a flat []float32 holding nine floats per triangle. Two triangles
// belong to the same body when they share an edge with opposite winding.
// Vertices are matched by bit pattern only; no welding tolerance is applied.
// Where more than two triangles meet at an edge, the neighbor that turns the
// least around the shared edge is followed, so that bodies touching along an
// edge or a face come apart cleanly.
//
// The package is single-threaded and deterministic apart from ExtractAll,
// which copies finished bodies in parallel.
package split
