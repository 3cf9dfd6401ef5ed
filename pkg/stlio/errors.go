package stlio

import "github.com/pkg/errors"

var (
	// ErrBadHeader means the input is neither ASCII STL nor long enough to
	// hold a binary STL header.
	ErrBadHeader = errors.New("stlio: not an STL file")

	// ErrTruncated means a binary STL declares more triangles than it holds.
	ErrTruncated = errors.New("stlio: truncated binary STL")

	// ErrPartialTriangle means a position buffer is not a whole number of
	// triangles.
	ErrPartialTriangle = errors.New("stlio: buffer length is not a multiple of 9")
)
