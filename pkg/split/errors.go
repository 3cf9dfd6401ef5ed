package split

import "github.com/pkg/errors"

// ErrMalformedInput is returned by SplitWithOptions when the buffer length is
// not a multiple of nine floats.
var ErrMalformedInput = errors.New("split: buffer length is not a multiple of 9")
