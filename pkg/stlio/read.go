// Package stlio reads and writes STL files as triangle soups.
package stlio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/chazu/bodysplit/pkg/kernel"
	"github.com/pkg/errors"
)

const (
	headerSize = 80
	recordSize = 50 // normal, three vertices, attribute count
)

// Read decodes an STL stream, detecting binary or ASCII encoding. Facet
// normals are ignored; the winding of the vertices is kept as stored.
func Read(r io.Reader) (*kernel.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "stlio: read")
	}

	switch {
	case isBinary(data):
		return readBinary(data)
	case isASCII(data):
		m, err := readASCII(data)
		if err == nil || len(data) < headerSize+4 {
			return m, err
		}
		// A binary header starting with "solid" whose size is off.
		return readBinary(data)
	case len(data) < headerSize+4:
		return nil, ErrBadHeader
	}
	return readBinary(data)
}

// isBinary reports whether the declared triangle count matches the size
// exactly. Binary files may start with "solid" too, so this check comes
// first.
func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == headerSize+4+uint64(n)*recordSize
}

func isASCII(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}

func readBinary(data []byte) (*kernel.Mesh, error) {
	n := binary.LittleEndian.Uint32(data[headerSize:])
	body := data[headerSize+4:]
	if uint64(len(body)) < uint64(n)*recordSize {
		return nil, errors.Wrapf(ErrTruncated, "header declares %d triangles, %d bytes remain", n, len(body))
	}

	pos := make([]float32, 0, int(n)*9)
	for i := 0; i < int(n); i++ {
		rec := body[i*recordSize:]
		const start = 3 * 4 // skip normal
		for c := 0; c < 9; c++ {
			pos = append(pos, math.Float32frombits(binary.LittleEndian.Uint32(rec[start+4*c:])))
		}
	}

	name := string(bytes.TrimRight(data[:headerSize], " \x00"))
	return &kernel.Mesh{Positions: pos, PartName: name}, nil
}
