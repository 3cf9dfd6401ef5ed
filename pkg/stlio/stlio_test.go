package stlio

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoTriangles = []float32{
	0, 0, 0, 1, 0, 0, 0, 1, 0,
	0, 0, 1, 0, 1, 1, 1, 0, 1,
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "plate", twoTriangles))
	assert.Equal(t, headerSize+4+2*recordSize, buf.Len())

	m, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, twoTriangles, m.Positions)
	assert.Equal(t, "plate", m.PartName)
}

func TestBinaryHeaderStartingWithSolid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "solid looking header", twoTriangles))

	m, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, twoTriangles, m.Positions)
}

func TestWriteBinaryNormals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "", twoTriangles[:9]))

	rec := buf.Bytes()[headerSize+4:]
	var normal [3]float32
	require.NoError(t, binary.Read(bytes.NewReader(rec[:12]), binary.LittleEndian, &normal))
	assert.Equal(t, [3]float32{0, 0, 1}, normal)
	assert.Equal(t, []byte{0, 0}, rec[48:50])
}

func TestWriteBinaryDegenerateNormal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "", []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}))

	var normal [3]float32
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()[headerSize+4:]), binary.LittleEndian, &normal))
	assert.Equal(t, [3]float32{}, normal)
}

func TestWriteBinaryPartialTriangle(t *testing.T) {
	err := WriteBinary(&bytes.Buffer{}, "", []float32{1, 2, 3})
	assert.True(t, errors.Is(err, ErrPartialTriangle))
}

func TestWriteBinaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "empty", nil))

	m, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, m.Positions)
}

func TestReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "", twoTriangles))
	data := buf.Bytes()[:buf.Len()-10]

	_, err := Read(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReadTruncatedSolidHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, "solid exported by a CAD tool", twoTriangles))
	data := buf.Bytes()[:buf.Len()-10]

	_, err := Read(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)
}

func TestReadBadHeader(t *testing.T) {
	_, err := Read(strings.NewReader("not an stl"))
	assert.True(t, errors.Is(err, ErrBadHeader))
}

const asciiCube = `solid corner piece
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 1
      vertex 0.0e0 1.0 1
      vertex 1 -0 1.
    endloop
  endfacet
endsolid corner piece
`

func TestReadASCII(t *testing.T) {
	m, err := Read(strings.NewReader(asciiCube))
	require.NoError(t, err)
	assert.Equal(t, "corner piece", m.PartName)
	assert.Equal(t, twoTriangles, m.Positions)
}

func TestReadASCIIMultipleSolids(t *testing.T) {
	src := "solid a\nfacet normal 0 0 0\nouter loop\nvertex 1 2 3\nvertex 4 5 6\nvertex 7 8 9\nendloop\nendfacet\nendsolid a\n" +
		"solid b\nfacet normal 0 0 0\nouter loop\nvertex -1 -2 -3\nvertex -4 -5 -6\nvertex -7 -8 -9\nendloop\nendfacet\nendsolid\n"

	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "a", m.PartName)
	assert.Len(t, m.Positions, 18)
	assert.Equal(t, float32(-9), m.Positions[17])
}

func TestReadASCIIMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("solid x\nfacet normal 0 0 1\nouter loop\nvertex 1 2\nendloop\n"))
	assert.Error(t, err)
}
