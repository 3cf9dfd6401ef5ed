package stlio

import (
	"bytes"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/chazu/bodysplit/pkg/kernel"
	"github.com/pkg/errors"
)

type asciiFile struct {
	Solids []*asciiSolid `parser:"@@+"`
}

type asciiSolid struct {
	Name   []string      `parser:"'solid' @(Ident | Number)*"`
	Facets []*asciiFacet `parser:"@@*"`
	End    []string      `parser:"'endsolid' @(Ident | Number)*"`
}

type asciiFacet struct {
	Normal   []float32      `parser:"'facet' 'normal' @Number @Number @Number"`
	Vertices []*asciiVertex `parser:"'outer' 'loop' @@ @@ @@ 'endloop' 'endfacet'"`
}

type asciiVertex struct {
	Coords []float32 `parser:"'vertex' @Number @Number @Number"`
}

var stlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(endsolid|solid|facet|normal|outer|loop|vertex|endloop|endfacet)\b`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `\S+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var stlParser = participle.MustBuild[asciiFile](
	participle.Lexer(stlLexer),
	participle.Elide("Whitespace"),
)

// readASCII parses one or more solids and concatenates their facets. The
// mesh is named after the first solid.
func readASCII(data []byte) (*kernel.Mesh, error) {
	file, err := stlParser.Parse("", bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "stlio: parse ascii")
	}

	var pos []float32
	for _, s := range file.Solids {
		for _, f := range s.Facets {
			for _, v := range f.Vertices {
				pos = append(pos, v.Coords...)
			}
		}
	}
	return &kernel.Mesh{
		Positions: pos,
		PartName:  strings.Join(file.Solids[0].Name, " "),
	}, nil
}
