package engine

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/bodysplit/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: segment-count -> segment_count
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// linePrefix marks the source line injected by markShapeLines.
const linePrefix = "__line_"

// shapeForms are the builtins whose nodes record the line they were
// written on.
var shapeForms = map[string]bool{
	"box":      true,
	"cylinder": true,
	"triangle": true,
	"place":    true,
	"defpart":  true,
}

// markShapeLines inserts "__line_N" as the first argument of every shape
// form, so builtins can stamp nodes with their source line. It runs on
// preprocessed source, which keeps line breaks where the user wrote them.
func markShapeLines(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/8)
	line := 1
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			j := i + 1
			for j < len(b) && b[j] != c {
				if c == '"' && b[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(b))
			line += bytes.Count(b[i:j], []byte{'\n'})
			out = append(out, b[i:j]...)
			i = j
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			j := i
			for j < len(b) && b[j] != '\n' {
				j++
			}
			out = append(out, b[i:j]...)
			i = j
		case c == '(':
			j := i + 1
			for j < len(b) && isIdentChar(b[j]) {
				j++
			}
			out = append(out, b[i:j]...)
			if shapeForms[string(b[i+1:j])] {
				out = append(out, fmt.Sprintf(` "%s%d"`, linePrefix, line)...)
			}
			i = j
		default:
			if c == '\n' {
				line++
			}
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// takeLine strips the line marker from args, returning 0 when absent.
func takeLine(args []zygo.Sexp) (int, []zygo.Sexp) {
	if len(args) == 0 {
		return 0, args
	}
	str, ok := args[0].(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, linePrefix) {
		return 0, args
	}
	n, err := strconv.Atoi(str.S[len(linePrefix):])
	if err != nil {
		return 0, args
	}
	return n, args[1:]
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a scene.Vec3.
type sexpVec3 struct {
	vec scene.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value is a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected whole number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (scene.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (scene.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return scene.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSegments reads a vec3 of whole numbers, as used by box :segments.
func toSegments(s zygo.Sexp) ([3]int, error) {
	v, err := toVec3(s)
	if err != nil {
		return [3]int{}, err
	}
	out := [3]int{int(v.X), int(v.Y), int(v.Z)}
	if float64(out[0]) != v.X || float64(out[1]) != v.Y || float64(out[2]) != v.Z {
		return [3]int{}, fmt.Errorf("segments must be whole numbers, got %s", v)
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// defaultCylinderSegments is used when (cylinder ...) omits :segments.
const defaultCylinderSegments = 32

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins populate the provided Scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: scene.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (box :size (vec3 10 20 5) :segments (vec3 2 2 1))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		line, args := takeLine(args)
		pa := parseArgs(args)
		bd := scene.BoxData{Segments: [3]int{1, 1, 1}}

		size, ok := pa.kw["size"]
		if !ok && len(pa.positional) > 0 {
			size, ok = pa.positional[0], true
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("box requires :size")
		}
		v, err := toVec3(size)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
		}
		bd.Size = v

		if v, ok := pa.kw["segments"]; ok {
			segs, err := toSegments(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: segments: %w", err)
			}
			bd.Segments = segs
		}

		return addPrimitive(s, "box", line, bd), nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :radius 5 :height 20 :segments 24)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		line, args := takeLine(args)
		pa := parseArgs(args)
		cd := scene.CylinderData{Segments: defaultCylinderSegments}

		v, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder requires :radius")
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		cd.Radius = r

		v, ok = pa.kw["height"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder requires :height")
		}
		h, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		cd.Height = h

		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: segments: %w", err)
			}
			cd.Segments = n
		}

		return addPrimitive(s, "cylinder", line, cd), nil
	})

	// -----------------------------------------------------------------------
	// (triangle (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("triangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		line, args := takeLine(args)
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("triangle requires exactly 3 vertices, got %d", len(args))
		}

		pos := make([]float32, 0, 9)
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("triangle: vertex %d: %w", i+1, err)
			}
			pos = append(pos, float32(v.X), float32(v.Y), float32(v.Z))
		}

		return addPrimitive(s, "triangle", line, scene.TrianglesData{Positions: pos}), nil
	})

	// -----------------------------------------------------------------------
	// (place shape :at (vec3 0 0 19) :rotate (vec3 0 0 90))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		line, args := takeLine(args)
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a shape as first argument")
		}

		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		td := scene.TransformData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			td.Rotation = &vec
		}

		node := &scene.Node{
			ID:       s.NewID("place"),
			Kind:     scene.NodeTransform,
			Line:     line,
			Children: []scene.NodeID{childID},
			Data:     td,
		}
		s.AddNode(node)

		return &sexpNodeRef{id: node.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (defpart "name" shape...)
	// -----------------------------------------------------------------------
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		line, args := takeLine(args)
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and at least one shape")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}
		if s.Lookup(partName) != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: part %q already defined", partName)
		}

		var children []scene.NodeID
		for i := 1; i < len(args); i++ {
			items, err := sexpListToSlice(args[i])
			if err != nil {
				items = args[i : i+1]
			}
			for _, item := range items {
				id, err := toNodeRef(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("defpart: shape %d: %w", i, err)
				}
				children = append(children, id)
			}
		}

		node := &scene.Node{
			ID:       s.NewID("part"),
			Kind:     scene.NodePart,
			Name:     partName,
			Line:     line,
			Children: children,
			Data:     scene.PartData{},
		}
		s.AddNode(node)
		s.AddRoot(node.ID)

		return &sexpNodeRef{id: node.ID, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (part "name")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}

		n := s.Lookup(partName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}

		return &sexpNodeRef{id: n.ID, name: partName}, nil
	})
}

// addPrimitive records a primitive node and returns a reference to it.
func addPrimitive(s *scene.Scene, kind string, line int, data scene.NodeData) *sexpNodeRef {
	node := &scene.Node{
		ID:   s.NewID(kind),
		Kind: scene.NodePrimitive,
		Line: line,
		Data: data,
	}
	s.AddNode(node)
	return &sexpNodeRef{id: node.ID}
}
