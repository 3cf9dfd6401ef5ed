package scene

import "fmt"

// ValidationError reports a node whose data cannot be built.
type ValidationError struct {
	NodeID  NodeID
	Line    int
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.NodeID.Short(), e.Message)
}

// Validate checks every node in creation order and returns all problems
// found. A nil result means the scene can be tessellated.
func (s *Scene) Validate() []ValidationError {
	var errs []ValidationError
	for _, id := range s.order {
		n := s.Nodes[id]
		errs = append(errs, validateDimensions(n)...)
		errs = append(errs, validateChildren(s, n)...)
	}
	return errs
}

// validateDimensions checks that every primitive has positive extents.
func validateDimensions(n *Node) []ValidationError {
	var errs []ValidationError
	fail := func(format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:  n.ID,
			Line:    n.Line,
			Message: fmt.Sprintf(format, args...),
		})
	}

	switch d := n.Data.(type) {
	case BoxData:
		if d.Size.X <= 0 {
			fail("box dimension X is %.4f, must be positive", d.Size.X)
		}
		if d.Size.Y <= 0 {
			fail("box dimension Y is %.4f, must be positive", d.Size.Y)
		}
		if d.Size.Z <= 0 {
			fail("box dimension Z is %.4f, must be positive", d.Size.Z)
		}
		for a, seg := range d.Segments {
			if seg < 1 {
				fail("box segments[%d] is %d, must be at least 1", a, seg)
			}
		}
	case CylinderData:
		if d.Radius <= 0 {
			fail("cylinder radius is %.4f, must be positive", d.Radius)
		}
		if d.Height <= 0 {
			fail("cylinder height is %.4f, must be positive", d.Height)
		}
		if d.Segments < 3 {
			fail("cylinder segments is %d, must be at least 3", d.Segments)
		}
	case TrianglesData:
		if len(d.Positions) == 0 || len(d.Positions)%9 != 0 {
			fail("triangle data has %d floats, want a positive multiple of 9", len(d.Positions))
		}
	}
	return errs
}

// validateChildren checks structural expectations per node kind.
func validateChildren(s *Scene, n *Node) []ValidationError {
	var errs []ValidationError
	switch n.Kind {
	case NodeTransform:
		if len(n.Children) != 1 {
			errs = append(errs, ValidationError{NodeID: n.ID, Line: n.Line,
				Message: fmt.Sprintf("transform has %d children, want 1", len(n.Children))})
		}
	case NodePart:
		if len(n.Children) == 0 {
			errs = append(errs, ValidationError{NodeID: n.ID, Line: n.Line,
				Message: fmt.Sprintf("part %q has no shapes", n.Name)})
		}
	}
	for _, c := range n.Children {
		if s.Nodes[c] == nil {
			errs = append(errs, ValidationError{NodeID: n.ID, Line: n.Line,
				Message: fmt.Sprintf("child %s does not exist", c.Short())})
		}
	}
	return errs
}
