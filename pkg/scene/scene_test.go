package scene

import (
	"strings"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := New()
	if s.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if s.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if s.NodeCount() != 0 {
		t.Errorf("empty scene should have 0 nodes, got %d", s.NodeCount())
	}
}

func TestNewIDUnique(t *testing.T) {
	s := New()
	a, b := s.NewID("box"), s.NewID("box")
	if a == b {
		t.Fatalf("NewID returned %q twice", a)
	}
	if !strings.HasPrefix(string(a), "box#") {
		t.Errorf("id %q should carry its prefix", a)
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	s := New()

	boxID := s.NewID("box")
	s.AddNode(&Node{ID: boxID, Kind: NodePrimitive, Data: BoxData{Size: Vec3{1, 2, 3}, Segments: [3]int{1, 1, 1}}})
	partID := s.NewID("part")
	s.AddNode(&Node{ID: partID, Kind: NodePart, Name: "block", Children: []NodeID{boxID}, Data: PartData{}})
	s.AddRoot(partID)

	if s.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", s.NodeCount())
	}

	found := s.Lookup("block")
	if found == nil {
		t.Fatal("Lookup('block') returned nil")
	}
	if found.ID != partID {
		t.Errorf("lookup returned wrong node")
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup('missing') should return nil")
	}

	children := s.Children(found)
	if len(children) != 1 || children[0].ID != boxID {
		t.Errorf("Children = %v, want [%s]", children, boxID)
	}

	parts := s.Parts()
	if len(parts) != 1 || parts[0].Name != "block" {
		t.Errorf("Parts() = %v", parts)
	}
}

func TestAdoptOrphans(t *testing.T) {
	s := New()
	a := s.NewID("box")
	s.AddNode(&Node{ID: a, Kind: NodePrimitive, Data: BoxData{Size: Vec3{1, 1, 1}}})
	b := s.NewID("box")
	s.AddNode(&Node{ID: b, Kind: NodePrimitive, Data: BoxData{Size: Vec3{1, 1, 1}}})
	p := s.NewID("place")
	s.AddNode(&Node{ID: p, Kind: NodeTransform, Children: []NodeID{b}, Data: TransformData{}})

	s.AdoptOrphans()
	if len(s.Roots) != 2 || s.Roots[0] != a || s.Roots[1] != p {
		t.Fatalf("Roots = %v, want [%s %s]", s.Roots, a, p)
	}

	s.AdoptOrphans()
	if len(s.Roots) != 2 {
		t.Fatalf("second AdoptOrphans added roots: %v", s.Roots)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    NodeData
		wantErr string
	}{
		{"good box", BoxData{Size: Vec3{1, 1, 1}, Segments: [3]int{1, 1, 1}}, ""},
		{"zero box", BoxData{Size: Vec3{0, 1, 1}, Segments: [3]int{1, 1, 1}}, "dimension X"},
		{"negative box", BoxData{Size: Vec3{1, 1, -2}, Segments: [3]int{1, 1, 1}}, "dimension Z"},
		{"box segments", BoxData{Size: Vec3{1, 1, 1}, Segments: [3]int{1, 0, 1}}, "segments[1]"},
		{"good cylinder", CylinderData{Radius: 1, Height: 2, Segments: 8}, ""},
		{"flat cylinder", CylinderData{Radius: 1, Height: 0, Segments: 8}, "height"},
		{"coarse cylinder", CylinderData{Radius: 1, Height: 1, Segments: 2}, "segments"},
		{"good triangles", TrianglesData{Positions: make([]float32, 9)}, ""},
		{"ragged triangles", TrianglesData{Positions: make([]float32, 7)}, "7 floats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddNode(&Node{ID: s.NewID("n"), Kind: NodePrimitive, Data: tt.data})
			errs := s.Validate()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if !strings.Contains(errs[0].Message, tt.wantErr) {
				t.Errorf("error %q does not mention %q", errs[0].Message, tt.wantErr)
			}
		})
	}
}

func TestValidateStructure(t *testing.T) {
	s := New()
	empty := s.NewID("part")
	s.AddNode(&Node{ID: empty, Kind: NodePart, Name: "empty", Data: PartData{}})
	dangling := s.NewID("place")
	s.AddNode(&Node{ID: dangling, Kind: NodeTransform, Children: []NodeID{"nope#1"}, Data: TransformData{}})

	errs := s.Validate()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].NodeID != empty || !strings.Contains(errs[0].Message, "no shapes") {
		t.Errorf("first error = %v", errs[0])
	}
	if errs[1].NodeID != dangling || !strings.Contains(errs[1].Message, "does not exist") {
		t.Errorf("second error = %v", errs[1])
	}
}

func TestNodeKindString(t *testing.T) {
	for kind, want := range map[NodeKind]string{
		NodePrimitive: "primitive",
		NodeTransform: "transform",
		NodePart:      "part",
		NodeKind(99):  "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
