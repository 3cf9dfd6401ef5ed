package scene

// NodeKind enumerates the types of nodes in a scene.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // solid or raw triangles
	NodeTransform                 // spatial transformation (place)
	NodePart                      // named output part (defpart)
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodePart:
		return "part"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of a scene.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Line     int      `json:"line,omitempty"` // source line, 0 if unknown
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
