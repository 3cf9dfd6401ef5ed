package scene

import "fmt"

// Scene is the data structure produced by script evaluation. Each
// evaluation produces a new scene.
type Scene struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`

	order   []NodeID
	counter int
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// NewID returns an ID unique within the scene, derived from prefix.
func (s *Scene) NewID(prefix string) NodeID {
	s.counter++
	return NodeID(fmt.Sprintf("%s#%d", prefix, s.counter))
}

// AddNode adds a node to the scene. It does not check for duplicates.
func (s *Scene) AddNode(n *Node) {
	if _, exists := s.Nodes[n.ID]; !exists {
		s.order = append(s.order, n.ID)
	}
	s.Nodes[n.ID] = n
	if n.Name != "" {
		s.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the scene.
func (s *Scene) AddRoot(id NodeID) {
	s.Roots = append(s.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (s *Scene) Lookup(name string) *Node {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Nodes[id]
}

// Get returns the node with the given ID, or nil.
func (s *Scene) Get(id NodeID) *Node {
	return s.Nodes[id]
}

// Children returns the child nodes of the given node.
func (s *Scene) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := s.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Parts returns the part nodes in creation order.
func (s *Scene) Parts() []*Node {
	var parts []*Node
	for _, id := range s.order {
		if n := s.Nodes[id]; n.Kind == NodePart {
			parts = append(parts, n)
		}
	}
	return parts
}

// NodeCount returns the total number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// AdoptOrphans makes every node that is neither a root nor a child of
// another node a root, in creation order. Shapes built at the top level of
// a script without defpart still reach the output this way.
func (s *Scene) AdoptOrphans() {
	referenced := make(map[NodeID]bool, len(s.Nodes))
	for _, id := range s.Roots {
		referenced[id] = true
	}
	for _, n := range s.Nodes {
		for _, c := range n.Children {
			referenced[c] = true
		}
	}
	for _, id := range s.order {
		if !referenced[id] {
			s.AddRoot(id)
		}
	}
}
