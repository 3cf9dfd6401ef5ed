// Package tessellate walks a scene and produces triangle soups using a
// geometry kernel. One mesh is produced per root: a part yields a single
// mesh named after it, a bare shape yields a mesh named after its node.
package tessellate

import (
	"fmt"

	"github.com/chazu/bodysplit/pkg/kernel"
	"github.com/chazu/bodysplit/pkg/scene"
)

// frame is one placement on the transform stack.
type frame struct {
	translation scene.Vec3
	rotation    scene.Vec3
}

// transformStack accumulates spatial transforms during scene traversal.
// The innermost placement is applied first.
type transformStack struct {
	frames []frame
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(f frame) {
	ts.frames = append(ts.frames, f)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

// applySolid places a kernel solid by every frame, innermost first.
func (ts *transformStack) applySolid(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		f := ts.frames[i]
		if !f.rotation.IsZero() {
			s = k.Rotate(s, f.rotation.X, f.rotation.Y, f.rotation.Z)
		}
		if !f.translation.IsZero() {
			s = k.Translate(s, f.translation.X, f.translation.Y, f.translation.Z)
		}
	}
	return s
}

// applyPositions places a literal soup by every frame, innermost first.
func (ts *transformStack) applyPositions(pos []float32) []float32 {
	if len(ts.frames) == 0 {
		return append([]float32(nil), pos...)
	}
	wide := kernel.Widen(pos)
	for i := len(ts.frames) - 1; i >= 0; i-- {
		f := ts.frames[i]
		if !f.rotation.IsZero() {
			kernel.RotatePositions(wide, f.rotation.X, f.rotation.Y, f.rotation.Z)
		}
		if !f.translation.IsZero() {
			kernel.TranslatePositions(wide, f.translation.X, f.translation.Y, f.translation.Z)
		}
	}
	return kernel.Narrow(wide)
}

// Tessellate walks the scene and produces one triangle mesh per root
// using the provided geometry kernel. The tessellator is read-only and
// never mutates the scene.
func Tessellate(s *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	ts := newTransformStack()

	for _, rootID := range s.Roots {
		root := s.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := walkNode(s, k, root, ts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		mesh := &kernel.Mesh{Positions: kernel.Merge(collected), PartName: partName(root)}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// partName prefers the node's Name and falls back to its ID.
func partName(n *scene.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

// walkNode recursively traverses a node and its children, collecting meshes.
func walkNode(s *scene.Scene, k kernel.Kernel, n *scene.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case scene.NodePrimitive:
		return handlePrimitive(k, n, ts)

	case scene.NodeTransform:
		return handleTransform(s, k, n, ts)

	case scene.NodePart:
		return handleChildren(s, k, n, ts)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handlePrimitive creates geometry for a primitive node.
func handlePrimitive(k kernel.Kernel, n *scene.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	var solid kernel.Solid

	switch data := n.Data.(type) {
	case scene.BoxData:
		solid = k.Box(data.Size.X, data.Size.Y, data.Size.Z, data.Segments)
	case scene.CylinderData:
		solid = k.Cylinder(data.Height, data.Radius, data.Segments)
	case scene.TrianglesData:
		return []*kernel.Mesh{{Positions: ts.applyPositions(data.Positions)}}, nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	mesh, err := k.ToMesh(ts.applySolid(k, solid))
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
	}
	mesh.PartName = partName(n)

	return []*kernel.Mesh{mesh}, nil
}

// handleTransform pushes the transform, recurses into children, then pops.
func handleTransform(s *scene.Scene, k kernel.Kernel, n *scene.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	td, ok := n.Data.(scene.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	var f frame
	if td.Translation != nil {
		f.translation = *td.Translation
	}
	if td.Rotation != nil {
		f.rotation = *td.Rotation
	}
	ts.push(f)
	defer ts.pop()

	return handleChildren(s, k, n, ts)
}

// handleChildren recurses into children transparently.
func handleChildren(s *scene.Scene, k kernel.Kernel, n *scene.Node, ts *transformStack) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range s.Children(n) {
		collected, err := walkNode(s, k, child, ts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
