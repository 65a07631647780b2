// Package tessellate walks a scene graph and produces a mesh hierarchy
// using a geometry kernel. Assemblies become child mesh groups; every
// occurrence of a part yields its own mesh.
package tessellate

import (
	"fmt"

	"github.com/chazu/meshfit/pkg/geom"
	"github.com/chazu/meshfit/pkg/kernel"
	"github.com/chazu/meshfit/pkg/scene"
)

// RootName is the name of the group returned by Tessellate.
const RootName = "scene"

// frame is one level of placement: rotate first, then translate.
type frame struct {
	rotation    geom.Vec3
	translation geom.Vec3
}

func frameOf(td scene.TransformData) frame {
	var f frame
	if td.Rotation != nil {
		f.rotation = *td.Rotation
	}
	if td.Translation != nil {
		f.translation = *td.Translation
	}
	return f
}

// transformStack accumulates placements during graph traversal. The last
// frame is the innermost.
type transformStack struct {
	frames []frame
}

func (ts *transformStack) push(f frame) {
	ts.frames = append(ts.frames, f)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

// applySolid places s through every frame, innermost first.
func (ts *transformStack) applySolid(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		s = placeSolid(k, s, ts.frames[i])
	}
	return s
}

// applyPoints places pts through every frame, innermost first.
func (ts *transformStack) applyPoints(k kernel.Kernel, pts []geom.Vec3) []geom.Vec3 {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		pts = k.TransformPoints(pts, ts.frames[i].rotation, ts.frames[i].translation)
	}
	return pts
}

func placeSolid(k kernel.Kernel, s kernel.Solid, f frame) kernel.Solid {
	if !f.rotation.IsZero() {
		s = k.Rotate(s, f.rotation)
	}
	if !f.translation.IsZero() {
		s = k.Translate(s, f.translation)
	}
	return s
}

// walker carries the state of one tessellation.
type walker struct {
	g        *scene.Graph
	k        kernel.Kernel
	ts       transformStack
	visiting map[scene.NodeID]bool
}

// Tessellate walks the scene graph from its roots and returns the mesh
// hierarchy. The tessellator is read-only and never mutates the graph.
// A nil graph yields an empty group.
func Tessellate(g *scene.Graph, k kernel.Kernel) (*kernel.MeshGroup, error) {
	root := kernel.NewMeshGroup(RootName)
	if g == nil {
		return root, nil
	}

	w := &walker{g: g, k: k, visiting: make(map[scene.NodeID]bool)}
	for _, rootID := range g.Roots {
		n := g.Get(rootID)
		if n == nil {
			continue
		}
		if err := w.walkNode(n, root); err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}
	return root, nil
}

// enter marks n as on the current path and fails on cycles.
func (w *walker) enter(n *scene.Node) error {
	if w.visiting[n.ID] {
		return fmt.Errorf("cycle through node %s", n.ID.Short())
	}
	w.visiting[n.ID] = true
	return nil
}

func (w *walker) leave(n *scene.Node) {
	delete(w.visiting, n.ID)
}

// walkNode recursively traverses a node and its children, adding meshes to
// grp.
func (w *walker) walkNode(n *scene.Node, grp *kernel.MeshGroup) error {
	if err := w.enter(n); err != nil {
		return err
	}
	defer w.leave(n)

	switch n.Kind {
	case scene.NodePrimitive, scene.NodeBoolean:
		return w.handleSolid(n, grp)

	case scene.NodePoints:
		return w.handlePoints(n, grp)

	case scene.NodeTransform:
		return w.handleTransform(n, grp)

	case scene.NodeGroup:
		return w.handleGroup(n, grp)

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handleSolid builds the node's solid, places it and meshes it.
func (w *walker) handleSolid(n *scene.Node, grp *kernel.MeshGroup) error {
	solid, err := w.solidOf(n)
	if err != nil {
		return err
	}
	solid = w.ts.applySolid(w.k, solid)

	mesh, err := w.k.ToMesh(solid)
	if err != nil {
		return fmt.Errorf("ToMesh failed for node %s: %w", n.ID.Short(), err)
	}
	mesh.PartName = partName(n)
	grp.AddMesh(mesh)
	return nil
}

// handlePoints places the node's points and adds them as a vertex-only mesh.
func (w *walker) handlePoints(n *scene.Node, grp *kernel.MeshGroup) error {
	pd, ok := n.Data.(scene.PointsData)
	if !ok {
		return fmt.Errorf("points node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	pts := w.ts.applyPoints(w.k, pd.Points)
	grp.AddMesh(kernel.NewPointMesh(partName(n), pts))
	return nil
}

// handleTransform pushes the transform, recurses into children, then pops.
func (w *walker) handleTransform(n *scene.Node, grp *kernel.MeshGroup) error {
	td, ok := n.Data.(scene.TransformData)
	if !ok {
		return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	w.ts.push(frameOf(td))
	defer w.ts.pop()

	for _, child := range w.g.Children(n) {
		if err := w.walkNode(child, grp); err != nil {
			return err
		}
	}
	return nil
}

// handleGroup opens a child mesh group and recurses into it.
func (w *walker) handleGroup(n *scene.Node, grp *kernel.MeshGroup) error {
	sub := grp.AddChild(kernel.NewMeshGroup(partName(n)))
	for _, child := range w.g.Children(n) {
		if err := w.walkNode(child, sub); err != nil {
			return err
		}
	}
	return nil
}

// solidOf builds the unplaced solid for a primitive, boolean, or transform
// over solids.
func (w *walker) solidOf(n *scene.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case scene.CuboidData:
		return w.k.Cuboid(data.Size)
	case scene.CylinderData:
		return w.k.Cylinder(data.Height, data.Radius)
	case scene.SphereData:
		return w.k.Sphere(data.Radius)

	case scene.TransformData:
		s, err := w.combine(n, w.k.Union)
		if err != nil {
			return nil, err
		}
		return placeSolid(w.k, s, frameOf(data)), nil

	case scene.BooleanData:
		switch data.Op {
		case scene.OpUnion:
			return w.combine(n, w.k.Union)
		case scene.OpDifference:
			return w.combine(n, w.k.Difference)
		case scene.OpIntersection:
			return w.combine(n, w.k.Intersection)
		}
		return nil, fmt.Errorf("boolean node %s has unknown op %v", n.ID.Short(), data.Op)
	}
	return nil, fmt.Errorf("node %s (%s) is not a solid", n.ID.Short(), n.Kind)
}

// combine folds the solids of n's children left to right with op.
func (w *walker) combine(n *scene.Node, op func(a, b kernel.Solid) kernel.Solid) (kernel.Solid, error) {
	var acc kernel.Solid
	for _, child := range w.g.Children(n) {
		if err := w.enter(child); err != nil {
			return nil, err
		}
		s, err := w.solidOf(child)
		w.leave(child)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = s
			continue
		}
		acc = op(acc, s)
	}
	if acc == nil {
		return nil, fmt.Errorf("node %s has no solid operands", n.ID.Short())
	}
	return acc, nil
}

// partName prefers the node's name and falls back to its short ID.
func partName(n *scene.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}
