package kernel

import (
	"iter"

	"github.com/chazu/meshfit/pkg/geom"
)

// MeshGroup is a named node in a mesh hierarchy. It owns its meshes and its
// child groups; a group is never shared between parents.
type MeshGroup struct {
	Name     string
	meshes   []*Mesh
	children []*MeshGroup
}

var _ geom.MeshGroup = (*MeshGroup)(nil)

// NewMeshGroup returns an empty group.
func NewMeshGroup(name string) *MeshGroup {
	return &MeshGroup{Name: name}
}

// AddMesh appends m to the group's own meshes. Nil meshes are dropped.
func (g *MeshGroup) AddMesh(m *Mesh) {
	if m == nil {
		return
	}
	g.meshes = append(g.meshes, m)
}

// AddChild appends a child group and returns it.
func (g *MeshGroup) AddChild(c *MeshGroup) *MeshGroup {
	if c != nil {
		g.children = append(g.children, c)
	}
	return c
}

// OwnMeshes returns the meshes owned directly by g.
func (g *MeshGroup) OwnMeshes() []*Mesh {
	if g == nil {
		return nil
	}
	return g.meshes
}

// ChildGroups returns the direct children of g.
func (g *MeshGroup) ChildGroups() []*MeshGroup {
	if g == nil {
		return nil
	}
	return g.children
}

// Meshes iterates over the meshes owned directly by g. A nil group yields
// nothing.
func (g *MeshGroup) Meshes() iter.Seq[geom.Mesh] {
	return func(yield func(geom.Mesh) bool) {
		for _, m := range g.OwnMeshes() {
			if !yield(m) {
				return
			}
		}
	}
}

// Children iterates over the direct child groups of g. A nil group yields
// nothing.
func (g *MeshGroup) Children() iter.Seq[geom.MeshGroup] {
	return func(yield func(geom.MeshGroup) bool) {
		for _, c := range g.ChildGroups() {
			if !yield(c) {
				return
			}
		}
	}
}

// Walk visits g and its descendants depth first, parents before children.
// depth is 0 for g itself. Returning false from fn skips that group's
// children.
func (g *MeshGroup) Walk(fn func(grp *MeshGroup, depth int) bool) {
	g.walk(fn, 0)
}

func (g *MeshGroup) walk(fn func(*MeshGroup, int) bool, depth int) {
	if g == nil || !fn(g, depth) {
		return
	}
	for _, c := range g.children {
		c.walk(fn, depth+1)
	}
}

// AllMeshes returns every mesh in the hierarchy in depth-first order:
// a group's own meshes come before those of its children.
func (g *MeshGroup) AllMeshes() []*Mesh {
	var out []*Mesh
	g.Walk(func(grp *MeshGroup, _ int) bool {
		out = append(out, grp.meshes...)
		return true
	})
	return out
}

// MeshCount returns the number of meshes in the hierarchy.
func (g *MeshGroup) MeshCount() int {
	return len(g.AllMeshes())
}

// VertexCount returns the number of vertices in the hierarchy, counting
// every mesh separately.
func (g *MeshGroup) VertexCount() int {
	n := 0
	for _, m := range g.AllMeshes() {
		n += m.VertexCount()
	}
	return n
}

// IsEmpty reports whether the hierarchy holds no vertices at all.
func (g *MeshGroup) IsEmpty() bool {
	return g.VertexCount() == 0
}
