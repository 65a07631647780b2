package bsphere

import (
	"iter"
	"slices"

	"github.com/chazu/meshfit/pkg/geom"
)

// AddPoint adds a single point. Duplicates are kept.
func (b *BestFit) AddPoint(p geom.Vec3) {
	b.points = append(b.points, p)
	b.updated = false
}

// AddPoints adds the position of every element of elems, in order.
func AddPoints[E geom.Positioned](b *BestFit, elems []E) {
	b.points = slices.Grow(b.points, len(elems))
	for _, e := range elems {
		b.points = append(b.points, e.Position())
	}
	b.updated = false
}

// AddPointSeq adds every position yielded by seq.
func (b *BestFit) AddPointSeq(seq iter.Seq[geom.Vec3]) {
	for p := range seq {
		b.points = append(b.points, p)
	}
	b.updated = false
}

// AddMesh adds the position of every vertex of m. A nil mesh adds nothing.
func (b *BestFit) AddMesh(m geom.Mesh) {
	if m == nil {
		return
	}
	b.AddPointSeq(m.Positions())
}

// AddMeshGroup adds every vertex reachable from g. Each group's own meshes
// are added before its children are visited, depth first. Vertices shared
// between meshes are added once per mesh.
func (b *BestFit) AddMeshGroup(g geom.MeshGroup) {
	if g == nil {
		return
	}
	for m := range g.Meshes() {
		b.AddMesh(m)
	}
	for child := range g.Children() {
		b.AddMeshGroup(child)
	}
	b.updated = false
}
