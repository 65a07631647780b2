package geom

import "iter"

// Positioned is anything a 3D position can be read from.
type Positioned interface {
	Position() Vec3
}

// Mesh exposes the positions of its vertices in the mesh's own order.
type Mesh interface {
	Positions() iter.Seq[Vec3]
}

// MeshGroup is a node of a mesh hierarchy. A group owns its meshes and child
// groups exclusively; nothing points back at the parent.
type MeshGroup interface {
	Meshes() iter.Seq[Mesh]
	Children() iter.Seq[MeshGroup]
}
