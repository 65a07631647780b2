// Package kernel defines the abstract geometry kernel interface and the mesh
// types it produces. Implementations (sdfx) provide solid modeling behind
// this interface; the rest of meshfit only sees Solids, Meshes and
// MeshGroups.
package kernel

import "github.com/chazu/meshfit/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() geom.Box
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Cuboids have their minimum corner at the origin;
	// cylinders and spheres are centered on it.
	Cuboid(size geom.Vec3) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)
	Sphere(radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, v geom.Vec3) Solid
	Rotate(s Solid, euler geom.Vec3) Solid // Euler angles in degrees

	// TransformPoints applies the same rotation-then-translation that
	// Rotate and Translate apply to solids.
	TransformPoints(pts []geom.Vec3, rotation, translation geom.Vec3) []geom.Vec3

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
