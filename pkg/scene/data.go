package scene

import "github.com/chazu/meshfit/pkg/geom"

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimCuboid   PrimitiveKind = iota // rectangular solid, min corner at origin
	PrimCylinder                      // cylinder along Z, centered
	PrimSphere                        // sphere, centered
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimCuboid:
		return "cuboid"
	case PrimCylinder:
		return "cylinder"
	case PrimSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// CuboidData is a rectangular solid.
type CuboidData struct {
	Size geom.Vec3 `json:"size"`
}

func (CuboidData) nodeData() {}

// CylinderData is a cylinder along the Z axis.
type CylinderData struct {
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

func (CylinderData) nodeData() {}

// SphereData is a sphere.
type SphereData struct {
	Radius float64 `json:"radius"`
}

func (SphereData) nodeData() {}

// PrimitiveKindOf reports which primitive d describes.
func PrimitiveKindOf(d NodeData) (PrimitiveKind, bool) {
	switch d.(type) {
	case CuboidData:
		return PrimCuboid, true
	case CylinderData:
		return PrimCylinder, true
	case SphereData:
		return PrimSphere, true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

// PointsData is a raw point cloud. It contributes its points as-is, without
// any tessellation.
type PointsData struct {
	Points []geom.Vec3 `json:"points"`
}

func (PointsData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to child nodes.
// Created by the (place ...) form.
type TransformData struct {
	Translation *geom.Vec3 `json:"translation,omitempty"`
	Rotation    *geom.Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping (assembly, subassembly).
// Created by the (assembly ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BooleanOp enumerates the CSG operations.
type BooleanOp int

const (
	OpUnion        BooleanOp = iota // all children merged
	OpDifference                    // first child minus the rest
	OpIntersection                  // volume common to all children
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// BooleanData combines the solids of its children. Every child must
// resolve to a solid: a primitive, a transform over solids, or another
// boolean.
type BooleanData struct {
	Op BooleanOp `json:"op"`
}

func (BooleanData) nodeData() {}
