package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/meshfit/pkg/bsphere"
	"github.com/chazu/meshfit/pkg/geom"
	"github.com/chazu/meshfit/pkg/kernel"
)

// testCells keeps marching cubes cheap in tests.
const testCells = 48

func mustMesh(t *testing.T, k *SdfxKernel, s kernel.Solid) *kernel.Mesh {
	t.Helper()
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	// Vertex and index array sizes must be consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	return mesh
}

func TestNewWithCells(t *testing.T) {
	if got := New().Cells(); got != DefaultMeshCells {
		t.Errorf("New().Cells() = %d, want %d", got, DefaultMeshCells)
	}
	if got := NewWithCells(2).Cells(); got != MinMeshCells {
		t.Errorf("NewWithCells(2).Cells() = %d, want %d", got, MinMeshCells)
	}
	if got := NewWithCells(64).Cells(); got != 64 {
		t.Errorf("NewWithCells(64).Cells() = %d, want 64", got)
	}
}

func TestCuboid(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Cuboid(geom.V3(100, 50, 25))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}
	mesh := mustMesh(t, k, box)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
}

func TestCuboidBoundingBox(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Cuboid(geom.V3(100, 50, 25))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}
	bb := box.BoundingBox()

	// The minimum corner sits at the origin.
	const tol = 0.01
	want := geom.Box{Min: geom.V3(0, 0, 0), Max: geom.V3(100, 50, 25)}
	if bb.Min.Dist(want.Min) > tol || bb.Max.Dist(want.Max) > tol {
		t.Errorf("BoundingBox() = %+v, want %+v", bb, want)
	}
}

func TestInvalidPrimitives(t *testing.T) {
	k := NewWithCells(testCells)
	if _, err := k.Cuboid(geom.V3(-1, 1, 1)); err == nil {
		t.Error("expected error for negative cuboid size")
	}
	if _, err := k.Cylinder(10, -2); err == nil {
		t.Error("expected error for negative cylinder radius")
	}
	if _, err := k.Sphere(-1); err == nil {
		t.Error("expected error for negative sphere radius")
	}
}

func TestCylinder(t *testing.T) {
	k := NewWithCells(testCells)
	cyl, err := k.Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	mesh := mustMesh(t, k, cyl)
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestSphereMeshBoundingBall(t *testing.T) {
	k := NewWithCells(testCells)
	s, err := k.Sphere(10)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	mesh := mustMesh(t, k, s)

	fit := bsphere.New()
	fit.AddMesh(mesh)
	if got := fit.Radius(); math.Abs(got-10) > 1.0 {
		t.Errorf("best-fit radius of tessellated sphere = %f, want ~10", got)
	}
	if c := fit.Center(); c.Length() > 1.0 {
		t.Errorf("best-fit center of tessellated sphere = %s, want ~origin", c)
	}
}

func TestDifference(t *testing.T) {
	k := NewWithCells(testCells)

	box, err := k.Cuboid(geom.V3(100, 100, 100))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}
	boxMesh := mustMesh(t, k, box)

	cyl, err := k.Cylinder(120, 20)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	diff := k.Difference(box, k.Translate(cyl, geom.V3(50, 50, 50)))
	diffMesh := mustMesh(t, k, diff)

	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnionAndIntersection(t *testing.T) {
	k := NewWithCells(testCells)
	a, err := k.Cuboid(geom.V3(50, 50, 50))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}
	b := k.Translate(a, geom.V3(30, 0, 0))

	u := k.Union(a, b)
	ub := u.BoundingBox()
	if math.Abs(ub.Max.X-80) > 0.5 {
		t.Errorf("union max X = %f, want ~80", ub.Max.X)
	}
	mustMesh(t, k, u)
	mustMesh(t, k, k.Intersection(a, b))
}

func TestTranslate(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Cuboid(geom.V3(10, 10, 10))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}
	bb := k.Translate(box, geom.V3(100, 200, 300)).BoundingBox()

	const tol = 0.5
	if bb.Min.Dist(geom.V3(100, 200, 300)) > tol {
		t.Errorf("translated min = %s, want ~(100, 200, 300)", bb.Min)
	}
	if bb.Max.Dist(geom.V3(110, 210, 310)) > tol {
		t.Errorf("translated max = %s, want ~(110, 210, 310)", bb.Max)
	}
}

func TestRotate(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Cuboid(geom.V3(100, 10, 10))
	if err != nil {
		t.Fatalf("Cuboid failed: %v", err)
	}

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	size := k.Rotate(box, geom.V3(0, 0, 90)).BoundingBox().Size()

	const tol = 1.0
	if math.Abs(size.X-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", size.X)
	}
	if math.Abs(size.Y-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", size.Y)
	}
}

func TestTransformPoints(t *testing.T) {
	k := New()
	pts := []geom.Vec3{geom.V3(1, 0, 0), geom.V3(0, 0, 0)}

	moved := k.TransformPoints(pts, geom.Vec3{}, geom.V3(5, 6, 7))
	if moved[0] != geom.V3(6, 6, 7) || moved[1] != geom.V3(5, 6, 7) {
		t.Errorf("translation only: got %v", moved)
	}

	rotated := k.TransformPoints(pts, geom.V3(0, 0, 90), geom.V3(10, 0, 0))
	const tol = 1e-9
	if math.Abs(rotated[0].X-10) > tol || math.Abs(math.Abs(rotated[0].Y)-1) > tol || math.Abs(rotated[0].Z) > tol {
		t.Errorf("rotate then translate: got %s, want (10, ±1, 0)", rotated[0])
	}
	if rotated[1].Dist(geom.V3(10, 0, 0)) > tol {
		t.Errorf("origin should only be translated, got %s", rotated[1])
	}
	if pts[0] != geom.V3(1, 0, 0) {
		t.Error("TransformPoints must not modify its input")
	}
}
