package scene

import (
	"testing"

	"github.com/chazu/meshfit/pkg/geom"
)

func TestNewGraph(t *testing.T) {
	g := New()
	if g.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if g.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if g.NodeCount() != 0 {
		t.Errorf("empty graph should have 0 nodes, got %d", g.NodeCount())
	}
}

func TestNodeID(t *testing.T) {
	a := NewNodeID("defpart/shelf")
	b := NewNodeID("defpart/shelf")
	c := NewNodeID("defpart/side")

	if a != b {
		t.Error("same path should give the same ID")
	}
	if a == c {
		t.Error("different paths should give different IDs")
	}
	if len(a) != 64 {
		t.Errorf("ID length = %d, want 64 hex digits", len(a))
	}
	if a.Short() != string(a[:8]) {
		t.Errorf("Short() = %q", a.Short())
	}
	if a.IsZero() || !ZeroID.IsZero() {
		t.Error("IsZero mismatch")
	}
	if NodeID("abc").Short() != "abc" {
		t.Error("Short() should not truncate short IDs")
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	g := New()

	id := NewNodeID("defpart/ball")
	g.AddNode(&Node{ID: id, Kind: NodePrimitive, Name: "ball", Data: SphereData{Radius: 5}})

	if g.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", g.NodeCount())
	}
	if n := g.Lookup("ball"); n == nil || n.ID != id {
		t.Fatal("Lookup('ball') failed")
	}
	if g.MustLookup("ball").ID != id {
		t.Error("MustLookup returned wrong node")
	}
	if g.Lookup("nonexistent") != nil {
		t.Error("Lookup should return nil for missing name")
	}
	if got := g.Get(id); got == nil || got.Name != "ball" {
		t.Error("Get by ID failed")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic for missing name")
		}
	}()
	g.MustLookup("nonexistent")
}

func TestAddRootDeduplicates(t *testing.T) {
	g := New()
	id := NewNodeID("x")
	g.AddRoot(id)
	g.AddRoot(id)
	if len(g.Roots) != 1 {
		t.Errorf("roots = %d, want 1", len(g.Roots))
	}
}

func TestChildrenSkipsDangling(t *testing.T) {
	g := New()
	leaf := NewNodeID("leaf")
	g.AddNode(&Node{ID: leaf, Kind: NodePoints, Data: PointsData{Points: []geom.Vec3{{}}}})
	parent := &Node{ID: NewNodeID("group"), Kind: NodeGroup, Children: []NodeID{leaf, NewNodeID("missing")}}
	g.AddNode(parent)

	children := g.Children(parent)
	if len(children) != 1 || children[0].ID != leaf {
		t.Errorf("Children = %v, want only the leaf", children)
	}
}

func TestResolveRoots(t *testing.T) {
	g := New()
	a := NewNodeID("a")
	b := NewNodeID("b")
	place := NewNodeID("place/b")
	c := NewNodeID("c")

	g.AddNode(&Node{ID: a, Kind: NodePrimitive, Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: b, Kind: NodePrimitive, Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: place, Kind: NodeTransform, Children: []NodeID{b}, Data: TransformData{}})
	g.AddNode(&Node{ID: c, Kind: NodePrimitive, Data: SphereData{Radius: 1}})

	g.ResolveRoots()

	want := []NodeID{a, place, c}
	if len(g.Roots) != len(want) {
		t.Fatalf("roots = %d, want %d", len(g.Roots), len(want))
	}
	for i := range want {
		if g.Roots[i] != want[i] {
			t.Errorf("root %d = %s, want %s", i, g.Roots[i].Short(), want[i].Short())
		}
	}

	// Idempotent.
	g.ResolveRoots()
	if len(g.Roots) != len(want) {
		t.Errorf("second ResolveRoots changed root count to %d", len(g.Roots))
	}
}

func TestOfKind(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: NewNodeID("s"), Kind: NodePrimitive, Data: SphereData{Radius: 1}})
	g.AddNode(&Node{ID: NewNodeID("p"), Kind: NodePoints, Data: PointsData{}})
	g.AddNode(&Node{ID: NewNodeID("c"), Kind: NodePrimitive, Data: CuboidData{}})

	prims := g.OfKind(NodePrimitive)
	if len(prims) != 2 {
		t.Fatalf("primitives = %d, want 2", len(prims))
	}
	if prims[0].ID != NewNodeID("s") || prims[1].ID != NewNodeID("c") {
		t.Error("OfKind should keep insertion order")
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{NodePrimitive.String(), "primitive"},
		{NodePoints.String(), "points"},
		{NodeTransform.String(), "transform"},
		{NodeGroup.String(), "group"},
		{NodeBoolean.String(), "boolean"},
		{OpUnion.String(), "union"},
		{OpDifference.String(), "difference"},
		{OpIntersection.String(), "intersection"},
		{BooleanOp(9).String(), "unknown"},
		{NodeKind(99).String(), "unknown"},
		{PrimCuboid.String(), "cuboid"},
		{PrimCylinder.String(), "cylinder"},
		{PrimSphere.String(), "sphere"},
		{PrimitiveKind(99).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestPrimitiveKindOf(t *testing.T) {
	tests := []struct {
		data NodeData
		want PrimitiveKind
		ok   bool
	}{
		{CuboidData{}, PrimCuboid, true},
		{CylinderData{}, PrimCylinder, true},
		{SphereData{}, PrimSphere, true},
		{PointsData{}, 0, false},
		{GroupData{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := PrimitiveKindOf(tt.data)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PrimitiveKindOf(%T) = %v, %v; want %v, %v", tt.data, got, ok, tt.want, tt.ok)
		}
	}
}
