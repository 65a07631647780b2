package kernel

import (
	"iter"

	"github.com/chazu/meshfit/pkg/geom"
)

// Mesh is a triangle mesh, or a bare point cloud when Indices is empty.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

var _ geom.Mesh = (*Mesh)(nil)

// NewPointMesh builds a vertex-only mesh from pts.
func NewPointMesh(name string, pts []geom.Vec3) *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 0, len(pts)*3),
		PartName: name,
	}
	for _, p := range pts {
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m.VertexCount() == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// Positions iterates over every vertex position in storage order.
// A nil mesh yields nothing.
func (m *Mesh) Positions() iter.Seq[geom.Vec3] {
	return func(yield func(geom.Vec3) bool) {
		for i := 0; i < m.VertexCount(); i++ {
			if !yield(m.Vertex(i)) {
				return
			}
		}
	}
}

// Bounds returns the axis-aligned box around all vertices.
func (m *Mesh) Bounds() geom.Box {
	b := geom.EmptyBox()
	for p := range m.Positions() {
		b.Extend(p)
	}
	return b
}
