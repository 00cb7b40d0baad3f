// Package mesh provides the vertex and triangle records shared by the shape
// generators, and their conversion into flat GPU attribute buffers.
package mesh

import "github.com/Faultbox/meshlab/pkg/math"

// Vertex carries every attribute of one corner of a triangle.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    math.Vec3 // RGB in [0,1]
	TexCoord math.Vec2
}

// Triangle is three vertices drawn as one face of a non-indexed triangle list.
type Triangle [3]Vertex

// SetNormal assigns the same normal to all three vertices.
func (t *Triangle) SetNormal(n math.Vec3) {
	for i := range t {
		t[i].Normal = n
	}
}

// SetColor assigns the same color to all three vertices.
func (t *Triangle) SetColor(c math.Vec3) {
	for i := range t {
		t[i].Color = c
	}
}

// Positions returns the three vertex positions.
func (t *Triangle) Positions() [3]math.Vec3 {
	return [3]math.Vec3{t[0].Position, t[1].Position, t[2].Position}
}

// FlatNormal returns the triangle normal seen from ref.
func (t *Triangle) FlatNormal(ref math.Vec3) math.Vec3 {
	return math.TriangleNormalFrom(t[0].Position, t[1].Position, t[2].Position, ref)
}

// Shading selects how a generator fills the normal stream.
type Shading int

const (
	// ShadingFlat gives every vertex of a triangle the triangle normal.
	ShadingFlat Shading = iota
	// ShadingSmooth copies each vertex position into its normal. For solids
	// centered on the origin this approximates a radial normal; it is not an
	// averaged vertex normal.
	ShadingSmooth
)

func (s Shading) String() string {
	switch s {
	case ShadingFlat:
		return "flat"
	case ShadingSmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// ShadingFor maps a flat-normals switch to a Shading mode.
func ShadingFor(flat bool) Shading {
	if flat {
		return ShadingFlat
	}
	return ShadingSmooth
}

// Mesh holds a complete triangle list ready for conversion to Buffers.
type Mesh struct {
	Triangles []Triangle
}

// New returns an empty mesh with room for n triangles.
func New(n int) *Mesh {
	return &Mesh{Triangles: make([]Triangle, 0, n)}
}

// Add appends a triangle.
func (m *Mesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices, three per triangle.
func (m *Mesh) VertexCount() int {
	return len(m.Triangles) * 3
}

// ApplyShading rewrites the normal stream according to mode. Flat normals
// are computed against ref.
func (m *Mesh) ApplyShading(mode Shading, ref math.Vec3) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		switch mode {
		case ShadingFlat:
			t.SetNormal(t.FlatNormal(ref))
		case ShadingSmooth:
			for v := range t {
				t[v].Normal = t[v].Position
			}
		}
	}
}

// Paint assigns one color per triangle from src.
func (m *Mesh) Paint(src *ColorSource) {
	for i := range m.Triangles {
		m.Triangles[i].SetColor(src.Next())
	}
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Bounds returns the bounding box of all vertex positions. An empty mesh
// yields a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Triangles) == 0 {
		return Bounds{}
	}
	first := m.Triangles[0][0].Position
	b := Bounds{Min: first, Max: first}
	for i := range m.Triangles {
		for _, v := range m.Triangles[i] {
			updateBounds(&b, v.Position)
		}
	}
	return b
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
