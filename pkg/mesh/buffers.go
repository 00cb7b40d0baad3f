package mesh

import (
	"errors"
	"fmt"
)

// Float counts per vertex for each attribute stream.
const (
	PositionSize = 3
	NormalSize   = 3
	ColorSize    = 3
	TexCoordSize = 2
)

// ErrMisaligned is returned by Validate when the attribute streams disagree
// on the vertex count.
var ErrMisaligned = errors.New("mesh: attribute streams misaligned")

// Buffers are the four parallel attribute streams of a non-indexed triangle
// list. Vertex i of one stream corresponds to vertex i of every other.
type Buffers struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	TexCoords []float32
}

// VertexCount returns the number of vertices described by the position stream.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / PositionSize
}

// Validate checks that all four streams describe the same whole number of
// triangles.
func (b *Buffers) Validate() error {
	if len(b.Positions)%PositionSize != 0 {
		return fmt.Errorf("%w: %d position floats", ErrMisaligned, len(b.Positions))
	}
	n := len(b.Positions) / PositionSize
	if n%3 != 0 {
		return fmt.Errorf("%w: %d vertices is not a triangle list", ErrMisaligned, n)
	}
	if len(b.Normals) != n*NormalSize {
		return fmt.Errorf("%w: %d normal floats for %d vertices", ErrMisaligned, len(b.Normals), n)
	}
	if len(b.Colors) != n*ColorSize {
		return fmt.Errorf("%w: %d color floats for %d vertices", ErrMisaligned, len(b.Colors), n)
	}
	if len(b.TexCoords) != n*TexCoordSize {
		return fmt.Errorf("%w: %d texcoord floats for %d vertices", ErrMisaligned, len(b.TexCoords), n)
	}
	return nil
}

// Buffers flattens the mesh into newly allocated attribute streams.
func (m *Mesh) Buffers() Buffers {
	var b Buffers
	m.FillBuffers(&b)
	return b
}

// FillBuffers flattens the mesh into b, reusing its capacity.
func (m *Mesh) FillBuffers(b *Buffers) {
	m.FillGeometry(b)

	n := m.VertexCount()
	b.Colors = grow(b.Colors, n*ColorSize)
	b.TexCoords = grow(b.TexCoords, n*TexCoordSize)
	for i := range m.Triangles {
		for v, vert := range m.Triangles[i] {
			k := i*3 + v
			c := b.Colors[k*ColorSize : k*ColorSize+ColorSize]
			c[0], c[1], c[2] = vert.Color.X, vert.Color.Y, vert.Color.Z
			uv := b.TexCoords[k*TexCoordSize : k*TexCoordSize+TexCoordSize]
			uv[0], uv[1] = vert.TexCoord.X, vert.TexCoord.Y
		}
	}
}

// FillGeometry rewrites only the position and normal streams. Colors and
// texture coordinates are left as they are.
func (m *Mesh) FillGeometry(b *Buffers) {
	n := m.VertexCount()
	b.Positions = grow(b.Positions, n*PositionSize)
	b.Normals = grow(b.Normals, n*NormalSize)
	for i := range m.Triangles {
		for v, vert := range m.Triangles[i] {
			k := i*3 + v
			p := b.Positions[k*PositionSize : k*PositionSize+PositionSize]
			p[0], p[1], p[2] = vert.Position.X, vert.Position.Y, vert.Position.Z
			nm := b.Normals[k*NormalSize : k*NormalSize+NormalSize]
			nm[0], nm[1], nm[2] = vert.Normal.X, vert.Normal.Y, vert.Normal.Z
		}
	}
}

func grow(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	return s[:n]
}
