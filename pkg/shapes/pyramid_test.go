package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

func TestPyramidTopology(t *testing.T) {
	p, err := NewPyramid(2, 2)
	require.NoError(t, err)
	require.Equal(t, PyramidTriangles, p.Mesh.TriangleCount())

	apex := math.Vec3{X: 0, Y: 1, Z: 0}
	for i := 0; i < 4; i++ {
		assert.Equal(t, apex, p.Mesh.Triangles[i][0].Position, "side %d apex", i)
		for _, v := range p.Mesh.Triangles[i][1:] {
			assert.Equal(t, float32(-1), v.Position.Y)
		}
	}

	// The base triangles share the (-,-)..(+,+) diagonal and together cover
	// all four corners.
	corners := map[math.Vec3]int{}
	var area float32
	for _, tri := range p.Mesh.Triangles[4:] {
		assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: -1}, tri[0].Position)
		assert.Equal(t, math.Vec3{X: 1, Y: -1, Z: 1}, tri[2].Position)
		for _, v := range tri {
			corners[v.Position]++
		}
		e1 := tri[1].Position.Sub(tri[0].Position)
		e2 := tri[2].Position.Sub(tri[0].Position)
		area += e1.Cross(e2).Length() / 2
	}
	assert.Len(t, corners, 4)
	assert.Contains(t, corners, math.Vec3{X: 1, Y: -1, Z: -1})
	assert.Contains(t, corners, math.Vec3{X: -1, Y: -1, Z: 1})
	assert.InDelta(t, 4, area, 1e-6)
}

func TestPyramidNormals(t *testing.T) {
	p, err := NewPyramid(2, 4)
	require.NoError(t, err)

	want := []math.Vec3{
		{X: 0, Y: 0.25, Z: -1},
		{X: 1, Y: 0.25, Z: 0},
		{X: 0, Y: 0.25, Z: 1},
		{X: -1, Y: 0.25, Z: 0},
		{Y: -1},
		{Y: -1},
	}
	for i, tri := range p.Mesh.Triangles {
		for _, v := range tri {
			assert.Equal(t, want[i], v.Normal, "triangle %d", i)
			assert.Equal(t, mesh.Green, v.Color)
		}
	}
}

func TestPyramidTexCoords(t *testing.T) {
	p := DefaultPyramid()
	require.NotNil(t, p)

	side := p.Mesh.Triangles[0]
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, side[0].TexCoord)
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, side[1].TexCoord)
	assert.Equal(t, math.Vec2{X: 1, Y: 0}, side[2].TexCoord)

	last := p.Mesh.Triangles[3]
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, last[1].TexCoord)
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, last[2].TexCoord)

	base := p.Mesh.Triangles[5]
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, base[0].TexCoord)
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, base[1].TexCoord)
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, base[2].TexCoord)
}

func TestPyramidRejectsNegative(t *testing.T) {
	tests := []struct {
		name               string
		bottomLine, height float32
	}{
		{"negative bottom line", -1, 1},
		{"negative height", 1, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPyramid(tt.bottomLine, tt.height)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrNegativeDimension)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestPyramidFlat(t *testing.T) {
	p, err := NewPyramid(1, 0)
	require.NoError(t, err)
	assert.Equal(t, math.DegenerateNormal, p.Mesh.Triangles[0][0].Normal)
}
