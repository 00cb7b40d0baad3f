package shapes

import (
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// PyramidTriangles is the fixed triangle count of a pyramid: four sides and
// a two-triangle base.
const PyramidTriangles = 6

// Pyramid is a square pyramid centered on the origin with its apex on +Y.
type Pyramid struct {
	BottomLine float32
	Height     float32
	Mesh       *mesh.Mesh
}

// DefaultPyramid returns a unit pyramid.
func DefaultPyramid() *Pyramid {
	p, _ := NewPyramid(1, 1)
	return p
}

// base corner signs on (x, z), walked counter-clockwise seen from below.
var pyramidCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// outward direction of each side on (x, z).
var pyramidSides = [4][2]float32{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// texture coordinates matching pyramidCorners.
var pyramidUV = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// NewPyramid builds a pyramid with a square base of side bottomLine.
func NewPyramid(bottomLine, height float32) (*Pyramid, error) {
	if bottomLine < 0 || height < 0 {
		return nil, configError("pyramid", ReasonNegativeDimension,
			"bottom_line=%g height=%g", bottomLine, height)
	}
	half := bottomLine / 2
	halfH := height / 2

	corner := func(i int) math.Vec3 {
		c := pyramidCorners[i%4]
		return math.Vec3{X: c[0] * half, Y: -halfH, Z: c[1] * half}
	}

	// Side normals follow the slope analytically: the y component is the
	// tangent of the side's tilt. A flat pyramid faces straight up.
	slope := float32(0)
	if height > 0 {
		slope = half / height
	}

	m := mesh.New(PyramidTriangles)
	apex := mesh.Vertex{Position: math.Vec3{Y: halfH}, TexCoord: math.Vec2{X: 0.5, Y: 0.5}}
	for i := 0; i < 4; i++ {
		tri := mesh.Triangle{
			apex,
			{Position: corner(i), TexCoord: pyramidUV[i]},
			{Position: corner(i + 1), TexCoord: pyramidUV[(i+1)%4]},
		}
		n := math.Vec3{X: pyramidSides[i][0], Y: slope, Z: pyramidSides[i][1]}
		if height == 0 {
			n = math.DegenerateNormal
		}
		tri.SetNormal(n)
		m.Add(tri)
	}

	// Base: (-,-) -> (+,-) -> (+,+) and (-,-) -> (-,+) -> (+,+).
	for _, mid := range []int{1, 3} {
		tri := mesh.Triangle{
			{Position: corner(0), TexCoord: pyramidUV[0]},
			{Position: corner(mid), TexCoord: pyramidUV[mid]},
			{Position: corner(2), TexCoord: pyramidUV[2]},
		}
		tri.SetNormal(math.Vec3{Y: -1})
		m.Add(tri)
	}

	for i := range m.Triangles {
		m.Triangles[i].SetColor(mesh.Green)
	}

	return &Pyramid{BottomLine: bottomLine, Height: height, Mesh: m}, nil
}
