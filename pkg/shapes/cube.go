package shapes

import (
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// CubeTriangles is the fixed triangle count of a cube.
const CubeTriangles = 12

// Cube is an axis-aligned cube centered on the origin.
type Cube struct {
	Edge float32
	Mesh *mesh.Mesh
}

// cubeFace spans a face with u x v == normal, so both triangles wind
// counter-clockwise seen from outside.
type cubeFace struct {
	normal, u, v math.Vec3
}

var cubeFaces = [6]cubeFace{
	{normal: math.Vec3{X: 1}, u: math.Vec3{Z: -1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{X: -1}, u: math.Vec3{Z: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Y: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: -1}},
	{normal: math.Vec3{Y: -1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: 1}},
	{normal: math.Vec3{Z: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Y: 1}},
	{normal: math.Vec3{Z: -1}, u: math.Vec3{X: -1}, v: math.Vec3{Y: 1}},
}

// NewCube builds a white cube with one unit-square texture per face.
func NewCube(edge float32) (*Cube, error) {
	if edge < 0 {
		return nil, configError("cube", ReasonNegativeDimension, "edge=%g", edge)
	}
	h := edge / 2

	m := mesh.New(CubeTriangles)
	for _, f := range cubeFaces {
		vert := func(a, b float32) mesh.Vertex {
			p := f.normal.Add(f.u.Scale(a)).Add(f.v.Scale(b)).Scale(h)
			return mesh.Vertex{
				Position: p,
				Normal:   f.normal,
				Color:    mesh.White,
				TexCoord: math.Vec2{X: (a + 1) / 2, Y: (b + 1) / 2},
			}
		}
		m.Add(mesh.Triangle{vert(-1, -1), vert(1, -1), vert(1, 1)})
		m.Add(mesh.Triangle{vert(-1, -1), vert(1, 1), vert(-1, 1)})
	}

	return &Cube{Edge: edge, Mesh: m}, nil
}
