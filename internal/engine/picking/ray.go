// Package picking provides ray casting from screen coordinates into the
// scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// parallelEpsilon is the smallest direction component treated as non-zero
// when intersecting planes.
const parallelEpsilon = 1e-4

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Screen to normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, ndc math.Vec4) math.Vec3 {
	p := inv.MulVec4(ndc)
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Transform moves the ray into another space, typically a model's local
// space via the inverse model matrix.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformVec3(r.Origin),
		Direction: m.TransformDirection(r.Direction).Normalize(),
	}
}

// IntersectPlaneZ intersects the ray with the plane z = planeZ.
// Returns the intersection X, Y and whether it lies in front of the origin.
func (r Ray) IntersectPlaneZ(planeZ float32) (x, y float32, ok bool) {
	if math32.Abs(r.Direction.Z) < parallelEpsilon {
		return 0, 0, false
	}

	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return 0, 0, false
	}

	p := r.At(t)
	return p.X, p.Y, true
}

// IntersectBounds tests ray intersection with an axis-aligned box.
// Returns the distance to intersection and whether it occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(box mesh.Bounds) (t float32, hit bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
