package math

// NormalReference is the fixed point TriangleNormal projects onto a
// triangle's plane. It sits behind the XY plane, so a flat sheet at z=0
// gets normals facing +Z.
var NormalReference = Vec3{0, 0, -10}

// DegenerateNormal is returned for triangles with a zero-length edge or
// collinear corners.
var DegenerateNormal = Vec3{0, 1, 0}

// TriangleNormal returns the normal of the triangle (p1, p2, p3) using
// NormalReference. See TriangleNormalFrom.
func TriangleNormal(p1, p2, p3 Vec3) Vec3 {
	return TriangleNormalFrom(p1, p2, p3, NormalReference)
}

// TriangleNormalFrom computes a triangle normal by double Gram-Schmidt
// orthogonalization instead of a cross product.
//
// The vector p1-ref has its components along edge p1-p2 and along the
// in-plane vector orthogonal to that edge removed. What remains is
// perpendicular to the triangle and points from ref toward its plane.
// The result is not normalized: its length is the distance between ref
// and the plane. Shaders are expected to normalize.
func TriangleNormalFrom(p1, p2, p3, ref Vec3) Vec3 {
	e1 := p1.Sub(p2)
	e2 := p1.Sub(p3)

	e1e1 := e1.Dot(e1)
	if e1e1 == 0 {
		return DegenerateNormal
	}
	e3 := e2.Sub(mulDiv(e1, e1.Dot(e2), e1e1))

	e3e3 := e3.Dot(e3)
	if e3e3 == 0 {
		return DegenerateNormal
	}

	r := p1.Sub(ref)
	return r.Sub(mulDiv(e1, e1.Dot(r), e1e1)).Sub(mulDiv(e3, e3.Dot(r), e3e3))
}

// mulDiv returns v*num/den, multiplying before dividing per component.
func mulDiv(v Vec3, num, den float32) Vec3 {
	return Vec3{v.X * num / den, v.Y * num / den, v.Z * num / den}
}

// IsDegenerate reports whether TriangleNormalFrom would fall back to
// DegenerateNormal for these points.
func IsDegenerate(p1, p2, p3 Vec3) bool {
	e1 := p1.Sub(p2)
	e1e1 := e1.Dot(e1)
	if e1e1 == 0 {
		return true
	}
	e2 := p1.Sub(p3)
	e3 := e2.Sub(mulDiv(e1, e1.Dot(e2), e1e1))
	return e3.Dot(e3) == 0
}
