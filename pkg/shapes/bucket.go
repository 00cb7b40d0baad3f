// Package shapes generates closed triangle meshes for parametric and fixed
// solids, and composes them into rigid multi-part models.
package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// Bucket side-count limits.
const (
	MinSides = 3
	MaxSides = 20
	MaxRatio = 10
)

// BucketParams describes a frustum-like solid with a TopN-gon on top and a
// BottomN-gon at the bottom. Radii scale X; the ratios further scale Z, so
// a ratio other than 1 gives an elliptic outline.
type BucketParams struct {
	TopN         int     `yaml:"top_n"`
	BottomN      int     `yaml:"bottom_n"`
	TopRadius    float32 `yaml:"top_radius"`
	BottomRadius float32 `yaml:"bottom_radius"`
	TopRatio     float32 `yaml:"top_ratio"`
	BottomRatio  float32 `yaml:"bottom_ratio"`
	Height       float32 `yaml:"height"`
	ColorMode    bool    `yaml:"color_mode"`
	FlatNormals  bool    `yaml:"flat_normals"`
	// Seed makes random colors reproducible; 0 draws from the global source.
	Seed uint64 `yaml:"seed"`
}

// DefaultBucketParams returns a twelve-to-four sided bucket with random
// colors and flat normals.
func DefaultBucketParams() BucketParams {
	return BucketParams{
		TopN:         12,
		BottomN:      4,
		TopRadius:    1.0,
		BottomRadius: 0.6,
		TopRatio:     1.0,
		BottomRatio:  1.0,
		Height:       1.5,
		ColorMode:    true,
		FlatNormals:  true,
	}
}

// Validate checks the side counts and returns TopN/BottomN.
func (p BucketParams) Validate() (int, error) {
	if p.TopN < MinSides || p.TopN > MaxSides || p.BottomN < MinSides || p.BottomN > MaxSides {
		return 0, configError("bucket", ReasonSideCountOutOfRange,
			"top_n=%d bottom_n=%d, both must be in [%d, %d]", p.TopN, p.BottomN, MinSides, MaxSides)
	}
	if p.TopN < p.BottomN {
		return 0, configError("bucket", ReasonTopBelowBottom,
			"top_n=%d must be at least bottom_n=%d", p.TopN, p.BottomN)
	}
	ratio := -1
	for i := 1; i <= MaxRatio; i++ {
		if p.TopN == i*p.BottomN {
			ratio = i
			break
		}
	}
	if ratio == -1 {
		return 0, configError("bucket", ReasonRatioNotInteger,
			"top_n=%d must be bottom_n=%d times a natural number up to %d", p.TopN, p.BottomN, MaxRatio)
	}
	if p.TopRadius < 0 || p.BottomRadius < 0 || p.TopRatio < 0 || p.BottomRatio < 0 || p.Height < 0 {
		return 0, configError("bucket", ReasonNegativeDimension,
			"radii, ratios and height must not be negative")
	}
	return ratio, nil
}

// BucketTriangleCount returns the number of triangles a valid bucket has:
// both caps plus ratio+1 side triangles per bottom edge.
func BucketTriangleCount(topN, bottomN, ratio int) int {
	return topN + bottomN + bottomN*(ratio+1)
}

// Bucket is a generated frustum solid.
type Bucket struct {
	Params BucketParams
	Ratio  int
	Mesh   *mesh.Mesh
}

// NewBucket validates p and builds the solid. On error no mesh is built.
func NewBucket(p BucketParams) (*Bucket, error) {
	ratio, err := p.Validate()
	if err != nil {
		return nil, err
	}

	top := ring{n: p.TopN, radius: p.TopRadius, ratio: p.TopRatio, y: p.Height / 2}
	bottom := ring{n: p.BottomN, radius: p.BottomRadius, ratio: p.BottomRatio, y: -p.Height / 2}

	m := mesh.New(BucketTriangleCount(p.TopN, p.BottomN, ratio))
	top.capFan(m)
	bottom.capFan(m)
	sides(m, top, bottom, ratio)

	// Flat normals are taken against the origin, the solid's own center.
	m.ApplyShading(mesh.ShadingFor(p.FlatNormals), math.Vec3{})
	m.Paint(mesh.ColorsFor(p.ColorMode, p.Seed))

	return &Bucket{Params: p, Ratio: ratio, Mesh: m}, nil
}

// NewCylinder builds an n-sided prism. Colors are off and normals flat.
func NewCylinder(n int, radius, height float32) (*Bucket, error) {
	return NewFrustum(n, n, radius, radius, height)
}

// NewFrustum builds a truncated cone with round outlines. Colors are off and
// normals flat.
func NewFrustum(topN, bottomN int, topRadius, bottomRadius, height float32) (*Bucket, error) {
	return NewBucket(BucketParams{
		TopN:         topN,
		BottomN:      bottomN,
		TopRadius:    topRadius,
		BottomRadius: bottomRadius,
		TopRatio:     1,
		BottomRatio:  1,
		Height:       height,
		FlatNormals:  true,
	})
}

// ring is one polygon outline of a bucket.
type ring struct {
	n      int
	radius float32
	ratio  float32
	y      float32
}

func (r ring) step() float32 {
	return 2 * math32.Pi / float32(r.n)
}

// point returns the outline point at angle theta, measured from +Z toward +X.
func (r ring) point(theta float32) math.Vec3 {
	return math.Vec3{
		X: math32.Sin(theta) * r.radius,
		Y: r.y,
		Z: math32.Cos(theta) * r.radius * r.ratio,
	}
}

// capFan emits n triangles (perimeter i, perimeter i+1, center).
func (r ring) capFan(m *mesh.Mesh) {
	step := r.step()
	center := mesh.Vertex{
		Position: math.Vec3{Y: r.y},
		TexCoord: math.Vec2{X: 0.5, Y: 0.5},
	}
	for i := 0; i < r.n; i++ {
		t1 := float32(i) * step
		t2 := float32(i+1) * step
		m.Add(mesh.Triangle{
			{Position: r.point(t1), TexCoord: discUV(t1)},
			{Position: r.point(t2), TexCoord: discUV(t2)},
			center,
		})
	}
}

func discUV(theta float32) math.Vec2 {
	return math.Vec2{X: (math32.Sin(theta) + 1) * 0.5, Y: (math32.Cos(theta) + 1) * 0.5}
}

// sides stitches the top outline to the bottom one. Every bottom edge gets
// ratio+1 triangles: top edges up to the middle one fan from the edge's start
// vertex, one transition triangle spans the whole bottom edge, and the
// remaining top edges fan from the end vertex. Top vertex 0 sits middle
// steps before bottom vertex 0, so for odd ratios the fan is asymmetric.
func sides(m *mesh.Mesh, top, bottom ring, ratio int) {
	middle := ratio / 2
	topStep, bottomStep := top.step(), bottom.step()

	topVertex := func(i int) mesh.Vertex {
		return mesh.Vertex{
			Position: top.point(float32(i-middle) * topStep),
			TexCoord: math.Vec2{X: float32(i) / float32(top.n), Y: 1},
		}
	}
	bottomVertex := func(i int) mesh.Vertex {
		return mesh.Vertex{
			Position: bottom.point(float32(i) * bottomStep),
			TexCoord: math.Vec2{X: float32(i) / float32(bottom.n), Y: 0},
		}
	}

	t := 0
	for b := 0; b < bottom.n; b++ {
		start, end := bottomVertex(b), bottomVertex(b+1)
		for ; t <= middle+b*ratio; t++ {
			m.Add(mesh.Triangle{topVertex(t), topVertex(t + 1), start})
		}
		m.Add(mesh.Triangle{topVertex(t), start, end})
		for ; t < ratio+b*ratio; t++ {
			m.Add(mesh.Triangle{topVertex(t), topVertex(t + 1), end})
		}
	}
}
