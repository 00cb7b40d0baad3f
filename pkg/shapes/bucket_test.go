package shapes

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

func params(top, bottom int) BucketParams {
	p := DefaultBucketParams()
	p.TopN = top
	p.BottomN = bottom
	return p
}

func TestBucketTriangleCount(t *testing.T) {
	tests := []struct {
		top, bottom, ratio int
	}{
		{3, 3, 1},
		{6, 3, 2},
		{9, 3, 3},
		{12, 3, 4},
		{12, 4, 3},
		{20, 4, 5},
		{18, 3, 6},
		{20, 20, 1},
		{20, 10, 2},
	}

	for _, tt := range tests {
		b, err := NewBucket(params(tt.top, tt.bottom))
		require.NoError(t, err, "top=%d bottom=%d", tt.top, tt.bottom)
		assert.Equal(t, tt.ratio, b.Ratio)

		want := tt.top + tt.bottom + tt.bottom*(tt.ratio+1)
		assert.Equal(t, want, b.Mesh.TriangleCount(), "top=%d bottom=%d", tt.top, tt.bottom)
		assert.Equal(t, want, BucketTriangleCount(tt.top, tt.bottom, tt.ratio))

		buf := b.Mesh.Buffers()
		require.NoError(t, buf.Validate())
		assert.Len(t, buf.Positions, want*3*3)
		assert.Len(t, buf.Normals, want*3*3)
		assert.Len(t, buf.Colors, want*3*3)
		assert.Len(t, buf.TexCoords, want*3*2)
	}
}

func TestBucketValidation(t *testing.T) {
	tests := []struct {
		name   string
		p      BucketParams
		reason Reason
		target error
	}{
		{"too few top sides", params(2, 3), ReasonSideCountOutOfRange, ErrSideCountOutOfRange},
		{"too few bottom sides", params(4, 2), ReasonSideCountOutOfRange, ErrSideCountOutOfRange},
		{"too many sides", params(21, 3), ReasonSideCountOutOfRange, ErrSideCountOutOfRange},
		{"non-integer ratio", params(7, 5), ReasonRatioNotInteger, ErrRatioNotInteger},
		{"top below bottom", params(3, 5), ReasonTopBelowBottom, ErrTopBelowBottom},
		{"negative height", func() BucketParams {
			p := params(6, 3)
			p.Height = -1
			return p
		}(), ReasonNegativeDimension, ErrNegativeDimension},
		{"negative bottom radius", func() BucketParams {
			p := params(6, 3)
			p.BottomRadius = -0.5
			return p
		}(), ReasonNegativeDimension, ErrNegativeDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBucket(tt.p)
			require.Error(t, err)
			assert.Nil(t, b, "no partial bucket on error")

			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.reason, cfgErr.Reason)
			assert.Equal(t, "bucket", cfgErr.Shape)
		})
	}
}

func TestBucketCaps(t *testing.T) {
	p := params(8, 4)
	p.Height = 2
	b, err := NewBucket(p)
	require.NoError(t, err)

	tris := b.Mesh.Triangles
	for i := 0; i < p.TopN; i++ {
		for _, v := range tris[i] {
			assert.Equal(t, float32(1), v.Position.Y, "top cap triangle %d", i)
		}
		assert.Equal(t, math.Vec3{Y: 1}, tris[i][2].Position)
		assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, tris[i][2].TexCoord)
	}
	for i := p.TopN; i < p.TopN+p.BottomN; i++ {
		for _, v := range tris[i] {
			assert.Equal(t, float32(-1), v.Position.Y, "bottom cap triangle %d", i)
		}
		assert.Equal(t, math.Vec3{Y: -1}, tris[i][2].Position)
	}

	// The first perimeter point lies on +Z, scaled by radius and ratio.
	assert.InDelta(t, 0, tris[0][0].Position.X, 1e-6)
	assert.InDelta(t, p.TopRadius*p.TopRatio, tris[0][0].Position.Z, 1e-6)
}

func TestBucketSideFan(t *testing.T) {
	tests := []struct {
		top, bottom int
		start, end  int // triangles sharing the bottom start / end vertex
	}{
		{4, 4, 1, 0},
		{8, 4, 2, 0},
		{12, 4, 2, 1},
		{16, 4, 3, 1},
		{15, 3, 3, 2},
	}

	for _, tt := range tests {
		b, err := NewBucket(params(tt.top, tt.bottom))
		require.NoError(t, err)

		sides := b.Mesh.Triangles[tt.top+tt.bottom:]
		per := b.Ratio + 1
		require.Len(t, sides, tt.bottom*per)

		bottomY := -b.Params.Height / 2
		for k := 0; k < tt.bottom; k++ {
			seg := sides[k*per : (k+1)*per]
			startU := float32(k) / float32(tt.bottom)
			endU := float32(k+1) / float32(tt.bottom)

			for i := 0; i < tt.start; i++ {
				assert.Equal(t, bottomY, seg[i][2].Position.Y)
				assert.Equal(t, startU, seg[i][2].TexCoord.X, "top=%d bottom %d tri %d", tt.top, k, i)
			}
			transition := seg[tt.start]
			assert.Equal(t, float32(1), transition[0].TexCoord.Y)
			assert.Equal(t, startU, transition[1].TexCoord.X)
			assert.Equal(t, endU, transition[2].TexCoord.X)
			for i := tt.start + 1; i < per; i++ {
				assert.Equal(t, endU, seg[i][2].TexCoord.X, "top=%d bottom %d tri %d", tt.top, k, i)
			}
			assert.Equal(t, tt.end, per-tt.start-1)
		}
	}
}

func TestBucketOddRatioOffset(t *testing.T) {
	// With ratio 3 the middle top edge is index 1, so the first side triangle
	// starts one top step before bottom vertex 0.
	p := params(12, 4)
	p.TopRatio = 1
	b, err := NewBucket(p)
	require.NoError(t, err)

	first := b.Mesh.Triangles[p.TopN+p.BottomN]
	step := 2 * math32.Pi / 12
	assert.InDelta(t, math32.Sin(-step)*p.TopRadius, first[0].Position.X, 1e-5)
	assert.InDelta(t, math32.Cos(-step)*p.TopRadius, first[0].Position.Z, 1e-5)
	assert.Equal(t, float32(0), first[0].TexCoord.X)
}

func TestBucketSideTopCoverage(t *testing.T) {
	b, err := NewBucket(params(12, 4))
	require.NoError(t, err)

	// Every top edge is used exactly once on the sides.
	seen := map[float32]int{}
	for _, tri := range b.Mesh.Triangles[16:] {
		if tri[1].TexCoord.Y == 1 {
			seen[tri[0].TexCoord.X]++
		}
	}
	assert.Len(t, seen, 12)
	for u, n := range seen {
		assert.Equal(t, 1, n, "top edge at u=%v", u)
	}
}

func TestBucketFlatNormalsPointOutward(t *testing.T) {
	b, err := NewBucket(params(12, 6))
	require.NoError(t, err)

	for i, tri := range b.Mesh.Triangles {
		n := tri[0].Normal
		assert.Equal(t, n, tri[1].Normal)
		assert.Equal(t, n, tri[2].Normal)

		centroid := tri[0].Position.Add(tri[1].Position).Add(tri[2].Position).Scale(1.0 / 3)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d normal %v", i, n)
	}
}

func TestBucketSmoothNormals(t *testing.T) {
	p := params(6, 3)
	p.FlatNormals = false
	b, err := NewBucket(p)
	require.NoError(t, err)

	for _, tri := range b.Mesh.Triangles {
		for _, v := range tri {
			assert.Equal(t, v.Position, v.Normal)
		}
	}
}

func TestBucketColors(t *testing.T) {
	p := params(12, 4)
	p.ColorMode = false
	plain, err := NewBucket(p)
	require.NoError(t, err)
	for _, tri := range plain.Mesh.Triangles {
		for _, v := range tri {
			assert.Equal(t, mesh.White, v.Color)
		}
	}

	p.ColorMode = true
	p.Seed = 99
	a, err := NewBucket(p)
	require.NoError(t, err)
	b, err := NewBucket(p)
	require.NoError(t, err)
	for i := range a.Mesh.Triangles {
		ta := a.Mesh.Triangles[i]
		assert.Equal(t, ta[0].Color, ta[1].Color)
		assert.Equal(t, ta[0].Color, ta[2].Color)
		assert.Equal(t, ta[0].Color, b.Mesh.Triangles[i][0].Color)
		for _, ch := range []float32{ta[0].Color.X, ta[0].Color.Y, ta[0].Color.Z} {
			assert.Contains(t, []float32{0, 1}, ch)
		}
	}
}

func TestBucketTexCoordsInRange(t *testing.T) {
	b, err := NewBucket(params(20, 5))
	require.NoError(t, err)
	for _, tri := range b.Mesh.Triangles {
		for _, v := range tri {
			assert.GreaterOrEqual(t, v.TexCoord.X, float32(-1e-6))
			assert.LessOrEqual(t, v.TexCoord.X, float32(1+1e-6))
			assert.GreaterOrEqual(t, v.TexCoord.Y, float32(-1e-6))
			assert.LessOrEqual(t, v.TexCoord.Y, float32(1+1e-6))
		}
	}
}

func TestShapeAliases(t *testing.T) {
	c, err := NewCylinder(8, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Ratio)
	assert.Equal(t, 8+8+8*2, c.Mesh.TriangleCount())
	bounds := c.Mesh.Bounds()
	assert.InDelta(t, 1, bounds.Max.Y, 1e-6)
	assert.InDelta(t, -1, bounds.Min.Y, 1e-6)

	f, err := NewFrustum(10, 5, 1, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Ratio)
	assert.False(t, f.Params.ColorMode)
	assert.True(t, f.Params.FlatNormals)

	_, err = NewCylinder(2, 1, 1)
	assert.ErrorIs(t, err, ErrSideCountOutOfRange)
}
