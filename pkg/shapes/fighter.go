package shapes

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// FighterParams sizes the parts of a fighter plane. Each part is a bucket
// whose Start and End are its top and bottom radii.
type FighterParams struct {
	WingLength float32 `yaml:"wing_length"`
	WingStart  float32 `yaml:"wing_start"`
	WingEnd    float32 `yaml:"wing_end"`
	BodyLength float32 `yaml:"body_length"`
	BodyStart  float32 `yaml:"body_start"`
	BodyEnd    float32 `yaml:"body_end"`
	GunLength  float32 `yaml:"gun_length"`
	GunStart   float32 `yaml:"gun_start"`
	GunEnd     float32 `yaml:"gun_end"`
}

// DefaultFighterParams returns the stock fighter proportions.
func DefaultFighterParams() FighterParams {
	return FighterParams{
		WingLength: 3.0, WingStart: 1.0, WingEnd: 0.3,
		BodyLength: 3.0, BodyStart: 2.0, BodyEnd: 1.0,
		GunLength: 0.5, GunStart: 0.1, GunEnd: 0.1,
	}
}

// Part names.
const (
	PartBody      = "body"
	PartLeftWing  = "left_wing"
	PartRightWing = "right_wing"
	PartGun       = "gun"
)

// Part is one rigid piece of a composite model with its fixed local transform.
type Part struct {
	Name   string
	Bucket *Bucket
	Local  math.Mat4
}

// Drawer receives one draw call per part.
type Drawer interface {
	DrawMesh(name string, m *mesh.Mesh, model math.Mat4)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(name string, m *mesh.Mesh, model math.Mat4)

// DrawMesh calls f.
func (f DrawerFunc) DrawMesh(name string, m *mesh.Mesh, model math.Mat4) {
	f(name, m, model)
}

// FighterPlane is a body with two swept wings and a gun, all buckets.
type FighterPlane struct {
	Params    FighterParams
	WingAngle float32
	parts     []Part
}

// NewFighterPlane builds every part. The wings are tilted by
// atan(body_length / (body_start - body_end)) so they follow the body's
// taper.
func NewFighterPlane(p FighterParams) (*FighterPlane, error) {
	part := func(name string, top, bottom int, start, end, topRatio, bottomRatio, length float32) (*Bucket, error) {
		b, err := NewBucket(BucketParams{
			TopN:         top,
			BottomN:      bottom,
			TopRadius:    start,
			BottomRadius: end,
			TopRatio:     topRatio,
			BottomRatio:  bottomRatio,
			Height:       length,
		})
		if err != nil {
			return nil, fmt.Errorf("fighter %s: %w", name, err)
		}
		return b, nil
	}

	body, err := part(PartBody, 16, 8, p.BodyStart, p.BodyEnd, 0.3, 0.1, p.BodyLength)
	if err != nil {
		return nil, err
	}
	left, err := part(PartLeftWing, 12, 3, p.WingStart, p.WingEnd, 0.3, 0.1, p.WingLength)
	if err != nil {
		return nil, err
	}
	right, err := part(PartRightWing, 12, 3, p.WingStart, p.WingEnd, 0.3, 0.1, p.WingLength)
	if err != nil {
		return nil, err
	}
	gun, err := part(PartGun, 20, 20, p.GunStart, p.GunEnd, 1, 1, p.GunLength)
	if err != nil {
		return nil, err
	}

	angle := math32.Pi / 2
	if taper := p.BodyStart - p.BodyEnd; taper != 0 {
		angle = math32.Atan(p.BodyLength / taper)
	}
	offset := (p.BodyStart + p.BodyEnd) * 0.5

	return &FighterPlane{
		Params:    p,
		WingAngle: angle,
		parts: []Part{
			{Name: PartBody, Bucket: body, Local: math.Identity()},
			{Name: PartLeftWing, Bucket: left, Local: math.Translate(offset, 0, 0).Mul(math.RotateZ(angle))},
			{Name: PartRightWing, Bucket: right, Local: math.Translate(-offset, 0, 0).Mul(math.RotateZ(-angle))},
			{Name: PartGun, Bucket: gun, Local: math.Translate(0, -p.BodyLength*0.5, 0)},
		},
	}, nil
}

// Parts returns the parts in draw order.
func (f *FighterPlane) Parts() []Part {
	return f.parts
}

// Draw issues one DrawMesh per part with base * local as the model matrix.
func (f *FighterPlane) Draw(base math.Mat4, d Drawer) {
	for _, p := range f.parts {
		d.DrawMesh(p.Name, p.Bucket.Mesh, base.Mul(p.Local))
	}
}

// Merged bakes every part's local transform into a single mesh.
func (f *FighterPlane) Merged() *mesh.Mesh {
	out := mesh.New(f.TriangleCount())
	f.Draw(math.Identity(), DrawerFunc(func(_ string, m *mesh.Mesh, model math.Mat4) {
		for _, tri := range m.Triangles {
			for v := range tri {
				tri[v].Position = model.TransformVec3(tri[v].Position)
				tri[v].Normal = model.TransformDirection(tri[v].Normal)
			}
			out.Add(tri)
		}
	}))
	return out
}

// TriangleCount returns the triangles across all parts.
func (f *FighterPlane) TriangleCount() int {
	n := 0
	for _, p := range f.parts {
		n += p.Bucket.Mesh.TriangleCount()
	}
	return n
}
