// Package paper simulates a deformable sheet: a grid of cells, each fanned
// into four triangles around an authoritative center point, that bends
// under decaying force impulses.
//
// Corner points are never stored independently. They are recomputed from
// the centers after every move, so neighbouring cells always share
// bit-identical corners and the sheet stays watertight.
package paper

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

var (
	ErrInvalidConfig  = errors.New("paper: invalid config")
	ErrCellOutOfRange = errors.New("paper: cell out of range")
	ErrZeroDirection  = errors.New("paper: zero force direction")
)

// TrianglesPerCell is the fan size of one cell: bottom, right, top, left.
const TrianglesPerCell = 4

// Config sizes the sheet and tunes the force model.
type Config struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`

	// ReducingForce is the magnitude lost per second by an active cell.
	ReducingForce float32 `yaml:"reducing_force"`
	// DisplacementScale converts magnitude-seconds into world units.
	DisplacementScale float32 `yaml:"displacement_scale"`
	// SpreadFactor, when positive, re-applies each impulse to the four
	// diagonal neighbours scaled by this factor, as long as the impulse
	// exceeds SpreadThreshold.
	SpreadFactor    float32 `yaml:"spread_factor"`
	SpreadThreshold float32 `yaml:"spread_threshold"`

	ColorMode   bool   `yaml:"color_mode"`
	FlatNormals bool   `yaml:"flat_normals"`
	Seed        uint64 `yaml:"seed"`
}

// DefaultConfig returns a 100x100 cell sheet, 10 units on a side, with
// spreading off.
func DefaultConfig() Config {
	return Config{
		Columns:           100,
		Rows:              100,
		Width:             10,
		Height:            10,
		ReducingForce:     0.1,
		DisplacementScale: 0.1,
		SpreadFactor:      0,
		SpreadThreshold:   0.1,
		ColorMode:         false,
		FlatNormals:       true,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Columns < 1 || c.Rows < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	return c.validateTuning()
}

func (c Config) validateTuning() error {
	switch {
	case c.ReducingForce < 0:
		return fmt.Errorf("%w: reducing_force %g is negative", ErrInvalidConfig, c.ReducingForce)
	case c.DisplacementScale < 0:
		return fmt.Errorf("%w: displacement_scale %g is negative", ErrInvalidConfig, c.DisplacementScale)
	case c.SpreadFactor < 0 || c.SpreadFactor >= 1:
		return fmt.Errorf("%w: spread_factor %g outside [0, 1)", ErrInvalidConfig, c.SpreadFactor)
	case c.SpreadThreshold < 0:
		return fmt.Errorf("%w: spread_threshold %g is negative", ErrInvalidConfig, c.SpreadThreshold)
	}
	return nil
}

// Force is the impulse state of one cell. A cell with zero magnitude is idle.
type Force struct {
	Direction math.Vec3 // unit length while Magnitude > 0
	Magnitude float32
}

// Active reports whether the cell is still displacing.
func (f Force) Active() bool {
	return f.Magnitude > 0
}

// Paper is a deformable sheet in the XY plane at z=0.
//
// All methods are safe for concurrent use. Step and Update hold the write
// lock until positions and normals are rebuilt, so readers never observe a
// half-updated sheet.
type Paper struct {
	mu sync.RWMutex

	// Grid size fields of cfg are fixed by New; only Tune writes the rest.
	// Range checks read them without the lock.
	cfg   Config
	clock Clock

	centers []math.Vec3 // rows*cols, row-major
	corners []math.Vec3 // (rows+1)*(cols+1), row-major
	forces  []Force

	mesh *mesh.Mesh
	buf  mesh.Buffers

	forceMode bool
	last      float64
}

// New builds a flat sheet with every cell idle and force mode off. A nil
// clock uses a SystemClock.
func New(cfg Config, clock Clock) (*Paper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = NewSystemClock()
	}

	cells := cfg.Columns * cfg.Rows
	p := &Paper{
		cfg:     cfg,
		clock:   clock,
		centers: make([]math.Vec3, cells),
		corners: make([]math.Vec3, (cfg.Columns+1)*(cfg.Rows+1)),
		forces:  make([]Force, cells),
		mesh:    &mesh.Mesh{Triangles: make([]mesh.Triangle, cells*TrianglesPerCell)},
	}
	p.flatten()
	p.updatePositions()

	// Texture coordinates and colors are fixed by the undeformed sheet.
	for i := range p.mesh.Triangles {
		tri := &p.mesh.Triangles[i]
		for v := range tri {
			pos := tri[v].Position
			tri[v].TexCoord = math.Vec2{
				X: (pos.X + cfg.Width*0.5) / cfg.Width,
				Y: 1 - (pos.Y+cfg.Height*0.5)/cfg.Height,
			}
		}
	}
	p.mesh.Paint(mesh.ColorsFor(cfg.ColorMode, cfg.Seed))

	p.applyShading()
	p.mesh.FillBuffers(&p.buf)
	p.last = clock.Seconds()
	return p, nil
}

// flatten lays every center on the z=0 plane and recomputes corners.
func (p *Paper) flatten() {
	bw := p.cfg.Width / float32(p.cfg.Columns)
	bh := p.cfg.Height / float32(p.cfg.Rows)
	for r := 0; r < p.cfg.Rows; r++ {
		for c := 0; c < p.cfg.Columns; c++ {
			p.centers[p.cell(c, r)] = math.Vec3{
				X: -p.cfg.Width*0.5 + (0.5+float32(c))*bw,
				Y: -p.cfg.Height*0.5 + (0.5+float32(r))*bh,
			}
		}
	}
	p.updateCorners()
}

func (p *Paper) cell(col, row int) int {
	return row*p.cfg.Columns + col
}

func (p *Paper) corner(col, row int) math.Vec3 {
	return p.corners[row*(p.cfg.Columns+1)+col]
}

func (p *Paper) inRange(col, row int) bool {
	return col >= 0 && col < p.cfg.Columns && row >= 0 && row < p.cfg.Rows
}

// updateCorners averages the centers of the cells touching each grid
// intersection: four inside the sheet, two along an edge, one at the outer
// corners.
func (p *Paper) updateCorners() {
	cols, rows := p.cfg.Columns, p.cfg.Rows
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			var sum math.Vec3
			n := 0
			for _, cr := range [2]int{r - 1, r} {
				if cr < 0 || cr >= rows {
					continue
				}
				for _, cc := range [2]int{c - 1, c} {
					if cc < 0 || cc >= cols {
						continue
					}
					sum = sum.Add(p.centers[p.cell(cc, cr)])
					n++
				}
			}
			p.corners[r*(cols+1)+c] = sum.Scale(1 / float32(n))
		}
	}
}

// updatePositions writes the four triangles of every cell, column by column.
func (p *Paper) updatePositions() {
	rows := p.cfg.Rows
	for c := 0; c < p.cfg.Columns; c++ {
		for r := 0; r < rows; r++ {
			center := p.centers[p.cell(c, r)]
			bl := p.corner(c, r)
			br := p.corner(c+1, r)
			tr := p.corner(c+1, r+1)
			tl := p.corner(c, r+1)

			tris := p.mesh.Triangles[(c*rows+r)*TrianglesPerCell:]
			setPositions(&tris[0], bl, br, center)
			setPositions(&tris[1], br, tr, center)
			setPositions(&tris[2], tr, tl, center)
			setPositions(&tris[3], tl, bl, center)
		}
	}
}

func setPositions(t *mesh.Triangle, a, b, c math.Vec3) {
	t[0].Position = a
	t[1].Position = b
	t[2].Position = c
}

func (p *Paper) applyShading() {
	p.mesh.ApplyShading(mesh.ShadingFor(p.cfg.FlatNormals), math.NormalReference)
}

// rebuild re-derives corners, positions and normals from the centers.
func (p *Paper) rebuild() {
	p.updateCorners()
	p.updatePositions()
	p.applyShading()
	p.mesh.FillGeometry(&p.buf)
}

// Config returns the active configuration.
func (p *Paper) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Columns returns the number of cells along X.
func (p *Paper) Columns() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Columns
}

// Rows returns the number of cells along Y.
func (p *Paper) Rows() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Rows
}

// TriangleCount returns the fixed number of triangles in the sheet.
func (p *Paper) TriangleCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Columns * p.cfg.Rows * TrianglesPerCell
}

// Center returns the center point of a cell.
func (p *Paper) Center(col, row int) (math.Vec3, bool) {
	if !p.inRange(col, row) {
		return math.Vec3{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.centers[p.cell(col, row)], true
}

// Corner returns the grid intersection at (col, row), with col in
// [0, Columns] and row in [0, Rows].
func (p *Paper) Corner(col, row int) (math.Vec3, bool) {
	if col < 0 || col > p.cfg.Columns || row < 0 || row > p.cfg.Rows {
		return math.Vec3{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.corner(col, row), true
}

// Force returns the impulse state of a cell.
func (p *Paper) Force(col, row int) (Force, bool) {
	if !p.inRange(col, row) {
		return Force{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.forces[p.cell(col, row)], true
}

// ActiveCells counts cells that are still displacing.
func (p *Paper) ActiveCells() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for _, f := range p.forces {
		if f.Active() {
			n++
		}
	}
	return n
}

// CellAt maps a point on the undeformed sheet to the cell containing it.
func (p *Paper) CellAt(x, y float32) (col, row int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u := (x + p.cfg.Width*0.5) / p.cfg.Width
	v := (y + p.cfg.Height*0.5) / p.cfg.Height
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return 0, 0, false
	}
	col = min(int(u*float32(p.cfg.Columns)), p.cfg.Columns-1)
	row = min(int(v*float32(p.cfg.Rows)), p.cfg.Rows-1)
	return col, row, true
}

// Mesh returns a copy of the current triangle list.
func (p *Paper) Mesh() *mesh.Mesh {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &mesh.Mesh{Triangles: slices.Clone(p.mesh.Triangles)}
}

// Buffers returns a copy of the current attribute streams.
func (p *Paper) Buffers() mesh.Buffers {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mesh.Buffers{
		Positions: slices.Clone(p.buf.Positions),
		Normals:   slices.Clone(p.buf.Normals),
		Colors:    slices.Clone(p.buf.Colors),
		TexCoords: slices.Clone(p.buf.TexCoords),
	}
}

// ReadBuffers calls fn with the live attribute streams while holding the
// read lock. fn must not retain or modify them.
func (p *Paper) ReadBuffers(fn func(b *mesh.Buffers)) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn(&p.buf)
}

// Tune replaces the force-model settings (reducing force, displacement
// scale, spreading) without touching the grid. Size, color and shading
// fields of cfg are ignored.
func (p *Paper) Tune(cfg Config) error {
	if err := cfg.validateTuning(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg.ReducingForce = cfg.ReducingForce
	p.cfg.DisplacementScale = cfg.DisplacementScale
	p.cfg.SpreadFactor = cfg.SpreadFactor
	p.cfg.SpreadThreshold = cfg.SpreadThreshold
	return nil
}

// Reset flattens the sheet and clears every force. Force mode is kept.
func (p *Paper) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.forces)
	p.flatten()
	p.updatePositions()
	p.applyShading()
	p.mesh.FillGeometry(&p.buf)
}
