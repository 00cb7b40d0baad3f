package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/internal/logger"
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/paper"
)

const paperMesh = NamePaper + "/sheet"

// PaperScene shows the deformable sheet. Clicks inject the configured
// force at the cell under the cursor; the sheet moves while force mode is
// on.
type PaperScene struct {
	clock paper.Clock
	paper *paper.Paper
	force config.ForceConfig

	// dirty is set when the geometry changed since the last render
	dirty bool
	log   *zap.Logger
}

// NewPaperScene builds the sheet from the paper config section. A nil clock
// uses the system clock.
func NewPaperScene(cfg *config.Config, clock paper.Clock) (*PaperScene, error) {
	s := &PaperScene{
		clock: clock,
		force: cfg.Force,
		log:   logger.Named("scene").With(zap.String("scene", NamePaper)),
	}
	if err := s.rebuild(cfg.Paper); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PaperScene) rebuild(cfg paper.Config) error {
	p, err := paper.New(cfg, s.clock)
	if err != nil {
		return err
	}
	s.paper = p
	s.dirty = true
	s.log.Info("paper built",
		zap.Int("columns", cfg.Columns),
		zap.Int("rows", cfg.Rows),
		zap.Int("triangles", p.TriangleCount()),
	)
	return nil
}

// Name returns the scene name.
func (s *PaperScene) Name() string { return NamePaper }

// Enter does nothing; the sheet keeps its state across visits.
func (s *PaperScene) Enter() error { return nil }

// Exit does nothing.
func (s *PaperScene) Exit() error { return nil }

// Paper returns the simulated sheet.
func (s *PaperScene) Paper() *paper.Paper { return s.paper }

// Update advances the sheet by the clock time since the last frame.
func (s *PaperScene) Update(float64) error {
	if s.paper.Update() {
		s.dirty = true
	}
	return nil
}

// Bounds returns the undeformed sheet.
func (s *PaperScene) Bounds() mesh.Bounds {
	cfg := s.paper.Config()
	return mesh.Bounds{
		Min: math.Vec3{X: -cfg.Width / 2, Y: -cfg.Height / 2},
		Max: math.Vec3{X: cfg.Width / 2, Y: cfg.Height / 2},
	}
}

// Render hands the live buffers to the renderer under the read lock so a
// concurrent step can never be observed half done.
func (s *PaperScene) Render(r Renderer, model math.Mat4) {
	dirty := s.dirty
	s.paper.ReadBuffers(func(b *mesh.Buffers) {
		r.DrawDynamic(paperMesh, b, dirty, model)
	})
	s.dirty = false
}

// Act handles force mode toggling and reset.
func (s *PaperScene) Act(a Action) bool {
	switch a {
	case ActionToggleForce:
		on := s.paper.ToggleForceMode()
		s.log.Info("force mode", zap.Bool("on", on))
		return true
	case ActionReset:
		s.paper.Reset()
		s.dirty = true
		s.log.Info("paper reset")
		return true
	}
	return false
}

// Pick injects the configured force at the cell hit by the ray.
func (s *PaperScene) Pick(ray picking.Ray, model math.Mat4) bool {
	local := ray.Transform(model.Inverse())
	x, y, ok := local.IntersectPlaneZ(0)
	if !ok {
		return false
	}
	col, row, ok := s.paper.CellAt(x, y)
	if !ok {
		return false
	}

	d := s.force.Direction
	if err := s.paper.SetForce(col, row, d[0], d[1], d[2], s.force.Magnitude); err != nil {
		s.log.Warn("force rejected", zap.Int("col", col), zap.Int("row", row), zap.Error(err))
		return false
	}
	f, _ := s.paper.Force(col, row)
	s.log.Debug("force injected",
		zap.Int("col", col),
		zap.Int("row", row),
		zap.Float32("magnitude", f.Magnitude),
		zap.Int("active_cells", s.paper.ActiveCells()),
	)
	return true
}

// Reconfigure follows config reloads. Tuning changes apply in place and
// keep the sheet's state; grid or appearance changes rebuild it.
func (s *PaperScene) Reconfigure(cfg *config.Config, r Renderer) error {
	s.force = cfg.Force

	cur := s.paper.Config()
	next := cfg.Paper
	if sameGrid(cur, next) {
		return s.paper.Tune(next)
	}

	forceMode := s.paper.ForceMode()
	if err := s.rebuild(next); err != nil {
		return err
	}
	if forceMode {
		s.paper.ToggleForceMode()
	}
	r.Forget(NamePaper + "/")
	return nil
}

// sameGrid reports whether a and b differ only in force tuning.
func sameGrid(a, b paper.Config) bool {
	return a.Columns == b.Columns &&
		a.Rows == b.Rows &&
		a.Width == b.Width &&
		a.Height == b.Height &&
		a.ColorMode == b.ColorMode &&
		a.FlatNormals == b.FlatNormals &&
		a.Seed == b.Seed
}
