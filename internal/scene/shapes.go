package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/internal/logger"
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/shapes"
)

// builder generates a scene's mesh from config. key returns the config
// section the mesh depends on so reloads that leave it alone are skipped.
type builder struct {
	key   func(cfg *config.Config) any
	build func(cfg *config.Config) (*mesh.Mesh, error)
}

// MeshScene shows a single static mesh.
type MeshScene struct {
	name    string
	builder builder
	key     any
	mesh    *mesh.Mesh
	log     *zap.Logger
}

func newMeshScene(name string, b builder, cfg *config.Config) (*MeshScene, error) {
	s := &MeshScene{
		name:    name,
		builder: b,
		log:     logger.Named("scene").With(zap.String("scene", name)),
	}
	if err := s.rebuild(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCubeScene shows the cube.
func NewCubeScene(cfg *config.Config) (*MeshScene, error) {
	return newMeshScene(NameCube, builder{
		key: func(cfg *config.Config) any { return cfg.Cube },
		build: func(cfg *config.Config) (*mesh.Mesh, error) {
			c, err := shapes.NewCube(cfg.Cube.Edge)
			if err != nil {
				return nil, err
			}
			return c.Mesh, nil
		},
	}, cfg)
}

// NewPyramidScene shows the pyramid.
func NewPyramidScene(cfg *config.Config) (*MeshScene, error) {
	return newMeshScene(NamePyramid, builder{
		key: func(cfg *config.Config) any { return cfg.Pyramid },
		build: func(cfg *config.Config) (*mesh.Mesh, error) {
			p, err := shapes.NewPyramid(cfg.Pyramid.BottomLine, cfg.Pyramid.Height)
			if err != nil {
				return nil, err
			}
			return p.Mesh, nil
		},
	}, cfg)
}

// NewBucketScene shows a bucket built from the bucket config section.
func NewBucketScene(cfg *config.Config) (*MeshScene, error) {
	return newMeshScene(NameBucket, builder{
		key: func(cfg *config.Config) any { return cfg.Bucket },
		build: func(cfg *config.Config) (*mesh.Mesh, error) {
			b, err := shapes.NewBucket(cfg.Bucket)
			if err != nil {
				return nil, err
			}
			return b.Mesh, nil
		},
	}, cfg)
}

func (s *MeshScene) rebuild(cfg *config.Config) error {
	m, err := s.builder.build(cfg)
	if err != nil {
		return err
	}
	s.mesh = m
	s.key = s.builder.key(cfg)
	s.log.Info("mesh built", zap.Int("triangles", m.TriangleCount()))
	return nil
}

// Name returns the scene name.
func (s *MeshScene) Name() string { return s.name }

// Enter does nothing; the mesh is built up front.
func (s *MeshScene) Enter() error { return nil }

// Exit does nothing.
func (s *MeshScene) Exit() error { return nil }

// Update does nothing; static meshes never change.
func (s *MeshScene) Update(float64) error { return nil }

// Mesh returns the generated mesh.
func (s *MeshScene) Mesh() *mesh.Mesh { return s.mesh }

// Bounds returns the mesh bounds.
func (s *MeshScene) Bounds() mesh.Bounds { return s.mesh.Bounds() }

// Render draws the mesh.
func (s *MeshScene) Render(r Renderer, model math.Mat4) {
	r.DrawMesh(s.name+"/mesh", s.mesh, model)
}

// Reconfigure rebuilds the mesh when its config section changed. On error
// the previous mesh stays.
func (s *MeshScene) Reconfigure(cfg *config.Config, r Renderer) error {
	if s.builder.key(cfg) == s.key {
		return nil
	}
	if err := s.rebuild(cfg); err != nil {
		return err
	}
	r.Forget(s.name + "/")
	return nil
}

// FighterScene shows the fighter plane, one draw per part.
type FighterScene struct {
	params shapes.FighterParams
	plane  *shapes.FighterPlane
	bounds mesh.Bounds
	picked string
	log    *zap.Logger
}

// NewFighterScene builds the plane from the fighter config section.
func NewFighterScene(cfg *config.Config) (*FighterScene, error) {
	s := &FighterScene{log: logger.Named("scene").With(zap.String("scene", NameFighter))}
	if err := s.rebuild(cfg.Fighter); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FighterScene) rebuild(p shapes.FighterParams) error {
	plane, err := shapes.NewFighterPlane(p)
	if err != nil {
		return err
	}
	s.params = p
	s.plane = plane
	s.bounds = plane.Merged().Bounds()
	s.log.Info("fighter built",
		zap.Int("parts", len(plane.Parts())),
		zap.Int("triangles", plane.TriangleCount()),
		zap.Float32("wing_angle", plane.WingAngle),
	)
	return nil
}

// Name returns the scene name.
func (s *FighterScene) Name() string { return NameFighter }

// Enter clears the last pick.
func (s *FighterScene) Enter() error {
	s.picked = ""
	return nil
}

// Exit does nothing.
func (s *FighterScene) Exit() error { return nil }

// Update does nothing; the plane is rigid.
func (s *FighterScene) Update(float64) error { return nil }

// Plane returns the composite model.
func (s *FighterScene) Plane() *shapes.FighterPlane { return s.plane }

// Bounds returns the bounds of all parts in plane space.
func (s *FighterScene) Bounds() mesh.Bounds { return s.bounds }

// Render issues one draw per part.
func (s *FighterScene) Render(r Renderer, model math.Mat4) {
	s.plane.Draw(model, shapes.DrawerFunc(func(name string, m *mesh.Mesh, partModel math.Mat4) {
		r.DrawMesh(NameFighter+"/"+name, m, partModel)
	}))
}

// Pick reports the nearest part under the ray.
func (s *FighterScene) Pick(ray picking.Ray, model math.Mat4) bool {
	best := ""
	var bestT float32
	for _, p := range s.plane.Parts() {
		local := ray.Transform(model.Mul(p.Local).Inverse())
		t, hit := local.IntersectBounds(p.Bucket.Mesh.Bounds())
		if hit && (best == "" || t < bestT) {
			best, bestT = p.Name, t
		}
	}
	if best == "" {
		return false
	}
	s.picked = best
	s.log.Info("part picked", zap.String("part", best))
	return true
}

// Picked returns the name of the last picked part.
func (s *FighterScene) Picked() string { return s.picked }

// Reconfigure rebuilds the plane when the fighter section changed.
func (s *FighterScene) Reconfigure(cfg *config.Config, r Renderer) error {
	if cfg.Fighter == s.params {
		return nil
	}
	if err := s.rebuild(cfg.Fighter); err != nil {
		return err
	}
	r.Forget(NameFighter + "/")
	return nil
}
