package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/paper"
	"github.com/Faultbox/meshlab/pkg/shapes"
)

type draw struct {
	name    string
	dynamic bool
	dirty   bool
}

type fakeRenderer struct {
	draws   []draw
	forgets []string
}

func (r *fakeRenderer) DrawMesh(name string, _ *mesh.Mesh, _ math.Mat4) {
	r.draws = append(r.draws, draw{name: name})
}

func (r *fakeRenderer) DrawDynamic(name string, b *mesh.Buffers, dirty bool, _ math.Mat4) {
	if b.Validate() != nil {
		panic("misaligned buffers")
	}
	r.draws = append(r.draws, draw{name: name, dynamic: true, dirty: dirty})
}

func (r *fakeRenderer) Forget(prefix string) {
	r.forgets = append(r.forgets, prefix)
}

type recordingScene struct {
	name  string
	calls []string
	fail  error
}

func (s *recordingScene) Name() string { return s.name }
func (s *recordingScene) Enter() error {
	s.calls = append(s.calls, "enter")
	return s.fail
}
func (s *recordingScene) Exit() error {
	s.calls = append(s.calls, "exit")
	return nil
}
func (s *recordingScene) Update(float64) error {
	s.calls = append(s.calls, "update")
	return nil
}
func (s *recordingScene) Render(Renderer, math.Mat4) {}
func (s *recordingScene) Bounds() mesh.Bounds         { return mesh.Bounds{} }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Paper.Columns = 6
	cfg.Paper.Rows = 5
	cfg.Paper.Width = 6
	cfg.Paper.Height = 5
	return cfg
}

// downRay looks straight down -Z at (x, y).
func downRay(x, y float32) picking.Ray {
	return picking.Ray{Origin: math.Vec3{X: x, Y: y, Z: 10}, Direction: math.Vec3{Z: -1}}
}

func TestManagerTransitions(t *testing.T) {
	m := NewManager()
	a := &recordingScene{name: "a"}
	b := &recordingScene{name: "b"}
	m.Register(a)
	m.Register(b)

	assert.Equal(t, []string{"a", "b"}, m.Names())
	assert.Nil(t, m.Current())

	require.NoError(t, m.ChangeTo("a"))
	changed, err := m.Update(0.016)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"enter", "update"}, a.calls)

	changed, err = m.Update(0.016)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, m.ChangeToIndex(1))
	_, err = m.Update(0.016)
	require.NoError(t, err)
	assert.Equal(t, []string{"enter", "update", "update", "exit"}, a.calls)
	assert.Equal(t, []string{"enter", "update"}, b.calls)
	assert.Equal(t, "b", m.Current().Name())

	require.NoError(t, m.Close())
	assert.Nil(t, m.Current())
	assert.Equal(t, "exit", b.calls[len(b.calls)-1])
}

func TestManagerUnknownScene(t *testing.T) {
	m := NewManager()
	m.Register(&recordingScene{name: "a"})

	assert.ErrorIs(t, m.ChangeTo("nope"), ErrUnknownScene)
	assert.ErrorIs(t, m.ChangeToIndex(1), ErrUnknownScene)
	assert.ErrorIs(t, m.ChangeToIndex(-1), ErrUnknownScene)
}

func TestManagerEnterError(t *testing.T) {
	m := NewManager()
	boom := errors.New("boom")
	m.Register(&recordingScene{name: "a", fail: boom})

	require.NoError(t, m.ChangeTo("a"))
	_, err := m.Update(0)
	assert.ErrorIs(t, err, boom)
}

func TestManagerForwardsOnlyToCapableScenes(t *testing.T) {
	m := NewManager()
	m.Register(&recordingScene{name: "a"})

	// No current scene yet
	assert.False(t, m.Act(ActionReset))
	assert.False(t, m.Pick(downRay(0, 0), math.Identity()))

	require.NoError(t, m.ChangeTo("a"))
	_, err := m.Update(0)
	require.NoError(t, err)
	assert.False(t, m.Act(ActionToggleForce))
	assert.False(t, m.Pick(downRay(0, 0), math.Identity()))
}

func TestBuild(t *testing.T) {
	m, err := Build(testConfig(), &paper.ManualClock{})
	require.NoError(t, err)

	assert.Equal(t, []string{NameCube, NamePyramid, NameBucket, NameFighter, NamePaper}, m.Names())

	_, err = m.Update(0)
	require.NoError(t, err)
	assert.Equal(t, NamePaper, m.Current().Name())
}

func TestBuildErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Scene.Initial = "teapot"
	_, err := Build(cfg, &paper.ManualClock{})
	assert.ErrorIs(t, err, ErrUnknownScene)

	cfg = testConfig()
	cfg.Bucket.TopN = 2
	_, err = Build(cfg, &paper.ManualClock{})
	assert.ErrorIs(t, err, shapes.ErrSideCountOutOfRange)
}

func TestMeshScenes(t *testing.T) {
	cfg := testConfig()

	cube, err := NewCubeScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, shapes.CubeTriangles, cube.Mesh().TriangleCount())

	pyramid, err := NewPyramidScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, shapes.PyramidTriangles, pyramid.Mesh().TriangleCount())

	bucket, err := NewBucketScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, shapes.BucketTriangleCount(12, 4, 3), bucket.Mesh().TriangleCount())

	r := &fakeRenderer{}
	bucket.Render(r, math.Identity())
	assert.Equal(t, []draw{{name: "bucket/mesh"}}, r.draws)
}

func TestMeshSceneReconfigure(t *testing.T) {
	cfg := testConfig()
	s, err := NewBucketScene(cfg)
	require.NoError(t, err)
	r := &fakeRenderer{}

	// Unrelated change keeps the mesh
	before := s.Mesh()
	cfg.Cube.Edge = 3
	require.NoError(t, s.Reconfigure(cfg, r))
	assert.Same(t, before, s.Mesh())
	assert.Empty(t, r.forgets)

	cfg.Bucket.TopN = 6
	cfg.Bucket.BottomN = 3
	require.NoError(t, s.Reconfigure(cfg, r))
	assert.Equal(t, shapes.BucketTriangleCount(6, 3, 2), s.Mesh().TriangleCount())
	assert.Equal(t, []string{"bucket/"}, r.forgets)

	// Invalid params keep the previous mesh
	cfg.Bucket.TopN = 7
	assert.ErrorIs(t, s.Reconfigure(cfg, r), shapes.ErrRatioNotInteger)
	assert.Equal(t, shapes.BucketTriangleCount(6, 3, 2), s.Mesh().TriangleCount())
}

func TestFighterScene(t *testing.T) {
	s, err := NewFighterScene(testConfig())
	require.NoError(t, err)

	r := &fakeRenderer{}
	s.Render(r, math.Identity())
	require.Len(t, r.draws, 4)
	assert.Equal(t, "fighter/"+shapes.PartBody, r.draws[0].name)

	assert.True(t, s.Pick(downRay(0, 0), math.Identity()))
	assert.Equal(t, shapes.PartBody, s.Picked())

	assert.False(t, s.Pick(downRay(50, 50), math.Identity()))
	assert.Equal(t, shapes.PartBody, s.Picked(), "a miss keeps the last pick")

	require.NoError(t, s.Enter())
	assert.Empty(t, s.Picked())
}

func TestPaperScenePickAndStep(t *testing.T) {
	clock := &paper.ManualClock{}
	s, err := NewPaperScene(testConfig(), clock)
	require.NoError(t, err)
	p := s.Paper()

	// (0.5, 0.5) lies in column 3, row 3 of a 6x5 sheet centred on the origin
	require.True(t, s.Pick(downRay(0.5, 0.5), math.Identity()))
	f, ok := p.Force(3, 3)
	require.True(t, ok)
	assert.InDelta(t, 1, f.Magnitude, 1e-6)

	assert.False(t, s.Pick(downRay(40, 0), math.Identity()), "outside the sheet")

	// Nothing moves until force mode is on
	clock.Advance(1)
	require.NoError(t, s.Update(0))
	c, _ := p.Center(3, 3)
	assert.Zero(t, c.Z)

	assert.True(t, s.Act(ActionToggleForce))
	assert.True(t, p.ForceMode())
	clock.Advance(0.5)
	require.NoError(t, s.Update(0))
	c, _ = p.Center(3, 3)
	assert.InDelta(t, 0.1*0.5, c.Z, 1e-6)

	assert.True(t, s.Act(ActionReset))
	c, _ = p.Center(3, 3)
	assert.Zero(t, c.Z)
	assert.Zero(t, p.ActiveCells())
}

func TestPaperSceneRenderDirty(t *testing.T) {
	s, err := NewPaperScene(testConfig(), &paper.ManualClock{})
	require.NoError(t, err)
	r := &fakeRenderer{}

	s.Render(r, math.Identity())
	s.Render(r, math.Identity())
	require.Len(t, r.draws, 2)
	assert.Equal(t, draw{name: "paper/sheet", dynamic: true, dirty: true}, r.draws[0])
	assert.False(t, r.draws[1].dirty)

	s.Act(ActionReset)
	s.Render(r, math.Identity())
	assert.True(t, r.draws[2].dirty)
}

func TestPaperScenePickTransformed(t *testing.T) {
	s, err := NewPaperScene(testConfig(), &paper.ManualClock{})
	require.NoError(t, err)

	// Sheet shifted right by 2: world x=2.5 is local x=0.5
	model := math.Translate(2, 0, 0)
	require.True(t, s.Pick(downRay(2.5, 0.5), model))
	f, _ := s.Paper().Force(3, 3)
	assert.True(t, f.Active())
}

func TestPaperSceneReconfigure(t *testing.T) {
	cfg := testConfig()
	s, err := NewPaperScene(cfg, &paper.ManualClock{})
	require.NoError(t, err)
	r := &fakeRenderer{}

	require.True(t, s.Pick(downRay(0.5, 0.5), math.Identity()))
	s.Act(ActionToggleForce)

	// Tuning only: state survives
	cfg.Paper.ReducingForce = 0.5
	require.NoError(t, s.Reconfigure(cfg, r))
	assert.Equal(t, 1, s.Paper().ActiveCells())
	assert.InDelta(t, 0.5, s.Paper().Config().ReducingForce, 1e-6)
	assert.Empty(t, r.forgets)

	// Grid change: fresh sheet, force mode kept
	cfg.Paper.Columns = 8
	require.NoError(t, s.Reconfigure(cfg, r))
	assert.Equal(t, 8, s.Paper().Columns())
	assert.Zero(t, s.Paper().ActiveCells())
	assert.True(t, s.Paper().ForceMode())
	assert.Equal(t, []string{"paper/"}, r.forgets)

	// Invalid tuning is rejected
	cfg.Paper.ReducingForce = -1
	assert.ErrorIs(t, s.Reconfigure(cfg, r), paper.ErrInvalidConfig)
}

func TestManagerReconfigure(t *testing.T) {
	cfg := testConfig()
	m, err := Build(cfg, &paper.ManualClock{})
	require.NoError(t, err)
	r := &fakeRenderer{}

	cfg.Bucket.TopN = 5
	cfg.Pyramid.Height = 2
	err = m.Reconfigure(cfg, r)
	assert.ErrorIs(t, err, shapes.ErrRatioNotInteger)
	assert.Contains(t, r.forgets, "pyramid/")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "toggle_force", ActionToggleForce.String())
	assert.Equal(t, "reset", ActionReset.String())
	assert.Equal(t, "unknown", Action(0).String())
}
