// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshlab/internal/engine/gpumesh"
	"github.com/Faultbox/meshlab/internal/engine/lighting"
	"github.com/Faultbox/meshlab/internal/engine/shader"
	"github.com/Faultbox/meshlab/internal/logger"
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	Light      lighting.PointLight
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.MeshProgram

	view       math.Mat4
	projection math.Mat4
	eye        math.Vec3

	checkerboard bool
	wireframe    bool

	// Static meshes uploaded on first draw, keyed by name
	cache map[string]*gpumesh.GPUMesh
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		log:        logger.Named("renderer"),
		view:       math.Identity(),
		projection: math.Identity(),
		cache:      make(map[string]*gpumesh.GPUMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.SetBackground(cfg.Background)

	var err error
	r.program, err = shader.NewMeshProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.Forget("")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize. Width and height are in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetBackground sets the clear colour.
func (r *Renderer) SetBackground(c [3]float32) {
	r.config.Background = c
	gl.ClearColor(c[0], c[1], c[2], 1.0)
}

// SetLight replaces the scene light.
func (r *Renderer) SetLight(l lighting.PointLight) {
	r.config.Light = l
}

// Light returns the scene light.
func (r *Renderer) Light() lighting.PointLight {
	return r.config.Light
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// SetCamera sets the view and projection used by subsequent draws.
func (r *Renderer) SetCamera(view, projection math.Mat4, eye math.Vec3) {
	r.view = view
	r.projection = projection
	r.eye = eye
}

// ToggleWireframe switches polygon mode and returns the new state.
func (r *Renderer) ToggleWireframe() bool {
	r.wireframe = !r.wireframe
	return r.wireframe
}

// ToggleCheckerboard overlays a texcoord checker pattern and returns the
// new state.
func (r *Renderer) ToggleCheckerboard() bool {
	r.checkerboard = !r.checkerboard
	return r.checkerboard
}

// Begin starts a new frame and binds the mesh program.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	p := r.program
	p.Use()
	gl.UniformMatrix4fv(p.View, 1, false, r.view.Ptr())
	gl.UniformMatrix4fv(p.Projection, 1, false, r.projection.Ptr())

	l := r.config.Light
	gl.Uniform3f(p.LightPos, l.Position.X, l.Position.Y, l.Position.Z)
	gl.Uniform3f(p.LightColor, l.Color.X, l.Color.Y, l.Color.Z)
	gl.Uniform3f(p.ViewPos, r.eye.X, r.eye.Y, r.eye.Z)
	gl.Uniform1f(p.Ambient, l.Ambient)
	gl.Uniform1f(p.Specular, l.Specular)

	checker := int32(0)
	if r.checkerboard {
		checker = 1
	}
	gl.Uniform1i(p.Checkerboard, checker)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// Draw renders an uploaded mesh with the given model transform.
func (r *Renderer) Draw(m *gpumesh.GPUMesh, model math.Mat4) {
	gl.UniformMatrix4fv(r.program.Model, 1, false, model.Ptr())
	m.Draw()
}

// DrawMesh renders a CPU mesh, uploading it on first use under name.
// The upload is reused until Forget drops it.
func (r *Renderer) DrawMesh(name string, m *mesh.Mesh, model math.Mat4) {
	g, ok := r.cache[name]
	if !ok {
		b := m.Buffers()
		var err error
		g, err = gpumesh.Upload(&b, false)
		if err != nil {
			r.log.Error("mesh upload failed", zap.String("mesh", name), zap.Error(err))
			return
		}
		r.cache[name] = g
		r.log.Debug("mesh uploaded",
			zap.String("mesh", name),
			zap.Int("triangles", m.TriangleCount()),
		)
	}
	r.Draw(g, model)
}

// DrawDynamic renders attribute streams whose positions and normals change
// between frames. The first call uploads b; later calls rewrite the
// geometry streams when dirty is set.
func (r *Renderer) DrawDynamic(name string, b *mesh.Buffers, dirty bool, model math.Mat4) {
	g, ok := r.cache[name]
	if !ok {
		var err error
		g, err = gpumesh.Upload(b, true)
		if err != nil {
			r.log.Error("mesh upload failed", zap.String("mesh", name), zap.Error(err))
			return
		}
		r.cache[name] = g
		r.log.Debug("dynamic mesh uploaded",
			zap.String("mesh", name),
			zap.Int("vertices", g.VertexCount()),
		)
	} else if dirty {
		if err := g.UpdateGeometry(b); err != nil {
			r.log.Error("mesh update failed", zap.String("mesh", name), zap.Error(err))
			r.Forget(name)
			return
		}
	}
	r.Draw(g, model)
}

// Forget releases cached uploads whose name starts with prefix. An empty
// prefix releases everything.
func (r *Renderer) Forget(prefix string) {
	for name, g := range r.cache {
		if strings.HasPrefix(name, prefix) {
			g.Delete()
			delete(r.cache, name)
		}
	}
}
