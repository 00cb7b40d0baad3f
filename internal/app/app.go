// Package app implements the viewer's application context and frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/camera"
	"github.com/Faultbox/meshlab/internal/engine/debug"
	"github.com/Faultbox/meshlab/internal/engine/input"
	"github.com/Faultbox/meshlab/internal/engine/lighting"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/internal/engine/renderer"
	"github.com/Faultbox/meshlab/internal/engine/window"
	"github.com/Faultbox/meshlab/internal/logger"
	"github.com/Faultbox/meshlab/internal/scene"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/shapes"
)

// Context owns everything the viewer needs between frames. Input handlers
// are methods on it.
type Context struct {
	cfg        *config.Config
	configPath string

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scenes   *scene.Manager

	lamp        *mesh.Mesh
	screenshots *debug.Screenshots

	watcher *config.Watcher
	reloads chan *config.Config

	running  bool
	dragging bool
	log      *zap.Logger
}

// New opens the window and builds every scene. configPath is the file the
// config came from; when set it is watched for changes.
func New(cfg *config.Config, configPath string) (*Context, error) {
	c := &Context{
		cfg:        cfg,
		configPath: configPath,
		reloads:    make(chan *config.Config, 1),
		log:        logger.Named("app"),
	}

	c.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	c.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := c.window.DrawableSize()
	c.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Scene.Background,
		Light:      lighting.NewPointLight(cfg.Scene.LightPosition),
	})
	if err != nil {
		c.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	c.scenes, err = scene.Build(cfg, nil)
	if err != nil {
		c.renderer.Close()
		c.window.Close()
		return nil, fmt.Errorf("failed to build scenes: %w", err)
	}

	lamp, err := shapes.NewCube(1)
	if err != nil {
		c.scenes.Close()
		c.renderer.Close()
		c.window.Close()
		return nil, fmt.Errorf("failed to build lamp: %w", err)
	}
	c.lamp = lamp.Mesh
	c.screenshots = debug.NewScreenshots(cfg.Window.ScreenshotDir, "meshlab")

	c.input = input.New()
	c.camera = camera.NewOrbitCamera(cfg.Scene.CameraDistance)

	if configPath != "" {
		c.watcher, err = config.Watch(configPath, c.queueReload, func(err error) {
			c.log.Warn("config reload failed", zap.Error(err))
		})
		if err != nil {
			// The viewer works without hot reload.
			c.log.Warn("config watch disabled", zap.String("path", configPath), zap.Error(err))
		} else {
			c.log.Info("watching config", zap.String("path", c.watcher.Path()))
		}
	}

	c.log.Info("viewer initialized", zap.Strings("scenes", c.scenes.Names()))
	return c, nil
}

// queueReload runs on the watcher goroutine. Only the newest config is
// kept; it is applied on the main thread because scenes touch GL.
func (c *Context) queueReload(cfg *config.Config) {
	for {
		select {
		case c.reloads <- cfg:
			return
		default:
		}
		select {
		case <-c.reloads:
		default:
		}
	}
}

// Run starts the main loop and returns when the window is closed.
func (c *Context) Run() error {
	c.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	c.log.Info("starting frame loop")

	for c.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if c.input.Update() {
			c.running = false
			break
		}
		for _, event := range c.input.Events() {
			c.handleEvent(event)
		}

		// 2. Apply config reloads
		select {
		case cfg := <-c.reloads:
			c.applyConfig(cfg)
		default:
		}

		// 3. Update scene
		changed, err := c.scenes.Update(dt)
		if err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if changed {
			c.frameScene()
		}

		// 4. Render
		c.render()
		c.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			c.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", c.cfg.Window.Title, c.scenes.Current().Name(), frameCount))
			c.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// frameScene points the camera at a freshly entered scene and makes that
// placement the reset target.
func (c *Context) frameScene() {
	c.camera.Reset()
	c.camera.FitToBounds(c.scenes.Current().Bounds())
	c.camera.SetHome()
}

func (c *Context) render() {
	c.renderer.SetCamera(c.camera.ViewMatrix(), c.camera.ProjectionMatrix(c.renderer.Aspect()), c.camera.Position())
	c.renderer.Begin()
	c.scenes.Render(c.renderer, c.camera.ModelMatrix())
	c.renderer.DrawMesh("lamp/cube", c.lamp, c.renderer.Light().LampModel())
	c.renderer.End()
}

func (c *Context) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		c.renderer.Resize(c.window.DrawableSize())

	case input.EventKeyDown:
		if !e.Repeat {
			c.handleKey(bindingFor(e.Key))
		}

	case input.EventMouseDown:
		if e.Button != input.ButtonLeft {
			return
		}
		// A click the scene consumes does not start a drag.
		if c.scenes.Pick(c.pickRay(e.MouseX, e.MouseY), c.camera.ModelMatrix()) {
			return
		}
		c.dragging = true

	case input.EventMouseUp:
		if e.Button == input.ButtonLeft {
			c.dragging = false
		}

	case input.EventMouseMove:
		if c.dragging {
			c.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
		}

	case input.EventMouseWheel:
		c.camera.HandleZoom(e.Wheel)
	}
}

func (c *Context) handleKey(b binding) {
	switch b.cmd {
	case cmdQuit:
		c.running = false
	case cmdScene:
		if err := c.scenes.ChangeToIndex(b.scene); err != nil {
			c.log.Warn("scene switch failed", zap.Error(err))
		}
	case cmdToggleForce:
		c.scenes.Act(scene.ActionToggleForce)
	case cmdResetScene:
		c.scenes.Act(scene.ActionReset)
	case cmdResetCamera:
		c.camera.Reset()
	case cmdToggleRotation:
		mode := c.camera.ToggleMode()
		c.log.Info("rotation mode", zap.Stringer("mode", mode))
	case cmdToggleWireframe:
		c.log.Info("wireframe", zap.Bool("on", c.renderer.ToggleWireframe()))
	case cmdToggleCheckerboard:
		c.log.Info("texcoord checker", zap.Bool("on", c.renderer.ToggleCheckerboard()))
	case cmdSaveConfig:
		c.saveConfig()
	case cmdScreenshot:
		c.screenshot()
	}
}

// pickRay turns window coordinates into a world-space ray.
func (c *Context) pickRay(x, y int) picking.Ray {
	w, h := c.window.GetSize()
	view := c.camera.ViewMatrix()
	proj := c.camera.ProjectionMatrix(c.renderer.Aspect())
	return picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), proj.Mul(view).Inverse())
}

func (c *Context) applyConfig(cfg *config.Config) {
	logger.SetLevel(cfg.Logging.Level)
	c.renderer.SetBackground(cfg.Scene.Background)
	c.renderer.SetLight(lighting.NewPointLight(cfg.Scene.LightPosition))
	c.window.SetVSync(cfg.Window.VSync)

	if err := c.scenes.Reconfigure(cfg, c.renderer); err != nil {
		c.log.Warn("config partly applied", zap.Error(err))
	}
	c.cfg = cfg
	c.log.Info("config reloaded", zap.String("level", cfg.Logging.Level))
}

// screenshot captures the last rendered frame.
func (c *Context) screenshot() {
	pixels, w, h := c.renderer.ReadPixels()
	path, err := c.screenshots.Save(c.scenes.Current().Name(), pixels, w, h)
	if err != nil {
		c.log.Error("screenshot failed", zap.Error(err))
		return
	}
	c.log.Info("screenshot saved", zap.String("path", path))
}

func (c *Context) saveConfig() {
	var (
		path string
		err  error
	)
	if c.configPath != "" {
		path = c.configPath
		err = c.cfg.SaveTo(path)
	} else {
		path, err = c.cfg.Save()
	}
	if err != nil {
		c.log.Error("config save failed", zap.String("path", path), zap.Error(err))
		return
	}
	c.log.Info("config saved", zap.String("path", path))
}

// Close releases the scenes, GL resources and the window.
func (c *Context) Close() {
	c.log.Info("closing viewer")

	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			c.log.Warn("config watcher close", zap.Error(err))
		}
	}
	if c.scenes != nil {
		if err := c.scenes.Close(); err != nil {
			c.log.Warn("scene exit", zap.Error(err))
		}
	}
	if c.renderer != nil {
		c.renderer.Close()
	}
	if c.window != nil {
		c.window.Close()
	}
}
