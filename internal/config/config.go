// Package config handles meshlab configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshlab/pkg/paper"
	"github.com/Faultbox/meshlab/pkg/shapes"
)

// FileName is the config file name looked up in the working directory and
// in ConfigDir.
const FileName = "meshlab.yaml"

// Config holds all viewer and shape settings.
type Config struct {
	Window  WindowConfig         `yaml:"window"`
	Logging LoggingConfig        `yaml:"logging"`
	Scene   SceneConfig          `yaml:"scene"`
	Bucket  shapes.BucketParams  `yaml:"bucket"`
	Pyramid PyramidConfig        `yaml:"pyramid"`
	Cube    CubeConfig           `yaml:"cube"`
	Fighter shapes.FighterParams `yaml:"fighter"`
	Paper   paper.Config         `yaml:"paper"`
	Force   ForceConfig          `yaml:"force"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// SceneConfig holds viewer settings shared by every scene.
type SceneConfig struct {
	Initial        string     `yaml:"initial"`
	Background     [3]float32 `yaml:"background"`
	CameraDistance float32    `yaml:"camera_distance"`
	LightPosition  [3]float32 `yaml:"light_position"`
}

// PyramidConfig sizes the pyramid scene.
type PyramidConfig struct {
	BottomLine float32 `yaml:"bottom_line"`
	Height     float32 `yaml:"height"`
}

// CubeConfig sizes the cube scene.
type CubeConfig struct {
	Edge float32 `yaml:"edge"`
}

// ForceConfig is the impulse the viewer injects into the paper on click.
type ForceConfig struct {
	Magnitude float32    `yaml:"magnitude"`
	Direction [3]float32 `yaml:"direction"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "meshlab",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Scene: SceneConfig{
			Initial:        "paper",
			Background:     [3]float32{0.1, 0.1, 0.12},
			CameraDistance: 12,
			LightPosition:  [3]float32{1.2, 1.0, 2.0},
		},
		Bucket:  shapes.DefaultBucketParams(),
		Pyramid: PyramidConfig{BottomLine: 1, Height: 1},
		Cube:    CubeConfig{Edge: 1},
		Fighter: shapes.DefaultFighterParams(),
		Paper:   paper.DefaultConfig(),
		Force: ForceConfig{
			Magnitude: 1,
			Direction: [3]float32{0, 0, 1},
		},
	}
}

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Validate checks the settings that would otherwise only fail once the
// window is open.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Scene.CameraDistance <= 0 {
		return fmt.Errorf("%w: camera_distance %g", ErrInvalid, c.Scene.CameraDistance)
	}
	if _, err := c.Bucket.Validate(); err != nil {
		return fmt.Errorf("%w: bucket: %w", ErrInvalid, err)
	}
	if err := c.Paper.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	d := c.Force.Direction
	if d[0] == 0 && d[1] == 0 && d[2] == 0 {
		return fmt.Errorf("%w: force direction is zero", ErrInvalid)
	}
	return nil
}
