package config

import "flag"

// Flags are the command-line overrides applied on top of the config file.
type Flags struct {
	Config     string
	Debug      bool
	Scene      string
	Width      int
	Height     int
	Fullscreen bool
	Windowed   bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Scene, "scene", "", "Initial scene (cube, pyramid, bucket, fighter, paper)")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
}

// Apply writes the set overrides into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Scene != "" {
		cfg.Scene.Initial = f.Scene
	}
	if f.Windowed {
		cfg.Window.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Window.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
}

var cliFlags Flags

// ParseFlags registers the viewer flags on the default flag set and parses
// them. Call this early in main().
func ParseFlags() {
	cliFlags.Register(flag.CommandLine)
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return cliFlags.Config
}
