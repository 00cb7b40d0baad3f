package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/paper"
	"github.com/Faultbox/meshlab/pkg/shapes"
)

var shapeNames = []string{"cube", "pyramid", "bucket", "cylinder", "fighter", "paper"}

// shapeFlags are the options shared by stats and obj.
type shapeFlags struct {
	config  string
	topN    int
	bottomN int
	flat    bool
	color   bool
	seed    uint64
}

func (f *shapeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "Read shape settings from this config file")
	fs.IntVar(&f.topN, "top-n", 0, "Bucket top side count (0 = config)")
	fs.IntVar(&f.bottomN, "bottom-n", 0, "Bucket bottom side count (0 = config)")
	fs.BoolVar(&f.flat, "flat", true, "Bucket flat normals")
	fs.BoolVar(&f.color, "color", false, "Bucket random colours")
	fs.Uint64Var(&f.seed, "seed", 0, "Colour seed (0 = random)")
}

// loadConfig returns the config file settings or the defaults, with the
// bucket flags applied on top.
func (f *shapeFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadFile(f.config); err != nil {
			return nil, err
		}
	}
	if f.topN > 0 {
		cfg.Bucket.TopN = f.topN
	}
	if f.bottomN > 0 {
		cfg.Bucket.BottomN = f.bottomN
	}
	cfg.Bucket.FlatNormals = f.flat
	cfg.Bucket.ColorMode = f.color
	cfg.Bucket.Seed = f.seed
	return cfg, nil
}

// buildShape generates the named shape as a single mesh. The fighter is
// merged with its part transforms baked in.
func buildShape(name string, cfg *config.Config) (*mesh.Mesh, error) {
	switch name {
	case "cube":
		c, err := shapes.NewCube(cfg.Cube.Edge)
		if err != nil {
			return nil, err
		}
		return c.Mesh, nil
	case "pyramid":
		p, err := shapes.NewPyramid(cfg.Pyramid.BottomLine, cfg.Pyramid.Height)
		if err != nil {
			return nil, err
		}
		return p.Mesh, nil
	case "bucket":
		b, err := shapes.NewBucket(cfg.Bucket)
		if err != nil {
			return nil, err
		}
		return b.Mesh, nil
	case "cylinder":
		b, err := shapes.NewCylinder(cfg.Bucket.TopN, cfg.Bucket.TopRadius, cfg.Bucket.Height)
		if err != nil {
			return nil, err
		}
		return b.Mesh, nil
	case "fighter":
		f, err := shapes.NewFighterPlane(cfg.Fighter)
		if err != nil {
			return nil, err
		}
		return f.Merged(), nil
	case "paper":
		p, err := paper.New(cfg.Paper, nil)
		if err != nil {
			return nil, err
		}
		return p.Mesh(), nil
	}
	return nil, fmt.Errorf("unknown shape %q (try: meshtool shapes)", name)
}

// parseShapeArgs accepts the shape name before or after the flags.
func parseShapeArgs(cmd string, args []string, extra func(*flag.FlagSet)) (string, *config.Config, error) {
	var sf shapeFlags
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	sf.register(fs)
	if extra != nil {
		extra(fs)
	}

	var name string
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		name, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	if name == "" {
		if fs.NArg() < 1 {
			return "", nil, fmt.Errorf("usage: meshtool %s <shape> [options]", cmd)
		}
		name = fs.Arg(0)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		return "", nil, err
	}
	return name, cfg, nil
}

func cmdStats(args []string, out io.Writer) error {
	name, cfg, err := parseShapeArgs("stats", args, nil)
	if err != nil {
		return err
	}
	m, err := buildShape(name, cfg)
	if err != nil {
		return err
	}

	b := m.Bounds()
	size := b.Size()
	fmt.Fprintf(out, "Shape:     %s\n", name)
	fmt.Fprintf(out, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(out, "Vertices:  %d\n", m.VertexCount())
	fmt.Fprintf(out, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(out, "Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	return nil
}
