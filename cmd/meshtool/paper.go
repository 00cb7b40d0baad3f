package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/pkg/mesh"
	"github.com/Faultbox/meshlab/pkg/paper"
)

// paperRun is one headless deformation run.
type paperRun struct {
	configPath string
	col, row   int
	magnitude  float64
	direction  string
	steps      int
	dt         float64
	every      int
	spread     float64
	output     string
}

func (r *paperRun) register(fs *flag.FlagSet) {
	fs.StringVar(&r.configPath, "config", "", "Read paper settings from this config file")
	fs.IntVar(&r.col, "col", -1, "Cell column to push (-1 = middle)")
	fs.IntVar(&r.row, "row", -1, "Cell row to push (-1 = middle)")
	fs.Float64Var(&r.magnitude, "mag", 1, "Force magnitude")
	fs.StringVar(&r.direction, "dir", "0,0,1", "Force direction x,y,z")
	fs.IntVar(&r.steps, "steps", 50, "Number of frames to simulate")
	fs.Float64Var(&r.dt, "dt", 0.1, "Seconds per frame")
	fs.IntVar(&r.every, "every", 10, "Report every N frames (0 = final only)")
	fs.Float64Var(&r.spread, "spread", -1, "Spread factor override (-1 = config)")
	fs.StringVar(&r.output, "o", "", "Write the deformed sheet as OBJ")
}

func parseDirection(s string) ([3]float32, error) {
	var d [3]float32
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return d, fmt.Errorf("direction %q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return d, fmt.Errorf("direction %q: %w", s, err)
		}
		d[i] = float32(v)
	}
	return d, nil
}

func cmdPaper(args []string, out io.Writer) error {
	var r paperRun
	fs := flag.NewFlagSet("paper", flag.ContinueOnError)
	r.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return r.run(out)
}

func (r *paperRun) run(out io.Writer) error {
	cfg := config.Default()
	if r.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(r.configPath); err != nil {
			return err
		}
	}
	if r.spread >= 0 {
		cfg.Paper.SpreadFactor = float32(r.spread)
	}
	dir, err := parseDirection(r.direction)
	if err != nil {
		return err
	}

	clock := &paper.ManualClock{}
	p, err := paper.New(cfg.Paper, clock)
	if err != nil {
		return err
	}

	col, row := r.col, r.row
	if col < 0 {
		col = p.Columns() / 2
	}
	if row < 0 {
		row = p.Rows() / 2
	}
	if err := p.SetForce(col, row, dir[0], dir[1], dir[2], float32(r.magnitude)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Paper %dx%d, force %.3f at (%d, %d), %d active cells\n",
		p.Columns(), p.Rows(), r.magnitude, col, row, p.ActiveCells())

	p.ToggleForceMode()
	for i := 1; i <= r.steps; i++ {
		clock.Advance(r.dt)
		p.Update()
		if r.every > 0 && i%r.every == 0 && i != r.steps {
			r.report(out, p, i, col, row)
		}
	}
	r.report(out, p, r.steps, col, row)

	if r.output != "" {
		return writePaperOBJ(r.output, p.Mesh())
	}
	return nil
}

func (r *paperRun) report(out io.Writer, p *paper.Paper, frame, col, row int) {
	c, _ := p.Center(col, row)
	f, _ := p.Force(col, row)
	fmt.Fprintf(out, "t=%6.2fs center=(%.4f, %.4f, %.4f) magnitude=%.4f active=%d\n",
		float64(frame)*r.dt, c.X, c.Y, c.Z, f.Magnitude, p.ActiveCells())
}

func writePaperOBJ(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mesh.WriteOBJ(f, m, mesh.OBJOptions{Name: "paper"}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
