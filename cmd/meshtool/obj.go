package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/meshlab/pkg/mesh"
)

func cmdOBJ(args []string, stdout io.Writer) error {
	var output string
	var colors bool
	name, cfg, err := parseShapeArgs("obj", args, func(fs *flag.FlagSet) {
		fs.StringVar(&output, "o", "", "Output file (default stdout)")
		fs.BoolVar(&colors, "vertex-colors", false, "Append vertex colours to v lines")
	})
	if err != nil {
		return err
	}

	m, err := buildShape(name, cfg)
	if err != nil {
		return err
	}

	opts := mesh.OBJOptions{Name: name, Colors: colors}
	if output == "" {
		return mesh.WriteOBJ(stdout, m, opts)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := mesh.WriteOBJ(f, m, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s: %d triangles\n", output, m.TriangleCount())
	return nil
}
