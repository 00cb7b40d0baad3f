package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// OBJOptions controls WriteOBJ.
type OBJOptions struct {
	// Name is written as the object name when set.
	Name string
	// Colors appends the vertex color to each v line, an extension most
	// OBJ readers accept.
	Colors bool
}

// WriteOBJ writes m as a Wavefront OBJ triangle list. Every vertex gets its
// own v, vn and vt entry so the file mirrors the attribute buffers one to
// one.
func WriteOBJ(w io.Writer, m *Mesh, opts OBJOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d triangles, %d vertices\n", m.TriangleCount(), m.VertexCount())
	if opts.Name != "" {
		fmt.Fprintf(bw, "o %s\n", opts.Name)
	}

	for i := range m.Triangles {
		for _, v := range m.Triangles[i] {
			p := v.Position
			if opts.Colors {
				c := v.Color
				fmt.Fprintf(bw, "v %s %s %s %s %s %s\n", ff(p.X), ff(p.Y), ff(p.Z), ff(c.X), ff(c.Y), ff(c.Z))
			} else {
				fmt.Fprintf(bw, "v %s %s %s\n", ff(p.X), ff(p.Y), ff(p.Z))
			}
		}
	}
	for i := range m.Triangles {
		for _, v := range m.Triangles[i] {
			n := v.Normal
			fmt.Fprintf(bw, "vn %s %s %s\n", ff(n.X), ff(n.Y), ff(n.Z))
		}
	}
	for i := range m.Triangles {
		for _, v := range m.Triangles[i] {
			fmt.Fprintf(bw, "vt %s %s\n", ff(v.TexCoord.X), ff(v.TexCoord.Y))
		}
	}

	// OBJ indices are 1-based
	for i := range m.Triangles {
		a := i*3 + 1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, a+1, a+1, a+1, a+2, a+2, a+2)
	}

	return bw.Flush()
}

func ff(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
