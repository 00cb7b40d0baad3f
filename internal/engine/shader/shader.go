// Package shader provides OpenGL shader compilation utilities and the
// embedded lit mesh shader.
package shader

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations used by the mesh shader.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribColor    = 2
	AttribTexCoord = 3
)

// MeshVertexShader transforms the four-stream vertex layout.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader applies Phong lighting to the vertex colour.
//
//go:embed mesh.frag
var MeshFragmentShader string

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", programLog(program))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log[:logLen]))
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return string(log[:logLen])
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// MustGetUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func MustGetUniform(program uint32, name string) int32 {
	loc := GetUniform(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}

// MeshProgram is the linked mesh shader with its uniform locations.
type MeshProgram struct {
	ID uint32

	Model        int32
	View         int32
	Projection   int32
	LightPos     int32
	ViewPos      int32
	LightColor   int32
	Ambient      int32
	Specular     int32
	Checkerboard int32
}

// NewMeshProgram compiles the embedded mesh shader.
func NewMeshProgram() (*MeshProgram, error) {
	id, err := CompileProgram(MeshVertexShader, MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	return &MeshProgram{
		ID:           id,
		Model:        GetUniform(id, "uModel"),
		View:         GetUniform(id, "uView"),
		Projection:   GetUniform(id, "uProjection"),
		LightPos:     GetUniform(id, "uLightPos"),
		ViewPos:      GetUniform(id, "uViewPos"),
		LightColor:   GetUniform(id, "uLightColor"),
		Ambient:      GetUniform(id, "uAmbient"),
		Specular:     GetUniform(id, "uSpecular"),
		Checkerboard: GetUniform(id, "uCheckerboard"),
	}, nil
}

// Use binds the program.
func (p *MeshProgram) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *MeshProgram) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
