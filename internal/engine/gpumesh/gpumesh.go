// Package gpumesh uploads mesh attribute buffers to OpenGL and draws them.
package gpumesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshlab/internal/engine/shader"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

const floatSize = 4

// stream indexes into GPUMesh.vbos.
const (
	streamPosition = iota
	streamNormal
	streamColor
	streamTexCoord
	streamCount
)

// GPUMesh is one VAO with a VBO per attribute stream.
type GPUMesh struct {
	vao      uint32
	vbos     [streamCount]uint32
	vertices int32
	dynamic  bool
}

// Upload creates GPU buffers from b. Dynamic meshes keep their position
// and normal streams writable through UpdateGeometry.
// Must be called with a current OpenGL context.
func Upload(b *mesh.Buffers, dynamic bool) (*GPUMesh, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	m := &GPUMesh{
		vertices: int32(b.VertexCount()),
		dynamic:  dynamic,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(streamCount, &m.vbos[0])

	geometryUsage := uint32(gl.STATIC_DRAW)
	if dynamic {
		geometryUsage = gl.DYNAMIC_DRAW
	}

	m.stream(streamPosition, shader.AttribPosition, mesh.PositionSize, b.Positions, geometryUsage)
	m.stream(streamNormal, shader.AttribNormal, mesh.NormalSize, b.Normals, geometryUsage)
	m.stream(streamColor, shader.AttribColor, mesh.ColorSize, b.Colors, gl.STATIC_DRAW)
	m.stream(streamTexCoord, shader.AttribTexCoord, mesh.TexCoordSize, b.TexCoords, gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}

func (m *GPUMesh) stream(idx int, location uint32, size int32, data []float32, usage uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[idx])
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), usage)
	}
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, size*floatSize, nil)
	gl.EnableVertexAttribArray(location)
}

// UpdateGeometry rewrites the position and normal streams in place. The
// vertex count must match the uploaded mesh.
func (m *GPUMesh) UpdateGeometry(b *mesh.Buffers) error {
	if !m.dynamic {
		return fmt.Errorf("update: mesh was uploaded as static")
	}
	if int32(b.VertexCount()) != m.vertices || len(b.Normals) != len(b.Positions) {
		return fmt.Errorf("update: %w: have %d vertices, got %d", mesh.ErrMisaligned, m.vertices, b.VertexCount())
	}
	if m.vertices == 0 {
		return nil
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[streamPosition])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.Positions)*floatSize, gl.Ptr(b.Positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[streamNormal])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.Normals)*floatSize, gl.Ptr(b.Normals))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw issues the triangle list. The caller binds the program and sets
// uniforms.
func (m *GPUMesh) Draw() {
	if m.vertices == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertices)
	gl.BindVertexArray(0)
}

// VertexCount returns the number of uploaded vertices.
func (m *GPUMesh) VertexCount() int {
	return int(m.vertices)
}

// Delete releases the GPU buffers.
func (m *GPUMesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbos[0] != 0 {
		gl.DeleteBuffers(streamCount, &m.vbos[0])
		m.vbos = [streamCount]uint32{}
	}
}
