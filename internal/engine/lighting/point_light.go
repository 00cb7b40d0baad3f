// Package lighting describes the scene's point light and its lamp marker.
package lighting

import (
	"github.com/Faultbox/meshlab/pkg/math"
)

// LampScale is the edge length of the cube drawn at the light position.
const LampScale = 0.2

// PointLight is a single point light with Phong terms.
type PointLight struct {
	Position math.Vec3
	Color    math.Vec3 // RGB (0-1 range)
	Ambient  float32   // Ambient factor applied to the surface colour
	Specular float32   // Specular intensity multiplier
}

// NewPointLight returns a white light at pos.
func NewPointLight(pos [3]float32) PointLight {
	return PointLight{
		Position: math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]},
		Color:    math.Vec3{X: 1, Y: 1, Z: 1},
		Ambient:  0.15,
		Specular: 0.5,
	}
}

// LampModel places a unit mesh at the light, shrunk to LampScale.
func (l PointLight) LampModel() math.Mat4 {
	return math.Translate(l.Position.X, l.Position.Y, l.Position.Z).Mul(math.Scale(LampScale, LampScale, LampScale))
}
