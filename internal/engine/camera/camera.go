// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// Mode selects what a mouse drag rotates.
type Mode int

const (
	// ModeCamera orbits the camera around its center.
	ModeCamera Mode = iota
	// ModeModel spins the model in place while the camera stays put.
	ModeModel
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeModel {
		return "model"
	}
	return "camera"
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Model rotation applied in ModeModel
	ModelPitch float32
	ModelYaw   float32

	Mode Mode

	// Projection
	FovY float32
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	home *OrbitCamera
}

// NewOrbitCamera creates an orbit camera looking down -Z at the origin from
// the given distance.
func NewOrbitCamera(distance float32) *OrbitCamera {
	c := &OrbitCamera{
		Distance:        distance,
		FovY:            math32.Pi / 4,
		Near:            0.1,
		Far:             1000,
		MinDistance:     0.5,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
	}
	home := *c
	c.home = &home
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosX, sinX := math32.Cos(c.RotationX), math32.Sin(c.RotationX)
	cosY, sinY := math32.Cos(c.RotationY), math32.Sin(c.RotationY)

	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport
// aspect ratio (width / height).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ModelMatrix returns the rotation accumulated in ModeModel.
func (c *OrbitCamera) ModelMatrix() math.Mat4 {
	return math.RotateX(c.ModelPitch).Mul(math.RotateY(c.ModelYaw))
}

// ToggleMode switches between rotating the camera and rotating the model
// and returns the new mode.
func (c *OrbitCamera) ToggleMode() Mode {
	if c.Mode == ModeCamera {
		c.Mode = ModeModel
	} else {
		c.Mode = ModeCamera
	}
	return c.Mode
}

// HandleDrag updates the camera or model rotation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if c.Mode == ModeModel {
		c.ModelYaw += deltaX * c.DragSensitivity
		c.ModelPitch += deltaY * c.DragSensitivity
		return
	}

	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// FitToBounds centers the camera on a box and backs off far enough to see
// all of it.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	c.Center = b.Center()

	size := b.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent <= 0 {
		return
	}
	// Half the extent must fit in half the vertical field of view.
	d := extent / math32.Tan(c.FovY/2)
	c.Distance = min(max(d, c.MinDistance), c.MaxDistance)
}

// SetHome records the current placement as the one Reset returns to.
func (c *OrbitCamera) SetHome() {
	home := *c
	home.home = nil
	c.home = &home
}

// Reset restores the home placement and clears any model rotation.
func (c *OrbitCamera) Reset() {
	mode := c.Mode
	var home OrbitCamera
	if c.home != nil {
		home = *c.home
	}
	*c = home
	c.home = &home
	c.Mode = mode
}
