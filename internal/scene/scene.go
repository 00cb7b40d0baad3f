// Package scene implements the viewer's scenes, one per generated shape,
// and the manager that switches between them.
package scene

import (
	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/pkg/math"
	"github.com/Faultbox/meshlab/pkg/mesh"
)

// Scene names, in hotkey order.
const (
	NameCube    = "cube"
	NamePyramid = "pyramid"
	NameBucket  = "bucket"
	NameFighter = "fighter"
	NamePaper   = "paper"
)

// Renderer is the drawing surface a scene renders into.
type Renderer interface {
	// DrawMesh draws a mesh that never changes; name identifies its upload.
	DrawMesh(name string, m *mesh.Mesh, model math.Mat4)
	// DrawDynamic draws streams whose geometry is rewritten when dirty.
	DrawDynamic(name string, b *mesh.Buffers, dirty bool, model math.Mat4)
	// Forget drops uploads whose name starts with prefix.
	Forget(prefix string)
}

// Scene is one viewable shape.
type Scene interface {
	// Name identifies the scene and prefixes its uploads.
	Name() string

	// Enter is called when the scene becomes current.
	Enter() error

	// Exit is called when leaving the scene.
	Exit() error

	// Update is called every frame.
	Update(dt float64) error

	// Render draws the scene under the given model transform.
	Render(r Renderer, model math.Mat4)

	// Bounds is the box the camera frames on entry.
	Bounds() mesh.Bounds
}

// Action is a viewer command a scene may respond to.
type Action int

const (
	ActionToggleForce Action = iota + 1
	ActionReset
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionToggleForce:
		return "toggle_force"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Actor is implemented by scenes that handle actions.
type Actor interface {
	Act(a Action) bool
}

// Picker is implemented by scenes that respond to clicks. The ray is in
// world space; model is the transform the scene was last rendered with.
type Picker interface {
	Pick(ray picking.Ray, model math.Mat4) bool
}

// Configurable is implemented by scenes that follow config reloads.
type Configurable interface {
	Reconfigure(cfg *config.Config, r Renderer) error
}
