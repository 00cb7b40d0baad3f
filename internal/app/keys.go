package app

import "github.com/veandco/go-sdl2/sdl"

// command is what a key press asks the viewer to do.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdScene
	cmdToggleForce
	cmdResetScene
	cmdResetCamera
	cmdToggleRotation
	cmdToggleWireframe
	cmdToggleCheckerboard
	cmdSaveConfig
	cmdScreenshot
)

// binding maps a key to a command. Scene holds the 0-based scene index for
// cmdScene.
type binding struct {
	cmd   command
	scene int
}

var bindings = map[sdl.Scancode]binding{
	sdl.SCANCODE_ESCAPE: {cmd: cmdQuit},
	sdl.SCANCODE_1:      {cmd: cmdScene, scene: 0},
	sdl.SCANCODE_2:      {cmd: cmdScene, scene: 1},
	sdl.SCANCODE_3:      {cmd: cmdScene, scene: 2},
	sdl.SCANCODE_4:      {cmd: cmdScene, scene: 3},
	sdl.SCANCODE_5:      {cmd: cmdScene, scene: 4},
	sdl.SCANCODE_F:      {cmd: cmdToggleForce},
	sdl.SCANCODE_C:      {cmd: cmdResetScene},
	sdl.SCANCODE_R:      {cmd: cmdResetCamera},
	sdl.SCANCODE_A:      {cmd: cmdToggleRotation},
	sdl.SCANCODE_W:      {cmd: cmdToggleWireframe},
	sdl.SCANCODE_T:      {cmd: cmdToggleCheckerboard},
	sdl.SCANCODE_S:      {cmd: cmdSaveConfig},
	sdl.SCANCODE_P:      {cmd: cmdScreenshot},
}

func bindingFor(key sdl.Scancode) binding {
	return bindings[key]
}
