package scene

import (
	"fmt"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/pkg/paper"
)

// Build creates every scene from cfg in hotkey order and schedules the
// configured initial scene.
func Build(cfg *config.Config, clock paper.Clock) (*Manager, error) {
	m := NewManager()

	cube, err := NewCubeScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("cube scene: %w", err)
	}
	m.Register(cube)

	pyramid, err := NewPyramidScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}
	m.Register(pyramid)

	bucket, err := NewBucketScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("bucket scene: %w", err)
	}
	m.Register(bucket)

	fighter, err := NewFighterScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("fighter scene: %w", err)
	}
	m.Register(fighter)

	sheet, err := NewPaperScene(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("paper scene: %w", err)
	}
	m.Register(sheet)

	if err := m.ChangeTo(cfg.Scene.Initial); err != nil {
		return nil, err
	}
	return m, nil
}
