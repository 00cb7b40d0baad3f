package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlab/internal/config"
	"github.com/Faultbox/meshlab/internal/engine/picking"
	"github.com/Faultbox/meshlab/internal/logger"
	"github.com/Faultbox/meshlab/pkg/math"
)

// ErrUnknownScene is returned when switching to a name that was never
// registered.
var ErrUnknownScene = errors.New("unknown scene")

// Manager owns the registered scenes and the transition between them.
type Manager struct {
	scenes  map[string]Scene
	order   []string
	current Scene
	next    Scene
	log     *zap.Logger
}

// NewManager creates an empty scene manager.
func NewManager() *Manager {
	return &Manager{
		scenes: make(map[string]Scene),
		log:    logger.Named("scene"),
	}
}

// Register adds a scene. A later scene with the same name replaces the
// earlier one but keeps its position.
func (m *Manager) Register(s Scene) {
	if _, ok := m.scenes[s.Name()]; !ok {
		m.order = append(m.order, s.Name())
	}
	m.scenes[s.Name()] = s
}

// Names returns the registered scene names in registration order.
func (m *Manager) Names() []string {
	return m.order
}

// Get returns a registered scene.
func (m *Manager) Get(name string) (Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Current returns the current scene, or nil before the first Update.
func (m *Manager) Current() Scene {
	return m.current
}

// Change schedules a scene change for the next Update.
func (m *Manager) Change(next Scene) {
	m.next = next
}

// ChangeTo schedules a change to a registered scene by name.
func (m *Manager) ChangeTo(name string) error {
	s, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	m.Change(s)
	return nil
}

// ChangeToIndex schedules a change to the i-th registered scene (0-based).
func (m *Manager) ChangeToIndex(i int) error {
	if i < 0 || i >= len(m.order) {
		return fmt.Errorf("%w: index %d", ErrUnknownScene, i)
	}
	return m.ChangeTo(m.order[i])
}

// Update processes a pending change and updates the current scene.
// It reports whether the scene changed.
func (m *Manager) Update(dt float64) (bool, error) {
	changed := false
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return false, err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return false, err
		}
		changed = true
		m.log.Info("scene entered", zap.String("scene", m.current.Name()))
	}

	if m.current != nil {
		return changed, m.current.Update(dt)
	}
	return changed, nil
}

// Render renders the current scene.
func (m *Manager) Render(r Renderer, model math.Mat4) {
	if m.current != nil {
		m.current.Render(r, model)
	}
}

// Act forwards an action to the current scene. It returns false when the
// scene ignores it.
func (m *Manager) Act(a Action) bool {
	actor, ok := m.current.(Actor)
	if !ok {
		return false
	}
	handled := actor.Act(a)
	m.log.Debug("scene action",
		zap.String("scene", m.current.Name()),
		zap.Stringer("action", a),
		zap.Bool("handled", handled),
	)
	return handled
}

// Pick forwards a click ray to the current scene.
func (m *Manager) Pick(ray picking.Ray, model math.Mat4) bool {
	p, ok := m.current.(Picker)
	if !ok {
		return false
	}
	return p.Pick(ray, model)
}

// Reconfigure passes a reloaded config to every scene that follows it.
// Every scene is tried; the errors are joined.
func (m *Manager) Reconfigure(cfg *config.Config, r Renderer) error {
	var errs []error
	for _, name := range m.order {
		c, ok := m.scenes[name].(Configurable)
		if !ok {
			continue
		}
		if err := c.Reconfigure(cfg, r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close exits the current scene.
func (m *Manager) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
