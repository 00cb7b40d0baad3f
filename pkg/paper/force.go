package paper

import (
	"fmt"

	"github.com/Faultbox/meshlab/pkg/math"
)

// maxSpreadDepth bounds recursive spreading. Merged impulses flow back
// into cells already visited, so the threshold alone does not end it.
const maxSpreadDepth = 8

// SetForce adds an impulse of the given magnitude along (x, y, z) to a cell.
// The new impulse and the cell's current one are summed as vectors; the sum
// becomes the cell's direction and magnitude. Impulses that cancel out
// leave the cell idle.
func (p *Paper) SetForce(col, row int, x, y, z, magnitude float32) error {
	if !p.inRange(col, row) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d grid", ErrCellOutOfRange, col, row, p.cfg.Columns, p.cfg.Rows)
	}
	dir := math.Vec3{X: x, Y: y, Z: z}
	if dir.IsZero() {
		return ErrZeroDirection
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.addForce(col, row, dir.Normalize(), magnitude, 0)
	return nil
}

func (p *Paper) addForce(col, row int, dir math.Vec3, magnitude float32, depth int) {
	f := &p.forces[p.cell(col, row)]
	sum := dir.Scale(magnitude).Add(f.Direction.Scale(f.Magnitude))
	total := sum.Length()
	if total == 0 {
		*f = Force{}
		return
	}
	*f = Force{Direction: sum.Scale(1 / total), Magnitude: total}

	// Spreading carries the merged impulse, so topping up a strong cell
	// spreads even when the new impulse alone is below the threshold.
	if p.cfg.SpreadFactor <= 0 || total <= p.cfg.SpreadThreshold || depth >= maxSpreadDepth {
		return
	}
	next, nextDir := total*p.cfg.SpreadFactor, f.Direction
	for _, dr := range [2]int{-1, 1} {
		for _, dc := range [2]int{-1, 1} {
			if p.inRange(col+dc, row+dr) {
				p.addForce(col+dc, row+dr, nextDir, next, depth+1)
			}
		}
	}
}

// ForceMode reports whether Update advances the simulation.
func (p *Paper) ForceMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.forceMode
}

// ToggleForceMode flips force mode and returns the new state. The clock is
// stamped so the first Update afterwards sees no elapsed time.
func (p *Paper) ToggleForceMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forceMode = !p.forceMode
	p.last = p.clock.Seconds()
	return p.forceMode
}

// Update is the per-frame entry point. In force mode it advances the sheet
// by the clock time since the previous call and reports whether any cell
// moved. Outside force mode it does nothing.
func (p *Paper) Update() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.forceMode {
		return false
	}
	now := p.clock.Seconds()
	dt := float32(now - p.last)
	p.last = now
	return p.step(dt)
}

// Step advances the sheet by dt seconds regardless of force mode. Negative
// dt is treated as zero.
func (p *Paper) Step(dt float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step(dt)
}

func (p *Paper) step(dt float32) bool {
	dt = max(dt, 0)

	moved := false
	for i := range p.forces {
		f := &p.forces[i]
		if !f.Active() {
			continue
		}
		shift := f.Direction.Scale(p.cfg.DisplacementScale * dt * f.Magnitude)
		p.centers[i] = p.centers[i].Add(shift)
		f.Magnitude = max(f.Magnitude-dt*p.cfg.ReducingForce, 0)
		moved = true
	}
	if moved {
		p.rebuild()
	}
	return moved
}
