package engine

import "github.com/chrisuehlinger/flexscene/spring"

// AnimatedBox wraps a box so layout output becomes the target of a
// continuous spring interpolation instead of an instantaneous position
// write. The host advances it once per tick alongside Container.Tick.
type AnimatedBox struct {
	box     *Box
	springs *spring.Vec // x, y, width, height in solver units
	settled bool
	primed  bool

	// OnFrame, when set, receives every interpolation step in plane units.
	OnFrame func(x, y, width, height float64)

	// AutoSize requests one extra reflow after the springs settle, so the
	// container re-measures content at its animated rest geometry.
	AutoSize bool
}

// Animate wraps the box in a spring overlay. Non-positive spring parameters
// fall back to the spring package defaults. The engine stops writing the
// box's position directly; Advance takes over.
func Animate(b *Box, stiffness, damping, mass float64) *AnimatedBox {
	a := &AnimatedBox{
		box:     b,
		springs: spring.NewVec(4, stiffness, damping, mass),
		settled: true,
	}
	b.OnLayout(a.retarget, true)
	return a
}

// retarget feeds a reflow result into the springs. The first layout snaps
// instead of animating so boxes don't fly in from the origin; the snapped
// values are applied immediately since the engine defers its own write.
func (a *AnimatedBox) retarget(x, y, w, h float64) {
	if !a.primed {
		a.springs.Snap(x, y, w, h)
		a.primed = true
		a.apply(x, y, w, h)
		return
	}
	a.springs.Set(x, y, w, h)
	a.settled = false
}

// apply writes one interpolation state onto the content and reports it
// through OnFrame.
func (a *AnimatedBox) apply(x, y, w, h float64) {
	c := a.box.container
	if rec, ok := c.registry.Lookup(a.box.node); ok && rec.Content != nil {
		rec.Content.SetLocalPosition(c.cfg.Plane.Position(x/c.scale, y/c.scale))
	}
	if a.OnFrame != nil {
		a.OnFrame(x/c.scale, y/c.scale, w/c.scale, h/c.scale)
	}
}

// Advance steps the interpolation by dt seconds, writes the interpolated
// position onto the content, and reports every step through OnFrame.
func (a *AnimatedBox) Advance(dt float64) {
	if a.springs.AtRest() {
		if !a.settled {
			a.settled = true
			if a.AutoSize {
				a.box.container.RequestReflow()
			}
		}
		return
	}

	a.springs.Update(dt)
	v := a.springs.Values()
	a.apply(v[0], v[1], v[2], v[3])

	// Keep ticks coming until the springs settle.
	a.box.container.ticker.RequestTick()
}

// Size returns the animated width and height in plane units, so nested
// content can react to the in-flight size rather than the final one.
func (a *AnimatedBox) Size() (width, height float64) {
	v := a.springs.Values()
	scale := a.box.container.scale
	return v[2] / scale, v[3] / scale
}

// Box returns the wrapped box handle.
func (a *AnimatedBox) Box() *Box {
	return a.box
}
