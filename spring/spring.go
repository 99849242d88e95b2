// Package spring implements a damped harmonic oscillator for animating
// scalar values toward moving targets. The layout engine uses it to turn
// discrete layout jumps into continuous motion; it knows nothing about
// layout itself.
package spring

import "math"

// Defaults matching a gentle UI spring.
const (
	DefaultStiffness = 170
	DefaultDamping   = 26
	DefaultMass      = 1

	// restDelta is the displacement and velocity magnitude below which a
	// spring snaps to its target and reports rest.
	restDelta = 1e-3
)

// Spring animates one scalar value toward a target.
type Spring struct {
	stiffness float64
	damping   float64
	mass      float64

	value    float64
	velocity float64
	target   float64
}

// New creates a spring at rest at zero. Non-positive parameters fall back
// to the defaults.
func New(stiffness, damping, mass float64) *Spring {
	if stiffness <= 0 {
		stiffness = DefaultStiffness
	}
	if damping <= 0 {
		damping = DefaultDamping
	}
	if mass <= 0 {
		mass = DefaultMass
	}
	return &Spring{stiffness: stiffness, damping: damping, mass: mass}
}

// Snap moves the spring instantly to the given value and zeroes velocity.
func (s *Spring) Snap(value float64) {
	s.value = value
	s.target = value
	s.velocity = 0
}

// Set retargets the spring without disturbing its current value or
// velocity.
func (s *Spring) Set(target float64) {
	s.target = target
}

// Target returns the current target.
func (s *Spring) Target() float64 {
	return s.target
}

// Value returns the current animated value.
func (s *Spring) Value() float64 {
	return s.value
}

// AtRest reports whether the spring has settled on its target.
func (s *Spring) AtRest() bool {
	return s.value == s.target && s.velocity == 0
}

// Update advances the simulation by dt seconds using semi-implicit Euler
// integration, which stays stable for the step sizes a render loop
// produces. Returns the new value.
func (s *Spring) Update(dt float64) float64 {
	if s.AtRest() {
		return s.value
	}

	displacement := s.value - s.target
	accel := (-s.stiffness*displacement - s.damping*s.velocity) / s.mass
	s.velocity += accel * dt
	s.value += s.velocity * dt

	if math.Abs(s.value-s.target) < restDelta && math.Abs(s.velocity) < restDelta {
		s.value = s.target
		s.velocity = 0
	}
	return s.value
}

// Vec animates a small fixed group of scalars with identical spring
// parameters, enough for an (x, y, width, height) tuple.
type Vec struct {
	springs []*Spring
}

// NewVec creates n springs sharing one parameter set.
func NewVec(n int, stiffness, damping, mass float64) *Vec {
	v := &Vec{springs: make([]*Spring, n)}
	for i := range v.springs {
		v.springs[i] = New(stiffness, damping, mass)
	}
	return v
}

// Snap moves every spring instantly to the given values.
func (v *Vec) Snap(values ...float64) {
	for i, s := range v.springs {
		if i < len(values) {
			s.Snap(values[i])
		}
	}
}

// Set retargets every spring.
func (v *Vec) Set(targets ...float64) {
	for i, s := range v.springs {
		if i < len(targets) {
			s.Set(targets[i])
		}
	}
}

// Update advances every spring by dt seconds.
func (v *Vec) Update(dt float64) {
	for _, s := range v.springs {
		s.Update(dt)
	}
}

// Values returns the current animated values.
func (v *Vec) Values() []float64 {
	out := make([]float64, len(v.springs))
	for i, s := range v.springs {
		out[i] = s.Value()
	}
	return out
}

// AtRest reports whether every spring has settled.
func (v *Vec) AtRest() bool {
	for _, s := range v.springs {
		if !s.AtRest() {
			return false
		}
	}
	return true
}
