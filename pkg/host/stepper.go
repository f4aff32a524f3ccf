// pkg/host/stepper.go

// Package host connects a PhysicsWorld to a frame-driven application: a
// fixed-timestep accumulator and an entity-component system adapter.
package host

import (
	"github.com/chewxy/math32"

	"github.com/opd-ai/go-physics4d/pkg/physics"
)

// FixedStepper advances a world in fixed TimeStep increments from variable
// frame times. At most MaxSubSteps steps run per Advance; time beyond that is
// dropped so a slow frame cannot snowball.
type FixedStepper struct {
	World       *physics.PhysicsWorld
	TimeStep    float32
	MaxSubSteps int

	accumulator float32
}

// NewFixedStepper returns a stepper for world.
func NewFixedStepper(world *physics.PhysicsWorld, timeStep float32, maxSubSteps int) *FixedStepper {
	return &FixedStepper{World: world, TimeStep: timeStep, MaxSubSteps: maxSubSteps}
}

// Advance adds elapsed seconds and runs as many whole steps as fit. It
// returns the number of steps taken.
func (s *FixedStepper) Advance(elapsed float32) int {
	if s.World == nil || !(s.TimeStep > 0) {
		return 0
	}
	if elapsed > 0 {
		s.accumulator += elapsed
	}

	limit := s.MaxSubSteps
	if limit < 1 {
		limit = 1
	}

	steps := 0
	for s.accumulator >= s.TimeStep && steps < limit {
		s.World.Step(s.TimeStep)
		s.accumulator -= s.TimeStep
		steps++
	}
	if s.accumulator >= s.TimeStep {
		s.accumulator = math32.Mod(s.accumulator, s.TimeStep)
	}
	return steps
}

// Alpha returns how far the accumulator is into the next step, in [0, 1).
// Renderers use it to interpolate between the last two states.
func (s *FixedStepper) Alpha() float32 {
	if !(s.TimeStep > 0) {
		return 0
	}
	return s.accumulator / s.TimeStep
}

// Reset discards accumulated time.
func (s *FixedStepper) Reset() {
	s.accumulator = 0
}
