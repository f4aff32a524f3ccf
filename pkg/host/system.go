// pkg/host/system.go
package host

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-physics4d/pkg/logging"
	"github.com/opd-ai/go-physics4d/pkg/physics"
)

// TransformComponent receives a body's state after every physics update.
type TransformComponent struct {
	Position physics.Vec4
	Velocity physics.Vec4
}

type physicsEntity struct {
	*ecs.BasicEntity
	*TransformComponent
	key physics.BodyKey
}

// PhysicsSystem is an ecs.System that steps a world and mirrors body state
// into the transforms of linked entities.
type PhysicsSystem struct {
	stepper  *FixedStepper
	entities []physicsEntity
	logger   *logging.Logger
}

// NewPhysicsSystem returns a system driving stepper. logger may be nil.
func NewPhysicsSystem(stepper *FixedStepper, logger *logging.Logger) *PhysicsSystem {
	return &PhysicsSystem{stepper: stepper, logger: logger.With("component", "host")}
}

// Priority runs physics before systems that read transforms.
func (s *PhysicsSystem) Priority() int {
	return 100
}

// Add links an entity to the body behind key and fills its transform.
func (s *PhysicsSystem) Add(basic *ecs.BasicEntity, key physics.BodyKey, transform *TransformComponent) {
	s.entities = append(s.entities, physicsEntity{BasicEntity: basic, TransformComponent: transform, key: key})
	if body, ok := s.stepper.World.GetBody(key); ok {
		transform.Position = body.Position()
		transform.Velocity = body.Velocity()
	}
}

// Remove unlinks the entity and removes its body from the world.
func (s *PhysicsSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range s.entities {
		if e.BasicEntity.ID() == basic.ID() {
			s.stepper.World.RemoveBody(e.key)
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

// Len returns the number of linked entities.
func (s *PhysicsSystem) Len() int {
	return len(s.entities)
}

// Stepper returns the stepper driving the world.
func (s *PhysicsSystem) Stepper() *FixedStepper {
	return s.stepper
}

// Update advances the stepper by dt and copies body state into transforms.
// Entities whose body no longer exists are dropped.
func (s *PhysicsSystem) Update(dt float32) {
	s.stepper.Advance(dt)

	kept := s.entities[:0]
	for _, e := range s.entities {
		body, ok := s.stepper.World.GetBody(e.key)
		if !ok {
			s.logger.Debug(context.Background(), "dropping entity with stale body",
				"entity", e.BasicEntity.ID(),
				logging.Body(e.key),
				logging.Step(s.stepper.World.StepCount()),
			)
			continue
		}
		e.TransformComponent.Position = body.Position()
		e.TransformComponent.Velocity = body.Velocity()
		kept = append(kept, e)
	}
	s.entities = kept
}
