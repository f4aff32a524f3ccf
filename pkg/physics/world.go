// pkg/physics/world.go

// Package physics implements a 4D rigid-body core: sphere, box and plane
// colliders, pairwise narrow-phase detection, a generational body table and a
// PhysicsWorld that integrates, resolves contacts and tracks an optional player.
package physics

import (
	"context"

	"github.com/opd-ai/go-physics4d/pkg/event"
	"github.com/opd-ai/go-physics4d/pkg/logging"
	"github.com/opd-ai/go-physics4d/pkg/vecmath"
)

// Defaults used by DefaultPhysicsConfig.
const (
	DefaultGravity   float32 = -20
	DefaultJumpSpeed float32 = 8

	// groundNormalThreshold is the minimum normal·up for a contact to count as ground.
	groundNormalThreshold float32 = 0.5
)

// PhysicsConfig holds world-wide simulation parameters. Gravity acts on the
// Y axis only.
type PhysicsConfig struct {
	Gravity float32
	// JumpSpeed is the vertical speed PlayerJump applies. Zero means DefaultJumpSpeed.
	JumpSpeed float32
}

// DefaultPhysicsConfig returns gravity -20 and the default jump speed.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{Gravity: DefaultGravity, JumpSpeed: DefaultJumpSpeed}
}

// StaticCollider is immovable world geometry. It never integrates or moves.
type StaticCollider struct {
	Collider Collider
	Material PhysicsMaterial
	Filter   CollisionFilter
}

// NewStaticCollider returns a static collider colliding with every layer.
func NewStaticCollider(c Collider, m PhysicsMaterial) StaticCollider {
	return StaticCollider{
		Collider: c,
		Material: NewMaterial(m.Friction, m.Restitution),
		Filter:   CollisionFilter{Layer: LayerStatic, Mask: LayerAll},
	}
}

// Option configures a PhysicsWorld.
type Option func(*PhysicsWorld)

// WithLogger attaches a logger for lifecycle debug output.
func WithLogger(l *logging.Logger) Option {
	return func(w *PhysicsWorld) { w.logger = l.With("component", "physics") }
}

// WithEventBus attaches a bus that receives body and contact events.
func WithEventBus(b *event.Bus) Option {
	return func(w *PhysicsWorld) { w.events = b }
}

// PhysicsWorld owns a set of bodies and static colliders and advances them
// with Step. It is not safe for concurrent use.
type PhysicsWorld struct {
	config  PhysicsConfig
	bodies  *BodySet
	statics []StaticCollider
	player  playerState
	steps   uint64

	logger *logging.Logger
	events *event.Bus
}

// NewPhysicsWorld creates an empty world.
func NewPhysicsWorld(cfg PhysicsConfig, opts ...Option) *PhysicsWorld {
	if cfg.JumpSpeed == 0 {
		cfg.JumpSpeed = DefaultJumpSpeed
	}
	w := &PhysicsWorld{
		config: cfg,
		bodies: NewBodySet(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the world configuration.
func (w *PhysicsWorld) Config() PhysicsConfig {
	return w.config
}

// AddBody stores body and returns its key.
func (w *PhysicsWorld) AddBody(body RigidBody4D) BodyKey {
	key := w.bodies.Insert(body)
	w.logger.Debug(context.Background(), "body added",
		logging.Body(key),
		"shape", body.Collider().Kind().String(),
		"static", body.IsStatic(),
	)
	w.publish(event.NewBodyEvent(event.BodyAdded, w, key.ID()))
	return key
}

// RemoveBody deletes the body behind key and returns it. A stale key yields
// false. Removing the player body clears the player designation.
func (w *PhysicsWorld) RemoveBody(key BodyKey) (RigidBody4D, bool) {
	body, ok := w.bodies.Remove(key)
	if !ok {
		return RigidBody4D{}, false
	}
	if w.player.key == key {
		w.player = playerState{}
	}
	w.logger.Debug(context.Background(), "body removed", logging.Body(key))
	w.publish(event.NewBodyEvent(event.BodyRemoved, w, key.ID()))
	return body, true
}

// GetBody returns a copy of the body behind key.
func (w *PhysicsWorld) GetBody(key BodyKey) (RigidBody4D, bool) {
	b, ok := w.bodies.Get(key)
	if !ok {
		return RigidBody4D{}, false
	}
	return *b, true
}

// GetBodyMut returns the live body behind key for in-place mutation. The
// pointer must not be retained across Step or RemoveBody.
func (w *PhysicsWorld) GetBodyMut(key BodyKey) (*RigidBody4D, bool) {
	return w.bodies.Get(key)
}

// BodyCount returns the number of live bodies.
func (w *PhysicsWorld) BodyCount() int {
	return w.bodies.Len()
}

// Bodies returns the live keys in slot order.
func (w *PhysicsWorld) Bodies() []BodyKey {
	return w.bodies.Keys()
}

// AddStaticCollider appends immovable geometry and returns its index.
func (w *PhysicsWorld) AddStaticCollider(sc StaticCollider) int {
	w.statics = append(w.statics, sc)
	w.logger.Debug(context.Background(), "static collider added",
		"index", len(w.statics)-1,
		"shape", sc.Collider.Kind().String(),
	)
	return len(w.statics) - 1
}

// StaticColliders returns a copy of the static geometry.
func (w *PhysicsWorld) StaticColliders() []StaticCollider {
	out := make([]StaticCollider, len(w.statics))
	copy(out, w.statics)
	return out
}

// StepCount returns how many times Step has completed.
func (w *PhysicsWorld) StepCount() uint64 {
	return w.steps
}

// Step advances the simulation by dt seconds: integration, resolution
// against static colliders, then one pass of body-body resolution. Deep
// overlaps between many bodies may take several steps to separate.
func (w *PhysicsWorld) Step(dt float32) {
	keys := w.bodies.Keys()

	for _, key := range keys {
		b, _ := w.bodies.Get(key)
		b.integrate(w.config.Gravity, dt)
	}

	grounded := false
	for _, key := range keys {
		if w.resolveStatics(key) && key == w.player.key {
			grounded = true
		}
	}

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			w.resolvePair(keys[i], keys[j])
		}
	}

	w.updatePlayerGrounded(grounded)
	w.steps++
}

// resolveStatics pushes one dynamic body out of every static collider it
// overlaps and reports whether any contact could support it.
func (w *PhysicsWorld) resolveStatics(key BodyKey) bool {
	b, ok := w.bodies.Get(key)
	if !ok || b.isStatic {
		return false
	}

	supported := false
	for i := range w.statics {
		sc := &w.statics[i]
		if !b.filter.Matches(sc.Filter) {
			continue
		}
		contact, hit := Collide(b.collider, sc.Collider)
		if !hit {
			continue
		}
		// Collide points from the body toward the surface; push the other way.
		normal := vecmath.Negate(contact.Normal)
		b.ApplyCorrection(normal.Mul(contact.Penetration))
		respond(b, normal, Combine(b.material, sc.Material))

		if normal.Dot(vecmath.Up) > groundNormalThreshold {
			supported = true
		}
		if w.events.HasSubscribers(event.StaticContact) {
			w.publish(event.NewStaticContactEvent(w, key.ID(), i, normal, contact.Penetration))
		}
	}
	return supported
}

// resolvePair separates two overlapping bodies, splitting the correction by
// the partner's mass fraction. A static side absorbs nothing.
func (w *PhysicsWorld) resolvePair(ka, kb BodyKey) {
	a, okA := w.bodies.Get(ka)
	b, okB := w.bodies.Get(kb)
	if !okA || !okB || (a.isStatic && b.isStatic) {
		return
	}
	if !a.filter.Matches(b.filter) {
		return
	}
	contact, hit := Collide(a.collider, b.collider)
	if !hit {
		return
	}

	var ratioA, ratioB float32
	switch {
	case a.isStatic:
		ratioB = 1
	case b.isStatic:
		ratioA = 1
	default:
		total := a.mass + b.mass
		if total <= 0 {
			ratioA, ratioB = 0.5, 0.5
		} else {
			ratioA = b.mass / total
			ratioB = a.mass / total
		}
	}

	n := contact.Normal
	material := Combine(a.material, b.material)
	if !a.isStatic {
		pushA := vecmath.Negate(n)
		a.ApplyCorrection(pushA.Mul(contact.Penetration * ratioA))
		respond(a, pushA, material)
	}
	if !b.isStatic {
		b.ApplyCorrection(n.Mul(contact.Penetration * ratioB))
		respond(b, n, material)
	}
	if w.events.HasSubscribers(event.BodyContact) {
		w.publish(event.NewBodyContactEvent(w, ka.ID(), kb.ID(), vecmath.Negate(n), contact.Penetration))
	}
}

// respond applies restitution and friction for a body pushed along normal.
// Nothing changes unless the body is moving into the surface.
func respond(b *RigidBody4D, normal Vec4, m PhysicsMaterial) {
	vn := b.velocity.Dot(normal)
	if vn >= 0 {
		return
	}
	v := b.velocity.Sub(normal.Mul((1 + m.Restitution) * vn))
	normalPart := normal.Mul(v.Dot(normal))
	tangent := v.Sub(normalPart)
	b.velocity = normalPart.Add(tangent.Mul(1 - m.Friction))
}

func (w *PhysicsWorld) publish(e event.Event) {
	if w.events == nil {
		return
	}
	w.events.Publish(e)
}
