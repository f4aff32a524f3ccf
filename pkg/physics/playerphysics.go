// pkg/physics/playerphysics.go
package physics

import "github.com/opd-ai/go-physics4d/pkg/vecmath"

// Standalone player defaults.
const (
	DefaultGroundMargin float32 = 0.01
	DefaultJumpVelocity float32 = 8
)

// PlayerPhysics is a lightweight single-sphere controller for hosts that do
// not run a full PhysicsWorld. It collides against one floor plane only.
type PlayerPhysics struct {
	Position     Vec4
	Velocity     Vec4
	Radius       float32
	Grounded     bool
	JumpVelocity float32
	// GroundMargin is how far above the floor the sphere may hover and still
	// count as standing on it.
	GroundMargin float32
}

// NewPlayerPhysics returns a controller at position with the default jump
// velocity and ground margin.
func NewPlayerPhysics(position Vec4, radius float32) *PlayerPhysics {
	if radius < 0 {
		radius = 0
	}
	return &PlayerPhysics{
		Position:     position,
		Radius:       radius,
		JumpVelocity: DefaultJumpVelocity,
		GroundMargin: DefaultGroundMargin,
	}
}

// Collider returns the player's sphere.
func (p *PlayerPhysics) Collider() Sphere {
	return Sphere{Position: p.Position, Radius: p.Radius}
}

// IsGrounded reports whether the last Step left the player on the floor.
func (p *PlayerPhysics) IsGrounded() bool {
	return p.Grounded
}

// ApplyMovement sets the X, Z and W velocity from v. The Y component of v is
// ignored so movement input cannot lift the player.
func (p *PlayerPhysics) ApplyMovement(v Vec4) {
	p.Velocity[0] = v[0]
	p.Velocity[2] = v[2]
	p.Velocity[3] = v[3]
}

// Jump gives the player its jump velocity if it is grounded.
func (p *PlayerPhysics) Jump() bool {
	if !p.Grounded {
		return false
	}
	p.Velocity[1] = p.JumpVelocity
	p.Grounded = false
	return true
}

// Step applies gravity, integrates and resolves against floor. A sphere
// hovering within GroundMargin of the floor while not rising is snapped down
// and counted as grounded.
func (p *PlayerPhysics) Step(dt, gravity float32, floor Plane) {
	p.Velocity[1] += gravity * dt
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Grounded = false

	if contact, ok := CollideSpherePlane(p.Collider(), floor); ok {
		push := vecmath.Negate(contact.Normal)
		p.Position = p.Position.Add(push.Mul(contact.Penetration))
		if vn := p.Velocity.Dot(push); vn < 0 {
			p.Velocity = p.Velocity.Sub(push.Mul(vn))
		}
		p.Grounded = push.Dot(vecmath.Up) > groundNormalThreshold
		return
	}

	height := floor.SignedDistance(p.Position) - p.Radius
	if height <= p.GroundMargin && p.Velocity[1] <= 0 {
		p.Position = p.Position.Sub(floor.Normal.Mul(height))
		if p.Velocity[1] < 0 {
			p.Velocity[1] = 0
		}
		p.Grounded = true
	}
}
