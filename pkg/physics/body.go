// pkg/physics/body.go
package physics

// MinMass is the smallest mass a body can carry.
const MinMass float32 = 1e-6

// RigidBody4D is a simulated body wrapping a Collider. Position changes go
// through SetPosition or ApplyCorrection, which move the collider by the same
// delta so Collider().Center() always tracks Position().
type RigidBody4D struct {
	position          Vec4
	velocity          Vec4
	mass              float32
	material          PhysicsMaterial
	collider          Collider
	filter            CollisionFilter
	isStatic          bool
	affectedByGravity bool
}

// NewRigidBody returns a dynamic, gravity-affected body of mass 1 located at
// the collider's center.
func NewRigidBody(collider Collider) RigidBody4D {
	return RigidBody4D{
		position:          collider.Center(),
		mass:              1,
		material:          DefaultMaterial,
		collider:          collider,
		filter:            DefaultFilter,
		affectedByGravity: true,
	}
}

// NewStaticBody returns an immovable body for the given collider.
func NewStaticBody(collider Collider) RigidBody4D {
	return NewRigidBody(collider).WithStatic(true)
}

// WithVelocity sets the initial velocity.
func (b RigidBody4D) WithVelocity(v Vec4) RigidBody4D {
	b.velocity = v
	return b
}

// WithMass sets the mass, clamped to at least MinMass.
func (b RigidBody4D) WithMass(mass float32) RigidBody4D {
	if !(mass >= MinMass) {
		mass = MinMass
	}
	b.mass = mass
	return b
}

// WithMaterial replaces the material, clamping both coefficients.
func (b RigidBody4D) WithMaterial(m PhysicsMaterial) RigidBody4D {
	b.material = NewMaterial(m.Friction, m.Restitution)
	return b
}

// WithRestitution sets the restitution, clamped to [0, 1].
func (b RigidBody4D) WithRestitution(r float32) RigidBody4D {
	b.material.Restitution = clampUnit(r)
	return b
}

// WithFriction sets the friction, clamped to [0, 1].
func (b RigidBody4D) WithFriction(f float32) RigidBody4D {
	b.material.Friction = clampUnit(f)
	return b
}

// WithGravity toggles gravity.
func (b RigidBody4D) WithGravity(enabled bool) RigidBody4D {
	b.affectedByGravity = enabled
	return b
}

// WithStatic marks the body static. Static bodies are never affected by gravity.
func (b RigidBody4D) WithStatic(static bool) RigidBody4D {
	b.isStatic = static
	if static {
		b.affectedByGravity = false
	}
	return b
}

// WithFilter sets the collision filter.
func (b RigidBody4D) WithFilter(f CollisionFilter) RigidBody4D {
	b.filter = f
	return b
}

func (b RigidBody4D) Position() Vec4            { return b.position }
func (b RigidBody4D) Velocity() Vec4            { return b.velocity }
func (b RigidBody4D) Mass() float32             { return b.mass }
func (b RigidBody4D) Material() PhysicsMaterial { return b.material }
func (b RigidBody4D) Collider() Collider        { return b.collider }
func (b RigidBody4D) Filter() CollisionFilter   { return b.filter }
func (b RigidBody4D) IsStatic() bool            { return b.isStatic }
func (b RigidBody4D) AffectedByGravity() bool   { return b.affectedByGravity }

// SetPosition moves the body and its collider to p.
func (b *RigidBody4D) SetPosition(p Vec4) {
	b.ApplyCorrection(p.Sub(b.position))
}

// ApplyCorrection moves the body and its collider by delta.
func (b *RigidBody4D) ApplyCorrection(delta Vec4) {
	b.position = b.position.Add(delta)
	if b.collider != nil {
		b.collider = b.collider.Translated(delta)
	}
}

// SetVelocity replaces the velocity.
func (b *RigidBody4D) SetVelocity(v Vec4) {
	b.velocity = v
}

// ApplyImpulse changes the velocity by impulse/mass. Static bodies ignore it.
func (b *RigidBody4D) ApplyImpulse(impulse Vec4) {
	if b.isStatic {
		return
	}
	if b.mass < MinMass {
		return
	}
	b.velocity = b.velocity.Add(impulse.Mul(1 / b.mass))
}

// integrate advances a dynamic body by dt under the given vertical gravity.
func (b *RigidBody4D) integrate(gravity, dt float32) {
	if b.isStatic {
		return
	}
	if b.affectedByGravity {
		b.velocity[1] += gravity * dt
	}
	b.ApplyCorrection(b.velocity.Mul(dt))
}
