// pkg/physics/material.go
package physics

import "github.com/chewxy/math32"

// PhysicsMaterial describes the surface response of a body or static collider.
// Both coefficients are kept in [0, 1].
type PhysicsMaterial struct {
	Friction    float32
	Restitution float32
}

// Common materials.
var (
	DefaultMaterial = PhysicsMaterial{Friction: 0.5, Restitution: 0.0}
	Ice             = PhysicsMaterial{Friction: 0.05, Restitution: 0.1}
	Rubber          = PhysicsMaterial{Friction: 0.9, Restitution: 0.8}
	Metal           = PhysicsMaterial{Friction: 0.4, Restitution: 0.3}
	Bouncy          = PhysicsMaterial{Friction: 0.3, Restitution: 1.0}
)

// NewMaterial returns a material with both coefficients clamped to [0, 1].
func NewMaterial(friction, restitution float32) PhysicsMaterial {
	return PhysicsMaterial{
		Friction:    clampUnit(friction),
		Restitution: clampUnit(restitution),
	}
}

// Combine mixes two materials for a contact: friction is the geometric mean,
// restitution the larger of the two. Combine(a, b) == Combine(b, a).
func Combine(a, b PhysicsMaterial) PhysicsMaterial {
	return PhysicsMaterial{
		Friction:    math32.Sqrt(a.Friction * b.Friction),
		Restitution: math32.Max(a.Restitution, b.Restitution),
	}
}

func clampUnit(v float32) float32 {
	if math32.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
