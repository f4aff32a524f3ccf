// pkg/physics/collider.go
package physics

import (
	"fmt"

	"github.com/opd-ai/go-physics4d/pkg/vecmath"
)

// Vec4 is the vector type used throughout the physics core.
type Vec4 = vecmath.Vec4

// ColliderKind identifies which primitive a Collider holds.
type ColliderKind int

const (
	KindSphere ColliderKind = iota
	KindAABB
	KindPlane
)

func (k ColliderKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindAABB:
		return "aabb"
	case KindPlane:
		return "plane"
	default:
		return fmt.Sprintf("ColliderKind(%d)", int(k))
	}
}

// Collider is the closed set of collision shapes: Sphere, AABB and Plane.
// The set is sealed; pairwise tests are dispatched by Collide.
type Collider interface {
	Kind() ColliderKind
	// Center is the point that tracks a body's position.
	Center() Vec4
	// Translated returns the same shape moved by delta.
	Translated(delta Vec4) Collider

	sealed()
}

// Sphere is a 4D hypersphere.
type Sphere struct {
	Position Vec4
	Radius   float32
}

// NewSphere returns a sphere at center. Negative radii are clamped to zero.
func NewSphere(center Vec4, radius float32) Sphere {
	if radius < 0 {
		radius = 0
	}
	return Sphere{Position: center, Radius: radius}
}

func (s Sphere) Kind() ColliderKind { return KindSphere }
func (s Sphere) Center() Vec4       { return s.Position }
func (s Sphere) sealed()            {}

// Translated returns the sphere moved by delta.
func (s Sphere) Translated(delta Vec4) Collider {
	s.Position = s.Position.Add(delta)
	return s
}

// Contains reports whether p lies inside or on the sphere.
func (s Sphere) Contains(p Vec4) bool {
	return vecmath.LengthSquared(p.Sub(s.Position)) <= s.Radius*s.Radius
}

// ClosestPoint returns the point on the sphere surface nearest to p.
// For p at the center the center itself is returned.
func (s Sphere) ClosestPoint(p Vec4) Vec4 {
	dir := vecmath.Normalize(p.Sub(s.Position))
	return s.Position.Add(dir.Mul(s.Radius))
}

// AABB is an axis-aligned box in 4D.
type AABB struct {
	Min Vec4
	Max Vec4
}

// NewAABB builds a box from two corners, ordering each axis so Min <= Max.
func NewAABB(a, b Vec4) AABB {
	return AABB{Min: vecmath.Min(a, b), Max: vecmath.Max(a, b)}
}

// NewAABBFromCenter builds a box from its center and half extents.
func NewAABBFromCenter(center, halfExtents Vec4) AABB {
	half := vecmath.Abs(halfExtents)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b AABB) Kind() ColliderKind { return KindAABB }
func (b AABB) sealed()            {}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec4 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the box size along each axis.
func (b AABB) HalfExtents() Vec4 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Translated returns the box moved by delta.
func (b AABB) Translated(delta Vec4) Collider {
	return b.Offset(delta)
}

// Offset is Translated without the interface conversion.
func (b AABB) Offset(delta Vec4) AABB {
	return AABB{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec4) bool {
	for i := range p {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ClosestPoint clamps p into the box.
func (b AABB) ClosestPoint(p Vec4) Vec4 {
	return vecmath.Clamp(p, b.Min, b.Max)
}

// Plane is an infinite hyperplane {p : Normal·p = Distance}. Points with a
// positive signed distance lie on the Normal side. Origin is a reference
// point on the plane that follows translations, so a plane body keeps its
// position in sync like any other shape.
type Plane struct {
	Normal   Vec4
	Distance float32
	Origin   Vec4
}

// NewPlane builds a plane from a normal and offset. The normal is re-normalized.
func NewPlane(normal Vec4, distance float32) Plane {
	n := vecmath.Normalize(normal)
	return Plane{Normal: n, Distance: distance, Origin: n.Mul(distance)}
}

// NewPlaneFromPoint builds the plane through point with the given normal.
func NewPlaneFromPoint(point, normal Vec4) Plane {
	n := vecmath.Normalize(normal)
	return Plane{Normal: n, Distance: n.Dot(point), Origin: point}
}

// Floor returns a horizontal plane at height y facing up.
func Floor(y float32) Plane {
	return NewPlane(vecmath.Up, y)
}

func (p Plane) Kind() ColliderKind { return KindPlane }
func (p Plane) sealed()            {}

// Center returns the plane's reference point.
func (p Plane) Center() Vec4 {
	return p.Origin
}

// Translated moves the plane by delta, shifting Distance by Normal·delta.
func (p Plane) Translated(delta Vec4) Collider {
	p.Distance += p.Normal.Dot(delta)
	p.Origin = p.Origin.Add(delta)
	return p
}

// SignedDistance returns Normal·point - Distance.
func (p Plane) SignedDistance(point Vec4) float32 {
	return p.Normal.Dot(point) - p.Distance
}

// ClosestPoint projects point onto the plane.
func (p Plane) ClosestPoint(point Vec4) Vec4 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}

// Contains reports whether point lies on or behind the plane.
func (p Plane) Contains(point Vec4) bool {
	return p.SignedDistance(point) <= 0
}
