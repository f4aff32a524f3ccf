// pkg/physics/collision.go
package physics

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/opd-ai/go-physics4d/pkg/vecmath"
)

// Contact describes an overlap between two shapes. Normal is a unit vector
// pointing from the first shape passed to the detection call toward the
// second; Penetration > 0 means the shapes overlap by that depth along Normal.
type Contact struct {
	Point       Vec4
	Normal      Vec4
	Penetration float32
}

// Flipped returns the contact seen from the other shape: the normal is negated.
func (c Contact) Flipped() Contact {
	c.Normal = vecmath.Negate(c.Normal)
	return c
}

// Collide runs the narrow-phase test for any pair of colliders. The returned
// normal points from a toward b.
func Collide(a, b Collider) (Contact, bool) {
	switch sa := a.(type) {
	case Sphere:
		switch sb := b.(type) {
		case Sphere:
			return CollideSphereSphere(sa, sb)
		case AABB:
			return CollideSphereAABB(sa, sb)
		case Plane:
			return CollideSpherePlane(sa, sb)
		}
	case AABB:
		switch sb := b.(type) {
		case Sphere:
			return flip(CollideSphereAABB(sb, sa))
		case AABB:
			return CollideAABBAABB(sa, sb)
		case Plane:
			return CollideAABBPlane(sa, sb)
		}
	case Plane:
		switch sb := b.(type) {
		case Sphere:
			return flip(CollideSpherePlane(sb, sa))
		case AABB:
			return flip(CollideAABBPlane(sb, sa))
		}
	}
	// Plane-plane and unknown shapes never touch.
	return Contact{}, false
}

func flip(c Contact, ok bool) (Contact, bool) {
	if !ok {
		return Contact{}, false
	}
	return c.Flipped(), true
}

// CollideSpherePlane tests a sphere against a plane. The contact point is the
// sphere surface point deepest behind the plane.
func CollideSpherePlane(s Sphere, p Plane) (Contact, bool) {
	penetration := s.Radius - p.SignedDistance(s.Position)
	if penetration <= 0 {
		return Contact{}, false
	}
	return Contact{
		Point:       s.Position.Sub(p.Normal.Mul(s.Radius)),
		Normal:      vecmath.Negate(p.Normal),
		Penetration: penetration,
	}, true
}

// CollideAABBPlane tests a box against a plane using the box vertex furthest
// against the plane normal.
func CollideAABBPlane(b AABB, p Plane) (Contact, bool) {
	vertex := b.Center().Sub(vecmath.MulElem(b.HalfExtents(), vecmath.Sign(p.Normal)))
	distance := p.SignedDistance(vertex)
	if distance >= 0 {
		return Contact{}, false
	}
	return Contact{
		Point:       vertex,
		Normal:      vecmath.Negate(p.Normal),
		Penetration: -distance,
	}, true
}

// CollideSphereAABB tests a sphere against a box. When the sphere center is
// inside the box the nearest face decides the escape direction.
func CollideSphereAABB(s Sphere, b AABB) (Contact, bool) {
	closest := b.ClosestPoint(s.Position)
	diff := s.Position.Sub(closest)
	distSq := vecmath.LengthSquared(diff)
	if distSq >= s.Radius*s.Radius {
		return Contact{}, false
	}

	if distSq > vecmath.Epsilon*vecmath.Epsilon {
		dist := math32.Sqrt(distSq)
		away := diff.Mul(1 / dist)
		return Contact{
			Point:       closest,
			Normal:      vecmath.Negate(away),
			Penetration: s.Radius - dist,
		}, true
	}

	// Center inside the box: find the closest face among the 8 (2 per axis).
	axis, side := 0, float32(-1)
	best := float32(math.MaxFloat32)
	for i := 0; i < 4; i++ {
		if d := s.Position[i] - b.Min[i]; d < best {
			best, axis, side = d, i, -1
		}
		if d := b.Max[i] - s.Position[i]; d < best {
			best, axis, side = d, i, 1
		}
	}
	away := vecmath.Axis(axis).Mul(side)
	point := s.Position
	if side < 0 {
		point[axis] = b.Min[axis]
	} else {
		point[axis] = b.Max[axis]
	}
	return Contact{
		Point:       point,
		Normal:      vecmath.Negate(away),
		Penetration: s.Radius + best,
	}, true
}

// CollideAABBAABB tests two boxes. The contact uses the axis of least
// overlap; the normal points from a's center toward b's along that axis.
func CollideAABBAABB(a, b AABB) (Contact, bool) {
	lo := vecmath.Max(a.Min, b.Min)
	hi := vecmath.Min(a.Max, b.Max)
	overlap := hi.Sub(lo)

	axis := 0
	for i := 0; i < 4; i++ {
		if overlap[i] <= 0 {
			return Contact{}, false
		}
		if overlap[i] < overlap[axis] {
			axis = i
		}
	}

	normal := vecmath.Axis(axis)
	if b.Center()[axis] < a.Center()[axis] {
		normal = vecmath.Negate(normal)
	}
	return Contact{
		Point:       lo.Add(hi).Mul(0.5),
		Normal:      normal,
		Penetration: overlap[axis],
	}, true
}

// CollideSphereSphere tests two spheres. Coincident centers give no contact
// because no separating direction exists.
func CollideSphereSphere(a, b Sphere) (Contact, bool) {
	delta := b.Position.Sub(a.Position)
	dist := delta.Len()
	radii := a.Radius + b.Radius
	if dist >= radii || dist <= vecmath.Epsilon {
		return Contact{}, false
	}
	normal := delta.Mul(1 / dist)
	return Contact{
		Point:       a.Position.Add(normal.Mul(a.Radius)),
		Normal:      normal,
		Penetration: radii - dist,
	}, true
}
