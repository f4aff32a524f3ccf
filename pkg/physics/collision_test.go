// pkg/physics/collision_test.go
package physics

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/opd-ai/go-physics4d/pkg/vecmath"
)

func approx(a, b, tolerance float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vecApprox(a, b Vec4, tolerance float32) bool {
	return vecmath.ApproxEqual(a, b, tolerance)
}

func TestCollideSpherePlane(t *testing.T) {
	floor := Floor(0)

	t.Run("overlapping", func(t *testing.T) {
		result, ok := CollideSpherePlane(NewSphere(Vec4{0, 0.4, 0, 0}, 0.5), floor)
		if !ok {
			t.Fatal("Expected contact, got none")
		}
		if !approx(result.Penetration, 0.1, 1e-6) {
			t.Errorf("Expected penetration 0.1, got %v", result.Penetration)
		}
		// Normal points from the sphere toward the plane.
		if result.Normal != (Vec4{0, -1, 0, 0}) {
			t.Errorf("Expected normal -Y, got %v", result.Normal)
		}
		if !vecApprox(result.Point, Vec4{0, -0.1, 0, 0}, 1e-6) {
			t.Errorf("Expected contact point (0,-0.1,0,0), got %v", result.Point)
		}
	})

	t.Run("separated", func(t *testing.T) {
		if _, ok := CollideSpherePlane(NewSphere(Vec4{0, 0.6, 0, 0}, 0.5), floor); ok {
			t.Error("Expected no contact above the floor")
		}
	})

	t.Run("exactly_touching", func(t *testing.T) {
		if _, ok := CollideSpherePlane(NewSphere(Vec4{0, 0.5, 0, 0}, 0.5), floor); ok {
			t.Error("Touching is not overlapping")
		}
	})

	t.Run("w_facing_plane", func(t *testing.T) {
		wall := NewPlane(Vec4{0, 0, 0, -2}, -3) // w <= 3 side is in front
		result, ok := CollideSpherePlane(NewSphere(Vec4{0, 0, 0, 2.8}, 0.5), wall)
		if !ok {
			t.Fatal("Expected contact with W wall")
		}
		if !approx(result.Penetration, 0.3, 1e-5) {
			t.Errorf("Expected penetration 0.3, got %v", result.Penetration)
		}
		if result.Normal != (Vec4{0, 0, 0, 1}) {
			t.Errorf("Expected normal +W, got %v", result.Normal)
		}
	})
}

func TestCollideAABBPlane(t *testing.T) {
	floor := Floor(0)

	t.Run("lowest_vertex_below", func(t *testing.T) {
		box := NewAABBFromCenter(Vec4{0, 0.4, 0, 0}, splat(0.5))
		result, ok := CollideAABBPlane(box, floor)
		if !ok {
			t.Fatal("Expected contact, got none")
		}
		if !approx(result.Penetration, 0.1, 1e-6) {
			t.Errorf("Expected penetration 0.1, got %v", result.Penetration)
		}
		if result.Normal != (Vec4{0, -1, 0, 0}) {
			t.Errorf("Expected normal -Y, got %v", result.Normal)
		}
		if !approx(result.Point[1], -0.1, 1e-6) {
			t.Errorf("Expected contact vertex at y=-0.1, got %v", result.Point)
		}
	})

	t.Run("resting_on_plane", func(t *testing.T) {
		box := NewAABBFromCenter(Vec4{0, 0.5, 0, 0}, splat(0.5))
		if _, ok := CollideAABBPlane(box, floor); ok {
			t.Error("Box resting exactly on the plane should not be overlapping")
		}
	})

	t.Run("diagonal_plane_uses_corner", func(t *testing.T) {
		plane := NewPlane(Vec4{1, 1, 0, 0}, 0)
		box := NewAABBFromCenter(Vec4{0.5, 0.5, 0, 0}, splat(0.5))
		result, ok := CollideAABBPlane(box, plane)
		if ok {
			t.Errorf("Corner (0,0) lies on the plane, expected no contact, got %+v", result)
		}

		box = box.Offset(Vec4{-0.1, 0, 0, 0})
		result, ok = CollideAABBPlane(box, plane)
		if !ok {
			t.Fatal("Expected corner contact after moving into the plane")
		}
		if !vecApprox(result.Point, Vec4{-0.1, 0, 0, 0}, 1e-6) {
			t.Errorf("Expected deepest vertex (-0.1,0,0,0), got %v", result.Point)
		}
		if !approx(result.Penetration, 0.1/math32.Sqrt(2), 1e-6) {
			t.Errorf("Expected penetration 0.0707, got %v", result.Penetration)
		}
	})
}

func TestCollideSphereAABB(t *testing.T) {
	box := NewAABB(splat(-1), splat(1))

	t.Run("outside_face", func(t *testing.T) {
		result, ok := CollideSphereAABB(NewSphere(Vec4{0, 1.3, 0, 0}, 0.5), box)
		if !ok {
			t.Fatal("Expected contact, got none")
		}
		if !approx(result.Penetration, 0.2, 1e-5) {
			t.Errorf("Expected penetration 0.2, got %v", result.Penetration)
		}
		if !vecApprox(result.Normal, Vec4{0, -1, 0, 0}, 1e-6) {
			t.Errorf("Expected normal -Y (sphere toward box), got %v", result.Normal)
		}
		if !vecApprox(result.Point, Vec4{0, 1, 0, 0}, 1e-6) {
			t.Errorf("Expected contact point on top face, got %v", result.Point)
		}
	})

	t.Run("outside_edge", func(t *testing.T) {
		center := Vec4{1.2, 1.2, 0, 0}
		result, ok := CollideSphereAABB(NewSphere(center, 0.5), box)
		if !ok {
			t.Fatal("Expected edge contact")
		}
		expected := vecmath.Normalize(Vec4{-1, -1, 0, 0})
		if !vecApprox(result.Normal, expected, 1e-5) {
			t.Errorf("Expected diagonal normal %v, got %v", expected, result.Normal)
		}
	})

	t.Run("separated", func(t *testing.T) {
		if _, ok := CollideSphereAABB(NewSphere(Vec4{0, 1.6, 0, 0}, 0.5), box); ok {
			t.Error("Expected no contact")
		}
	})

	t.Run("center_inside_near_top", func(t *testing.T) {
		result, ok := CollideSphereAABB(NewSphere(Vec4{0, 0.9, 0, 0}, 0.5), box)
		if !ok {
			t.Fatal("Expected contact with center inside the box")
		}
		if result.Normal != (Vec4{0, -1, 0, 0}) {
			t.Errorf("Expected normal -Y, got %v", result.Normal)
		}
		if !approx(result.Penetration, 0.6, 1e-5) {
			t.Errorf("Expected penetration 0.6, got %v", result.Penetration)
		}
	})

	t.Run("center_inside_near_w_min", func(t *testing.T) {
		result, ok := CollideSphereAABB(NewSphere(Vec4{0, 0, 0, -0.95}, 0.5), box)
		if !ok {
			t.Fatal("Expected contact")
		}
		// Escape is toward -W, so the normal toward the box is +W.
		if result.Normal != (Vec4{0, 0, 0, 1}) {
			t.Errorf("Expected normal +W, got %v", result.Normal)
		}
		if !approx(result.Penetration, 0.55, 1e-5) {
			t.Errorf("Expected penetration 0.55, got %v", result.Penetration)
		}
		if !approx(result.Point[3], -1, 1e-6) {
			t.Errorf("Expected contact point on the W min face, got %v", result.Point)
		}
	})
}

func TestCollideAABBAABB(t *testing.T) {
	a := NewAABBFromCenter(Vec4{}, splat(1))

	tests := []struct {
		name        string
		center      Vec4
		collided    bool
		normal      Vec4
		penetration float32
	}{
		{
			name:        "overlap_positive_x",
			center:      Vec4{1.5, 0, 0, 0},
			collided:    true,
			normal:      Vec4{1, 0, 0, 0},
			penetration: 0.5,
		},
		{
			name:        "overlap_negative_x",
			center:      Vec4{-1.5, 0.2, 0, 0},
			collided:    true,
			normal:      Vec4{-1, 0, 0, 0},
			penetration: 0.5,
		},
		{
			name:        "minimum_axis_is_w",
			center:      Vec4{0.5, 0.5, 0.5, 1.8},
			collided:    true,
			normal:      Vec4{0, 0, 0, 1},
			penetration: 0.2,
		},
		{
			name:     "touching_faces",
			center:   Vec4{2, 0, 0, 0},
			collided: false,
		},
		{
			name:     "separated_in_w_only",
			center:   Vec4{0, 0, 0, 3},
			collided: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewAABBFromCenter(tt.center, splat(1))
			result, ok := CollideAABBAABB(a, b)
			if ok != tt.collided {
				t.Fatalf("CollideAABBAABB() collided = %v, expected %v", ok, tt.collided)
			}
			if !ok {
				return
			}
			if result.Normal != tt.normal {
				t.Errorf("Expected normal %v, got %v", tt.normal, result.Normal)
			}
			if !approx(result.Penetration, tt.penetration, 1e-5) {
				t.Errorf("Expected penetration %v, got %v", tt.penetration, result.Penetration)
			}
		})
	}
}

func TestCollideSphereSphere(t *testing.T) {
	t.Run("overlap_along_w", func(t *testing.T) {
		a := NewSphere(Vec4{}, 1)
		b := NewSphere(Vec4{0, 0, 0, 1.5}, 1)
		result, ok := CollideSphereSphere(a, b)
		if !ok {
			t.Fatal("Expected collision, but got no collision")
		}
		if !approx(result.Penetration, 0.5, 1e-6) {
			t.Errorf("Expected penetration 0.5, got %v", result.Penetration)
		}
		if result.Normal != (Vec4{0, 0, 0, 1}) {
			t.Errorf("Expected normal +W (a toward b), got %v", result.Normal)
		}
		if !vecApprox(result.Point, Vec4{0, 0, 0, 1}, 1e-6) {
			t.Errorf("Expected contact point on a's surface, got %v", result.Point)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		a := NewSphere(Vec4{}, 3)
		b := NewSphere(Vec4{3, 4, 0, 0}, 3)
		result, ok := CollideSphereSphere(a, b)
		if !ok {
			t.Fatal("Expected collision")
		}
		// Distance 5, radii 6.
		if !approx(result.Penetration, 1, 1e-5) {
			t.Errorf("Expected penetration 1, got %v", result.Penetration)
		}
	})

	t.Run("touching", func(t *testing.T) {
		if _, ok := CollideSphereSphere(NewSphere(Vec4{}, 1), NewSphere(Vec4{2, 0, 0, 0}, 1)); ok {
			t.Error("Touching spheres should not collide")
		}
	})

	t.Run("coincident_centers", func(t *testing.T) {
		if _, ok := CollideSphereSphere(NewSphere(Vec4{}, 1), NewSphere(Vec4{}, 2)); ok {
			t.Error("Coincident centers have no separating direction")
		}
	})
}

func TestCollide_Dispatch(t *testing.T) {
	sphere := NewSphere(Vec4{0, 1.3, 0, 0}, 0.5)
	box := NewAABB(splat(-1), splat(1))
	floor := Floor(0)
	boxOnFloor := NewAABBFromCenter(Vec4{0, 0.4, 0, 0}, splat(0.5))
	sphereOnFloor := NewSphere(Vec4{0, 0.4, 0, 0}, 0.5)

	t.Run("reversed_pairs_flip_normal", func(t *testing.T) {
		pairs := []struct {
			name string
			a, b Collider
		}{
			{"sphere_aabb", sphere, box},
			{"sphere_plane", sphereOnFloor, floor},
			{"aabb_plane", boxOnFloor, floor},
		}
		for _, p := range pairs {
			forward, ok := Collide(p.a, p.b)
			if !ok {
				t.Fatalf("%s: expected forward contact", p.name)
			}
			backward, ok := Collide(p.b, p.a)
			if !ok {
				t.Fatalf("%s: expected reversed contact", p.name)
			}
			if backward.Normal != vecmath.Negate(forward.Normal) {
				t.Errorf("%s: reversed normal %v, expected %v", p.name, backward.Normal, vecmath.Negate(forward.Normal))
			}
			if backward.Penetration != forward.Penetration {
				t.Errorf("%s: penetration changed under reversal: %v vs %v", p.name, backward.Penetration, forward.Penetration)
			}
		}
	})

	t.Run("same_kind_pairs", func(t *testing.T) {
		if _, ok := Collide(box, NewAABBFromCenter(Vec4{1.5, 0, 0, 0}, splat(1))); !ok {
			t.Error("Expected box-box contact through Collide")
		}
		if _, ok := Collide(sphere, NewSphere(Vec4{0, 1.8, 0, 0}, 0.5)); !ok {
			t.Error("Expected sphere-sphere contact through Collide")
		}
	})

	t.Run("plane_plane_never_collides", func(t *testing.T) {
		if _, ok := Collide(floor, NewPlane(Vec4{0, -1, 0, 0}, 0)); ok {
			t.Error("Planes should never collide")
		}
	})

	t.Run("nil_collider", func(t *testing.T) {
		if _, ok := Collide(nil, sphere); ok {
			t.Error("nil collider should not collide")
		}
		if _, ok := Collide(sphere, nil); ok {
			t.Error("nil collider should not collide")
		}
	})
}

// splat is shorthand for a vector with equal components.
func splat(s float32) Vec4 {
	return vecmath.Splat(s)
}
