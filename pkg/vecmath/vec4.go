// Package vecmath adapts mgl32.Vec4 into the 4D vector algebra used by the
// physics core. mgl32 supplies add/sub/scale/dot/length; this package adds the
// component-wise helpers and a normalize that never produces NaN.
package vecmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec4 is a 4D vector (x, y, z, w). Y is always "up".
type Vec4 = mgl32.Vec4

// Epsilon is the length below which a vector is treated as zero.
const Epsilon float32 = 1e-6

// Axis unit vectors.
var (
	AxisX = Vec4{1, 0, 0, 0}
	AxisY = Vec4{0, 1, 0, 0}
	AxisZ = Vec4{0, 0, 1, 0}
	AxisW = Vec4{0, 0, 0, 1}

	// Up is the direction gravity opposes.
	Up = AxisY
)

// New builds a vector from its components.
func New(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Splat returns a vector with every component set to s.
func Splat(s float32) Vec4 {
	return Vec4{s, s, s, s}
}

// Axis returns the unit vector for component i (0=X ... 3=W).
func Axis(i int) Vec4 {
	var v Vec4
	v[i] = 1
	return v
}

// LengthSquared returns v·v.
func LengthSquared(v Vec4) float32 {
	return v.Dot(v)
}

// Normalize returns a unit vector in the direction of v, or the zero vector
// when v is too short to have a direction.
func Normalize(v Vec4) Vec4 {
	length := v.Len()
	if length < Epsilon {
		return Vec4{}
	}
	return v.Mul(1 / length)
}

// Negate returns -v.
func Negate(v Vec4) Vec4 {
	return Vec4{-v[0], -v[1], -v[2], -v[3]}
}

// MulElem returns the component-wise product of a and b.
func MulElem(a, b Vec4) Vec4 {
	return Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Min returns the component-wise minimum.
func Min(a, b Vec4) Vec4 {
	return Vec4{
		math32.Min(a[0], b[0]),
		math32.Min(a[1], b[1]),
		math32.Min(a[2], b[2]),
		math32.Min(a[3], b[3]),
	}
}

// Max returns the component-wise maximum.
func Max(a, b Vec4) Vec4 {
	return Vec4{
		math32.Max(a[0], b[0]),
		math32.Max(a[1], b[1]),
		math32.Max(a[2], b[2]),
		math32.Max(a[3], b[3]),
	}
}

// Clamp limits each component of v to [lo, hi].
func Clamp(v, lo, hi Vec4) Vec4 {
	return Min(Max(v, lo), hi)
}

// Sign maps each component to -1, 0 or +1.
func Sign(v Vec4) Vec4 {
	var out Vec4
	for i, c := range v {
		switch {
		case c > 0:
			out[i] = 1
		case c < 0:
			out[i] = -1
		}
	}
	return out
}

// Abs returns the component-wise absolute value.
func Abs(v Vec4) Vec4 {
	return Vec4{math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2]), math32.Abs(v[3])}
}

// Distance returns |a-b|.
func Distance(a, b Vec4) float32 {
	return a.Sub(b).Len()
}

// ApproxEqual reports whether every component of a and b differs by at most tolerance.
func ApproxEqual(a, b Vec4, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// Horizontal returns v with its Y component removed.
func Horizontal(v Vec4) Vec4 {
	return Vec4{v[0], 0, v[2], v[3]}
}
