package uvmath

import "math"

// Vec2 is a 2-component UV coordinate (value type, stack-allocated).
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// CleanZero converts -0.0 components to +0.0 so that UV comparisons and
// serialized output are stable regardless of how the host produced them.
func (v Vec2) CleanZero() Vec2 {
	if v[0] == 0 {
		v[0] = 0
	}
	if v[1] == 0 {
		v[1] = 0
	}
	return v
}

// NearEqual reports whether both components of a and b differ by less than eps.
func (a Vec2) NearEqual(b Vec2, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps
}
