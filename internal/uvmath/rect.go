package uvmath

import "math"

// Rect is an axis-aligned rectangle in UV space.
type Rect struct {
	Min Vec2
	Max Vec2
}

// R returns a Rect from the given min/max UV coordinates.
func R(uMin, vMin, uMax, vMax float64) Rect {
	return Rect{Vec2{uMin, vMin}, Vec2{uMax, vMax}}
}

// RectOf returns the bounding rectangle of the given points.
// The zero Rect is returned for an empty slice.
func RectOf(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].CleanZero(), pts[0].CleanZero()}
	for _, p := range pts[1:] {
		p = p.CleanZero()
		r.Min[0] = math.Min(r.Min[0], p[0])
		r.Min[1] = math.Min(r.Min[1], p[1])
		r.Max[0] = math.Max(r.Max[0], p[0])
		r.Max[1] = math.Max(r.Max[1], p[1])
	}
	return r
}

func (r Rect) Width() float64  { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float64 { return r.Max[1] - r.Min[1] }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min[0] + r.Max[0]) / 2, (r.Min[1] + r.Max[1]) / 2}
}

func (r Rect) Diagonal() float64 {
	return r.Max.Sub(r.Min).Len()
}

// Aspect returns width/height. Callers must guard against degenerate rects.
func (r Rect) Aspect() float64 {
	return r.Width() / r.Height()
}

// IsDegenerate reports whether either extent is below eps.
func (r Rect) IsDegenerate(eps float64) bool {
	return r.Width() < eps || r.Height() < eps
}

// Overlaps reports whether r and o share interior area.
// Touching edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min[0] < o.Max[0] && o.Min[0] < r.Max[0] &&
		r.Min[1] < o.Max[1] && o.Min[1] < r.Max[1]
}

// NearEqual reports whether both corners match within eps.
func (r Rect) NearEqual(o Rect, eps float64) bool {
	return r.Min.NearEqual(o.Min, eps) && r.Max.NearEqual(o.Max, eps)
}

// PerfectRect checks whether the points form an exact axis-aligned
// rectangle: four corners with exactly two distinct U values and two
// distinct V values once rounded to four decimals. It returns the
// bounding rectangle of the unrounded coordinates.
func PerfectRect(pts []Vec2) (Rect, bool) {
	if len(pts) != 4 {
		return Rect{}, false
	}
	us := map[float64]bool{}
	vs := map[float64]bool{}
	for _, p := range pts {
		p = p.CleanZero()
		us[round4(p[0])] = true
		vs[round4(p[1])] = true
	}
	if len(us) != 2 || len(vs) != 2 {
		return Rect{}, false
	}
	return RectOf(pts), true
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
