package uvmath

// Rotation is a quarter-turn rotation in degrees, counter-clockwise.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Rotations lists all quarter-turn rotations in tie-break preference order.
var Rotations = [4]Rotation{Rot0, Rot90, Rot180, Rot270}

func (r Rotation) Valid() bool {
	switch r {
	case Rot0, Rot90, Rot180, Rot270:
		return true
	}
	return false
}

// SwapsAxes reports whether the rotation exchanges the U and V extents
// of an axis-aligned box.
func (r Rotation) SwapsAxes() bool {
	return r == Rot90 || r == Rot270
}

// Apply rotates v about the origin.
func (r Rotation) Apply(v Vec2) Vec2 {
	switch r {
	case Rot90:
		return Vec2{-v[1], v[0]}
	case Rot180:
		return Vec2{-v[0], -v[1]}
	case Rot270:
		return Vec2{v[1], -v[0]}
	}
	return v
}

// Placement is the affine transform that maps a UV shell onto a hotspot
// region: mirror, then rotate, then scale, all about the shell center,
// then translate. ScaleU/ScaleV are expressed in the rotated frame; they
// are equal for a uniform fit.
type Placement struct {
	Rotation  Rotation `json:"rotation"`
	MirrorU   bool     `json:"mirror_u,omitempty"`
	MirrorV   bool     `json:"mirror_v,omitempty"`
	ScaleU    float64  `json:"scale_u"`
	ScaleV    float64  `json:"scale_v"`
	Translate Vec2     `json:"translate"`
}

// Apply transforms pt. pivot is the center of the shell's bounding
// rectangle at the time the placement is applied.
func (p Placement) Apply(pt, pivot Vec2) Vec2 {
	q := pt.Sub(pivot)
	if p.MirrorU {
		q[0] = -q[0]
	}
	if p.MirrorV {
		q[1] = -q[1]
	}
	q = p.Rotation.Apply(q)
	q[0] *= p.ScaleU
	q[1] *= p.ScaleV
	return q.Add(pivot).Add(p.Translate).CleanZero()
}

// Uniform reports whether the placement scales both axes equally.
func (p Placement) Uniform() bool {
	return p.ScaleU == p.ScaleV
}
