package match

import (
	"errors"
	"math"

	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/uvmath"
)

var (
	// ErrNoMatch means no region variant scored within tolerance.
	ErrNoMatch = errors.New("match: no region within tolerance")
	// ErrDegenerateShell means the shell has near-zero width or height.
	ErrDegenerateShell = errors.New("match: degenerate shell bounds")
)

// DegenerateEps is the extent below which a shell cannot be matched.
const DegenerateEps = 1e-9

// DefaultTolerance is the maximum accepted aspect mismatch, measured as
// |ln(shellAspect / regionAspect)|.
const DefaultTolerance = 0.05

// FitMode selects how the shell is scaled into the matched region.
type FitMode int

const (
	// FitStretch scales each axis independently so the shell bounding
	// box lands exactly on the region rectangle.
	FitStretch FitMode = iota
	// FitUniform applies a single scale factor taken from the width
	// ratio of the rotated shell to the region; the height error is
	// bounded by the tolerance.
	FitUniform
)

// ShellBounds is the axis-aligned bounding box of a UV shell, derived
// fresh from host geometry for each match request.
type ShellBounds struct {
	Rect uvmath.Rect
}

// BoundsOf computes ShellBounds from raw UV coordinates, normalizing
// negative zeros first.
func BoundsOf(uvs []uvmath.Vec2) ShellBounds {
	return ShellBounds{Rect: uvmath.RectOf(uvs)}
}

// Aspect returns the shell's width/height ratio.
func (s ShellBounds) Aspect() float64 {
	return s.Rect.Aspect()
}

// Result is the outcome of one match: the chosen region, the transform
// that places the shell onto it, and the fit score (0 = exact aspect).
type Result struct {
	RegionID  string
	Placement uvmath.Placement
	Score     float64
}

// Options narrows a match request.
type Options struct {
	// Category restricts candidates to regions with this tag.
	// Empty means all regions.
	Category string
}

// Engine scores hotspot regions against shell bounds. The zero value is
// not usable; call NewEngine.
type Engine struct {
	Tolerance float64
	Fit       FitMode
}

// NewEngine returns an engine with the default tolerance and stretch fit.
func NewEngine() *Engine {
	return &Engine{Tolerance: DefaultTolerance, Fit: FitStretch}
}

// variant is one candidate placement under consideration.
type variant struct {
	regionIdx int
	rotation  uvmath.Rotation
	mirrorU   bool
	mirrorV   bool
	score     float64
}

// betterThan orders surviving variants: lower score wins; ties prefer
// 0° rotation, then no mirror, then earlier catalog insertion order.
func (v variant) betterThan(o variant) bool {
	if v.score != o.score {
		return v.score < o.score
	}
	if (v.rotation == uvmath.Rot0) != (o.rotation == uvmath.Rot0) {
		return v.rotation == uvmath.Rot0
	}
	if v.rotation != o.rotation {
		return v.rotation < o.rotation
	}
	vm, om := v.mirrorCount(), o.mirrorCount()
	if vm != om {
		return vm < om
	}
	return v.regionIdx < o.regionIdx
}

func (v variant) mirrorCount() int {
	n := 0
	if v.mirrorU {
		n++
	}
	if v.mirrorV {
		n++
	}
	return n
}

// FindBestMatch selects the best-fitting region variant for the shell.
// It is deterministic: identical inputs always produce the same Result.
func (e *Engine) FindBestMatch(shell ShellBounds, cat *catalog.Catalog, opts Options) (*Result, error) {
	if shell.Rect.IsDegenerate(DegenerateEps) {
		return nil, ErrDegenerateShell
	}

	candidates := cat.ListByCategory(opts.Category)
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	shellAspect := shell.Aspect()
	var best variant
	found := false

	for idx, region := range candidates {
		regionLog := math.Log(region.Aspect())
		for _, rot := range uvmath.Rotations {
			if !region.AllowsRotation(rot) {
				continue
			}
			// Under a quarter-turn the shell presents its inverse aspect.
			shellLog := math.Log(shellAspect)
			if rot.SwapsAxes() {
				shellLog = -shellLog
			}
			score := math.Abs(shellLog - regionLog)
			if score > e.Tolerance {
				continue
			}
			for _, m := range mirrorVariants(region) {
				v := variant{
					regionIdx: idx,
					rotation:  rot,
					mirrorU:   m[0],
					mirrorV:   m[1],
					score:     score,
				}
				if !found || v.betterThan(best) {
					best = v
					found = true
				}
			}
		}
	}

	if !found {
		return nil, ErrNoMatch
	}

	region := candidates[best.regionIdx]
	return &Result{
		RegionID:  region.ID,
		Placement: e.placement(shell, region, best),
		Score:     best.score,
	}, nil
}

// mirrorVariants lists the mirror combinations a region allows, the
// preferred (unmirrored) one first. Mirroring never changes the fit
// score, so these only matter for explicitly requested variants.
func mirrorVariants(r catalog.Region) [][2]bool {
	out := [][2]bool{{false, false}}
	if r.MirrorU {
		out = append(out, [2]bool{true, false})
	}
	if r.MirrorV {
		out = append(out, [2]bool{false, true})
	}
	return out
}

func (e *Engine) placement(shell ShellBounds, region catalog.Region, v variant) uvmath.Placement {
	sw, sh := shell.Rect.Width(), shell.Rect.Height()
	if v.rotation.SwapsAxes() {
		sw, sh = sh, sw
	}
	rw, rh := region.Rect.Width(), region.Rect.Height()

	var scaleU, scaleV float64
	switch e.Fit {
	case FitUniform:
		scaleU = rw / sw
		scaleV = scaleU
	default:
		scaleU = rw / sw
		scaleV = rh / sh
	}

	return uvmath.Placement{
		Rotation:  v.rotation,
		MirrorU:   v.mirrorU,
		MirrorV:   v.mirrorV,
		ScaleU:    scaleU,
		ScaleV:    scaleV,
		Translate: region.Rect.Center().Sub(shell.Rect.Center()),
	}
}
