package uvmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2CleanZero(t *testing.T) {
	v := Vec2{math.Copysign(0, -1), 0.5}.CleanZero()
	assert.False(t, math.Signbit(v[0]))
	assert.Equal(t, Vec2{0, 0.5}, v)
}

func TestRectOf(t *testing.T) {
	r := RectOf([]Vec2{{0.5, 0.1}, {0.1, 0.9}, {0.3, 0.3}})
	assert.Equal(t, R(0.1, 0.1, 0.5, 0.9), r)
	assert.InDelta(t, 0.4, r.Width(), 1e-12)
	assert.InDelta(t, 0.8, r.Height(), 1e-12)
	assert.Equal(t, Vec2{0.3, 0.5}, r.Center())
	assert.InDelta(t, 0.5, r.Aspect(), 1e-12)

	assert.Equal(t, Rect{}, RectOf(nil))
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 0.5, 0.5)
	assert.True(t, a.Overlaps(R(0.4, 0.4, 0.6, 0.6)))
	// Shared edge is not overlap.
	assert.False(t, a.Overlaps(R(0.5, 0, 1, 0.5)))
	assert.False(t, a.Overlaps(R(0.6, 0.6, 1, 1)))
}

func TestRotationApply(t *testing.T) {
	v := Vec2{1, 0}
	assert.Equal(t, Vec2{1, 0}, Rot0.Apply(v))
	assert.Equal(t, Vec2{0, 1}, Rot90.Apply(v))
	assert.Equal(t, Vec2{-1, 0}, Rot180.Apply(v))
	assert.Equal(t, Vec2{0, -1}, Rot270.Apply(v))

	assert.True(t, Rot90.SwapsAxes())
	assert.True(t, Rot270.SwapsAxes())
	assert.False(t, Rot0.SwapsAxes())
	assert.False(t, Rot180.SwapsAxes())
	assert.False(t, Rotation(45).Valid())
}

func TestPerfectRect(t *testing.T) {
	rect, ok := PerfectRect([]Vec2{{0, 0}, {0.5, 0}, {0.5, 0.25}, {0, 0.25}})
	assert.True(t, ok)
	assert.Equal(t, R(0, 0, 0.5, 0.25), rect)

	// Corner order does not matter.
	_, ok = PerfectRect([]Vec2{{0.5, 0.25}, {0, 0}, {0, 0.25}, {0.5, 0}})
	assert.True(t, ok)

	_, ok = PerfectRect([]Vec2{{0, 0}, {0.5, 0.01}, {0.5, 0.25}, {0, 0.25}})
	assert.False(t, ok)

	_, ok = PerfectRect([]Vec2{{0, 0}, {0.5, 0}, {0.5, 0.25}})
	assert.False(t, ok)

	// Sub-1e-4 jitter is absorbed by the rounding the exporter used.
	rect, ok = PerfectRect([]Vec2{{0, 0}, {0.5, 0.00001}, {0.5, 0.25}, {0, 0.25}})
	assert.True(t, ok)
	assert.InDelta(t, 0, rect.Min[1], 1e-12)
}

func TestPlacementApply(t *testing.T) {
	p := Placement{ScaleU: 0.5, ScaleV: 0.5, Translate: Vec2{1, 1}}
	pivot := Vec2{2, 2}
	// Pivot maps to pivot + translate.
	assert.Equal(t, Vec2{3, 3}, p.Apply(pivot, pivot))
	assert.Equal(t, Vec2{2.5, 3}, p.Apply(Vec2{1, 2}, pivot))
	assert.True(t, p.Uniform())

	rot := Placement{Rotation: Rot90, ScaleU: 1, ScaleV: 2}
	got := rot.Apply(Vec2{1, 0}, Vec2{0, 0})
	assert.Equal(t, Vec2{0, 2}, got)
	assert.False(t, rot.Uniform())

	mir := Placement{MirrorU: true, ScaleU: 1, ScaleV: 1}
	assert.Equal(t, Vec2{-1, 0}, mir.Apply(Vec2{1, 0}, Vec2{0, 0}))
}
