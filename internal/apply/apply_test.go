package apply

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/match"
	"uv-hotspotter/internal/uvmath"
)

func matchOnto(t *testing.T, uvs []uvmath.Vec2, region catalog.Region) *match.Result {
	t.Helper()
	cat, err := catalog.New("test", "", []catalog.Region{region})
	require.NoError(t, err)
	res, err := match.NewEngine().FindBestMatch(match.BoundsOf(uvs), cat, match.Options{})
	require.NoError(t, err)
	return res
}

func TestTransformLandsOnRegion(t *testing.T) {
	uvs := []uvmath.Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}, {1.3, 0.4}}
	region := catalog.Region{ID: "trim_A", Rect: uvmath.R(0, 0, 0.5, 0.25)}
	res := matchOnto(t, uvs, region)

	out := Transform(uvs, res)
	got := uvmath.RectOf(out)
	assert.True(t, got.NearEqual(region.Rect, 1e-9),
		"transformed bounds %v should equal region rect %v", got, region.Rect)

	// Interior points keep their relative position.
	assert.True(t, out[4].NearEqual(uvmath.Vec2{0.325, 0.1}, 1e-9))
}

func TestTransformRotated(t *testing.T) {
	// Tall shell onto a wide region via a 90° variant: the rotated
	// bounds still land exactly on the region rectangle.
	uvs := []uvmath.Vec2{{0, 0}, {1, 0}, {1, 2}, {0, 2}}
	region := catalog.Region{
		ID:        "wide",
		Rect:      uvmath.R(0.5, 0.5, 0.9, 0.7),
		Rotations: []uvmath.Rotation{uvmath.Rot0, uvmath.Rot90, uvmath.Rot180, uvmath.Rot270},
	}
	res := matchOnto(t, uvs, region)
	require.True(t, res.Placement.Rotation.SwapsAxes())

	out := Transform(uvs, res)
	assert.True(t, uvmath.RectOf(out).NearEqual(region.Rect, 1e-9))
}

func TestTransformIsPure(t *testing.T) {
	uvs := []uvmath.Vec2{{0.1, 0.1}, {0.9, 0.1}, {0.9, 0.5}, {0.1, 0.5}}
	res := matchOnto(t, uvs, catalog.Region{ID: "r", Rect: uvmath.R(0, 0, 0.5, 0.25)})

	first := Transform(uvs, res)
	second := Transform(uvs, res)
	assert.Equal(t, first, second)
	// Input is never mutated.
	assert.Equal(t, uvmath.Vec2{0.1, 0.1}, uvs[0])
}

type fakeHost struct {
	shells  []Shell
	written map[string][]uvmath.Vec2
	refuse  bool
}

func (h *fakeHost) SelectedShells() ([]Shell, error) { return h.shells, nil }

func (h *fakeHost) WriteUVs(ref string, uvs []uvmath.Vec2) error {
	if h.refuse {
		return fmt.Errorf("mesh locked: %w", ErrHostEdit)
	}
	if h.written == nil {
		h.written = make(map[string][]uvmath.Vec2)
	}
	h.written[ref] = uvs
	return nil
}

func TestApplyWritesOnce(t *testing.T) {
	uvs := []uvmath.Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}}
	res := matchOnto(t, uvs, catalog.Region{ID: "r", Rect: uvmath.R(0, 0, 0.5, 0.25)})

	host := &fakeHost{}
	shell := Shell{Ref: "s0", UVs: uvs}
	require.NoError(t, Apply(host, shell, res))
	require.Contains(t, host.written, "s0")
	assert.True(t, uvmath.RectOf(host.written["s0"]).NearEqual(uvmath.R(0, 0, 0.5, 0.25), 1e-9))
}

func TestApplyRefusedWriteLeavesShellUntouched(t *testing.T) {
	uvs := []uvmath.Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}}
	res := matchOnto(t, uvs, catalog.Region{ID: "r", Rect: uvmath.R(0, 0, 0.5, 0.25)})

	host := &fakeHost{refuse: true}
	err := Apply(host, Shell{Ref: "s0", UVs: uvs}, res)
	require.ErrorIs(t, err, ErrHostEdit)
	assert.Empty(t, host.written)
}

func TestApplyEmptyShell(t *testing.T) {
	res := &match.Result{}
	err := Apply(&fakeHost{}, Shell{Ref: "s0"}, res)
	assert.Error(t, err)
}
