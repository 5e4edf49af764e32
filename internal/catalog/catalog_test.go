package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uv-hotspotter/internal/uvmath"
)

func TestParseCurrent(t *testing.T) {
	data := []byte(`{
		"atlas": "trim_sheet_01",
		"texture_path": "textures/trim.png",
		"regions": [
			{"id": "trim_A", "rect": [0, 0, 0.5, 0.25], "category": "trim"},
			{"id": "trim_B", "rect": [0, 0.25, 0.5, 0.5], "rotations": [0, 90, 180, 270], "category": "trim"},
			{"id": "panel", "rect": [0.5, 0, 1, 1], "mirror_u": true}
		]
	}`)
	cat, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "trim_sheet_01", cat.Atlas())
	assert.Equal(t, "textures/trim.png", cat.TexturePath())
	assert.Equal(t, 3, cat.Len())

	r, ok := cat.Region("trim_A")
	require.True(t, ok)
	assert.Equal(t, uvmath.R(0, 0, 0.5, 0.25), r.Rect)
	assert.InDelta(t, 2.0, r.Aspect(), 1e-12)
	assert.True(t, r.AllowsRotation(uvmath.Rot0))
	assert.False(t, r.AllowsRotation(uvmath.Rot90))

	b, ok := cat.Region("trim_B")
	require.True(t, ok)
	assert.True(t, b.AllowsRotation(uvmath.Rot270))

	assert.Len(t, cat.ListByCategory("trim"), 2)
	assert.Len(t, cat.ListByCategory(""), 3)
	assert.Equal(t, []string{"trim"}, cat.Categories())

	_, ok = cat.Region("missing")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad json", `{`},
		{"no regions", `{"atlas": "a"}`},
		{"missing id", `{"regions": [{"rect": [0,0,1,1]}]}`},
		{"duplicate id", `{"regions": [
			{"id": "a", "rect": [0,0,0.5,0.5]},
			{"id": "a", "rect": [0.5,0.5,1,1]}
		]}`},
		{"out of range", `{"regions": [{"id": "a", "rect": [0,0,1.5,1]}]}`},
		{"negative", `{"regions": [{"id": "a", "rect": [-0.1,0,0.5,0.5]}]}`},
		{"zero area", `{"regions": [{"id": "a", "rect": [0.2,0.2,0.2,0.8]}]}`},
		{"inverted", `{"regions": [{"id": "a", "rect": [0.5,0.5,0.2,0.8]}]}`},
		{"bad rotation", `{"regions": [{"id": "a", "rect": [0,0,1,1], "rotations": [45]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.IsType(t, &ParseError{}, err)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	// Unmarked overlap is rejected.
	_, err := Parse([]byte(`{"regions": [
		{"id": "a", "rect": [0,0,0.5,0.5]},
		{"id": "b", "rect": [0.4,0.4,0.9,0.9]}
	]}`))
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	// Alternates of one another may overlap.
	cat, err := Parse([]byte(`{"regions": [
		{"id": "a", "rect": [0,0,0.5,0.5], "alt_group": "g"},
		{"id": "b", "rect": [0.4,0.4,0.9,0.9], "alt_group": "g"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	// Texel-locked non-square regions cannot allow quarter turns.
	_, err = Parse([]byte(`{"regions": [
		{"id": "a", "rect": [0,0,0.5,0.25], "rotations": [0,90], "texel_locked": true}
	]}`))
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	// Square texel-locked regions can.
	_, err = Parse([]byte(`{"regions": [
		{"id": "a", "rect": [0,0,0.25,0.25], "rotations": [0,90], "texel_locked": true}
	]}`))
	assert.NoError(t, err)
}

func TestParseLegacy(t *testing.T) {
	data := []byte(`{
		"texture_path": "C:/textures/trim.png",
		"hotspot_1": {"face": "pPlane1.f[0]", "uv_coords": [[0,0],[0.5,0],[0.5,0.25],[0,0.25]]},
		"hotspot_2": {"face": "pPlane1.f[1]", "uv_coords": [[0.5,0],[1,0],[1,0.25],[0.5,0.25]]},
		"hotspot_10": {"face": "pPlane1.f[2]", "uv_coords": [[0,0.5],[1,0.5],[1,1],[0,1]]}
	}`)
	cat, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "C:/textures/trim.png", cat.TexturePath())
	require.Equal(t, 3, cat.Len())

	// Numeric key order, not lexicographic.
	ids := []string{cat.Regions()[0].ID, cat.Regions()[1].ID, cat.Regions()[2].ID}
	assert.Equal(t, []string{"hotspot_1", "hotspot_2", "hotspot_10"}, ids)

	r, _ := cat.Region("hotspot_1")
	assert.Equal(t, uvmath.R(0, 0, 0.5, 0.25), r.Rect)

	_, err = Parse([]byte(`{
		"hotspot_1": {"uv_coords": [[0,0],[0.5,0.1],[0.5,0.25],[0,0.25]]}
	}`))
	require.Error(t, err)
	assert.IsType(t, &ParseError{}, err)
}

func TestRoundTrip(t *testing.T) {
	cat, err := Parse([]byte(`{
		"atlas": "a1",
		"regions": [
			{"id": "r1", "rect": [0.123456789, 0.01, 0.5, 0.25000001], "rotations": [0, 180], "category": "trim"},
			{"id": "r2", "rect": [0.5, 0.5, 0.999999, 1], "mirror_v": true}
		]
	}`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cat.json")
	require.NoError(t, cat.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cat.Len(), loaded.Len())
	for i, want := range cat.Regions() {
		got := loaded.Regions()[i]
		assert.Equal(t, want.ID, got.ID)
		assert.True(t, got.Rect.NearEqual(want.Rect, 1e-6))
		assert.Equal(t, want.Rotations, got.Rotations)
		assert.Equal(t, want.MirrorV, got.MirrorV)
		assert.Equal(t, want.Category, got.Category)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
