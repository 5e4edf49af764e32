package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uv-hotspotter/internal/uvmath"
)

const sample = `# two quads, separate uv shells
mtllib trim.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vt 2 0
vt 3 0
vt 3 2
vt 2 2
f 1/1 2/2 3/3 4/4
f 1/5 2/6 3/7 4/8
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, m.UVs(), 8)
	assert.Equal(t, uvmath.Vec2{3, 2}, m.UVs()[6])
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, []uvmath.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, m.FaceUVs(0))
}

func TestShells(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	shells := m.Shells()
	require.Len(t, shells, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, shells[0])
	assert.Equal(t, []int{4, 5, 6, 7}, shells[1])
}

func TestParseNegativeAndBareIndices(t *testing.T) {
	m, err := Parse(strings.NewReader(`
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.5
vt 0.75 0.5
vt 0.5 0.75
f -3/-3 -2/-2 -1/-1
f 1 2 3
`))
	require.NoError(t, err)
	// The face without vt references is dropped.
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, []int{0, 1, 2}, m.Shells()[0])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("vt 0.5\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("vt a b\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("vt 0 0\nf 1/9\n"))
	assert.Error(t, err)
}

func TestSaveRewritesOnlyUVLines(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	m.SetUV(0, uvmath.Vec2{0.123456789012345, 0.25})

	path := filepath.Join(t.TempDir(), "out.obj")
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "# two quads, separate uv shells", lines[0])
	assert.Equal(t, "mtllib trim.mtl", lines[1])
	assert.Equal(t, "vt 0.123456789012345 0.25", lines[6])
	assert.Equal(t, "f 1/1 2/2 3/3 4/4", lines[14])

	// Full precision survives a reload.
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uvmath.Vec2{0.123456789012345, 0.25}, back.UVs()[0])
}

func TestHostRoundTrip(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	host := NewHost(m)
	shells, err := host.SelectedShells()
	require.NoError(t, err)
	require.Len(t, shells, 2)
	assert.Equal(t, "shell_0", shells[0].Ref)
	require.Len(t, shells[1].UVs, 4)

	moved := []uvmath.Vec2{{0.1, 0.1}, {0.2, 0.1}, {0.2, 0.2}, {0.1, 0.2}}
	require.NoError(t, host.WriteUVs("shell_1", moved))
	assert.Equal(t, uvmath.Vec2{0.1, 0.1}, m.UVs()[4])
	assert.Equal(t, uvmath.Vec2{0.1, 0.2}, m.UVs()[7])
}

func TestHostRefusesBadWrites(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	host := NewHost(m)

	err = host.WriteUVs("shell_9", nil)
	assert.Error(t, err)

	err = host.WriteUVs("shell_0", []uvmath.Vec2{{0, 0}})
	assert.Error(t, err)
	// Nothing was written.
	assert.Equal(t, uvmath.Vec2{0, 0}, m.UVs()[0])
}
