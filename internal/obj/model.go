// Package obj is a minimal Wavefront OBJ adapter: it reads texture
// coordinates and faces, groups UVs into shells, and rewrites vt lines
// in place while leaving every other line of the file untouched.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"uv-hotspotter/internal/uvmath"
)

// Model is a parsed OBJ file. Geometry other than texture coordinates is
// carried through verbatim.
type Model struct {
	lines  []string
	vtLine []int // vt index → line number
	uvs    []uvmath.Vec2
	faces  [][]int // vt indices per face, -1 entries dropped
}

// Load reads an OBJ file from disk.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads an OBJ stream.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		m.lines = append(m.lines, line)

		fields := strings.Fields(line)
		if len(fields) == 0 {
			lineNo++
			continue
		}
		switch fields[0] {
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: vt needs two coordinates", lineNo+1)
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			m.uvs = append(m.uvs, uvmath.Vec2{u, v})
			m.vtLine = append(m.vtLine, lineNo)
		case "f":
			face, err := m.parseFace(fields[1:], lineNo+1)
			if err != nil {
				return nil, err
			}
			if len(face) > 0 {
				m.faces = append(m.faces, face)
			}
		}
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseFace extracts the vt indices of one face. Vertices without a
// texture coordinate are skipped.
func (m *Model) parseFace(verts []string, lineNo int) ([]int, error) {
	var face []int
	for _, v := range verts {
		parts := strings.Split(v, "/")
		if len(parts) < 2 || parts[1] == "" {
			continue
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad vt reference %q", lineNo, v)
		}
		if idx < 0 {
			idx = len(m.uvs) + idx // relative reference
		} else {
			idx-- // OBJ indices are 1-based
		}
		if idx < 0 || idx >= len(m.uvs) {
			return nil, fmt.Errorf("line %d: vt reference %q out of range", lineNo, v)
		}
		face = append(face, idx)
	}
	return face, nil
}

// UVs returns the texture coordinates in file order.
// The returned slice must not be modified; use SetUV.
func (m *Model) UVs() []uvmath.Vec2 { return m.uvs }

// FaceCount returns the number of faces carrying texture coordinates.
func (m *Model) FaceCount() int { return len(m.faces) }

// FaceUVs returns the UV corners of face i in face-vertex order.
func (m *Model) FaceUVs(i int) []uvmath.Vec2 {
	out := make([]uvmath.Vec2, len(m.faces[i]))
	for j, vt := range m.faces[i] {
		out[j] = m.uvs[vt]
	}
	return out
}

// SetUV replaces one texture coordinate.
func (m *Model) SetUV(i int, uv uvmath.Vec2) {
	m.uvs[i] = uv.CleanZero()
}

// Shells groups vt indices into connected components: coordinates used
// by the same face belong to the same shell. Components are returned
// sorted by their smallest vt index, each sorted internally, so the
// result is deterministic for a given file.
func (m *Model) Shells() [][]int {
	parent := make([]int, len(m.uvs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}
	for _, face := range m.faces {
		for _, vt := range face[1:] {
			union(face[0], vt)
		}
	}

	groups := make(map[int][]int)
	for i := range m.uvs {
		root := find(i)
		groups[root] = append(groups[root], i)
	}
	shells := make([][]int, 0, len(groups))
	for _, g := range groups {
		sort.Ints(g)
		shells = append(shells, g)
	}
	sort.Slice(shells, func(i, j int) bool { return shells[i][0] < shells[j][0] })
	return shells
}

// Save writes the model back to disk. Only vt lines differ from the
// source file; they are emitted with shortest round-trip precision.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("obj: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	vtAt := make(map[int]int, len(m.vtLine)) // line number → vt index
	for i, ln := range m.vtLine {
		vtAt[ln] = i
	}
	for ln, line := range m.lines {
		if i, ok := vtAt[ln]; ok {
			uv := m.uvs[i]
			fmt.Fprintf(w, "vt %s %s\n",
				strconv.FormatFloat(uv[0], 'g', -1, 64),
				strconv.FormatFloat(uv[1], 'g', -1, 64))
			continue
		}
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("obj: write %s: %w", path, err)
	}
	return nil
}
