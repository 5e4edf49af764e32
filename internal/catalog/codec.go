package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"uv-hotspotter/internal/uvmath"
)

// fileCatalog is the on-disk schema. Rectangle bounds are stored as
// [u_min, v_min, u_max, v_max] in full float64 precision.
type fileCatalog struct {
	Atlas       string       `json:"atlas"`
	TexturePath string       `json:"texture_path,omitempty"`
	Regions     []fileRegion `json:"regions"`
}

type fileRegion struct {
	ID          string     `json:"id"`
	Rect        [4]float64 `json:"rect"`
	Rotations   []int      `json:"rotations,omitempty"`
	MirrorU     bool       `json:"mirror_u,omitempty"`
	MirrorV     bool       `json:"mirror_v,omitempty"`
	Category    string     `json:"category,omitempty"`
	AltGroup    string     `json:"alt_group,omitempty"`
	TexelLocked bool       `json:"texel_locked,omitempty"`
}

// Load reads a catalog definition file. Both the current schema and the
// legacy Maya-exported shape (top-level "hotspot_N" entries) are
// accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Parse decodes a catalog definition from memory.
func Parse(data []byte) (*Catalog, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}
	if _, ok := probe["regions"]; ok {
		return parseCurrent(data)
	}
	return parseLegacy(probe)
}

func parseCurrent(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}
	regions := make([]Region, len(fc.Regions))
	for i, fr := range fc.Regions {
		rots := make([]uvmath.Rotation, len(fr.Rotations))
		for j, d := range fr.Rotations {
			rots[j] = uvmath.Rotation(d)
		}
		regions[i] = Region{
			ID:          fr.ID,
			Rect:        uvmath.R(fr.Rect[0], fr.Rect[1], fr.Rect[2], fr.Rect[3]),
			Rotations:   rots,
			MirrorU:     fr.MirrorU,
			MirrorV:     fr.MirrorV,
			Category:    fr.Category,
			AltGroup:    fr.AltGroup,
			TexelLocked: fr.TexelLocked,
		}
	}
	return New(fc.Atlas, fc.TexturePath, regions)
}

// legacyEntry matches the Maya exporter's per-hotspot shape.
type legacyEntry struct {
	Face     string       `json:"face"`
	UVCoords [][2]float64 `json:"uv_coords"`
}

// parseLegacy handles the original exporter format: a flat object with
// an optional "texture_path" string and "hotspot_N" entries whose
// uv_coords hold the four rectangle corners.
func parseLegacy(probe map[string]json.RawMessage) (*Catalog, error) {
	var texturePath string
	if raw, ok := probe["texture_path"]; ok {
		if err := json.Unmarshal(raw, &texturePath); err != nil {
			return nil, &ParseError{Detail: "texture_path is not a string"}
		}
	}

	var keys []string
	for k := range probe {
		if strings.HasPrefix(k, "hotspot_") {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, &ParseError{Detail: "no regions and no hotspot_* entries"}
	}
	// hotspot_2 sorts before hotspot_10
	sort.Slice(keys, func(i, j int) bool {
		ni, ei := legacyIndex(keys[i])
		nj, ej := legacyIndex(keys[j])
		if ei == nil && ej == nil && ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})

	regions := make([]Region, 0, len(keys))
	for _, k := range keys {
		var e legacyEntry
		if err := json.Unmarshal(probe[k], &e); err != nil {
			return nil, &ParseError{Detail: fmt.Sprintf("entry %q: %v", k, err)}
		}
		pts := make([]uvmath.Vec2, len(e.UVCoords))
		for i, p := range e.UVCoords {
			pts[i] = uvmath.Vec2{p[0], p[1]}
		}
		rect, ok := uvmath.PerfectRect(pts)
		if !ok {
			return nil, &ParseError{Detail: fmt.Sprintf("entry %q: uv_coords do not form a rectangle", k)}
		}
		regions = append(regions, Region{ID: k, Rect: rect})
	}
	return New("", texturePath, regions)
}

func legacyIndex(key string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, "hotspot_"))
}

// Marshal serializes the catalog in the current schema. Bounds survive a
// load/save round trip bit-exactly.
func (c *Catalog) Marshal() ([]byte, error) {
	fc := fileCatalog{
		Atlas:       c.atlas,
		TexturePath: c.texturePath,
		Regions:     make([]fileRegion, len(c.regions)),
	}
	for i, r := range c.regions {
		rots := make([]int, len(r.Rotations))
		for j, rot := range r.Rotations {
			rots[j] = int(rot)
		}
		fc.Regions[i] = fileRegion{
			ID:          r.ID,
			Rect:        [4]float64{r.Rect.Min[0], r.Rect.Min[1], r.Rect.Max[0], r.Rect.Max[1]},
			Rotations:   rots,
			MirrorU:     r.MirrorU,
			MirrorV:     r.MirrorV,
			Category:    r.Category,
			AltGroup:    r.AltGroup,
			TexelLocked: r.TexelLocked,
		}
	}
	return json.MarshalIndent(&fc, "", "  ")
}

// Save writes the catalog to path in the current schema.
func (c *Catalog) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("catalog: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	return nil
}
