package catalog

import (
	"fmt"
	"math"

	"uv-hotspotter/internal/uvmath"
)

// aspectEps is the relative tolerance under which a region counts as
// square for rotation validation.
const aspectEps = 1e-4

// Region is one named hotspot rectangle on a trim-sheet atlas.
type Region struct {
	ID        string
	Rect      uvmath.Rect
	Rotations []uvmath.Rotation // allowed rotations; empty means 0° only
	MirrorU   bool              // horizontal mirror allowed
	MirrorV   bool              // vertical mirror allowed
	Category  string
	AltGroup  string // regions sharing a group may overlap
	// TexelLocked marks regions whose pixel content must keep its
	// orientation-dependent density; 90°/270° rotations are then only
	// legal on square regions.
	TexelLocked bool
}

// Aspect returns the region's width/height ratio.
func (r Region) Aspect() float64 {
	return r.Rect.Aspect()
}

// AllowsRotation reports whether rot is in the region's allowed set.
// A region with no explicit set allows only 0°.
func (r Region) AllowsRotation(rot uvmath.Rotation) bool {
	if len(r.Rotations) == 0 {
		return rot == uvmath.Rot0
	}
	for _, a := range r.Rotations {
		if a == rot {
			return true
		}
	}
	return false
}

// Catalog is an immutable ordered set of hotspot regions for one atlas.
// Reload replaces a catalog wholesale; it is never mutated in place.
type Catalog struct {
	atlas       string
	texturePath string
	regions     []Region
	byID        map[string]int
}

// New builds and validates a catalog. Structural problems return a
// *ParseError, metadata inconsistencies a *ValidationError.
func New(atlas, texturePath string, regions []Region) (*Catalog, error) {
	c := &Catalog{
		atlas:       atlas,
		texturePath: texturePath,
		regions:     make([]Region, len(regions)),
		byID:        make(map[string]int, len(regions)),
	}
	copy(c.regions, regions)

	for i, r := range c.regions {
		if r.ID == "" {
			return nil, &ParseError{Detail: fmt.Sprintf("region %d has no identifier", i)}
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, &ParseError{Detail: fmt.Sprintf("duplicate region identifier %q", r.ID)}
		}
		if err := checkRect(r); err != nil {
			return nil, err
		}
		for _, rot := range r.Rotations {
			if !rot.Valid() {
				return nil, &ParseError{Detail: fmt.Sprintf("region %q: rotation %d is not a quarter turn", r.ID, rot)}
			}
		}
		c.byID[r.ID] = i
	}

	for _, r := range c.regions {
		if err := checkRotations(r); err != nil {
			return nil, err
		}
	}
	if err := checkOverlaps(c.regions); err != nil {
		return nil, err
	}

	return c, nil
}

func checkRect(r Region) error {
	rc := r.Rect
	for _, v := range [4]float64{rc.Min[0], rc.Min[1], rc.Max[0], rc.Max[1]} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return &ParseError{Detail: fmt.Sprintf("region %q: bounds outside [0,1]", r.ID)}
		}
	}
	if rc.Min[0] >= rc.Max[0] || rc.Min[1] >= rc.Max[1] {
		return &ParseError{Detail: fmt.Sprintf("region %q: zero-area rectangle", r.ID)}
	}
	return nil
}

func checkRotations(r Region) error {
	if !r.TexelLocked {
		return nil
	}
	aspect := r.Aspect()
	if math.Abs(math.Log(aspect)) < aspectEps {
		return nil
	}
	for _, rot := range r.Rotations {
		if rot.SwapsAxes() {
			return &ValidationError{
				RegionID: r.ID,
				Detail: fmt.Sprintf("texel-locked region with aspect %.4f cannot allow %d° rotation",
					aspect, rot),
			}
		}
	}
	return nil
}

func checkOverlaps(regions []Region) error {
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]
			if !a.Rect.Overlaps(b.Rect) {
				continue
			}
			if a.AltGroup != "" && a.AltGroup == b.AltGroup {
				continue
			}
			return &ValidationError{
				RegionID: b.ID,
				Detail:   fmt.Sprintf("overlaps region %q without a shared alt group", a.ID),
			}
		}
	}
	return nil
}

// Atlas returns the texture-atlas identifier the catalog belongs to.
func (c *Catalog) Atlas() string { return c.atlas }

// TexturePath returns the atlas image path, if one was recorded.
func (c *Catalog) TexturePath() string { return c.texturePath }

// Len returns the number of regions.
func (c *Catalog) Len() int { return len(c.regions) }

// Regions returns the regions in catalog insertion order.
// The returned slice must not be modified.
func (c *Catalog) Regions() []Region { return c.regions }

// Region looks up a region by identifier.
func (c *Catalog) Region(id string) (Region, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// ListByCategory returns the regions tagged with the given category, in
// insertion order. An empty tag returns every region.
func (c *Catalog) ListByCategory(tag string) []Region {
	if tag == "" {
		return c.regions
	}
	var out []Region
	for _, r := range c.regions {
		if r.Category == tag {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct category tags in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.regions {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}
