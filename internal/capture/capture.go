// Package capture builds a hotspot catalog from a reference mesh whose
// faces have been laid out as axis-aligned rectangles on the atlas.
package capture

import (
	"fmt"
	"strings"

	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/obj"
	"uv-hotspotter/internal/uvmath"
)

// FaceError reports faces whose UVs do not form perfect rectangles.
// A single bad face aborts the capture so the artist can fix the layout
// before anything is written.
type FaceError struct {
	Faces []int
}

func (e *FaceError) Error() string {
	parts := make([]string, len(e.Faces))
	for i, f := range e.Faces {
		parts[i] = fmt.Sprintf("%d", f)
	}
	return fmt.Sprintf("capture: faces not perfect rectangles: %s", strings.Join(parts, ", "))
}

// FromModel captures every textured face of the model as one hotspot
// region, keyed hotspot_1..N in face order.
func FromModel(m *obj.Model, atlas, texturePath string) (*catalog.Catalog, error) {
	if m.FaceCount() == 0 {
		return nil, fmt.Errorf("capture: model has no textured faces")
	}

	var regions []catalog.Region
	var failed []int
	for i := 0; i < m.FaceCount(); i++ {
		rect, ok := capturedRect(m, i)
		if !ok {
			failed = append(failed, i)
			continue
		}
		regions = append(regions, catalog.Region{
			ID:   fmt.Sprintf("hotspot_%d", len(regions)+1),
			Rect: rect,
		})
	}
	if len(failed) > 0 {
		return nil, &FaceError{Faces: failed}
	}
	return catalog.New(atlas, texturePath, regions)
}

func capturedRect(m *obj.Model, face int) (uvmath.Rect, bool) {
	return uvmath.PerfectRect(m.FaceUVs(face))
}
