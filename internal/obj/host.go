package obj

import (
	"fmt"

	"uv-hotspotter/internal/apply"
	"uv-hotspotter/internal/uvmath"
)

// Host adapts a Model to the apply.Host interface so file-based
// pipelines and tests exercise the same write path as a DCC host.
type Host struct {
	model  *Model
	shells map[string][]int
	order  []string
}

// NewHost exposes every shell of the model as selected.
func NewHost(m *Model) *Host {
	h := &Host{model: m, shells: make(map[string][]int)}
	for i, vts := range m.Shells() {
		ref := fmt.Sprintf("shell_%d", i)
		h.shells[ref] = vts
		h.order = append(h.order, ref)
	}
	return h
}

// SelectedShells returns every shell in deterministic file order.
func (h *Host) SelectedShells() ([]apply.Shell, error) {
	out := make([]apply.Shell, 0, len(h.order))
	for _, ref := range h.order {
		vts := h.shells[ref]
		uvs := make([]uvmath.Vec2, len(vts))
		for i, vt := range vts {
			uvs[i] = h.model.uvs[vt]
		}
		out = append(out, apply.Shell{Ref: ref, UVs: uvs})
	}
	return out, nil
}

// WriteUVs replaces the UVs of one shell. A stale reference or a
// coordinate-count mismatch refuses the whole write.
func (h *Host) WriteUVs(ref string, uvs []uvmath.Vec2) error {
	vts, ok := h.shells[ref]
	if !ok {
		return fmt.Errorf("obj: unknown shell %s: %w", ref, apply.ErrHostEdit)
	}
	if len(uvs) != len(vts) {
		return fmt.Errorf("obj: shell %s expects %d uvs, got %d: %w",
			ref, len(vts), len(uvs), apply.ErrHostEdit)
	}
	for i, vt := range vts {
		h.model.SetUV(vt, uvs[i])
	}
	return nil
}
