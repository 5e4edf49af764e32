// Package apply rewrites shell UVs with a computed placement. The host
// boundary is kept behind the Host interface so the engine never depends
// on a specific runtime; writes are all-or-nothing per shell.
package apply

import (
	"errors"
	"fmt"

	"uv-hotspotter/internal/match"
	"uv-hotspotter/internal/uvmath"
)

// ErrHostEdit marks a UV write the host refused (locked mesh, stale
// reference). Host implementations wrap their failures with it.
var ErrHostEdit = errors.New("host rejected uv edit")

// Shell is a UV shell as handed over by a host: an opaque reference the
// host can resolve back, plus the shell's UV coordinates.
type Shell struct {
	Ref string
	UVs []uvmath.Vec2
}

// Host is the narrow adapter surface a DCC integration implements.
type Host interface {
	// SelectedShells returns the shells the user currently has selected.
	SelectedShells() ([]Shell, error)
	// WriteUVs replaces the UV coordinates of the referenced shell.
	// Refused writes wrap ErrHostEdit.
	WriteUVs(ref string, uvs []uvmath.Vec2) error
}

// Transform applies the result's placement to every UV coordinate.
// The pivot is re-derived from the current bounds, so applying the same
// result from the same starting bounds always yields the same output.
func Transform(uvs []uvmath.Vec2, res *match.Result) []uvmath.Vec2 {
	pivot := uvmath.RectOf(uvs).Center()
	out := make([]uvmath.Vec2, len(uvs))
	for i, uv := range uvs {
		out[i] = res.Placement.Apply(uv.CleanZero(), pivot)
	}
	return out
}

// Apply computes the full set of transformed coordinates before asking
// the host to write anything, so a refused write leaves the shell
// untouched.
func Apply(host Host, shell Shell, res *match.Result) error {
	if len(shell.UVs) == 0 {
		return fmt.Errorf("apply: shell %s has no uvs", shell.Ref)
	}
	out := Transform(shell.UVs, res)
	if err := host.WriteUVs(shell.Ref, out); err != nil {
		return fmt.Errorf("apply: shell %s: %w", shell.Ref, err)
	}
	return nil
}
