package bridge

import (
	"errors"

	"github.com/sourcegraph/jsonrpc2"

	"uv-hotspotter/internal/apply"
	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/match"
	"uv-hotspotter/internal/uvmath"
)

// Wire error codes, 1000-range to stay clear of JSON-RPC reserved codes.
// The host-side panel maps these to its own dialogs.
const (
	CodeParse      = 1001
	CodeValidation = 1002
	CodeNoMatch    = 1003
	CodeDegenerate = 1004
	CodeHostEdit   = 1005
	CodeNoSession  = 1006
	CodeBadRequest = 1007
)

// rpcError wraps an engine error with its wire code. Engine messages
// cross unmodified; presentation is the host's job.
func rpcError(err error) *jsonrpc2.Error {
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	code := int64(jsonrpc2.CodeInternalError)
	var parseErr *catalog.ParseError
	var valErr *catalog.ValidationError
	switch {
	case errors.As(err, &parseErr):
		code = CodeParse
	case errors.As(err, &valErr):
		code = CodeValidation
	case errors.Is(err, match.ErrNoMatch):
		code = CodeNoMatch
	case errors.Is(err, match.ErrDegenerateShell):
		code = CodeDegenerate
	case errors.Is(err, apply.ErrHostEdit):
		code = CodeHostEdit
	}
	return &jsonrpc2.Error{Code: code, Message: err.Error()}
}

type openParams struct {
	Catalog string `json:"catalog,omitempty"`
	Watch   bool   `json:"watch,omitempty"`
}

type sessionInfo struct {
	Atlas       string `json:"atlas"`
	TexturePath string `json:"texture_path,omitempty"`
	Regions     int    `json:"regions"`
	Watching    bool   `json:"watching,omitempty"`
}

type loadParams struct {
	Path string `json:"path"`
}

type listParams struct {
	Category string `json:"category,omitempty"`
}

type wireRegion struct {
	ID        string     `json:"id"`
	Rect      [4]float64 `json:"rect"`
	Rotations []int      `json:"rotations,omitempty"`
	MirrorU   bool       `json:"mirror_u,omitempty"`
	MirrorV   bool       `json:"mirror_v,omitempty"`
	Category  string     `json:"category,omitempty"`
}

func toWireRegion(r catalog.Region) wireRegion {
	rots := make([]int, len(r.Rotations))
	for i, rot := range r.Rotations {
		rots[i] = int(rot)
	}
	return wireRegion{
		ID:        r.ID,
		Rect:      [4]float64{r.Rect.Min[0], r.Rect.Min[1], r.Rect.Max[0], r.Rect.Max[1]},
		Rotations: rots,
		MirrorU:   r.MirrorU,
		MirrorV:   r.MirrorV,
		Category:  r.Category,
	}
}

type matchParams struct {
	UVs      [][2]float64 `json:"uvs"`
	Category string       `json:"category,omitempty"`
}

func (p matchParams) vecs() []uvmath.Vec2 {
	out := make([]uvmath.Vec2, len(p.UVs))
	for i, uv := range p.UVs {
		out[i] = uvmath.Vec2{uv[0], uv[1]}
	}
	return out
}

type matchResult struct {
	Region    string           `json:"region"`
	Score     float64          `json:"score"`
	Placement uvmath.Placement `json:"placement"`
	UVs       [][2]float64     `json:"uvs,omitempty"`
}

type previewParams struct {
	Output string `json:"output"`
	Size   int    `json:"size,omitempty"`
}
