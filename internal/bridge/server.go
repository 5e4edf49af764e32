// Package bridge exposes the hotspot engine to a DCC host's thin script
// client over JSON-RPC 2.0. The host panel stays a dumb UI: every
// operation it offers maps to one method here.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"uv-hotspotter/internal/apply"
	"uv-hotspotter/internal/atlas"
	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/logger"
	"uv-hotspotter/internal/match"
	"uv-hotspotter/internal/session"
	"uv-hotspotter/internal/watcher"
)

var log = logger.ForComponent("bridge")

// Server handles bridge requests for one host connection.
type Server struct {
	engine      *match.Engine
	previewSize int

	sess  *session.Session
	watch *watcher.Watcher
}

// NewServer builds a server around a configured engine.
func NewServer(engine *match.Engine, previewSize int) *Server {
	return &Server{engine: engine, previewSize: previewSize}
}

// Handle implements jsonrpc2.Handler.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, err := s.dispatch(req)
	if req.Notif {
		return
	}
	if err != nil {
		if replyErr := conn.ReplyWithError(ctx, req.ID, rpcError(err)); replyErr != nil {
			log.Warn("reply failed", "method", req.Method, "error", replyErr)
		}
		return
	}
	if replyErr := conn.Reply(ctx, req.ID, result); replyErr != nil {
		log.Warn("reply failed", "method", req.Method, "error", replyErr)
	}
}

func (s *Server) dispatch(req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "session/open":
		return s.sessionOpen(req)
	case "session/close":
		return s.sessionClose()
	case "catalog/load":
		return s.catalogLoad(req)
	case "catalog/list":
		return s.catalogList(req)
	case "match/find":
		return s.matchFind(req, false)
	case "match/apply":
		return s.matchFind(req, true)
	case "preview/render":
		return s.previewRender(req)
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("unknown method %q", req.Method)}
}

func decode[T any](req *jsonrpc2.Request) (T, error) {
	var params T
	if req.Params == nil {
		return params, nil
	}
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return params, &jsonrpc2.Error{Code: CodeBadRequest, Message: err.Error()}
	}
	return params, nil
}

// sessionOpen is the host's "open main window" entry point.
func (s *Server) sessionOpen(req *jsonrpc2.Request) (any, error) {
	params, err := decode[openParams](req)
	if err != nil {
		return nil, err
	}
	if s.sess != nil {
		s.teardown()
	}
	sess, err := session.Open(params.Catalog)
	if err != nil {
		return nil, err
	}
	s.sess = sess

	info := sessionInfo{}
	if cat := sess.Catalog(); cat != nil {
		info.Atlas = cat.Atlas()
		info.TexturePath = cat.TexturePath()
		info.Regions = cat.Len()
		if params.Watch {
			w, err := watcher.Watch(sess, 0)
			if err != nil {
				log.Warn("catalog watch unavailable", "error", err)
			} else {
				s.watch = w
				info.Watching = true
			}
		}
	}
	log.Info("session opened", "catalog", params.Catalog)
	return info, nil
}

func (s *Server) sessionClose() (any, error) {
	s.teardown()
	log.Info("session closed")
	return map[string]bool{"closed": true}, nil
}

func (s *Server) teardown() {
	if s.watch != nil {
		s.watch.Close()
		s.watch = nil
	}
	if s.sess != nil {
		s.sess.Close()
		s.sess = nil
	}
}

func (s *Server) catalogLoad(req *jsonrpc2.Request) (any, error) {
	params, err := decode[loadParams](req)
	if err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := sess.LoadCatalog(params.Path); err != nil {
		return nil, err
	}
	cat := sess.Catalog()
	return sessionInfo{
		Atlas:       cat.Atlas(),
		TexturePath: cat.TexturePath(),
		Regions:     cat.Len(),
		Watching:    s.watch != nil,
	}, nil
}

func (s *Server) catalogList(req *jsonrpc2.Request) (any, error) {
	params, err := decode[listParams](req)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog()
	if err != nil {
		return nil, err
	}
	regions := cat.ListByCategory(params.Category)
	out := make([]wireRegion, len(regions))
	for i, r := range regions {
		out[i] = toWireRegion(r)
	}
	return out, nil
}

// matchFind serves both match/find and match/apply; the latter also
// returns the transformed coordinates for the host to write back.
func (s *Server) matchFind(req *jsonrpc2.Request, applyUVs bool) (any, error) {
	params, err := decode[matchParams](req)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog()
	if err != nil {
		return nil, err
	}
	uvs := params.vecs()
	res, err := s.engine.FindBestMatch(match.BoundsOf(uvs), cat, match.Options{Category: params.Category})
	if err != nil {
		return nil, err
	}
	out := matchResult{Region: res.RegionID, Score: res.Score, Placement: res.Placement}
	if applyUVs {
		moved := apply.Transform(uvs, res)
		out.UVs = make([][2]float64, len(moved))
		for i, uv := range moved {
			out.UVs[i] = [2]float64{uv[0], uv[1]}
		}
	}
	return out, nil
}

func (s *Server) previewRender(req *jsonrpc2.Request) (any, error) {
	params, err := decode[previewParams](req)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog()
	if err != nil {
		return nil, err
	}
	size := params.Size
	if size <= 0 {
		size = s.previewSize
	}
	if err := atlas.WritePreview(cat, size, params.Output); err != nil {
		return nil, err
	}
	return map[string]string{"output": params.Output}, nil
}

func (s *Server) session() (*session.Session, error) {
	if s.sess == nil {
		return nil, &jsonrpc2.Error{Code: CodeNoSession, Message: "no open session"}
	}
	return s.sess, nil
}

func (s *Server) catalog() (*catalog.Catalog, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	cat := sess.Catalog()
	if cat == nil {
		return nil, &jsonrpc2.Error{Code: CodeNoSession, Message: "no catalog loaded"}
	}
	return cat, nil
}
