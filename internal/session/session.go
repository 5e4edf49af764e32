// Package session holds the process-scoped state a host window works
// against: the current catalog and where it came from. It replaces the
// ambient globals of the original tool with explicit open/close.
package session

import (
	"fmt"
	"sync/atomic"

	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/logger"
)

var log = logger.ForComponent("session")

// Session is the state between opening and closing the tool. The
// catalog pointer is swapped atomically on reload, so a match already
// holding the old snapshot keeps a consistent view.
type Session struct {
	cat         atomic.Pointer[catalog.Catalog]
	catalogPath atomic.Pointer[string]
	closed      atomic.Bool
}

// Open starts a session. A catalog path is optional; LoadCatalog may be
// called later.
func Open(catalogPath string) (*Session, error) {
	s := &Session{}
	empty := ""
	s.catalogPath.Store(&empty)
	if catalogPath != "" {
		if err := s.LoadCatalog(catalogPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadCatalog loads (or reloads) the catalog from path and swaps it in.
// On failure the previous catalog stays active.
func (s *Session) LoadCatalog(path string) error {
	if s.closed.Load() {
		return fmt.Errorf("session: closed")
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	s.cat.Store(cat)
	s.catalogPath.Store(&path)
	log.Info("catalog loaded", "path", path, "regions", cat.Len())
	return nil
}

// Reload re-reads the current catalog file.
func (s *Session) Reload() error {
	path := s.CatalogPath()
	if path == "" {
		return fmt.Errorf("session: no catalog loaded")
	}
	return s.LoadCatalog(path)
}

// Catalog returns the current catalog snapshot, or nil before any load.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat.Load()
}

// CatalogPath returns the path of the current catalog.
func (s *Session) CatalogPath() string {
	return *s.catalogPath.Load()
}

// TexturePath returns the atlas texture path of the current catalog.
func (s *Session) TexturePath() string {
	if cat := s.cat.Load(); cat != nil {
		return cat.TexturePath()
	}
	return ""
}

// Close tears the session down. Further loads fail; the last catalog
// snapshot stays readable for requests already in flight.
func (s *Session) Close() {
	s.closed.Store(true)
}
