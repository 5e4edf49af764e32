// Package layout maps every UV shell of a set of OBJ files onto the
// best-fitting hotspot region and writes the relaid files.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"uv-hotspotter/internal/apply"
	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/match"
	"uv-hotspotter/internal/obj"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Catalog   *catalog.Catalog
	Engine    *match.Engine
	Category  string
	OutputDir string
	Workers   int
	// Progress receives periodic "n of total" updates; nil disables it.
	Progress func(done, total int)
}

// ShellReport records what happened to one shell of one file.
type ShellReport struct {
	Ref    string  `json:"ref"`
	Region string  `json:"region,omitempty"`
	Score  float64 `json:"score,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Result holds the outcome of processing one file.
type Result struct {
	File    string        `json:"file"`
	Output  string        `json:"output,omitempty"`
	Shells  []ShellReport `json:"shells,omitempty"`
	Mapped  int           `json:"mapped"`
	Skipped int           `json:"skipped"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// ExpandGlobs resolves doublestar patterns (and plain paths) into a
// sorted, de-duplicated file list.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("layout: glob %q: %w", p, err)
		}
		if matches == nil {
			// Not a pattern hit; accept literal existing paths.
			if _, err := os.Stat(p); err == nil {
				matches = []string{p}
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all files using a worker pool.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					cfg.Progress(int(processed.Load()), total)
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{File: path}

	model, err := obj.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	host := obj.NewHost(model)
	shells, err := host.SelectedShells()
	if err != nil {
		res.Error = err.Error()
		return res
	}

	for _, shell := range shells {
		report := ShellReport{Ref: shell.Ref}
		m, err := cfg.Engine.FindBestMatch(
			match.BoundsOf(shell.UVs), cfg.Catalog, match.Options{Category: cfg.Category})
		if err != nil {
			// A shell no region fits is skipped, not fatal.
			report.Error = err.Error()
			res.Skipped++
			res.Shells = append(res.Shells, report)
			if !errors.Is(err, match.ErrNoMatch) && !errors.Is(err, match.ErrDegenerateShell) {
				res.Error = err.Error()
				return res
			}
			continue
		}
		if err := apply.Apply(host, shell, m); err != nil {
			res.Error = err.Error()
			return res
		}
		report.Region = m.RegionID
		report.Score = m.Score
		res.Mapped++
		res.Shells = append(res.Shells, report)
	}

	outPath := filepath.Join(cfg.OutputDir, filepath.Base(path))
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := model.Save(outPath); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = outPath
	res.Success = true
	return res
}
