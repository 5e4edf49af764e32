package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"uv-hotspotter/internal/match"
)

// Config holds all configurable paths and matching settings.
type Config struct {
	// Paths
	BaseDir     string `json:"base_dir"`
	CatalogPath string `json:"catalog"`
	TexturePath string `json:"texture"`
	OutputDir   string `json:"output_dir"`

	// Matching settings
	Tolerance  float64 `json:"tolerance"`
	UniformFit bool    `json:"uniform_fit"`
	Category   string  `json:"category"`

	// Preview settings
	PreviewSize int `json:"preview_size"`

	// Batch settings
	Workers int `json:"workers"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CatalogPath string
	TexturePath string
	OutputDir   string
	Tolerance   float64
	Category    string
	UniformFit  bool
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.CatalogPath != "" {
		c.CatalogPath = flags.CatalogPath
	}
	if flags.TexturePath != "" {
		c.TexturePath = flags.TexturePath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Tolerance > 0 {
		c.Tolerance = flags.Tolerance
	}
	if flags.Category != "" {
		c.Category = flags.Category
	}
	if flags.UniformFit {
		c.UniformFit = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.CatalogPath != "" && !filepath.IsAbs(c.CatalogPath) {
			c.CatalogPath = filepath.Join(c.BaseDir, c.CatalogPath)
		}
		if c.TexturePath != "" && !filepath.IsAbs(c.TexturePath) {
			c.TexturePath = filepath.Join(c.BaseDir, c.TexturePath)
		}
		if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "hotspot-out"
	}

	// Defaults for matching and preview settings
	if c.Tolerance <= 0 {
		c.Tolerance = match.DefaultTolerance
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 1024
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Engine builds a match engine from the resolved settings.
func (c *Config) Engine() *match.Engine {
	e := match.NewEngine()
	e.Tolerance = c.Tolerance
	if c.UniformFit {
		e.Fit = match.FitUniform
	}
	return e
}
