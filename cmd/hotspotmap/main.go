package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uv-hotspotter/internal/catalog"
	"uv-hotspotter/internal/config"
	"uv-hotspotter/internal/layout"
	"uv-hotspotter/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	catalogPath := flag.String("catalog", "", "Path to hotspot catalog JSON")
	outputDir := flag.String("output", "", "Output directory (default: hotspot-out)")
	tolerance := flag.Float64("tolerance", 0, "Aspect tolerance in log-ratio space (default: 0.05)")
	category := flag.String("category", "", "Only match regions with this category tag")
	uniform := flag.Bool("uniform", false, "Uniform scale instead of stretch-to-fit")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: hotspotmap [flags] <obj glob> ...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		CatalogPath: *catalogPath,
		OutputDir:   *outputDir,
		Tolerance:   *tolerance,
		Category:    *category,
		UniformFit:  *uniform,
		Workers:     *workers,
	})
	logger.Init(logger.Config{Level: logger.ParseLevel(cfg.LogLevel), Format: "text", Output: os.Stderr})

	if cfg.CatalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no catalog. Use -catalog or config.json.")
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	files, err := layout.ExpandGlobs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No files to map.")
		os.Exit(0)
	}

	fmt.Printf("UV Hotspotter — batch layout\n")
	fmt.Printf("Catalog: %s (%d regions), Files: %d, Workers: %d\n",
		cfg.CatalogPath, cat.Len(), len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := layout.Run(layout.Config{
		Catalog:   cat,
		Engine:    cfg.Engine(),
		Category:  cfg.Category,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress: func(done, total int) {
			fmt.Printf("  [%d/%d]\n", done, total)
		},
	}, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed, mapped, skipped := 0, 0, 0, 0
	var errors []layout.Result
	for _, r := range results {
		mapped += r.Mapped
		skipped += r.Skipped
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Files: %d/%d, Shells mapped: %d, skipped: %d\n",
		success, len(files), mapped, skipped)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := layout.WriteManifest(manifestPath, cat.Atlas(), results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
