package main

import (
	"flag"
	"fmt"
	"os"

	"uv-hotspotter/internal/atlas"
	"uv-hotspotter/internal/catalog"
)

func main() {
	out := flag.String("o", "preview.webp", "Output WebP path")
	size := flag.Int("size", 1024, "Preview size in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hotspotpreview [flags] <catalog.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cat, err := catalog.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := atlas.WritePreview(cat, *size, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Preview (%d regions) → %s\n", cat.Len(), *out)
}
