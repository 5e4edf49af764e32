package main

import (
	"flag"
	"fmt"
	"os"

	"uv-hotspotter/internal/catalog"
)

func main() {
	verbose := flag.Bool("v", false, "Print every region")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hotspotcheck [-v] <catalog.json>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	cat, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog: %s\n", path)
	if cat.Atlas() != "" {
		fmt.Printf("Atlas: %s\n", cat.Atlas())
	}
	if cat.TexturePath() != "" {
		fmt.Printf("Texture: %s\n", cat.TexturePath())
	}
	fmt.Printf("Regions: %d\n", cat.Len())

	for _, tag := range cat.Categories() {
		fmt.Printf("  category %q: %d\n", tag, len(cat.ListByCategory(tag)))
	}

	if *verbose {
		fmt.Println("------------------------------------------------------------")
		for _, r := range cat.Regions() {
			fmt.Printf("  %-24s rect=(%.4f,%.4f,%.4f,%.4f) aspect=%.3f",
				r.ID, r.Rect.Min[0], r.Rect.Min[1], r.Rect.Max[0], r.Rect.Max[1], r.Aspect())
			if len(r.Rotations) > 0 {
				fmt.Printf(" rot=%v", r.Rotations)
			}
			if r.MirrorU || r.MirrorV {
				fmt.Printf(" mirror=%v/%v", r.MirrorU, r.MirrorV)
			}
			if r.Category != "" {
				fmt.Printf(" [%s]", r.Category)
			}
			fmt.Println()
		}
	}

	fmt.Println("OK")
}
