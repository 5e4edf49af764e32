package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"uv-hotspotter/internal/capture"
	"uv-hotspotter/internal/obj"
)

func main() {
	out := flag.String("o", "hotspots.json", "Output catalog path")
	atlasID := flag.String("atlas", "", "Atlas identifier to record in the catalog")
	texture := flag.String("texture", "", "Atlas texture path to record in the catalog")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hotspotcapture [flags] <reference.obj>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	model, err := obj.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat, err := capture.FromModel(model, *atlasID, *texture)
	if err != nil {
		var faceErr *capture.FaceError
		if errors.As(err, &faceErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Every captured face must be a perfect UV rectangle.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if err := cat.Save(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Captured %d hotspots → %s\n", cat.Len(), *out)
}
