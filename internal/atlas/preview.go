package atlas

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"uv-hotspotter/internal/catalog"
)

// palette cycles per category so regions of one category share a color.
var palette = []color.NRGBA{
	{255, 179, 0, 255},
	{0, 200, 255, 255},
	{120, 255, 120, 255},
	{255, 105, 180, 255},
	{200, 160, 255, 255},
	{255, 90, 60, 255},
}

// RenderPreview draws the catalog's region outlines over its atlas
// texture (or a checkerboard when none is recorded) and returns a
// square preview image of the given size.
func RenderPreview(cat *catalog.Catalog, size int) (*image.NRGBA, error) {
	var base *image.NRGBA
	if cat.TexturePath() != "" {
		img, err := LoadTexture(cat.TexturePath())
		if err != nil {
			return nil, err
		}
		base = scaleSquare(img, size)
	} else {
		base = Checker(size)
	}

	colors := make(map[string]color.NRGBA)
	next := 0
	colorFor := func(category string) color.NRGBA {
		c, ok := colors[category]
		if !ok {
			c = palette[next%len(palette)]
			colors[category] = c
			next++
		}
		return c
	}

	for _, r := range cat.Regions() {
		// UV space is Y-up, images are Y-down.
		x0 := int(r.Rect.Min[0] * float64(size))
		x1 := int(r.Rect.Max[0] * float64(size))
		y0 := int((1 - r.Rect.Max[1]) * float64(size))
		y1 := int((1 - r.Rect.Min[1]) * float64(size))
		outline(base, x0, y0, x1, y1, colorFor(r.Category))
	}
	return base, nil
}

// WritePreview renders the preview and encodes it as WebP.
func WritePreview(cat *catalog.Catalog, size int, path string) error {
	img, err := RenderPreview(cat, size)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlas: create %s: %w", path, err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("atlas: webp encode %s: %w", path, err)
	}
	return nil
}

func scaleSquare(src *image.NRGBA, size int) *image.NRGBA {
	if b := src.Bounds(); b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// outline draws a 2px rectangle border, clamped to the image.
func outline(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	const thick = 2
	b := img.Bounds()
	set := func(x, y int) {
		if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
			img.SetNRGBA(x, y, c)
		}
	}
	for t := 0; t < thick; t++ {
		for x := x0; x <= x1; x++ {
			set(x, y0+t)
			set(x, y1-t)
		}
		for y := y0; y <= y1; y++ {
			set(x0+t, y)
			set(x1-t, y)
		}
	}
}
