package main

import (
	"image"
	"log"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/gocpu/raster"
)

// loadTextureFile decodes a BMP fixture from disk and converts it to a
// Texture, scaling each dimension up to the next power of two (via
// golang.org/x/image/draw) so the result is mipmap-eligible.
func loadTextureFile(path string) *raster.Texture {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("rastercli: open texture %s: %v", path, err)
	}
	defer f.Close()

	src, err := bmp.Decode(f)
	if err != nil {
		log.Fatalf("rastercli: decode texture %s: %v", path, err)
	}

	bounds := src.Bounds()
	w := nextPowerOfTwo(bounds.Dx())
	h := nextPowerOfTwo(bounds.Dy())

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	tex, err := raster.FromImage(dst)
	if err != nil {
		log.Fatalf("rastercli: build texture from %s: %v", path, err)
	}
	return tex
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p *= 2
	}
	return p
}
