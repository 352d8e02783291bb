// Command rastercli exercises the raster package end to end: it builds a
// small scene (a vertex-colored triangle or a perspective textured quad),
// draws it through a Context into a Framebuffer, and writes the result
// as a PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gocpu/raster"
)

func main() {
	var (
		width   = flag.Int("width", 640, "framebuffer width")
		height  = flag.Int("height", 480, "framebuffer height")
		output  = flag.String("output", "rastercli.png", "output PNG path")
		scene   = flag.String("scene", "triangle", "scene to draw: triangle|quad")
		threads = flag.Int("threads", 1, "worker thread count for the draw call")
		texture = flag.String("texture", "", "BMP file to use as the quad scene's texture (defaults to a generated checkerboard)")
		verbose = flag.Bool("v", false, "log the raster package's diagnostics (configuration warnings) to stderr")
	)
	flag.Parse()

	if *verbose {
		raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx := raster.NewContext(*width, *height)
	ctx.ThreadCount(*threads)
	ctx.ClearColor(raster.White)

	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	ctx.Clear(raster.BufferColor, fb)

	switch *scene {
	case "quad":
		drawTexturedQuad(ctx, fb, *texture)
	default:
		drawColoredTriangle(ctx, fb)
	}

	if err := savePNG(*output, fb); err != nil {
		log.Fatalf("rastercli: save %s: %v", *output, err)
	}

	log.Printf("rastercli: wrote %s (%dx%d, scene=%s, threads=%d)", *output, *width, *height, *scene, *threads)
}

// savePNG exports a Framebuffer's color attachment as an RGBA PNG.
func savePNG(path string, fb *raster.Framebuffer) error {
	img := &image.RGBA{
		Pix:    fb.ColorBytes(),
		Stride: fb.Width() * 4,
		Rect:   image.Rect(0, 0, fb.Width(), fb.Height()),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

// drawColoredTriangle renders a single vertex-colored triangle, per
// Scenario A: three NDC corners with distinct per-vertex colors,
// interpolated across the face.
func drawColoredTriangle(ctx *raster.Context, fb *raster.Framebuffer) {
	positions := raster.NewAttribute([]raster.Vec4{
		raster.V4(0, 0.5, 0, 1),
		raster.V4(-0.5, -0.5, 0, 1),
		raster.V4(0.5, -0.5, 0, 1),
	}, 1)

	colors := raster.NewAttribute([]colorVarying{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
	}, 1)

	shader := &triangleShader{positions: positions, colors: colors}
	ctx.DrawArrays(shader, 3, 0, fb)
}

// drawTexturedQuad renders a perspective-projected checkerboard quad
// (two triangles) through a Sampler2D, per Scenario C.
func drawTexturedQuad(ctx *raster.Context, fb *raster.Framebuffer, texturePath string) {
	var tex *raster.Texture
	if texturePath != "" {
		tex = loadTextureFile(texturePath)
	} else {
		tex = checkerboard(64, 64)
	}
	sampler := raster.NewSampler2D(tex)
	sampler.SetMagFilter(raster.FilterNearest)
	sampler.SetMinFilter(raster.FilterLinearMipmapLinear)
	tex.CreateMipmap(0)

	positions := raster.NewAttribute([]raster.Vec4{
		raster.V4(-0.8, 0.6, 0, 1),
		raster.V4(-0.8, -0.6, 0, 2.2),
		raster.V4(0.8, -0.6, 0, 1.4),

		raster.V4(-0.8, 0.6, 0, 1),
		raster.V4(0.8, -0.6, 0, 1.4),
		raster.V4(0.8, 0.6, 0, 1),
	}, 1)

	uvs := raster.NewAttribute([]uvVarying{
		{U: 0, V: 0}, {U: 0, V: 1}, {U: 1, V: 1},
		{U: 0, V: 0}, {U: 1, V: 1}, {U: 1, V: 0},
	}, 1)

	shader := &quadShader{
		positions: positions,
		uvs:       uvs,
		sampler:   sampler,
		magFilter: raster.FilterNearest,
		minFilter: raster.FilterLinearMipmapLinear,
	}
	ctx.DrawArrays(shader, 6, 0, fb)
}

func checkerboard(w, h int) *raster.Texture {
	pixels := make([]raster.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/8+y/8)%2 == 0 {
				pixels[y*w+x] = raster.Black
			} else {
				pixels[y*w+x] = raster.White
			}
		}
	}
	tex, err := raster.NewTexture(w, h, pixels)
	if err != nil {
		log.Fatalf("rastercli: checkerboard texture: %v", err)
	}
	return tex
}
