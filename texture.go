package raster

import "image"

// Texture is an immutable-after-construction 2D RGBA8 image plus an
// ordered chain of mipmaps. Mipmap level k has dimensions
// max(1,w>>k) x max(1,h>>k) and is the 2x2 box average of level k-1,
// stored without gamma correction.
type Texture struct {
	width, height int
	pixels        []Color

	mipmaps []*Texture
}

// NewTexture copies pixels (row-major, width*height entries) into a new
// Texture. It returns ErrInvalidDimensions if width or height is
// non-positive, or ErrDataTooSmall if pixels is shorter than
// width*height.
func NewTexture(width, height int, pixels []Color) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pixels) < width*height {
		return nil, ErrDataTooSmall
	}
	data := make([]Color, width*height)
	copy(data, pixels[:width*height])
	return &Texture{width: width, height: height, pixels: data}, nil
}

// NewTextureFromBytes builds a Texture from a flat R,G,B,A byte buffer,
// the layout produced by Framebuffer.ColorBytes and by decoded images.
func NewTextureFromBytes(width, height int, data []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) < width*height*4 {
		return nil, ErrDataTooSmall
	}
	pixels := make([]Color, width*height)
	for i := range pixels {
		o := i * 4
		pixels[i] = Color{R: data[o], G: data[o+1], B: data[o+2], A: data[o+3]}
	}
	return &Texture{width: width, height: height, pixels: pixels}, nil
}

// FromImage converts an arbitrary image.Image (any color model) into a
// Texture, downsampling each pixel's color.RGBA() to 8 bits per channel
// and un-premultiplying alpha. This is the bridge used by fixture/test
// loaders that decode a file format into a stdlib image.Image first;
// file-format decoding itself stays outside this package.
func FromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	pixels := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = unpremultiply(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
		}
	}
	return &Texture{width: w, height: h, pixels: pixels}, nil
}

// unpremultiply reverses the alpha premultiplication color.Color.RGBA()
// applies, since Texture stores straight (non-premultiplied) color.
func unpremultiply(r, g, b, a uint8) Color {
	if a == 0 || a == 255 {
		return Color{R: r, G: g, B: b, A: a}
	}
	scale := func(c uint8) uint8 {
		return uint8(uint32(c) * 255 / uint32(a))
	}
	return Color{R: scale(r), G: scale(g), B: scale(b), A: a}
}

// Width returns the base level width.
func (t *Texture) Width() int { return t.width }

// Height returns the base level height.
func (t *Texture) Height() int { return t.height }

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// CreateMipmap generates the mipmap chain for the texture, stopping
// when dimensions reach 1x1 or levelCap levels have been produced
// (levelCap <= 0 means unlimited). It reports false and does nothing
// if width or height is not a power of two, per §4.2's power-of-two-only
// constraint — the texture still samples correctly at level 0.
func (t *Texture) CreateMipmap(levelCap int) bool {
	if !isPowerOfTwo(t.width) || !isPowerOfTwo(t.height) {
		Logger().Warn("raster: mipmap requested on non-power-of-two texture, ignoring",
			"width", t.width, "height", t.height)
		return false
	}
	if levelCap <= 0 {
		levelCap = 1<<31 - 1
	}
	t.mipmaps = t.mipmaps[:0]
	t.buildMipmapChain(t.width, t.height, t.pixels, levelCap)
	return true
}

func (t *Texture) buildMipmapChain(width, height int, src []Color, levelsRemaining int) {
	if (width == 1 && height == 1) || levelsRemaining == 0 {
		return
	}

	var result []Color

	if width > 1 && height > 1 {
		nw, nh := width/2, height/2
		result = make([]Color, 0, nw*nh)
		for i := 0; i < height; i += 2 {
			for j := 0; j < width; j += 2 {
				a := src[(i+0)*width+j+0]
				b := src[(i+0)*width+j+1]
				c := src[(i+1)*width+j+0]
				d := src[(i+1)*width+j+1]
				result = append(result, boxAverage4(a, b, c, d))
			}
		}
		width, height = nw, nh
	} else {
		// Anisotropic degeneracy: one dimension already hit 1, reduce
		// the remaining axis with a 2x1 average.
		limit := width
		if height > limit {
			limit = height
		}
		result = make([]Color, 0, limit/2)
		for i := 0; i < limit; i += 2 {
			a := src[i+0]
			b := src[i+1]
			result = append(result, boxAverage2(a, b))
		}
		if width > 1 {
			width /= 2
		}
		if height > 1 {
			height /= 2
		}
	}

	level := &Texture{width: width, height: height, pixels: result}
	t.mipmaps = append(t.mipmaps, level)

	t.buildMipmapChain(width, height, result, levelsRemaining-1)
}

func boxAverage4(a, b, c, d Color) Color {
	return Color{
		R: uint8((int(a.R) + int(b.R) + int(c.R) + int(d.R)) / 4),
		G: uint8((int(a.G) + int(b.G) + int(c.G) + int(d.G)) / 4),
		B: uint8((int(a.B) + int(b.B) + int(c.B) + int(d.B)) / 4),
		A: uint8((int(a.A) + int(b.A) + int(c.A) + int(d.A)) / 4),
	}
}

func boxAverage2(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: uint8((int(a.A) + int(b.A)) / 2),
	}
}

// MipmapCount returns the number of generated mipmap levels beyond
// level 0.
func (t *Texture) MipmapCount() int { return len(t.mipmaps) }

// LevelDims returns the level-level dimensions, where level 0 is the
// base texture. level is clamped to the available chain.
func (t *Texture) LevelDims(level float32) (int, int) {
	lvl := t.levelTexture(level)
	return lvl.width, lvl.height
}

// levelTexture resolves a LOD level (as used by GetValue and LevelDims) to the
// Texture holding that level's pixel data.
func (t *Texture) levelTexture(level float32) *Texture {
	if level <= 0 || len(t.mipmaps) == 0 {
		return t
	}
	idx := int(level)
	if idx > len(t.mipmaps) {
		idx = len(t.mipmaps)
	}
	return t.mipmaps[idx-1]
}

// ComputeST maps a normalized uv in [0,1]^2 to texel-space st
// coordinates at the given mipmap level.
func ComputeST(u, v float32, width, height int) (s, t float32) {
	return u * float32(width-1), v * float32(height-1)
}

// GetValue performs a raw texel load at integer st coordinates of the
// given mipmap level. Unchecked: callers must pre-clamp st to the
// level's dimensions (§4.2).
func (t *Texture) GetValue(level float32, sx, sy int) Color {
	lvl := t.levelTexture(level)
	idx := sy*lvl.width + sx
	if idx >= len(lvl.pixels) {
		idx = len(lvl.pixels) - 1
	}
	return lvl.pixels[idx]
}

// NearestFetch samples the texture at normalized uv, level, applying
// the nearest-texel rule floor(st+0.5) after wrapping.
func (t *Texture) NearestFetch(u, v float32, level float32, wrapS, wrapT WrapMode) Color {
	u = wrapS.Wrap(u)
	v = wrapT.Wrap(v)
	lvl := t.levelTexture(level)
	s, tt := ComputeST(u, v, lvl.width, lvl.height)
	sx := clampInt(int(s+0.5), 0, lvl.width-1)
	sy := clampInt(int(tt+0.5), 0, lvl.height-1)
	return t.GetValue(level, sx, sy)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
