package raster

// Color is a packed 8-bit-per-channel RGBA value. Channels are stored in
// R,G,B,A order and all arithmetic saturates to [0,255].
//
// Color intentionally does not use float components: the rasterizer hot
// path never wants to convert to and from floating point per pixel, and
// the div255 modulate trick below is exact for the full uint16 product
// range, so there is no precision to gain from floats here.
type Color struct {
	R, G, B, A uint8
}

// ColorZero is the additive identity.
var ColorZero = Color{}

// ColorOne is the multiplicative identity for Modulate.
var ColorOne = Color{R: 255, G: 255, B: 255, A: 255}

// White is opaque white, the default framebuffer clear color.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// Black is opaque black.
var Black = Color{A: 255}

// div255 computes the truncating division x/255 exactly for
// 0 <= x <= 65535.
func div255(x uint32) uint32 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func subSat(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}

// Add returns the saturating componentwise sum a+b.
func (a Color) Add(b Color) Color {
	return Color{
		R: addSat(a.R, b.R),
		G: addSat(a.G, b.G),
		B: addSat(a.B, b.B),
		A: addSat(a.A, b.A),
	}
}

// Sub returns the saturating componentwise difference a-b.
func (a Color) Sub(b Color) Color {
	return Color{
		R: subSat(a.R, b.R),
		G: subSat(a.G, b.G),
		B: subSat(a.B, b.B),
		A: subSat(a.A, b.A),
	}
}

// Modulate returns the componentwise product a*b/255 (div255 exact formula).
func (a Color) Modulate(b Color) Color {
	return Color{
		R: uint8(div255(uint32(a.R) * uint32(b.R))),
		G: uint8(div255(uint32(a.G) * uint32(b.G))),
		B: uint8(div255(uint32(a.B) * uint32(b.B))),
		A: uint8(div255(uint32(a.A) * uint32(b.A))),
	}
}

// ModulateScalar returns a with every channel modulated by a single byte,
// e.g. for applying a coverage or alpha-test weight.
func (a Color) ModulateScalar(s uint8) Color {
	return Color{
		R: uint8(div255(uint32(a.R) * uint32(s))),
		G: uint8(div255(uint32(a.G) * uint32(s))),
		B: uint8(div255(uint32(a.B) * uint32(s))),
		A: uint8(div255(uint32(a.A) * uint32(s))),
	}
}

// lerpChannel computes ((2048-k)*a + k*b) >> 11 for an 11-bit fixed point k.
func lerpChannel(a, b uint8, k int32) uint8 {
	v := (int32(2048-k)*int32(a) + int32(k)*int32(b)) >> 11
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Lerp interpolates between a and b by p in [0,1] using an 11-bit
// fixed-point factor k = round(p*2048), so Lerp(a,b,0) == a and
// Lerp(a,b,1) == b exactly.
func (a Color) Lerp(b Color, p float32) Color {
	k := int32(p*2048 + 0.5)
	if k < 0 {
		k = 0
	}
	if k > 2048 {
		k = 2048
	}
	return Color{
		R: lerpChannel(a.R, b.R, k),
		G: lerpChannel(a.G, b.G, k),
		B: lerpChannel(a.B, b.B, k),
		A: lerpChannel(a.A, b.A, k),
	}
}

// MulFloat scales every channel by f, a convenience built on the same
// 11-bit fixed-point factor as Lerp, for blend-constant-color math.
func (a Color) MulFloat(f float32) Color {
	k := int32(f*2048 + 0.5)
	scale := func(c uint8) uint8 {
		v := (int32(c) * k) >> 11
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return Color{R: scale(a.R), G: scale(a.G), B: scale(a.B), A: scale(a.A)}
}

// Min returns the channelwise minimum of a and b.
func (a Color) Min(b Color) Color {
	min8 := func(x, y uint8) uint8 {
		if x < y {
			return x
		}
		return y
	}
	return Color{R: min8(a.R, b.R), G: min8(a.G, b.G), B: min8(a.B, b.B), A: min8(a.A, b.A)}
}

// Max returns the channelwise maximum of a and b.
func (a Color) Max(b Color) Color {
	max8 := func(x, y uint8) uint8 {
		if x > y {
			return x
		}
		return y
	}
	return Color{R: max8(a.R, b.R), G: max8(a.G, b.G), B: max8(a.B, b.B), A: max8(a.A, b.A)}
}

// Pack reinterprets the color as a single uint32, R in the lowest byte
// through A in the highest byte (host-order little-endian load). The
// rasterizer's masked writeback (fb[x,y] = (out & mask) | (fb[x,y] & ~mask))
// operates on this packed form.
func (a Color) Pack() uint32 {
	return uint32(a.R) | uint32(a.G)<<8 | uint32(a.B)<<16 | uint32(a.A)<<24
}

// Unpack reverses Pack.
func Unpack(v uint32) Color {
	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// FromRGBA constructs an opaque-or-not color from four 0-255 channel values.
func FromRGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}
