package raster

import "math"

// Sampler2D is per-draw sampling state bound to a single 2D Texture: wrap
// modes, magnification/minification filters, and a 4-entry circular UV
// history (plus a 3-entry st history) used to estimate screen-space
// derivatives across one 2x2 pixel quad.
type Sampler2D struct {
	texture *Texture

	wrapS, wrapT         WrapMode
	magFilter, minFilter FilterFunc

	uvHistory [4][2]float32
	stHistory [3][2]float32
	idx       int

	ddS, ddT            float32
	longLevel, anisoLvl float32
	samplePoint         SamplePoint
}

// NewSampler2D creates a sampler bound to tex with the conventional
// defaults: clamp-to-edge wrapping, nearest magnification, and
// nearest-mipmap-nearest minification.
func NewSampler2D(tex *Texture) *Sampler2D {
	return &Sampler2D{
		texture:     tex,
		magFilter:   FilterNearest,
		minFilter:   FilterNearestMipmapNearest,
		samplePoint: 1,
	}
}

// SetWrap sets the per-axis wrap modes.
func (s *Sampler2D) SetWrap(wrapS, wrapT WrapMode) {
	s.wrapS, s.wrapT = wrapS, wrapT
}

// SetMagFilter sets the magnification filter. Only Nearest and Linear
// are valid; anything else is refused and logged, leaving the previous
// value in place (§7 configuration-error handling).
func (s *Sampler2D) SetMagFilter(f FilterFunc) {
	if f != FilterNearest && f != FilterLinear {
		Logger().Warn("raster: invalid magnification filter, ignoring", "filter", f)
		return
	}
	s.magFilter = f
}

// SetMinFilter sets the minification filter. Nearest and Linear (the
// magnification-only filters) are refused and logged.
func (s *Sampler2D) SetMinFilter(f FilterFunc) {
	if f == FilterNearest || f == FilterLinear {
		Logger().Warn("raster: invalid minification filter, ignoring", "filter", f)
		return
	}
	s.minFilter = f
}

// Texture returns the bound texture.
func (s *Sampler2D) Texture() *Texture { return s.texture }

// Sample records uv as the current quad-slot sample. Called once per
// sub-pixel of a 2x2 quad, in traversal order.
func (s *Sampler2D) Sample(u, v float32) {
	s.uvHistory[s.idx] = [2]float32{u, v}
	if s.idx < 3 {
		sw, th := s.wrapS.Wrap(u), s.wrapT.Wrap(v)
		st0, st1 := ComputeST(sw, th, s.texture.width, s.texture.height)
		s.stHistory[s.idx] = [2]float32{st0, st1}
	}
	s.idx = (s.idx + 1) % 4
}

// ComputeLevel derives screen-space derivatives from the st samples of
// quad slots 0, 1 and 2 and selects the LOD / anisotropic sample count for
// this quad, per §4.3.
func (s *Sampler2D) ComputeLevel(samplePointCap SamplePoint) {
	ddx0 := s.stHistory[1][0] - s.stHistory[0][0]
	ddx1 := s.stHistory[1][1] - s.stHistory[0][1]
	ddy0 := s.stHistory[2][0] - s.stHistory[0][0]
	ddy1 := s.stHistory[2][1] - s.stHistory[0][1]

	rhoX2 := ddx0*ddx0 + ddx1*ddx1
	rhoY2 := ddy0*ddy0 + ddy1*ddy1

	s.longLevel = 0.5 * log2f(maxf32(rhoX2, rhoY2))
	s.samplePoint = 1

	if samplePointCap != 1 && s.longLevel > 0 {
		s.anisotropicLevel(ddx0, ddx1, ddy0, ddy1, rhoX2, rhoY2, samplePointCap)
	}
}

func (s *Sampler2D) anisotropicLevel(ddx0, ddx1, ddy0, ddy1, rhoX2, rhoY2 float32, cap SamplePoint) {
	var ratio float32
	if rhoX2 > rhoY2 {
		ratio = sqrtf(rhoX2) * invSqrtf(rhoY2)
		s.ddS, s.ddT = ddx0, ddx1
	} else {
		ratio = sqrtf(rhoY2) * invSqrtf(rhoX2)
		s.ddS, s.ddT = ddy0, ddy1
	}

	n := findMaxPow2LE(int(ratio))
	if n > cap {
		n = cap
	}
	s.samplePoint = n

	s.anisoLvl = s.longLevel - log2Pow2(s.samplePoint)
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtf(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}

func invSqrtf(v float32) float32 {
	r := sqrtf(v)
	if r == 0 {
		return 0
	}
	return 1 / r
}

// GetColor samples the bound texture at the UV recorded for the current
// quad slot, dispatching to magnification or minification filtering
// based on the LOD computed by the last ComputeLevel call, then advances
// to the next quad slot.
func (s *Sampler2D) GetColor() Color {
	uv := s.uvHistory[s.idx]
	u, v := s.wrapS.Wrap(uv[0]), s.wrapT.Wrap(uv[1])

	var color Color
	switch {
	case s.longLevel <= 0:
		switch s.magFilter {
		case FilterNearest:
			st0, st1 := ComputeST(u, v, s.texture.width, s.texture.height)
			color = s.texture.GetValue(0, clampInt(int(st0+0.5), 0, s.texture.width-1), clampInt(int(st1+0.5), 0, s.texture.height-1))
		default: // FilterLinear
			st0, st1 := ComputeST(u, v, s.texture.width, s.texture.height)
			color = bilerpFetch(s.texture, 0, st0, st1)
		}
	case s.samplePoint == 1:
		color = isotropicMinFilter(s.minFilter, s.texture, s.longLevel, u, v)
	default:
		color = anisotropicMinFilter(s.minFilter, s.texture, s.anisoLvl, u, v, s.ddS, s.ddT, s.samplePoint)
	}

	s.idx = (s.idx + 1) % 4
	return color
}
