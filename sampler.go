package raster

import "math"

// tapOffsetLUT precomputes the anisotropic tap offsets i/(n+1) - 0.5 for
// i in 1..n, for every supported sample count n in {1,2,4,8,16}. Index
// by sampleBase(n) + i - 1.
var tapOffsetLUT = [32]float32{
	0, 0,

	1./3 - 0.5, 2./3 - 0.5,

	1./5 - 0.5, 2./5 - 0.5, 3./5 - 0.5, 4./5 - 0.5,

	1./9 - 0.5, 2./9 - 0.5, 3./9 - 0.5, 4./9 - 0.5,
	5./9 - 0.5, 6./9 - 0.5, 7./9 - 0.5, 8./9 - 0.5,

	1./17 - 0.5, 2./17 - 0.5, 3./17 - 0.5, 4./17 - 0.5,
	5./17 - 0.5, 6./17 - 0.5, 7./17 - 0.5, 8./17 - 0.5,
	9./17 - 0.5, 10./17 - 0.5, 11./17 - 0.5, 12./17 - 0.5,
	13./17 - 0.5, 14./17 - 0.5, 15./17 - 0.5, 16./17 - 0.5,
}

// sampleBase is the LUT offset for the first tap of each sample count.
func sampleBase(n SamplePoint) int {
	switch n {
	case 1:
		return 0
	case 2:
		return 2
	case 4:
		return 4
	case 8:
		return 8
	default:
		return 16
	}
}

// tapOffset returns the i-th (1-indexed) tap offset for a run of n taps.
func tapOffset(n SamplePoint, i int) float32 {
	return tapOffsetLUT[sampleBase(n)+i-1]
}

func log2f(x float32) float32 {
	return float32(math.Log2(float64(x)))
}

// findMaxPow2LE returns the largest power of two <= v, capped at 16.
func findMaxPow2LE(v int) SamplePoint {
	if v >= 16 {
		return 16
	}
	p := SamplePoint(1)
	for p*2 <= SamplePoint(v) {
		p *= 2
	}
	return p
}

// log2Pow2 returns log2(n) for n a power of two in {1,2,4,8,16}.
func log2Pow2(n SamplePoint) float32 {
	switch n {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 4
	}
}

// bilerpFetch performs a 2x2 bilinear fetch at texel-space (s,t) of the
// given mipmap level, using fixed-point 0..256 weights.
func bilerpFetch(tex *Texture, level float32, s, t float32) Color {
	lvl := tex.levelTexture(level)

	fs, ft := floor32(s), floor32(t)
	diffX := uint32((s - fs) * 256)
	diffY := uint32((t - ft) * 256)

	x0 := clampInt(int(fs), 0, lvl.width-1)
	y0 := clampInt(int(ft), 0, lvl.height-1)
	x1 := clampInt(x0+1, 0, lvl.width-1)
	y1 := clampInt(y0+1, 0, lvl.height-1)

	this := lvl.GetValue(0, x0, y0)
	side := lvl.GetValue(0, x1, y0)
	up := lvl.GetValue(0, x0, y1)
	diag := lvl.GetValue(0, x1, y1)

	s3 := diffX * diffY
	s0 := 256*256 - (diffY << 8) - (diffX << 8) + s3
	s1 := (diffX << 8) - s3
	s2 := (diffY << 8) - s3

	mix := func(a, b, c, d uint8) uint8 {
		sum := uint32(a)*s0 + uint32(b)*s1 + uint32(c)*s2 + uint32(d)*s3
		return uint8(sum >> 16)
	}

	return Color{
		R: mix(this.R, side.R, up.R, diag.R),
		G: mix(this.G, side.G, up.G, diag.G),
		B: mix(this.B, side.B, up.B, diag.B),
		A: mix(this.A, side.A, up.A, diag.A),
	}
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceil32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}

func round32(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// isotropicMinFilter evaluates one of the four single-tap minification
// filters at normalized uv, per §4.3.
func isotropicMinFilter(minFilter FilterFunc, tex *Texture, longLevel float32, u, v float32) Color {
	switch minFilter {
	case FilterNearestMipmapNearest:
		lvl := round32(longLevel)
		w, h := tex.LevelDims(lvl)
		s, t := ComputeST(u, v, w, h)
		return tex.GetValue(lvl, clampInt(int(s+0.5), 0, w-1), clampInt(int(t+0.5), 0, h-1))

	case FilterLinearMipmapNearest:
		lvl := round32(longLevel)
		w, h := tex.LevelDims(lvl)
		s, t := ComputeST(u, v, w, h)
		return bilerpFetch(tex, lvl, s, t)

	case FilterNearestMipmapLinear:
		lo, hi := floor32(longLevel), ceil32(longLevel)
		wl, hl := tex.LevelDims(lo)
		wr, hr := tex.LevelDims(hi)
		sl, tl := ComputeST(u, v, wl, hl)
		sr, tr := ComputeST(u, v, wr, hr)
		left := tex.GetValue(lo, clampInt(int(sl+0.5), 0, wl-1), clampInt(int(tl+0.5), 0, hl-1))
		right := tex.GetValue(hi, clampInt(int(sr+0.5), 0, wr-1), clampInt(int(tr+0.5), 0, hr-1))
		return left.Lerp(right, longLevel-lo)

	default: // FilterLinearMipmapLinear
		lo, hi := floor32(longLevel), ceil32(longLevel)
		wl, hl := tex.LevelDims(lo)
		wr, hr := tex.LevelDims(hi)
		sl, tl := ComputeST(u, v, wl, hl)
		sr, tr := ComputeST(u, v, wr, hr)
		a := bilerpFetch(tex, lo, sl, tl)
		b := bilerpFetch(tex, hi, sr, tr)
		return a.Lerp(b, longLevel-lo)
	}
}

// anisotropicMinFilter sums samplePoint taps along the longer derivative
// axis at the anisotropic LOD, per §4.3. ddS,ddT is the longer-axis
// derivative vector in texel space at level 0; it is rescaled to the
// texel size of each level the footprint is fetched from.
func anisotropicMinFilter(minFilter FilterFunc, tex *Texture, anisoLevel float32, u, v, ddS, ddT float32, samplePoint SamplePoint) Color {
	var sumR, sumG, sumB, sumA uint32

	accum := func(c Color) {
		sumR += uint32(c.R)
		sumG += uint32(c.G)
		sumB += uint32(c.B)
		sumA += uint32(c.A)
	}

	switch minFilter {
	case FilterNearestMipmapNearest, FilterLinearMipmapNearest:
		lvl := round32(anisoLevel)
		w, h := tex.LevelDims(lvl)
		s0, t0 := ComputeST(u, v, w, h)
		ks, kt := float32(w)/float32(tex.width), float32(h)/float32(tex.height)
		for i := 1; i <= int(samplePoint); i++ {
			off := tapOffset(samplePoint, i)
			s := s0 + ddS*ks*off
			t := t0 + ddT*kt*off
			if minFilter == FilterNearestMipmapNearest {
				accum(tex.GetValue(lvl, clampInt(int(s+0.5), 0, w-1), clampInt(int(t+0.5), 0, h-1)))
			} else {
				accum(bilerpFetch(tex, lvl, s, t))
			}
		}

	default: // FilterNearestMipmapLinear, FilterLinearMipmapLinear
		lo, hi := floor32(anisoLevel), ceil32(anisoLevel)
		wl, hl := tex.LevelDims(lo)
		wr, hr := tex.LevelDims(hi)
		sl0, tl0 := ComputeST(u, v, wl, hl)
		sr0, tr0 := ComputeST(u, v, wr, hr)
		frac := anisoLevel - lo
		ksl, ktl := float32(wl)/float32(tex.width), float32(hl)/float32(tex.height)
		ksr, ktr := float32(wr)/float32(tex.width), float32(hr)/float32(tex.height)
		for i := 1; i <= int(samplePoint); i++ {
			off := tapOffset(samplePoint, i)
			var left, right Color
			if minFilter == FilterNearestMipmapLinear {
				left = tex.GetValue(lo, clampInt(int(sl0+ddS*ksl*off+0.5), 0, wl-1), clampInt(int(tl0+ddT*ktl*off+0.5), 0, hl-1))
				right = tex.GetValue(hi, clampInt(int(sr0+ddS*ksr*off+0.5), 0, wr-1), clampInt(int(tr0+ddT*ktr*off+0.5), 0, hr-1))
			} else {
				left = bilerpFetch(tex, lo, sl0+ddS*ksl*off, tl0+ddT*ktl*off)
				right = bilerpFetch(tex, hi, sr0+ddS*ksr*off, tr0+ddT*ktr*off)
			}
			accum(left.Lerp(right, frac))
		}
	}

	shift := log2Pow2(samplePoint)
	div := uint32(1) << uint(shift)
	return Color{
		R: uint8(sumR / div),
		G: uint8(sumG / div),
		B: uint8(sumB / div),
		A: uint8(sumA / div),
	}
}
