package raster

// CubeSampler mirrors Sampler2D but samples a CubeTexture with a
// direction vector (u,v,w) rather than a 2D uv. Each of the four quad
// samples independently selects its cube face; if the four samples
// don't all land on the same face, ComputeLevel falls back to Nearest
// at λ=0 for this quad (§9's documented seam behavior) rather than
// computing a screen-space derivative across disjoint face UV spaces.
type CubeSampler struct {
	cube *CubeTexture

	magFilter, minFilter FilterFunc

	uvHistory   [4][2]float32
	faceHistory [4]Face
	stHistory   [3][2]float32
	idx         int

	ddS, ddT            float32
	longLevel, anisoLvl float32
	samplePoint         SamplePoint
}

// NewCubeSampler creates a sampler bound to cube with the conventional
// defaults: nearest magnification, nearest-mipmap-nearest minification.
func NewCubeSampler(cube *CubeTexture) *CubeSampler {
	return &CubeSampler{
		cube:        cube,
		magFilter:   FilterNearest,
		minFilter:   FilterNearestMipmapNearest,
		samplePoint: 1,
	}
}

// SetMagFilter sets the magnification filter; invalid values are
// refused and logged.
func (s *CubeSampler) SetMagFilter(f FilterFunc) {
	if f != FilterNearest && f != FilterLinear {
		Logger().Warn("raster: invalid magnification filter, ignoring", "filter", f)
		return
	}
	s.magFilter = f
}

// SetMinFilter sets the minification filter; invalid values are
// refused and logged.
func (s *CubeSampler) SetMinFilter(f FilterFunc) {
	if f == FilterNearest || f == FilterLinear {
		Logger().Warn("raster: invalid minification filter, ignoring", "filter", f)
		return
	}
	s.minFilter = f
}

// Sample resolves the direction (u,v,w) to a face and per-face UV,
// recording both for the current quad slot.
func (s *CubeSampler) Sample(u, v, w float32) {
	face, fu, fv := SelectFace(u, v, w)
	s.uvHistory[s.idx] = [2]float32{fu, fv}
	s.faceHistory[s.idx] = face
	if s.idx < 3 {
		size := s.cube.Size()
		st0, st1 := ComputeST(fu, fv, size, size)
		s.stHistory[s.idx] = [2]float32{st0, st1}
	}
	s.idx = (s.idx + 1) % 4
}

// ComputeLevel derives the LOD for this quad. When the four samples
// span more than one face it degrades to λ=0 (magnification, nearest
// sample count) rather than producing a meaningless cross-face
// derivative.
func (s *CubeSampler) ComputeLevel(samplePointCap SamplePoint) {
	if s.faceHistory[0] != s.faceHistory[1] || s.faceHistory[1] != s.faceHistory[2] || s.faceHistory[2] != s.faceHistory[3] {
		s.longLevel = 0
		s.samplePoint = 1
		return
	}

	ddx0 := s.stHistory[1][0] - s.stHistory[0][0]
	ddx1 := s.stHistory[1][1] - s.stHistory[0][1]
	ddy0 := s.stHistory[2][0] - s.stHistory[0][0]
	ddy1 := s.stHistory[2][1] - s.stHistory[0][1]

	rhoX2 := ddx0*ddx0 + ddx1*ddx1
	rhoY2 := ddy0*ddy0 + ddy1*ddy1

	s.longLevel = 0.5 * log2f(maxf32(rhoX2, rhoY2))
	s.samplePoint = 1

	if samplePointCap != 1 && s.longLevel > 0 {
		var ratio float32
		if rhoX2 > rhoY2 {
			ratio = sqrtf(rhoX2) * invSqrtf(rhoY2)
			s.ddS, s.ddT = ddx0, ddx1
		} else {
			ratio = sqrtf(rhoY2) * invSqrtf(rhoX2)
			s.ddS, s.ddT = ddy0, ddy1
		}
		n := findMaxPow2LE(int(ratio))
		if n > samplePointCap {
			n = samplePointCap
		}
		s.samplePoint = n
		s.anisoLvl = s.longLevel - log2Pow2(s.samplePoint)
	}
}

// GetColor samples the cube texture at the recorded quad slot and
// advances to the next slot.
func (s *CubeSampler) GetColor() Color {
	uv := s.uvHistory[s.idx]
	face := s.faceHistory[s.idx]
	tex := s.cube.Face(face)

	var color Color
	switch {
	case s.longLevel <= 0:
		crossFace := s.faceHistory[0] != s.faceHistory[1] || s.faceHistory[1] != s.faceHistory[2] || s.faceHistory[2] != s.faceHistory[3]
		if s.magFilter == FilterNearest || crossFace {
			size := tex.width
			st0, st1 := ComputeST(uv[0], uv[1], size, tex.height)
			color = tex.GetValue(0, clampInt(int(st0+0.5), 0, tex.width-1), clampInt(int(st1+0.5), 0, tex.height-1))
		} else {
			st0, st1 := ComputeST(uv[0], uv[1], tex.width, tex.height)
			color = bilerpFetch(tex, 0, st0, st1)
		}
	case s.samplePoint == 1:
		color = isotropicMinFilter(s.minFilter, tex, s.longLevel, uv[0], uv[1])
	default:
		color = anisotropicMinFilter(s.minFilter, tex, s.anisoLvl, uv[0], uv[1], s.ddS, s.ddT, s.samplePoint)
	}

	s.idx = (s.idx + 1) % 4
	return color
}
