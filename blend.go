package raster

// blendFactorColor resolves one blend factor against the *original*,
// unmutated src and dst colors. Per §9, the src-side and dst-side
// factors must both be computed from the pre-blend src/dst values —
// never from an already-scaled intermediate — so this takes both colors
// regardless of which side is being resolved.
func blendFactorColor(f BlendFactor, src, dst, constant Color) Color {
	switch f {
	case BlendZero:
		return ColorZero
	case BlendOne:
		return ColorOne
	case BlendSrcColor:
		return src
	case BlendOneMinusSrcColor:
		return ColorOne.Sub(src)
	case BlendDstColor:
		return dst
	case BlendOneMinusDstColor:
		return ColorOne.Sub(dst)
	case BlendSrcAlpha:
		return Color{src.A, src.A, src.A, src.A}
	case BlendOneMinusSrcAlpha:
		a := 255 - src.A
		return Color{a, a, a, a}
	case BlendDstAlpha:
		return Color{dst.A, dst.A, dst.A, dst.A}
	case BlendOneMinusDstAlpha:
		a := 255 - dst.A
		return Color{a, a, a, a}
	case BlendConstColor:
		return constant
	case BlendOneMinusConstColor:
		return ColorOne.Sub(constant)
	case BlendConstAlpha:
		return Color{constant.A, constant.A, constant.A, constant.A}
	default: // BlendOneMinusConstAlpha
		a := 255 - constant.A
		return Color{a, a, a, a}
	}
}

// blendColors computes the blended output color for a src fragment over
// a dst framebuffer pixel, applying the context's configured factors and
// equation. src and dst are read-only inputs; neither is mutated.
func (c *Context) blendColors(src, dst Color) Color {
	srcFactor := blendFactorColor(c.blendSrcFunc, src, dst, c.blendColor)
	dstFactor := blendFactorColor(c.blendDstFunc, src, dst, c.blendColor)

	weightedSrc := src.Modulate(srcFactor)
	weightedDst := dst.Modulate(dstFactor)

	switch c.blendEquation {
	case BlendAdd:
		return weightedSrc.Add(weightedDst)
	case BlendSubtract:
		return weightedSrc.Sub(weightedDst)
	case BlendReverseSubtract:
		return weightedDst.Sub(weightedSrc)
	case BlendMin:
		return weightedSrc.Min(weightedDst)
	default: // BlendMax
		return weightedSrc.Max(weightedDst)
	}
}
