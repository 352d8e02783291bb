package raster

import "testing"

// quadVarying is a minimal float-RGBA Varying for scenario tests.
type quadVarying struct{ r, g, b, a float32 }

func (v quadVarying) Add(o Varying) Varying {
	ov := o.(quadVarying)
	return quadVarying{v.r + ov.r, v.g + ov.g, v.b + ov.b, v.a + ov.a}
}
func (v quadVarying) Scale(s float32) Varying { return quadVarying{v.r * s, v.g * s, v.b * s, v.a * s} }

// scenarioShader is a flat-color triangle-list shader used across the
// end-to-end scenario tests: it draws len(positions)/3 triangles with
// per-vertex quadVarying colors and no texture sampling.
type scenarioShader struct {
	positions []Vec4
	colors    []quadVarying
	idx       int
	varyings  []Varying
}

func (s *scenarioShader) Vertex(i int) (x, y, z, w float32) {
	p := s.positions[s.idx]
	s.varyings = append(s.varyings, s.colors[s.idx])
	return p.X, p.Y, p.Z, p.W
}
func (s *scenarioShader) Fragment(v Varying, px, py int) Color {
	q := v.(quadVarying)
	return Color{R: uint8(q.r), G: uint8(q.g), B: uint8(q.b), A: uint8(q.a)}
}
func (s *scenarioShader) Sample(v Varying)          {}
func (s *scenarioShader) Next()                     { s.idx++ }
func (s *scenarioShader) Reset()                    { s.idx, s.varyings = 0, s.varyings[:0] }
func (s *scenarioShader) GetVarying() []Varying     { return s.varyings }
func (s *scenarioShader) ComputeLevel(n SamplePoint) {}
func (s *scenarioShader) Clone() Shader             { return &scenarioShader{positions: s.positions, colors: s.colors} }

func fullScreenQuad(colors [4]quadVarying) *scenarioShader {
	// two triangles covering the whole [-1,1]^2 NDC square, CCW winding.
	return &scenarioShader{
		positions: []Vec4{
			{X: -1, Y: 1, Z: 0, W: 1}, {X: -1, Y: -1, Z: 0, W: 1}, {X: 1, Y: -1, Z: 0, W: 1},
			{X: -1, Y: 1, Z: 0, W: 1}, {X: 1, Y: -1, Z: 0, W: 1}, {X: 1, Y: 1, Z: 0, W: 1},
		},
		colors: []quadVarying{
			colors[0], colors[1], colors[2],
			colors[0], colors[2], colors[3],
		},
	}
}

// TestScenarioStencilMask is Scenario B: a first pass marks the left
// half of the framebuffer in the stencil with color writes disabled, a
// second pass draws red gated on stencil==1. Red should appear only
// where the stencil was marked; the clear color should survive
// everywhere else.
func TestScenarioStencilMask(t *testing.T) {
	ctx := NewContext(16, 16)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	fb.AttachStencil()

	clearColor := Color{R: 20, G: 20, B: 20, A: 255}
	ctx.ClearColor(clearColor)
	ctx.Clear(BufferColor|BufferStencil, fb)

	// Pass 1: mark the left half of the screen in the stencil buffer,
	// color writes disabled.
	ctx.ColorMask(false, false, false, false)
	ctx.Enable(FuncStencilTest)
	ctx.StencilFunc(CompareAlways, 1, 0xFF)
	ctx.StencilMaskValue(0xFF)
	ctx.StencilOpState(StencilKeep, StencilKeep, StencilReplace)

	leftHalf := fullScreenQuad([4]quadVarying{{}, {}, {}, {}})
	// Squeeze the quad to the left half in NDC: x in [-1, 0].
	leftHalf.positions = []Vec4{
		{X: -1, Y: 1, Z: 0, W: 1}, {X: -1, Y: -1, Z: 0, W: 1}, {X: 0, Y: -1, Z: 0, W: 1},
		{X: -1, Y: 1, Z: 0, W: 1}, {X: 0, Y: -1, Z: 0, W: 1}, {X: 0, Y: 1, Z: 0, W: 1},
	}
	ctx.DrawArrays(leftHalf, 6, 0, fb)

	// Pass 2: draw red over the whole screen, gated on stencil==1.
	ctx.ColorMask(true, true, true, true)
	ctx.StencilFunc(CompareEqual, 1, 0xFF)
	ctx.StencilOpState(StencilKeep, StencilKeep, StencilKeep)

	red := quadVarying{r: 255, a: 255}
	ctx.DrawArrays(fullScreenQuad([4]quadVarying{red, red, red, red}), 6, 0, fb)

	if got := fb.GetColor(2, 8); got.R != 255 {
		t.Fatalf("left half (stencil-marked) pixel = %v, want red", got)
	}
	if got := fb.GetColor(14, 8); got != clearColor {
		t.Fatalf("right half (unmarked) pixel = %v, want clear color %v", got, clearColor)
	}
}

// TestScenarioDepthTestReciprocalW is Scenario D: two overlapping
// triangles at different w, depth func Greater, cleared to -1. The
// triangle with the larger rhw (closer) should win every contested
// pixel regardless of draw order.
func TestScenarioDepthTestReciprocalW(t *testing.T) {
	ctx := NewContext(16, 16)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	fb.AttachDepth()

	ctx.ClearDepthValue(-1)
	ctx.Clear(BufferColor|BufferDepth, fb)
	ctx.Enable(FuncDepthTest)
	ctx.DepthFunc(CompareGreater)
	ctx.DepthValue(FuncReciprocalW)
	ctx.DepthMask(true)

	far := quadVarying{r: 0, g: 0, b: 255, a: 255} // blue, w=4 (far: rhw=0.25)
	near := quadVarying{r: 255, g: 0, b: 0, a: 255} // red, w=1 (near: rhw=1)

	farShader := &scenarioShader{
		positions: []Vec4{
			{X: -1, Y: 1, Z: 0, W: 4}, {X: -1, Y: -1, Z: 0, W: 4}, {X: 1, Y: -1, Z: 0, W: 4},
			{X: -1, Y: 1, Z: 0, W: 4}, {X: 1, Y: -1, Z: 0, W: 4}, {X: 1, Y: 1, Z: 0, W: 4},
		},
		colors: []quadVarying{far, far, far, far, far, far},
	}
	nearShader := &scenarioShader{
		positions: []Vec4{
			{X: -1, Y: 1, Z: 0, W: 1}, {X: -1, Y: -1, Z: 0, W: 1}, {X: 1, Y: -1, Z: 0, W: 1},
			{X: -1, Y: 1, Z: 0, W: 1}, {X: 1, Y: -1, Z: 0, W: 1}, {X: 1, Y: 1, Z: 0, W: 1},
		},
		colors: []quadVarying{near, near, near, near, near, near},
	}

	// Draw far first, then near: near should still win (rhw=1 > rhw=0.25).
	ctx.DrawArrays(farShader, 6, 0, fb)
	ctx.DrawArrays(nearShader, 6, 0, fb)

	if got := fb.GetColor(8, 8); got.R != 255 || got.B != 0 {
		t.Fatalf("center pixel = %v, want near (red) to win under Greater/reciprocal-w", got)
	}

	// Reverse draw order: near first, then far. Far must not overwrite it.
	ctx2 := NewContext(16, 16)
	fb2 := ctx2.NewFramebuffer()
	fb2.AttachColor()
	fb2.AttachDepth()
	ctx2.ClearDepthValue(-1)
	ctx2.Clear(BufferColor|BufferDepth, fb2)
	ctx2.Enable(FuncDepthTest)
	ctx2.DepthFunc(CompareGreater)
	ctx2.DepthValue(FuncReciprocalW)
	ctx2.DepthMask(true)

	ctx2.DrawArrays(&scenarioShader{positions: nearShader.positions, colors: nearShader.colors}, 6, 0, fb2)
	ctx2.DrawArrays(&scenarioShader{positions: farShader.positions, colors: farShader.colors}, 6, 0, fb2)

	if got := fb2.GetColor(8, 8); got.R != 255 || got.B != 0 {
		t.Fatalf("center pixel (reverse order) = %v, want near (red) to still win", got)
	}
}

// TestScenarioClearDoublingFill is Scenario E: clearing a 17x13 buffer
// (odd width, prime-ish total length) must fill every pixel, both for a
// color with four distinct channel values and for one whose channels
// are all equal; both clears go through the same doubling-copy fill.
func TestScenarioClearDoublingFill(t *testing.T) {
	fb := NewFramebuffer(17, 13)
	fb.AttachColor()

	c1 := Color{R: 10, G: 20, B: 30, A: 40}
	fb.ClearColor(c1)
	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			if got := fb.GetColor(x, y); got != c1 {
				t.Fatalf("GetColor(%d,%d) = %v, want %v", x, y, got, c1)
			}
		}
	}

	c2 := Color{R: 77, G: 77, B: 77, A: 77}
	fb.ClearColor(c2)
	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			if got := fb.GetColor(x, y); got != c2 {
				t.Fatalf("GetColor(%d,%d) = %v, want %v", x, y, got, c2)
			}
		}
	}
}

// TestScenarioAnisotropicSharpness is Scenario F: sampling a
// high-frequency stripe texture at a grazing angle should resolve
// sharper detail (higher variance across a row of samples) with a
// larger anisotropy tap-count cap than with none.
func TestScenarioAnisotropicSharpness(t *testing.T) {
	// Stripe period 16 (runs of 8): the run length stays above 1 pixel
	// through mip level 2, so an anisotropic tap pattern landing on a
	// low level still sees contrast while the isotropic long-axis level
	// (chosen from the same quad's larger derivative) lands deep enough
	// in the chain to have averaged out to flat gray.
	const size = 64
	tex := solidTexture(size, size, White)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/8)%2 == 0 {
				tex.pixels[y*size+x] = Black
			}
		}
	}
	tex.CreateMipmap(0)

	sample := func(cap SamplePoint) []Color {
		s := NewSampler2D(tex)
		s.SetMinFilter(FilterLinearMipmapLinear)
		s.SetWrap(WrapRepeat, WrapRepeat)
		out := make([]Color, 8)
		for i := range out {
			u := float32(i) / 8
			// Grazing angle: large derivative in one axis, small in the
			// other, forcing minification along the stripe's short axis.
			s.Sample(u, 0.5)
			s.Sample(u+0.5, 0.5)
			s.Sample(u, 0.5+0.002)
			s.Sample(u+0.5, 0.5+0.002)
			s.ComputeLevel(cap)
			out[i] = s.GetColor()
		}
		return out
	}

	variance := func(colors []Color) float64 {
		var sum, sumSq float64
		for _, c := range colors {
			v := float64(c.R)
			sum += v
			sumSq += v * v
		}
		n := float64(len(colors))
		mean := sum / n
		return sumSq/n - mean*mean
	}

	lowAniso := variance(sample(1))
	highAniso := variance(sample(16))

	if highAniso < lowAniso {
		t.Fatalf("anisotropy=16 variance (%v) should be >= anisotropy=1 variance (%v)", highAniso, lowAniso)
	}
}
