package raster

import "testing"

// testVarying is a minimal float-RGBA Varying used across draw tests.
type testVarying struct {
	r, g, b, a float32
}

func (v testVarying) Add(o Varying) Varying {
	ov := o.(testVarying)
	return testVarying{v.r + ov.r, v.g + ov.g, v.b + ov.b, v.a + ov.a}
}

func (v testVarying) Scale(s float32) Varying {
	return testVarying{v.r * s, v.g * s, v.b * s, v.a * s}
}

func (v testVarying) color() Color {
	clamp := func(f float32) uint8 {
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f + 0.5)
	}
	return Color{R: clamp(v.r), G: clamp(v.g), B: clamp(v.b), A: clamp(v.a)}
}

// triShader is a flat/interpolated-color triangle-list shader for tests:
// it draws len(positions)/3 triangles with per-vertex colors.
type triShader struct {
	positions []Vec4
	colors    []testVarying
	idx       int
	varyings  []Varying
}

func (s *triShader) Vertex(i int) (x, y, z, w float32) {
	p := s.positions[s.idx]
	s.varyings = append(s.varyings, s.colors[s.idx])
	return p.X, p.Y, p.Z, p.W
}

func (s *triShader) Fragment(v Varying, px, py int) Color { return v.(testVarying).color() }
func (s *triShader) Sample(v Varying)                     {}
func (s *triShader) Next()                                { s.idx++ }
func (s *triShader) Reset()                                { s.idx, s.varyings = 0, s.varyings[:0] }
func (s *triShader) GetVarying() []Varying                 { return s.varyings }
func (s *triShader) ComputeLevel(n SamplePoint)            {}
func (s *triShader) Clone() Shader {
	return &triShader{positions: s.positions, colors: s.colors}
}

func TestDrawArraysColoredTriangleCentroid(t *testing.T) {
	ctx := NewContext(1280, 720)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	ctx.Clear(BufferColor, fb)

	shader := &triShader{
		positions: []Vec4{
			{X: 0, Y: 0.5, Z: 0, W: 1},
			{X: -0.5, Y: -0.5, Z: 0, W: 1},
			{X: 0.5, Y: -0.5, Z: 0, W: 1},
		},
		colors: []testVarying{
			{r: 255, g: 0, b: 0, a: 255},
			{r: 0, g: 255, b: 0, a: 255},
			{r: 0, g: 0, b: 255, a: 255},
		},
	}

	ctx.DrawArrays(shader, 3, 0, fb)

	cx, cy := 640, 420 // screen vertices (640,180), (320,540), (960,540)
	got := fb.GetColor(cx, cy)
	want := Color{R: 85, G: 85, B: 85, A: 255}
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if diff(got.R, want.R) > 2 || diff(got.G, want.G) > 2 || diff(got.B, want.B) > 2 {
		t.Fatalf("centroid color = %v, want within 2/255 of %v", got, want)
	}
}

func TestDrawArraysTruncatesToMultipleOfThree(t *testing.T) {
	ctx := NewContext(16, 16)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	ctx.Clear(BufferColor, fb)

	shader := &triShader{
		positions: []Vec4{
			{X: -0.9, Y: 0.9, Z: 0, W: 1},
			{X: -0.9, Y: -0.9, Z: 0, W: 1},
			{X: 0.9, Y: -0.9, Z: 0, W: 1},
			{X: 0.9, Y: 0.9, Z: 0, W: 1}, // 4th vertex: no matching triangle
		},
		colors: []testVarying{
			{r: 255, g: 255, b: 255, a: 255},
			{r: 255, g: 255, b: 255, a: 255},
			{r: 255, g: 255, b: 255, a: 255},
			{r: 255, g: 255, b: 255, a: 255},
		},
	}

	// count=4 truncates to 3: exactly one triangle is drawn, the 4th
	// vertex is never touched.
	vertices := ctx.vertexPhase(shader, 4, 0)
	if len(vertices) != 3 {
		t.Fatalf("vertexPhase produced %d vertices, want 3 (truncated to one triangle)", len(vertices))
	}
}

func TestDrawArraysRejectsNegativeW(t *testing.T) {
	ctx := NewContext(16, 16)
	shader := &triShader{
		positions: []Vec4{
			{X: 0, Y: 0, Z: 0, W: -1},
			{X: 1, Y: 0, Z: 0, W: 1},
			{X: 0, Y: 1, Z: 0, W: 1},
		},
		colors: []testVarying{{}, {}, {}},
	}
	vertices := ctx.vertexPhase(shader, 3, 0)
	if len(vertices) != 0 {
		t.Fatalf("triangle with w<=0 vertex should be dropped, got %d vertices", len(vertices))
	}
}

func TestDrawArraysColorMaskIdempotence(t *testing.T) {
	ctx := NewContext(16, 16)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	ctx.ClearColor(White)
	ctx.Clear(BufferColor, fb)

	ctx.ColorMask(false, false, false, false)

	shader := &triShader{
		positions: []Vec4{
			{X: -0.9, Y: 0.9, Z: 0, W: 1},
			{X: -0.9, Y: -0.9, Z: 0, W: 1},
			{X: 0.9, Y: -0.9, Z: 0, W: 1},
		},
		colors: []testVarying{
			{r: 0, g: 0, b: 0, a: 255},
			{r: 0, g: 0, b: 0, a: 255},
			{r: 0, g: 0, b: 0, a: 255},
		},
	}
	ctx.DrawArrays(shader, 3, 0, fb)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := fb.GetColor(x, y); got != White {
				t.Fatalf("pixel (%d,%d) = %v changed despite a zero color mask", x, y, got)
			}
		}
	}
}

func TestDrawArraysBackFaceCull(t *testing.T) {
	ctx := NewContext(16, 16)
	fb := ctx.NewFramebuffer()
	fb.AttachColor()
	ctx.ClearColor(White)
	ctx.Clear(BufferColor, fb)
	ctx.Enable(FuncCullFace)
	ctx.FrontFace(WindingCCW)

	// Clockwise winding in NDC (y-up): should be culled as a back face.
	shader := &triShader{
		positions: []Vec4{
			{X: -0.9, Y: -0.9, Z: 0, W: 1},
			{X: 0, Y: 0.9, Z: 0, W: 1},
			{X: 0.9, Y: -0.9, Z: 0, W: 1},
		},
		colors: []testVarying{
			{r: 0, g: 0, b: 0, a: 255},
			{r: 0, g: 0, b: 0, a: 255},
			{r: 0, g: 0, b: 0, a: 255},
		},
	}
	ctx.DrawArrays(shader, 3, 0, fb)

	if got := fb.GetColor(8, 8); got != White {
		t.Fatalf("back face was not culled: center pixel = %v, want White", got)
	}
}

func TestDrawArraysSingleVsMultiThreadedAgree(t *testing.T) {
	build := func() (*Context, *Framebuffer, *triShader) {
		ctx := NewContext(64, 64)
		fb := ctx.NewFramebuffer()
		fb.AttachColor()
		ctx.ClearColor(White)
		ctx.Clear(BufferColor, fb)
		shader := &triShader{
			positions: []Vec4{
				{X: -0.8, Y: 0.8, Z: 0, W: 1},
				{X: -0.8, Y: -0.8, Z: 0, W: 1},
				{X: 0.8, Y: -0.8, Z: 0, W: 1},
			},
			colors: []testVarying{
				{r: 255, g: 0, b: 0, a: 255},
				{r: 0, g: 255, b: 0, a: 255},
				{r: 0, g: 0, b: 255, a: 255},
			},
		}
		return ctx, fb, shader
	}

	ctxA, fbA, shaderA := build()
	ctxA.DrawArrays(shaderA, 3, 0, fbA)

	ctxB, fbB, shaderB := build()
	ctxB.ThreadCount(4)
	ctxB.DrawArrays(shaderB, 3, 0, fbB)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if a, b := fbA.GetColor(x, y), fbB.GetColor(x, y); a != b {
				t.Fatalf("pixel (%d,%d) differs between single- and multi-threaded draws: %v vs %v", x, y, a, b)
			}
		}
	}
}

func TestBoundingBoxClampedToViewport(t *testing.T) {
	v0 := screenVertex{X: -100, Y: -100}
	v1 := screenVertex{X: 500, Y: 10}
	v2 := screenVertex{X: 10, Y: 500}
	minX, minY, maxX, maxY := boundingBox(v0, v1, v2, 0, 0, 63, 63)
	if minX < 0 || minY < 0 || maxX > 63 || maxY > 63 {
		t.Fatalf("boundingBox = (%d,%d,%d,%d), want clamped to [0,63]", minX, minY, maxX, maxY)
	}
}

func TestViewportMapMatchesOriginOffset(t *testing.T) {
	ctx := NewContext(100, 50)
	ctx.Viewport(10, 5, 100, 50)

	center := ctx.viewportMap(clipVertex{X: 0, Y: 0, Z: 0, RHW: 1})
	wantX := float32(100)*0.5 + 10
	wantY := float32(50)*0.5 + 5
	if center.X != wantX || center.Y != wantY {
		t.Fatalf("viewportMap(0,0) = (%v,%v), want (%v,%v)", center.X, center.Y, wantX, wantY)
	}
}
