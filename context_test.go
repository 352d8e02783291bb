package raster

import "testing"

func TestNewContextDefaults(t *testing.T) {
	ctx := NewContext(100, 50)
	if ctx.viewportMinX != 0 || ctx.viewportMinY != 0 {
		t.Fatalf("default viewport origin = (%d,%d), want (0,0)", ctx.viewportMinX, ctx.viewportMinY)
	}
	if ctx.viewportMaxX != 99 || ctx.viewportMaxY != 49 {
		t.Fatalf("default viewport max = (%d,%d), want (99,49)", ctx.viewportMaxX, ctx.viewportMaxY)
	}
	if ctx.depthFunc != CompareLess {
		t.Fatalf("default depth func = %v, want CompareLess", ctx.depthFunc)
	}
	if ctx.depthValue != FuncZ {
		t.Fatalf("default depth value source = %v, want FuncZ", ctx.depthValue)
	}
	if !ctx.depthMask {
		t.Fatalf("default depth mask should be true")
	}
	if ctx.blendSrcFunc != BlendOne || ctx.blendDstFunc != BlendZero {
		t.Fatalf("default blend factors = (%v,%v), want (One,Zero)", ctx.blendSrcFunc, ctx.blendDstFunc)
	}
	if !ctx.frontFaceIsCCW {
		t.Fatalf("default front face should be CCW")
	}
}

func TestViewportResetsDimensions(t *testing.T) {
	ctx := NewContext(10, 10)
	ctx.Viewport(2, 3, 20, 15)
	if ctx.width != 20 || ctx.height != 15 {
		t.Fatalf("Viewport did not update width/height: got (%d,%d)", ctx.width, ctx.height)
	}
	if ctx.viewportMinX != 2 || ctx.viewportMinY != 3 {
		t.Fatalf("Viewport origin = (%d,%d), want (2,3)", ctx.viewportMinX, ctx.viewportMinY)
	}
	if ctx.viewportMaxX != 21 || ctx.viewportMaxY != 17 {
		t.Fatalf("Viewport max = (%d,%d), want (21,17)", ctx.viewportMaxX, ctx.viewportMaxY)
	}
}

func TestEnableDisableRecognizedFunctions(t *testing.T) {
	ctx := NewContext(4, 4)
	for _, fn := range []Function{FuncAlphaTest, FuncBlend, FuncCullFace, FuncDepthTest, FuncStencilTest} {
		if !ctx.Enable(fn) {
			t.Fatalf("Enable(%v) returned false, want true", fn)
		}
	}
	if ctx.Enable(FuncZ) {
		t.Fatalf("Enable(FuncZ) returned true, want false (not a toggleable stage)")
	}
	if !ctx.alphaTest || !ctx.blend || !ctx.cullFace || !ctx.depthTest || !ctx.stencilTest {
		t.Fatalf("Enable did not set the expected flags: %+v", ctx)
	}
	ctx.Disable(FuncBlend)
	if ctx.blend {
		t.Fatalf("Disable(FuncBlend) did not clear blend flag")
	}
}

func TestDepthValueRejectsInvalidFunction(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.DepthValue(FuncReciprocalW)
	if ctx.depthValue != FuncReciprocalW {
		t.Fatalf("DepthValue(FuncReciprocalW) did not apply")
	}
	ctx.DepthValue(FuncBlend)
	if ctx.depthValue != FuncReciprocalW {
		t.Fatalf("DepthValue accepted an invalid source %v, previous value should be kept", ctx.depthValue)
	}
}

func TestColorMaskBitLayout(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.ColorMask(true, false, true, false)
	if ctx.colorMask != 0x00FF00FF {
		t.Fatalf("ColorMask(true,false,true,false) = %#08x, want 0x00ff00ff", ctx.colorMask)
	}
}

func TestThreadCountSingleVsMulti(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.ThreadCount(1)
	if ctx.asyncDraw {
		t.Fatalf("ThreadCount(1) should leave asyncDraw false")
	}
	ctx.ThreadCount(8)
	if !ctx.asyncDraw || ctx.threads != 8 || ctx.pool == nil {
		t.Fatalf("ThreadCount(8) should enable async draw with a worker pool")
	}
}

func TestCullBackFaceRespectsWinding(t *testing.T) {
	// v0,v1,v2 in counter-clockwise order (front face under CCW convention).
	if cullBackFace(-0.5, -0.5, 0.5, -0.5, 0, 0.5, true) {
		t.Fatalf("CCW-wound triangle should not be culled when front face is CCW")
	}
	// Same triangle is a back face when front face is declared CW.
	if !cullBackFace(-0.5, -0.5, 0.5, -0.5, 0, 0.5, false) {
		t.Fatalf("CCW-wound triangle should be culled when front face is CW")
	}
}
