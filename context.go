package raster

import (
	"github.com/gocpu/raster/internal/parallel"
)

// Context holds pipeline configuration: viewport, anisotropy cap,
// masks/refs/compare-functions for the alpha/depth/stencil tests,
// blend state, winding, and the worker count used for parallel draws.
// A Context is created once per render target size and reused across
// draw calls; Framebuffers are created from it so they inherit its
// dimensions.
type Context struct {
	width, height int

	viewportMinX, viewportMinY int
	viewportMaxX, viewportMaxY int

	anisotropicFilter SamplePoint

	pool       *parallel.WorkerPool
	asyncDraw  bool
	threads    int

	colorMask uint32

	alphaTest bool
	alphaFunc CompareFunc
	alphaRef  uint8

	depthTest  bool
	depthMask  bool
	depthFunc  CompareFunc
	depthValue Function

	stencilTest      bool
	stencilWriteMask uint8
	stencilFunc      CompareFunc
	stencilRef       uint8
	stencilTestMask  uint8

	stencilFailOp StencilOp
	depthFailOp   StencilOp
	allPassOp     StencilOp

	blend         bool
	blendSrcFunc  BlendFactor
	blendDstFunc  BlendFactor
	blendEquation BlendEquation
	blendColor    Color

	cullFace       bool
	frontFaceIsCCW bool

	clearColor   Color
	clearDepth   float32
	clearStencil uint8
}

// NewContext creates a Context for a width x height render target with
// the viewport initialized to the full target and the conventional
// fixed-function defaults (no tests enabled, front face CCW, additive
// one/zero blend factors, single-threaded draws).
func NewContext(width, height int) *Context {
	return &Context{
		width:  width,
		height: height,

		viewportMaxX: width - 1,
		viewportMaxY: height - 1,

		anisotropicFilter: Sample1,

		colorMask: 0xFFFFFFFF,

		alphaFunc: CompareGreater,

		depthMask: true,
		depthFunc: CompareLess,

		depthValue: FuncZ,

		stencilWriteMask: 0xFF,
		stencilTestMask:  0xFF,
		stencilFunc:      CompareAlways,

		blendSrcFunc:  BlendOne,
		blendDstFunc:  BlendZero,
		blendColor:    ColorOne,

		frontFaceIsCCW: true,

		clearColor: White,
		clearDepth: 1.0,
	}
}

// Viewport resets the render target and viewport dimensions.
func (c *Context) Viewport(x, y, width, height int) {
	c.width, c.height = width, height
	c.viewportMinX, c.viewportMinY = x, y
	c.viewportMaxX, c.viewportMaxY = x+width-1, y+height-1
}

// ClearColor, ClearDepthValue, ClearStencilValue set the values used by Clear.
func (c *Context) ClearColor(color Color)    { c.clearColor = color }
func (c *Context) ClearDepthValue(d float32) { c.clearDepth = d }
func (c *Context) ClearStencilValue(s uint8) { c.clearStencil = s }

// Clear clears the attachments of fb selected by bits using the
// context's configured clear values.
func (c *Context) Clear(bits BufferBit, fb *Framebuffer) {
	fb.Clear(bits, c.clearColor, c.clearDepth, c.clearStencil)
}

// Enable turns on the named pipeline stage, returning false if fn does
// not name a toggleable stage (AlphaTest, Blend, CullFace, DepthTest,
// StencilTest).
func (c *Context) Enable(fn Function) bool { return c.switchFunction(fn, true) }

// Disable turns off the named pipeline stage.
func (c *Context) Disable(fn Function) bool { return c.switchFunction(fn, false) }

func (c *Context) switchFunction(fn Function, status bool) bool {
	switch fn {
	case FuncAlphaTest:
		c.alphaTest = status
	case FuncBlend:
		c.blend = status
	case FuncCullFace:
		c.cullFace = status
	case FuncDepthTest:
		c.depthTest = status
	case FuncStencilTest:
		c.stencilTest = status
	default:
		return false
	}
	return true
}

// ThreadCount sets the number of worker goroutines used for subsequent
// draws. A count of 1 (the default) runs draws single-threaded.
func (c *Context) ThreadCount(n int) {
	if n <= 1 {
		c.asyncDraw = false
		c.threads = 1
		return
	}
	c.asyncDraw = true
	c.threads = n
	c.pool = parallel.NewWorkerPool(n)
}

// AlphaFunc sets the alpha-test comparison and reference value.
func (c *Context) AlphaFunc(fn CompareFunc, ref uint8) {
	c.alphaFunc, c.alphaRef = fn, ref
}

// ColorMask sets which channels are writable in subsequent draws.
func (c *Context) ColorMask(r, g, b, a bool) {
	mask := uint32(0xFFFFFFFF)
	if !r {
		mask &^= 0x000000FF
	}
	if !g {
		mask &^= 0x0000FF00
	}
	if !b {
		mask &^= 0x00FF0000
	}
	if !a {
		mask &^= 0xFF000000
	}
	c.colorMask = mask
}

// DepthFunc sets the depth-test comparison.
func (c *Context) DepthFunc(fn CompareFunc) { c.depthFunc = fn }

// DepthMask enables or disables depth-buffer writes.
func (c *Context) DepthMask(mask bool) { c.depthMask = mask }

// DepthValue selects whether the interpolated depth source is the
// projected Z or the reciprocal of interpolated w. Any other Function
// is refused and logged.
func (c *Context) DepthValue(fn Function) {
	if fn != FuncZ && fn != FuncReciprocalW {
		Logger().Warn("raster: invalid depth value source, ignoring", "value", fn)
		return
	}
	c.depthValue = fn
}

// StencilMaskValue sets the stencil write mask.
func (c *Context) StencilMaskValue(mask uint8) { c.stencilWriteMask = mask }

// StencilFunc sets the stencil-test comparison, reference, and test mask.
func (c *Context) StencilFunc(fn CompareFunc, ref, testMask uint8) {
	c.stencilFunc, c.stencilRef, c.stencilTestMask = fn, ref, testMask
}

// StencilOpState sets the stencil op applied on stencil-fail,
// depth-fail, and all-pass respectively.
func (c *Context) StencilOpState(stencilFail, depthFail, allPass StencilOp) {
	c.stencilFailOp, c.depthFailOp, c.allPassOp = stencilFail, depthFail, allPass
}

// FrontFace sets which winding order is considered front-facing.
func (c *Context) FrontFace(w Winding) { c.frontFaceIsCCW = w == WindingCCW }

// AnisotropicFilter sets the anisotropy tap-count cap for subsequent
// draws.
func (c *Context) AnisotropicFilter(n SamplePoint) { c.anisotropicFilter = n }

// BlendFunc sets the source and destination blend factors.
func (c *Context) BlendFunc(src, dst BlendFactor) {
	c.blendSrcFunc, c.blendDstFunc = src, dst
}

// BlendEquationState sets the equation combining the factor-weighted
// src and dst colors.
func (c *Context) BlendEquationState(eq BlendEquation) { c.blendEquation = eq }

// BlendColorValue sets the constant blend color referenced by the
// ConstColor/ConstAlpha factor variants.
func (c *Context) BlendColorValue(color Color) { c.blendColor = color }

// NewFramebuffer creates a Framebuffer sized to match this context.
func (c *Context) NewFramebuffer() *Framebuffer {
	return NewFramebuffer(c.width, c.height)
}

// cullBackFace computes the z-component of (v1-v0) x (v2-v0) in NDC
// space and rejects the triangle when its sign matches the configured
// front-face winding. View direction is fixed at +Z, so only the
// z-component of the cross product is needed.
func cullBackFace(v0x, v0y, v1x, v1y, v2x, v2y float32, ccw bool) bool {
	e1x, e1y := v1x-v0x, v1y-v0y
	e2x, e2y := v2x-v0x, v2y-v0y
	viewZ := e1x*e2y - e1y*e2x
	if ccw {
		return viewZ < 0
	}
	return viewZ > 0
}
