package raster

// Framebuffer holds the color, depth and stencil attachments a draw call
// renders into. Each attachment is a flat row-major buffer allocated
// lazily on first attach, with the defaults documented in §4.4: opaque
// white color, 1.0 depth, zero stencil.
//
// Indexed accessors are unchecked: callers (the rasterizer core) are
// expected to have already clamped coordinates to the viewport. This
// mirrors the teacher's internal/image.ImageBuf convention of exposing
// the backing slice directly, taken further here since the rasterizer's
// hot loop cannot afford a bounds check per sub-pixel.
type Framebuffer struct {
	width, height int

	color   []Color
	depth   []float32
	stencil []uint8
}

// NewFramebuffer creates an unattached framebuffer of the given
// dimensions. No attachment is allocated until Attach* is called.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{width: width, height: height}
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// AttachColor allocates the color attachment if not already present,
// filling it with opaque white.
func (fb *Framebuffer) AttachColor() {
	if fb.color != nil {
		return
	}
	fb.color = make([]Color, fb.width*fb.height)
	fb.ClearColor(White)
}

// AttachDepth allocates the depth attachment if not already present,
// filling it with 1.0.
func (fb *Framebuffer) AttachDepth() {
	if fb.depth != nil {
		return
	}
	fb.depth = make([]float32, fb.width*fb.height)
	fb.ClearDepth(1.0)
}

// AttachStencil allocates the stencil attachment if not already present,
// filling it with zero.
func (fb *Framebuffer) AttachStencil() {
	if fb.stencil != nil {
		return
	}
	fb.stencil = make([]uint8, fb.width*fb.height)
}

// AttachAll allocates every attachment.
func (fb *Framebuffer) AttachAll() {
	fb.AttachColor()
	fb.AttachDepth()
	fb.AttachStencil()
}

// HasColor, HasDepth, HasStencil report whether the given attachment has
// been allocated.
func (fb *Framebuffer) HasColor() bool   { return fb.color != nil }
func (fb *Framebuffer) HasDepth() bool   { return fb.depth != nil }
func (fb *Framebuffer) HasStencil() bool { return fb.stencil != nil }

// doublingFillColor seeds buf[0] with v and then repeatedly doubles the
// populated prefix via copy until the whole slice is filled — O(n) work
// but only O(log n) copy calls, matching §4.4's "doubling-copy fill".
func doublingFillColor(buf []Color, v Color) {
	if len(buf) == 0 {
		return
	}
	buf[0] = v
	filled := 1
	for filled < len(buf) {
		n := copy(buf[filled:], buf[:filled])
		filled += n
	}
}

func doublingFillFloat32(buf []float32, v float32) {
	if len(buf) == 0 {
		return
	}
	buf[0] = v
	filled := 1
	for filled < len(buf) {
		n := copy(buf[filled:], buf[:filled])
		filled += n
	}
}

// ClearColor fills the color attachment (if allocated) with c using the
// doubling-copy fill.
func (fb *Framebuffer) ClearColor(c Color) {
	if fb.color == nil {
		return
	}
	doublingFillColor(fb.color, c)
}

// ClearDepth fills the depth attachment (if allocated) with value.
func (fb *Framebuffer) ClearDepth(value float32) {
	if fb.depth == nil {
		return
	}
	doublingFillFloat32(fb.depth, value)
}

// ClearStencil fills the stencil attachment (if allocated) with value,
// using the same doubling-copy fill directly on its one-byte-per-pixel
// buffer.
func (fb *Framebuffer) ClearStencil(value uint8) {
	if fb.stencil == nil {
		return
	}
	fillBytes(fb.stencil, value)
}

// Clear clears the attachments selected by bits using the context's
// configured clear values.
func (fb *Framebuffer) Clear(bits BufferBit, clearColor Color, clearDepth float32, clearStencil uint8) {
	if bits.Has(BufferColor) {
		fb.ClearColor(clearColor)
	}
	if bits.Has(BufferDepth) {
		fb.ClearDepth(clearDepth)
	}
	if bits.Has(BufferStencil) {
		fb.ClearStencil(clearStencil)
	}
}

func fillBytes(b []byte, v byte) {
	if len(b) == 0 {
		return
	}
	b[0] = v
	filled := 1
	for filled < len(b) {
		n := copy(b[filled:], b[:filled])
		filled += n
	}
}

// GetColor returns the color at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) GetColor(x, y int) Color { return fb.color[y*fb.width+x] }

// SetColor writes the color at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) SetColor(x, y int, c Color) { fb.color[y*fb.width+x] = c }

// GetDepth returns the depth at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) GetDepth(x, y int) float32 { return fb.depth[y*fb.width+x] }

// SetDepth writes the depth at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) SetDepth(x, y int, d float32) { fb.depth[y*fb.width+x] = d }

// GetStencil returns the stencil value at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) GetStencil(x, y int) uint8 { return fb.stencil[y*fb.width+x] }

// SetStencil writes the stencil value at (x,y). Unchecked: x,y must be in bounds.
func (fb *Framebuffer) SetStencil(x, y int, s uint8) { fb.stencil[y*fb.width+x] = s }

// ColorBytes returns the color attachment as a flat R,G,B,A byte slice,
// row-major, top-to-bottom, suitable for feeding directly to
// image/png.Encode via a stdlib image.RGBA wrapper (see cmd/rastercli).
// Returns nil if color is unattached.
func (fb *Framebuffer) ColorBytes() []byte {
	if fb.color == nil {
		return nil
	}
	out := make([]byte, 0, len(fb.color)*4)
	for _, c := range fb.color {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}
