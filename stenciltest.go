package raster

// stencilDepthTest runs the stencil-then-depth state machine for one
// sub-pixel, per §4.6.3. It returns (depthFailed, ok): ok is false when
// the stencil test itself failed (equivalent to the original's `None`);
// when ok is true, depthFailed reports whether the depth test
// subsequently failed. On success (ok && !depthFailed) bit i of valid
// is set.
func (c *Context) stencilDepthTest(x, y int, bit uint, valid *uint8, depth float32, fb *Framebuffer) (depthFailed, ok bool) {
	if c.stencilTest {
		stencilVal := fb.GetStencil(x, y) & c.stencilTestMask
		ref := c.stencilRef & c.stencilTestMask
		if !c.stencilFunc.CompareUint8(stencilVal, ref) {
			c.applyStencilOp(c.stencilFailOp, x, y, fb)
			return false, false
		}
	}

	if c.depthTest {
		old := fb.GetDepth(x, y)
		if c.depthFunc.Compare(old, depth) {
			if c.depthMask {
				fb.SetDepth(x, y, depth)
			}
			if c.stencilTest {
				c.applyStencilOp(c.allPassOp, x, y, fb)
			}
			*valid |= 1 << bit
			return false, true
		}
		if c.stencilTest {
			c.applyStencilOp(c.depthFailOp, x, y, fb)
		}
		return true, true
	}

	if c.stencilTest {
		c.applyStencilOp(c.allPassOp, x, y, fb)
	}
	*valid |= 1 << bit
	return false, true
}

// applyStencilOp applies op to the stencil buffer at (x,y), masked by
// the context's stencil write mask.
func (c *Context) applyStencilOp(op StencilOp, x, y int, fb *Framebuffer) {
	if !fb.HasStencil() {
		return
	}
	current := fb.GetStencil(x, y)
	keep := current &^ c.stencilWriteMask
	newVal := op.Apply(current, c.stencilRef) & c.stencilWriteMask
	fb.SetStencil(x, y, newVal|keep)
}
