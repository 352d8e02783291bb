package raster

// clipVertex is a post-vertex-shader vertex after perspective division:
// X, Y, Z hold x/w, y/w, z/w and RHW holds 1/w, the reciprocal-w used
// for perspective-correct interpolation (§4.6.1). Index is the vertex's
// position in the shader's varying list, which still holds entries for
// dropped triangles.
type clipVertex struct {
	X, Y, Z, RHW float32
	Index        int
}

// DrawArrays runs the full draw pipeline: it resets shader state, runs
// the vertex phase over `count` vertices starting at `offset`
// (truncated to the largest multiple of three), then rasterizes the
// resulting triangles into fb.
func (c *Context) DrawArrays(shader Shader, count, offset int, fb *Framebuffer) {
	shader.Reset()

	vertices := c.vertexPhase(shader, count, offset)
	c.pixelPhase(shader, vertices, fb)
}

// vertexPhase advances the shader offset times, then evaluates each of
// the next count vertices (count truncated to a multiple of three),
// grouping results into triangles. Any triangle with a non-positive w
// on any vertex is dropped (trivial back-plane reject); surviving
// triangles have their vertices perspective-divided and rhw stashed.
func (c *Context) vertexPhase(shader Shader, count, offset int) []clipVertex {
	for i := 0; i < offset; i++ {
		shader.Next()
	}

	count -= count % 3
	vertices := make([]clipVertex, 0, count)

	var rawX, rawY, rawZ, rawW [3]float32
	for i := 0; i < count; i++ {
		x, y, z, w := shader.Vertex(i + offset)
		slot := i % 3
		rawX[slot], rawY[slot], rawZ[slot], rawW[slot] = x, y, z, w

		if slot == 2 {
			if rawW[0] <= 0 || rawW[1] <= 0 || rawW[2] <= 0 {
				// drop: nothing appended for this triangle
			} else {
				for k := 0; k < 3; k++ {
					rhw := 1 / rawW[k]
					vertices = append(vertices, clipVertex{
						X: rawX[k] * rhw, Y: rawY[k] * rhw, Z: rawZ[k] * rhw, RHW: rhw,
						Index: i - 2 + k,
					})
				}
			}
		}

		shader.Next()
	}

	return vertices
}

// pixelPhase iterates the surviving triangles in emission order,
// back-face culls if enabled, and dispatches each to the single- or
// multi-threaded rasterizer.
func (c *Context) pixelPhase(shader Shader, vertices []clipVertex, fb *Framebuffer) {
	varyings := shader.GetVarying()

	var workerShaders []Shader
	if c.asyncDraw {
		workerShaders = make([]Shader, c.threads)
		for i := range workerShaders {
			workerShaders[i] = shader.Clone()
		}
	}

	for i := 0; i+3 <= len(vertices); i += 3 {
		vert := vertices[i : i+3]

		if c.cullFace && cullBackFace(vert[0].X, vert[0].Y, vert[1].X, vert[1].Y, vert[2].X, vert[2].Y, c.frontFaceIsCCW) {
			continue
		}

		first := vert[0].Index
		tri := varyings[first : first+3]

		if c.asyncDraw {
			c.triangleMultiThread(workerShaders, tri, vert, fb)
		} else {
			c.triangle(shader, tri, vert, fb)
		}
	}
}

// screenVertex is a triangle vertex's screen-space (viewport-mapped)
// position.
type screenVertex struct {
	X, Y float32
}

func (c *Context) viewportMap(v clipVertex) screenVertex {
	return screenVertex{
		X: (1+v.X)*float32(c.width)*0.5 + float32(c.viewportMinX),
		Y: (1-v.Y)*float32(c.height)*0.5 + float32(c.viewportMinY),
	}
}

// barycentric evaluates the edge-function barycentric weights of point
// (px,py) against the triangle (v0,v1,v2), using the A/B setup of §4.6.2:
// A = (x2-x0, x1-x0, x0), B = (y2-y0, y1-y0, y0).
func barycentric(v0, v1, v2 screenVertex, px, py float32) (w0, w1, w2 float32) {
	ax, ay, az := v2.X-v0.X, v1.X-v0.X, v0.X-px
	bx, by, bz := v2.Y-v0.Y, v1.Y-v0.Y, v0.Y-py

	ux := ay*bz - az*by
	uy := az*bx - ax*bz
	uz := ax*by - ay*bx

	invZ := 1 / uz
	return 1 - (ux+uy)*invZ, uy * invZ, ux * invZ
}

// quadOffsets is the fixed 2x2 sub-pixel traversal order of §4.6.2:
// sub-pixels 0,1,2,3 sit at (0,0), (1,0), (0,1), (1,1) from the quad
// origin (x+0.5, y+0.5), so sub-pixel 1 is the x neighbour and
// sub-pixel 2 the y neighbour of sub-pixel 0.
var quadOffsetsX = [4]float32{0, 1, 0, 1}
var quadOffsetsY = [4]float32{0, 0, 1, 1}

func boundingBox(v0, v1, v2 screenVertex, minX, minY, maxX, maxY int) (int, int, int, int) {
	bx0 := minInt(int(v0.X), minInt(int(v1.X), int(v2.X)))
	by0 := minInt(int(v0.Y), minInt(int(v1.Y), int(v2.Y)))
	bx1 := maxInt(int(v0.X), maxInt(int(v1.X), int(v2.X)))
	by1 := maxInt(int(v0.Y), maxInt(int(v1.Y), int(v2.Y)))

	bx0 = maxInt(bx0, minX)
	by0 = maxInt(by0, minY)
	bx1 = minInt(bx1, maxX)
	by1 = minInt(by1, maxY)
	return bx0, by0, bx1, by1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// triangle rasterizes a single triangle single-threaded.
func (c *Context) triangle(shader Shader, varying []Varying, vert []clipVertex, fb *Framebuffer) {
	v0, v1, v2 := c.viewportMap(vert[0]), c.viewportMap(vert[1]), c.viewportMap(vert[2])
	minX, minY, maxX, maxY := boundingBox(v0, v1, v2, c.viewportMinX, c.viewportMinY, c.viewportMaxX, c.viewportMaxY)

	c.rasterizeRows(shader, varying, vert, v0, v1, v2, fb, minX, minY, maxX, maxY, minY, 2)
}

// triangleMultiThread fans the same triangle out across the worker pool:
// worker i rasterizes rows {minY+2i, minY+2i+2N, ...}, each against its
// own cloned shader so per-quad sampler history stays private while all
// workers share read access to the triangle setup and write access to
// non-overlapping framebuffer rows.
func (c *Context) triangleMultiThread(shaders []Shader, varying []Varying, vert []clipVertex, fb *Framebuffer) {
	v0, v1, v2 := c.viewportMap(vert[0]), c.viewportMap(vert[1]), c.viewportMap(vert[2])
	minX, minY, maxX, maxY := boundingBox(v0, v1, v2, c.viewportMinX, c.viewportMinY, c.viewportMaxX, c.viewportMaxY)

	stride := 2 * c.threads
	tasks := make([]func(), c.threads)
	for i := 0; i < c.threads; i++ {
		i := i
		tasks[i] = func() {
			c.rasterizeRows(shaders[i], varying, vert, v0, v1, v2, fb, minX, minY, maxX, maxY, minY+2*i, stride)
		}
	}
	c.pool.ExecuteAll(tasks)
}

// rasterizeRows runs the quad-traversal inner loop over rows
// {startY, startY+stride, ...} within [minY,maxY], the shared body of
// both the single- and multi-threaded rasterizer entry points.
func (c *Context) rasterizeRows(shader Shader, varying []Varying, vert []clipVertex, v0, v1, v2 screenVertex, fb *Framebuffer, minX, minY, maxX, maxY, startY, stride int) {
	rhw0, rhw1, rhw2 := vert[0].RHW, vert[1].RHW, vert[2].RHW
	v0s := varying[0].Scale(rhw0)
	v1s := varying[1].Scale(rhw1)
	v2s := varying[2].Scale(rhw2)

	var z0, z1, z2 float32
	if c.depthValue != FuncReciprocalW {
		z0 = vert[0].Z * rhw0
		z1 = vert[1].Z * rhw1
		z2 = vert[2].Z * rhw2
	}

	var varyings [4]Varying
	var bary [4][3]float32
	var ws [4]float32
	var zs [4]float32

	for y := startY; y <= maxY; y += stride {
		entered, someTestFailed := false, false
		for x := minX; x <= maxX; x += 2 {
			quadX := float32(x) + 0.5
			quadY := float32(y) + 0.5

			var valid uint8
			inside := false

			for i := 0; i < 4; i++ {
				px := quadX + quadOffsetsX[i]
				py := quadY + quadOffsetsY[i]

				w0, w1, w2 := barycentric(v0, v1, v2, px, py)
				rhw := rhw0*w0 + rhw1*w1 + rhw2*w2
				w := 1 / rhw
				bary[i] = [3]float32{w0, w1, w2}
				ws[i] = w

				xx, yy := int(px), int(py)
				if xx < minX || xx > maxX || yy < minY || yy > maxY {
					continue
				}
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}

				var depth float32
				if c.depthValue == FuncReciprocalW {
					depth = rhw
				} else {
					depth = (z0*w0 + z1*w1 + z2*w2) * w
				}
				zs[i] = depth

				if !c.alphaTest {
					failed, ok := c.stencilDepthTest(xx, yy, uint(i), &valid, depth, fb)
					if !ok || failed {
						someTestFailed = true
					}
				} else {
					valid |= 1 << uint(i)
				}

				inside = true
			}
			if inside {
				entered = true
			}

			if valid != 0 {
				for i := 0; i < 4; i++ {
					w0, w1, w2 := bary[i][0], bary[i][1], bary[i][2]
					varyings[i] = v0s.Scale(w0).Add(v1s.Scale(w1)).Add(v2s.Scale(w2)).Scale(ws[i])
					shader.Sample(varyings[i])
				}

				shader.ComputeLevel(c.anisotropicFilter)

				c.shadeQuad(shader, varyings, zs, valid, x, y, fb)
			} else if !inside && entered && !someTestFailed {
				break
			}
		}
	}
}

// shadeQuad invokes the fragment shader for every valid sub-pixel of a
// quad and runs alpha-test/stencil-depth deferral, blending, and masked
// writeback, per §4.6.2 step 7.
func (c *Context) shadeQuad(shader Shader, varyings [4]Varying, zs [4]float32, valid uint8, x, y int, fb *Framebuffer) {
	for i := 0; i < 4; i++ {
		if valid&(1<<uint(i)) == 0 {
			continue
		}

		thisX := x + int(quadOffsetsX[i])
		thisY := y + int(quadOffsetsY[i])

		color := shader.Fragment(varyings[i], thisX, thisY)

		if c.alphaTest {
			if !c.alphaFunc.CompareUint8(c.alphaRef, color.A) {
				continue
			}
			var localValid uint8
			failed, ok := c.stencilDepthTest(thisX, thisY, 0, &localValid, zs[i], fb)
			if !ok || failed {
				continue
			}
		}

		c.writeback(thisX, thisY, color, fb)
	}
}

func (c *Context) writeback(x, y int, color Color, fb *Framebuffer) {
	if !fb.HasColor() {
		return
	}
	dst := fb.GetColor(x, y)

	var out Color
	if c.blend {
		out = c.blendColors(color, dst)
	} else {
		out = color
	}

	outPacked := out.Pack()
	dstPacked := dst.Pack()
	fb.SetColor(x, y, Unpack((outPacked&c.colorMask)|(dstPacked&^c.colorMask)))
}
