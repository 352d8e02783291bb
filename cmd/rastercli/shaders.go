package main

import "github.com/gocpu/raster"

// colorVarying carries an interpolated per-vertex RGBA color (as floats,
// so interpolation doesn't round-trip through Color's saturating uint8
// arithmetic until the final fragment write).
type colorVarying struct {
	R, G, B, A float32
}

func (c colorVarying) Add(o raster.Varying) raster.Varying {
	ov := o.(colorVarying)
	return colorVarying{c.R + ov.R, c.G + ov.G, c.B + ov.B, c.A + ov.A}
}

func (c colorVarying) Scale(s float32) raster.Varying {
	return colorVarying{c.R * s, c.G * s, c.B * s, c.A * s}
}

func (c colorVarying) toColor() raster.Color {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return uint8(v)
	}
	return raster.Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// triangleShader is a vertex-colored, untextured shader: the vertex stream
// supplies clip-space positions and per-vertex colors, and the fragment
// stage writes the interpolated color unchanged.
type triangleShader struct {
	positions *raster.Attribute[raster.Vec4]
	colors    *raster.Attribute[colorVarying]

	varyings []raster.Varying
}

func (s *triangleShader) Vertex(i int) (x, y, z, w float32) {
	p := s.positions.Get()
	s.varyings = append(s.varyings, s.colors.Get())
	return p.X, p.Y, p.Z, p.W
}

func (s *triangleShader) Fragment(v raster.Varying, px, py int) raster.Color {
	return v.(colorVarying).toColor()
}

func (s *triangleShader) Sample(v raster.Varying) {}

func (s *triangleShader) Next() {
	s.positions.Next()
	s.colors.Next()
}

func (s *triangleShader) Reset() {
	s.positions.Reset()
	s.colors.Reset()
	s.varyings = s.varyings[:0]
}

func (s *triangleShader) GetVarying() []raster.Varying { return s.varyings }

func (s *triangleShader) ComputeLevel(samplePoint raster.SamplePoint) {}

func (s *triangleShader) Clone() raster.Shader {
	return &triangleShader{positions: s.positions, colors: s.colors}
}

// uvVarying carries an interpolated texture coordinate.
type uvVarying struct {
	U, V float32
}

func (v uvVarying) Add(o raster.Varying) raster.Varying {
	ov := o.(uvVarying)
	return uvVarying{v.U + ov.U, v.V + ov.V}
}

func (v uvVarying) Scale(s float32) raster.Varying {
	return uvVarying{v.U * s, v.V * s}
}

// quadShader samples a Sampler2D bound texture across a perspective
// projected quad.
type quadShader struct {
	positions *raster.Attribute[raster.Vec4]
	uvs       *raster.Attribute[uvVarying]
	sampler   *raster.Sampler2D

	magFilter, minFilter raster.FilterFunc

	varyings []raster.Varying
}

func (s *quadShader) Vertex(i int) (x, y, z, w float32) {
	p := s.positions.Get()
	s.varyings = append(s.varyings, s.uvs.Get())
	return p.X, p.Y, p.Z, p.W
}

func (s *quadShader) Fragment(v raster.Varying, px, py int) raster.Color {
	return s.sampler.GetColor()
}

func (s *quadShader) Sample(v raster.Varying) {
	uv := v.(uvVarying)
	s.sampler.Sample(uv.U, uv.V)
}

func (s *quadShader) Next() {
	s.positions.Next()
	s.uvs.Next()
}

func (s *quadShader) Reset() {
	s.positions.Reset()
	s.uvs.Reset()
	s.varyings = s.varyings[:0]
}

func (s *quadShader) GetVarying() []raster.Varying { return s.varyings }

func (s *quadShader) ComputeLevel(samplePoint raster.SamplePoint) {
	s.sampler.ComputeLevel(samplePoint)
}

func (s *quadShader) Clone() raster.Shader {
	sampler := raster.NewSampler2D(s.sampler.Texture())
	sampler.SetMagFilter(s.magFilter)
	sampler.SetMinFilter(s.minFilter)
	return &quadShader{positions: s.positions, uvs: s.uvs, sampler: sampler, magFilter: s.magFilter, minFilter: s.minFilter}
}
