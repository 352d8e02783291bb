package raster

// Shader is the capability contract the rasterizer core requires of a
// user-supplied shader program: attribute streams, uniforms and
// samplers on the implementing type, with the methods below giving the
// core everything it needs to drive a draw call without ever knowing
// the concrete shader type.
//
// The rasterizer itself never generates a Shader: code that produces
// one from user-facing syntax (a DSL, codegen, reflection) is external
// to this package, same as in the upstream design this interface is
// modeled on.
type Shader interface {
	// Vertex evaluates the vertex stage for vertex index i, returning
	// its clip-space position (x, y, z, w), and appends exactly one
	// Varying to the shader's internal varying list.
	Vertex(i int) (x, y, z, w float32)

	// Fragment evaluates the fragment stage for the perspective-correct
	// interpolated varying at screen position (px, py).
	Fragment(v Varying, px, py int) Color

	// Sample recomputes every bound sampler's UV coordinates from v so
	// that per-quad screen-space derivatives can later be derived by
	// ComputeLevel. Called once per sub-pixel of a quad, in traversal
	// order, before ComputeLevel.
	Sample(v Varying)

	// Next advances any bound attribute cursors (see Attribute). Called
	// once per vertex, immediately after Vertex.
	Next()

	// Reset zeroes all attribute cursors and empties the varying list,
	// preparing the shader for a new draw call.
	Reset()

	// GetVarying returns the varying list accumulated since the last
	// Reset, indexed in the order Vertex was called.
	GetVarying() []Varying

	// ComputeLevel finalizes the LOD/anisotropy selection of every
	// bound sampler from the four UV samples most recently supplied via
	// Sample, propagating the given anisotropy tap-count cap.
	ComputeLevel(samplePoint SamplePoint)

	// Clone duplicates samplers and uniforms but starts with a fresh,
	// empty varying list and zeroed attribute cursors. Used to give
	// each worker thread of a parallel draw its own private sampler
	// history, while sharing texture handles and uniform values with
	// the master shader.
	Clone() Shader
}
