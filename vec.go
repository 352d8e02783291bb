package raster

import "math"

// Vec2, Vec3 and Vec4 are the host-side vector types example and test
// shaders use to build clip-space positions and varyings. The rasterizer
// core itself never depends on these: per the Non-goals there is no
// geometry or transform stage in the core, so a vertex shader is free to
// use any vector math it likes. These three are provided because every
// example needs *some* vector type, in the style of the teacher's own
// Vec2 (extended here to three and four dimensions the same way).
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a homogeneous 3D vector/point (x,y,z,w).
type Vec4 struct {
	X, Y, Z, W float32
}

// V2 is a convenience constructor for Vec2.
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// V3 is a convenience constructor for Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// V4 is a convenience constructor for Vec4.
func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec2) Add(w Vec2) Vec2 { return Vec2{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{X: v.X - w.X, Y: v.Y - w.Y} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(w Vec2) float32 { return v.X*w.X + v.Y*w.Y }
func (v Vec2) Length() float32    { return float32(math.Sqrt(float64(v.Dot(v)))) }

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z} }
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the 3D cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Length() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Normalize returns a unit vector in the same direction, or the zero
// vector if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// ToVec4 extends v to a homogeneous point/vector with the given w.
func (v Vec3) ToVec4(w float32) Vec4 { return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w} }

func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z, W: v.W + w.W}
}
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z, W: v.W - w.W}
}
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }
