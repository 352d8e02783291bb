package raster

import "errors"

// Resource-acquisition errors (§7): these are the only points in the
// package that return a Go error. The rasterization hot path never
// allocates or returns an error — configuration mistakes there are
// refused and logged (see logger.go), never propagated as errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrDataTooSmall is returned when a raw pixel buffer is smaller than
	// width*height*4 bytes.
	ErrDataTooSmall = errors.New("raster: pixel data smaller than width*height*4")

	// ErrCubeFaceMismatch is returned when the six faces supplied to
	// NewCubeTexture are not all equal-sized squares.
	ErrCubeFaceMismatch = errors.New("raster: cube texture faces must be equal-sized squares")
)
