// Package cellmorph fits an image to an outline.
//
// Given a raster whose subject is drawn on a reserved background colour, a
// skeleton of feature lines inside the subject, and a closed outline, it
// snaps the outline onto the subject's silhouette, traces the silhouette
// between the snapped points, and resamples the image with a multi-line
// (Beier-Neely) warp so that the silhouette moves toward the outline.
//
// The background colour is opaque black, (0, 0, 0, 255). Every other colour
// is part of the subject.
package cellmorph

import (
	"context"
	"log/slog"

	"github.com/osuushi/cellmorph/advanced"
	"github.com/osuushi/cellmorph/internal"
	"seehuhn.de/go/geom/matrix"
)

type Point = advanced.Point
type FeatureLine = advanced.FeatureLine
type LineSet = advanced.LineSet
type Raster = advanced.Raster
type RGBA = advanced.RGBA
type BBox = advanced.BBox
type Params = advanced.Params
type Options = advanced.Options
type Input = advanced.Input
type Result = advanced.Result

type InvalidLoopError = advanced.InvalidLoopError
type LineCountMismatchError = advanced.LineCountMismatchError
type DegenerateLineError = advanced.DegenerateLineError
type DegenerateTraceError = advanced.DegenerateTraceError

// Background is the reserved colour that marks pixels outside the subject.
var Background = internal.Background

// Sentinel errors. Test with errors.Is or errors.Cause.
var (
	ErrInvalidRaster     = internal.ErrInvalidRaster
	ErrSingularTransform = internal.ErrSingularTransform
	ErrInvalidParams     = internal.ErrInvalidParams
)

// Line builds a feature line from raw coordinates.
func Line(x1, y1, x2, y2 float64) FeatureLine {
	return internal.Line(x1, y1, x2, y2)
}

// DefaultParams are p=0, a=1, b=2, t=0.5.
func DefaultParams() Params {
	return internal.DefaultParams()
}

// DefaultOptions render on one goroutine, anchor the skeleton and subdivide
// traced segments every 20 pixels.
func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// SetLogger installs a logger for all morphs. The package is silent by
// default; nil restores that.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}

// NewRaster allocates a raster filled with opaque white.
func NewRaster(width, height int) (*Raster, error) {
	return internal.NewRaster(width, height)
}

// RasterFromBytes wraps a flat, row-major RGBA buffer of width*height*4
// bytes.
func RasterFromBytes(width, height int, data []byte) (*Raster, error) {
	return internal.RasterFromBytes(width, height, data)
}

// Morph fits the raster to the outline and renders the result, sized to the
// bounding box of the transformed outline.
//
// The outline must form exactly one closed loop. Segments that cannot be
// traced along the silhouette are kept as they are and reported in
// Result.Warnings; they are not errors.
func Morph(ctx context.Context, in Input, opts Options) (result *Result, err error) {
	defer func() {
		recoveredErr := advanced.HandleMorphPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.Morph(ctx, in, opts), nil
}

// MorphOutline runs the same stages as Morph without rendering, returning the
// morphed lines in image space and in tiling space.
func MorphOutline(in Input, opts Options) (result *Result, err error) {
	defer func() {
		recoveredErr := advanced.HandleMorphPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.MorphOutline(in, opts), nil
}

// MorphBytes is Morph over a raw RGBA buffer with the transform given as six
// coefficients, [a b c d e f] mapping (x, y) to (a*x + c*y + e, b*x + d*y + f).
// It returns the rendered buffer and its bounding box in image space.
func MorphBytes(ctx context.Context, width, height int, data []byte, skeleton, outline LineSet, transform [6]float64, params Params) ([]byte, BBox, error) {
	r, err := internal.RasterFromBytes(width, height, data)
	if err != nil {
		return nil, BBox{}, err
	}
	result, err := Morph(ctx, Input{
		Raster:    r,
		Skeleton:  skeleton,
		Outline:   outline,
		Transform: matrix.Matrix(transform),
		Params:    params,
	}, DefaultOptions())
	if err != nil {
		return nil, BBox{}, err
	}
	return result.Raster.Bytes(), result.BBox, nil
}

// BoundingBox is the pixel box [xmin, ymin, xmax, ymax] of outline after
// transformation: floor of the minimum, ceil of the maximum.
func BoundingBox(outline LineSet, transform matrix.Matrix) BBox {
	return internal.BoundingBox(outline, transform)
}
