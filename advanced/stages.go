// Package advanced exposes the individual stages of the morph pipeline, for
// callers who cache intermediate line sets or want to drive the stages
// themselves.
//
// Stages report invalid input by panicking, exactly like the internals do.
// Wrap calls in a function that defers HandleMorphPanicRecover to turn those
// panics into errors.
package advanced

import (
	"context"

	"github.com/osuushi/cellmorph/internal"
	"seehuhn.de/go/geom/matrix"
)

type (
	Point       = internal.Point
	IntPoint    = internal.IntPoint
	FeatureLine = internal.FeatureLine
	LineSet     = internal.LineSet
	Raster      = internal.Raster
	RGBA        = internal.RGBA
	BBox        = internal.BBox
	Params      = internal.Params
	Options     = internal.Options
	Input       = internal.Input
	Result      = internal.Result
	WarpField   = internal.WarpField
	RenderJob   = internal.RenderJob

	InvalidLoopError       = internal.InvalidLoopError
	LineCountMismatchError = internal.LineCountMismatchError
	DegenerateLineError    = internal.DegenerateLineError
	DegenerateTraceError   = internal.DegenerateTraceError
)

// HandleMorphPanicRecover converts a recovered stage panic into an error.
// Anything that is not a morph failure is re-raised.
func HandleMorphPanicRecover(r interface{}) error {
	return internal.HandleMorphPanicRecover(r)
}

// SortOutline chains unordered outline edges into one closed loop.
func SortOutline(lines LineSet) (LineSet, error) {
	return internal.SortOutline(lines)
}

// TransformLines maps lines from tiling space into image space.
func TransformLines(m matrix.Matrix, lines LineSet) LineSet {
	return internal.TransformLines(m, lines)
}

// ProjectOutline snaps outline endpoints onto the silhouette.
func ProjectOutline(r *Raster, outline, skeleton LineSet) LineSet {
	return internal.ProjectOutline(r, outline, skeleton)
}

// RemoveDegenerate drops the pairs whose inner line has zero length.
func RemoveDegenerate(outer, inner LineSet) (LineSet, LineSet) {
	return internal.RemoveDegenerate(outer, inner)
}

// TraceOutline replaces boundary segments by pieces following the
// silhouette. step <= 0 uses the default of 20 pixels per piece.
func TraceOutline(r *Raster, outer, inner LineSet, step int) (LineSet, LineSet, []error) {
	if step <= 0 {
		step = internal.DefaultSubdivisionStep
	}
	return internal.TraceOutline(r, outer, inner, step)
}

// Interpolate blends two line sets, (1-t)*src + t*dst.
func Interpolate(src, dst LineSet, t float64) LineSet {
	return internal.Interpolate(src, dst, t)
}

// NewWarpField prepares the backward mapping from dst lines to src lines.
func NewWarpField(dst, src LineSet, params Params) (*WarpField, error) {
	return internal.NewWarpField(dst, src, params)
}

// Render resamples job.Source through the warp field.
func Render(ctx context.Context, job RenderJob) (*Raster, error) {
	return internal.Render(ctx, job)
}

// MorphOutline runs every stage short of rendering.
func MorphOutline(in Input, opts Options) *Result {
	return internal.MorphOutline(in, opts)
}
