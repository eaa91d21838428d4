package internal

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/matrix"
)

// Input is everything one morph needs. Skeleton lines are in image space,
// the outline in tiling space; Transform maps tiling space to image space.
type Input struct {
	Raster    *Raster
	Skeleton  LineSet
	Outline   LineSet
	Transform matrix.Matrix
	Params    Params
}

// Options tune the pipeline without changing the warp itself.
type Options struct {
	// Workers is the number of concurrent render bands. Values <= 0 mean
	// GOMAXPROCS.
	Workers int `yaml:"workers"`

	// OutsideColor is painted where the warp maps outside the raster.
	OutsideColor RGBA `yaml:"-"`

	// IncludeSkeleton adds the skeleton lines, unchanged, to both warp line
	// sets so that they pin the interior in place.
	IncludeSkeleton bool `yaml:"include_skeleton"`

	// SubdivisionStep is the number of traced pixels per sub-segment.
	SubdivisionStep int `yaml:"subdivision_step"`

	// CrossDissolve blends the sample taken through the traced lines with a
	// second one taken through the outline lines, weighted by Params.T.
	CrossDissolve bool `yaml:"cross_dissolve"`
}

// DefaultOptions renders on a single goroutine with the skeleton anchored.
func DefaultOptions() Options {
	return Options{
		Workers:         1,
		OutsideColor:    Background,
		IncludeSkeleton: true,
		SubdivisionStep: DefaultSubdivisionStep,
	}
}

// Result holds the output of a morph and the line sets that produced it.
type Result struct {
	// Outer is the sorted outline in image space, subdivided alongside Inner.
	Outer LineSet
	// Inner is the outline snapped to and traced along the silhouette.
	Inner LineSet
	// Morph is Inner blended toward Outer by Params.T, in image space.
	Morph LineSet
	// TilingMorph is Morph mapped back into tiling space.
	TilingMorph LineSet
	// BBox is the pixel box of the transformed outline.
	BBox BBox
	// Raster is the rendered image, BBox sized. Nil when only the outline was
	// requested.
	Raster *Raster
	// Warnings collects the segments that could not be traced.
	Warnings []error
}

func checkInput(in Input) matrix.Matrix {
	if in.Raster == nil {
		fatal(errors.Wrap(ErrInvalidRaster, "no raster"))
	}
	if in.Raster.Width <= 0 || in.Raster.Height <= 0 || len(in.Raster.Pix) != in.Raster.Width*in.Raster.Height {
		fatal(errors.Wrapf(ErrInvalidRaster, "%d pixels for %dx%d", len(in.Raster.Pix), in.Raster.Width, in.Raster.Height))
	}
	if err := in.Params.Validate(); err != nil {
		fatal(err)
	}
	inverse, err := Invert(in.Transform)
	if err != nil {
		fatal(err)
	}
	return inverse
}

// MorphOutline runs every stage up to the line interpolation, without
// rendering. Invalid input is fatal; untraceable segments end up in
// Result.Warnings.
func MorphOutline(in Input, opts Options) *Result {
	inverse := checkInput(in)
	log := Logger()

	sorted, err := SortOutline(in.Outline)
	if err != nil {
		fatal(errors.Wrap(err, "sorting outline"))
	}
	log.Debug("sorted", slog.Int("lines", len(sorted)))

	outer := TransformLines(in.Transform, sorted)
	box := BoundingBox(sorted, in.Transform)
	log.Debug("transformed", slog.Any("bbox", box))

	inner := ProjectOutline(in.Raster, outer, in.Skeleton)
	log.Debug("projected", slog.Int("lines", len(inner)))

	outer, inner = RemoveDegenerate(outer, inner)
	log.Debug("cleaned", slog.Int("lines", len(inner)))

	step := opts.SubdivisionStep
	if step <= 0 {
		step = DefaultSubdivisionStep
	}
	outer, inner, warnings := TraceOutline(in.Raster, outer, inner, step)
	outer, inner = RemoveDegenerate(outer, inner)
	log.Debug("traced", slog.Int("lines", len(inner)), slog.Int("warnings", len(warnings)))

	morph := Interpolate(inner, outer, in.Params.T)
	return &Result{
		Outer:       outer,
		Inner:       inner,
		Morph:       morph,
		TilingMorph: TransformLines(inverse, morph),
		BBox:        box,
		Warnings:    warnings,
	}
}

// warpSets pairs destination lines with source lines for the warp field,
// appending the skeleton to both when asked. Pairs whose destination line
// collapsed to a point carry no direction and are dropped.
func warpSets(dst, src, skeleton LineSet, includeSkeleton bool) (LineSet, LineSet) {
	if len(dst) != len(src) {
		fatal(&LineCountMismatchError{Destination: len(dst), Source: len(src)})
	}
	keptDst := make(LineSet, 0, len(dst)+len(skeleton))
	keptSrc := make(LineSet, 0, len(src)+len(skeleton))
	for i := range dst {
		if dst[i].IsDegenerate() {
			Logger().Warn("dropping collapsed warp line", slog.Int("segment", i))
			continue
		}
		keptDst = append(keptDst, dst[i])
		keptSrc = append(keptSrc, src[i])
	}
	if includeSkeleton {
		anchors := RemoveDegenerateLines(skeleton)
		keptDst = append(keptDst, anchors...)
		keptSrc = append(keptSrc, anchors...)
	}
	return keptDst, keptSrc
}

// Morph runs the full pipeline and renders the result.
func Morph(ctx context.Context, in Input, opts Options) *Result {
	result := MorphOutline(in, opts)

	dst, src := warpSets(result.Morph, result.Inner, in.Skeleton, opts.IncludeSkeleton)
	field, err := NewWarpField(dst, src, in.Params)
	if err != nil {
		fatal(errors.Wrap(err, "building warp field"))
	}

	job := RenderJob{
		Source:       in.Raster,
		Box:          result.BBox,
		Field:        field,
		T:            in.Params.T,
		OutsideColor: opts.OutsideColor,
		Workers:      opts.Workers,
	}
	if opts.CrossDissolve {
		dst, outer := warpSets(result.Morph, result.Outer, in.Skeleton, opts.IncludeSkeleton)
		job.Dissolve, err = NewWarpField(dst, outer, in.Params)
		if err != nil {
			fatal(errors.Wrap(err, "building dissolve field"))
		}
	}

	result.Raster, err = Render(ctx, job)
	if err != nil {
		fatal(errors.Wrap(err, "rendering"))
	}
	return result
}
