package internal

import (
	"context"
	"log/slog"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RenderJob describes one backward-mapped resampling of Source into a new
// raster covering Box (image space).
type RenderJob struct {
	Source *Raster
	Box    BBox

	// Field maps output pixels to source positions.
	Field *WarpField

	// Dissolve, if set, maps output pixels to a second source position. The
	// two samples are blended with T, 0 keeping Field's sample only.
	Dissolve *WarpField
	T        float64

	// OutsideColor is painted wherever the warp lands outside Source.
	OutsideColor RGBA

	// Workers is the number of row bands rendered concurrently. Values <= 0
	// mean GOMAXPROCS.
	Workers int
}

// edgeTolerance absorbs the rounding of the warp's weighted average, which
// can land a hair outside the raster for points exactly on its edge.
const edgeTolerance = 1e-6

// sourcePoint maps q through field and clamps the result into the source
// raster. It reports false when the result is NaN or further than
// edgeTolerance outside the raster.
func (j *RenderJob) sourcePoint(field *WarpField, q Point) (Point, bool) {
	s := field.Map(q)
	if math.IsNaN(s.X) || math.IsNaN(s.Y) {
		return s, false
	}
	maxX := float64(j.Source.Width - 1)
	maxY := float64(j.Source.Height - 1)
	if s.X < -edgeTolerance || s.Y < -edgeTolerance || s.X > maxX+edgeTolerance || s.Y > maxY+edgeTolerance {
		return s, false
	}
	s.X = math.Min(math.Max(s.X, 0), maxX)
	s.Y = math.Min(math.Max(s.Y, 0), maxY)
	return s, true
}

// pixel computes the output colour for image-space point q.
func (j *RenderJob) pixel(q Point) RGBA {
	s, ok := j.sourcePoint(j.Field, q)
	if !ok {
		return j.OutsideColor
	}
	c := Bilinear(j.Source, s.Y, s.X)
	if j.Dissolve == nil {
		return c
	}
	d, ok := j.sourcePoint(j.Dissolve, q)
	if !ok {
		return c
	}
	return ColorInterpolate(c, Bilinear(j.Source, d.Y, d.X), j.T)
}

// renderRows fills rows [from, to) of out.
func (j *RenderJob) renderRows(ctx context.Context, out *Raster, from, to int) error {
	for row := from; row < to; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		y := float64(j.Box[1] + row)
		for col := 0; col < out.Width; col++ {
			q := Point{X: float64(j.Box[0] + col), Y: y}
			out.Set(col, row, j.pixel(q))
		}
	}
	return nil
}

// Render produces the output raster, Box.Width() x Box.Height() pixels.
// Output pixel (col, row) corresponds to image-space point
// (Box[0]+col, Box[1]+row).
//
// Rows are split into contiguous bands, one per worker. Each band writes only
// its own rows and the warp field is read-only, so the result is identical
// for any worker count.
func Render(ctx context.Context, job RenderJob) (*Raster, error) {
	if job.Source == nil || job.Field == nil {
		return nil, errors.New("render: missing source raster or warp field")
	}
	if job.Box.Empty() {
		return nil, errors.Wrapf(ErrInvalidRaster, "empty bounding box %v", job.Box)
	}
	out, err := NewRaster(job.Box.Width(), job.Box.Height())
	if err != nil {
		return nil, err
	}

	workers := job.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > out.Height {
		workers = out.Height
	}
	Logger().Debug("rendering",
		slog.Int("width", out.Width), slog.Int("height", out.Height),
		slog.Int("lines", job.Field.Len()), slog.Int("bands", workers))

	if workers == 1 {
		if err := job.renderRows(ctx, out, 0, out.Height); err != nil {
			return nil, err
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	bandHeight := (out.Height + workers - 1) / workers
	for from := 0; from < out.Height; from += bandHeight {
		from := from
		to := from + bandHeight
		if to > out.Height {
			to = out.Height
		}
		g.Go(func() error {
			return job.renderRows(ctx, out, from, to)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
