// Command cellmorph fits a cell image to an outline and writes the result as
// a PNG.
//
//	cellmorph --job job.yaml
//	cellmorph --image cell.png --lines cell.svg --out morphed.png -t 0.8
//
// Flags override the job file. The lines file is an SVG with <line> elements
// classed "skeleton" and "outline" (or a single <polygon> outline).
package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/osuushi/cellmorph"
	"github.com/osuushi/cellmorph/internal"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("cellmorph", "Fit a cell image to an outline.")

	jobFile   = app.Flag("job", "YAML job file.").Short('j').ExistingFile()
	imageFile = app.Flag("image", "Input image (png, jpeg, gif, bmp, tiff, webp).").Short('i').String()
	linesFile = app.Flag("lines", "SVG holding the skeleton and outline lines.").Short('l').String()
	outFile   = app.Flag("out", "Output PNG.").Short('o').String()
	svgFile   = app.Flag("svg", "Also write the line sets as an SVG overlay.").String()

	workers  = app.Flag("workers", "Render bands, 0 for one per CPU.").Int()
	dissolve = app.Flag("dissolve", "Cross-dissolve toward the outline geometry.").Bool()
	debug    = app.Flag("debug", "Draw the line sets in the terminal (iTerm only).").Bool()
	verbose  = app.Flag("verbose", "Log every stage.").Short('v').Bool()

	paramP = app.Flag("p", "Line length exponent.").Float64()
	paramA = app.Flag("a", "Distance offset.").Float64()
	paramB = app.Flag("b", "Distance falloff exponent.").Float64()
	paramT = app.Flag("t", "Blend position, 0 keeps the silhouette, 1 reaches the outline.").Float64()

	// Flags given on the command line, by name.
	setFlags = map[string]bool{}
)

func markSet(names ...string) {
	for _, name := range names {
		name := name
		app.GetFlag(name).Action(func(*kingpin.ParseContext) error {
			setFlags[name] = true
			return nil
		})
	}
}

func main() {
	markSet("workers", "dissolve", "p", "a", "b", "t")
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		cellmorph.SetLogger(logger)
	}

	job, err := buildJob()
	app.FatalIfError(err, "job")
	app.FatalIfError(run(job), "morph")
}

// buildJob loads the job file, if any, and applies the flags on top.
func buildJob() (Job, error) {
	job := DefaultJob()
	if *jobFile != "" {
		var err error
		if job, err = LoadJob(*jobFile); err != nil {
			return job, err
		}
	}

	if *imageFile != "" {
		job.Image = *imageFile
	}
	if *linesFile != "" {
		job.Lines = *linesFile
	}
	if *outFile != "" {
		job.Output = *outFile
	}
	if *svgFile != "" {
		job.Overlay = *svgFile
	}
	if setFlags["workers"] {
		job.Options.Workers = *workers
	}
	if setFlags["dissolve"] {
		job.Options.CrossDissolve = *dissolve
	}
	for name, override := range map[string]struct{ from, to *float64 }{
		"p": {paramP, &job.Params.P},
		"a": {paramA, &job.Params.A},
		"b": {paramB, &job.Params.B},
		"t": {paramT, &job.Params.T},
	} {
		if setFlags[name] {
			*override.to = *override.from
		}
	}

	switch {
	case job.Image == "":
		return job, errors.New("no input image")
	case job.Output == "":
		return job, errors.New("no output file")
	}
	return job, nil
}

func readImage(path string) (*internal.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	slog.Debug("decoded image", slog.String("format", format), slog.Any("bounds", img.Bounds()))
	return internal.RasterFromImage(img)
}

func readLines(job Job) (skeleton, outline cellmorph.LineSet, err error) {
	if job.Lines == "" {
		skeleton, outline = job.InlineLines()
		return skeleton, outline, nil
	}
	f, err := os.Open(job.Lines)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening lines")
	}
	defer f.Close()
	return internal.LoadLineSets(f)
}

func writePNG(path string, r *internal.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return errors.Wrap(err, "encoding output")
	}
	return f.Close()
}

func writeOverlay(path string, job Job, source *internal.Raster, skeleton cellmorph.LineSet, result *cellmorph.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating overlay")
	}
	// Outer is in image space; only tiling-space input is classed "outline".
	err = internal.WriteOverlay(f, source.Width, source.Height, job.Image,
		internal.OverlayLayer{Class: "skeleton", Color: "red", Lines: skeleton},
		internal.OverlayLayer{Class: "outer", Color: "blue", Lines: result.Outer},
		internal.OverlayLayer{Class: "traced", Color: "lime", Lines: result.Inner},
		internal.OverlayLayer{Class: "morph", Color: "yellow", Lines: result.Morph},
	)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(job Job) error {
	source, err := readImage(job.Image)
	if err != nil {
		return err
	}
	skeleton, outline, err := readLines(job)
	if err != nil {
		return err
	}
	transform, err := job.Matrix()
	if err != nil {
		return err
	}

	result, err := cellmorph.Morph(context.Background(), cellmorph.Input{
		Raster:    source,
		Skeleton:  skeleton,
		Outline:   outline,
		Transform: transform,
		Params:    job.Params,
	}, job.Options)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}

	if job.Overlay != "" {
		if err := writeOverlay(job.Overlay, job, source, skeleton, result); err != nil {
			return err
		}
	}
	if *debug {
		fmt.Print(internal.DbgString(source, result.Inner))
		internal.DbgDraw(source, 4,
			internal.DebugLayer{Lines: skeleton, R: 1},
			internal.DebugLayer{Lines: result.Outer, B: 1},
			internal.DebugLayer{Lines: result.Inner, G: 1},
		)
	}
	return writePNG(job.Output, result.Raster)
}
