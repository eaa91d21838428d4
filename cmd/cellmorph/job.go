package main

import (
	"io"
	"os"

	"github.com/osuushi/cellmorph"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/matrix"
)

// Job is the YAML description of one morph. Paths are relative to the
// working directory. Inline line sets are used when no SVG is given, each
// line written as [x1, y1, x2, y2].
type Job struct {
	Image   string `yaml:"image"`
	Lines   string `yaml:"lines"`
	Output  string `yaml:"output"`
	Overlay string `yaml:"overlay"`

	Transform []float64         `yaml:"transform"`
	Params    cellmorph.Params  `yaml:"params"`
	Options   cellmorph.Options `yaml:"options"`
	Skeleton  [][4]float64      `yaml:"skeleton"`
	Outline   [][4]float64      `yaml:"outline"`
}

// DefaultJob has the library defaults and an identity transform.
func DefaultJob() Job {
	return Job{
		Transform: []float64{1, 0, 0, 1, 0, 0},
		Params:    cellmorph.DefaultParams(),
		Options:   cellmorph.DefaultOptions(),
	}
}

// ReadJob decodes a job on top of the defaults, so that a file only needs to
// name what it changes.
func ReadJob(r io.Reader) (Job, error) {
	job := DefaultJob()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&job); err != nil && err != io.EOF {
		return job, errors.Wrap(err, "decoding job")
	}
	return job, nil
}

// LoadJob reads a job file.
func LoadJob(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, errors.Wrap(err, "opening job")
	}
	defer f.Close()
	return ReadJob(f)
}

// Matrix returns the tiling to image transform.
func (j Job) Matrix() (matrix.Matrix, error) {
	if len(j.Transform) != 6 {
		return matrix.Matrix{}, errors.Errorf("transform has %d coefficients, want 6", len(j.Transform))
	}
	var m matrix.Matrix
	copy(m[:], j.Transform)
	return m, nil
}

func toLineSet(lines [][4]float64) cellmorph.LineSet {
	result := make(cellmorph.LineSet, len(lines))
	for i, l := range lines {
		result[i] = cellmorph.Line(l[0], l[1], l[2], l[3])
	}
	return result
}

// InlineLines returns the line sets written in the job itself.
func (j Job) InlineLines() (skeleton, outline cellmorph.LineSet) {
	return toLineSet(j.Skeleton), toLineSet(j.Outline)
}
