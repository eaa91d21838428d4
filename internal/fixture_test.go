package internal

import (
	"embed"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixtures are SVG files in the fixtures/ directory, loaded by name sans
// extension. Rasters are built in code: a black background with white blocks.

// Epsilon is the tolerance for float comparisons in tests.
const Epsilon = 1e-9

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) (skeleton, outline LineSet) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	skeleton, outline, err = LoadLineSets(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return skeleton, outline
}

// Block is an inclusive pixel rectangle.
type Block struct {
	X0, Y0, X1, Y1 int
}

// BlockRaster is a width x height background raster with the given blocks
// painted white.
func BlockRaster(t *testing.T, width, height int, blocks ...Block) *Raster {
	r, err := NewRaster(width, height)
	require.NoError(t, err)
	for i := range r.Pix {
		r.Pix[i] = Background
	}
	white := RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, b := range blocks {
		for y := b.Y0; y <= b.Y1; y++ {
			for x := b.X0; x <= b.X1; x++ {
				r.Set(x, y, white)
			}
		}
	}
	return r
}

// GradientRaster is fully foreground, with colours varying by position so
// that resampling errors show up.
func GradientRaster(t *testing.T, width, height int) *Raster {
	r, err := NewRaster(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.Set(x, y, RGBA{R: uint8(10 + 5*x), G: uint8(10 + 5*y), B: 128, A: 255})
		}
	}
	return r
}

// recoverError runs f and returns the error it raised with fatal, if any.
func recoverError(f func()) (err error) {
	defer func() {
		err = HandleMorphPanicRecover(recover())
	}()
	f()
	return nil
}
