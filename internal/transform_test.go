package internal

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
)

func TestTransform(t *testing.T) {
	m := matrix.Matrix{2, 0, 0, 3, 10, 20}
	assert.Equal(t, Point{X: 12, Y: 23}, Transform(m, Point{X: 1, Y: 1}))
	assert.Equal(t, Point{X: 1, Y: 1}, Transform(matrix.Identity, Point{X: 1, Y: 1}))

	lines := TransformLines(m, LineSet{Line(0, 0, 1, 1)})
	assert.Equal(t, LineSet{Line(10, 20, 12, 23)}, lines)
}

func TestInvert(t *testing.T) {
	for name, m := range map[string]matrix.Matrix{
		"identity":  matrix.Identity,
		"scale":     matrix.Matrix{2, 0, 0, 3, 10, 20},
		"rotate":    matrix.RotateDeg(30).Translate(5, -7),
		"shear":     {1, 0.5, 0.25, 1, -3, 4},
		"reflected": {-1, 0, 0, 1, 8, 0},
	} {
		t.Run(name, func(t *testing.T) {
			inverse, err := Invert(m)
			require.NoError(t, err)
			for _, p := range queryPoints {
				assertPointInDelta(t, p, Transform(inverse, Transform(m, p)), 1e-9)
			}
			assert.Equal(t, m.Inv(), inverse)
		})
	}

	t.Run("singular", func(t *testing.T) {
		_, err := Invert(matrix.Matrix{1, 2, 2, 4, 0, 0})
		assert.Equal(t, ErrSingularTransform, errors.Cause(err))

		_, err = Invert(matrix.Matrix{})
		assert.Equal(t, ErrSingularTransform, errors.Cause(err))

		_, err = Invert(matrix.Matrix{math.NaN(), 0, 0, 1, 0, 0})
		assert.Equal(t, ErrSingularTransform, errors.Cause(err))
	})
}

func TestBoundingBox(t *testing.T) {
	lines := LineSet{Line(0.2, 0.3, 1.7, 0.3), Line(1.7, 0.3, 1.7, 1.1), Line(1.7, 1.1, 0.2, 0.3)}

	t.Run("identity", func(t *testing.T) {
		box := BoundingBox(lines, matrix.Identity)
		assert.Equal(t, BBox{0, 0, 2, 2}, box)
		assert.Equal(t, 2, box.Width())
		assert.Equal(t, 2, box.Height())
	})

	t.Run("scaled and translated", func(t *testing.T) {
		box := BoundingBox(lines, matrix.Matrix{2, 0, 0, 2, 10, 20})
		assert.Equal(t, BBox{10, 20, 14, 23}, box)
	})

	t.Run("float bounds", func(t *testing.T) {
		b := Bounds(lines)
		assert.InDelta(t, 0.2, b.LLx, Epsilon)
		assert.InDelta(t, 0.3, b.LLy, Epsilon)
		assert.InDelta(t, 1.7, b.URx, Epsilon)
		assert.InDelta(t, 1.1, b.URy, Epsilon)
	})

	t.Run("negative coordinates", func(t *testing.T) {
		negative := LineSet{Line(-3.5, -1.2, -0.5, -4.8)}
		assert.Equal(t, BBox{-4, -5, 0, -1}, BoundingBox(negative, matrix.Identity))
	})

	t.Run("empty", func(t *testing.T) {
		box := BoundingBox(nil, matrix.Identity)
		assert.True(t, box.Empty())
	})
}
