package internal

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPointInDelta(t *testing.T, expected, actual Point, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "y of %v", actual)
}

var queryPoints = []Point{
	{X: 0, Y: 0},
	{X: 3.5, Y: -2},
	{X: 17, Y: 4.25},
	{X: -40, Y: 100},
}

func TestParams(t *testing.T) {
	assert.Equal(t, Params{P: 0, A: 1, B: 2, T: 0.5}, DefaultParams())
	assert.NoError(t, DefaultParams().Validate())

	for name, params := range map[string]Params{
		"negative p":  {P: -1, A: 1, B: 2, T: 0.5},
		"zero a":      {P: 0, A: 0, B: 2, T: 0.5},
		"negative b":  {P: 0, A: 1, B: -2, T: 0.5},
		"t above one": {P: 0, A: 1, B: 2, T: 1.5},
		"nan t":       {P: 0, A: 1, B: 2, T: math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			err := params.Validate()
			assert.Equal(t, ErrInvalidParams, errors.Cause(err))
		})
	}
}

func TestInterpolate(t *testing.T) {
	src := LineSet{Line(0, 0, 10, 0), Line(10, 0, 10, 10)}
	dst := LineSet{Line(0, 2, 10, 2), Line(12, 0, 12, 10)}
	mid := Interpolate(src, dst, 0.5)
	require.Len(t, mid, 2)
	assert.Equal(t, Line(0, 1, 10, 1), mid[0])
	assert.Equal(t, Line(11, 0, 11, 10), mid[1])

	err := recoverError(func() {
		Interpolate(src, dst[:1], 0.5)
	})
	var mismatch *LineCountMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestWarpField(t *testing.T) {
	t.Run("identical line sets are the identity", func(t *testing.T) {
		lines := LineSet{Line(0, 0, 10, 0), Line(10, 0, 10, 10), Line(3, 7, -2, 1)}
		field, err := NewWarpField(lines, lines, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, 3, field.Len())
		for _, q := range queryPoints {
			assertPointInDelta(t, q, field.Map(q), 1e-9)
		}
	})

	t.Run("single identical pair with p=0, a=1, b=2", func(t *testing.T) {
		line := LineSet{Line(1.5, 0, 1.5, 4)}
		params := Params{P: 0, A: 1, B: 2, T: 0.5}
		for _, q := range queryPoints {
			assertPointInDelta(t, q, Warp(q, line, line, params), 1e-9)
		}
	})

	t.Run("translated pair translates", func(t *testing.T) {
		dst := LineSet{Line(0, 0, 1, 0)}
		src := LineSet{Line(5, 5, 6, 5)}
		assertPointInDelta(t, Point{X: 5.5, Y: 7}, Warp(Point{X: 0.5, Y: 2}, dst, src, DefaultParams()), 1e-9)
		for _, q := range queryPoints {
			assertPointInDelta(t, q.Add(Point{X: 5, Y: 5}), Warp(q, dst, src, DefaultParams()), 1e-9)
		}
	})

	t.Run("scaled pair scales along the line", func(t *testing.T) {
		dst := LineSet{Line(0, 0, 1, 0)}
		src := LineSet{Line(0, 0, 2, 0)}
		// u carries over, v stays in absolute units.
		assertPointInDelta(t, Point{X: 1, Y: 3}, Warp(Point{X: 0.5, Y: 3}, dst, src, DefaultParams()), 1e-9)
	})

	t.Run("no lines is the identity", func(t *testing.T) {
		field, err := NewWarpField(nil, nil, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, Point{X: 4, Y: 2}, field.Map(Point{X: 4, Y: 2}))
	})

	t.Run("nearer lines dominate", func(t *testing.T) {
		dst := LineSet{Line(0, 0, 1, 0), Line(0, 100, 1, 100)}
		src := LineSet{Line(0, 0, 1, 0), Line(0, 150, 1, 150)}
		near := Warp(Point{X: 0.5, Y: 1}, dst, src, DefaultParams())
		assert.InDelta(t, 1, near.Y, 0.1)
		far := Warp(Point{X: 0.5, Y: 99}, dst, src, DefaultParams())
		assert.InDelta(t, 149, far.Y, 0.1)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := NewWarpField(LineSet{Line(0, 0, 1, 0)}, nil, DefaultParams())
		var mismatch *LineCountMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, 1, mismatch.Destination)
		assert.Equal(t, 0, mismatch.Source)

		assert.Panics(t, func() {
			Warp(Point{}, LineSet{Line(0, 0, 1, 0)}, nil, DefaultParams())
		})
	})

	t.Run("zero length destination line", func(t *testing.T) {
		_, err := NewWarpField(LineSet{Line(0, 0, 1, 0), Line(2, 2, 2, 2)}, LineSet{Line(0, 0, 1, 0), Line(0, 0, 1, 1)}, DefaultParams())
		var degenerate *DegenerateLineError
		require.True(t, errors.As(err, &degenerate))
		assert.Equal(t, 1, degenerate.Index)
	})

	t.Run("zero length source line collapses to its start", func(t *testing.T) {
		field, err := NewWarpField(LineSet{Line(0, 0, 1, 0)}, LineSet{Line(3, 3, 3, 3)}, DefaultParams())
		require.NoError(t, err)
		assertPointInDelta(t, Point{X: 3, Y: 3}, field.Map(Point{X: 7, Y: -2}), 1e-9)
	})
}
