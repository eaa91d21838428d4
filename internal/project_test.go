package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestSkeletonEndpoint(t *testing.T) {
	skeleton := LineSet{Line(0, 0, 10, 0), Line(5, 5, 5, 9)}

	nearest, ok := NearestSkeletonEndpoint(Point{X: 6, Y: 7}, skeleton)
	require.True(t, ok)
	assert.Equal(t, Point{X: 5, Y: 5}, nearest)

	nearest, ok = NearestSkeletonEndpoint(Point{X: 9, Y: -1}, skeleton)
	require.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 0}, nearest)

	t.Run("ties go to the first endpoint", func(t *testing.T) {
		nearest, _ := NearestSkeletonEndpoint(Point{X: 5, Y: 0}, skeleton)
		assert.Equal(t, Point{X: 0, Y: 0}, nearest)
	})

	t.Run("empty skeleton", func(t *testing.T) {
		_, ok := NearestSkeletonEndpoint(Point{}, nil)
		assert.False(t, ok)
	})
}

func TestProjectOutline(t *testing.T) {
	// 4x4 background with a 2x2 foreground block at (1,1)-(2,2).
	r := BlockRaster(t, 4, 4, Block{1, 1, 2, 2})
	skeleton := LineSet{Line(1, 1, 2, 1)}

	t.Run("left and right edges land on the block", func(t *testing.T) {
		outline := LineSet{Line(0, 1, 3, 1)}
		projected := ProjectOutline(r, outline, skeleton)
		require.Len(t, projected, 1)
		assert.Equal(t, Point{X: 1, Y: 1}, projected[0].Start)
		assert.Equal(t, Point{X: 2, Y: 1}, projected[0].End)
	})

	t.Run("foreground points are kept verbatim", func(t *testing.T) {
		outline := LineSet{Line(1.2, 2.1, 0, 1)}
		projected := ProjectOutline(r, outline, skeleton)
		assert.Equal(t, Point{X: 1.2, Y: 2.1}, projected[0].Start)
		assert.Equal(t, Point{X: 1, Y: 1}, projected[0].End)
	})

	t.Run("length and order are preserved", func(t *testing.T) {
		outline := LineSet{Line(0, 1, 3, 1), Line(3, 1, 0, 1), Line(1.2, 2.1, 0, 1)}
		projected := ProjectOutline(r, outline, skeleton)
		require.Len(t, projected, 3)
		assert.Equal(t, projected[0].End, projected[1].Start)
		assert.Equal(t, projected[0].Start, projected[1].End)
	})

	t.Run("without a skeleton nothing moves", func(t *testing.T) {
		outline := LineSet{Line(0, 1, 3, 1)}
		assert.Equal(t, outline, ProjectOutline(r, outline, nil))
	})

	t.Run("points that never reach foreground stay put", func(t *testing.T) {
		vertical := LineSet{Line(1.5, 0, 1.5, 4)}
		outline := LineSet{Line(0, 0, 3, 0), Line(3, 0, 3, 3), Line(3, 3, 0, 3), Line(0, 3, 0, 0)}
		projected := ProjectOutline(r, outline, vertical)
		require.Len(t, projected, len(outline))
		for i := range outline {
			for _, pair := range [][2]Point{
				{outline[i].Start, projected[i].Start},
				{outline[i].End, projected[i].End},
			} {
				before, after := pair[0], pair[1]
				assert.True(t, after == before || IsForeground(r, Round(after)),
					"%v projected to background %v", before, after)
			}
		}
		// Rows 0 and 3 hold no foreground, so the top and bottom edges are
		// left exactly where they were.
		assert.Equal(t, outline[0], projected[0])
		assert.Equal(t, outline[2], projected[2])
	})
}
