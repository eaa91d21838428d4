package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawDebug(t *testing.T) {
	r := BlockRaster(t, 10, 10, Block{2, 2, 7, 7})
	path := filepath.Join(t.TempDir(), "debug.png")
	err := DrawDebug(path, r, 4, DebugLayer{Lines: blockOutlineCW(), G: 1})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestDbgString(t *testing.T) {
	r := BlockRaster(t, 10, 10, Block{2, 2, 7, 7})
	lines := LineSet{Line(2, 2, 7, 2), Line(4, 4, 4, 4), Line(4, 4, 5, 5)}
	out := DbgString(r, lines)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	// The same line always gets the same name.
	assert.Equal(t, out, DbgString(r, lines))
}
