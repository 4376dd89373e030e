package ext3img_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silvafs/ext3img"
)

// newTempImage builds a freshly initialized image in a per-test temp
// directory and returns its path.
func newTempImage(t *testing.T, blockSize, numBlocks, numInodes byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "X")
	require.NoError(t, ext3img.InitFS(path, blockSize, numBlocks, numInodes))
	return path
}
