package ext3img

import (
	"path/filepath"
	"testing"

	bitmap "github.com/boljen/go-bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSize_MatchesLayoutFormula(t *testing.T) {
	img := &Image{BlockSize: 4, NumBlocks: 10, NumInodes: 5}
	// 3 (superblock) + ceil(10/8)=2 (bitmap) + 5*22 (inodes) + 1 (root) + 10*4 (blocks)
	assert.Equal(t, 3+2+5*22+1+40, imageSize(img))
}

func TestStoreThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image")

	original := &Image{
		BlockSize: 4,
		NumBlocks: 10,
		NumInodes: 5,
		Bitmap:    bitmap.New(10),
		Inodes:    make([]RawInode, 5),
		Root:      0,
		Blocks:    make([][]byte, 10),
	}
	original.Bitmap.Set(0, true)
	original.Inodes[0] = newRootInode()
	for i := range original.Blocks {
		original.Blocks[i] = make([]byte, 4)
	}

	require.NoError(t, Store(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.BlockSize, loaded.BlockSize)
	assert.Equal(t, original.NumBlocks, loaded.NumBlocks)
	assert.Equal(t, original.NumInodes, loaded.NumInodes)
	assert.Equal(t, original.Root, loaded.Root)
	assert.Equal(t, original.Inodes, loaded.Inodes)
	assert.Equal(t, []byte(original.Bitmap), []byte(loaded.Bitmap))
	assert.Equal(t, original.Blocks, loaded.Blocks)
}
