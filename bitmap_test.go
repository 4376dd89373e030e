package ext3img

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstFreeInode_LowestIndex(t *testing.T) {
	inodes := []RawInode{{IsUsed: 1}, {IsUsed: 0}, {IsUsed: 1}}
	idx, ok := firstFreeInode(inodes)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestFirstFreeInode_NoneFree(t *testing.T) {
	inodes := []RawInode{{IsUsed: 1}, {IsUsed: 1}}
	idx, ok := firstFreeInode(inodes)
	assert.False(t, ok)
	assert.Equal(t, 0, idx)
}

func TestComputeUsedBlocks_SeedsRootAndReferencedBlocks(t *testing.T) {
	inodes := []RawInode{
		newRootInode(),
		{IsUsed: 1, DirectBlocks: [3]byte{3, 0, 0}},
		{IsUsed: 0, DirectBlocks: [3]byte{5, 0, 0}}, // free slot, must be ignored
	}
	used := computeUsedBlocks(8, inodes)

	assert.True(t, used.Get(0))
	assert.True(t, used.Get(3))
	assert.False(t, used.Get(5))
	assert.False(t, used.Get(1))
}

func TestFirstNFreeBlocks_ScansAscending(t *testing.T) {
	used := computeUsedBlocks(6, []RawInode{
		newRootInode(),
		{IsUsed: 1, DirectBlocks: [3]byte{2, 0, 0}},
	})

	free, err := firstNFreeBlocks(used, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 3, 4}, free)
}

func TestFirstNFreeBlocks_InsufficientSpace(t *testing.T) {
	used := computeUsedBlocks(2, []RawInode{newRootInode()})
	_, err := firstNFreeBlocks(used, 2, 5)
	require.Error(t, err)
}

func TestFirstNFreeBlocks_ZeroNeeded(t *testing.T) {
	used := computeUsedBlocks(2, []RawInode{newRootInode()})
	free, err := firstNFreeBlocks(used, 2, 0)
	require.NoError(t, err)
	assert.Nil(t, free)
}
