package ext3img

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvafs/ext3img/errors"
)

func TestRawInode_NameString_TrimsAtFirstNUL(t *testing.T) {
	inode := RawInode{Name: [maxNameLength]byte{'a', 'b', 'c', 0, 'd'}}
	assert.Equal(t, "abc", inode.NameString())
}

func TestRawInode_SetName_RoundTrips(t *testing.T) {
	var inode RawInode
	require.NoError(t, inode.SetName("file.txt"))
	assert.Equal(t, "file.txt", inode.NameString())
	assert.Equal(t, [maxNameLength]byte{'f', 'i', 'l', 'e', '.', 't', 'x', 't', 0, 0}, inode.Name)
}

func TestRawInode_SetName_TooLong(t *testing.T) {
	var inode RawInode
	err := inode.SetName("this-name-is-too-long")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNameTooLong)
}

func TestRawInode_SetBlockIndices_Distributes(t *testing.T) {
	var inode RawInode
	require.NoError(t, inode.SetBlockIndices([]byte{1, 2, 3, 4, 5}))
	assert.Equal(t, [3]byte{1, 2, 3}, inode.DirectBlocks)
	assert.Equal(t, [3]byte{4, 5, 0}, inode.IndirectBlocks)
	assert.Equal(t, [3]byte{0, 0, 0}, inode.DoubleIndirectBlocks)
}

func TestRawInode_SetBlockIndices_TooMany(t *testing.T) {
	var inode RawInode
	err := inode.SetBlockIndices(make([]byte, 10))
	require.Error(t, err)
}

func TestRawInode_Reset_ZeroesEveryField(t *testing.T) {
	inode := RawInode{IsUsed: 1, IsDir: 1, Size: 5}
	_ = inode.SetName("x")
	_ = inode.SetBlockIndices([]byte{1})
	inode.Reset()
	assert.Equal(t, RawInode{}, inode)
}

func TestNewRootInode(t *testing.T) {
	root := newRootInode()
	assert.EqualValues(t, 1, root.IsUsed)
	assert.True(t, root.IsDirectory())
	assert.Equal(t, "/", root.NameString())
	assert.Equal(t, [3]byte{0, 0, 0}, root.DirectBlocks)
}
