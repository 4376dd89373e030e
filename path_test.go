package ext3img

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafName(t *testing.T) {
	assert.Equal(t, "leaf.txt", LeafName("/a/b/leaf.txt"))
	assert.Equal(t, "file.txt", LeafName("/file.txt"))
}

func TestParentName(t *testing.T) {
	assert.Equal(t, "/", ParentName("/file.txt"))
	assert.Equal(t, "a", ParentName("/a/leaf.txt"))
	assert.Equal(t, "a/b", ParentName("/a/b/leaf.txt"))
}

func TestFindInodeByName(t *testing.T) {
	inodes := []RawInode{newRootInode(), {}, {IsUsed: 0}}
	require := assert.New(t)
	require.Equal(0, findInodeByName(inodes, "/"))
	require.Equal(-1, findInodeByName(inodes, "missing"))
}
