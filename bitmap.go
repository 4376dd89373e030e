package ext3img

import (
	bitmap "github.com/boljen/go-bitmap"

	"github.com/silvafs/ext3img/errors"
)

// firstFreeInode returns the lowest-indexed inode slot with IS_USED == 0.
// The second return value is false if every slot is occupied, since slot 0
// is a valid index and can't be used to signal "not found" on its own (see
// spec Open Question 3).
func firstFreeInode(inodes []RawInode) (int, bool) {
	for i := range inodes {
		if inodes[i].IsUsed == 0 {
			return i, true
		}
	}
	return 0, false
}

// computeUsedBlocks rebuilds the free-block bitmap from scratch by walking
// every allocated inode's block-index triples. Block 0 is always used,
// since it belongs to the root directory. The bitmap is never updated
// incrementally: AddFile, AddDir, Remove and cross-parent Move call this
// right before persisting (AddFile and AddDir also call it earlier to find
// free blocks). InitFS sets bit 0 directly, and a same-parent Move leaves
// the bitmap as it is on disk.
func computeUsedBlocks(numBlocks int, inodes []RawInode) bitmap.Bitmap {
	used := bitmap.New(numBlocks)
	used.Set(0, true)

	for i := range inodes {
		if inodes[i].IsUsed == 0 {
			continue
		}
		for _, block := range inodes[i].BlockIndices() {
			if block != 0 {
				used.Set(int(block), true)
			}
		}
	}
	return used
}

// firstNFreeBlocks scans the bitmap in index order and returns the n
// lowest-indexed blocks not marked in use. It fails with
// errors.ErrNoSpaceOnDevice if fewer than n are available.
func firstNFreeBlocks(used bitmap.Bitmap, numBlocks, n int) ([]byte, errors.DriverError) {
	if n == 0 {
		return nil, nil
	}

	free := make([]byte, 0, n)
	for i := 0; i < numBlocks && len(free) < n; i++ {
		if !used.Get(i) {
			free = append(free, byte(i))
		}
	}
	if len(free) < n {
		return nil, errors.ErrNoSpaceOnDevice.WithMessage("not enough free blocks")
	}
	return free, nil
}
