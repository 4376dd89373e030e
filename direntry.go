package ext3img

import "github.com/silvafs/ext3img/errors"

// insertChild appends childInode to the first 0x00 byte of a directory's
// data block. Only a directory's first data block (DIRECT_BLOCKS[0]) is
// ever consulted for insertion, capping a directory at blockSize entries.
func insertChild(block []byte, childInode byte) errors.DriverError {
	for i, b := range block {
		if b == 0 {
			block[i] = childInode
			return nil
		}
	}
	return errors.ErrNoSpaceOnDevice.WithMessage("directory block is full")
}

// removeChild locates the byte equal to childInode among the first size
// entries of block. If it isn't the last entry, every subsequent entry is
// shifted left by one and the final slot is zeroed; otherwise the entry's
// own slot is simply zeroed. size is the parent's entry count *before* the
// removal (SIZE is decremented by the caller after this returns).
func removeChild(block []byte, childInode byte, size int) errors.DriverError {
	k := -1
	for i := 0; i < size; i++ {
		if block[i] == childInode {
			k = i
			break
		}
	}
	if k < 0 {
		return errors.ErrNotFound.WithMessage("directory entry not found")
	}

	if k < size-1 {
		copy(block[k:size-1], block[k+1:size])
	}
	block[size-1] = 0
	return nil
}
