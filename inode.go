package ext3img

import "github.com/silvafs/ext3img/errors"

// maxNameLength is the number of bytes reserved for a leaf name in an inode.
// Names shorter than this are NUL-padded on the right.
const maxNameLength = 10

// maxBlockPointers is the total number of block-index slots an inode has
// across its three triples (direct, indirect, double-indirect). In this
// simulation all three triples are used as direct extensions; there is no
// dereferencing of indirection blocks.
const maxBlockPointers = 9

// RawInode is the on-disk representation of a single 22-byte inode slot.
// Every field is either a single byte or a fixed-size byte array, so the
// struct can be read and written with encoding/binary without worrying
// about endianness or padding.
type RawInode struct {
	IsUsed               byte
	IsDir                byte
	Name                 [maxNameLength]byte
	Size                 byte
	DirectBlocks         [3]byte
	IndirectBlocks       [3]byte
	DoubleIndirectBlocks [3]byte
}

// NameString returns the inode's name, trimmed at the first NUL byte.
func (inode *RawInode) NameString() string {
	for i, b := range inode.Name {
		if b == 0 {
			return string(inode.Name[:i])
		}
	}
	return string(inode.Name[:])
}

// SetName writes name into the inode's NAME field, NUL-padding the
// remainder. It fails with errors.ErrNameTooLong if name doesn't fit.
func (inode *RawInode) SetName(name string) errors.DriverError {
	if len(name) > maxNameLength {
		return errors.ErrNameTooLong.WithMessage(name)
	}
	inode.Name = [maxNameLength]byte{}
	copy(inode.Name[:], name)
	return nil
}

// BlockIndices returns the inode's nine block-index slots in allocation
// order: direct, then indirect, then double-indirect.
func (inode *RawInode) BlockIndices() []byte {
	all := make([]byte, 0, maxBlockPointers)
	all = append(all, inode.DirectBlocks[:]...)
	all = append(all, inode.IndirectBlocks[:]...)
	all = append(all, inode.DoubleIndirectBlocks[:]...)
	return all
}

// SetBlockIndices distributes indices across the inode's three block-index
// triples, in order, zeroing any unused trailing slots. It fails if more
// than nine indices are given.
func (inode *RawInode) SetBlockIndices(indices []byte) errors.DriverError {
	if len(indices) > maxBlockPointers {
		return errors.ErrFileTooLarge.WithMessage("content requires more than 9 blocks")
	}

	inode.DirectBlocks = [3]byte{}
	inode.IndirectBlocks = [3]byte{}
	inode.DoubleIndirectBlocks = [3]byte{}

	for i, block := range indices {
		switch {
		case i < 3:
			inode.DirectBlocks[i] = block
		case i < 6:
			inode.IndirectBlocks[i-3] = block
		default:
			inode.DoubleIndirectBlocks[i-6] = block
		}
	}
	return nil
}

// Reset zeroes every field of the inode, returning its slot to the free
// state. Used by Remove.
func (inode *RawInode) Reset() {
	*inode = RawInode{}
}

// IsDirectory reports whether this inode's IS_DIR flag is set.
func (inode *RawInode) IsDirectory() bool {
	return inode.IsDir != 0
}

// newRootInode builds the inode for slot 0: always allocated, always a
// directory named "/", with its single block always block 0.
func newRootInode() RawInode {
	root := RawInode{
		IsUsed: 1,
		IsDir:  1,
	}
	root.Name[0] = '/'
	return root
}
