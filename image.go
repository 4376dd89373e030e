package ext3img

import (
	"encoding/binary"
	"io"
	"os"

	bitmap "github.com/boljen/go-bitmap"
	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"

	"github.com/silvafs/ext3img/errors"
)

// Image is the in-memory mirror of an on-disk filesystem image: the
// superblock triple, the free-block bitmap, the inode table, the root
// index byte (always 0), and the data-block region.
type Image struct {
	BlockSize byte
	NumBlocks byte
	NumInodes byte
	Bitmap    bitmap.Bitmap
	Inodes    []RawInode
	Root      byte
	Blocks    [][]byte
}

// bitmapSizeInBytes returns ceil(numBlocks/8), the number of bytes needed
// to hold one bit per block.
func bitmapSizeInBytes(numBlocks int) int {
	return (numBlocks + 7) / 8
}

// inodeTableOffset returns the byte offset of the inode table within the
// image, given the number of data blocks (which fixes the bitmap's size).
func inodeTableOffset(numBlocks int) int64 {
	return 3 + int64(bitmapSizeInBytes(numBlocks))
}

// Load reads the entire image at path into memory, parsing it region by
// region in on-disk order.
func Load(path string) (*Image, errors.DriverError) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrIOFailed.WrapError(err)
	}

	stream := bytesextra.NewReadWriteSeeker(raw)

	var header [3]byte
	if _, err := stream.Read(header[:]); err != nil {
		return nil, errors.ErrIOFailed.WrapError(err)
	}

	img := &Image{
		BlockSize: header[0],
		NumBlocks: header[1],
		NumInodes: header[2],
	}

	bitmapSize := bitmapSizeInBytes(int(img.NumBlocks))
	bitmapBytes := make([]byte, bitmapSize)
	if _, err := stream.Read(bitmapBytes); err != nil {
		return nil, errors.ErrIOFailed.WrapError(err)
	}
	img.Bitmap = bitmap.Bitmap(bitmapBytes)

	img.Inodes = make([]RawInode, img.NumInodes)
	if err := binary.Read(stream, binary.LittleEndian, img.Inodes); err != nil {
		return nil, errors.ErrIOFailed.WrapError(err)
	}

	var root [1]byte
	if _, err := stream.Read(root[:]); err != nil {
		return nil, errors.ErrIOFailed.WrapError(err)
	}
	img.Root = root[0]

	img.Blocks = make([][]byte, img.NumBlocks)
	for i := range img.Blocks {
		block := make([]byte, img.BlockSize)
		if _, err := stream.Read(block); err != nil {
			return nil, errors.ErrIOFailed.WrapError(err)
		}
		img.Blocks[i] = block
	}

	return img, nil
}

// imageSize returns the total number of bytes a fully serialized image
// occupies, given its superblock triple.
func imageSize(img *Image) int {
	numBlocks := int(img.NumBlocks)
	numInodes := int(img.NumInodes)
	return 3 + bitmapSizeInBytes(numBlocks) + numInodes*22 + 1 + numBlocks*int(img.BlockSize)
}

// Store rewrites the entire image at path, in on-disk region order. This
// is a whole-image rewrite; no partial writes are attempted.
func Store(path string, img *Image) errors.DriverError {
	buf := make([]byte, imageSize(img))
	writer := bytewriter.New(buf)

	header := [3]byte{img.BlockSize, img.NumBlocks, img.NumInodes}
	if _, err := writer.Write(header[:]); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	// Only the ceil(numBlocks/8) bytes of the on-disk bitmap region are
	// written, whatever the length of the in-memory bitmap buffer.
	if _, err := writer.Write(img.Bitmap.Data(false)[:bitmapSizeInBytes(int(img.NumBlocks))]); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	if err := binary.Write(writer, binary.LittleEndian, img.Inodes); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	if _, err := writer.Write([]byte{img.Root}); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	for _, block := range img.Blocks {
		if _, err := writer.Write(block); err != nil {
			return errors.ErrIOFailed.WrapError(err)
		}
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	return nil
}

// storeInodeTable rewrites only the inode-table region of the image on
// disk, leaving the bitmap and data blocks untouched. This is used
// exclusively by the same-parent case of Move, which never changes block
// allocation and so has no reason to touch anything else.
func storeInodeTable(path string, img *Image) errors.DriverError {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	defer f.Close()

	if _, err := f.Seek(inodeTableOffset(int(img.NumBlocks)), io.SeekStart); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	if err := binary.Write(f, binary.LittleEndian, img.Inodes); err != nil {
		return errors.ErrIOFailed.WrapError(err)
	}
	return nil
}
