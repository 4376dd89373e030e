package ext3img

import (
	"strings"

	bitmap "github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"

	"github.com/silvafs/ext3img/errors"
)

// validateFSParams reports every violated size constraint at once, rather
// than stopping at the first one, so a caller assembling a new image sees
// the whole picture in one report.
func validateFSParams(blockSize, numBlocks, numInodes byte) error {
	var result *multierror.Error
	if blockSize == 0 {
		result = multierror.Append(result, errors.ErrInvalidArgument.WithMessage("blockSize must be non-zero"))
	}
	if numBlocks == 0 {
		result = multierror.Append(result, errors.ErrInvalidArgument.WithMessage("numBlocks must be non-zero"))
	}
	if numInodes == 0 {
		result = multierror.Append(result, errors.ErrInvalidArgument.WithMessage("numInodes must be non-zero"))
	}
	return result.ErrorOrNil()
}

// InitFS creates or overwrites the image at fsFileName: a root directory
// occupying inode slot 0 and block 0, every other inode slot zeroed, only
// bitmap bit 0 set, and every data block zeroed.
func InitFS(fsFileName string, blockSize, numBlocks, numInodes byte) error {
	if err := validateFSParams(blockSize, numBlocks, numInodes); err != nil {
		return err
	}

	img := &Image{
		BlockSize: blockSize,
		NumBlocks: numBlocks,
		NumInodes: numInodes,
		Bitmap:    bitmap.New(int(numBlocks)),
		Inodes:    make([]RawInode, numInodes),
		Blocks:    make([][]byte, numBlocks),
	}
	img.Bitmap.Set(0, true)
	img.Inodes[0] = newRootInode()
	for i := range img.Blocks {
		img.Blocks[i] = make([]byte, blockSize)
	}

	return Store(fsFileName, img)
}

// linkIntoParent inserts childIdx into the directory block of childPath's
// parent and bumps the parent's SIZE.
func linkIntoParent(img *Image, childPath string, childIdx byte) errors.DriverError {
	parentName := ParentName(childPath)
	parentIdx := findInodeByName(img.Inodes, parentName)
	if parentIdx < 0 {
		return errors.ErrNotFound.WithMessage(parentName)
	}
	parent := &img.Inodes[parentIdx]
	if err := insertChild(img.Blocks[parent.DirectBlocks[0]], childIdx); err != nil {
		return err
	}
	parent.Size++
	return nil
}

// numBlocksForSize returns ceil(size/blockSize), the number of blocks
// needed to hold size bytes of content.
func numBlocksForSize(size int, blockSize byte) int {
	if size == 0 {
		return 0
	}
	return (size + int(blockSize) - 1) / int(blockSize)
}

// AddFile allocates the lowest-indexed free inode and the lowest-indexed
// free blocks needed for fileContent, writes the content (NUL-padding the
// final block), and links the new inode into its parent's directory block.
func AddFile(fsFileName, filePath string, fileContent []byte) error {
	img, err := Load(fsFileName)
	if err != nil {
		return err
	}

	leaf := LeafName(filePath)
	if len(leaf) > maxNameLength {
		return errors.ErrNameTooLong.WithMessage(leaf)
	}
	if findInodeByName(img.Inodes, leaf) != -1 {
		return errors.ErrExists.WithMessage(leaf)
	}

	idx, ok := firstFreeInode(img.Inodes)
	if !ok {
		return errors.ErrNoSpaceOnDevice.WithMessage("no free inode slots")
	}

	needed := numBlocksForSize(len(fileContent), img.BlockSize)
	used := computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	freeBlocks, ferr := firstNFreeBlocks(used, int(img.NumBlocks), needed)
	if ferr != nil {
		return ferr
	}

	blockSize := int(img.BlockSize)
	for i, blockIdx := range freeBlocks {
		block := img.Blocks[blockIdx]
		start := i * blockSize
		end := start + blockSize
		if end > len(fileContent) {
			end = len(fileContent)
		}
		n := copy(block, fileContent[start:end])
		for j := n; j < blockSize; j++ {
			block[j] = 0
		}
	}

	inode := &img.Inodes[idx]
	inode.IsUsed = 1
	inode.IsDir = 0
	inode.Size = byte(len(fileContent))
	if err := inode.SetName(leaf); err != nil {
		return err
	}
	if err := inode.SetBlockIndices(freeBlocks); err != nil {
		return err
	}

	if err := linkIntoParent(img, filePath, byte(idx)); err != nil {
		return err
	}

	img.Bitmap = computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	return Store(fsFileName, img)
}

// AddDir allocates the lowest-indexed free inode and exactly one free
// block for the new, empty directory, then links it into its parent's
// directory block. The directory's own block is left zeroed; it has no
// children yet.
func AddDir(fsFileName, dirPath string) error {
	img, err := Load(fsFileName)
	if err != nil {
		return err
	}

	leaf := LeafName(dirPath)
	if len(leaf) > maxNameLength {
		return errors.ErrNameTooLong.WithMessage(leaf)
	}
	if findInodeByName(img.Inodes, leaf) != -1 {
		return errors.ErrExists.WithMessage(leaf)
	}

	idx, ok := firstFreeInode(img.Inodes)
	if !ok {
		return errors.ErrNoSpaceOnDevice.WithMessage("no free inode slots")
	}

	used := computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	freeBlocks, ferr := firstNFreeBlocks(used, int(img.NumBlocks), 1)
	if ferr != nil {
		return ferr
	}

	block := img.Blocks[freeBlocks[0]]
	for i := range block {
		block[i] = 0
	}

	inode := &img.Inodes[idx]
	inode.IsUsed = 1
	inode.IsDir = 1
	inode.Size = 0
	if err := inode.SetName(leaf); err != nil {
		return err
	}
	if err := inode.SetBlockIndices(freeBlocks); err != nil {
		return err
	}

	if err := linkIntoParent(img, dirPath, byte(idx)); err != nil {
		return err
	}

	img.Bitmap = computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	return Store(fsFileName, img)
}

// Remove deletes a file or an empty directory. Which kind path names is
// decided by whether a "." appears anywhere in path, not just in the leaf
// name.
func Remove(fsFileName, path string) error {
	img, err := Load(fsFileName)
	if err != nil {
		return err
	}

	isFile := strings.Contains(path, ".")

	leaf := LeafName(path)
	idx := findInodeByName(img.Inodes, leaf)
	if idx < 0 {
		return errors.ErrNotFound.WithMessage(leaf)
	}

	if !isFile && img.Inodes[idx].Size > 0 {
		return errors.ErrDirectoryNotEmpty.WithMessage(leaf)
	}

	parentName := ParentName(path)
	parentIdx := findInodeByName(img.Inodes, parentName)
	if parentIdx < 0 {
		return errors.ErrNotFound.WithMessage(parentName)
	}
	parent := &img.Inodes[parentIdx]

	originalSize := int(parent.Size)
	if err := removeChild(img.Blocks[parent.DirectBlocks[0]], byte(idx), originalSize); err != nil {
		return err
	}
	parent.Size--

	img.Inodes[idx].Reset()

	img.Bitmap = computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	return Store(fsFileName, img)
}

// Move renames or reparents the entry at oldPath to newPath. If both paths
// share the same parent, this is a pure rename and only the inode table is
// rewritten. Otherwise the entry is unlinked from its old parent's
// directory block and linked into the new parent's.
func Move(fsFileName, oldPath, newPath string) error {
	img, err := Load(fsFileName)
	if err != nil {
		return err
	}

	oldLeaf := LeafName(oldPath)
	newLeaf := LeafName(newPath)
	if len(newLeaf) > maxNameLength {
		return errors.ErrNameTooLong.WithMessage(newLeaf)
	}

	idx := findInodeByName(img.Inodes, oldLeaf)
	if idx < 0 {
		return errors.ErrNotFound.WithMessage(oldLeaf)
	}

	if newLeaf != oldLeaf && findInodeByName(img.Inodes, newLeaf) != -1 {
		return errors.ErrExists.WithMessage(newLeaf)
	}

	oldParentName := ParentName(oldPath)
	newParentName := ParentName(newPath)

	if oldParentName == newParentName {
		if err := img.Inodes[idx].SetName(newLeaf); err != nil {
			return err
		}
		return storeInodeTable(fsFileName, img)
	}

	oldParentIdx := findInodeByName(img.Inodes, oldParentName)
	if oldParentIdx < 0 {
		return errors.ErrNotFound.WithMessage(oldParentName)
	}
	newParentIdx := findInodeByName(img.Inodes, newParentName)
	if newParentIdx < 0 {
		return errors.ErrNotFound.WithMessage(newParentName)
	}

	oldParent := &img.Inodes[oldParentIdx]
	newParent := &img.Inodes[newParentIdx]

	originalSize := int(oldParent.Size)
	if err := removeChild(img.Blocks[oldParent.DirectBlocks[0]], byte(idx), originalSize); err != nil {
		return err
	}
	oldParent.Size--

	if err := insertChild(img.Blocks[newParent.DirectBlocks[0]], byte(idx)); err != nil {
		return err
	}
	newParent.Size++

	if err := img.Inodes[idx].SetName(newLeaf); err != nil {
		return err
	}

	img.Bitmap = computeUsedBlocks(int(img.NumBlocks), img.Inodes)
	return Store(fsFileName, img)
}
