/*
Package ext3img simulates a small UNIX-style indexed filesystem backed by a
single host file treated as a block device.

The on-disk layout is a superblock triple (block size, block count, inode
count), a free-block bitmap, a flat inode table, a root-index byte, and a
data-block region, modeled on the inode/bitmap design of the ext family,
stripped down to a single flat directory namespace with no permissions,
timestamps, links, or crash consistency.

AddFile, AddDir, Remove and Move load the entire image into memory and
mutate the in-memory copy. AddFile, AddDir, Remove and a cross-parent Move
then re-derive the free-block bitmap from the updated inode table and
rewrite the whole image; a same-parent Move (a pure rename) rewrites only
the inode table. InitFS builds a fresh image without loading anything.
Nothing here is safe for concurrent use against the same image file.
*/
package ext3img
