package ext3img

import "strings"

// LeafName returns the substring of path after the last "/".
func LeafName(path string) string {
	idx := strings.LastIndex(path, "/")
	return path[idx+1:]
}

// ParentName returns the substring of path between the first "/" and the
// last "/". If that substring is empty, the parent is the root, "/".
func ParentName(path string) string {
	last := strings.LastIndex(path, "/")
	if last <= 0 {
		return "/"
	}
	parent := path[1:last]
	if parent == "" {
		return "/"
	}
	return parent
}

// findInodeByName performs the resolver's flat lookup: it scans every
// inode slot in order and returns the first whose NAME (trimmed at the
// first NUL byte) equals name. It returns -1 if no inode matches. The
// namespace is flat by design; directory membership is not consulted.
func findInodeByName(inodes []RawInode, name string) int {
	for i := range inodes {
		if inodes[i].IsUsed != 0 && inodes[i].NameString() == name {
			return i
		}
	}
	return -1
}
