//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inodeOf returns the inode number behind info, or 0 if unknown.
// FileInfo.Inode lets a copy notice that its source was replaced by a new
// file of the same size, which happens when a writer rolls over mid-copy.
func inodeOf(info os.FileInfo) uint64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Ino)
	}
	return 0
}
