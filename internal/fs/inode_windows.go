//go:build windows

package fs

import "os"

// inodeOf always returns 0: os.FileInfo carries no file index on Windows, so
// change detection relies on size and modification time.
func inodeOf(os.FileInfo) uint64 { return 0 }
