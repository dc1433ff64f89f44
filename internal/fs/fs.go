// Package fs defines the filesystem abstraction used by rollclean.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"syscall"
	"time"
)

type FileInfo struct {
	Path      string
	Size      int64
	MTime     time.Time
	Inode     uint64
	IsDir     bool
	IsRegular bool
}

type FS interface {
	// Stat does not follow symlinks: a link is neither a directory nor a
	// regular file.
	Stat(path string) (FileInfo, error)
	// Remove deletes a file or an empty directory.
	Remove(ctx context.Context, path string) error
	IsEmptyDir(path string) (bool, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
}

// IsNotExist reports whether err says a path does not exist. A path that
// runs through a regular file (ENOTDIR) cannot exist either.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
