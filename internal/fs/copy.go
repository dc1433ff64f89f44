package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrSourceChanged is returned when the source file changes while it is copied.
var ErrSourceChanged = errors.New("source changed during copy")

// copyWithRetry copies src to dst for a cross-device rename. The copy is
// written next to dst and renamed into place, so a reader never sees a
// partial archive, and it is aborted if src is still being written to.
func copyWithRetry(ctx context.Context, f FS, src, dst string) error {
	orig, err := f.Stat(src)
	if err != nil {
		return err
	}

	return retry(ctx, "copy", func() error {
		cur, err := f.Stat(src)
		if err != nil {
			return err
		}
		if sourceChanged(orig, cur) {
			return ErrSourceChanged
		}
		return copyAtomic(src, dst, orig.MTime)
	})
}

func sourceChanged(orig, cur FileInfo) bool {
	switch {
	case orig.Inode != 0 && cur.Inode != 0 && orig.Inode != cur.Inode:
		return true
	case cur.Size != orig.Size:
		return true
	default:
		return cur.MTime.After(orig.MTime)
	}
}

// copyAtomic copies src into a temporary file in dst's directory, keeps the
// source permissions and modification time, and renames it to dst.
func copyAtomic(src, dst string, mtime time.Time) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), st.Mode().Perm()); err != nil {
		return err
	}
	if err = os.Chtimes(tmp.Name(), mtime, mtime); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
