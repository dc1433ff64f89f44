package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
)

// wraps os.Rename with retry logic.
// Archives may live on another device than the active file; in that case the
// rename becomes a copy followed by removal of the source.

func renameWithRetry(ctx context.Context, f FS, oldPath, newPath string) error {
	err := retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyWithRetry(ctx, f, oldPath, newPath); err != nil {
		return fmt.Errorf("cross-device rename: %w", err)
	}
	return removeWithRetry(ctx, oldPath)
}

// removeWithRetry wraps os.Remove with retry logic. A missing path is
// reported as is so callers can treat it as already gone.
func removeWithRetry(ctx context.Context, path string) error {
	return retry(ctx, "remove", func() error {
		return os.Remove(path)
	})
}
