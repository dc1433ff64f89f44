package retention

import (
	"context"
	"path/filepath"

	"github.com/raoulx24/rollclean/internal/fs"
)

// maxParentDepth caps how many directories a single Clean may remove above
// the deleted archive, whatever the pattern encodes.
const maxParentDepth = 3

// pruneIfEmpty removes dir if it is an empty directory and continues with
// its parent, removing at most maxParentDepth directories. It stops at the
// first directory that is missing, not a directory, not empty or cannot be
// removed.
func (r *Remover) pruneIfEmpty(ctx context.Context, dir string, res *Result) {
	for depth := 0; depth < maxParentDepth; depth++ {
		if isTopLevel(dir) {
			return
		}

		info, err := r.fs.Stat(dir)
		if err != nil || !info.IsDir {
			return
		}

		empty, err := r.fs.IsEmptyDir(dir)
		if err != nil {
			if !fs.IsNotExist(err) {
				r.fail(res, "read", dir, err)
			}
			return
		}
		if !empty {
			return
		}

		if err := r.fs.Remove(ctx, dir); err != nil {
			if !fs.IsNotExist(err) {
				r.fail(res, "remove", dir, err)
			}
			return
		}

		res.Pruned = append(res.Pruned, dir)
		if r.recorder != nil {
			r.recorder.DirectoryPruned(r.name)
		}
		r.log.Debug("empty directory removed", "target", r.name, "dir", dir, "depth", depth)

		dir = filepath.Dir(dir)
	}
}

// isTopLevel reports whether dir is the working directory or a filesystem
// root, which are never pruned.
func isTopLevel(dir string) bool {
	return dir == "." || filepath.Dir(dir) == dir
}
