// Package archive describes archived files handled by rollclean.
package archive

import (
	"path/filepath"
	"time"

	"github.com/raoulx24/rollclean/internal/fs"
)

// Artifact describes a single archive file on disk.
type Artifact struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// FromFileInfo constructs an Artifact from filesystem metadata.
func FromFileInfo(info fs.FileInfo) Artifact {
	return Artifact{
		Path:    info.Path,
		Name:    filepath.Base(info.Path),
		ModTime: info.MTime,
		Size:    info.Size,
	}
}
