package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raoulx24/rollclean/internal/fs"
)

func TestFromFileInfo(t *testing.T) {
	mtime := time.Date(2024, time.March, 4, 23, 59, 0, 0, time.UTC)
	a := FromFileInfo(fs.FileInfo{
		Path:      "archive/2024/03/04.log",
		Size:      1024,
		MTime:     mtime,
		IsRegular: true,
	})

	assert.Equal(t, Artifact{
		Path:    "archive/2024/03/04.log",
		Name:    "04.log",
		Size:    1024,
		ModTime: mtime,
	}, a)
}
