// Package filex holds local file helpers: export directories and photo
// selection.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// MaxPhotoSize bounds how much of a selected file is read into memory.
const MaxPhotoSize = 10 << 20

// EnsureSubdDir creates dirName (relative to the working directory unless
// absolute) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadPhoto loads the file at path as a photo selection. ContentType is
// detected from the file signature, so it reflects what the file claims to
// be rather than a validated image.
func ReadPhoto(path string) (*models.PhotoFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxPhotoSize {
		return nil, fmt.Errorf("%s is larger than %d bytes", path, MaxPhotoSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	mt := mimetype.Detect(content)

	return &models.PhotoFile{
		Name:        filepath.Base(path),
		ContentType: mt.String(),
		Content:     content,
	}, nil
}
