// Package source loads program files from the host file system.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrFileNotFound     = errors.New("file does not exist")
	ErrPermissionDenied = errors.New("no permission to read file")
	ErrIsDirectory      = errors.New("path is a directory")
)

// File is a loaded program source.
type File struct {
	// file path as supplied by the user
	Path string
	// absolute path to the file
	AbsolutePath string
	// raw content of the file
	Content []byte
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Load reads the whole file at path. Failures wrap ErrFileNotFound,
// ErrPermissionDenied or ErrIsDirectory when they fall into one of those
// classes, and the underlying error otherwise.
func Load(path string) (*File, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	info, err := os.Stat(absolutePath)
	if err != nil {
		return nil, classify(path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	content, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, classify(path, err)
	}

	return &File{
		Path:         path,
		AbsolutePath: absolutePath,
		Content:      content,
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, ErrFileNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	default:
		return fmt.Errorf("%s: unknown error: %w", path, err)
	}
}
