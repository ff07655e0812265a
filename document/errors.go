package document

import (
	"errors"
	"fmt"
)

var (
	ErrDirectoryNotFound = errors.New("directory does not exist")
	ErrVersionNotFound   = errors.New("version not found")
)

// FileError records a failed read, write or parse of a document file.
type FileError struct {
	Op   string // "read", "write" or "parse"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
