package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unknown document id, a metadata record whose
	// backing content file is missing, or an unknown backup timestamp.
	ErrNotFound = errors.New("document not found")
)

// StorageError reports a filesystem failure on a primary path (document
// content or the metadata snapshot). It is fatal to the triggering operation.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
