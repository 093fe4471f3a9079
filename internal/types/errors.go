package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoArticles     = errors.New("no articles found")
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidKeyword = errors.New("invalid keyword")
)

// CollectError wraps browser/navigation failures during a collection
// run. Extraction-level anomalies never produce one; they discard the
// affected record instead.
type CollectError struct {
	URL string
	Err error
}

func (e *CollectError) Error() string {
	return fmt.Sprintf("collect error for %s: %v", e.URL, e.Err)
}

func (e *CollectError) Unwrap() error { return e.Err }

// StorageError wraps errors from a report store backend.
type StorageError struct {
	Backend string
	Keyword string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("storage error (%s, keyword=%q): %v", e.Backend, e.Keyword, e.Err)
	}
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
