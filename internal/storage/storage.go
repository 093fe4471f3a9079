// Package storage persists finished keyword analyses. A report is the
// unit of storage: saved wholesale, replaced wholesale on re-analysis,
// keyed by the search keyword.
package storage

import (
	"context"

	"newslens/internal/types"
)

// ReportStore is the interface all report backends implement.
type ReportStore interface {
	// Save persists a report, replacing any existing one for the same
	// keyword.
	Save(ctx context.Context, report *types.StoredReport) error

	// Load retrieves the report for a keyword. A missing report yields
	// an error matching types.ErrReportNotFound.
	Load(ctx context.Context, keyword string) (*types.StoredReport, error)

	// List returns every stored keyword, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a keyword's report. Deleting a missing report
	// yields an error matching types.ErrReportNotFound.
	Delete(ctx context.Context, keyword string) error

	// Close releases backend resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}
