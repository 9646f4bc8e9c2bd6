// Package store provides the extracted-line storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/ff7r-text/internal/model"
)

// PackageParams holds the lines of one parsed package.
type PackageParams struct {
	RunID   string
	Region  string
	Package string
	Lines   []model.Line
}

// ListParams holds parameters for listing lines.
type ListParams struct {
	Region  string
	Package string
	Speaker string
	Limit   int
}

// Store defines the line storage interface.
type Store interface {
	// ReplacePackage stores a package's lines, replacing any earlier extraction
	// of the same region and package. Returns the number of lines stored.
	ReplacePackage(ctx context.Context, p PackageParams) (int, error)

	// Get retrieves the lines with the given ID in a region.
	Get(ctx context.Context, region, lineID string) ([]model.StoredLine, error)

	// List lists lines matching the given filters, in file order.
	List(ctx context.Context, p ListParams) ([]model.StoredLine, error)

	// RemoveRegion deletes every line of a region.
	RemoveRegion(ctx context.Context, region string) (int64, error)

	// Close closes the store.
	Close() error
}
