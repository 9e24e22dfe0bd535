package storage

import (
	"context"

	"github.com/poiesic/banquet/core"
)

// CatalogRepository provides operations for managing the package catalog.
// Implementations must be thread-safe and support concurrent access.
type CatalogRepository interface {
	// AddPackages adds one or more packages to the catalog.
	// For packages with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the packages with generated IDs and timestamps populated.
	AddPackages(ctx context.Context, pkgs ...*core.Package) ([]*core.Package, error)

	// UpdatePackages updates existing packages.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any package doesn't exist.
	UpdatePackages(ctx context.Context, pkgs ...*core.Package) ([]*core.Package, error)

	// DeletePackages removes packages by their IDs.
	// Returns ErrNotFound if any package doesn't exist.
	DeletePackages(ctx context.Context, ids ...core.ID) error

	// GetPackage retrieves a single package by ID.
	// Returns ErrNotFound if the package doesn't exist.
	GetPackage(ctx context.Context, id core.ID) (*core.Package, error)

	// GetPackages retrieves multiple packages by their IDs.
	// Returns only the packages that exist (no error for missing packages).
	GetPackages(ctx context.Context, ids ...core.ID) ([]*core.Package, error)

	// ListPackages retrieves every package in the catalog, ordered by ID.
	// Used by batch jobs (embedding backfill) that iterate the full catalog.
	ListPackages(ctx context.Context) ([]*core.Package, error)

	// FindSimilar finds packages whose vectors are similar to the given vector.
	// Returns candidates with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). Packages without vectors
	// are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.Candidate, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
