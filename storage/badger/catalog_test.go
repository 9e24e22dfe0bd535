package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
)

func TestCatalogBasics(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	pkg := &core.Package{
		Name:        "Harborview Seafood Catering",
		Description: "Fresh coastal seafood menus for weddings and corporate events",
		PriceMin:    2000,
		PriceMax:    3500,
		Capacity:    250,
	}

	added, err := catalog.AddPackages(ctx, pkg)
	if err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 package, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := catalog.GetPackage(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get package: %v", err)
	}

	if retrieved.Name != "Harborview Seafood Catering" {
		t.Fatalf("Expected 'Harborview Seafood Catering', got '%s'", retrieved.Name)
	}
}

func TestCatalogPreservesExplicitIDs(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	pkg := &core.Package{
		Id:       42,
		Name:     "Rooftop Terrace Venue",
		PriceMin: 4000,
		PriceMax: 6000,
	}

	added, err := catalog.AddPackages(ctx, pkg)
	if err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	if added[0].Id != 42 {
		t.Fatalf("Expected ID 42, got %d", added[0].Id)
	}
}

func TestCatalogUpdate(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	added, err := catalog.AddPackages(ctx, &core.Package{
		Name:     "Garden Pavilion",
		PriceMin: 3000,
		PriceMax: 5000,
	})
	if err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	pkg := added[0]
	pkg.Capacity = 120

	updated, err := catalog.UpdatePackages(ctx, pkg)
	if err != nil {
		t.Fatalf("Failed to update package: %v", err)
	}

	if updated[0].UpdatedAt.Before(updated[0].InsertedAt) {
		t.Fatal("Expected UpdatedAt to advance")
	}

	retrieved, err := catalog.GetPackage(ctx, pkg.Id)
	if err != nil {
		t.Fatalf("Failed to get package: %v", err)
	}
	if retrieved.Capacity != 120 {
		t.Fatalf("Expected capacity 120, got %d", retrieved.Capacity)
	}
}

func TestCatalogUpdateMissing(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	_, err = catalog.UpdatePackages(ctx, &core.Package{Id: 9999, Name: "Ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	added, err := catalog.AddPackages(ctx, &core.Package{Name: "Pop-up Taco Bar"})
	if err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	if err := catalog.DeletePackages(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete package: %v", err)
	}

	_, err = catalog.GetPackage(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	err = catalog.DeletePackages(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCatalogGetPackagesSkipsMissing(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	added, err := catalog.AddPackages(ctx,
		&core.Package{Name: "String Quartet"},
		&core.Package{Name: "Jazz Trio"},
	)
	if err != nil {
		t.Fatalf("Failed to add packages: %v", err)
	}

	results, err := catalog.GetPackages(ctx, added[0].Id, 9999, added[1].Id)
	if err != nil {
		t.Fatalf("Failed to get packages: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 packages, got %d", len(results))
	}
}

func TestCatalogListOrderedByID(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	// Explicit IDs chosen so lexicographic key order differs from numeric
	_, err = catalog.AddPackages(ctx,
		&core.Package{Id: 100, Name: "Banquet Hall"},
		&core.Package{Id: 2, Name: "Food Truck"},
		&core.Package{Id: 30, Name: "Winery Tour"},
	)
	if err != nil {
		t.Fatalf("Failed to add packages: %v", err)
	}

	results, err := catalog.ListPackages(ctx)
	if err != nil {
		t.Fatalf("Failed to list packages: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 packages, got %d", len(results))
	}
	for i, want := range []core.ID{2, 30, 100} {
		if results[i].Id != want {
			t.Fatalf("Expected ID %d at position %d, got %d", want, i, results[i].Id)
		}
	}
}

func TestCatalogFindSimilar(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	_, err = catalog.AddPackages(ctx,
		&core.Package{Name: "Exact Match", Vector: []float32{1, 0, 0}},
		&core.Package{Name: "Partial Match", Vector: []float32{0.6, 0.8, 0}},
		&core.Package{Name: "Orthogonal", Vector: []float32{0, 1, 0}},
		&core.Package{Name: "No Vector"},
	)
	if err != nil {
		t.Fatalf("Failed to add packages: %v", err)
	}

	results, err := catalog.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(results))
	}
	if results[0].Package.Name != "Exact Match" {
		t.Fatalf("Expected 'Exact Match' first, got '%s'", results[0].Package.Name)
	}
	if results[1].Package.Name != "Partial Match" {
		t.Fatalf("Expected 'Partial Match' second, got '%s'", results[1].Package.Name)
	}

	// Limit applies after sorting
	limited, err := catalog.FindSimilar(ctx, []float32{1, 0, 0}, 0.0, 1)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(limited) != 1 || limited[0].Package.Name != "Exact Match" {
		t.Fatalf("Expected single 'Exact Match' candidate, got %v", limited)
	}
}

func TestFindSimilarDimensionMismatch(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	_, err = catalog.AddPackages(ctx,
		&core.Package{Name: "Vineyard Terrace", Vector: []float32{1, 0, 0}},
	)
	if err != nil {
		t.Fatalf("Failed to add package: %v", err)
	}

	results, err := catalog.FindSimilar(ctx, []float32{1, 0, 0, 0, 0}, 0.0, 10)
	if !errors.Is(err, storage.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
	if results != nil {
		t.Fatalf("Expected no results on mismatch, got %v", results)
	}
}

func TestFindSimilarBreaksTiesByID(t *testing.T) {
	catalog, err := NewMemoryCatalog()
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	// Identical vectors, IDs inserted out of order
	_, err = catalog.AddPackages(ctx,
		&core.Package{Id: 9, Name: "Hall C", Vector: []float32{1, 0, 0}},
		&core.Package{Id: 3, Name: "Hall A", Vector: []float32{1, 0, 0}},
		&core.Package{Id: 5, Name: "Hall B", Vector: []float32{1, 0, 0}},
	)
	if err != nil {
		t.Fatalf("Failed to add packages: %v", err)
	}

	results, err := catalog.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 2)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(results))
	}
	if results[0].Package.Id != 3 || results[1].Package.Id != 5 {
		t.Fatalf("Expected IDs [3 5] after tie-break, got [%d %d]",
			results[0].Package.Id, results[1].Package.Id)
	}
}
