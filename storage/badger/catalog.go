package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	idSeq, err := backend.GetSequence(packageIDSeq)
	if err != nil {
		return nil, err
	}

	return &CatalogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence and the underlying backend.
func (r *CatalogRepository) Close() error {
	if err := r.idSeq.Release(); err != nil {
		return err
	}
	return r.backend.Close()
}

// FindSimilar delegates to the backend.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.Candidate, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddPackages adds one or more packages to the catalog.
func (r *CatalogRepository) AddPackages(ctx context.Context, pkgs ...*core.Package) ([]*core.Package, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, pkg := range pkgs {
			if err := core.ValidatePackage(pkg); err != nil {
				return err
			}

			if pkg.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				pkg.Id = core.ID(nextID)
			}

			if pkg.InsertedAt.IsZero() {
				pkg.InsertedAt = time.Now().UTC()
			}
			pkg.UpdatedAt = pkg.InsertedAt

			key := makePackageKey(pkg.Id)
			if err := tx.Set(key, storage.MarshalPackage(pkg)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return pkgs, err
}

// UpdatePackages updates existing packages.
func (r *CatalogRepository) UpdatePackages(ctx context.Context, pkgs ...*core.Package) ([]*core.Package, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, pkg := range pkgs {
			key := makePackageKey(pkg.Id)

			old, err := readPackage(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			pkg.InsertedAt = old.InsertedAt
			pkg.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalPackage(pkg)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return pkgs, err
}

// DeletePackages removes packages by their IDs.
func (r *CatalogRepository) DeletePackages(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePackageKey(id)

			pkg, err := readPackage(tx, key)
			if err != nil {
				return err
			}
			if pkg == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPackage retrieves a single package by ID.
func (r *CatalogRepository) GetPackage(ctx context.Context, id core.ID) (*core.Package, error) {
	var result *core.Package
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePackageKey(id)
		var err error
		result, err = readPackage(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetPackages retrieves multiple packages by their IDs.
func (r *CatalogRepository) GetPackages(ctx context.Context, ids ...core.ID) ([]*core.Package, error) {
	var result []*core.Package
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePackageKey(id)
			pkg, err := readPackage(tx, key)
			if err != nil {
				return err
			}
			if pkg != nil {
				result = append(result, pkg)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListPackages retrieves every package in the catalog, ordered by ID.
func (r *CatalogRepository) ListPackages(ctx context.Context) ([]*core.Package, error) {
	var result []*core.Package
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(packagePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			// Skip the sequence key, which shares the prefix
			if bytes.Equal(item.Key(), []byte(packageIDSeq)) {
				continue
			}

			var pkg *core.Package
			err := item.Value(func(val []byte) error {
				var err error
				pkg, err = storage.UnmarshalPackage(val)
				return err
			})
			if err != nil {
				return err
			}
			if pkg != nil {
				result = append(result, pkg)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Keys encode IDs as decimal strings, so iteration order is
	// lexicographic. Sort numerically before returning.
	slices.SortFunc(result, func(a, b *core.Package) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return result, nil
}

// readPackage reads a package from the transaction.
func readPackage(tx *badger.Txn, key []byte) (*core.Package, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var pkg *core.Package
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		pkg, unmarshalErr = storage.UnmarshalPackage(val)
		return unmarshalErr
	})
	return pkg, err
}
