package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) *CatalogRepository {
	return &CatalogRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *CatalogRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddItems upserts one or more media items.
func (r *CatalogRepository) AddItems(ctx context.Context, items ...*core.MediaItem) ([]*core.MediaItem, error) {
	now := time.Now().UTC().Truncate(time.Microsecond) // records keep micros
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if item == nil {
				return fmt.Errorf("%w: item is nil", core.ErrInvalidMediaItem)
			}
			if item.ID == 0 {
				item.ID = core.IDFromContent(item.Key())
			}

			key := makeMediaItemKey(item.ID)
			old, err := r.readMediaItem(tx, key)
			if err != nil {
				return err
			}

			item.InsertedAt = now
			if old != nil {
				item.InsertedAt = old.InsertedAt
				// Move the index entry if the source changed
				if old.Source != item.Source {
					if err := tx.Delete(makeSourceIndexKey(old.Source, old.ID)); err != nil {
						return err
					}
				}
			}
			item.UpdatedAt = now

			// Store primary record
			if err := tx.Set(key, storage.MarshalMediaItem(item)); err != nil {
				return err
			}

			// Update source index
			if err := tx.Set(makeSourceIndexKey(item.Source, item.ID), storage.MarshalID(item.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// DeleteItems removes media items by their IDs.
func (r *CatalogRepository) DeleteItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMediaItemKey(id)

			// Read item to find its index entry
			item, err := r.readMediaItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: item %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeSourceIndexKey(item.Source, item.ID)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetItem retrieves a single media item by ID.
func (r *CatalogRepository) GetItem(ctx context.Context, id core.ID) (*core.MediaItem, error) {
	var result *core.MediaItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readMediaItem(tx, makeMediaItemKey(id))
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

// GetItems retrieves multiple media items by their IDs.
func (r *CatalogRepository) GetItems(ctx context.Context, ids ...core.ID) ([]*core.MediaItem, error) {
	var result []*core.MediaItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := r.readMediaItem(tx, makeMediaItemKey(id))
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetItemsBySource retrieves every item delivered by any of the given sources.
// Items are grouped by source in argument order, then ordered by ID.
func (r *CatalogRepository) GetItemsBySource(ctx context.Context, sources ...string) ([]*core.MediaItem, error) {
	var results []*core.MediaItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[string]bool, len(sources))
		for _, source := range sources {
			if seen[source] {
				continue
			}
			seen[source] = true

			prefix := makePartialSourceIndexKey(source)
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false
			iter := tx.NewIterator(opts)

			var ids []core.ID
			for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
				if err := ctx.Err(); err != nil {
					iter.Close()
					return err
				}
				key := iter.Item().Key()
				ids = append(ids, idFromKeySuffix(key))
			}
			iter.Close()

			// Look up the full records
			for _, id := range ids {
				item, err := r.readMediaItem(tx, makeMediaItemKey(id))
				if err != nil {
					return err
				}
				if item != nil {
					results = append(results, item)
				}
			}
		}
		return nil
	}, false)
	return results, err
}

// AllItems retrieves every media item in ID order.
func (r *CatalogRepository) AllItems(ctx context.Context) ([]*core.MediaItem, error) {
	var results []*core.MediaItem
	err := r.scan(ctx, 0, false, func(item *core.MediaItem) bool {
		results = append(results, item)
		return true
	})
	return results, err
}

// ScanItems retrieves up to limit items with IDs greater than after.
func (r *CatalogRepository) ScanItems(ctx context.Context, after core.ID, limit int) ([]*core.MediaItem, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}
	results := make([]*core.MediaItem, 0, limit)
	err := r.scan(ctx, after, after != 0, func(item *core.MediaItem) bool {
		results = append(results, item)
		return len(results) < limit
	})
	return results, err
}

// Count returns the number of items in the catalog.
func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mediaItemPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return ctx.Err()
	}, false)
	return count, err
}

// scan walks primary records in ID order starting at from, calling fn until it
// returns false. With exclusive set, the record with ID from is skipped.
func (r *CatalogRepository) scan(ctx context.Context, from core.ID, exclusive bool, fn func(*core.MediaItem) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mediaItemPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := makeMediaItemKey(from)
		for iter.Seek(start); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			if exclusive && bytes.Equal(item.Key(), start) {
				continue
			}

			var record *core.MediaItem
			if err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMediaItem(val)
				return err
			}); err != nil {
				return err
			}
			if !fn(record) {
				return nil
			}
		}
		return nil
	}, false)
}

// readMediaItem reads a single item in a transaction.
// Returns nil, nil if the key doesn't exist.
func (r *CatalogRepository) readMediaItem(tx *badger.Txn, key []byte) (*core.MediaItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.MediaItem
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalMediaItem(val)
		return err
	})
	return record, err
}
