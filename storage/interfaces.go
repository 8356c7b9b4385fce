// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/mediarank/core"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

type CatalogRepository interface {
	Repository
	// AddItems upserts one or more catalog items.
	// Items with ID=0 get IDFromContent(item.Key()).
	// InsertedAt is kept from an existing entry, UpdatedAt is always refreshed.
	// Returns the items with IDs and timestamps populated.
	AddItems(ctx context.Context, items ...*core.MediaItem) ([]*core.MediaItem, error)

	// DeleteItems removes items by their IDs, including their source index entries.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteItems(ctx context.Context, ids ...core.ID) error

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id core.ID) (*core.MediaItem, error)

	// GetItems retrieves multiple items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...core.ID) ([]*core.MediaItem, error)

	// GetItemsBySource retrieves every item delivered by any of the given sources.
	GetItemsBySource(ctx context.Context, sources ...string) ([]*core.MediaItem, error)

	// AllItems retrieves every item in ID order.
	AllItems(ctx context.Context) ([]*core.MediaItem, error)

	// ScanItems retrieves up to limit items with IDs greater than after, in ID order.
	// Pass after=0 to start from the beginning.
	ScanItems(ctx context.Context, after core.ID, limit int) ([]*core.MediaItem, error)

	// Count returns the number of items in the catalog.
	Count(ctx context.Context) (int, error)
}

type SourceQualityRepository interface {
	// SaveSnapshot replaces the stored source quality snapshot.
	// UpdatedAt is set to the current time.
	SaveSnapshot(ctx context.Context, snapshot *core.SourceQualitySnapshot) error

	// LoadSnapshot retrieves the stored snapshot.
	// Returns nil, nil if no snapshot has been saved.
	LoadSnapshot(ctx context.Context) (*core.SourceQualitySnapshot, error)
}
