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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// processor is an internal interface for handling one batch of validated items.
type processor interface {
	// process handles the batch and reports how many items it stored.
	process(ctx context.Context, items []*core.MediaItem) (int, error)
}

// storeProcessor writes batches to the catalog in a single transaction each.
type storeProcessor struct {
	catalog storage.CatalogRepository
	logger  *slog.Logger
}

var _ processor = (*storeProcessor)(nil)

func newStoreProcessor(catalog storage.CatalogRepository, logger *slog.Logger) (processor, error) {
	if catalog == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &storeProcessor{catalog: catalog, logger: logger}, nil
}

func (sp *storeProcessor) process(ctx context.Context, items []*core.MediaItem) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	added, err := sp.catalog.AddItems(ctx, items...)
	if err != nil {
		return 0, fmt.Errorf("storing batch of %d items: %w", len(items), err)
	}
	sp.logger.Debug("stored batch", "count", len(added))
	return len(added), nil
}
