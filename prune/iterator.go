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


package prune

import (
	"context"

	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

const (
	// DefaultBatchSize is the default number of items to fetch in each batch
	DefaultBatchSize = 200
)

// ItemIterator pages through the catalog in ID order.
type ItemIterator struct {
	repo      storage.CatalogRepository
	batchSize int
}

// NewItemIterator creates a new item iterator.
// batchSize: number of items to fetch in each batch; <= 0 selects DefaultBatchSize
func NewItemIterator(repo storage.CatalogRepository, batchSize int) *ItemIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ItemIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of items until the catalog is exhausted.
// Iteration stops on the first error from fn or the repository.
// Each page resumes after the last ID of the previous one, so fn may delete
// the items it is given.
func (it *ItemIterator) ForEach(ctx context.Context, fn func([]*core.MediaItem) error) error {
	var after core.ID
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.ScanItems(ctx, after, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		after = batch[len(batch)-1].ID

		if err := fn(batch); err != nil {
			return err
		}

		if len(batch) < it.batchSize {
			return nil
		}
	}
}
