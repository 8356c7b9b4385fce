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


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// SourceQualityRepository implements storage.SourceQualityRepository for BadgerDB.
type SourceQualityRepository struct {
	backend *Backend
}

var _ storage.SourceQualityRepository = (*SourceQualityRepository)(nil)

// NewSourceQualityRepository creates a new SourceQualityRepository.
func NewSourceQualityRepository(backend *Backend) *SourceQualityRepository {
	return &SourceQualityRepository{
		backend: backend,
	}
}

// SaveSnapshot persists the source quality snapshot, replacing any previous one.
func (r *SourceQualityRepository) SaveSnapshot(ctx context.Context, snapshot *core.SourceQualitySnapshot) error {
	if err := core.ValidateSnapshot(snapshot); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		snapshot.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		value := storage.MarshalSnapshot(snapshot)
		if err := tx.Set([]byte(snapshotKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the stored snapshot.
// Returns nil, nil if no snapshot exists.
func (r *SourceQualityRepository) LoadSnapshot(ctx context.Context) (*core.SourceQualitySnapshot, error) {
	var snapshot *core.SourceQualitySnapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(snapshotKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			snapshot, unmarshalErr = storage.UnmarshalSnapshot(val)
			return unmarshalErr
		})
	}, false)

	return snapshot, err
}
