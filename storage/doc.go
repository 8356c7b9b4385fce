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


// Package storage provides the storage abstraction layer for mediarank.
//
// This package defines repository interfaces that decouple the catalog store
// from ingestion, search and maintenance code.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: transaction support and lifecycle
//   - CatalogRepository: media items, keyed by content ID, indexed by source
//   - SourceQualityRepository: the latest usable-source snapshot
//
// Records are encoded with the mus-go serializers in package core
// (see MarshalMediaItem and friends).
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	catalog, quality, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer backend.Close()
//	defer catalog.Close()
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
