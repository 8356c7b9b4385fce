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


// Package mediarank ties the catalog store, the ranking engine and the jobs
// built on them into one handle.
package mediarank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/poiesic/mediarank/ingestion"
	"github.com/poiesic/mediarank/prune"
	"github.com/poiesic/mediarank/ranking"
	"github.com/poiesic/mediarank/search"
	"github.com/poiesic/mediarank/storage"
	"github.com/poiesic/mediarank/storage/badger"
)

// Catalog is an open media catalog.
type Catalog struct {
	backend     *badger.Backend
	catalogRepo storage.CatalogRepository
	qualityRepo storage.SourceQualityRepository
	logger      *slog.Logger
}

// Option configures a Catalog.
type Option func(*catalogOptions)

type catalogOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory keeps the catalog in memory; the path passed to Open is ignored.
func WithInMemory() Option {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// Open opens the catalog stored at filePath, creating it if needed.
func Open(filePath string, opts ...Option) (*Catalog, error) {
	options := &catalogOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		backend:     backend,
		catalogRepo: badger.NewCatalogRepository(backend),
		qualityRepo: badger.NewSourceQualityRepository(backend),
		logger:      options.logger,
	}, nil
}

// Close releases the repositories and the underlying store.
func (c *Catalog) Close() error {
	if err := c.catalogRepo.Close(); err != nil {
		c.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Catalog) CatalogRepository() storage.CatalogRepository {
	return c.catalogRepo
}

func (c *Catalog) SourceQualityRepository() storage.SourceQualityRepository {
	return c.qualityRepo
}

// NewEngine creates a ranking engine from cfg (nil selects the defaults).
// Bonuses from the stored source quality snapshot override cfg's table
// source by source; cfg itself is not modified.
func (c *Catalog) NewEngine(ctx context.Context, cfg *ranking.Config, opts ...ranking.Option) (*ranking.Engine, error) {
	if cfg == nil {
		cfg = ranking.DefaultConfig()
	}
	cfg = cfg.Clone()

	snapshot, err := c.qualityRepo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load source quality snapshot: %w", err)
	}
	if snapshot != nil {
		if cfg.SourceQuality == nil {
			cfg.SourceQuality = make(map[string]float64, len(snapshot.Bonuses))
		}
		maps.Copy(cfg.SourceQuality, snapshot.Bonuses)
		c.logger.Debug("applied source quality snapshot", "sources", len(snapshot.Bonuses), "updatedAt", snapshot.UpdatedAt)
	}

	opts = append([]ranking.Option{ranking.WithLogger(c.logger)}, opts...)
	return ranking.NewEngine(cfg, opts...)
}

func (c *Catalog) NewSearcher(engine *ranking.Engine, opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(c.logger)}, opts...)
	return search.NewSearcher(c.catalogRepo, engine, opts...)
}

func (c *Catalog) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(c.logger)}, opts...)
	return ingestion.NewPipeline(c.catalogRepo, opts...)
}

// NewPruner creates a prune job over this catalog. A nil config selects
// prune.DefaultConfig; progress lines go to progress.
func (c *Catalog) NewPruner(config *prune.Config, progress io.Writer) *prune.Pruner {
	return prune.NewPruner(c.catalogRepo, c.qualityRepo, config, progress, c.logger)
}
