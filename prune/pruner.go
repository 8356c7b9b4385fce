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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// Config holds configuration for a prune run.
type Config struct {
	// BatchSize is the number of items to judge in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each delete
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// DryRun counts prunable items without deleting them
	DryRun bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 1000,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
	}
}

// Report summarizes a prune run.
type Report struct {
	Scanned int
	Removed int
	DryRun  bool
}

// Pruner removes catalog items whose source is no longer usable.
type Pruner struct {
	catalog  storage.CatalogRepository
	quality  storage.SourceQualityRepository
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewPruner creates a new pruner.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewPruner(catalog storage.CatalogRepository, quality storage.SourceQualityRepository, config *Config, progress io.Writer, logger *slog.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		catalog:  catalog,
		quality:  quality,
		config:   config,
		progress: progress,
		logger:   logger.With("component", "prune"),
	}
}

// Run judges every catalog item against the stored snapshot and removes the
// prunable ones. Returns ErrNoSnapshot when no snapshot has been saved, since
// every item would otherwise be pruned.
func (p *Pruner) Run(ctx context.Context) (*Report, error) {
	snapshot, err := p.quality.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load source quality snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, ErrNoSnapshot
	}

	total, err := p.catalog.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	report := &Report{DryRun: p.config.DryRun}
	if total == 0 {
		fmt.Fprintf(p.progress, "No items found in catalog (0 items)\n")
		return report, nil
	}

	fmt.Fprintf(p.progress, "Pruning %d items against %d usable sources (batch size: %d)\n",
		total, len(snapshot.Bonuses), p.config.BatchSize)

	tracker := NewProgressTracker(p.progress, total, p.config.ReportInterval)
	tracker.Start()

	processor := NewBatchProcessor(p.catalog, snapshot, p.config.MaxRetries, p.config.RetryDelay, p.config.DryRun, p.logger)
	iterator := NewItemIterator(p.catalog, p.config.BatchSize)

	err = iterator.ForEach(ctx, func(items []*core.MediaItem) error {
		removed, err := processor.Process(ctx, items)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		report.Scanned += len(items)
		report.Removed += removed
		tracker.Add(len(items), removed)
		return nil
	})
	if err != nil {
		return report, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	verb := "Removed"
	if p.config.DryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(p.progress, "Prune complete. %s %d of %d items in %v\n",
		verb, report.Removed, report.Scanned, elapsed.Round(time.Millisecond))
	p.logger.Info("prune finished", "scanned", report.Scanned, "removed", report.Removed, "dryRun", p.config.DryRun)

	return report, nil
}
