package prune

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// Verdict is the reason an item is pruned.
type Verdict string

const (
	// VerdictKeep marks an item that stays in the catalog.
	VerdictKeep Verdict = ""
	// VerdictUnusableSource marks an item whose source is not in the snapshot.
	VerdictUnusableSource Verdict = "unusable_source"
	// VerdictInvalid marks an item that fails validation.
	VerdictInvalid Verdict = "invalid"
)

// Judge decides whether item survives against snapshot.
func Judge(item *core.MediaItem, snapshot *core.SourceQualitySnapshot) Verdict {
	if err := core.ValidateMediaItem(item); err != nil {
		return VerdictInvalid
	}
	if !snapshot.Usable(item.Source) {
		return VerdictUnusableSource
	}
	return VerdictKeep
}

// BatchProcessor removes the prunable items of one batch.
type BatchProcessor struct {
	repo           storage.CatalogRepository
	snapshot       *core.SourceQualitySnapshot
	maxRetries     int
	retryBaseDelay time.Duration
	dryRun         bool
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for each delete
// retryBaseDelay: base delay for exponential backoff
// dryRun: judge items without deleting them
func NewBatchProcessor(repo storage.CatalogRepository, snapshot *core.SourceQualitySnapshot, maxRetries int, retryBaseDelay time.Duration, dryRun bool, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		repo:           repo,
		snapshot:       snapshot,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		dryRun:         dryRun,
		logger:         logger,
	}
}

// Process judges every item and deletes the prunable ones in one call.
// Returns the number of prunable items, which are deleted unless dryRun is set.
func (bp *BatchProcessor) Process(ctx context.Context, items []*core.MediaItem) (int, error) {
	var doomed []core.ID
	for _, item := range items {
		verdict := Judge(item, bp.snapshot)
		if verdict == VerdictKeep {
			continue
		}
		bp.logger.Debug("pruning item", "id", item.ID, "title", item.Title, "source", item.Source, "verdict", verdict)
		doomed = append(doomed, item.ID)
	}

	if len(doomed) == 0 || bp.dryRun {
		return len(doomed), nil
	}

	err := RetryWithBackoff(ctx, func() error {
		return bp.repo.DeleteItems(ctx, doomed...)
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %d items: %w", len(doomed), err)
	}

	return len(doomed), nil
}
