package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
)

// DefaultBatchSize is the number of items stored per transaction.
const DefaultBatchSize = 500

// Pipeline orchestrates validating and storing catalog items.
// Batches are written concurrently on a worker pool.
type Pipeline struct {
	catalog   storage.CatalogRepository
	pool      *ants.Pool
	store     processor
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch storage.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many items are stored per transaction.
// Default is DefaultBatchSize, with a minimum of 1.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(catalog storage.CatalogRepository, opts ...Option) (*Pipeline, error) {
	if catalog == nil {
		return nil, ErrCatalogRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		catalog:   catalog,
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processor after options are applied (so it gets the final logger)
	store, err := newStoreProcessor(catalog, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.store = store

	return p, nil
}

// Report summarizes one Ingest call.
// Stored can be lower than Received-Rejected when the feed repeats an item.
type Report struct {
	Received int
	Rejected int
	Stored   int
}

// Ingest validates items, assigns IDs and stores them in batches, waiting for
// every batch to finish. Invalid items are skipped and counted as rejected.
// When the feed holds the same item more than once, the last occurrence wins.
// Storage errors from all batches are joined into the returned error; the
// report is returned either way.
func (p *Pipeline) Ingest(ctx context.Context, items []*core.MediaItem) (*Report, error) {
	report := &Report{Received: len(items)}

	valid := make([]*core.MediaItem, 0, len(items))
	slots := make(map[core.ID]int, len(items))
	for i, item := range items {
		if err := core.ValidateMediaItem(item); err != nil {
			report.Rejected++
			p.logger.Warn("rejected catalog item", "index", i, "err", err)
			continue
		}
		if item.ID == 0 {
			item.ID = core.IDFromContent(item.Key())
		}
		// Duplicates in separate batches would conflict as concurrent transactions
		if at, dup := slots[item.ID]; dup {
			valid[at] = item
			continue
		}
		slots[item.ID] = len(valid)
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return report, nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}

	for start := 0; start < len(valid); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		batch := valid[start:min(start+p.batchSize, len(valid))]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			stored, err := p.store.process(ctx, batch)
			if err != nil {
				p.logger.Error("error storing batch", "err", err)
				fail(err)
				return
			}
			mu.Lock()
			report.Stored += stored
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	p.logger.Info("ingestion finished",
		"received", report.Received,
		"rejected", report.Rejected,
		"stored", report.Stored)

	return report, errors.Join(errs...)
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
