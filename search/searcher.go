package search

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/ranking"
	"github.com/poiesic/mediarank/storage"
)

// Searcher answers queries over the catalog with a ranking engine.
type Searcher struct {
	catalog storage.CatalogRepository
	engine  *ranking.Engine
	metrics *Metrics
	pool    *ants.Pool
	logger  *slog.Logger
}

// Options narrows a single search.
type Options struct {
	// Sources restricts candidates to items from these sources. Empty means all.
	Sources []string
	// Limit caps the returned items below the engine's MaxResults. Zero means no extra cap.
	Limit int
}

// Result is the outcome of one search.
type Result struct {
	Query       string
	Items       []core.ScoredItem
	Suggestions []string
	// Candidates is the number of catalog items the query was ranked against.
	Candidates int
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics records searches in m.
// Default is an unregistered Metrics instance.
func WithMetrics(m *Metrics) Option {
	return func(s *Searcher) error {
		if m != nil {
			s.metrics = m
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size used by SearchMany.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(catalog storage.CatalogRepository, engine *ranking.Engine, opts ...Option) (*Searcher, error) {
	if catalog == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}

	pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		catalog: catalog,
		engine:  engine,
		metrics: NewMetrics(),
		pool:    pool,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the catalog against query. A nil opts searches every source.
func (s *Searcher) Search(ctx context.Context, query string, opts *Options) (*Result, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor searches like Search, reporting each stage to monitor.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts *Options, monitor SearchMonitor) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()
	candidates, err := s.loadCandidates(ctx, opts.Sources)
	if err != nil {
		return nil, err
	}
	monitor.AfterCandidateLoad(candidates)

	result := s.rank(query, candidates, opts.Limit, monitor)
	s.metrics.ObserveSearch(time.Since(start).Seconds(), result.Candidates, len(result.Items))
	return result, nil
}

// SearchMany ranks every query against a single candidate load.
// Queries run concurrently on the searcher's pool; results keep query order.
func (s *Searcher) SearchMany(ctx context.Context, queries []string, opts *Options) ([]*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if len(queries) == 0 {
		return []*Result{}, nil
	}

	start := time.Now()
	candidates, err := s.loadCandidates(ctx, opts.Sources)
	if err != nil {
		return nil, err
	}
	loaded := time.Since(start)

	results := make([]*Result, len(queries))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			s.metrics.IncSearchErrors(StageCancel)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			begin := time.Now()
			results[i] = s.rank(query, candidates, opts.Limit, &noopMonitor{})
			elapsed := loaded + time.Since(begin)
			s.metrics.ObserveSearch(elapsed.Seconds(), results[i].Candidates, len(results[i].Items))
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// Release releases the worker pool.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

func (s *Searcher) rank(query string, candidates []*core.MediaItem, limit int, monitor SearchMonitor) *Result {
	items := s.engine.RankWithMonitor(candidates, query, monitor)

	// Suggestions see the full ranked set, before the caller's limit
	suggestions := s.engine.Suggest(query, items)
	monitor.AfterSuggest(suggestions)

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	s.logger.Debug("search finished",
		"query", query,
		"candidates", len(candidates),
		"results", len(items))

	return &Result{
		Query:       query,
		Items:       items,
		Suggestions: suggestions,
		Candidates:  len(candidates),
	}
}

func (s *Searcher) loadCandidates(ctx context.Context, sources []string) ([]*core.MediaItem, error) {
	if err := ctx.Err(); err != nil {
		s.metrics.IncSearchErrors(StageCancel)
		return nil, err
	}

	var (
		candidates []*core.MediaItem
		err        error
	)
	if len(sources) > 0 {
		candidates, err = s.catalog.GetItemsBySource(ctx, sources...)
	} else {
		candidates, err = s.catalog.AllItems(ctx)
	}
	if err != nil {
		s.metrics.IncSearchErrors(StageLoad)
		s.logger.Error("error loading candidates", "sources", sources, "err", err)
		return nil, err
	}
	return candidates, nil
}
