package ranking

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/mediarank/core"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine ranks catalog candidates against queries.
// It is safe for concurrent use.
type Engine struct {
	cfg       *Config
	scorer    *Scorer
	stopWords StopWords
	locale    language.Tag
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an Engine from a private copy of cfg.
// A nil cfg selects DefaultConfig().
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, cfg.Locale, err)
	}

	e := &Engine{
		cfg:       cfg,
		scorer:    NewScorer(cfg),
		stopWords: NewStopWords(cfg.StopWords...),
		locale:    tag,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "ranking")

	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}

// ParseQuery prepares raw with the engine's stop words.
func (e *Engine) ParseQuery(raw string) Query {
	return ParseQuery(raw, e.stopWords)
}

// Rank scores candidates against query and returns them filtered, de-duplicated,
// sorted and truncated. Nil candidates are skipped. The input is never modified
// and the results share no memory with it.
func (e *Engine) Rank(candidates []*core.MediaItem, query string) []core.ScoredItem {
	return e.RankWithMonitor(candidates, query, nil)
}

// RankWithMonitor ranks like Rank, reporting each pipeline stage to monitor.
func (e *Engine) RankWithMonitor(candidates []*core.MediaItem, query string, monitor Monitor) []core.ScoredItem {
	if len(candidates) == 0 {
		return []core.ScoredItem{}
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	q := e.ParseQuery(query)
	monitor.Start(q, len(candidates))

	// 1. Score
	scored := make([]core.ScoredItem, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		score, details := e.scorer.Score(candidate, q)
		scored = append(scored, core.ScoredItem{
			MediaItem:      *candidate,
			RelevanceScore: score,
			MatchDetails:   details,
		})
	}
	monitor.AfterScoring(scored)

	// 2. Filter
	kept := make([]core.ScoredItem, 0, len(scored))
	for _, item := range scored {
		if item.RelevanceScore >= e.cfg.MinScore {
			kept = append(kept, item)
		}
	}
	monitor.AfterFilter(kept)

	// 3. Deduplicate
	unique := Dedupe(kept)
	monitor.AfterDedupe(unique)

	// 4. Sort and truncate
	e.sortResults(unique)
	if len(unique) > e.cfg.MaxResults {
		unique = unique[:e.cfg.MaxResults]
	}

	results := make([]core.ScoredItem, len(unique))
	for i := range unique {
		results[i] = unique[i]
		results[i].MediaItem = unique[i].MediaItem.Clone()
	}
	monitor.Finish(results)

	e.logger.Debug("ranked candidates",
		"query", query,
		"candidates", len(candidates),
		"scored", len(scored),
		"kept", len(kept),
		"unique", len(unique),
		"returned", len(results))

	return results
}

type sortEntry struct {
	item core.ScoredItem
	year int
}

// sortResults orders by score descending, then year descending, then title
// ascending by locale collation with byte order as the final tie-break.
func (e *Engine) sortResults(items []core.ScoredItem) {
	if len(items) < 2 {
		return
	}

	// a Collator is not safe for concurrent use
	col := collate.New(e.locale)

	entries := make([]sortEntry, len(items))
	for i, item := range items {
		entries[i] = sortEntry{item: item, year: parseYear(item.Year)}
	}

	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		if c := cmp.Compare(b.item.RelevanceScore, a.item.RelevanceScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.year, a.year); c != 0 {
			return c
		}
		if c := col.CompareString(a.item.Title, b.item.Title); c != 0 {
			return c
		}
		return strings.Compare(a.item.Title, b.item.Title)
	})

	for i := range entries {
		items[i] = entries[i].item
	}
}

// parseYear returns the numeric year, or 0 when absent or unparseable.
func parseYear(year string) int {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	return n
}
