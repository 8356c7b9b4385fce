// Package config loads ranking configuration from YAML files and the environment.
// It uses koanf to read an optional file on top of ranking.DefaultConfig.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/mediarank/ranking"
)

// Environment variables that override file values.
const (
	EnvMinScore   = "MEDIARANK_MIN_SCORE"
	EnvMaxResults = "MEDIARANK_MAX_RESULTS"
	EnvLocale     = "MEDIARANK_LOCALE"
)

// ErrInvalidEnv indicates an override variable that does not parse.
var ErrInvalidEnv = errors.New("invalid environment override")

var weightKeys = map[string]func(*ranking.Weights) *float64{
	"exact_match":    func(w *ranking.Weights) *float64 { return &w.ExactMatch },
	"starts_with":    func(w *ranking.Weights) *float64 { return &w.StartsWith },
	"contains":       func(w *ranking.Weights) *float64 { return &w.Contains },
	"fuzzy_match":    func(w *ranking.Weights) *float64 { return &w.FuzzyMatch },
	"year_match":     func(w *ranking.Weights) *float64 { return &w.YearMatch },
	"type_match":     func(w *ranking.Weights) *float64 { return &w.TypeMatch },
	"actor_match":    func(w *ranking.Weights) *float64 { return &w.ActorMatch },
	"director_match": func(w *ranking.Weights) *float64 { return &w.DirectorMatch },
}

var multiplierKeys = map[string]func(*ranking.Multipliers) *float64{
	"title":    func(m *ranking.Multipliers) *float64 { return &m.Title },
	"actor":    func(m *ranking.Multipliers) *float64 { return &m.Actor },
	"director": func(m *ranking.Multipliers) *float64 { return &m.Director },
	"type":     func(m *ranking.Multipliers) *float64 { return &m.Type },
	"content":  func(m *ranking.Multipliers) *float64 { return &m.Content },
}

var topLevelKeys = []string{
	"weights", "multipliers", "min_score", "max_results", "too_many_results",
	"locale", "source_quality", "stop_words",
}

// Load builds a ranking configuration. It starts from ranking.DefaultConfig,
// applies the keys present in the YAML file at path (skipped when path is
// empty), then the MEDIARANK_* environment overrides, and validates the result.
//
// source_quality and stop_words replace the default tables when present.
// Source identifiers in the file must not contain '.'.
func Load(path string, logger *slog.Logger) (*ranking.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := ranking.DefaultConfig()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		applyFile(k, cfg, logger)
	}

	if err := applyEnv(cfg, logger); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(k *koanf.Koanf, cfg *ranking.Config, logger *slog.Logger) {
	for _, key := range k.Keys() {
		top, _, _ := strings.Cut(key, ".")
		if !slices.Contains(topLevelKeys, top) {
			logger.Warn("ignoring unknown config key", "key", key)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(weightKeys)) {
		if path := "weights." + name; k.Exists(path) {
			*weightKeys[name](&cfg.Weights) = k.Float64(path)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(multiplierKeys)) {
		if path := "multipliers." + name; k.Exists(path) {
			*multiplierKeys[name](&cfg.Multipliers) = k.Float64(path)
		}
	}

	if k.Exists("min_score") {
		cfg.MinScore = k.Int("min_score")
	}
	if k.Exists("max_results") {
		cfg.MaxResults = k.Int("max_results")
	}
	if k.Exists("too_many_results") {
		cfg.TooManyResults = k.Int("too_many_results")
	}
	if k.Exists("locale") {
		cfg.Locale = k.String("locale")
	}
	if k.Exists("source_quality") {
		table := make(map[string]float64)
		for _, source := range k.MapKeys("source_quality") {
			table[source] = k.Float64("source_quality." + source)
		}
		cfg.SourceQuality = table
		logger.Debug("source quality table replaced", "sources", len(table))
	}
	if k.Exists("stop_words") {
		cfg.StopWords = k.Strings("stop_words")
	}
}

func applyEnv(cfg *ranking.Config, logger *slog.Logger) error {
	if val := os.Getenv(EnvMinScore); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvMinScore, val)
		}
		logger.Debug("config override from environment", "key", EnvMinScore, "value", n)
		cfg.MinScore = n
	}
	if val := os.Getenv(EnvMaxResults); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvMaxResults, val)
		}
		logger.Debug("config override from environment", "key", EnvMaxResults, "value", n)
		cfg.MaxResults = n
	}
	if val := os.Getenv(EnvLocale); val != "" {
		logger.Debug("config override from environment", "key", EnvLocale, "value", val)
		cfg.Locale = val
	}
	return nil
}
