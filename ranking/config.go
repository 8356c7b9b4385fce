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


package ranking

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Weights holds the points awarded per match tier.
type Weights struct {
	// ExactMatch is awarded when a normalized field equals the normalized query.
	ExactMatch float64
	// StartsWith is awarded when a field begins with the query.
	StartsWith float64
	// Contains is awarded when the query appears anywhere in a field.
	Contains float64
	// FuzzyMatch scales both the per-term proportional bonus and the similarity bonus.
	FuzzyMatch float64
	// YearMatch is awarded once when the raw query mentions the item's year.
	YearMatch float64

	// TypeMatch, ActorMatch and DirectorMatch are carried for configuration
	// compatibility. Field emphasis is expressed through Multipliers instead.
	TypeMatch     float64
	ActorMatch    float64
	DirectorMatch float64
}

// Multipliers scales each field's raw score before it is summed.
type Multipliers struct {
	Title    float64
	Actor    float64
	Director float64
	Type     float64
	Content  float64
}

// Config holds the immutable ranking configuration.
type Config struct {
	Weights     Weights
	Multipliers Multipliers

	// MinScore drops results scoring below it.
	// Default: 10
	MinScore int

	// MaxResults caps the number of ranked results.
	// Default: 500
	MaxResults int

	// TooManyResults is the result count above which Suggest advises narrowing the query.
	// Default: 50
	TooManyResults int

	// Locale selects the collation used to order titles with equal score and year.
	// Default: "zh"
	Locale string

	// SourceQuality maps a source identifier to a flat bonus. Unknown sources earn 0.
	SourceQuality map[string]float64

	// StopWords are excluded from query keywords.
	StopWords []string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithWeights replaces the match tier weights.
func WithWeights(w Weights) ConfigOption {
	return func(c *Config) {
		c.Weights = w
	}
}

// WithMultipliers replaces the field multipliers.
func WithMultipliers(m Multipliers) ConfigOption {
	return func(c *Config) {
		c.Multipliers = m
	}
}

// WithMinScore sets the minimum score a result needs to be kept.
func WithMinScore(min int) ConfigOption {
	return func(c *Config) {
		c.MinScore = min
	}
}

// WithMaxResults sets the maximum number of results returned.
func WithMaxResults(max int) ConfigOption {
	return func(c *Config) {
		c.MaxResults = max
	}
}

// WithTooManyResults sets the threshold used by Suggest.
func WithTooManyResults(n int) ConfigOption {
	return func(c *Config) {
		c.TooManyResults = n
	}
}

// WithLocale sets the collation locale, as a BCP 47 tag.
func WithLocale(locale string) ConfigOption {
	return func(c *Config) {
		c.Locale = locale
	}
}

// WithSourceQuality replaces the source bonus table.
func WithSourceQuality(table map[string]float64) ConfigOption {
	return func(c *Config) {
		c.SourceQuality = maps.Clone(table)
	}
}

// WithStopWords replaces the stop word list.
func WithStopWords(words ...string) ConfigOption {
	return func(c *Config) {
		c.StopWords = slices.Clone(words)
	}
}

// DefaultWeights returns the stock match tier weights.
func DefaultWeights() Weights {
	return Weights{
		ExactMatch:    100,
		StartsWith:    80,
		Contains:      60,
		FuzzyMatch:    40,
		YearMatch:     20,
		TypeMatch:     15,
		ActorMatch:    30,
		DirectorMatch: 25,
	}
}

// DefaultMultipliers returns the stock field multipliers, title highest and content lowest.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		Title:    1.0,
		Actor:    0.8,
		Director: 0.7,
		Type:     0.5,
		Content:  0.3,
	}
}

// DefaultSourceQuality returns the stock bonus table for well-known catalog sources.
func DefaultSourceQuality() map[string]float64 {
	return map[string]float64{
		"tyyszy":  10,
		"bfzy":    8,
		"dyttzy":  8,
		"ruyi":    6,
		"heimuer": 5,
		"wolong":  5,
		"zy360":   4,
		"wujin":   3,
	}
}

// DefaultStopWords returns the stock stop word list.
func DefaultStopWords() []string {
	return []string{
		"the", "an", "be", "is", "are", "was", "to", "of", "and", "in", "that",
		"it", "for", "on", "with", "as", "at", "this", "by", "from",
		"电影", "电视剧", "高清", "完整版", "国语", "粤语",
	}
}

// DefaultConfig returns a Config with the stock weights, thresholds and tables.
func DefaultConfig() *Config {
	return &Config{
		Weights:        DefaultWeights(),
		Multipliers:    DefaultMultipliers(),
		MinScore:       10,
		MaxResults:     500,
		TooManyResults: 50,
		Locale:         "zh",
		SourceQuality:  DefaultSourceQuality(),
		StopWords:      DefaultStopWords(),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//   cfg := NewConfig(
//       WithMinScore(20),
//       WithSourceQuality(map[string]float64{"tyyszy": 12}),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.SourceQuality = maps.Clone(c.SourceQuality)
	out.StopWords = slices.Clone(c.StopWords)
	return &out
}

// Normalize puts the configuration in canonical form: trimmed locale,
// lower-cased de-duplicated stop words.
func (c *Config) Normalize() {
	c.Locale = strings.TrimSpace(c.Locale)
	if c.Locale == "" {
		c.Locale = "zh"
	}

	words := make([]string, 0, len(c.StopWords))
	seen := make(map[string]bool, len(c.StopWords))
	for _, w := range c.StopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	c.StopWords = words
}

// Validate checks that the configuration is usable.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	weights := map[string]float64{
		"exact_match":    c.Weights.ExactMatch,
		"starts_with":    c.Weights.StartsWith,
		"contains":       c.Weights.Contains,
		"fuzzy_match":    c.Weights.FuzzyMatch,
		"year_match":     c.Weights.YearMatch,
		"type_match":     c.Weights.TypeMatch,
		"actor_match":    c.Weights.ActorMatch,
		"director_match": c.Weights.DirectorMatch,
	}
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		if !nonNegative(weights[name]) {
			return fmt.Errorf("%w: weight %s must be a non-negative number", ErrInvalidConfig, name)
		}
	}

	multipliers := map[string]float64{
		"title":    c.Multipliers.Title,
		"actor":    c.Multipliers.Actor,
		"director": c.Multipliers.Director,
		"type":     c.Multipliers.Type,
		"content":  c.Multipliers.Content,
	}
	for _, name := range slices.Sorted(maps.Keys(multipliers)) {
		if !nonNegative(multipliers[name]) {
			return fmt.Errorf("%w: multiplier %s must be a non-negative number", ErrInvalidConfig, name)
		}
	}

	if c.MinScore < 0 {
		return fmt.Errorf("%w: MinScore cannot be negative", ErrInvalidConfig)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: MaxResults must be at least 1", ErrInvalidConfig)
	}
	if c.TooManyResults < 0 {
		return fmt.Errorf("%w: TooManyResults cannot be negative", ErrInvalidConfig)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err)
	}
	for _, source := range slices.Sorted(maps.Keys(c.SourceQuality)) {
		if source == "" {
			return fmt.Errorf("%w: source quality entry with empty source", ErrInvalidConfig)
		}
		if !nonNegative(c.SourceQuality[source]) {
			return fmt.Errorf("%w: source quality for %s must be a non-negative number", ErrInvalidConfig, source)
		}
	}
	return nil
}

func nonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
