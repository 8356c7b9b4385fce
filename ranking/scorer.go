package ranking

import (
	"maps"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/mediarank/core"
)

// similarityThreshold is the similarity a field must exceed to earn the fuzzy bonus.
const similarityThreshold = 0.6

// Scorer computes the relevance of a single item to a prepared query.
type Scorer struct {
	weights       Weights
	multipliers   Multipliers
	sourceQuality map[string]float64
}

// NewScorer creates a Scorer from the weights, multipliers and source table of cfg.
func NewScorer(cfg *Config) *Scorer {
	return &Scorer{
		weights:       cfg.Weights,
		multipliers:   cfg.Multipliers,
		sourceQuality: maps.Clone(cfg.SourceQuality),
	}
}

// Score returns the relevance score of item for q and the fields that matched.
// A nil item scores as an item with every field empty.
func (s *Scorer) Score(item *core.MediaItem, q Query) (int, core.MatchDetails) {
	if item == nil {
		item = &core.MediaItem{}
	}

	var (
		total   float64
		details core.MatchDetails
		points  float64
	)

	points, details.Title = s.fieldScore(item.Title, q)
	total += points * s.multipliers.Title

	points, details.Actor = s.fieldScore(item.ActorList(), q)
	total += points * s.multipliers.Actor

	points, details.Director = s.fieldScore(item.Director, q)
	total += points * s.multipliers.Director

	points, details.Type = s.fieldScore(item.TypeName, q)
	total += points * s.multipliers.Type

	// content has no highlight flag
	points, _ = s.fieldScore(item.Content, q)
	total += points * s.multipliers.Content

	if year := strings.TrimSpace(item.Year); year != "" && strings.Contains(q.Raw, year) {
		total += s.weights.YearMatch
		details.Year = true
	}

	total += s.sourceQuality[item.Source]

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	return score, details
}

// fieldScore returns the unmultiplied points one field earns and whether it
// matched the query by tier or by term.
func (s *Scorer) fieldScore(field string, q Query) (float64, bool) {
	f := Normalize(field)

	var (
		points  float64
		matched = true
	)
	switch {
	case f == q.Normalized:
		points += s.weights.ExactMatch
	case strings.HasPrefix(f, q.Normalized):
		points += s.weights.StartsWith
	case strings.Contains(f, q.Normalized):
		points += s.weights.Contains
	default:
		matched = false
	}

	queryLen := utf8.RuneCountInString(q.Normalized)
	for _, term := range q.Terms {
		if !strings.Contains(f, term) {
			continue
		}
		matched = true
		if queryLen > 0 {
			points += s.weights.FuzzyMatch * float64(utf8.RuneCountInString(term)) / float64(queryLen)
		}
	}

	if sim, ok := similarityAbove(f, q.Normalized, similarityThreshold); ok {
		points += s.weights.FuzzyMatch * sim
	}

	return points, matched
}
