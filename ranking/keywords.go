package ranking

import (
	"unicode/utf8"
)

// minTermLength is the shortest term, in runes, kept by ExtractKeywords.
const minTermLength = 2

// StopWords is a set of normalized terms excluded from keyword extraction.
type StopWords map[string]struct{}

// NewStopWords builds a StopWords set, normalizing every word.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Contains reports whether term is a stop word.
func (s StopWords) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// ExtractKeywords splits text on whitespace, hyphen, underscore and period runs,
// normalizes each piece and returns the distinct pieces that are at least two
// runes long and not stop words, in first-occurrence order.
func ExtractKeywords(text string, stopWords StopWords) []string {
	if text == "" {
		return []string{}
	}

	pieces := separatorRun.Split(text, -1)
	terms := make([]string, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))
	for _, piece := range pieces {
		term := Normalize(piece)
		if utf8.RuneCountInString(term) < minTermLength {
			continue
		}
		if stopWords.Contains(term) || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms
}

// Query is a search query prepared once per ranking call.
type Query struct {
	Raw        string
	Normalized string
	Terms      []string
}

// ParseQuery normalizes raw and extracts its keywords.
// Terms come from raw rather than Normalized, which has its separators stripped.
func ParseQuery(raw string, stopWords StopWords) Query {
	return Query{
		Raw:        raw,
		Normalized: Normalize(raw),
		Terms:      ExtractKeywords(raw, stopWords),
	}
}
