package ranking

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/mediarank/core"
)

// Suggest returns advisory hints for refining query given its ranked results.
// It never affects ranking.
func (e *Engine) Suggest(query string, results []core.ScoredItem) []string {
	q := e.ParseQuery(query)

	if q.Normalized == "" {
		return []string{"Enter a title, actor or director to search"}
	}

	if len(results) == 0 {
		hints := []string{
			"Try a shorter query",
			fmt.Sprintf("Check the spelling of %q", strings.TrimSpace(query)),
			"Try an alternative title or alias",
		}
		if len(q.Terms) > 1 {
			hints = append(hints, fmt.Sprintf("Search for a single keyword such as %q", longestTerm(q.Terms)))
		}
		return hints
	}

	if len(results) > e.cfg.TooManyResults {
		var hints []string
		if year := mostCommon(results, func(r core.ScoredItem) string { return strings.TrimSpace(r.Year) }); year != "" && !strings.Contains(query, year) {
			hints = append(hints, fmt.Sprintf("Narrow the results by year, e.g. %q", query+" "+year))
		} else {
			hints = append(hints, "Narrow the results by adding a release year")
		}
		if typeName := mostCommon(results, func(r core.ScoredItem) string { return strings.TrimSpace(r.TypeName) }); typeName != "" {
			hints = append(hints, fmt.Sprintf("Narrow the results by type, e.g. %q", typeName))
		} else {
			hints = append(hints, "Narrow the results by type")
		}
		return hints
	}

	return []string{}
}

func longestTerm(terms []string) string {
	best := terms[0]
	for _, t := range terms[1:] {
		if utf8.RuneCountInString(t) > utf8.RuneCountInString(best) {
			best = t
		}
	}
	return best
}

// mostCommon returns the most frequent non-empty value of field, ties broken
// by the smaller value.
func mostCommon(results []core.ScoredItem, field func(core.ScoredItem) string) string {
	counts := make(map[string]int)
	for _, r := range results {
		if v := field(r); v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return ""
	}
	values := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return values[0]
}
