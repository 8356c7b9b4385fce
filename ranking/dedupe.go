package ranking

import (
	"strings"

	"github.com/poiesic/mediarank/core"
)

// dedupeKey identifies near-duplicate catalog entries.
type dedupeKey struct {
	title string
	year  string
}

func keyOf(item *core.MediaItem) dedupeKey {
	return dedupeKey{
		title: Normalize(item.Title),
		year:  strings.TrimSpace(item.Year),
	}
}

// Dedupe keeps one item per (normalized title, year). Each key holds the slot of
// its first occurrence; a later item takes over that slot only with a strictly
// higher score. The input slice is not modified.
func Dedupe(items []core.ScoredItem) []core.ScoredItem {
	slots := make(map[dedupeKey]int, len(items))
	out := make([]core.ScoredItem, 0, len(items))
	for _, item := range items {
		key := keyOf(&item.MediaItem)
		slot, seen := slots[key]
		if !seen {
			slots[key] = len(out)
			out = append(out, item)
			continue
		}
		if item.RelevanceScore > out[slot].RelevanceScore {
			out[slot] = item
		}
	}
	return out
}
