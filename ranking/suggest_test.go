package ranking

import (
	"testing"

	"github.com/poiesic/mediarank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Suggest(t *testing.T) {
	engine := newTestEngine(t, WithTooManyResults(2))

	t.Run("empty query", func(t *testing.T) {
		hints := engine.Suggest("   ", nil)
		assert.Equal(t, []string{"Enter a title, actor or director to search"}, hints)
	})

	t.Run("no results", func(t *testing.T) {
		hints := engine.Suggest("Incepshun", nil)
		require.Len(t, hints, 3)
		assert.Equal(t, "Try a shorter query", hints[0])
		assert.Contains(t, hints[1], `"Incepshun"`)
		assert.Equal(t, "Try an alternative title or alias", hints[2])
	})

	t.Run("no results for several terms", func(t *testing.T) {
		hints := engine.Suggest("dark knight rises", nil)
		require.Len(t, hints, 4)
		assert.Contains(t, hints[3], `"knight"`)
	})

	t.Run("too many results", func(t *testing.T) {
		results := []core.ScoredItem{
			{MediaItem: core.MediaItem{Title: "Dune", Year: "2021", TypeName: "科幻片"}},
			{MediaItem: core.MediaItem{Title: "Dune Part Two", Year: "2024", TypeName: "科幻片"}},
			{MediaItem: core.MediaItem{Title: "Dune", Year: "1984", TypeName: "动作片"}},
		}
		hints := engine.Suggest("dune", results)
		require.Len(t, hints, 2)
		assert.Equal(t, `Narrow the results by year, e.g. "dune 1984"`, hints[0])
		assert.Equal(t, `Narrow the results by type, e.g. "科幻片"`, hints[1])
	})

	t.Run("too many results for a year already in the query", func(t *testing.T) {
		results := []core.ScoredItem{
			{MediaItem: core.MediaItem{Title: "2001: A Space Odyssey", Year: "2001", TypeName: "科幻片"}},
			{MediaItem: core.MediaItem{Title: "2001 Maniacs", Year: "2001", TypeName: "恐怖片"}},
			{MediaItem: core.MediaItem{Title: "Odyssey 2001", Year: "2001", TypeName: "科幻片"}},
		}
		hints := engine.Suggest("2001", results)
		require.Len(t, hints, 2)
		assert.Equal(t, "Narrow the results by adding a release year", hints[0])
		assert.NotContains(t, hints[0], "2001 2001")
	})

	t.Run("too many results without metadata", func(t *testing.T) {
		results := []core.ScoredItem{
			{MediaItem: core.MediaItem{Title: "a"}},
			{MediaItem: core.MediaItem{Title: "b"}},
			{MediaItem: core.MediaItem{Title: "c"}},
		}
		hints := engine.Suggest("x", results)
		assert.Equal(t, []string{"Narrow the results by adding a release year", "Narrow the results by type"}, hints)
	})

	t.Run("reasonable result count", func(t *testing.T) {
		results := []core.ScoredItem{{MediaItem: core.MediaItem{Title: "Dune"}}}
		assert.Empty(t, engine.Suggest("dune", results))
	})
}
