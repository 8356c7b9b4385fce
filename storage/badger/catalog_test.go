package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()
	catalog, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalog.Close()
		backend.Close()
	})
	return catalog
}

func TestCatalogBasics(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	item := &core.MediaItem{
		RemoteID: "42",
		Title:    "流浪地球",
		Actors:   []string{"吴京"},
		Year:     "2019",
		Source:   "bfzy",
		Extra:    map[string]json.RawMessage{"vod_pic": json.RawMessage(`"p.jpg"`)},
	}

	added, err := catalog.AddItems(ctx, item)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, core.IDFromContent("(bfzy,42)"), added[0].ID)
	assert.False(t, added[0].InsertedAt.IsZero())
	assert.Equal(t, added[0].InsertedAt, added[0].UpdatedAt)

	got, err := catalog.GetItem(ctx, added[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "流浪地球", got.Title)
	assert.Equal(t, []string{"吴京"}, got.Actors)
	assert.Equal(t, `"p.jpg"`, string(got.Extra["vod_pic"]))
	assert.True(t, added[0].InsertedAt.Equal(got.InsertedAt))
	assert.True(t, added[0].UpdatedAt.Equal(got.UpdatedAt))

	count, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCatalog_GetItemNotFound(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.GetItem(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_Upsert(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	first := &core.MediaItem{RemoteID: "1", Title: "Heat", Source: "ruyi"}
	_, err := catalog.AddItems(ctx, first)
	require.NoError(t, err)

	second := &core.MediaItem{RemoteID: "1", Title: "Heat (Director's Cut)", Source: "ruyi"}
	_, err = catalog.AddItems(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.InsertedAt.Equal(second.InsertedAt))
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	count, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := catalog.GetItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat (Director's Cut)", got.Title)
}

func TestCatalog_SourceChangeMovesIndex(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	item := &core.MediaItem{ID: 7, Title: "Heat", Source: "ruyi"}
	_, err := catalog.AddItems(ctx, item)
	require.NoError(t, err)

	moved := &core.MediaItem{ID: 7, Title: "Heat", Source: "bfzy"}
	_, err = catalog.AddItems(ctx, moved)
	require.NoError(t, err)

	ruyi, err := catalog.GetItemsBySource(ctx, "ruyi")
	require.NoError(t, err)
	assert.Empty(t, ruyi)

	bfzy, err := catalog.GetItemsBySource(ctx, "bfzy")
	require.NoError(t, err)
	require.Len(t, bfzy, 1)
	assert.Equal(t, core.ID(7), bfzy[0].ID)
}

func TestCatalog_AddNil(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.AddItems(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidMediaItem)
}

func TestCatalog_GetItemsBySource(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	_, err := catalog.AddItems(ctx,
		&core.MediaItem{Title: "A", Source: "ruyi"},
		&core.MediaItem{Title: "B", Source: "ruyi2"},
		&core.MediaItem{Title: "C", Source: "bfzy"},
		&core.MediaItem{Title: "D", Source: "ruyi"},
	)
	require.NoError(t, err)

	t.Run("prefix sources are distinct", func(t *testing.T) {
		items, err := catalog.GetItemsBySource(ctx, "ruyi")
		require.NoError(t, err)
		require.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, "ruyi", item.Source)
		}
	})

	t.Run("multiple sources", func(t *testing.T) {
		items, err := catalog.GetItemsBySource(ctx, "bfzy", "ruyi2", "bfzy")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "C", items[0].Title)
		assert.Equal(t, "B", items[1].Title)
	})

	t.Run("unknown source", func(t *testing.T) {
		items, err := catalog.GetItemsBySource(ctx, "nowhere")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCatalog_DeleteItems(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	added, err := catalog.AddItems(ctx,
		&core.MediaItem{Title: "A", Source: "ruyi"},
		&core.MediaItem{Title: "B", Source: "ruyi"},
	)
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteItems(ctx, added[0].ID))

	_, err = catalog.GetItem(ctx, added[0].ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bySource, err := catalog.GetItemsBySource(ctx, "ruyi")
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, "B", bySource[0].Title)

	err = catalog.DeleteItems(ctx, added[0].ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_GetItems(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	added, err := catalog.AddItems(ctx,
		&core.MediaItem{Title: "A", Source: "s"},
		&core.MediaItem{Title: "B", Source: "s"},
	)
	require.NoError(t, err)

	items, err := catalog.GetItems(ctx, added[1].ID, core.ID(999), added[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, "A", items[1].Title)
}

func TestCatalog_ScanItems(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	for i := range 25 {
		_, err := catalog.AddItems(ctx, &core.MediaItem{Title: fmt.Sprintf("Movie %d", i), Source: "s"})
		require.NoError(t, err)
	}

	all, err := catalog.AllItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	var scanned []*core.MediaItem
	after := core.ID(0)
	for {
		page, err := catalog.ScanItems(ctx, after, 10)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		assert.LessOrEqual(t, len(page), 10)
		scanned = append(scanned, page...)
		after = page[len(page)-1].ID
	}

	require.Len(t, scanned, 25)
	for i := range all {
		assert.Equal(t, all[i].ID, scanned[i].ID)
	}

	_, err = catalog.ScanItems(ctx, 0, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestCatalog_ContextCancelled(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := catalog.AddItems(ctx, &core.MediaItem{Title: "A", Source: "s"})
	require.NoError(t, err)

	cancel()
	_, err = catalog.AllItems(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
