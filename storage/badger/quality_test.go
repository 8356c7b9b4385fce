package badger

import (
	"context"
	"testing"

	"github.com/poiesic/mediarank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceQualityRepository(t *testing.T) {
	catalog, quality, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		catalog.Close()
		backend.Close()
	}()

	ctx := context.Background()

	t.Run("no snapshot", func(t *testing.T) {
		snapshot, err := quality.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("save and load", func(t *testing.T) {
		err := quality.SaveSnapshot(ctx, &core.SourceQualitySnapshot{
			Bonuses: map[string]float64{"tyyszy": 10, "ruyi": 6.5},
		})
		require.NoError(t, err)

		snapshot, err := quality.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, map[string]float64{"tyyszy": 10, "ruyi": 6.5}, snapshot.Bonuses)
		assert.False(t, snapshot.UpdatedAt.IsZero())
	})

	t.Run("save replaces", func(t *testing.T) {
		err := quality.SaveSnapshot(ctx, &core.SourceQualitySnapshot{
			Bonuses: map[string]float64{"bfzy": 8},
		})
		require.NoError(t, err)

		snapshot, err := quality.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"bfzy": 8}, snapshot.Bonuses)
	})

	t.Run("invalid snapshot rejected", func(t *testing.T) {
		err := quality.SaveSnapshot(ctx, &core.SourceQualitySnapshot{
			Bonuses: map[string]float64{"bad": -1},
		})
		assert.ErrorIs(t, err, core.ErrInvalidSnapshot)

		snapshot, err := quality.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"bfzy": 8}, snapshot.Bonuses)
	})
}
