package storage

import (
	"testing"
	"time"

	"github.com/poiesic/mediarank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("(tyyszy,42)")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalMediaItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := &core.MediaItem{
		ID:         core.ID(9),
		Title:      "Inception",
		Actors:     []string{"Leonardo DiCaprio", "Tom Hardy"},
		Director:   "Christopher Nolan",
		Year:       "2010",
		TypeName:   "Sci-Fi",
		Source:     "tyyszy",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalMediaItem(MarshalMediaItem(item))
	require.NoError(t, err)
	assert.Equal(t, item.ID, decoded.ID)
	assert.Equal(t, item.Actors, decoded.Actors)
	assert.Equal(t, item.Director, decoded.Director)
	assert.True(t, item.InsertedAt.Equal(decoded.InsertedAt))
}

func TestUnmarshalMediaItem_Invalid(t *testing.T) {
	data := MarshalMediaItem(&core.MediaItem{Title: "Inception", Source: "tyyszy"})

	_, err := UnmarshalMediaItem(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalMediaItem(append(data, 0x01))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalSnapshot(t *testing.T) {
	snapshot := &core.SourceQualitySnapshot{Bonuses: map[string]float64{"bfzy": 8}}

	decoded, err := UnmarshalSnapshot(MarshalSnapshot(snapshot))
	require.NoError(t, err)
	assert.Equal(t, snapshot.Bonuses, decoded.Bonuses)
	assert.True(t, decoded.UpdatedAt.IsZero())
}
