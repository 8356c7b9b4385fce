package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaItemMUS(t *testing.T) {
	now := time.Now().Truncate(time.Microsecond)

	tests := []struct {
		name string
		item MediaItem
	}{
		{
			name: "full item",
			item: MediaItem{
				ID:         IDFromContent("(tyyszy,42)"),
				RemoteID:   "42",
				Title:      "流浪地球",
				Actors:     []string{"吴京", "屈楚萧"},
				Director:   "郭帆",
				Content:    "太阳即将毁灭",
				Year:       "2019",
				TypeName:   "科幻片",
				Source:     "tyyszy",
				Extra:      map[string]json.RawMessage{"vod_pic": json.RawMessage(`"p.jpg"`), "vod_score": json.RawMessage(`7.9`)},
				InsertedAt: now,
				UpdatedAt:  now.Add(time.Hour),
			},
		},
		{
			name: "zero item",
			item: MediaItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, MediaItemMUS.Size(tt.item))
			n := MediaItemMUS.Marshal(tt.item, buf)
			assert.Equal(t, len(buf), n)

			decoded, n, err := MediaItemMUS.Unmarshal(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)

			assert.Equal(t, tt.item.ID, decoded.ID)
			assert.Equal(t, tt.item.Title, decoded.Title)
			assert.Len(t, decoded.Actors, len(tt.item.Actors))
			for i, actor := range tt.item.Actors {
				assert.Equal(t, actor, decoded.Actors[i])
			}
			assert.Equal(t, tt.item.Content, decoded.Content)
			assert.Equal(t, tt.item.Source, decoded.Source)
			assert.Len(t, decoded.Extra, len(tt.item.Extra))
			for k, v := range tt.item.Extra {
				assert.JSONEq(t, string(v), string(decoded.Extra[k]))
			}
			assert.True(t, tt.item.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.item.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestMediaItemMUS_Truncated(t *testing.T) {
	item := MediaItem{Title: "Heat", Actors: []string{"Al Pacino"}, Source: "ruyi"}
	buf := make([]byte, MediaItemMUS.Size(item))
	MediaItemMUS.Marshal(item, buf)

	_, _, err := MediaItemMUS.Unmarshal(buf[:len(buf)-3])
	assert.Error(t, err)

	_, err = MediaItemMUS.Skip(buf[:len(buf)-3])
	assert.Error(t, err)
}

func TestMediaItemMUS_Skip(t *testing.T) {
	first := MediaItem{Title: "Heat", Year: "1995", Source: "ruyi", Extra: map[string]json.RawMessage{"vod_pic": json.RawMessage(`"h.jpg"`)}}
	second := MediaItem{Title: "Ronin", Year: "1998", Source: "ruyi"}

	buf := make([]byte, MediaItemMUS.Size(first)+MediaItemMUS.Size(second))
	n := MediaItemMUS.Marshal(first, buf)
	MediaItemMUS.Marshal(second, buf[n:])

	skipped, err := MediaItemMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	decoded, _, err := MediaItemMUS.Unmarshal(buf[skipped:])
	require.NoError(t, err)
	assert.Equal(t, "Ronin", decoded.Title)
	assert.Equal(t, "1998", decoded.Year)
}

func TestSourceQualitySnapshotMUS(t *testing.T) {
	snap := SourceQualitySnapshot{
		Bonuses:   map[string]float64{"tyyszy": 10, "bfzy": 8.5, "zero": 0},
		UpdatedAt: time.Now().Truncate(time.Microsecond),
	}

	buf := make([]byte, SourceQualitySnapshotMUS.Size(snap))
	SourceQualitySnapshotMUS.Marshal(snap, buf)

	decoded, _, err := SourceQualitySnapshotMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, snap.Bonuses, decoded.Bonuses)
	assert.True(t, snap.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestIDMUS(t *testing.T) {
	id := IDFromContent("x")
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)

	decoded, _, err := IDMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}
