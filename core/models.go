package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entries.
// It is derived from item content so re-importing the same upstream entry is an upsert.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MediaItem is one catalog entry as delivered by an upstream source.
// Every field is optional; missing fields read as empty strings.
type MediaItem struct {
	ID         ID
	RemoteID   string   // Identifier assigned by the upstream source
	Title      string
	Actors     []string
	Director   string
	Content    string // Free-text description
	Year       string // Release year as delivered, may be empty or non-numeric
	TypeName   string // Genre or category name
	Source     string // Upstream source identifier, e.g. "tyyszy"
	Extra      map[string]json.RawMessage
	InsertedAt time.Time // When the item was first stored in the catalog
	UpdatedAt  time.Time // When the item was last overwritten by an import
}

// Key returns the identity tuple used to derive the item's ID.
// Items with an upstream id are keyed by (source,id), others by (source,title,year).
func (m *MediaItem) Key() string {
	if m.RemoteID != "" {
		return "(" + m.Source + "," + m.RemoteID + ")"
	}
	return "(" + m.Source + "," + m.Title + "," + m.Year + ")"
}

// ActorList returns the actors joined into a single comparable string.
func (m *MediaItem) ActorList() string {
	return strings.Join(m.Actors, ",")
}

// Clone returns a deep copy of the item.
func (m *MediaItem) Clone() MediaItem {
	c := *m
	c.Actors = slices.Clone(m.Actors)
	if m.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}

// MatchDetails records which fields matched the query, for result highlighting.
type MatchDetails struct {
	Title    bool `json:"title"`
	Actor    bool `json:"actor"`
	Director bool `json:"director"`
	Year     bool `json:"year"`
	Type     bool `json:"type"`
}

// ScoredItem is a MediaItem annotated with its relevance to one query.
type ScoredItem struct {
	MediaItem
	RelevanceScore int
	MatchDetails   MatchDetails
}

// SourceQualitySnapshot is the latest verdict of the upstream quality service:
// the sources currently considered usable and the bonus each one earns.
type SourceQualitySnapshot struct {
	Bonuses   map[string]float64
	UpdatedAt time.Time
}

// Usable reports whether source appears in the snapshot.
func (s *SourceQualitySnapshot) Usable(source string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Bonuses[source]
	return ok
}

// Sources returns the usable source identifiers in sorted order.
func (s *SourceQualitySnapshot) Sources() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.Bonuses))
}
