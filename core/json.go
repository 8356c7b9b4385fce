package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// fieldAliases maps every accepted feed key to the canonical key it populates.
// The vod_* names are what the upstream catalog APIs deliver.
var fieldAliases = map[string]string{
	"id":           "id",
	"vod_id":       "id",
	"title":        "title",
	"vod_name":     "title",
	"actors":       "actors",
	"vod_actor":    "actors",
	"director":     "director",
	"vod_director": "director",
	"content":      "content",
	"vod_content":  "content",
	"year":         "year",
	"vod_year":     "year",
	"type":         "type",
	"type_name":    "type",
	"source":       "source",
	"source_code":  "source",
}

// UnmarshalJSON decodes a catalog entry. Unrecognized keys are kept verbatim in Extra.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFeed, err)
	}

	var item MediaItem
	for key, value := range raw {
		canonical, known := fieldAliases[key]
		if !known {
			if item.Extra == nil {
				item.Extra = make(map[string]json.RawMessage)
			}
			item.Extra[key] = value
			continue
		}
		// canonical keys win over aliases when both are present
		if canonical != key {
			if _, dup := raw[canonical]; dup {
				continue
			}
		}
		var err error
		switch canonical {
		case "id":
			item.RemoteID, err = scalarString(value)
		case "title":
			item.Title, err = scalarString(value)
		case "actors":
			item.Actors, err = actorList(value)
		case "director":
			item.Director, err = scalarString(value)
		case "content":
			item.Content, err = scalarString(value)
		case "year":
			item.Year, err = scalarString(value)
		case "type":
			item.TypeName, err = scalarString(value)
		case "source":
			item.Source, err = scalarString(value)
		}
		if err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrMalformedFeed, key, err)
		}
	}

	*m = item
	return nil
}

// MarshalJSON encodes the item with canonical keys plus its passthrough fields.
func (m MediaItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.fields())
}

// MarshalJSON flattens the item fields and adds relevanceScore and matchDetails.
func (s ScoredItem) MarshalJSON() ([]byte, error) {
	fields := s.MediaItem.fields()
	fields["relevanceScore"] = s.RelevanceScore
	fields["matchDetails"] = s.MatchDetails
	return json.Marshal(fields)
}

// UnmarshalJSON reverses MarshalJSON, lifting the score fields out of the passthrough set.
func (s *ScoredItem) UnmarshalJSON(data []byte) error {
	var item MediaItem
	if err := item.UnmarshalJSON(data); err != nil {
		return err
	}
	scored := ScoredItem{MediaItem: item}
	if raw, ok := item.Extra["relevanceScore"]; ok {
		if err := json.Unmarshal(raw, &scored.RelevanceScore); err != nil {
			return fmt.Errorf("%w: relevanceScore: %w", ErrMalformedFeed, err)
		}
		delete(scored.Extra, "relevanceScore")
	}
	if raw, ok := item.Extra["matchDetails"]; ok {
		if err := json.Unmarshal(raw, &scored.MatchDetails); err != nil {
			return fmt.Errorf("%w: matchDetails: %w", ErrMalformedFeed, err)
		}
		delete(scored.Extra, "matchDetails")
	}
	if len(scored.Extra) == 0 {
		scored.Extra = nil
	}
	*s = scored
	return nil
}

func (m *MediaItem) fields() map[string]any {
	out := make(map[string]any, len(m.Extra)+8)
	for k, v := range m.Extra {
		out[k] = v
	}
	out["title"] = m.Title
	if m.RemoteID != "" {
		out["id"] = m.RemoteID
	}
	if len(m.Actors) > 0 {
		out["actors"] = m.Actors
	}
	if m.Director != "" {
		out["director"] = m.Director
	}
	if m.Content != "" {
		out["content"] = m.Content
	}
	if m.Year != "" {
		out["year"] = m.Year
	}
	if m.TypeName != "" {
		out["type"] = m.TypeName
	}
	if m.Source != "" {
		out["source"] = m.Source
	}
	return out
}

// scalarString reads a JSON string, number or bool as text. null reads as "".
func scalarString(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return "", nil
	}
	switch value[0] {
	case '"':
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", value[:1])
	default:
		return string(value), nil
	}
}

// actorList accepts either a JSON array of names or a single delimited string.
func actorList(value json.RawMessage) ([]string, error) {
	value = bytes.TrimSpace(value)
	if len(value) > 0 && value[0] == '[' {
		var names []string
		if err := json.Unmarshal(value, &names); err != nil {
			return nil, err
		}
		return cleanNames(names), nil
	}
	s, err := scalarString(value)
	if err != nil {
		return nil, err
	}
	return SplitActors(s), nil
}

// SplitActors splits a delimited actor string on ASCII and full-width commas and slashes.
func SplitActors(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', '，', '/', '、':
			return true
		}
		return false
	})
	return cleanNames(parts)
}

func cleanNames(names []string) []string {
	var out []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
