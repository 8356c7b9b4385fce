package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/poiesic/mediarank/core"
)

// DecodeFeed reads catalog items from r. The stream may hold any sequence of:
//   - a JSON array of items
//   - an upstream API response object carrying its items under "list"
//   - a single item object (so JSON Lines files decode one item per line)
//
// Null array entries decode as nil items; Pipeline.Ingest counts them as rejected.
func DecodeFeed(r io.Reader) ([]*core.MediaItem, error) {
	dec := json.NewDecoder(r)
	items := []*core.MediaItem{}
	for n := 0; ; n++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: value %d: %w", core.ErrMalformedFeed, n, err)
		}
		decoded, err := decodeFeedValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %w", core.ErrMalformedFeed, n, err)
		}
		items = append(items, decoded...)
	}
	return items, nil
}

func decodeFeedValue(raw json.RawMessage) ([]*core.MediaItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}

	switch trimmed[0] {
	case '[':
		var items []*core.MediaItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var envelope struct {
			List json.RawMessage `json:"list"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		list := bytes.TrimSpace(envelope.List)
		switch {
		case len(list) == 0:
			// plain item
		case bytes.Equal(list, []byte("null")):
			return nil, nil
		case list[0] == '[':
			return decodeFeedValue(list)
		default:
			return nil, errors.New(`"list" must be an array`)
		}
		var item core.MediaItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, err
		}
		return []*core.MediaItem{&item}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value starting with %q", trimmed[0])
	}
}
