// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/mediarank/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalMediaItem serializes a MediaItem to bytes.
func MarshalMediaItem(item *core.MediaItem) []byte {
	buf := make([]byte, core.MediaItemMUS.Size(*item))
	core.MediaItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalMediaItem deserializes a MediaItem from bytes.
func UnmarshalMediaItem(data []byte) (*core.MediaItem, error) {
	item, n, err := core.MediaItemMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: media item: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: media item: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &item, nil
}

// MarshalSnapshot serializes a SourceQualitySnapshot to bytes.
func MarshalSnapshot(snapshot *core.SourceQualitySnapshot) []byte {
	buf := make([]byte, core.SourceQualitySnapshotMUS.Size(*snapshot))
	core.SourceQualitySnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalSnapshot deserializes a SourceQualitySnapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.SourceQualitySnapshot, error) {
	snapshot, _, err := core.SourceQualitySnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot: %w", ErrSerializationFailed, err)
	}
	return &snapshot, nil
}
