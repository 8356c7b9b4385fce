package badger

import (
	"encoding/binary"

	"github.com/poiesic/mediarank/core"
)

// Key prefixes for different data types
const (
	mediaItemPrefix   = "mitem:"
	sourceIndexPrefix = "mitsrc:"
	snapshotKey       = "srcqual:snapshot"
)

// makeMediaItemKey generates a key for a media item by ID.
// Format: prefix + big-endian ID, so keys iterate in ID order.
func makeMediaItemKey(id core.ID) []byte {
	buf := make([]byte, len(mediaItemPrefix)+8)
	offset := copy(buf, mediaItemPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// idFromKeySuffix extracts the big-endian ID that ends item and index keys.
func idFromKeySuffix(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makeSourceIndexKey generates a composite key for the source index.
// Format: prefix:source\x00id
func makeSourceIndexKey(source string, id core.ID) []byte {
	partial := makePartialSourceIndexKey(source)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSourceIndexKey generates the prefix shared by all index keys of a source.
// The NUL terminator keeps "ruyi" from matching "ruyi2".
func makePartialSourceIndexKey(source string) []byte {
	buf := make([]byte, 0, len(sourceIndexPrefix)+len(source)+1)
	buf = append(buf, sourceIndexPrefix...)
	buf = append(buf, source...)
	return append(buf, 0)
}
