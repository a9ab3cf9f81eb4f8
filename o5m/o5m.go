// Package o5m implements the o5m binary format: a stateful, delta- and
// dictionary-compressed encoding of an OSM-style map.
//
// See: https://wiki.openstreetmap.org/wiki/O5m
package o5m

// Dataset type codes. See: https://wiki.openstreetmap.org/wiki/O5m#File
const (
	datasetHeader      byte = 0xE0
	datasetBoundingBox byte = 0xDB
	datasetNode        byte = 0x10
	datasetWay         byte = 0x11
	datasetRelation    byte = 0x12
	datasetReset       byte = 0xFF
	datasetEOF         byte = 0xFE
	datasetExtensionLo byte = 0xF0 // unknown extension datasets are >= this
)

// header is the fixed 5-byte o5m magic that follows the 0xE0 dataset code.
var header = []byte{0x04, 'o', '5', 'm', '2'}

// Member type bytes used on the wire for the three RelationMember kinds.
// See: https://wiki.openstreetmap.org/wiki/O5m#cite_note-1
const (
	memberTypeNode     = '0'
	memberTypeWay      = '1'
	memberTypeRelation = '2'
)

// String reference table limits.
const (
	StringTableCapacity = 15000
	MaxLiteralLen       = 250
)
