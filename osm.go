// Package vadeenosm is an in-memory model of an OSM-style map plus two
// codecs (binary "o5m" and textual "osm" XML) that round-trip it. See
// SPEC_FULL.md for the full specification this module implements.
package vadeenosm

import (
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
)

// Osm is an in-memory OSM-style map: an optional boundary plus nodes, ways
// and relations, with two fields kept consistent with those sequences on
// every insert.
//
// See: https://wiki.openstreetmap.org/wiki/Elements
type Osm struct {
	Boundary *geo.Boundary

	Nodes     []element.Node
	Ways      []element.Way
	Relations []element.Relation

	maxID     int64
	nodeIndex map[geo.Coordinate]int64
}

// New returns an empty map whose boundary is inverted and unfrozen, ready
// to grow by inclusion as nodes are added.
func New() *Osm {
	b := geo.InvertedBoundary()
	return &Osm{
		Boundary:  &b,
		nodeIndex: make(map[geo.Coordinate]int64),
	}
}

// AddNode appends a node, expands the boundary (if present and unfrozen)
// to include its coordinate, updates MaxID, and records the coordinate in
// the node-by-coordinate index (last writer wins on collision).
func (o *Osm) AddNode(node element.Node) {
	if o.Boundary != nil {
		o.Boundary.Expand(node.Coordinate)
	}

	o.bumpMaxID(node.ID)
	o.index()[node.Coordinate] = node.ID
	o.Nodes = append(o.Nodes, node)
}

// AddWay appends a way and updates MaxID.
func (o *Osm) AddWay(way element.Way) {
	o.bumpMaxID(way.ID)
	o.Ways = append(o.Ways, way)
}

// AddRelation appends a relation and updates MaxID.
func (o *Osm) AddRelation(relation element.Relation) {
	o.bumpMaxID(relation.ID)
	o.Relations = append(o.Relations, relation)
}

// MaxID returns the largest id inserted across nodes, ways and relations so
// far, 0 if nothing has been inserted.
func (o *Osm) MaxID() int64 {
	return o.maxID
}

// FindNodeID returns the id of a previously inserted node at coordinate c,
// and whether one was found.
func (o *Osm) FindNodeID(c geo.Coordinate) (int64, bool) {
	id, ok := o.index()[c]
	return id, ok
}

func (o *Osm) bumpMaxID(id int64) {
	if id > o.maxID {
		o.maxID = id
	}
}

func (o *Osm) index() map[geo.Coordinate]int64 {
	if o.nodeIndex == nil {
		o.nodeIndex = make(map[geo.Coordinate]int64)
	}
	return o.nodeIndex
}
