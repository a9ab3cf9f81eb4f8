// Package xmlosm implements the textual ".osm" XML form of an OSM-style
// map: a root <osm> element with an optional <bounds> and any number of
// <node>, <way>, <relation> children.
//
// See: https://wiki.openstreetmap.org/wiki/OSM_XML
package xmlosm

const (
	osmVersion   = "0.6"
	osmGenerator = "github.com/hauke96/vadeenosm"
)

const isoLayout = "2006-01-02T15:04:05Z"
