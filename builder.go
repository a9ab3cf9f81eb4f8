package vadeenosm

import (
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
	"github.com/paulmach/orb"
)

// Builder makes it easy to build an Osm map from plain geometry instead of
// raw nodes/ways/relations: points, polylines and polygons (with optional
// holes). Nodes are created automatically and ids are assigned in
// increasing order, reusing an existing node id whenever a coordinate
// already resolves in the map's node index.
//
// Build an Osm directly (via AddNode et al.) instead when ids must be
// preserved, e.g. when reading data that already has them.
type Builder struct {
	osm *Osm
}

// NewBuilder returns a Builder wrapping a fresh, empty map.
func NewBuilder() *Builder {
	return &Builder{osm: New()}
}

// Build returns the map assembled so far.
func (b *Builder) Build() *Osm {
	return b.osm
}

// AddPoint adds a single node at p, tagged with tags.
func (b *Builder) AddPoint(p orb.Point, tags []element.Tag) int64 {
	return b.addNode(p, tags)
}

// AddPolyline adds a way through the given points, tagged with tags, and
// returns the way's id.
func (b *Builder) AddPolyline(line orb.LineString, tags []element.Tag) int64 {
	refs := b.addNodes(line)

	id := b.nextID()
	b.osm.AddWay(element.Way{
		ID:   id,
		Refs: refs,
		Meta: element.Meta{Tags: tags},
	})
	return id
}

// AddPolygon adds a polygon. A single ring degrades to a tagged way. A
// polygon with holes (ring[0] is the outer ring, the rest are inner rings)
// produces one tagged way per ring plus a relation tagged
// type=multipolygon with role "outer" on the first ring and "inner" on the
// rest.
//
// polygon must not be empty; violating this is a programmer error and
// panics rather than returning an error.
func (b *Builder) AddPolygon(polygon orb.Polygon, tags []element.Tag) {
	if len(polygon) == 0 {
		panic("vadeenosm: AddPolygon requires at least one ring")
	}

	if len(polygon) == 1 {
		b.AddPolyline(orb.LineString(polygon[0]), tags)
		return
	}

	b.addMultiPolygon(polygon, tags)
}

func (b *Builder) addMultiPolygon(polygon orb.Polygon, tags []element.Tag) {
	wayIDs := make([]int64, len(polygon))
	for i, ring := range polygon {
		wayIDs[i] = b.AddPolyline(orb.LineString(ring), nil)
	}

	relationTags := append(append([]element.Tag{}, tags...), element.NewTag("type", "multipolygon"))

	members := make([]element.RelationMember, 0, len(wayIDs))
	members = append(members, element.RelationMember{Type: element.MemberWay, Ref: wayIDs[0], Role: "outer"})
	for _, id := range wayIDs[1:] {
		members = append(members, element.RelationMember{Type: element.MemberWay, Ref: id, Role: "inner"})
	}

	id := b.nextID()
	b.osm.AddRelation(element.Relation{
		ID:      id,
		Members: members,
		Meta:    element.Meta{Tags: relationTags},
	})
}

func (b *Builder) addNodes(points []orb.Point) []int64 {
	refs := make([]int64, len(points))
	for i, p := range points {
		refs[i] = b.addNode(p, nil)
	}
	return refs
}

func (b *Builder) addNode(p orb.Point, tags []element.Tag) int64 {
	coordinate := geo.NewCoordinate(p.Y(), p.X())

	if id, ok := b.osm.FindNodeID(coordinate); ok {
		return id
	}

	id := b.osm.MaxID() + 1
	b.osm.AddNode(element.Node{
		ID:         id,
		Coordinate: coordinate,
		Meta:       element.Meta{Tags: tags},
	})
	return id
}

func (b *Builder) nextID() int64 {
	return b.osm.MaxID() + 1
}
