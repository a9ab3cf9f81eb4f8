// Package element contains the OSM elements: nodes, ways, relations, tags
// and the meta/author bundle shared by all three.
//
// See: https://wiki.openstreetmap.org/wiki/Elements
package element

import "github.com/hauke96/vadeenosm/geo"

// Tag is an ordered (key, value) pair of non-empty UTF-8 strings. Tags are
// a sequence, not a set: duplicates on one entity are preserved as written.
type Tag struct {
	Key   string
	Value string
}

// NewTag is a small convenience constructor, mainly useful in tests and the
// example programs.
func NewTag(key string, value string) Tag {
	return Tag{Key: key, Value: value}
}

// AuthorInformation identifies who last touched an element and when.
type AuthorInformation struct {
	Created   int64 // Unix seconds.
	ChangeSet uint64
	UID       uint64
	User      string
}

// Meta is the metadata bundle shared by Node, Way and Relation. Version is
// nil when the element carries no version/history metadata at all; Author
// is non-nil only when Version is set and the producer supplied a nonzero
// timestamp (timestamp 0 means "no author").
type Meta struct {
	Tags    []Tag
	Version *uint32
	Author  *AuthorInformation
}

// Node is a coordinate with metadata.
//
// See: https://wiki.openstreetmap.org/wiki/Node
type Node struct {
	ID         int64
	Coordinate geo.Coordinate
	Meta       Meta
}

// Way is an ordered sequence of node ids with metadata. The sequence may be
// empty, may contain repeats, and may close by repeating its first id.
//
// See: https://wiki.openstreetmap.org/wiki/Way
type Way struct {
	ID   int64
	Refs []int64
	Meta Meta
}

// MemberType tags the three RelationMember variants.
type MemberType int

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

func (t MemberType) String() string {
	switch t {
	case MemberNode:
		return "node"
	case MemberWay:
		return "way"
	case MemberRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// RelationMember is a tagged variant over the three kinds of members a
// relation can reference. The wire encodings (a 1-byte prefix in o5m, a
// `type` attribute in XML) are purely a serialisation detail; Type carries
// the actual semantics.
type RelationMember struct {
	Type MemberType
	Ref  int64
	Role string
}

// Relation groups other elements together with roles.
//
// See: https://wiki.openstreetmap.org/wiki/Relation
type Relation struct {
	ID      int64
	Members []RelationMember
	Meta    Meta
}
