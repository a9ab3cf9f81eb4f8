package xmlosm

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
)

// Decode reads one complete .osm XML document from r and returns the
// assembled map. Does not attempt partial recovery: the document either
// decodes in full or the call fails.
func Decode(r io.Reader) (*vadeenosm.Osm, error) {
	lr := newLineReader(r)
	dec := xml.NewDecoder(lr)
	osm := &vadeenosm.Osm{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return osm, nil
		}
		if err != nil {
			return nil, newParseError(lr.line, "%s", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "bounds":
			b, err := decodeBounds(attrs(start.Attr), lr.line)
			if err != nil {
				return nil, err
			}
			osm.Boundary = &b

		case "node":
			n, err := decodeNode(dec, start, lr)
			if err != nil {
				return nil, err
			}
			osm.AddNode(n)

		case "way":
			w, err := decodeWay(dec, start, lr)
			if err != nil {
				return nil, err
			}
			osm.AddWay(w)

		case "relation":
			rel, err := decodeRelation(dec, start, lr)
			if err != nil {
				return nil, err
			}
			osm.AddRelation(rel)
		}
	}
}

func decodeBounds(a attrs, line int) (geo.Boundary, error) {
	minLat, err := requireFloat(a, line, "bounds", "minlat")
	if err != nil {
		return geo.Boundary{}, err
	}
	minLon, err := requireFloat(a, line, "bounds", "minlon")
	if err != nil {
		return geo.Boundary{}, err
	}
	maxLat, err := requireFloat(a, line, "bounds", "maxlat")
	if err != nil {
		return geo.Boundary{}, err
	}
	maxLon, err := requireFloat(a, line, "bounds", "maxlon")
	if err != nil {
		return geo.Boundary{}, err
	}

	return geo.NewBoundary(geo.NewCoordinate(minLat, minLon), geo.NewCoordinate(maxLat, maxLon)), nil
}

func decodeNode(dec *xml.Decoder, start xml.StartElement, lr *lineReader) (element.Node, error) {
	a := attrs(start.Attr)

	idStr, err := a.require(lr.line, "node", "id")
	if err != nil {
		return element.Node{}, err
	}
	id, err := requireInt(lr.line, "id", idStr)
	if err != nil {
		return element.Node{}, err
	}

	lat, err := requireFloat(a, lr.line, "node", "lat")
	if err != nil {
		return element.Node{}, err
	}
	lon, err := requireFloat(a, lr.line, "node", "lon")
	if err != nil {
		return element.Node{}, err
	}

	meta, err := decodeMetaAttrs(a, lr.line)
	if err != nil {
		return element.Node{}, err
	}

	tags, err := decodeTagChildren(dec, "node", lr)
	if err != nil {
		return element.Node{}, err
	}
	meta.Tags = tags

	return element.Node{ID: id, Coordinate: geo.NewCoordinate(lat, lon), Meta: meta}, nil
}

func decodeWay(dec *xml.Decoder, start xml.StartElement, lr *lineReader) (element.Way, error) {
	a := attrs(start.Attr)

	idStr, err := a.require(lr.line, "way", "id")
	if err != nil {
		return element.Way{}, err
	}
	id, err := requireInt(lr.line, "id", idStr)
	if err != nil {
		return element.Way{}, err
	}

	meta, err := decodeMetaAttrs(a, lr.line)
	if err != nil {
		return element.Way{}, err
	}

	var refs []int64
	var tags []element.Tag
	for {
		tok, err := dec.Token()
		if err != nil {
			return element.Way{}, newParseError(lr.line, "%s", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "nd":
				refStr, err := attrs(t.Attr).require(lr.line, "nd", "ref")
				if err != nil {
					return element.Way{}, err
				}
				ref, err := strconv.ParseInt(refStr, 10, 64)
				if err != nil {
					return element.Way{}, newParseError(lr.line, "Invalid value '%s' for attribute 'ref'.", refStr)
				}
				refs = append(refs, ref)
			case "tag":
				tag, err := decodeTag(attrs(t.Attr), lr.line)
				if err != nil {
					return element.Way{}, err
				}
				tags = append(tags, tag)
			}
		case xml.EndElement:
			if t.Name.Local == "way" {
				meta.Tags = tags
				return element.Way{ID: id, Refs: refs, Meta: meta}, nil
			}
		}
	}
}

func decodeRelation(dec *xml.Decoder, start xml.StartElement, lr *lineReader) (element.Relation, error) {
	a := attrs(start.Attr)

	idStr, err := a.require(lr.line, "relation", "id")
	if err != nil {
		return element.Relation{}, err
	}
	id, err := requireInt(lr.line, "id", idStr)
	if err != nil {
		return element.Relation{}, err
	}

	meta, err := decodeMetaAttrs(a, lr.line)
	if err != nil {
		return element.Relation{}, err
	}

	var members []element.RelationMember
	var tags []element.Tag
	for {
		tok, err := dec.Token()
		if err != nil {
			return element.Relation{}, newParseError(lr.line, "%s", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "member":
				m, err := decodeMember(attrs(t.Attr), lr.line)
				if err != nil {
					return element.Relation{}, err
				}
				members = append(members, m)
			case "tag":
				tag, err := decodeTag(attrs(t.Attr), lr.line)
				if err != nil {
					return element.Relation{}, err
				}
				tags = append(tags, tag)
			}
		case xml.EndElement:
			if t.Name.Local == "relation" {
				meta.Tags = tags
				return element.Relation{ID: id, Members: members, Meta: meta}, nil
			}
		}
	}
}

func decodeMember(a attrs, line int) (element.RelationMember, error) {
	typeStr, err := a.require(line, "member", "type")
	if err != nil {
		return element.RelationMember{}, err
	}

	var memberType element.MemberType
	switch typeStr {
	case "node":
		memberType = element.MemberNode
	case "way":
		memberType = element.MemberWay
	case "rel", "relation":
		memberType = element.MemberRelation
	default:
		return element.RelationMember{}, newParseError(line, "Invalid value '%s' for attribute 'type'.", typeStr)
	}

	refStr, err := a.require(line, "member", "ref")
	if err != nil {
		return element.RelationMember{}, err
	}
	ref, err := strconv.ParseInt(refStr, 10, 64)
	if err != nil {
		return element.RelationMember{}, newParseError(line, "Invalid value '%s' for attribute 'ref'.", refStr)
	}

	role, _ := a.get("role")
	return element.RelationMember{Type: memberType, Ref: ref, Role: role}, nil
}

func decodeTag(a attrs, line int) (element.Tag, error) {
	k, err := a.require(line, "tag", "k")
	if err != nil {
		return element.Tag{}, err
	}
	v, err := a.require(line, "tag", "v")
	if err != nil {
		return element.Tag{}, err
	}
	return element.Tag{Key: k, Value: v}, nil
}

func decodeTagChildren(dec *xml.Decoder, parent string, lr *lineReader) ([]element.Tag, error) {
	var tags []element.Tag
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, newParseError(lr.line, "%s", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tag" {
				tag, err := decodeTag(attrs(t.Attr), lr.line)
				if err != nil {
					return nil, err
				}
				tags = append(tags, tag)
			}
		case xml.EndElement:
			if t.Name.Local == parent {
				return tags, nil
			}
		}
	}
}

// decodeMetaAttrs reads version and, only when version is set,
// timestamp/uid/user/changeset are all present and the timestamp is not
// zero, author information.
func decodeMetaAttrs(a attrs, line int) (element.Meta, error) {
	var meta element.Meta

	if versionStr, ok := a.get("version"); ok {
		v, err := strconv.ParseUint(versionStr, 10, 32)
		if err != nil {
			return meta, newParseError(line, "Invalid value '%s' for attribute 'version'.", versionStr)
		}
		vv := uint32(v)
		meta.Version = &vv
	}

	uidStr, hasUID := a.get("uid")
	userStr, hasUser := a.get("user")
	changesetStr, hasChangeset := a.get("changeset")
	timestampStr, hasTimestamp := a.get("timestamp")
	if !(hasUID && hasUser && hasChangeset && hasTimestamp) {
		return meta, nil
	}

	uid, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return meta, newParseError(line, "Invalid value '%s' for attribute 'uid'.", uidStr)
	}
	changeset, err := strconv.ParseUint(changesetStr, 10, 64)
	if err != nil {
		return meta, newParseError(line, "Invalid value '%s' for attribute 'changeset'.", changesetStr)
	}
	created, err := time.Parse(isoLayout, timestampStr)
	if err != nil {
		return meta, newParseError(line, "Invalid value '%s' for attribute 'timestamp'.", timestampStr)
	}
	if meta.Version == nil || created.Unix() == 0 {
		return meta, nil
	}

	meta.Author = &element.AuthorInformation{
		Created:   created.Unix(),
		ChangeSet: changeset,
		UID:       uid,
		User:      userStr,
	}
	return meta, nil
}

func requireFloat(a attrs, line int, elementName, attrName string) (float64, error) {
	s, err := a.require(line, elementName, attrName)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newParseError(line, "Invalid value '%s' for attribute '%s'.", s, attrName)
	}
	return v, nil
}

func requireInt(line int, attrName, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newParseError(line, "Invalid value '%s' for attribute '%s'.", raw, attrName)
	}
	return v, nil
}
