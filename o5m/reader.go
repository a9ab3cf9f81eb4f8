package o5m

import (
	"bufio"
	"bytes"
	"io"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
	"github.com/hauke96/vadeenosm/varint"
	"github.com/pkg/errors"
)

// decoder is a sequential, single-use state machine over an o5m byte
// stream. It owns exactly one string table and one delta bank, both reset
// whenever a reset dataset is seen.
type decoder struct {
	r      *bufio.Reader
	offset int64
	limit  int64 // remaining bytes in the current payload budget; -1 = unbounded.

	strings *stringTable
	deltas  *deltaBank
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{
		r:       bufio.NewReader(r),
		limit:   -1,
		strings: newStringTable(),
		deltas:  &deltaBank{},
	}
}

// Decode reads one complete o5m stream from r and returns the assembled
// map. It does not attempt partial recovery: the stream either decodes in
// full or the call fails. Every error it returns is a *ParseError carrying
// the byte offset at which decoding stopped.
func Decode(r io.Reader) (*vadeenosm.Osm, error) {
	d := newDecoder(r)
	osm, err := d.decode()
	if err != nil {
		if _, ok := err.(*ParseError); !ok {
			err = newParseError(d.offset, "%s", err)
		}
		return nil, err
	}
	return osm, nil
}

// ReadByte implements io.ByteReader so varint.Decode{Signed,Unsigned} can
// read directly off the decoder, respecting the current payload budget.
func (d *decoder) ReadByte() (byte, error) {
	if d.limit == 0 {
		return 0, errors.New("Unexpected end of file.")
	}

	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, errors.New("Unexpected end of file.")
		}
		return 0, errors.Wrap(err, "reading o5m stream")
	}

	d.offset++
	if d.limit > 0 {
		d.limit--
	}
	return b, nil
}

func (d *decoder) errorf(format string, args ...any) error {
	return newParseError(d.offset, format, args...)
}

func (d *decoder) reset() {
	d.strings.reset()
	d.deltas.reset()
}

// withBudget runs fn with the payload budget set to n, draining any bytes
// fn left unconsumed, then restores the outer budget minus the n bytes the
// inner section consumed from it.
func (d *decoder) withBudget(n int64, fn func() error) error {
	outer := d.limit
	d.limit = n

	if err := fn(); err != nil {
		return err
	}

	for d.limit > 0 {
		if _, err := d.ReadByte(); err != nil {
			return err
		}
	}

	if outer >= 0 {
		d.limit = outer - n
	} else {
		d.limit = -1
	}
	return nil
}

// withFrame reads an unsigned VarInt length prefix and runs fn with the
// budget set to that many bytes.
func (d *decoder) withFrame(fn func() error) error {
	n, err := varint.DecodeUnsigned(d)
	if err != nil {
		return err
	}
	return d.withBudget(int64(n), fn)
}

func (d *decoder) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := range buf {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// readNulTerminated reads bytes up to (and consuming) a NUL terminator.
func (d *decoder) readNulTerminated() ([]byte, error) {
	var buf []byte
	for {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return buf, nil
		}
		buf = append(buf, b)
	}
}

// readDictionaryBytes resolves one "string or reference" slot: a leading
// unsigned VarInt of 0 means a literal of parts NUL-terminated strings
// follows (joined by a single NUL and inserted at the front of the table);
// nonzero means a 1-based back-reference into the table, which is returned
// without being re-inserted.
func (d *decoder) readDictionaryBytes(parts int) ([]byte, error) {
	ref, err := varint.DecodeUnsigned(d)
	if err != nil {
		return nil, err
	}

	if ref == 0 {
		var literal []byte
		for i := 0; i < parts; i++ {
			s, err := d.readNulTerminated()
			if err != nil {
				return nil, err
			}
			if i > 0 {
				literal = append(literal, 0)
			}
			literal = append(literal, s...)
		}
		d.strings.insert(string(literal))
		return literal, nil
	}

	s, ok := d.strings.lookup(int(ref))
	if !ok {
		return nil, d.errorf("String reference '%d' not found in table with size '%d'.", ref, d.strings.size())
	}
	return []byte(s), nil
}

func (d *decoder) decode() (*vadeenosm.Osm, error) {
	osm := &vadeenosm.Osm{}

	for {
		typeCode, err := d.ReadByte()
		if err != nil {
			return nil, err
		}

		switch {
		case typeCode == datasetReset:
			d.reset()

		case typeCode == datasetHeader:
			if err := d.readHeader(); err != nil {
				return nil, err
			}

		case typeCode == datasetBoundingBox:
			var boundary geo.Boundary
			if err := d.withFrame(func() error {
				b, err := d.decodeBoundingBox()
				if err != nil {
					return err
				}
				boundary = b
				return nil
			}); err != nil {
				return nil, err
			}
			osm.Boundary = &boundary

		case typeCode == datasetNode:
			var node element.Node
			if err := d.withFrame(func() error {
				n, err := d.decodeNode()
				if err != nil {
					return err
				}
				node = n
				return nil
			}); err != nil {
				return nil, err
			}
			osm.AddNode(node)

		case typeCode == datasetWay:
			var way element.Way
			if err := d.withFrame(func() error {
				w, err := d.decodeWay()
				if err != nil {
					return err
				}
				way = w
				return nil
			}); err != nil {
				return nil, err
			}
			osm.AddWay(way)

		case typeCode == datasetRelation:
			var relation element.Relation
			if err := d.withFrame(func() error {
				r, err := d.decodeRelation()
				if err != nil {
					return err
				}
				relation = r
				return nil
			}); err != nil {
				return nil, err
			}
			osm.AddRelation(relation)

		case typeCode == datasetEOF:
			return osm, nil

		case typeCode >= datasetExtensionLo:
			if err := d.withFrame(func() error { return nil }); err != nil {
				return nil, err
			}

		default:
			return nil, d.errorf("Unknown dataset type '0x%02X'.", typeCode)
		}
	}
}

func (d *decoder) readHeader() error {
	magic, err := d.readN(len(header))
	if err != nil {
		return err
	}
	for i, b := range header {
		if magic[i] != b {
			return d.errorf("Invalid o5m header magic.")
		}
	}
	return nil
}

func (d *decoder) decodeBoundingBox() (geo.Boundary, error) {
	minLon, err := varint.DecodeSigned(d)
	if err != nil {
		return geo.Boundary{}, err
	}
	minLat, err := varint.DecodeSigned(d)
	if err != nil {
		return geo.Boundary{}, err
	}
	maxLon, err := varint.DecodeSigned(d)
	if err != nil {
		return geo.Boundary{}, err
	}
	maxLat, err := varint.DecodeSigned(d)
	if err != nil {
		return geo.Boundary{}, err
	}

	b := geo.NewBoundary(
		geo.Coordinate{Lat: int32(minLat), Lon: int32(minLon)},
		geo.Coordinate{Lat: int32(maxLat), Lon: int32(maxLon)},
	)
	b.Frozen = true
	return b, nil
}

func (d *decoder) decodeNode() (element.Node, error) {
	idDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Node{}, err
	}
	id := d.deltas.decode(registerID, idDelta)

	meta, err := d.decodeMeta()
	if err != nil {
		return element.Node{}, err
	}

	lonDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Node{}, err
	}
	latDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Node{}, err
	}
	lon := d.deltas.decode(registerLon, lonDelta)
	lat := d.deltas.decode(registerLat, latDelta)

	tags, err := d.decodeTags()
	if err != nil {
		return element.Node{}, err
	}
	meta.Tags = tags

	return element.Node{
		ID:         id,
		Coordinate: geo.Coordinate{Lat: int32(lat), Lon: int32(lon)},
		Meta:       meta,
	}, nil
}

func (d *decoder) decodeWay() (element.Way, error) {
	idDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Way{}, err
	}
	id := d.deltas.decode(registerID, idDelta)

	meta, err := d.decodeMeta()
	if err != nil {
		return element.Way{}, err
	}

	var refs []int64
	if err := d.withFrame(func() error {
		for d.limit > 0 {
			refDelta, err := varint.DecodeSigned(d)
			if err != nil {
				return err
			}
			refs = append(refs, d.deltas.decode(registerWayRef, refDelta))
		}
		return nil
	}); err != nil {
		return element.Way{}, err
	}

	tags, err := d.decodeTags()
	if err != nil {
		return element.Way{}, err
	}
	meta.Tags = tags

	return element.Way{ID: id, Refs: refs, Meta: meta}, nil
}

func (d *decoder) decodeRelation() (element.Relation, error) {
	idDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Relation{}, err
	}
	id := d.deltas.decode(registerID, idDelta)

	meta, err := d.decodeMeta()
	if err != nil {
		return element.Relation{}, err
	}

	var members []element.RelationMember
	if err := d.withFrame(func() error {
		for d.limit > 0 {
			m, err := d.decodeRelationMember()
			if err != nil {
				return err
			}
			members = append(members, m)
		}
		return nil
	}); err != nil {
		return element.Relation{}, err
	}

	tags, err := d.decodeTags()
	if err != nil {
		return element.Relation{}, err
	}
	meta.Tags = tags

	return element.Relation{ID: id, Members: members, Meta: meta}, nil
}

func (d *decoder) decodeRelationMember() (element.RelationMember, error) {
	refDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.RelationMember{}, err
	}

	raw, err := d.readDictionaryBytes(1)
	if err != nil {
		return element.RelationMember{}, err
	}

	if len(raw) < 2 {
		return element.RelationMember{}, d.errorf("Relation member string too short.")
	}

	var memberType element.MemberType
	var memberRegister register
	switch raw[0] {
	case memberTypeNode:
		memberType, memberRegister = element.MemberNode, registerRelNodeRef
	case memberTypeWay:
		memberType, memberRegister = element.MemberWay, registerRelWayRef
	case memberTypeRelation:
		memberType, memberRegister = element.MemberRelation, registerRelRelRef
	default:
		return element.RelationMember{}, d.errorf("Invalid relation member type '%c'.", raw[0])
	}

	ref := d.deltas.decode(memberRegister, refDelta)
	return element.RelationMember{Type: memberType, Ref: ref, Role: string(raw[1:])}, nil
}

// decodeMeta reads version, and (if present) timestamp/change-set/user. A
// timestamp of 0 after decoding means "no author" even though version is
// set.
func (d *decoder) decodeMeta() (element.Meta, error) {
	version, err := varint.DecodeUnsigned(d)
	if err != nil {
		return element.Meta{}, err
	}
	if version == 0 {
		return element.Meta{}, nil
	}
	v := uint32(version)
	meta := element.Meta{Version: &v}

	timeDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Meta{}, err
	}
	created := d.deltas.decode(registerTime, timeDelta)
	if created == 0 {
		return meta, nil
	}

	changeSetDelta, err := varint.DecodeSigned(d)
	if err != nil {
		return element.Meta{}, err
	}
	changeSet := d.deltas.decode(registerChangeSet, changeSetDelta)

	raw, err := d.readDictionaryBytes(2)
	if err != nil {
		return element.Meta{}, err
	}
	uid, user, err := splitUserRecord(raw)
	if err != nil {
		return element.Meta{}, d.errorf("%s", err)
	}

	meta.Author = &element.AuthorInformation{
		Created:   created,
		ChangeSet: uint64(changeSet),
		UID:       uid,
		User:      user,
	}
	return meta, nil
}

// decodeTags reads string-pair tags until the current payload budget is
// exhausted.
func (d *decoder) decodeTags() ([]element.Tag, error) {
	var tags []element.Tag
	for d.limit > 0 {
		pair, err := d.readDictionaryBytes(2)
		if err != nil {
			return nil, err
		}
		key, value, ok := bytes.Cut(pair, []byte{0})
		if !ok {
			return nil, d.errorf("Malformed string pair.")
		}
		tags = append(tags, element.Tag{Key: string(key), Value: string(value)})
	}
	return tags, nil
}

// splitUserRecord re-splits a user record's stored bytes into uid and
// username: an unsigned VarInt (uid) followed by a NUL, then the username.
// Needed because a user record read back from the string table arrives as
// one opaque byte slice, not as a live byte stream.
func splitUserRecord(raw []byte) (uint64, string, error) {
	nul := -1
	for i, b := range raw {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return 0, "", errors.Errorf("Malformed user record.")
	}

	uid, err := varint.DecodeUnsigned(bytes.NewReader(raw[:nul]))
	if err != nil {
		return 0, "", err
	}
	return uid, string(raw[nul+1:]), nil
}
