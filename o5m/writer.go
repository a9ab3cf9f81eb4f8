package o5m

import (
	"bufio"
	"io"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
	"github.com/hauke96/vadeenosm/varint"
)

// encoder serialises an in-memory map into a well-formed o5m stream. Like
// decoder, it owns exactly one string table and one delta bank, and emits
// explicit resets so the two stay in lockstep with a reader's.
type encoder struct {
	w       *bufio.Writer
	strings *stringTable
	deltas  *deltaBank
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{
		w:       bufio.NewWriter(w),
		strings: newStringTable(),
		deltas:  &deltaBank{},
	}
}

// Encode writes m to w in a fixed dataset order: reset, header, optional
// bounding box, reset, nodes, reset, ways, reset, relations, EOF.
func Encode(w io.Writer, m *vadeenosm.Osm) error {
	e := newEncoder(w)

	if err := e.writeReset(); err != nil {
		return err
	}
	if err := e.writeHeader(); err != nil {
		return err
	}

	if m.Boundary != nil {
		if err := e.writeBoundingBox(*m.Boundary); err != nil {
			return err
		}
	}

	if err := e.writeReset(); err != nil {
		return err
	}
	for _, n := range m.Nodes {
		if err := e.writeNode(n); err != nil {
			return err
		}
	}

	if err := e.writeReset(); err != nil {
		return err
	}
	for _, way := range m.Ways {
		if err := e.writeWay(way); err != nil {
			return err
		}
	}

	if err := e.writeReset(); err != nil {
		return err
	}
	for _, r := range m.Relations {
		if err := e.writeRelation(r); err != nil {
			return err
		}
	}

	if err := e.writeByte(datasetEOF); err != nil {
		return err
	}
	return e.w.Flush()
}

func (e *encoder) writeReset() error {
	e.strings.reset()
	e.deltas.reset()
	return e.writeByte(datasetReset)
}

func (e *encoder) writeByte(b byte) error {
	return e.w.WriteByte(b)
}

func (e *encoder) writeHeader() error {
	if err := e.writeByte(datasetHeader); err != nil {
		return err
	}
	_, err := e.w.Write(header)
	return err
}

// writeFrame writes typeCode, the VarInt-encoded length of payload, then
// payload itself.
func (e *encoder) writeFrame(typeCode byte, payload []byte) error {
	if err := e.writeByte(typeCode); err != nil {
		return err
	}
	length := varint.EncodeUnsigned(nil, uint64(len(payload)))
	if _, err := e.w.Write(length); err != nil {
		return err
	}
	_, err := e.w.Write(payload)
	return err
}

func (e *encoder) writeBoundingBox(b geo.Boundary) error {
	var buf []byte
	buf = varint.EncodeSigned(buf, int64(b.Min.Lon))
	buf = varint.EncodeSigned(buf, int64(b.Min.Lat))
	buf = varint.EncodeSigned(buf, int64(b.Max.Lon))
	buf = varint.EncodeSigned(buf, int64(b.Max.Lat))
	return e.writeFrame(datasetBoundingBox, buf)
}

func (e *encoder) writeNode(n element.Node) error {
	var buf []byte
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerID, n.ID))
	buf = e.appendMeta(buf, n.Meta)
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerLon, int64(n.Coordinate.Lon)))
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerLat, int64(n.Coordinate.Lat)))
	buf = e.appendTags(buf, n.Meta.Tags)
	return e.writeFrame(datasetNode, buf)
}

func (e *encoder) writeWay(w element.Way) error {
	var buf []byte
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerID, w.ID))
	buf = e.appendMeta(buf, w.Meta)

	var refBuf []byte
	for _, ref := range w.Refs {
		refBuf = varint.EncodeSigned(refBuf, e.deltas.encode(registerWayRef, ref))
	}
	buf = varint.EncodeUnsigned(buf, uint64(len(refBuf)))
	buf = append(buf, refBuf...)

	buf = e.appendTags(buf, w.Meta.Tags)
	return e.writeFrame(datasetWay, buf)
}

func (e *encoder) writeRelation(r element.Relation) error {
	var buf []byte
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerID, r.ID))
	buf = e.appendMeta(buf, r.Meta)

	var memberBuf []byte
	for _, m := range r.Members {
		memberBuf = e.appendRelationMember(memberBuf, m)
	}
	buf = varint.EncodeUnsigned(buf, uint64(len(memberBuf)))
	buf = append(buf, memberBuf...)

	buf = e.appendTags(buf, r.Meta.Tags)
	return e.writeFrame(datasetRelation, buf)
}

func (e *encoder) appendRelationMember(buf []byte, m element.RelationMember) []byte {
	var typeByte byte
	var reg register
	switch m.Type {
	case element.MemberNode:
		typeByte, reg = memberTypeNode, registerRelNodeRef
	case element.MemberWay:
		typeByte, reg = memberTypeWay, registerRelWayRef
	case element.MemberRelation:
		typeByte, reg = memberTypeRelation, registerRelRelRef
	}

	buf = varint.EncodeSigned(buf, e.deltas.encode(reg, m.Ref))

	content := append([]byte{typeByte}, []byte(m.Role)...)
	return e.appendDictionaryBytes(buf, content)
}

// appendMeta writes version and, if present, the author fields. Tags are
// appended separately by the caller once the whole remainder of the buffer
// is known, matching the decoder's field order.
func (e *encoder) appendMeta(buf []byte, meta element.Meta) []byte {
	if meta.Version == nil {
		return varint.EncodeUnsigned(buf, 0)
	}
	buf = varint.EncodeUnsigned(buf, uint64(*meta.Version))

	if meta.Author == nil {
		return varint.EncodeSigned(buf, e.deltas.encode(registerTime, 0))
	}

	buf = varint.EncodeSigned(buf, e.deltas.encode(registerTime, meta.Author.Created))
	buf = varint.EncodeSigned(buf, e.deltas.encode(registerChangeSet, int64(meta.Author.ChangeSet)))

	userRecord := varint.EncodeUnsigned(nil, meta.Author.UID)
	userRecord = append(userRecord, 0)
	userRecord = append(userRecord, []byte(meta.Author.User)...)
	return e.appendDictionaryBytes(buf, userRecord)
}

func (e *encoder) appendTags(buf []byte, tags []element.Tag) []byte {
	for _, t := range tags {
		pair := append(append([]byte(t.Key), 0), t.Value...)
		buf = e.appendDictionaryBytes(buf, pair)
	}
	return buf
}

// appendDictionaryBytes looks content up in the string table: a hit emits
// a nonzero reference VarInt; a miss emits the literal marker 0x00,
// content, and a terminating NUL, and inserts content at the front of the
// table. content never itself carries the terminating NUL: for a plain
// string that NUL is the wire terminator, for a string pair or a user
// record it doubles as the second string's terminator.
func (e *encoder) appendDictionaryBytes(buf []byte, content []byte) []byte {
	key := string(content)

	if len(key) <= MaxLiteralLen {
		if ref := e.strings.referenceOf(key); ref > 0 {
			return varint.EncodeUnsigned(buf, uint64(ref))
		}
	}

	buf = varint.EncodeUnsigned(buf, 0)
	buf = append(buf, content...)
	buf = append(buf, 0)
	e.strings.insert(key)
	return buf
}
