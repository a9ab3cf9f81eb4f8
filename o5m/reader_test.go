package o5m

import (
	"bytes"
	"testing"

	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/internal/assert"
)

// Scenario: a single length-prefixed node dataset exercising
// id-delta, coordinate, version, author and an empty tag list.
func TestDecodeNode_scenarioB(t *testing.T) {
	payload := []byte{
		0x21, 0xCE, 0xAD, 0x0F, 0x05, 0xE4, 0x8E, 0xA7, 0xCA, 0x09,
		0x94, 0xFE, 0xD2, 0x05, 0x00, 0x85, 0xE3, 0x02, 0x00, 0x55,
		0x53, 0x63, 0x68, 0x61, 0x00, 0x86, 0x87, 0xE6, 0x53, 0xCC,
		0xE2, 0x94, 0xFA, 0x03,
	}

	d := newDecoder(bytes.NewReader(payload))
	var node element.Node
	err := d.withFrame(func() error {
		n, err := d.decodeNode()
		if err != nil {
			return err
		}
		node = n
		return nil
	})

	assert.Nil(t, err)
	assert.Equal(t, int64(125799), node.ID)
	assert.Equal(t, int32(530749606), node.Coordinate.Lat)
	assert.Equal(t, int32(87867843), node.Coordinate.Lon)
	assert.NotNil(t, node.Meta.Version)
	assert.Equal(t, uint32(5), *node.Meta.Version)
	assert.NotNil(t, node.Meta.Author)
	assert.Equal(t, int64(1285874610), node.Meta.Author.Created)
	assert.Equal(t, uint64(5922698), node.Meta.Author.ChangeSet)
	assert.Equal(t, uint64(45445), node.Meta.Author.UID)
	assert.Equal(t, "UScha", node.Meta.Author.User)
	assert.Equal(t, 0, len(node.Meta.Tags))
}

// Scenario: a length-prefixed relation dataset whose second member reuses
// the first member's role string via the string reference table.
func TestDecodeRelation_scenarioC(t *testing.T) {
	payload := []byte{
		0x28, 0x90, 0x2E, 0x00, 0x11, 0xF4, 0x98, 0x83, 0x0B, 0x00,
		0x31, 0x69, 0x6E, 0x6E, 0x65, 0x72, 0x00, 0xCA, 0x93, 0xD3,
		0x0D, 0x01, 0x00, 0x74, 0x79, 0x70, 0x65, 0x00, 0x6D, 0x75,
		0x6C, 0x74, 0x69, 0x70, 0x6F, 0x6C, 0x79, 0x67, 0x6F, 0x6E,
		0x00,
	}

	d := newDecoder(bytes.NewReader(payload))
	var relation element.Relation
	err := d.withFrame(func() error {
		r, err := d.decodeRelation()
		if err != nil {
			return err
		}
		relation = r
		return nil
	})

	assert.Nil(t, err)
	assert.Equal(t, int64(2952), relation.ID)
	assert.Equal(t, 2, len(relation.Members))
	assert.Equal(t, element.MemberWay, relation.Members[0].Type)
	assert.Equal(t, int64(11560506), relation.Members[0].Ref)
	assert.Equal(t, "inner", relation.Members[0].Role)
	assert.Equal(t, element.MemberWay, relation.Members[1].Type)
	assert.Equal(t, int64(25873183), relation.Members[1].Ref)
	assert.Equal(t, "inner", relation.Members[1].Role)
	assert.Equal(t, 1, len(relation.Meta.Tags))
	assert.Equal(t, "type", relation.Meta.Tags[0].Key)
	assert.Equal(t, "multipolygon", relation.Meta.Tags[0].Value)
}

// Scenario: a full stream (reset, header, reset,
// relation, EOF) whose sole member's type byte is '5', an unknown variant.
func TestDecode_scenarioD_invalidMemberType(t *testing.T) {
	var stream []byte
	stream = append(stream, datasetReset)
	stream = append(stream, datasetHeader)
	stream = append(stream, header...)
	stream = append(stream, datasetReset)
	stream = append(stream, datasetRelation, 0x08,
		0x02,             // id-delta = 1
		0x00,             // version = 0
		0x05,             // members-section length = 5
		0x0A, 0x00, 0x35, 0x78, 0x00, // refDelta=5, literal "5x"
	)
	stream = append(stream, datasetEOF)

	_, err := Decode(bytes.NewReader(stream))
	assert.Error(t, "Ending at byte 18: Invalid relation member type '5'.", err)
}

// Scenario: a member-string reference token pointing
// past the (empty) string table.
func TestDecodeRelationMember_danglingReference(t *testing.T) {
	payload := []byte{0x0A, 0x03} // refDelta=5, reference token 3

	d := newDecoder(bytes.NewReader(payload))
	err := d.withBudget(int64(len(payload)), func() error {
		_, err := d.decodeRelationMember()
		return err
	})

	assert.Error(t, "Ending at byte 2: String reference '3' not found in table with size '0'.", err)
}
