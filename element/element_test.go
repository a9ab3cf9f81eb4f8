package element

import (
	"testing"

	"github.com/hauke96/vadeenosm/internal/assert"
)

func TestMemberType_String(t *testing.T) {
	assert.Equal(t, "node", MemberNode.String())
	assert.Equal(t, "way", MemberWay.String())
	assert.Equal(t, "relation", MemberRelation.String())
}

func TestTag_NewTag(t *testing.T) {
	tag := NewTag("highway", "secondary")
	assert.Equal(t, "highway", tag.Key)
	assert.Equal(t, "secondary", tag.Value)
}

func TestMeta_zeroValueHasNoVersionOrAuthor(t *testing.T) {
	var m Meta
	assert.Nil(t, m.Version)
	assert.Nil(t, m.Author)
	assert.Equal(t, 0, len(m.Tags))
}
