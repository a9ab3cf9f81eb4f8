package osmio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/element"
	"github.com/hauke96/vadeenosm/geo"
	"github.com/hauke96/vadeenosm/internal/assert"
)

func TestFormatFromExtension(t *testing.T) {
	f, err := formatFromExtension("city.o5m")
	assert.Nil(t, err)
	assert.Equal(t, FormatO5M, f)

	f, err = formatFromExtension("city.osm")
	assert.Nil(t, err)
	assert.Equal(t, FormatXML, f)

	_, err = formatFromExtension("city.txt")
	assert.NotNil(t, err)
}

func TestReadWrite_o5mRoundTrip(t *testing.T) {
	m := &vadeenosm.Osm{}
	m.AddNode(element.Node{ID: 1, Coordinate: geo.NewCoordinate(1, 1)})

	var buf bytes.Buffer
	assert.Nil(t, Write(&buf, m, FormatO5M))

	decoded, err := Read(&buf, FormatO5M)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(decoded.Nodes))
}

func TestOpenCreate_roundTripViaTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "city.o5m")

	m := &vadeenosm.Osm{}
	m.AddNode(element.Node{ID: 5, Coordinate: geo.NewCoordinate(2, 2)})

	assert.Nil(t, Create(path, m))

	info, err := os.Stat(path)
	assert.Nil(t, err)
	assert.True(t, info.Size() > 0)

	decoded, err := Open(path)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), decoded.Nodes[0].ID)
}

func TestOpen_invalidExtension(t *testing.T) {
	_, err := Open("city.txt")
	assert.NotNil(t, err)

	e, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, InvalidFileFormat, e.Kind)
}

func TestImport_reportsCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "city.osm")

	m := &vadeenosm.Osm{}
	m.AddNode(element.Node{ID: 1, Coordinate: geo.NewCoordinate(1, 1)})
	m.AddWay(element.Way{ID: 2, Refs: []int64{1}})
	assert.Nil(t, Create(path, m))

	decoded, summary, err := Import(path)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(decoded.Nodes))
	assert.Equal(t, 1, summary.Nodes)
	assert.Equal(t, 1, summary.Ways)
	assert.Equal(t, 0, summary.Relations)
}
