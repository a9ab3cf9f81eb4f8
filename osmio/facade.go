package osmio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/o5m"
	"github.com/hauke96/vadeenosm/xmlosm"
	"github.com/pkg/errors"
)

// Format is a dispatch target: the binary o5m codec or the textual osm XML
// codec.
type Format int

const (
	FormatO5M Format = iota
	FormatXML
)

func formatFromExtension(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".o5m":
		return FormatO5M, nil
	case ".osm":
		return FormatXML, nil
	default:
		return 0, newError(InvalidFileFormat, path, errors.Errorf("Unrecognised file extension %q.", filepath.Ext(path)))
	}
}

// Read decodes an OSM map from any byte-yielding source in format f.
func Read(r io.Reader, f Format) (*vadeenosm.Osm, error) {
	var osm *vadeenosm.Osm
	var err error

	switch f {
	case FormatO5M:
		osm, err = o5m.Decode(r)
	case FormatXML:
		osm, err = xmlosm.Decode(r)
	}
	if err != nil {
		return nil, newError(ParseError, "", err)
	}
	return osm, nil
}

// Write encodes m to any byte-accepting sink in format f.
func Write(w io.Writer, m *vadeenosm.Osm, f Format) error {
	var err error
	switch f {
	case FormatO5M:
		err = o5m.Encode(w, m)
	case FormatXML:
		err = xmlosm.Encode(w, m)
	}
	if err != nil {
		return newError(ParseError, "", err)
	}
	return nil
}

// Open reads the OSM map stored at path, picking the codec by its
// extension (.osm -> XML, .o5m -> binary); any other extension is an
// InvalidFileFormat error.
func Open(path string) (*vadeenosm.Osm, error) {
	f, err := formatFromExtension(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, newError(IO, path, err)
	}
	defer file.Close()

	osm, err := Read(file, f)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Path = path
			return nil, e
		}
		return nil, newError(ParseError, path, err)
	}
	return osm, nil
}

// Create writes m to path, picking the codec by its extension.
func Create(path string, m *vadeenosm.Osm) error {
	f, err := formatFromExtension(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return newError(IO, path, err)
	}
	defer file.Close()

	if err := Write(file, m, f); err != nil {
		if e, ok := err.(*Error); ok {
			e.Path = path
			return e
		}
		return newError(ParseError, path, err)
	}
	return nil
}
