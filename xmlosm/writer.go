package xmlosm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hauke96/vadeenosm"
	"github.com/hauke96/vadeenosm/element"
)

// Encode writes m to w as a .osm XML document: tab indentation, LF line
// endings, and a fixed attribute order, so that a read-then-write cycle of
// a file this library produced is byte identical.
func Encode(w io.Writer, m *vadeenosm.Osm) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<osm version="%s" generator="%s">`+"\n", osmVersion, osmGenerator)

	if m.Boundary != nil {
		fmt.Fprintf(&b, "\t<bounds minlat=\"%s\" minlon=\"%s\" maxlat=\"%s\" maxlon=\"%s\"/>\n",
			formatFloat(m.Boundary.Min.Lat64()), formatFloat(m.Boundary.Min.Lon64()),
			formatFloat(m.Boundary.Max.Lat64()), formatFloat(m.Boundary.Max.Lon64()))
	}

	for _, n := range m.Nodes {
		writeNode(&b, n)
	}
	for _, way := range m.Ways {
		writeWay(&b, way)
	}
	for _, r := range m.Relations {
		writeRelation(&b, r)
	}

	b.WriteString("</osm>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, n element.Node) {
	attrs := fmt.Sprintf(`id="%d" lat="%s" lon="%s"`, n.ID, formatFloat(n.Coordinate.Lat64()), formatFloat(n.Coordinate.Lon64()))
	attrs += metaAttrs(n.Meta)

	if len(n.Meta.Tags) == 0 {
		fmt.Fprintf(b, "\t<node %s/>\n", attrs)
		return
	}

	fmt.Fprintf(b, "\t<node %s>\n", attrs)
	for _, t := range n.Meta.Tags {
		writeTag(b, "\t\t", t)
	}
	b.WriteString("\t</node>\n")
}

func writeWay(b *strings.Builder, w element.Way) {
	attrs := fmt.Sprintf(`id="%d"`, w.ID)
	attrs += metaAttrs(w.Meta)

	if len(w.Refs) == 0 && len(w.Meta.Tags) == 0 {
		fmt.Fprintf(b, "\t<way %s/>\n", attrs)
		return
	}

	fmt.Fprintf(b, "\t<way %s>\n", attrs)
	for _, ref := range w.Refs {
		fmt.Fprintf(b, "\t\t<nd ref=\"%d\"/>\n", ref)
	}
	for _, t := range w.Meta.Tags {
		writeTag(b, "\t\t", t)
	}
	b.WriteString("\t</way>\n")
}

func writeRelation(b *strings.Builder, r element.Relation) {
	attrs := fmt.Sprintf(`id="%d"`, r.ID)
	attrs += metaAttrs(r.Meta)

	if len(r.Members) == 0 && len(r.Meta.Tags) == 0 {
		fmt.Fprintf(b, "\t<relation %s/>\n", attrs)
		return
	}

	fmt.Fprintf(b, "\t<relation %s>\n", attrs)
	for _, m := range r.Members {
		if m.Role != "" {
			fmt.Fprintf(b, "\t\t<member type=\"%s\" ref=\"%d\" role=\"%s\"/>\n", m.Type, m.Ref, escapeAttr(m.Role))
		} else {
			fmt.Fprintf(b, "\t\t<member type=\"%s\" ref=\"%d\"/>\n", m.Type, m.Ref)
		}
	}
	for _, t := range r.Meta.Tags {
		writeTag(b, "\t\t", t)
	}
	b.WriteString("\t</relation>\n")
}

func writeTag(b *strings.Builder, indent string, t element.Tag) {
	fmt.Fprintf(b, "%s<tag k=\"%s\" v=\"%s\"/>\n", indent, escapeAttr(t.Key), escapeAttr(t.Value))
}

// metaAttrs renders version/uid/user/changeset/timestamp in that order,
// only when the corresponding value is present.
func metaAttrs(meta element.Meta) string {
	var b strings.Builder
	if meta.Version != nil {
		fmt.Fprintf(&b, ` version="%d"`, *meta.Version)
	}
	if meta.Author != nil {
		fmt.Fprintf(&b, ` uid="%d" user="%s" changeset="%d" timestamp="%s"`,
			meta.Author.UID, escapeAttr(meta.Author.User), meta.Author.ChangeSet,
			time.Unix(meta.Author.Created, 0).UTC().Format(isoLayout))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
