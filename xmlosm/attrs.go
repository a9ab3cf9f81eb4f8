package xmlosm

import "encoding/xml"

// attrs is a small lookup helper over an element's attribute list, avoiding
// a linear scan written out at every call site.
type attrs []xml.Attr

func (a attrs) get(name string) (string, bool) {
	for _, at := range a {
		if at.Name.Local == name {
			return at.Value, true
		}
	}
	return "", false
}

func (a attrs) require(line int, element, name string) (string, error) {
	v, ok := a.get(name)
	if !ok {
		return "", newParseError(line, "Missing required attribute '%s' on <%s>.", name, element)
	}
	return v, nil
}
