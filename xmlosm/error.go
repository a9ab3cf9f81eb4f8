package xmlosm

import "fmt"

// ParseError is an XML decode failure: a missing required attribute, an
// unparseable numeric/timestamp value, or malformed XML. It carries the
// line on which it was detected.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func newParseError(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
