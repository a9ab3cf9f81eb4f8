package o5m

import "fmt"

// ParseError is a malformed-data error raised while decoding o5m: VarInt
// overflow, truncated frame, a malformed relation-member string, an
// invalid member type byte, or a dangling string reference. It carries the
// byte offset into the stream where the failure was detected.
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Ending at byte %d: %s", e.Offset, e.Message)
}

func newParseError(offset int64, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
