package parse

import "fmt"

// Error describes a parse failure. Offset is an absolute stream offset:
// cursors carry the stream position of the slice they were built over, so
// no translation is needed even when the failing call only saw a suffix
// of the stream.
type Error struct {
	Offset   int
	Expected string
	Found    string
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Cause)
	case e.Found != "":
		return fmt.Sprintf("offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
	default:
		return fmt.Sprintf("offset %d: expected %s", e.Offset, e.Expected)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

const endOfInput = "end of input"

// foundAt renders the byte at the cursor for an expected-vs-found message.
func foundAt(cur Cursor) string {
	if cur.Empty() {
		return endOfInput
	}
	return quoteByte(cur.At(0))
}

func quoteByte(b byte) string {
	return fmt.Sprintf("%q", rune(b))
}
