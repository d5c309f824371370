package parse

// Cursor is a read-only view over the unconsumed portion of an input
// stream, together with the absolute offset of that portion within the
// stream. Cursors are values: Advance returns a new cursor and never
// mutates the receiver, so a combinator holding an older cursor can
// safely backtrack to it.
type Cursor struct {
	input []byte
	base  int
	final bool
}

// NewCursor builds a cursor over input. base is the absolute stream
// offset of input[0]; final reports that no more data will ever arrive
// after input.
func NewCursor(input []byte, base int, final bool) Cursor {
	return Cursor{input: input, base: base, final: final}
}

// Len returns the number of unconsumed bytes.
func (c Cursor) Len() int { return len(c.input) }

// Empty reports whether no unconsumed bytes remain.
func (c Cursor) Empty() bool { return len(c.input) == 0 }

// At returns the i-th unconsumed byte.
func (c Cursor) At(i int) byte { return c.input[i] }

// Bytes returns the unconsumed bytes. The slice aliases the caller's
// buffer and must not be modified.
func (c Cursor) Bytes() []byte { return c.input }

// Pos returns the absolute stream offset of the next unconsumed byte.
func (c Cursor) Pos() int { return c.base }

// Final reports whether the stream is known to be complete: the bytes
// in this cursor are the last that will ever arrive.
func (c Cursor) Final() bool { return c.final }

// Advance returns a cursor positioned n bytes further into the input.
func (c Cursor) Advance(n int) Cursor {
	return Cursor{input: c.input[n:], base: c.base + n, final: c.final}
}
