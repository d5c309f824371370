package parse

// Parser is a function from a cursor and an optional resume token to a
// parse outcome. A nil state means a fresh attempt. A non-nil state must
// be one previously returned by this same parser's suspension, and the
// cursor must begin at that suspension's committed position.
//
// Parsers are pure with respect to the cursor: all progress is expressed
// in the returned Result, never by mutation, so the same parser value may
// be used concurrently by independent streams.
//
// Byte-slice values produced by parsers ([Take], [Literal], [TakeWhile],
// [Recognize]) alias the input buffer. Callers that keep them or append
// to the buffer in place must copy; the stream package's decoder
// documents the exact lifetime it guarantees.
type Parser[T any] func(cur Cursor, st State) Result[T]

// Run performs one driver call: it runs p over input with a fresh cursor
// and the given resume token, and reports the outcome together with the
// number of bytes irrevocably consumed by this call.
//
// base is the absolute stream offset of input[0]; final marks the stream
// complete, turning would-be suspensions inside p into failures. The
// caller must discard exactly consumed bytes from the front of its buffer
// before the next call, and on suspension must pass the returned state
// back unchanged, with any new bytes appended after the retained ones.
func Run[T any](p Parser[T], input []byte, base int, final bool, st State) (r Result[T], consumed int) {
	r = p(NewCursor(input, base, final), st)
	consumed = r.Rest.Pos() - base
	if consumed < 0 {
		consumed = 0
	}
	if consumed > len(input) {
		consumed = len(input)
	}
	if r.Status == EmptyFailure {
		// An empty failure never consumes, whatever its failure point.
		consumed = 0
	}
	return r, consumed
}
