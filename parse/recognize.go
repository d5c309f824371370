package parse

// recognizeState withholds the wrapped parser's commits the same way
// attemptState does: skip is how far into the span the inner parser has
// progressed across calls.
type recognizeState struct {
	skip   int
	nested State
}

func (*recognizeState) state() {}

// Recognize runs p, discards its value, and instead returns the exact
// contiguous input span p consumed. This extracts, say, a numeric
// literal's text without building it up element by element: the span is
// a zero-copy subslice of the input buffer.
//
// To keep the span contiguous under suspension, Recognize commits
// nothing outward while p is in flight, so the caller's buffer retains
// the whole span until p completes. The inner parser's own resumption
// mechanics are untouched; only the final span is computed, from the
// cursor before p to the cursor after it.
func Recognize[T any](p Parser[T]) Parser[[]byte] {
	return func(cur Cursor, st State) Result[[]byte] {
		s := &recognizeState{}
		if st != nil {
			s = st.(*recognizeState)
		}
		r := p(cur.Advance(s.skip), s.nested)
		switch r.Status {
		case Success:
			n := r.Rest.Pos() - cur.Pos()
			return succeed(cur.Bytes()[:n:n], r.Rest)
		case Suspended:
			next := &recognizeState{skip: r.Rest.Pos() - cur.Pos(), nested: r.State}
			return suspended[[]byte](next, cur)
		default:
			return failureOf[[]byte](r)
		}
	}
}
