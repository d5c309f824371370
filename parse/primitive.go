package parse

import "fmt"

// Primitive parsers. Primitives have no sub-steps worth recording: when
// they suspend they commit nothing and re-run from scratch on resume, so
// their suspensions carry a nil state. They suspend only while the stream
// may still grow; once the cursor is final, insufficient input is a
// failure like any other, classified by how much was consumed before the
// attempt ran out.

// Byte matches exactly the byte b.
func Byte(b byte) Parser[byte] {
	expected := quoteByte(b)
	return func(cur Cursor, _ State) Result[byte] {
		if cur.Empty() {
			if cur.Final() {
				return failEmpty[byte](cur, expected, endOfInput)
			}
			return suspended[byte](nil, cur)
		}
		if got := cur.At(0); got != b {
			return failEmpty[byte](cur, expected, quoteByte(got))
		}
		return succeed(b, cur.Advance(1))
	}
}

// Satisfy matches a single byte for which pred returns true. desc names
// the expected class of byte in error messages, e.g. "digit".
func Satisfy(desc string, pred func(byte) bool) Parser[byte] {
	return func(cur Cursor, _ State) Result[byte] {
		if cur.Empty() {
			if cur.Final() {
				return failEmpty[byte](cur, desc, endOfInput)
			}
			return suspended[byte](nil, cur)
		}
		if got := cur.At(0); pred(got) {
			return succeed(got, cur.Advance(1))
		}
		return failEmpty[byte](cur, desc, quoteByte(cur.At(0)))
	}
}

// Literal matches the exact byte sequence s and returns the matched
// bytes. A mismatch after the first byte is a consumed failure: the
// matched prefix counts as committed, per the consumed-vs-empty
// discipline. Wrap in [Attempt] when alternatives with a shared prefix
// must backtrack over it.
func Literal(s string) Parser[[]byte] {
	expected := fmt.Sprintf("%q", s)
	return func(cur Cursor, _ State) Result[[]byte] {
		n := min(len(s), cur.Len())
		for i := 0; i < n; i++ {
			if cur.At(i) != s[i] {
				if i == 0 {
					return failEmpty[[]byte](cur, expected, quoteByte(cur.At(0)))
				}
				return failConsumed[[]byte](cur.Advance(i), expected, quoteByte(cur.At(i)))
			}
		}
		if cur.Len() < len(s) {
			if cur.Final() {
				if n == 0 {
					return failEmpty[[]byte](cur, expected, endOfInput)
				}
				return failConsumed[[]byte](cur.Advance(n), expected, endOfInput)
			}
			return suspended[[]byte](nil, cur)
		}
		return succeed(cur.Bytes()[:len(s):len(s)], cur.Advance(len(s)))
	}
}

// Take matches exactly n bytes and returns them.
func Take(n int) Parser[[]byte] {
	expected := fmt.Sprintf("%d bytes", n)
	return func(cur Cursor, _ State) Result[[]byte] {
		if cur.Len() >= n {
			return succeed(cur.Bytes()[:n:n], cur.Advance(n))
		}
		if cur.Final() {
			if cur.Empty() {
				return failEmpty[[]byte](cur, expected, endOfInput)
			}
			return failConsumed[[]byte](cur.Advance(cur.Len()), expected, endOfInput)
		}
		return suspended[[]byte](nil, cur)
	}
}

// TakeWhile matches the longest (possibly empty) run of bytes for which
// pred returns true and returns the run. It cannot fail, but it must
// suspend when the run reaches the end of a non-final cursor, since more
// matching bytes could still arrive.
func TakeWhile(desc string, pred func(byte) bool) Parser[[]byte] {
	return func(cur Cursor, _ State) Result[[]byte] {
		i := 0
		for i < cur.Len() && pred(cur.At(i)) {
			i++
		}
		if i == cur.Len() && !cur.Final() {
			return suspended[[]byte](nil, cur)
		}
		return succeed(cur.Bytes()[:i:i], cur.Advance(i))
	}
}

// TakeWhile1 is TakeWhile with a one-byte minimum: an empty run is an
// empty failure naming desc.
func TakeWhile1(desc string, pred func(byte) bool) Parser[[]byte] {
	inner := TakeWhile(desc, pred)
	return func(cur Cursor, st State) Result[[]byte] {
		r := inner(cur, st)
		if r.Status == Success && len(r.Value) == 0 {
			return failEmpty[[]byte](cur, desc, foundAt(cur))
		}
		return r
	}
}

// End matches the end of a complete stream. It suspends on an empty
// non-final cursor and fails without consuming if any byte remains.
func End() Parser[struct{}] {
	return func(cur Cursor, _ State) Result[struct{}] {
		if !cur.Empty() {
			return failEmpty[struct{}](cur, endOfInput, quoteByte(cur.At(0)))
		}
		if !cur.Final() {
			return suspended[struct{}](nil, cur)
		}
		return succeed(struct{}{}, cur)
	}
}
