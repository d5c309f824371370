package parse

import "testing"

// runAll parses input as a single complete chunk.
func runAll[T any](p Parser[T], input string) (Result[T], int) {
	return Run(p, []byte(input), 0, true, nil)
}

// feed emulates a driver loop: chunks are appended one at a time, the
// parser runs after each, and the buffer is trimmed by exactly the
// consumed length every call. The stream is marked final with the last
// chunk. Returns the terminal result and the summed consumed lengths.
func feed[T any](t *testing.T, p Parser[T], chunks ...string) (Result[T], int) {
	t.Helper()
	var buf []byte
	var st State
	base, total := 0, 0
	for i, c := range chunks {
		buf = append(buf, c...)
		final := i == len(chunks)-1
		r, consumed := Run(p, buf, base, final, st)
		buf = buf[consumed:]
		base += consumed
		total += consumed
		if r.Status != Suspended {
			return r, total
		}
		if final {
			t.Fatalf("parser suspended on final input")
		}
		st = r.State
	}
	t.Fatalf("parser still suspended after all chunks")
	return Result[T]{}, 0
}

// counting wraps p and counts how many times it is invoked, to verify
// that completed sub-parsers are not re-run after a resume.
func counting[T any](p Parser[T], n *int) Parser[T] {
	return func(cur Cursor, st State) Result[T] {
		*n++
		return p(cur, st)
	}
}

func wantStatus[T any](t *testing.T, r Result[T], want Status) {
	t.Helper()
	if r.Status != want {
		t.Fatalf("status = %v, want %v (err: %v)", r.Status, want, r.Err)
	}
}
