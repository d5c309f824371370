package parse

import "strings"

// altState records which branch was in progress when an alternative
// suspended, so resume re-enters that branch instead of the first. The
// expectation strings of branches that already empty-failed ride along,
// so a failure after resume lists the same alternatives as a one-shot
// parse of the same input.
type altState struct {
	index    int
	expected []string
	nested   State
}

func (*altState) state() {}

// Alt tries each branch in order against the same cursor. The first
// branch to succeed, consumed-fail, or fatal-fail decides the outcome;
// an empty failure moves on to the next branch. A suspension propagates
// immediately: "might succeed with more input" cannot be disproven by
// trying a different branch, and on resume the suspended branch gets to
// finish first. If the resumed branch then empty-fails, it committed
// nothing, so the remaining branches are still tried against the
// original position.
func Alt[T any](branches ...Parser[T]) Parser[T] {
	if len(branches) == 0 {
		panic("parse: Alt needs at least one branch")
	}
	return func(cur Cursor, st State) Result[T] {
		i := 0
		var nested State
		var expected []string
		if st != nil {
			s := st.(*altState)
			i, nested, expected = s.index, s.nested, s.expected
		}
		var last Result[T]
		for ; i < len(branches); i++ {
			r := branches[i](cur, nested)
			nested = nil
			switch r.Status {
			case Suspended:
				return suspended[T](&altState{index: i, expected: expected, nested: r.State}, r.Rest)
			case EmptyFailure:
				if r.Err != nil && r.Err.Expected != "" {
					expected = append(expected, r.Err.Expected)
				}
				last = r
			default:
				return r
			}
		}
		if len(expected) > 1 {
			last.Err = &Error{
				Offset:   cur.Pos(),
				Expected: strings.Join(expected, " or "),
				Found:    foundAt(cur),
			}
		}
		return last
	}
}

// attemptState tracks how far the wrapped parser has committed, so the
// wrapper can keep reporting zero commitment outward while still
// resuming the inner parser at the right position.
type attemptState struct {
	skip   int
	nested State
}

func (*attemptState) state() {}

// Attempt makes p fully backtrackable: a consumed failure is demoted to
// an empty failure, so an enclosing [Alt] may try its next branch. To
// keep that sound under partial input, Attempt withholds the inner
// parser's commits: its own suspensions commit nothing, forcing the
// caller's buffer to retain everything from the attempt's start. Use it
// only around bounded lookahead.
func Attempt[T any](p Parser[T]) Parser[T] {
	return func(cur Cursor, st State) Result[T] {
		s := &attemptState{}
		if st != nil {
			s = st.(*attemptState)
		}
		r := p(cur.Advance(s.skip), s.nested)
		switch r.Status {
		case Suspended:
			next := &attemptState{skip: r.Rest.Pos() - cur.Pos(), nested: r.State}
			return suspended[T](next, cur)
		case ConsumedFailure:
			r.Status = EmptyFailure
			r.Rest = cur
			return r
		default:
			return r
		}
	}
}
