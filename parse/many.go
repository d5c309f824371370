package parse

import "errors"

var errZeroWidthRepeat = errors.New("repetition over a parser that matches empty input")

// manyState is the resume token for repetition: how many repetitions
// completed, the values accumulated so far, prior commitment, and the
// in-flight repetition's nested state.
type manyState[T any] struct {
	acc      []T
	count    int
	consumed int
	nested   State
}

func (*manyState[T]) state() {}

// Many applies p zero or more times and collects the values. The first
// empty failure of p ends the run: no more matches, nothing consumed
// trying. A consumed failure mid-run fails the whole repetition; a
// partial match followed by a mismatch is not swallowed.
func Many[T any](p Parser[T]) Parser[[]T] { return repeatN(p, 0, true) }

// Many1 is Many with a one-repetition minimum: zero matches fail.
func Many1[T any](p Parser[T]) Parser[[]T] { return repeatN(p, 1, true) }

// SkipMany is Many without the accumulation: repetition values are
// discarded as they are produced, so skipping separators allocates
// nothing per repetition.
func SkipMany[T any](p Parser[T]) Parser[struct{}] {
	return Map(repeatN(p, 0, false), func([]T) struct{} { return struct{}{} })
}

// SkipMany1 is SkipMany with a one-repetition minimum.
func SkipMany1[T any](p Parser[T]) Parser[struct{}] {
	return Map(repeatN(p, 1, false), func([]T) struct{} { return struct{}{} })
}

func repeatN[T any](p Parser[T], minCount int, collect bool) Parser[[]T] {
	return func(cur Cursor, st State) Result[[]T] {
		s := &manyState[T]{}
		if st != nil {
			s = st.(*manyState[T])
		}
		start := cur
		nested := s.nested
		s.nested = nil
		for {
			r := p(cur, nested)
			nested = nil
			switch r.Status {
			case Success:
				if r.Rest.Pos() == cur.Pos() {
					// Zero-width success would repeat forever.
					return failFatal[[]T](cur, errZeroWidthRepeat)
				}
				if collect {
					s.acc = append(s.acc, r.Value)
				}
				s.count++
				cur = r.Rest
			case Suspended:
				s.consumed += r.Rest.Pos() - start.Pos()
				s.nested = r.State
				return suspended[[]T](s, r.Rest)
			case EmptyFailure:
				if s.count < minCount {
					return upgradeIfConsumed(failureOf[[]T](r), s.consumed+cur.Pos()-start.Pos())
				}
				return succeed(s.acc, cur)
			default:
				return upgradeIfConsumed(failureOf[[]T](r), s.consumed+cur.Pos()-start.Pos())
			}
		}
	}
}

// Count applies p exactly n times and collects the values.
func Count[T any](n int, p Parser[T]) Parser[[]T] {
	return func(cur Cursor, st State) Result[[]T] {
		s := &manyState[T]{}
		if st != nil {
			s = st.(*manyState[T])
		}
		start := cur
		nested := s.nested
		s.nested = nil
		for s.count < n {
			r := p(cur, nested)
			nested = nil
			switch r.Status {
			case Success:
				s.acc = append(s.acc, r.Value)
				s.count++
				cur = r.Rest
			case Suspended:
				s.consumed += r.Rest.Pos() - start.Pos()
				s.nested = r.State
				return suspended[[]T](s, r.Rest)
			default:
				return upgradeIfConsumed(failureOf[[]T](r), s.consumed+cur.Pos()-start.Pos())
			}
		}
		return succeed(s.acc, cur)
	}
}
