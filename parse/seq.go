package parse

// seq2State is the resume token for [Seq2]: which sub-parser is in
// progress, the first sub-parser's value once it has one, the bytes this
// attempt committed in earlier calls (for failure classification), and
// the in-flight sub-parser's own nested state.
type seq2State[A any] struct {
	second   bool
	first    A
	consumed int
	nested   State
}

func (*seq2State[A]) state() {}

// Seq2 runs pa then pb and joins their values. If pb suspends, the
// suspension commits everything pa consumed: pa's value is saved in the
// resume token, pa is never re-run, and the caller may discard pa's bytes
// from its buffer.
func Seq2[A, B, R any](pa Parser[A], pb Parser[B], join func(A, B) R) Parser[R] {
	return func(cur Cursor, st State) Result[R] {
		s := &seq2State[A]{}
		if st != nil {
			s = st.(*seq2State[A])
		}
		start := cur
		if !s.second {
			ra := pa(cur, s.nested)
			switch ra.Status {
			case Suspended:
				next := &seq2State[A]{consumed: s.consumed + ra.Rest.Pos() - cur.Pos(), nested: ra.State}
				return suspended[R](next, ra.Rest)
			case Success:
				s = &seq2State[A]{second: true, first: ra.Value, consumed: s.consumed}
				cur = ra.Rest
			default:
				return upgradeIfConsumed(failureOf[R](ra), s.consumed)
			}
		}
		rb := pb(cur, s.nested)
		switch rb.Status {
		case Suspended:
			next := &seq2State[A]{second: true, first: s.first, consumed: s.consumed + rb.Rest.Pos() - start.Pos(), nested: rb.State}
			return suspended[R](next, rb.Rest)
		case Success:
			return succeed(join(s.first, rb.Value), rb.Rest)
		default:
			return upgradeIfConsumed(failureOf[R](rb), s.consumed+cur.Pos()-start.Pos())
		}
	}
}

type pair[A, B any] struct {
	a A
	b B
}

// Seq3 runs three parsers in order and joins their values.
func Seq3[A, B, C, R any](pa Parser[A], pb Parser[B], pc Parser[C], join func(A, B, C) R) Parser[R] {
	left := Seq2(pa, pb, func(a A, b B) pair[A, B] { return pair[A, B]{a, b} })
	return Seq2(left, pc, func(ab pair[A, B], c C) R { return join(ab.a, ab.b, c) })
}

// Then runs pa then pb, keeping only pb's value.
func Then[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Seq2(pa, pb, func(_ A, b B) B { return b })
}

// ThenSkip runs pa then pb, keeping only pa's value.
func ThenSkip[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Seq2(pa, pb, func(a A, _ B) A { return a })
}

// Map transforms a parser's value with f. The inner parser's resume
// token passes through untouched.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(cur Cursor, st State) Result[B] {
		r := p(cur, st)
		switch r.Status {
		case Success:
			return succeed(f(r.Value), r.Rest)
		case Suspended:
			return suspended[B](r.State, r.Rest)
		default:
			return failureOf[B](r)
		}
	}
}

// Convert transforms a parser's value with a fallible conversion, such
// as turning a digit span into an int. A conversion error is a fatal
// failure: more input cannot fix it and alternatives must not swallow it.
func Convert[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return func(cur Cursor, st State) Result[B] {
		r := p(cur, st)
		switch r.Status {
		case Success:
			v, err := f(r.Value)
			if err != nil {
				return failFatal[B](cur, err)
			}
			return succeed(v, r.Rest)
		case Suspended:
			return suspended[B](r.State, r.Rest)
		default:
			return failureOf[B](r)
		}
	}
}

type bindState[A any] struct {
	bound    bool
	left     A
	consumed int
	nested   State
}

func (*bindState[A]) state() {}

// Bind runs p, feeds its value to f, and runs the parser f returns.
// This is what length-prefixed grammars need: the second parser's shape
// depends on the first parser's value. f must be deterministic, since on
// resume the second parser is rebuilt by calling f again with the saved
// value.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(cur Cursor, st State) Result[B] {
		s := &bindState[A]{}
		if st != nil {
			s = st.(*bindState[A])
		}
		start := cur
		if !s.bound {
			ra := p(cur, s.nested)
			switch ra.Status {
			case Suspended:
				next := &bindState[A]{consumed: s.consumed + ra.Rest.Pos() - cur.Pos(), nested: ra.State}
				return suspended[B](next, ra.Rest)
			case Success:
				s = &bindState[A]{bound: true, left: ra.Value, consumed: s.consumed}
				cur = ra.Rest
			default:
				return upgradeIfConsumed(failureOf[B](ra), s.consumed)
			}
		}
		rb := f(s.left)(cur, s.nested)
		switch rb.Status {
		case Suspended:
			next := &bindState[A]{bound: true, left: s.left, consumed: s.consumed + rb.Rest.Pos() - start.Pos(), nested: rb.State}
			return suspended[B](next, rb.Rest)
		case Success:
			return rb
		default:
			return upgradeIfConsumed(rb, s.consumed+cur.Pos()-start.Pos())
		}
	}
}
