package parse

// Status classifies the outcome of one parser call.
type Status int

const (
	// Success: the parser recognized a value. Rest points past it.
	Success Status = iota

	// Suspended: input ran out while the parse was still viable. State
	// carries the resume token; Rest is the committed position, before
	// which the caller may discard its buffer.
	Suspended

	// EmptyFailure: the pattern did not match and no input was consumed
	// by the attempt. Alternative combinators may try a sibling branch.
	EmptyFailure

	// ConsumedFailure: the pattern did not match after some input had
	// been consumed. Propagates past alternatives, since backtracking
	// would require re-reading bytes the caller may have discarded.
	ConsumedFailure

	// FatalFailure: non-recoverable regardless of consumption, such as a
	// semantic conversion rejecting a recognized value.
	FatalFailure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Suspended:
		return "suspended"
	case EmptyFailure:
		return "empty failure"
	case ConsumedFailure:
		return "consumed failure"
	case FatalFailure:
		return "fatal failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of running a [Parser] over a cursor.
//
// Rest is always meaningful: on Success it points past the recognized
// value; on Suspended it is the committed position (input before it will
// not be re-read on resume and may be discarded); on failure it is the
// failure point, for consumed-length accounting.
type Result[T any] struct {
	Status Status
	Value  T
	Rest   Cursor
	State  State
	Err    *Error
}

// Failed reports whether the result is any of the failure statuses.
func (r Result[T]) Failed() bool { return r.Status >= EmptyFailure }

func succeed[T any](v T, rest Cursor) Result[T] {
	return Result[T]{Status: Success, Value: v, Rest: rest}
}

func suspended[T any](st State, committed Cursor) Result[T] {
	return Result[T]{Status: Suspended, Rest: committed, State: st}
}

func failEmpty[T any](at Cursor, expected, found string) Result[T] {
	return Result[T]{
		Status: EmptyFailure,
		Rest:   at,
		Err:    &Error{Offset: at.Pos(), Expected: expected, Found: found},
	}
}

func failConsumed[T any](at Cursor, expected, found string) Result[T] {
	return Result[T]{
		Status: ConsumedFailure,
		Rest:   at,
		Err:    &Error{Offset: at.Pos(), Expected: expected, Found: found},
	}
}

func failFatal[T any](at Cursor, cause error) Result[T] {
	return Result[T]{
		Status: FatalFailure,
		Rest:   at,
		Err:    &Error{Offset: at.Pos(), Cause: cause},
	}
}

// failureOf transfers a failure to a result of another value type.
func failureOf[B, A any](r Result[A]) Result[B] {
	return Result[B]{Status: r.Status, Rest: r.Rest, Err: r.Err}
}

// upgradeIfConsumed reclassifies an empty failure as consumed when the
// enclosing combinator knows the attempt already committed input, either
// earlier in this call or in a previous call of the same attempt.
func upgradeIfConsumed[T any](r Result[T], consumedBefore int) Result[T] {
	if r.Status == EmptyFailure && consumedBefore > 0 {
		r.Status = ConsumedFailure
	}
	return r
}
