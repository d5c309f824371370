package parse

// State is an opaque resume token: a snapshot of where a composite
// parser was paused when it suspended. The nil State is the distinguished
// "nothing in progress" value, so a driver can default-initialize its
// per-stream state without constructing anything.
//
// A State is only valid when passed back to the parser that produced it,
// against a cursor that begins exactly at the committed position reported
// by the suspension (Result.Rest). It must not be shared between streams,
// cloned and diverged, or persisted across process restarts.
//
// Concrete state shapes are unexported structs, one per composite
// combinator, composed recursively: "in sub-parser i with nested state S".
// The interface erases those shapes behind a uniform handle; resumption
// dispatches back into the correct concrete logic via type assertion
// inside the combinator that built the state. Primitive parsers have no
// sub-steps to record and suspend with a nil state, meaning "re-run from
// the committed position".
type State interface {
	state()
}
