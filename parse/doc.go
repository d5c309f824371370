// Package parse implements parser combinators that can run over partial
// input: input that arrives incrementally, for example from a socket,
// without the parsing goroutine ever blocking on I/O.
//
// A [Parser] is a function from a [Cursor] (a view over the unconsumed
// bytes) to a [Result]. Besides success and failure, a result can be
// [Suspended]: the input ran out at a point where the parse could still
// succeed given more bytes. A suspended result carries an opaque [State]
// that records exactly which sub-parser was in progress and what it had
// already produced, so a later call can pick up mid-sequence instead of
// restarting from the top.
//
// Failures are classified by consumption. An [EmptyFailure] committed no
// input and may be backtracked over by [Alt]; a [ConsumedFailure] committed
// input and propagates, since backtracking over it would require re-reading
// bytes the caller may already have discarded. [Attempt] converts the
// latter into the former for branches that need full backtracking. This
// local rule replaces whole-input rewind, so callers can trim their buffers
// eagerly after every call.
//
// The package never performs I/O and never retains the input slice beyond
// what the caller-held [State] requires. The usual way to drive a parser
// over a real byte stream is the stream package, which owns the buffer
// trimming and state handling described in [Run].
package parse
