// Package stream drives a parse.Parser over a real byte stream. It owns
// the growable input buffer and the persistent resume token for one
// logical stream, and enforces the trimming discipline the engine
// requires: after every call exactly the consumed prefix is discarded,
// and the token is reset whenever a full value has been produced.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/nokori/parse"
)

// ErrNeedMoreInput is returned by Next when the parser suspended: the
// input so far is a viable prefix but no complete value is buffered yet.
// Append more bytes with Write (or let Decode read them) and call again.
var ErrNeedMoreInput = errors.New("stream: need more input")

// DecodeError is a parse failure positioned in the caller's coordinates.
// Offset is the absolute position in the stream; Index is the same
// position as an index into the buffer passed to the failing call.
type DecodeError struct {
	Offset int
	Index  int
	Err    *parse.Error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const defaultChunkSize = 4096

// Decoder decodes a stream of values from a byte stream. It may be
// driven two ways: pull-style via Decode, which reads from an io.Reader
// as input is needed, or push-style via Write/Close and Next, for
// callers that own their I/O (event loops, connection handlers).
//
// A Decoder is tied to one logical stream and must not be used from
// multiple goroutines. Once a decode error is returned the stream is
// unrecoverable and every subsequent call returns the same error.
//
// Byte-slice values alias the decoder's buffer, like bufio.Scanner's
// Bytes: they remain valid until the next Decode/Next call at the
// earliest. Copy them to keep them longer.
type Decoder[T any] struct {
	p     parse.Parser[T]
	r     io.Reader
	chunk int

	buf   []byte
	base  int
	state parse.State
	final bool
	err   error
}

// NewDecoder returns a pull-style decoder reading from r.
func NewDecoder[T any](r io.Reader, p parse.Parser[T]) *Decoder[T] {
	return NewDecoderSize(r, p, defaultChunkSize)
}

// NewDecoderSize is NewDecoder with an explicit read chunk size.
func NewDecoderSize[T any](r io.Reader, p parse.Parser[T], chunkSize int) *Decoder[T] {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Decoder[T]{p: p, r: r, chunk: chunkSize}
}

// NewSink returns a push-style decoder: feed it with Write, mark the end
// of the stream with Close, and drain values with Next.
func NewSink[T any](p parse.Parser[T]) *Decoder[T] {
	return &Decoder[T]{p: p}
}

// Write appends bytes to the decoder's buffer. It never fails except
// after Close.
func (d *Decoder[T]) Write(b []byte) (int, error) {
	if d.final {
		return 0, errors.New("stream: write after Close")
	}
	d.buf = append(d.buf, b...)
	return len(b), nil
}

// Close marks the stream complete: no more bytes will arrive, so a
// parse that still needs input fails instead of waiting forever.
func (d *Decoder[T]) Close() error {
	d.final = true
	return nil
}

// Buffered returns the number of bytes received but not yet consumed.
func (d *Decoder[T]) Buffered() int { return len(d.buf) }

// Offset returns the absolute stream offset of the next unconsumed byte,
// i.e. the total number of bytes consumed so far.
func (d *Decoder[T]) Offset() int { return d.base }

// Next runs one parse attempt over the buffered bytes. It returns a
// value, ErrNeedMoreInput if the parser suspended, io.EOF at the clean
// end of a closed stream, or a *DecodeError.
func (d *Decoder[T]) Next() (T, error) {
	var zero T
	if d.err != nil {
		return zero, d.err
	}
	if len(d.buf) == 0 {
		if d.final && d.state == nil {
			return zero, io.EOF
		}
		if !d.final {
			// Nothing to parse yet. Running the parser here would store
			// a speculative resume token and mask a later clean end of
			// stream as a truncated parse.
			return zero, ErrNeedMoreInput
		}
	}
	res, consumed := parse.Run(d.p, d.buf, d.base, d.final, d.state)
	callBase := d.base
	d.buf = d.buf[consumed:]
	d.base += consumed
	switch res.Status {
	case parse.Success:
		d.state = nil
		if len(d.buf) == 0 {
			// Nothing retained: let the backing array go, so the next
			// message starts a fresh buffer.
			d.buf = nil
		}
		return res.Value, nil
	case parse.Suspended:
		d.state = res.State
		return zero, ErrNeedMoreInput
	default:
		d.state = nil
		d.err = &DecodeError{
			Offset: res.Err.Offset,
			Index:  res.Err.Offset - callBase,
			Err:    res.Err,
		}
		return zero, d.err
	}
}

// Decode returns the next value from the stream, reading more input as
// the parser asks for it. It returns io.EOF when the stream ends cleanly
// between values.
func (d *Decoder[T]) Decode() (T, error) {
	var zero T
	if d.r == nil {
		return zero, errors.New("stream: Decode on a sink decoder; use Write and Next")
	}
	for {
		v, err := d.Next()
		if !errors.Is(err, ErrNeedMoreInput) {
			return v, err
		}
		if err := d.fill(); err != nil {
			return zero, err
		}
	}
}

// fill reads one chunk from the underlying reader into the buffer,
// growing it in place so that retained suffixes are never overwritten.
func (d *Decoder[T]) fill() error {
	if d.final {
		// The parser suspended on a complete stream; it should have
		// failed instead. Surface it rather than spinning.
		return io.ErrUnexpectedEOF
	}
	if cap(d.buf)-len(d.buf) < d.chunk {
		d.buf = append(d.buf, make([]byte, d.chunk)...)[:len(d.buf)]
	}
	n, err := d.r.Read(d.buf[len(d.buf) : len(d.buf)+d.chunk])
	d.buf = d.buf[:len(d.buf)+n]
	if err == io.EOF {
		d.final = true
		return nil
	}
	return err
}
