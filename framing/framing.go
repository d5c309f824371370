// Package framing implements Content-Length framed messages, the base
// protocol used by language servers: an optional run of CR/LF bytes, a
// "Content-Length: N" header, a blank line, then exactly N payload
// bytes. It exists both as the wire format the nokori commands speak and
// as the worked example of building a resumable grammar out of the parse
// package: the body length is only known after parsing the header, so
// the grammar is bound together with parse.Bind, and the digit span is
// extracted with parse.Recognize instead of accumulating digits.
package framing

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/nokori/parse"
)

// MaxPayload bounds the declared payload length. A header announcing
// more than this fails the stream instead of making the decoder buffer
// an arbitrarily large body.
const MaxPayload = 1 << 24

// Frame is one decoded message. Payload is a copy and stays valid after
// the decoder moves on.
type Frame struct {
	Length  int
	Payload []byte
}

var message = buildMessage()

// Message returns a parser for one framed message. The returned parser
// is stateless and may be shared between streams.
func Message() parse.Parser[Frame] { return message }

func buildMessage() parse.Parser[Frame] {
	newline := parse.Alt(parse.Byte('\r'), parse.Byte('\n'))
	digit := parse.Satisfy("digit", isDigit)
	length := parse.Convert(parse.Recognize(parse.SkipMany1(digit)), parseLength)
	header := parse.Then(
		parse.SkipMany(newline),
		parse.Then(parse.Literal("Content-Length: "), length),
	)
	return parse.Bind(header, func(n int) parse.Parser[Frame] {
		body := parse.Then(parse.Literal("\r\n\r\n"), parse.Take(n))
		return parse.Map(body, func(b []byte) Frame {
			return Frame{Length: n, Payload: append([]byte(nil), b...)}
		})
	})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseLength(digits []byte) (int, error) {
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("invalid content length %q: %w", digits, err)
	}
	if n > MaxPayload {
		return 0, fmt.Errorf("content length %d exceeds limit %d", n, MaxPayload)
	}
	return n, nil
}

// Encode frames payload for the wire.
func Encode(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+32)
	out = fmt.Appendf(out, "Content-Length: %d\r\n\r\n", len(payload))
	return append(out, payload...)
}
