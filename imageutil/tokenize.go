package imageutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// maxTokenLen bounds a single numeric token. Comments are not tokens and
// may be any length.
const maxTokenLen = 64

var errTokenTooLong = errors.New("token too long")

// tokenizer splits netpbm-style text into whitespace-separated tokens,
// dropping '#' comments that run to the end of a line. Decode failures are
// wrapped with kind so callers can match them with errors.Is.
type tokenizer struct {
	r    *bufio.Reader
	kind error
	tok  []byte
	n    int // tokens consumed
}

func newTokenizer(r io.Reader, kind error) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r), kind: kind}
}

// scan reads the next token into t.tok. It returns io.EOF when the input
// ends before a token starts.
func (t *tokenizer) scan() error {
	t.tok = t.tok[:0]
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(t.tok) > 0 {
				return nil
			}
			return err
		}

		switch {
		case c == '#':
			err := t.skipComment()
			if err != nil && err != io.EOF {
				return err
			}
			// A comment ends the token it touches.
			if len(t.tok) > 0 {
				return nil
			}
			if err != nil {
				return err
			}
		case isSpace(c):
			if len(t.tok) > 0 {
				return nil
			}
		default:
			if len(t.tok) == maxTokenLen {
				return errTokenTooLong
			}
			t.tok = append(t.tok, c)
		}
	}
}

// skipComment discards input through the next newline without buffering
// the comment text.
func (t *tokenizer) skipComment() error {
	for {
		_, err := t.r.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

func (t *tokenizer) next(what string) (string, error) {
	if err := t.scan(); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", t.fail(what, err)
	}
	t.n++
	return string(t.tok), nil
}

func (t *tokenizer) nextInt(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, t.fail(what, err)
	}
	return v, nil
}

func (t *tokenizer) nextUint8(what string) (uint8, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return 0, t.fail(what, err)
	}
	return uint8(v), nil
}

// expectEOF fails if any token remains.
func (t *tokenizer) expectEOF() error {
	switch err := t.scan(); err {
	case io.EOF:
		return nil
	case nil:
		return fmt.Errorf("%w: unexpected trailing data %q after token %d",
			t.kind, t.tok, t.n)
	default:
		return t.fail("end of input", err)
	}
}

func (t *tokenizer) fail(what string, err error) error {
	return fmt.Errorf("%w: reading %s (token %d): %w", t.kind, what, t.n+1, err)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
