// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// A ReaderSource reads JSON text incrementally from an io.Reader. It never
// borrows: string contents are always copied through the scratch buffer.
//
// Line and column are tracked eagerly as bytes are read, since the input is
// not retained for later scanning. The count includes a byte that has been
// peeked but not yet consumed, so a reported position may sit one byte past
// the position an in-memory source would report for errors raised at the
// consumed position while lookahead is pending.
type ReaderSource struct {
	r       *bufio.Reader
	peeked  byte
	hasPeek bool
	offset  int // bytes fully consumed
	line    int
	col     int
	raw     []byte
	rawOn   bool
}

// NewReaderSource constructs a Source that reads from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderSource{r: br, line: 1}
}

// fetch reads one byte from the underlying reader, updating the line and
// column counts.
func (r *ReaderSource) fetch() (byte, error) {
	ch, err := r.r.ReadByte()
	if err == io.EOF {
		return 0, io.EOF
	} else if err != nil {
		return 0, ioError(err)
	}
	if ch == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return ch, nil
}

// take records ch as consumed.
func (r *ReaderSource) take(ch byte) {
	r.offset++
	if r.rawOn {
		r.raw = append(r.raw, ch)
	}
}

func (r *ReaderSource) Peek() (byte, error) {
	if r.hasPeek {
		return r.peeked, nil
	}
	ch, err := r.fetch()
	if err != nil {
		return 0, err
	}
	r.peeked, r.hasPeek = ch, true
	return ch, nil
}

func (r *ReaderSource) Discard() {
	if r.hasPeek {
		r.take(r.peeked)
		r.hasPeek = false
	}
}

func (r *ReaderSource) Next() (byte, error) {
	if r.hasPeek {
		r.hasPeek = false
		r.take(r.peeked)
		return r.peeked, nil
	}
	ch, err := r.fetch()
	if err != nil {
		return 0, err
	}
	r.take(ch)
	return ch, nil
}

func (r *ReaderSource) Position() Position { return Position{Line: r.line, Column: r.col} }

// PeekPosition is the same as Position for a reader source; the counters
// already cover the lookahead byte.
func (r *ReaderSource) PeekPosition() Position { return r.Position() }

func (r *ReaderSource) ByteOffset() int { return r.offset }

func (r *ReaderSource) ParseText(scratch *[]byte) (Ref, error) {
	if err := r.parseStringBody(scratch, true); err != nil {
		return Ref{}, err
	}
	if !utf8.Valid(*scratch) {
		return Ref{}, syntaxError(InvalidUnicodeCodePoint, r.Position())
	}
	return copiedRef(*scratch), nil
}

func (r *ReaderSource) ParseRaw(scratch *[]byte) (Ref, error) {
	if err := r.parseStringBody(scratch, false); err != nil {
		return Ref{}, err
	}
	return copiedRef(*scratch), nil
}

func (r *ReaderSource) parseStringBody(scratch *[]byte, validate bool) error {
	for {
		ch, err := nextOrEOFString(r)
		if err != nil {
			return err
		}
		if !stringSpecial(ch) {
			*scratch = append(*scratch, ch)
			continue
		}
		switch ch {
		case '"':
			return nil
		case '\\':
			if err := parseEscape(r, validate, scratch); err != nil {
				return err
			}
		default:
			if validate {
				return syntaxError(ControlCharacterInString, r.Position())
			}
			*scratch = append(*scratch, ch)
		}
	}
}

func (r *ReaderSource) IgnoreString() error {
	for {
		ch, err := nextOrEOFString(r)
		if err != nil {
			return err
		}
		if !stringSpecial(ch) {
			continue
		}
		switch ch {
		case '"':
			return nil
		case '\\':
			if err := ignoreEscape(r); err != nil {
				return err
			}
		default:
			return syntaxError(ControlCharacterInString, r.Position())
		}
	}
}

func (r *ReaderSource) decodeHex() (uint16, error) {
	var n uint16
	for i := 0; i < 4; i++ {
		ch, err := nextOrEOFString(r)
		if err != nil {
			return 0, err
		}
		v, ok := hexVal(ch)
		if !ok {
			return 0, syntaxError(InvalidEscape, r.Position())
		}
		n = n<<4 | v
	}
	return n, nil
}

// A decode error leaves an unknown amount of the stream consumed, so a
// Stream over a reader source stops at the first failure.
func (r *ReaderSource) failFast() bool          { return true }
func (r *ReaderSource) markFailed(failed *bool) { *failed = true }

func (r *ReaderSource) beginRaw() {
	r.raw = r.raw[:0]
	r.rawOn = true
}

func (r *ReaderSource) endRaw() Ref {
	r.rawOn = false
	return copiedRef(r.raw)
}
