// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// A Ref is a read-only reference to the decoded contents of a JSON string.
// A borrowed Ref aliases the original input and remains valid as long as the
// input does; a copied Ref aliases the scratch buffer of the deserializer
// that produced it and is only valid until the next parsing call.
type Ref struct {
	body     mem.RO
	borrowed bool
}

func borrowedRef(body mem.RO) Ref { return Ref{body: body, borrowed: true} }
func copiedRef(body []byte) Ref   { return Ref{body: mem.B(body)} }

// RO returns a read-only view of the contents of r.
func (r Ref) RO() mem.RO { return r.body }

// Len reports the length of r in bytes.
func (r Ref) Len() int { return r.body.Len() }

// String returns a copy of the contents of r as a string.
func (r Ref) String() string { return r.body.StringCopy() }

// Append appends the contents of r to dst and returns the updated slice.
func (r Ref) Append(dst []byte) []byte { return mem.Append(dst, r.body) }

// Borrowed reports whether r aliases the original input rather than a
// scratch buffer.
func (r Ref) Borrowed() bool { return r.borrowed }

// A Source supplies the bytes of a JSON input to a Deserializer. The
// implementations are SliceSource, StringSource, and ReaderSource; the
// interface is closed to types outside this package.
type Source interface {
	// Peek reports the next unconsumed byte without advancing past it.
	// It returns io.EOF at the end of input.
	Peek() (byte, error)

	// Discard advances past the byte most recently reported by Peek.
	Discard()

	// Next returns the next byte of input and advances past it. It returns
	// io.EOF at the end of input.
	Next() (byte, error)

	// Position reports the location just past the most recently consumed
	// byte, so the first consumed byte of the input has position 1:1.
	Position() Position

	// PeekPosition reports the location of the next unconsumed byte.
	PeekPosition() Position

	// ByteOffset reports the number of bytes consumed so far. A byte that
	// has been peeked but not consumed is not counted.
	ByteOffset() int

	// ParseText consumes the body of a string up to and including its
	// closing quote, resolving escape sequences and verifying that the
	// result is valid UTF-8. The opening quote must already be consumed.
	// Copied output accumulates in *scratch, which the caller must reset.
	ParseText(scratch *[]byte) (Ref, error)

	// ParseRaw is ParseText without validation: the result may contain
	// arbitrary bytes, and an unpaired surrogate escape is encoded in its
	// raw three-byte form rather than rejected.
	ParseRaw(scratch *[]byte) (Ref, error)

	// IgnoreString consumes and discards a string body, still checking the
	// syntax of escape sequences.
	IgnoreString() error

	// decodeHex consumes four hex digits and returns their value.
	decodeHex() (uint16, error)

	// failFast reports whether an error on this source makes later reads
	// unreliable, in which case a Stream stops after the first failure.
	failFast() bool

	// markFailed records a decode failure if the source is fail-fast.
	markFailed(failed *bool)

	// beginRaw and endRaw bracket the capture of raw value text.
	beginRaw()
	endRaw() Ref
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// stringSpecial reports whether ch ends a plain run of string body bytes:
// the closing quote, a backslash, or an unescaped control character.
func stringSpecial(ch byte) bool { return ch == '"' || ch == '\\' || ch < 0x20 }

func hexVal(ch byte) (uint16, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return uint16(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return uint16(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return uint16(ch-'A') + 10, true
	}
	return 0, false
}

func nextOrEOFString(src Source) (byte, error) {
	ch, err := src.Next()
	if err == io.EOF {
		return 0, syntaxError(EOFParsingString, src.Position())
	}
	return ch, err
}

func peekOrEOFString(src Source) (byte, error) {
	ch, err := src.Peek()
	if err == io.EOF {
		return 0, syntaxError(EOFParsingString, src.Position())
	}
	return ch, err
}

// parseEscape resolves a single escape sequence, whose leading backslash has
// already been consumed, appending the result to *scratch. With validate
// set, an unpaired UTF-16 surrogate is an error; otherwise it is encoded in
// its raw three-byte form.
func parseEscape(src Source, validate bool, scratch *[]byte) error {
	ch, err := nextOrEOFString(src)
	if err != nil {
		return err
	}
	switch ch {
	case '"', '\\', '/':
		*scratch = append(*scratch, ch)
	case 'b':
		*scratch = append(*scratch, '\b')
	case 'f':
		*scratch = append(*scratch, '\f')
	case 'n':
		*scratch = append(*scratch, '\n')
	case 'r':
		*scratch = append(*scratch, '\r')
	case 't':
		*scratch = append(*scratch, '\t')
	case 'u':
		return parseUnicodeEscape(src, validate, scratch)
	default:
		return syntaxError(InvalidEscape, src.Position())
	}
	return nil
}

func parseUnicodeEscape(src Source, validate bool, scratch *[]byte) error {
	n1, err := src.decodeHex()
	if err != nil {
		return err
	}
	switch {
	case n1 >= 0xDC00 && n1 <= 0xDFFF:
		// A trailing surrogate with no leading partner.
		if validate {
			return syntaxError(LoneSurrogateInEscape, src.Position())
		}
		encodeRawSurrogate(scratch, n1)
		return nil

	case n1 >= 0xD800 && n1 <= 0xDBFF:
		// A leading surrogate must be followed immediately by a "\u" escape
		// encoding the trailing half of the pair.
		ch, err := peekOrEOFString(src)
		if err != nil {
			return err
		}
		if ch != '\\' {
			if validate {
				src.Discard()
				return syntaxError(UnexpectedEndOfHexEscape, src.Position())
			}
			encodeRawSurrogate(scratch, n1)
			return nil
		}
		src.Discard()
		ch, err = peekOrEOFString(src)
		if err != nil {
			return err
		}
		if ch != 'u' {
			if validate {
				src.Discard()
				return syntaxError(UnexpectedEndOfHexEscape, src.Position())
			}
			encodeRawSurrogate(scratch, n1)

			// The consumed backslash begins another escape sequence.
			return parseEscape(src, validate, scratch)
		}
		src.Discard()
		n2, err := src.decodeHex()
		if err != nil {
			return err
		}
		if n2 < 0xDC00 || n2 > 0xDFFF {
			return syntaxError(LoneSurrogateInEscape, src.Position())
		}
		r := (rune(n1)-0xD800)<<10 + (rune(n2) - 0xDC00) + 0x10000
		*scratch = utf8.AppendRune(*scratch, r)
		return nil

	default:
		*scratch = utf8.AppendRune(*scratch, rune(n1))
		return nil
	}
}

// encodeRawSurrogate appends the raw three-byte encoding of an unpaired
// UTF-16 surrogate, the form a UTF-8 encoder would use if surrogates were
// ordinary code points. The result is not valid UTF-8.
func encodeRawSurrogate(scratch *[]byte, n uint16) {
	*scratch = append(*scratch,
		0xE0|byte(n>>12),
		0x80|byte(n>>6)&0x3F,
		0x80|byte(n)&0x3F,
	)
}

// ignoreEscape checks the syntax of a single escape sequence, whose leading
// backslash has already been consumed, without keeping its value. Unlike
// parseEscape it does not pair surrogates; any four hex digits are accepted.
func ignoreEscape(src Source) error {
	ch, err := nextOrEOFString(src)
	if err != nil {
		return err
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		_, err := src.decodeHex()
		return err
	default:
		return syntaxError(InvalidEscape, src.Position())
	}
}

// validUTF8 reports whether v is entirely valid UTF-8.
func validUTF8(v mem.RO) bool {
	for v.Len() != 0 {
		r, n := mem.DecodeRune(v)
		if r == utf8.RuneError && n <= 1 {
			return false
		}
		v = v.SliceFrom(n)
	}
	return true
}
