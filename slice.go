// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"io"

	"go4.org/mem"
)

// A SliceSource reads JSON text from a byte slice held entirely in memory.
// String contents without escape sequences are borrowed directly from the
// slice rather than copied.
type SliceSource struct {
	memSource
}

// NewSliceSource constructs a Source that reads from data.
func NewSliceSource(data []byte) *SliceSource {
	return &SliceSource{memSource{data: mem.B(data)}}
}

// A StringSource reads JSON text from a string, which per the usual Go
// convention is assumed to hold valid UTF-8. Under that assumption borrowed
// string contents skip UTF-8 validation entirely.
type StringSource struct {
	memSource
}

// NewStringSource constructs a Source that reads from s.
func NewStringSource(s string) *StringSource {
	return &StringSource{memSource{data: mem.S(s), validated: true}}
}

// memSource is the shared implementation of the in-memory sources. The
// input is held as a read-only view, so the slice and string forms differ
// only in construction and in whether UTF-8 validation can be skipped.
type memSource struct {
	data      mem.RO
	index     int // offset of the next unconsumed byte
	rawStart  int
	validated bool // contents known to be valid UTF-8
}

func (m *memSource) Peek() (byte, error) {
	if m.index < m.data.Len() {
		return m.data.At(m.index), nil
	}
	return 0, io.EOF
}

func (m *memSource) Discard() { m.index++ }

func (m *memSource) Next() (byte, error) {
	if m.index < m.data.Len() {
		ch := m.data.At(m.index)
		m.index++
		return ch, nil
	}
	return 0, io.EOF
}

func (m *memSource) Position() Position {
	return positionOf(m.data, min(m.index, m.data.Len()))
}

func (m *memSource) PeekPosition() Position {
	return positionOf(m.data, min(m.index+1, m.data.Len()))
}

func (m *memSource) ByteOffset() int { return m.index }

func (m *memSource) ParseText(scratch *[]byte) (Ref, error) {
	ref, err := m.parseStringBody(scratch, true)
	if err != nil {
		return Ref{}, err
	}
	if !m.validated && !validUTF8(ref.body) {
		return Ref{}, syntaxError(InvalidUnicodeCodePoint, m.Position())
	}
	return ref, nil
}

func (m *memSource) ParseRaw(scratch *[]byte) (Ref, error) {
	return m.parseStringBody(scratch, false)
}

// parseStringBody scans the body of a string whose opening quote is already
// consumed. Runs of plain bytes are borrowed from the input when possible;
// once an escape forces a copy, everything accumulates in *scratch.
func (m *memSource) parseStringBody(scratch *[]byte, validate bool) (Ref, error) {
	start := m.index
	for {
		for m.index < m.data.Len() && !stringSpecial(m.data.At(m.index)) {
			m.index++
		}
		if m.index == m.data.Len() {
			return Ref{}, syntaxError(EOFParsingString, m.Position())
		}
		switch ch := m.data.At(m.index); ch {
		case '"':
			if len(*scratch) == 0 {
				body := m.data.Slice(start, m.index)
				m.index++
				return borrowedRef(body), nil
			}
			*scratch = mem.Append(*scratch, m.data.Slice(start, m.index))
			m.index++
			return copiedRef(*scratch), nil

		case '\\':
			*scratch = mem.Append(*scratch, m.data.Slice(start, m.index))
			m.index++
			if err := parseEscape(m, validate, scratch); err != nil {
				return Ref{}, err
			}
			start = m.index

		default:
			// An unescaped control character, which only the raw form
			// permits. In that case it remains part of the current run.
			m.index++
			if validate {
				return Ref{}, syntaxError(ControlCharacterInString, m.Position())
			}
		}
	}
}

func (m *memSource) IgnoreString() error {
	for {
		for m.index < m.data.Len() && !stringSpecial(m.data.At(m.index)) {
			m.index++
		}
		if m.index == m.data.Len() {
			return syntaxError(EOFParsingString, m.Position())
		}
		switch ch := m.data.At(m.index); ch {
		case '"':
			m.index++
			return nil
		case '\\':
			m.index++
			if err := ignoreEscape(m); err != nil {
				return err
			}
		default:
			m.index++
			return syntaxError(ControlCharacterInString, m.Position())
		}
	}
}

func (m *memSource) decodeHex() (uint16, error) {
	if m.index+4 > m.data.Len() {
		m.index = m.data.Len()
		return 0, syntaxError(EOFParsingString, m.Position())
	}
	var n uint16
	for i := 0; i < 4; i++ {
		v, ok := hexVal(m.data.At(m.index))
		m.index++
		if !ok {
			return 0, syntaxError(InvalidEscape, m.Position())
		}
		n = n<<4 | v
	}
	return n, nil
}

// In-memory sources can continue decoding after an error, so a Stream over
// them does not latch failures.
func (m *memSource) failFast() bool          { return false }
func (m *memSource) markFailed(failed *bool) {}

func (m *memSource) beginRaw()   { m.rawStart = m.index }
func (m *memSource) endRaw() Ref { return borrowedRef(m.data.Slice(m.rawStart, m.index)) }
