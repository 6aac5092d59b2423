// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import "io"

// A Stream decodes a sequence of top-level JSON values appearing back to
// back in a single input, such as concatenated or newline-delimited JSON.
// Values that do not delimit themselves (numbers, booleans, null) must be
// followed by whitespace, a structural character, or the end of input.
type Stream struct {
	de     *Deserializer
	offset int
	failed bool
}

// Stream returns a stream over the top-level values remaining in d's input.
// The stream uses d to decode, so the caller must not interleave other
// calls on d.
func (d *Deserializer) Stream() *Stream {
	return &Stream{de: d, offset: d.src.ByteOffset()}
}

// ByteOffset reports the number of input bytes consumed by the values
// decoded so far. After a decoding error it reports the offset at which the
// failed value began, from which a caller that knows the shape of its input
// can resume.
func (s *Stream) ByteOffset() int { return s.offset }

// Next decodes the next value in the stream and delivers it to v. It
// returns io.EOF when the input is exhausted. After an error on a source
// whose reads cannot be rewound, every later call reports io.EOF.
func (s *Stream) Next(v Visitor) error {
	if s.failed && s.de.src.failFast() {
		return io.EOF
	}
	ch, err := s.de.parseWhitespace()
	if err == io.EOF {
		s.offset = s.de.src.ByteOffset()
		return io.EOF
	} else if err != nil {
		s.de.src.markFailed(&s.failed)
		return err
	}
	selfDelineating := ch == '[' || ch == '{' || ch == '"'
	s.offset = s.de.src.ByteOffset()

	if err := s.de.Any(v); err != nil {
		s.de.src.markFailed(&s.failed)
		return err
	}
	s.offset = s.de.src.ByteOffset()
	if !selfDelineating {
		return s.endOfValue()
	}
	return nil
}

// endOfValue checks that the byte after a non-self-delineating value could
// not extend it: whitespace, a structural character, or end of input.
func (s *Stream) endOfValue() error {
	ch, err := s.de.src.Peek()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	switch ch {
	case ' ', '\t', '\n', '\r', '"', '[', ']', '{', '}', ',', ':':
		return nil
	}
	return syntaxError(TrailingCharacters, s.de.src.PeekPosition())
}
