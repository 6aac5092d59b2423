// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import "io"

// Parse parses a single JSON value from data and delivers it to v. It is an
// error if anything but whitespace follows the value.
func Parse(data []byte, v Visitor) error { return parseOne(NewSliceSource(data), v) }

// ParseString parses a single JSON value from s and delivers it to v. It is
// an error if anything but whitespace follows the value.
func ParseString(s string, v Visitor) error { return parseOne(NewStringSource(s), v) }

// ParseReader parses a single JSON value from r and delivers it to v. It is
// an error if anything but whitespace follows the value before io.EOF.
func ParseReader(r io.Reader, v Visitor) error { return parseOne(NewReaderSource(r), v) }

func parseOne(src Source, v Visitor) error {
	d := NewDeserializer(src)
	if err := d.Any(v); err != nil {
		return err
	}
	return d.End()
}
