// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"fmt"

	"go4.org/mem"
)

// A Position describes the location of a byte in source text. Lines are
// numbered from 1; the column is the byte offset from the most recent line
// break, so the first byte of a line has column 1 once it is consumed. The
// zero Position is the sentinel for errors that carry no location, such as
// failures of the underlying reader.
type Position struct {
	Line   int // line number, 1-based
	Column int // byte offset in line
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// positionOf computes the position just after offset n of input by scanning
// for line breaks. In-memory sources call this lazily when a position is
// actually needed, usually to report an error.
func positionOf(input mem.RO, n int) Position {
	pos := Position{Line: 1}
	rest := input.SliceTo(n)
	for {
		i := mem.IndexByte(rest, '\n')
		if i < 0 {
			pos.Column += rest.Len()
			return pos
		}
		pos.Line++
		pos.Column = 0
		rest = rest.SliceFrom(i + 1)
	}
}
