// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape encodes strings for inclusion in JSON text.
package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel to size the table
}

var hexDigit = []byte("0123456789abcdef")

// Append appends the JSON encoding of src to dst, including the enclosing
// quotation marks, and returns the updated slice. Bytes that do not require
// an escape are copied through unmodified, so content that is not valid
// UTF-8 survives a round trip.
func Append(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for i := 0; i < src.Len(); i++ {
		ch := src.At(i)
		switch {
		case ch == '"' || ch == '\\':
			dst = append(dst, '\\', ch)
		case ch < ' ':
			if b := controlEsc[ch]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[ch>>4], hexDigit[ch&15])
			}
		default:
			dst = append(dst, ch)
		}
	}
	return append(dst, '"')
}

// Quote returns the JSON encoding of src as a string.
func Quote(src mem.RO) string {
	return string(Append(make([]byte, 0, src.Len()+2), src))
}
