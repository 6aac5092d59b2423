// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jparse"
)

// benchInput generates a synthetic document mixing objects, arrays,
// strings with escapes, and the various number shapes.
func benchInput() []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < 500; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id": %d, "name": "item-%04d", "frac": %g, "tags": ["plain", "esc\t%d"], "even": %v, "next": null}`,
			i, i, float64(i)/3, i, i%2 == 0)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func BenchmarkDeserializer(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Visitor", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v anyVisitor
			if err := jparse.Parse(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Skip", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			d := jparse.NewDeserializer(jparse.NewSliceSource(input))
			if err := d.Skip(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v anyVisitor
			if err := jparse.ParseReader(bytes.NewReader(input), &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
