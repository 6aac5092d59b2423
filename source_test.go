// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
)

// refVisitor captures the Ref delivered for a string or byte string.
type refVisitor struct {
	jparse.Base
	ref jparse.Ref
}

func (r *refVisitor) Expecting() string { return "a string" }

func (r *refVisitor) Str(s jparse.Ref) error { r.ref = s; return nil }

func (r *refVisitor) Bytes(b jparse.Ref) error { r.ref = b; return nil }

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a b"`, "a b"},
		{`"a\tb"`, "a\tb"},
		{`"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{`"☃"`, "☃"},
		{`"𝄞"`, "𝄞"}, // multibyte passthrough
		{`"\uD834\uDD1E"`, "\U0001D11E"},
		{`"\ud834\udd1e"`, "\U0001D11E"}, // case-insensitive hex
		{`"plain \u0041 mixed"`, "plain A mixed"},
		{`"\u0000"`, "\x00"}, // escaped NUL is fine, raw is not
	}
	for _, test := range tests {
		var v stringVisitor
		if err := jparse.ParseString(test.input, &v); err != nil {
			t.Errorf("Input %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, v.s); diff != "" {
			t.Errorf("Input %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		input string
		want  jparse.Kind
	}{
		{`"ab`, jparse.EOFParsingString},
		{`"ab\`, jparse.EOFParsingString},
		{`"\u12`, jparse.EOFParsingString},
		{`"\q"`, jparse.InvalidEscape},
		{`"\u12G4"`, jparse.InvalidEscape},
		{"\"a\x01b\"", jparse.ControlCharacterInString},
		{"\"a\nb\"", jparse.ControlCharacterInString}, // a raw newline is a control byte
		{`"\uDC00"`, jparse.LoneSurrogateInEscape},
		{`"\uD834\uD834"`, jparse.LoneSurrogateInEscape},
		{`"\uD801"`, jparse.UnexpectedEndOfHexEscape},
		{`"\uD801x"`, jparse.UnexpectedEndOfHexEscape},
		{`"\uD801\n"`, jparse.UnexpectedEndOfHexEscape},
	}
	for _, test := range tests {
		var v stringVisitor
		err := jparse.ParseString(test.input, &v)
		if err == nil {
			t.Errorf("Input %#q: got %q, want error kind %v", test.input, v.s, test.want)
			continue
		}
		mustKind(t, err, test.want)

		// The reader source must agree with the in-memory sources.
		var rv stringVisitor
		mustKind(t, jparse.ParseReader(strings.NewReader(test.input), &rv), test.want)
	}
}

func TestRawStrings(t *testing.T) {
	parseRaw := func(t *testing.T, src jparse.Source) jparse.Ref {
		t.Helper()
		d := jparse.NewDeserializer(src)
		var v refVisitor
		if err := d.Bytes(&v); err != nil {
			t.Fatalf("Bytes failed: %v", err)
		}
		return v.ref
	}

	t.Run("LoneSurrogate", func(t *testing.T) {
		// Validation rejects an unpaired surrogate, but the raw form keeps
		// it in its three-byte encoding.
		ref := parseRaw(t, jparse.NewSliceSource([]byte(`"\uD801"`)))
		if diff := cmp.Diff([]byte{0xED, 0xA0, 0x81}, ref.Append(nil)); diff != "" {
			t.Errorf("Raw bytes: (-want, +got)\n%s", diff)
		}
	})
	t.Run("TrailingSurrogate", func(t *testing.T) {
		ref := parseRaw(t, jparse.NewSliceSource([]byte(`"\uDC00"`)))
		if diff := cmp.Diff([]byte{0xED, 0xB0, 0x80}, ref.Append(nil)); diff != "" {
			t.Errorf("Raw bytes: (-want, +got)\n%s", diff)
		}
	})
	t.Run("InvalidUTF8", func(t *testing.T) {
		// A byte that is not valid UTF-8 passes through the raw form.
		ref := parseRaw(t, jparse.NewSliceSource([]byte{'"', 0xFF, '"'}))
		if diff := cmp.Diff([]byte{0xFF}, ref.Append(nil)); diff != "" {
			t.Errorf("Raw bytes: (-want, +got)\n%s", diff)
		}

		// The validating form rejects the same input.
		var v stringVisitor
		err := jparse.Parse([]byte{'"', 0xFF, '"'}, &v)
		mustKind(t, err, jparse.InvalidUnicodeCodePoint)
	})
	t.Run("SurrogatePair", func(t *testing.T) {
		// Paired surrogates still combine in the raw form.
		ref := parseRaw(t, jparse.NewSliceSource([]byte(`"\uD834\uDD1E"`)))
		if got := ref.String(); got != "\U0001D11E" {
			t.Errorf("Got %q, want U+1D11E", got)
		}
	})
}

func TestBorrowing(t *testing.T) {
	tests := []struct {
		input    string
		borrowed bool
	}{
		{`"abc"`, true},   // plain contents borrow from the input
		{`"a\tb"`, false}, // escapes force a copy
		{`""`, true},
	}
	for _, test := range tests {
		t.Run("Slice", func(t *testing.T) {
			var v refVisitor
			d := jparse.NewDeserializer(jparse.NewSliceSource([]byte(test.input)))
			if err := d.Str(&v); err != nil {
				t.Fatalf("Str failed: %v", err)
			}
			if v.ref.Borrowed() != test.borrowed {
				t.Errorf("Input %#q: borrowed=%v, want %v", test.input, v.ref.Borrowed(), test.borrowed)
			}
		})
		t.Run("String", func(t *testing.T) {
			var v refVisitor
			d := jparse.NewDeserializer(jparse.NewStringSource(test.input))
			if err := d.Str(&v); err != nil {
				t.Fatalf("Str failed: %v", err)
			}
			if v.ref.Borrowed() != test.borrowed {
				t.Errorf("Input %#q: borrowed=%v, want %v", test.input, v.ref.Borrowed(), test.borrowed)
			}
		})
		t.Run("Reader", func(t *testing.T) {
			// A reader source never borrows.
			var v refVisitor
			d := jparse.NewDeserializer(jparse.NewReaderSource(strings.NewReader(test.input)))
			if err := d.Str(&v); err != nil {
				t.Fatalf("Str failed: %v", err)
			}
			if v.ref.Borrowed() {
				t.Errorf("Input %#q: reader source returned a borrowed ref", test.input)
			}
		})
	}
}

func TestRefAccessors(t *testing.T) {
	var v refVisitor
	if err := jparse.Parse([]byte(`"hello"`), &v); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := v.ref.Len(); got != 5 {
		t.Errorf("Len: got %d, want 5", got)
	}
	if got := v.ref.String(); got != "hello" {
		t.Errorf("String: got %q, want hello", got)
	}
	if got := v.ref.Append([]byte("say ")); !bytes.Equal(got, []byte("say hello")) {
		t.Errorf("Append: got %q, want say hello", got)
	}
	if got := v.ref.RO().StringCopy(); got != "hello" {
		t.Errorf("RO: got %q, want hello", got)
	}
}

func TestReaderPositions(t *testing.T) {
	// The eagerly tracked position of a reader source must agree with the
	// lazily computed position of an in-memory source.
	inputs := []string{
		"[1,\n2,\nx]",
		"{\"a\":\n 01}",
		"tru",
		"\n\n  #",
	}
	for _, input := range inputs {
		var sv, rv anyVisitor
		serr := jparse.ParseString(input, &sv)
		rerr := jparse.ParseReader(strings.NewReader(input), &rv)
		if serr == nil || rerr == nil {
			t.Errorf("Input %#q: got errors %v / %v, want both non-nil", input, serr, rerr)
			continue
		}
		var se, re *jparse.Error
		if !errors.As(serr, &se) || !errors.As(rerr, &re) {
			t.Errorf("Input %#q: got errors %v / %v, want *jparse.Error", input, serr, rerr)
			continue
		}
		if se.Kind != re.Kind || se.Pos != re.Pos {
			t.Errorf("Input %#q: slice error %v at %v, reader error %v at %v",
				input, se.Kind, se.Pos, re.Kind, re.Pos)
		}
	}
}
