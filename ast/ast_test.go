// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/ast"
	"github.com/google/go-cmp/cmp"
)

func checkKind(t *testing.T, err error, want jparse.Kind) {
	t.Helper()
	var je *jparse.Error
	if !errors.As(err, &je) {
		t.Fatalf("Got error %v, want *jparse.Error", err)
	}
	if je.Kind != want {
		t.Errorf("Got error kind %v, want %v", je.Kind, want)
	}
}

func parseOne(t *testing.T, input string) ast.Value {
	t.Helper()
	v, err := ast.ParseSingle(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSingle %#q: unexpected error: %v", input, err)
	}
	return v
}

func TestDecodeTypes(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{`null`, ast.Null{}},
		{`true`, ast.Bool(true)},
		{`false`, ast.Bool(false)},
		{`17`, ast.Uint(17)},
		{`-3`, ast.Int(-3)},
		{`2.5`, ast.Float(2.5)},
		{`"hello"`, ast.String("hello")},
		{`[]`, ast.Array{}},
		{`[1, -2, "x"]`, ast.Array{ast.Uint(1), ast.Int(-2), ast.String("x")}},
		{`{}`, ast.Object{}},
		{`{"a": null, "b": [true]}`, ast.Object{
			{Key: "a", Value: ast.Null{}},
			{Key: "b", Value: ast.Array{ast.Bool(true)}},
		}},
	}
	for _, test := range tests {
		got := parseOne(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestDecodeBig(t *testing.T) {
	const input = `123456789012345678901234567890`
	v := parseOne(t, input)
	b, ok := v.(ast.Big)
	if !ok {
		t.Fatalf("Got %T (%v), want ast.Big", v, v)
	}
	if got := b.N.String(); got != input {
		t.Errorf("Got %s, want %s", got, input)
	}
	if got := b.JSON(); got != input {
		t.Errorf("JSON: got %s, want %s", got, input)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`null`, `null`},
		{` true `, `true`},
		{`-5`, `-5`},
		{`17`, `17`},
		{`2.5`, `2.5`},
		{`-0`, `-0`},
		{`"hello"`, `"hello"`},
		{`"a\tb"`, `"a\tb"`},
		{`"𝄞"`, "\"\U0001D11E\""},
		{`[1, 2, 3]`, `[1,2,3]`},
		{`{"a": 1, "b": [true, null]}`, `{"a":1,"b":[true,null]}`},
		{`[[], {}, ""]`, `[[],{},""]`},
	}
	for _, test := range tests {
		got := parseOne(t, test.input).JSON()
		if got != test.want {
			t.Errorf("Input %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestParseMultiple(t *testing.T) {
	vs, err := ast.ParseString(`1 "two" [3] {"four": 4} null`)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	var got []string
	for _, v := range vs {
		got = append(got, v.JSON())
	}
	want := []string{`1`, `"two"`, `[3]`, `{"four":4}`, `null`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values: (-want, +got)\n%s", diff)
	}
}

func TestParsePartial(t *testing.T) {
	// Values before the error are returned along with it.
	vs, err := ast.ParseString(`[1] oops`)
	if err == nil {
		t.Fatal("ParseString: no error, wanted one")
	}
	checkKind(t, err, jparse.ExpectedSomeValue)
	if diff := cmp.Diff([]ast.Value{ast.Array{ast.Uint(1)}}, vs); diff != "" {
		t.Errorf("Partial values: (-want, +got)\n%s", diff)
	}
}

func TestParseSingle(t *testing.T) {
	if _, err := ast.ParseSingle(strings.NewReader(``)); err == nil {
		t.Error("Empty input: no error, wanted one")
	} else {
		checkKind(t, err, jparse.EOFParsingValue)
	}
	if _, err := ast.ParseSingle(strings.NewReader(`1 2`)); err == nil {
		t.Error("Extra input: no error, wanted one")
	} else {
		checkKind(t, err, jparse.TrailingCharacters)
	}
}

func TestDecode(t *testing.T) {
	// Decode consumes exactly one value, leaving the rest for the caller.
	d := jparse.NewDeserializer(jparse.NewStringSource(`{"a": 1} [2]`))
	first, err := ast.Decode(d)
	if err != nil {
		t.Fatalf("First Decode failed: %v", err)
	}
	if got := first.JSON(); got != `{"a":1}` {
		t.Errorf("First value: got %#q, want {\"a\":1}", got)
	}
	second, err := ast.Decode(d)
	if err != nil {
		t.Fatalf("Second Decode failed: %v", err)
	}
	if got := second.JSON(); got != `[2]` {
		t.Errorf("Second value: got %#q, want [2]", got)
	}
	if err := d.End(); err != nil {
		t.Errorf("End failed: %v", err)
	}
}

func TestObjectFind(t *testing.T) {
	v := parseOne(t, `{"a": 1, "b": 2, "a": 3}`)
	obj, ok := v.(ast.Object)
	if !ok {
		t.Fatalf("Got %T, want ast.Object", v)
	}
	if m := obj.Find("b"); m == nil {
		t.Error(`Find("b"): got nil, want member`)
	} else if diff := cmp.Diff(ast.Uint(2), m.Value); diff != "" {
		t.Errorf("Find(\"b\") value: (-want, +got)\n%s", diff)
	}

	// Find reports the first of duplicate keys.
	if m := obj.Find("a"); m == nil {
		t.Error(`Find("a"): got nil, want member`)
	} else if diff := cmp.Diff(ast.Uint(1), m.Value); diff != "" {
		t.Errorf("Find(\"a\") value: (-want, +got)\n%s", diff)
	}

	if m := obj.Find("missing"); m != nil {
		t.Errorf(`Find("missing"): got %+v, want nil`, m)
	}
}

func TestStringEscaping(t *testing.T) {
	tests := []struct {
		value ast.Value
		want  string
	}{
		{ast.String(`say "what"`), `"say \"what\""`},
		{ast.String("back\\slash"), `"back\\slash"`},
		{ast.String("tab\there"), `"tab\there"`},
		{ast.String("line\nbreak\r"), `"line\nbreak\r"`},
		{ast.String("\x00\x1f"), `"\u0000\u001f"`},
		{ast.String("héllo"), `"héllo"`},
		{ast.Bytes("raw\x01"), `"raw\u0001"`},
	}
	for _, test := range tests {
		if got := test.value.JSON(); got != test.want {
			t.Errorf("Value %#v: got %#q, want %#q", test.value, got, test.want)
		}
	}
}
