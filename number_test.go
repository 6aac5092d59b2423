// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"math"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
)

func parseNumber(t *testing.T, input string, exact bool) (any, error) {
	t.Helper()
	d := jparse.NewDeserializer(jparse.NewStringSource(input))
	d.SetExactFloats(exact)
	var v anyVisitor
	if err := d.Number(&v); err != nil {
		return nil, err
	}
	if err := d.End(); err != nil {
		return nil, err
	}
	return v.v, nil
}

func TestNumberClassification(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		// Non-negative integers that fit in 64 bits are unsigned.
		{`0`, uint64(0)},
		{`5`, uint64(5)},
		{`9223372036854775807`, uint64(math.MaxInt64)},
		{`9223372036854775808`, uint64(9223372036854775808)},
		{`18446744073709551615`, uint64(math.MaxUint64)},

		// Negative integers that fit in 64 bits are signed.
		{`-1`, int64(-1)},
		{`-9223372036854775808`, int64(math.MinInt64)},

		// One past either boundary falls back to floating point.
		{`18446744073709551616`, float64(18446744073709551616)},
		{`-9223372036854775809`, float64(math.MinInt64)},

		// So does anything with a fraction or exponent.
		{`2.5`, 2.5},
		{`-6.32`, -6.32},
		{`123.456`, 123.456},
		{`0.1e-2`, 0.001},
		{`3e2`, 300.0},
		{`3E2`, 300.0},
		{`3e+2`, 300.0},
		{`1e308`, 1e308},
		{`10000000000000000000000000000`, 1e28},

		// Magnitudes below the smallest subnormal underflow to zero.
		{`1e-400`, 0.0},

		// A huge exponent on a zero significand is still zero.
		{`0e99999999999999999999999999`, 0.0},
	}
	for _, test := range tests {
		for _, exact := range []bool{false, true} {
			got, err := parseNumber(t, test.input, exact)
			if err != nil {
				t.Errorf("Input %#q (exact=%v): unexpected error: %v", test.input, exact, err)
				continue
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Input %#q (exact=%v): (-want, +got)\n%s", test.input, exact, diff)
			}
		}
	}
}

func TestNegativeZeroForms(t *testing.T) {
	// All of these must produce a floating-point negative zero, not an
	// integer.
	inputs := []string{`-0`, `-0.0`, `-0e5`, `-0e99999999999999999999999999`, `-1e-400`}
	for _, input := range inputs {
		for _, exact := range []bool{false, true} {
			got, err := parseNumber(t, input, exact)
			if err != nil {
				t.Errorf("Input %#q (exact=%v): unexpected error: %v", input, exact, err)
				continue
			}
			f, ok := got.(float64)
			if !ok {
				t.Errorf("Input %#q (exact=%v): got %T (%v), want float64", input, exact, got, got)
				continue
			}
			if f != 0 || !math.Signbit(f) {
				t.Errorf("Input %#q (exact=%v): got %v, want -0", input, exact, f)
			}
		}
	}
}

func TestNumberOutOfRange(t *testing.T) {
	// Values that would round to infinity are errors; infinity is never
	// delivered to a visitor.
	inputs := []string{
		`1e309`, `-1e309`, `2e308`, `1e99999999999999999999999999`,
		`123456789012345678901234567890e9999`,
	}
	for _, input := range inputs {
		for _, exact := range []bool{false, true} {
			_, err := parseNumber(t, input, exact)
			if err == nil {
				t.Errorf("Input %#q (exact=%v): no error, want NumberOutOfRange", input, exact)
				continue
			}
			mustKind(t, err, jparse.NumberOutOfRange)
		}
	}
}

func TestNumberSyntax(t *testing.T) {
	tests := []struct {
		input string
		want  jparse.Kind
	}{
		{`01`, jparse.InvalidNumber},
		{`-01`, jparse.InvalidNumber},
		{`007`, jparse.InvalidNumber},
		{`1.`, jparse.EOFParsingValue},
		{`1.e1`, jparse.InvalidNumber},
		{`1.x`, jparse.InvalidNumber},
		{`1e`, jparse.EOFParsingValue},
		{`1e+`, jparse.EOFParsingValue},
		{`1ex`, jparse.InvalidNumber},
		{`-`, jparse.EOFParsingValue},
		{`-x`, jparse.InvalidNumber},
	}
	for _, test := range tests {
		for _, exact := range []bool{false, true} {
			_, err := parseNumber(t, test.input, exact)
			if err == nil {
				t.Errorf("Input %#q (exact=%v): no error, want %v", test.input, exact, test.want)
				continue
			}
			mustKind(t, err, test.want)
		}
	}
}

func TestExactFloats(t *testing.T) {
	// Cases where strconv's correctly rounded conversion is the point.
	tests := []struct {
		input string
		want  float64
	}{
		{`2.2250738585072014e-308`, 2.2250738585072014e-308},
		{`2.2250738585072011e-308`, 2.2250738585072011e-308},
		{`1.7976931348623157e308`, math.MaxFloat64},
		{`0.1`, 0.1},
		{`3.141592653589793`, 3.141592653589793},
	}
	for _, test := range tests {
		got, err := parseNumber(t, test.input, true)
		if err != nil {
			t.Errorf("Input %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got != any(test.want) {
			t.Errorf("Input %#q: got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestNumberNotExtended(t *testing.T) {
	// A number token ends at the first byte that cannot extend it; what
	// follows is a separate syntax question.
	var v anyVisitor
	err := jparse.ParseString(`5x`, &v)
	mustKind(t, err, jparse.TrailingCharacters)
}
