// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go4.org/mem"
)

// A parsedNumber is the classified result of a number token. Non-negative
// integers that fit are uint64, negative integers that fit are int64, and
// everything else is float64.
type parsedNumber struct {
	kind byte // 'u', 'i', or 'f'
	u    uint64
	i    int64
	f    float64
}

func (n parsedNumber) visit(v Visitor) error {
	switch n.kind {
	case 'u':
		return v.Uint(n.u)
	case 'i':
		return v.Int(n.i)
	default:
		return v.Float(n.f)
	}
}

func (n parsedNumber) describe() string {
	switch n.kind {
	case 'u':
		return fmt.Sprintf("integer `%d`", n.u)
	case 'i':
		return fmt.Sprintf("integer `%d`", n.i)
	default:
		return fmt.Sprintf("floating point `%v`", n.f)
	}
}

// parseInteger consumes a number token whose leading minus sign, if any,
// has already been consumed, and classifies the result. The integer part
// accumulates in a uint64 significand; once more digits arrive than the
// significand can hold, parsing continues on the float path with the extra
// digits contributing only to the exponent.
func (d *Deserializer) parseInteger(positive bool) (parsedNumber, error) {
	if d.exact {
		return d.parseExactNumber(positive)
	}
	next, err := d.nextOrEOFValue()
	if err != nil {
		return parsedNumber{}, err
	}
	switch {
	case next == '0':
		ch, err := d.peekOrNull()
		if err != nil {
			return parsedNumber{}, err
		}
		if isDigit(ch) {
			return parsedNumber{}, d.peekError(InvalidNumber)
		}
		return d.parseNumber(positive, 0)

	case isDigit(next):
		significand := uint64(next - '0')
		for {
			ch, err := d.peekOrNull()
			if err != nil {
				return parsedNumber{}, err
			}
			if !isDigit(ch) {
				return d.parseNumber(positive, significand)
			}
			digit := uint64(ch - '0')
			if significand > (math.MaxUint64-digit)/10 {
				f, err := d.parseLongInteger(positive, significand)
				if err != nil {
					return parsedNumber{}, err
				}
				return parsedNumber{kind: 'f', f: f}, nil
			}
			d.src.Discard()
			significand = significand*10 + digit
		}

	default:
		return parsedNumber{}, d.error(InvalidNumber)
	}
}

// parseNumber classifies a number whose integer part is already consumed:
// a fraction or exponent makes it a float, and a bare integer is signed and
// range-checked. Negation uses the two's-complement wraparound test, so
// math.MinInt64 is still an int64 while -0 and one past the range become
// floats.
func (d *Deserializer) parseNumber(positive bool, significand uint64) (parsedNumber, error) {
	ch, err := d.peekOrNull()
	if err != nil {
		return parsedNumber{}, err
	}
	switch ch {
	case '.':
		f, err := d.parseDecimal(positive, significand, 0)
		if err != nil {
			return parsedNumber{}, err
		}
		return parsedNumber{kind: 'f', f: f}, nil
	case 'e', 'E':
		f, err := d.parseExponent(positive, significand, 0)
		if err != nil {
			return parsedNumber{}, err
		}
		return parsedNumber{kind: 'f', f: f}, nil
	default:
		if positive {
			return parsedNumber{kind: 'u', u: significand}, nil
		}
		neg := -int64(significand)
		if neg >= 0 {
			return parsedNumber{kind: 'f', f: -float64(significand)}, nil
		}
		return parsedNumber{kind: 'i', i: neg}, nil
	}
}

// parseLongInteger consumes the integer digits beyond what the significand
// can hold. The dropped digits only scale the value, so each one adds to
// the exponent.
func (d *Deserializer) parseLongInteger(positive bool, significand uint64) (float64, error) {
	exponent := 0
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return 0, err
		}
		switch {
		case isDigit(ch):
			d.src.Discard()
			exponent++
		case ch == '.':
			return d.parseDecimal(positive, significand, exponent)
		case ch == 'e' || ch == 'E':
			return d.parseExponent(positive, significand, exponent)
		default:
			return d.floatFromParts(positive, significand, exponent)
		}
	}
}

// parseDecimal consumes a fraction part, whose '.' is at the lookahead
// position. At least one fraction digit is required.
func (d *Deserializer) parseDecimal(positive bool, significand uint64, exponent int) (float64, error) {
	d.src.Discard()
	fracExp := 0
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return 0, err
		}
		if !isDigit(ch) {
			break
		}
		digit := uint64(ch - '0')
		if significand > (math.MaxUint64-digit)/10 {
			return d.parseDecimalOverflow(positive, significand, exponent+fracExp)
		}
		d.src.Discard()
		significand = significand*10 + digit
		fracExp--
	}
	if fracExp == 0 {
		if _, err := d.src.Peek(); err == io.EOF {
			return 0, d.peekError(EOFParsingValue)
		} else if err != nil {
			return 0, err
		}
		return 0, d.peekError(InvalidNumber)
	}
	exponent += fracExp
	ch, err := d.peekOrNull()
	if err != nil {
		return 0, err
	}
	if ch == 'e' || ch == 'E' {
		return d.parseExponent(positive, significand, exponent)
	}
	return d.floatFromParts(positive, significand, exponent)
}

// parseDecimalOverflow discards fraction digits that can no longer affect
// the significand.
func (d *Deserializer) parseDecimalOverflow(positive bool, significand uint64, exponent int) (float64, error) {
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return 0, err
		}
		if !isDigit(ch) {
			break
		}
		d.src.Discard()
	}
	ch, err := d.peekOrNull()
	if err != nil {
		return 0, err
	}
	if ch == 'e' || ch == 'E' {
		return d.parseExponent(positive, significand, exponent)
	}
	return d.floatFromParts(positive, significand, exponent)
}

// parseExponent consumes an exponent part, whose 'e' or 'E' is at the
// lookahead position.
func (d *Deserializer) parseExponent(positive bool, significand uint64, startingExp int) (float64, error) {
	d.src.Discard()
	positiveExp := true
	ch, err := d.peekOrNull()
	if err != nil {
		return 0, err
	}
	switch ch {
	case '+':
		d.src.Discard()
	case '-':
		positiveExp = false
		d.src.Discard()
	}
	next, err := d.nextOrEOFValue()
	if err != nil {
		return 0, err
	}
	if !isDigit(next) {
		return 0, d.error(InvalidNumber)
	}
	exp := int(next - '0')
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return 0, err
		}
		if !isDigit(ch) {
			break
		}
		d.src.Discard()
		digit := int(ch - '0')
		if exp > (math.MaxInt32-digit)/10 {
			return d.parseExponentOverflow(positive, significand == 0, positiveExp)
		}
		exp = exp*10 + digit
	}
	finalExp := startingExp + exp
	if !positiveExp {
		finalExp = startingExp - exp
	}
	return d.floatFromParts(positive, significand, finalExp)
}

// parseExponentOverflow handles an exponent too large for 32 bits. A zero
// significand still yields a signed zero, and any negative exponent
// underflows to one; anything else has no finite representation.
func (d *Deserializer) parseExponentOverflow(positive, zeroSignificand, positiveExp bool) (float64, error) {
	if !zeroSignificand && positiveExp {
		return 0, d.error(NumberOutOfRange)
	}
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return 0, err
		}
		if !isDigit(ch) {
			break
		}
		d.src.Discard()
	}
	if positive {
		return 0, nil
	}
	return math.Copysign(0, -1), nil
}

// floatFromParts assembles significand * 10**exponent. Exponents beyond the
// pow10 table are folded in 308 at a time; a result that would round to
// infinity is reported as NumberOutOfRange rather than returned.
func (d *Deserializer) floatFromParts(positive bool, significand uint64, exponent int) (float64, error) {
	f := float64(significand)
	for {
		e := exponent
		if e < 0 {
			e = -e
		}
		if e < len(pow10) {
			if exponent >= 0 {
				f *= pow10[e]
				if math.IsInf(f, 0) {
					return 0, d.error(NumberOutOfRange)
				}
			} else {
				f /= pow10[e]
			}
			break
		}
		if f == 0 {
			break
		}
		if exponent >= 0 {
			return 0, d.error(NumberOutOfRange)
		}
		f /= 1e308
		exponent += 308
	}
	if positive {
		return f, nil
	}
	return -f, nil
}

// pow10 holds the exactly representable powers of ten.
var pow10 = func() (t [309]float64) {
	for i := range t {
		t[i] = math.Pow10(i)
	}
	return
}()

// parseExactNumber is the exact-float variant of parseInteger: the token is
// captured as text and floats are converted by strconv, which rounds every
// input correctly at the cost of buffering the digits. Integer
// classification is unchanged.
func (d *Deserializer) parseExactNumber(positive bool) (parsedNumber, error) {
	d.scratch = d.scratch[:0]
	if !positive {
		d.scratch = append(d.scratch, '-')
	}
	if err := d.scanDigits(); err != nil {
		return parsedNumber{}, err
	}
	isFloat := false
	ch, err := d.peekOrNull()
	if err != nil {
		return parsedNumber{}, err
	}
	if ch == '.' {
		isFloat = true
		d.src.Discard()
		d.scratch = append(d.scratch, '.')
		if err := d.scanFraction(); err != nil {
			return parsedNumber{}, err
		}
		ch, err = d.peekOrNull()
		if err != nil {
			return parsedNumber{}, err
		}
	}
	if ch == 'e' || ch == 'E' {
		isFloat = true
		d.src.Discard()
		d.scratch = append(d.scratch, ch)
		if err := d.scanExponent(); err != nil {
			return parsedNumber{}, err
		}
	}
	if !isFloat {
		if positive {
			if u, err := mem.ParseUint(mem.B(d.scratch), 10, 64); err == nil {
				return parsedNumber{kind: 'u', u: u}, nil
			}
		} else {
			if len(d.scratch) == 2 && d.scratch[1] == '0' {
				return parsedNumber{kind: 'f', f: math.Copysign(0, -1)}, nil
			}
			if z, err := mem.ParseInt(mem.B(d.scratch), 10, 64); err == nil {
				return parsedNumber{kind: 'i', i: z}, nil
			}
		}
	}
	f, err := strconv.ParseFloat(string(d.scratch), 64)
	if math.IsInf(f, 0) {
		return parsedNumber{}, d.error(NumberOutOfRange)
	} else if err != nil && !errors.Is(err, strconv.ErrRange) {
		return parsedNumber{}, d.error(InvalidNumber)
	}
	return parsedNumber{kind: 'f', f: f}, nil
}

func (d *Deserializer) scanFraction() error {
	n := 0
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if !isDigit(ch) {
			break
		}
		d.src.Discard()
		d.scratch = append(d.scratch, ch)
		n++
	}
	if n == 0 {
		if _, err := d.src.Peek(); err == io.EOF {
			return d.peekError(EOFParsingValue)
		} else if err != nil {
			return err
		}
		return d.peekError(InvalidNumber)
	}
	return nil
}

func (d *Deserializer) scanExponent() error {
	ch, err := d.peekOrNull()
	if err != nil {
		return err
	}
	if ch == '+' || ch == '-' {
		d.src.Discard()
		d.scratch = append(d.scratch, ch)
	}
	next, err := d.nextOrEOFValue()
	if err != nil {
		return err
	}
	if !isDigit(next) {
		return d.error(InvalidNumber)
	}
	d.scratch = append(d.scratch, next)
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if !isDigit(ch) {
			return nil
		}
		d.src.Discard()
		d.scratch = append(d.scratch, ch)
	}
}

// nextOrNull consumes and returns the next byte, or 0 at the end of input.
func (d *Deserializer) nextOrNull() (byte, error) {
	ch, err := d.src.Next()
	if err == io.EOF {
		return 0, nil
	}
	return ch, err
}

// ignoreInteger consumes a number token without keeping its value, applying
// the same grammar as parseInteger. The leading minus sign, if any, has
// already been consumed.
func (d *Deserializer) ignoreInteger() error {
	ch, err := d.nextOrNull()
	if err != nil {
		return err
	}
	switch {
	case ch == '0':
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if isDigit(ch) {
			return d.peekError(InvalidNumber)
		}
	case isDigit(ch):
		for {
			ch, err := d.peekOrNull()
			if err != nil {
				return err
			}
			if !isDigit(ch) {
				break
			}
			d.src.Discard()
		}
	default:
		return d.error(InvalidNumber)
	}
	ch, err = d.peekOrNull()
	if err != nil {
		return err
	}
	switch ch {
	case '.':
		return d.ignoreDecimal()
	case 'e', 'E':
		return d.ignoreExponent()
	}
	return nil
}

func (d *Deserializer) ignoreDecimal() error {
	d.src.Discard()
	n := 0
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if !isDigit(ch) {
			break
		}
		d.src.Discard()
		n++
	}
	if n == 0 {
		return d.peekError(InvalidNumber)
	}
	ch, err := d.peekOrNull()
	if err != nil {
		return err
	}
	if ch == 'e' || ch == 'E' {
		return d.ignoreExponent()
	}
	return nil
}

func (d *Deserializer) ignoreExponent() error {
	d.src.Discard()
	ch, err := d.peekOrNull()
	if err != nil {
		return err
	}
	if ch == '+' || ch == '-' {
		d.src.Discard()
	}
	ch, err = d.nextOrNull()
	if err != nil {
		return err
	}
	if !isDigit(ch) {
		return d.error(InvalidNumber)
	}
	for {
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if !isDigit(ch) {
			return nil
		}
		d.src.Discard()
	}
}
