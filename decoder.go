// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"errors"
	"io"
	"math/big"
	"strconv"

	"github.com/creachadair/mds/stack"
	"go4.org/mem"
)

// maxNestingDepth is the default limit on the nesting depth of arrays,
// objects, and enum values. Input nested more deeply is rejected with
// RecursionLimitExceeded unless the limit is disabled.
const maxNestingDepth = 128

// A Deserializer parses JSON values from a Source and delivers them to
// visitors provided by the caller. A Deserializer is not safe for concurrent
// use, and its methods must not be re-entered except through the cursors it
// passes to visitor methods.
type Deserializer struct {
	src     Source
	scratch []byte
	depth   int // remaining nesting budget
	nolimit bool
	exact   bool
	frames  *stack.Stack[byte] // brackets open during Skip
}

// NewDeserializer constructs a Deserializer that reads from src.
func NewDeserializer(src Source) *Deserializer {
	return &Deserializer{src: src, depth: maxNestingDepth, frames: stack.New[byte]()}
}

// DisableRecursionLimit removes the limit on input nesting depth. The caller
// becomes responsible for ensuring deeply nested input cannot exhaust the
// goroutine stack.
func (d *Deserializer) DisableRecursionLimit() { d.nolimit = true }

// SetExactFloats sets whether floating-point values are converted from
// their literal text by strconv, which rounds every input correctly, rather
// than by the faster significand-and-exponent computation. The default is
// false.
func (d *Deserializer) SetExactFloats(exact bool) { d.exact = exact }

// error reports kind at the position of the most recently consumed byte.
func (d *Deserializer) error(kind Kind) *Error { return syntaxError(kind, d.src.Position()) }

// peekError reports kind at the position of the next unconsumed byte.
func (d *Deserializer) peekError(kind Kind) *Error { return syntaxError(kind, d.src.PeekPosition()) }

// peekOrNull returns the next unconsumed byte, or 0 at the end of input.
// NUL cannot occur in valid JSON outside a string body.
func (d *Deserializer) peekOrNull() (byte, error) {
	ch, err := d.src.Peek()
	if err == io.EOF {
		return 0, nil
	}
	return ch, err
}

// nextOrEOFValue consumes and returns the next byte, reporting end of input
// as EOFParsingValue.
func (d *Deserializer) nextOrEOFValue() (byte, error) {
	ch, err := d.src.Next()
	if err == io.EOF {
		return 0, d.error(EOFParsingValue)
	}
	return ch, err
}

// parseWhitespace discards whitespace and reports the first byte following
// it without consuming that byte. It returns io.EOF at the end of input.
func (d *Deserializer) parseWhitespace() (byte, error) {
	for {
		ch, err := d.src.Peek()
		if err != nil {
			return 0, err
		}
		switch ch {
		case ' ', '\t', '\n', '\r':
			d.src.Discard()
		default:
			return ch, nil
		}
	}
}

// parseIdent consumes the remaining bytes of a keyword whose first byte has
// already been matched.
func (d *Deserializer) parseIdent(rest string) error {
	for i := 0; i < len(rest); i++ {
		ch, err := d.nextOrEOFValue()
		if err != nil {
			return err
		}
		if ch != rest[i] {
			return d.error(ExpectedSomeIdent)
		}
	}
	return nil
}

func (d *Deserializer) enterNested() error {
	if d.nolimit {
		return nil
	}
	if d.depth == 0 {
		return d.peekError(RecursionLimitExceeded)
	}
	d.depth--
	return nil
}

func (d *Deserializer) exitNested() {
	if !d.nolimit {
		d.depth++
	}
}

// fixPosition stamps the current consumed position on a data error built
// without one, and wraps foreign errors from visitors as data errors. The
// consumed position may trail the ideal location by one byte for failures
// detected on lookahead; the convention is applied uniformly.
func (d *Deserializer) fixPosition(err error) error {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Kind: DataError, err: err}
	}
	if e.Kind == DataError && e.Pos == (Position{}) {
		e.Pos = d.src.Position()
	}
	return e
}

// visitError completes an error returned by a method of v: an incomplete
// UnexpectedValue gets the visitor's own description, and the result is
// positioned by fixPosition. Errors that are already complete pass through
// unmodified.
func (d *Deserializer) visitError(v Visitor, err error) error {
	if err == nil {
		return nil
	}
	var u *UnexpectedValue
	if errors.As(err, &u) && u.Expected == "" {
		u.Expected = v.Expecting()
	}
	return d.fixPosition(err)
}

// Any parses a single value of whatever type appears next in the input and
// delivers it to v.
func (d *Deserializer) Any(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	var verr error
	switch {
	case ch == 'n':
		d.src.Discard()
		if err := d.parseIdent("ull"); err != nil {
			return err
		}
		verr = v.Unit()
	case ch == 't':
		d.src.Discard()
		if err := d.parseIdent("rue"); err != nil {
			return err
		}
		verr = v.Bool(true)
	case ch == 'f':
		d.src.Discard()
		if err := d.parseIdent("alse"); err != nil {
			return err
		}
		verr = v.Bool(false)
	case ch == '-':
		d.src.Discard()
		n, err := d.parseInteger(false)
		if err != nil {
			return err
		}
		verr = n.visit(v)
	case isDigit(ch):
		n, err := d.parseInteger(true)
		if err != nil {
			return err
		}
		verr = n.visit(v)
	case ch == '"':
		d.src.Discard()
		d.scratch = d.scratch[:0]
		ref, err := d.src.ParseText(&d.scratch)
		if err != nil {
			return err
		}
		verr = v.Str(ref)
	case ch == '[':
		verr = d.seqValue(v)
	case ch == '{':
		verr = d.mapValue(v)
	default:
		return d.peekError(ExpectedSomeValue)
	}
	return d.visitError(v, verr)
}

// Bool parses a boolean and delivers it to v.
func (d *Deserializer) Bool(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	switch ch {
	case 't':
		d.src.Discard()
		if err := d.parseIdent("rue"); err != nil {
			return err
		}
		return d.visitError(v, v.Bool(true))
	case 'f':
		d.src.Discard()
		if err := d.parseIdent("alse"); err != nil {
			return err
		}
		return d.visitError(v, v.Bool(false))
	default:
		return d.peekInvalidType(v)
	}
}

// Number parses a number and delivers it to v as Uint, Int, or Float.
func (d *Deserializer) Number(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	switch {
	case ch == '-':
		d.src.Discard()
		n, err := d.parseInteger(false)
		if err != nil {
			return err
		}
		return d.visitError(v, n.visit(v))
	case isDigit(ch):
		n, err := d.parseInteger(true)
		if err != nil {
			return err
		}
		return d.visitError(v, n.visit(v))
	default:
		return d.peekInvalidType(v)
	}
}

// BigNumber parses an integer of any number of digits, with no fraction or
// exponent, and delivers it to v as a BigInt.
func (d *Deserializer) BigNumber(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	d.scratch = d.scratch[:0]
	if ch == '-' {
		d.src.Discard()
		d.scratch = append(d.scratch, '-')
	} else if !isDigit(ch) {
		return d.peekInvalidType(v)
	}
	if err := d.scanDigits(); err != nil {
		return err
	}
	z, ok := new(big.Int).SetString(string(d.scratch), 10)
	if !ok {
		return d.error(NumberOutOfRange)
	}
	return d.visitError(v, v.BigInt(z))
}

// scanDigits captures the digits of an integer into the scratch buffer,
// enforcing the no-leading-zero rule.
func (d *Deserializer) scanDigits() error {
	ch, err := d.nextOrEOFValue()
	if err != nil {
		return err
	}
	if !isDigit(ch) {
		return d.error(InvalidNumber)
	}
	d.scratch = append(d.scratch, ch)
	if ch == '0' {
		ch, err := d.peekOrNull()
		if err != nil {
			return err
		}
		if isDigit(ch) {
			return d.peekError(InvalidNumber)
		}
		return nil
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
		d.scratch = append(d.scratch, ch)
	}
}

// Str parses a string, resolving escapes and validating UTF-8, and delivers
// it to v. The Ref is borrowed when the source permits and the string
// contains no escapes.
func (d *Deserializer) Str(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	if ch != '"' {
		return d.peekInvalidType(v)
	}
	d.src.Discard()
	d.scratch = d.scratch[:0]
	ref, err := d.src.ParseText(&d.scratch)
	if err != nil {
		return err
	}
	return d.visitError(v, v.Str(ref))
}

// Bytes parses a string without UTF-8 validation and delivers it to v as a
// byte string; unpaired surrogate escapes are passed through in their raw
// encoded form. An array is delivered as a sequence instead, so a visitor
// can collect numeric element values.
func (d *Deserializer) Bytes(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	switch ch {
	case '"':
		d.src.Discard()
		d.scratch = d.scratch[:0]
		ref, err := d.src.ParseRaw(&d.scratch)
		if err != nil {
			return err
		}
		return d.visitError(v, v.Bytes(ref))
	case '[':
		return d.visitError(v, d.seqValue(v))
	default:
		return d.peekInvalidType(v)
	}
}

// Option delivers null to v as None and anything else as Some, leaving the
// deserializer positioned at the value for the visitor to decode.
func (d *Deserializer) Option(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err != nil && err != io.EOF {
		return err
	}
	if err == nil && ch == 'n' {
		d.src.Discard()
		if err := d.parseIdent("ull"); err != nil {
			return err
		}
		return d.visitError(v, v.None())
	}
	return d.visitError(v, v.Some(d))
}

// Unit parses a null and delivers it to v.
func (d *Deserializer) Unit(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	if ch != 'n' {
		return d.peekInvalidType(v)
	}
	d.src.Discard()
	if err := d.parseIdent("ull"); err != nil {
		return err
	}
	return d.visitError(v, v.Unit())
}

// Newtype delivers the deserializer to v to decode a single wrapped value.
func (d *Deserializer) Newtype(v Visitor) error {
	return d.visitError(v, v.Newtype(d))
}

// Seq parses an array and delivers it to v as a sequence.
func (d *Deserializer) Seq(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	if ch != '[' {
		return d.peekInvalidType(v)
	}
	return d.visitError(v, d.seqValue(v))
}

// Map parses an object and delivers it to v as a map.
func (d *Deserializer) Map(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	if ch != '{' {
		return d.peekInvalidType(v)
	}
	return d.visitError(v, d.mapValue(v))
}

// Struct parses an object or an array, delivering an object as a map and an
// array as a sequence of field values in declaration order.
func (d *Deserializer) Struct(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	switch ch {
	case '{':
		return d.visitError(v, d.mapValue(v))
	case '[':
		return d.visitError(v, d.seqValue(v))
	default:
		return d.peekInvalidType(v)
	}
}

// Enum parses an enum value: either a bare string naming a variant with no
// payload, or an object with exactly one member whose key names the variant
// and whose value is its payload.
func (d *Deserializer) Enum(v Visitor) error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingValue)
	} else if err != nil {
		return err
	}
	switch ch {
	case '{':
		if err := d.enterNested(); err != nil {
			return err
		}
		d.src.Discard()
		verr := v.Enum(&EnumAccess{de: d, object: true})
		d.exitNested()
		if verr != nil {
			return d.visitError(v, verr)
		}
		ch, err := d.parseWhitespace()
		if err == io.EOF {
			return d.error(EOFParsingObject)
		} else if err != nil {
			return err
		}
		if ch != '}' {
			return d.error(ExpectedSomeValue)
		}
		d.src.Discard()
		return nil
	case '"':
		return d.visitError(v, v.Enum(&EnumAccess{de: d}))
	default:
		return d.peekError(ExpectedSomeValue)
	}
}

// seqValue parses the array at the current lookahead position, which is
// known to be an open bracket. The close bracket is checked after the
// visitor returns, so a visitor that stops pulling elements early reports
// TrailingCharacters rather than silently skipping input.
func (d *Deserializer) seqValue(v Visitor) error {
	if err := d.enterNested(); err != nil {
		return err
	}
	d.src.Discard()
	err := v.Seq(&SeqAccess{de: d, first: true})
	d.exitNested()

	// The close check runs even after a visitor error so that the error
	// position reflects everything the visitor consumed.
	if cerr := d.endSeq(); err == nil {
		err = cerr
	}
	return err
}

func (d *Deserializer) endSeq() error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingList)
	} else if err != nil {
		return err
	}
	switch ch {
	case ']':
		d.src.Discard()
		return nil
	case ',':
		d.src.Discard()
		ch, err := d.parseWhitespace()
		if err == nil && ch == ']' {
			return d.peekError(TrailingComma)
		}
		return d.peekError(TrailingCharacters)
	default:
		return d.peekError(TrailingCharacters)
	}
}

func (d *Deserializer) mapValue(v Visitor) error {
	if err := d.enterNested(); err != nil {
		return err
	}
	d.src.Discard()
	err := v.Map(&MapAccess{de: d, first: true})
	d.exitNested()

	if cerr := d.endMap(); err == nil {
		err = cerr
	}
	return err
}

func (d *Deserializer) endMap() error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingObject)
	} else if err != nil {
		return err
	}
	switch ch {
	case '}':
		d.src.Discard()
		return nil
	case ',':
		return d.peekError(TrailingComma)
	default:
		return d.peekError(TrailingCharacters)
	}
}

// parseObjectColon consumes the colon between an object key and its value.
func (d *Deserializer) parseObjectColon() error {
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return d.peekError(EOFParsingObject)
	} else if err != nil {
		return err
	}
	if ch != ':' {
		return d.peekError(ExpectedColon)
	}
	d.src.Discard()
	return nil
}

// peekInvalidType reports that the value at the current position is not the
// kind of value v expects. The offending value is parsed so that it can be
// described, and so that the input is left at a value boundary.
func (d *Deserializer) peekInvalidType(v Visitor) error {
	got, err := d.describeValue()
	if err != nil {
		return err
	}
	return d.fixPosition(&Error{Kind: DataError, err: &UnexpectedValue{
		Got:      got,
		Expected: v.Expecting(),
	}})
}

// describeValue consumes the scalar at the current position and returns a
// description of it. Composite values are described without being consumed.
func (d *Deserializer) describeValue() (string, error) {
	ch, err := d.peekOrNull()
	if err != nil {
		return "", err
	}
	switch {
	case ch == 'n':
		d.src.Discard()
		if err := d.parseIdent("ull"); err != nil {
			return "", err
		}
		return "unit value", nil
	case ch == 't':
		d.src.Discard()
		if err := d.parseIdent("rue"); err != nil {
			return "", err
		}
		return "boolean `true`", nil
	case ch == 'f':
		d.src.Discard()
		if err := d.parseIdent("alse"); err != nil {
			return "", err
		}
		return "boolean `false`", nil
	case ch == '-':
		d.src.Discard()
		n, err := d.parseInteger(false)
		if err != nil {
			return "", err
		}
		return n.describe(), nil
	case isDigit(ch):
		n, err := d.parseInteger(true)
		if err != nil {
			return "", err
		}
		return n.describe(), nil
	case ch == '"':
		d.src.Discard()
		d.scratch = d.scratch[:0]
		ref, err := d.src.ParseText(&d.scratch)
		if err != nil {
			return "", err
		}
		return "string " + strconv.Quote(ref.String()), nil
	case ch == '[':
		return "sequence", nil
	case ch == '{':
		return "map", nil
	default:
		return "", d.peekError(ExpectedSomeValue)
	}
}

// Skip consumes and discards one value, checking only its syntax. Unlike
// the delivering entry points it does not recurse: open brackets are pushed
// on an explicit stack, so arbitrarily deep ignored input consumes neither
// the nesting budget nor the goroutine stack.
func (d *Deserializer) Skip() error {
	d.frames.Clear()

	// enclosing holds a bracket that has been reopened for its next element
	// but not yet pushed; it goes on the stack only when another composite
	// value opens inside it.
	var enclosing byte
	for {
		ch, err := d.parseWhitespace()
		if err == io.EOF {
			return d.peekError(EOFParsingValue)
		} else if err != nil {
			return err
		}
		var frame byte
		switch {
		case ch == 'n':
			d.src.Discard()
			if err := d.parseIdent("ull"); err != nil {
				return err
			}
		case ch == 't':
			d.src.Discard()
			if err := d.parseIdent("rue"); err != nil {
				return err
			}
		case ch == 'f':
			d.src.Discard()
			if err := d.parseIdent("alse"); err != nil {
				return err
			}
		case ch == '-':
			d.src.Discard()
			if err := d.ignoreInteger(); err != nil {
				return err
			}
		case isDigit(ch):
			if err := d.ignoreInteger(); err != nil {
				return err
			}
		case ch == '"':
			d.src.Discard()
			if err := d.src.IgnoreString(); err != nil {
				return err
			}
		case ch == '[' || ch == '{':
			if enclosing != 0 {
				d.frames.Push(enclosing)
				enclosing = 0
			}
			d.src.Discard()
			frame = ch
		default:
			return d.peekError(ExpectedSomeValue)
		}

		// A scalar completes the innermost open frame; pop back to it.
		acceptComma := false
		if frame == 0 {
			if enclosing != 0 {
				frame, enclosing = enclosing, 0
				acceptComma = true
			} else if f, ok := d.frames.Pop(); ok {
				frame, acceptComma = f, true
			} else {
				return nil
			}
		}

		// Consume separators and close brackets until the next element.
		for {
			ch, err := d.parseWhitespace()
			if err == io.EOF {
				if frame == '[' {
					return d.peekError(EOFParsingList)
				}
				return d.peekError(EOFParsingObject)
			} else if err != nil {
				return err
			}
			if ch == ',' && acceptComma {
				d.src.Discard()
				break
			}
			if closes := ch == ']' && frame == '[' || ch == '}' && frame == '{'; !closes {
				if !acceptComma {
					break // first element of a freshly opened frame
				}
				if frame == '[' {
					return d.peekError(ExpectedListCommaOrEnd)
				}
				return d.peekError(ExpectedObjectCommaOrEnd)
			}
			d.src.Discard()
			f, ok := d.frames.Pop()
			if !ok {
				return nil
			}
			frame, acceptComma = f, true
		}

		if frame == '{' {
			// Consume the "key": preceding the next member value.
			ch, err := d.parseWhitespace()
			if err == io.EOF {
				return d.peekError(EOFParsingObject)
			} else if err != nil {
				return err
			}
			if ch != '"' {
				return d.peekError(KeyMustBeAString)
			}
			d.src.Discard()
			if err := d.src.IgnoreString(); err != nil {
				return err
			}
			if err := d.parseObjectColon(); err != nil {
				return err
			}
		}
		enclosing = frame
	}
}

// End verifies that nothing but whitespace remains in the input.
func (d *Deserializer) End() error {
	_, err := d.parseWhitespace()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	return d.peekError(TrailingCharacters)
}

// RawValue validates and skips one value, returning its raw text including
// interior whitespace but excluding anything around it. In-memory sources
// return a borrowed span of the input; a ReaderSource copies into an
// internal buffer that is only valid until the next call.
func (d *Deserializer) RawValue() (Ref, error) {
	if _, err := d.parseWhitespace(); err != nil && err != io.EOF {
		return Ref{}, err
	}
	d.src.beginRaw()
	if err := d.Skip(); err != nil {
		return Ref{}, err
	}
	return d.src.endRaw(), nil
}

// A SeqAccess is the cursor passed to Visitor.Seq. The visitor calls Next
// for each element in turn and decodes it using the returned deserializer.
type SeqAccess struct {
	de    *Deserializer
	first bool
}

// Next advances to the next element of the array and returns the
// deserializer from which to decode it. At the end of the array it returns
// nil, nil; the close bracket itself is consumed by the engine after the
// visitor returns.
func (a *SeqAccess) Next() (*Deserializer, error) {
	ch, err := a.de.parseWhitespace()
	if err == io.EOF {
		return nil, a.de.peekError(EOFParsingList)
	} else if err != nil {
		return nil, err
	}
	switch {
	case ch == ']':
		return nil, nil
	case ch == ',' && !a.first:
		a.de.src.Discard()
		ch, err = a.de.parseWhitespace()
		if err == io.EOF {
			return nil, a.de.peekError(EOFParsingValue)
		} else if err != nil {
			return nil, err
		}
	case !a.first:
		return nil, a.de.peekError(ExpectedListCommaOrEnd)
	default:
		a.first = false
	}
	if ch == ']' {
		return nil, a.de.peekError(TrailingComma)
	}
	return a.de, nil
}

// A MapAccess is the cursor passed to Visitor.Map. The visitor alternates
// calls to NextKey and NextValue for each member in turn.
type MapAccess struct {
	de    *Deserializer
	first bool
}

// NextKey advances to the next member of the object and returns a cursor
// for its key. At the end of the object it returns nil, nil; the close
// brace itself is consumed by the engine after the visitor returns.
func (m *MapAccess) NextKey() (*MapKey, error) {
	ch, err := m.de.parseWhitespace()
	if err == io.EOF {
		return nil, m.de.peekError(EOFParsingObject)
	} else if err != nil {
		return nil, err
	}
	switch {
	case ch == '}':
		return nil, nil
	case ch == ',' && !m.first:
		m.de.src.Discard()
		ch, err = m.de.parseWhitespace()
		if err == io.EOF {
			return nil, m.de.peekError(EOFParsingValue)
		} else if err != nil {
			return nil, err
		}
	case !m.first:
		return nil, m.de.peekError(ExpectedObjectCommaOrEnd)
	default:
		m.first = false
	}
	switch ch {
	case '"':
		return &MapKey{de: m.de}, nil
	case '}':
		return nil, m.de.peekError(TrailingComma)
	default:
		return nil, m.de.peekError(KeyMustBeAString)
	}
}

// NextValue consumes the colon after the member key and returns the
// deserializer from which to decode the member value.
func (m *MapAccess) NextValue() (*Deserializer, error) {
	if err := m.de.parseObjectColon(); err != nil {
		return nil, err
	}
	return m.de, nil
}

// A MapKey decodes a single object key, which in the input is always a
// quoted string. The numeric methods additionally try to interpret the
// contents of the string as a number, falling back to the plain string when
// they cannot; this accommodates maps whose keys are stringified integers.
type MapKey struct {
	de *Deserializer
}

func (k *MapKey) text() (Ref, error) {
	k.de.src.Discard() // the open quote
	k.de.scratch = k.de.scratch[:0]
	return k.de.src.ParseText(&k.de.scratch)
}

// Str delivers the key to v as a string.
func (k *MapKey) Str(v Visitor) error {
	ref, err := k.text()
	if err != nil {
		return err
	}
	return k.de.visitError(v, v.Str(ref))
}

// Int delivers the key to v as an int64 if its contents parse as one, and
// otherwise as a string.
func (k *MapKey) Int(v Visitor) error {
	ref, err := k.text()
	if err != nil {
		return err
	}
	if z, err := mem.ParseInt(ref.RO(), 10, 64); err == nil {
		return k.de.visitError(v, v.Int(z))
	}
	return k.de.visitError(v, v.Str(ref))
}

// Uint delivers the key to v as a uint64 if its contents parse as one, and
// otherwise as a string.
func (k *MapKey) Uint(v Visitor) error {
	ref, err := k.text()
	if err != nil {
		return err
	}
	if n, err := mem.ParseUint(ref.RO(), 10, 64); err == nil {
		return k.de.visitError(v, v.Uint(n))
	}
	return k.de.visitError(v, v.Str(ref))
}

// Skip consumes and discards the key.
func (k *MapKey) Skip() error {
	k.de.src.Discard()
	return k.de.src.IgnoreString()
}

// An EnumAccess is the cursor passed to Visitor.Enum. The visitor calls
// Variant for the variant name, then exactly one of Unit, Newtype, Seq, or
// Struct for the payload.
type EnumAccess struct {
	de     *Deserializer
	object bool
}

// HasPayload reports whether the enum was written in its object form, which
// carries a payload value. The bare string form has none.
func (e *EnumAccess) HasPayload() bool { return e.object }

// Variant returns the variant name and, for the object form, positions the
// input past the colon at the start of the payload.
func (e *EnumAccess) Variant() (Ref, error) {
	d := e.de
	ch, err := d.parseWhitespace()
	if err == io.EOF {
		return Ref{}, d.peekError(EOFParsingValue)
	} else if err != nil {
		return Ref{}, err
	}
	if ch != '"' {
		return Ref{}, d.peekError(KeyMustBeAString)
	}
	d.src.Discard()
	d.scratch = d.scratch[:0]
	ref, err := d.src.ParseText(&d.scratch)
	if err != nil {
		return Ref{}, err
	}
	if e.object {
		if err := d.parseObjectColon(); err != nil {
			return Ref{}, err
		}
	}
	return ref, nil
}

// Unit consumes a payload-free variant: nothing for the bare string form, a
// null for the object form.
func (e *EnumAccess) Unit() error {
	if !e.object {
		return nil
	}
	return e.de.Unit(unitVisitor{})
}

// Newtype decodes the payload as a single value of any type.
func (e *EnumAccess) Newtype(v Visitor) error {
	if !e.object {
		return e.bareVariant(v)
	}
	return e.de.Any(v)
}

// Seq decodes the payload as an array.
func (e *EnumAccess) Seq(v Visitor) error {
	if !e.object {
		return e.bareVariant(v)
	}
	return e.de.Seq(v)
}

// Struct decodes the payload as an object or array of fields.
func (e *EnumAccess) Struct(v Visitor) error {
	if !e.object {
		return e.bareVariant(v)
	}
	return e.de.Struct(v)
}

func (e *EnumAccess) bareVariant(v Visitor) error {
	return e.de.visitError(v, &UnexpectedValue{Got: "unit variant"})
}

// unitVisitor accepts a null and rejects everything else. It consumes the
// payload of a unit variant written in object form.
type unitVisitor struct{ Base }

func (unitVisitor) Expecting() string { return "null" }
func (unitVisitor) Unit() error       { return nil }
