// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import "fmt"

// A Kind classifies the failure reported by an Error.
type Kind int

const (
	// IOError reports a failure of the underlying reader. The wrapped error
	// is the reader's, and the position is the zero sentinel.
	IOError Kind = iota

	// DataError reports that a syntactically valid value was rejected by the
	// visitor, for example a string where a number was expected.
	DataError

	// End of input interrupted a production.
	EOFParsingValue
	EOFParsingList
	EOFParsingObject
	EOFParsingString

	// Syntax errors.
	ExpectedSomeValue
	ExpectedSomeIdent
	ExpectedColon
	ExpectedListCommaOrEnd
	ExpectedObjectCommaOrEnd
	KeyMustBeAString
	InvalidNumber
	NumberOutOfRange
	InvalidEscape
	InvalidUnicodeCodePoint
	ControlCharacterInString
	LoneSurrogateInEscape
	UnexpectedEndOfHexEscape
	TrailingComma
	TrailingCharacters
	RecursionLimitExceeded

	numKinds // must be last
)

var kindString = [numKinds]string{
	IOError:                  "I/O error",
	DataError:                "invalid value",
	EOFParsingValue:          "EOF while parsing a value",
	EOFParsingList:           "EOF while parsing a list",
	EOFParsingObject:         "EOF while parsing an object",
	EOFParsingString:         "EOF while parsing a string",
	ExpectedSomeValue:        "expected value",
	ExpectedSomeIdent:        "expected ident",
	ExpectedColon:            `expected ":"`,
	ExpectedListCommaOrEnd:   `expected "," or "]"`,
	ExpectedObjectCommaOrEnd: `expected "," or "}"`,
	KeyMustBeAString:         "key must be a string",
	InvalidNumber:            "invalid number",
	NumberOutOfRange:         "number out of range",
	InvalidEscape:            "invalid escape",
	InvalidUnicodeCodePoint:  "invalid unicode code point",
	ControlCharacterInString: "control character in string",
	LoneSurrogateInEscape:    "lone surrogate in hex escape",
	UnexpectedEndOfHexEscape: "unexpected end of hex escape",
	TrailingComma:            "trailing comma",
	TrailingCharacters:       "trailing characters",
	RecursionLimitExceeded:   "recursion limit exceeded",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindString[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// An Error is the concrete type of all errors reported by this package.
type Error struct {
	Kind Kind
	Pos  Position // zero when the error carries no location

	err error // wrapped cause, or nil
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.Kind == DataError && e.err != nil:
		msg = e.err.Error()
	case e.err != nil:
		msg = e.Kind.String() + ": " + e.err.Error()
	default:
		msg = e.Kind.String()
	}
	if e.Pos == (Position{}) {
		return msg
	}
	return fmt.Sprintf("at %v: %s", e.Pos, msg)
}

// Unwrap returns the wrapped cause of e, if any.
func (e *Error) Unwrap() error { return e.err }

func syntaxError(kind Kind, pos Position) *Error { return &Error{Kind: kind, Pos: pos} }

func ioError(err error) *Error { return &Error{Kind: IOError, err: err} }

// An UnexpectedValue reports that a well-formed value was not the kind of
// value its receiver wanted. Visitor methods may return an UnexpectedValue
// with only Got populated; the engine fills in Expected from the visitor's
// Expecting description and wraps the result in an *Error before it is
// returned to the caller.
type UnexpectedValue struct {
	Got      string // description of the value found
	Expected string // description of the value wanted
}

func (u *UnexpectedValue) Error() string {
	if u.Expected == "" {
		return "unexpected " + u.Got
	}
	return fmt.Sprintf("invalid type: %s, expected %s", u.Got, u.Expected)
}
