// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"fmt"
	"math/big"
)

// A Visitor receives the values recognized by a Deserializer. Scalar values
// arrive by value; composite values arrive as cursors from which the visitor
// pulls nested elements, re-entering the deserializer for each one.
//
// A visitor method may reject the value it is given by returning an error.
// Returning an UnexpectedValue with only its Got field set lets the engine
// fill in the Expected description and the input position; any other error
// is wrapped as a DataError at the current position.
type Visitor interface {
	// Expecting describes what the visitor wants, e.g. "a boolean". It is
	// used to build invalid-type error messages.
	Expecting() string

	Unit() error              // null
	Bool(bool) error          // true, false
	Uint(uint64) error        // non-negative integers
	Int(int64) error          // negative integers
	BigInt(*big.Int) error    // integers beyond 64 bits (BigNumber only)
	Float(float64) error      // everything else numeric
	Str(Ref) error            // strings, decoded and validated
	Bytes(Ref) error          // strings decoded without validation
	None() error              // null, via Option
	Some(*Deserializer) error // non-null, via Option
	Seq(*SeqAccess) error     // arrays
	Map(*MapAccess) error     // objects
	Enum(*EnumAccess) error   // string or single-member object, via Enum
	Newtype(*Deserializer) error
}

// A Base is a Visitor that rejects every value with an invalid-type error.
// Embed a Base to implement only the methods a visitor cares about.
type Base struct{}

// Expecting returns a generic description. Most visitors that embed a Base
// should override it.
func (Base) Expecting() string { return "a value" }

func (Base) Unit() error { return &UnexpectedValue{Got: "unit value"} }

func (Base) Bool(b bool) error {
	return &UnexpectedValue{Got: fmt.Sprintf("boolean `%v`", b)}
}

func (Base) Uint(n uint64) error {
	return &UnexpectedValue{Got: fmt.Sprintf("integer `%d`", n)}
}

func (Base) Int(z int64) error {
	return &UnexpectedValue{Got: fmt.Sprintf("integer `%d`", z)}
}

func (Base) BigInt(z *big.Int) error {
	return &UnexpectedValue{Got: fmt.Sprintf("integer `%v`", z)}
}

func (Base) Float(f float64) error {
	return &UnexpectedValue{Got: fmt.Sprintf("floating point `%v`", f)}
}

func (Base) Str(s Ref) error {
	return &UnexpectedValue{Got: fmt.Sprintf("string %q", s.String())}
}

func (Base) Bytes(Ref) error { return &UnexpectedValue{Got: "byte string"} }

func (Base) None() error { return &UnexpectedValue{Got: "unit value"} }

func (Base) Some(*Deserializer) error { return &UnexpectedValue{Got: "optional value"} }

func (Base) Seq(*SeqAccess) error { return &UnexpectedValue{Got: "sequence"} }

func (Base) Map(*MapAccess) error { return &UnexpectedValue{Got: "map"} }

func (Base) Enum(*EnumAccess) error { return &UnexpectedValue{Got: "enum value"} }

func (Base) Newtype(*Deserializer) error { return &UnexpectedValue{Got: "newtype value"} }
