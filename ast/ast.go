// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines concrete representations for JSON values, and a
// decoder that constructs them from JSON source using the jparse engine.
package ast

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/creachadair/jparse/internal/escape"
	"go4.org/mem"
)

// A Value is a decoded JSON value. The concrete types are Null, Bool, Int,
// Uint, Float, Big, String, Bytes, Array, and Object.
type Value interface {
	// JSON encodes the value as JSON text.
	JSON() string
}

// Null represents the null constant.
type Null struct{}

func (Null) JSON() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// An Int is a negative integer value.
type Int int64

func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Uint is a non-negative integer value.
type Uint uint64

func (u Uint) JSON() string { return strconv.FormatUint(uint64(u), 10) }

// A Float is a floating-point value.
type Float float64

func (f Float) JSON() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// A Big is an integer value too large for 64 bits.
type Big struct{ N *big.Int }

func (b Big) JSON() string { return b.N.String() }

// A String is a string value.
type String string

func (s String) JSON() string { return escape.Quote(mem.S(string(s))) }

// A Bytes is a string value decoded without UTF-8 validation.
type Bytes []byte

func (b Bytes) JSON() string { return escape.Quote(mem.B(b)) }

// An Array is a sequence of values.
type Array []Value

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// An Object is a collection of key-value members.
type Object []Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for i, m := range o {
		if m.Key == key {
			return &o[i]
		}
	}
	return nil
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escape.Quote(mem.S(m.Key)))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}
