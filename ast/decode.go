// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"math/big"

	"github.com/creachadair/jparse"
)

// Parse parses and returns the top-level JSON values from r. In case of
// error, any complete values already parsed are returned with the error.
func Parse(r io.Reader) ([]Value, error) {
	return parseAll(jparse.NewReaderSource(r))
}

// ParseString parses and returns the top-level JSON values from s.
func ParseString(s string) ([]Value, error) {
	return parseAll(jparse.NewStringSource(s))
}

func parseAll(src jparse.Source) ([]Value, error) {
	st := jparse.NewDeserializer(src).Stream()
	var vs []Value
	for {
		var vv valueVisitor
		if err := st.Next(&vv); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, vv.value)
	}
}

// ParseSingle parses and returns the single JSON value from r. It is an
// error if r contains no values, or more than one.
func ParseSingle(r io.Reader) (Value, error) {
	d := jparse.NewDeserializer(jparse.NewReaderSource(r))
	var vv valueVisitor
	if err := d.Any(&vv); err != nil {
		return nil, err
	}
	if err := d.End(); err != nil {
		return nil, err
	}
	return vv.value, nil
}

// Decode parses a single value from d. Input after the value is not
// consumed.
func Decode(d *jparse.Deserializer) (Value, error) {
	var vv valueVisitor
	if err := d.Any(&vv); err != nil {
		return nil, err
	}
	return vv.value, nil
}

// valueVisitor builds a Value from whatever the deserializer delivers.
type valueVisitor struct {
	value Value
}

func (v *valueVisitor) Expecting() string { return "any JSON value" }

func (v *valueVisitor) Unit() error { v.value = Null{}; return nil }

func (v *valueVisitor) Bool(b bool) error { v.value = Bool(b); return nil }

func (v *valueVisitor) Uint(u uint64) error { v.value = Uint(u); return nil }

func (v *valueVisitor) Int(z int64) error { v.value = Int(z); return nil }

func (v *valueVisitor) BigInt(z *big.Int) error { v.value = Big{N: z}; return nil }

func (v *valueVisitor) Float(f float64) error { v.value = Float(f); return nil }

func (v *valueVisitor) Str(s jparse.Ref) error { v.value = String(s.String()); return nil }

func (v *valueVisitor) Bytes(b jparse.Ref) error { v.value = Bytes(b.Append(nil)); return nil }

func (v *valueVisitor) None() error { v.value = Null{}; return nil }

func (v *valueVisitor) Some(d *jparse.Deserializer) error { return d.Any(v) }

func (v *valueVisitor) Newtype(d *jparse.Deserializer) error { return d.Any(v) }

func (v *valueVisitor) Seq(seq *jparse.SeqAccess) error {
	vs := Array{}
	for {
		d, err := seq.Next()
		if err != nil {
			return err
		} else if d == nil {
			break
		}
		var elt valueVisitor
		if err := d.Any(&elt); err != nil {
			return err
		}
		vs = append(vs, elt.value)
	}
	v.value = vs
	return nil
}

func (v *valueVisitor) Map(m *jparse.MapAccess) error {
	obj := Object{}
	for {
		key, err := m.NextKey()
		if err != nil {
			return err
		} else if key == nil {
			break
		}
		var kv keyVisitor
		if err := key.Str(&kv); err != nil {
			return err
		}
		d, err := m.NextValue()
		if err != nil {
			return err
		}
		var elt valueVisitor
		if err := d.Any(&elt); err != nil {
			return err
		}
		obj = append(obj, Member{Key: kv.key, Value: elt.value})
	}
	v.value = obj
	return nil
}

func (v *valueVisitor) Enum(e *jparse.EnumAccess) error {
	name, err := e.Variant()
	if err != nil {
		return err
	}
	key := name.String()
	if !e.HasPayload() {
		if err := e.Unit(); err != nil {
			return err
		}
		v.value = String(key)
		return nil
	}
	var elt valueVisitor
	if err := e.Newtype(&elt); err != nil {
		return err
	}
	v.value = Object{{Key: key, Value: elt.value}}
	return nil
}

// keyVisitor captures an object key as a string.
type keyVisitor struct {
	jparse.Base
	key string
}

func (k *keyVisitor) Expecting() string { return "an object key" }

func (k *keyVisitor) Str(s jparse.Ref) error { k.key = s.String(); return nil }
