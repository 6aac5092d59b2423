// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jparse implements a pull-based recursive-descent JSON parser.
//
// # Sources
//
// A Source supplies the bytes of a JSON input. Three implementations are
// provided: a SliceSource reads from a byte slice held in memory, a
// StringSource reads from a string assumed to hold valid UTF-8, and a
// ReaderSource reads incrementally from an io.Reader. In-memory sources can
// hand out string contents borrowed directly from the input without copying;
// a ReaderSource always copies.
//
// # Deserializing
//
// A Deserializer drives the parse, delivering each value it recognizes to a
// Visitor provided by the caller. The methods of the Visitor correspond to
// the kinds of JSON values; composite values (arrays and objects) are
// delivered as cursors from which the visitor pulls nested elements:
//
//	var v countVisitor
//	if err := jparse.ParseString(`[1, 2, 3]`, &v); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Besides Any, which accepts a value of whatever type appears next in the
// input, the Deserializer has typed entry points (Bool, Number, Str, and so
// on) that insist on a particular kind of value, and a Skip method that
// validates and discards a value without delivering it. A visitor that does
// not care to handle every kind of value can embed a Base, which rejects
// everything, and override only the methods it wants.
//
// # Streams
//
// A Stream decodes a sequence of top-level values appearing back to back in
// a single input. Its Next method decodes one value at a time and reports
// io.EOF when the input is exhausted:
//
//	st := jparse.NewDeserializer(src).Stream()
//	for {
//	   var v valueVisitor
//	   if err := st.Next(&v); err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Decode failed: %v", err)
//	   }
//	}
//
// # Errors
//
// All errors reported by this package have concrete type [*Error], carrying
// a Kind that classifies the failure and the line and column where it
// occurred. Errors from the underlying reader of a ReaderSource carry no
// position.
package jparse
