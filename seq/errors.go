package seq

import (
	"fmt"
	"strings"
)

// ArityError is returned when a function is called with the wrong number of
// arguments. It is always reported before any input is iterated.
type ArityError struct {
	Func     string
	Min, Max int
	Actual   int
}

func (e *ArityError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%v: expected %v arguments, got %v", e.Func, e.Min, e.Actual)
	}
	return fmt.Sprintf("%v: expected %v or %v arguments, got %v", e.Func, e.Min, e.Max, e.Actual)
}

// TypeError is returned when a value lacks a capability an operation needs:
// it is not iterable, not callable, or not numeric.
type TypeError struct {
	Op    string
	Want  string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: expected %v, got %v", e.Op, e.Want, typeName(e.Value))
}

// ConversionError is returned when a value cannot be coerced to the numeric
// form an operation mandates.
type ConversionError struct {
	Value any
	To    string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %v (%v) to %v", e.Value, typeName(e.Value), e.To)
}

// CompileError is returned when a textual callback fails to compile against
// its parameter list.
type CompileError struct {
	Params []string
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot compile %q with parameters (%v): %v", e.Source, strings.Join(e.Params, ", "), e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

func typeName(v any) string {
	if IsNull(v) {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
