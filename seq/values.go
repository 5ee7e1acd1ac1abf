// Package seq implements the sequence functions of the heap query language:
// count, filter, map, sort, sum and friends, operating uniformly over arrays,
// iterators and enumerations.
package seq

import (
	"fmt"
	"reflect"
	"strings"
)

// ArrayLike values support random access and have a known length. Go slices
// and arrays are treated as array-like as well.
type ArrayLike interface {
	Len() int
	At(i int) any
}

// IteratorLike values support sequential pull access. Implementations may
// also provide an Err() error method, consulted once HasNext returns false.
type IteratorLike interface {
	HasNext() bool
	Next() any
}

// EnumerationLike values use the legacy two-method pull protocol.
type EnumerationLike interface {
	HasMoreElements() bool
	NextElement() any
}

// Callable values can be invoked with positional arguments.
type Callable interface {
	Call(args ...any) (any, error)
}

type errReporter interface {
	Err() error
}

// Func adapts an ordinary function to the Callable interface.
type Func func(args ...any) (any, error)

// Call implements Callable.
func (f Func) Call(args ...any) (any, error) { return f(args...) }

// Expression is the source text of a callback, compiled on demand by the
// installed Compiler. Plain strings are treated the same way.
type Expression string

// NullValue is the type of Null.
type NullValue struct{}

func (NullValue) String() string { return "null" }

// Null is returned by operations that have no result, such as the maximum of
// an empty sequence.
var Null = NullValue{}

// IsNull reports whether v is Null or a nil interface.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}

// Array is a materialized sequence.
type Array []any

// Len implements ArrayLike.
func (a Array) Len() int { return len(a) }

// At implements ArrayLike.
func (a Array) At(i int) any { return a[i] }

func (a Array) String() string {
	strs := make([]string, len(a))
	for i, e := range a {
		strs[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

type reflectArray struct {
	v reflect.Value
}

func (a reflectArray) Len() int     { return a.v.Len() }
func (a reflectArray) At(i int) any { return a.v.Index(i).Interface() }

func asArrayLike(v any) (ArrayLike, bool) {
	if a, ok := v.(ArrayLike); ok {
		return a, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return reflectArray{rv}, true
	}
	return nil, false
}

// Truthy reports whether a callback result counts as true: booleans are taken
// as-is, null is false, numbers are true when non-zero and not NaN, strings
// when non-empty. Every other value is true.
func Truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	if IsNull(v) {
		return false
	}
	if f, ok := TryAsFloating(v); ok {
		return f != 0 && f == f
	}
	return true
}

// Equal compares two values with Go's native equality, falling back to
// reflect.DeepEqual for values that are not comparable.
func Equal(a, b any) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// orderedSet keeps the first occurrence of each distinct value.
type orderedSet struct {
	seen  map[any]struct{}
	other []any // values that cannot be map keys
	elems Array
}

func (s *orderedSet) add(v any) {
	if IsNull(v) {
		v = Null
	}
	if reflect.ValueOf(v).Comparable() {
		if _, ok := s.seen[v]; ok {
			return
		}
		if s.seen == nil {
			s.seen = make(map[any]struct{})
		}
		s.seen[v] = struct{}{}
	} else {
		for _, o := range s.other {
			if reflect.DeepEqual(o, v) {
				return
			}
		}
		s.other = append(s.other, v)
	}
	s.elems = append(s.elems, v)
}
