package evaluator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"lukechampine.com/oqlseq/seq"
)

var builtins = map[string]seq.Callable{
	"range":     seq.Func(builtinRange),
	"enumerate": seq.Func(builtinEnumerate),
	"int":       seq.Func(builtinInt),
	"float":     seq.Func(builtinFloat),
	"str":       seq.Func(builtinStr),
}

func init() {
	for _, f := range seq.Functions() {
		builtins[f.Name()] = f
	}
}

func lookupBuiltin(name string) (seq.Callable, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Builtins returns the names of every builtin function, sorted.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkArgs(name string, args []any, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return &seq.ArityError{Func: name, Min: lo, Max: hi, Actual: len(args)}
	}
	return nil
}

// rangeIterator yields the integers in [next, end) without materializing
// them, standing in for a walk over heap objects.
type rangeIterator struct {
	next, end int64
}

func (r *rangeIterator) HasNext() bool { return r.next < r.end }

func (r *rangeIterator) Next() any {
	if r.next >= r.end {
		return seq.Null
	}
	r.next++
	return r.next - 1
}

func (r *rangeIterator) String() string { return fmt.Sprintf("<range %v..%v>", r.next, r.end) }

func builtinRange(args ...any) (any, error) {
	if err := checkArgs("range", args, 1, 2); err != nil {
		return nil, err
	}
	bounds := make([]int64, len(args))
	for i, a := range args {
		n, err := seq.AsIntegral(a)
		if err != nil {
			return nil, err
		}
		bounds[i] = n
	}
	if len(bounds) == 1 {
		return &rangeIterator{0, bounds[0]}, nil
	}
	return &rangeIterator{bounds[0], bounds[1]}, nil
}

// enumeration yields its values through the legacy enumeration protocol.
type enumeration struct {
	vals []any
}

func (e *enumeration) HasMoreElements() bool { return len(e.vals) > 0 }

func (e *enumeration) NextElement() any {
	if len(e.vals) == 0 {
		return seq.Null
	}
	v := e.vals[0]
	e.vals = e.vals[1:]
	return v
}

func (e *enumeration) String() string { return fmt.Sprintf("<enumeration, %v left>", len(e.vals)) }

func builtinEnumerate(args ...any) (any, error) {
	return &enumeration{vals: append([]any(nil), args...)}, nil
}

func builtinInt(args ...any) (any, error) {
	if err := checkArgs("int", args, 1, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &seq.ConversionError{Value: v, To: "integer"}
		}
		return i, nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	}
	if i, ok := seq.TryAsIntegral(args[0]); ok {
		return i, nil
	}
	if f, ok := seq.TryAsFloating(args[0]); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(math.Trunc(f)), nil
	}
	return nil, &seq.ConversionError{Value: args[0], To: "integer"}
}

func builtinFloat(args ...any) (any, error) {
	if err := checkArgs("float", args, 1, 1); err != nil {
		return nil, err
	}
	if s, ok := args[0].(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, &seq.ConversionError{Value: s, To: "float"}
		}
		return f, nil
	}
	if f, ok := seq.TryAsFloating(args[0]); ok {
		return f, nil
	}
	return nil, &seq.ConversionError{Value: args[0], To: "float"}
}

func builtinStr(args ...any) (any, error) {
	if err := checkArgs("str", args, 1, 1); err != nil {
		return nil, err
	}
	return toString(args[0]), nil
}
