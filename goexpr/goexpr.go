// Package goexpr compiles callbacks written as Go expressions, such as
// `Int(it) % 2 == 0`, using the yaegi interpreter. Parameters are untyped
// (interface{}), so expressions reach their values through the helpers Int,
// Float, Str, Bool and Truthy.
package goexpr

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"

	"lukechampine.com/oqlseq/seq"
)

const preamble = `
func Int(v interface{}) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
	}
	return 0
}

func Float(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return float64(Int(v))
}

func Str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func Bool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

func Truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float32, float64:
		return Float(x) != 0
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int(x) != 0
	}
	return true
}
`

// Compiler is a seq.Compiler backed by a single yaegi interpreter.
type Compiler struct {
	mu sync.Mutex
	i  *interp.Interpreter
}

// New returns a Compiler with the helper functions loaded.
func New() (*Compiler, error) {
	i := interp.New(interp.Options{})
	if _, err := i.Eval(preamble); err != nil {
		return nil, errors.Wrap(err, "loading goexpr helpers")
	}
	return &Compiler{i: i}, nil
}

// Compile implements seq.Compiler. The expression becomes the body of
// func(<params> interface{}) interface{}.
func (c *Compiler) Compile(src string, params []string) (seq.Callable, error) {
	var sig string
	if len(params) > 0 {
		sig = strings.Join(params, ", ") + " interface{}"
	}
	code := fmt.Sprintf("func(%v) interface{} { return (%v) }", sig, src)

	c.mu.Lock()
	v, err := c.i.Eval(code)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if v.Kind() != reflect.Func {
		return nil, errors.Errorf("expression compiled to %v, not a function", v.Kind())
	}
	return &function{src: src, fn: v}, nil
}

type function struct {
	src string
	fn  reflect.Value
}

func (f *function) String() string { return fmt.Sprintf("<go %q>", f.src) }

// Call implements seq.Callable. Null arguments are passed as nil.
func (f *function) Call(args ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("evaluating %q: %v", f.src, r)
		}
	}()
	n := f.fn.Type().NumIn()
	in := make([]reflect.Value, n)
	for i := range in {
		var a any
		if i < len(args) && !seq.IsNull(args[i]) {
			a = args[i]
		}
		in[i] = reflect.ValueOf(&a).Elem()
	}
	out := f.fn.Call(in)
	if len(out) == 0 {
		return seq.Null, nil
	}
	v := out[0].Interface()
	if v == nil {
		return seq.Null, nil
	}
	return v, nil
}
