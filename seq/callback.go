package seq

import (
	"reflect"

	"github.com/pkg/errors"
)

// A Compiler turns callback source text into a Callable whose positional
// parameters are bound, in order, to params.
type Compiler interface {
	Compile(src string, params []string) (Callable, error)
}

var compiler Compiler

// SetCompiler installs the compiler used for textual callbacks. Expression
// packages call it from their init function.
func SetCompiler(c Compiler) { compiler = c }

var errNoCompiler = errors.New("no expression compiler installed")

// ResolveCallback turns v into a Callable. Callable values and Go functions are
// returned as-is (or adapted); strings and Expressions are compiled with the
// given parameter names.
func ResolveCallback(v any, params ...string) (Callable, error) {
	switch v := v.(type) {
	case string:
		return compileCallback(v, params)
	case Expression:
		return compileCallback(string(v), params)
	}
	if c, ok := AsCallable(v); ok {
		return c, nil
	}
	return nil, &TypeError{Op: "callback", Want: "function or expression", Value: v}
}

func compileCallback(src string, params []string) (Callable, error) {
	if compiler == nil {
		return nil, &CompileError{Params: params, Source: src, Err: errNoCompiler}
	}
	c, err := compiler.Compile(src, params)
	if err != nil {
		return nil, &CompileError{Params: params, Source: src, Err: err}
	}
	return c, nil
}

// AsCallable reports whether v can be invoked, adapting plain Go functions of
// any signature.
func AsCallable(v any) (Callable, bool) {
	switch v := v.(type) {
	case Callable:
		return v, true
	case func(...any) (any, error):
		return Func(v), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	return reflectFunc{rv}, true
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// reflectFunc calls an arbitrary Go function. Surplus positional arguments are
// dropped and missing ones are zero, so a func(it any) bool can serve where
// (it, index, array) is passed.
type reflectFunc struct {
	fn reflect.Value
}

func (r reflectFunc) Call(args ...any) (any, error) {
	t := r.fn.Type()
	in := make([]reflect.Value, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		pt := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			for _, a := range args[min(i, len(args)):] {
				v, err := convertArg(a, pt.Elem())
				if err != nil {
					return nil, err
				}
				in = append(in, v)
			}
			break
		}
		if i >= len(args) {
			in = append(in, reflect.Zero(pt))
			continue
		}
		v, err := convertArg(args[i], pt)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	out := r.fn.Call(in)
	switch {
	case len(out) == 0:
		return Null, nil
	case len(out) == 1 && t.Out(0) == errorType:
		err, _ := out[0].Interface().(error)
		return Null, err
	case len(out) == 2 && t.Out(1) == errorType:
		err, _ := out[1].Interface().(error)
		return out[0].Interface(), err
	default:
		return out[0].Interface(), nil
	}
}

func convertArg(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(a)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case IsNull(a):
		return reflect.Zero(t), nil
	case IsNumeric(a) && isNumericKind(t.Kind()) && v.CanConvert(t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, &TypeError{Op: "call", Want: t.String(), Value: a}
}

func isNumericKind(k reflect.Kind) bool {
	return reflect.Int <= k && k <= reflect.Float64
}
