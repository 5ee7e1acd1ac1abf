package evaluator

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"lukechampine.com/oqlseq/seq"
	"lukechampine.com/oqlseq/token"
)

// A Fielder exposes named fields to member expressions such as `it.name`.
// Heap objects implement it to make their fields visible to callbacks.
type Fielder interface {
	Field(name string) (any, bool)
}

func evalPrefixOp(op token.Kind, v any) (any, error) {
	switch op {
	case token.Bang:
		return !seq.Truthy(v), nil
	case token.Minus:
		if i, ok := v.(int64); ok {
			return -i, nil
		}
		if i, ok := seq.TryAsIntegral(v); ok && !isFloat(v) {
			return -i, nil
		}
		if f, ok := seq.TryAsFloating(v); ok {
			return -f, nil
		}
		return nil, &seq.TypeError{Op: "-", Want: "number", Value: v}
	default:
		return nil, errors.Errorf("unhandled prefix operator %v", op)
	}
}

func isFloat(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

// integers returns both operands as int64 if neither is a floating value.
func integers(a, b any) (int64, int64, bool) {
	if isFloat(a) || isFloat(b) {
		return 0, 0, false
	}
	x, ok := seq.TryAsIntegral(a)
	if !ok {
		return 0, 0, false
	}
	y, ok := seq.TryAsIntegral(b)
	return x, y, ok
}

func floats(op token.Kind, a, b any) (float64, float64, error) {
	x, ok := seq.TryAsFloating(a)
	if !ok {
		return 0, 0, &seq.TypeError{Op: opString(op), Want: "number", Value: a}
	}
	y, ok := seq.TryAsFloating(b)
	if !ok {
		return 0, 0, &seq.TypeError{Op: opString(op), Want: "number", Value: b}
	}
	return x, y, nil
}

func opString(op token.Kind) string {
	return [...]string{
		token.Plus:          "+",
		token.Minus:         "-",
		token.Star:          "*",
		token.Slash:         "/",
		token.Mod:           "%",
		token.Less:          "<",
		token.Greater:       ">",
		token.LessEquals:    "<=",
		token.GreaterEquals: ">=",
	}[op]
}

func evalInfixOp(op token.Kind, a, b any) (any, error) {
	switch op {
	case token.Equals:
		return equals(a, b), nil
	case token.NotEquals:
		return !equals(a, b), nil
	case token.Less, token.Greater, token.LessEquals, token.GreaterEquals:
		c, err := compare(op, a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case token.Less:
			return c < 0, nil
		case token.Greater:
			return c > 0, nil
		case token.LessEquals:
			return c <= 0, nil
		default:
			return c >= 0, nil
		}
	case token.Plus:
		_, as := a.(string)
		_, bs := b.(string)
		if as || bs {
			return toString(a) + toString(b), nil
		}
	}
	return arith(op, a, b)
}

func arith(op token.Kind, a, b any) (any, error) {
	if x, y, ok := integers(a, b); ok {
		switch op {
		case token.Plus:
			return x + y, nil
		case token.Minus:
			return x - y, nil
		case token.Star:
			return x * y, nil
		case token.Slash:
			if y == 0 {
				return nil, errors.New("division by zero")
			}
			if x%y == 0 {
				return x / y, nil
			}
			return float64(x) / float64(y), nil
		case token.Mod:
			if y == 0 {
				return nil, errors.New("division by zero")
			}
			return x % y, nil
		}
	}
	x, y, err := floats(op, a, b)
	if err != nil {
		return nil, err
	}
	switch op {
	case token.Plus:
		return x + y, nil
	case token.Minus:
		return x - y, nil
	case token.Star:
		return x * y, nil
	case token.Slash:
		return x / y, nil
	case token.Mod:
		return math.Mod(x, y), nil
	default:
		return nil, errors.Errorf("unhandled infix operator %v", op)
	}
}

func compare(op token.Kind, a, b any) (int, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), nil
		}
	}
	c, err := seq.CompareNumeric(a, b)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot evaluate %v %v %v", a, opString(op), b)
	}
	return c, nil
}

func equals(a, b any) bool {
	if seq.IsNumeric(a) && seq.IsNumeric(b) {
		c, _ := seq.CompareNumeric(a, b)
		return c == 0
	}
	return seq.Equal(a, b)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func evalMember(v any, name string) (any, error) {
	if seq.IsNull(v) {
		return nil, errors.Errorf("cannot read field %q of null", name)
	}
	switch v := v.(type) {
	case Fielder:
		if f, ok := v.Field(name); ok {
			return f, nil
		}
		return seq.Null, nil
	case map[string]any:
		if f, ok := v[name]; ok {
			return f, nil
		}
		return seq.Null, nil
	case seq.ArrayLike:
		if name == "length" {
			return v.Len(), nil
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f := rv.FieldByName(exported(name))
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			f := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if !f.IsValid() {
				return seq.Null, nil
			}
			return f.Interface(), nil
		}
	case reflect.Slice, reflect.Array, reflect.String:
		if name == "length" {
			return rv.Len(), nil
		}
	}
	return nil, errors.Errorf("%T has no field %q", v, name)
}

func exported(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}

func evalIndex(v, idx any) (any, error) {
	if seq.IsNull(v) {
		return nil, errors.New("cannot index null")
	}
	if s, ok := idx.(string); ok {
		return evalMember(v, s)
	}
	i, err := seq.AsIntegral(idx)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case seq.ArrayLike:
		if i < 0 || i >= int64(v.Len()) {
			return nil, errors.Errorf("index %v out of range [0:%v]", i, v.Len())
		}
		return v.At(int(i)), nil
	case string:
		if i < 0 || i >= int64(len(v)) {
			return nil, errors.Errorf("index %v out of range [0:%v]", i, len(v))
		}
		return v[i : i+1], nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= int64(rv.Len()) {
			return nil, errors.Errorf("index %v out of range [0:%v]", i, rv.Len())
		}
		return rv.Index(int(i)).Interface(), nil
	}
	return nil, &seq.TypeError{Op: "index", Want: "array", Value: v}
}
