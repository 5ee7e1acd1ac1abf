package seq

import (
	"cmp"
	"math"
	"reflect"
)

// TryAsIntegral returns v as an int64 if it is a numeric value that fits
// without loss of precision. Floating values qualify when they hold an exact
// integer within range.
func TryAsIntegral(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintAsIntegral(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintAsIntegral(v)
	case float32:
		return floatAsIntegral(float64(v))
	case float64:
		return floatAsIntegral(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintAsIntegral(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return floatAsIntegral(rv.Float())
	}
	return 0, false
}

func uintAsIntegral(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatAsIntegral(f float64) (int64, bool) {
	// NaN fails the first test, infinities the range test
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// TryAsFloating returns v as a float64 if it is any numeric value.
func TryAsFloating(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// AsIntegral is like TryAsIntegral, but reports a ConversionError when v has
// no integral form.
func AsIntegral(v any) (int64, error) {
	i, ok := TryAsIntegral(v)
	if !ok {
		return 0, &ConversionError{Value: v, To: "integer"}
	}
	return i, nil
}

// IsNumeric reports whether v is a Go numeric value.
func IsNumeric(v any) bool {
	_, ok := TryAsFloating(v)
	return ok
}

// CompareNumeric orders two numeric values, returning a negative number, zero,
// or a positive number. Integral operands are compared exactly; otherwise both
// are compared as floats, with NaN ordered before every other value.
func CompareNumeric(a, b any) (int, error) {
	if x, ok := TryAsIntegral(a); ok {
		if y, ok := TryAsIntegral(b); ok {
			return cmp.Compare(x, y), nil
		}
	}
	x, ok := TryAsFloating(a)
	if !ok {
		return 0, &TypeError{Op: "compare", Want: "number", Value: a}
	}
	y, ok := TryAsFloating(b)
	if !ok {
		return 0, &TypeError{Op: "compare", Want: "number", Value: b}
	}
	return cmp.Compare(x, y), nil
}
