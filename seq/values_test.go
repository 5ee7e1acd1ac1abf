package seq

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTryAsIntegral(t *testing.T) {
	type myInt int16
	tests := []struct {
		v   any
		exp int64
		ok  bool
	}{
		{3, 3, true},
		{uint8(200), 200, true},
		{myInt(-4), -4, true},
		{uint64(math.MaxUint64), 0, false},
		{2.0, 2, true},
		{2.5, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{float64(math.MaxInt64), 0, false},
		{"3", 0, false},
		{Null, 0, false},
	}
	for _, test := range tests {
		got, ok := TryAsIntegral(test.v)
		if got != test.exp || ok != test.ok {
			t.Errorf("TryAsIntegral(%v): expected (%v, %v), got (%v, %v)", test.v, test.exp, test.ok, got, ok)
		}
	}
}

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		a, b any
		exp  int
	}{
		{1, 2, -1},
		{int64(math.MaxInt64), int64(math.MaxInt64 - 1), 1},
		{uint8(3), 3.0, 0},
		{2.5, 2, 1},
		{math.NaN(), 0, -1},
	}
	for _, test := range tests {
		got, err := CompareNumeric(test.a, test.b)
		if err != nil || got != test.exp {
			t.Errorf("CompareNumeric(%v, %v): expected %v, got %v (%v)", test.a, test.b, test.exp, got, err)
		}
	}
	_, err := CompareNumeric(1, "a")
	var te *TypeError
	if !errors.As(err, &te) || te.Op != "compare" {
		t.Fatalf("expected compare TypeError, got %v", err)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v   any
		exp bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{Null, false},
		{0, false},
		{int64(-1), true},
		{0.0, false},
		{math.NaN(), false},
		{"", false},
		{"x", true},
		{Array{}, true},
		{struct{}{}, true},
	}
	for _, test := range tests {
		if got := Truthy(test.v); got != test.exp {
			t.Errorf("Truthy(%#v): expected %v, got %v", test.v, test.exp, got)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b any
		exp  bool
	}{
		{1, 1, true},
		{1, int64(1), false},
		{"a", "a", true},
		{nil, Null, true},
		{Null, 0, false},
		{[]int{1, 2}, []int{1, 2}, true},
		{[]int{1, 2}, []int{2, 1}, false},
	}
	for _, test := range tests {
		if got := Equal(test.a, test.b); got != test.exp {
			t.Errorf("Equal(%v, %v): expected %v, got %v", test.a, test.b, test.exp, got)
		}
	}
}

func TestIntoIndexed(t *testing.T) {
	it, err := IntoIndexed(&sliceEnum{vals: []any{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	var got []Element
	for it.HasNext() {
		got = append(got, it.Next())
	}
	exp := []Element{{0, "a"}, {1, "b"}}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}

	arr, _ := IntoIndexed([2]string{"x", "y"})
	arr.Next()
	arr.Next()
	if e := arr.Next(); e.Value != Null {
		t.Fatalf("expected null past the end, got %v", e.Value)
	}

	for _, v := range []any{nil, 3, "abc", map[string]int{}} {
		if _, err := IntoIndexed(v); err == nil {
			t.Errorf("expected %#v not to be iterable", v)
		}
	}
}

func TestWrapIterator(t *testing.T) {
	src := &sliceIter{vals: []any{1, 2}}
	w := WrapIterator(src)
	if WrapIterator(w) != w {
		t.Fatal("wrapping an Iterator should return it unchanged")
	}
	if !w.HasNext() || !w.HasNext() {
		t.Fatal("expected elements")
	}
	if len(src.vals) != 1 {
		t.Fatalf("HasNext should read exactly one element, %v left", len(src.vals))
	}
	if got := collect(t, w); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Fatalf("unexpected elements %v", got)
	}
	if w.Next() != Null {
		t.Fatal("expected null from an exhausted iterator")
	}
	if got := WrapArray([]any{1}).String(); got != "[1]" {
		t.Fatalf("unexpected array string %q", got)
	}
}

type adder struct{}

func (adder) Call(args ...any) (any, error) { return args[0].(int) + args[1].(int), nil }

func TestResolveCallback(t *testing.T) {
	tests := []struct {
		cb   any
		args []any
		exp  any
	}{
		{adder{}, []any{1, 2}, 3},
		{func(args ...any) (any, error) { return len(args), nil }, []any{1, 2, 3}, 3},
		{func(x int) int { return x * 2 }, []any{4, "ignored"}, 8},
		{func(x, y float64) float64 { return x + y }, []any{1, int64(2)}, 3.0},
		{func(x int, y string) string { return y }, []any{1}, ""},
		{func(x int, y string) string { return y }, []any{1, Null}, ""},
		{func(xs ...int) int { return len(xs) }, []any{1, 2, 3}, 3},
		{func(x any) {}, []any{1}, Null},
	}
	for _, test := range tests {
		c, err := ResolveCallback(test.cb, "a", "b")
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.Call(test.args...)
		if err != nil {
			t.Errorf("%T: %v", test.cb, err)
		} else if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("%T: expected %v, got %v", test.cb, test.exp, got)
		}
	}

	c, _ := ResolveCallback(func(x int) error { return errors.New("bad") })
	if _, err := c.Call(1); err == nil || err.Error() != "bad" {
		t.Fatalf("expected error result, got %v", err)
	}
	c, _ = ResolveCallback(func(x int) int { return x })
	if _, err := c.Call("s"); err == nil {
		t.Fatal("expected argument conversion error")
	}
}

type fakeCompiler struct {
	params []string
}

func (fc *fakeCompiler) Compile(src string, params []string) (Callable, error) {
	if src == "bad" {
		return nil, errors.New("syntax error")
	}
	fc.params = params
	return Func(func(args ...any) (any, error) { return src, nil }), nil
}

func TestCompiledCallbacks(t *testing.T) {
	defer SetCompiler(compiler)

	SetCompiler(nil)
	_, err := ResolveCallback("it > 1", "it")
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(err, errNoCompiler) {
		t.Fatalf("expected CompileError without a compiler, got %v", err)
	}

	fc := new(fakeCompiler)
	SetCompiler(fc)
	_, err = Filter.Call([]any{1}, Expression("bad"))
	if !errors.As(err, &ce) || ce.Source != "bad" || !reflect.DeepEqual(ce.Params, []string{"it", "index", "array", "result"}) {
		t.Fatalf("unexpected error %v", err)
	}
	if got := call(t, Map, []any{1}, "ok"); !reflect.DeepEqual(collect(t, got), []any{"ok"}) {
		t.Fatal("expected compiled callback result")
	}
	if !reflect.DeepEqual(fc.params, []string{"it", "index", "array", "result"}) {
		t.Fatalf("unexpected map parameters %v", fc.params)
	}
	call(t, Sort, []any{1}, "0")
	if !reflect.DeepEqual(fc.params, []string{"lhs", "rhs"}) {
		t.Fatalf("unexpected sort parameters %v", fc.params)
	}
}
