package goexpr

import (
	"reflect"
	"testing"

	"lukechampine.com/oqlseq/seq"
)

func TestCompile(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		src    string
		params []string
		args   []any
		exp    any
	}{
		{"Int(it) * 2", []string{"it"}, []any{int64(3)}, int64(6)},
		{`Str(it) + "!"`, []string{"it"}, []any{"hi"}, "hi!"},
		{"Float(a) / 2", []string{"a"}, []any{3}, 1.5},
		{"it == nil", []string{"it"}, []any{seq.Null}, true},
		{"Truthy(it)", []string{"it"}, []any{""}, false},
		{"Int(lhs) - Int(rhs)", []string{"lhs", "rhs"}, []any{5, 7}, int64(-2)},
		{"42", nil, nil, 42},
	}
	for _, test := range tests {
		fn, err := c.Compile(test.src, test.params)
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		got, err := fn.Call(test.args...)
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
		} else if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("%q: expected %#v, got %#v", test.src, test.exp, got)
		}
	}

	if _, err := c.Compile("it +", []string{"it"}); err == nil {
		t.Fatal("expected compile error")
	}
	fn, err := c.Compile("Str(it)[5]", []string{"it"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fn.Call("ab"); err == nil {
		t.Fatal("expected runtime error")
	}
}

func TestSequenceCallbacks(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	seq.SetCompiler(c)

	v, err := seq.Filter.Call([]any{1, 2, 3, 4}, "Int(it)%2 == 0")
	if err != nil {
		t.Fatal(err)
	}
	got, err := seq.Collect(v)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, seq.Array{2, 4}) {
		t.Fatalf("unexpected filter result %v", got)
	}

	v, err = seq.Sum.Call([]any{"a", "bb"}, "len(Str(it))")
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(3) {
		t.Fatalf("expected 3, got %v", v)
	}
}
