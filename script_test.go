package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/peter-evans/patience"
)

func TestScripts(t *testing.T) {
	tests := []struct {
		name    string
		prog    string
		exp     string
		wantErr bool
	}{
		{
			name: "sums",
			prog: `
sum(range(5))
sum([1, 2.5])
# the callback produces a mix of integers and floats
sum(range(4), "it / 2")
sum([])
`,
			exp: `
10
3.5
3
0
`,
		},
		{
			name: "filtering",
			prog: `
count(range(10), "it % 3 == 0")
toArray(filter(range(10), "it % 2 == 0"))
filter(enumerate("a", "bb", "ccc"), "it.length > 1")
contains(concat([1, 2], range(3)), "it == 2")
contains([1, 2], "it > 5")
`,
			exp: `
4
[0, 2, 4, 6, 8]
["bb", "ccc"]
true
false
`,
		},
		{
			name: "ordering",
			prog: `
max([3, 9, 2])
min(enumerate(4, 2, 8))
max([])
max(["a", "bb", "c"], "lhs.length > rhs.length")
sort([3, 1, 2])
sort(["b", "a", "c"], "lhs < rhs ? -1 : lhs > rhs ? 1 : 0")
`,
			exp: `
9
2
null
"bb"
[1, 2, 3]
["a", "b", "c"]
`,
		},
		{
			name: "shapes",
			prog: `
map([1, 2, 3], "it * it")
unique([1, 2, 1, 3, 2])
concat([1, 2], range(3, 5))
length(concat(range(3), enumerate(7, 8)))
count(enumerate(1, 2, 3))
map(range(3), "index + 10")
`,
			exp: `
[1, 4, 9]
[1, 2, 3]
[1, 2, 3, 4]
5
3
[10, 11, 12]
`,
		},
		{
			name: "syntax trees",
			prog: `
:ast 1 + f(x)
:ast -a.b ? [1] : null
`,
			exp: `
INFIX: +
  INTEGER: 1
  CALL:
    IDENTIFIER: f
      IDENTIFIER: x
CONDITIONAL:
  PREFIX: -
    MEMBER: b
      IDENTIFIER: a
  ARRAY:
    INTEGER: 1
  NULL
`,
		},
		{
			name: "errors",
			prog: `
sum("abc")
length(1, 2)
sum(["a"])
1 + 1
`,
			exp: `
error: iterate: expected array, iterator or enumeration, got string
error: length: expected 1 arguments, got 2
error: sum: expected number, got string
2
`,
			wantErr: true,
		},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		start := time.Now()
		err := runScript(strings.NewReader(test.prog), newPrinter(&buf, false))
		elapsed := time.Since(start)
		if (err != nil) != test.wantErr {
			t.Errorf("%v: unexpected error state: %v", test.name, err)
		}
		exp := strings.Split(strings.TrimSpace(test.exp), "\n")
		got := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if strings.Join(exp, "\n") != strings.Join(got, "\n") {
			t.Errorf("output did not match for %v:\n%v", test.name, patience.UnifiedDiffText(patience.Diff(exp, got)))
			continue
		}
		elapsedStr := elapsed.String()
		switch {
		case elapsed < 10*time.Millisecond:
			elapsedStr = color.GreenString(elapsedStr)
		case elapsed < 100*time.Millisecond:
			elapsedStr = color.YellowString(elapsedStr)
		default:
			elapsedStr = color.RedString(elapsedStr)
		}
		t.Logf("%v PASS (%v)", test.name, elapsedStr)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		v   any
		exp string
	}{
		{nil, "null"},
		{int64(3), "3"},
		{uint8(7), "7"},
		{2.5, "2.5"},
		{"hi", `"hi"`},
		{true, "true"},
		{[]any{1, "a", []int{2, 3}}, `[1, "a", [2, 3]]`},
	}
	for _, test := range tests {
		got, err := display(test.v)
		if err != nil {
			t.Errorf("display(%#v): %v", test.v, err)
		} else if got != test.exp {
			t.Errorf("display(%#v): expected %q, got %q", test.v, test.exp, got)
		}
	}
	if got, _ := display(map[string]int{"a": 1}); !strings.HasPrefix(got, "map[string]int{") {
		t.Errorf("expected a Go-syntax map, got %q", got)
	}
}

func TestCompleter(t *testing.T) {
	completions, length := completer{}.Do([]rune("sum(to"), 6)
	if length != 2 {
		t.Fatalf("expected completion length 2, got %v", length)
	}
	if len(completions) != 1 || string(completions[0]) != "Array(" {
		t.Fatalf("unexpected completions %q", completions)
	}
	if completions, _ := (completer{}).Do([]rune("sum("), 4); completions != nil {
		t.Fatalf("expected no completions after a paren, got %q", completions)
	}
}

func TestLoadConfig(t *testing.T) {
	path := t.TempDir() + "/config.toml"
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected an error for a missing explicit config")
	}
	if err := os.WriteFile(path, []byte("prompt = \"> \"\nlang = \"go\"\ncolor = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "> " || cfg.Lang != "go" || cfg.Color {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
