package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"lukechampine.com/oqlseq/ast"
	"lukechampine.com/oqlseq/evaluator"
	"lukechampine.com/oqlseq/lexer"
	"lukechampine.com/oqlseq/parser"
	"lukechampine.com/oqlseq/seq"
)

// A printer writes evaluation results, and errors, to an output stream.
type printer struct {
	w      io.Writer
	errCol *color.Color
}

func newPrinter(w io.Writer, colored bool) *printer {
	p := &printer{w: w}
	if colored {
		p.errCol = color.New(color.FgRed)
	}
	return p
}

func (p *printer) value(v any) error {
	s, err := display(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.w, s)
	return nil
}

func (p *printer) fail(err error) {
	if p.errCol != nil {
		p.errCol.Fprintln(p.w, "error:", err)
	} else {
		fmt.Fprintln(p.w, "error:", err)
	}
}

// eval evaluates one line and prints its result. It reports whether the line
// succeeded. Lines of the form ":ast EXPR" print the syntax tree of EXPR.
func (p *printer) eval(line string) bool {
	if src, ok := strings.CutPrefix(line, ":ast "); ok {
		e, err := parser.Parse(lexer.Tokenize(src))
		if err != nil {
			p.fail(err)
			return false
		}
		fmt.Fprint(p.w, ast.Print(e))
		return true
	}
	start := time.Now()
	v, err := evaluator.Eval(line)
	if err == nil {
		// sequences are lazy, so failures may only surface while printing
		err = p.value(v)
	}
	slog.Debug("evaluated", "expr", line, "elapsed", time.Since(start))
	if err != nil {
		p.fail(err)
		return false
	}
	return true
}

// runScript evaluates each line of r. Blank lines and lines starting with #
// are skipped. Evaluation continues past failing lines.
func runScript(r io.Reader, p *printer) error {
	var failed int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !p.eval(line) {
			failed++
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "reading script")
	}
	if failed > 0 {
		return errors.Errorf("%v expression(s) failed", failed)
	}
	return nil
}

func runREPL(cfg Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       cfg.Prompt,
		HistoryFile:  cfg.HistoryFile,
		AutoComplete: completer{},
	})
	if err != nil {
		return errors.Wrap(err, "starting prompt")
	}
	defer rl.Close()
	p := newPrinter(rl.Stdout(), true)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line != "" {
			p.eval(line)
		}
	}
}

// completer completes the identifier under the cursor against the builtin
// function names.
type completer struct{}

func (completer) Do(line []rune, pos int) (completions [][]rune, length int) {
	start := pos
	for start > 0 && isIdentRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	for _, b := range evaluator.Builtins() {
		if strings.HasPrefix(b, prefix) {
			completions = append(completions, []rune(strings.TrimPrefix(b, prefix)+"("))
		}
	}
	sort.Slice(completions, func(i, j int) bool {
		return string(completions[i]) < string(completions[j])
	})
	return completions, len(prefix)
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// display renders v for output, draining any sequences it contains.
func display(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case seq.Callable:
		return fmt.Sprint(v), nil
	}
	if seq.IsNull(v) {
		return "null", nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), nil
	}
	if it, err := seq.IntoIndexed(v); err == nil {
		var elems []string
		for it.HasNext() {
			s, err := display(it.Next().Value)
			if err != nil {
				return "", err
			}
			elems = append(elems, s)
		}
		if err := it.Err(); err != nil {
			return "", err
		}
		return "[" + strings.Join(elems, ", ") + "]", nil
	}
	return pretty.Sprintf("%# v", v), nil
}
