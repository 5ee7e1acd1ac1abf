// Package evaluator compiles callback expressions such as `it.size > 1024` or
// `lhs - rhs` into seq.Callable values. Importing the package installs it as
// the expression compiler used by package seq.
package evaluator

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"lukechampine.com/oqlseq/ast"
	"lukechampine.com/oqlseq/lexer"
	"lukechampine.com/oqlseq/parser"
	"lukechampine.com/oqlseq/seq"
	"lukechampine.com/oqlseq/token"
)

func init() {
	seq.SetCompiler(Compiler{})
}

// envFn evaluates a compiled expression against the arguments of one call.
type envFn func(frame []any) (any, error)

// Compiler is the seq.Compiler for the expression language.
type Compiler struct{}

// Compile implements seq.Compiler.
func (Compiler) Compile(src string, params []string) (seq.Callable, error) {
	return Compile(src, params...)
}

// Compile parses src and binds the names in params to positional arguments.
func Compile(src string, params ...string) (*Lambda, error) {
	e, err := parser.Parse(lexer.Tokenize(src))
	if err != nil {
		return nil, err
	}
	c := &compiler{slots: make(map[string]int, len(params))}
	for i, p := range params {
		if _, ok := c.slots[p]; !ok {
			c.slots[p] = i
		}
	}
	body, err := c.compile(e)
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: params, Source: src, body: body}, nil
}

// Eval evaluates an expression that takes no parameters.
func Eval(src string) (any, error) {
	l, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return l.Call()
}

// A Lambda is a compiled expression.
type Lambda struct {
	Params []string
	Source string
	body   envFn
}

// Call binds args to the lambda's parameters in order and evaluates it.
// Missing arguments are null; surplus arguments are ignored.
func (l *Lambda) Call(args ...any) (any, error) {
	frame := make([]any, len(l.Params))
	for i := range frame {
		if i < len(args) && args[i] != nil {
			frame[i] = args[i]
		} else {
			frame[i] = seq.Null
		}
	}
	return l.body(frame)
}

func (l *Lambda) String() string { return fmt.Sprintf("<lambda %q>", l.Source) }

type compiler struct {
	slots map[string]int
}

func constFn(v any) envFn {
	return func([]any) (any, error) { return v, nil }
}

func (c *compiler) compile(n ast.Expression) (envFn, error) {
	switch n := n.(type) {
	case ast.Integer:
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, errors.Errorf("invalid integer %v", n.Value)
		}
		return constFn(i), nil

	case ast.Float:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %v", n.Value)
		}
		return constFn(f), nil

	case ast.String:
		return constFn(n.Value), nil

	case ast.Boolean:
		return constFn(n.Value), nil

	case ast.Null:
		return constFn(seq.Null), nil

	case ast.Identifier:
		if slot, ok := c.slots[n.Name]; ok {
			return func(frame []any) (any, error) { return frame[slot], nil }, nil
		}
		if b, ok := lookupBuiltin(n.Name); ok {
			return constFn(b), nil
		}
		return nil, errors.Errorf("undefined: %v", n.Name)

	case ast.Array:
		elems, err := c.compileAll(n.Elements)
		if err != nil {
			return nil, err
		}
		return func(frame []any) (any, error) {
			a := make(seq.Array, len(elems))
			for i, fn := range elems {
				v, err := fn(frame)
				if err != nil {
					return nil, err
				}
				a[i] = v
			}
			return a, nil
		}, nil

	case ast.PrefixOp:
		right, err := c.compile(n.Right)
		if err != nil {
			return nil, err
		}
		op := n.Operator
		return func(frame []any) (any, error) {
			v, err := right(frame)
			if err != nil {
				return nil, err
			}
			return evalPrefixOp(op, v)
		}, nil

	case ast.InfixOp:
		return c.compileInfix(n)

	case ast.Conditional:
		cond, err := c.compile(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.compile(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := c.compile(n.Else)
		if err != nil {
			return nil, err
		}
		return func(frame []any) (any, error) {
			v, err := cond(frame)
			if err != nil {
				return nil, err
			}
			if seq.Truthy(v) {
				return then(frame)
			}
			return els(frame)
		}, nil

	case ast.Member:
		obj, err := c.compile(n.Object)
		if err != nil {
			return nil, err
		}
		name := n.Name
		return func(frame []any) (any, error) {
			v, err := obj(frame)
			if err != nil {
				return nil, err
			}
			return evalMember(v, name)
		}, nil

	case ast.Index:
		obj, err := c.compile(n.Object)
		if err != nil {
			return nil, err
		}
		idx, err := c.compile(n.Index)
		if err != nil {
			return nil, err
		}
		return func(frame []any) (any, error) {
			v, err := obj(frame)
			if err != nil {
				return nil, err
			}
			i, err := idx(frame)
			if err != nil {
				return nil, err
			}
			return evalIndex(v, i)
		}, nil

	case ast.Call:
		fn, err := c.compile(n.Fn)
		if err != nil {
			return nil, err
		}
		args, err := c.compileAll(n.Args)
		if err != nil {
			return nil, err
		}
		name := n.Fn.String()
		return func(frame []any) (any, error) {
			f, err := fn(frame)
			if err != nil {
				return nil, err
			}
			callee, ok := seq.AsCallable(f)
			if !ok {
				return nil, &seq.TypeError{Op: name, Want: "function", Value: f}
			}
			vals := make([]any, len(args))
			for i, a := range args {
				if vals[i], err = a(frame); err != nil {
					return nil, err
				}
			}
			return callee.Call(vals...)
		}, nil

	default:
		return nil, errors.Errorf("couldn't compile %T", n)
	}
}

func (c *compiler) compileAll(es []ast.Expression) ([]envFn, error) {
	fns := make([]envFn, len(es))
	for i, e := range es {
		fn, err := c.compile(e)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	return fns, nil
}

func (c *compiler) compileInfix(n ast.InfixOp) (envFn, error) {
	left, err := c.compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(n.Right)
	if err != nil {
		return nil, err
	}
	op := n.Operator
	switch op {
	case token.And, token.Or:
		return func(frame []any) (any, error) {
			l, err := left(frame)
			if err != nil {
				return nil, err
			}
			if seq.Truthy(l) == (op == token.Or) {
				return op == token.Or, nil
			}
			r, err := right(frame)
			if err != nil {
				return nil, err
			}
			return seq.Truthy(r), nil
		}, nil
	}
	return func(frame []any) (any, error) {
		l, err := left(frame)
		if err != nil {
			return nil, err
		}
		r, err := right(frame)
		if err != nil {
			return nil, err
		}
		return evalInfixOp(op, l, r)
	}, nil
}
