// Package ast ...
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/oqlseq/token"
)

type Node interface {
	fmt.Stringer
	isNode()
}

type Expression interface {
	Node
}

type Identifier struct {
	Token token.Token // the IDENT token
	Name  string
}

func (i Identifier) isNode()        {}
func (i Identifier) String() string { return i.Name }

// e.g. 123
type Integer struct {
	Token token.Token
	Value string
}

func (i Integer) isNode()        {}
func (i Integer) String() string { return i.Value }

// e.g. 1.5
type Float struct {
	Token token.Token
	Value string
}

func (f Float) isNode()        {}
func (f Float) String() string { return f.Value }

// e.g. "123"
type String struct {
	Token token.Token
	Value string
}

func (s String) isNode()        {}
func (s String) String() string { return strconv.Quote(s.Value) }

type Boolean struct {
	Token token.Token
	Value bool
}

func (b Boolean) isNode()        {}
func (b Boolean) String() string { return strconv.FormatBool(b.Value) }

type Null struct {
	Token token.Token
}

func (Null) isNode()        {}
func (Null) String() string { return "null" }

// e.g. [1, 2, 3]
type Array struct {
	Token    token.Token
	Elements []Expression
}

func (a Array) isNode() {}
func (a Array) String() string {
	strs := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		strs[i] = e.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// e.g. -x
type PrefixOp struct {
	Token    token.Token
	Operator token.Kind
	Right    Expression
}

func (p PrefixOp) isNode()        {}
func (p PrefixOp) String() string { return "(" + p.Token.Lit + p.Right.String() + ")" }

// e.g. x + y
type InfixOp struct {
	Token    token.Token
	Operator token.Kind
	Left     Expression
	Right    Expression
}

func (i InfixOp) isNode() {}
func (i InfixOp) String() string {
	return "(" + i.Left.String() + " " + i.Token.Lit + " " + i.Right.String() + ")"
}

// e.g. x ? y : z
type Conditional struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (c Conditional) isNode() {}
func (c Conditional) String() string {
	return "(" + c.Cond.String() + " ? " + c.Then.String() + " : " + c.Else.String() + ")"
}

// e.g. it.name
type Member struct {
	Token  token.Token
	Object Expression
	Name   string
}

func (m Member) isNode()        {}
func (m Member) String() string { return m.Object.String() + "." + m.Name }

// e.g. array[0]
type Index struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (i Index) isNode()        {}
func (i Index) String() string { return i.Object.String() + "[" + i.Index.String() + "]" }

// e.g. sum(it.refs)
type Call struct {
	Token token.Token
	Fn    Expression
	Args  []Expression
}

func (c Call) isNode() {}
func (c Call) String() string {
	strs := make([]string, len(c.Args))
	for i, a := range c.Args {
		strs[i] = a.String()
	}
	return c.Fn.String() + "(" + strings.Join(strs, ", ") + ")"
}

func Print(n Node) string {
	var b strings.Builder
	recPrint(&b, 0, n)
	return b.String()
}

func recPrint(b *strings.Builder, indent int, n Node) {
	writeLine := func(s string) {
		for i := 0; i < indent; i++ {
			b.WriteString("  ")
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	switch n := n.(type) {
	case Integer:
		writeLine("INTEGER: " + n.String())
	case Float:
		writeLine("FLOAT: " + n.String())
	case String:
		writeLine("STRING: " + n.String())
	case Boolean:
		writeLine("BOOLEAN: " + n.String())
	case Null:
		writeLine("NULL")
	case Identifier:
		writeLine("IDENTIFIER: " + n.String())
	case Array:
		writeLine("ARRAY:")
		for _, e := range n.Elements {
			recPrint(b, indent+1, e)
		}
	case PrefixOp:
		writeLine("PREFIX: " + n.Token.Lit)
		recPrint(b, indent+1, n.Right)
	case InfixOp:
		writeLine("INFIX: " + n.Token.Lit)
		recPrint(b, indent+1, n.Left)
		recPrint(b, indent+1, n.Right)
	case Conditional:
		writeLine("CONDITIONAL:")
		recPrint(b, indent+1, n.Cond)
		recPrint(b, indent+1, n.Then)
		recPrint(b, indent+1, n.Else)
	case Member:
		writeLine("MEMBER: " + n.Name)
		recPrint(b, indent+1, n.Object)
	case Index:
		writeLine("INDEX:")
		recPrint(b, indent+1, n.Object)
		recPrint(b, indent+1, n.Index)
	case Call:
		writeLine("CALL:")
		recPrint(b, indent+1, n.Fn)
		for _, a := range n.Args {
			recPrint(b, indent+2, a)
		}
	default:
		panic("unknown node type")
	}
}
