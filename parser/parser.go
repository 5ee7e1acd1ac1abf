// Package parser ...
package parser

import (
	"fmt"

	"lukechampine.com/oqlseq/ast"
	"lukechampine.com/oqlseq/token"
)

const (
	precLowest  = iota
	precTernary // ? :
	precOr      // ||
	precAnd     // &&
	precEquals  // ==
	precCmp     // > or <
	precPlus    // + or -
	precMul     // *
	precPrefix  // -X or !X
	precCall    // f(x), x.y, x[y]
)

var precedences = map[token.Kind]int{
	token.Question:      precTernary,
	token.Or:            precOr,
	token.And:           precAnd,
	token.Equals:        precEquals,
	token.NotEquals:     precEquals,
	token.Less:          precCmp,
	token.Greater:       precCmp,
	token.LessEquals:    precCmp,
	token.GreaterEquals: precCmp,
	token.Plus:          precPlus,
	token.Minus:         precPlus,
	token.Star:          precMul,
	token.Slash:         precMul,
	token.Mod:           precMul,
	token.Lparen:        precCall,
	token.Lbracket:      precCall,
	token.Dot:           precCall,
}

// An Error describes a syntax error.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("syntax error at offset %v: %v", e.Pos, e.Msg) }

// Parse parses a single expression. The tokens must end with token.EOF, as
// produced by lexer.Tokenize.
func Parse(ts []token.Token) (e ast.Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()
	p := New(ts)
	e = p.parseExpression(precLowest)
	p.advance()
	if !p.curIs(token.EOF) {
		p.errorf("unexpected %v after expression", p.cur())
	}
	return e, nil
}

type Parser struct {
	ts []token.Token

	prefixFns map[token.Kind]func() ast.Expression
	infixFns  map[token.Kind]func(ast.Expression) ast.Expression
}

func New(ts []token.Token) *Parser {
	if len(ts) == 0 || ts[len(ts)-1].Kind != token.EOF {
		ts = append(ts, token.Token{Kind: token.EOF})
	}
	p := &Parser{
		ts: ts,
	}
	p.prefixFns = map[token.Kind]func() ast.Expression{
		token.Ident:    p.parseIdentifier,
		token.Int:      p.parseInteger,
		token.Float:    p.parseFloat,
		token.String:   p.parseString,
		token.True:     p.parseBoolean,
		token.False:    p.parseBoolean,
		token.Null:     p.parseNull,
		token.Bang:     p.parsePrefixOp,
		token.Minus:    p.parsePrefixOp,
		token.Lbracket: p.parseArray,
		token.Lparen:   p.parseParens,
	}
	p.infixFns = map[token.Kind]func(ast.Expression) ast.Expression{
		token.Question: p.parseConditional,
		token.Lparen:   p.parseCall,
		token.Lbracket: p.parseIndex,
		token.Dot:      p.parseMember,
	}
	for _, k := range []token.Kind{
		token.Or, token.And, token.Equals, token.NotEquals,
		token.Less, token.Greater, token.LessEquals, token.GreaterEquals,
		token.Plus, token.Minus, token.Star, token.Slash, token.Mod,
	} {
		p.infixFns[k] = p.parseInfixOp
	}
	return p
}

func (p *Parser) errorf(format string, args ...interface{}) {
	panic(&Error{Pos: p.cur().Pos, Msg: fmt.Sprintf(format, args...)})
}

// the EOF token is never consumed
func (p *Parser) advance() {
	if len(p.ts) > 1 {
		p.ts = p.ts[1:]
	}
}
func (p *Parser) cur() token.Token { return p.ts[0] }
func (p *Parser) peek() token.Token {
	if len(p.ts) < 2 {
		return p.ts[0]
	}
	return p.ts[1]
}

func (p *Parser) curIs(kinds ...token.Kind) bool {
	t := p.cur()
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) peekIs(kinds ...token.Kind) bool {
	t := p.peek()
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// expect advances to the next token, which must be of kind k.
func (p *Parser) expect(k token.Kind) {
	if !p.peekIs(k) {
		p.advance()
		p.errorf("expected %v, got %v", k, p.cur())
	}
	p.advance()
}

func (p *Parser) parseExpression(prec int) ast.Expression {
	t := p.cur()
	pfn, ok := p.prefixFns[t.Kind]
	if !ok {
		if t.Kind == token.EOF {
			p.errorf("unexpected end of expression")
		}
		p.errorf("unexpected %v", t)
	}
	e := pfn()

	for !p.peekIs(token.EOF) && prec < precedences[p.peek().Kind] {
		ifn, ok := p.infixFns[p.peek().Kind]
		if !ok {
			break
		}
		p.advance()
		e = ifn(e)
	}
	return e
}

func (p *Parser) parseIdentifier() ast.Expression {
	t := p.cur()
	return ast.Identifier{Token: t, Name: t.Lit}
}

func (p *Parser) parseInteger() ast.Expression {
	t := p.cur()
	return ast.Integer{Token: t, Value: t.Lit}
}

func (p *Parser) parseFloat() ast.Expression {
	t := p.cur()
	return ast.Float{Token: t, Value: t.Lit}
}

func (p *Parser) parseString() ast.Expression {
	t := p.cur()
	return ast.String{Token: t, Value: t.Lit}
}

func (p *Parser) parseBoolean() ast.Expression {
	t := p.cur()
	return ast.Boolean{Token: t, Value: t.Kind == token.True}
}

func (p *Parser) parseNull() ast.Expression {
	return ast.Null{Token: p.cur()}
}

// parseList parses comma-separated expressions up to the closing token end,
// starting with the opening token as current.
func (p *Parser) parseList(end token.Kind) []ast.Expression {
	var es []ast.Expression
	if p.peekIs(end) {
		p.advance()
		return es
	}
	for {
		p.advance()
		es = append(es, p.parseExpression(precLowest))
		if !p.peekIs(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(end)
	return es
}

func (p *Parser) parseArray() ast.Expression {
	t := p.cur()
	return ast.Array{Token: t, Elements: p.parseList(token.Rbracket)}
}

func (p *Parser) parseParens() ast.Expression {
	p.advance() // advance past (
	e := p.parseExpression(precLowest)
	p.expect(token.Rparen)
	return e
}

func (p *Parser) parsePrefixOp() ast.Expression {
	t := p.cur()
	e := ast.PrefixOp{
		Token:    t,
		Operator: t.Kind,
	}
	p.advance()
	e.Right = p.parseExpression(precPrefix)
	return e
}

func (p *Parser) parseInfixOp(left ast.Expression) ast.Expression {
	t := p.cur()
	e := ast.InfixOp{
		Token:    t,
		Left:     left,
		Operator: t.Kind,
	}
	p.advance()
	e.Right = p.parseExpression(precedences[t.Kind])
	return e
}

func (p *Parser) parseConditional(cond ast.Expression) ast.Expression {
	t := p.cur()
	e := ast.Conditional{Token: t, Cond: cond}
	p.advance()
	e.Then = p.parseExpression(precLowest)
	p.expect(token.Colon)
	p.advance()
	// right-associative: a ? b : c ? d : e
	e.Else = p.parseExpression(precTernary - 1)
	return e
}

func (p *Parser) parseCall(fn ast.Expression) ast.Expression {
	t := p.cur()
	return ast.Call{Token: t, Fn: fn, Args: p.parseList(token.Rparen)}
}

func (p *Parser) parseIndex(obj ast.Expression) ast.Expression {
	t := p.cur()
	p.advance() // advance past [
	e := ast.Index{Token: t, Object: obj, Index: p.parseExpression(precLowest)}
	p.expect(token.Rbracket)
	return e
}

func (p *Parser) parseMember(obj ast.Expression) ast.Expression {
	t := p.cur()
	p.expect(token.Ident)
	return ast.Member{Token: t, Object: obj, Name: p.cur().Lit}
}
