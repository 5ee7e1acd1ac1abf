// Package token ...
package token

import "strconv"

type Kind uint8

const (
	Illegal Kind = iota
	EOF
	Ident
	Int
	Float
	String
	True
	False
	Null
	Equals
	NotEquals
	Less
	Greater
	LessEquals
	GreaterEquals
	And
	Or
	Bang
	Comma
	Dot
	Question
	Colon
	Plus
	Minus
	Star
	Slash
	Mod
	Lbracket
	Rbracket
	Lparen
	Rparen
)

func (k Kind) String() string {
	return [...]string{
		Illegal:       "Illegal",
		EOF:           "EOF",
		Ident:         "Ident",
		Int:           "Int",
		Float:         "Float",
		String:        "String",
		True:          "True",
		False:         "False",
		Null:          "Null",
		Equals:        "Equals",
		NotEquals:     "NotEquals",
		Less:          "Less",
		Greater:       "Greater",
		LessEquals:    "LessEquals",
		GreaterEquals: "GreaterEquals",
		And:           "And",
		Or:            "Or",
		Bang:          "Bang",
		Comma:         "Comma",
		Dot:           "Dot",
		Question:      "Question",
		Colon:         "Colon",
		Plus:          "Plus",
		Minus:         "Minus",
		Star:          "Star",
		Slash:         "Slash",
		Mod:           "Mod",
		Lbracket:      "Lbracket",
		Rbracket:      "Rbracket",
		Lparen:        "Lparen",
		Rparen:        "Rparen",
	}[k]
}

var keywords = map[string]Kind{
	"true":  True,
	"false": False,
	"null":  Null,
}

// LookupIdent returns the keyword kind for ident, or Ident.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

type Token struct {
	Kind Kind
	Lit  string
	Pos  int // byte offset in the source
}

func (t Token) String() string { return t.Kind.String() + " " + strconv.Quote(t.Lit) }
