package surfexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the lexical category of a token.
type Kind int8

const (
	// Operator is one of ^ * / + -.
	Operator Kind = iota
	// Int is an integer literal.
	Int
	// Float is a literal with a decimal point.
	Float
	// Delimiter is one of ( ) ,.
	Delimiter
	// Identifier is a function or variable name.
	Identifier
)

func (k Kind) String() string {
	switch k {
	case Operator:
		return "Operator"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Delimiter:
		return "Delimiter"
	case Identifier:
		return "Identifier"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexeme classified by kind. The payload available from a token is
// determined by its kind; the constructors refuse any other combination.
type Token struct {
	kind Kind
	// col is the 1-based rune column at which the token starts, or 0 for
	// tokens created outside the lexer.
	col  int
	text string

	// Exactly one of these is meaningful, selected by kind. c holds the
	// operator or delimiter byte.
	c     byte
	i     int64
	f     float64
	ident string
}

// NewOperator creates an operator token. c must be in Operators.
func NewOperator(c byte) (Token, error) {
	if _, ok := operators[c]; !ok {
		return Token{}, fmt.Errorf("token of kind Operator may not hold %q", c)
	}
	return Token{kind: Operator, text: string(c), c: c}, nil
}

// NewDelimiter creates a delimiter token. c must be in Delimiters.
func NewDelimiter(c byte) (Token, error) {
	if strings.IndexByte(Delimiters, c) < 0 {
		return Token{}, fmt.Errorf("token of kind Delimiter may not hold %q", c)
	}
	return Token{kind: Delimiter, text: string(c), c: c}, nil
}

// NewInt creates an integer literal token.
func NewInt(v int64) Token {
	return Token{kind: Int, text: strconv.FormatInt(v, 10), i: v}
}

// NewFloat creates a float literal token.
func NewFloat(v float64) Token {
	return Token{kind: Float, text: strconv.FormatFloat(v, 'f', -1, 64), f: v}
}

// NewIdentifier creates an identifier token. name must be a keyword.
func NewIdentifier(name string) (Token, error) {
	if !IsKeyword(name) {
		return Token{}, fmt.Errorf("token of kind Identifier may not hold %q", name)
	}
	return Token{kind: Identifier, text: name, ident: name}, nil
}

// at returns a copy of tok with its source position and lexeme set.
func (tok Token) at(col int, text string) Token {
	tok.col = col
	tok.text = text
	return tok
}

// Kind returns the token's kind.
func (tok Token) Kind() Kind {
	return tok.kind
}

// Pos returns the 1-based column of the start of the token in its source, or
// 0 if the token was not produced by Tokenize.
func (tok Token) Pos() int {
	return tok.col
}

// Text returns the lexeme as it appeared in the source.
func (tok Token) Text() string {
	return tok.text
}

// Op returns the operator byte of an Operator token.
func (tok Token) Op() (byte, bool) {
	return tok.c, tok.kind == Operator
}

// Delim returns the delimiter byte of a Delimiter token.
func (tok Token) Delim() (byte, bool) {
	return tok.c, tok.kind == Delimiter
}

// Int returns the value of an Int token.
func (tok Token) Int() (int64, bool) {
	return tok.i, tok.kind == Int
}

// Float returns the value of a Float token.
func (tok Token) Float() (float64, bool) {
	return tok.f, tok.kind == Float
}

// Ident returns the name of an Identifier token.
func (tok Token) Ident() (string, bool) {
	return tok.ident, tok.kind == Identifier
}

// is reports whether tok is the operator or delimiter c.
func (tok Token) is(c byte) bool {
	return (tok.kind == Operator || tok.kind == Delimiter) && tok.c == c
}

func (tok Token) String() string {
	var v string
	switch tok.kind {
	case Operator, Delimiter:
		v = string(tok.c)
	case Int:
		v = strconv.FormatInt(tok.i, 10)
	case Float:
		v = strconv.FormatFloat(tok.f, 'g', -1, 64)
	case Identifier:
		v = tok.ident
	default:
		v = "?"
	}
	return tok.kind.String() + ":" + v + "@" + strconv.Itoa(tok.col)
}
