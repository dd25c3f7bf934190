package surfexpr

import (
	"io"
	"sort"
	"strings"
)

// Sum      = Product { ('+' | '-') Product }
// Product  = Exponent { ('*' | '/') Exponent }
// Exponent = Term [ '^' Exponent ]
// Term     = int | float | Variable | Function | '(' Sum ')'
// Variable = 'x' | 'z' | 't'
// Function = unary '(' Sum ')' | binary '(' Sum ',' Sum ')'

// Expr is a parsed expression that can be evaluated at any number of points.
// An Expr never changes after parsing, so it is safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// parser is a cursor over the tokens of an entire input.
type parser struct {
	toks []Token
	i    int
	// end is the column just past the end of the input.
	end int
	// depth is the number of open parentheses.
	depth int
}

// Parse parses an expression so it can be evaluated. The entire input must
// form a single expression. Errors from invalid input implement InputError:
// either a *LexError or a ParseError.
func Parse(src io.RuneScanner) (*Expr, error) {
	toks, end, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks, end: end}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		// Recursive descent stops as soon as the outermost sum is complete,
		// so anything left is an error.
		return nil, itShouldNotHaveEndedThisWay(tok, "end of input")
	}
	names := make(map[string]bool)
	n.vars(names)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sort.Strings(ex.names)
	return &ex, nil
}

// Compile is a shortcut to parse an expression from a string.
func Compile(text string) (*Expr, error) {
	return Parse(strings.NewReader(text))
}

// MustCompile is like Compile but panics if the expression is invalid.
func MustCompile(text string) *Expr {
	e, err := Compile(text)
	if err != nil {
		panic("surfexpr: Compile(" + text + "): " + err.Error())
	}
	return e
}

func (p *parser) peek() (Token, bool) {
	if p.i >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.i], true
}

func (p *parser) advance() Token {
	tok := p.toks[p.i]
	p.i++
	return tok
}

// operator consumes the next token if it is an operator at precedence level
// prec.
func (p *parser) operator(prec int8) (Token, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != Operator || operators[tok.c].prec != prec {
		return Token{}, false
	}
	return p.advance(), true
}

func (p *parser) sum() (*node, error) {
	return p.leftassoc(precSum, p.product)
}

func (p *parser) product() (*node, error) {
	return p.leftassoc(precProduct, p.exponent)
}

// leftassoc parses a chain of left-associative operators at one precedence
// level. Each operand is parsed by sub, and each new operand becomes the right
// child of a new parent whose left child is everything parsed so far.
func (p *parser) leftassoc(prec int8, sub func() (*node, error)) (*node, error) {
	n, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.operator(prec)
		if !ok {
			return n, nil
		}
		rhs, err := sub()
		if err != nil {
			return nil, err
		}
		n, err = binary(tok, n, rhs)
		if err != nil {
			return nil, err
		}
	}
}

// exponent parses a power. The right operand is itself an exponent, making ^
// right-associative: 2^3^2 is 2^(3^2).
func (p *parser) exponent() (*node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	tok, ok := p.operator(precPow)
	if !ok {
		return n, nil
	}
	rhs, err := p.exponent()
	if err != nil {
		return nil, err
	}
	return binary(tok, n, rhs)
}

func (p *parser) term() (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &EmptyExpressionError{Col: p.end}
	}
	switch tok.kind {
	case Int, Float:
		return leaf(p.advance())
	case Identifier:
		if IsVariable(tok.ident) {
			return leaf(p.advance())
		}
		return p.function()
	case Delimiter:
		switch tok.c {
		case '(':
			p.advance()
			p.depth++
			n, err := p.sum()
			if err != nil {
				return nil, err
			}
			if err := p.close(tok); err != nil {
				return nil, err
			}
			p.depth--
			return n, nil
		case ')':
			if p.depth == 0 {
				return nil, &BracketError{Col: tok.col, Right: ")"}
			}
			return nil, &EmptyExpressionError{Col: tok.col, End: ")"}
		default:
			return nil, &SeparatorError{Col: tok.col}
		}
	case Operator:
		return nil, &OperatorError{Col: tok.col, Operator: tok.text}
	default:
		panic("surfexpr: unknown token: " + tok.String())
	}
}

// close consumes the close parenthesis matching open.
func (p *parser) close(open Token) error {
	tok, ok := p.peek()
	if !ok {
		return &BracketError{Col: open.col, Left: "("}
	}
	if !tok.is(')') {
		return itShouldNotHaveEndedThisWay(tok, `")"`)
	}
	p.advance()
	return nil
}

// function parses a call. The argument list is parsed in full before checking
// its length, so that the error can report how many arguments were given.
func (p *parser) function() (*node, error) {
	name := p.advance()
	open, ok := p.peek()
	if !ok {
		return nil, &CallError{Col: p.end, Func: name.ident}
	}
	if !open.is('(') {
		return nil, &CallError{Col: open.col, Func: name.ident}
	}
	p.advance()
	p.depth++
	args := make([]*node, 0, 2)
	for {
		arg, err := p.sum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok, ok := p.peek()
		if !ok {
			return nil, &BracketError{Col: open.col, Left: "("}
		}
		if tok.is(',') {
			p.advance()
			continue
		}
		if tok.is(')') {
			p.advance()
			break
		}
		return nil, &TokenError{Col: tok.col, Want: `"," or ")"`, Got: tok.text}
	}
	p.depth--
	switch {
	case IsUnary(name.ident) && len(args) == 1:
		return unary(name, args[0])
	case IsBinary(name.ident) && len(args) == 2:
		return binary(name, args[0], args[1])
	default:
		return nil, &CallError{Col: name.col, Func: name.ident, Len: len(args)}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. want describes the token that should
// have been there.
func itShouldNotHaveEndedThisWay(tok Token, want string) error {
	switch {
	case tok.is(')'):
		return &BracketError{Col: tok.col, Right: ")"}
	case tok.is(','):
		return &SeparatorError{Col: tok.col}
	default:
		return &TokenError{Col: tok.col, Want: want, Got: tok.text}
	}
}

// Vars returns the variable names used in the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// UsesTime returns whether the expression refers to t, and so can only be
// evaluated with EvalTime.
func (e *Expr) UsesTime() bool {
	for _, v := range e.names {
		if v == "t" {
			return true
		}
	}
	return false
}

// String formats the parsed expression with every operation parenthesized.
// The result parses to an equivalent expression.
func (e *Expr) String() string {
	return e.n.String()
}
