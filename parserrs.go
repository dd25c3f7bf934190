package surfexpr

import "strconv"

// OperatorError is an error indicating an operator where a term was expected,
// e.g. the second operator in "x + * z". It implements ParseError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the extraneous operator.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "extraneous operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements ParseError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis or of the end of the
	// input.
	Col int
	// Left is "(" if an open parenthesis was never closed.
	Left string
	// Right is ")" if a close parenthesis had no open parenthesis.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside the argument list of
// a function of two arguments. It implements ParseError.
type SeparatorError struct {
	// Col is the position of the comma.
	Col int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, `invalid occurrence of separator ","`)
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name without an argument list
// or a call with the wrong number of arguments. It implements ParseError.
type CallError struct {
	// Col is the position of the token where the call went wrong.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied, or 0 if the function
	// name was not followed by an open parenthesis.
	Len int
}

func (err *CallError) Error() string {
	if err.Len == 0 {
		return errpos(err.Col, "function "+err.Func+" requires a parenthesized argument list")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating that the input or a
// parenthesized subexpression ended where a term was expected. It implements
// ParseError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string for
	// the end of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where a different one was
// required, including any token left over after a complete expression. It
// implements ParseError.
type TokenError struct {
	// Col is the position of the unexpected token.
	Col int
	// Want describes what the parser required.
	Want string
	// Got is the text of the token found instead.
	Got string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "expected "+err.Want+" but found "+strconv.Quote(err.Got))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the column of the token that
	// caused it.
	Pos() int
}

// ParseError is an InputError caused by a valid sequence of tokens that does
// not form an expression. A *LexError is an InputError but not a ParseError.
type ParseError interface {
	InputError
	parseError()
}

func (*OperatorError) parseError()        {}
func (*BracketError) parseError()         {}
func (*SeparatorError) parseError()       {}
func (*CallError) parseError()            {}
func (*EmptyExpressionError) parseError() {}
func (*TokenError) parseError()           {}

var (
	_ ParseError = (*OperatorError)(nil)
	_ ParseError = (*BracketError)(nil)
	_ ParseError = (*SeparatorError)(nil)
	_ ParseError = (*CallError)(nil)
	_ ParseError = (*EmptyExpressionError)(nil)
	_ ParseError = (*TokenError)(nil)
	_ InputError = (*LexError)(nil)
)
