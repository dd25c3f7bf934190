package surfexpr

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Its arity is
// the number of children:
//
//	0: tok is a number or a variable
//	1: tok names a function of one argument
//	2: tok is an operator or names a function of two arguments
//
// Nodes are created only through leaf, unary, and binary, and never change
// afterward.
type node struct {
	tok  Token
	args []*node
}

func (n *node) arity() int {
	return len(n.args)
}

func leaf(tok Token) (*node, error) {
	switch tok.kind {
	case Int, Float: // do nothing
	case Identifier:
		if !IsVariable(tok.ident) {
			return nil, malformed(tok, 0, "leaf identifier is not a variable")
		}
	default:
		return nil, malformed(tok, 0, "leaf must be a number or variable")
	}
	return &node{tok: tok}, nil
}

func unary(tok Token, arg *node) (*node, error) {
	if tok.kind != Identifier || !IsUnary(tok.ident) {
		return nil, malformed(tok, 1, "root is not a function of one argument")
	}
	if arg == nil {
		return nil, malformed(tok, 1, "missing argument")
	}
	return &node{tok: tok, args: []*node{arg}}, nil
}

func binary(tok Token, lhs, rhs *node) (*node, error) {
	switch tok.kind {
	case Operator: // do nothing
	case Identifier:
		if !IsBinary(tok.ident) {
			return nil, malformed(tok, 2, "root is not a function of two arguments")
		}
	default:
		return nil, malformed(tok, 2, "root must be an operator or function")
	}
	if lhs == nil || rhs == nil {
		return nil, malformed(tok, 2, "missing operand")
	}
	return &node{tok: tok, args: []*node{lhs, rhs}}, nil
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the subtree fully parenthesized, so that the result parses back
// to the same tree.
func (n *node) fmt(b *strings.Builder) {
	switch n.arity() {
	case 0:
		b.WriteString(n.tok.text)
	case 1:
		b.WriteString(n.tok.ident)
		b.WriteByte('(')
		n.args[0].fmt(b)
		b.WriteByte(')')
	case 2:
		if n.tok.kind == Operator {
			b.WriteByte('(')
			n.args[0].fmt(b)
			b.WriteByte(' ')
			b.WriteByte(n.tok.c)
			b.WriteByte(' ')
			n.args[1].fmt(b)
			b.WriteByte(')')
			return
		}
		b.WriteString(n.tok.ident)
		b.WriteByte('(')
		n.args[0].fmt(b)
		b.WriteString(", ")
		n.args[1].fmt(b)
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		b.WriteString(n.tok.text)
		for _, arg := range n.args {
			b.WriteByte('#')
			arg.fmt(b)
		}
		b.WriteByte('$')
	}
}

// vars adds the names of variables in the subtree to names.
func (n *node) vars(names map[string]bool) {
	if n.arity() == 0 {
		if v, ok := n.tok.Ident(); ok {
			names[v] = true
		}
		return
	}
	for _, arg := range n.args {
		arg.vars(names)
	}
}

// InternalError indicates a malformed expression tree. It is the result of a
// bug in this package rather than invalid input, so it never implements
// InputError.
type InternalError struct {
	// Token is the root token of the malformed node.
	Token Token
	// Arity is the number of children the node has or would have had.
	Arity int
	// Reason describes the violated constraint.
	Reason string
}

func malformed(tok Token, arity int, reason string) *InternalError {
	return &InternalError{Token: tok, Arity: arity, Reason: reason}
}

func (err *InternalError) Error() string {
	return "surfexpr: malformed tree: " + err.Reason + " (" + err.Token.String() + ", arity " + strconv.Itoa(err.Arity) + ")"
}
