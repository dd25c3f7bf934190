package surfexpr

import (
	"math"
	"strconv"
)

// bindings are the variable values for one evaluation. t is bound only if
// hasT is set.
type bindings struct {
	x, z, t float64
	hasT    bool
}

// Eval evaluates the expression with x and z bound. If the expression refers
// to t, the result is NaN and a *NameError.
func (e *Expr) Eval(x, z float64) (float64, error) {
	return e.n.eval(bindings{x: x, z: z})
}

// EvalTime evaluates the expression with x, z, and t bound.
func (e *Expr) EvalTime(x, z, t float64) (float64, error) {
	return e.n.eval(bindings{x: x, z: z, t: t, hasT: true})
}

// eval computes the value of the subtree. It is a pure function of the tree
// and the bindings.
func (n *node) eval(b bindings) (float64, error) {
	switch n.arity() {
	case 0:
		switch n.tok.kind {
		case Int:
			return float64(n.tok.i), nil
		case Float:
			return n.tok.f, nil
		case Identifier:
			switch n.tok.ident {
			case "x":
				return b.x, nil
			case "z":
				return b.z, nil
			case "t":
				if !b.hasT {
					return math.NaN(), &NameError{Name: "t"}
				}
				return b.t, nil
			}
		}
		return math.NaN(), malformed(n.tok, 0, "leaf is not a number or variable")
	case 1:
		fn, ok := unaryFuncs[n.tok.ident]
		if n.tok.kind != Identifier || !ok {
			return math.NaN(), malformed(n.tok, 1, "no function of one argument")
		}
		v, err := n.args[0].eval(b)
		if err != nil {
			return math.NaN(), err
		}
		return fn.f(v), nil
	case 2:
		var f func(a, b float64) float64
		switch n.tok.kind {
		case Operator:
			f = operators[n.tok.c].f
		case Identifier:
			f = binaryFuncs[n.tok.ident].f
		}
		if f == nil {
			return math.NaN(), malformed(n.tok, 2, "no operator or function of two arguments")
		}
		l, err := n.args[0].eval(b)
		if err != nil {
			return math.NaN(), err
		}
		r, err := n.args[1].eval(b)
		if err != nil {
			return math.NaN(), err
		}
		return f(l, r), nil
	default:
		return math.NaN(), malformed(n.tok, n.arity(), "too many children")
	}
}

// NameError is an error from a reference to a variable that has no value in
// the evaluation, i.e. t in Eval.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "parameter " + strconv.Quote(err.Name) + " not found"
}
