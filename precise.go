package surfexpr

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context evaluates expressions with arbitrary precision. It is not safe to
// use a Context concurrently; use Clone to get one per goroutine.
type Context struct {
	// stack holds intermediate values. After an evaluation, stack[0] is the
	// result.
	stack []*big.Float
	// nums caches literals parsed at prec by their text.
	nums map[string]*big.Float
	// vars holds x, z, and t in that order. Nil means unbound. The values
	// are never modified, only replaced.
	vars [3]*big.Float
	prec uint
	err  error
}

// ContextOption configures a Context. Options apply in order.
type ContextOption func(*Context)

// SetVar binds a variable. name must be x, z, or t.
func SetVar(name string, val *big.Float) ContextOption {
	return func(ctx *Context) { ctx.Set(name, val) }
}

// Prec sets the precision of calculations in bits. Variables already bound
// are rounded to the new precision.
func Prec(prec uint) ContextOption {
	return func(ctx *Context) {
		if prec == ctx.prec {
			return
		}
		ctx.prec = prec
		ctx.nums = make(map[string]*big.Float)
		for i, v := range ctx.vars {
			if v != nil {
				ctx.vars[i] = new(big.Float).SetPrec(prec).Set(v)
			}
		}
	}
}

// NewContext creates a new evaluation context at 64 bits of precision unless
// an option says otherwise. x and z are bound to zero; t is unbound, so
// evaluating an expression that uses t fails until t is set.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		nums: make(map[string]*big.Float),
		vars: [3]*big.Float{new(big.Float).SetPrec(64), new(big.Float).SetPrec(64), nil},
		prec: 64,
	}
	return ctx.Clone(opts...)
}

// slot returns the index of a variable in vars, or -1.
func slot(name string) int {
	switch name {
	case "x":
		return 0
	case "z":
		return 1
	case "t":
		return 2
	default:
		return -1
	}
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. t is unbound or an argument to a function is outside the function's
// domain, then the result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		// The caller may still hold the previous result.
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("surfexpr: Eval during Eval")
	}
	ctx.err = e.n.evalPrec(ctx)
	if ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result of the last evaluation, or nil if it failed.
// Panics if ctx has not evaluated anything.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("surfexpr: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("surfexpr: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
}

// Err returns the error from the last evaluation with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set binds a variable and returns ctx. Panics if name is not x, z, or t.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	i := slot(name)
	if i < 0 {
		panic("surfexpr: cannot bind " + strconv.Quote(name))
	}
	if len(ctx.stack) > 1 {
		panic("surfexpr: Set on in-use context")
	}
	ctx.vars[i] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable, or nil if it is unbound.
func (ctx *Context) Lookup(name string) *big.Float {
	i := slot(name)
	if i < 0 || ctx.vars[i] == nil {
		return nil
	}
	return new(big.Float).Copy(ctx.vars[i])
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context with options applied. The copy has no
// result.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		vars:  ctx.vars,
		prec:  ctx.prec,
	}
	for k, v := range ctx.nums {
		n.nums[k] = v
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		// The lexer only accepts decimal digits with at most one point.
		panic("surfexpr: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// evalPrec pushes the node's value to the context's stack.
func (n *node) evalPrec(ctx *Context) error {
	if n.arity() == 0 {
		switch n.tok.kind {
		case Int, Float:
			ctx.push().Set(ctx.num(n.tok.text))
			return nil
		case Identifier:
			k := slot(n.tok.ident)
			if k < 0 {
				break
			}
			v := ctx.vars[k]
			if v == nil {
				return &NameError{Name: n.tok.ident}
			}
			ctx.push().Set(v)
			return nil
		}
		return malformed(n.tok, 0, "leaf is not a number or variable")
	}
	// Reserve the result below the arguments, as for a function call.
	r := ctx.push()
	k := len(ctx.stack)
	for _, arg := range n.args {
		if err := arg.evalPrec(ctx); err != nil {
			return err
		}
	}
	invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
	if err := ctx.apply(n, r, invoc); err != nil {
		return err
	}
	ctx.stack = ctx.stack[:k]
	return nil
}

// apply computes the operation of an interior node into r. Table functions
// do not always write their output argument, so r takes whatever they
// return.
func (ctx *Context) apply(n *node, r *big.Float, args []*big.Float) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		switch p.(type) {
		case big.ErrNaN, bigfloat.ErrNaN:
			err = domainError(n, args)
		default:
			panic(p)
		}
	}()
	r.SetPrec(ctx.prec)
	switch {
	case n.arity() == 1 && n.tok.kind == Identifier:
		fn, ok := unaryFuncs[n.tok.ident]
		if !ok {
			break
		}
		if fn.big == nil {
			return ctx.widen(r, fn.f(f64(args[0])), n, args)
		}
		r.Set(fn.big(r, args[0]))
		return nil
	case n.arity() == 2 && n.tok.kind == Operator:
		op, ok := operators[n.tok.c]
		if !ok {
			break
		}
		r.Set(op.big(r, args[0], args[1]))
		return nil
	case n.arity() == 2 && n.tok.kind == Identifier:
		fn, ok := binaryFuncs[n.tok.ident]
		if !ok {
			break
		}
		if fn.big == nil {
			return ctx.widen(r, fn.f(f64(args[0]), f64(args[1])), n, args)
		}
		r.Set(fn.big(r, args[0], args[1]))
		return nil
	}
	return malformed(n.tok, n.arity(), "no operator or function of this arity")
}

// widen sets r to a result computed in float64.
func (ctx *Context) widen(r *big.Float, v float64, n *node, args []*big.Float) error {
	if math.IsNaN(v) {
		return domainError(n, args)
	}
	r.SetFloat64(v)
	return nil
}

func f64(x *big.Float) float64 {
	v, _ := x.Float64()
	return v
}

func domainError(n *node, args []*big.Float) *DomainError {
	err := DomainError{Func: n.tok.text, Args: make([]*big.Float, len(args))}
	for i, x := range args {
		err.Args[i] = new(big.Float).Copy(x)
	}
	return &err
}

// EvalString is a shortcut to parse and evaluate a string expression with
// arbitrary precision.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	a, err := Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// Func is the operator or function name.
	Func string
	// Args are the out-of-domain arguments.
	Args []*big.Float
}

func (err *DomainError) Error() string {
	args := make([]string, len(err.Args))
	for i, x := range err.Args {
		args[i] = x.String()
	}
	if _, ok := operators[firstByte(err.Func)]; ok && len(args) == 2 {
		return args[0] + " " + err.Func + " " + args[1] + " outside domain"
	}
	return err.Func + "(" + strings.Join(args, ", ") + ") outside domain"
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

func firstByte(s string) byte {
	if len(s) != 1 {
		return 0
	}
	return s[0]
}
