package surfexpr

import (
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// Operators contains the bytes which are binary operators, from most to least
// binding.
const Operators = "^*/+-"

// Delimiters contains the bytes which group expressions and separate function
// arguments.
const Delimiters = "(),"

// Precedence levels. Higher is more binding.
const (
	precSum int8 = 1 + iota
	precProduct
	precPow
)

type operator struct {
	// prec is the precedence level.
	prec int8
	// right indicates right-associativity.
	right bool
	// f computes the operator in float64.
	f func(a, b float64) float64
	// big computes the operator to the precision of out.
	big func(out, a, b *big.Float) *big.Float
}

var operators = map[byte]operator{
	'^': {prec: precPow, right: true, f: math.Pow, big: bigPow},
	'*': {prec: precProduct, f: func(a, b float64) float64 { return a * b }, big: (*big.Float).Mul},
	'/': {prec: precProduct, f: func(a, b float64) float64 { return a / b }, big: (*big.Float).Quo},
	'+': {prec: precSum, f: func(a, b float64) float64 { return a + b }, big: (*big.Float).Add},
	'-': {prec: precSum, f: func(a, b float64) float64 { return a - b }, big: (*big.Float).Sub},
}

// unaryFunc is a function of one real variable.
type unaryFunc struct {
	f func(float64) float64
	// big computes f to the precision of out. If big is nil, the function is
	// computed in float64 and widened.
	big func(out, in *big.Float) *big.Float
}

var unaryFuncs = map[string]unaryFunc{
	"sin":   {f: math.Sin},
	"cos":   {f: math.Cos},
	"tan":   {f: math.Tan},
	"sec":   {f: func(x float64) float64 { return 1 / math.Cos(x) }},
	"csc":   {f: func(x float64) float64 { return 1 / math.Sin(x) }},
	"asin":  {f: math.Asin},
	"acos":  {f: math.Acos},
	"atan":  {f: math.Atan},
	"asec":  {f: func(x float64) float64 { return math.Acos(1 / x) }},
	"exp":   {f: math.Exp, big: bigfloat.Exp},
	"ln":    {f: math.Log, big: bigLog},
	"log10": {f: math.Log10, big: bigLog10},
	"sqrt":  {f: math.Sqrt, big: (*big.Float).Sqrt},
	"abs":   {f: math.Abs, big: (*big.Float).Abs},
}

// binaryFunc is a function of two real variables. Argument order is the order
// written in the expression.
type binaryFunc struct {
	f   func(a, b float64) float64
	big func(out, a, b *big.Float) *big.Float
}

var binaryFuncs = map[string]binaryFunc{
	// log(x, b) is the base b logarithm of x.
	"log":   {f: func(x, b float64) float64 { return math.Log(x) / math.Log(b) }, big: bigLogBase},
	"atan2": {f: math.Atan2},
	"max":   {f: math.Max, big: bigMax},
	"min":   {f: math.Min, big: bigMin},
}

var variables = map[string]bool{"x": true, "z": true, "t": true}

// keywords is the sorted list of every valid identifier.
var keywords = func() []string {
	v := make([]string, 0, len(unaryFuncs)+len(binaryFuncs)+len(variables))
	for k := range unaryFuncs {
		v = append(v, k)
	}
	for k := range binaryFuncs {
		v = append(v, k)
	}
	for k := range variables {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}()

// Keywords returns the sorted list of identifiers that may appear in an
// expression: function names and the variables x, z, and t.
func Keywords() []string {
	return append([]string(nil), keywords...)
}

// IsKeyword returns whether name is a function or variable name.
func IsKeyword(name string) bool {
	return IsUnary(name) || IsBinary(name) || IsVariable(name)
}

// IsUnary returns whether name is a function of one argument.
func IsUnary(name string) bool {
	_, ok := unaryFuncs[name]
	return ok
}

// IsBinary returns whether name is a function of two arguments.
func IsBinary(name string) bool {
	_, ok := binaryFuncs[name]
	return ok
}

// IsVariable returns whether name is one of x, z, or t.
func IsVariable(name string) bool {
	return variables[name]
}

// bigPow computes a^b. bigfloat.Pow requires a non-negative base, so negative
// bases go through float64, where integer exponents are still meaningful.
func bigPow(out, a, b *big.Float) *big.Float {
	if a.Signbit() {
		x, _ := a.Float64()
		y, _ := b.Float64()
		r := math.Pow(x, y)
		if math.IsNaN(r) {
			panic(big.ErrNaN{})
		}
		return out.SetFloat64(r)
	}
	return out.Set(bigfloat.Pow(out, a, b))
}

// bigLog is the natural logarithm. The log of zero of either sign is -Inf, as
// with math.Log. Negative arguments panic with big.ErrNaN.
func bigLog(out, in *big.Float) *big.Float {
	switch in.Sign() {
	case 0:
		return out.SetInf(true)
	case -1:
		panic(big.ErrNaN{})
	}
	return out.Set(bigfloat.Log(out, in))
}

func bigLog10(out, in *big.Float) *big.Float {
	ten := bigLog(new(big.Float).SetPrec(out.Prec()), big.NewFloat(10))
	return out.Quo(bigLog(out, in), ten)
}

func bigLogBase(out, x, b *big.Float) *big.Float {
	d := bigLog(new(big.Float).SetPrec(out.Prec()), b)
	return out.Quo(bigLog(out, x), d)
}

func bigMax(out, a, b *big.Float) *big.Float {
	if a.Cmp(b) >= 0 {
		return out.Set(a)
	}
	return out.Set(b)
}

func bigMin(out, a, b *big.Float) *big.Float {
	if a.Cmp(b) <= 0 {
		return out.Set(a)
	}
	return out.Set(b)
}
