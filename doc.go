// Package surfexpr compiles arithmetic expressions over the variables x, z,
// and t into trees that can be evaluated many times.
//
// The syntax is the usual infix notation: "32*x^3/(x^2+z^2) - 14*x". The
// operators are ^, *, /, +, and -, with ^ binding tightest and grouping to
// the right, so "2^3^2" is "2^(3^2)". Functions always take parenthesized
// arguments, e.g. "sin(x)" or "atan2(z, x)". There is no unary minus.
//
// An expression is compiled once and then evaluated at any number of points.
// Eval binds only x and z; EvalTime also binds t. An Expr is immutable, so it
// is safe to evaluate from many goroutines at once. A Context evaluates the
// same trees with arbitrary precision instead of float64.
//
package surfexpr
