package surfexpr_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/surfexpr"
)

func FuzzCompile(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("2+3*4")
	f.Add("2^3^2")
	f.Add("max(x, sin(t))")
	f.Add("(((x")
	f.Add("1Ã—2")
	f.Add("32*x^3/(x^2+z^2) - 14*x")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := surfexpr.Compile(s)
		if err != nil {
			var ie surfexpr.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q gave non-input error %#v", s, err)
			}
			return
		}
		again, err := surfexpr.Compile(e.String())
		if err != nil {
			t.Fatalf("%q formats as %q, which doesn't parse: %v", s, e.String(), err)
		}
		if again.String() != e.String() {
			t.Errorf("%q formats as %q, then as %q", s, e.String(), again.String())
		}
	})
}

func FuzzEval(f *testing.F) {
	f.Add("x*z", 1.0, 2.0, 3.0)
	f.Add("log(x, z) + t", 0.0, 0.0, 0.0)
	f.Add("sqrt(x) - 1/z", -1.0, 0.0, 1.0)
	f.Fuzz(func(t *testing.T, s string, x, z, tt float64) {
		e, err := surfexpr.Compile(s)
		if err != nil {
			return
		}
		if _, err := e.EvalTime(x, z, tt); err != nil {
			t.Errorf("%q at (%g, %g, %g): %v", s, x, z, tt, err)
		}
		_, err = e.Eval(x, z)
		if e.UsesTime() != errors.As(err, new(*surfexpr.NameError)) {
			t.Errorf("%q uses t: %t, but Eval gave %v", s, e.UsesTime(), err)
		}
	})
}
