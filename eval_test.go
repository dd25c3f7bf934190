package surfexpr_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/zephyrtronium/surfexpr"
)

func closeTo(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestEval(t *testing.T) {
	cases := []struct {
		src  string
		x, z float64
		want float64
	}{
		{"2+3*4", 0, 0, 14},
		{"(2+3)*4", 0, 0, 20},
		{"2^3^2", 0, 0, 512},
		{"10-3-2", 0, 0, 5},
		{"16/4/2", 0, 0, 2},
		{"x*z", 3, 4, 12},
		{"x^2+z^2", 3, 4, 25},
		{"sqrt(x^2+z^2)", 3, 4, 5},
		{"1/0", 0, 0, math.Inf(1)},
		{"0.5*x", 7, 0, 3.5},
		{"32*x^3/(x^2+z^2) - 14*x", 1, 1, 32.0/2 - 14},
		{"max(x, z)", 2, 5, 5},
		{"min(x, z)", 2, 5, 2},
		{"abs(x-z)", 2, 5, 3},
		{"log(8, 2)", 0, 0, 3},
		{"log10(1000)", 0, 0, 3},
		{"ln(exp(x))", 2, 0, 2},
		{"sin(x)^2+cos(x)^2", 0.7, 0, 1},
		{"tan(x)", 1, 0, math.Tan(1)},
		{"sec(x)", 1, 0, 1 / math.Cos(1)},
		{"csc(x)", 1, 0, 1 / math.Sin(1)},
		{"asin(x)", 0.5, 0, math.Asin(0.5)},
		{"acos(x)", 0.5, 0, math.Acos(0.5)},
		{"atan(x)", 2, 0, math.Atan(2)},
		{"asec(x)", 2, 0, math.Acos(0.5)},
		{"atan2(x, z)", 1, 2, math.Atan2(1, 2)},
		{"log(x, z)", 9, 3, 2},
		{"sqrt(0-1)", 0, 0, math.NaN()},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := surfexpr.Compile(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			got, err := e.Eval(c.x, c.z)
			if err != nil {
				t.Fatalf("%q at (%g, %g): unexpected error %v", c.src, c.x, c.z, err)
			}
			if !closeTo(got, c.want) {
				t.Errorf("%q at (%g, %g): want %g, got %g", c.src, c.x, c.z, c.want, got)
			}
		})
	}
}

func TestEvalTime(t *testing.T) {
	e := surfexpr.MustCompile("x + z*t")
	got, err := e.EvalTime(1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("want 7, got %g", got)
	}

	got, err = e.Eval(1, 2)
	var nerr *surfexpr.NameError
	if !errors.As(err, &nerr) {
		t.Fatalf("Eval with t: want *NameError, got %#v", err)
	}
	if nerr.Name != "t" {
		t.Errorf("want missing name t, got %q", nerr.Name)
	}
	if err.Error() != `parameter "t" not found` {
		t.Errorf("wrong message %q", err.Error())
	}
	if !math.IsNaN(got) {
		t.Errorf("want NaN with error, got %g", got)
	}

	// Expressions without t evaluate the same either way.
	f := surfexpr.MustCompile("x*z")
	a, err := f.Eval(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.EvalTime(3, 4, 100)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Eval %g and EvalTime %g disagree", a, b)
	}
}

func TestEvalNameErrorInsideCall(t *testing.T) {
	e := surfexpr.MustCompile("max(x, sin(t))")
	if _, err := e.Eval(0, 0); !errors.As(err, new(*surfexpr.NameError)) {
		t.Errorf("want *NameError, got %#v", err)
	}
	var ie surfexpr.InputError
	if _, err := e.Eval(0, 0); errors.As(err, &ie) {
		t.Errorf("evaluation error %#v is an InputError", err)
	}
}

func TestEvalDeterministic(t *testing.T) {
	e := surfexpr.MustCompile("sin(x*z) + exp(0-x^2) * cos(z)")
	want, err := e.Eval(0.3, 1.7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got, err := e.Eval(0.3, 1.7)
		if err != nil {
			t.Fatal(err)
		}
		if math.Float64bits(got) != math.Float64bits(want) {
			t.Fatalf("evaluation %d gave %g, first gave %g", i, got, want)
		}
	}
}

func TestEvalConcurrent(t *testing.T) {
	e := surfexpr.MustCompile("x^2 - z^2 + t")
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				x, z, tt := float64(i), float64(g), float64(i+g)
				got, err := e.EvalTime(x, z, tt)
				if err != nil {
					errs <- err
					return
				}
				if want := x*x - z*z + tt; got != want {
					errs <- fmt.Errorf("goroutine %d at %d: want %g, got %g", g, i, want, got)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkEval(b *testing.B) {
	e := surfexpr.MustCompile("32*x^3/(x^2+z^2) - 14*x")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Eval(float64(i%20), 3)
	}
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		surfexpr.Compile("sin(x)*cos(z) + max(x, z)^2/(1+t)")
	}
}

func ExampleExpr_Eval() {
	e, err := surfexpr.Compile("x^2 + z^2")
	if err != nil {
		panic(err)
	}
	v, err := e.Eval(3, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: 25
}

func ExampleExpr_EvalTime() {
	e := surfexpr.MustCompile("sin(t)*x + z")
	v, _ := e.EvalTime(2, 1, 0)
	fmt.Println(v)
	_, err := e.Eval(2, 1)
	fmt.Println(err)
	// Output:
	// 1
	// parameter "t" not found
}

func ExampleExpr_String() {
	e := surfexpr.MustCompile("2+3*4^x^z")
	fmt.Println(e)
	// Output: (2 + (3 * (4 ^ (x ^ z))))
}
