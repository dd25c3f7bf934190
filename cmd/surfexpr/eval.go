package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/midbel/cli"

	"github.com/zephyrtronium/surfexpr"
)

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"calc"},
	Summary: "evaluate an expression at one point",
	Handler: &EvalCmd{},
}

type EvalCmd struct {
	X, Z float64
	// T is nil unless -t is given.
	T    *float64
	Prec uint
}

func (c *EvalCmd) Run(args []string) error {
	set := flag.NewFlagSet("eval", flag.ContinueOnError)
	set.Float64Var(&c.X, "x", 0, "value of x")
	set.Float64Var(&c.Z, "z", 0, "value of z")
	set.Func("t", "value of t (default unbound)", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		c.T = &v
		return nil
	})
	set.UintVar(&c.Prec, "p", 0, "evaluate with this many bits of precision instead of float64")
	if err := set.Parse(args); err != nil {
		return err
	}
	src, err := expression(set.Args())
	if err != nil {
		return err
	}
	e, err := surfexpr.Compile(src)
	if err != nil {
		return explain(src, err)
	}
	if c.Prec > 0 {
		return c.precise(e)
	}
	var v float64
	if c.T != nil {
		v, err = e.EvalTime(c.X, c.Z, *c.T)
	} else {
		v, err = e.Eval(c.X, c.Z)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, v)
	return nil
}

func (c *EvalCmd) precise(e *surfexpr.Expr) error {
	opts := []surfexpr.ContextOption{
		surfexpr.Prec(c.Prec),
		surfexpr.SetVar("x", big.NewFloat(c.X)),
		surfexpr.SetVar("z", big.NewFloat(c.Z)),
	}
	if c.T != nil {
		opts = append(opts, surfexpr.SetVar("t", big.NewFloat(*c.T)))
	}
	ctx := surfexpr.NewContext(opts...)
	r := ctx.Eval(e)
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Debug().Uint("prec", r.Prec()).Str("expr", e.String()).Msg("evaluated")
	fmt.Fprintln(os.Stdout, r.Text('g', -1))
	return nil
}
