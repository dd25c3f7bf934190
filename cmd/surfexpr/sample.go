package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/midbel/cli"

	"github.com/zephyrtronium/surfexpr/internal/grid"
)

var sampleCmd = cli.Command{
	Name:    "sample",
	Alias:   []string{"grid"},
	Summary: "evaluate an expression over a grid of x and z",
	Handler: &SampleCmd{},
}

type SampleCmd struct {
	Config  string
	Workers int
}

func (c *SampleCmd) Run(args []string) error {
	var t *float64
	set := flag.NewFlagSet("sample", flag.ContinueOnError)
	set.StringVar(&c.Config, "config", "", "yaml file describing the grid")
	set.IntVar(&c.Workers, "workers", -1, "rows to sample concurrently (default from config)")
	set.Func("t", "value of t (default from config)", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		t = &v
		return nil
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg := grid.DefaultConfig()
	if c.Config != "" {
		var err error
		cfg, err = grid.ReadConfig(c.Config)
		if err != nil {
			return err
		}
	}
	if set.NArg() > 0 {
		src, err := expression(set.Args())
		if err != nil {
			return err
		}
		cfg.Expression = src
	}
	if c.Workers >= 0 {
		cfg.Workers = c.Workers
	}
	if t != nil {
		cfg.T = t
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	surface := grid.NewSurface(logger)
	if err := surface.Update(cfg.Expression); err != nil {
		explain(cfg.Expression, err)
		return errFail
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	s := grid.Sampler{Log: logger}
	f, err := s.Sample(ctx, surface.Expr(), cfg)
	if err != nil {
		return errFail
	}
	w := bufio.NewWriter(os.Stdout)
	for i, z := range f.Z {
		for j, x := range f.X {
			fmt.Fprintf(w, "%g %g %g\n", x, z, f.Y[i][j])
		}
	}
	return w.Flush()
}
