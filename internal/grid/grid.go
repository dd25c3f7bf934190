// Package grid samples compiled expressions over rectangular grids of x and z
// to produce height fields.
package grid

import (
	"context"
	"errors"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/surfexpr"
)

// Field is a sampled height field. Y[i][j] is the height at X[j], Z[i].
type Field struct {
	X, Z []float64
	Y    [][]float64
}

// Sampler evaluates expressions over grids.
type Sampler struct {
	Log zerolog.Logger
}

// Sample evaluates e at every point of the grid described by cfg. Rows are
// evaluated concurrently; the first error stops the remaining rows. If cfg
// binds t, the expression is evaluated with it. Otherwise an expression that
// uses t fails with a *surfexpr.NameError.
func (s *Sampler) Sample(ctx context.Context, e *surfexpr.Expr, cfg Config) (*Field, error) {
	if err := cfg.validateAxes(); err != nil {
		return nil, err
	}
	eval := func(x, z float64) (float64, error) { return e.Eval(x, z) }
	if cfg.T != nil {
		t := *cfg.T
		eval = func(x, z float64) (float64, error) { return e.EvalTime(x, z, t) }
	}
	f := Field{
		X: cfg.X.Points(),
		Z: cfg.Z.Points(),
	}
	f.Y = make([][]float64, len(f.Z))
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	s.Log.Debug().
		Str("expression", e.String()).
		Int("rows", len(f.Z)).
		Int("cols", len(f.X)).
		Int("workers", workers).
		Msg("sampling")
	for i := range f.Z {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			z := f.Z[i]
			row := make([]float64, len(f.X))
			for j, x := range f.X {
				y, err := eval(x, z)
				if err != nil {
					report(s.Log, err).Float64("x", x).Float64("z", z).Msg("couldn't evaluate surface")
					return err
				}
				row[j] = y
			}
			f.Y[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that arrived before some rows started leaves them
	// unsampled without any row reporting an error.
	for _, row := range f.Y {
		if row == nil {
			return nil, context.Cause(ctx)
		}
	}
	return &f, nil
}

// report starts a log event for an error from compiling or evaluating an
// expression. Malformed trees are bugs and log at error level with the
// internal field set; anything else is the fault of the input.
func report(log zerolog.Logger, err error) *zerolog.Event {
	var ierr *surfexpr.InternalError
	if errors.As(err, &ierr) {
		return log.Error().Err(err).Bool("internal", true)
	}
	ev := log.Warn().Err(err)
	var ie surfexpr.InputError
	if errors.As(err, &ie) {
		ev = ev.Int("col", ie.Pos())
	}
	return ev
}
