package grid

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/surfexpr"
)

// Surface holds the current height expression of a surface. Readers always
// see a complete compiled expression, even while another goroutine updates
// it.
type Surface struct {
	log zerolog.Logger
	cur atomic.Pointer[current]
}

type current struct {
	src  string
	expr *surfexpr.Expr
}

// NewSurface creates a surface with no expression.
func NewSurface(log zerolog.Logger) *Surface {
	return &Surface{log: log}
}

// Update compiles src and makes it the current expression. If src does not
// compile, the previous expression remains current and the error is returned.
func (s *Surface) Update(src string) error {
	e, err := surfexpr.Compile(src)
	if err != nil {
		ev := report(s.log, err).Str("src", src)
		if old := s.cur.Load(); old != nil {
			ev = ev.Str("keep", old.src)
		}
		ev.Msg("couldn't compile surface")
		return err
	}
	s.cur.Store(&current{src: src, expr: e})
	s.log.Debug().Str("src", src).Strs("vars", e.Vars()).Msg("surface updated")
	return nil
}

// Expr returns the current expression, or nil if no update has succeeded.
func (s *Surface) Expr() *surfexpr.Expr {
	c := s.cur.Load()
	if c == nil {
		return nil
	}
	return c.expr
}

// Source returns the text of the current expression.
func (s *Surface) Source() string {
	c := s.cur.Load()
	if c == nil {
		return ""
	}
	return c.src
}
