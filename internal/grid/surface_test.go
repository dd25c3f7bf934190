package grid

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/surfexpr"
)

func TestSurfaceUpdate(t *testing.T) {
	var buf bytes.Buffer
	s := NewSurface(zerolog.New(&buf))
	if s.Expr() != nil || s.Source() != "" {
		t.Fatalf("new surface has expression %v", s.Expr())
	}
	if err := s.Update("x*z"); err != nil {
		t.Fatal(err)
	}
	if s.Source() != "x*z" {
		t.Errorf("source is %q", s.Source())
	}
	v, err := s.Expr().Eval(3, 4)
	if err != nil || v != 12 {
		t.Errorf("want 12, got %g, %v", v, err)
	}

	err = s.Update("x*(z")
	var be *surfexpr.BracketError
	if !errors.As(err, &be) {
		t.Errorf("want *BracketError, got %#v", err)
	}
	if s.Source() != "x*z" {
		t.Errorf("failed update replaced source with %q", s.Source())
	}
	if v, _ := s.Expr().Eval(3, 4); v != 12 {
		t.Errorf("failed update changed expression: got %g", v)
	}
	out := buf.String()
	if !strings.Contains(out, `"keep":"x*z"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("failed update logged wrong: %s", out)
	}
}

func TestSurfaceConcurrent(t *testing.T) {
	s := NewSurface(zerolog.Nop())
	if err := s.Update("x"); err != nil {
		t.Fatal(err)
	}
	srcs := []string{"x", "x+0", "x*1", "max(x, x)", "x+", "(x"}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.Update(srcs[j%len(srcs)])
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				v, err := s.Expr().Eval(float64(j), 0)
				if err != nil || v != float64(j) {
					t.Errorf("at %d got %g, %v", j, v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
