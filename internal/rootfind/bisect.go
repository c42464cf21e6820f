// Package rootfind locates roots of monotonic scalar functions on a bracket.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotBracketed is returned when f(lo) and f(hi) do not have opposite signs
var ErrNotBracketed = errors.New("root not bracketed")

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Options controls when Bisect stops
type Options struct {
	Tolerance     float64 // stop once the bracket is narrower than this
	MaxIterations int     // hard ceiling on halvings
}

// Option mutates Options
type Option func(*Options)

// WithTolerance sets the bracket width at which the search stops
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations caps the number of halvings
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// Bisect finds x in [lo, hi] with f(x) == 0.
// f(lo) and f(hi) must have opposite signs. The midpoint of the final
// bracket is returned once its width drops below the tolerance or the
// iteration ceiling is hit.
func Bisect(f func(float64) float64, lo, hi float64, opts ...Option) (float64, error) {
	o := Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return 0, fmt.Errorf("invalid bracket [%v, %v]", lo, hi)
	}
	if o.Tolerance <= 0 || o.MaxIterations <= 0 {
		return 0, fmt.Errorf("invalid options: tolerance %v, max iterations %d", o.Tolerance, o.MaxIterations)
	}

	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.IsNaN(flo) || math.IsNaN(fhi) || math.Signbit(flo) == math.Signbit(fhi) {
		return 0, fmt.Errorf("%w: f(%v)=%v, f(%v)=%v", ErrNotBracketed, lo, flo, hi, fhi)
	}

	for i := 0; i < o.MaxIterations && hi-lo >= o.Tolerance; i++ {
		mid := lo + (hi-lo)/2
		fmid := f(mid)
		if fmid == 0 {
			return mid, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}

	return lo + (hi-lo)/2, nil
}
