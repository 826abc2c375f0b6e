// Package numeric holds the floating point comparison rules used by every
// diagram and geometry computation, plus the provenance-tagged scalar.
package numeric

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance describes when two floats are considered equal.
// Abs is the floor used near zero, Rel the relative tolerance scaled by max(|a|,|b|).
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance is used by Equal and RoundSignificant until SetDefault is called.
var DefaultTolerance = Tolerance{Abs: 1e-9, Rel: 1e-9}

var current atomic.Pointer[Tolerance]

func init() {
	t := DefaultTolerance
	current.Store(&t)
}

// SetDefault replaces the process-wide tolerance. Meant to be called once at startup.
func SetDefault(t Tolerance) {
	if t.Abs <= 0 || t.Rel <= 0 || math.IsNaN(t.Abs) || math.IsNaN(t.Rel) {
		return
	}
	current.Store(&t)
}

// Default returns the process-wide tolerance.
func Default() Tolerance {
	return *current.Load()
}

// Equal reports whether a and b are equal under t.
func (t Tolerance) Equal(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, t.Abs, t.Rel)
}

// Zero reports whether a is zero under t.
func (t Tolerance) Zero(a float64) bool {
	return t.Equal(a, 0)
}

// Digits is the number of significant digits the tolerance can resolve.
func (t Tolerance) Digits() int {
	d := int(math.Floor(-math.Log10(t.Rel) + 1e-9))
	if d < 1 {
		return 1
	}
	if d > 15 {
		return 15
	}
	return d
}

// RoundSignificant drops the digits of x that lie below the tolerance.
func (t Tolerance) RoundSignificant(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if math.Abs(x) < t.Abs {
		return 0
	}
	exp := int(math.Floor(math.Log10(math.Abs(x))))
	return scalar.Round(x, t.Digits()-1-exp)
}

// Equal compares a and b with the process-wide tolerance.
func Equal(a, b float64) bool {
	return Default().Equal(a, b)
}

// LessOrEqual reports a < b or a == b under the process-wide tolerance.
func LessOrEqual(a, b float64) bool {
	return a < b || Equal(a, b)
}

// RoundSignificant rounds with the process-wide tolerance.
func RoundSignificant(x float64) float64 {
	return Default().RoundSignificant(x)
}
