package function

// Segment is one polynomial piece over [Start, End).
type Segment struct {
	Start float64
	End   float64
	Coef  Coefficients
}

// Eval evaluates the segment polynomial at x without checking the bounds.
func (s Segment) Eval(x float64) float64 {
	return s.Coef.Eval(x)
}

// Length returns End − Start.
func (s Segment) Length() float64 {
	return s.End - s.Start
}

// Point is a sampled (abscissa, value) pair.
type Point struct {
	X float64
	Y float64
}
