// Package function implements piecewise polynomial diagrams: an ordered,
// contiguous list of degree-6 segments describing a force, deformation or
// rotation along one member.
package function

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/numeric"
)

var (
	ErrEmptyFunction = errors.New(errors.CodeInvariantViolation, "cannot split an empty function")
	ErrInvalidRange  = errors.New(errors.CodeInvariantViolation, "range end is before range start")
	ErrNotFinite     = errors.New(errors.CodeInvalidArgument, "value is not a finite number")
	ErrNilFunction   = errors.New(errors.CodeInvalidArgument, "function is nil")
)

// Function is a piecewise polynomial. The zero value is an empty function,
// which evaluates to zero everywhere.
type Function struct {
	segments []Segment
}

// New returns an empty function.
func New() *Function {
	return &Function{}
}

// FromSegments builds a function from already ordered, contiguous segments.
func FromSegments(segs ...Segment) *Function {
	return &Function{segments: slices.Clone(segs)}
}

// Len returns the number of segments.
func (f *Function) Len() int {
	return len(f.segments)
}

// IsEmpty reports whether the function has no segment yet.
func (f *Function) IsEmpty() bool {
	return len(f.segments) == 0
}

// Segments returns a copy of the segment list.
func (f *Function) Segments() []Segment {
	return slices.Clone(f.segments)
}

// Segment returns the i-th segment.
func (f *Function) Segment(i int) Segment {
	return f.segments[i]
}

// Clone returns a deep copy.
func (f *Function) Clone() *Function {
	return &Function{segments: slices.Clone(f.segments)}
}

// Reset drops every segment.
func (f *Function) Reset() {
	f.segments = nil
}

// Domain returns the covered range.
func (f *Function) Domain() (start, end float64, ok bool) {
	if len(f.segments) == 0 {
		return 0, 0, false
	}
	return f.segments[0].Start, f.segments[len(f.segments)-1].End, true
}

// SplitAt makes p a segment boundary without changing the represented values.
// A cut before the first segment or after the last one extends the domain with
// a zero segment. Splitting at an existing boundary is a no-op.
func (f *Function) SplitAt(p float64) error {
	if len(f.segments) == 0 {
		return ErrEmptyFunction
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return errors.Wrapf(ErrNotFinite, "cut position %v", p)
	}

	first := f.segments[0]
	if numeric.Equal(p, first.Start) {
		return nil
	}
	if p < first.Start {
		f.segments = slices.Insert(f.segments, 0, Segment{Start: p, End: first.Start})
		return nil
	}

	for i := range f.segments {
		seg := &f.segments[i]
		if numeric.Equal(p, seg.End) {
			return nil
		}
		if seg.End > p {
			right := Segment{Start: p, End: seg.End, Coef: seg.Coef}
			seg.End = p
			f.segments = slices.Insert(f.segments, i+1, right)
			return nil
		}
	}

	last := f.segments[len(f.segments)-1]
	f.segments = append(f.segments, Segment{Start: last.End, End: p})
	return nil
}

// AddPolynomial superposes c over [start, end). The coefficients are first
// re-expressed for x ↦ x − translate and the range is shifted by translate.
// An empty range (start == end under tolerance) is a no-op.
func (f *Function) AddPolynomial(start, end float64, c Coefficients, translate float64) error {
	for _, v := range [...]float64{start, end, translate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrNotFinite, "range [%v, %v) translate %v", start, end, translate)
		}
	}
	if !c.finite() {
		return errors.Wrapf(ErrNotFinite, "coefficients %v", c)
	}
	if numeric.Equal(start, end) {
		return nil
	}
	if end < start {
		return errors.Wrapf(ErrInvalidRange, "[%g, %g)", start, end)
	}

	shifted := c.Translate(translate)
	lo, hi := start+translate, end+translate

	if len(f.segments) == 0 {
		f.segments = []Segment{{Start: lo, End: hi, Coef: shifted}}
		return nil
	}

	if err := f.SplitAt(lo); err != nil {
		return err
	}
	if err := f.SplitAt(hi); err != nil {
		return err
	}
	for i := range f.segments {
		seg := &f.segments[i]
		if seg.Start > hi || numeric.Equal(seg.Start, hi) {
			break
		}
		if numeric.LessOrEqual(lo, seg.Start) && numeric.LessOrEqual(seg.End, hi) {
			seg.Coef = seg.Coef.Add(shifted)
		}
	}
	return nil
}

// AddScaled adds k·src into f, segment by segment, over src's exact ranges.
func (f *Function) AddScaled(src *Function, k float64) error {
	if src == nil {
		return ErrNilFunction
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return errors.Wrapf(ErrNotFinite, "multiplier %v", k)
	}
	if k == 0 {
		return nil
	}
	// src may alias f.
	for _, seg := range src.Segments() {
		if err := f.AddPolynomial(seg.Start, seg.End, seg.Coef.Scale(k), 0); err != nil {
			return err
		}
	}
	return nil
}

// Compact merges neighbouring segments carrying equal coefficients.
func (f *Function) Compact() {
	if len(f.segments) < 2 {
		return
	}
	out := f.segments[:1]
	for _, seg := range f.segments[1:] {
		last := &out[len(out)-1]
		if last.Coef.Equal(seg.Coef) {
			last.End = seg.End
			continue
		}
		out = append(out, seg)
	}
	f.segments = slices.Clip(out)
}

// Eval returns the value at x. At a shared boundary the left segment wins.
// Outside the covered domain, and for an empty function, the value is zero.
func (f *Function) Eval(x float64) float64 {
	for _, seg := range f.segments {
		if x < seg.Start && !numeric.Equal(x, seg.Start) {
			break
		}
		if numeric.LessOrEqual(x, seg.End) {
			return seg.Eval(x)
		}
	}
	return 0
}

// Equal compares two functions segment by segment under tolerance.
func (f *Function) Equal(o *Function) bool {
	if len(f.segments) != len(o.segments) {
		return false
	}
	for i, a := range f.segments {
		b := o.segments[i]
		if !numeric.Equal(a.Start, b.Start) || !numeric.Equal(a.End, b.End) || !a.Coef.Equal(b.Coef) {
			return false
		}
	}
	return true
}

// Sample evaluates every segment at perSegment+1 evenly spaced abscissas,
// both ends included, so jumps at boundaries show on both sides.
func (f *Function) Sample(perSegment int) []Point {
	if perSegment < 1 {
		perSegment = 1
	}
	pts := make([]Point, 0, len(f.segments)*(perSegment+1))
	for _, seg := range f.segments {
		step := seg.Length() / float64(perSegment)
		for i := 0; i <= perSegment; i++ {
			x := seg.Start + float64(i)*step
			if i == perSegment {
				x = seg.End
			}
			pts = append(pts, Point{X: x, Y: seg.Eval(x)})
		}
	}
	return pts
}

// Extrema returns the sampled minimum and maximum.
func (f *Function) Extrema(perSegment int) (lo, hi Point, ok bool) {
	pts := f.Sample(perSegment)
	if len(pts) == 0 {
		return Point{}, Point{}, false
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.Y < lo.Y {
			lo = p
		}
		if p.Y > hi.Y {
			hi = p
		}
	}
	return lo, hi, true
}

// Render compacts f and prints one line per segment. Ranges are only
// labelled when there is more than one segment.
func (f *Function) Render(decimals int) string {
	f.Compact()
	if len(f.segments) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, seg := range f.segments {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if len(f.segments) > 1 {
			fmt.Fprintf(&sb, "%.*f -> %.*f: ", decimals, seg.Start, decimals, seg.End)
		}
		sb.WriteString(seg.Coef.Format(decimals))
	}
	return sb.String()
}

func (f *Function) String() string {
	return f.Render(3)
}
