package combination

import (
	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/function"
)

// Bound is an extreme value and the action it comes from.
type Bound struct {
	Point  function.Point
	Action string
}

// Envelope returns the sampled minimum and maximum of one diagram across
// several actions. An empty diagram is zero everywhere and counts as y = 0 at
// x = 0. ok is false only when results is empty.
func Envelope(results []*action.Action, slot action.Slot, member, perSegment int) (lo, hi Bound, ok bool, err error) {
	for _, a := range results {
		if a == nil {
			return lo, hi, false, ErrNilAction
		}
		f, err := a.Function(slot, member)
		if err != nil {
			return lo, hi, false, err
		}
		fmin, fmax, has := f.Extrema(perSegment)
		if !has {
			fmin, fmax = function.Point{}, function.Point{}
		}
		if !ok || fmin.Y < lo.Point.Y {
			lo = Bound{Point: fmin, Action: a.Name}
		}
		if !ok || fmax.Y > hi.Point.Y {
			hi = Bound{Point: fmax, Action: a.Name}
		}
		ok = true
	}
	return lo, hi, ok, nil
}
