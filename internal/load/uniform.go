package load

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
	"github.com/alexiusacademia/goframe/internal/numeric"
)

// UniformLoad is a transverse load of intensity Q per unit length over
// [Start, End] of a member.
type UniformLoad struct {
	Member     int
	Start, End float64
	Q          float64
	Direction  Direction
}

func (u UniformLoad) Describe() string {
	return fmt.Sprintf("uniform load %g along %s over [%g, %g] on member %d", u.Q, u.Direction, u.Start, u.End, u.Member)
}

// Contribute adds the simply supported diagrams. With W = q(b−a),
// c = (a+b)/2 and Ra = W(L−c)/L:
//
//	T = Ra on [0,a),   Ra − q(x−a) on [a,b),       Ra − W on [b,L)
//	M = Ra·x on [0,a), Ra·x − q(x−a)²/2 on [a,b),  (Ra − W)·x + W·c on [b,L)
func (u UniformLoad) Contribute(a *action.Action, g action.Geometry) error {
	if !finite(u.Start, u.End, u.Q) {
		return errors.Wrapf(ErrNotFinite, "%s", u.Describe())
	}
	shear, moment, err := u.Direction.slots()
	if err != nil {
		return err
	}
	l, err := memberLength(g, u.Member)
	if err != nil {
		return err
	}
	if !within(u.Start, l) || !within(u.End, l) || !numeric.LessOrEqual(u.Start, u.End) {
		return errors.Wrapf(ErrPosition, "[%g, %g], length %g", u.Start, u.End, l)
	}

	q := u.Q
	w := q * (u.End - u.Start)
	c := (u.Start + u.End) / 2
	ra := w * (l - c) / l
	span := u.End - u.Start

	pieces := []struct {
		slot       action.Slot
		start, end float64
		c          function.Coefficients
		translate  float64
	}{
		{shear, 0, u.Start, function.Coefficients{ra}, 0},
		{shear, 0, span, function.Coefficients{ra, -q}, u.Start},
		{shear, u.End, l, function.Coefficients{ra - w}, 0},
		{moment, 0, u.Start, function.Coefficients{0, ra}, 0},
		{moment, 0, span, function.Coefficients{ra * u.Start, ra, -q / 2}, u.Start},
		{moment, u.End, l, function.Coefficients{w * c, ra - w}, 0},
	}
	for _, pc := range pieces {
		if err := add(a, pc.slot, u.Member, pc.start, pc.end, pc.c, pc.translate); err != nil {
			return err
		}
	}
	return nil
}
