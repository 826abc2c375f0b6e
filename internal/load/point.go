package load

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
)

// PointLoad is a transverse force P at abscissa A along a member.
type PointLoad struct {
	Member    int
	A         float64
	P         float64
	Direction Direction
}

func (p PointLoad) Describe() string {
	return fmt.Sprintf("point load %g along %s at %g on member %d", p.P, p.Direction, p.A, p.Member)
}

// Contribute adds, for a member of length L,
//
//	T = P(L−a)/L on [0,a),   −Pa/L on [a,L)
//	M = P(L−a)/L·x on [0,a), Pa(L−x)/L on [a,L)
//
// The right-hand pieces are written in u = x − a and placed with translate a.
func (p PointLoad) Contribute(a *action.Action, g action.Geometry) error {
	if !finite(p.A, p.P) {
		return errors.Wrapf(ErrNotFinite, "%s", p.Describe())
	}
	shear, moment, err := p.Direction.slots()
	if err != nil {
		return err
	}
	l, err := memberLength(g, p.Member)
	if err != nil {
		return err
	}
	if !within(p.A, l) {
		return errors.Wrapf(ErrPosition, "a = %g, length %g", p.A, l)
	}

	ra := p.P * (l - p.A) / l
	rb := p.P * p.A / l
	pieces := []struct {
		slot       action.Slot
		start, end float64
		c          function.Coefficients
		translate  float64
	}{
		{shear, 0, p.A, function.Coefficients{ra}, 0},
		{shear, 0, l - p.A, function.Coefficients{-rb}, p.A},
		{moment, 0, p.A, function.Coefficients{0, ra}, 0},
		{moment, 0, l - p.A, function.Coefficients{rb * (l - p.A), -rb}, p.A},
	}
	for _, pc := range pieces {
		if err := add(a, pc.slot, p.Member, pc.start, pc.end, pc.c, pc.translate); err != nil {
			return err
		}
	}
	return nil
}
