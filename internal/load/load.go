// Package load implements the load variants of an action. Each variant knows
// how to express its static effect on a member as polynomial pieces.
//
// Member diagrams use the simply supported member as reference: a positive
// transverse load gives positive shear at the start and positive (sagging)
// bending moment.
package load

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
	"github.com/alexiusacademia/goframe/internal/numeric"
)

var (
	ErrUnknownMember = errors.New(errors.CodeInvalidArgument, "load targets an unknown member")
	ErrUnknownNode   = errors.New(errors.CodeInvalidArgument, "load targets an unknown node")
	ErrPosition      = errors.New(errors.CodeInvalidArgument, "load position is outside the member")
	ErrDirection     = errors.New(errors.CodeInvalidArgument, "unsupported load direction")
	ErrNotFinite     = errors.New(errors.CodeInvalidArgument, "load value is not a finite number")
)

// Direction is a local member axis for transverse loads.
type Direction int

const (
	LocalY Direction = iota
	LocalZ
)

func (d Direction) String() string {
	switch d {
	case LocalY:
		return "y"
	case LocalZ:
		return "z"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// slots returns the shear and moment diagrams fed by a transverse load.
func (d Direction) slots() (shear, moment action.Slot, err error) {
	switch d {
	case LocalY:
		return action.Ty, action.Mz, nil
	case LocalZ:
		return action.Tz, action.My, nil
	}
	return 0, 0, errors.Wrapf(ErrDirection, "%v", d)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func memberLength(g action.Geometry, member int) (float64, error) {
	if member < 0 || member >= g.MemberCount() {
		return 0, errors.Wrapf(ErrUnknownMember, "member %d of %d", member, g.MemberCount())
	}
	l, err := g.MemberLength(member)
	if err != nil {
		return 0, err
	}
	if numeric.Default().Zero(l) {
		return 0, errors.Newf(errors.CodeInvalidArgument, "member %d has zero length", member)
	}
	return l, nil
}

// within reports 0 ≤ x ≤ l under tolerance.
func within(x, l float64) bool {
	return numeric.LessOrEqual(0, x) && numeric.LessOrEqual(x, l)
}

func add(a *action.Action, slot action.Slot, member int, start, end float64, c function.Coefficients, translate float64) error {
	f, err := a.Function(slot, member)
	if err != nil {
		return err
	}
	return f.AddPolynomial(start, end, c, translate)
}
