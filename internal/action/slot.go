package action

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/errors"
)

// Slot identifies one of the twelve diagrams carried per member.
type Slot int

// Internal forces, then translations, then rotations, in local member axes.
const (
	N Slot = iota
	Ty
	Tz
	Mx
	My
	Mz
	Ux
	Uy
	Uz
	Rx
	Ry
	Rz

	SlotCount
)

var slotNames = [SlotCount]string{"N", "Ty", "Tz", "Mx", "My", "Mz", "Ux", "Uy", "Uz", "Rx", "Ry", "Rz"}

func (s Slot) String() string {
	if s < 0 || s >= SlotCount {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// IsForce reports whether s is one of the six internal forces.
func (s Slot) IsForce() bool { return s >= N && s <= Mz }

// IsDeformation reports whether s is a translation.
func (s Slot) IsDeformation() bool { return s >= Ux && s <= Uz }

// IsRotation reports whether s is a rotation.
func (s Slot) IsRotation() bool { return s >= Rx && s <= Rz }

// ParseSlot resolves a slot name such as "Mz".
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownSlot, "%q", name)
}

// Slots lists every slot in order.
func Slots() []Slot {
	s := make([]Slot, SlotCount)
	for i := range s {
		s[i] = Slot(i)
	}
	return s
}

// PsiSelector picks which ψ factor scales an action inside a combination.
type PsiSelector int

const (
	PsiNone PsiSelector = iota
	Psi0
	Psi1
	Psi2
)

func (p PsiSelector) String() string {
	switch p {
	case PsiNone:
		return "none"
	case Psi0:
		return "psi0"
	case Psi1:
		return "psi1"
	case Psi2:
		return "psi2"
	}
	return fmt.Sprintf("PsiSelector(%d)", int(p))
}

// Valid reports whether p is one of the four selectors.
func (p PsiSelector) Valid() bool {
	return p >= PsiNone && p <= Psi2
}

// ParsePsiSelector accepts "", "none", "psi0", "psi1", "psi2", "0", "1", "2".
func ParsePsiSelector(s string) (PsiSelector, error) {
	switch s {
	case "", "none":
		return PsiNone, nil
	case "psi0", "0":
		return Psi0, nil
	case "psi1", "1":
		return Psi1, nil
	case "psi2", "2":
		return Psi2, nil
	}
	return 0, errors.Wrapf(ErrInvalidSelector, "%q", s)
}
