package numeric

import (
	"fmt"
	"math"
)

// Provenance tells whether a value was derived by the program or typed by a user.
// It only changes how many decimals are shown, never the arithmetic.
type Provenance int

const (
	Computed Provenance = iota
	UserEntered
)

func (p Provenance) String() string {
	switch p {
	case Computed:
		return "computed"
	case UserEntered:
		return "user"
	}
	return fmt.Sprintf("Provenance(%d)", int(p))
}

// Flottant is a float tagged with its provenance.
type Flottant struct {
	Value  float64
	Source Provenance
}

// ComputedValue tags v as derived by the program.
func ComputedValue(v float64) Flottant {
	return Flottant{Value: v, Source: Computed}
}

// UserValue tags v as entered by a user.
func UserValue(v float64) Flottant {
	return Flottant{Value: v, Source: UserEntered}
}

// IsValid reports whether the value is a finite number.
func (f Flottant) IsValid() bool {
	return !math.IsNaN(f.Value) && !math.IsInf(f.Value, 0)
}

// Format prints user values as typed and computed values rounded to decimals.
func (f Flottant) Format(decimals int) string {
	if f.Source == UserEntered {
		return fmt.Sprintf("%g", f.Value)
	}
	return fmt.Sprintf("%.*f", decimals, f.Value)
}

func (f Flottant) String() string {
	return f.Format(3)
}
