package eurocode

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/errors"
)

// Kind groups categories by the role they play in EN 1990 combinations.
type Kind int

const (
	Permanent Kind = iota
	Prestress
	Variable
	Accidental
	Seismic
)

func (k Kind) String() string {
	switch k {
	case Permanent:
		return "permanent"
	case Prestress:
		return "prestress"
	case Variable:
		return "variable"
	case Accidental:
		return "accidental"
	case Seismic:
		return "seismic"
	}
	return "unknown"
}

// Origin is the physical source of a variable category. Other design codes
// factor actions by origin rather than by EN 1990 category code.
type Origin int

const (
	OriginOther Origin = iota
	OriginImposed
	OriginRoof
	OriginSnow
	OriginWind
	OriginThermal
	OriginRain
)

func (o Origin) String() string {
	switch o {
	case OriginImposed:
		return "imposed"
	case OriginRoof:
		return "roof"
	case OriginSnow:
		return "snow"
	case OriginWind:
		return "wind"
	case OriginThermal:
		return "thermal"
	case OriginRain:
		return "rain"
	}
	return "other"
}

// Category is one row of the ψ table.
type Category struct {
	Code        int
	Description string
	Kind        Kind
	Origin      Origin
	Psi0        float64
	Psi1        float64
	Psi2        float64
}

// Psi returns the three factors in order.
func (c Category) Psi() [3]float64 {
	return [3]float64{c.Psi0, c.Psi1, c.Psi2}
}

// EN 1990:2002 Table A1.1 - Recommended values of ψ factors for buildings
var EN1990Categories = []Category{
	{Code: 0, Description: "Permanent actions", Kind: Permanent},
	{Code: 1, Description: "Prestress", Kind: Prestress},
	{Code: 2, Description: "Category A: domestic, residential areas", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.5, Psi2: 0.3},
	{Code: 3, Description: "Category B: office areas", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.5, Psi2: 0.3},
	{Code: 4, Description: "Category C: congregation areas", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.7, Psi2: 0.6},
	{Code: 5, Description: "Category D: shopping areas", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.7, Psi2: 0.6},
	{Code: 6, Description: "Category E: storage areas", Kind: Variable, Origin: OriginImposed, Psi0: 1.0, Psi1: 0.9, Psi2: 0.8},
	{Code: 7, Description: "Category F: traffic area, vehicle weight <= 30kN", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.7, Psi2: 0.6},
	{Code: 8, Description: "Category G: traffic area, 30kN < vehicle weight <= 160kN", Kind: Variable, Origin: OriginImposed, Psi0: 0.7, Psi1: 0.5, Psi2: 0.3},
	{Code: 9, Description: "Category H: roofs", Kind: Variable, Origin: OriginRoof},
	{Code: 10, Description: "Snow: Finland, Iceland, Norway, Sweden", Kind: Variable, Origin: OriginSnow, Psi0: 0.7, Psi1: 0.5, Psi2: 0.2},
	{Code: 11, Description: "Snow: other CEN members, altitude H > 1000 m a.s.l.", Kind: Variable, Origin: OriginSnow, Psi0: 0.7, Psi1: 0.5, Psi2: 0.2},
	{Code: 12, Description: "Snow: other CEN members, altitude H <= 1000 m a.s.l.", Kind: Variable, Origin: OriginSnow, Psi0: 0.5, Psi1: 0.2},
	{Code: 13, Description: "Wind loads on buildings", Kind: Variable, Origin: OriginWind, Psi0: 0.6, Psi1: 0.2},
	{Code: 14, Description: "Temperature (non-fire) in buildings", Kind: Variable, Origin: OriginThermal, Psi0: 0.6, Psi1: 0.5},
	{Code: 15, Description: "Accidental", Kind: Accidental},
	{Code: 16, Description: "Seismic", Kind: Seismic},
}

var (
	ErrUnknownCategory = errors.New(errors.CodeInvalidArgument, "unknown action category")
	ErrInvalidFactor   = errors.New(errors.CodeNumericInvalid, "psi factor is not a valid non-negative number")
)

// Table looks categories up by code.
type Table struct {
	categories []Category
}

// NewTable builds a table from rows; every ψ must be finite and non-negative.
func NewTable(rows []Category) (*Table, error) {
	for _, c := range rows {
		for i, v := range c.Psi() {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, errors.Wrapf(ErrInvalidFactor, "category %d psi%d = %v", c.Code, i, v)
			}
		}
	}
	return &Table{categories: append([]Category(nil), rows...)}, nil
}

// EN1990 returns the table of recommended values.
func EN1990() *Table {
	return &Table{categories: EN1990Categories}
}

// Categories returns every row in code order.
func (t *Table) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// Lookup returns the row with the given code.
func (t *Table) Lookup(code int) (Category, error) {
	for _, c := range t.categories {
		if c.Code == code {
			return c, nil
		}
	}
	return Category{}, errors.Wrapf(ErrUnknownCategory, "code %d", code)
}

// Psi implements action.PsiTable.
func (t *Table) Psi(code int) ([3]float64, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return [3]float64{}, err
	}
	return c.Psi(), nil
}

// Kind returns the kind of a category.
func (t *Table) Kind(code int) (Kind, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}
	return c.Kind, nil
}
