// Package nscp generates the strength design load combinations of the
// National Structural Code of the Philippines (NSCP 2015, Section 203.3) for
// the actions of a project.
package nscp

import (
	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/combination"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/eurocode"
)

// LoadType is the NSCP load symbol an action is factored as.
type LoadType int

const (
	Dead       LoadType = iota // D
	Live                       // L
	Roof                       // Lr
	Wind                       // W
	Earthquake                 // E
	Rain                       // R

	loadTypeCount
)

var symbols = [loadTypeCount]string{"D", "L", "Lr", "W", "E", "R"}

func (t LoadType) String() string {
	if t < 0 || t >= loadTypeCount {
		return "?"
	}
	return symbols[t]
}

// LoadCombination represents an NSCP load combination
type LoadCombination struct {
	ID          string
	Description string
	Factors     [loadTypeCount]float64
}

func factors(d, l, lr, w, e, r float64) [loadTypeCount]float64 {
	return [loadTypeCount]float64{d, l, lr, w, e, r}
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations. Each "or" of the code
// is its own entry, suffixed a, b, c, d in the order the code lists them.
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Factors: factors(1.4, 0, 0, 0, 0, 0)},
	{ID: "2a", Description: "1.2D + 1.6L + 0.5Lr", Factors: factors(1.2, 1.6, 0.5, 0, 0, 0)},
	{ID: "2b", Description: "1.2D + 1.6L + 0.5R", Factors: factors(1.2, 1.6, 0, 0, 0, 0.5)},
	{ID: "3a", Description: "1.2D + 1.6Lr + 1.0L", Factors: factors(1.2, 1.0, 1.6, 0, 0, 0)},
	{ID: "3b", Description: "1.2D + 1.6Lr + 0.5W", Factors: factors(1.2, 0, 1.6, 0.5, 0, 0)},
	{ID: "3c", Description: "1.2D + 1.6R + 1.0L", Factors: factors(1.2, 1.0, 0, 0, 0, 1.6)},
	{ID: "3d", Description: "1.2D + 1.6R + 0.5W", Factors: factors(1.2, 0, 0, 0.5, 0, 1.6)},
	{ID: "4a", Description: "1.2D + 1.0W + 1.0L + 0.5Lr", Factors: factors(1.2, 1.0, 0.5, 1.0, 0, 0)},
	{ID: "4b", Description: "1.2D + 1.0W + 1.0L + 0.5R", Factors: factors(1.2, 1.0, 0, 1.0, 0, 0.5)},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Factors: factors(1.2, 1.0, 0, 0, 1.0, 0)},
	{ID: "6", Description: "0.9D + 1.0W", Factors: factors(0.9, 0, 0, 1.0, 0, 0)},
	{ID: "7", Description: "0.9D + 1.0E", Factors: factors(0.9, 0, 0, 0, 1.0, 0)},
}

// SimplifiedCombinations covers gravity loads only
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Factors: factors(1.4, 0, 0, 0, 0, 0)},
	{ID: "2", Description: "1.2D + 1.6L", Factors: factors(1.2, 1.6, 0, 0, 0, 0)},
}

// Classify maps a category to the NSCP load type it is factored as, from
// its kind and origin. Snow, thermal, accidental and unspecified variable
// categories have no NSCP counterpart.
func Classify(code int, table *eurocode.Table) (LoadType, bool, error) {
	c, err := table.Lookup(code)
	if err != nil {
		return 0, false, err
	}
	switch c.Kind {
	case eurocode.Permanent, eurocode.Prestress:
		return Dead, true, nil
	case eurocode.Seismic:
		return Earthquake, true, nil
	case eurocode.Variable:
		switch c.Origin {
		case eurocode.OriginImposed:
			return Live, true, nil
		case eurocode.OriginRoof:
			return Roof, true, nil
		case eurocode.OriginWind:
			return Wind, true, nil
		case eurocode.OriginRain:
			return Rain, true, nil
		}
	}
	return 0, false, nil
}

// Generate builds one combination per entry of combos. Every action is
// factored by its load type and taken at full value (ψ is not used).
// Combinations that would only scale absent load types are dropped, and so
// is any combination whose factors on the present load types repeat an
// earlier one. Actions without an NSCP load type are left out and their
// names returned in skipped.
func Generate(actions []*action.Action, table *eurocode.Table, combos []LoadCombination) (out []combination.Combination, skipped []string, err error) {
	byType := make(map[LoadType][]*action.Action)
	for _, a := range actions {
		if a == nil {
			return nil, nil, combination.ErrNilAction
		}
		t, ok, err := Classify(a.Category(), table)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "action %q", a.Name)
		}
		if !ok {
			skipped = append(skipped, a.Name)
			continue
		}
		byType[t] = append(byType[t], a)
	}

	seen := make(map[[loadTypeCount]float64]bool)
	for _, lc := range combos {
		var effective [loadTypeCount]float64
		c := combination.Combination{Name: "NSCP " + lc.ID + ": " + lc.Description}
		for t := Dead; t < loadTypeCount; t++ {
			if lc.Factors[t] == 0 || len(byType[t]) == 0 {
				continue
			}
			effective[t] = lc.Factors[t]
			for _, a := range byType[t] {
				c.Entries = append(c.Entries, combination.Entry{Action: a, Psi: action.PsiNone, Weight: lc.Factors[t]})
			}
		}
		if len(c.Entries) == 0 || seen[effective] {
			continue
		}
		seen[effective] = true
		out = append(out, c)
	}
	return out, skipped, nil
}
