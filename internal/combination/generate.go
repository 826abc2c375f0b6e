package combination

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/eurocode"
)

// Generate builds the EN 1990 combinations of the given limit state, one per
// leading variable action. Accidental and seismic actions are not part of
// these families and are ignored.
//
//	ULS 6.10:            γG·G + γP·P + 1.5·Q1 + 1.5·ψ0·Qi   (γG = 1.35 and 1.00)
//	SLS characteristic:  G + P + Q1 + ψ0·Qi
//	SLS frequent:        G + P + ψ1·Q1 + ψ2·Qi
//	SLS quasi-permanent: G + P + ψ2·Qi
func Generate(ls eurocode.LimitState, actions []*action.Action, table *eurocode.Table) ([]Combination, error) {
	var permanents, prestress, variables []*action.Action
	for _, a := range actions {
		if a == nil {
			return nil, ErrNilAction
		}
		kind, err := table.Kind(a.Category())
		if err != nil {
			return nil, errors.Wrapf(err, "action %q", a.Name)
		}
		switch kind {
		case eurocode.Permanent:
			permanents = append(permanents, a)
		case eurocode.Prestress:
			prestress = append(prestress, a)
		case eurocode.Variable:
			variables = append(variables, a)
		}
	}

	base := func(gammaG float64) []Entry {
		var entries []Entry
		for _, a := range permanents {
			entries = append(entries, Entry{Action: a, Psi: action.PsiNone, Weight: gammaG})
		}
		for _, a := range prestress {
			entries = append(entries, Entry{Action: a, Psi: action.PsiNone, Weight: eurocode.GammaP})
		}
		return entries
	}

	type role struct {
		weight float64
		psi    action.PsiSelector
	}
	var leading, accompanying role
	gammas := []float64{1}
	switch ls {
	case eurocode.ULSFundamental:
		gammas = []float64{eurocode.GammaGSup, eurocode.GammaGInf}
		leading = role{eurocode.GammaQ, action.PsiNone}
		accompanying = role{eurocode.GammaQ, action.Psi0}
	case eurocode.SLSCharacteristic:
		leading = role{1, action.PsiNone}
		accompanying = role{1, action.Psi0}
	case eurocode.SLSFrequent:
		leading = role{1, action.Psi1}
		accompanying = role{1, action.Psi2}
	case eurocode.SLSQuasiPermanent:
		entries := base(1)
		for _, a := range variables {
			entries = append(entries, Entry{Action: a, Psi: action.Psi2, Weight: 1})
		}
		return []Combination{{Name: ls.String(), Entries: entries}}, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unknown limit state %d", int(ls))
	}

	var out []Combination
	for _, g := range gammas {
		if len(variables) == 0 {
			out = append(out, Combination{Name: fmt.Sprintf("%s G×%.2f", ls, g), Entries: base(g)})
			continue
		}
		for i, lead := range variables {
			entries := base(g)
			entries = append(entries, Entry{Action: lead, Psi: leading.psi, Weight: leading.weight})
			for j, other := range variables {
				if j == i {
					continue
				}
				entries = append(entries, Entry{Action: other, Psi: accompanying.psi, Weight: accompanying.weight})
			}
			name := fmt.Sprintf("%s leading %s", ls, lead.Name)
			if len(gammas) > 1 {
				name = fmt.Sprintf("%s G×%.2f leading %s", ls, g, lead.Name)
			}
			out = append(out, Combination{Name: name, Entries: entries})
		}
	}
	return out, nil
}
