// Package combination synthesizes design combinations from weighted load
// cases and generates the EN 1990 combination lists.
package combination

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/logging"
)

var (
	ErrNoNodes      = errors.New(errors.CodeInvalidArgument, "no nodes exist")
	ErrNilAction    = errors.New(errors.CodeInvalidArgument, "combination references a nil action")
	ErrBadWeight    = errors.New(errors.CodeNumericInvalid, "weight is not a finite number")
	ErrSizeMismatch = errors.New(errors.CodeInvalidArgument, "action size does not match the structure")
	ErrNotComputed  = errors.New(errors.CodeInvariantViolation, "action has no computed results")
)

// Entry is one weighted reference to an action.
type Entry struct {
	Action *action.Action
	Psi    action.PsiSelector
	Weight float64
}

// Combination is a named list of weighted actions.
type Combination struct {
	Name    string
	Entries []Entry
}

// Combiner runs combinations. Members are combined in parallel; each worker
// owns the diagrams of the members it handles.
type Combiner struct {
	Workers int
	Logger  *logging.Logger
}

// Combine runs entries with a default Combiner.
func Combine(entries []Entry, memberCount, nodeCount int) (*action.Action, error) {
	var c Combiner
	return c.Combine(entries, memberCount, nodeCount)
}

// Run combines comb and names the result after it.
func (c *Combiner) Run(comb Combination, memberCount, nodeCount int) (*action.Action, error) {
	res, err := c.Combine(comb.Entries, memberCount, nodeCount)
	if err != nil {
		return nil, errors.Wrapf(err, "combination %q", comb.Name)
	}
	res.Name = comb.Name
	return res, nil
}

type term struct {
	src        *action.Action
	multiplier float64
}

// Combine returns a new action holding Σ weight·ψ·action for every diagram
// and result vector. Inputs are validated up front; nothing is returned on
// failure. Every entry with a non-zero multiplier must have diagrams and
// results, so an action invalidated by an edit is refused.
func (c *Combiner) Combine(entries []Entry, memberCount, nodeCount int) (*action.Action, error) {
	log := logging.OrDiscard(c.Logger)

	if nodeCount <= 0 {
		return nil, ErrNoNodes
	}
	if memberCount < 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "negative member count %d", memberCount)
	}

	size := nodeCount * action.DOFPerNode
	terms := make([]term, 0, len(entries))
	for i, e := range entries {
		m, err := multiplier(e)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		for _, v := range [][]float64{e.Action.NodalEfforts(), e.Action.Displacements(), e.Action.Forces()} {
			if v != nil && len(v) != size {
				return nil, errors.Wrapf(ErrSizeMismatch, "entry %d (%s): vector length %d, want %d", i, e.Action.Name, len(v), size)
			}
		}
		if e.Action.Initialized() && e.Action.MemberCount() != memberCount {
			return nil, errors.Wrapf(ErrSizeMismatch, "entry %d (%s): %d members, want %d", i, e.Action.Name, e.Action.MemberCount(), memberCount)
		}
		if m == 0 {
			log.Debug("combination entry %d (%s) has a zero multiplier, skipped", i, e.Action.Name)
			continue
		}
		if !e.Action.Initialized() || !e.Action.HasResults() {
			return nil, errors.Wrapf(ErrNotComputed, "entry %d (%s)", i, e.Action.Name)
		}
		terms = append(terms, term{src: e.Action, multiplier: m})
	}

	res := action.New("combination")
	if err := res.InitFunctions(memberCount); err != nil {
		return nil, err
	}

	nodal := make([]float64, size)
	disp := make([]float64, size)
	forces := make([]float64, size)
	for _, t := range terms {
		accumulate(nodal, t.multiplier, t.src.NodalEfforts())
		accumulate(disp, t.multiplier, t.src.Displacements())
		accumulate(forces, t.multiplier, t.src.Forces())
	}
	if err := res.SetResults(nodal, disp, forces); err != nil {
		return nil, err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for m := 0; m < memberCount; m++ {
		m := m
		g.Go(func() error {
			return combineMember(res, terms, m)
		})
	}
	if err := g.Wait(); err != nil {
		res.FreeComputedResults()
		return nil, err
	}

	log.Debug("combined %d actions over %d members and %d nodes", len(terms), memberCount, nodeCount)
	return res, nil
}

func multiplier(e Entry) (float64, error) {
	if e.Action == nil {
		return 0, ErrNilAction
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
		return 0, errors.Wrapf(ErrBadWeight, "action %q weight %v", e.Action.Name, e.Weight)
	}
	psi, err := e.Action.Psi(e.Psi)
	if err != nil {
		return 0, err
	}
	return e.Weight * psi, nil
}

func accumulate(dst []float64, k float64, src []float64) {
	if src == nil {
		return
	}
	floats.AddScaled(dst, k, src)
}

func combineMember(res *action.Action, terms []term, member int) error {
	for _, slot := range action.Slots() {
		dst, err := res.Function(slot, member)
		if err != nil {
			return err
		}
		for _, t := range terms {
			src, err := t.src.Function(slot, member)
			if err != nil {
				return err
			}
			if err := dst.AddScaled(src, t.multiplier); err != nil {
				return errors.Wrapf(err, "member %d %s from %q", member, slot, t.src.Name)
			}
		}
		dst.Compact()
	}
	return nil
}
