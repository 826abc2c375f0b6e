// Package project ties a structure to its load cases and combinations and
// runs the analysis pipeline: verify, populate, solve, combine.
package project

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/combination"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/eurocode"
	"github.com/alexiusacademia/goframe/internal/logging"
	"github.com/alexiusacademia/goframe/internal/structure"
	"github.com/alexiusacademia/goframe/internal/verify"
)

var (
	ErrUnknownAction   = errors.New(errors.CodeInvalidArgument, "action is not part of the project")
	ErrDuplicateAction = errors.New(errors.CodeInvalidArgument, "an action with this name already exists")
	ErrNilSolver       = errors.New(errors.CodeInvalidArgument, "solver is nil")
)

// Result is what a linear solve produces for one action.
type Result struct {
	NodalEfforts  []float64
	Displacements []float64
	Forces        []float64
}

// Solver computes the nodal results of one action. Implementations must not
// keep references to the action after returning.
type Solver interface {
	Solve(ctx context.Context, s *structure.Structure, a *action.Action) (Result, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, s *structure.Structure, a *action.Action) (Result, error)

func (f SolverFunc) Solve(ctx context.Context, s *structure.Structure, a *action.Action) (Result, error) {
	return f(ctx, s, a)
}

// Project owns a structure, its actions and the named combinations built
// from them.
type Project struct {
	structure    *structure.Structure
	table        *eurocode.Table
	actions      []*action.Action
	combinations []combination.Combination
	combiner     combination.Combiner
	log          *logging.Logger
}

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger used by the pipeline and the combiner.
func WithLogger(l *logging.Logger) Option {
	return func(p *Project) {
		p.log = logging.OrDiscard(l)
		p.combiner.Logger = p.log
	}
}

// WithTable replaces the EN 1990 ψ table.
func WithTable(t *eurocode.Table) Option {
	return func(p *Project) {
		if t != nil {
			p.table = t
		}
	}
}

// WithWorkers bounds the number of members combined in parallel.
func WithWorkers(n int) Option {
	return func(p *Project) {
		p.combiner.Workers = n
	}
}

// New creates an empty project.
func New(opts ...Option) *Project {
	p := &Project{
		structure: structure.New(),
		table:     eurocode.EN1990(),
		log:       logging.Discard(),
	}
	p.combiner.Logger = p.log
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Structure gives read access to the structure. Use EditStructure to change it.
func (p *Project) Structure() *structure.Structure {
	return p.structure
}

// Table returns the ψ table the project derives factors from.
func (p *Project) Table() *eurocode.Table {
	return p.table
}

// EditStructure runs fn on the structure and invalidates every computed
// result, whether or not fn succeeds.
func (p *Project) EditStructure(fn func(s *structure.Structure) error) error {
	defer p.invalidate()
	return fn(p.structure)
}

func (p *Project) invalidate() {
	for _, a := range p.actions {
		a.FreeComputedResults()
	}
}

// AddAction creates a load case. A negative category leaves ψ at zero.
func (p *Project) AddAction(name string, category int) (*action.Action, error) {
	if _, ok := p.ActionByName(name); ok {
		return nil, errors.Wrapf(ErrDuplicateAction, "%q", name)
	}
	a := action.New(name)
	if category >= 0 {
		if err := a.SetCategory(category, p.table); err != nil {
			return nil, err
		}
	}
	p.actions = append(p.actions, a)
	p.log.Debug("added action %q (category %d)", name, category)
	return a, nil
}

// Action looks an action up by identity.
func (p *Project) Action(id uuid.UUID) (*action.Action, bool) {
	i := p.index(id)
	if i < 0 {
		return nil, false
	}
	return p.actions[i], true
}

// ActionByName looks an action up by name.
func (p *Project) ActionByName(name string) (*action.Action, bool) {
	for _, a := range p.actions {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Actions returns the load cases in insertion order.
func (p *Project) Actions() []*action.Action {
	return slices.Clone(p.actions)
}

func (p *Project) index(id uuid.UUID) int {
	return slices.IndexFunc(p.actions, func(a *action.Action) bool { return a.ID == id })
}

// RemoveAction drops an action and every combination entry referring to it.
func (p *Project) RemoveAction(id uuid.UUID) error {
	i := p.index(id)
	if i < 0 {
		return errors.Wrapf(ErrUnknownAction, "%s", id)
	}
	p.actions = slices.Delete(p.actions, i, i+1)
	for c := range p.combinations {
		p.combinations[c].Entries = slices.DeleteFunc(p.combinations[c].Entries, func(e combination.Entry) bool {
			return e.Action != nil && e.Action.ID == id
		})
	}
	return nil
}

// AddCombination registers a named combination. Every entry must refer to
// an action of the project.
func (p *Project) AddCombination(c combination.Combination) error {
	for i, e := range c.Entries {
		if e.Action == nil {
			return errors.Wrapf(combination.ErrNilAction, "combination %q entry %d", c.Name, i)
		}
		if p.index(e.Action.ID) < 0 {
			return errors.Wrapf(ErrUnknownAction, "combination %q entry %d (%s)", c.Name, i, e.Action.Name)
		}
	}
	c.Entries = slices.Clone(c.Entries)
	p.combinations = append(p.combinations, c)
	return nil
}

// Combinations returns the registered combinations.
func (p *Project) Combinations() []combination.Combination {
	return slices.Clone(p.combinations)
}

// GenerateCombinations registers the EN 1990 combinations of ls and returns
// them.
func (p *Project) GenerateCombinations(ls eurocode.LimitState) ([]combination.Combination, error) {
	combs, err := combination.Generate(ls, p.actions, p.table)
	if err != nil {
		return nil, err
	}
	for _, c := range combs {
		if err := p.AddCombination(c); err != nil {
			return nil, err
		}
	}
	p.log.Info("generated %d %s combinations", len(combs), ls)
	return combs, nil
}

// Verify checks the structure.
func (p *Project) Verify() *verify.Report {
	r := verify.Run(p.structure)
	for _, e := range r.Filter(verify.Warning) {
		p.log.Warn("%s: %s", e.Check, e.Detail)
	}
	for _, e := range r.Filter(verify.Critical) {
		p.log.Error("%s: %s", e.Check, e.Detail)
	}
	return r
}

// Populate rebuilds the diagrams of every action from its loads.
func (p *Project) Populate() error {
	for _, a := range p.actions {
		if err := a.Populate(p.structure); err != nil {
			return err
		}
	}
	p.log.Debug("populated %d actions over %d members", len(p.actions), p.structure.MemberCount())
	return nil
}

// Compute verifies the structure, populates every action and stores the
// results of solver. The solver is never called on a structure whose
// report is Critical.
func (p *Project) Compute(ctx context.Context, solver Solver) error {
	if solver == nil {
		return ErrNilSolver
	}
	if err := p.Verify().Err(); err != nil {
		return err
	}
	if err := p.Populate(); err != nil {
		return err
	}
	for _, a := range p.actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := solver.Solve(ctx, p.structure, a)
		if err != nil {
			return errors.Wrapf(err, "solving action %q", a.Name)
		}
		if err := a.SetResults(res.NodalEfforts, res.Displacements, res.Forces); err != nil {
			return errors.Wrapf(err, "action %q", a.Name)
		}
		p.log.Debug("solved action %q", a.Name)
	}
	p.log.Info("computed %d actions", len(p.actions))
	return nil
}

// Combine runs one combination over the current structure size.
func (p *Project) Combine(c combination.Combination) (*action.Action, error) {
	return p.combiner.Run(c, p.structure.MemberCount(), p.structure.NodeCount())
}

// CombineAll runs every registered combination in order.
func (p *Project) CombineAll(ctx context.Context) ([]*action.Action, error) {
	out := make([]*action.Action, 0, len(p.combinations))
	for _, c := range p.combinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := p.Combine(c)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
