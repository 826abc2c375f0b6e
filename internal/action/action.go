// Package action holds the per load case results: twelve diagrams per member
// plus the nodal vectors produced by the linear solve.
package action

import (
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
	"github.com/alexiusacademia/goframe/internal/numeric"
)

// DOFPerNode is the number of degrees of freedom carried by each node in the
// nodal vectors, indexed node*DOFPerNode + dof.
const DOFPerNode = 6

var (
	ErrAlreadyInitialized = errors.New(errors.CodeInvariantViolation, "functions are already initialized")
	ErrNotInitialized     = errors.New(errors.CodeInvariantViolation, "functions are not initialized")
	ErrInvalidSelector    = errors.New(errors.CodeInvalidArgument, "invalid psi selector")
	ErrUnknownSlot        = errors.New(errors.CodeInvalidArgument, "unknown diagram")
	ErrInvalidPsi         = errors.New(errors.CodeNumericInvalid, "psi must be a finite non-negative number")
	ErrOutOfRange         = errors.New(errors.CodeInvalidArgument, "index out of range")
	ErrNilLoad            = errors.New(errors.CodeInvalidArgument, "load is nil")
	ErrVectorSize         = errors.New(errors.CodeInvalidArgument, "result vector has the wrong size")
)

// PsiTable supplies the default ψ0, ψ1, ψ2 of an action category.
type PsiTable interface {
	Psi(category int) ([3]float64, error)
}

// Geometry is what a load needs to know about the structure to place its
// contribution.
type Geometry interface {
	NodeCount() int
	MemberCount() int
	MemberLength(member int) (float64, error)
}

// Load contributes closed-form polynomial pieces to an action's diagrams.
type Load interface {
	Describe() string
	Contribute(a *Action, g Geometry) error
}

// NodalContributor is implemented by loads that also feed the solver's load
// vector.
type NodalContributor interface {
	AddToLoadVector(vec []float64, g Geometry) error
}

// Action is one load case or one synthesized combination. It exclusively owns
// its loads, diagrams and result vectors.
type Action struct {
	ID   uuid.UUID
	Name string

	category int
	psi      [3]numeric.Flottant
	loads    []Load

	functions   [SlotCount][]*function.Function
	initialized bool

	solved        bool
	nodalEfforts  []float64
	displacements []float64
	forces        []float64
}

// New creates an action with no category, ψ = 0 and no results.
func New(name string) *Action {
	return &Action{
		ID:       uuid.New(),
		Name:     name,
		category: -1,
	}
}

// Category returns the category code, -1 when unset.
func (a *Action) Category() int {
	return a.category
}

// SetCategory changes the category and derives ψ from table.
func (a *Action) SetCategory(code int, table PsiTable) error {
	if table == nil {
		return errors.New(errors.CodeInvalidArgument, "psi table is nil")
	}
	psi, err := table.Psi(code)
	if err != nil {
		return errors.Wrapf(err, "action %q category %d", a.Name, code)
	}
	for i, v := range psi {
		if !validPsi(v) {
			return errors.Wrapf(ErrInvalidPsi, "action %q category %d psi%d = %v", a.Name, code, i, v)
		}
	}
	a.FreeComputedResults()
	a.category = code
	for i, v := range psi {
		a.psi[i] = numeric.ComputedValue(v)
	}
	return nil
}

// SetPsi overrides one ψ factor with a user value.
func (a *Action) SetPsi(sel PsiSelector, v float64) error {
	if sel < Psi0 || sel > Psi2 {
		return errors.Wrapf(ErrInvalidSelector, "%v", sel)
	}
	if !validPsi(v) {
		return errors.Wrapf(ErrInvalidPsi, "%s = %v", sel, v)
	}
	a.FreeComputedResults()
	a.psi[sel-Psi0] = numeric.UserValue(v)
	return nil
}

// PsiValue returns the tagged ψ factor picked by sel.
func (a *Action) PsiValue(sel PsiSelector) (numeric.Flottant, error) {
	switch {
	case sel == PsiNone:
		return numeric.ComputedValue(1), nil
	case sel >= Psi0 && sel <= Psi2:
		return a.psi[sel-Psi0], nil
	}
	return numeric.Flottant{}, errors.Wrapf(ErrInvalidSelector, "%v", sel)
}

// Psi returns the multiplier picked by sel; PsiNone yields 1.
func (a *Action) Psi(sel PsiSelector) (float64, error) {
	f, err := a.PsiValue(sel)
	if err != nil {
		return 0, err
	}
	if !validPsi(f.Value) {
		return 0, errors.Wrapf(ErrInvalidPsi, "action %q %s = %v", a.Name, sel, f.Value)
	}
	return f.Value, nil
}

func validPsi(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// AddLoad appends a load and invalidates computed results.
func (a *Action) AddLoad(l Load) error {
	if l == nil {
		return ErrNilLoad
	}
	a.FreeComputedResults()
	a.loads = append(a.loads, l)
	return nil
}

// RemoveLoad drops the i-th load and invalidates computed results.
func (a *Action) RemoveLoad(i int) error {
	if i < 0 || i >= len(a.loads) {
		return errors.Wrapf(ErrOutOfRange, "load %d of %d", i, len(a.loads))
	}
	a.FreeComputedResults()
	a.loads = slices.Delete(a.loads, i, i+1)
	return nil
}

// Loads returns the loads in insertion order.
func (a *Action) Loads() []Load {
	return slices.Clone(a.loads)
}

// InitFunctions allocates an empty diagram for every (slot, member) pair.
// Calling it twice without FreeFunctions is rejected.
func (a *Action) InitFunctions(memberCount int) error {
	if a.initialized {
		return errors.Wrapf(ErrAlreadyInitialized, "action %q", a.Name)
	}
	if memberCount < 0 {
		return errors.Newf(errors.CodeInvalidArgument, "negative member count %d", memberCount)
	}
	for s := range a.functions {
		fs := make([]*function.Function, memberCount)
		for m := range fs {
			fs[m] = function.New()
		}
		a.functions[s] = fs
	}
	a.initialized = true
	return nil
}

// FreeFunctions releases every diagram. Safe on an uninitialized action.
func (a *Action) FreeFunctions() {
	for s := range a.functions {
		a.functions[s] = nil
	}
	a.initialized = false
}

// FreeComputedResults drops the result vectors and the diagrams. Every
// mutation that makes results stale goes through here.
func (a *Action) FreeComputedResults() {
	a.nodalEfforts = nil
	a.displacements = nil
	a.forces = nil
	a.solved = false
	a.FreeFunctions()
}

// Initialized reports whether InitFunctions has run since the last free.
func (a *Action) Initialized() bool {
	return a.initialized
}

// MemberCount is the length of each diagram array, 0 when uninitialized.
func (a *Action) MemberCount() int {
	return len(a.functions[N])
}

// Function returns the diagram of member for slot.
func (a *Action) Function(slot Slot, member int) (*function.Function, error) {
	if !a.initialized {
		return nil, errors.Wrapf(ErrNotInitialized, "action %q", a.Name)
	}
	if slot < 0 || slot >= SlotCount {
		return nil, errors.Wrapf(ErrOutOfRange, "slot %d", int(slot))
	}
	if member < 0 || member >= len(a.functions[slot]) {
		return nil, errors.Wrapf(ErrOutOfRange, "member %d of %d", member, len(a.functions[slot]))
	}
	return a.functions[slot][member], nil
}

// Populate rebuilds the diagrams from the loads. On failure the action is
// left with no diagrams.
func (a *Action) Populate(g Geometry) error {
	a.FreeFunctions()
	if err := a.InitFunctions(g.MemberCount()); err != nil {
		return err
	}
	for i, l := range a.loads {
		if err := l.Contribute(a, g); err != nil {
			a.FreeFunctions()
			return errors.Wrapf(err, "action %q load %d (%s)", a.Name, i, l.Describe())
		}
	}
	return nil
}

// LoadVector assembles the nodal load vector from loads that provide one.
func (a *Action) LoadVector(g Geometry) ([]float64, error) {
	vec := make([]float64, g.NodeCount()*DOFPerNode)
	for i, l := range a.loads {
		nc, ok := l.(NodalContributor)
		if !ok {
			continue
		}
		if err := nc.AddToLoadVector(vec, g); err != nil {
			return nil, errors.Wrapf(err, "action %q load %d (%s)", a.Name, i, l.Describe())
		}
	}
	return vec, nil
}

// SetResults stores the vectors produced by the linear solve. nil vectors are
// allowed; non-nil ones must share one length that is a multiple of DOFPerNode.
func (a *Action) SetResults(nodalEfforts, displacements, forces []float64) error {
	size := -1
	for _, v := range [][]float64{nodalEfforts, displacements, forces} {
		if v == nil {
			continue
		}
		if len(v)%DOFPerNode != 0 || (size >= 0 && len(v) != size) {
			return errors.Wrapf(ErrVectorSize, "length %d", len(v))
		}
		size = len(v)
		for k, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return errors.Newf(errors.CodeNumericInvalid, "result entry %d is %v", k, x)
			}
		}
	}
	a.nodalEfforts = slices.Clone(nodalEfforts)
	a.displacements = slices.Clone(displacements)
	a.forces = slices.Clone(forces)
	a.solved = true
	return nil
}

// NodalEfforts returns the nodal effort vector, nil when not computed.
func (a *Action) NodalEfforts() []float64 { return a.nodalEfforts }

// Displacements returns the displacement vector, nil when not computed.
func (a *Action) Displacements() []float64 { return a.displacements }

// Forces returns the force vector, nil when not computed.
func (a *Action) Forces() []float64 { return a.forces }

// HasResults reports whether SetResults has run since the last free, even
// when every stored vector was nil.
func (a *Action) HasResults() bool {
	return a.solved
}
