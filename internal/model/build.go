package model

import (
	"context"
	"strings"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/combination"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/load"
	"github.com/alexiusacademia/goframe/internal/project"
	"github.com/alexiusacademia/goframe/internal/structure"
)

var (
	ErrUnknownName   = errors.New(errors.CodeInvalidArgument, "reference to an undefined name")
	ErrDuplicateName = errors.New(errors.CodeInvalidArgument, "name defined twice")
	ErrLoadType      = errors.New(errors.CodeInvalidArgument, "unknown load type")
)

type names struct {
	supports map[string]structure.SupportID
	nodes    map[string]structure.NodeID
	bars     map[string]structure.BarID
}

func lookup[T any](kind string, m map[string]T, name string) (T, error) {
	v, ok := m[name]
	if !ok {
		return v, errors.Wrapf(ErrUnknownName, "%s %q", kind, name)
	}
	return v, nil
}

// Build creates a project holding the structure, actions and combinations of
// the model. Diagrams are not populated.
func (m *Model) Build(opts ...project.Option) (*project.Project, error) {
	p := project.New(opts...)
	var n names
	if err := p.EditStructure(func(s *structure.Structure) error {
		var err error
		n, err = m.buildStructure(s)
		return err
	}); err != nil {
		return nil, err
	}
	for _, a := range m.Actions {
		if err := a.build(p, n); err != nil {
			return nil, errors.Wrapf(err, "action %q", a.Name)
		}
	}
	for _, c := range m.Combinations {
		comb := combination.Combination{Name: c.Name}
		for i, e := range c.Entries {
			a, ok := p.ActionByName(e.Action)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownName, "combination %q entry %d: action %q", c.Name, i, e.Action)
			}
			sel, err := action.ParsePsiSelector(strings.ToLower(e.Psi))
			if err != nil {
				return nil, errors.Wrapf(err, "combination %q entry %d", c.Name, i)
			}
			comb.Entries = append(comb.Entries, combination.Entry{Action: a, Psi: sel, Weight: e.Weight})
		}
		if err := p.AddCombination(comb); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (m *Model) buildStructure(s *structure.Structure) (names, error) {
	n := names{
		supports: make(map[string]structure.SupportID),
		nodes:    make(map[string]structure.NodeID),
		bars:     make(map[string]structure.BarID),
	}
	for _, sup := range m.Supports {
		if _, dup := n.supports[sup.Name]; dup {
			return n, errors.Wrapf(ErrDuplicateName, "support %q", sup.Name)
		}
		def, err := sup.restraints()
		if err != nil {
			return n, err
		}
		n.supports[sup.Name] = s.AddSupport(def)
	}

	// Nodes are created absolute first so relative references may point
	// forward in the file.
	for i, node := range m.Nodes {
		if node.Name != "" {
			if _, dup := n.nodes[node.Name]; dup {
				return n, errors.Wrapf(ErrDuplicateName, "node %q", node.Name)
			}
		}
		id, err := s.AddNode(node.Name, vec(node.Position))
		if err != nil {
			return n, errors.Wrapf(err, "node %d", i)
		}
		if node.Name != "" {
			n.nodes[node.Name] = id
		}
	}
	for i, node := range m.Nodes {
		id := structure.NodeID(i)
		if node.RelativeTo != "" {
			ref, err := lookup("node", n.nodes, node.RelativeTo)
			if err != nil {
				return n, err
			}
			if err := s.SetRelative(id, ref, vec(node.Position)); err != nil {
				return n, errors.Wrapf(err, "node %q", node.Name)
			}
		}
		if node.Support != "" {
			sup, err := lookup("support", n.supports, node.Support)
			if err != nil {
				return n, err
			}
			if err := s.SetSupport(id, sup); err != nil {
				return n, err
			}
		}
	}

	for _, b := range m.Bars {
		if b.Name != "" {
			if _, dup := n.bars[b.Name]; dup {
				return n, errors.Wrapf(ErrDuplicateName, "bar %q", b.Name)
			}
		}
		start, err := lookup("node", n.nodes, b.Start)
		if err != nil {
			return n, err
		}
		end, err := lookup("node", n.nodes, b.End)
		if err != nil {
			return n, err
		}
		mid := make([]structure.NodeID, 0, len(b.Intermediate))
		for _, name := range b.Intermediate {
			id, err := lookup("node", n.nodes, name)
			if err != nil {
				return n, err
			}
			mid = append(mid, id)
		}
		id, err := s.AddBar(b.Name, start, end, mid...)
		if err != nil {
			return n, errors.Wrapf(err, "bar %q", b.Name)
		}
		if b.Name != "" {
			n.bars[b.Name] = id
		}
	}
	return n, nil
}

func vec(p [3]float64) structure.Vec3 {
	return structure.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func (s Support) restraints() (structure.Support, error) {
	out := structure.Support{Name: s.Name}
	for _, r := range s.Restrain {
		switch strings.ToLower(r) {
		case "ux":
			out.Ux = true
		case "uy":
			out.Uy = true
		case "uz":
			out.Uz = true
		case "rx":
			out.Rx = true
		case "ry":
			out.Ry = true
		case "rz":
			out.Rz = true
		default:
			return out, errors.Newf(errors.CodeInvalidArgument, "support %q: unknown restraint %q", s.Name, r)
		}
	}
	return out, nil
}

func (a Action) build(p *project.Project, n names) error {
	category := -1
	if a.Category != nil {
		category = *a.Category
	}
	act, err := p.AddAction(a.Name, category)
	if err != nil {
		return err
	}
	for i, v := range []*float64{a.Psi.Psi0, a.Psi.Psi1, a.Psi.Psi2} {
		if v == nil {
			continue
		}
		sel := action.Psi0 + action.PsiSelector(i)
		if err := act.SetPsi(sel, *v); err != nil {
			return errors.Wrapf(err, "action %q %s", a.Name, sel)
		}
	}
	for i, l := range a.Loads {
		ld, err := l.build(p.Structure(), n)
		if err != nil {
			return errors.Wrapf(err, "load %d", i)
		}
		if err := act.AddLoad(ld); err != nil {
			return err
		}
	}
	if a.Results != nil {
		r := a.Results
		if err := act.SetResults(r.NodalEfforts, r.Displacements, r.Forces); err != nil {
			return err
		}
	}
	return nil
}

func parseDirection(s string) (load.Direction, error) {
	switch strings.ToLower(s) {
	case "", "y":
		return load.LocalY, nil
	case "z":
		return load.LocalZ, nil
	}
	return 0, errors.Wrapf(load.ErrDirection, "%q", s)
}

func (l LoadSpec) build(s *structure.Structure, n names) (action.Load, error) {
	switch strings.ToLower(l.Type) {
	case "uniform":
		bar, err := lookup("bar", n.bars, l.Bar)
		if err != nil {
			return nil, err
		}
		dir, err := parseDirection(l.Direction)
		if err != nil {
			return nil, err
		}
		end := 0.0
		if l.End != nil {
			end = *l.End
		} else if end, err = s.BarLength(bar); err != nil {
			return nil, err
		}
		return load.UniformLoad{Member: int(bar), Start: l.Start, End: end, Q: l.Q, Direction: dir}, nil
	case "point":
		bar, err := lookup("bar", n.bars, l.Bar)
		if err != nil {
			return nil, err
		}
		dir, err := parseDirection(l.Direction)
		if err != nil {
			return nil, err
		}
		return load.PointLoad{Member: int(bar), A: l.At, P: l.P, Direction: dir}, nil
	case "nodal":
		node, err := lookup("node", n.nodes, l.Node)
		if err != nil {
			return nil, err
		}
		return load.NodalLoad{Node: int(node), Force: l.Force}, nil
	}
	return nil, errors.Wrapf(ErrLoadType, "%q", l.Type)
}

// Solver returns a solver that hands back the results stored in the model
// file. When a file stores no nodal efforts for an action, the nodal load
// vector assembled from its loads is used instead.
func (m *Model) Solver() project.Solver {
	stored := make(map[string]*Results, len(m.Actions))
	for _, a := range m.Actions {
		stored[a.Name] = a.Results
	}
	return project.SolverFunc(func(_ context.Context, s *structure.Structure, a *action.Action) (project.Result, error) {
		var res project.Result
		if r := stored[a.Name]; r != nil {
			res = project.Result{NodalEfforts: r.NodalEfforts, Displacements: r.Displacements, Forces: r.Forces}
		}
		if res.NodalEfforts == nil {
			vec, err := a.LoadVector(s)
			if err != nil {
				return project.Result{}, err
			}
			res.NodalEfforts = vec
		}
		return res, nil
	})
}
