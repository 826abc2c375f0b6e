package load

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
)

// NodalLoad applies forces and moments (Fx, Fy, Fz, Mx, My, Mz) to a node in
// global axes. It feeds the solver's load vector and leaves member diagrams
// untouched.
type NodalLoad struct {
	Node  int
	Force [action.DOFPerNode]float64
}

func (n NodalLoad) Describe() string {
	return fmt.Sprintf("nodal load %v on node %d", n.Force, n.Node)
}

// Contribute only validates the target node.
func (n NodalLoad) Contribute(_ *action.Action, g action.Geometry) error {
	if n.Node < 0 || n.Node >= g.NodeCount() {
		return errors.Wrapf(ErrUnknownNode, "node %d of %d", n.Node, g.NodeCount())
	}
	if !finite(n.Force[:]...) {
		return errors.Wrapf(ErrNotFinite, "%s", n.Describe())
	}
	return nil
}

// AddToLoadVector adds the six components at the node's position.
func (n NodalLoad) AddToLoadVector(vec []float64, g action.Geometry) error {
	if err := n.Contribute(nil, g); err != nil {
		return err
	}
	base := n.Node * action.DOFPerNode
	if base+action.DOFPerNode > len(vec) {
		return errors.Wrapf(ErrUnknownNode, "node %d outside a vector of %d entries", n.Node, len(vec))
	}
	for k, f := range n.Force {
		vec[base+k] += f
	}
	return nil
}
