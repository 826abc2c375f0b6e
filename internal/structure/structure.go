// Package structure is the node/bar/support registry. It owns every value;
// references between objects are stable integer handles, never pointers.
package structure

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/errors"
)

// NodeID, BarID and SupportID are stable indices into the registry.
type (
	NodeID    int
	BarID     int
	SupportID int
)

// NoSupport and NoNode mark an absent reference.
const (
	NoSupport SupportID = -1
	NoNode    NodeID    = -1
)

var (
	ErrUnknownNode    = errors.New(errors.CodeInvalidArgument, "unknown node")
	ErrUnknownBar     = errors.New(errors.CodeInvalidArgument, "unknown bar")
	ErrUnknownSupport = errors.New(errors.CodeInvalidArgument, "unknown support")
	ErrRelativeCycle  = errors.New(errors.CodeInvariantViolation, "relative node positions form a cycle")
	ErrNotFinite      = errors.New(errors.CodeInvalidArgument, "coordinate is not a finite number")
)

// Vec3 is a point or offset in global axes.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v − o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) finite() bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Support restrains degrees of freedom at the nodes that reference it.
type Support struct {
	Name       string
	Ux, Uy, Uz bool
	Rx, Ry, Rz bool
}

// Node is either absolute (RelativeTo == NoNode, Position is global) or
// relative (Position is an offset from RelativeTo).
type Node struct {
	Name       string
	Position   Vec3
	RelativeTo NodeID
	Support    SupportID
}

// Bar connects Start to End, optionally through intermediate nodes.
type Bar struct {
	Name         string
	Start        NodeID
	End          NodeID
	Intermediate []NodeID
}

// Nodes returns every node the bar touches.
func (b Bar) Nodes() []NodeID {
	ids := make([]NodeID, 0, 2+len(b.Intermediate))
	ids = append(ids, b.Start)
	ids = append(ids, b.Intermediate...)
	return append(ids, b.End)
}

// Structure owns the nodes, bars and supports.
type Structure struct {
	nodes    []Node
	bars     []Bar
	supports []Support
}

// New returns an empty structure.
func New() *Structure {
	return &Structure{}
}

// AddSupport registers a support.
func (s *Structure) AddSupport(sup Support) SupportID {
	s.supports = append(s.supports, sup)
	return SupportID(len(s.supports) - 1)
}

// AddNode registers an absolute node.
func (s *Structure) AddNode(name string, p Vec3) (NodeID, error) {
	return s.addNode(Node{Name: name, Position: p, RelativeTo: NoNode, Support: NoSupport})
}

// AddRelativeNode registers a node positioned at offset from ref.
func (s *Structure) AddRelativeNode(name string, ref NodeID, offset Vec3) (NodeID, error) {
	if !s.validNode(ref) {
		return NoNode, errors.Wrapf(ErrUnknownNode, "reference %d", ref)
	}
	return s.addNode(Node{Name: name, Position: offset, RelativeTo: ref, Support: NoSupport})
}

func (s *Structure) addNode(n Node) (NodeID, error) {
	if !n.Position.finite() {
		return NoNode, errors.Wrapf(ErrNotFinite, "node %q", n.Name)
	}
	s.nodes = append(s.nodes, n)
	return NodeID(len(s.nodes) - 1), nil
}

// SetSupport attaches sup to node; NoSupport detaches.
func (s *Structure) SetSupport(node NodeID, sup SupportID) error {
	if !s.validNode(node) {
		return errors.Wrapf(ErrUnknownNode, "%d", node)
	}
	if sup != NoSupport && (sup < 0 || int(sup) >= len(s.supports)) {
		return errors.Wrapf(ErrUnknownSupport, "%d", sup)
	}
	s.nodes[node].Support = sup
	return nil
}

// AddBar registers a bar between existing nodes.
func (s *Structure) AddBar(name string, start, end NodeID, intermediate ...NodeID) (BarID, error) {
	b := Bar{Name: name, Start: start, End: end, Intermediate: append([]NodeID(nil), intermediate...)}
	for _, id := range b.Nodes() {
		if !s.validNode(id) {
			return -1, errors.Wrapf(ErrUnknownNode, "bar %q node %d", name, id)
		}
	}
	s.bars = append(s.bars, b)
	return BarID(len(s.bars) - 1), nil
}

func (s *Structure) validNode(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

// NodeCount returns the number of nodes.
func (s *Structure) NodeCount() int { return len(s.nodes) }

// BarCount returns the number of bars.
func (s *Structure) BarCount() int { return len(s.bars) }

// MemberCount is BarCount; it lets a Structure serve as load geometry.
func (s *Structure) MemberCount() int { return len(s.bars) }

// Node returns a copy of a node.
func (s *Structure) Node(id NodeID) (Node, error) {
	if !s.validNode(id) {
		return Node{}, errors.Wrapf(ErrUnknownNode, "%d", id)
	}
	return s.nodes[id], nil
}

// Bar returns a copy of a bar.
func (s *Structure) Bar(id BarID) (Bar, error) {
	if id < 0 || int(id) >= len(s.bars) {
		return Bar{}, errors.Wrapf(ErrUnknownBar, "%d", id)
	}
	b := s.bars[id]
	b.Intermediate = append([]NodeID(nil), b.Intermediate...)
	return b, nil
}

// Support returns the support attached to a node, if any.
func (s *Structure) Support(id NodeID) (Support, bool) {
	if !s.validNode(id) || s.nodes[id].Support == NoSupport {
		return Support{}, false
	}
	return s.supports[s.nodes[id].Support], true
}

// Position resolves the global position of a node, following relative
// references.
func (s *Structure) Position(id NodeID) (Vec3, error) {
	var p Vec3
	seen := make(map[NodeID]bool)
	for id != NoNode {
		if !s.validNode(id) {
			return Vec3{}, errors.Wrapf(ErrUnknownNode, "%d", id)
		}
		if seen[id] {
			return Vec3{}, errors.Wrapf(ErrRelativeCycle, "at node %d", id)
		}
		seen[id] = true
		n := s.nodes[id]
		p = p.Add(n.Position)
		id = n.RelativeTo
	}
	return p, nil
}

// SetRelative repositions node as an offset from ref, refusing cycles.
func (s *Structure) SetRelative(node, ref NodeID, offset Vec3) error {
	if !s.validNode(node) {
		return errors.Wrapf(ErrUnknownNode, "%d", node)
	}
	if ref != NoNode && !s.validNode(ref) {
		return errors.Wrapf(ErrUnknownNode, "reference %d", ref)
	}
	if !offset.finite() {
		return errors.Wrapf(ErrNotFinite, "node %d", node)
	}
	old := s.nodes[node]
	s.nodes[node].Position = offset
	s.nodes[node].RelativeTo = ref
	if _, err := s.Position(node); err != nil {
		s.nodes[node] = old
		return err
	}
	return nil
}

// BarLength returns the distance between a bar's end nodes.
func (s *Structure) BarLength(id BarID) (float64, error) {
	b, err := s.Bar(id)
	if err != nil {
		return 0, err
	}
	p0, err := s.Position(b.Start)
	if err != nil {
		return 0, err
	}
	p1, err := s.Position(b.End)
	if err != nil {
		return 0, err
	}
	return p1.Sub(p0).Norm(), nil
}

// MemberLength implements action.Geometry.
func (s *Structure) MemberLength(member int) (float64, error) {
	return s.BarLength(BarID(member))
}
