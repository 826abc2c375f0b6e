package verify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/alexiusacademia/goframe/internal/numeric"
	"github.com/alexiusacademia/goframe/internal/structure"
)

// Block is a maximal connected set of nodes and bars.
type Block struct {
	Nodes []structure.NodeID
	Bars  []structure.BarID
}

// Run performs every check on s.
func Run(s *structure.Structure) *Report {
	return RunWithTolerance(s, numeric.Default())
}

// RunWithTolerance performs every check using tol for coordinate comparisons.
func RunWithTolerance(s *structure.Structure, tol numeric.Tolerance) *Report {
	r := &Report{}
	checkConnectivity(r, s)
	positions := resolvePositions(r, s)
	checkDuplicates(r, s, positions, tol)
	checkZeroLength(r, s, positions, tol)
	checkSupports(r, s)
	return r
}

// Blocks splits the node/bar incidence graph into connected blocks. A bar
// touches its start, end and intermediate nodes. Blocks are ordered by their
// lowest node.
func Blocks(s *structure.Structure) []Block {
	nNodes := s.NodeCount()
	g := simple.NewUndirectedGraph()
	for i := 0; i < nNodes; i++ {
		g.AddNode(simple.Node(i))
	}
	for j := 0; j < s.BarCount(); j++ {
		b, err := s.Bar(structure.BarID(j))
		if err != nil {
			continue
		}
		barNode := simple.Node(int64(nNodes + j))
		g.AddNode(barNode)
		for _, n := range b.Nodes() {
			g.SetEdge(g.NewEdge(simple.Node(int64(n)), barNode))
		}
	}

	var blocks []Block
	for _, comp := range topo.ConnectedComponents(g) {
		var blk Block
		for _, n := range comp {
			id := int(n.ID())
			if id < nNodes {
				blk.Nodes = append(blk.Nodes, structure.NodeID(id))
			} else {
				blk.Bars = append(blk.Bars, structure.BarID(id-nNodes))
			}
		}
		sort.Slice(blk.Nodes, func(a, b int) bool { return blk.Nodes[a] < blk.Nodes[b] })
		sort.Slice(blk.Bars, func(a, b int) bool { return blk.Bars[a] < blk.Bars[b] })
		blocks = append(blocks, blk)
	}
	sort.Slice(blocks, func(a, b int) bool { return blocks[a].Nodes[0] < blocks[b].Nodes[0] })
	return blocks
}

func checkConnectivity(r *Report, s *structure.Structure) {
	if s.NodeCount() == 0 {
		r.add(CheckConnectivity, Critical, "structure has no nodes")
		return
	}
	blocks := Blocks(s)
	if len(blocks) == 1 {
		r.add(CheckConnectivity, OK, "")
		return
	}
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		nodes := make([]int, len(b.Nodes))
		for k, n := range b.Nodes {
			nodes[k] = int(n)
		}
		bars := make([]int, len(b.Bars))
		for k, n := range b.Bars {
			bars[k] = int(n)
		}
		parts[i] = fmt.Sprintf("block %d: nodes %s", i+1, Ranges(nodes))
		if len(bars) > 0 {
			parts[i] += ", bars " + Ranges(bars)
		}
	}
	r.add(CheckConnectivity, Critical, "%d independent blocks (%s)", len(blocks), strings.Join(parts, "; "))
}

func resolvePositions(r *Report, s *structure.Structure) []*structure.Vec3 {
	out := make([]*structure.Vec3, s.NodeCount())
	for i := range out {
		p, err := s.Position(structure.NodeID(i))
		if err != nil {
			r.add(CheckPositions, Critical, "node %s: %v", nodeLabel(s, structure.NodeID(i)), err)
			continue
		}
		out[i] = &p
	}
	return out
}

func checkDuplicates(r *Report, s *structure.Structure, pos []*structure.Vec3, tol numeric.Tolerance) {
	found := false
	for i := 0; i < len(pos); i++ {
		if pos[i] == nil {
			continue
		}
		for j := i + 1; j < len(pos); j++ {
			if pos[j] == nil {
				continue
			}
			a, b := pos[i], pos[j]
			if tol.Equal(a.X, b.X) && tol.Equal(a.Y, b.Y) && tol.Equal(a.Z, b.Z) {
				found = true
				r.add(CheckDuplicates, Warning, "nodes %s and %s share coordinates (%g, %g, %g)",
					nodeLabel(s, structure.NodeID(i)), nodeLabel(s, structure.NodeID(j)), a.X, a.Y, a.Z)
			}
		}
	}
	if !found {
		r.add(CheckDuplicates, OK, "")
	}
}

func checkZeroLength(r *Report, s *structure.Structure, pos []*structure.Vec3, tol numeric.Tolerance) {
	found := false
	for j := 0; j < s.BarCount(); j++ {
		b, _ := s.Bar(structure.BarID(j))
		p0, p1 := pos[b.Start], pos[b.End]
		if p0 == nil || p1 == nil {
			continue
		}
		if l := p1.Sub(*p0).Norm(); tol.Zero(l) {
			found = true
			r.add(CheckZeroLength, Critical, "bar %s has zero length (%g)", barLabel(b, structure.BarID(j)), l)
		}
	}
	if !found {
		r.add(CheckZeroLength, OK, "")
	}
}

func checkSupports(r *Report, s *structure.Structure) {
	var ux, uy, uz bool
	for i := 0; i < s.NodeCount(); i++ {
		sup, ok := s.Support(structure.NodeID(i))
		if !ok {
			continue
		}
		ux = ux || sup.Ux
		uy = uy || sup.Uy
		uz = uz || sup.Uz
	}
	var free []string
	for _, d := range []struct {
		name string
		held bool
	}{{"Ux", ux}, {"Uy", uy}, {"Uz", uz}} {
		if !d.held {
			free = append(free, d.name)
		}
	}
	if len(free) > 0 {
		r.add(CheckSupports, Critical, "no support restrains %s", strings.Join(free, ", "))
		return
	}
	r.add(CheckSupports, OK, "")
}

func nodeLabel(s *structure.Structure, id structure.NodeID) string {
	n, err := s.Node(id)
	if err != nil || n.Name == "" {
		return strconv.Itoa(int(id))
	}
	return fmt.Sprintf("%d (%s)", id, n.Name)
}

func barLabel(b structure.Bar, id structure.BarID) string {
	if b.Name == "" {
		return strconv.Itoa(int(id))
	}
	return fmt.Sprintf("%d (%s)", id, b.Name)
}

// Ranges prints sorted integers compactly: [0 1 2 5 7 8] -> "0-2, 5, 7-8".
func Ranges(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	var parts []string
	start, prev := ids[0], ids[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, id := range ids[1:] {
		if id == prev+1 {
			prev = id
			continue
		}
		flush()
		start, prev = id, id
	}
	flush()
	return strings.Join(parts, ", ")
}
