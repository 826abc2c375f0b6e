package load

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
)

type beam struct {
	lengths []float64
	nodes   int
}

func (b beam) NodeCount() int   { return b.nodes }
func (b beam) MemberCount() int { return len(b.lengths) }
func (b beam) MemberLength(m int) (float64, error) {
	return b.lengths[m], nil
}

func populate(t *testing.T, g action.Geometry, loads ...action.Load) *action.Action {
	t.Helper()
	a := action.New("case")
	for _, l := range loads {
		require.NoError(t, a.AddLoad(l))
	}
	require.NoError(t, a.Populate(g))
	return a
}

func value(t *testing.T, a *action.Action, slot action.Slot, member int, x float64) float64 {
	t.Helper()
	f, err := a.Function(slot, member)
	require.NoError(t, err)
	return f.Eval(x)
}

func TestFullUniformLoad(t *testing.T) {
	const q, l = 10.0, 6.0
	a := populate(t, beam{lengths: []float64{l}, nodes: 2}, UniformLoad{Member: 0, Start: 0, End: l, Q: q})

	assert.InDelta(t, q*l/2, value(t, a, action.Ty, 0, 0), 1e-9)
	assert.InDelta(t, 0.0, value(t, a, action.Ty, 0, l/2), 1e-9)
	assert.InDelta(t, -q*l/2, value(t, a, action.Ty, 0, l), 1e-9)
	assert.InDelta(t, q*l*l/8, value(t, a, action.Mz, 0, l/2), 1e-9)
	assert.InDelta(t, 0.0, value(t, a, action.Mz, 0, l), 1e-9)

	f, _ := a.Function(action.Mz, 0)
	f.Compact()
	assert.Equal(t, 1, f.Len())
}

func TestPartialUniformLoad(t *testing.T) {
	const q, l, s, e = 4.0, 10.0, 2.0, 5.0
	a := populate(t, beam{lengths: []float64{l}, nodes: 2}, UniformLoad{Member: 0, Start: s, End: e, Q: q, Direction: LocalZ})

	w := q * (e - s)
	c := (s + e) / 2
	ra := w * (l - c) / l
	for _, x := range []float64{1, 3, 4.5, 7, 9.9} {
		want := ra * x
		if x > s {
			d := math.Min(x, e) - s
			want -= q * d * (x - (s + d/2))
		}
		assert.InDelta(t, want, value(t, a, action.My, 0, x), 1e-9, "x=%v", x)
	}
	assert.InDelta(t, 0.0, value(t, a, action.My, 0, l), 1e-9)
	assert.InDelta(t, ra-w, value(t, a, action.Tz, 0, 8), 1e-9)

	mz, _ := a.Function(action.Mz, 0)
	assert.True(t, mz.IsEmpty())
}

func TestPointLoad(t *testing.T) {
	const p, l = 20.0, 4.0
	g := beam{lengths: []float64{3, l}, nodes: 3}

	t.Run("midspan", func(t *testing.T) {
		a := populate(t, g, PointLoad{Member: 1, A: l / 2, P: p})
		assert.InDelta(t, p*l/4, value(t, a, action.Mz, 1, l/2), 1e-9)
		assert.InDelta(t, p/2, value(t, a, action.Ty, 1, l/2), 1e-9, "left value at the load")
		assert.InDelta(t, -p/2, value(t, a, action.Ty, 1, l/2+0.1), 1e-9)
		f, _ := a.Function(action.Mz, 0)
		assert.True(t, f.IsEmpty())
	})

	t.Run("superposed loads", func(t *testing.T) {
		a := populate(t, g, PointLoad{Member: 1, A: 1, P: p}, PointLoad{Member: 1, A: 3, P: p})
		assert.InDelta(t, p, value(t, a, action.Mz, 1, 2), 1e-9)
		assert.InDelta(t, 0.0, value(t, a, action.Ty, 1, 2), 1e-9)
	})

	t.Run("at the support", func(t *testing.T) {
		a := populate(t, g, PointLoad{Member: 1, A: 0, P: p})
		assert.InDelta(t, 0.0, value(t, a, action.Mz, 1, 2), 1e-9)
	})
}

func TestLoadValidation(t *testing.T) {
	g := beam{lengths: []float64{2, 0}, nodes: 2}
	cases := []struct {
		name   string
		load   action.Load
		target error
	}{
		{"unknown member", PointLoad{Member: 5, A: 1, P: 1}, ErrUnknownMember},
		{"outside", PointLoad{Member: 0, A: 2.5, P: 1}, ErrPosition},
		{"reversed", UniformLoad{Member: 0, Start: 1.5, End: 0.5, Q: 1}, ErrPosition},
		{"direction", PointLoad{Member: 0, A: 1, P: 1, Direction: 7}, ErrDirection},
		{"NaN", UniformLoad{Member: 0, Start: 0, End: 1, Q: math.NaN()}, ErrNotFinite},
		{"unknown node", NodalLoad{Node: 4}, ErrUnknownNode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := action.New("case")
			require.NoError(t, a.AddLoad(tc.load))
			err := a.Populate(g)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
			assert.False(t, a.Initialized())
		})
	}

	a := action.New("case")
	require.NoError(t, a.AddLoad(PointLoad{Member: 1, A: 0, P: 1}))
	assert.True(t, errors.HasCode(a.Populate(g), errors.CodeInvalidArgument))
}

func TestNodalLoad(t *testing.T) {
	g := beam{lengths: []float64{1}, nodes: 2}
	a := populate(t, g,
		NodalLoad{Node: 1, Force: [6]float64{0, -10, 0, 0, 0, 2}},
		NodalLoad{Node: 1, Force: [6]float64{1}},
		PointLoad{Member: 0, A: 0.5, P: 3},
	)
	vec, err := a.LoadVector(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 1, -10, 0, 0, 0, 2}, vec)
}
