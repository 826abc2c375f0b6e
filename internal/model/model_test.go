package model

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/numeric"
	"github.com/alexiusacademia/goframe/internal/structure"
	"github.com/alexiusacademia/goframe/internal/verify"
)

func TestBuildBeam(t *testing.T) {
	m, err := Load("testdata/beam.yaml")
	require.NoError(t, err)
	p, err := m.Build()
	require.NoError(t, err)

	s := p.Structure()
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, 2, s.BarCount())
	pos, err := s.Position(2)
	require.NoError(t, err)
	assert.Equal(t, structure.Vec3{X: 10}, pos)
	assert.Equal(t, verify.OK, p.Verify().Severity())

	q, ok := p.ActionByName("Q")
	require.True(t, ok)
	psi0, err := q.PsiValue(action.Psi0)
	require.NoError(t, err)
	assert.Equal(t, numeric.UserValue(0.8), psi0)
	psi1, err := q.PsiValue(action.Psi1)
	require.NoError(t, err)
	assert.Equal(t, numeric.Computed, psi1.Source)
	assert.True(t, q.HasResults())

	require.NoError(t, p.Compute(context.Background(), m.Solver()))
	assert.Equal(t, -0.002, q.Displacements()[7])

	res, err := p.CombineAll(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)

	// BC is 6 m long: G gives 5·36/8 = 22.5 and Q gives 12·3·3/6 = 18 at midspan.
	mz, err := res[0].Function(action.Mz, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.35*22.5+1.5*18, mz.Eval(3), 1e-9)
	assert.InDelta(t, 1.5*-0.002, res[0].Displacements()[7], 1e-12)

	mz, err = res[1].Function(action.Mz, 1)
	require.NoError(t, err)
	assert.InDelta(t, 22.5+0.8*18, mz.Eval(3), 1e-9)
}

func TestSolverUsesLoadVectorWithoutStoredEfforts(t *testing.T) {
	m, err := Load("testdata/beam.yaml")
	require.NoError(t, err)
	require.Equal(t, "Q", m.Actions[1].Name)
	m.Actions[1].Results = nil
	p, err := m.Build()
	require.NoError(t, err)
	require.NoError(t, p.Compute(context.Background(), m.Solver()))

	g, _ := p.ActionByName("G")
	assert.Equal(t, make([]float64, 18), g.NodalEfforts())
	assert.Nil(t, g.Displacements())

	q, _ := p.ActionByName("Q")
	require.Len(t, q.NodalEfforts(), 18)
	assert.Equal(t, -10.0, q.NodalEfforts()[7], "nodal load on B")

	res, err := p.CombineAll(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.5*-10, res[0].NodalEfforts()[7], 1e-12)
}

func TestParseJSON(t *testing.T) {
	src := `{
		"supports": [{"name": "fixed", "restrain": ["UX", "UY", "UZ", "RX", "RY", "RZ"]}],
		"nodes": [
			{"name": "A", "position": [0, 0, 0], "support": "fixed"},
			{"name": "B", "position": [0, 3, 0]}
		],
		"bars": [{"name": "col", "start": "A", "end": "B"}],
		"actions": [{"name": "W", "category": 13, "loads": [{"type": "point", "bar": "col", "at": 1.5, "p": 4, "direction": "z"}]}]
	}`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	p, err := m.Build()
	require.NoError(t, err)
	require.NoError(t, p.Populate())

	w, ok := p.ActionByName("W")
	require.True(t, ok)
	tz, err := w.Function(action.Tz, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, tz.Eval(1), 1e-9)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("nodes:\n  - name: A\n    posit1on: [0, 0, 0]\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		target error
	}{
		{"unknown node", "nodes: [{name: A}]\nbars: [{name: b, start: A, end: Z}]", ErrUnknownName},
		{"duplicate node", "nodes: [{name: A}, {name: A}]", ErrDuplicateName},
		{"relative cycle", "nodes: [{name: A, relative_to: B}, {name: B, relative_to: A}]", structure.ErrRelativeCycle},
		{"load type", "nodes: [{name: A}, {name: B, position: [1, 0, 0]}]\nbars: [{name: b, start: A, end: B}]\nactions: [{name: G, loads: [{type: thermal, bar: b}]}]", ErrLoadType},
		{"combination action", "combinations: [{name: c, entries: [{action: nope, weight: 1}]}]", ErrUnknownName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tc.src))
			require.NoError(t, err)
			_, err = m.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestPsiOverridesApplyInOrder(t *testing.T) {
	src := "actions: [{name: Q, category: 3, psi: {psi2: -2, psi1: 0.4, psi0: -1}}]"
	for i := 0; i < 20; i++ {
		m, err := Parse(strings.NewReader(src))
		require.NoError(t, err)
		_, err = m.Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, action.ErrInvalidPsi))
		assert.Contains(t, err.Error(), `action "Q" psi0`)
	}
}

func TestEmptyModel(t *testing.T) {
	m, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	p, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, verify.Critical, p.Verify().Severity())
}
