package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/eurocode"
)

func categorized(t *testing.T, name string, code int) *action.Action {
	t.Helper()
	a := action.New(name)
	require.NoError(t, a.SetCategory(code, eurocode.EN1990()))
	return a
}

func TestClassify(t *testing.T) {
	table := eurocode.EN1990()
	cases := []struct {
		code int
		want LoadType
		ok   bool
	}{
		{0, Dead, true},
		{3, Live, true},
		{9, Roof, true},
		{13, Wind, true},
		{16, Earthquake, true},
		{11, 0, false},
		{15, 0, false},
	}
	for _, tc := range cases {
		got, ok, err := Classify(tc.code, table)
		require.NoError(t, err)
		assert.Equal(t, tc.ok, ok, "code %d", tc.code)
		if tc.ok {
			assert.Equal(t, tc.want, got, "code %d", tc.code)
		}
	}
	_, _, err := Classify(-1, table)
	assert.ErrorIs(t, err, eurocode.ErrUnknownCategory)
}

func TestClassifyUsesCategoryData(t *testing.T) {
	table, err := eurocode.NewTable([]eurocode.Category{
		{Code: 0, Kind: eurocode.Permanent},
		{Code: 9, Kind: eurocode.Variable, Origin: eurocode.OriginSnow, Psi0: 0.5},
		{Code: 13, Kind: eurocode.Variable, Psi0: 0.6},
		{Code: 40, Kind: eurocode.Variable, Origin: eurocode.OriginRain, Psi0: 0.7},
		{Code: 41, Kind: eurocode.Variable, Origin: eurocode.OriginImposed, Psi0: 0.7},
		{Code: 42, Kind: eurocode.Variable, Origin: eurocode.OriginWind, Psi0: 0.6},
		{Code: 43, Kind: eurocode.Variable, Origin: eurocode.OriginRoof},
	})
	require.NoError(t, err)

	cases := []struct {
		code int
		want LoadType
		ok   bool
	}{
		{0, Dead, true},
		{9, 0, false},
		{13, 0, false},
		{40, Rain, true},
		{41, Live, true},
		{42, Wind, true},
		{43, Roof, true},
	}
	for _, tc := range cases {
		got, ok, err := Classify(tc.code, table)
		require.NoError(t, err)
		assert.Equal(t, tc.ok, ok, "code %d", tc.code)
		if tc.ok {
			assert.Equal(t, tc.want, got, "code %d", tc.code)
		}
	}
}

func TestGenerate(t *testing.T) {
	d := categorized(t, "D", 0)
	l := categorized(t, "L", 3)
	snow := categorized(t, "S", 12)

	combs, skipped, err := Generate([]*action.Action{d, l, snow}, eurocode.EN1990(), LoadCombinations)
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, skipped)

	var names []string
	for _, c := range combs {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"NSCP 1: 1.4D",
		"NSCP 2a: 1.2D + 1.6L + 0.5Lr",
		"NSCP 3a: 1.2D + 1.6Lr + 1.0L",
		"NSCP 3b: 1.2D + 1.6Lr + 0.5W",
		"NSCP 6: 0.9D + 1.0W",
	}, names, "alternatives equal on the present loads appear once")

	require.Len(t, combs[1].Entries, 2)
	assert.Same(t, d, combs[1].Entries[0].Action)
	assert.Equal(t, 1.2, combs[1].Entries[0].Weight)
	assert.Equal(t, 1.6, combs[1].Entries[1].Weight)
	assert.Equal(t, action.PsiNone, combs[1].Entries[1].Psi)

	combs, _, err = Generate([]*action.Action{l}, eurocode.EN1990(), SimplifiedCombinations)
	require.NoError(t, err)
	require.Len(t, combs, 1)
	assert.Equal(t, "NSCP 2: 1.2D + 1.6L", combs[0].Name)
}

func TestGenerateSplitsAlternatives(t *testing.T) {
	rows := append(eurocode.EN1990().Categories(),
		eurocode.Category{Code: 40, Description: "Rain", Kind: eurocode.Variable, Origin: eurocode.OriginRain, Psi0: 0.7})
	table, err := eurocode.NewTable(rows)
	require.NoError(t, err)

	var actions []*action.Action
	for _, c := range []struct {
		name string
		code int
	}{{"D", 0}, {"L", 3}, {"Lr", 9}, {"W", 13}, {"R", 40}} {
		a := action.New(c.name)
		require.NoError(t, a.SetCategory(c.code, table))
		actions = append(actions, a)
	}

	combs, skipped, err := Generate(actions, table, LoadCombinations)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, combs, len(LoadCombinations))

	weights := func(c int) map[string]float64 {
		w := map[string]float64{}
		for _, e := range combs[c].Entries {
			w[e.Action.Name] = e.Weight
		}
		return w
	}
	assert.Equal(t, map[string]float64{"D": 1.2, "L": 1.6, "Lr": 0.5}, weights(1))
	assert.Equal(t, map[string]float64{"D": 1.2, "L": 1.6, "R": 0.5}, weights(2))
	assert.Equal(t, map[string]float64{"D": 1.2, "Lr": 1.6, "W": 0.5}, weights(4))
	assert.Equal(t, map[string]float64{"D": 1.2, "R": 1.6, "L": 1.0}, weights(5))
	assert.Equal(t, map[string]float64{"D": 1.2, "W": 1.0, "L": 1.0, "R": 0.5}, weights(8))
	for i := range combs {
		w := weights(i)
		_, lr := w["Lr"]
		_, r := w["R"]
		assert.False(t, lr && r, "%s takes roof live load and rain together", combs[i].Name)
	}
}

func TestLoadTypeString(t *testing.T) {
	assert.Equal(t, "Lr", Roof.String())
	assert.Equal(t, "?", LoadType(42).String())
}
