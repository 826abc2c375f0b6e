package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/errors"
)

func linear(start, end, c0, c1 float64) *Function {
	return FromSegments(Segment{Start: start, End: end, Coef: Coefficients{c0, c1}})
}

func TestSplitAt(t *testing.T) {
	t.Run("empty function fails", func(t *testing.T) {
		err := New().SplitAt(1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyFunction))
		assert.True(t, errors.HasCode(err, errors.CodeInvariantViolation))
	})

	t.Run("at first start is a no-op", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.SplitAt(1e-13))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("before domain prepends zero segment", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.SplitAt(-1))
		require.Equal(t, 2, f.Len())
		assert.Equal(t, Segment{Start: -1, End: 0}, f.Segment(0))
	})

	t.Run("inside duplicates coefficients", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.SplitAt(0.5))
		require.Equal(t, 2, f.Len())
		assert.Equal(t, 0.5, f.Segment(0).End)
		assert.Equal(t, 0.5, f.Segment(1).Start)
		assert.Equal(t, f.Segment(0).Coef, f.Segment(1).Coef)
	})

	t.Run("at existing boundary is a no-op", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.SplitAt(1))
		require.NoError(t, f.SplitAt(0.1+0.2+0.7))
		assert.Equal(t, 2, f.Len())
	})

	t.Run("beyond domain appends zero segment", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.SplitAt(5))
		require.Equal(t, 2, f.Len())
		assert.Equal(t, Segment{Start: 2, End: 5}, f.Segment(1))
	})
}

func TestSplitIdempotent(t *testing.T) {
	for _, p := range []float64{-3, 0, 0.25, 1, 1.999999, 2, 7} {
		once := linear(0, 2, 3, 1)
		require.NoError(t, once.AddPolynomial(1, 2, Coefficients{0, 0, 4}, 0))
		require.NoError(t, once.SplitAt(p))

		twice := once.Clone()
		require.NoError(t, twice.SplitAt(p))
		assert.True(t, once.Equal(twice), "p=%v", p)
	}
}

func TestSplitThenCompactRoundTrip(t *testing.T) {
	base := linear(0, 4, 1, 2)
	require.NoError(t, base.AddPolynomial(2, 4, Coefficients{0, 0, 1}, 0))

	for _, p := range []float64{0.5, 1, 3, 3.5} {
		split := base.Clone()
		require.NoError(t, split.SplitAt(p))
		split.Compact()

		ref := base.Clone()
		ref.Compact()
		assert.True(t, ref.Equal(split), "p=%v", p)
	}
}

func TestAddPolynomial(t *testing.T) {
	t.Run("empty gets a single segment", func(t *testing.T) {
		f := New()
		require.NoError(t, f.AddPolynomial(0, 2, Coefficients{3, 1}, 0))
		assert.Equal(t, 1, f.Len())
		assert.InDelta(t, 4.0, f.Eval(1), 1e-12)
	})

	t.Run("degenerate range is a no-op", func(t *testing.T) {
		f := linear(0, 2, 3, 1)
		require.NoError(t, f.AddPolynomial(1, 1+1e-12, Coefficients{100}, 0))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("reversed range fails", func(t *testing.T) {
		err := New().AddPolynomial(2, 1, Coefficients{1}, 0)
		assert.True(t, errors.Is(err, ErrInvalidRange))
	})

	t.Run("NaN fails", func(t *testing.T) {
		f := New()
		err := f.AddPolynomial(0, 1, Coefficients{1, nan()}, 0)
		assert.True(t, errors.Is(err, ErrNotFinite))
		assert.True(t, f.IsEmpty())
	})

	t.Run("sub range accumulates", func(t *testing.T) {
		f := linear(0, 4, 1, 0)
		require.NoError(t, f.AddPolynomial(1, 3, Coefficients{2}, 0))
		require.Equal(t, 3, f.Len())
		assert.InDelta(t, 1.0, f.Eval(0.5), 1e-12)
		assert.InDelta(t, 3.0, f.Eval(2), 1e-12)
		assert.InDelta(t, 1.0, f.Eval(3.5), 1e-12)
	})

	t.Run("disjoint range fills the gap with zero", func(t *testing.T) {
		f := linear(0, 1, 1, 0)
		require.NoError(t, f.AddPolynomial(2, 3, Coefficients{5}, 0))
		require.Equal(t, 3, f.Len())
		assert.InDelta(t, 0.0, f.Eval(1.5), 1e-12)
		assert.InDelta(t, 5.0, f.Eval(2.5), 1e-12)
	})

	t.Run("point load exactly on a boundary", func(t *testing.T) {
		f := linear(0, 2, 0, 1)
		require.NoError(t, f.SplitAt(1))
		require.NoError(t, f.AddPolynomial(0, 1, Coefficients{1}, 0))
		require.NoError(t, f.AddPolynomial(1, 2, Coefficients{-1}, 0))
		assert.Equal(t, 2, f.Len())
		assert.InDelta(t, 2.0, f.Eval(1), 1e-12)
	})
}

func TestAddSuperpositionLinearity(t *testing.T) {
	a := Coefficients{1, -2, 0.5, 0, 0.1}
	b := Coefficients{-3, 0, 1, 0.25}
	const k = -2.5

	sum := linear(-1, 5, 0.3, 0.7)
	require.NoError(t, sum.AddPolynomial(0, 4, a, 0))
	require.NoError(t, sum.AddPolynomial(0, 4, b, 0))

	scaled := New()
	require.NoError(t, scaled.AddPolynomial(0, 4, a.Scale(k), 0))

	for _, x := range []float64{0.1, 1, 2.2, 3, 3.9} {
		base := 0.3 + 0.7*x
		assert.InEpsilon(t, base+a.Eval(x)+b.Eval(x), sum.Eval(x), 1e-9, "x=%v", x)
		assert.InEpsilon(t, k*a.Eval(x), scaled.Eval(x), 1e-9, "x=%v", x)
	}
}

func TestTranslate(t *testing.T) {
	c := Coefficients{1.5, -2, 0.75, 0.3, -0.2, 0.05, 0.01}
	for _, shift := range []float64{-1.5, 0, 0.4, 2, 10} {
		g := c.Translate(shift)
		for _, x := range []float64{-2, -0.5, 0, 1.25, 3, 7.5} {
			want := c.Eval(x - shift)
			assert.InDelta(t, want, g.Eval(x), 1e-9*max(1, abs(want)), "t=%v x=%v", shift, x)
		}
	}
}

func TestAddPolynomialWithTranslate(t *testing.T) {
	f := New()
	// p(u) = 2 + 3u on u ∈ [0, 1), placed at x ∈ [2, 3)
	require.NoError(t, f.AddPolynomial(0, 1, Coefficients{2, 3}, 2))
	lo, hi, ok := f.Domain()
	require.True(t, ok)
	assert.InDelta(t, 2.0, lo, 1e-12)
	assert.InDelta(t, 3.0, hi, 1e-12)
	assert.InDelta(t, 2.0, f.Eval(2), 1e-12)
	assert.InDelta(t, 3.5, f.Eval(2.5), 1e-12)
}

func TestAddScaled(t *testing.T) {
	src := linear(0, 2, 3, 1)
	require.NoError(t, src.AddPolynomial(1, 2, Coefficients{0, 0, 1}, 0))

	dst := New()
	require.NoError(t, dst.AddScaled(src, 2))
	require.NoError(t, dst.AddScaled(src, 0))
	assert.InDelta(t, 8.0, dst.Eval(1), 1e-12)
	assert.InDelta(t, 2*(3+1.5+2.25), dst.Eval(1.5), 1e-12)

	require.NoError(t, dst.AddScaled(dst, 1))
	assert.InDelta(t, 16.0, dst.Eval(1), 1e-12)

	assert.True(t, errors.Is(dst.AddScaled(nil, 1), ErrNilFunction))
}

func TestCompact(t *testing.T) {
	f := New()
	f.Compact()
	assert.Equal(t, 0, f.Len())

	f = linear(0, 1, 1, 1)
	require.NoError(t, f.SplitAt(0.3))
	require.NoError(t, f.SplitAt(0.6))
	require.NoError(t, f.AddPolynomial(1, 2, Coefficients{1, 1}, 0))
	require.NoError(t, f.AddPolynomial(2, 3, Coefficients{9}, 0))
	f.Compact()
	require.Equal(t, 2, f.Len())
	assert.Equal(t, 2.0, f.Segment(0).End)

	again := f.Clone()
	again.Compact()
	assert.True(t, f.Equal(again))
}

func TestEval(t *testing.T) {
	f := linear(0, 1, 1, 0)
	require.NoError(t, f.AddPolynomial(1, 2, Coefficients{5}, 0))

	assert.Equal(t, 0.0, New().Eval(3))
	assert.InDelta(t, 1.0, f.Eval(1), 1e-12, "left segment wins at a boundary")
	assert.InDelta(t, 5.0, f.Eval(1.0000001), 1e-12)
	assert.InDelta(t, 5.0, f.Eval(2), 1e-12)
	assert.Equal(t, 0.0, f.Eval(-1))
	assert.Equal(t, 0.0, f.Eval(2.5))
}

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		f    *Function
		want string
	}{
		{"empty", New(), "0"},
		{"single", linear(0, 2, 3, 1), "3.00+1.00*x"},
		{"negative terms", FromSegments(Segment{0, 1, Coefficients{-1, 0, -2.5, 0, 0, 0, 1}}), "-1.00-2.50*x^2+1.00*x^6"},
		{"no constant", FromSegments(Segment{0, 1, Coefficients{0, 2}}), "+2.00*x"},
		{"below threshold", FromSegments(Segment{0, 1, Coefficients{0.001, -0.004}}), "0"},
		{
			"multiple segments",
			FromSegments(Segment{0, 1, Coefficients{1}}, Segment{1, 2, Coefficients{1}}, Segment{2, 3, Coefficients{0, 1}}),
			"0.00 -> 2.00: 1.00\n2.00 -> 3.00: +1.00*x",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Render(2))
		})
	}
}

func TestExtrema(t *testing.T) {
	f := FromSegments(Segment{0, 2, Coefficients{0, 2, -1}})
	lo, hi, ok := f.Extrema(4)
	require.True(t, ok)
	assert.InDelta(t, 1.0, hi.Y, 1e-12)
	assert.InDelta(t, 1.0, hi.X, 1e-12)
	assert.InDelta(t, 0.0, lo.Y, 1e-12)

	_, _, ok = New().Extrema(4)
	assert.False(t, ok)
}
