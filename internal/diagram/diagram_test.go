package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/function"
)

// parabola is the moment of a 4 m span under 10 per unit length.
func parabola(t *testing.T) *function.Function {
	t.Helper()
	f := function.New()
	require.NoError(t, f.AddPolynomial(0, 4, function.Coefficients{0, 20, -5}, 0))
	return f
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(parabola(t), 8)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, s.Max.Y, 1e-9)
	assert.InDelta(t, 2.0, s.Max.X, 1e-9)
	assert.InDelta(t, 0.0, s.Min.Y, 1e-9)
	assert.InDelta(t, 20.0, s.MaxAbs, 1e-9)
	assert.Equal(t, 1, s.SegmentCount)
	assert.Equal(t, 4.0, s.End)

	_, err = Summarize(function.New(), 8)
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestDrawSampleTable(t *testing.T) {
	out := DrawSampleTable(parabola(t), 2, 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "2.00")
	assert.Contains(t, lines[3], "20.00")
}

func TestDrawASCIIDiagram(t *testing.T) {
	out, err := DrawASCIIDiagram(parabola(t), 40, 8, "Mz")
	require.NoError(t, err)
	assert.Contains(t, out, "Mz")
	assert.Greater(t, strings.Count(out, "\n"), 7)

	_, err = DrawASCIIDiagram(function.New(), 40, 8, "")
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestDrawSummaryBox(t *testing.T) {
	s, err := Summarize(parabola(t), 4)
	require.NoError(t, err)
	out := DrawSummaryBox("Mz member 0", s.Lines(2))
	assert.Contains(t, out, "Mz member 0")
	assert.Contains(t, out, "Maximum  : 20.00 at x = 2.00")
	assert.Equal(t, 9, strings.Count(out, "\n"))
}

func TestExportDiagram(t *testing.T) {
	dir := t.TempDir()
	f := parabola(t)
	require.NoError(t, f.AddPolynomial(4, 6, function.Coefficients{-3}, 0))

	svg := filepath.Join(dir, "out", "mz.svg")
	require.NoError(t, ExportDiagram(f, ImageOptions{Title: "Mz", PerSegment: 16, Decimals: 1}, svg))
	info, err := os.Stat(svg)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.NoError(t, ExportDiagram(f, ImageOptions{}, filepath.Join(dir, "mz")))
	_, err = os.Stat(filepath.Join(dir, "mz.png"))
	assert.NoError(t, err)

	assert.ErrorIs(t, ExportDiagram(function.New(), ImageOptions{}, svg), ErrNothingToDraw)
}
