package diagram

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/montanaflynn/stats"

	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
)

// ErrNothingToDraw is returned for an empty diagram.
var ErrNothingToDraw = errors.New(errors.CodeInvalidArgument, "diagram is empty")

// Summary holds the sampled statistics of one diagram
type Summary struct {
	Min, Max     function.Point
	MaxAbs       float64
	Mean         float64 // average of the samples, not the integral mean
	SegmentCount int
	Start, End   float64
}

// Summarize samples f and reports its extreme values
func Summarize(f *function.Function, perSegment int) (Summary, error) {
	pts := f.Sample(perSegment)
	if len(pts) == 0 {
		return Summary{}, ErrNothingToDraw
	}
	ys := make(stats.Float64Data, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}

	lo, err := ys.Min()
	if err != nil {
		return Summary{}, errors.WithCode(err, errors.CodeInternal, "min")
	}
	hi, err := ys.Max()
	if err != nil {
		return Summary{}, errors.WithCode(err, errors.CodeInternal, "max")
	}
	mean, err := ys.Mean()
	if err != nil {
		return Summary{}, errors.WithCode(err, errors.CodeInternal, "mean")
	}

	s := Summary{Mean: mean, SegmentCount: f.Len(), MaxAbs: math.Max(math.Abs(lo), math.Abs(hi))}
	s.Start, s.End, _ = f.Domain()
	s.Min.X = pts[slices.IndexFunc(pts, func(p function.Point) bool { return p.Y == lo })].X
	s.Max.X = pts[slices.IndexFunc(pts, func(p function.Point) bool { return p.Y == hi })].X
	s.Min.Y, s.Max.Y = lo, hi
	return s, nil
}

// Lines formats the summary for DrawSummaryBox
func (s Summary) Lines(decimals int) []string {
	return []string{
		fmt.Sprintf("Domain   : %.*f -> %.*f (%d segments)", decimals, s.Start, decimals, s.End, s.SegmentCount),
		fmt.Sprintf("Minimum  : %.*f at x = %.*f", decimals, s.Min.Y, decimals, s.Min.X),
		fmt.Sprintf("Maximum  : %.*f at x = %.*f", decimals, s.Max.Y, decimals, s.Max.X),
		fmt.Sprintf("Max |v|  : %.*f", decimals, s.MaxAbs),
		fmt.Sprintf("Mean     : %.*f", decimals, s.Mean),
	}
}

// DrawSampleTable lists the sampled abscissas and values of f
func DrawSampleTable(f *function.Function, perSegment, decimals int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %12s  %14s\n", "x", "value"))
	sb.WriteString(fmt.Sprintf("  %12s  %14s\n", strings.Repeat("─", 12), strings.Repeat("─", 14)))
	for _, p := range f.Sample(perSegment) {
		sb.WriteString(fmt.Sprintf("  %12.*f  %14.*f\n", decimals, p.X, decimals, p.Y))
	}
	return sb.String()
}

// DrawASCIIDiagram plots f over its domain with width evenly spaced samples
func DrawASCIIDiagram(f *function.Function, width, height int, caption string) (string, error) {
	start, end, ok := f.Domain()
	if !ok {
		return "", ErrNothingToDraw
	}
	if width < 2 {
		width = 2
	}
	ys := make([]float64, width)
	step := (end - start) / float64(width-1)
	for i := range ys {
		ys[i] = f.Eval(start + float64(i)*step)
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
