package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/function"
)

// ImageOptions controls ExportDiagram
type ImageOptions struct {
	Title      string
	XLabel     string
	YLabel     string
	PerSegment int // samples per segment, 1 for straight pieces
	Decimals   int // digits in the extremum labels
}

// ExportDiagram draws f to filename. The format follows the extension
// (.png, .svg or .pdf); anything else gets .png appended.
func ExportDiagram(f *function.Function, opts ImageOptions, filename string) error {
	if f.IsEmpty() {
		return ErrNothingToDraw
	}
	p, err := newDiagramPlot(f, opts)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WithCode(err, errors.CodeInvalidArgument, "failed to create "+dir)
		}
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.WithCode(err, errors.CodeInternal, "failed to save "+filename)
	}
	return nil
}

func newDiagramPlot(f *function.Function, opts ImageOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	perSegment := opts.PerSegment
	if perSegment < 1 {
		perSegment = 1
	}

	// One filled polygon per segment so jumps at boundaries stay vertical.
	for i := 0; i < f.Len(); i++ {
		seg := f.Segment(i)
		pts := plotter.XYs{{X: seg.Start, Y: 0}}
		for k := 0; k <= perSegment; k++ {
			x := seg.Start + seg.Length()*float64(k)/float64(perSegment)
			if k == perSegment {
				x = seg.End
			}
			pts = append(pts, plotter.XY{X: x, Y: seg.Eval(x)})
		}
		pts = append(pts, plotter.XY{X: seg.End, Y: 0})

		area, err := plotter.NewPolygon(pts)
		if err != nil {
			return nil, errors.WithCode(err, errors.CodeInternal, "segment polygon")
		}
		area.Color = color.RGBA{R: 100, G: 149, B: 237, A: 120}
		area.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		area.LineStyle.Width = vg.Points(1.5)
		p.Add(area)
	}

	// Zero reference line
	start, end, _ := f.Domain()
	axis, err := plotter.NewLine(plotter.XYs{{X: start, Y: 0}, {X: end, Y: 0}})
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeInternal, "axis")
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Black
	p.Add(axis)

	// Mark the extrema
	lo, hi, ok := f.Extrema(perSegment)
	if ok {
		marks, err := plotter.NewScatter(plotter.XYs{{X: lo.X, Y: lo.Y}, {X: hi.X, Y: hi.Y}})
		if err != nil {
			return nil, errors.WithCode(err, errors.CodeInternal, "extrema")
		}
		marks.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		marks.GlyphStyle.Radius = vg.Points(4)
		marks.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marks)

		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs: []plotter.XY{{X: lo.X, Y: lo.Y}, {X: hi.X, Y: hi.Y}},
			Labels: []string{
				fmt.Sprintf("%.*f", opts.Decimals, lo.Y),
				fmt.Sprintf("%.*f", opts.Decimals, hi.Y),
			},
		})
		if err != nil {
			return nil, errors.WithCode(err, errors.CodeInternal, "labels")
		}
		p.Add(labels)
	}
	return p, nil
}
