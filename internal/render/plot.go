// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"io"

	"github.com/db47h/pllsim"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Plot dimensions.
const (
	Width      = 10 * vg.Inch
	PanelHeight = 7 * vg.Inch / 3
	DPI        = 96
)

// CDRWindow is the number of CDR samples plotted.
const CDRWindow = 200

// Panel is a single plot: a title and its lines.
//
type Panel struct {
	Title string
	Lines []Column
	Step  bool // draw lines as step functions
}

// xys converts s to plot points, cut at its first non-finite sample.
func xys(s pllsim.Sequence) plotter.XYs {
	if n := s.Finite(); n >= 0 {
		s = s[:n]
	}
	pts := make(plotter.XYs, len(s))
	for i, v := range s {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

func (p *Panel) plot() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "step"
	for i, c := range p.Lines {
		pts := xys(c.Data)
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", p.Title, c.Name)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1)
		if p.Step {
			l.StepStyle = plotter.PreStep
		}
		pl.Add(l)
		if len(p.Lines) > 1 {
			pl.Legend.Add(c.Name, l)
		}
	}
	if len(p.Lines) > 1 {
		pl.Legend.Top = true
	}
	return pl, nil
}

// WritePNG draws the panels stacked vertically and writes the image to w as
// PNG.
//
func WritePNG(w io.Writer, panels ...Panel) error {
	if len(panels) == 0 {
		return errors.New("no panels")
	}
	plots := make([][]*plot.Plot, len(panels))
	for i := range panels {
		p, err := panels[i].plot()
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(
		vgimg.UseWH(Width, PanelHeight*vg.Length(len(panels))),
		vgimg.UseDPI(DPI),
	)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter * 2,
	}
	cs := plot.Align(plots, t, dc)
	for i := range plots {
		plots[i][0].Draw(cs[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "write png")
	}
	return nil
}

// LoopPanels returns the panels for an analog loop result.
//
func LoopPanels(r *pllsim.LoopResult) []Panel {
	return []Panel{
		{Title: "Phase Detector Output", Lines: []Column{{"pd", r.PD}}},
		{Title: "Loop Filter Response", Lines: []Column{{"filter", r.Filter}}},
		{Title: "VCO Frequency Evolution", Lines: []Column{{"freq", r.Freq}}},
	}
}

// DelayPanels returns the panels for a delay line result.
//
func DelayPanels(r *pllsim.DelayResult) []Panel {
	return []Panel{
		{Title: "Digital PLL Delay Line", Lines: DelayColumns(r)},
	}
}

// CDRPanels returns the panels for a CDR result. Only the first CDRWindow
// samples are plotted.
//
func CDRPanels(r *pllsim.CDRResult) []Panel {
	return []Panel{{
		Title: "Clock and Data Recovery",
		Lines: []Column{
			{"data", r.Data.Head(CDRWindow)},
			{"clock", r.Clock.Head(CDRWindow)},
			{"recovered", r.Recovered.Head(CDRWindow)},
		},
		Step: true,
	}}
}
