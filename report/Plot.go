// Package report renders line charts of experiment results into a
// single static HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultFilename is the name of the report written at the end of
// training
const DefaultFilename = "a2c.html"

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Chart is a single line chart of a series of values against their
// index
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Values []float64
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Charts}}<div class="chart">
{{.}}
</div>
{{end}}</body>
</html>
`))

// WriteLossChart writes an HTML page to path holding a chart of the
// loss of each iteration against the iteration index
func WriteLossChart(path, title string, losses []float64) error {
	return WriteCharts(path, title, Chart{
		Title:  title,
		XLabel: "Iteration",
		YLabel: "Loss",
		Values: losses,
	})
}

// WriteCharts writes an HTML page with the given title to path,
// holding each of the charts in order. The file is overwritten if it
// exists.
func WriteCharts(path, title string, charts ...Chart) error {
	svgs := make([]template.HTML, len(charts))
	for i, c := range charts {
		svg, err := c.svg()
		if err != nil {
			return fmt.Errorf("writeCharts: chart %q: %v", c.Title, err)
		}
		svgs[i] = template.HTML(svg)
	}

	var buf bytes.Buffer
	data := struct {
		Title  string
		Charts []template.HTML
	}{title, svgs}
	if err := page.Execute(&buf, data); err != nil {
		return fmt.Errorf("writeCharts: could not render page: %v", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writeCharts: could not write report: %v", err)
	}
	return nil
}

// svg renders the chart as an SVG image
func (c Chart) svg() ([]byte, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	// Non-finite values, such as the loss of a diverged run, are left
	// out of the line
	pts := make(plotter.XYs, 0, len(c.Values))
	for i, v := range c.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}

	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("svg: could not create line plotter: %v",
				err)
		}
		p.Add(line)
	}

	w, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return nil, fmt.Errorf("svg: %v", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("svg: %v", err)
	}

	// Drop the XML prolog so the image can be inlined
	svg := buf.Bytes()
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	return svg, nil
}
