package charts

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2"
)

// chartRenderer adapts a go-chart XY chart to the Renderer interface.
type chartRenderer struct {
	graph chart.Chart
}

func (c chartRenderer) Render(w io.Writer) error {
	return c.graph.Render(chart.PNG, w)
}

type barChartRenderer struct {
	graph chart.BarChart
}

func (c barChartRenderer) Render(w io.Writer) error {
	return c.graph.Render(chart.PNG, w)
}

// imageRenderer adapts a gg drawing context, used for the figure types the
// chart library has no primitive for.
type imageRenderer struct {
	dc *gg.Context
}

func (c imageRenderer) Render(w io.Writer) error {
	return c.dc.EncodePNG(w)
}
