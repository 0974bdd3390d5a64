package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/papudim/sales-report/pkg/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const dateLayout = "2006-01-02"

var (
	barColor  = drawing.ColorFromHex("a47551")
	lineColor = drawing.ColorFromHex("4B5563")
	gridColor = drawing.ColorFromHex("E5E7EB")
)

const (
	barWidth   = 40
	barSpacing = 20
)

// QuantityChart renders a PNG bar chart of units sold per item, in the
// order given. It returns nil when there is nothing to plot.
func QuantityChart(items []model.ItemQuantity) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(items))
	var maxQty float64
	for _, it := range items {
		v := float64(it.Quantity)
		maxQty = math.Max(maxQty, v)
		bars = append(bars, chart.Value{
			Label: it.Name,
			Value: v,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	graph := chart.BarChart{
		Title:      "Best-selling items",
		Width:      max(1000, len(items)*(barWidth+barSpacing)+200),
		Height:     600,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Name:  "Quantity",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxQty)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render quantity chart: %w", err)
	}
	return buf.Bytes(), nil
}

// TimelineChart renders a PNG line chart of revenue per day. Points must be
// in chronological order. It returns nil when there is nothing to plot.
func TimelineChart(points []model.DailyRevenue) ([]byte, error) {
	if len(points) == 0 {
		return nil, nil
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	var minY, maxY float64
	for _, p := range points {
		day, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("timeline date %q: %w", p.Date, err)
		}
		v := p.Revenue.InexactFloat64()
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
		xs = append(xs, day)
		ys = append(ys, v)
	}

	// Pad the x range by half a day so a single point still has a non-empty domain.
	from := xs[0].Add(-12 * time.Hour)
	to := xs[len(xs)-1].Add(12 * time.Hour)

	graph := chart.Chart{
		Title:      "Revenue per day (paid orders)",
		Width:      1000,
		Height:     500,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(dateLayout),
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(from), Max: chart.TimeToFloat64(to)},
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		YAxis: chart.YAxis{
			Name:           "Revenue",
			Range:          &chart.ContinuousRange{Min: minY, Max: axisMax(maxY)},
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Revenue",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render timeline chart: %w", err)
	}
	return buf.Bytes(), nil
}

// axisMax leaves 10% headroom above the tallest value and never collapses to zero.
func axisMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}
