package view

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"kassenbuch/internal/core"
)

// RenderBalanceChart draws the running balance of v as a PNG line chart.
// Rows sharing a date collapse to the balance after the last of them.
func RenderBalanceChart(v ViewState, loc core.Locale, currency string) ([]byte, error) {
	var (
		xValues []time.Time
		yValues []float64
	)
	for _, row := range v.Rows {
		t := row.Entry.Date.Time
		y := core.Money{Cents: row.RunningCents}.Euros()
		if n := len(xValues); n > 0 && xValues[n-1].Equal(t) {
			yValues[n-1] = y
			continue
		}
		xValues = append(xValues, t)
		yValues = append(yValues, y)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	balance := chart.TimeSeries{
		Name: "Saldo (" + v.Mode.Label() + ")",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Width:  900,
		Height: 320,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(x interface{}) string {
				if f, ok := x.(float64); ok {
					return loc.FormatDate(core.DateOf(chart.TimeFromFloat64(f)))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(y interface{}) string {
				if f, ok := y.(float64); ok {
					return core.FormatCents(int64(f*100), loc) + " " + currency
				}
				return ""
			},
		},
		Series: []chart.Series{balance},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
