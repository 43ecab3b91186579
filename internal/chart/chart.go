// Package chart renders summary series as PNG images with go-chart.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fintrack/internal/aggregate"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart: no data to render")

var (
	incomeColor  = drawing.ColorFromHex("2e7d32")
	expenseColor = drawing.ColorFromHex("c62828")
)

// Renderer draws the charts served by the reporting endpoints.
type Renderer interface {
	// Trend plots a period series as a line.
	Trend(title string, series []aggregate.Point) ([]byte, error)
	// IncomeVsExpense plots income and expense side by side per period.
	IncomeVsExpense(income, expense map[string]decimal.Decimal) ([]byte, error)
	// Breakdown plots label shares as a pie.
	Breakdown(title string, byLabel map[string]decimal.Decimal) ([]byte, error)
}

// PNG renders charts as PNG images.
type PNG struct {
	Width  int
	Height int
}

// NewPNG returns a renderer with the default canvas size.
func NewPNG() *PNG {
	return &PNG{Width: 1000, Height: 500}
}

// Encode returns the base64 form used in JSON responses.
func Encode(img []byte) string {
	return base64.StdEncoding.EncodeToString(img)
}

func (p *PNG) Trend(title string, series []aggregate.Point) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	ticks := make([]gochart.Tick, len(series))
	maxY := 0.0
	for i, pt := range series {
		xs[i] = float64(i)
		ys[i] = pt.Amount.InexactFloat64()
		ticks[i] = gochart.Tick{Value: float64(i), Label: pt.Period}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  p.Width,
		Height: p.Height,
		XAxis: gochart.XAxis{
			Name:  "Month",
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(series)) - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  "Amount",
			Range: &gochart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Monthly Expense",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: expenseColor,
					StrokeWidth: 2,
					DotColor:    expenseColor,
					DotWidth:    4,
				},
			},
		},
	}
	return render(&graph)
}

func (p *PNG) IncomeVsExpense(income, expense map[string]decimal.Decimal) ([]byte, error) {
	periods := aggregate.MergePeriods(income, expense)
	if len(periods) == 0 {
		return nil, ErrNoData
	}

	bars := make([]gochart.Value, 0, len(periods)*2)
	maxY := 0.0
	for _, period := range periods {
		in := income[period].InexactFloat64()
		out := expense[period].InexactFloat64()
		bars = append(bars,
			gochart.Value{Label: period + " in", Value: in, Style: gochart.Style{FillColor: incomeColor, StrokeColor: incomeColor}},
			gochart.Value{Label: period + " out", Value: out, Style: gochart.Style{FillColor: expenseColor, StrokeColor: expenseColor}},
		)
		if in > maxY {
			maxY = in
		}
		if out > maxY {
			maxY = out
		}
	}

	graph := gochart.BarChart{
		Title:    "Income vs Expenses",
		Width:    p.Width,
		Height:   p.Height,
		BarWidth: barWidth(p.Width, len(bars)),
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Bars: bars,
	}
	return render(&graph)
}

func (p *PNG) Breakdown(title string, byLabel map[string]decimal.Decimal) ([]byte, error) {
	labels := make([]string, 0, len(byLabel))
	for label, amount := range byLabel {
		if amount.IsPositive() {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return nil, ErrNoData
	}
	sort.Strings(labels)

	values := make([]gochart.Value, len(labels))
	for i, label := range labels {
		values[i] = gochart.Value{Label: label, Value: byLabel[label].InexactFloat64()}
	}

	graph := gochart.PieChart{
		Title:  title,
		Width:  p.Height,
		Height: p.Height,
		Values: values,
	}
	return render(&graph)
}

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func render(graph renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barWidth(canvas, bars int) int {
	w := canvas / (bars * 2)
	if w > 40 {
		return 40
	}
	if w < 4 {
		return 4
	}
	return w
}

// headroom pads the top of the y axis so the highest point is not clipped.
func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}
