package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gdpdash/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is the plotly default qualitative sequence.
var palette = []drawing.Color{
	drawing.ColorFromHex("636EFA"),
	drawing.ColorFromHex("EF553B"),
	drawing.ColorFromHex("00CC96"),
	drawing.ColorFromHex("AB63FA"),
	drawing.ColorFromHex("FFA15A"),
	drawing.ColorFromHex("19D3F3"),
	drawing.ColorFromHex("FF6692"),
	drawing.ColorFromHex("B6E880"),
	drawing.ColorFromHex("FF97FF"),
	drawing.ColorFromHex("FECB52"),
}

// invisible is a non-zero color with no alpha; go-chart replaces zero
// colors with series defaults.
var invisible = drawing.Color{R: 255, G: 255, B: 255, A: 0}

// Renderer draws figures with go-chart.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

func seriesStyle(i int) chart.Style {
	c := palette[i%len(palette)]
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
		DotColor:    c,
		DotWidth:    2.5,
	}
}

// RenderPNG writes fig as a PNG line chart with x spanning [startYear, endYear].
// An empty figure renders the titled, empty plot area.
func (r *Renderer) RenderPNG(w io.Writer, fig models.Figure, startYear, endYear int) error {
	var series []chart.Series
	legend := chart.Chart{}

	for i, s := range fig.Series {
		style := seriesStyle(i)
		for k, seg := range segments(s.Points) {
			xs := make([]float64, len(seg))
			ys := make([]float64, len(seg))
			for j, p := range seg {
				xs[j] = float64(p.Year)
				ys[j] = p.Value
			}
			cs := chart.ContinuousSeries{Style: style, XValues: xs, YValues: ys}
			if k == 0 {
				cs.Name = s.Name
			}
			series = append(series, cs)
		}
		legend.Series = append(legend.Series, chart.ContinuousSeries{Name: s.Name, Style: style})
	}

	ymin, ymax := valueBounds(fig)
	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			Style:   chart.Style{StrokeColor: invisible, DotColor: invisible},
			XValues: []float64{float64(startYear), float64(endYear)},
			YValues: []float64{ymin, ymin},
		})
	}

	xmin, xmax := float64(startYear), float64(endYear)
	if xmin == xmax {
		xmin, xmax = xmin-1, xmax+1
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           fig.XAxisTitle,
			Range:          &chart.ContinuousRange{Min: xmin, Max: xmax},
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           fig.YAxisTitle,
			Range:          &chart.ContinuousRange{Min: ymin, Max: ymax},
			ValueFormatter: valueFormatter,
		},
		Series: series,
	}
	if len(legend.Series) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(&legend)}
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// valueBounds returns a padded, non-degenerate y range for the figure.
func valueBounds(fig models.Figure) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range fig.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	switch {
	case math.IsInf(lo, 1):
		return 0, 1
	case lo == hi:
		pad := math.Max(1, math.Abs(lo)*0.1)
		return lo - pad, hi + pad
	default:
		pad := (hi - lo) * 0.05
		return lo - pad, hi + pad
	}
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

func valueFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return ""
}
