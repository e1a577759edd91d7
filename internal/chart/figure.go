// Package chart turns pipeline records into a figure description and
// renders it as a PNG line chart.
package chart

import "gdpdash/internal/models"

// Layout carries the chart's textual configuration.
type Layout struct {
	Title      string
	XAxisTitle string
	YAxisTitle string
}

// BuildFigure groups records into one series per country. Series appear in
// the order their country first appears; points keep record order, which
// the pipeline guarantees is ascending by year.
func BuildFigure(records []models.ChartRecord, layout Layout) models.Figure {
	fig := models.Figure{
		Title:      layout.Title,
		XAxisTitle: layout.XAxisTitle,
		YAxisTitle: layout.YAxisTitle,
		Series:     make([]models.Series, 0),
	}

	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.Country]
		if !ok {
			i = len(fig.Series)
			index[rec.Country] = i
			fig.Series = append(fig.Series, models.Series{Name: rec.Country})
		}
		fig.Series[i].Points = append(fig.Series[i].Points, models.Point{Year: rec.Year, Value: rec.GDPPerCapita})
	}
	return fig
}

// segments splits a series wherever consecutive points skip a year, so a
// missing cell shows up as a gap in the line.
func segments(points []models.Point) [][]models.Point {
	var out [][]models.Point
	start := 0
	for i := 1; i <= len(points); i++ {
		if i == len(points) || points[i].Year-points[i-1].Year > 1 {
			if i > start {
				out = append(out, points[start:i])
			}
			start = i
		}
	}
	return out
}
