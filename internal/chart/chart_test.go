package chart

import (
	"bytes"
	"image/png"
	"testing"

	"gdpdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = Layout{Title: "Average GDP Per Capita by Decade", XAxisTitle: "Year", YAxisTitle: "Average GDP Per Capita"}

func sampleRecords() []models.ChartRecord {
	return []models.ChartRecord{
		{Country: "A", Year: 2000, GDPPerCapita: 100},
		{Country: "B", Year: 2000, GDPPerCapita: 10},
		{Country: "B", Year: 2001, GDPPerCapita: 20},
		{Country: "A", Year: 2002, GDPPerCapita: 300},
		{Country: "B", Year: 2002, GDPPerCapita: 30},
	}
}

func TestBuildFigure(t *testing.T) {
	fig := BuildFigure(sampleRecords(), testLayout)

	assert.Equal(t, "Average GDP Per Capita by Decade", fig.Title)
	assert.Equal(t, "Year", fig.XAxisTitle)
	assert.Equal(t, "Average GDP Per Capita", fig.YAxisTitle)
	require.Len(t, fig.Series, 2)

	assert.Equal(t, "A", fig.Series[0].Name)
	assert.Equal(t, []models.Point{{Year: 2000, Value: 100}, {Year: 2002, Value: 300}}, fig.Series[0].Points)
	assert.Equal(t, "B", fig.Series[1].Name)
	assert.Len(t, fig.Series[1].Points, 3)
}

func TestBuildFigure_Empty(t *testing.T) {
	fig := BuildFigure(nil, testLayout)
	assert.NotNil(t, fig.Series)
	assert.Empty(t, fig.Series)
}

func TestSegments(t *testing.T) {
	pts := []models.Point{{Year: 2000}, {Year: 2001}, {Year: 2003}, {Year: 2005}, {Year: 2006}}
	segs := segments(pts)
	require.Len(t, segs, 3)
	assert.Len(t, segs[0], 2)
	assert.Len(t, segs[1], 1)
	assert.Len(t, segs[2], 2)

	assert.Empty(t, segments(nil))
}

func TestValueBounds(t *testing.T) {
	lo, hi := valueBounds(models.Figure{})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	flat := models.Figure{Series: []models.Series{{Points: []models.Point{{Year: 2000, Value: 50}}}}}
	lo, hi = valueBounds(flat)
	assert.Less(t, lo, 50.0)
	assert.Greater(t, hi, 50.0)
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer(640, 360)

	tests := []struct {
		name       string
		fig        models.Figure
		start, end int
	}{
		{name: "gapped series", fig: BuildFigure(sampleRecords(), testLayout), start: 2000, end: 2002},
		{name: "empty figure", fig: BuildFigure(nil, testLayout), start: 2000, end: 2002},
		{name: "single year", fig: BuildFigure(sampleRecords()[1:2], testLayout), start: 2000, end: 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.RenderPNG(&buf, tt.fig, tt.start, tt.end))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 360, img.Bounds().Dy())
		})
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1990", yearFormatter(1989.9999))
	assert.Equal(t, "", yearFormatter("x"))
	assert.Equal(t, "1235", valueFormatter(1234.6))
}
