package models

// Selection is what the dashboard controls feed into the pipeline.
type Selection struct {
	Countries []string `json:"countries"`
	StartYear int      `json:"start"`
	EndYear   int      `json:"end"`
}

// ChartRecord is one (country, year) point in long format.
type ChartRecord struct {
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	GDPPerCapita float64 `json:"gdpPercap"`
}

// Figure describes a chart for the renderer.
type Figure struct {
	Title      string   `json:"title"`
	XAxisTitle string   `json:"xaxis_title"`
	YAxisTitle string   `json:"yaxis_title"`
	Series     []Series `json:"series"`
}

// Series is one line of the chart, one per country.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// QueryResponse is the body of /api/gdp.
type QueryResponse struct {
	Selection Selection     `json:"selection"`
	Records   []ChartRecord `json:"records"`
	Figure    Figure        `json:"figure"`
}

// Meta describes the table bounds and defaults for the UI controls.
type Meta struct {
	Countries        []string `json:"countries"`
	MinYear          int      `json:"min_year"`
	MaxYear          int      `json:"max_year"`
	Marks            []int    `json:"marks"`
	DefaultCountries []string `json:"default_countries"`
	DefaultRange     [2]int   `json:"default_range"`
}

type Health struct {
	Status    string `json:"status"`
	Countries int    `json:"countries"`
	MinYear   int    `json:"min_year"`
	MaxYear   int    `json:"max_year"`
}
