package api

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gdpdash/internal/chart"
	"gdpdash/internal/config"
	apperrors "gdpdash/internal/errors"
	"gdpdash/internal/engine"
	"gdpdash/internal/logger"
	"gdpdash/internal/metrics"
	"gdpdash/internal/models"
	"gdpdash/internal/web"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	table    *engine.Table
	dash     config.DashboardConfig
	layout   chart.Layout
	renderer *chart.Renderer
	pages    *web.TemplateRenderer
	sessions *SessionGate
	log      logger.Logger
}

func NewHandler(table *engine.Table, dash config.DashboardConfig, log logger.Logger) (*Handler, error) {
	pages, err := web.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		table: table,
		dash:  dash,
		layout: chart.Layout{
			Title:      dash.ChartTitle,
			XAxisTitle: dash.XAxisTitle,
			YAxisTitle: dash.YAxisTitle,
		},
		renderer: chart.NewRenderer(dash.ChartWidth, dash.ChartHeight),
		pages:    pages,
		sessions: NewSessionGate(),
		log:      log,
	}, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index, h.sessions.Track)
	e.GET("/chart.png", h.GetChartPNG, h.sessions.Serialize)
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.GET("/gdp", h.GetGDP, h.sessions.Serialize)
}

// --- HANDLERS ---

// parseSelection reads repeated country params and optional start/end;
// missing bounds default to the table's full range.
func (h *Handler) parseSelection(params url.Values) (models.Selection, error) {
	sel := models.Selection{
		Countries: make([]string, 0, len(params["country"])),
		StartYear: h.table.MinYear(),
		EndYear:   h.table.MaxYear(),
	}
	for _, c := range params["country"] {
		if c != "" {
			sel.Countries = append(sel.Countries, c)
		}
	}
	var err error
	if sel.StartYear, err = yearParam(params, "start", sel.StartYear); err != nil {
		return sel, err
	}
	if sel.EndYear, err = yearParam(params, "end", sel.EndYear); err != nil {
		return sel, err
	}
	return sel, nil
}

func yearParam(params url.Values, name string, def int) (int, error) {
	raw := params.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidQueryParamError(name, raw)
	}
	return v, nil
}

// runQuery executes the pipeline and records its metrics.
func (h *Handler) runQuery(endpoint string, sel models.Selection) ([]models.ChartRecord, error) {
	start := time.Now()
	records, err := h.table.Query(sel)
	metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(endpoint, "rejected").Inc()
		return nil, err
	}
	metrics.QueriesTotal.WithLabelValues(endpoint, "ok").Inc()
	metrics.QueryRecords.Observe(float64(len(records)))

	h.log.Debug("query served", map[string]interface{}{
		"endpoint":  endpoint,
		"countries": len(sel.Countries),
		"start":     sel.StartYear,
		"end":       sel.EndYear,
		"records":   len(records),
	})
	return records, nil
}

// GetGDP returns the long-format records and the figure built from them.
func (h *Handler) GetGDP(c echo.Context) error {
	sel, err := h.parseSelection(c.QueryParams())
	if err != nil {
		return err
	}
	records, err := h.runQuery("gdp", sel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.QueryResponse{
		Selection: sel,
		Records:   records,
		Figure:    chart.BuildFigure(records, h.layout),
	})
}

// GetChartPNG renders the same query as a line chart image.
func (h *Handler) GetChartPNG(c echo.Context) error {
	sel, err := h.parseSelection(c.QueryParams())
	if err != nil {
		return err
	}
	records, err := h.runQuery("chart", sel)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPNG(&buf, chart.BuildFigure(records, h.layout), sel.StartYear, sel.EndYear); err != nil {
		metrics.ChartRenders.WithLabelValues("failed").Inc()
		return apperrors.NewChartRenderFailedError(err)
	}
	metrics.ChartRenders.WithLabelValues("ok").Inc()

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// GetMeta describes the controls: country list, year bounds and marks.
func (h *Handler) GetMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Meta{
		Countries:        h.table.Countries(),
		MinYear:          h.table.MinYear(),
		MaxYear:          h.table.MaxYear(),
		Marks:            h.table.Marks(h.dash.MarkStep),
		DefaultCountries: h.defaultCountries(),
		DefaultRange:     [2]int{h.table.MinYear(), h.table.MaxYear()},
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Health{
		Status:    "ok",
		Countries: len(h.table.Countries()),
		MinYear:   h.table.MinYear(),
		MaxYear:   h.table.MaxYear(),
	})
}

// Index renders the dashboard. A bare visit starts from the configured
// default countries and the full year range.
func (h *Handler) Index(c echo.Context) error {
	params := c.QueryParams()
	var sel models.Selection
	var selErr error
	if params.Has("country") || params.Has("start") || params.Has("end") {
		sel, selErr = h.parseSelection(params)
	} else {
		sel = models.Selection{
			Countries: h.defaultCountries(),
			StartYear: h.table.MinYear(),
			EndYear:   h.table.MaxYear(),
		}
	}
	if selErr == nil {
		selErr = h.table.ValidateRange(sel.StartYear, sel.EndYear)
	}
	if selErr != nil {
		sel.StartYear, sel.EndYear = h.table.MinYear(), h.table.MaxYear()
	}

	chosen := make(map[string]bool, len(sel.Countries))
	for _, name := range sel.Countries {
		chosen[name] = true
	}
	countries := h.table.Countries()
	options := make([]web.CountryOption, len(countries))
	for i, name := range countries {
		options[i] = web.CountryOption{Name: name, Selected: chosen[name]}
	}

	q := url.Values{}
	for _, name := range sel.Countries {
		q.Add("country", name)
	}
	q.Set("start", strconv.Itoa(sel.StartYear))
	q.Set("end", strconv.Itoa(sel.EndYear))

	data := web.PageData{
		Heading:     h.dash.Heading,
		Description: h.dash.Description,
		Countries:   options,
		MinYear:     h.table.MinYear(),
		MaxYear:     h.table.MaxYear(),
		Start:       sel.StartYear,
		End:         sel.EndYear,
		Marks:       h.table.Marks(h.dash.MarkStep),
		ChartURL:    template.URL("/chart.png?" + q.Encode()),
	}
	if selErr != nil {
		data.Error = apperrors.Normalize(selErr).Error()
	}
	return c.Render(http.StatusOK, web.IndexTemplate, data)
}

// defaultCountries keeps the configured defaults that exist in the table.
func (h *Handler) defaultCountries() []string {
	out := make([]string, 0, len(h.dash.DefaultCountries))
	for _, name := range h.dash.DefaultCountries {
		if h.table.HasCountry(name) {
			out = append(out, name)
		}
	}
	return out
}
