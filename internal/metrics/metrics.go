package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdpdash_queries_total",
			Help: "Total number of pipeline queries by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gdpdash_query_duration_seconds",
			Help:    "Duration of pipeline queries in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"endpoint"},
	)

	QueryRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gdpdash_query_records",
			Help:    "Number of chart records produced per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ChartRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdpdash_chart_renders_total",
			Help: "Total number of PNG chart renders by outcome",
		},
		[]string{"outcome"},
	)

	TableCountries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gdpdash_table_countries",
			Help: "Number of country rows in the loaded table",
		},
	)

	TableYears = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gdpdash_table_years",
			Help: "Number of year columns in the loaded table",
		},
	)
)
