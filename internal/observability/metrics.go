package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec // labels: outcome={success,error}
	RunDuration     prometheus.Histogram
	SamplesFetched  prometheus.Counter
	RecordsDerived  *prometheus.GaugeVec   // labels: type={beach,city,region}
	StatusCounts    *prometheus.GaugeVec   // labels: type={beach,city,region}, status={safe,caution,avoid,no_data}
	SinkErrors      *prometheus.CounterVec // labels: sink={sheets,kafka}
	PostsSynced     *prometheus.CounterVec // labels: type={beach,city,region}, outcome={created,updated,error}
	PipelineRunning prometheus.Gauge
	LastRunUnix     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "red_tide_etl",
			Name:      "runs_total",
			Help:      "Completed pipeline runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "red_tide_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-derive-store cycle.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		SamplesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "red_tide_etl",
			Name:      "samples_fetched_total",
			Help:      "Total sampling records retrieved from the FWC feed.",
		}),
		RecordsDerived: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "red_tide_etl",
			Name:      "records_derived",
			Help:      "Status records produced by the most recent run, by location type.",
		}, []string{"type"}),
		StatusCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "red_tide_etl",
			Name:      "status_counts",
			Help:      "Locations at each status level in the most recent run.",
		}, []string{"type", "status"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "red_tide_etl",
			Name:      "sink_errors_total",
			Help:      "Failed writes by sink.",
		}, []string{"sink"}),
		PostsSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "red_tide_etl",
			Name:      "posts_synced_total",
			Help:      "WordPress posts synced by location type and outcome.",
		}, []string{"type", "outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "red_tide_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		LastRunUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "red_tide_etl",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the most recent successful run.",
		}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.SamplesFetched,
		m.RecordsDerived,
		m.StatusCounts,
		m.SinkErrors,
		m.PostsSynced,
		m.PipelineRunning,
		m.LastRunUnix,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "red_tide_etl", Name: "runs_total"}, []string{"outcome"}),
		RunDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "red_tide_etl", Name: "run_duration_seconds"}),
		SamplesFetched:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "red_tide_etl", Name: "samples_fetched_total"}),
		RecordsDerived:  prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "red_tide_etl", Name: "records_derived"}, []string{"type"}),
		StatusCounts:    prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "red_tide_etl", Name: "status_counts"}, []string{"type", "status"}),
		SinkErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "red_tide_etl", Name: "sink_errors_total"}, []string{"sink"}),
		PostsSynced:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "red_tide_etl", Name: "posts_synced_total"}, []string{"type", "outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "red_tide_etl", Name: "pipeline_running"}),
		LastRunUnix:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "red_tide_etl", Name: "last_run_timestamp_seconds"}),
	}
}
