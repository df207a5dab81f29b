// Package pipeline orchestrates the fetch-derive-store cycle and the
// separate CMS sync flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gulfwatch/red-tide-etl/internal/domain"
	"github.com/gulfwatch/red-tide-etl/internal/observability"
)

// SampleSource fetches raw sampling results from the monitoring feed.
type SampleSource interface {
	FetchSamples(ctx context.Context) ([]domain.RawSample, error)
}

// ConfigSource loads the location and site-mapping tables.
type ConfigSource interface {
	Locations(ctx context.Context) (map[string]domain.LocationInfo, error)
	SiteMappings(ctx context.Context) ([]domain.SamplingSite, error)
}

// ResultStore persists the flattened status records of a run.
type ResultStore interface {
	StoreResults(ctx context.Context, records []domain.StatusRecord) error
}

// StatusPublisher forwards run results to a downstream feed. Optional.
type StatusPublisher interface {
	PublishResults(ctx context.Context, results domain.RunResults, lastUpdated string) error
}

// Pipeline runs the ingestion cycle: fetch samples, derive statuses,
// store, and optionally publish.
type Pipeline struct {
	source    SampleSource
	cfgSource ConfigSource
	store     ResultStore
	publisher StatusPublisher // nil when the status feed is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	location  *time.Location
	interval  time.Duration

	ready   bool
	lastRun domain.RunResults
	hasRun  bool
	mu      sync.RWMutex
}

// New creates a Pipeline. publisher may be nil. location is the local
// timezone stamped into last_updated fields; interval of zero means a
// single run per Run call.
func New(source SampleSource, cfgSource ConfigSource, store ResultStore, publisher StatusPublisher,
	location *time.Location, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		cfgSource: cfgSource,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		location:  location,
		interval:  interval,
	}
}

// CheckReadiness returns nil once at least one run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.ready {
		return errors.New("no runs completed yet")
	}
	return nil
}

// LastRun returns the most recent run results, if any run has completed.
func (p *Pipeline) LastRun() (domain.RunResults, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRun, p.hasRun
}

// Run executes runs until the context is cancelled. With a zero interval
// it performs exactly one run and returns its error; otherwise failures
// are logged and the next tick proceeds.
func (p *Pipeline) Run(ctx context.Context) error {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	if p.interval == 0 {
		return p.RunOnce(ctx)
	}

	p.logger.Info("pipeline started", "interval", p.interval)
	for {
		if err := p.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("run failed", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-clock.After(p.interval):
		}
	}
}

// RunOnce performs a single fetch-derive-store cycle. The run timestamp
// is captured once so every derived record reflects the same instant.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	now := clock.Now().UTC()
	start := clock.Now()

	logger := p.logger.With("run_id", runID)
	logger.Info("run started")

	results, err := p.derive(ctx, runID, now)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return err
	}

	lastUpdated := now.In(p.location).Format("2006-01-02 15:04:05")
	records := results.Flatten(lastUpdated)

	if err := p.store.StoreResults(ctx, records); err != nil {
		p.metrics.SinkErrors.WithLabelValues("sheets").Inc()
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("store results: %w", err)
	}

	if p.publisher != nil {
		// Feed errors do not fail the run: the sheet is the source of
		// truth and the topic can catch up on the next cycle.
		if err := p.publisher.PublishResults(ctx, results, lastUpdated); err != nil {
			p.metrics.SinkErrors.WithLabelValues("kafka").Inc()
			logger.Warn("status publish failed", "error", err)
		}
	}

	p.observeRun(results)
	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(clock.Since(start).Seconds())
	p.metrics.LastRunUnix.Set(float64(now.Unix()))

	p.mu.Lock()
	p.ready = true
	p.lastRun = results
	p.hasRun = true
	p.mu.Unlock()

	logger.Info("run complete",
		"samples", results.SampleCount,
		"beaches", len(results.Beaches),
		"cities", len(results.Cities),
		"regions", len(results.Regions),
		"worst", domain.WorstStatus(results.Beaches),
	)
	return nil
}

// derive loads configuration and samples and produces the run results.
func (p *Pipeline) derive(ctx context.Context, runID string, now time.Time) (domain.RunResults, error) {
	locations, err := p.cfgSource.Locations(ctx)
	if err != nil {
		return domain.RunResults{}, fmt.Errorf("load locations: %w", err)
	}
	sites, err := p.cfgSource.SiteMappings(ctx)
	if err != nil {
		return domain.RunResults{}, fmt.Errorf("load site mappings: %w", err)
	}

	samples, err := p.source.FetchSamples(ctx)
	if err != nil {
		return domain.RunResults{}, fmt.Errorf("fetch samples: %w", err)
	}
	p.metrics.SamplesFetched.Add(float64(len(samples)))

	beaches, cities, regions := domain.DeriveStatuses(sites, locations, samples, now)

	return domain.RunResults{
		RunID:       runID,
		RunTime:     now,
		SampleCount: len(samples),
		Beaches:     beaches,
		Cities:      cities,
		Regions:     regions,
	}, nil
}

// observeRun refreshes the per-run gauges.
func (p *Pipeline) observeRun(results domain.RunResults) {
	p.metrics.RecordsDerived.WithLabelValues("beach").Set(float64(len(results.Beaches)))
	p.metrics.RecordsDerived.WithLabelValues("city").Set(float64(len(results.Cities)))
	p.metrics.RecordsDerived.WithLabelValues("region").Set(float64(len(results.Regions)))

	counts := map[string]map[domain.Status]int{
		"beach":  make(map[domain.Status]int),
		"city":   make(map[domain.Status]int),
		"region": make(map[domain.Status]int),
	}
	for _, b := range results.Beaches {
		counts["beach"][b.CurrentStatus]++
	}
	for _, c := range results.Cities {
		counts["city"][c.CurrentStatus]++
	}
	for _, r := range results.Regions {
		counts["region"][r.CurrentStatus]++
	}
	for level, byStatus := range counts {
		for _, s := range []domain.Status{domain.StatusSafe, domain.StatusCaution, domain.StatusAvoid, domain.StatusNoData} {
			p.metrics.StatusCounts.WithLabelValues(level, string(s)).Set(float64(byStatus[s]))
		}
	}
}
