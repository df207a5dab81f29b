package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gulfwatch/red-tide-etl/internal/domain"
	"github.com/gulfwatch/red-tide-etl/internal/observability"
)

// RecordSource reads previously stored status records and the locations
// table back from the spreadsheet.
type RecordSource interface {
	StatusRecords(ctx context.Context) ([]domain.StatusRecord, error)
	Locations(ctx context.Context) (map[string]domain.LocationInfo, error)
}

// PostSyncer upserts a single status record into the CMS.
type PostSyncer interface {
	SyncRecord(ctx context.Context, rec domain.StatusRecord, loc domain.LocationInfo, lastUpdated string) (int, string, error)
}

// SyncReport tallies one sync pass per location type.
type SyncReport struct {
	Attempted map[string]int
	Synced    map[string]int
	Failed    map[string]int
}

// Total reports overall attempted and synced counts.
func (r SyncReport) Total() (attempted, synced int) {
	for _, n := range r.Attempted {
		attempted += n
	}
	for _, n := range r.Synced {
		synced += n
	}
	return attempted, synced
}

// Syncer pushes stored status records to the CMS in hierarchical order:
// beaches, then cities, then regions.
type Syncer struct {
	source   RecordSource
	posts    PostSyncer
	location *time.Location
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewSyncer creates a Syncer. location is the local timezone stamped
// into the posts' last_updated fields.
func NewSyncer(source RecordSource, posts PostSyncer, location *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Syncer {
	return &Syncer{
		source:   source,
		posts:    posts,
		location: location,
		logger:   logger,
		metrics:  metrics,
	}
}

// Sync loads the stored records and upserts each as a CMS post. Per-post
// failures are logged and counted, not fatal: the rest of the batch
// still lands.
func (s *Syncer) Sync(ctx context.Context) (SyncReport, error) {
	report := SyncReport{
		Attempted: make(map[string]int),
		Synced:    make(map[string]int),
		Failed:    make(map[string]int),
	}

	records, err := s.source.StatusRecords(ctx)
	if err != nil {
		return report, fmt.Errorf("load status records: %w", err)
	}
	locations, err := s.source.Locations(ctx)
	if err != nil {
		return report, fmt.Errorf("load locations: %w", err)
	}

	byType := map[string][]domain.StatusRecord{}
	for _, rec := range records {
		byType[rec.LocationType] = append(byType[rec.LocationType], rec)
	}

	lastUpdated := clock.Now().In(s.location).Format("2006-01-02 15:04:05")

	for _, locationType := range []string{"beach", "city", "region"} {
		batch := byType[locationType]
		if len(batch) == 0 {
			continue
		}
		s.logger.Info("syncing posts", "type", locationType, "count", len(batch))

		for _, rec := range batch {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Attempted[locationType]++

			var loc domain.LocationInfo
			if locationType == "beach" {
				loc = locations[rec.LocationName]
			}

			id, outcome, err := s.posts.SyncRecord(ctx, rec, loc, lastUpdated)
			if err != nil {
				report.Failed[locationType]++
				s.metrics.PostsSynced.WithLabelValues(locationType, "error").Inc()
				s.logger.Error("post sync failed", "type", locationType, "name", rec.LocationName, "error", err)
				continue
			}
			report.Synced[locationType]++
			s.metrics.PostsSynced.WithLabelValues(locationType, outcome).Inc()
			s.logger.Info("post synced", "type", locationType, "name", rec.LocationName, "id", id, "outcome", outcome)
		}
	}

	attempted, synced := report.Total()
	s.logger.Info("sync complete", "synced", synced, "attempted", attempted)
	return report, nil
}
