// Package services orchestrates record mutations and aggregation reads
// across the store, the summary cache and the event publisher.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"paisa/internal/backend"
	"paisa/internal/cache"
	"paisa/internal/core"
	"paisa/internal/events"
	"paisa/internal/metrics"
	"paisa/internal/store"
)

// EventPublisher is the slice of the AMQP publisher the service uses.
// A nil publisher disables eventing.
type EventPublisher interface {
	Publish(ctx context.Context, event events.RecordEvent) error
	Close() error
}

// StatsResult bundles the period statistics with the daily trend series
// for the same subset.
type StatsResult struct {
	core.PeriodStats
	DailyTrend []core.DailyPoint `json:"dailyTrend"`
}

// ExpenseService is the single entry point the transport layer calls.
type ExpenseService struct {
	store        backend.Store
	publisher    EventPublisher
	summaryCache *cache.TTLCache[core.Summary]
	comparator   core.Comparator
}

// NewExpenseService wires the service. comparator may be nil to use the
// historical default.
func NewExpenseService(st backend.Store, publisher EventPublisher, cacheSize int, cacheTTL time.Duration, comparator core.Comparator) *ExpenseService {
	if comparator == nil {
		comparator = core.HistoricalComparator{}
	}
	return &ExpenseService{
		store:        st,
		publisher:    publisher,
		summaryCache: cache.New[core.Summary](cacheSize, cacheTTL),
		comparator:   comparator,
	}
}

// Create validates and persists a new record, then invalidates cached
// summaries and publishes a created event. The event is best-effort:
// the record is durable before publishing is attempted.
func (s *ExpenseService) Create(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	if err := rec.Validate(); err != nil {
		metrics.RecordOps.WithLabelValues("create", "invalid").Inc()
		return core.ExpenseRecord{}, err
	}

	created, err := s.store.InsertRecord(ctx, rec)
	if err != nil {
		metrics.RecordOps.WithLabelValues("create", "error").Inc()
		return core.ExpenseRecord{}, fmt.Errorf("insert record: %w", err)
	}
	metrics.RecordOps.WithLabelValues("create", "ok").Inc()
	s.summaryCache.Purge()

	s.publish(ctx, events.NewRecordCreated(created))
	return created, nil
}

// Delete hard-deletes a record. store.ErrNotFound passes through so the
// transport can report 404 distinctly from failure.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteRecord(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		metrics.RecordOps.WithLabelValues("delete", "not_found").Inc()
		return err
	}
	if err != nil {
		metrics.RecordOps.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete record: %w", err)
	}
	metrics.RecordOps.WithLabelValues("delete", "ok").Inc()
	s.summaryCache.Purge()

	s.publish(ctx, events.NewRecordDeleted(id))
	return nil
}

// List returns the full snapshot, date descending.
func (s *ExpenseService) List(ctx context.Context) (core.Snapshot, error) {
	return s.store.ListRecords(ctx)
}

// Get looks up one record by id.
func (s *ExpenseService) Get(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	return s.store.GetRecord(ctx, id)
}

// Page applies filter, sort and pagination to the current snapshot.
func (s *ExpenseService) Page(ctx context.Context, f core.Filter, key core.SortKey, page int) (core.Page, error) {
	snapshot, err := s.store.ListRecords(ctx)
	if err != nil {
		return core.Page{}, fmt.Errorf("list records: %w", err)
	}
	filtered := core.ApplyFilter(snapshot, f)
	sorted := core.SortRecords(filtered, key)
	return core.Paginate(sorted, page), nil
}

// Summary computes the dashboard summary for now, memoized per calendar
// day until the next mutation or TTL expiry.
func (s *ExpenseService) Summary(ctx context.Context, now time.Time) (core.Summary, error) {
	key := "summary:" + now.Format("2006-01-02")
	if cached, ok := s.summaryCache.Get(key); ok {
		metrics.SummaryCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SummaryCacheHits.WithLabelValues("miss").Inc()

	snapshot, err := s.store.ListRecords(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list records: %w", err)
	}

	summary := core.ComputeSummary(snapshot, now, s.comparator)
	s.summaryCache.Set(key, summary)
	return summary, nil
}

// PeriodStats computes statistics and the daily trend for the subset of
// records inside the window.
func (s *ExpenseService) PeriodStats(ctx context.Context, w core.Window) (StatsResult, error) {
	snapshot, err := s.store.ListRecords(ctx)
	if err != nil {
		return StatsResult{}, fmt.Errorf("list records: %w", err)
	}
	subset := core.FilterByWindow(snapshot, w)
	return StatsResult{
		PeriodStats: core.ComputePeriodStats(subset),
		DailyTrend:  core.DailyTrend(subset),
	}, nil
}

// CleanExpiredCache drops stale summary entries, returning the count.
func (s *ExpenseService) CleanExpiredCache() int {
	return s.summaryCache.CleanExpired()
}

// Close releases the event publisher, if any.
func (s *ExpenseService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, event events.RecordEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// The mutation already succeeded locally; don't fail the request.
		slog.ErrorContext(ctx, "Failed to publish record event",
			"type", event.Type, "record_id", event.RecordID, "error", err)
	}
}
