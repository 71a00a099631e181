// Package orchestrator implements the Collection Orchestrator (§4.6):
// CollectAll(ctx, resorts) → RunSummary (the canonical records are persisted,
// not returned), fanning out a bounded worker pool over the given resorts, running
// C3 (adapters) → C4 (normalize) → C5 (persist) serially per resort. The
// worker-pool shape (buffered semaphore + sync.WaitGroup over
// context.Context) is grounded on the teacher's internal/app and
// internal/managers goroutine-per-unit idiom, generalized here from
// "one goroutine per long-lived device" to "one short-lived goroutine per
// resort task".
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/log"
	"github.com/jimmysun0815/snow-api/internal/metrics"
	"github.com/jimmysun0815/snow-api/internal/normalize"
	"github.com/jimmysun0815/snow-api/internal/types"
)

// PrimaryCollector is implemented by mtnpowder.Adapter and, when routed as
// primary, onthesnow.Adapter.
type PrimaryCollector interface {
	Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.PrimaryResult, error)
}

// SupplementaryCollector is implemented by onthesnow.Adapter's supplementary path.
type SupplementaryCollector interface {
	CollectSupplementary(ctx context.Context, resort types.ResortDescriptor) (*adapters.SupplementaryResult, error)
}

// WeatherCollector is implemented by openmeteo.Adapter.
type WeatherCollector interface {
	Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.WeatherResult, error)
}

// Sources bundles the adapter set a worker calls, per resort, serially (§5:
// "Primary → Supplementary → Weather adapters are serialized").
type Sources struct {
	Primary       PrimaryCollector
	Supplementary SupplementaryCollector
	Weather       WeatherCollector
}

// FailureTracker accumulates classified per-resort failures for a run.
// Safe for concurrent use: record and Records are guarded by its own mutex.
type FailureTracker struct {
	mu       sync.Mutex
	failures []types.FailureRecord
}

func (ft *FailureTracker) record(rec types.FailureRecord) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.failures = append(ft.failures, rec)
}

// Records returns a copy of the accumulated failure ledger.
func (ft *FailureTracker) Records() []types.FailureRecord {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	out := make([]types.FailureRecord, len(ft.failures))
	copy(out, ft.failures)
	return out
}

// RunSummary is all that CollectAll returns; the records themselves are
// persisted, not returned. Run-level aggregation per §4.6's final bullet.
type RunSummary struct {
	Total    int
	Success  int
	Failed   int
	Failures []types.FailureRecord
	Duration time.Duration
}

// Persister is the narrow slice of internal/database.Repository the
// Orchestrator needs: the transactional write described in §4.5.
type Persister interface {
	SaveCollectionResult(ctx context.Context, rec types.CanonicalRecord) error
}

// Orchestrator runs one collection pass across a set of resorts.
type Orchestrator struct {
	sources    func(resort types.ResortDescriptor) Sources
	persister  Persister
	maxWorkers int

	progressMu sync.Mutex
	completed  int
}

// New builds an Orchestrator. sourcesFor resolves, per resort, which
// concrete adapters to call (mtnpowder-as-primary+onthesnow-as-supplementary,
// or onthesnow-as-primary with no supplementary source, depending on the
// registry's data_source).
func New(sourcesFor func(types.ResortDescriptor) Sources, persister Persister, maxWorkers int) *Orchestrator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	return &Orchestrator{sources: sourcesFor, persister: persister, maxWorkers: maxWorkers}
}

// CollectAll implements collect_all: a bounded worker pool over resorts,
// no cross-worker cancellation (one resort's failure never stops the run).
func (o *Orchestrator) CollectAll(ctx context.Context, resorts []types.ResortDescriptor) RunSummary {
	start := time.Now()
	tracker := &FailureTracker{}
	sem := make(chan struct{}, o.maxWorkers)
	var wg sync.WaitGroup
	var successCount int64
	var successMu sync.Mutex

	o.progressMu.Lock()
	o.completed = 0
	total := len(resorts)
	o.progressMu.Unlock()

	for _, resort := range resorts {
		resort := resort
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			resortStart := time.Now()
			err := o.collectOne(ctx, resort, tracker)
			metrics.CollectionResortDuration.Observe(time.Since(resortStart).Seconds())

			if err == nil {
				successMu.Lock()
				successCount++
				successMu.Unlock()
			}

			o.progressMu.Lock()
			o.completed++
			done := o.completed
			o.progressMu.Unlock()
			log.Infow("resort collection finished", "resort_id", resort.ID, "slug", resort.Slug, "progress", done, "total", total, "ok", err == nil)
		}()
	}
	wg.Wait()

	metrics.CollectionRunsTotal.Inc()

	failures := tracker.Records()
	return RunSummary{
		Total:    total,
		Success:  int(successCount),
		Failed:   len(failures),
		Failures: failures,
		Duration: time.Since(start),
	}
}

// collectOne runs C3 → C4 → C5 for a single resort. Only a failed Primary
// collection or a failed persist aborts the resort's record: a failed
// Supplementary or Weather call is tracked but does not cancel the primary
// record, it only degrades the output (missing webcams / missing weather
// block), per §4.3/§7.
func (o *Orchestrator) collectOne(ctx context.Context, resort types.ResortDescriptor, tracker *FailureTracker) error {
	src := o.sources(resort)

	primary, err := src.Primary.Collect(ctx, resort)
	if err != nil {
		o.trackFailure(tracker, resort, err)
		return err
	}

	var supplementary *adapters.SupplementaryResult
	if src.Supplementary != nil {
		supplementary, err = src.Supplementary.CollectSupplementary(ctx, resort)
		if err != nil {
			o.trackFailure(tracker, resort, err)
			supplementary = nil
		}
	}

	var weather *adapters.WeatherResult
	if src.Weather != nil {
		weather, err = src.Weather.Collect(ctx, resort)
		if err != nil {
			o.trackFailure(tracker, resort, err)
			weather = nil
		}
	}

	merged := normalize.Merge(primary, supplementary, weather)
	record := normalize.Normalize(resort, merged, time.Now())

	if err := o.persister.SaveCollectionResult(ctx, record); err != nil {
		o.trackFailure(tracker, resort, err)
		return err
	}

	return nil
}

func (o *Orchestrator) trackFailure(tracker *FailureTracker, resort types.ResortDescriptor, err error) {
	errType := string(httpclient.ErrUnknown)
	if te, ok := httpclient.AsTypedError(err); ok {
		errType = string(te.Type)
	}
	metrics.CollectionFailuresTotal.WithLabelValues(errType).Inc()
	tracker.record(types.FailureRecord{
		ResortID:     resort.ID,
		ResortName:   resort.Name,
		ErrorType:    errType,
		ErrorMessage: err.Error(),
		Timestamp:    time.Now(),
	})
}
