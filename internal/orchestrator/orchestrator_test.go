package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

type fakePrimary struct {
	result *adapters.PrimaryResult
	err    error
}

func (f fakePrimary) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.PrimaryResult, error) {
	return f.result, f.err
}

type fakeSupplementary struct {
	result *adapters.SupplementaryResult
	err    error
}

func (f fakeSupplementary) CollectSupplementary(ctx context.Context, resort types.ResortDescriptor) (*adapters.SupplementaryResult, error) {
	return f.result, f.err
}

type fakeWeather struct {
	result *adapters.WeatherResult
	err    error
}

func (f fakeWeather) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.WeatherResult, error) {
	return f.result, f.err
}

type fakePersister struct {
	mu    sync.Mutex
	saved int
	fail  bool
}

func (f *fakePersister) SaveCollectionResult(ctx context.Context, rec types.CanonicalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return httpclient.NewTypedError(httpclient.ErrDatabaseSaveFail, "", errors.New("write failed"))
	}
	f.saved++
	return nil
}

func TestCollectAll_AllSucceed(t *testing.T) {
	persister := &fakePersister{}
	o := New(func(resort types.ResortDescriptor) Sources {
		return Sources{
			Primary:       fakePrimary{result: &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, OperatingStatus: "Open"}},
			Supplementary: fakeSupplementary{result: &adapters.SupplementaryResult{}},
			Weather:       fakeWeather{result: &adapters.WeatherResult{}},
		}
	}, persister, 4)

	resorts := []types.ResortDescriptor{{ID: 1}, {ID: 2}, {ID: 3}}
	summary := o.CollectAll(context.Background(), resorts)

	if summary.Total != 3 || summary.Success != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if persister.saved != 3 {
		t.Fatalf("expected 3 saves, got %d", persister.saved)
	}
}

func TestCollectAll_PrimaryFailureNoRecordButOthersUnaffected(t *testing.T) {
	persister := &fakePersister{}
	failErr := httpclient.NewTypedError(httpclient.ErrHTTP404, "http://example.com", errors.New("not found"))

	o := New(func(resort types.ResortDescriptor) Sources {
		if resort.ID == 1 {
			return Sources{Primary: fakePrimary{err: failErr}}
		}
		return Sources{
			Primary:       fakePrimary{result: &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder}},
			Supplementary: fakeSupplementary{result: &adapters.SupplementaryResult{}},
			Weather:       fakeWeather{result: &adapters.WeatherResult{}},
		}
	}, persister, 4)

	summary := o.CollectAll(context.Background(), []types.ResortDescriptor{{ID: 1}, {ID: 2}})

	if summary.Total != 2 || summary.Success != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ErrorType != string(httpclient.ErrHTTP404) {
		t.Fatalf("expected one HTTP_404 failure, got %+v", summary.Failures)
	}
}

func TestCollectAll_WeatherFailureStillPersistsDegradedRecord(t *testing.T) {
	persister := &fakePersister{}
	weatherErr := httpclient.NewTypedError(httpclient.ErrTimeout, "http://example.com", errors.New("timed out"))

	o := New(func(resort types.ResortDescriptor) Sources {
		return Sources{
			Primary:       fakePrimary{result: &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, OperatingStatus: "Open"}},
			Supplementary: fakeSupplementary{result: &adapters.SupplementaryResult{}},
			Weather:       fakeWeather{err: weatherErr},
		}
	}, persister, 2)

	summary := o.CollectAll(context.Background(), []types.ResortDescriptor{{ID: 1}})

	if summary.Success != 1 {
		t.Fatalf("expected primary+persist success to count toward Success despite weather failure, got %+v", summary)
	}
	if persister.saved != 1 {
		t.Fatalf("expected a degraded record to still be saved, got %d saves", persister.saved)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ErrorType != string(httpclient.ErrTimeout) {
		t.Fatalf("expected the weather failure to still be tracked, got %+v", summary.Failures)
	}
}

func TestCollectAll_SupplementaryFailureStillPersistsDegradedRecord(t *testing.T) {
	persister := &fakePersister{}
	suppErr := httpclient.NewTypedError(httpclient.ErrConnection, "http://example.com", errors.New("connection reset"))

	o := New(func(resort types.ResortDescriptor) Sources {
		return Sources{
			Primary:       fakePrimary{result: &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, OperatingStatus: "Open"}},
			Supplementary: fakeSupplementary{err: suppErr},
			Weather:       fakeWeather{result: &adapters.WeatherResult{}},
		}
	}, persister, 2)

	summary := o.CollectAll(context.Background(), []types.ResortDescriptor{{ID: 1}})

	if summary.Success != 1 {
		t.Fatalf("expected primary+persist success to count toward Success despite supplementary failure, got %+v", summary)
	}
	if persister.saved != 1 {
		t.Fatalf("expected a degraded record to still be saved, got %d saves", persister.saved)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ErrorType != string(httpclient.ErrConnection) {
		t.Fatalf("expected the supplementary failure to still be tracked, got %+v", summary.Failures)
	}
}

func TestCollectAll_DatabaseSaveFailureIsClassifiedAndEmitsNoRecord(t *testing.T) {
	persister := &fakePersister{fail: true}
	o := New(func(resort types.ResortDescriptor) Sources {
		return Sources{Primary: fakePrimary{result: &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder}}}
	}, persister, 2)

	summary := o.CollectAll(context.Background(), []types.ResortDescriptor{{ID: 1}})

	if summary.Success != 0 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Failures[0].ErrorType != string(httpclient.ErrDatabaseSaveFail) {
		t.Errorf("expected DATABASE_SAVE_FAILED, got %s", summary.Failures[0].ErrorType)
	}
}
