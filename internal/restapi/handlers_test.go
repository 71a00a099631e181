package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/log"
	"github.com/jimmysun0815/snow-api/internal/types"
)

type fakeStore struct {
	resorts  []types.Resort
	details  map[int]*database.ResortDetail
	trails   map[int][]types.Trail
	disabled map[int]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		details:  map[int]*database.ResortDetail{},
		trails:   map[int][]types.Trail{},
		disabled: map[int]bool{},
	}
}

func (f *fakeStore) ListEnabledResorts(ctx context.Context) ([]types.Resort, error) {
	return f.resorts, nil
}

func (f *fakeStore) GetResortByID(ctx context.Context, id int) (*types.Resort, error) {
	for _, r := range f.resorts {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetResortBySlug(ctx context.Context, slug string) (*types.Resort, error) {
	for _, r := range f.resorts {
		if r.Slug == slug {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) Detail(ctx context.Context, resort types.Resort) (*database.ResortDetail, error) {
	if d, ok := f.details[resort.ID]; ok {
		return d, nil
	}
	return &database.ResortDetail{Resort: resort}, nil
}

func (f *fakeStore) Trails(ctx context.Context, resortID int, pisteType, difficulty string) ([]types.Trail, error) {
	return f.trails[resortID], nil
}

func (f *fakeStore) SearchResorts(ctx context.Context, name, location string) ([]types.Resort, error) {
	return f.resorts, nil
}

func (f *fakeStore) SaveQualityReport(ctx context.Context, resortID int, status string, score float64, fields map[string]string) error {
	return nil
}

func (f *fakeStore) QualityReport(ctx context.Context, resortID int) (*database.QualityReportModel, error) {
	return nil, errors.New("not found")
}

func (f *fakeStore) DisableResort(ctx context.Context, id int) error {
	f.disabled[id] = true
	return nil
}

func (f *fakeStore) EnableResort(ctx context.Context, id int) error {
	f.disabled[id] = false
	return nil
}

func (f *fakeStore) DB() *gorm.DB { return nil }

func fixedNow(t time.Time) Option { return WithNow(func() time.Time { return t }) }

func TestHandleResortByID_NotFound(t *testing.T) {
	store := newFakeStore()
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/resorts/99", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleResortByID_RewritesStatusFromOpeningDate(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{{ID: 1, Slug: "alta", Name: "Alta"}}
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	store.details[1] = &database.ResortDetail{
		Resort: store.resorts[0],
		Condition: &types.ConditionSnapshot{
			Status: types.StatusClosed,
			Extra:  types.ConditionExtra{OpeningDate: "2026-01-01"},
		},
	}

	s := New(store, nil, "secret", nil, fixedNow(now))
	req := httptest.NewRequest(http.MethodGet, "/api/resorts/1", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp resortDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Condition.Status != types.StatusOpen {
		t.Errorf("expected status rewritten to open, got %s", resp.Condition.Status)
	}
}

func TestHandleNearbyResorts_FiltersAndSortsByDistance(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{
		{ID: 1, Slug: "near", Name: "Near", Lat: 40.0, Lon: -111.0},
		{ID: 2, Slug: "far", Name: "Far", Lat: 50.0, Lon: -111.0},
		{ID: 3, Slug: "closer", Name: "Closer", Lat: 40.1, Lon: -111.0},
	}
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/resorts/nearby?lat=40.0&lon=-111.0&radius=50", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var results []nearbyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 resorts within radius, got %d", len(results))
	}
	if results[0].Slug != "near" || results[1].Slug != "closer" {
		t.Fatalf("expected ascending distance order, got %s then %s", results[0].Slug, results[1].Slug)
	}
	if results[0].DistanceKm != 0 {
		t.Errorf("expected zero distance to itself, got %v", results[0].DistanceKm)
	}
}

func TestHandleTrails_ComputesStats(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{{ID: 1, Slug: "alta", Name: "Alta"}}
	store.trails[1] = []types.Trail{
		{Difficulty: types.DifficultyEasy, PisteType: "downhill", LengthMeters: 1000},
		{Difficulty: types.DifficultyAdvanced, PisteType: "downhill", LengthMeters: 2000},
	}
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/resorts/1/trails", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var resp trailsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TotalLengthKm != 3.0 {
		t.Errorf("expected total length 3km, got %v", resp.TotalLengthKm)
	}
	if resp.DifficultyStats["easy"] != 1 || resp.DifficultyStats["advanced"] != 1 {
		t.Errorf("unexpected difficulty stats: %+v", resp.DifficultyStats)
	}
	if resp.TypeStats["downhill"] != 2 {
		t.Errorf("unexpected type stats: %+v", resp.TypeStats)
	}
}

func TestHandleAdminDisable_MissingHeaderIs404(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{{ID: 1, Slug: "alta"}}
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/resorts/1", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when admin header absent, got %d", rec.Code)
	}
}

func TestHandleAdminDisable_WrongKeyIs401(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{{ID: 1, Slug: "alta"}}
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/resorts/1", nil)
	req.Header.Set("X-Admin-API-Key", "wrong")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on wrong admin key, got %d", rec.Code)
	}
}

func TestHandleAdminDisable_CorrectKeyDisables(t *testing.T) {
	store := newFakeStore()
	store.resorts = []types.Resort{{ID: 1, Slug: "alta"}}
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/resorts/1", nil)
	req.Header.Set("X-Admin-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !store.disabled[1] {
		t.Error("expected resort 1 to be disabled")
	}
}

func TestHandleAdminLogs_RequiresAdminKey(t *testing.T) {
	store := newFakeStore()
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when admin header absent, got %d", rec.Code)
	}
}

func TestHandleAdminLogs_CorrectKeyReturnsEntries(t *testing.T) {
	store := newFakeStore()
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil)
	req.Header.Set("X-Admin-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []log.LogEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHandleAdminHTTPLogs_CorrectKeyReturnsEntries(t *testing.T) {
	store := newFakeStore()
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/http-logs", nil)
	req.Header.Set("X-Admin-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []log.LogEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHandleStatus_NoDatabaseIsServiceUnavailable(t *testing.T) {
	store := newFakeStore()
	s := New(store, nil, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when DB unconfigured, got %d", rec.Code)
	}
}
