package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

func noSleep(time.Duration) {}

func TestCollect_ParsesBoundaryAndTrails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"elements":[{"type":"way","id":1,"tags":{},"geometry":[{"lat":40.0,"lon":-111.0},{"lat":40.01,"lon":-111.01}]}]}`))
			return
		}
		w.Write([]byte(`{"elements":[{"type":"way","id":2,"tags":{"name":"Lower Run","piste:type":"downhill","piste:difficulty":"intermediate"},"geometry":[{"lat":40.0,"lon":-111.0},{"lat":40.001,"lon":-111.001}]}]}`))
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil, httpclient.WithSleeper(noSleep))
	a := New(fetcher, WithEndpoint(srv.URL))

	result, err := a.Collect(context.Background(), types.ResortDescriptor{ID: 1, Lat: 40.0, Lon: -111.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Boundary) != 2 {
		t.Fatalf("expected 2 boundary points, got %d", len(result.Boundary))
	}
	if len(result.Trails) != 1 {
		t.Fatalf("expected 1 trail, got %d", len(result.Trails))
	}
	if result.Trails[0].Difficulty != types.DifficultyIntermediate {
		t.Errorf("expected intermediate difficulty, got %s", result.Trails[0].Difficulty)
	}
	if result.Trails[0].LengthMeters <= 0 {
		t.Errorf("expected positive trail length, got %f", result.Trails[0].LengthMeters)
	}
}

func TestCollect_NoBoundaryFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil, httpclient.WithSleeper(noSleep))
	a := New(fetcher, WithEndpoint(srv.URL))

	_, err := a.Collect(context.Background(), types.ResortDescriptor{ID: 1, Lat: 40.0, Lon: -111.0})
	if err == nil {
		t.Fatal("expected error when no boundary element is found")
	}
	te, ok := httpclient.AsTypedError(err)
	if !ok || te.Type != httpclient.ErrNoData {
		t.Fatalf("expected NO_DATA typed error, got %v", err)
	}
}
