package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

func noSleep(time.Duration) {}

func TestCollect_MergesHourlyAndDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "hourly=") {
			w.Write([]byte(`{"timezone":"America/Denver","hourly":{"time":["2024-01-01T00:00"],"temperature_2m":[-5.0],"weather_code":[71],"temperature_1000hPa":[-3.0],"temperature_850hPa":[-9.0]}}`))
			return
		}
		w.Write([]byte(`{"timezone":"America/Denver","daily":{"time":["2024-01-01"],"sunrise":["2024-01-01T07:00"],"sunset":["2024-01-01T17:00"],"temperature_2m_min":[-10.0],"temperature_2m_max":[-2.0]}}`))
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil, httpclient.WithSleeper(noSleep))
	a := New(fetcher, "", WithSleeper(noSleep), WithEndpoint(srv.URL))

	result, err := a.Collect(context.Background(), types.ResortDescriptor{Lat: 40.5, Lon: -111.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Hourly) != 1 {
		t.Fatalf("expected 1 hourly sample, got %d", len(result.Hourly))
	}
	if result.Hourly[0].PressureTemps.P850 == nil || *result.Hourly[0].PressureTemps.P850 != -9.0 {
		t.Fatalf("expected P850 -9.0, got %+v", result.Hourly[0].PressureTemps.P850)
	}
	if len(result.Daily) != 1 {
		t.Fatalf("expected 1 daily sample, got %d", len(result.Daily))
	}
}

func TestCollect_DailyFailureStillReturnsHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "hourly=") {
			w.Write([]byte(`{"timezone":"UTC","hourly":{"time":["2024-01-01T00:00"],"temperature_2m":[1.0]}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil, httpclient.WithSleeper(noSleep))
	a := New(fetcher, "demo-key", WithSleeper(noSleep), WithEndpoint(srv.URL))

	result, err := a.Collect(context.Background(), types.ResortDescriptor{Lat: 1, Lon: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Hourly) != 1 {
		t.Fatalf("expected hourly to still be populated, got %d samples", len(result.Hourly))
	}
	if result.Daily != nil {
		t.Fatalf("expected nil daily after daily call failure, got %+v", result.Daily)
	}
}

func TestWeatherCodeDescription(t *testing.T) {
	cases := map[int]string{
		0:  "clear sky",
		3:  "overcast",
		61: "rain",
		75: "snow",
		95: "thunderstorm",
	}
	for code, want := range cases {
		if got := WeatherCodeDescription(code); got != want {
			t.Errorf("code %d: want %q, got %q", code, want, got)
		}
	}
}
