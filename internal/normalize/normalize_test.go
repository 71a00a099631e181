package normalize

import (
	"testing"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/types"
)

func ptr(f float64) *float64 { return &f }
func iptr(i int) *int        { return &i }

func TestWindCompass(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{44, "NE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{360, "N"},
		{-45, "NW"},
	}
	for _, c := range cases {
		if got := windCompass(c.deg); got != c.want {
			t.Errorf("windCompass(%v) = %q, want %q", c.deg, got, c.want)
		}
	}
}

func TestWindCompass_EquivalentUnderFullRotation(t *testing.T) {
	for deg := -360.0; deg <= 720.0; deg += 22.5 {
		if windCompass(deg) != windCompass(deg+360) {
			t.Errorf("windCompass(%v) != windCompass(%v): compass should be invariant under a full rotation", deg, deg+360)
		}
	}
}

func TestCoerceCount_SentinelsAndNegatives(t *testing.T) {
	if v := coerceCount("--"); v != 0 {
		t.Errorf("expected 0 for sentinel, got %d", v)
	}
	if v := coerceCount(""); v != 0 {
		t.Errorf("expected 0 for empty, got %d", v)
	}
	if v := coerceCount("-3"); v != 0 {
		t.Errorf("expected negative count clamped to 0, got %d", v)
	}
	if v := coerceCount("12"); v != 12 {
		t.Errorf("expected 12, got %d", v)
	}
}

func TestCoerceDepth_SentinelsBecomeNull(t *testing.T) {
	if v := coerceDepth("--"); v != nil {
		t.Errorf("expected nil for sentinel, got %v", *v)
	}
	if v := coerceDepth("5.5"); v == nil || *v != 5.5 {
		t.Errorf("expected 5.5, got %v", v)
	}
	if v := coerceDepth("-5"); v == nil || *v != 0 {
		t.Errorf("expected negative depth clamped to 0, got %v", v)
	}
}

func TestCoerceTemperature_NegativeAllowed(t *testing.T) {
	if v := coerceTemperature("-12.5"); v == nil || *v != -12.5 {
		t.Errorf("expected -12.5 preserved, got %v", v)
	}
	if v := coerceTemperature("--"); v == nil || *v != 0 {
		t.Errorf("expected sentinel to coerce to 0, got %v", v)
	}
	if v := coerceTemperature(""); v == nil || *v != 0 {
		t.Errorf("expected empty string to coerce to 0, got %v", v)
	}
}

func TestDeriveStatus_ProviderA(t *testing.T) {
	cases := []struct {
		name   string
		status string
		lifts  *int
		want   types.Status
	}{
		{"open", "Open", iptr(3), types.StatusOpen},
		{"partial", "Open", iptr(0), types.StatusPartial},
		{"closed", "Closed for season", iptr(0), types.StatusClosed},
	}
	for _, c := range cases {
		m := MergedInput{SourceKind: types.SourceMtnPowder, OperatingStatus: c.status, LiftsOpen: c.lifts}
		if got := deriveStatus(m); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestDeriveStatus_ProviderB(t *testing.T) {
	cases := []struct {
		name string
		flag *int
		want types.Status
	}{
		{"open", iptr(0), types.StatusOpen},
		{"partial", iptr(1), types.StatusPartial},
		{"closed", iptr(2), types.StatusClosed},
		{"missing", nil, types.StatusClosed},
	}
	for _, c := range cases {
		m := MergedInput{SourceKind: types.SourceOnTheSnow, OpenFlag: c.flag}
		if got := deriveStatus(m); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestInterpolateTemperatures_RequiresTwoLevels(t *testing.T) {
	bands := elevationBands{Base: 1000, Mid: 2000, Summit: 3000}
	levels := [5]*float64{ptr(-2)}
	base, mid, summit := interpolateTemperatures(levels, bands)
	if base != nil || mid != nil || summit != nil {
		t.Fatal("expected all-nil with fewer than 2 non-nil levels")
	}
}

func TestInterpolateTemperatures_InterpolatesAndExtrapolates(t *testing.T) {
	// 1000hPa->110m: 5C, 850hPa->1500m: -3C, 500hPa->5500m: -20C
	levels := [5]*float64{ptr(5), nil, ptr(-3), nil, ptr(-20)}
	bands := elevationBands{Base: 110, Mid: 1500, Summit: 8000}
	base, mid, summit := interpolateTemperatures(levels, bands)
	if base == nil || *base != 5 {
		t.Errorf("expected base exactly at table point 5, got %v", base)
	}
	if mid == nil || *mid != -3 {
		t.Errorf("expected mid exactly at table point -3, got %v", mid)
	}
	if summit == nil {
		t.Fatal("expected extrapolated summit, got nil")
	}
}

func TestInterpolateTemperatures_RejectsImplausible(t *testing.T) {
	levels := [5]*float64{ptr(40), ptr(45)}
	bands := elevationBands{Base: 110, Summit: 20000}
	_, _, summit := interpolateTemperatures(levels, bands)
	if summit != nil {
		t.Errorf("expected implausible extrapolated summit rejected to nil, got %v", *summit)
	}
}

func TestMerge_WebcamsAndTrailBackfillFromSecondary(t *testing.T) {
	primary := &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, OperatingStatus: "Open"}
	secondary := &adapters.SupplementaryResult{
		Webcams:     []types.Webcam{{Title: "base lodge"}},
		TrailsTotal: iptr(42),
		TrailsOpen:  iptr(10),
	}
	m := Merge(primary, secondary, nil)
	if len(m.Webcams) != 1 {
		t.Fatalf("expected webcams from secondary, got %d", len(m.Webcams))
	}
	if m.TrailsTotal == nil || *m.TrailsTotal != 42 {
		t.Errorf("expected trails_total backfilled from secondary, got %v", m.TrailsTotal)
	}
}

func TestMerge_PrimaryTemperatureNotOverwrittenByWeather(t *testing.T) {
	primary := &adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, BaseTemperatureC: "-5"}
	weather := &adapters.WeatherResult{Hourly: []adapters.HourlyRaw{{Time: "2024-01-01T00:00", Temperature: ptr(99)}}}
	m := Merge(primary, nil, weather)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := Normalize(types.ResortDescriptor{ID: 1, DataSource: types.SourceMtnPowder}, m, now)
	if rec.Weather == nil || rec.Weather.Temperature == nil || *rec.Weather.Temperature != -5 {
		t.Fatalf("expected primary temperature -5 preserved, got %+v", rec.Weather)
	}
}

func TestNormalize_ForecastHorizonCaps(t *testing.T) {
	hourly := make([]adapters.HourlyRaw, 100)
	for i := range hourly {
		hourly[i] = adapters.HourlyRaw{Time: "2024-01-01T00:00"}
	}
	daily := make([]adapters.DailyRaw, 10)
	for i := range daily {
		daily[i] = adapters.DailyRaw{Date: "2024-01-01"}
	}
	m := Merge(&adapters.PrimaryResult{SourceKind: types.SourceMtnPowder}, nil, &adapters.WeatherResult{Hourly: hourly, Daily: daily})
	rec := Normalize(types.ResortDescriptor{ID: 1}, m, time.Now())
	if len(rec.Weather.Hourly) != maxHourlySamples {
		t.Errorf("expected %d hourly samples, got %d", maxHourlySamples, len(rec.Weather.Hourly))
	}
	if len(rec.Weather.Daily) != maxDailySamples {
		t.Errorf("expected %d daily samples, got %d", maxDailySamples, len(rec.Weather.Daily))
	}
}

func TestNormalize_24hAggregatesRequireFullWindow(t *testing.T) {
	few := make([]adapters.HourlyRaw, 10)
	for i := range few {
		few[i] = adapters.HourlyRaw{Time: "2024-01-01T00:00", FreezingLevel: ptr(1000)}
	}
	m := Merge(nil, nil, &adapters.WeatherResult{Hourly: few})
	rec := Normalize(types.ResortDescriptor{ID: 1}, m, time.Now())
	if rec.Weather.FreezingLevel24hAvg != nil {
		t.Errorf("expected nil 24h average with fewer than 24 samples, got %v", *rec.Weather.FreezingLevel24hAvg)
	}

	full := make([]adapters.HourlyRaw, 24)
	for i := range full {
		full[i] = adapters.HourlyRaw{Time: "2024-01-01T00:00", FreezingLevel: ptr(1000)}
	}
	m2 := Merge(nil, nil, &adapters.WeatherResult{Hourly: full})
	rec2 := Normalize(types.ResortDescriptor{ID: 1}, m2, time.Now())
	if rec2.Weather.FreezingLevel24hAvg == nil || *rec2.Weather.FreezingLevel24hAvg != 1000 {
		t.Errorf("expected 24h average of 1000, got %v", rec2.Weather.FreezingLevel24hAvg)
	}
}

func TestNormalize_IsIdempotentOnSameInput(t *testing.T) {
	m := Merge(&adapters.PrimaryResult{SourceKind: types.SourceMtnPowder, OperatingStatus: "Open", LiftsOpen: iptr(2), NewSnowCM: "3"}, nil, nil)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	rec1 := Normalize(types.ResortDescriptor{ID: 7}, m, now)
	rec2 := Normalize(types.ResortDescriptor{ID: 7}, m, now)
	if rec1.Condition.Status != rec2.Condition.Status || *rec1.Condition.NewSnow != *rec2.Condition.NewSnow {
		t.Fatal("expected normalize to be a pure function of its inputs")
	}
}
