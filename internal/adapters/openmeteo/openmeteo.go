// Package openmeteo implements the Weather Adapter (§4.2): two calls to
// the Open-Meteo forecast endpoint, one hourly and one daily. Request
// shape and field names are grounded on the pack's Open-Meteo datasource
// example (geocode/weather/air-quality client), trimmed to the metrics
// this spec's Weather Snapshot needs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

const (
	freeEndpoint     = "https://api.open-meteo.com/v1/forecast"
	customerEndpoint = "https://customer-api.open-meteo.com/v1/forecast"

	hourlyMetrics = "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,wind_direction_10m," +
		"freezing_level_height,weather_code,snowfall,precipitation," +
		"temperature_1000hPa,temperature_925hPa,temperature_850hPa,temperature_700hPa,temperature_500hPa"
	dailyMetrics = "sunrise,sunset,temperature_2m_min,temperature_2m_max,precipitation_sum,snowfall_sum,wind_speed_10m_max"
)

// Adapter is stateless and safe for concurrent use across resorts.
type Adapter struct {
	fetcher          *httpclient.Fetcher
	apiKey           string
	sleeper          func(time.Duration)
	endpointOverride string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSleeper overrides the jitter sleep for deterministic tests.
func WithSleeper(fn func(time.Duration)) Option {
	return func(a *Adapter) { a.sleeper = fn }
}

// WithEndpoint overrides the forecast endpoint base URL, for tests that
// point the adapter at an httptest.Server instead of the real service.
func WithEndpoint(base string) Option {
	return func(a *Adapter) { a.endpointOverride = base }
}

// New builds an Adapter. apiKey may be empty — an empty key targets the
// free endpoint with added jitter (§4.2); a non-empty key targets the
// customer endpoint and skips it.
func New(fetcher *httpclient.Fetcher, apiKey string, opts ...Option) *Adapter {
	a := &Adapter{fetcher: fetcher, apiKey: apiKey, sleeper: time.Sleep}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type hourlyBlock struct {
	Time                []string   `json:"time"`
	Temperature2m       []*float64 `json:"temperature_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	RelativeHumidity2m  []*float64 `json:"relative_humidity_2m"`
	WindSpeed10m        []*float64 `json:"wind_speed_10m"`
	WindDirection10m    []*float64 `json:"wind_direction_10m"`
	FreezingLevelHeight []*float64 `json:"freezing_level_height"`
	WeatherCode         []*int     `json:"weather_code"`
	Snowfall            []*float64 `json:"snowfall"`
	Precipitation       []*float64 `json:"precipitation"`
	Temp1000hPa         []*float64 `json:"temperature_1000hPa"`
	Temp925hPa          []*float64 `json:"temperature_925hPa"`
	Temp850hPa          []*float64 `json:"temperature_850hPa"`
	Temp700hPa          []*float64 `json:"temperature_700hPa"`
	Temp500hPa          []*float64 `json:"temperature_500hPa"`
}

type dailyBlock struct {
	Time            []string   `json:"time"`
	Sunrise         []string   `json:"sunrise"`
	Sunset          []string   `json:"sunset"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	SnowfallSum      []*float64 `json:"snowfall_sum"`
	WindSpeed10mMax  []*float64 `json:"wind_speed_10m_max"`
}

type forecastResponse struct {
	Timezone string       `json:"timezone"`
	Hourly   *hourlyBlock `json:"hourly,omitempty"`
	Daily    *dailyBlock  `json:"daily,omitempty"`
}

// Collect performs the hourly and daily calls and merges them (§4.2): if
// the daily call fails, the hourly result still stands.
func (a *Adapter) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.WeatherResult, error) {
	endpoint := freeEndpoint
	if a.apiKey != "" {
		endpoint = customerEndpoint
	} else {
		jitter := time.Duration(1000+int64(time.Now().UnixNano()%1000)) * time.Millisecond
		a.sleeper(jitter)
	}
	if a.endpointOverride != "" {
		endpoint = a.endpointOverride
	}

	hourlyURL := a.buildURL(endpoint, resort, "hourly", hourlyMetrics, 4)
	hourlyResp, err := a.fetcher.Do(ctx, http.MethodGet, hourlyURL, nil, 30*time.Second, 3)
	if err != nil {
		return nil, err
	}
	var hourlyPayload forecastResponse
	if err := json.Unmarshal(hourlyResp.Body, &hourlyPayload); err != nil {
		return nil, httpclient.NewTypedError(httpclient.ErrJSON, hourlyURL, err)
	}

	result := &adapters.WeatherResult{
		Timezone: hourlyPayload.Timezone,
		Hourly:   convertHourly(hourlyPayload.Hourly),
	}

	dailyURL := a.buildURL(endpoint, resort, "daily", dailyMetrics, 8)
	dailyResp, err := a.fetcher.Do(ctx, http.MethodGet, dailyURL, nil, 30*time.Second, 3)
	if err == nil {
		var dailyPayload forecastResponse
		if jsonErr := json.Unmarshal(dailyResp.Body, &dailyPayload); jsonErr == nil {
			result.Daily = convertDaily(dailyPayload.Daily)
		}
	}

	return result, nil
}

func (a *Adapter) buildURL(endpoint string, resort types.ResortDescriptor, kind, metrics string, days int) string {
	v := url.Values{}
	v.Set("latitude", fmt.Sprintf("%.6f", resort.Lat))
	v.Set("longitude", fmt.Sprintf("%.6f", resort.Lon))
	v.Set(kind, metrics)
	v.Set("forecast_days", fmt.Sprintf("%d", days))
	v.Set("timezone", "auto")
	if a.apiKey != "" {
		v.Set("apikey", a.apiKey)
	}
	return endpoint + "?" + v.Encode()
}

func convertHourly(b *hourlyBlock) []adapters.HourlyRaw {
	if b == nil {
		return nil
	}
	out := make([]adapters.HourlyRaw, 0, len(b.Time))
	for i := range b.Time {
		at := func(s []*float64) *float64 {
			if i < len(s) {
				return s[i]
			}
			return nil
		}
		atInt := func(s []*int) *int {
			if i < len(s) {
				return s[i]
			}
			return nil
		}
		out = append(out, adapters.HourlyRaw{
			Time:          b.Time[i],
			Temperature:   at(b.Temperature2m),
			ApparentTemp:  at(b.ApparentTemperature),
			Humidity:      at(b.RelativeHumidity2m),
			WindSpeedKph:  at(b.WindSpeed10m),
			WindDegrees:   at(b.WindDirection10m),
			FreezingLevel: at(b.FreezingLevelHeight),
			WeatherCode:   atInt(b.WeatherCode),
			Snowfall:      at(b.Snowfall),
			Precipitation: at(b.Precipitation),
			PressureTemps: adapters.PressureLevelTemps{
				P1000: at(b.Temp1000hPa),
				P925:  at(b.Temp925hPa),
				P850:  at(b.Temp850hPa),
				P700:  at(b.Temp700hPa),
				P500:  at(b.Temp500hPa),
			},
		})
	}
	return out
}

func convertDaily(b *dailyBlock) []adapters.DailyRaw {
	if b == nil {
		return nil
	}
	out := make([]adapters.DailyRaw, 0, len(b.Time))
	for i := range b.Time {
		at := func(s []*float64) *float64 {
			if i < len(s) {
				return s[i]
			}
			return nil
		}
		atStr := func(s []string) string {
			if i < len(s) {
				return s[i]
			}
			return ""
		}
		out = append(out, adapters.DailyRaw{
			Date:         b.Time[i],
			Sunrise:      atStr(b.Sunrise),
			Sunset:       atStr(b.Sunset),
			TempMin:      at(b.Temperature2mMin),
			TempMax:      at(b.Temperature2mMax),
			PrecipSum:    at(b.PrecipitationSum),
			SnowfallSum:  at(b.SnowfallSum),
			MaxWindSpeed: at(b.WindSpeed10mMax),
		})
	}
	return out
}

// WeatherCodeDescription translates a WMO weather code (0-99) into a
// human-readable description, grounded on the pack's Open-Meteo example's
// translateWeatherCode switch.
func WeatherCodeDescription(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code == 1:
		return "mainly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code >= 85 && code <= 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
