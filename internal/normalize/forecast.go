package normalize

import (
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/types"
)

const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyDateLayout  = "2006-01-02"

	maxHourlySamples = 80
	maxDailySamples  = 8
	min24hSamples    = 24
)

// buildHourlyForecast converts raw Open-Meteo hourly samples into the
// domain shape, applying §4.4's 80-sample horizon cap.
func buildHourlyForecast(raw []adapters.HourlyRaw) []types.HourlyForecast {
	if len(raw) > maxHourlySamples {
		raw = raw[:maxHourlySamples]
	}
	out := make([]types.HourlyForecast, 0, len(raw))
	for _, h := range raw {
		t, _ := time.Parse(hourlyTimeLayout, h.Time)
		wind := types.WindInfo{SpeedKph: h.WindSpeedKph, Degrees: h.WindDegrees}
		if h.WindDegrees != nil {
			wind.Compass = windCompass(*h.WindDegrees)
		}
		out = append(out, types.HourlyForecast{
			Time:          t,
			Temperature:   h.Temperature,
			ApparentTemp:  h.ApparentTemp,
			Humidity:      h.Humidity,
			Wind:          wind,
			FreezingLevel: h.FreezingLevel,
			WeatherCode:   h.WeatherCode,
			Snowfall:      h.Snowfall,
			Precipitation: h.Precipitation,
		})
	}
	return out
}

// buildDailyForecast converts raw Open-Meteo daily samples, applying the
// 8-day cap and pulling each day's weather code from the hourly sample at
// 12:00 local time (fallback: first hourly sample matching that date),
// per §4.4.
func buildDailyForecast(raw []adapters.DailyRaw, hourly []adapters.HourlyRaw) []types.DailyForecast {
	if len(raw) > maxDailySamples {
		raw = raw[:maxDailySamples]
	}
	out := make([]types.DailyForecast, 0, len(raw))
	for _, d := range raw {
		date, _ := time.Parse(dailyDateLayout, d.Date)
		sunrise, _ := time.Parse(hourlyTimeLayout, d.Sunrise)
		sunset, _ := time.Parse(hourlyTimeLayout, d.Sunset)
		out = append(out, types.DailyForecast{
			Date:         date,
			Sunrise:      sunrise,
			Sunset:       sunset,
			TempMin:      d.TempMin,
			TempMax:      d.TempMax,
			PrecipSum:    d.PrecipSum,
			SnowfallSum:  d.SnowfallSum,
			MaxWindSpeed: d.MaxWindSpeed,
			WeatherCode:  weatherCodeForDate(d.Date, hourly),
		})
	}
	return out
}

func weatherCodeForDate(date string, hourly []adapters.HourlyRaw) *int {
	var fallback *int
	for _, h := range hourly {
		if len(h.Time) < len(dailyDateLayout) || h.Time[:len(dailyDateLayout)] != date {
			continue
		}
		if fallback == nil {
			fallback = h.WeatherCode
		}
		if len(h.Time) >= len(hourlyTimeLayout) && h.Time[len(dailyDateLayout)+1:] == "12:00" {
			return h.WeatherCode
		}
	}
	return fallback
}

// aggregates24h computes §4.4's 24h rollups, requiring at least 24 hourly
// samples; otherwise all four results are nil.
func aggregates24h(raw []adapters.HourlyRaw) (freezingAvg, windAvg, snowSum, precipSum *float64) {
	if len(raw) < min24hSamples {
		return nil, nil, nil, nil
	}
	window := raw[:min24hSamples]

	var freezingTotal, windTotal, snowTotal, precipTotal float64
	var freezingN, windN int
	for _, h := range window {
		if h.FreezingLevel != nil {
			freezingTotal += *h.FreezingLevel
			freezingN++
		}
		if h.WindSpeedKph != nil {
			windTotal += *h.WindSpeedKph
			windN++
		}
		if h.Snowfall != nil {
			snowTotal += *h.Snowfall
		}
		if h.Precipitation != nil {
			precipTotal += *h.Precipitation
		}
	}

	if freezingN > 0 {
		v := freezingTotal / float64(freezingN)
		freezingAvg = &v
	}
	if windN > 0 {
		v := windTotal / float64(windN)
		windAvg = &v
	}
	snowSum = &snowTotal
	precipSum = &precipTotal
	return freezingAvg, windAvg, snowSum, precipSum
}
