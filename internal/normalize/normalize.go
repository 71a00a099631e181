package normalize

import (
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/types"
)

// Normalize implements the Normalizer contract (§4.4):
// normalize(resort, raw, source_kind) → CanonicalRecord. raw has already
// passed through Merge; now is the collection run's timestamp, injected
// rather than read from time.Now so the function stays pure and testable.
func Normalize(descriptor types.ResortDescriptor, merged MergedInput, now time.Time) types.CanonicalRecord {
	resort := types.Resort{
		ID:           descriptor.ID,
		Slug:         descriptor.Slug,
		Name:         descriptor.Name,
		Location:     descriptor.Location,
		Lat:          descriptor.Lat,
		Lon:          descriptor.Lon,
		ElevationMin: descriptor.ElevationMin,
		ElevationMax: descriptor.ElevationMax,
		DataSource:   descriptor.DataSource,
		SourceURL:    descriptor.SourceURL,
		SourceID:     descriptor.SourceID,
		Enabled:      descriptor.Enabled,
	}

	status := deriveStatus(merged)

	condition := types.ConditionSnapshot{
		ResortID:    descriptor.ID,
		Timestamp:   now,
		Status:      status,
		NewSnow:     coerceDepth(merged.NewSnowCM),
		BaseDepth:   coerceDepth(merged.BaseDepthCM),
		LiftsOpen:   clampedIntPtr(merged.LiftsOpen),
		LiftsTotal:  clampedIntPtr(merged.LiftsTotal),
		TrailsOpen:  clampedIntPtr(merged.TrailsOpen),
		TrailsTotal: clampedIntPtr(merged.TrailsTotal),
		Temperature: coerceTemperature(merged.BaseTemperatureC),
		Extra: types.ConditionExtra{
			OpeningDate: merged.OpeningDate,
			ClosingDate: merged.ClosingDate,
			SummitDepth: coerceDepth(merged.SummitDepthCM),
		},
	}

	var weather *types.WeatherSnapshot
	if merged.Weather != nil {
		weather = buildWeatherSnapshot(descriptor, merged, now)
	}

	webcams := make([]types.Webcam, 0, len(merged.Webcams))
	for _, w := range merged.Webcams {
		w.ResortID = descriptor.ID
		w.LastUpdated = now
		webcams = append(webcams, w)
	}

	return types.CanonicalRecord{
		Resort:    resort,
		Condition: condition,
		Weather:   weather,
		Webcams:   webcams,
	}
}

func buildWeatherSnapshot(descriptor types.ResortDescriptor, merged MergedInput, now time.Time) *types.WeatherSnapshot {
	raw := merged.Weather
	hourly := buildHourlyForecast(raw.Hourly)
	daily := buildDailyForecast(raw.Daily, raw.Hourly)

	snapshot := &types.WeatherSnapshot{
		ResortID:  descriptor.ID,
		Timestamp: now,
		Hourly:    hourly,
		Daily:     daily,
	}

	var current *adapters.HourlyRaw
	if len(raw.Hourly) > 0 {
		current = &raw.Hourly[0]
	}

	if current != nil {
		// §4.3: weather's current temperature never overwrites a primary
		// that already reported one.
		if merged.BaseTemperatureC == "" {
			snapshot.Temperature = current.Temperature
		} else {
			snapshot.Temperature = coerceTemperature(merged.BaseTemperatureC)
		}
		snapshot.ApparentTemperature = current.ApparentTemp
		snapshot.Humidity = current.Humidity
		snapshot.Wind.SpeedKph = current.WindSpeedKph
		snapshot.Wind.Degrees = current.WindDegrees
		if current.WindDegrees != nil {
			snapshot.Wind.Compass = windCompass(*current.WindDegrees)
		}
		snapshot.FreezingLevel = current.FreezingLevel

		if bands, ok := bandsFromElevation(descriptor.ElevationMin, descriptor.ElevationMax); ok {
			levels := [5]*float64{
				current.PressureTemps.P1000,
				current.PressureTemps.P925,
				current.PressureTemps.P850,
				current.PressureTemps.P700,
				current.PressureTemps.P500,
			}
			snapshot.TempBase, snapshot.TempMid, snapshot.TempSummit = interpolateTemperatures(levels, bands)
		}
	}

	snapshot.FreezingLevel24hAvg, snapshot.AvgWindspeed24h, snapshot.Snowfall24h, snapshot.Precipitation24h = aggregates24h(raw.Hourly)

	if len(daily) > 0 {
		snapshot.Sunrise = daily[0].Sunrise
		snapshot.Sunset = daily[0].Sunset
		snapshot.TempRangeMin = daily[0].TempMin
		snapshot.TempRangeMax = daily[0].TempMax
	}

	return snapshot
}

func clampedIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v < 0 {
		v = 0
	}
	return &v
}
