// Package adapters defines the shared result shapes every Source Adapter
// (§4.2) produces. Each provider package (mtnpowder, onthesnow, openmeteo,
// overpass, places) is stateless and safe for concurrent use across
// different resorts — every Collect call takes the resort descriptor as an
// explicit parameter rather than holding it as adapter state, the same
// interface-plus-factory shape as the teacher's weatherstations.WeatherStation,
// generalized from physical-device collection to HTTP upstream collection.
package adapters

import (
	"encoding/json"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// FlexString decodes a JSON field that upstream providers sometimes send
// as a quoted string (including sentinels like "--") and sometimes as a
// bare number, into one Go string — the Normalizer's sentinel coercion
// (§4.4) then runs uniformly regardless of which wire shape arrived.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// PrimaryResult is what Provider A ("mtnpowder") or Provider B
// ("onthesnow", when used as primary) returns. Numeric fields that can
// carry upstream sentinel strings ("--", "") are kept as raw strings so
// the Normalizer's sentinel coercion (§4.4) runs in one place.
type PrimaryResult struct {
	SourceKind types.DataSource

	// Provider A fields.
	OperatingStatus string

	// Provider B fields.
	OpenFlag *int

	LiftsOpen   *int
	LiftsTotal  *int
	TrailsOpen  *int
	TrailsTotal *int

	NewSnowCM        string // raw, may be "--" or numeric text
	BaseDepthCM      string
	SummitDepthCM    string
	BaseTemperatureC string
	OpeningDate      string
	ClosingDate      string
}

// SupplementaryResult is what the "onthesnow" adapter returns when used as
// the supplementary source (§4.2/§4.3): webcams, and trail counts used
// only to backfill a primary that lacks them. Lift counts are not carried.
type SupplementaryResult struct {
	Webcams     []types.Webcam
	TrailsOpen  *int
	TrailsTotal *int
}

// PressureLevelTemps holds the fixed set of pressure-level temperatures
// (°C) the Normalizer interpolates elevation-banded temperatures from
// (§4.4's {1000,925,850,700,500} hPa table).
type PressureLevelTemps struct {
	P1000 *float64
	P925  *float64
	P850  *float64
	P700  *float64
	P500  *float64
}

// HourlyRaw is one hourly sample from the Open-Meteo forecast call.
type HourlyRaw struct {
	Time          string
	Temperature   *float64
	ApparentTemp  *float64
	Humidity      *float64
	WindSpeedKph  *float64
	WindDegrees   *float64
	FreezingLevel *float64
	WeatherCode   *int
	Snowfall      *float64
	Precipitation *float64
	PressureTemps PressureLevelTemps
}

// DailyRaw is one daily sample from the Open-Meteo forecast call.
type DailyRaw struct {
	Date         string
	Sunrise      string
	Sunset       string
	TempMin      *float64
	TempMax      *float64
	PrecipSum    *float64
	SnowfallSum  *float64
	MaxWindSpeed *float64
}

// WeatherResult is what the "openmeteo" adapter returns.
type WeatherResult struct {
	Timezone string
	Hourly   []HourlyRaw
	Daily    []DailyRaw // nil if the daily call failed; hourly still stands (§4.2)
}

// MapResult is what the "overpass" adapter returns for the geometry task.
type MapResult struct {
	Boundary []types.LonLat
	Trails   []types.Trail
}

// ContactResult is what the "places" adapter returns for the enrichment task.
type ContactResult struct {
	Address string
	City    string
	ZipCode string
	Phone   string
	Website string
}
