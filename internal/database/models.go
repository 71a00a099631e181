package database

import (
	"time"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// ResortModel is the GORM row for resort identity (§3 Resort).
type ResortModel struct {
	ID           int                                   `gorm:"primaryKey;column:id"`
	Slug         string                                `gorm:"column:slug;not null;uniqueIndex"`
	Name         string                                `gorm:"column:name;not null"`
	Location     string                                `gorm:"column:location"`
	Lat          float64                                `gorm:"column:lat"`
	Lon          float64                                `gorm:"column:lon"`
	ElevationMin *float64                               `gorm:"column:elevation_min"`
	ElevationMax *float64                               `gorm:"column:elevation_max"`
	Boundary     JSONColumn[[]types.LonLat]              `gorm:"column:boundary;type:jsonb"`
	Address      string                                 `gorm:"column:address"`
	City         string                                 `gorm:"column:city"`
	ZipCode      string                                 `gorm:"column:zip_code"`
	Phone        string                                 `gorm:"column:phone"`
	Website      string                                 `gorm:"column:website"`
	OpeningHours JSONColumn[*types.OpeningHours]         `gorm:"column:opening_hours;type:jsonb"`
	DataSource   string                                 `gorm:"column:data_source;not null"`
	SourceURL    string                                 `gorm:"column:source_url"`
	SourceID     string                                 `gorm:"column:source_id"`
	Enabled      bool                                   `gorm:"column:enabled;not null;default:true;index"`
	CreatedAt    time.Time                              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                              `gorm:"column:updated_at;autoUpdateTime"`
}

func (ResortModel) TableName() string { return "resorts" }

// ConditionModel is the GORM row for one Condition Snapshot (§3).
type ConditionModel struct {
	ID          int64                         `gorm:"primaryKey;autoIncrement;column:id"`
	ResortID    int                           `gorm:"column:resort_id;not null;index:idx_conditions_resort_ts,priority:1"`
	Timestamp   time.Time                     `gorm:"column:timestamp;not null;index:idx_conditions_resort_ts,priority:2,sort:desc"`
	Status      string                        `gorm:"column:status;not null"`
	NewSnow     *float64                      `gorm:"column:new_snow"`
	BaseDepth   *float64                      `gorm:"column:base_depth"`
	LiftsOpen   *int                          `gorm:"column:lifts_open"`
	LiftsTotal  *int                          `gorm:"column:lifts_total"`
	TrailsOpen  *int                          `gorm:"column:trails_open"`
	TrailsTotal *int                          `gorm:"column:trails_total"`
	Temperature *float64                      `gorm:"column:temperature"`
	Extra       JSONColumn[types.ConditionExtra] `gorm:"column:extra;type:jsonb"`
}

func (ConditionModel) TableName() string { return "resort_conditions" }

// WeatherModel is the GORM row for one Weather Snapshot (§3).
type WeatherModel struct {
	ID                  int64                             `gorm:"primaryKey;autoIncrement;column:id"`
	ResortID            int                               `gorm:"column:resort_id;not null;index:idx_weather_resort_ts,priority:1"`
	Timestamp           time.Time                         `gorm:"column:timestamp;not null;index:idx_weather_resort_ts,priority:2,sort:desc"`
	Temperature         *float64                          `gorm:"column:temperature"`
	ApparentTemperature *float64                          `gorm:"column:apparent_temperature"`
	Humidity            *float64                          `gorm:"column:humidity"`
	WindSpeedKph        *float64                          `gorm:"column:wind_speed_kph"`
	WindDegrees         *float64                          `gorm:"column:wind_degrees"`
	WindCompass         string                            `gorm:"column:wind_compass"`
	FreezingLevel       *float64                          `gorm:"column:freezing_level"`
	FreezingLevel24hAvg *float64                          `gorm:"column:freezing_level_24h_avg"`
	AvgWindspeed24h     *float64                          `gorm:"column:avg_windspeed_24h"`
	Snowfall24h         *float64                          `gorm:"column:snowfall_24h"`
	Precipitation24h    *float64                          `gorm:"column:precipitation_24h"`
	TempBase            *float64                          `gorm:"column:temp_base"`
	TempMid             *float64                          `gorm:"column:temp_mid"`
	TempSummit          *float64                          `gorm:"column:temp_summit"`
	Sunrise             time.Time                         `gorm:"column:sunrise"`
	Sunset              time.Time                         `gorm:"column:sunset"`
	TempRangeMin        *float64                          `gorm:"column:temp_range_min"`
	TempRangeMax        *float64                          `gorm:"column:temp_range_max"`
	Hourly              JSONColumn[[]types.HourlyForecast] `gorm:"column:hourly;type:jsonb"`
	Daily               JSONColumn[[]types.DailyForecast]  `gorm:"column:daily;type:jsonb"`
}

func (WeatherModel) TableName() string { return "resort_weather" }

// WebcamModel is the GORM row for one webcam capture (§3).
type WebcamModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ResortID       int       `gorm:"column:resort_id;not null;index:idx_webcams_resort,priority:1"`
	WebcamUUID     string    `gorm:"column:webcam_uuid;not null;index:idx_webcams_resort,priority:2"`
	Title          string    `gorm:"column:title"`
	ImageURL       string    `gorm:"column:image_url"`
	ThumbnailURL   string    `gorm:"column:thumbnail_url"`
	VideoStreamURL string    `gorm:"column:video_stream_url"`
	IsVideo        bool      `gorm:"column:is_video"`
	Featured       bool      `gorm:"column:featured"`
	LastUpdated    time.Time `gorm:"column:last_updated;index:idx_webcams_resort,priority:3,sort:desc"`
	Source         string    `gorm:"column:source"`
}

func (WebcamModel) TableName() string { return "resort_webcams" }

// TrailModel is the GORM row for one trail geometry (§3); replaced wholesale
// per resort on every successful trail collection.
type TrailModel struct {
	ID           int64                     `gorm:"primaryKey;autoIncrement;column:id"`
	ResortID     int                       `gorm:"column:resort_id;not null;index"`
	OSMID        string                    `gorm:"column:osm_id"`
	OSMType      string                    `gorm:"column:osm_type"`
	Name         string                    `gorm:"column:name"`
	Difficulty   string                    `gorm:"column:difficulty"`
	PisteType    string                    `gorm:"column:piste_type"`
	Geometry     JSONColumn[[]types.LonLat] `gorm:"column:geometry;type:jsonb"`
	LengthMeters float64                   `gorm:"column:length_meters"`
	Lit          bool                      `gorm:"column:lit"`
	Grooming     string                    `gorm:"column:grooming"`
	Width        string                    `gorm:"column:width"`
	Ref          string                    `gorm:"column:ref"`
}

func (TrailModel) TableName() string { return "resort_trails" }

// QualityReportModel persists the last Quality Monitor report per resort
// (§4.8), a supplemented addition so /api/resorts/{id}/quality can serve it
// after the collector process has exited.
type QualityReportModel struct {
	ResortID  int       `gorm:"primaryKey;column:resort_id"`
	Status    string    `gorm:"column:status;not null"`
	Score     float64   `gorm:"column:score;not null"`
	Fields    JSONColumn[map[string]string] `gorm:"column:fields;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (QualityReportModel) TableName() string { return "quality_reports" }
