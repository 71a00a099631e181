// Package types holds the domain model shared across the collection
// pipeline, persistence layer, and read API.
package types

import "time"

// DataSource identifies which primary adapter a resort is routed through.
type DataSource string

const (
	SourceMtnPowder DataSource = "mtnpowder"
	SourceOnTheSnow DataSource = "onthesnow"
)

// Status is the derived operating status of a resort.
type Status string

const (
	StatusOpen    Status = "open"
	StatusPartial Status = "partial"
	StatusClosed  Status = "closed"
)

// Difficulty is a trail difficulty rating.
type Difficulty string

const (
	DifficultyNovice       Difficulty = "novice"
	DifficultyEasy         Difficulty = "easy"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
	DifficultyFreeride     Difficulty = "freeride"
	DifficultyUnknown      Difficulty = "unknown"
)

// LonLat is a single [lon, lat] coordinate pair, the wire shape used for
// both resort boundaries and trail polylines.
type LonLat [2]float64

// ResortDescriptor is one entry of the registry file (§6 of the spec this
// service implements): the externally-assigned identity and provider
// routing for a single resort. It is intentionally a closed struct — an
// unrecognized DataSource fails registry load rather than being carried
// through silently.
type ResortDescriptor struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Location         string     `json:"location"`
	Lat              float64    `json:"lat"`
	Lon              float64    `json:"lon"`
	ElevationMin     *float64   `json:"elevation_min,omitempty"`
	ElevationMax     *float64   `json:"elevation_max,omitempty"`
	DataSource       DataSource `json:"data_source"`
	SourceURL        string     `json:"source_url,omitempty"`
	SourceID         string     `json:"source_id,omitempty"`
	OnTheSnowURL     string     `json:"onthesnow_url,omitempty"`
	OnTheSnowEnabled bool       `json:"onthesnow_enabled,omitempty"`
	Enabled          bool       `json:"enabled"`
}

// Resort is the persisted identity row.
type Resort struct {
	ID           int        `json:"id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`
	ElevationMin *float64   `json:"elevation_min,omitempty"`
	ElevationMax *float64   `json:"elevation_max,omitempty"`
	Boundary     []LonLat   `json:"boundary,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	ZipCode      string     `json:"zip_code,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Website      string     `json:"website,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
	DataSource   DataSource `json:"data_source"`
	SourceURL    string     `json:"source_url,omitempty"`
	SourceID     string     `json:"source_id,omitempty"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// OpeningHours is the structured-plus-free-text opening hours block.
type OpeningHours struct {
	Text      string         `json:"text,omitempty"`
	Periods   []OpeningPeriod `json:"periods,omitempty"`
	IsOpenNow bool           `json:"is_open_now"`
}

// OpeningPeriod is one structured weekday open/close period.
type OpeningPeriod struct {
	Weekday int    `json:"weekday"` // 0=Sunday, matches time.Weekday
	Open    string `json:"open"`    // "HH:MM"
	Close   string `json:"close"`   // "HH:MM"
}

// ConditionSnapshot is one append-only time-series row of operational state.
type ConditionSnapshot struct {
	ID          int64          `json:"id,omitempty"`
	ResortID    int            `json:"resort_id"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      Status         `json:"status"`
	NewSnow     *float64       `json:"new_snow"`
	BaseDepth   *float64       `json:"base_depth"`
	LiftsOpen   *int           `json:"lifts_open"`
	LiftsTotal  *int           `json:"lifts_total"`
	TrailsOpen  *int           `json:"trails_open"`
	TrailsTotal *int           `json:"trails_total"`
	Temperature *float64       `json:"temperature"`
	Extra       ConditionExtra `json:"extra,omitempty"`
}

// ConditionExtra is the opaque-to-the-schema extra blob: opening/closing
// dates and summit depth, stored as jsonb.
type ConditionExtra struct {
	OpeningDate  string   `json:"opening_date,omitempty"`
	ClosingDate  string   `json:"closing_date,omitempty"`
	SummitDepth  *float64 `json:"summit_depth,omitempty"`
}

// WindInfo is speed + direction in both degree and 8-point compass form.
type WindInfo struct {
	SpeedKph  *float64 `json:"speed_kph"`
	Degrees   *float64 `json:"degrees"`
	Compass   string   `json:"compass,omitempty"`
}

// HourlyForecast is one hourly sample of the forecast sequence.
type HourlyForecast struct {
	Time             time.Time `json:"time"`
	Temperature      *float64  `json:"temperature"`
	ApparentTemp     *float64  `json:"apparent_temp"`
	Humidity         *float64  `json:"humidity"`
	Wind             WindInfo  `json:"wind"`
	FreezingLevel    *float64  `json:"freezing_level"`
	WeatherCode      *int      `json:"weather_code"`
	Snowfall         *float64  `json:"snowfall"`
	Precipitation    *float64  `json:"precipitation"`
	TempBase         *float64  `json:"temp_base"`
	TempMid          *float64  `json:"temp_mid"`
	TempSummit       *float64  `json:"temp_summit"`
}

// DailyForecast is one daily sample of the forecast sequence.
type DailyForecast struct {
	Date          time.Time `json:"date"`
	Sunrise       time.Time `json:"sunrise"`
	Sunset        time.Time `json:"sunset"`
	TempMin       *float64  `json:"temp_min"`
	TempMax       *float64  `json:"temp_max"`
	PrecipSum     *float64  `json:"precip_sum"`
	SnowfallSum   *float64  `json:"snowfall_sum"`
	MaxWindSpeed  *float64  `json:"max_wind_speed"`
	WeatherCode   *int      `json:"weather_code"`
}

// WeatherSnapshot is one append-only time-series row of meteorological state.
type WeatherSnapshot struct {
	ID                    int64            `json:"id,omitempty"`
	ResortID              int              `json:"resort_id"`
	Timestamp             time.Time        `json:"timestamp"`
	Temperature           *float64         `json:"temperature"`
	ApparentTemperature   *float64         `json:"apparent_temperature"`
	Humidity              *float64         `json:"humidity"`
	Wind                  WindInfo         `json:"wind"`
	FreezingLevel         *float64         `json:"freezing_level"`
	FreezingLevel24hAvg   *float64         `json:"freezing_level_24h_avg"`
	AvgWindspeed24h       *float64         `json:"avg_windspeed_24h"`
	Snowfall24h           *float64         `json:"snowfall_24h"`
	Precipitation24h      *float64         `json:"precipitation_24h"`
	TempBase              *float64         `json:"temp_base"`
	TempMid               *float64         `json:"temp_mid"`
	TempSummit            *float64         `json:"temp_summit"`
	Sunrise               time.Time        `json:"sunrise"`
	Sunset                time.Time        `json:"sunset"`
	TempRangeMin          *float64         `json:"temp_range_min"`
	TempRangeMax          *float64         `json:"temp_range_max"`
	Hourly                []HourlyForecast `json:"hourly"`
	Daily                 []DailyForecast  `json:"daily"`
}

// Webcam is one (resort, webcam) row captured at collection time.
type Webcam struct {
	ID             int64     `json:"id,omitempty"`
	ResortID       int       `json:"resort_id"`
	WebcamUUID     string    `json:"webcam_uuid"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"image_url"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	VideoStreamURL string    `json:"video_stream_url,omitempty"`
	IsVideo        bool      `json:"is_video"`
	Featured       bool      `json:"featured"`
	LastUpdated    time.Time `json:"last_updated"`
	Source         string    `json:"source,omitempty"`
}

// Trail is one static geometry row, replaced wholesale on every successful
// trail collection for a resort.
type Trail struct {
	ID           int64      `json:"id,omitempty"`
	ResortID     int        `json:"resort_id"`
	OSMID        string     `json:"osm_id"`
	OSMType      string     `json:"osm_type"`
	Name         string     `json:"name,omitempty"`
	Difficulty   Difficulty `json:"difficulty"`
	PisteType    string     `json:"piste_type,omitempty"`
	Geometry     []LonLat   `json:"geometry"`
	LengthMeters float64    `json:"length_meters"`
	Lit          bool       `json:"lit"`
	Grooming     string     `json:"grooming,omitempty"`
	Width        string     `json:"width,omitempty"`
	Ref          string     `json:"ref,omitempty"`
}

// FailureRecord is one classified per-resort failure for a run. It is
// ephemeral: kept in memory for the duration of a run and written to a
// per-run failure ledger, never replayed or retried automatically.
type FailureRecord struct {
	ResortID     int       `json:"resort_id"`
	ResortName   string    `json:"resort_name"`
	ErrorType    string    `json:"error_type"`
	ErrorMessage string    `json:"error_message"`
	URL          string    `json:"url,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// CanonicalRecord is the Normalizer's output: everything the Persistence
// Layer needs to write for one resort in one run.
type CanonicalRecord struct {
	Resort    Resort
	Condition ConditionSnapshot
	Weather   *WeatherSnapshot
	Webcams   []Webcam
}
