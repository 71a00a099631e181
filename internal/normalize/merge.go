package normalize

import (
	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/types"
)

// MergedInput is the Merging Rule's output (§4.3): Primary + Supplementary +
// Weather combined into one shape, ready for the Normalizer proper. Any of
// the three adapter results may be absent.
type MergedInput struct {
	SourceKind types.DataSource

	OperatingStatus string
	OpenFlag        *int

	LiftsOpen   *int
	LiftsTotal  *int
	TrailsOpen  *int
	TrailsTotal *int

	NewSnowCM        string
	BaseDepthCM      string
	SummitDepthCM    string
	BaseTemperatureC string
	OpeningDate      string
	ClosingDate      string

	Webcams []types.Webcam
	Weather *adapters.WeatherResult
}

// Merge implements §4.3: canonical fields come from primary; webcams always
// come from secondary when present; a missing trails_total/trails_open on
// primary is filled from secondary; weather is attached as a nested block
// and never overwrites a temperature primary already reported.
func Merge(primary *adapters.PrimaryResult, supplementary *adapters.SupplementaryResult, weather *adapters.WeatherResult) MergedInput {
	var m MergedInput

	if primary != nil {
		m.SourceKind = primary.SourceKind
		m.OperatingStatus = primary.OperatingStatus
		m.OpenFlag = primary.OpenFlag
		m.LiftsOpen = primary.LiftsOpen
		m.LiftsTotal = primary.LiftsTotal
		m.TrailsOpen = primary.TrailsOpen
		m.TrailsTotal = primary.TrailsTotal
		m.NewSnowCM = primary.NewSnowCM
		m.BaseDepthCM = primary.BaseDepthCM
		m.SummitDepthCM = primary.SummitDepthCM
		m.BaseTemperatureC = primary.BaseTemperatureC
		m.OpeningDate = primary.OpeningDate
		m.ClosingDate = primary.ClosingDate
	}

	if supplementary != nil {
		m.Webcams = supplementary.Webcams
		if m.TrailsTotal == nil {
			m.TrailsTotal = supplementary.TrailsTotal
		}
		if m.TrailsOpen == nil {
			m.TrailsOpen = supplementary.TrailsOpen
		}
	}

	m.Weather = weather
	return m
}
