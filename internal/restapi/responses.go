package restapi

import (
	"math"
	"sort"
	"time"

	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/types"
	"github.com/jimmysun0815/snow-api/pkg/geo"
)

// resortSummary is the trimmed shape /api/resorts/summary serves: identity
// plus a condition glance, deliberately without the hourly/daily
// forecast arrays (§4.7: "no forecast arrays"). It carries no weather
// fields; temperature is the condition snapshot's reading.
type resortSummary struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Lat         float64       `json:"lat"`
	Lon         float64       `json:"lon"`
	Status      types.Status  `json:"status"`
	NewSnow     *float64      `json:"new_snow,omitempty"`
	BaseDepth   *float64      `json:"base_depth,omitempty"`
	LiftsOpen   *int          `json:"lifts_open,omitempty"`
	LiftsTotal  *int          `json:"lifts_total,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toSummary(detail *database.ResortDetail, now time.Time) resortSummary {
	s := resortSummary{
		ID:       detail.Resort.ID,
		Slug:     detail.Resort.Slug,
		Name:     detail.Resort.Name,
		Location: detail.Resort.Location,
		Lat:      detail.Resort.Lat,
		Lon:      detail.Resort.Lon,
	}
	if detail.Condition != nil {
		s.Status = rewriteStatusFromOpeningDate(detail.Condition.Status, detail.Condition.Extra.OpeningDate, now)
		s.NewSnow = detail.Condition.NewSnow
		s.BaseDepth = detail.Condition.BaseDepth
		s.LiftsOpen = detail.Condition.LiftsOpen
		s.LiftsTotal = detail.Condition.LiftsTotal
		s.Temperature = detail.Condition.Temperature
		s.UpdatedAt = detail.Condition.Timestamp
	}
	return s
}

// resortDetailResponse is the full per-resort view (§4.7), condition status
// rewritten per the opening-date rule.
type resortDetailResponse struct {
	Resort    types.Resort            `json:"resort"`
	Condition *types.ConditionSnapshot `json:"condition,omitempty"`
	Weather   *types.WeatherSnapshot   `json:"weather,omitempty"`
	Webcams   []types.Webcam          `json:"webcams,omitempty"`
}

func toDetailResponse(detail *database.ResortDetail, now time.Time) resortDetailResponse {
	resp := resortDetailResponse{
		Resort:  detail.Resort,
		Weather: detail.Weather,
		Webcams: detail.Webcams,
	}
	if detail.Condition != nil {
		cond := *detail.Condition
		cond.Status = rewriteStatusFromOpeningDate(cond.Status, cond.Extra.OpeningDate, now)
		resp.Condition = &cond
	}
	return resp
}

// nearbyResult adds the computed distance to a summary, per §4.7's nearby
// search response shape.
type nearbyResult struct {
	resortSummary
	DistanceKm float64 `json:"distance_km"`
}

// nearestFirst sorts nearby results ascending by distance, rounding each
// distance to 2 decimal places as specified.
func nearestFirst(results []nearbyResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].DistanceKm < results[j].DistanceKm })
	for i := range results {
		results[i].DistanceKm = math.Round(results[i].DistanceKm*100) / 100
	}
}

func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.HaversineKm(lat1, lon1, lat2, lon2)
}

// trailsResponse bundles a resort's trail list with the aggregate stats
// §4.7 requires alongside it.
type trailsResponse struct {
	Trails          []types.Trail      `json:"trails"`
	TotalLengthKm   float64            `json:"total_length_km"`
	DifficultyStats map[string]int     `json:"difficulty_stats"`
	TypeStats       map[string]int     `json:"type_stats"`
}

func buildTrailsResponse(trails []types.Trail) trailsResponse {
	resp := trailsResponse{
		Trails:          trails,
		DifficultyStats: map[string]int{},
		TypeStats:       map[string]int{},
	}
	var totalMeters float64
	for _, t := range trails {
		totalMeters += t.LengthMeters
		resp.DifficultyStats[string(t.Difficulty)]++
		if t.PisteType != "" {
			resp.TypeStats[t.PisteType]++
		}
	}
	resp.TotalLengthKm = math.Round(totalMeters/1000*100) / 100
	return resp
}

// statusResponse is /api/status's liveness report.
type statusResponse struct {
	OK             bool   `json:"ok"`
	DatabaseUp     bool   `json:"database_up"`
	EnabledResorts int    `json:"enabled_resorts"`
	Error          string `json:"error,omitempty"`
}

// qualityResponse is /api/resorts/{id}/quality's persisted-report view.
type qualityResponse struct {
	ResortID  int               `json:"resort_id"`
	Status    string            `json:"status"`
	Score     float64           `json:"score"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}
