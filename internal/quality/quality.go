// Package quality implements the Quality Monitor (§4.8): a field-by-field
// rubric score over a persisted resort record, rolled up into an overall
// status and a 0-100 score.
package quality

import (
	"fmt"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// Verdict is one field's classification.
type Verdict string

const (
	Success Verdict = "success"
	Warning Verdict = "warning"
	Error   Verdict = "error"
)

// Group is which weighting bucket a field belongs to (§4.8: "weights
// implied by count").
type Group string

const (
	GroupCritical Group = "critical"
	GroupSnow     Group = "snow"
	GroupWeather  Group = "weather"
)

// FieldResult is one field's scored outcome.
type FieldResult struct {
	Name    string  `json:"name"`
	Group   Group   `json:"group"`
	Verdict Verdict `json:"verdict"`
	Note    string  `json:"note,omitempty"`
}

// Report is the Quality Monitor's output for one resort record.
type Report struct {
	ResortID      int           `json:"resort_id"`
	ResortSlug    string        `json:"resort_slug"`
	OverallStatus Verdict       `json:"overall_status"`
	Score         float64       `json:"score"`
	Fields        []FieldResult `json:"fields"`
}

// Evaluate scores one resort's persisted record per §4.8. weather may be
// nil (no weather snapshot was persisted this run).
func Evaluate(resort types.Resort, condition types.ConditionSnapshot, weather *types.WeatherSnapshot) Report {
	var fields []FieldResult

	fields = append(fields,
		evaluateCritical("name", resort.Name != ""),
		evaluateCritical("status", condition.Status != ""),
		evaluateCritical("data_source", resort.DataSource != ""),
	)

	fields = append(fields,
		evaluateCount("new_snow", condition.NewSnow, condition.Status),
		evaluateCount("base_depth", condition.BaseDepth, condition.Status),
		evaluateCount("lifts_open", intToFloatPtr(condition.LiftsOpen), condition.Status),
		evaluateCount("lifts_total", intToFloatPtr(condition.LiftsTotal), condition.Status),
		evaluateCount("trails_open", intToFloatPtr(condition.TrailsOpen), condition.Status),
		evaluateCount("trails_total", intToFloatPtr(condition.TrailsTotal), condition.Status),
	)

	if weather != nil {
		fields = append(fields,
			evaluateTemperature("temperature", weather.Temperature, condition.Status),
			evaluateNumeric("humidity", weather.Humidity),
			evaluateNumeric("wind_speed", weather.Wind.SpeedKph),
			evaluateNumeric("freezing_level", weather.FreezingLevel),
			evaluateTemperature("temp_base", weather.TempBase, condition.Status),
			evaluateTemperature("temp_mid", weather.TempMid, condition.Status),
			evaluateTemperature("temp_summit", weather.TempSummit, condition.Status),
		)
	} else {
		fields = append(fields,
			FieldResult{Name: "temperature", Group: GroupWeather, Verdict: Warning, Note: "missing"},
			FieldResult{Name: "humidity", Group: GroupWeather, Verdict: Warning, Note: "missing"},
			FieldResult{Name: "wind_speed", Group: GroupWeather, Verdict: Warning, Note: "missing"},
			FieldResult{Name: "freezing_level", Group: GroupWeather, Verdict: Warning, Note: "missing"},
		)
	}

	return Report{
		ResortID:      resort.ID,
		ResortSlug:    resort.Slug,
		OverallStatus: overallStatus(fields),
		Score:         score(fields),
		Fields:        fields,
	}
}

// FieldSummary flattens a Report's field results into the
// name→"verdict: note" map the persistence layer's quality_reports table
// stores (internal/database.QualityReportModel.Fields).
func (r Report) FieldSummary() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		v := string(f.Verdict)
		if f.Note != "" {
			v = v + ": " + f.Note
		}
		out[f.Name] = v
	}
	return out
}

func overallStatus(fields []FieldResult) Verdict {
	var criticalError bool
	var nonCriticalTotal, nonCriticalWarnings int

	for _, f := range fields {
		if f.Group == GroupCritical {
			if f.Verdict == Error {
				criticalError = true
			}
			continue
		}
		nonCriticalTotal++
		if f.Verdict == Warning {
			nonCriticalWarnings++
		}
	}

	if criticalError {
		return Error
	}
	if nonCriticalTotal > 0 && float64(nonCriticalWarnings)/float64(nonCriticalTotal) >= 0.3 {
		return Warning
	}
	return Success
}

func score(fields []FieldResult) float64 {
	if len(fields) == 0 {
		return 0
	}
	nonProblem := 0
	for _, f := range fields {
		if f.Verdict == Success {
			nonProblem++
		}
	}
	return 100 * float64(nonProblem) / float64(len(fields))
}

func evaluateCritical(name string, present bool) FieldResult {
	if !present {
		return FieldResult{Name: name, Group: GroupCritical, Verdict: Error, Note: "missing"}
	}
	return FieldResult{Name: name, Group: GroupCritical, Verdict: Success}
}

// evaluateCount implements §4.8's count/depth rule: missing is a warning;
// zero is a warning unless the resort is closed/partial, in which case
// it's success with a note; negative is an error.
func evaluateCount(name string, value *float64, status types.Status) FieldResult {
	if value == nil {
		return FieldResult{Name: name, Group: GroupSnow, Verdict: Warning, Note: "missing"}
	}
	v := *value
	if v < 0 {
		return FieldResult{Name: name, Group: GroupSnow, Verdict: Error, Note: "negative value"}
	}
	if v == 0 {
		if status == types.StatusClosed || status == types.StatusPartial {
			return FieldResult{Name: name, Group: GroupSnow, Verdict: Success, Note: "resort not open"}
		}
		return FieldResult{Name: name, Group: GroupSnow, Verdict: Warning, Note: "zero"}
	}
	return FieldResult{Name: name, Group: GroupSnow, Verdict: Success}
}

// evaluateNumeric implements §4.8's generic numeric rule for the weather
// fields that aren't temperature-class (humidity, wind speed, freezing
// level): missing is a warning, zero is a warning, negative is an error.
func evaluateNumeric(name string, value *float64) FieldResult {
	if value == nil {
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Warning, Note: "missing"}
	}
	v := *value
	if v < 0 {
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Error, Note: "negative value"}
	}
	if v == 0 {
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Warning, Note: "zero"}
	}
	return FieldResult{Name: name, Group: GroupWeather, Verdict: Success}
}

const (
	tempPlausibleMin = -40.0
	tempPlausibleMax = 40.0
)

// evaluateTemperature implements §4.8's temperature-class rule: valid in
// [-40, 40], out of range is an error, missing is a warning. Zero follows
// the same rule as count/depth fields: a warning, unless the resort is
// closed/partial, in which case it's success with a note.
func evaluateTemperature(name string, value *float64, status types.Status) FieldResult {
	if value == nil {
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Warning, Note: "missing"}
	}
	v := *value
	if v < tempPlausibleMin || v > tempPlausibleMax {
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Error, Note: fmt.Sprintf("out of range [%g, %g]", tempPlausibleMin, tempPlausibleMax)}
	}
	if v == 0 {
		if status == types.StatusClosed || status == types.StatusPartial {
			return FieldResult{Name: name, Group: GroupWeather, Verdict: Success, Note: "resort not open"}
		}
		return FieldResult{Name: name, Group: GroupWeather, Verdict: Warning, Note: "zero"}
	}
	return FieldResult{Name: name, Group: GroupWeather, Verdict: Success}
}

func intToFloatPtr(p *int) *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}
