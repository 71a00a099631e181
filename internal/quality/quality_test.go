package quality

import (
	"testing"

	"github.com/jimmysun0815/snow-api/internal/types"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestEvaluate_MissingCriticalIsError(t *testing.T) {
	r := Evaluate(types.Resort{}, types.ConditionSnapshot{}, nil)
	if r.OverallStatus != Error {
		t.Fatalf("expected overall status error when critical fields are missing, got %s", r.OverallStatus)
	}
}

func TestEvaluate_ZeroCountWhenClosedIsSuccess(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{
		Status:     types.StatusClosed,
		LiftsOpen:  i(0),
		NewSnow:    f(0),
		BaseDepth:  f(0),
		LiftsTotal: i(10),
	}
	r := Evaluate(resort, condition, nil)
	for _, field := range r.Fields {
		if field.Name == "lifts_open" && field.Verdict != Success {
			t.Errorf("expected lifts_open=0 while closed to be success, got %s", field.Verdict)
		}
	}
}

func TestEvaluate_ZeroCountWhenOpenIsWarning(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{Status: types.StatusOpen, LiftsOpen: i(0)}
	r := Evaluate(resort, condition, nil)
	for _, field := range r.Fields {
		if field.Name == "lifts_open" && field.Verdict != Warning {
			t.Errorf("expected lifts_open=0 while open to be warning, got %s", field.Verdict)
		}
	}
}

func TestEvaluate_NegativeIsAlwaysError(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{Status: types.StatusClosed, NewSnow: f(-1)}
	r := Evaluate(resort, condition, nil)
	for _, field := range r.Fields {
		if field.Name == "new_snow" && field.Verdict != Error {
			t.Errorf("expected negative new_snow to be error even when closed, got %s", field.Verdict)
		}
	}
}

func TestEvaluate_TemperatureOutOfRangeIsError(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{Status: types.StatusOpen}
	weather := &types.WeatherSnapshot{Temperature: f(60)}
	r := Evaluate(resort, condition, weather)
	for _, field := range r.Fields {
		if field.Name == "temperature" && field.Verdict != Error {
			t.Errorf("expected out-of-range temperature to be error, got %s", field.Verdict)
		}
	}
}

func TestEvaluate_TemperatureZeroWhenOpenIsWarning(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{Status: types.StatusOpen}
	weather := &types.WeatherSnapshot{Temperature: f(0), Humidity: f(50), Wind: types.WindInfo{SpeedKph: f(5)}, FreezingLevel: f(1000)}
	r := Evaluate(resort, condition, weather)
	for _, field := range r.Fields {
		if field.Name == "temperature" && field.Verdict != Warning {
			t.Errorf("expected temperature=0 while open to be warning, got %s", field.Verdict)
		}
	}
}

func TestEvaluate_TemperatureZeroWhenClosedIsSuccess(t *testing.T) {
	resort := types.Resort{Name: "Alta", DataSource: types.SourceMtnPowder}
	condition := types.ConditionSnapshot{Status: types.StatusClosed}
	weather := &types.WeatherSnapshot{Temperature: f(0), Humidity: f(50), Wind: types.WindInfo{SpeedKph: f(5)}, FreezingLevel: f(1000)}
	r := Evaluate(resort, condition, weather)
	for _, field := range r.Fields {
		if field.Name == "temperature" && field.Verdict != Success {
			t.Errorf("expected temperature=0 while closed to be success, got %s", field.Verdict)
		}
	}
}

func TestSummarize_AggregatesCountsAndAverage(t *testing.T) {
	reports := []Report{
		{OverallStatus: Success, Score: 100},
		{OverallStatus: Warning, Score: 50},
	}
	s := Summarize(reports)
	if s.Total != 2 || s.StatusCounts[Success] != 1 || s.StatusCounts[Warning] != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.AverageScore != 75 {
		t.Errorf("expected average 75, got %v", s.AverageScore)
	}
}
