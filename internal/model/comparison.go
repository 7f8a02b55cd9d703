package model

import "time"

// ModelForecast is one model's outcome within a comparison. A model that
// failed to return data is still present with Success=false, so callers can
// tell "no data" apart from "not requested".
type ModelForecast struct {
	ModelID  string         `json:"model_id"`
	Success  bool           `json:"success"`
	Forecast *ForecastPoint `json:"forecast,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ComparisonResult aggregates per-model forecasts for one requested instant.
// Models preserves the request order regardless of completion order.
type ComparisonResult struct {
	ComparisonTime *time.Time      `json:"comparison_time,omitempty"`
	Models         []ModelForecast `json:"models"`
}

// FailedCount returns how many requested models produced no forecast.
func (r ComparisonResult) FailedCount() int {
	n := 0
	for _, m := range r.Models {
		if !m.Success {
			n++
		}
	}
	return n
}
