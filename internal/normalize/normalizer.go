// Package normalize shapes raw upstream JSON into validated domain records.
// All functions are pure: no network access, no shared state.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fogcast/fogcast-mcp/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError reports a payload field that is missing, mistyped,
// unparseable or out of its declared range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid payload: " + e.Reason
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// rawObservation mirrors the upstream weather schema with pointer fields so
// that missing keys are distinguishable from zero values. Fields outside the
// schema are ignored.
type rawObservation struct {
	Timestamp      *string  `json:"timestamp"`
	Temperature    *float64 `json:"temperature"`
	Humidity       *float64 `json:"humidity"`
	Pressure       *float64 `json:"pressure"`
	WindSpeed      *float64 `json:"wind_speed"`
	WindDirection  *float64 `json:"wind_direction"`
	Visibility     *float64 `json:"visibility"`
	Precipitation  *float64 `json:"precipitation"`
	FogProbability *float64 `json:"fog_probability"`
}

func (ro *rawObservation) checkPresence() error {
	required := []struct {
		name string
		typ  string
		ok   bool
	}{
		{"timestamp", "string", ro.Timestamp != nil},
		{"temperature", "number", ro.Temperature != nil},
		{"humidity", "number", ro.Humidity != nil},
		{"pressure", "number", ro.Pressure != nil},
		{"wind_speed", "number", ro.WindSpeed != nil},
		{"wind_direction", "number", ro.WindDirection != nil},
		{"visibility", "number", ro.Visibility != nil},
		{"precipitation", "number", ro.Precipitation != nil},
		{"fog_probability", "number", ro.FogProbability != nil},
	}
	for _, f := range required {
		if !f.ok {
			return &ValidationError{Field: f.name, Reason: "missing required field of type " + f.typ}
		}
	}
	return nil
}

func (ro *rawObservation) toObservation() (model.WeatherObservation, error) {
	if err := ro.checkPresence(); err != nil {
		return model.WeatherObservation{}, err
	}
	ts, err := parseTimestamp(*ro.Timestamp)
	if err != nil {
		return model.WeatherObservation{}, err
	}
	obs := model.WeatherObservation{
		Timestamp:      ts,
		Temperature:    *ro.Temperature,
		Humidity:       *ro.Humidity,
		Pressure:       *ro.Pressure,
		WindSpeed:      *ro.WindSpeed,
		WindDirection:  *ro.WindDirection,
		Visibility:     *ro.Visibility,
		Precipitation:  *ro.Precipitation,
		FogProbability: *ro.FogProbability,
	}
	if err := checkBounds(obs); err != nil {
		return model.WeatherObservation{}, err
	}
	return obs, nil
}

// Observation converts one upstream current-weather payload into a
// WeatherObservation.
func Observation(raw json.RawMessage) (model.WeatherObservation, error) {
	raw = unwrap(raw)
	var ro rawObservation
	if err := strictUnmarshal(raw, &ro); err != nil {
		return model.WeatherObservation{}, err
	}
	return ro.toObservation()
}

type rawModel struct {
	ID         *string `json:"id"`
	Name       *string `json:"name"`
	Resolution string  `json:"resolution"`
	Provider   string  `json:"provider"`
}

// Models converts the upstream catalog payload into ForecastModels. The
// upstream returns either plain id strings or model objects; both forms are
// accepted.
func Models(raw json.RawMessage) ([]model.ForecastModel, error) {
	raw = unwrap(raw)
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Reason: "model catalog is not a JSON array"}
	}

	models := make([]model.ForecastModel, 0, len(items))
	for _, item := range items {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			if id == "" {
				return nil, &ValidationError{Field: "id", Reason: "model identifier must be a non-empty string"}
			}
			models = append(models, model.ForecastModel{ID: id, Name: id})
			continue
		}

		var rm rawModel
		if err := strictUnmarshal(item, &rm); err != nil {
			return nil, err
		}
		if rm.ID == nil || *rm.ID == "" {
			return nil, &ValidationError{Field: "id", Reason: "missing required field of type string"}
		}
		if rm.Name == nil || *rm.Name == "" {
			return nil, &ValidationError{Field: "name", Reason: "missing required field of type string"}
		}
		models = append(models, model.ForecastModel{
			ID:         *rm.ID,
			Name:       *rm.Name,
			Resolution: rm.Resolution,
			Provider:   rm.Provider,
		})
	}
	return models, nil
}

type rawForecast struct {
	rawObservation
	TargetTime *string `json:"target_time"`
}

// ForecastPoints converts a forecast payload for one model into
// ForecastPoints. The upstream returns either a single object or an array of
// entries; both forms are accepted.
func ForecastPoints(raw json.RawMessage, modelID string) ([]model.ForecastPoint, error) {
	raw = unwrap(raw)

	items := []json.RawMessage{raw}
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &ValidationError{Reason: "forecast payload is not a JSON array"}
		}
	}

	points := make([]model.ForecastPoint, 0, len(items))
	for _, item := range items {
		var rf rawForecast
		if err := strictUnmarshal(item, &rf); err != nil {
			return nil, err
		}
		obs, err := rf.toObservation()
		if err != nil {
			return nil, err
		}
		if rf.TargetTime == nil {
			return nil, &ValidationError{Field: "target_time", Reason: "missing required field of type string"}
		}
		target, err := time.Parse(time.RFC3339, *rf.TargetTime)
		if err != nil {
			return nil, &ValidationError{Field: "target_time", Reason: "not a valid ISO-8601 timestamp"}
		}
		points = append(points, model.ForecastPoint{
			WeatherObservation: obs,
			ModelID:            modelID,
			TargetTime:         target.UTC(),
		})
	}
	return points, nil
}

// unwrap peels the {"data": ...} wrapper some upstream endpoints use.
func unwrap(raw json.RawMessage) json.RawMessage {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Data) > 0 {
		return wrapper.Data
	}
	return raw
}

// strictUnmarshal decodes into dst and converts type mismatches into
// ValidationErrors naming the offending field.
func strictUnmarshal(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return &ValidationError{
				Field:  ute.Field,
				Reason: fmt.Sprintf("expected %s, got %s", expectedType(ute.Type), ute.Value),
			}
		}
		return &ValidationError{Reason: "payload is not a JSON object"}
	}
	return nil
}

func expectedType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float64, reflect.Int:
		return "number"
	case reflect.String:
		return "string"
	default:
		return t.String()
	}
}

func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "timestamp", Reason: "not a valid ISO-8601 timestamp"}
	}
	return ts.UTC(), nil
}

// checkBounds validates the declared ranges of the bounded fields.
// Out-of-range values are rejected, never clamped.
func checkBounds(obs model.WeatherObservation) error {
	err := validate.Struct(obs)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := "out of range: must be " + fe.Tag()
		if fe.Param() != "" {
			reason += " " + fe.Param()
		}
		return &ValidationError{Field: fe.Field(), Reason: reason}
	}
	return err
}
