package normalize

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validObservation = `{
	"temperature": 18.5,
	"humidity": 63,
	"pressure": 1013.2,
	"wind_speed": 3.1,
	"wind_direction": 210,
	"visibility": 9000,
	"precipitation": 0.0,
	"fog_probability": 0.05,
	"timestamp": "2024-03-01T08:00:00Z"
}`

func TestObservation_Valid(t *testing.T) {
	obs, err := Observation(json.RawMessage(validObservation))
	require.NoError(t, err)

	assert.Equal(t, 18.5, obs.Temperature)
	assert.Equal(t, 63.0, obs.Humidity)
	assert.Equal(t, 1013.2, obs.Pressure)
	assert.Equal(t, 3.1, obs.WindSpeed)
	assert.Equal(t, 210.0, obs.WindDirection)
	assert.Equal(t, 9000.0, obs.Visibility)
	assert.Equal(t, 0.0, obs.Precipitation)
	assert.Equal(t, 0.05, obs.FogProbability)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), obs.Timestamp)
}

func TestObservation_TimestampRoundTrip(t *testing.T) {
	obs, err := Observation(json.RawMessage(validObservation))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01T08:00:00Z", obs.Timestamp.Format(time.RFC3339))

	encoded, err := json.Marshal(obs)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"timestamp":"2024-03-01T08:00:00Z"`)
}

func TestObservation_DataWrapper(t *testing.T) {
	wrapped := `{"data": ` + validObservation + `}`
	obs, err := Observation(json.RawMessage(wrapped))
	require.NoError(t, err)
	assert.Equal(t, 18.5, obs.Temperature)
}

func TestObservation_UnknownFieldsIgnored(t *testing.T) {
	payload := `{
		"temperature": 18.5, "humidity": 63, "pressure": 1013.2,
		"wind_speed": 3.1, "wind_direction": 210, "visibility": 9000,
		"precipitation": 0.0, "fog_probability": 0.05,
		"timestamp": "2024-03-01T08:00:00Z",
		"water_level": 405.2, "station_id": "KN-01"
	}`
	_, err := Observation(json.RawMessage(payload))
	assert.NoError(t, err)
}

func TestObservation_MissingFields(t *testing.T) {
	fields := []string{
		"timestamp", "temperature", "humidity", "pressure", "wind_speed",
		"wind_direction", "visibility", "precipitation", "fog_probability",
	}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(validObservation), &payload))
			delete(payload, field)
			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			_, err = Observation(raw)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, field, valErr.Field)
			assert.Contains(t, valErr.Reason, "missing required field")
		})
	}
}

func TestObservation_MistypedField(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validObservation), &payload))
	payload["humidity"] = "sixty-three"
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = Observation(raw)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "humidity", valErr.Field)
	assert.Contains(t, valErr.Reason, "expected number")
}

func TestObservation_BoundsViolations(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
	}{
		{"humidity above 100", "humidity", 104.2},
		{"humidity below 0", "humidity", -1},
		{"fog probability above 1", "fog_probability", 1.5},
		{"wind direction above 360", "wind_direction", 400},
		{"negative wind speed", "wind_speed", -2},
		{"negative visibility", "visibility", -100},
		{"negative precipitation", "precipitation", -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(validObservation), &payload))
			payload[tt.field] = tt.value
			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			_, err = Observation(raw)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Contains(t, valErr.Reason, "out of range")
		})
	}
}

func TestObservation_BoundaryValuesAccepted(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validObservation), &payload))
	payload["humidity"] = 100
	payload["fog_probability"] = 1
	payload["wind_direction"] = 360
	payload["wind_speed"] = 0
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = Observation(raw)
	assert.NoError(t, err)
}

func TestObservation_BadTimestamp(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validObservation), &payload))
	payload["timestamp"] = "yesterday morning"
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = Observation(raw)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "timestamp", valErr.Field)
}

func TestObservation_NotAnObject(t *testing.T) {
	_, err := Observation(json.RawMessage(`42`))
	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestModels_ObjectForm(t *testing.T) {
	raw := json.RawMessage(`[
		{"id": "icon-d2", "name": "ICON D2", "resolution": "2.2km", "provider": "DWD"},
		{"id": "gfs", "name": "GFS"}
	]`)
	models, err := Models(raw)
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "icon-d2", models[0].ID)
	assert.Equal(t, "ICON D2", models[0].Name)
	assert.Equal(t, "2.2km", models[0].Resolution)
	assert.Equal(t, "DWD", models[0].Provider)
	assert.Equal(t, "gfs", models[1].ID)
}

func TestModels_StringForm(t *testing.T) {
	models, err := Models(json.RawMessage(`["icon-d2", "icon-eu"]`))
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "icon-d2", models[0].ID)
	assert.Equal(t, "icon-d2", models[0].Name)
}

func TestModels_WrappedList(t *testing.T) {
	models, err := Models(json.RawMessage(`{"data": ["icon-d2"]}`))
	require.NoError(t, err)
	require.Len(t, models, 1)
}

func TestModels_MissingID(t *testing.T) {
	_, err := Models(json.RawMessage(`[{"name": "nameless"}]`))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "id", valErr.Field)
}

func TestModels_NotAList(t *testing.T) {
	_, err := Models(json.RawMessage(`{"id": "icon-d2"}`))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

const validForecastEntry = `{
	"temperature": 16.0,
	"humidity": 70,
	"pressure": 1010.0,
	"wind_speed": 4.5,
	"wind_direction": 180,
	"visibility": 8000,
	"precipitation": 0.2,
	"fog_probability": 0.35,
	"timestamp": "2024-03-01T06:00:00Z",
	"target_time": "2024-03-01T12:00:00Z"
}`

func TestForecastPoints_SingleObject(t *testing.T) {
	points, err := ForecastPoints(json.RawMessage(validForecastEntry), "icon-d2")
	require.NoError(t, err)
	require.Len(t, points, 1)

	p := points[0]
	assert.Equal(t, "icon-d2", p.ModelID)
	assert.Equal(t, time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC), p.Timestamp)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), p.TargetTime)
	assert.Equal(t, 0.35, p.FogProbability)
}

func TestForecastPoints_Array(t *testing.T) {
	raw := json.RawMessage(`[` + validForecastEntry + `,` + validForecastEntry + `]`)
	points, err := ForecastPoints(raw, "icon-d2")
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestForecastPoints_MissingTargetTime(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validForecastEntry), &payload))
	delete(payload, "target_time")
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = ForecastPoints(raw, "icon-d2")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "target_time", valErr.Field)
}

func TestForecastPoints_BoundsStillEnforced(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validForecastEntry), &payload))
	payload["fog_probability"] = 2.0
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = ForecastPoints(raw, "icon-d2")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "fog_probability", valErr.Field)
}

// Normalization is pure: same payload, same result.
func TestObservation_Deterministic(t *testing.T) {
	first, err1 := Observation(json.RawMessage(validObservation))
	second, err2 := Observation(json.RawMessage(validObservation))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
