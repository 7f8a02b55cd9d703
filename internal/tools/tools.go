// Package tools maps remote-callable tool names 1:1 onto gateway operations
// and wraps every outcome in the uniform response envelope. Errors from the
// gateway and normalizer are recovered here; nothing escapes as a raw error.
package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fogcast/fogcast-mcp/internal/config"
	"github.com/fogcast/fogcast-mcp/internal/fogcast"
	"github.com/fogcast/fogcast-mcp/internal/httpclient"
	"github.com/fogcast/fogcast-mcp/internal/model"
	"github.com/fogcast/fogcast-mcp/internal/normalize"
)

// Machine-readable error codes surfaced in envelopes.
const (
	CodeConnection   = "connection_error"
	CodeTimeout      = "timeout"
	CodeHTTPStatus   = "http_status_error"
	CodeDecode       = "decode_error"
	CodeValidation   = "validation_error"
	CodeUnknownModel = "unknown_model"
	CodeAllFailed    = "all_models_failed"
	CodeNoData       = "no_data"
	CodeUnknownTool  = "unknown_tool"
)

const location = "Konstanz, Germany"

// Tools dispatches tool calls against the upstream gateway.
type Tools struct {
	fogcast *fogcast.Client
	log     *zap.SugaredLogger
}

func New(client *fogcast.Client) *Tools {
	return &Tools{
		fogcast: client,
		log:     config.GetLogger(),
	}
}

// Call runs the named tool with the given arguments. The result is always an
// envelope; argument and upstream failures surface as failed envelopes.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) model.Envelope {
	t.log.Infow("tool call", "tool", name)
	switch name {
	case "get_current_weather":
		return t.getCurrentWeather(ctx)
	case "get_weather_summary":
		return t.getWeatherSummary(ctx)
	case "get_available_models":
		return t.getAvailableModels(ctx)
	case "get_forecast":
		return t.getForecast(ctx, args)
	case "get_current_forecast":
		return t.getCurrentForecast(ctx, args)
	case "get_forecast_summary":
		return t.getForecastSummary(ctx, args)
	case "compare_models":
		return t.compareModels(ctx, args)
	default:
		return model.ErrorEnvelope(CodeUnknownTool, "unknown tool: "+name)
	}
}

// CurrentConditions is the get_current_weather payload.
type CurrentConditions struct {
	Location    string                   `json:"location"`
	Conditions  model.WeatherObservation `json:"current_conditions"`
	LastUpdated time.Time                `json:"last_updated"`
}

func (t *Tools) getCurrentWeather(ctx context.Context) model.Envelope {
	obs, err := t.fogcast.CurrentWeather(ctx)
	if err != nil {
		return failure(err, "Failed to retrieve current weather data")
	}
	return model.SuccessEnvelope(CurrentConditions{
		Location:    location,
		Conditions:  obs,
		LastUpdated: obs.Timestamp,
	}, "Retrieved current weather data")
}

// WeatherSummary is the flattened get_weather_summary payload.
type WeatherSummary struct {
	Location string `json:"location"`
	model.WeatherObservation
}

func (t *Tools) getWeatherSummary(ctx context.Context) model.Envelope {
	obs, err := t.fogcast.CurrentWeather(ctx)
	if err != nil {
		return failure(err, "Failed to retrieve weather summary")
	}
	return model.SuccessEnvelope(WeatherSummary{
		Location:           location,
		WeatherObservation: obs,
	}, "Weather summary retrieved successfully")
}

// ModelCatalog is the get_available_models payload.
type ModelCatalog struct {
	Models []model.ForecastModel `json:"models"`
	Count  int                   `json:"count"`
}

func (t *Tools) getAvailableModels(ctx context.Context) model.Envelope {
	models, err := t.fogcast.ListModels(ctx)
	if err != nil {
		return failure(err, "Failed to retrieve available models")
	}
	return model.SuccessEnvelope(
		ModelCatalog{Models: models, Count: len(models)},
		fmt.Sprintf("Retrieved %d available models", len(models)),
	)
}

// ModelForecasts is the get_forecast payload.
type ModelForecasts struct {
	ModelID      string                `json:"model_id"`
	ForecastTime *time.Time            `json:"forecast_time,omitempty"`
	Forecasts    []model.ForecastPoint `json:"forecasts"`
	Count        int                   `json:"count"`
}

func (t *Tools) getForecast(ctx context.Context, args map[string]any) model.Envelope {
	modelID, env, ok := requireModelID(args)
	if !ok {
		return env
	}
	at, env, ok := optionalDatetime(args)
	if !ok {
		return env
	}

	points, err := t.fogcast.Forecast(ctx, modelID, at)
	if err != nil {
		return failure(err, "Failed to retrieve forecast data")
	}
	return model.SuccessEnvelope(ModelForecasts{
		ModelID:      modelID,
		ForecastTime: at,
		Forecasts:    points,
		Count:        len(points),
	}, fmt.Sprintf("Retrieved %d forecast entries for model %s", len(points), modelID))
}

func (t *Tools) getCurrentForecast(ctx context.Context, args map[string]any) model.Envelope {
	modelID, env, ok := requireModelID(args)
	if !ok {
		return env
	}

	points, err := t.fogcast.Forecast(ctx, modelID, nil)
	if err != nil {
		return failure(err, "Failed to retrieve current forecast")
	}
	return model.SuccessEnvelope(ModelForecasts{
		ModelID:   modelID,
		Forecasts: points,
		Count:     len(points),
	}, fmt.Sprintf("Retrieved current forecast for model %s", modelID))
}

func (t *Tools) getForecastSummary(ctx context.Context, args map[string]any) model.Envelope {
	modelID, env, ok := requireModelID(args)
	if !ok {
		return env
	}
	at, env, ok := optionalDatetime(args)
	if !ok {
		return env
	}

	points, err := t.fogcast.Forecast(ctx, modelID, at)
	if err != nil {
		return failure(err, "Failed to retrieve forecast summary")
	}
	if len(points) == 0 {
		return model.ErrorEnvelope(CodeNoData, fmt.Sprintf("No forecast data found for model %s", modelID))
	}
	return model.SuccessEnvelope(points[0], fmt.Sprintf("Forecast summary retrieved for model %s", modelID))
}

func (t *Tools) compareModels(ctx context.Context, args map[string]any) model.Envelope {
	modelIDs, env, ok := requireModelIDs(args)
	if !ok {
		return env
	}
	at, env, ok := optionalDatetime(args)
	if !ok {
		return env
	}

	result, err := t.fogcast.Compare(ctx, modelIDs, at)
	if err != nil {
		return failure(err, "Failed to compare model forecasts")
	}
	return model.SuccessEnvelope(result, fmt.Sprintf("Compared forecasts from %d models", len(modelIDs)))
}

// failure maps the closed error taxonomy onto envelope error codes.
func failure(err error, message string) model.Envelope {
	return model.ErrorEnvelope(errorCode(err), message+": "+err.Error())
}

func errorCode(err error) string {
	var (
		statusErr  *httpclient.StatusError
		decodeErr  *httpclient.DecodeError
		valErr     *normalize.ValidationError
		unknownErr *fogcast.UnknownModelError
		allFailed  *fogcast.AllFailedError
	)
	switch {
	case errors.Is(err, httpclient.ErrTimeout):
		return CodeTimeout
	case errors.Is(err, httpclient.ErrConnection):
		return CodeConnection
	case errors.As(err, &statusErr):
		return CodeHTTPStatus
	case errors.As(err, &decodeErr):
		return CodeDecode
	case errors.As(err, &valErr):
		return CodeValidation
	case errors.As(err, &unknownErr):
		return CodeUnknownModel
	case errors.As(err, &allFailed):
		return CodeAllFailed
	default:
		return CodeConnection
	}
}

func requireModelID(args map[string]any) (string, model.Envelope, bool) {
	modelID, _ := args["model_id"].(string)
	if modelID == "" {
		return "", model.ErrorEnvelope(CodeValidation, "model_id parameter is required and must be a non-empty string"), false
	}
	return modelID, model.Envelope{}, true
}

func requireModelIDs(args map[string]any) ([]string, model.Envelope, bool) {
	rawList, ok := args["model_ids"].([]any)
	if !ok {
		return nil, model.ErrorEnvelope(CodeValidation, "model_ids parameter is required and must be a list of strings"), false
	}
	ids := make([]string, 0, len(rawList))
	for _, v := range rawList {
		id, ok := v.(string)
		if !ok || id == "" {
			return nil, model.ErrorEnvelope(CodeValidation, "model_ids entries must be non-empty strings"), false
		}
		ids = append(ids, id)
	}
	return ids, model.Envelope{}, true
}

func optionalDatetime(args map[string]any) (*time.Time, model.Envelope, bool) {
	raw, present := args["datetime"]
	if !present || raw == nil {
		return nil, model.Envelope{}, true
	}
	s, ok := raw.(string)
	if !ok {
		return nil, model.ErrorEnvelope(CodeValidation, "datetime parameter must be a string in format YYYY-MM-DDTHH:MM:SSZ"), false
	}
	ts, err := time.Parse(fogcast.DatetimeLayout, s)
	if err != nil {
		return nil, model.ErrorEnvelope(CodeValidation, "datetime parameter must match format YYYY-MM-DDTHH:MM:SSZ"), false
	}
	ts = ts.UTC()
	return &ts, model.Envelope{}, true
}
