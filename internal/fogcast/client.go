// Package fogcast is the gateway to the upstream Fogcast weather API.
// Each method is a thin mapping from typed arguments to one transport call
// plus normalization; no retries, no caching.
package fogcast

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fogcast/fogcast-mcp/internal/config"
	"github.com/fogcast/fogcast-mcp/internal/httpclient"
	"github.com/fogcast/fogcast-mcp/internal/model"
	"github.com/fogcast/fogcast-mcp/internal/normalize"
)

// DatetimeLayout is the ISO-8601 UTC representation the upstream expects.
const DatetimeLayout = "2006-01-02T15:04:05Z"

// UnknownModelError reports a forecast request for a model id the upstream
// catalog does not contain. Model ids are validated lazily: an upstream 404
// on the forecast endpoint maps to this error.
type UnknownModelError struct {
	ModelID string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown forecast model %q", e.ModelID)
}

// AllFailedError reports a comparison in which every requested model failed.
type AllFailedError struct {
	ModelIDs []string
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("all %d model forecasts failed", len(e.ModelIDs))
}

// Client wraps the transport client with the upstream's endpoint layout.
// Safe for concurrent use.
type Client struct {
	transport *httpclient.Client
	log       *zap.SugaredLogger
}

func NewClient(transport *httpclient.Client) *Client {
	return &Client{
		transport: transport,
		log:       config.GetLogger(),
	}
}

// CurrentWeather fetches and normalizes the current observation.
func (c *Client) CurrentWeather(ctx context.Context) (model.WeatherObservation, error) {
	raw, err := c.transport.GetJSON(ctx, "/api/weather/current", nil)
	if err != nil {
		return model.WeatherObservation{}, err
	}
	return normalize.Observation(raw)
}

// ListModels fetches the live model catalog. The catalog is re-fetched on
// every call; it is never cached.
func (c *Client) ListModels(ctx context.Context) ([]model.ForecastModel, error) {
	raw, err := c.transport.GetJSON(ctx, "/api/models", nil)
	if err != nil {
		return nil, err
	}
	return normalize.Models(raw)
}

// Forecast fetches forecast points for one model. A nil at means "most
// recent forecast".
func (c *Client) Forecast(ctx context.Context, modelID string, at *time.Time) ([]model.ForecastPoint, error) {
	var query url.Values
	if at != nil {
		query = url.Values{}
		query.Set("datetime", at.UTC().Format(DatetimeLayout))
	}

	raw, err := c.transport.GetJSON(ctx, "/api/forecast/"+url.PathEscape(modelID), query)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, &UnknownModelError{ModelID: modelID}
		}
		return nil, err
	}
	return normalize.ForecastPoints(raw, modelID)
}

// Compare fetches one forecast per model concurrently and aggregates the
// outcomes in request order. A failing model is captured in its slot rather
// than aborting the others; only when every model fails does Compare return
// an AllFailedError. An empty model list yields an empty result.
func (c *Client) Compare(ctx context.Context, modelIDs []string, at *time.Time) (model.ComparisonResult, error) {
	result := model.ComparisonResult{
		ComparisonTime: at,
		Models:         make([]model.ModelForecast, len(modelIDs)),
	}
	if len(modelIDs) == 0 {
		return result, nil
	}

	var wg sync.WaitGroup
	for i, id := range modelIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()

			points, err := c.Forecast(ctx, id, at)
			if err != nil {
				c.log.Warnw("model forecast failed during comparison", "model_id", id, "error", err)
				result.Models[i] = model.ModelForecast{ModelID: id, Error: err.Error()}
				return
			}

			entry := model.ModelForecast{ModelID: id, Success: true}
			if len(points) > 0 {
				p := points[0]
				entry.Forecast = &p
			}
			result.Models[i] = entry
		}(i, id)
	}
	wg.Wait()

	if result.FailedCount() == len(modelIDs) {
		return model.ComparisonResult{}, &AllFailedError{ModelIDs: append([]string(nil), modelIDs...)}
	}
	return result, nil
}
