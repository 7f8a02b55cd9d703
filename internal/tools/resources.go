package tools

import (
	"context"
	"fmt"

	"github.com/fogcast/fogcast-mcp/internal/model"
)

// Resource describes a read-only weather resource exposed over MCP.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

const (
	ResourceModels         = "fogcast://models"
	ResourceCurrentWeather = "fogcast://current-weather"
	ResourceWeatherSummary = "fogcast://weather-summary"
)

// Resources lists the readable weather resources. Each is the argument-free
// form of the corresponding tool: read-only, idempotent, side-effect-free.
func (t *Tools) Resources() []Resource {
	return []Resource{
		{
			URI:         ResourceModels,
			Name:        "Available Models",
			Description: "List of all available forecast models",
			MimeType:    "application/json",
		},
		{
			URI:         ResourceCurrentWeather,
			Name:        "Current Weather",
			Description: "Current weather data for Konstanz",
			MimeType:    "application/json",
		},
		{
			URI:         ResourceWeatherSummary,
			Name:        "Weather Summary",
			Description: "Summary of current weather conditions",
			MimeType:    "application/json",
		},
	}
}

// ReadResource resolves a resource URI to its envelope. Unknown URIs are an
// error for the protocol layer, not a failed envelope.
func (t *Tools) ReadResource(ctx context.Context, uri string) (model.Envelope, error) {
	switch uri {
	case ResourceModels:
		return t.getAvailableModels(ctx), nil
	case ResourceCurrentWeather:
		return t.getCurrentWeather(ctx), nil
	case ResourceWeatherSummary:
		return t.getWeatherSummary(ctx), nil
	default:
		return model.Envelope{}, fmt.Errorf("resource not found: %s", uri)
	}
}
