package tools

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var modelIDProperty = map[string]any{
	"type":        "string",
	"description": "ID of the forecast model",
}

var datetimeProperty = map[string]any{
	"type":        "string",
	"description": "Forecast datetime in format YYYY-MM-DDTHH:MM:SSZ (optional)",
}

func noArgSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

// Definitions lists every tool this server exposes, in a stable order.
func (t *Tools) Definitions() []Definition {
	return []Definition{
		{
			Name:        "get_current_weather",
			Description: "Get current weather data for Konstanz",
			InputSchema: noArgSchema(),
		},
		{
			Name:        "get_weather_summary",
			Description: "Get a summary of current weather conditions",
			InputSchema: noArgSchema(),
		},
		{
			Name:        "get_available_models",
			Description: "Get list of available forecast models",
			InputSchema: noArgSchema(),
		},
		{
			Name:        "get_forecast",
			Description: "Get weather forecast for a specific model and datetime",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"model_id": modelIDProperty,
					"datetime": datetimeProperty,
				},
				"required": []string{"model_id"},
			},
		},
		{
			Name:        "get_current_forecast",
			Description: "Get current forecast for a specific model",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"model_id": modelIDProperty,
				},
				"required": []string{"model_id"},
			},
		},
		{
			Name:        "get_forecast_summary",
			Description: "Get a summary of forecast conditions",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"model_id": modelIDProperty,
					"datetime": datetimeProperty,
				},
				"required": []string{"model_id"},
			},
		},
		{
			Name:        "compare_models",
			Description: "Compare forecasts from multiple models",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"model_ids": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of model IDs to compare",
					},
					"datetime": datetimeProperty,
				},
				"required": []string{"model_ids"},
			},
		},
	}
}
