package model

import "time"

// WeatherObservation is a single point-in-time reading for Konstanz.
// Bounded fields are validated at normalization time; an observation that
// exists always satisfies its declared ranges.
type WeatherObservation struct {
	Timestamp      time.Time `json:"timestamp"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity" validate:"gte=0,lte=100"`
	Pressure       float64   `json:"pressure"`
	WindSpeed      float64   `json:"wind_speed" validate:"gte=0"`
	WindDirection  float64   `json:"wind_direction" validate:"gte=0,lte=360"`
	Visibility     float64   `json:"visibility" validate:"gte=0"`
	Precipitation  float64   `json:"precipitation" validate:"gte=0"`
	FogProbability float64   `json:"fog_probability" validate:"gte=0,lte=1"`
}

// ForecastModel identifies one entry of the upstream model catalog.
// Resolution and Provider are optional metadata.
type ForecastModel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Resolution string `json:"resolution,omitempty"`
	Provider   string `json:"provider,omitempty"`
}

// ForecastPoint is a forecasted reading from one model. Timestamp is the
// time the forecast was issued; TargetTime is the instant it forecasts.
type ForecastPoint struct {
	WeatherObservation
	ModelID    string    `json:"model_id"`
	TargetTime time.Time `json:"target_time"`
}
