package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/fogcast/fogcast-mcp/internal/fogcast"
	"github.com/fogcast/fogcast-mcp/internal/httpclient"
	"github.com/fogcast/fogcast-mcp/internal/server"
	"github.com/fogcast/fogcast-mcp/internal/tools"
)

const mockObservation = `{
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

const mockForecast = `[{
	"temperature": 14.0,
	"humidity": 82,
	"pressure": 1008.5,
	"wind_speed": 2.2,
	"wind_direction": 95,
	"visibility": 4500,
	"precipitation": 0.8,
	"fog_probability": 0.6,
	"timestamp": "2024-03-01T06:00:00Z",
	"target_time": "2024-03-02T08:00:00Z"
}]`

const mockModels = `[
	{"id": "icon-d2", "name": "ICON D2", "resolution": "2.2km", "provider": "DWD"},
	{"id": "icon-eu", "name": "ICON EU", "resolution": "6.5km", "provider": "DWD"}
]`

// mockFogcastAPI stands in for the upstream Fogcast service. The id
// "flaky-model" always answers 500; unknown ids answer 404.
func mockFogcastAPI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/weather/current", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockObservation))
	})
	mux.HandleFunc("/api/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockModels))
	})
	mux.HandleFunc("/api/forecast/", func(w http.ResponseWriter, r *http.Request) {
		modelID := strings.TrimPrefix(r.URL.Path, "/api/forecast/")
		w.Header().Set("Content-Type", "application/json")
		switch modelID {
		case "flaky-model":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "backend unavailable"}`))
		case "icon-d2", "icon-eu":
			w.Write([]byte(mockForecast))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "model not found"}`))
		}
	})
	return httptest.NewServer(mux)
}

func buildServer(upstreamURL string) *server.Server {
	transport := httpclient.New(upstreamURL, 5*time.Second)
	gateway := fogcast.NewClient(transport)
	toolset := tools.New(gateway)
	return server.New("fogcast-weather-test", "0.0.0-test", toolset)
}
