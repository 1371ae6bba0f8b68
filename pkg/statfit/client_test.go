package statfit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enerflux/gridcast/internal/config"
	"github.com/enerflux/gridcast/internal/models"
)

func TestNewClient(t *testing.T) {
	client := NewClient(&config.StatfitConfig{ServiceURL: "http://localhost:8181/", Timeout: 10})
	assert.Equal(t, "http://localhost:8181", client.BaseURL())
	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}

func TestClientHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Timestamp: time.Now(), Version: "0.4.1"})
	}))
	defer server.Close()

	client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
	health, err := client.HealthCheck(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "0.4.1", health.Version)
}

func TestClientArimaForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/arima/forecast", r.URL.Path)

		var req ArimaForecastRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, [3]int{1, 0, 1}, req.Order)
		assert.Equal(t, 3, req.Steps)
		require.Contains(t, req.Exog, "hdd")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ArimaForecastResponse{
			ModelID:   "arima-42",
			Forecast:  models.Floats{41.2, 41.8, 42.1},
			Residuals: models.Floats{0.2, -0.1},
		})
	}))
	defer server.Close()

	client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
	resp, err := client.ArimaForecast(context.Background(), &ArimaForecastRequest{
		Series: models.Floats{40, 41, 42},
		Exog:   map[string]models.Floats{"hdd": {1, 2, 3}},
		Order:  [3]int{1, 0, 1},
		Steps:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, "arima-42", resp.ModelID)
	assert.Equal(t, models.Floats{41.2, 41.8, 42.1}, resp.Forecast)
	assert.Equal(t, models.Floats{0.2, -0.1}, resp.Residuals)
}

func TestClientErrorResponses(t *testing.T) {
	t.Run("decodes error envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "series too short for order (2, 1, 2)"})
		}))
		defer server.Close()

		client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
		_, err := client.ArimaForecast(context.Background(), &ArimaForecastRequest{Steps: 3})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "series too short")
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("falls back to raw body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		}))
		defer server.Close()

		client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
		_, err := client.HealthCheck(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "upstream exploded")
	})
}

func TestClientGarchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/garch/forecast", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GarchForecastResponse{
			ModelID:  "garch-9",
			Variance: []models.Floats{{2.0, 2.1}, {1.1, 1.3}},
		})
	}))
	defer server.Close()

	client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
	resp, err := client.GarchForecast(context.Background(), &GarchForecastRequest{
		Residuals: models.Floats{0.1, -0.2},
		P:         1,
		Q:         1,
		Horizon:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, "garch-9", resp.ModelID)
	require.Len(t, resp.Variance, 2)
	assert.Equal(t, models.Floats{1.1, 1.3}, resp.Variance[1])
}

func TestClientVecmForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vecm/forecast", r.URL.Path)

		var req VecmForecastRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.Rank)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(VecmForecastResponse{
			ModelID: "vecm-5",
			Forecast: map[string]models.Floats{
				"spot":    {50.1, 50.4},
				"futures": {51.0, 51.2},
			},
		})
	}))
	defer server.Close()

	client := NewClient(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5})
	resp, err := client.VecmForecast(context.Background(), &VecmForecastRequest{
		Columns:  []string{"spot", "futures"},
		Series:   map[string]models.Floats{"spot": {50}, "futures": {51}},
		DetOrder: 0,
		KarDiff:  1,
		Steps:    2,
	})

	require.NoError(t, err)
	assert.Equal(t, "vecm-5", resp.ModelID)
	assert.Equal(t, models.Floats{50.1, 50.4}, resp.Forecast["spot"])
}
