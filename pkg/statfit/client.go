package statfit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/enerflux/gridcast/internal/config"
)

// Client is the low-level HTTP client for the statfit sidecar.
type Client struct {
	HTTPClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient creates a statfit client from configuration.
//
// Parameters:
//
//	cfg: Statfit sidecar configuration.
//
// Returns:
//
//	*Client: Initialized client.
func NewClient(cfg *config.StatfitConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.ServiceURL, "/"),
		timeout:    timeout,
	}
}

// HealthCheck checks whether the sidecar is reachable and healthy.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	var response HealthResponse
	if err := c.makeRequest(ctx, http.MethodGet, "/health", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ArimaForecast fits an ARIMA/ARIMAX model and returns its point forecast
// and in-sample residuals.
func (c *Client) ArimaForecast(ctx context.Context, req *ArimaForecastRequest) (*ArimaForecastResponse, error) {
	var response ArimaForecastResponse
	err := c.makeRequest(ctx, http.MethodPost, "/api/arima/forecast", req, &response)
	return &response, err
}

// GarchForecast fits a GARCH model on residuals and returns the incremental
// variance forecast.
func (c *Client) GarchForecast(ctx context.Context, req *GarchForecastRequest) (*GarchForecastResponse, error) {
	var response GarchForecastResponse
	err := c.makeRequest(ctx, http.MethodPost, "/api/garch/forecast", req, &response)
	return &response, err
}

// VecmForecast fits a vector error-correction model and returns per-column
// forecasts.
func (c *Client) VecmForecast(ctx context.Context, req *VecmForecastRequest) (*VecmForecastResponse, error) {
	var response VecmForecastResponse
	err := c.makeRequest(ctx, http.MethodPost, "/api/vecm/forecast", req, &response)
	return &response, err
}

// makeRequest is a helper to issue JSON requests against the sidecar.
func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Gridcast/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("statfit service error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("statfit service error (%d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// Close releases client resources. Provided for interface compatibility.
func (c *Client) Close() error {
	return nil
}

// BaseURL returns the sidecar base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
