// Package finbert provides the HTTP client for the sentiment sidecar, an
// external transformer-based classifier for financial text. Inference is
// never performed locally.
package finbert

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

// HealthResponse reports sidecar liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

// ErrorResponse is the sidecar's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClassifyRequest is an ordered batch of documents to classify.
type ClassifyRequest struct {
	Texts []string `json:"texts"`
}

// Classification is a three-way sentiment label with its confidence.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ClassifyResponse carries one classification per input document, in order.
type ClassifyResponse struct {
	Results []Classification `json:"results"`
}

// Client is the low-level HTTP client for the sentiment sidecar.
type Client struct {
	HTTPClient *http.Client
	baseURL    string
}

// NewClient creates a finbert client from configuration.
func NewClient(cfg *config.FinbertConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.ServiceURL, "/"),
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

// Classify scores a batch of documents.
func (c *Client) Classify(ctx context.Context, req *ClassifyRequest) (*ClassifyResponse, error) {
	var response ClassifyResponse
	err := c.makeRequest(ctx, http.MethodPost, "/api/sentiment", req, &response)
	return &response, err
}

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
			return fmt.Errorf("finbert service error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("finbert service error (%d): %s", resp.StatusCode, string(respBody))
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
