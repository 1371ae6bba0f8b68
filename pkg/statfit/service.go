package statfit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/config"
)

// Service wraps the statfit client with an availability state. A sidecar
// that is unconfigured or fails its health check at startup marks the whole
// estimation backend unavailable; adapters then emit placeholder output
// instead of failing.
type Service struct {
	client    *Client
	logger    *logrus.Logger
	available bool
}

// NewService creates a statfit service from configuration.
func NewService(cfg *config.StatfitConfig, logger *logrus.Logger) *Service {
	var client *Client
	if cfg.ServiceURL != "" {
		client = NewClient(cfg)
	}
	return &Service{client: client, logger: logger}
}

// Initialize probes the sidecar. A failed probe is not an error: the service
// simply stays unavailable and every estimation degrades to placeholders.
func (s *Service) Initialize(ctx context.Context) error {
	if s.client == nil {
		s.logger.Warn("statfit service URL not configured, estimation backends unavailable")
		return nil
	}
	health, err := s.client.HealthCheck(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("statfit health check failed, estimation backends unavailable")
		return nil
	}
	s.available = true
	s.logger.WithFields(logrus.Fields{
		"url":     s.client.BaseURL(),
		"version": health.Version,
	}).Info("statfit service available")
	return nil
}

// IsAvailable reports whether the estimation backend can be called.
func (s *Service) IsAvailable() bool {
	return s.available
}

// ArimaForecast delegates an ARIMA/ARIMAX fit-and-forecast to the sidecar.
func (s *Service) ArimaForecast(ctx context.Context, req *ArimaForecastRequest) (*ArimaForecastResponse, error) {
	return s.client.ArimaForecast(ctx, req)
}

// GarchForecast delegates a GARCH fit-and-forecast to the sidecar.
func (s *Service) GarchForecast(ctx context.Context, req *GarchForecastRequest) (*GarchForecastResponse, error) {
	return s.client.GarchForecast(ctx, req)
}

// VecmForecast delegates a VECM fit-and-forecast to the sidecar.
func (s *Service) VecmForecast(ctx context.Context, req *VecmForecastRequest) (*VecmForecastResponse, error) {
	return s.client.VecmForecast(ctx, req)
}

// Close releases the underlying client.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
