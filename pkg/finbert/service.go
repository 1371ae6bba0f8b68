package finbert

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/config"
)

// ClassifierService defines the operations the sentiment adapter needs from
// the text-classification backend.
type ClassifierService interface {
	Initialize(ctx context.Context) error
	IsAvailable() bool
	Classify(ctx context.Context, req *ClassifyRequest) (*ClassifyResponse, error)
	Close() error
}

// Service wraps the finbert client with an availability state. An
// unconfigured or unreachable sidecar leaves the service unavailable and
// every document scores zero.
type Service struct {
	client    *Client
	logger    *logrus.Logger
	available bool
}

var _ ClassifierService = (*Service)(nil)

// NewService creates a finbert service from configuration.
func NewService(cfg *config.FinbertConfig, logger *logrus.Logger) *Service {
	var client *Client
	if cfg.ServiceURL != "" {
		client = NewClient(cfg)
	}
	return &Service{client: client, logger: logger}
}

// Initialize probes the sidecar. A failed probe is not an error.
func (s *Service) Initialize(ctx context.Context) error {
	if s.client == nil {
		s.logger.Warn("finbert service URL not configured, sentiment backend unavailable")
		return nil
	}
	health, err := s.client.HealthCheck(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("finbert health check failed, sentiment backend unavailable")
		return nil
	}
	s.available = true
	s.logger.WithFields(logrus.Fields{
		"url":   s.client.BaseURL(),
		"model": health.Model,
	}).Info("finbert service available")
	return nil
}

// IsAvailable reports whether the classification backend can be called.
func (s *Service) IsAvailable() bool {
	return s.available
}

// Classify delegates a classification batch to the sidecar.
func (s *Service) Classify(ctx context.Context, req *ClassifyRequest) (*ClassifyResponse, error) {
	return s.client.Classify(ctx, req)
}

// Close releases the underlying client.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
