package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/enerflux/gridcast/pkg/finbert"
	"github.com/enerflux/gridcast/pkg/statfit"
)

// MockEstimatorService is a mock implementation of statfit.EstimatorService.
type MockEstimatorService struct {
	mock.Mock
}

func (m *MockEstimatorService) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEstimatorService) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEstimatorService) ArimaForecast(ctx context.Context, req *statfit.ArimaForecastRequest) (*statfit.ArimaForecastResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statfit.ArimaForecastResponse), args.Error(1)
}

func (m *MockEstimatorService) GarchForecast(ctx context.Context, req *statfit.GarchForecastRequest) (*statfit.GarchForecastResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statfit.GarchForecastResponse), args.Error(1)
}

func (m *MockEstimatorService) VecmForecast(ctx context.Context, req *statfit.VecmForecastRequest) (*statfit.VecmForecastResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statfit.VecmForecastResponse), args.Error(1)
}

func (m *MockEstimatorService) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ statfit.EstimatorService = (*MockEstimatorService)(nil)

// MockClassifierService is a mock implementation of finbert.ClassifierService.
type MockClassifierService struct {
	mock.Mock
}

func (m *MockClassifierService) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClassifierService) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClassifierService) Classify(ctx context.Context, req *finbert.ClassifyRequest) (*finbert.ClassifyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finbert.ClassifyResponse), args.Error(1)
}

func (m *MockClassifierService) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ finbert.ClassifierService = (*MockClassifierService)(nil)
