package statfit

import "context"

// EstimatorService defines the operations the forecasting adapters need from
// the statistical estimation backend.
type EstimatorService interface {
	Initialize(ctx context.Context) error
	IsAvailable() bool
	ArimaForecast(ctx context.Context, req *ArimaForecastRequest) (*ArimaForecastResponse, error)
	GarchForecast(ctx context.Context, req *GarchForecastRequest) (*GarchForecastResponse, error)
	VecmForecast(ctx context.Context, req *VecmForecastRequest) (*VecmForecastResponse, error)
	Close() error
}

var _ EstimatorService = (*Service)(nil)
