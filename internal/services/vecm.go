package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/timeseries"
	"github.com/enerflux/gridcast/pkg/statfit"
)

// VecmService fits a vector error-correction model across cointegrated price
// series. No volatility component is modeled here; that is a documented
// limitation of the multivariate stage, not a defect.
type VecmService struct {
	estimator statfit.EstimatorService
	logger    *logrus.Logger
}

// NewVecmService creates a cointegrated multivariate adapter.
func NewVecmService(estimator statfit.EstimatorService, logger *logrus.Logger) *VecmService {
	return &VecmService{estimator: estimator, logger: logger}
}

// Forecast fits a VECM on the multi-column frame and returns a forecast
// frame with the same columns, indexed by horizon-many timestamps continuing
// the input's frequency. A rank of zero or below delegates cointegration-rank
// selection to the backend's trace test. An unavailable backend yields an
// all-NaN frame of the correct shape.
func (s *VecmService) Forecast(ctx context.Context, frame *timeseries.Frame, detOrder, kAhDiff, rank, horizon int) (*timeseries.Frame, error) {
	futureIndex := frame.FutureIndex(horizon)

	if !s.estimator.IsAvailable() {
		s.logger.WithField("model", "vecm").Debug("estimation backend unavailable, returning placeholder forecast frame")
		return timeseries.NaNFrame(futureIndex, frame.Columns()), nil
	}

	req := &statfit.VecmForecastRequest{
		Columns:  frame.Columns(),
		Series:   frameColumns(frame),
		DetOrder: detOrder,
		KarDiff:  kAhDiff,
		Steps:    horizon,
	}
	if rank > 0 {
		req.Rank = &rank
	}

	resp, err := s.estimator.VecmForecast(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vecm forecast: %w", err)
	}

	data := make(map[string][]float64, len(frame.Columns()))
	for _, col := range frame.Columns() {
		values, ok := resp.Forecast[col]
		if !ok || len(values) != horizon {
			return nil, fmt.Errorf("vecm forecast: backend response missing %d-step forecast for column %s", horizon, col)
		}
		data[col] = values
	}

	forecast, err := timeseries.NewFrame(futureIndex, frame.Columns(), data)
	if err != nil {
		return nil, fmt.Errorf("vecm forecast: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"model":    "vecm",
		"model_id": resp.ModelID,
		"columns":  len(frame.Columns()),
		"horizon":  horizon,
	}).Info("multivariate forecast complete")
	return forecast, nil
}
