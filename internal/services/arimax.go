// Package services contains the model adapters and the orchestration
// pipeline. Every statistical estimation is delegated to the statfit and
// finbert sidecars; adapters only shape inputs, forward parameters and
// degrade to shape-correct placeholder output when a backend is unavailable.
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/models"
	"github.com/enerflux/gridcast/internal/timeseries"
	"github.com/enerflux/gridcast/pkg/statfit"
)

// ArimaxService fits a univariate ARIMA model with optional exogenous
// regressors and produces point forecasts.
type ArimaxService struct {
	estimator statfit.EstimatorService
	logger    *logrus.Logger
}

// NewArimaxService creates a mean-model adapter.
func NewArimaxService(estimator statfit.EstimatorService, logger *logrus.Logger) *ArimaxService {
	return &ArimaxService{estimator: estimator, logger: logger}
}

// Forecast fits ARIMA(order) on the full history of the series, with the
// exogenous table as regressors when given, and returns horizon-many point
// forecasts. The trailing horizon-many exogenous rows stand in for the
// unknown future regressor values; this mirrors the historical behavior of
// the pipeline and is an approximation, not a forecasting guarantee.
// An unavailable backend yields horizon NaNs and no error.
func (s *ArimaxService) Forecast(ctx context.Context, series *timeseries.Series, exog *timeseries.Frame, order [3]int, horizon int) ([]float64, error) {
	if !s.estimator.IsAvailable() {
		s.logger.WithField("model", "arimax").Debug("estimation backend unavailable, returning placeholder forecast")
		return timeseries.NaNs(horizon), nil
	}

	req := &statfit.ArimaForecastRequest{
		Series: series.Values(),
		Order:  order,
		Steps:  horizon,
	}
	if exog != nil {
		req.Exog = frameColumns(exog)
		req.FutureExog = frameColumns(exog.Tail(horizon))
	}

	resp, err := s.estimator.ArimaForecast(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("arimax forecast: %w", err)
	}
	if len(resp.Forecast) != horizon {
		return nil, fmt.Errorf("arimax forecast: backend returned %d steps, expected %d", len(resp.Forecast), horizon)
	}

	s.logger.WithFields(logrus.Fields{
		"model":    "arimax",
		"model_id": resp.ModelID,
		"order":    order,
		"horizon":  horizon,
	}).Info("mean model forecast complete")
	return resp.Forecast, nil
}

// frameColumns converts a frame into the per-column map shape the sidecar
// consumes.
func frameColumns(frame *timeseries.Frame) map[string]models.Floats {
	out := make(map[string]models.Floats, len(frame.Columns()))
	for _, col := range frame.Columns() {
		out[col] = frame.Values(col)
	}
	return out
}
