package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/timeseries"
	"github.com/enerflux/gridcast/pkg/statfit"
)

// ArimaxGarchResult bundles the fitted model handles and the paired
// mean/volatility forecasts. Unavailable backends leave both handles nil and
// both forecasts NaN-filled at the requested horizon.
type ArimaxGarchResult struct {
	MeanModelID  *string
	VolModelID   *string
	ForecastMean []float64
	ForecastVol  []float64
}

// ArimaxGarchService fits the mean model, then a GARCH conditional-volatility
// model on its in-sample residuals.
type ArimaxGarchService struct {
	estimator statfit.EstimatorService
	logger    *logrus.Logger
}

// NewArimaxGarchService creates a mean+volatility adapter.
func NewArimaxGarchService(estimator statfit.EstimatorService, logger *logrus.Logger) *ArimaxGarchService {
	return &ArimaxGarchService{estimator: estimator, logger: logger}
}

// Forecast fits ARIMA(arimaOrder) on the series (trailing exogenous rows
// standing in for future regressors, as in ArimaxService), fits
// GARCH(garchOrder) on the mean model's residuals, and forecasts both. The
// volatility path is the last row of the backend's incremental variance
// forecast.
func (s *ArimaxGarchService) Forecast(ctx context.Context, series *timeseries.Series, exog *timeseries.Frame, arimaOrder [3]int, garchOrder [2]int, horizon int) (*ArimaxGarchResult, error) {
	if !s.estimator.IsAvailable() {
		s.logger.WithField("model", "arimax_garch").Debug("estimation backend unavailable, returning placeholder forecasts")
		return &ArimaxGarchResult{
			ForecastMean: timeseries.NaNs(horizon),
			ForecastVol:  timeseries.NaNs(horizon),
		}, nil
	}

	arimaReq := &statfit.ArimaForecastRequest{
		Series: series.Values(),
		Order:  arimaOrder,
		Steps:  horizon,
	}
	if exog != nil {
		arimaReq.Exog = frameColumns(exog)
		arimaReq.FutureExog = frameColumns(exog.Tail(horizon))
	}

	arimaResp, err := s.estimator.ArimaForecast(ctx, arimaReq)
	if err != nil {
		return nil, fmt.Errorf("arimax-garch mean fit: %w", err)
	}

	garchResp, err := s.estimator.GarchForecast(ctx, &statfit.GarchForecastRequest{
		Residuals: arimaResp.Residuals,
		P:         garchOrder[0],
		Q:         garchOrder[1],
		Horizon:   horizon,
	})
	if err != nil {
		return nil, fmt.Errorf("arimax-garch volatility fit: %w", err)
	}
	if len(garchResp.Variance) == 0 {
		return nil, fmt.Errorf("arimax-garch volatility fit: backend returned empty variance forecast")
	}

	// The incremental variance forecast has one row per origin; the last row
	// is the horizon-length path from the end of the sample.
	forecastVol := garchResp.Variance[len(garchResp.Variance)-1]
	if len(forecastVol) != horizon {
		return nil, fmt.Errorf("arimax-garch volatility fit: backend returned %d steps, expected %d", len(forecastVol), horizon)
	}

	s.logger.WithFields(logrus.Fields{
		"model":         "arimax_garch",
		"mean_model_id": arimaResp.ModelID,
		"vol_model_id":  garchResp.ModelID,
		"horizon":       horizon,
	}).Info("mean+volatility forecast complete")

	return &ArimaxGarchResult{
		MeanModelID:  &arimaResp.ModelID,
		VolModelID:   &garchResp.ModelID,
		ForecastMean: arimaResp.Forecast,
		ForecastVol:  forecastVol,
	}, nil
}
