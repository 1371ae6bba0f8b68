// Package statfit provides the HTTP client for the statfit sidecar, the
// external estimation service wrapping the ARIMA, GARCH and VECM model
// backends. Estimation itself is never performed locally; this package only
// passes documented parameters and decodes documented response shapes.
package statfit

import (
	"time"

	"github.com/enerflux/gridcast/internal/models"
)

// HealthResponse reports sidecar liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// ErrorResponse is the sidecar's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ArimaForecastRequest fits an ARIMA(p,d,q) model, optionally with exogenous
// regressors, and forecasts the requested number of steps. FutureExog carries
// the regressor rows used for the forecast period.
type ArimaForecastRequest struct {
	Series     models.Floats            `json:"series"`
	Exog       map[string]models.Floats `json:"exog,omitempty"`
	FutureExog map[string]models.Floats `json:"future_exog,omitempty"`
	Order      [3]int                   `json:"order"`
	Steps      int                      `json:"steps"`
}

// ArimaForecastResponse carries the fitted model handle, the point forecast
// and the in-sample residuals (consumed by the GARCH stage).
type ArimaForecastResponse struct {
	ModelID   string        `json:"model_id"`
	Forecast  models.Floats `json:"forecast"`
	Residuals models.Floats `json:"residuals"`
}

// GarchForecastRequest fits a GARCH(p,q) model on mean-model residuals and
// forecasts conditional variance over the horizon.
type GarchForecastRequest struct {
	Residuals models.Floats `json:"residuals"`
	P         int           `json:"p"`
	Q         int           `json:"q"`
	Horizon   int           `json:"horizon"`
}

// GarchForecastResponse carries the incremental variance forecast: one row
// per in-sample origin, horizon-many columns each. The caller reads the last
// row as the volatility path.
type GarchForecastResponse struct {
	ModelID  string          `json:"model_id"`
	Variance []models.Floats `json:"variance"`
}

// VecmForecastRequest fits a vector error-correction model across the named
// series. A nil Rank delegates cointegration-rank selection to the sidecar's
// trace test.
type VecmForecastRequest struct {
	Columns  []string                 `json:"columns"`
	Series   map[string]models.Floats `json:"series"`
	DetOrder int                      `json:"det_order"`
	KarDiff  int                      `json:"k_ar_diff"`
	Rank     *int                     `json:"rank,omitempty"`
	Steps    int                      `json:"steps"`
}

// VecmForecastResponse carries per-column point forecasts of Steps length.
type VecmForecastResponse struct {
	ModelID  string                   `json:"model_id"`
	Forecast map[string]models.Floats `json:"forecast"`
}
