package services

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/models"
	"github.com/enerflux/gridcast/internal/timeseries"
)

const (
	diagnosticsSmaPeriod = 24
	diagnosticsRsiPeriod = 14
)

// DiagnosticsService produces data-quality summaries of a loaded price
// table. Indicator math is delegated to the indicator library; this service
// only selects inputs and formats output.
type DiagnosticsService struct {
	logger *logrus.Logger
}

// NewDiagnosticsService creates a diagnostics service.
func NewDiagnosticsService(logger *logrus.Logger) *DiagnosticsService {
	return &DiagnosticsService{logger: logger}
}

// Summarize describes every column of the price frame: observation and
// missing-cell counts, last value, mean, and trailing SMA/RSI values.
func (s *DiagnosticsService) Summarize(frame *timeseries.Frame) *models.DiagnosticsResponse {
	index := frame.Index()
	resp := &models.DiagnosticsResponse{
		Step:   frame.Step().String(),
		Series: make([]models.SeriesDiagnostics, 0, len(frame.Columns())),
	}
	if len(index) > 0 {
		resp.Start = index[0]
		resp.End = index[len(index)-1]
	}

	for _, col := range frame.Columns() {
		values := frame.Values(col)
		clean := make([]float64, 0, len(values))
		missing := 0
		sum := 0.0
		for _, v := range values {
			if math.IsNaN(v) {
				missing++
				continue
			}
			clean = append(clean, v)
			sum += v
		}

		diag := models.SeriesDiagnostics{
			Column:       col,
			Observations: len(values),
			MissingCells: missing,
		}
		if len(clean) > 0 {
			diag.Last = decimal.NewFromFloat(clean[len(clean)-1]).Round(6)
			diag.Mean = decimal.NewFromFloat(sum / float64(len(clean))).Round(6)
			diag.SMA = lastIndicatorValue(trailingSMA(clean))
			diag.RSI = lastIndicatorValue(trailingRSI(clean))
		}
		resp.Series = append(resp.Series, diag)
	}

	s.logger.WithFields(logrus.Fields{
		"columns": len(frame.Columns()),
		"rows":    frame.Len(),
	}).Info("price table diagnostics computed")
	return resp
}

func trailingSMA(prices []float64) []float64 {
	if len(prices) < diagnosticsSmaPeriod {
		return nil
	}
	smaIndicator := trend.NewSmaWithPeriod[float64](diagnosticsSmaPeriod)
	return helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(prices)))
}

func trailingRSI(prices []float64) []float64 {
	if len(prices) <= diagnosticsRsiPeriod {
		return nil
	}
	rsiIndicator := momentum.NewRsiWithPeriod[float64](diagnosticsRsiPeriod)
	return helper.ChanToSlice(rsiIndicator.Compute(helper.SliceToChan(prices)))
}

func lastIndicatorValue(values []float64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(values[len(values)-1]).Round(6)
}
