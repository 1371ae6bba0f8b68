// Package features derives the exogenous regressors fed to the mean and
// volatility models: temperature-based degree days and, when available,
// text-sentiment scores, all aligned onto the target price index.
package features

import (
	"fmt"
	"math"
	"time"

	"github.com/enerflux/gridcast/internal/ingest"
	"github.com/enerflux/gridcast/internal/timeseries"
)

// DefaultBaseTemperature is the reference temperature for degree-day
// computation, in the same unit as the input observations.
const DefaultBaseTemperature = 18.0

// Degree-day column names.
const (
	ColumnHDD       = "hdd"
	ColumnCDD       = "cdd"
	ColumnSentiment = "sentiment"
)

// DegreeDays computes heating and cooling degree days from a temperature
// series. HDD measures how far temperature fell below the base, CDD how far
// it rose above it; both are floored at zero.
func DegreeDays(temperature *timeseries.Series, base float64) (*timeseries.Frame, error) {
	n := temperature.Len()
	hdd := make([]float64, n)
	cdd := make([]float64, n)
	for i, t := range temperature.Values() {
		hdd[i] = math.Max(0, base-t)
		cdd[i] = math.Max(0, t-base)
	}
	return timeseries.NewFrame(temperature.Index(), []string{ColumnHDD, ColumnCDD}, map[string][]float64{
		ColumnHDD: hdd,
		ColumnCDD: cdd,
	})
}

// BuildExogenous assembles the exogenous feature table for a target index:
// degree days derived from the weather frame's temperature column, plus an
// optional sentiment series, each forward-filled onto the target timestamps.
func BuildExogenous(targetIndex []time.Time, weather *timeseries.Frame, base float64, sentiment *timeseries.Series) (*timeseries.Frame, error) {
	temperature, err := weather.Column(ingest.TemperatureColumn)
	if err != nil {
		return nil, fmt.Errorf("build exogenous: %w", err)
	}

	degreeDays, err := DegreeDays(temperature, base)
	if err != nil {
		return nil, fmt.Errorf("build exogenous: %w", err)
	}
	exog := degreeDays.Reindex(targetIndex)

	if sentiment != nil {
		frame, err := timeseries.NewFrame(sentiment.Index(), []string{ColumnSentiment}, map[string][]float64{
			ColumnSentiment: sentiment.Values(),
		})
		if err != nil {
			return nil, fmt.Errorf("build exogenous: %w", err)
		}
		aligned := frame.Reindex(targetIndex)
		if err := exog.AddColumn(ColumnSentiment, aligned.Values(ColumnSentiment)); err != nil {
			return nil, fmt.Errorf("build exogenous: %w", err)
		}
	}

	return exog, nil
}
