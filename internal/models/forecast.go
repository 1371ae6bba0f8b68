package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Floats is a float64 slice whose JSON form encodes NaN as null. JSON has no
// NaN literal, and forecast output uses NaN as the missing-value marker.
type Floats []float64

// MarshalJSON implements json.Marshaler.
func (f Floats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, decoding null back to NaN.
func (f *Floats) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*f = out
	return nil
}

// ForecastRequest are the inputs of one pipeline run.
type ForecastRequest struct {
	PricePath     string `json:"price_path" binding:"required"`
	WeatherPath   string `json:"weather_path" binding:"required"`
	SentimentPath string `json:"sentiment_path,omitempty"`
	Horizon       int    `json:"horizon,omitempty"`
}

// FrameForecast is a multi-column forecast indexed by future timestamps.
type FrameForecast struct {
	Index   []time.Time       `json:"index"`
	Columns []string          `json:"columns"`
	Values  map[string]Floats `json:"values"`
}

// PipelineResult aggregates the outputs of every model adapter for one run.
// Each field is either populated or explicitly absent; a NaN-filled forecast
// indicates the corresponding estimation backend was unavailable.
type PipelineResult struct {
	RunID           string         `json:"run_id"`
	Horizon         int            `json:"horizon"`
	GeneratedAt     time.Time      `json:"generated_at"`
	ArimaxForecast  Floats         `json:"arimax_forecast"`
	ArimaxGarchMean Floats         `json:"arimax_garch_mean"`
	ArimaxGarchVol  Floats         `json:"arimax_garch_vol"`
	VecmForecast    *FrameForecast `json:"vecm_forecast,omitempty"`
}

// SentimentScoreRequest is a batch of documents to score.
type SentimentScoreRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// SentimentScoreResponse carries one signed score per input document,
// in [-1, 1].
type SentimentScoreResponse struct {
	Scores Floats `json:"scores"`
}

// DiagnosticsRequest names the price table to summarize.
type DiagnosticsRequest struct {
	PricePath string `json:"price_path" binding:"required"`
}

// SeriesDiagnostics summarizes one price column for data-quality review.
type SeriesDiagnostics struct {
	Column       string          `json:"column"`
	Observations int             `json:"observations"`
	MissingCells int             `json:"missing_cells"`
	Last         decimal.Decimal `json:"last"`
	Mean         decimal.Decimal `json:"mean"`
	SMA          decimal.Decimal `json:"sma"`
	RSI          decimal.Decimal `json:"rsi"`
}

// DiagnosticsResponse summarizes a loaded price table.
type DiagnosticsResponse struct {
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Step   string              `json:"step"`
	Series []SeriesDiagnostics `json:"series"`
}
