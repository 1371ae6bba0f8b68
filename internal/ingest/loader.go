// Package ingest loads the flat-file data sources consumed by the
// forecasting pipeline: historical prices, weather observations and
// pre-computed sentiment scores. Individual malformed cells degrade to NaN;
// missing files and structurally broken tables are hard errors.
package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/enerflux/gridcast/internal/timeseries"
	"github.com/enerflux/gridcast/internal/utils"
)

// TemperatureColumn is the column the weather table must provide.
const TemperatureColumn = "temperature"

// timestampLayouts are the accepted formats for the leading timestamp column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadPrices reads a price table from a CSV file. The first column is the
// timestamp; every remaining column is coerced to float64, with unparseable
// cells becoming NaN.
func LoadPrices(path string) (*timeseries.Frame, error) {
	frame, err := loadFrame(path)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	if len(frame.Columns()) == 0 {
		return nil, utils.NewValidationErrorf("load prices: %s has no value columns", path)
	}
	return frame, nil
}

// LoadWeather reads a weather table from a CSV file. The table must contain
// a temperature column.
func LoadWeather(path string) (*timeseries.Frame, error) {
	frame, err := loadFrame(path)
	if err != nil {
		return nil, fmt.Errorf("load weather: %w", err)
	}
	if !frame.HasColumn(TemperatureColumn) {
		return nil, utils.NewValidationErrorf("load weather: %s has no %s column", path, TemperatureColumn)
	}
	return frame, nil
}

// LoadSentiment reads pre-computed sentiment scores from a CSV file with
// exactly one value column.
func LoadSentiment(path string) (*timeseries.Series, error) {
	frame, err := loadFrame(path)
	if err != nil {
		return nil, fmt.Errorf("load sentiment: %w", err)
	}
	cols := frame.Columns()
	if len(cols) != 1 {
		return nil, utils.NewValidationErrorf("load sentiment: %s must have exactly one value column, got %d", path, len(cols))
	}
	return frame.Column(cols[0])
}

// loadFrame parses a delimited table whose first column is a timestamp.
func loadFrame(path string) (*timeseries.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, utils.NewValidationErrorf("parse %s: empty file", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, utils.NewValidationErrorf("parse %s: expected a timestamp column and at least one value column", path)
	}
	columns := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		columns = append(columns, strings.TrimSpace(name))
	}

	index := make([]time.Time, 0, len(records)-1)
	data := make(map[string][]float64, len(columns))
	for _, col := range columns {
		data[col] = make([]float64, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, utils.NewValidationErrorf("parse %s: row %d has %d fields, expected %d", path, i+2, len(record), len(header))
		}
		ts, err := parseTimestamp(record[0])
		if err != nil {
			return nil, utils.NewValidationErrorf("parse %s: row %d: %v", path, i+2, err)
		}
		index = append(index, ts)
		for j, col := range columns {
			data[col] = append(data[col], parseCell(record[j+1]))
		}
	}

	return timeseries.NewFrame(index, columns, data)
}

// parseCell coerces a single cell to float64, degrading to NaN on failure.
func parseCell(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}
