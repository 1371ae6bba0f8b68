package ingest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPrices(t *testing.T) {
	t.Run("parses timestamps and numeric columns", func(t *testing.T) {
		path := writeTempCSV(t, "prices.csv", `timestamp,da_lmp,rt_lmp
2024-01-01 00:00:00,42.5,41.9
2024-01-01 01:00:00,43.1,42.2
`)
		frame, err := LoadPrices(path)
		require.NoError(t, err)
		assert.Equal(t, 2, frame.Len())
		assert.Equal(t, []string{"da_lmp", "rt_lmp"}, frame.Columns())
		assert.Equal(t, []float64{42.5, 43.1}, frame.Values("da_lmp"))
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), frame.Index()[0])
	})

	t.Run("malformed cells degrade to NaN", func(t *testing.T) {
		path := writeTempCSV(t, "prices.csv", `timestamp,da_lmp
2024-01-01,42.5
2024-01-02,n/a
2024-01-03,44.0
`)
		frame, err := LoadPrices(path)
		require.NoError(t, err)
		values := frame.Values("da_lmp")
		assert.Equal(t, 42.5, values[0])
		assert.True(t, math.IsNaN(values[1]))
		assert.Equal(t, 44.0, values[2])
	})

	t.Run("missing file is a hard error", func(t *testing.T) {
		_, err := LoadPrices(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("malformed timestamp is a hard error", func(t *testing.T) {
		path := writeTempCSV(t, "prices.csv", `timestamp,da_lmp
not-a-date,42.5
`)
		_, err := LoadPrices(path)
		assert.Error(t, err)
	})

	t.Run("out-of-order rows are a hard error", func(t *testing.T) {
		path := writeTempCSV(t, "prices.csv", `timestamp,da_lmp
2024-01-02,42.5
2024-01-01,41.0
`)
		_, err := LoadPrices(path)
		assert.Error(t, err)
	})
}

func TestLoadWeather(t *testing.T) {
	t.Run("requires a temperature column", func(t *testing.T) {
		path := writeTempCSV(t, "weather.csv", `timestamp,humidity
2024-01-01,0.4
`)
		_, err := LoadWeather(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("loads temperature observations", func(t *testing.T) {
		path := writeTempCSV(t, "weather.csv", `timestamp,temperature
2024-01-01,15.5
2024-01-02,17.0
`)
		frame, err := LoadWeather(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{15.5, 17.0}, frame.Values(TemperatureColumn))
	})
}

func TestLoadSentiment(t *testing.T) {
	t.Run("loads a single value column", func(t *testing.T) {
		path := writeTempCSV(t, "sentiment.csv", `timestamp,sentiment
2024-01-01,0.35
2024-01-02,-0.12
`)
		series, err := LoadSentiment(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.35, -0.12}, series.Values())
	})

	t.Run("rejects multiple value columns", func(t *testing.T) {
		path := writeTempCSV(t, "sentiment.csv", `timestamp,sentiment,extra
2024-01-01,0.35,1.0
`)
		_, err := LoadSentiment(path)
		assert.Error(t, err)
	})
}
