package statfit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enerflux/gridcast/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestServiceInitialize(t *testing.T) {
	tests := []struct {
		name          string
		serverStatus  int
		serverBody    interface{}
		wantAvailable bool
	}{
		{
			name:          "successful initialization",
			serverStatus:  http.StatusOK,
			serverBody:    HealthResponse{Status: "ok", Timestamp: time.Now(), Version: "0.4.1"},
			wantAvailable: true,
		},
		{
			name:          "service unavailable",
			serverStatus:  http.StatusServiceUnavailable,
			serverBody:    ErrorResponse{Error: "warming up"},
			wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.serverStatus)
				_ = json.NewEncoder(w).Encode(tt.serverBody)
			}))
			defer server.Close()

			svc := NewService(&config.StatfitConfig{ServiceURL: server.URL, Timeout: 5}, testLogger())
			err := svc.Initialize(context.Background())

			// A failed probe degrades the service instead of failing startup.
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, svc.IsAvailable())
		})
	}
}

func TestServiceUnconfigured(t *testing.T) {
	svc := NewService(&config.StatfitConfig{ServiceURL: ""}, testLogger())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.False(t, svc.IsAvailable())
	assert.NoError(t, svc.Close())
}

func TestServiceUnreachableHost(t *testing.T) {
	svc := NewService(&config.StatfitConfig{ServiceURL: "http://127.0.0.1:1", Timeout: 1}, testLogger())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.False(t, svc.IsAvailable())
}
