package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/enerflux/gridcast/internal/handlers"
	"github.com/enerflux/gridcast/pkg/finbert"
	"github.com/enerflux/gridcast/pkg/statfit"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Backends  Backends  `json:"backends"`
}

// Backends reports the availability of the external model backends. An
// unavailable backend does not fail the health check; it only means the
// affected adapters emit placeholder output.
type Backends struct {
	Statfit string `json:"statfit"`
	Finbert string `json:"finbert"`
}

func SetupRoutes(router *gin.Engine, forecastHandler *handlers.ForecastHandler, estimator statfit.EstimatorService, classifier finbert.ClassifierService) {
	// Health check endpoint
	router.GET("/health", healthCheck(estimator, classifier))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/forecast", forecastHandler.RunForecast)
		v1.POST("/sentiment/score", forecastHandler.ScoreSentiment)
		v1.POST("/diagnostics", forecastHandler.SummarizePrices)
	}
}

func healthCheck(estimator statfit.EstimatorService, classifier finbert.ClassifierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Backends: Backends{
				Statfit: backendStatus(estimator.IsAvailable()),
				Finbert: backendStatus(classifier.IsAvailable()),
			},
		}
		c.JSON(http.StatusOK, response)
	}
}

func backendStatus(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}
