// Package handlers exposes the forecasting pipeline over HTTP.
package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/internal/ingest"
	"github.com/enerflux/gridcast/internal/models"
	"github.com/enerflux/gridcast/internal/services"
	"github.com/enerflux/gridcast/internal/utils"
)

// ForecastHandler serves pipeline runs, ad-hoc sentiment scoring and price
// table diagnostics.
type ForecastHandler struct {
	pipeline    *services.PipelineService
	sentiment   *services.SentimentService
	diagnostics *services.DiagnosticsService
	logger      *logrus.Logger
}

// NewForecastHandler creates the forecast handler.
func NewForecastHandler(pipeline *services.PipelineService, sentiment *services.SentimentService, diagnostics *services.DiagnosticsService, logger *logrus.Logger) *ForecastHandler {
	return &ForecastHandler{
		pipeline:    pipeline,
		sentiment:   sentiment,
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// RunForecast executes the end-to-end pipeline on the referenced data files.
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		var validationErr *utils.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("pipeline run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScoreSentiment scores a batch of documents through the sentiment backend.
func (h *ForecastHandler) ScoreSentiment(c *gin.Context) {
	var req models.SentimentScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scores, err := h.sentiment.ScoreTexts(c.Request.Context(), req.Texts)
	if err != nil {
		h.logger.WithError(err).Error("sentiment scoring failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.SentimentScoreResponse{Scores: scores})
}

// SummarizePrices loads a price table and returns per-column diagnostics.
func (h *ForecastHandler) SummarizePrices(c *gin.Context) {
	var req models.DiagnosticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := ingest.LoadPrices(req.PricePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.diagnostics.Summarize(frame))
}
