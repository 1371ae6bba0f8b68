package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/enerflux/gridcast/internal/config"
	"github.com/enerflux/gridcast/internal/features"
	"github.com/enerflux/gridcast/internal/ingest"
	"github.com/enerflux/gridcast/internal/models"
	"github.com/enerflux/gridcast/internal/telemetry"
	"github.com/enerflux/gridcast/internal/timeseries"
	"github.com/enerflux/gridcast/pkg/statfit"
)

// PipelineService sequences the full forecasting workflow: load the raw
// tables, derive exogenous features onto the price index, run each model
// adapter and merge their outputs into one result bundle. Runs are
// synchronous and stateless; adapters' degraded modes are the only failure
// recovery.
type PipelineService struct {
	cfg         *config.ForecastConfig
	arimax      *ArimaxService
	arimaxGarch *ArimaxGarchService
	vecm        *VecmService
	logger      *logrus.Logger
}

// NewPipelineService wires the pipeline from configuration and the
// estimation backend.
func NewPipelineService(cfg *config.ForecastConfig, estimator statfit.EstimatorService, logger *logrus.Logger) *PipelineService {
	return &PipelineService{
		cfg:         cfg,
		arimax:      NewArimaxService(estimator, logger),
		arimaxGarch: NewArimaxGarchService(estimator, logger),
		vecm:        NewVecmService(estimator, logger),
		logger:      logger,
	}
}

// Run executes one end-to-end forecast. The sentiment path is optional; the
// horizon defaults to the configured value when the request leaves it unset.
func (s *PipelineService) Run(ctx context.Context, req *models.ForecastRequest) (*models.PipelineResult, error) {
	horizon := req.Horizon
	if horizon <= 0 {
		horizon = s.cfg.Horizon
	}
	runID := uuid.New().String()
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "horizon": horizon})

	ctx, span := telemetry.Tracer().Start(ctx, "pipeline.run")
	span.SetAttributes(attribute.String("run_id", runID), attribute.Int("horizon", horizon))
	defer span.End()

	// Stage 1: load raw tables. Missing or structurally broken files are
	// hard failures.
	prices, err := ingest.LoadPrices(req.PricePath)
	if err != nil {
		return nil, err
	}
	weather, err := ingest.LoadWeather(req.WeatherPath)
	if err != nil {
		return nil, err
	}
	var sentiment *timeseries.Series
	if req.SentimentPath != "" {
		if sentiment, err = ingest.LoadSentiment(req.SentimentPath); err != nil {
			return nil, err
		}
	}
	log.WithFields(logrus.Fields{
		"price_rows":    prices.Len(),
		"price_columns": len(prices.Columns()),
		"weather_rows":  weather.Len(),
	}).Info("pipeline data loaded")

	// Stage 2: exogenous features aligned onto the price index.
	exog, err := features.BuildExogenous(prices.Index(), weather, s.cfg.BaseTemperature, sentiment)
	if err != nil {
		return nil, err
	}

	target, err := prices.Column(prices.Columns()[0])
	if err != nil {
		return nil, err
	}

	// Stage 3: model fitting and forecasting.
	arimaOrder, err := orderTriple(s.cfg.ArimaOrder)
	if err != nil {
		return nil, err
	}
	garchOrder, err := orderPair(s.cfg.GarchOrder)
	if err != nil {
		return nil, err
	}

	arimaxForecast, err := s.arimax.Forecast(ctx, target, exog, arimaOrder, horizon)
	if err != nil {
		return nil, err
	}

	garchResult, err := s.arimaxGarch.Forecast(ctx, target, exog, arimaOrder, garchOrder, horizon)
	if err != nil {
		return nil, err
	}

	result := &models.PipelineResult{
		RunID:           runID,
		Horizon:         horizon,
		GeneratedAt:     time.Now().UTC(),
		ArimaxForecast:  arimaxForecast,
		ArimaxGarchMean: garchResult.ForecastMean,
		ArimaxGarchVol:  garchResult.ForecastVol,
	}

	// The multivariate stage only applies when the price table carries more
	// than one series.
	if len(prices.Columns()) > 1 {
		vecmForecast, err := s.vecm.Forecast(ctx, prices, s.cfg.Vecm.DetOrder, s.cfg.Vecm.KarDiff, s.cfg.Vecm.Rank, horizon)
		if err != nil {
			return nil, err
		}
		result.VecmForecast = frameForecast(vecmForecast)
	}

	log.Info("pipeline run complete")
	return result, nil
}

func frameForecast(frame *timeseries.Frame) *models.FrameForecast {
	values := make(map[string]models.Floats, len(frame.Columns()))
	for _, col := range frame.Columns() {
		values[col] = frame.Values(col)
	}
	return &models.FrameForecast{
		Index:   frame.Index(),
		Columns: frame.Columns(),
		Values:  values,
	}
}

func orderTriple(order []int) ([3]int, error) {
	if len(order) != 3 {
		return [3]int{}, fmt.Errorf("expected 3-element order (p, d, q), got %d elements", len(order))
	}
	return [3]int{order[0], order[1], order[2]}, nil
}

func orderPair(order []int) ([2]int, error) {
	if len(order) != 2 {
		return [2]int{}, fmt.Errorf("expected 2-element order (p, q), got %d elements", len(order))
	}
	return [2]int{order[0], order[1]}, nil
}
