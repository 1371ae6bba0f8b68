package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/enerflux/gridcast/pkg/finbert"
)

// SentimentService scores free-text documents through the external
// classification backend, collapsing its three-way label into one signed
// score per document.
type SentimentService struct {
	classifier finbert.ClassifierService
	logger     *logrus.Logger
}

// NewSentimentService creates a sentiment adapter.
func NewSentimentService(classifier finbert.ClassifierService, logger *logrus.Logger) *SentimentService {
	return &SentimentService{classifier: classifier, logger: logger}
}

// ScoreTexts returns one score per document, in order: +confidence for a
// positive label, -confidence for negative, and exactly 0 for neutral. With
// the backend unavailable every document scores 0.
func (s *SentimentService) ScoreTexts(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	if !s.classifier.IsAvailable() {
		s.logger.WithField("documents", len(texts)).Debug("sentiment backend unavailable, returning zero scores")
		return scores, nil
	}

	resp, err := s.classifier.Classify(ctx, &finbert.ClassifyRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("score texts: %w", err)
	}
	if len(resp.Results) != len(texts) {
		return nil, fmt.Errorf("score texts: backend returned %d results for %d documents", len(resp.Results), len(texts))
	}

	for i, result := range resp.Results {
		scores[i] = mapLabel(result.Label, result.Confidence)
	}

	s.logger.WithField("documents", len(texts)).Info("sentiment scoring complete")
	return scores, nil
}

// mapLabel collapses a three-way sentiment label and confidence into a
// signed scalar. Unknown labels are treated as neutral.
func mapLabel(label string, confidence float64) float64 {
	switch strings.ToLower(label) {
	case "positive":
		return confidence
	case "negative":
		return -confidence
	default:
		return 0
	}
}
