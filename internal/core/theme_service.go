package core

import (
	"context"
	"fmt"
	"math"

	"github.com/sayitbetter/backend/internal/utils"
	"go.uber.org/zap"
)

// DefaultRecurringThreshold is the minimum cosine similarity for a current
// theme to be classified as recurring.
const DefaultRecurringThreshold = 0.7

type ThemeService struct {
	embedder  Embedder
	threshold float64
	logger    *zap.Logger
}

func NewThemeService(embedder Embedder, threshold float64, logger *zap.Logger) *ThemeService {
	if threshold <= 0 {
		threshold = DefaultRecurringThreshold
	}
	return &ThemeService{embedder: embedder, threshold: threshold, logger: logger}
}

// AnalyzeThemes matches every current theme against the past themes and
// flags the ones whose best similarity strictly exceeds the threshold.
//
// All themes are embedded in a single batched call, current themes first,
// then past themes; the result is split back by the input lengths. When
// either list is empty the embedder is not called at all.
func (s *ThemeService) AnalyzeThemes(ctx context.Context, currentThemes, pastThemes []string) (*ThemeAnalysis, error) {
	analysis := &ThemeAnalysis{
		RecurringThemes:  []string{},
		SimilarityScores: map[string]ThemeMatch{},
	}
	if len(currentThemes) == 0 || len(pastThemes) == 0 {
		return analysis, nil
	}

	allThemes := make([]string, 0, len(currentThemes)+len(pastThemes))
	allThemes = append(allThemes, currentThemes...)
	allThemes = append(allThemes, pastThemes...)

	embeddings, err := s.embedder.Embed(ctx, allThemes)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(allThemes) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(allThemes))
	}

	currentEmbeddings := embeddings[:len(currentThemes)]
	pastEmbeddings := embeddings[len(currentThemes):]

	for i, currentTheme := range currentThemes {
		maxSimilarity := 0.0
		var mostSimilar *string

		for j := range pastThemes {
			similarity, err := utils.CosineSimilarity(currentEmbeddings[i], pastEmbeddings[j])
			if err != nil {
				s.logger.Warn("skipping theme pair with unusable embeddings",
					zap.String("current", currentTheme),
					zap.String("past", pastThemes[j]),
					zap.Error(err))
				continue
			}
			// Strict comparison: on a tie the earliest past theme wins.
			if similarity > maxSimilarity {
				maxSimilarity = similarity
				mostSimilar = &pastThemes[j]
			}
		}

		analysis.SimilarityScores[currentTheme] = ThemeMatch{
			MostSimilar: mostSimilar,
			Score:       round3(maxSimilarity),
		}
		if maxSimilarity > s.threshold {
			analysis.RecurringThemes = append(analysis.RecurringThemes, currentTheme)
		}
	}

	return analysis, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
