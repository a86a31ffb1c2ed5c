package core

import "context"

// ThemeItem is a single theme the model identified in the user's text.
type ThemeItem struct {
	Theme       string `json:"theme"`
	Description string `json:"description"`
}

type TranslationRequest struct {
	RawText string `json:"raw_text"`
	Tone    string `json:"tone"`
}

type TranslationResult struct {
	Summary          string      `json:"summary"`
	Themes           []ThemeItem `json:"themes"`
	ShareReady       string      `json:"share_ready"`
	OriginalLength   int         `json:"original_length"`
	TranslatedLength int         `json:"translated_length"`
}

// ThemeMatch records the past theme most similar to a current one.
// MostSimilar is nil when no past theme scored above zero.
type ThemeMatch struct {
	MostSimilar *string `json:"most_similar"`
	Score       float64 `json:"score"`
}

type ThemeAnalysis struct {
	RecurringThemes  []string              `json:"recurring_themes"`
	SimilarityScores map[string]ThemeMatch `json:"similarity_scores"`
}

// CompletionProvider is the strategy interface over any text/chat completion
// backend. Implementations resolve provider response shapes internally so
// callers always receive the model output as a plain string.
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder computes one vector per input text, order-preserving.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
