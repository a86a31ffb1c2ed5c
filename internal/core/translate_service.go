package core

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	MinRawTextLength = 10
	MaxRawTextLength = 5000

	ToneNeutral  = "neutral"
	TonePersonal = "personal"
	ToneClinical = "clinical"
)

// systemPrompt constrains the model to language translation only. The rules
// are deliberate product policy: this service must never drift into advice,
// diagnosis, or crisis intervention.
const systemPrompt = `You are a language assistant that helps people express their thoughts more clearly. Your ONLY purpose is to rewrite emotional or unstructured text into clear, neutral, respectful language.

STRICT RULES - YOU MUST FOLLOW THESE:
1. DO NOT give advice or suggestions
2. DO NOT diagnose or label mental health conditions
3. DO NOT assume intent or read between the lines
4. DO NOT act as a therapist, counselor, or medical professional
5. DO NOT use crisis intervention language
6. DO NOT add information that wasn't in the original text
7. ONLY rephrase and summarize what the user has written

Your output must be in valid JSON format with exactly this structure:
{
    "summary": "A clear, calm 2-4 sentence summary of what the person expressed",
    "themes": [
        {"theme": "Theme Name", "description": "Brief neutral description"},
        {"theme": "Theme Name", "description": "Brief neutral description"}
    ],
    "share_ready": "A polished, professional version suitable for sharing with a healthcare provider, therapist, or trusted person"
}

Remember: You are translating language, not analyzing minds. Keep themes factual and based only on what was explicitly stated.`

// toneInstruction returns the prompt suffix for the requested tone.
// Unknown tones fall back to the neutral variant.
func toneInstruction(tone string) string {
	switch tone {
	case TonePersonal:
		return "\nUse first-person language and a warmer, more personal tone while remaining clear."
	case ToneClinical:
		return "\nUse precise, clinical language suitable for medical contexts."
	default:
		return "\nMaintain a balanced, neutral tone."
	}
}

type TranslateService struct {
	provider CompletionProvider
	logger   *zap.Logger
}

func NewTranslateService(provider CompletionProvider, logger *zap.Logger) *TranslateService {
	return &TranslateService{provider: provider, logger: logger}
}

// Translate rewrites raw emotional text into clear, neutral language.
// It makes exactly one provider call, no retries: a slow or failing provider
// surfaces as UpstreamError, unparseable output as ExtractionError.
func (s *TranslateService) Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error) {
	originalLength := utf8.RuneCountInString(req.RawText)
	if originalLength < MinRawTextLength {
		return nil, NewValidationError("raw_text must be at least %d characters", MinRawTextLength)
	}
	if originalLength > MaxRawTextLength {
		return nil, NewValidationError("raw_text must be at most %d characters", MaxRawTextLength)
	}

	userPrompt := buildUserPrompt(req.RawText, req.Tone)

	content, err := s.provider.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	result, err := ExtractTranslation(content)
	if err != nil {
		s.logger.Warn("model output failed extraction", zap.Error(err))
		return nil, err
	}

	result.OriginalLength = originalLength
	result.TranslatedLength = utf8.RuneCountInString(result.Summary)
	return result, nil
}

func buildUserPrompt(rawText, tone string) string {
	return fmt.Sprintf(`Please rewrite the following text into clear, neutral language.
%s

Original text:
"""%s"""

Respond ONLY with valid JSON matching this exact structure:
{
    "summary": "A clear, calm 2-4 sentence summary",
    "themes": [
        {"theme": "Theme Name", "description": "Brief description"},
        {"theme": "Theme Name", "description": "Brief description"}
    ],
    "share_ready": "A polished version suitable for sharing"
}

JSON Response:`, toneInstruction(tone), rawText)
}
