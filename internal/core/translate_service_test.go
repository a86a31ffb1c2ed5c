package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompletionProvider struct {
	response string
	err      error
	calls    int

	lastSystemPrompt string
	lastUserPrompt   string
}

func (f *fakeCompletionProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystemPrompt = systemPrompt
	f.lastUserPrompt = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const validRawText = "I can't stop worrying about everything at work."

func TestTranslateAttachesLengths(t *testing.T) {
	provider := &fakeCompletionProvider{
		response: `{"summary":"The writer feels worried about work.","themes":[{"theme":"Work stress","description":"Worry about work"}],"share_ready":"I have been feeling worried about work."}`,
	}
	service := NewTranslateService(provider, zap.NewNop())

	result, err := service.Translate(context.Background(), TranslationRequest{RawText: validRawText})
	require.NoError(t, err)

	assert.Equal(t, len(validRawText), result.OriginalLength)
	assert.Equal(t, len("The writer feels worried about work."), result.TranslatedLength)
	require.Len(t, result.Themes, 1)
	assert.Equal(t, 1, provider.calls)
}

func TestTranslateRejectsShortText(t *testing.T) {
	provider := &fakeCompletionProvider{}
	service := NewTranslateService(provider, zap.NewNop())

	// 9 characters: rejected before any provider call.
	_, err := service.Translate(context.Background(), TranslationRequest{RawText: "123456789"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, provider.calls)

	// 10 characters: accepted.
	provider.response = `{"summary":"s","themes":[],"share_ready":"r"}`
	_, err = service.Translate(context.Background(), TranslationRequest{RawText: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
}

func TestTranslateRejectsOverlongText(t *testing.T) {
	provider := &fakeCompletionProvider{}
	service := NewTranslateService(provider, zap.NewNop())

	_, err := service.Translate(context.Background(), TranslationRequest{
		RawText: strings.Repeat("a", MaxRawTextLength+1),
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, provider.calls)
}

func TestTranslatePromptCarriesToneAndText(t *testing.T) {
	provider := &fakeCompletionProvider{response: `{"summary":"s","themes":[],"share_ready":"r"}`}
	service := NewTranslateService(provider, zap.NewNop())

	_, err := service.Translate(context.Background(), TranslationRequest{RawText: validRawText, Tone: ToneClinical})
	require.NoError(t, err)

	assert.Contains(t, provider.lastUserPrompt, validRawText)
	assert.Contains(t, provider.lastUserPrompt, "clinical language")
	assert.Contains(t, provider.lastSystemPrompt, "STRICT RULES")
}

func TestTranslateUnknownToneFallsBackToNeutral(t *testing.T) {
	provider := &fakeCompletionProvider{response: `{"summary":"s","themes":[],"share_ready":"r"}`}
	service := NewTranslateService(provider, zap.NewNop())

	_, err := service.Translate(context.Background(), TranslationRequest{RawText: validRawText, Tone: "sarcastic"})
	require.NoError(t, err)
	assert.Contains(t, provider.lastUserPrompt, "balanced, neutral tone")
}

func TestTranslatePropagatesUpstreamError(t *testing.T) {
	provider := &fakeCompletionProvider{err: &UpstreamError{Status: 429}}
	service := NewTranslateService(provider, zap.NewNop())

	_, err := service.Translate(context.Background(), TranslationRequest{RawText: validRawText})
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 429, upstreamErr.Status)
	assert.Equal(t, 1, provider.calls, "no retries on upstream failure")
}

func TestTranslateFailsOnUnparsableOutput(t *testing.T) {
	provider := &fakeCompletionProvider{response: "I'm sorry, I can't do that."}
	service := NewTranslateService(provider, zap.NewNop())

	result, err := service.Translate(context.Background(), TranslationRequest{RawText: validRawText})
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Nil(t, result)
}
