package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTranslationFromJSONFence(t *testing.T) {
	raw := "```json\n{\"summary\":\"x\",\"themes\":[],\"share_ready\":\"y\"}\n```"

	result, err := ExtractTranslation(raw)
	require.NoError(t, err)
	assert.Equal(t, "x", result.Summary)
	assert.Empty(t, result.Themes)
	assert.Equal(t, "y", result.ShareReady)
}

func TestExtractTranslationFromPlainFence(t *testing.T) {
	raw := "Here you go:\n```\n{\"summary\":\"s\",\"themes\":[{\"theme\":\"Work\",\"description\":\"d\"}],\"share_ready\":\"r\"}\n```\nHope that helps!"

	result, err := ExtractTranslation(raw)
	require.NoError(t, err)
	assert.Equal(t, "s", result.Summary)
	require.Len(t, result.Themes, 1)
	assert.Equal(t, "Work", result.Themes[0].Theme)
	assert.Equal(t, "d", result.Themes[0].Description)
}

func TestExtractTranslationFromProse(t *testing.T) {
	raw := `Sure! Based on the text, here is the result: {"summary":"calm words","themes":[],"share_ready":"polished"} Let me know if you need anything else.`

	result, err := ExtractTranslation(raw)
	require.NoError(t, err)
	assert.Equal(t, "calm words", result.Summary)
	assert.Equal(t, "polished", result.ShareReady)
}

func TestExtractTranslationPreservesThemeOrder(t *testing.T) {
	raw := `{"summary":"s","themes":[{"theme":"A","description":"1"},{"theme":"B","description":"2"},{"theme":"C","description":"3"}],"share_ready":"r"}`

	result, err := ExtractTranslation(raw)
	require.NoError(t, err)
	require.Len(t, result.Themes, 3)
	assert.Equal(t, "A", result.Themes[0].Theme)
	assert.Equal(t, "B", result.Themes[1].Theme)
	assert.Equal(t, "C", result.Themes[2].Theme)
}

func TestExtractTranslationFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no JSON at all", raw: "I could not process that request."},
		{name: "unparsable JSON", raw: "{\"summary\": \"x\", }"},
		{name: "missing summary", raw: `{"themes":[],"share_ready":"y"}`},
		{name: "missing themes", raw: `{"summary":"x","share_ready":"y"}`},
		{name: "missing share_ready", raw: `{"summary":"x","themes":[]}`},
		{name: "themes not objects", raw: `{"summary":"x","themes":["just a string"],"share_ready":"y"}`},
		{name: "theme missing description", raw: `{"summary":"x","themes":[{"theme":"A"}],"share_ready":"y"}`},
		{name: "empty fence", raw: "```json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractTranslation(tt.raw)
			require.Error(t, err)
			assert.Nil(t, result, "a failed extraction must never return a partial result")

			var extractionErr *ExtractionError
			assert.ErrorAs(t, err, &extractionErr)
		})
	}
}
