package core

import (
	"encoding/json"
	"strings"
)

// translationPayload mirrors TranslationResult with pointer fields so that
// absent keys can be told apart from present-but-empty values.
type translationPayload struct {
	Summary    *string         `json:"summary"`
	Themes     *[]themePayload `json:"themes"`
	ShareReady *string         `json:"share_ready"`
}

type themePayload struct {
	Theme       *string `json:"theme"`
	Description *string `json:"description"`
}

// ExtractTranslation parses raw model output into a TranslationResult.
// Models routinely wrap the JSON in markdown fences or surrounding prose, so
// extraction runs in order of precedence:
//
//  1. content of a ```json fenced block
//  2. content of the first plain ``` fenced block
//  3. the full text, sliced between the first '{' and the last '}'
//
// The two length fields are left zero; the caller attaches them. Missing
// required keys or malformed themes fail with ExtractionError rather than
// producing a partially-filled result.
func ExtractTranslation(raw string) (*TranslationResult, error) {
	content := raw
	if idx := strings.Index(content, "```json"); idx != -1 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx != -1 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	}

	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, &ExtractionError{Reason: "no JSON object found in model output"}
		}
		content = content[start : end+1]
	}

	var payload translationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, &ExtractionError{Reason: "model output is not valid JSON", Err: err}
	}

	if payload.Summary == nil {
		return nil, &ExtractionError{Reason: "missing required key \"summary\""}
	}
	if payload.ShareReady == nil {
		return nil, &ExtractionError{Reason: "missing required key \"share_ready\""}
	}
	if payload.Themes == nil {
		return nil, &ExtractionError{Reason: "missing required key \"themes\""}
	}

	themes := make([]ThemeItem, 0, len(*payload.Themes))
	for _, t := range *payload.Themes {
		if t.Theme == nil || t.Description == nil {
			return nil, &ExtractionError{Reason: "theme entries must carry \"theme\" and \"description\""}
		}
		themes = append(themes, ThemeItem{Theme: *t.Theme, Description: *t.Description})
	}

	return &TranslationResult{
		Summary:    *payload.Summary,
		Themes:     themes,
		ShareReady: *payload.ShareReady,
	}, nil
}
