// Package llm talks to OpenAI-compatible inference services over HTTP.
// It hides endpoint paths, bearer-token auth, and the difference between
// text-completion and chat-completion response shapes from the rest of the
// application.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sayitbetter/backend/internal/config"
	"github.com/sayitbetter/backend/internal/core"
)

const (
	StyleChat = "chat"
	StyleText = "text"

	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

type Client struct {
	baseURL    string
	token      string
	model      string
	style      string
	httpClient *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	style := cfg.Style
	if style != StyleText {
		style = StyleChat
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		token:      cfg.Token,
		model:      cfg.Model,
		style:      style,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete runs a single completion request and returns the model output as
// a plain string regardless of whether the backend speaks the text-style or
// chat-style response shape.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.style == StyleText {
		return c.completeText(ctx, systemPrompt, userPrompt)
	}
	return c.completeChat(ctx, systemPrompt, userPrompt)
}

func (c *Client) completeChat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		"temperature": completionTemperature,
		"max_tokens":  completionMaxTokens,
	}

	var parsed struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/v1/chat/completions", reqBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", &core.UpstreamError{Reason: "inference provider returned no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) completeText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := map[string]any{
		"model":       c.model,
		"prompt":      systemPrompt + "\n\n" + userPrompt,
		"temperature": completionTemperature,
		"max_tokens":  completionMaxTokens,
	}

	var parsed struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/v1/completions", reqBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", &core.UpstreamError{Reason: "inference provider returned no choices"}
	}
	return parsed.Choices[0].Text, nil
}

// Embed generates one vector per input text using the OpenAI-compatible
// /v1/embeddings endpoint. The response order matches the input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("llm: no texts provided")
	}

	reqBody := map[string]any{
		"model": c.model,
		"input": texts,
	}

	var parsed struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/v1/embeddings", reqBody, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("llm: embeddings response has %d vectors for %d texts", len(parsed.Data), len(texts))
	}

	out := make([][]float64, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}
	return out, nil
}

// postJSON sends a POST request with bearer-token auth and decodes the JSON
// response into out. Provider failures come back as *core.UpstreamError so
// callers can map them to 502/504 without inspecting transport details.
func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &core.UpstreamError{Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &core.UpstreamError{Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("llm: decode response: %w", err)
		}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
