// Package genai adapts the remote text-generation service. Every call is
// a single attempt with a bounded timeout; callers treat failures as
// degraded mode, never as fatal.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/canusa-hub/knowledge-nexus/config"
)

// ErrUnavailable is returned when no API key is configured. The backend
// then runs in "no AI" mode.
var ErrUnavailable = errors.New("text generation unavailable")

// Character budgets applied before submission to bound remote-call cost.
const (
	summarizeBudget = 4000
	translateBudget = 6000
	answerBudget    = 6000
)

// TextGenerator is the remote text-generation capability. Implementations
// must be safe for concurrent use.
type TextGenerator interface {
	// Summarize produces a short German summary of the text.
	Summarize(ctx context.Context, text string) (string, error)
	// Translate translates the text into German, keeping its structure.
	Translate(ctx context.Context, text string) (string, error)
	// Answer responds to the query using only the provided context block.
	Answer(ctx context.Context, query, contextBlock string) (string, error)
	// Available reports whether the remote service is configured.
	Available() bool
}

// geminiRequest is the generateContent payload.
type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Message string `json:"message"`
}

type GeminiClient struct {
	endpoint   string
	model      string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewGeminiClient builds a client from the given configuration, falling
// back to the environment when cfg is nil. With no API key the client
// reports unavailable and every call errors.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	if cfg == nil {
		cfg = config.GetGeminiConfig()
	}
	return &GeminiClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *GeminiClient) Available() bool {
	return c.apiKey != ""
}

func (c *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(summarizePrompt, truncate(text, summarizeBudget))
	return c.generate(ctx, summarizeSystem, prompt)
}

func (c *GeminiClient) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(translatePrompt, truncate(text, translateBudget))
	return c.generate(ctx, translateSystem, prompt)
}

func (c *GeminiClient) Answer(ctx context.Context, query, contextBlock string) (string, error) {
	prompt := fmt.Sprintf(answerPrompt, truncate(contextBlock, answerBudget), query)
	return c.generate(ctx, answerSystem, prompt)
}

func (c *GeminiClient) generate(ctx context.Context, system, prompt string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	reqData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("generation error: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty generation response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	// Cut on a rune boundary so umlauts at the edge stay valid UTF-8.
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget])
}
