package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGeminiClient(&config.GeminiConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	})
}

func generationResponse(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestGeminiClientSummarize(t *testing.T) {
	var gotPath string
	var gotReq geminiRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		err := json.NewDecoder(r.Body).Decode(&gotReq)
		require.NoError(t, err)
		w.Write(generationResponse("Eine kurze Zusammenfassung."))
	})

	summary, err := client.Summarize(context.Background(), "Langer Dokumenttext.")
	require.NoError(t, err)
	assert.Equal(t, "Eine kurze Zusammenfassung.", summary)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Langer Dokumenttext.")
}

func TestGeminiClientTruncatesInput(t *testing.T) {
	var gotReq geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&gotReq)
		require.NoError(t, err)
		w.Write(generationResponse("ok"))
	})

	long := strings.Repeat("a", summarizeBudget+500)
	_, err := client.Summarize(context.Background(), long)
	require.NoError(t, err)

	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, strings.Repeat("a", summarizeBudget))
	assert.NotContains(t, prompt, strings.Repeat("a", summarizeBudget+1))
}

func TestGeminiClientTruncatesOnRuneBoundary(t *testing.T) {
	var gotReq geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&gotReq)
		require.NoError(t, err)
		w.Write(generationResponse("ok"))
	})

	// Multi-byte runes must never be cut in the middle at the budget
	// boundary.
	long := strings.Repeat("€", summarizeBudget+500)
	_, err := client.Summarize(context.Background(), long)
	require.NoError(t, err)

	prompt := gotReq.Contents[0].Parts[0].Text
	assert.NotContains(t, prompt, "�")
	assert.Contains(t, prompt, strings.Repeat("€", summarizeBudget))
	assert.NotContains(t, prompt, strings.Repeat("€", summarizeBudget+1))
}

func TestGeminiClientErrorStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Answer(context.Background(), "frage", "kontext")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiClientUnavailable(t *testing.T) {
	client := NewGeminiClient(&config.GeminiConfig{
		Endpoint: "http://localhost:1",
		Model:    "m",
		Timeout:  time.Second,
	})

	assert.False(t, client.Available())

	_, err := client.Translate(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}
