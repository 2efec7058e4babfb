package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/canusa-hub/knowledge-nexus/config"
)

var _ Index = (*PineconeIndex)(nil)

// PineconeIndex talks to a Pinecone serverless index over its REST API.
type PineconeIndex struct {
	host       string
	apiKey     string
	namespace  string
	httpClient *http.Client
}

// NewPineconeIndex builds an index client from the given configuration,
// falling back to the environment when cfg is nil.
func NewPineconeIndex(cfg *config.PineconeConfig) *PineconeIndex {
	if cfg == nil {
		cfg = config.GetPineconeConfig()
	}
	return &PineconeIndex{
		host:      cfg.IndexHost,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type upsertRequest struct {
	Vectors   []Vector `json:"vectors"`
	Namespace string   `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []Match `json:"matches"`
}

type deleteRequest struct {
	IDs       []string `json:"ids"`
	Namespace string   `json:"namespace,omitempty"`
}

func (p *PineconeIndex) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	req := upsertRequest{Vectors: vectors, Namespace: p.namespace}
	return p.post(ctx, "/vectors/upsert", req, nil)
}

func (p *PineconeIndex) Query(ctx context.Context, values []float32, topK int) ([]Match, error) {
	req := queryRequest{
		Vector:          values,
		TopK:            topK,
		Namespace:       p.namespace,
		IncludeMetadata: true,
	}
	var resp queryResponse
	if err := p.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (p *PineconeIndex) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	req := deleteRequest{IDs: ids, Namespace: p.namespace}
	return p.post(ctx, "/vectors/delete", req, nil)
}

func (p *PineconeIndex) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
