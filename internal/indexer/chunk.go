package indexer

import "strings"

// Chunking parameters for article content.
const (
	chunkSize    = 1000
	chunkOverlap = 100
)

// ChunkText splits text into overlapping windows of chunkSize runes.
// Consecutive chunks share chunkOverlap runes so that sentences cut at a
// boundary stay searchable. Whitespace-only windows are dropped.
func ChunkText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := chunkSize - chunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[start:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
