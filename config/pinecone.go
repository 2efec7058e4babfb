package config

import (
	"os"
	"sync"
)

var (
	pineconeOnce   sync.Once
	pineconeConfig *PineconeConfig
)

// PineconeConfig configures the vector index. An empty APIKey disables
// vector search entirely; the backend then runs keyword-only.
type PineconeConfig struct {
	APIKey    string
	IndexHost string
	IndexName string
	Namespace string
	Dimension int
}

func GetPineconeConfig() *PineconeConfig {
	pineconeOnce.Do(func() {
		loadEnv()

		pineconeConfig = &PineconeConfig{
			APIKey:    os.Getenv("PINECONE_API_KEY"),
			IndexHost: os.Getenv("PINECONE_INDEX_HOST"),
			IndexName: getenv("PINECONE_INDEX_NAME", "knowledge-nexus"),
			Namespace: getenv("PINECONE_NAMESPACE", "articles"),
			Dimension: getenvInt("PINECONE_DIMENSION", 1536),
		}
	})
	return pineconeConfig
}
