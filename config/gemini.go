package config

import (
	"os"
	"sync"
	"time"
)

var (
	geminiOnce   sync.Once
	geminiConfig *GeminiConfig
)

// GeminiConfig configures the text-generation service. An empty APIKey
// disables AI features; summaries come back empty and search answers fall
// back to static text.
type GeminiConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

func GetGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		loadEnv()

		geminiConfig = &GeminiConfig{
			APIKey:   os.Getenv("GEMINI_API_KEY"),
			Endpoint: getenv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
			Model:    getenv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:  time.Duration(getenvInt("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
		}
	})
	return geminiConfig
}
