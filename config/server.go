package config

import (
	"sync"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig
)

type ServerConfig struct {
	Addr           string
	StorageBackend string // "minio" or "s3"
	TargetLanguage string
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		loadEnv()

		serverConfig = &ServerConfig{
			Addr:           getenv("SERVER_ADDR", ":8080"),
			StorageBackend: getenv("STORAGE_BACKEND", "minio"),
			TargetLanguage: getenv("TARGET_LANGUAGE", "de"),
		}
	})
	return serverConfig
}
