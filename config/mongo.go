package config

import (
	"sync"
)

var (
	mongoOnce   sync.Once
	mongoConfig *MongoConfig
)

type MongoConfig struct {
	URI      string
	Database string
}

func GetMongoConfig() *MongoConfig {
	mongoOnce.Do(func() {
		loadEnv()

		mongoConfig = &MongoConfig{
			URI:      getenv("MONGO_URL", "mongodb://localhost:27017"),
			Database: getenv("DB_NAME", "knowledge_nexus"),
		}
	})
	return mongoConfig
}
