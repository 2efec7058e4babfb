package config

import (
	"sync"
)

var (
	redisOnce   sync.Once
	redisConfig *RedisConfig
)

type RedisConfig struct {
	Addr string
	DB   int
}

func GetRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		loadEnv()

		redisConfig = &RedisConfig{
			Addr: getenv("REDIS_ADDR", "localhost:6379"),
			DB:   getenvInt("REDIS_DB", 0),
		}
	})
	return redisConfig
}
