package config

import (
	"blogapp/global"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

func initRedis() {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		logrus.Info("redis addr empty, like counts will be read from the database")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})

	if _, err := client.Ping().Result(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}

	global.RedisDB = client
	logrus.WithField("addr", addr).Info("Redis initialized")
}
