package cache

import (
	"context"
	"fmt"
	"time"

	"appointment-scheduling-service/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisPingTimeout = 5 * time.Second

func NewRedisClient(cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infof("Successfully connected to Redis at %s", client.Options().Addr)

	return client, nil
}
