package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotentResponse is the stored outcome of a request made with an Idempotency-Key
type IdempotentResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers responses per key for a bounded time.
// Get returns (nil, nil) when nothing is stored for key.
// Save keeps the first response stored for key and ignores later ones.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotentResponse, error)
	Save(ctx context.Context, key string, resp *IdempotentResponse, ttl time.Duration) error
}

// redisIdempotencyStore shares stored responses across service instances
type redisIdempotencyStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisIdempotencyStore(client *redis.Client, log *logrus.Logger) IdempotencyStore {
	return &redisIdempotencyStore{
		client: client,
		log:    log,
	}
}

func (s *redisIdempotencyStore) Get(ctx context.Context, key string) (*IdempotentResponse, error) {
	data, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}

	var resp IdempotentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.log.Warnf("Failed to decode idempotent response for key %s: %+v", key, err)
		return nil, fmt.Errorf("decode idempotent response: %w", err)
	}
	return &resp, nil
}

func (s *redisIdempotencyStore) Save(ctx context.Context, key string, resp *IdempotentResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotent response: %w", err)
	}

	stored, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, data, ttl).Result()
	if err != nil {
		return fmt.Errorf("save idempotency key: %w", err)
	}
	if !stored {
		s.log.Debugf("Idempotency key %s already stored, keeping first response", key)
	}
	return nil
}

type memoryIdempotencyEntry struct {
	resp      IdempotentResponse
	expiresAt time.Time
}

// memoryIdempotencyStore is the single-instance fallback when Redis is not configured
type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]memoryIdempotencyEntry
	now     func() time.Time
}

func NewMemoryIdempotencyStore() IdempotencyStore {
	return &memoryIdempotencyStore{
		entries: make(map[string]memoryIdempotencyEntry),
		now:     time.Now,
	}
}

func (s *memoryIdempotencyStore) Get(ctx context.Context, key string) (*IdempotentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}

	resp := entry.resp
	resp.Body = append([]byte(nil), entry.resp.Body...)
	return &resp, nil
}

func (s *memoryIdempotencyStore) Save(ctx context.Context, key string, resp *IdempotentResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	if entry, ok := s.entries[key]; ok && now.Before(entry.expiresAt) {
		return nil
	}

	stored := *resp
	stored.Body = append([]byte(nil), resp.Body...)
	s.entries[key] = memoryIdempotencyEntry{
		resp:      stored,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// evictExpired must be called with mu held
func (s *memoryIdempotencyStore) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
