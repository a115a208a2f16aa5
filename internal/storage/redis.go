package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/kuntur-detector/case-service/internal/model"
)

// RedisStore keeps the whole case collection under a single key, the
// server-side twin of the frontend's localStorage slot.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(addr, key string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
	}
}

// Load fetches the document. An absent key or corrupt payload degrades to an
// empty collection; only a failed connection is surfaced.
func (s *RedisStore) Load(ctx context.Context) ([]model.Case, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Case{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var cases []model.Case
	if err := json.Unmarshal(data, &cases); err != nil {
		log.Printf("storage: corrupt document at key %s: %v (starting empty)", s.key, err)
		return []model.Case{}, nil
	}
	return cases, nil
}

func (s *RedisStore) Save(ctx context.Context, cases []model.Case) error {
	if cases == nil {
		cases = []model.Case{}
	}
	data, err := json.Marshal(cases)
	if err != nil {
		return fmt.Errorf("marshal cases: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
