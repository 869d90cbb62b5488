package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore persists the stub's orders. The memory implementation is the
// default; the redis one survives stub restarts during longer dev sessions.
type OrderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]domain.Order)}
}

func (s *MemoryStore) Put(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = *o
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &o, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Order, 0, len(s.orders))
	for id := range s.orders {
		o := s.orders[id]
		out = append(out, &o)
	}
	return out, nil
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

const orderIndexKey = "orders"

func orderKey(id string) string {
	return fmt.Sprintf("order:%s", id)
}

func (s *RedisStore) Put(ctx context.Context, o *domain.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}
	if err := s.client.Set(ctx, orderKey(o.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if err := s.client.SAdd(ctx, orderIndexKey, o.ID).Err(); err != nil {
		return fmt.Errorf("redis index failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	data, err := s.client.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var o domain.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return &o, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*domain.Order, error) {
	ids, err := s.client.SMembers(ctx, orderIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis index read failed: %w", err)
	}
	out := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := s.Get(ctx, id)
		if errors.Is(err, ErrOrderNotFound) {
			continue // index entry outlived the order key
		}
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
