package clientstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is one tier of per-client key/value state.
type Storage interface {
	Get(ctx context.Context, clientID, key string) (string, bool, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID string, keys ...string) error
	// Clear drops every key of the client.
	Clear(ctx context.Context, clientID string) error
}

type bucket struct {
	values  map[string]string
	expires time.Time
}

// MemoryStorage keeps state in process. With a non-zero TTL a client's
// values expire TTL after its last write.
type MemoryStorage struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	buckets map[string]*bucket
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{ttl: ttl, now: time.Now, buckets: make(map[string]*bucket)}
}

// live returns the client's bucket, dropping it if expired. Caller holds mu.
func (s *MemoryStorage) live(clientID string) *bucket {
	b, ok := s.buckets[clientID]
	if !ok {
		return nil
	}
	if !b.expires.IsZero() && !s.now().Before(b.expires) {
		delete(s.buckets, clientID)
		return nil
	}
	return b
}

func (s *MemoryStorage) Get(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.live(clientID)
	if b == nil {
		return "", false, nil
	}
	v, ok := b.values[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.live(clientID)
	if b == nil {
		b = &bucket{values: make(map[string]string)}
		s.buckets[clientID] = b
	}
	b.values[key] = value
	if s.ttl > 0 {
		b.expires = s.now().Add(s.ttl)
	}
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, clientID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b := s.live(clientID); b != nil {
		for _, k := range keys {
			delete(b.values, k)
		}
	}
	return nil
}

func (s *MemoryStorage) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, clientID)
	return nil
}

// Sweep removes expired clients and returns how many were dropped.
func (s *MemoryStorage) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id := range s.buckets {
		if s.live(id) == nil {
			n++
		}
	}
	return n
}

// RedisStorage keeps each client's values in one hash.
//
// Keys:
//   - {prefix}:{clientID} (HASH)
type RedisStorage struct {
	cli    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// NewRedisClient dials lazily; Ping to check reachability.
func NewRedisClient(opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis: missing addr")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	}), nil
}

// NewRedisStorage stores under prefix. A zero ttl keeps values until cleared.
func NewRedisStorage(cli redis.Cmdable, prefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{cli: cli, prefix: prefix, ttl: ttl}
}

func (s *RedisStorage) key(clientID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, clientID)
}

func (s *RedisStorage) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	v, err := s.cli.HGet(ctx, s.key(clientID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, clientID, key, value string) error {
	k := s.key(clientID)
	_, err := s.cli.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k, key, value)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStorage) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.cli.HDel(ctx, s.key(clientID), keys...).Err()
}

func (s *RedisStorage) Clear(ctx context.Context, clientID string) error {
	return s.cli.Del(ctx, s.key(clientID)).Err()
}
