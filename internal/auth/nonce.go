package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const nonceTTL = 5 * time.Minute

// NonceStore issues single-use login nonces per wallet address. Take removes
// the nonce so a signed message can never be replayed.
type NonceStore interface {
	Issue(ctx context.Context, address string) (string, error)
	Take(ctx context.Context, address string) (string, bool, error)
}

// NewNonceStore returns a redis-backed store, or an in-memory one when no
// redis client is configured (single-instance deployments and tests).
func NewNonceStore(client *redis.Client) NonceStore {
	if client == nil {
		return newMemoryNonceStore()
	}
	return &redisNonceStore{client: client}
}

type redisNonceStore struct {
	client *redis.Client
}

func (s *redisNonceStore) Issue(ctx context.Context, address string) (string, error) {
	nonce := uuid.New().String()
	err := s.client.Set(ctx, s.key(address), nonce, nonceTTL).Err()
	if err != nil {
		return "", err
	}
	return nonce, nil
}

func (s *redisNonceStore) Take(ctx context.Context, address string) (string, bool, error) {
	nonce, err := s.client.GetDel(ctx, s.key(address)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return nonce, true, nil
}

func (s *redisNonceStore) key(address string) string {
	return "auth:nonce:" + strings.ToLower(address)
}

type memoryNonceStore struct {
	mu      sync.Mutex
	entries map[string]memoryNonce
}

type memoryNonce struct {
	nonce     string
	expiresAt time.Time
}

func newMemoryNonceStore() *memoryNonceStore {
	return &memoryNonceStore{entries: make(map[string]memoryNonce)}
}

func (s *memoryNonceStore) Issue(ctx context.Context, address string) (string, error) {
	nonce := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[strings.ToLower(address)] = memoryNonce{
		nonce:     nonce,
		expiresAt: time.Now().Add(nonceTTL),
	}
	return nonce, nil
}

func (s *memoryNonceStore) Take(ctx context.Context, address string) (string, bool, error) {
	key := strings.ToLower(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, key)

	if time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.nonce, true, nil
}
