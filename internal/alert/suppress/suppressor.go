package suppress

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Suppressor remembers which candidates were already alerted so overlapping
// scan runs do not re-dispatch the same alert inside the TTL window. Lookups
// fail open: a broken cache never blocks an alert.
type Suppressor interface {
	AlreadyAlerted(ruleType, candidateKey string) bool
	MarkAlerted(ruleType, candidateKey string)
}

const keyPrefix = "hq:alerted:"

type redisSuppressor struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSuppressor creates a Redis-backed suppressor with the given marker TTL
func NewRedisSuppressor(client *redis.Client, ttl time.Duration) Suppressor {
	return &redisSuppressor{client: client, ttl: ttl}
}

func (s *redisSuppressor) AlreadyAlerted(ruleType, candidateKey string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := s.client.Exists(ctx, keyPrefix+ruleType+":"+candidateKey).Result()
	if err != nil {
		log.Printf("[Suppress] lookup failed: %v", err)
		return false
	}
	return n > 0
}

func (s *redisSuppressor) MarkAlerted(ruleType, candidateKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, keyPrefix+ruleType+":"+candidateKey, 1, s.ttl).Err(); err != nil {
		log.Printf("[Suppress] mark failed: %v", err)
	}
}

// memorySuppressor is the in-process fallback when Redis is not configured
type memorySuppressor struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

// NewMemorySuppressor creates an in-memory TTL suppressor
func NewMemorySuppressor(ttl time.Duration) Suppressor {
	return &memorySuppressor{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

func (s *memorySuppressor) AlreadyAlerted(ruleType, candidateKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ruleType + ":" + candidateKey
	expires, ok := s.entries[key]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(s.entries, key)
		return false
	}
	return true
}

func (s *memorySuppressor) MarkAlerted(ruleType, candidateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Evict stale markers opportunistically to keep the map bounded
	now := time.Now()
	for k, expires := range s.entries {
		if now.After(expires) {
			delete(s.entries, k)
		}
	}
	s.entries[ruleType+":"+candidateKey] = now.Add(s.ttl)
}
