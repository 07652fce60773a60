package rulecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/franklinfx2/master-trader-sub000/rules"
)

// KeyPrefix namespaces report keys in shared backends.
const KeyPrefix = "rules:report:"

// DefaultTTL bounds how long Redis keeps a report nobody asks for again.
const DefaultTTL = 24 * time.Hour

// Store keeps reports by fingerprint. Get reports a miss as (zero, false, nil).
type Store interface {
	Get(ctx context.Context, key string) (rules.Report, bool, error)
	Set(ctx context.Context, key string, rep rules.Report) error
}

// MemoryStore is a process-local Store. Reports are copied on Set and Get so
// callers cannot edit a cached report.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]rules.Report
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]rules.Report)}
}

// Get returns a copy of the report stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) (rules.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[key]
	if !ok {
		return rules.Report{}, false, nil
	}
	return cloneReport(rep), true, nil
}

// Set stores a copy of rep under key.
func (s *MemoryStore) Set(_ context.Context, key string, rep rules.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[key] = cloneReport(rep)
	return nil
}

// cloneReport copies the bucket slices; Rule holds no pointers.
func cloneReport(rep rules.Report) rules.Report {
	rep.DoMore = append([]rules.Rule{}, rep.DoMore...)
	rep.StopDoing = append([]rules.Rule{}, rep.StopDoing...)
	rep.RequiredConditions = append([]rules.Rule{}, rep.RequiredConditions...)
	rep.NoTrade = append([]rules.Rule{}, rep.NoTrade...)
	return rep
}

// Len is the number of cached reports.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// RedisStore keeps reports as JSON under KeyPrefix+fingerprint.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore wraps client. ttl <= 0 means DefaultTTL.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get decodes the report stored under key. A missing key is a miss.
func (s *RedisStore) Get(ctx context.Context, key string) (rules.Report, bool, error) {
	data, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rules.Report{}, false, nil
		}
		return rules.Report{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rep rules.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return rules.Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return rep, true, nil
}

// Set stores rep as JSON with the store's TTL.
func (s *RedisStore) Set(ctx context.Context, key string, rep rules.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := s.client.Set(ctx, KeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
