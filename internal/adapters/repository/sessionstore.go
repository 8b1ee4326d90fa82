package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/metrics"
)

// Default store configuration.
const (
	defaultShardCount = 8
)

// SessionStore implements Store with a sharded in-memory map. Session
// results are point lookups by id; keys hash across shards to keep lock
// contention low under concurrent worker writes.
type SessionStore struct {
	shards []shard
}

type shard struct {
	mu       sync.RWMutex
	sessions map[string]types.SessionResult
}

// NewSessionStore creates an in-memory store with configuration options.
func NewSessionStore(opts ...Option) *SessionStore {
	cfg := storeConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &SessionStore{shards: make([]shard, cfg.shardCount)}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]types.SessionResult)
	}
	return s
}

func (s *SessionStore) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Put stores or replaces the result for res.SessionID.
func (s *SessionStore) Put(ctx context.Context, res types.SessionResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store put canceled: %w", err)
	}
	if res.SessionID == "" {
		return ErrEmptySessionID
	}

	sh := s.shardFor(res.SessionID)
	sh.mu.Lock()
	sh.sessions[res.SessionID] = res
	sh.mu.Unlock()

	metrics.UpdateStoredSessions(s.Count(ctx))
	return nil
}

// Get returns the stored result for id.
func (s *SessionStore) Get(ctx context.Context, id string) (types.SessionResult, error) {
	if err := ctx.Err(); err != nil {
		return types.SessionResult{}, fmt.Errorf("store get canceled: %w", err)
	}

	sh := s.shardFor(id)
	sh.mu.RLock()
	res, ok := sh.sessions[id]
	sh.mu.RUnlock()

	if !ok {
		return types.SessionResult{}, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return res, nil
}

// Count returns the number of stored sessions across all shards.
func (s *SessionStore) Count(_ context.Context) int {
	total := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		total += len(s.shards[i].sessions)
		s.shards[i].mu.RUnlock()
	}
	return total
}
