package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StoredMeta is the store-side mirror of one live session, rewritten on
// every mutation so operators and reconnecting bridges can inspect session
// state without reaching into the process.
type StoredMeta struct {
	SessionUUID string    `json:"uuid"`
	Room        string    `json:"room"`
	Player      string    `json:"player"`
	Side        string    `json:"side"`
	Profile     string    `json:"profile"`
	Phase       string    `json:"phase"`
	MoveCount   int       `json:"move_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionStore persists session metadata and the latest rendered analysis
// text. Load methods report missing keys as (nil, nil) and ("", nil), never
// as errors.
type SessionStore interface {
	SaveMeta(ctx context.Context, roomHash, playerHash string, meta *StoredMeta, ttl time.Duration) error
	LoadMeta(ctx context.Context, roomHash, playerHash string) (*StoredMeta, error)
	DeleteMeta(ctx context.Context, roomHash, playerHash string) error
	SaveLatest(ctx context.Context, sessionUUID, text string, ttl time.Duration) error
	LoadLatest(ctx context.Context, sessionUUID string) (string, error)
	DeleteLatest(ctx context.Context, sessionUUID string) error
	Close() error
}

func metaKey(roomHash, playerHash string) string {
	return "adv:sess:" + roomHash + ":" + playerHash
}

func latestKey(sessionUUID string) string {
	return "adv:latest:" + sessionUUID
}

// MemoryStore is the in-process SessionStore used when no Redis URL is
// configured. Deadlines checked on read substitute for TTLs.
type MemoryStore struct {
	mu     sync.Mutex
	metas  map[string]memoryMeta
	latest map[string]memoryText
}

type memoryMeta struct {
	meta     StoredMeta
	expireAt time.Time
}

type memoryText struct {
	text     string
	expireAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		metas:  make(map[string]memoryMeta),
		latest: make(map[string]memoryText),
	}
}

func (s *MemoryStore) SaveMeta(ctx context.Context, roomHash, playerHash string, meta *StoredMeta, ttl time.Duration) error {
	if meta == nil {
		return fmt.Errorf("cannot save nil session meta")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metas[metaKey(roomHash, playerHash)] = memoryMeta{meta: *meta, expireAt: storeDeadline(ttl)}
	return nil
}

func (s *MemoryStore) LoadMeta(ctx context.Context, roomHash, playerHash string) (*StoredMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := metaKey(roomHash, playerHash)
	entry, ok := s.metas[key]
	if !ok {
		return nil, nil
	}
	if storeExpired(entry.expireAt) {
		delete(s.metas, key)
		return nil, nil
	}
	meta := entry.meta
	return &meta, nil
}

func (s *MemoryStore) DeleteMeta(ctx context.Context, roomHash, playerHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.metas, metaKey(roomHash, playerHash))
	return nil
}

func (s *MemoryStore) SaveLatest(ctx context.Context, sessionUUID, text string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[latestKey(sessionUUID)] = memoryText{text: text, expireAt: storeDeadline(ttl)}
	return nil
}

func (s *MemoryStore) LoadLatest(ctx context.Context, sessionUUID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := latestKey(sessionUUID)
	entry, ok := s.latest[key]
	if !ok {
		return "", nil
	}
	if storeExpired(entry.expireAt) {
		delete(s.latest, key)
		return "", nil
	}
	return entry.text, nil
}

func (s *MemoryStore) DeleteLatest(ctx context.Context, sessionUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, latestKey(sessionUUID))
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func storeDeadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func storeExpired(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}
