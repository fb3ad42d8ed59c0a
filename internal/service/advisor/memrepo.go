package advisor

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
)

// memrepo is the in-memory Repository used when no database is configured.
type memrepo struct {
	mu sync.RWMutex

	nextID int64

	byID    map[int64]*domain.AdvisorSession
	byUser  map[string][]*domain.AdvisorSession // playerHash -> sessions, oldest first
	byIndex map[string]*domain.AdvisorSession   // sessionUUID|playerHash -> session
}

func NewMemoryRepository() Repository {
	return &memrepo{
		byID:    make(map[int64]*domain.AdvisorSession),
		byUser:  make(map[string][]*domain.AdvisorSession),
		byIndex: make(map[string]*domain.AdvisorSession),
	}
}

func (m *memrepo) InsertSession(ctx context.Context, session *domain.AdvisorSession) (int64, error) {
	if session == nil {
		return 0, ErrDuplicateSession
	}

	key := archiveKey(session.SessionUUID, session.PlayerHash)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byIndex[key]; exists {
		return 0, ErrDuplicateSession
	}

	m.nextID++
	stored := *session
	stored.ID = m.nextID
	stored.Moves = append([]string(nil), session.Moves...)

	m.byID[stored.ID] = &stored
	m.byIndex[key] = &stored
	m.byUser[session.PlayerHash] = append(m.byUser[session.PlayerHash], &stored)

	return stored.ID, nil
}

func (m *memrepo) GetRecentSessions(ctx context.Context, playerHash string, limit int) ([]*domain.AdvisorSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.byUser[playerHash]
	if len(list) == 0 {
		return []*domain.AdvisorSession{}, nil
	}
	items := append([]*domain.AdvisorSession(nil), list...)
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]*domain.AdvisorSession, len(items))
	for i, item := range items {
		copied := *item
		copied.Moves = append([]string(nil), item.Moves...)
		out[i] = &copied
	}
	return out, nil
}

func (m *memrepo) GetSessionByUUID(ctx context.Context, sessionUUID string, playerHash string) (*domain.AdvisorSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.byIndex[archiveKey(sessionUUID, playerHash)]; ok && s != nil {
		copied := *s
		copied.Moves = append([]string(nil), s.Moves...)
		return &copied, nil
	}
	return nil, nil
}

func archiveKey(sessionUUID, playerHash string) string {
	return strings.TrimSpace(sessionUUID) + "|" + strings.TrimSpace(playerHash)
}
