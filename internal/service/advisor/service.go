package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
	"github.com/park285/Xiangqi-Advisor-bot/internal/xiangqi"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound   = errors.New("advisor session not found")
	ErrSessionInProgress = errors.New("advisor session already in progress")
	ErrStaleSnapshot     = errors.New("advisor snapshot out of order")
	ErrProfileNotFound   = errors.New("advisor profile not found")
	ErrRecordNotFound    = errors.New("advisor session record not found")
	ErrRoomNotAllowed    = errors.New("advisor room not allowed")
)

const maxHistoryLimit = 50

type SessionMeta struct {
	SessionID string
	Room      string
	Sender    string
}

type sessionIdentity struct {
	SessionID  string
	RoomHash   string
	PlayerHash string
}

type Config struct {
	DefaultProfile     string
	SessionTTL         time.Duration
	HistoryLimit       int
	AnalysisHistory    int
	MaxRecommendations int
	AllowedRooms       []string
}

// Service owns the live advisor sessions. Assistant state (detector history,
// analysis ring) is process-local; the SessionStore holds a metadata mirror
// plus the latest rendered analysis, and the Repository archives finished
// sessions.
type Service struct {
	store        SessionStore
	repo         Repository
	cfg          Config
	allowedRooms map[string]struct{}
	logger       *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// liveSession serializes all access to one assistant. Snapshot processing,
// reads and profile switches for the same (room, player) take l.mu; distinct
// sessions proceed independently.
type liveSession struct {
	mu sync.Mutex

	uuid      string
	identity  sessionIdentity
	room      string
	player    string
	profile   string
	assistant *xiangqi.Assistant
	lastSeq   int64
	analyses  int
	startedAt time.Time
	updatedAt time.Time
}

type SessionState struct {
	SessionUUID string
	RoomHash    string
	PlayerHash  string
	Room        string
	Player      string
	Side        xiangqi.Side
	Profile     string
	Phase       xiangqi.GamePhase
	MoveCount   int
	Analyses    int
	StartedAt   time.Time
	UpdatedAt   time.Time
}

type SnapshotResult struct {
	State    *SessionState
	Analysis *xiangqi.GameAnalysis
	Seq      int64
}

func NewService(store SessionStore, repo Repository, cfg Config, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("advisor repository is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be greater than 0")
	}
	defaultProfile := strings.ToLower(strings.TrimSpace(cfg.DefaultProfile))
	if defaultProfile == "" {
		defaultProfile = "balanced"
	}
	if _, err := xiangqi.GetProfile(defaultProfile); err != nil {
		return nil, fmt.Errorf("default profile validation failed: %w", err)
	}
	if cfg.HistoryLimit <= 0 || cfg.HistoryLimit > maxHistoryLimit {
		cfg.HistoryLimit = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	allowedRooms := make(map[string]struct{})
	for _, room := range cfg.AllowedRooms {
		normalized := strings.ToLower(strings.TrimSpace(room))
		if normalized == "" {
			continue
		}
		allowedRooms[normalized] = struct{}{}
	}

	return &Service{
		store: store,
		repo:  repo,
		cfg: Config{
			DefaultProfile:     defaultProfile,
			SessionTTL:         cfg.SessionTTL,
			HistoryLimit:       cfg.HistoryLimit,
			AnalysisHistory:    cfg.AnalysisHistory,
			MaxRecommendations: cfg.MaxRecommendations,
			AllowedRooms:       append([]string(nil), cfg.AllowedRooms...),
		},
		allowedRooms: allowedRooms,
		logger:       logger,
		sessions:     make(map[string]*liveSession),
	}, nil
}

// StartSession opens a new advisor session for (room, player). If one is
// already live its state is returned together with ErrSessionInProgress.
func (s *Service) StartSession(ctx context.Context, meta SessionMeta, side string, profileName string) (*SessionState, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)

	playerSide, err := xiangqi.ParseSide(side)
	if err != nil {
		return nil, fmt.Errorf("side validation failed: %w", err)
	}

	chosen := strings.ToLower(strings.TrimSpace(profileName))
	if chosen == "" {
		chosen = s.cfg.DefaultProfile
	}
	profile, err := xiangqi.GetProfile(chosen)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, chosen)
	}
	if s.cfg.MaxRecommendations > 0 {
		profile.MaxRecommendations = s.cfg.MaxRecommendations
	}

	now := time.Now()
	assistant := xiangqi.NewAssistant(playerSide, profile)
	if s.cfg.AnalysisHistory > 0 {
		assistant.SetHistoryLimit(s.cfg.AnalysisHistory)
	}

	live := &liveSession{
		uuid:      uuid.NewString(),
		identity:  identity,
		room:      strings.TrimSpace(meta.Room),
		player:    strings.TrimSpace(meta.Sender),
		profile:   profile.Name,
		assistant: assistant,
		startedAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	if existing, ok := s.sessions[identity.SessionID]; ok {
		s.mu.Unlock()
		existing.mu.Lock()
		state := existing.stateLocked()
		existing.mu.Unlock()
		return state, ErrSessionInProgress
	}
	s.sessions[identity.SessionID] = live
	s.mu.Unlock()

	live.mu.Lock()
	state := live.stateLocked()
	stored := live.metaLocked()
	live.mu.Unlock()

	s.mirrorMeta(ctx, identity, stored)

	s.logger.Info("advisor session started",
		zap.String("session_uuid", live.uuid),
		zap.String("room_hash", identity.RoomHash),
		zap.String("side", state.Side.String()),
		zap.String("profile", state.Profile),
	)
	return state, nil
}

// Snapshot feeds one vision frame into the session's assistant. Frames carry
// a sequence number; a frame at or behind the last accepted one is dropped
// with ErrStaleSnapshot so websocket replays cannot double-count moves.
func (s *Service) Snapshot(ctx context.Context, meta SessionMeta, seq int64, cells [][]string) (*SnapshotResult, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return nil, ErrSessionNotFound
	}

	live.mu.Lock()
	if seq > 0 && seq <= live.lastSeq {
		last := live.lastSeq
		live.mu.Unlock()
		return nil, fmt.Errorf("%w: seq %d not after %d", ErrStaleSnapshot, seq, last)
	}
	analysis, err := live.assistant.UpdateBoardState(cells)
	if err != nil {
		live.mu.Unlock()
		return nil, err
	}
	if seq > 0 {
		live.lastSeq = seq
	}
	live.analyses++
	live.updatedAt = time.Now()
	state := live.stateLocked()
	stored := live.metaLocked()
	live.mu.Unlock()

	s.mirrorMeta(ctx, identity, stored)

	if mv := analysis.OpponentLastMove; mv != nil {
		s.logger.Info("advisor move inferred",
			zap.String("session_uuid", state.SessionUUID),
			zap.Int64("seq", seq),
			zap.String("move", xiangqi.FormatMove(*mv)),
			zap.Int("move_count", state.MoveCount),
			zap.String("phase", string(state.Phase)),
		)
	}

	return &SnapshotResult{State: state, Analysis: analysis, Seq: seq}, nil
}

// Status reports the live session state. After a process restart only the
// store mirror may remain; in that case the mirrored state is returned
// together with ErrSessionNotFound so callers can tell the session is gone.
func (s *Service) Status(ctx context.Context, meta SessionMeta) (*SessionState, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		stored, err := s.store.LoadMeta(ctx, identity.RoomHash, identity.PlayerHash)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, ErrSessionNotFound
		}
		side, _ := xiangqi.ParseSide(stored.Side)
		return &SessionState{
			SessionUUID: stored.SessionUUID,
			RoomHash:    identity.RoomHash,
			PlayerHash:  identity.PlayerHash,
			Room:        stored.Room,
			Player:      stored.Player,
			Side:        side,
			Profile:     stored.Profile,
			Phase:       xiangqi.GamePhase(stored.Phase),
			MoveCount:   stored.MoveCount,
			UpdatedAt:   stored.UpdatedAt,
		}, ErrSessionNotFound
	}

	live.mu.Lock()
	state := live.stateLocked()
	live.mu.Unlock()
	return state, nil
}

// Recommend re-analyzes the current board on demand without advancing any
// session state.
func (s *Service) Recommend(ctx context.Context, meta SessionMeta) (*xiangqi.GameAnalysis, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return nil, ErrSessionNotFound
	}

	live.mu.Lock()
	analysis, err := live.assistant.Analyze()
	if err != nil {
		live.mu.Unlock()
		return nil, err
	}
	live.updatedAt = time.Now()
	live.mu.Unlock()
	return analysis, nil
}

// Summary renders the session status text: phase, move count, the latest
// evaluation bucket and open threats or opportunities.
func (s *Service) Summary(ctx context.Context, meta SessionMeta) (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return "", err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return "", ErrSessionNotFound
	}

	live.mu.Lock()
	text := live.assistant.GameSummary()
	live.mu.Unlock()
	return text, nil
}

// Reset clears the session's assistant for a fresh game while keeping the
// session (and its UUID) alive. Sequence tracking restarts as well since the
// vision bridge renumbers frames per game.
func (s *Service) Reset(ctx context.Context, meta SessionMeta) (*SessionState, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return nil, ErrSessionNotFound
	}

	live.mu.Lock()
	live.assistant.Reset()
	live.lastSeq = 0
	live.analyses = 0
	live.updatedAt = time.Now()
	state := live.stateLocked()
	stored := live.metaLocked()
	live.mu.Unlock()

	s.mirrorMeta(ctx, identity, stored)

	s.logger.Info("advisor session reset", zap.String("session_uuid", state.SessionUUID))
	return state, nil
}

// SetProfile switches the evaluation profile of a live session.
func (s *Service) SetProfile(ctx context.Context, meta SessionMeta, name string) (*SessionState, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return nil, ErrSessionNotFound
	}

	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, fmt.Errorf("profile name must be provided")
	}
	profile, err := xiangqi.GetProfile(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, target)
	}
	if s.cfg.MaxRecommendations > 0 {
		profile.MaxRecommendations = s.cfg.MaxRecommendations
	}

	live.mu.Lock()
	live.assistant.SetProfile(profile)
	live.profile = profile.Name
	live.updatedAt = time.Now()
	state := live.stateLocked()
	stored := live.metaLocked()
	live.mu.Unlock()

	s.mirrorMeta(ctx, identity, stored)

	s.logger.Info("advisor profile changed",
		zap.String("session_uuid", state.SessionUUID),
		zap.String("profile", state.Profile),
	)
	return state, nil
}

// Profiles lists the registered evaluation profiles in name order.
func (s *Service) Profiles() []xiangqi.EvalProfile {
	names := xiangqi.ProfileNames()
	profiles := make([]xiangqi.EvalProfile, 0, len(names))
	for _, name := range names {
		if p, err := xiangqi.GetProfile(name); err == nil {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// EndSession archives the session to the repository and removes it. The
// live entry survives a failed archive so the caller can retry.
func (s *Service) EndSession(ctx context.Context, meta SessionMeta) (*domain.AdvisorSession, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return nil, ErrSessionNotFound
	}

	live.mu.Lock()
	record := live.archiveLocked(time.Now())
	live.mu.Unlock()

	id, err := s.repo.InsertSession(ctx, record)
	if err != nil {
		if errors.Is(err, ErrDuplicateSession) {
			existing, fetchErr := s.repo.GetSessionByUUID(ctx, record.SessionUUID, identity.PlayerHash)
			if fetchErr != nil || existing == nil {
				return nil, err
			}
			s.removeSession(ctx, identity, record.SessionUUID)
			return existing, nil
		}
		return nil, err
	}
	record.ID = id

	s.removeSession(ctx, identity, record.SessionUUID)

	s.logger.Info("advisor session archived",
		zap.Int64("id", id),
		zap.String("session_uuid", record.SessionUUID),
		zap.Int("move_count", record.MoveCount),
		zap.String("phase", record.Phase),
	)
	return record, nil
}

// ArchiveAll ends every live session and archives those that produced at
// least one analysis. Called on shutdown so a restart does not lose
// sessions the sweep would otherwise silently drop. Returns the number of
// sessions archived.
func (s *Service) ArchiveAll(ctx context.Context) int {
	s.mu.Lock()
	lives := make([]*liveSession, 0, len(s.sessions))
	for id, live := range s.sessions {
		lives = append(lives, live)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	archived := 0
	for _, live := range lives {
		live.mu.Lock()
		record := live.archiveLocked(time.Now())
		identity := live.identity
		live.mu.Unlock()

		s.cleanupStored(ctx, identity, record.SessionUUID)
		if record.Analyses == 0 {
			continue
		}

		id, err := s.repo.InsertSession(ctx, record)
		if err != nil {
			if !errors.Is(err, ErrDuplicateSession) {
				s.logger.Warn("advisor shutdown archive failed",
					zap.String("session_uuid", record.SessionUUID),
					zap.Error(err),
				)
			}
			continue
		}
		record.ID = id
		archived++
	}

	if archived > 0 {
		s.logger.Info("advisor sessions archived on shutdown", zap.Int("count", archived))
	}
	return archived
}

// History lists the player's archived sessions, most recent first.
func (s *Service) History(ctx context.Context, meta SessionMeta, limit int) ([]*domain.AdvisorSession, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}
	identity := deriveIdentity(meta)
	return s.repo.GetRecentSessions(ctx, identity.PlayerHash, limit)
}

// Session fetches one archived session by UUID, scoped to the caller.
func (s *Service) Session(ctx context.Context, meta SessionMeta, sessionUUID string) (*domain.AdvisorSession, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return nil, err
	}
	identity := deriveIdentity(meta)
	record, err := s.repo.GetSessionByUUID(ctx, strings.TrimSpace(sessionUUID), identity.PlayerHash)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// SaveLatestReport caches the most recent rendered analysis so reconnecting
// clients can re-fetch it without waiting for the next snapshot.
func (s *Service) SaveLatestReport(ctx context.Context, meta SessionMeta, text string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return ErrSessionNotFound
	}

	live.mu.Lock()
	sessionUUID := live.uuid
	live.mu.Unlock()
	return s.store.SaveLatest(ctx, sessionUUID, text, s.cfg.SessionTTL)
}

// LatestReport returns the cached analysis text, "" when none is cached.
func (s *Service) LatestReport(ctx context.Context, meta SessionMeta) (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}
	if err := s.ensureRoomAllowed(meta); err != nil {
		return "", err
	}

	identity := deriveIdentity(meta)
	live := s.lookup(identity.SessionID)
	if live == nil {
		return "", ErrSessionNotFound
	}

	live.mu.Lock()
	sessionUUID := live.uuid
	live.mu.Unlock()
	return s.store.LoadLatest(ctx, sessionUUID)
}

// SweepExpired drops sessions idle past the configured TTL and returns how
// many were dropped. The store mirror expires on its own; the in-process
// map needs this sweep. Expired sessions are not archived, matching the
// cache-expiry semantics of the store.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) int {
	type expired struct {
		identity    sessionIdentity
		sessionUUID string
		idle        time.Duration
	}

	var victims []expired
	s.mu.Lock()
	for id, live := range s.sessions {
		live.mu.Lock()
		idle := now.Sub(live.updatedAt)
		if idle > s.cfg.SessionTTL {
			victims = append(victims, expired{identity: live.identity, sessionUUID: live.uuid, idle: idle})
			delete(s.sessions, id)
		}
		live.mu.Unlock()
	}
	s.mu.Unlock()

	for _, v := range victims {
		s.cleanupStored(ctx, v.identity, v.sessionUUID)
		s.logger.Info("advisor session expired",
			zap.String("session_uuid", v.sessionUUID),
			zap.Duration("idle", v.idle),
		)
	}
	return len(victims)
}

// RunSweeper blocks, sweeping expired sessions on the given interval until
// ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SweepExpired(ctx, time.Now())
		}
	}
}

func (s *Service) ensureReady() error {
	switch {
	case s.store == nil:
		return fmt.Errorf("session store not configured")
	case s.repo == nil:
		return fmt.Errorf("advisor repository not configured")
	default:
		return nil
	}
}

func (s *Service) ensureRoomAllowed(meta SessionMeta) error {
	if len(s.allowedRooms) == 0 {
		return nil
	}

	room := strings.ToLower(strings.TrimSpace(meta.Room))
	if room == "" {
		room = "unknown-room"
	}

	if _, ok := s.allowedRooms[room]; ok {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("advisor room access denied",
			zap.String("room", room),
			zap.String("sender", strings.TrimSpace(meta.Sender)),
		)
	}

	return ErrRoomNotAllowed
}

func (s *Service) lookup(sessionID string) *liveSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

func (s *Service) removeSession(ctx context.Context, identity sessionIdentity, sessionUUID string) {
	s.mu.Lock()
	delete(s.sessions, identity.SessionID)
	s.mu.Unlock()
	s.cleanupStored(ctx, identity, sessionUUID)
}

func (s *Service) cleanupStored(ctx context.Context, identity sessionIdentity, sessionUUID string) {
	if err := s.store.DeleteMeta(ctx, identity.RoomHash, identity.PlayerHash); err != nil {
		s.logger.Warn("failed to delete advisor session meta", zap.Error(err))
	}
	if err := s.store.DeleteLatest(ctx, sessionUUID); err != nil {
		s.logger.Warn("failed to delete advisor latest text", zap.Error(err))
	}
}

func (s *Service) mirrorMeta(ctx context.Context, identity sessionIdentity, stored *StoredMeta) {
	if err := s.store.SaveMeta(ctx, identity.RoomHash, identity.PlayerHash, stored, s.cfg.SessionTTL); err != nil {
		s.logger.Warn("failed to mirror advisor session meta",
			zap.Error(err),
			zap.String("session_uuid", stored.SessionUUID),
		)
	}
}

func (l *liveSession) stateLocked() *SessionState {
	return &SessionState{
		SessionUUID: l.uuid,
		RoomHash:    l.identity.RoomHash,
		PlayerHash:  l.identity.PlayerHash,
		Room:        l.room,
		Player:      l.player,
		Side:        l.assistant.PlayerSide(),
		Profile:     l.profile,
		Phase:       l.assistant.Phase(),
		MoveCount:   l.assistant.MoveCount(),
		Analyses:    l.analyses,
		StartedAt:   l.startedAt,
		UpdatedAt:   l.updatedAt,
	}
}

func (l *liveSession) metaLocked() *StoredMeta {
	return &StoredMeta{
		SessionUUID: l.uuid,
		Room:        l.room,
		Player:      l.player,
		Side:        l.assistant.PlayerSide().String(),
		Profile:     l.profile,
		Phase:       string(l.assistant.Phase()),
		MoveCount:   l.assistant.MoveCount(),
		UpdatedAt:   l.updatedAt,
	}
}

func (l *liveSession) archiveLocked(now time.Time) *domain.AdvisorSession {
	moves := l.assistant.MoveHistory()
	formatted := make([]string, len(moves))
	for i, mv := range moves {
		formatted[i] = xiangqi.FormatMove(mv)
	}

	record := &domain.AdvisorSession{
		SessionUUID: l.uuid,
		PlayerHash:  l.identity.PlayerHash,
		RoomHash:    l.identity.RoomHash,
		Profile:     l.profile,
		PlayerSide:  l.assistant.PlayerSide().String(),
		Phase:       string(l.assistant.Phase()),
		MoveCount:   l.assistant.MoveCount(),
		Analyses:    l.analyses,
		Moves:       formatted,
		Summary:     l.assistant.GameSummary(),
		StartedAt:   l.startedAt,
		EndedAt:     now,
		Duration:    now.Sub(l.startedAt),
	}
	if history := l.assistant.AnalysisHistory(); len(history) > 0 {
		last := history[len(history)-1].Evaluation
		record.FinalScore = last.Total
		record.FinalWinPct = last.WinProbability
	}
	return record
}

// deriveIdentity hashes the chat identifiers so neither store keys nor
// archive rows carry raw room or player names. An empty SessionID falls back
// to the (room, sender) pair, which is what the vision feed sends.
func deriveIdentity(meta SessionMeta) sessionIdentity {
	sessionID := strings.ToLower(strings.TrimSpace(meta.SessionID))
	room := strings.ToLower(strings.TrimSpace(meta.Room))
	sender := strings.ToLower(strings.TrimSpace(meta.Sender))

	if sessionID == "" {
		sessionID = room + "|" + sender
	}

	roomHash := hashString(room)
	playerHash := hashString(room + ":" + sender)

	return sessionIdentity{
		SessionID:  sessionID,
		RoomHash:   roomHash,
		PlayerHash: playerHash,
	}
}

func hashString(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
