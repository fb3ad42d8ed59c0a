package advisor

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
)

var ErrDuplicateSession = errors.New("advisor session already archived")

type Repository interface {
	InsertSession(ctx context.Context, session *domain.AdvisorSession) (int64, error)
	GetRecentSessions(ctx context.Context, playerHash string, limit int) ([]*domain.AdvisorSession, error)
	GetSessionByUUID(ctx context.Context, sessionUUID string, playerHash string) (*domain.AdvisorSession, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertSession(ctx context.Context, session *domain.AdvisorSession) (int64, error) {
	if session == nil {
		return 0, fmt.Errorf("nil advisor session payload")
	}

	moves, err := json.Marshal(session.Moves)
	if err != nil {
		return 0, fmt.Errorf("marshal moves: %w", err)
	}

	const query = `
		INSERT INTO advisor_sessions (
			session_uuid,
			player_hash,
			room_hash,
			profile,
			player_side,
			phase,
			move_count,
			analyses,
			moves,
			final_score,
			final_win_pct,
			summary,
			started_at,
			ended_at,
			duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (session_uuid) DO NOTHING
		RETURNING id`

	var id sql.NullInt64
	err = r.db.QueryRowContext(
		ctx,
		query,
		session.SessionUUID,
		session.PlayerHash,
		session.RoomHash,
		session.Profile,
		session.PlayerSide,
		session.Phase,
		session.MoveCount,
		session.Analyses,
		moves,
		session.FinalScore,
		session.FinalWinPct,
		session.Summary,
		session.StartedAt,
		session.EndedAt,
		session.Duration.Milliseconds(),
	).Scan(&id)
	if err == sql.ErrNoRows || (err == nil && !id.Valid) {
		return 0, ErrDuplicateSession
	}
	if err != nil {
		return 0, fmt.Errorf("insert advisor session: %w", err)
	}
	return id.Int64, nil
}

func (r *repository) GetRecentSessions(ctx context.Context, playerHash string, limit int) ([]*domain.AdvisorSession, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT
			id,
			session_uuid,
			player_hash,
			room_hash,
			profile,
			player_side,
			phase,
			move_count,
			analyses,
			moves,
			final_score,
			final_win_pct,
			summary,
			started_at,
			ended_at,
			duration_ms
		FROM advisor_sessions
		WHERE player_hash = $1
		ORDER BY ended_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, playerHash, limit)
	if err != nil {
		return nil, fmt.Errorf("select advisor sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.AdvisorSession, 0, limit)
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *repository) GetSessionByUUID(ctx context.Context, sessionUUID string, playerHash string) (*domain.AdvisorSession, error) {
	const query = `
		SELECT
			id,
			session_uuid,
			player_hash,
			room_hash,
			profile,
			player_side,
			phase,
			move_count,
			analyses,
			moves,
			final_score,
			final_win_pct,
			summary,
			started_at,
			ended_at,
			duration_ms
		FROM advisor_sessions
		WHERE session_uuid = $1 AND player_hash = $2
		ORDER BY ended_at DESC
		LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, sessionUUID, playerHash)
	session, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func scanSession(scan func(dest ...any) error) (*domain.AdvisorSession, error) {
	var (
		session    domain.AdvisorSession
		movesJSON  []byte
		durationMS sql.NullInt64
	)
	if err := scan(
		&session.ID,
		&session.SessionUUID,
		&session.PlayerHash,
		&session.RoomHash,
		&session.Profile,
		&session.PlayerSide,
		&session.Phase,
		&session.MoveCount,
		&session.Analyses,
		&movesJSON,
		&session.FinalScore,
		&session.FinalWinPct,
		&session.Summary,
		&session.StartedAt,
		&session.EndedAt,
		&durationMS,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan advisor session: %w", err)
	}
	if durationMS.Valid {
		session.Duration = time.Duration(durationMS.Int64) * time.Millisecond
	}
	if err := json.Unmarshal(movesJSON, &session.Moves); err != nil {
		return nil, fmt.Errorf("unmarshal moves: %w", err)
	}
	return &session, nil
}
