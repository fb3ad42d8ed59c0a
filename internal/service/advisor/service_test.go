package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
	"github.com/park285/Xiangqi-Advisor-bot/internal/xiangqi"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(newTestStore(t), NewMemoryRepository(), Config{SessionTTL: time.Hour}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func testMeta() SessionMeta {
	return SessionMeta{Room: "棋室", Sender: "小李"}
}

func initialCells() [][]string {
	return xiangqi.InitialBoard().Cells()
}

// cellsAfterBlackPawnStep returns the opening layout with the black pawn on
// file a advanced one square, the smallest observable opponent move.
func cellsAfterBlackPawnStep(t *testing.T) [][]string {
	t.Helper()
	b := xiangqi.InitialBoard()
	from := xiangqi.Position{Row: 3, Col: 0}
	to := xiangqi.Position{Row: 4, Col: 0}
	pc := b.At(from)
	if pc.IsEmpty() || pc.Side != xiangqi.Black {
		t.Fatalf("expected a black pawn at %v, found %v", from, pc)
	}
	b.Set(to, pc)
	b.Set(from, xiangqi.Piece{})
	return b.Cells()
}

func TestSnapshotBeforeStartSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Snapshot(context.Background(), testMeta(), 1, initialCells())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStartSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	state, err := svc.StartSession(ctx, meta, "red", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.SessionUUID == "" {
		t.Fatal("expected a session uuid")
	}
	if state.Side != xiangqi.Red || state.Profile != "balanced" || state.Phase != xiangqi.PhaseOpening {
		t.Fatalf("unexpected initial state: %+v", state)
	}

	again, err := svc.StartSession(ctx, meta, "red", "")
	if !errors.Is(err, ErrSessionInProgress) {
		t.Fatalf("expected ErrSessionInProgress, got %v", err)
	}
	if again == nil || again.SessionUUID != state.SessionUUID {
		t.Fatalf("expected the existing session state, got %+v", again)
	}
}

func TestStartSessionUnknownProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.StartSession(context.Background(), testMeta(), "red", "nope")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSnapshotFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	first, err := svc.Snapshot(ctx, meta, 1, initialCells())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if first.Analysis == nil {
		t.Fatal("expected an analysis")
	}
	if got := first.Analysis.Evaluation.WinProbability; got != 0.5 {
		t.Fatalf("opening win probability = %v, want 0.5", got)
	}
	if first.State.MoveCount != 0 {
		t.Fatalf("move count after first snapshot = %d, want 0", first.State.MoveCount)
	}

	if _, err := svc.Snapshot(ctx, meta, 1, initialCells()); !errors.Is(err, ErrStaleSnapshot) {
		t.Fatalf("expected ErrStaleSnapshot for a replayed frame, got %v", err)
	}

	second, err := svc.Snapshot(ctx, meta, 2, cellsAfterBlackPawnStep(t))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if second.State.MoveCount != 1 {
		t.Fatalf("move count after opponent move = %d, want 1", second.State.MoveCount)
	}
	if second.Analysis.OpponentLastMove == nil {
		t.Fatal("expected the black pawn move to be inferred")
	}

	if _, err := svc.Snapshot(ctx, meta, 3, [][]string{{"red_king"}}); !errors.Is(err, xiangqi.ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard for a malformed grid, got %v", err)
	}
	// a rejected frame must not consume its sequence number
	if _, err := svc.Snapshot(ctx, meta, 3, cellsAfterBlackPawnStep(t)); err != nil {
		t.Fatalf("Snapshot after rejected frame: %v", err)
	}
}

func TestRecommendBeforeFirstBoard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.Recommend(ctx, meta); !errors.Is(err, xiangqi.ErrNoBoard) {
		t.Fatalf("expected ErrNoBoard, got %v", err)
	}
	if text, err := svc.Summary(ctx, meta); err != nil || text != "暂无分析数据" {
		t.Fatalf("Summary before snapshots: text=%q err=%v", text, err)
	}
}

func TestEndSessionArchives(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.Snapshot(ctx, meta, 1, initialCells()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	record, err := svc.EndSession(ctx, meta)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("expected the archive to assign an id")
	}
	if record.Analyses != 1 || record.Phase != string(xiangqi.PhaseOpening) {
		t.Fatalf("unexpected archive record: %+v", record)
	}
	if record.FinalWinPct != 0.5 {
		t.Fatalf("final win probability = %v, want 0.5", record.FinalWinPct)
	}

	stored, err := svc.repo.GetSessionByUUID(ctx, record.SessionUUID, record.PlayerHash)
	if err != nil {
		t.Fatalf("GetSessionByUUID: %v", err)
	}
	if stored == nil || stored.ID != record.ID {
		t.Fatalf("archive did not reach the repository: %+v", stored)
	}

	sessions, err := svc.History(ctx, meta, 5)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionUUID != record.SessionUUID {
		t.Fatalf("unexpected history: %+v", sessions)
	}

	if _, err := svc.Status(ctx, meta); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after end, got %v", err)
	}
	if _, err := svc.EndSession(ctx, meta); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for a double end, got %v", err)
	}
}

func TestResetClearsSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.Snapshot(ctx, meta, 5, initialCells()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	state, err := svc.Reset(ctx, meta)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if state.MoveCount != 0 || state.Analyses != 0 || state.Phase != xiangqi.PhaseOpening {
		t.Fatalf("reset left state behind: %+v", state)
	}
	// the vision bridge renumbers frames per game
	if _, err := svc.Snapshot(ctx, meta, 1, initialCells()); err != nil {
		t.Fatalf("Snapshot after reset: %v", err)
	}
}

func TestRoomGating(t *testing.T) {
	svc, err := NewService(newTestStore(t), NewMemoryRepository(), Config{
		SessionTTL:   time.Hour,
		AllowedRooms: []string{"Main Hall"},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, SessionMeta{Room: "other", Sender: "p"}, "red", ""); !errors.Is(err, ErrRoomNotAllowed) {
		t.Fatalf("expected ErrRoomNotAllowed, got %v", err)
	}
	if _, err := svc.StartSession(ctx, SessionMeta{Room: "  main hall ", Sender: "p"}, "red", ""); err != nil {
		t.Fatalf("StartSession in allowed room: %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if n := svc.SweepExpired(ctx, time.Now()); n != 0 {
		t.Fatalf("fresh session swept: %d", n)
	}
	if n := svc.SweepExpired(ctx, time.Now().Add(2*time.Hour)); n != 1 {
		t.Fatalf("expired session not swept: %d", n)
	}
	if _, err := svc.Status(ctx, meta); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after sweep, got %v", err)
	}
}

func TestStatusAfterRestartSeesMirror(t *testing.T) {
	store := newTestStore(t)
	repo := NewMemoryRepository()
	cfg := Config{SessionTTL: time.Hour}
	ctx := context.Background()
	meta := testMeta()

	first, err := NewService(store, repo, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	started, err := first.StartSession(ctx, meta, "black", "aggressive")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	restarted, err := NewService(store, repo, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	state, err := restarted.Status(ctx, meta)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from the restarted service, got %v", err)
	}
	if state == nil || state.SessionUUID != started.SessionUUID {
		t.Fatalf("expected the mirrored state, got %+v", state)
	}
	if state.Profile != "aggressive" || state.Side != xiangqi.Black {
		t.Fatalf("mirror lost fields: %+v", state)
	}
}

func TestSetProfileResolvesAliases(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	state, err := svc.SetProfile(ctx, meta, "attack")
	if err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	if state.Profile != "aggressive" {
		t.Fatalf("profile alias not resolved: %q", state.Profile)
	}
	if _, err := svc.SetProfile(ctx, meta, "nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestLatestReportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	meta := testMeta()

	if _, err := svc.StartSession(ctx, meta, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if text, err := svc.LatestReport(ctx, meta); err != nil || text != "" {
		t.Fatalf("LatestReport before save: text=%q err=%v", text, err)
	}
	if err := svc.SaveLatestReport(ctx, meta, "♜ 局面分析"); err != nil {
		t.Fatalf("SaveLatestReport: %v", err)
	}
	text, err := svc.LatestReport(ctx, meta)
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if text != "♜ 局面分析" {
		t.Fatalf("latest text = %q", text)
	}
}

func TestArchiveAllSkipsEmptySessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	analyzed := testMeta()
	idle := SessionMeta{Room: "棋室", Sender: "小王"}

	if _, err := svc.StartSession(ctx, analyzed, "red", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.Snapshot(ctx, analyzed, 1, initialCells()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, err := svc.StartSession(ctx, idle, "black", ""); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if got := svc.ArchiveAll(ctx); got != 1 {
		t.Fatalf("ArchiveAll = %d, want 1", got)
	}
	records, err := svc.History(ctx, analyzed, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 || records[0].Analyses != 1 {
		t.Fatalf("unexpected archive contents: %+v", records)
	}
	if _, err := svc.Status(ctx, idle); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session to be gone, got %v", err)
	}
}

func TestMemoryRepositoryDuplicate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	record := &domain.AdvisorSession{SessionUUID: "u-1", PlayerHash: "p-1", EndedAt: time.Now()}
	id, err := repo.InsertSession(ctx, record)
	if err != nil {
		t.Fatalf("InsertSession: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}
	if _, err := repo.InsertSession(ctx, record); !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}
}
