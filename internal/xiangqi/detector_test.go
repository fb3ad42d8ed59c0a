package xiangqi

import (
	"errors"
	"testing"
)

func TestDetectorFirstSnapshotNoMove(t *testing.T) {
	d := NewDetector()
	mv, err := d.UpdateBoard(InitialBoard().Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Fatalf("first snapshot produced a move: %v", mv)
	}
	if d.CurrentBoard() == nil {
		t.Fatalf("board not tracked after first snapshot")
	}
}

func TestDetectorIdenticalSnapshot(t *testing.T) {
	d := NewDetector()
	cells := InitialBoard().Cells()
	if _, err := d.UpdateBoard(cells); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(cells)
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Fatalf("identical snapshot produced a move: %v", mv)
	}
	if len(d.MoveHistory()) != 0 {
		t.Fatalf("history grew on identical snapshot")
	}
}

func TestDetectorInfersPawnPush(t *testing.T) {
	d := NewDetector()
	if _, err := d.UpdateBoard(InitialBoard().Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	next := InitialBoard()
	next.Set(Position{Row: 6, Col: 0}, Piece{})
	place(next, 5, 0, Piece{Side: Red, Type: Pawn})

	mv, err := d.UpdateBoard(next.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv == nil {
		t.Fatalf("pawn push not inferred")
	}
	want := Move{
		From:  Position{Row: 6, Col: 0},
		To:    Position{Row: 5, Col: 0},
		Piece: Piece{Side: Red, Type: Pawn},
		Kind:  KindNormal,
	}
	if *mv != want {
		t.Fatalf("inferred %+v, want %+v", *mv, want)
	}
	if last := d.LastMove(); last == nil || *last != want {
		t.Errorf("LastMove = %+v, want %+v", last, want)
	}
	if len(d.MoveHistory()) != 1 {
		t.Errorf("history length = %d, want 1", len(d.MoveHistory()))
	}
}

func TestDetectorInfersCapture(t *testing.T) {
	before := &Board{}
	place(before, 9, 4, Piece{Side: Red, Type: King})
	place(before, 0, 4, Piece{Side: Black, Type: King})
	place(before, 4, 0, Piece{Side: Red, Type: Chariot})
	place(before, 4, 8, Piece{Side: Black, Type: Horse})

	after := before.Clone()
	after.Set(Position{Row: 4, Col: 0}, Piece{})
	after.Set(Position{Row: 4, Col: 8}, Piece{Side: Red, Type: Chariot})

	d := NewDetector()
	if _, err := d.UpdateBoard(before.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(after.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv == nil {
		t.Fatalf("capture not inferred")
	}
	if mv.Kind != KindCapture {
		t.Errorf("kind = %v, want capture", mv.Kind)
	}
	if mv.Captured != (Piece{Side: Black, Type: Horse}) {
		t.Errorf("captured = %v, want black horse", mv.Captured)
	}
	if !mv.IsCapture() {
		t.Errorf("IsCapture() = false on a capture")
	}
}

func TestDetectorUpgradesToCheck(t *testing.T) {
	before := &Board{}
	place(before, 9, 4, Piece{Side: Red, Type: King})
	place(before, 0, 4, Piece{Side: Black, Type: King})
	place(before, 4, 0, Piece{Side: Red, Type: Chariot})

	after := before.Clone()
	after.Set(Position{Row: 4, Col: 0}, Piece{})
	after.Set(Position{Row: 0, Col: 0}, Piece{Side: Red, Type: Chariot})

	d := NewDetector()
	if _, err := d.UpdateBoard(before.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(after.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv == nil {
		t.Fatalf("check move not inferred")
	}
	if mv.Kind != KindCheck {
		t.Errorf("kind = %v, want check", mv.Kind)
	}
}

func TestDetectorCannonCheckNeedsOpenLane(t *testing.T) {
	before := &Board{}
	place(before, 9, 4, Piece{Side: Red, Type: King})
	place(before, 0, 4, Piece{Side: Black, Type: King})
	place(before, 5, 3, Piece{Side: Red, Type: Cannon})
	// A screen between the cannon's landing square and the black king.
	place(before, 1, 4, Piece{Side: Black, Type: Advisor})

	after := before.Clone()
	after.Set(Position{Row: 5, Col: 3}, Piece{})
	after.Set(Position{Row: 5, Col: 4}, Piece{Side: Red, Type: Cannon})

	d := NewDetector()
	if _, err := d.UpdateBoard(before.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(after.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv == nil {
		t.Fatalf("cannon slide not inferred")
	}
	// The screened lane does not register as check under the cleared-target
	// probe; the slide stays a normal move.
	if mv.Kind != KindNormal {
		t.Errorf("kind = %v, want normal", mv.Kind)
	}
}

func TestDetectorRejectsIllegalDisplacement(t *testing.T) {
	before := &Board{}
	place(before, 9, 4, Piece{Side: Red, Type: King})
	place(before, 0, 4, Piece{Side: Black, Type: King})
	place(before, 4, 0, Piece{Side: Red, Type: Chariot})

	// Chariot "teleports" off its lines.
	after := before.Clone()
	after.Set(Position{Row: 4, Col: 0}, Piece{})
	after.Set(Position{Row: 3, Col: 8}, Piece{Side: Red, Type: Chariot})

	d := NewDetector()
	if _, err := d.UpdateBoard(before.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(after.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Fatalf("illegal displacement inferred as %+v", mv)
	}
	if len(d.MoveHistory()) != 0 {
		t.Errorf("illegal displacement entered history")
	}
	// The board still advanced to the latest snapshot.
	if got := d.CurrentBoard(); *got != *after {
		t.Errorf("board did not advance past unreadable diff")
	}
}

func TestDetectorRejectsMismatchedPiece(t *testing.T) {
	before := &Board{}
	place(before, 9, 4, Piece{Side: Red, Type: King})
	place(before, 0, 4, Piece{Side: Black, Type: King})
	place(before, 4, 0, Piece{Side: Red, Type: Chariot})

	// The vanished chariot "arrives" as a horse.
	after := before.Clone()
	after.Set(Position{Row: 4, Col: 0}, Piece{})
	after.Set(Position{Row: 4, Col: 5}, Piece{Side: Red, Type: Horse})

	d := NewDetector()
	if _, err := d.UpdateBoard(before.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	mv, err := d.UpdateBoard(after.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Fatalf("mismatched arrival inferred as %+v", mv)
	}
}

func TestDetectorAbsorbsNoisyExtraChange(t *testing.T) {
	d := NewDetector()
	if _, err := d.UpdateBoard(InitialBoard().Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	// A real pawn push plus one misread cell elsewhere.
	next := InitialBoard()
	next.Set(Position{Row: 6, Col: 0}, Piece{})
	place(next, 5, 0, Piece{Side: Red, Type: Pawn})
	next.Set(Position{Row: 2, Col: 1}, Piece{Side: Black, Type: Horse})

	mv, err := d.UpdateBoard(next.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv == nil {
		t.Fatalf("noisy snapshot lost the pawn push")
	}
	if mv.From != (Position{Row: 6, Col: 0}) || mv.To != (Position{Row: 5, Col: 0}) {
		t.Errorf("inferred %+v, want pawn (6,0)->(5,0)", mv)
	}
}

func TestDetectorRejectsDoubleMove(t *testing.T) {
	d := NewDetector()
	if _, err := d.UpdateBoard(InitialBoard().Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	// Two pawns moved at once: two disappearances, two appearances.
	next := InitialBoard()
	next.Set(Position{Row: 6, Col: 0}, Piece{})
	place(next, 5, 0, Piece{Side: Red, Type: Pawn})
	next.Set(Position{Row: 3, Col: 0}, Piece{})
	place(next, 4, 0, Piece{Side: Black, Type: Pawn})

	mv, err := d.UpdateBoard(next.Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Fatalf("double move inferred as single: %+v", mv)
	}
}

func TestDetectorValidationLeavesStateIntact(t *testing.T) {
	d := NewDetector()
	if _, err := d.UpdateBoard(InitialBoard().Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	bad := make([][]string, 8)
	for r := range bad {
		bad[r] = make([]string, 8)
	}
	if _, err := d.UpdateBoard(bad); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("err = %v, want ErrInvalidBoard", err)
	}
	if got := d.CurrentBoard(); *got != *InitialBoard() {
		t.Fatalf("rejected snapshot mutated the tracked board")
	}
}

func TestDetectorClearHistory(t *testing.T) {
	d := NewDetector()
	if _, err := d.UpdateBoard(InitialBoard().Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	next := InitialBoard()
	next.Set(Position{Row: 6, Col: 0}, Piece{})
	place(next, 5, 0, Piece{Side: Red, Type: Pawn})
	if _, err := d.UpdateBoard(next.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	d.ClearHistory()
	if d.CurrentBoard() != nil {
		t.Errorf("board survives ClearHistory")
	}
	if d.LastMove() != nil || len(d.MoveHistory()) != 0 {
		t.Errorf("moves survive ClearHistory")
	}
	// The next snapshot starts a fresh sequence, so no move is inferred.
	mv, err := d.UpdateBoard(InitialBoard().Cells())
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if mv != nil {
		t.Errorf("move inferred right after reset: %+v", mv)
	}
}

func TestDetectorBoardRingBounded(t *testing.T) {
	d := NewDetector()
	b := &Board{}
	place(b, 9, 4, Piece{Side: Red, Type: King})
	place(b, 0, 4, Piece{Side: Black, Type: King})
	place(b, 4, 0, Piece{Side: Red, Type: Pawn})
	if _, err := d.UpdateBoard(b.Cells()); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	// Walk the crossed pawn left and right well past the ring size.
	col := 0
	for i := 0; i < boardHistoryCap*2; i++ {
		next := d.CurrentBoard()
		nc := col + 1
		if col == 1 {
			nc = 0
		}
		next.Set(Position{Row: 4, Col: col}, Piece{})
		place(next, 4, nc, Piece{Side: Red, Type: Pawn})
		col = nc
		if _, err := d.UpdateBoard(next.Cells()); err != nil {
			t.Fatalf("UpdateBoard %d: %v", i, err)
		}
	}
	if len(d.boards) > boardHistoryCap {
		t.Fatalf("snapshot ring grew to %d, cap %d", len(d.boards), boardHistoryCap)
	}
	if len(d.MoveHistory()) != boardHistoryCap*2 {
		t.Fatalf("move history = %d, want %d", len(d.MoveHistory()), boardHistoryCap*2)
	}
}
