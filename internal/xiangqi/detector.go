package xiangqi

// boardHistoryCap bounds the snapshot ring kept for debugging recent
// detector input. Move history is separate and unbounded.
const boardHistoryCap = 16

// Detector infers single moves from successive board snapshots. Snapshots
// come from an imperfect vision pipeline, so the detector tolerates noisy
// grids: anything that does not resolve to exactly one legal displacement
// is reported as no move. Not safe for concurrent use; callers serialize.
type Detector struct {
	current *Board
	boards  []*Board
	moves   []Move
}

func NewDetector() *Detector {
	return &Detector{}
}

// boardChange records one cell that differs between two snapshots.
type boardChange struct {
	pos    Position
	before Piece
	after  Piece
}

// UpdateBoard validates a raw snapshot grid, advances the tracked board and
// returns the inferred move, if any. Invalid grids fail before any state
// changes. The board always advances to the new snapshot, whether or not a
// move was recognized.
func (d *Detector) UpdateBoard(cells [][]string) (*Move, error) {
	b, err := ParseBoard(cells)
	if err != nil {
		return nil, err
	}
	return d.Observe(b), nil
}

// Observe advances the tracked board to an already-parsed snapshot. The
// detector keeps its own copy, so callers may reuse b.
func (d *Detector) Observe(b *Board) *Move {
	prev := d.current
	d.current = b.Clone()
	d.boards = append(d.boards, d.current)
	if len(d.boards) > boardHistoryCap {
		d.boards = d.boards[len(d.boards)-boardHistoryCap:]
	}
	if prev == nil {
		return nil
	}
	mv := detectMove(prev, d.current)
	if mv == nil {
		return nil
	}
	d.moves = append(d.moves, *mv)
	return mv
}

// CurrentBoard returns a copy of the last observed board, or nil before the
// first snapshot.
func (d *Detector) CurrentBoard() *Board {
	if d.current == nil {
		return nil
	}
	return d.current.Clone()
}

// LastMove returns the most recently inferred move, or nil.
func (d *Detector) LastMove() *Move {
	if len(d.moves) == 0 {
		return nil
	}
	mv := d.moves[len(d.moves)-1]
	return &mv
}

// MoveHistory returns a copy of every inferred move in order.
func (d *Detector) MoveHistory() []Move {
	return append([]Move(nil), d.moves...)
}

// ClearHistory drops the tracked board, the snapshot ring and the move
// history. The next snapshot starts a fresh sequence.
func (d *Detector) ClearHistory() {
	d.current = nil
	d.boards = nil
	d.moves = nil
}

func detectMove(prev, curr *Board) *Move {
	changes := findChanges(prev, curr)
	switch {
	case len(changes) < 2:
		// A single changed cell cannot form a displacement.
		return nil
	case len(changes) == 2:
		return resolveMove(changes[0], changes[1], prev, curr)
	default:
		return resolveNoisyMove(changes, prev, curr)
	}
}

func findChanges(prev, curr *Board) []boardChange {
	var changes []boardChange
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if prev[r][c] == curr[r][c] {
				continue
			}
			changes = append(changes, boardChange{
				pos:    Position{Row: r, Col: c},
				before: prev[r][c],
				after:  curr[r][c],
			})
		}
	}
	return changes
}

// resolveMove interprets exactly two changed cells as origin plus
// destination. The piece arriving at the destination must be the piece
// that left the origin, and the displacement must be legal for that piece
// on the pre-move board.
func resolveMove(a, b boardChange, prev, curr *Board) *Move {
	var (
		from, to Position
		mover    Piece
		captured Piece
		haveFrom bool
		haveTo   bool
	)
	for _, ch := range [2]boardChange{a, b} {
		switch {
		case !ch.before.IsEmpty() && ch.after.IsEmpty():
			from = ch.pos
			mover = ch.before
			haveFrom = true
		case !ch.after.IsEmpty():
			to = ch.pos
			captured = ch.before
			haveTo = true
		}
	}
	if !haveFrom || !haveTo {
		return nil
	}
	// Mismatched pieces mean the vision layer misread a cell.
	if curr.At(to) != mover {
		return nil
	}
	if !IsLegalMove(prev, from, to, mover) {
		return nil
	}
	mv := &Move{From: from, To: to, Piece: mover, Captured: captured, Kind: KindNormal}
	if !captured.IsEmpty() {
		mv.Kind = KindCapture
	}
	if givesCheck(curr, to, mover) {
		mv.Kind = KindCheck
	}
	return mv
}

// resolveNoisyMove handles snapshots with extra changed cells. When the
// noise still contains exactly one vanished piece and one appeared piece,
// that pair is treated as the move; anything else is unreadable.
func resolveNoisyMove(changes []boardChange, prev, curr *Board) *Move {
	var disappeared, appeared []boardChange
	for _, ch := range changes {
		switch {
		case !ch.before.IsEmpty() && ch.after.IsEmpty():
			disappeared = append(disappeared, ch)
		case ch.before.IsEmpty() && !ch.after.IsEmpty():
			appeared = append(appeared, ch)
		}
	}
	if len(disappeared) == 1 && len(appeared) == 1 {
		return resolveMove(disappeared[0], appeared[0], prev, curr)
	}
	return nil
}

// givesCheck reports whether the piece that landed on from now attacks the
// enemy king on the post-move board.
func givesCheck(b *Board, from Position, mover Piece) bool {
	king, ok := b.FindKing(mover.Side.Opponent())
	if !ok {
		return false
	}
	return CanAttack(b, from, king)
}
