package xiangqi

// MoveKind classifies an observed or generated move.
type MoveKind string

const (
	KindNormal  MoveKind = "normal"
	KindCapture MoveKind = "capture"
	KindCheck   MoveKind = "check"
)

// Move is a single piece displacement. Captured is the piece that stood on
// To before the move, empty for quiet moves.
type Move struct {
	From     Position
	To       Position
	Piece    Piece
	Captured Piece
	Kind     MoveKind
}

// IsCapture reports whether the move removed an enemy piece. Capturing
// checks keep Captured set, so this stays true after a check upgrade.
func (m Move) IsCapture() bool { return !m.Captured.IsEmpty() }

// Apply plays the move on a copy of b and returns the resulting board.
func (m Move) Apply(b *Board) *Board {
	next := b.Clone()
	next.Set(m.To, next.At(m.From))
	next.Set(m.From, Piece{})
	return next
}
