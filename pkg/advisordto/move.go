package advisordto

// MoveInfo describes a single inferred or recommended move in display form.
type MoveInfo struct {
	PieceID   string
	PieceName string
	Side      string
	From      string
	To        string
	Captured  string
	Capture   bool
	Check     bool
	Text      string
}
