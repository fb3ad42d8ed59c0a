package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

// Board geometry. Row 0 is the black home rank, row 9 the red home rank.
const (
	Rows = 10
	Cols = 9
)

var (
	ErrInvalidBoard = errors.New("invalid board snapshot")
	ErrNoBoard      = errors.New("no board set")
	ErrKingNotFound = errors.New("king not found")
)

// Side identifies the red or black camp.
type Side uint8

const (
	SideNone Side = iota
	Red
	Black
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent returns the opposing side, SideNone for SideNone.
func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return SideNone
	}
}

// ParseSide reads a side name. Besides the English names it accepts the
// single-letter and Chinese forms used in chat commands. The empty string
// maps to SideNone so callers can apply their own default.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SideNone, nil
	case "red", "r", "红", "红方":
		return Red, nil
	case "black", "b", "黑", "黑方":
		return Black, nil
	default:
		return SideNone, fmt.Errorf("unknown side %q", s)
	}
}

// PieceType enumerates the seven Xiangqi piece kinds.
type PieceType uint8

const (
	NoPiece PieceType = iota
	King              // 帅/将
	Advisor           // 仕/士
	Elephant          // 相/象
	Horse             // 马
	Chariot           // 车
	Cannon            // 炮
	Pawn              // 兵/卒
)

func (t PieceType) String() string {
	switch t {
	case King:
		return "king"
	case Advisor:
		return "advisor"
	case Elephant:
		return "elephant"
	case Horse:
		return "horse"
	case Chariot:
		return "chariot"
	case Cannon:
		return "cannon"
	case Pawn:
		return "pawn"
	default:
		return "none"
	}
}

var pieceTypeNames = map[string]PieceType{
	"king":     King,
	"advisor":  Advisor,
	"elephant": Elephant,
	"horse":    Horse,
	"chariot":  Chariot,
	"cannon":   Cannon,
	"pawn":     Pawn,
}

// Piece is a (side, type) pair. The zero value is an empty cell.
type Piece struct {
	Side Side
	Type PieceType
}

func (p Piece) IsEmpty() bool { return p.Type == NoPiece }

// ID renders the wire identifier, e.g. "red_horse". Empty pieces render "".
func (p Piece) ID() string {
	if p.IsEmpty() {
		return ""
	}
	return p.Side.String() + "_" + p.Type.String()
}

func (p Piece) String() string { return p.ID() }

// ParsePiece parses a wire identifier. The empty string is an empty cell.
func ParsePiece(s string) (Piece, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Piece{}, nil
	}
	side, rest, ok := strings.Cut(s, "_")
	if !ok {
		return Piece{}, fmt.Errorf("%w: piece %q", ErrInvalidBoard, s)
	}
	var p Piece
	switch side {
	case "red":
		p.Side = Red
	case "black":
		p.Side = Black
	default:
		return Piece{}, fmt.Errorf("%w: side %q", ErrInvalidBoard, s)
	}
	t, ok := pieceTypeNames[rest]
	if !ok {
		return Piece{}, fmt.Errorf("%w: piece type %q", ErrInvalidBoard, s)
	}
	p.Type = t
	return p, nil
}

// Position is a board coordinate: row 0–9 top-down, col 0–8 left-right.
type Position struct {
	Row int
	Col int
}

func (p Position) InBoard() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Board is the fixed 10×9 grid. The value type copies cleanly, so cloning
// a snapshot is a plain dereference copy.
type Board [Rows][Cols]Piece

func (b *Board) At(p Position) Piece {
	return b[p.Row][p.Col]
}

func (b *Board) Set(p Position, pc Piece) {
	b[p.Row][p.Col] = pc
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	dup := *b
	return &dup
}

// FindKing locates the king of the given side.
func (b *Board) FindKing(side Side) (Position, bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.Type == King && pc.Side == side {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// ParseBoard validates and converts a raw 10×9 snapshot grid. Cells are
// either empty strings or "<side>_<type>" identifiers. Any other shape or
// cell content fails with ErrInvalidBoard and no partial result.
func ParseBoard(cells [][]string) (*Board, error) {
	if len(cells) != Rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoard, len(cells), Rows)
	}
	var b Board
	for r, row := range cells {
		if len(row) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d cols, want %d", ErrInvalidBoard, r, len(row), Cols)
		}
		for c, cell := range row {
			pc, err := ParsePiece(cell)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
			b[r][c] = pc
		}
	}
	return &b, nil
}

// Cells renders the board back into the wire grid form.
func (b *Board) Cells() [][]string {
	out := make([][]string, Rows)
	for r := 0; r < Rows; r++ {
		row := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			row[c] = b[r][c].ID()
		}
		out[r] = row
	}
	return out
}

// InitialBoard returns the standard opening layout.
func InitialBoard() *Board {
	var b Board
	back := [Cols]PieceType{Chariot, Horse, Elephant, Advisor, King, Advisor, Elephant, Horse, Chariot}
	for c := 0; c < Cols; c++ {
		b[0][c] = Piece{Side: Black, Type: back[c]}
		b[9][c] = Piece{Side: Red, Type: back[c]}
	}
	b[2][1] = Piece{Side: Black, Type: Cannon}
	b[2][7] = Piece{Side: Black, Type: Cannon}
	b[7][1] = Piece{Side: Red, Type: Cannon}
	b[7][7] = Piece{Side: Red, Type: Cannon}
	for c := 0; c < Cols; c += 2 {
		b[3][c] = Piece{Side: Black, Type: Pawn}
		b[6][c] = Piece{Side: Red, Type: Pawn}
	}
	return &b
}

// inPalace reports whether pos lies inside the 3×3 palace of side.
func inPalace(side Side, pos Position) bool {
	if pos.Col < 3 || pos.Col > 5 {
		return false
	}
	switch side {
	case Red:
		return pos.Row >= 7 && pos.Row <= 9
	case Black:
		return pos.Row >= 0 && pos.Row <= 2
	default:
		return false
	}
}

// crossedRiver reports whether a square on row is across the river from
// side's home half.
func crossedRiver(side Side, row int) bool {
	switch side {
	case Red:
		return row <= 4
	case Black:
		return row >= 5
	default:
		return false
	}
}

// ownHalf reports whether row lies on side's own half of the board.
func ownHalf(side Side, row int) bool {
	switch side {
	case Red:
		return row >= 5
	case Black:
		return row <= 4
	default:
		return false
	}
}
