package xiangqi

import (
	"fmt"
	"strconv"
	"strings"
)

var redPieceNames = map[PieceType]string{
	King:     "帅",
	Advisor:  "仕",
	Elephant: "相",
	Horse:    "马",
	Chariot:  "车",
	Cannon:   "炮",
	Pawn:     "兵",
}

var blackPieceNames = map[PieceType]string{
	King:     "将",
	Advisor:  "士",
	Elephant: "象",
	Horse:    "马",
	Chariot:  "车",
	Cannon:   "炮",
	Pawn:     "卒",
}

// PieceName returns the Chinese character for a piece, red and black using
// their traditional distinct glyphs. Empty pieces render "".
func PieceName(pc Piece) string {
	if pc.IsEmpty() {
		return ""
	}
	if pc.Side == Black {
		return blackPieceNames[pc.Type]
	}
	return redPieceNames[pc.Type]
}

// FormatPosition renders a square in letter-number form: files a-i left to
// right, ranks 10 down to 1 from the black home rank.
func FormatPosition(pos Position) string {
	var sb strings.Builder
	sb.WriteByte(byte('a' + pos.Col))
	sb.WriteString(rankLabel(pos.Row))
	return sb.String()
}

func rankLabel(row int) string {
	switch n := Rows - row; {
	case n == 10:
		return "10"
	default:
		return string(byte('0' + n))
	}
}

// ParsePosition reverses FormatPosition: a letter a-i and a rank 1-10.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return Position{}, fmt.Errorf("bad square %q", s)
	}
	col := int(s[0]) - 'a'
	if col < 0 || col >= Cols {
		return Position{}, fmt.Errorf("bad file in square %q", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 || rank > Rows {
		return Position{}, fmt.Errorf("bad rank in square %q", s)
	}
	return Position{Row: Rows - rank, Col: col}, nil
}

// FormatMove renders a move as "piece from-to" with capture and check
// suffixes, e.g. "炮 b3-e3 吃马 将军".
func FormatMove(mv Move) string {
	var sb strings.Builder
	sb.WriteString(PieceName(mv.Piece))
	sb.WriteByte(' ')
	sb.WriteString(FormatPosition(mv.From))
	sb.WriteByte('-')
	sb.WriteString(FormatPosition(mv.To))
	if !mv.Captured.IsEmpty() {
		sb.WriteString(" 吃")
		sb.WriteString(PieceName(mv.Captured))
	}
	if mv.Kind == KindCheck {
		sb.WriteString(" 将军")
	}
	return sb.String()
}
