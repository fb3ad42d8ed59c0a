package xiangqi

// Horse step directions with the matching blocking leg for each. The two
// arrays are index-aligned: a horse may take step i only when the leg i
// square is empty.
var (
	horseSteps = [8]Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1},
		{Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2},
		{Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
	horseLegs = [8]Position{
		{Row: -1, Col: 0}, {Row: -1, Col: 0},
		{Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: 1, Col: 0}, {Row: 1, Col: 0},
	}
)

// IsLegalMove checks a single displacement of pc from one square to another
// against the movement rules of its piece type. The check is pseudo-legal:
// it knows nothing about leaving one's own king in check. Moves onto a
// friendly piece are rejected.
func IsLegalMove(b *Board, from, to Position, pc Piece) bool {
	if b == nil || pc.IsEmpty() {
		return false
	}
	if !from.InBoard() || !to.InBoard() || from == to {
		return false
	}
	if dst := b.At(to); !dst.IsEmpty() && dst.Side == pc.Side {
		return false
	}
	switch pc.Type {
	case King:
		return legalKingStep(pc.Side, from, to)
	case Advisor:
		return legalAdvisorStep(pc.Side, from, to)
	case Elephant:
		return legalElephantStep(b, pc.Side, from, to)
	case Horse:
		return legalHorseStep(b, from, to)
	case Chariot:
		return piecesBetween(b, from, to) == 0
	case Cannon:
		return legalCannonStep(b, from, to)
	case Pawn:
		return legalPawnStep(pc.Side, from, to)
	default:
		return false
	}
}

func legalKingStep(side Side, from, to Position) bool {
	if !inPalace(side, to) {
		return false
	}
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return dr+dc == 1
}

func legalAdvisorStep(side Side, from, to Position) bool {
	if !inPalace(side, to) {
		return false
	}
	return abs(to.Row-from.Row) == 1 && abs(to.Col-from.Col) == 1
}

func legalElephantStep(b *Board, side Side, from, to Position) bool {
	if crossedRiver(side, to.Row) {
		return false
	}
	if abs(to.Row-from.Row) != 2 || abs(to.Col-from.Col) != 2 {
		return false
	}
	eye := Position{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}
	return b.At(eye).IsEmpty()
}

func legalHorseStep(b *Board, from, to Position) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	for i, step := range horseSteps {
		if step.Row != dr || step.Col != dc {
			continue
		}
		leg := Position{Row: from.Row + horseLegs[i].Row, Col: from.Col + horseLegs[i].Col}
		return b.At(leg).IsEmpty()
	}
	return false
}

func legalCannonStep(b *Board, from, to Position) bool {
	between := piecesBetween(b, from, to)
	if between < 0 {
		return false
	}
	if b.At(to).IsEmpty() {
		return between == 0
	}
	// 炮 captures over exactly one screen.
	return between == 1
}

func legalPawnStep(side Side, from, to Position) bool {
	forward := -1
	if side == Black {
		forward = 1
	}
	if to.Row == from.Row+forward && to.Col == from.Col {
		return true
	}
	// Sideways only after crossing the river, never backward.
	if to.Row == from.Row && abs(to.Col-from.Col) == 1 {
		return crossedRiver(side, from.Row)
	}
	return false
}

// piecesBetween counts pieces strictly between two squares sharing a row or
// column. It returns -1 when the squares are not aligned.
func piecesBetween(b *Board, from, to Position) int {
	if from.Row != to.Row && from.Col != to.Col {
		return -1
	}
	n := 0
	if from.Row == to.Row {
		lo, hi := minmax(from.Col, to.Col)
		for c := lo + 1; c < hi; c++ {
			if !b[from.Row][c].IsEmpty() {
				n++
			}
		}
		return n
	}
	lo, hi := minmax(from.Row, to.Row)
	for r := lo + 1; r < hi; r++ {
		if !b[r][from.Col].IsEmpty() {
			n++
		}
	}
	return n
}

// GenerateMoves lists every pseudo-legal move for side on the given board.
// Captures are classified KindCapture; nothing here inspects checks.
func GenerateMoves(b *Board, side Side) []Move {
	if b == nil || side == SideNone {
		return nil
	}
	var moves []Move
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || pc.Side != side {
				continue
			}
			from := Position{Row: r, Col: c}
			moves = append(moves, movesFrom(b, from, pc)...)
		}
	}
	return moves
}

// MovesFrom lists the pseudo-legal moves of the piece standing on from.
func MovesFrom(b *Board, from Position) []Move {
	if b == nil || !from.InBoard() {
		return nil
	}
	pc := b.At(from)
	if pc.IsEmpty() {
		return nil
	}
	return movesFrom(b, from, pc)
}

func movesFrom(b *Board, from Position, pc Piece) []Move {
	var targets []Position
	switch pc.Type {
	case King:
		targets = stepTargets(from, orthoSteps[:])
	case Advisor:
		targets = stepTargets(from, diagSteps[:])
	case Elephant:
		targets = stepTargets(from, elephantSteps[:])
	case Horse:
		targets = stepTargets(from, horseSteps[:])
	case Chariot, Cannon:
		targets = lineTargets(from)
	case Pawn:
		targets = pawnTargets(pc.Side, from)
	}
	var moves []Move
	for _, to := range targets {
		if !IsLegalMove(b, from, to, pc) {
			continue
		}
		mv := Move{From: from, To: to, Piece: pc, Captured: b.At(to), Kind: KindNormal}
		if mv.IsCapture() {
			mv.Kind = KindCapture
		}
		moves = append(moves, mv)
	}
	return moves
}

var (
	orthoSteps = [4]Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	diagSteps  = [4]Position{
		{Row: -1, Col: -1}, {Row: -1, Col: 1},
		{Row: 1, Col: -1}, {Row: 1, Col: 1},
	}
	elephantSteps = [4]Position{
		{Row: -2, Col: -2}, {Row: -2, Col: 2},
		{Row: 2, Col: -2}, {Row: 2, Col: 2},
	}
)

func stepTargets(from Position, steps []Position) []Position {
	out := make([]Position, 0, len(steps))
	for _, s := range steps {
		to := Position{Row: from.Row + s.Row, Col: from.Col + s.Col}
		if to.InBoard() {
			out = append(out, to)
		}
	}
	return out
}

func lineTargets(from Position) []Position {
	out := make([]Position, 0, Rows+Cols-2)
	for r := 0; r < Rows; r++ {
		if r != from.Row {
			out = append(out, Position{Row: r, Col: from.Col})
		}
	}
	for c := 0; c < Cols; c++ {
		if c != from.Col {
			out = append(out, Position{Row: from.Row, Col: c})
		}
	}
	return out
}

func pawnTargets(side Side, from Position) []Position {
	forward := -1
	if side == Black {
		forward = 1
	}
	cands := [3]Position{
		{Row: from.Row + forward, Col: from.Col},
		{Row: from.Row, Col: from.Col - 1},
		{Row: from.Row, Col: from.Col + 1},
	}
	out := make([]Position, 0, 3)
	for _, to := range cands {
		if to.InBoard() {
			out = append(out, to)
		}
	}
	return out
}

// CanAttack reports whether the piece on from could capture the square
// target if target held an enemy piece. The target square is cleared before
// testing, so a cannon needs a clear line and every other piece follows its
// plain movement rule.
func CanAttack(b *Board, from, target Position) bool {
	if b == nil || !from.InBoard() || !target.InBoard() {
		return false
	}
	pc := b.At(from)
	if pc.IsEmpty() {
		return false
	}
	probe := b.Clone()
	probe.Set(target, Piece{})
	return IsLegalMove(probe, from, target, pc)
}

// AttacksSquare reports whether the piece on from may legally move to the
// occupied square target on the board as it stands. Unlike CanAttack this
// keeps the target in place, so a cannon needs exactly one screen.
func AttacksSquare(b *Board, from, target Position) bool {
	if b == nil || !from.InBoard() || !target.InBoard() {
		return false
	}
	pc := b.At(from)
	if pc.IsEmpty() {
		return false
	}
	return IsLegalMove(b, from, target, pc)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minmax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
