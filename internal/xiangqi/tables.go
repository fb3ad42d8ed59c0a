package xiangqi

// Base piece values in centi-pawn units.
var pieceValues = map[PieceType]float64{
	King:     10000,
	Advisor:  200,
	Elephant: 200,
	Horse:    450,
	Chariot:  900,
	Cannon:   450,
	Pawn:     100,
}

// PieceValue returns the base material value of a piece type.
func PieceValue(t PieceType) float64 { return pieceValues[t] }

// Flat per-type mobility estimates, used instead of counting generated
// moves square by square.
var mobilityBase = map[PieceType]float64{
	King:     4,
	Advisor:  4,
	Elephant: 4,
	Horse:    8,
	Chariot:  14,
	Cannon:   14,
	Pawn:     3,
}

type squareTable [Rows][Cols]float64

// Position-value tables from the red point of view, row 0 being the black
// home rank. Black pieces read the vertically flipped table.

// 兵: value climbs after crossing the river, peaks one rank short of the
// enemy home rank.
var pawnTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{70, 70, 70, 70, 70, 70, 70, 70, 70},
	{50, 50, 50, 50, 50, 50, 50, 50, 50},
	{40, 40, 40, 40, 40, 40, 40, 40, 40},
	{30, 30, 30, 30, 30, 30, 30, 30, 30},
	{20, 20, 20, 20, 20, 20, 20, 20, 20},
	{10, 10, 10, 10, 10, 10, 10, 10, 10},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// 马: strongest in the center, weak on the rim.
var horseTable = squareTable{
	{-20, -10, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 10, 5, 0, -10},
	{-10, 0, 10, 20, 20, 20, 10, 0, -10},
	{-10, 0, 10, 20, 30, 20, 10, 0, -10},
	{-10, 0, 10, 20, 30, 20, 10, 0, -10},
	{-10, 0, 10, 20, 20, 20, 10, 0, -10},
	{-10, 0, 5, 10, 10, 10, 5, 0, -10},
	{-10, 0, 0, 0, 0, 0, 0, 0, -10},
	{-20, -10, -10, -10, -10, -10, -10, -10, -20},
}

// 车: second and second-to-last ranks pay best.
var chariotTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{5, 10, 10, 10, 10, 10, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// 炮: home ranks and the enemy back rank pay, central files mid-board too.
var cannonTable = squareTable{
	{20, 20, 20, 20, 20, 20, 20, 20, 20},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 5, 5, 5, 0, 0, -5},
	{-5, 0, 0, 5, 10, 5, 0, 0, -5},
	{-5, 0, 0, 5, 10, 5, 0, 0, -5},
	{-5, 0, 0, 5, 5, 5, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, 0, -5},
	{20, 20, 20, 20, 20, 20, 20, 20, 20},
}

// 帅: sheltered palace squares score slightly higher.
var kingTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 5, 1, 0, 0, 0},
	{0, 0, 0, 2, 3, 2, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 0, 0, 0},
}

// 仕
var advisorTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 20, 0, 20, 0, 0, 0},
	{0, 0, 0, 0, 23, 0, 0, 0, 0},
	{0, 0, 0, 20, 0, 20, 0, 0, 0},
}

// 相
var elephantTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 20, 0, 0, 0, 20, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{18, 0, 0, 0, 23, 0, 0, 0, 18},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 20, 0, 0, 0, 20, 0, 0},
}

var redTables = map[PieceType]*squareTable{
	Pawn:     &pawnTable,
	Horse:    &horseTable,
	Chariot:  &chariotTable,
	Cannon:   &cannonTable,
	King:     &kingTable,
	Advisor:  &advisorTable,
	Elephant: &elephantTable,
}

// positionValue looks up the square value for a piece. Black pieces mirror
// the red table by flipping the row.
func positionValue(pc Piece, pos Position) float64 {
	tbl, ok := redTables[pc.Type]
	if !ok {
		return 0
	}
	row := pos.Row
	if pc.Side == Black {
		row = Rows - 1 - row
	}
	return tbl[row][pos.Col]
}

// initialSquares maps each piece to the squares it occupies in the opening
// layout, used by the development score.
var initialSquares = map[Piece][]Position{
	{Side: Red, Type: Chariot}:    {{Row: 9, Col: 0}, {Row: 9, Col: 8}},
	{Side: Red, Type: Horse}:      {{Row: 9, Col: 1}, {Row: 9, Col: 7}},
	{Side: Red, Type: Elephant}:   {{Row: 9, Col: 2}, {Row: 9, Col: 6}},
	{Side: Red, Type: Advisor}:    {{Row: 9, Col: 3}, {Row: 9, Col: 5}},
	{Side: Red, Type: King}:       {{Row: 9, Col: 4}},
	{Side: Red, Type: Cannon}:     {{Row: 7, Col: 1}, {Row: 7, Col: 7}},
	{Side: Red, Type: Pawn}:       {{Row: 6, Col: 0}, {Row: 6, Col: 2}, {Row: 6, Col: 4}, {Row: 6, Col: 6}, {Row: 6, Col: 8}},
	{Side: Black, Type: Chariot}:  {{Row: 0, Col: 0}, {Row: 0, Col: 8}},
	{Side: Black, Type: Horse}:    {{Row: 0, Col: 1}, {Row: 0, Col: 7}},
	{Side: Black, Type: Elephant}: {{Row: 0, Col: 2}, {Row: 0, Col: 6}},
	{Side: Black, Type: Advisor}:  {{Row: 0, Col: 3}, {Row: 0, Col: 5}},
	{Side: Black, Type: King}:     {{Row: 0, Col: 4}},
	{Side: Black, Type: Cannon}:   {{Row: 2, Col: 1}, {Row: 2, Col: 7}},
	{Side: Black, Type: Pawn}:     {{Row: 3, Col: 0}, {Row: 3, Col: 2}, {Row: 3, Col: 4}, {Row: 3, Col: 6}, {Row: 3, Col: 8}},
}

// centerSquares are the six river-adjacent central squares contested for
// center control.
var centerSquares = []Position{
	{Row: 4, Col: 3}, {Row: 4, Col: 4}, {Row: 4, Col: 5},
	{Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 5},
}
