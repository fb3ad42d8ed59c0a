package xiangqi

import "testing"

func place(b *Board, row, col int, pc Piece) {
	b.Set(Position{Row: row, Col: col}, pc)
}

func TestGeneratedMovesStayOnBoard(t *testing.T) {
	b := InitialBoard()
	for _, side := range []Side{Red, Black} {
		for _, mv := range GenerateMoves(b, side) {
			if !mv.To.InBoard() {
				t.Fatalf("%v move to off-board square %v", side, mv.To)
			}
			if dst := b.At(mv.To); !dst.IsEmpty() && dst.Side == side {
				t.Fatalf("%v move onto own piece at %v", side, mv.To)
			}
			if mv.Piece.Side != side {
				t.Fatalf("move generated for wrong side: %v", mv)
			}
		}
	}
}

func TestKingAndAdvisorStayInPalace(t *testing.T) {
	b := InitialBoard()
	for _, side := range []Side{Red, Black} {
		for _, mv := range GenerateMoves(b, side) {
			if mv.Piece.Type != King && mv.Piece.Type != Advisor {
				continue
			}
			if !inPalace(side, mv.To) {
				t.Fatalf("%v %v left the palace: %v", side, mv.Piece.Type, mv.To)
			}
		}
	}
}

func TestElephantEyeBlock(t *testing.T) {
	b := InitialBoard()
	from := Position{Row: 9, Col: 2}
	elephant := b.At(from)
	if !IsLegalMove(b, from, Position{Row: 7, Col: 0}, elephant) {
		t.Fatalf("open-eye elephant move rejected")
	}
	place(b, 8, 1, Piece{Side: Red, Type: Pawn})
	if IsLegalMove(b, from, Position{Row: 7, Col: 0}, elephant) {
		t.Fatalf("blocked-eye elephant move accepted")
	}
}

func TestElephantCannotCrossRiver(t *testing.T) {
	var b Board
	elephant := Piece{Side: Red, Type: Elephant}
	place(&b, 5, 2, elephant)
	if IsLegalMove(&b, Position{Row: 5, Col: 2}, Position{Row: 3, Col: 0}, elephant) {
		t.Fatalf("red elephant crossed the river")
	}
	if !IsLegalMove(&b, Position{Row: 5, Col: 2}, Position{Row: 7, Col: 0}, elephant) {
		t.Fatalf("legal elephant retreat rejected")
	}
}

func TestHorseLegBlock(t *testing.T) {
	b := InitialBoard()
	from := Position{Row: 9, Col: 1}
	horse := b.At(from)
	if !IsLegalMove(b, from, Position{Row: 7, Col: 0}, horse) {
		t.Fatalf("open-leg horse move rejected")
	}
	// The elephant on (9,2) blocks the sideways jump.
	if IsLegalMove(b, from, Position{Row: 8, Col: 3}, horse) {
		t.Fatalf("blocked-leg horse move accepted")
	}
	place(b, 8, 1, Piece{Side: Red, Type: Pawn})
	if IsLegalMove(b, from, Position{Row: 7, Col: 0}, horse) {
		t.Fatalf("horse jumped over a blocked leg")
	}
}

func TestCannonScreens(t *testing.T) {
	b := InitialBoard()
	from := Position{Row: 7, Col: 1}
	cannon := b.At(from)

	// Quiet slide through an empty lane.
	if !IsLegalMove(b, from, Position{Row: 5, Col: 1}, cannon) {
		t.Fatalf("quiet cannon slide rejected")
	}
	// Quiet slide through a screen is illegal.
	if IsLegalMove(b, from, Position{Row: 1, Col: 1}, cannon) {
		t.Fatalf("cannon slid through a screen")
	}
	// Capture over exactly one screen: black horse behind the black cannon.
	if !IsLegalMove(b, from, Position{Row: 0, Col: 1}, cannon) {
		t.Fatalf("one-screen cannon capture rejected")
	}
	// A second screen invalidates the capture.
	place(b, 5, 1, Piece{Side: Red, Type: Pawn})
	if IsLegalMove(b, from, Position{Row: 0, Col: 1}, cannon) {
		t.Fatalf("two-screen cannon capture accepted")
	}
}

func TestPawnRules(t *testing.T) {
	b := InitialBoard()
	pawn := Piece{Side: Red, Type: Pawn}
	from := Position{Row: 6, Col: 0}
	if !IsLegalMove(b, from, Position{Row: 5, Col: 0}, pawn) {
		t.Fatalf("forward pawn push rejected")
	}
	if IsLegalMove(b, from, Position{Row: 6, Col: 1}, pawn) {
		t.Fatalf("sideways move before the river accepted")
	}
	if IsLegalMove(b, from, Position{Row: 7, Col: 0}, pawn) {
		t.Fatalf("backward pawn move accepted")
	}

	var crossed Board
	place(&crossed, 4, 0, pawn)
	from = Position{Row: 4, Col: 0}
	if !IsLegalMove(&crossed, from, Position{Row: 4, Col: 1}, pawn) {
		t.Fatalf("sideways move after crossing rejected")
	}
	if !IsLegalMove(&crossed, from, Position{Row: 3, Col: 0}, pawn) {
		t.Fatalf("forward move after crossing rejected")
	}
	if IsLegalMove(&crossed, from, Position{Row: 5, Col: 0}, pawn) {
		t.Fatalf("backward move after crossing accepted")
	}

	black := Piece{Side: Black, Type: Pawn}
	var bb Board
	place(&bb, 3, 4, black)
	if !IsLegalMove(&bb, Position{Row: 3, Col: 4}, Position{Row: 4, Col: 4}, black) {
		t.Fatalf("black pawn forward push rejected")
	}
	if IsLegalMove(&bb, Position{Row: 3, Col: 4}, Position{Row: 3, Col: 5}, black) {
		t.Fatalf("black sideways move before the river accepted")
	}
}

func TestChariotBlockedPath(t *testing.T) {
	b := InitialBoard()
	chariot := b.At(Position{Row: 9, Col: 0})
	if !IsLegalMove(b, Position{Row: 9, Col: 0}, Position{Row: 8, Col: 0}, chariot) {
		t.Fatalf("single-step chariot move rejected")
	}
	// Own pawn on (6,0) and black pawn on (3,0) block the full file.
	if IsLegalMove(b, Position{Row: 9, Col: 0}, Position{Row: 0, Col: 0}, chariot) {
		t.Fatalf("chariot drove through blockers")
	}
	if IsLegalMove(b, Position{Row: 9, Col: 0}, Position{Row: 6, Col: 0}, chariot) {
		t.Fatalf("chariot captured its own pawn")
	}
}

func TestKingSingleStep(t *testing.T) {
	var b Board
	king := Piece{Side: Red, Type: King}
	place(&b, 9, 4, king)
	from := Position{Row: 9, Col: 4}
	if !IsLegalMove(&b, from, Position{Row: 8, Col: 4}, king) {
		t.Fatalf("king step rejected")
	}
	if IsLegalMove(&b, from, Position{Row: 8, Col: 3}, king) {
		t.Fatalf("diagonal king step accepted")
	}
	if IsLegalMove(&b, from, Position{Row: 7, Col: 4}, king) {
		t.Fatalf("two-square king step accepted")
	}
}

func TestAttackPredicates(t *testing.T) {
	var b Board
	cannon := Piece{Side: Red, Type: Cannon}
	place(&b, 7, 1, cannon)
	place(&b, 4, 1, Piece{Side: Red, Type: Pawn})
	place(&b, 0, 1, Piece{Side: Black, Type: Chariot})

	from := Position{Row: 7, Col: 1}
	target := Position{Row: 0, Col: 1}
	// With the screen in place the cannon attacks the occupied square.
	if !AttacksSquare(&b, from, target) {
		t.Fatalf("cannon with one screen does not attack target")
	}
	// Clearing the target leaves the screen between, so the probing
	// predicate sees no quiet path.
	if CanAttack(&b, from, target) {
		t.Fatalf("cleared-target probe ignored the screen")
	}

	b.Set(Position{Row: 4, Col: 1}, Piece{})
	if AttacksSquare(&b, from, target) {
		t.Fatalf("screenless cannon capture accepted")
	}
	if !CanAttack(&b, from, target) {
		t.Fatalf("cleared-target probe rejected an open lane")
	}
}

func TestMovesFromEmptySquare(t *testing.T) {
	b := InitialBoard()
	if moves := MovesFrom(b, Position{Row: 4, Col: 4}); moves != nil {
		t.Fatalf("moves from empty square: %v", moves)
	}
}

func TestGenerateMovesEmptySideOrNilBoard(t *testing.T) {
	if moves := GenerateMoves(nil, Red); moves != nil {
		t.Fatalf("nil board produced moves")
	}
	if moves := GenerateMoves(InitialBoard(), SideNone); moves != nil {
		t.Fatalf("SideNone produced moves")
	}
}
