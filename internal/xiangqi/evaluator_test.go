package xiangqi

import (
	"math"
	"strings"
	"testing"
)

func balancedEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	profile, err := GetProfile("balanced")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	return NewEvaluator(profile)
}

func TestEvaluateOpeningIsLevel(t *testing.T) {
	e := balancedEvaluator(t)
	ev := e.Evaluate(InitialBoard(), Red)
	if ev.Material != 0 {
		t.Errorf("opening material = %f, want 0", ev.Material)
	}
	if ev.Total != 0 {
		t.Errorf("opening total = %f, want 0", ev.Total)
	}
	if ev.WinProbability != 0.5 {
		t.Errorf("opening win probability = %f, want exactly 0.5", ev.WinProbability)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	e := balancedEvaluator(t)
	red := e.Evaluate(InitialBoard(), Red)
	black := e.Evaluate(InitialBoard(), Black)
	if red.Total != black.Total {
		t.Errorf("opening asymmetric: red %f black %f", red.Total, black.Total)
	}
}

func TestEvaluateMissingKing(t *testing.T) {
	e := balancedEvaluator(t)
	b := InitialBoard()
	b.Set(Position{Row: 0, Col: 4}, Piece{})
	ev := e.Evaluate(b, Red)
	if ev.WinProbability <= 0.8 {
		t.Errorf("kingless opponent win probability = %f, want > 0.8", ev.WinProbability)
	}
	if ev.Material != 10000 {
		t.Errorf("material after removing king = %f, want 10000", ev.Material)
	}
}

func TestWinProbabilityClamped(t *testing.T) {
	e := balancedEvaluator(t)
	if p := e.winProbability(1e9); p != 0.99 {
		t.Errorf("upper clamp = %f, want 0.99", p)
	}
	if p := e.winProbability(-1e9); p != 0.01 {
		t.Errorf("lower clamp = %f, want 0.01", p)
	}
	if p := e.winProbability(0); p != 0.5 {
		t.Errorf("logistic(0) = %f, want 0.5", p)
	}
}

func TestCompare(t *testing.T) {
	e := balancedEvaluator(t)
	before := InitialBoard()
	after := InitialBoard()
	after.Set(Position{Row: 0, Col: 1}, Piece{})

	cmp := e.Compare(before, after, Red)
	if !cmp.Improved {
		t.Fatalf("removing a black horse should improve red's position")
	}
	if cmp.ScoreDiff <= 0 {
		t.Errorf("score diff = %f, want > 0", cmp.ScoreDiff)
	}
	if cmp.Magnitude != math.Abs(cmp.ScoreDiff) {
		t.Errorf("magnitude = %f, want |%f|", cmp.Magnitude, cmp.ScoreDiff)
	}
	if cmp.ProbabilityDiff <= 0 {
		t.Errorf("probability diff = %f, want > 0", cmp.ProbabilityDiff)
	}

	rev := e.Compare(after, before, Red)
	if rev.Improved {
		t.Errorf("reverse comparison should not be an improvement")
	}
}

func TestSituationBuckets(t *testing.T) {
	cases := []struct {
		prob float64
		want string
	}{
		{0.90, "大优"},
		{0.80, "大优"},
		{0.70, "优势"},
		{0.60, "小优"},
		{0.50, "均势"},
		{0.45, "均势"},
		{0.40, "小劣"},
		{0.25, "劣势"},
		{0.10, "大劣"},
	}
	for _, tc := range cases {
		ev := Evaluation{WinProbability: tc.prob}
		if got := ev.Situation(); got != tc.want {
			t.Errorf("Situation(%.2f) = %q, want %q", tc.prob, got, tc.want)
		}
	}
}

func TestSummaryFormat(t *testing.T) {
	e := balancedEvaluator(t)
	ev := e.Evaluate(InitialBoard(), Red)
	s := ev.Summary()
	for _, frag := range []string{"局面评估", "均势", "胜率: 50.0%", "总分", "子力优势", "位置价值", "王安全性"} {
		if !strings.Contains(s, frag) {
			t.Errorf("summary missing %q:\n%s", frag, s)
		}
	}
	if lines := strings.Split(s, "\n"); len(lines) != 5 {
		t.Errorf("summary has %d lines, want 5", len(lines))
	}
}

func TestMaterialScore(t *testing.T) {
	var b Board
	place(&b, 9, 4, Piece{Side: Red, Type: King})
	place(&b, 0, 4, Piece{Side: Black, Type: King})
	place(&b, 5, 5, Piece{Side: Red, Type: Chariot})
	place(&b, 4, 4, Piece{Side: Black, Type: Pawn})
	if got := materialScore(&b, Red); got != 800 {
		t.Errorf("material = %f, want 800", got)
	}
	if got := materialScore(&b, Black); got != -800 {
		t.Errorf("material from black = %f, want -800", got)
	}
}

func TestPositionValueMirrors(t *testing.T) {
	red := positionValue(Piece{Side: Red, Type: Pawn}, Position{Row: 1, Col: 0})
	black := positionValue(Piece{Side: Black, Type: Pawn}, Position{Row: 8, Col: 0})
	if red != 70 || black != 70 {
		t.Errorf("deep pawn values red=%f black=%f, want 70 each", red, black)
	}
	if v := positionValue(Piece{Side: Red, Type: Horse}, Position{Row: 4, Col: 4}); v != 30 {
		t.Errorf("central horse value = %f, want 30", v)
	}
}

func TestMobilityScore(t *testing.T) {
	b := InitialBoard()
	if got := mobilityScore(b, Red); got != 0 {
		t.Errorf("opening mobility = %f, want 0", got)
	}
	b.Set(Position{Row: 0, Col: 1}, Piece{})
	if got := mobilityScore(b, Red); got != 16 {
		t.Errorf("mobility after removing a black horse = %f, want 16", got)
	}
}

func TestCenterControlScore(t *testing.T) {
	var b Board
	place(&b, 4, 4, Piece{Side: Red, Type: Pawn})
	place(&b, 5, 3, Piece{Side: Black, Type: Pawn})
	place(&b, 5, 4, Piece{Side: Black, Type: Horse})
	if got := centerControlScore(&b, Red); got != -15 {
		t.Errorf("center control = %f, want -15", got)
	}
}

func TestDevelopmentScore(t *testing.T) {
	b := InitialBoard()
	if got := developmentScore(b, Red); got != 0 {
		t.Errorf("opening development = %f, want 0", got)
	}
	// Red pawn advances off its starting square.
	b.Set(Position{Row: 6, Col: 0}, Piece{})
	place(b, 5, 0, Piece{Side: Red, Type: Pawn})
	if got := developmentScore(b, Red); got != 10 {
		t.Errorf("development after a pawn push = %f, want 10", got)
	}
	if got := developmentScore(b, Black); got != -10 {
		t.Errorf("development from black = %f, want -10", got)
	}
}

func TestAttackAndDefenseScores(t *testing.T) {
	var b Board
	place(&b, 9, 4, Piece{Side: Red, Type: King})
	place(&b, 0, 4, Piece{Side: Black, Type: King})
	// Red chariot across the river, black garrison at home.
	place(&b, 2, 0, Piece{Side: Red, Type: Chariot})
	place(&b, 1, 8, Piece{Side: Black, Type: Cannon})

	if got := attackScore(&b, Red); got != 90 {
		t.Errorf("attack = %f, want 90", got)
	}
	// Kings and the cannon defend their own halves; the crossed chariot
	// defends nothing.
	wantDefense := 10000*0.05 - (10000+450)*0.05
	if got := defenseScore(&b, Red); math.Abs(got-wantDefense) > 1e-9 {
		t.Errorf("defense = %f, want %f", got, wantDefense)
	}
}

func TestKingSafetyScore(t *testing.T) {
	b := InitialBoard()
	if got := kingSafetyScore(b, Red); got != 0 {
		t.Errorf("opening king safety = %f, want 0", got)
	}

	// A black chariot sharing the red king's file counts as a threat even
	// with pieces between.
	place(b, 4, 4, Piece{Side: Black, Type: Chariot})
	after := kingSafetyScore(b, Red)
	if after >= 0 {
		t.Errorf("king safety with enemy chariot on the king file = %f, want < 0", after)
	}
}

func TestCanThreatenKingPatterns(t *testing.T) {
	king := Position{Row: 9, Col: 4}
	cases := []struct {
		name string
		pc   Piece
		from Position
		want bool
	}{
		{"chariot same file", Piece{Side: Black, Type: Chariot}, Position{Row: 0, Col: 4}, true},
		{"chariot off line", Piece{Side: Black, Type: Chariot}, Position{Row: 0, Col: 3}, false},
		{"cannon same rank", Piece{Side: Black, Type: Cannon}, Position{Row: 9, Col: 0}, true},
		{"horse in range", Piece{Side: Black, Type: Horse}, Position{Row: 7, Col: 3}, true},
		{"horse out of range", Piece{Side: Black, Type: Horse}, Position{Row: 6, Col: 4}, false},
		{"pawn ahead", Piece{Side: Black, Type: Pawn}, Position{Row: 8, Col: 4}, true},
		{"crossed pawn beside", Piece{Side: Black, Type: Pawn}, Position{Row: 9, Col: 3}, true},
		{"advisor never", Piece{Side: Black, Type: Advisor}, Position{Row: 8, Col: 4}, false},
	}
	for _, tc := range cases {
		if got := canThreatenKing(tc.pc, tc.from, king); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
