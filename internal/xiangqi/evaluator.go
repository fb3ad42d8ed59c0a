package xiangqi

import (
	"fmt"
	"math"
)

// Evaluation carries the weighted sub-scores of a single position, each
// expressed as my-side minus opponent from the chosen perspective.
type Evaluation struct {
	Material       float64 `json:"material_score"`
	Position       float64 `json:"position_score"`
	Mobility       float64 `json:"mobility_score"`
	KingSafety     float64 `json:"king_safety_score"`
	CenterControl  float64 `json:"center_control_score"`
	Development    float64 `json:"development_score"`
	Attack         float64 `json:"attack_score"`
	Defense        float64 `json:"defense_score"`
	Total          float64 `json:"total_score"`
	WinProbability float64 `json:"win_probability"`
}

// Comparison relates two evaluations of the same perspective, typically a
// position before and after a candidate move.
type Comparison struct {
	Before          Evaluation `json:"before"`
	After           Evaluation `json:"after"`
	ScoreDiff       float64    `json:"score_difference"`
	ProbabilityDiff float64    `json:"probability_difference"`
	Improved        bool       `json:"is_improvement"`
	Magnitude       float64    `json:"improvement_magnitude"`
}

// Evaluator scores positions under a fixed profile. It is stateless apart
// from the profile and safe for concurrent use.
type Evaluator struct {
	profile EvalProfile
}

func NewEvaluator(profile EvalProfile) *Evaluator {
	return &Evaluator{profile: profile}
}

func (e *Evaluator) Profile() EvalProfile { return e.profile }

// Evaluate scores the board from the given perspective. SideNone falls back
// to the red perspective.
func (e *Evaluator) Evaluate(b *Board, perspective Side) Evaluation {
	if perspective != Black {
		perspective = Red
	}
	ev := Evaluation{
		Material:      materialScore(b, perspective),
		Position:      positionScore(b, perspective),
		Mobility:      mobilityScore(b, perspective),
		KingSafety:    kingSafetyScore(b, perspective),
		CenterControl: centerControlScore(b, perspective),
		Development:   developmentScore(b, perspective),
		Attack:        attackScore(b, perspective),
		Defense:       defenseScore(b, perspective),
	}
	p := e.profile
	ev.Total = ev.Material*p.MaterialWeight +
		ev.Position*p.PositionWeight +
		ev.Mobility*p.MobilityWeight +
		ev.KingSafety*p.KingSafetyWeight +
		ev.CenterControl*p.CenterWeight +
		ev.Development*p.DevelopmentWeight +
		ev.Attack*p.AttackWeight +
		ev.Defense*p.DefenseWeight
	ev.WinProbability = e.winProbability(ev.Total)
	return ev
}

// winProbability maps a total score onto (0,1) through a logistic curve and
// clamps the tails so neither side ever reads as decided.
func (e *Evaluator) winProbability(score float64) float64 {
	p := 1.0 / (1.0 + math.Exp(-score*e.profile.WinProbSlope))
	return math.Max(0.01, math.Min(0.99, p))
}

// Compare evaluates two boards from one perspective and reports the swing
// from the first to the second.
func (e *Evaluator) Compare(before, after *Board, perspective Side) Comparison {
	ev1 := e.Evaluate(before, perspective)
	ev2 := e.Evaluate(after, perspective)
	diff := ev2.Total - ev1.Total
	return Comparison{
		Before:          ev1,
		After:           ev2,
		ScoreDiff:       diff,
		ProbabilityDiff: ev2.WinProbability - ev1.WinProbability,
		Improved:        diff > 0,
		Magnitude:       math.Abs(diff),
	}
}

// Situation labels the win probability on the customary seven-step scale.
func (ev Evaluation) Situation() string {
	switch pct := ev.WinProbability * 100; {
	case pct >= 80:
		return "大优"
	case pct >= 65:
		return "优势"
	case pct >= 55:
		return "小优"
	case pct >= 45:
		return "均势"
	case pct >= 35:
		return "小劣"
	case pct >= 20:
		return "劣势"
	default:
		return "大劣"
	}
}

// Summary renders the evaluation as the multi-line situation report shown
// to players.
func (ev Evaluation) Summary() string {
	return fmt.Sprintf("局面评估: %s (胜率: %.1f%%)\n总分: %.1f\n子力优势: %.1f\n位置价值: %.1f\n王安全性: %.1f",
		ev.Situation(), ev.WinProbability*100, ev.Total, ev.Material, ev.Position, ev.KingSafety)
}

func materialScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() {
				continue
			}
			v := pieceValues[pc.Type]
			if pc.Side == perspective {
				mine += v
			} else {
				theirs += v
			}
		}
	}
	return mine - theirs
}

func positionScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() {
				continue
			}
			v := positionValue(pc, Position{Row: r, Col: c})
			if pc.Side == perspective {
				mine += v
			} else {
				theirs += v
			}
		}
	}
	return mine - theirs
}

// mobilityScore uses flat per-type estimates rather than counting generated
// moves, so it prices the army composition, not the current geometry.
func mobilityScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() {
				continue
			}
			v := mobilityBase[pc.Type]
			if pc.Side == perspective {
				mine += v
			} else {
				theirs += v
			}
		}
	}
	return (mine - theirs) * 2
}

func kingSafetyScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	if pos, ok := b.FindKing(perspective); ok {
		mine = sideKingSafety(b, pos, perspective)
	}
	opp := perspective.Opponent()
	if pos, ok := b.FindKing(opp); ok {
		theirs = sideKingSafety(b, pos, opp)
	}
	return (mine - theirs) * 50
}

// sideKingSafety scores one king: own non-king pieces inside the palace
// protect, enemy pieces with a line on the king threaten.
func sideKingSafety(b *Board, king Position, side Side) float64 {
	rowLo, rowHi := 0, 2
	if side == Red {
		rowLo, rowHi = 7, 9
	}
	protectors := 0
	for r := rowLo; r <= rowHi; r++ {
		for c := 3; c <= 5; c++ {
			pc := b[r][c]
			if !pc.IsEmpty() && pc.Side == side && pc.Type != King {
				protectors++
			}
		}
	}
	threats := 0
	opp := side.Opponent()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || pc.Side != opp {
				continue
			}
			if canThreatenKing(pc, Position{Row: r, Col: c}, king) {
				threats++
			}
		}
	}
	return float64(protectors*20 - threats*30)
}

// canThreatenKing is a deliberately loose alignment test: chariots and
// cannons count on a shared rank or file regardless of blockers, horses on
// L-distance regardless of legs. It measures pressure, not legal capture.
func canThreatenKing(pc Piece, from, king Position) bool {
	switch pc.Type {
	case Chariot, Cannon:
		return from.Row == king.Row || from.Col == king.Col
	case Horse:
		dr, dc := abs(king.Row-from.Row), abs(king.Col-from.Col)
		return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
	case Pawn:
		forward := -1
		if pc.Side == Black {
			forward = 1
		}
		if king.Row == from.Row+forward && king.Col == from.Col {
			return true
		}
		return crossedRiver(pc.Side, from.Row) && king.Row == from.Row && abs(king.Col-from.Col) == 1
	default:
		return false
	}
}

func centerControlScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for _, pos := range centerSquares {
		pc := b.At(pos)
		if pc.IsEmpty() {
			continue
		}
		if pc.Side == perspective {
			mine += 15
		} else {
			theirs += 15
		}
	}
	return mine - theirs
}

// developmentScore rewards each opening square a side has vacated.
func developmentScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for pc, squares := range initialSquares {
		for _, pos := range squares {
			if b.At(pos) == pc {
				continue
			}
			if pc.Side == perspective {
				mine += 10
			} else {
				theirs += 10
			}
		}
	}
	return mine - theirs
}

// attackScore prices each side's river crossers at a tenth of their value.
func attackScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || !crossedRiver(pc.Side, r) {
				continue
			}
			v := pieceValues[pc.Type] * 0.1
			if pc.Side == perspective {
				mine += v
			} else {
				theirs += v
			}
		}
	}
	return mine - theirs
}

// defenseScore prices each side's home-half garrison at a twentieth of its
// value.
func defenseScore(b *Board, perspective Side) float64 {
	var mine, theirs float64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || !ownHalf(pc.Side, r) {
				continue
			}
			v := pieceValues[pc.Type] * 0.05
			if pc.Side == perspective {
				mine += v
			} else {
				theirs += v
			}
		}
	}
	return mine - theirs
}
