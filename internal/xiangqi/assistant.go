package xiangqi

import (
	"fmt"
	"sort"
	"strings"
)

// GamePhase tracks how far the game has progressed, driven by the count of
// inferred opponent moves.
type GamePhase string

const (
	PhaseOpening    GamePhase = "opening"
	PhaseMiddlegame GamePhase = "middlegame"
	PhaseEndgame    GamePhase = "endgame"
)

const (
	openingMoveLimit    = 10
	middlegameMoveLimit = 30
)

// defaultAnalysisHistoryCap bounds the per-session analysis history so a
// long-running watch loop cannot grow without limit.
const defaultAnalysisHistoryCap = 200

const defaultSearchDepth = 3

// Recommendation is one ranked candidate reply.
type Recommendation struct {
	Move           Move    `json:"move"`
	Score          float64 `json:"score"`
	WinProbability float64 `json:"win_probability"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

// GameAnalysis is the full result of one analysis cycle.
type GameAnalysis struct {
	Evaluation Evaluation `json:"evaluation"`
	// OpponentLastMove is the most recent inferred move, present once the
	// detector has recognized one. On a watched opponent board that is the
	// opponent's reply.
	OpponentLastMove *Move            `json:"opponent_last_move,omitempty"`
	Recommendations  []Recommendation `json:"recommendations"`
	Threats          []string         `json:"threats"`
	Opportunities    []string         `json:"opportunities"`
}

// valuableTypes are the piece types worth calling out in threat and
// capture-opportunity summaries.
var valuableTypes = [3]PieceType{Chariot, Cannon, Horse}

// Assistant drives one advisory session: it ingests board snapshots,
// infers the opponent's moves, tracks the game phase and produces ranked
// reply recommendations. Not safe for concurrent use; the owning session
// serializes access.
type Assistant struct {
	player      Side
	opponent    Side
	detector    *Detector
	evaluator   *Evaluator
	board       *Board
	phase       GamePhase
	moveCount   int
	searchDepth int
	history     []GameAnalysis
	historyCap  int
}

// NewAssistant creates an assistant advising the given side under the given
// evaluation profile. SideNone defaults to red, the side conventionally at
// the bottom of the board.
func NewAssistant(player Side, profile EvalProfile) *Assistant {
	if player != Black {
		player = Red
	}
	return &Assistant{
		player:      player,
		opponent:    player.Opponent(),
		detector:    NewDetector(),
		evaluator:   NewEvaluator(profile),
		phase:       PhaseOpening,
		searchDepth: defaultSearchDepth,
		historyCap:  defaultAnalysisHistoryCap,
	}
}

func (a *Assistant) PlayerSide() Side { return a.player }

func (a *Assistant) OpponentSide() Side { return a.opponent }

func (a *Assistant) Phase() GamePhase { return a.phase }

func (a *Assistant) MoveCount() int { return a.moveCount }

func (a *Assistant) Profile() EvalProfile { return a.evaluator.Profile() }

func (a *Assistant) SearchDepth() int { return a.searchDepth }

func (a *Assistant) LastMove() *Move { return a.detector.LastMove() }

func (a *Assistant) MoveHistory() []Move { return a.detector.MoveHistory() }

// SetSearchDepth records the configured lookahead. Candidate scoring is
// single-ply regardless; the knob is reported, not searched.
func (a *Assistant) SetSearchDepth(n int) {
	if n > 0 {
		a.searchDepth = n
	}
}

// SetHistoryLimit bounds the retained analysis history. Non-positive values
// restore the default cap.
func (a *Assistant) SetHistoryLimit(n int) {
	if n <= 0 {
		n = defaultAnalysisHistoryCap
	}
	a.historyCap = n
	a.trimHistory()
}

// SetProfile swaps the evaluation profile mid-session. Board, move history
// and phase are untouched; only future scoring changes.
func (a *Assistant) SetProfile(profile EvalProfile) {
	a.evaluator = NewEvaluator(profile)
}

// CurrentBoard returns a copy of the board as of the last snapshot, or nil
// before the first one.
func (a *Assistant) CurrentBoard() *Board {
	if a.board == nil {
		return nil
	}
	return a.board.Clone()
}

// AnalysisHistory returns a copy of the retained analysis results, oldest
// first.
func (a *Assistant) AnalysisHistory() []GameAnalysis {
	return append([]GameAnalysis(nil), a.history...)
}

// UpdateBoardState ingests a raw snapshot grid, infers the move that led to
// it, advances the phase counter when that move was the opponent's, and
// returns a fresh analysis of the new position. Invalid grids fail before
// any state changes.
func (a *Assistant) UpdateBoardState(cells [][]string) (*GameAnalysis, error) {
	b, err := ParseBoard(cells)
	if err != nil {
		return nil, err
	}
	mv := a.detector.Observe(b)
	a.board = b
	if mv != nil && mv.Piece.Side == a.opponent {
		a.moveCount++
		a.updatePhase()
	}
	analysis := a.analyze()
	a.history = append(a.history, analysis)
	a.trimHistory()
	return &analysis, nil
}

// Analyze re-analyzes the current position without advancing any state.
// It fails with ErrNoBoard before the first snapshot.
func (a *Assistant) Analyze() (*GameAnalysis, error) {
	if a.board == nil {
		return nil, ErrNoBoard
	}
	analysis := a.analyze()
	return &analysis, nil
}

// Recommendations ranks the player's candidate replies on the current
// board. It fails with ErrNoBoard before the first snapshot.
func (a *Assistant) Recommendations() ([]Recommendation, error) {
	if a.board == nil {
		return nil, ErrNoBoard
	}
	current := a.evaluator.Evaluate(a.board, a.player)
	return a.recommend(current), nil
}

// Reset clears the whole session: board, inferred moves, phase counter and
// analysis history.
func (a *Assistant) Reset() {
	a.detector.ClearHistory()
	a.board = nil
	a.phase = PhaseOpening
	a.moveCount = 0
	a.history = nil
}

// GameSummary renders the session status for display: phase, move count,
// the latest evaluation summary and any open threats or opportunities.
func (a *Assistant) GameSummary() string {
	if len(a.history) == 0 {
		return "暂无分析数据"
	}
	latest := a.history[len(a.history)-1]
	var sb strings.Builder
	fmt.Fprintf(&sb, "游戏阶段: %s\n", a.phase)
	fmt.Fprintf(&sb, "走法数: %d\n", a.moveCount)
	sb.WriteString(latest.Evaluation.Summary())
	if len(latest.Threats) > 0 {
		sb.WriteString("\n威胁: ")
		sb.WriteString(strings.Join(latest.Threats, ", "))
	}
	if len(latest.Opportunities) > 0 {
		sb.WriteString("\n机会: ")
		sb.WriteString(strings.Join(latest.Opportunities, ", "))
	}
	return sb.String()
}

func (a *Assistant) updatePhase() {
	switch {
	case a.moveCount <= openingMoveLimit:
		a.phase = PhaseOpening
	case a.moveCount <= middlegameMoveLimit:
		a.phase = PhaseMiddlegame
	default:
		a.phase = PhaseEndgame
	}
}

func (a *Assistant) trimHistory() {
	if len(a.history) > a.historyCap {
		a.history = append([]GameAnalysis(nil), a.history[len(a.history)-a.historyCap:]...)
	}
}

func (a *Assistant) analyze() GameAnalysis {
	ev := a.evaluator.Evaluate(a.board, a.player)
	return GameAnalysis{
		Evaluation:       ev,
		OpponentLastMove: a.detector.LastMove(),
		Recommendations:  a.recommend(ev),
		Threats:          a.threats(),
		Opportunities:    a.opportunities(),
	}
}

// recommend scores every candidate reply by one-ply simulation against the
// current total and keeps the best few.
func (a *Assistant) recommend(current Evaluation) []Recommendation {
	moves := GenerateMoves(a.board, a.player)
	if len(moves) == 0 {
		return nil
	}
	recs := make([]Recommendation, 0, len(moves))
	for _, mv := range moves {
		after := mv.Apply(a.board)
		if givesCheck(after, mv.To, mv.Piece) {
			mv.Kind = KindCheck
		}
		ev := a.evaluator.Evaluate(after, a.player)
		delta := ev.Total - current.Total
		recs = append(recs, Recommendation{
			Move:           mv,
			Score:          ev.Total,
			WinProbability: ev.WinProbability,
			Confidence:     moveConfidence(mv, delta),
			Reasoning:      a.moveReasoning(mv, delta, ev),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if limit := a.evaluator.Profile().MaxRecommendations; len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// moveConfidence grades how strongly a candidate is endorsed: the score
// swing dominates, captures and checks add a little on top.
func moveConfidence(mv Move, delta float64) float64 {
	confidence := 0.5
	switch {
	case delta > 100:
		confidence += 0.3
	case delta > 50:
		confidence += 0.2
	case delta > 0:
		confidence += 0.1
	}
	if mv.IsCapture() {
		confidence += 0.1
	}
	if mv.Kind == KindCheck {
		confidence += 0.15
	}
	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 0.95 {
		return 0.95
	}
	return confidence
}

// moveReasoning builds the display rationale from the move kind, the score
// swing, the resulting win probability and the game phase.
func (a *Assistant) moveReasoning(mv Move, delta float64, after Evaluation) string {
	var parts []string
	if mv.IsCapture() {
		parts = append(parts, fmt.Sprintf("吃掉对方%s，获得子力优势", PieceName(mv.Captured)))
	}
	if mv.Kind == KindCheck {
		parts = append(parts, "将军，迫使对方应对")
	}
	switch {
	case delta > 100:
		parts = append(parts, "大幅改善局面")
	case delta > 50:
		parts = append(parts, "明显改善局面")
	case delta > 0:
		parts = append(parts, "略微改善局面")
	}
	switch {
	case after.WinProbability > 0.8:
		parts = append(parts, "确立优势地位")
	case after.WinProbability > 0.6:
		parts = append(parts, "获得优势")
	}
	switch a.phase {
	case PhaseOpening:
		parts = append(parts, "有利于开局发展")
	case PhaseEndgame:
		parts = append(parts, "适合残局走法")
	}
	if len(parts) == 0 {
		return "常规走法"
	}
	return strings.Join(parts, "，")
}

// threats lists what the opponent is pressing against: the player's king
// first, then each valuable piece type with at least one attacked member.
func (a *Assistant) threats() []string {
	var threats []string
	if king, ok := a.board.FindKing(a.player); ok && a.sideAttacks(a.opponent, king) {
		threats = append(threats, "王受到威胁！")
	}
	for _, t := range valuableTypes {
		if a.anyPieceAttacked(a.player, t) {
			threats = append(threats, PieceName(Piece{Side: a.player, Type: t})+"受到威胁")
		}
	}
	return threats
}

// opportunities lists what the player may strike at on the current board.
func (a *Assistant) opportunities() []string {
	var opps []string
	if king, ok := a.board.FindKing(a.opponent); ok && a.sideAttacks(a.player, king) {
		opps = append(opps, "可以攻击对方王！")
	}
	for _, t := range valuableTypes {
		if a.anyPieceAttacked(a.opponent, t) {
			opps = append(opps, "可以吃掉对方"+PieceName(Piece{Side: a.opponent, Type: t}))
		}
	}
	return opps
}

// sideAttacks reports whether any piece of side has a legal move onto
// target as the board stands.
func (a *Assistant) sideAttacks(side Side, target Position) bool {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := a.board[r][c]
			if pc.IsEmpty() || pc.Side != side {
				continue
			}
			if AttacksSquare(a.board, Position{Row: r, Col: c}, target) {
				return true
			}
		}
	}
	return false
}

// anyPieceAttacked reports whether owner has a piece of type t standing on
// a square the other side can legally reach.
func (a *Assistant) anyPieceAttacked(owner Side, t PieceType) bool {
	attacker := owner.Opponent()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := a.board[r][c]
			if pc.Side != owner || pc.Type != t {
				continue
			}
			if a.sideAttacks(attacker, Position{Row: r, Col: c}) {
				return true
			}
		}
	}
	return false
}
