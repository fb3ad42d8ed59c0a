package advisorpresenter

import (
	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
	svc "github.com/park285/Xiangqi-Advisor-bot/internal/service/advisor"
	"github.com/park285/Xiangqi-Advisor-bot/internal/xiangqi"
	"github.com/park285/Xiangqi-Advisor-bot/pkg/advisordto"
)

func ToDTOState(s *svc.SessionState) *advisordto.SessionState {
	if s == nil {
		return nil
	}
	return &advisordto.SessionState{
		SessionUUID: s.SessionUUID,
		Room:        s.Room,
		Player:      s.Player,
		Side:        s.Side.String(),
		Profile:     s.Profile,
		Phase:       string(s.Phase),
		MoveCount:   s.MoveCount,
		Analyses:    s.Analyses,
		StartedAt:   s.StartedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToDTOReport flattens one snapshot outcome into its transport shape.
func ToDTOReport(res *svc.SnapshotResult) *advisordto.AnalysisReport {
	if res == nil || res.State == nil || res.Analysis == nil {
		return nil
	}
	return &advisordto.AnalysisReport{
		SessionUUID:     res.State.SessionUUID,
		Seq:             res.Seq,
		Phase:           string(res.State.Phase),
		MoveCount:       res.State.MoveCount,
		Evaluation:      toDTOEvaluation(res.Analysis.Evaluation),
		OpponentMove:    ToDTOMove(res.Analysis.OpponentLastMove),
		Recommendations: toDTORecommendations(res.Analysis.Recommendations),
		Threats:         append([]string(nil), res.Analysis.Threats...),
		Opportunities:   append([]string(nil), res.Analysis.Opportunities...),
	}
}

// ToDTOAnalysis pairs a session with an on-demand re-analysis. No snapshot
// sequence stands behind it, so the report carries none.
func ToDTOAnalysis(state *svc.SessionState, analysis *xiangqi.GameAnalysis) *advisordto.AnalysisReport {
	if state == nil || analysis == nil {
		return nil
	}
	return ToDTOReport(&svc.SnapshotResult{State: state, Analysis: analysis})
}

func ToDTOMove(mv *xiangqi.Move) *advisordto.MoveInfo {
	if mv == nil {
		return nil
	}
	info := &advisordto.MoveInfo{
		PieceID:   mv.Piece.ID(),
		PieceName: xiangqi.PieceName(mv.Piece),
		Side:      mv.Piece.Side.String(),
		From:      xiangqi.FormatPosition(mv.From),
		To:        xiangqi.FormatPosition(mv.To),
		Capture:   mv.IsCapture(),
		Check:     mv.Kind == xiangqi.KindCheck,
		Text:      xiangqi.FormatMove(*mv),
	}
	if mv.IsCapture() {
		info.Captured = xiangqi.PieceName(mv.Captured)
	}
	return info
}

func toDTOEvaluation(ev xiangqi.Evaluation) advisordto.EvaluationInfo {
	return advisordto.EvaluationInfo{
		Material:       ev.Material,
		Position:       ev.Position,
		Mobility:       ev.Mobility,
		KingSafety:     ev.KingSafety,
		CenterControl:  ev.CenterControl,
		Development:    ev.Development,
		Attack:         ev.Attack,
		Defense:        ev.Defense,
		Total:          ev.Total,
		WinProbability: ev.WinProbability,
		Situation:      ev.Situation(),
	}
}

func toDTORecommendations(list []xiangqi.Recommendation) []advisordto.RecommendationInfo {
	out := make([]advisordto.RecommendationInfo, 0, len(list))
	for _, rec := range list {
		mv := rec.Move
		info := ToDTOMove(&mv)
		if info == nil {
			continue
		}
		out = append(out, advisordto.RecommendationInfo{
			Move:           *info,
			Score:          rec.Score,
			WinProbability: rec.WinProbability,
			Confidence:     rec.Confidence,
			Reasoning:      rec.Reasoning,
		})
	}
	return out
}

func ToDTORecord(s *domain.AdvisorSession) *advisordto.SessionRecord {
	if s == nil {
		return nil
	}
	ss := *s
	return &advisordto.SessionRecord{
		ID:          ss.ID,
		SessionUUID: ss.SessionUUID,
		Profile:     ss.Profile,
		PlayerSide:  ss.PlayerSide,
		Phase:       ss.Phase,
		MoveCount:   ss.MoveCount,
		Analyses:    ss.Analyses,
		Moves:       append([]string(nil), ss.Moves...),
		FinalScore:  ss.FinalScore,
		FinalWinPct: ss.FinalWinPct,
		Summary:     ss.Summary,
		StartedAt:   ss.StartedAt,
		EndedAt:     ss.EndedAt,
		Duration:    ss.Duration,
	}
}

func ToDTORecords(list []*domain.AdvisorSession) []*advisordto.SessionRecord {
	out := make([]*advisordto.SessionRecord, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		out = append(out, ToDTORecord(s))
	}
	return out
}

func ToDTOProfile(p xiangqi.EvalProfile) *advisordto.ProfileInfo {
	return &advisordto.ProfileInfo{
		Name:               p.Name,
		MaterialWeight:     p.MaterialWeight,
		PositionWeight:     p.PositionWeight,
		MobilityWeight:     p.MobilityWeight,
		KingSafetyWeight:   p.KingSafetyWeight,
		CenterWeight:       p.CenterWeight,
		DevelopmentWeight:  p.DevelopmentWeight,
		AttackWeight:       p.AttackWeight,
		DefenseWeight:      p.DefenseWeight,
		WinProbSlope:       p.WinProbSlope,
		MaxRecommendations: p.MaxRecommendations,
	}
}

func ToDTOProfiles(list []xiangqi.EvalProfile) []*advisordto.ProfileInfo {
	out := make([]*advisordto.ProfileInfo, 0, len(list))
	for _, p := range list {
		out = append(out, ToDTOProfile(p))
	}
	return out
}
