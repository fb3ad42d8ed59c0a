package advisorpresenter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/park285/Xiangqi-Advisor-bot/internal/msgcat"
	svc "github.com/park285/Xiangqi-Advisor-bot/internal/service/advisor"
	"github.com/park285/Xiangqi-Advisor-bot/internal/util"
	"github.com/park285/Xiangqi-Advisor-bot/internal/xiangqi"
	"github.com/park285/Xiangqi-Advisor-bot/pkg/advisordto"
)

const (
	analysisInstruction = "♟️ 局面分析"
	historyInstruction  = "♜ 分析记录"
	recordInstruction   = "♜ 会话详情"
	profileInstruction  = "🎛️ 评估风格"
	statusInstruction   = "♟️ 分析现况"
	helpInstruction     = "📖 象棋助手"

	recordMovesLimit = 12
)

// Black horse, chariot and cannon take their traditional glyphs so the two
// sides stay distinguishable in plain text.
var cellGlyphs = map[string]string{
	"red_king":       "帅",
	"red_advisor":    "仕",
	"red_elephant":   "相",
	"red_horse":      "马",
	"red_chariot":    "车",
	"red_cannon":     "炮",
	"red_pawn":       "兵",
	"black_king":     "将",
	"black_advisor":  "士",
	"black_elephant": "象",
	"black_horse":    "馬",
	"black_chariot":  "車",
	"black_cannon":   "砲",
	"black_pawn":     "卒",
}

const emptyCellGlyph = "・"

// Formatter renders advisor DTOs into the overlay's text blocks. Lifecycle
// strings come from the message catalog with built-in fallbacks, so a
// broken override directory degrades instead of blanking the bot.
type Formatter struct {
	catalog *msgcat.Catalog
}

func NewFormatter(catalog *msgcat.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

func (f *Formatter) render(key string, data any, fallback string) string {
	if f != nil && f.catalog != nil {
		if text, err := f.catalog.Render(key, data); err == nil {
			return text
		}
	}
	return fallback
}

func (f *Formatter) SessionStarted(state *advisordto.SessionState, resumed bool) string {
	if state == nil {
		return f.render("advisor.error.internal", nil, "分析出错，请稍后重试。")
	}
	var sb strings.Builder
	if resumed {
		sb.WriteString("♻️ 已继续进行中的分析会话。\n")
	} else {
		data := map[string]string{"Room": state.Room, "Player": state.Player, "Side": sideLabel(state.Side)}
		sb.WriteString(f.render("advisor.session.started", data,
			fmt.Sprintf("开始对局分析：%s / %s（我方执%s）", state.Room, state.Player, sideLabel(state.Side))))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("• 评估风格: %s\n", state.Profile))
	if state.Analyses == 0 {
		sb.WriteString(f.render("advisor.board.waiting", nil, "等待首个棋盘快照……"))
	} else {
		sb.WriteString(fmt.Sprintf("• 已分析 %d 次，第%d手（%s）", state.Analyses, state.MoveCount, phaseLabel(state.Phase)))
	}
	return sb.String()
}

func (f *Formatter) SessionReset(state *advisordto.SessionState) string {
	text := f.render("advisor.session.reset", nil, "会话已重置，等待新的棋盘快照。")
	if state == nil {
		return text
	}
	return text + "\n• 评估风格: " + state.Profile
}

func (f *Formatter) SessionEnded(record *advisordto.SessionRecord) string {
	var sb strings.Builder
	sb.WriteString(f.render("advisor.session.ended", nil, "分析会话已结束。"))
	sb.WriteString("\n")
	if record == nil {
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("• 共%d手 · %s · 分析%d次\n", record.MoveCount, phaseLabel(record.Phase), record.Analyses))
	if record.Analyses > 0 {
		sb.WriteString(fmt.Sprintf("• 最终评估: 总分 %.1f（胜率 %.1f%%）\n", record.FinalScore, record.FinalWinPct*100))
	}
	if d := formatSessionDuration(record.Duration); d != "" {
		sb.WriteString(fmt.Sprintf("• 用时: %s\n", d))
	}
	if record.ID > 0 {
		sb.WriteString(fmt.Sprintf("记录 ID: #%d", record.ID))
	}
	return sb.String()
}

// Analysis renders the full panel for one snapshot: headline, inferred
// opponent move, board diagram, evaluation, ranked replies and callouts.
// The headline stays above the overlay's fold; everything else sits below
// it.
func (f *Formatter) Analysis(report *advisordto.AnalysisReport, cells [][]string) string {
	if report == nil {
		return ""
	}

	headline := analysisInstruction
	if report.Seq > 0 {
		headline += fmt.Sprintf(" #%d", report.Seq)
	}
	headline += fmt.Sprintf("（第%d手 · %s）", report.MoveCount, phaseLabel(report.Phase))

	var sb strings.Builder
	if mv := report.OpponentMove; mv != nil {
		sb.WriteString(f.render("advisor.move.detected", map[string]string{"Move": mv.Text}, "检测到对方走法："+mv.Text))
		sb.WriteString("\n")
	}

	if diagram := boardDiagram(cells); diagram != "" {
		sb.WriteString(diagram)
		sb.WriteString("\n")
	}

	appendEvaluation(&sb, report.Evaluation)

	if len(report.Recommendations) > 0 {
		sb.WriteString("\n♜ 推荐走法\n")
		for i, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s（胜率 %.1f%% · 信心 %.0f%%）\n",
				i+1, rec.Move.Text, rec.WinProbability*100, rec.Confidence*100))
			if rec.Reasoning != "" {
				sb.WriteString("   " + rec.Reasoning + "\n")
			}
		}
	}

	appendCallouts(&sb, "⚠️ 威胁", report.Threats)
	appendCallouts(&sb, "💡 机会", report.Opportunities)

	return util.ApplySeeMorePadding(sb.String(), headline)
}

func (f *Formatter) Status(state *advisordto.SessionState) string {
	if state == nil {
		return f.NoSession()
	}
	var sb strings.Builder
	sb.WriteString(statusInstruction)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("• 房间 %s / 玩家 %s（执%s）\n", state.Room, state.Player, sideLabel(state.Side)))
	sb.WriteString(fmt.Sprintf("• 评估风格 %s\n", state.Profile))
	sb.WriteString(fmt.Sprintf("• 第%d手 · %s · 分析%d次\n", state.MoveCount, phaseLabel(state.Phase), state.Analyses))
	if !state.StartedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("• 开始于 %s\n", formatShortTime(state.StartedAt)))
	}
	if !state.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("• 最近快照 %s\n", formatShortTime(state.UpdatedAt)))
	}
	return sb.String()
}

// GameSummary wraps the assistant's own multi-line summary text.
func (f *Formatter) GameSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return f.NoSession()
	}
	return statusInstruction + "\n" + summary
}

func (f *Formatter) History(records []*advisordto.SessionRecord) string {
	var sb strings.Builder
	sb.WriteString(historyInstruction)
	sb.WriteByte('\n')
	if len(records) == 0 {
		sb.WriteString("暂无存档的分析会话。")
		return sb.String()
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("• #%d %s — 共%d手 · %s · 胜率 %.1f%%\n",
			record.ID, formatShortTime(record.EndedAt), record.MoveCount,
			phaseLabel(record.Phase), record.FinalWinPct*100))
		sb.WriteString(fmt.Sprintf("  ID %s · 风格 %s\n", shortUUID(record.SessionUUID), record.Profile))
	}
	sb.WriteString("\n查看单次会话：发送「详情 <ID>」。")
	return util.ApplySeeMorePadding(util.StripLeadingHeader(sb.String(), historyInstruction), historyInstruction)
}

func (f *Formatter) Record(record *advisordto.SessionRecord) string {
	if record == nil {
		return "未找到对应的会话存档。"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s #%d\n", recordInstruction, record.ID))
	sb.WriteString(fmt.Sprintf("• 执%s · 风格 %s\n", sideLabel(record.PlayerSide), record.Profile))
	sb.WriteString(fmt.Sprintf("• 共%d手 · %s · 分析%d次\n", record.MoveCount, phaseLabel(record.Phase), record.Analyses))
	if !record.StartedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("• 开始 %s\n", formatShortTime(record.StartedAt)))
	}
	if !record.EndedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("• 结束 %s\n", formatShortTime(record.EndedAt)))
	}
	if d := formatSessionDuration(record.Duration); d != "" {
		sb.WriteString(fmt.Sprintf("• 用时 %s\n", d))
	}
	if moves := formatRecordMoves(record.Moves); moves != "" {
		sb.WriteString("\n检测到的走法:\n")
		sb.WriteString(moves)
		sb.WriteString("\n")
	}
	if summary := strings.TrimSpace(record.Summary); summary != "" {
		sb.WriteString("\n")
		sb.WriteString(summary)
	}
	content := sb.String()
	return util.ApplySeeMorePadding(content, fmt.Sprintf("%s #%d", recordInstruction, record.ID))
}

func (f *Formatter) Profiles(list []*advisordto.ProfileInfo, active string) string {
	var sb strings.Builder
	sb.WriteString(profileInstruction)
	sb.WriteByte('\n')
	for _, p := range list {
		if p == nil {
			continue
		}
		marker := "•"
		if p.Name == active {
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("%s %s — 子力 %.2f · 位置 %.2f · 王安全 %.2f · 攻击 %.2f\n",
			marker, p.Name, p.MaterialWeight, p.PositionWeight, p.KingSafetyWeight, p.AttackWeight))
	}
	sb.WriteString("\n切换风格：发送「风格 <名称>」。")
	return util.ApplySeeMorePadding(util.StripLeadingHeader(sb.String(), profileInstruction), profileInstruction)
}

func (f *Formatter) ProfileChanged(state *advisordto.SessionState) string {
	if state == nil {
		return f.render("advisor.error.internal", nil, "分析出错，请稍后重试。")
	}
	return fmt.Sprintf("✅ 评估风格已切换为 %s。", state.Profile)
}

func (f *Formatter) ProfileUnknown(name string) string {
	return f.render("advisor.error.profile_unknown", map[string]string{"Name": name}, "未知的评估风格："+name)
}

func (f *Formatter) NoSession() string {
	return f.render("advisor.session.missing", nil, "尚未开始分析会话，请先发送棋盘快照。")
}

func (f *Formatter) LatestMissing() string {
	return f.render("advisor.latest.missing", nil, "暂无缓存的分析面板，等下一个棋盘快照吧。")
}

func (f *Formatter) Help() string {
	content := f.render("advisor.help", nil, "象棋助手：发送棋盘快照即可获得局面评估与走法推荐。")
	return util.ApplySeeMorePadding(util.StripLeadingHeader(content, helpInstruction), helpInstruction)
}

// ErrorText maps failures onto the user-facing catalog strings. Stale
// snapshots map to "" so replayed frames stay silent instead of spamming
// the room.
func (f *Formatter) ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, svc.ErrStaleSnapshot):
		return ""
	case errors.Is(err, svc.ErrSessionNotFound):
		return f.NoSession()
	case errors.Is(err, svc.ErrRecordNotFound):
		return "未找到对应的会话存档。"
	case errors.Is(err, svc.ErrRoomNotAllowed):
		return f.render("advisor.error.room_not_allowed", nil, "该房间未开放棋局分析。")
	case errors.Is(err, svc.ErrProfileNotFound):
		return f.render("advisor.error.profile_unknown", map[string]string{"Name": "?"}, "未知的评估风格。")
	case errors.Is(err, xiangqi.ErrInvalidBoard):
		return f.render("advisor.board.invalid", nil, "无法识别棋盘快照，请重新截取。")
	case errors.Is(err, xiangqi.ErrNoBoard):
		return f.render("advisor.board.waiting", nil, "等待首个棋盘快照……")
	default:
		return f.render("advisor.error.internal", nil, "分析出错，请稍后重试。")
	}
}

// boardDiagram draws the 10x9 grid top-down from black's home rank, ranks
// labelled 10..1 to match move notation. Anything but a 10-row grid yields
// "" and the caller skips the diagram.
func boardDiagram(cells [][]string) string {
	if len(cells) != xiangqi.Rows {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("    a  b  c  d  e  f  g  h  i\n")
	for r := 0; r < xiangqi.Rows; r++ {
		if len(cells[r]) != xiangqi.Cols {
			return ""
		}
		sb.WriteString(fmt.Sprintf("%2d ", xiangqi.Rows-r))
		for c := 0; c < xiangqi.Cols; c++ {
			sb.WriteString(cellGlyph(cells[r][c]))
			if c < xiangqi.Cols-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
		if r == 4 {
			sb.WriteString("   ～～ 楚河　汉界 ～～\n")
		}
	}
	return sb.String()
}

func cellGlyph(cell string) string {
	if glyph, ok := cellGlyphs[strings.TrimSpace(cell)]; ok {
		return glyph
	}
	return emptyCellGlyph
}

func appendEvaluation(sb *strings.Builder, ev advisordto.EvaluationInfo) {
	sb.WriteString(fmt.Sprintf("局面评估: %s (胜率: %.1f%%)\n", ev.Situation, ev.WinProbability*100))
	sb.WriteString(fmt.Sprintf("• 总分 %.1f | 子力 %.1f | 位置 %.1f\n", ev.Total, ev.Material, ev.Position))
	sb.WriteString(fmt.Sprintf("• 机动 %.1f | 王安全 %.1f | 中心 %.1f\n", ev.Mobility, ev.KingSafety, ev.CenterControl))
	sb.WriteString(fmt.Sprintf("• 出子 %.1f | 攻击 %.1f | 防守 %.1f\n", ev.Development, ev.Attack, ev.Defense))
}

func appendCallouts(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, item := range items {
		sb.WriteString("• ")
		sb.WriteString(item)
		sb.WriteByte('\n')
	}
}

func formatRecordMoves(moves []string) string {
	if len(moves) == 0 {
		return ""
	}
	start := 0
	if len(moves) > recordMovesLimit {
		start = len(moves) - recordMovesLimit
	}
	var sb strings.Builder
	if start > 0 {
		sb.WriteString("…\n")
	}
	for i := start; i < len(moves); i++ {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, moves[i]))
		if i < len(moves)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func sideLabel(side string) string {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "red":
		return "红"
	case "black":
		return "黑"
	default:
		return "?"
	}
}

func phaseLabel(phase string) string {
	switch strings.ToLower(strings.TrimSpace(phase)) {
	case "opening":
		return "开局"
	case "middlegame":
		return "中局"
	case "endgame":
		return "残局"
	default:
		return phase
	}
}

func shortUUID(uuid string) string {
	uuid = strings.TrimSpace(uuid)
	if len(uuid) <= 8 {
		return uuid
	}
	return uuid[:8]
}

func formatShortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return util.FormatCST(t, "2006-01-02 15:04")
}

func formatSessionDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
