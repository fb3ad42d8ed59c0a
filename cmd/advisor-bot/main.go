package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/park285/Xiangqi-Advisor-bot/internal/adapter/advisorpresenter"
	"github.com/park285/Xiangqi-Advisor-bot/internal/advisorbuilder"
	appcfg "github.com/park285/Xiangqi-Advisor-bot/internal/config"
	"github.com/park285/Xiangqi-Advisor-bot/internal/domain"
	"github.com/park285/Xiangqi-Advisor-bot/internal/msgcat"
	"github.com/park285/Xiangqi-Advisor-bot/internal/obslog"
	svcadvisor "github.com/park285/Xiangqi-Advisor-bot/internal/service/advisor"
	"github.com/park285/Xiangqi-Advisor-bot/internal/visionfeed"
	"github.com/park285/Xiangqi-Advisor-bot/pkg/advisordto"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("log init error: %v", err)
	}
	logger := obslog.L()

	headers := func() map[string]string {
		h := map[string]string{}
		if cfg.VisionWSOrigin != "" {
			h["Origin"] = cfg.VisionWSOrigin
		}
		if cfg.VisionAuthToken != "" {
			h["Authorization"] = "Bearer " + cfg.VisionAuthToken
		}
		return h
	}

	client := visionfeed.NewClient(cfg.VisionBaseURL, visionfeed.WithHeaderProvider(headers))

	ws := visionfeed.NewWebSocket(cfg.VisionWSURL, 5, time.Second)
	// Inject WS handshake headers if required by the bridge
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state visionfeed.WebSocketState) {
		logger.Info("vision ws state", zap.String("state", string(state)))
	})

	catalog, err := msgcat.New(strings.TrimSpace(os.Getenv("MSGCAT_DIR")))
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	// Advisor deps
	deps, err := advisorbuilder.New(cfg, logger)
	if err != nil {
		log.Fatalf("advisor init error: %v", err)
	}
	egress := visionfeed.NewEgress(cfg.EgressDryrun, client, logger)
	presenter := advisorpresenter.NewPresenter(
		func(room, text string) error { return egress.PushText(context.Background(), room, text) },
	)
	formatter := advisorpresenter.NewFormatter(catalog)

	// Frame handler
	ws.OnEvent(func(ev *visionfeed.Event) {
		if ev == nil || ev.Type == "" {
			return
		}
		// room filter: if AllowedRooms configured and ev.Room not in list → ignore
		if len(cfg.AllowedRooms) > 0 && !roomAllowed(cfg.AllowedRooms, ev.Room) {
			logger.Debug("ignore frame from room", zap.String("room", ev.Room), zap.String("type", ev.Type))
			return
		}
		// Avoid blocking the WS loop
		go handleEvent(cfg, deps.Service, presenter, formatter, logger, ev)
	})

	// Connect WS
	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		log.Fatalf("ws connect error: %v", err)
	}
	cancel()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go deps.Service.RunSweeper(sweepCtx, time.Minute)

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	stopSweep()
	_ = ws.Close(context.Background())

	archiveCtx, cancelArchive := context.WithTimeout(context.Background(), 10*time.Second)
	deps.Service.ArchiveAll(archiveCtx)
	cancelArchive()

	_ = deps.Store.Close()
	if deps.DB != nil {
		_ = deps.DB.Close()
	}
}

func handleEvent(cfg *appcfg.AppConfig, svc *svcadvisor.Service, presenter *advisorpresenter.Presenter, formatter *advisorpresenter.Formatter, logger *zap.Logger, ev *visionfeed.Event) {
	switch ev.Type {
	case visionfeed.EventBoard:
		handleBoard(cfg, svc, presenter, formatter, ev)
	case visionfeed.EventCommand:
		handleCommand(cfg, svc, presenter, formatter, ev)
	case visionfeed.EventReset:
		handleReset(svc, presenter, formatter, ev)
	case visionfeed.EventPing:
		// bridge liveness frames carry nothing to act on
	default:
		logger.Debug("unknown frame type", zap.String("type", ev.Type))
	}
}

// handleBoard feeds one snapshot into the session, opening the session first
// when the frame arrives before any explicit start.
func handleBoard(cfg *appcfg.AppConfig, svc *svcadvisor.Service, presenter *advisorpresenter.Presenter, formatter *advisorpresenter.Formatter, ev *visionfeed.Event) {
	meta := metaFor(ev)
	ctx := context.Background()

	res, err := svc.Snapshot(ctx, meta, ev.Seq, ev.Cells)
	if errors.Is(err, svcadvisor.ErrSessionNotFound) {
		if _, startErr := svc.StartSession(ctx, meta, ev.Side, cfg.AdvisorProfile); startErr != nil && !errors.Is(startErr, svcadvisor.ErrSessionInProgress) {
			presenter.Text(ev.Room, formatter.ErrorText(startErr))
			return
		}
		res, err = svc.Snapshot(ctx, meta, ev.Seq, ev.Cells)
	}
	if err != nil {
		presenter.Text(ev.Room, formatter.ErrorText(err))
		return
	}

	text := formatter.Analysis(advisorpresenter.ToDTOReport(res), ev.Cells)
	if presenter.Text(ev.Room, text) == nil {
		_ = svc.SaveLatestReport(ctx, meta, text)
	}
}

func handleReset(svc *svcadvisor.Service, presenter *advisorpresenter.Presenter, formatter *advisorpresenter.Formatter, ev *visionfeed.Event) {
	state, err := svc.Reset(context.Background(), metaFor(ev))
	if err != nil {
		presenter.Text(ev.Room, formatter.ErrorText(err))
		return
	}
	presenter.Text(ev.Room, formatter.SessionReset(adaptState(state)))
}

// handleCommand dispatches the overlay's command box.
func handleCommand(cfg *appcfg.AppConfig, svc *svcadvisor.Service, presenter *advisorpresenter.Presenter, formatter *advisorpresenter.Formatter, ev *visionfeed.Event) {
	raw := strings.TrimSpace(ev.Text)
	if raw == "" {
		return
	}
	parts := strings.Fields(raw)
	cmd := parts[0]
	args := parts[1:]

	meta := metaFor(ev)
	ctx := context.Background()

	switch cmd {
	case "开始":
		side := ""
		profile := cfg.AdvisorProfile
		if len(args) >= 1 {
			side = args[0]
		}
		if len(args) >= 2 {
			profile = args[1]
		}
		state, err := svc.StartSession(ctx, meta, side, profile)
		resumed := false
		if errors.Is(err, svcadvisor.ErrSessionInProgress) {
			resumed = true
			err = nil
		}
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.SessionStarted(adaptState(state), resumed))
	case "现况", "状态":
		// After a restart only the store mirror remains; show it anyway.
		state, err := svc.Status(ctx, meta)
		if state == nil && err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.Status(adaptState(state)))
	case "摘要":
		summary, err := svc.Summary(ctx, meta)
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.GameSummary(summary))
	case "推荐":
		analysis, err := svc.Recommend(ctx, meta)
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		state, stErr := svc.Status(ctx, meta)
		if state == nil && stErr != nil {
			presenter.Text(ev.Room, formatter.ErrorText(stErr))
			return
		}
		presenter.Text(ev.Room, formatter.Analysis(advisorpresenter.ToDTOAnalysis(state, analysis), nil))
	case "最新":
		text, err := svc.LatestReport(ctx, meta)
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		if strings.TrimSpace(text) == "" {
			presenter.Text(ev.Room, formatter.LatestMissing())
			return
		}
		presenter.Text(ev.Room, text)
	case "重置":
		handleReset(svc, presenter, formatter, ev)
	case "结束":
		record, err := svc.EndSession(ctx, meta)
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.SessionEnded(advisorpresenter.ToDTORecord(record)))
	case "记录":
		limit := 0
		if len(args) >= 1 {
			if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
				limit = n
			}
		}
		records, err := svc.History(ctx, meta, limit)
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.History(advisorpresenter.ToDTORecords(records)))
	case "详情":
		if len(args) < 1 {
			presenter.Text(ev.Room, "用法：详情 <ID>")
			return
		}
		record, err := svc.Session(ctx, meta, args[0])
		if errors.Is(err, svcadvisor.ErrRecordNotFound) {
			record, err = findRecordByRef(ctx, svc, meta, args[0])
		}
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.Record(advisorpresenter.ToDTORecord(record)))
	case "风格":
		if len(args) == 0 {
			active := cfg.AdvisorProfile
			if state, err := svc.Status(ctx, meta); err == nil && state != nil {
				active = state.Profile
			}
			presenter.Text(ev.Room, formatter.Profiles(advisorpresenter.ToDTOProfiles(svc.Profiles()), active))
			return
		}
		state, err := svc.SetProfile(ctx, meta, args[0])
		if errors.Is(err, svcadvisor.ErrProfileNotFound) {
			presenter.Text(ev.Room, formatter.ProfileUnknown(args[0]))
			return
		}
		if err != nil {
			presenter.Text(ev.Room, formatter.ErrorText(err))
			return
		}
		presenter.Text(ev.Room, formatter.ProfileChanged(adaptState(state)))
	case "帮助", "help":
		presenter.Text(ev.Room, formatter.Help())
	default:
		// The overlay forwards every box verbatim; unrecognized text is not ours.
	}
}

// findRecordByRef resolves the short references shown in listings: the
// numeric archive id or a UUID prefix.
func findRecordByRef(ctx context.Context, svc *svcadvisor.Service, meta svcadvisor.SessionMeta, ref string) (*domain.AdvisorSession, error) {
	ref = strings.TrimSpace(ref)
	id, idErr := strconv.ParseInt(strings.TrimPrefix(ref, "#"), 10, 64)

	records, err := svc.History(ctx, meta, 50)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		if idErr == nil && record.ID == id {
			return record, nil
		}
		if strings.HasPrefix(record.SessionUUID, ref) {
			return record, nil
		}
	}
	return nil, svcadvisor.ErrRecordNotFound
}

// Helpers/adapters (avoid import bleed in main)
func adaptState(s *svcadvisor.SessionState) *advisordto.SessionState {
	return advisorpresenter.ToDTOState(s)
}

func metaFor(ev *visionfeed.Event) svcadvisor.SessionMeta {
	return svcadvisor.SessionMeta{
		Room:   strings.TrimSpace(ev.Room),
		Sender: playerName(ev),
	}
}

func playerName(ev *visionfeed.Event) string {
	if s := strings.TrimSpace(ev.Player); s != "" {
		return s
	}
	return "player"
}

func roomAllowed(allowed []string, room string) bool {
	for _, r := range allowed {
		if r == room {
			return true
		}
	}
	return false
}
