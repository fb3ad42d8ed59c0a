package advisorbuilder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/park285/Xiangqi-Advisor-bot/internal/config"
	svcadvisor "github.com/park285/Xiangqi-Advisor-bot/internal/service/advisor"
	"go.uber.org/zap"
)

type Deps struct {
	Service *svcadvisor.Service
	Store   svcadvisor.SessionStore
	Repo    svcadvisor.Repository
	DB      *sql.DB
}

// New wires the advisor service from config. Redis and Postgres are both
// optional: without REDIS_URL the session mirror lives in process memory,
// without DATABASE_URL finished sessions archive into an in-memory
// repository and vanish on restart.
func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store svcadvisor.SessionStore
		err   error
	)
	if strings.TrimSpace(cfg.RedisURL) != "" {
		store, err = svcadvisor.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
	} else {
		logger.Info("no REDIS_URL, session mirror kept in process memory")
		store = svcadvisor.NewMemoryStore()
	}

	var (
		repo svcadvisor.Repository
		db   *sql.DB
	)
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(16)
		db.SetMaxIdleConns(8)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			store.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		repo = svcadvisor.NewRepository(db)
	} else {
		logger.Info("no DATABASE_URL, session archive kept in process memory")
		repo = svcadvisor.NewMemoryRepository()
	}

	svcCfg := svcadvisor.Config{
		DefaultProfile:     cfg.AdvisorProfile,
		SessionTTL:         time.Duration(cfg.AdvisorSessionTTLSec) * time.Second,
		AnalysisHistory:    cfg.AdvisorHistoryLimit,
		MaxRecommendations: cfg.AdvisorMaxRecommendations,
		AllowedRooms:       append([]string(nil), cfg.AllowedRooms...),
	}

	service, err := svcadvisor.NewService(store, repo, svcCfg, logger)
	if err != nil {
		if db != nil {
			db.Close()
		}
		store.Close()
		return nil, err
	}

	return &Deps{Service: service, Store: store, Repo: repo, DB: db}, nil
}
