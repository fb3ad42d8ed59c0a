package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	VisionBaseURL   string
	VisionWSURL     string
	VisionWSOrigin  string
	VisionAuthToken string

	BotName      string
	EgressDryrun bool

	RedisURL    string
	DatabaseURL string

	AllowedRooms []string

	AdvisorProfile            string
	AdvisorMaxRecommendations int
	AdvisorSessionTTLSec      int
	AdvisorHistoryLimit       int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		BotName:              "xiangqi-advisor",
		AdvisorProfile:       "balanced",
		AdvisorSessionTTLSec: 3600,
		AdvisorHistoryLimit:  200,
	}

	cfg.VisionBaseURL = strings.TrimSpace(os.Getenv("VISION_BASE_URL"))
	cfg.VisionWSURL = strings.TrimSpace(os.Getenv("VISION_WS_URL"))
	cfg.VisionWSOrigin = strings.TrimSpace(os.Getenv("VISION_WS_ORIGIN"))
	cfg.VisionAuthToken = strings.TrimSpace(os.Getenv("VISION_AUTH_TOKEN"))

	if v := strings.TrimSpace(os.Getenv("BOT_NAME")); v != "" {
		cfg.BotName = v
	}
	cfg.EgressDryrun = strings.EqualFold(strings.TrimSpace(os.Getenv("EGRESS_DRYRUN")), "true")

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ROOMS")); v != "" {
		parts := strings.Split(v, ",")
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				cfg.AllowedRooms = append(cfg.AllowedRooms, s)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("ADVISOR_PROFILE")); v != "" {
		cfg.AdvisorProfile = v
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_MAX_RECOMMENDATIONS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxRecommendations = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_SESSION_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorSessionTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorHistoryLimit = n
		}
	}

	if cfg.VisionBaseURL == "" {
		return nil, errors.New("VISION_BASE_URL is required")
	}
	if cfg.VisionWSURL == "" {
		return nil, errors.New("VISION_WS_URL is required")
	}

	return cfg, nil
}
