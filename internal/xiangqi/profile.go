package xiangqi

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// EvalProfile bundles the evaluation weights with the scoring knobs the
// advisor exposes. Weights multiply the raw sub-scores before summing.
type EvalProfile struct {
	Name               string
	MaterialWeight     float64
	PositionWeight     float64
	MobilityWeight     float64
	KingSafetyWeight   float64
	CenterWeight       float64
	DevelopmentWeight  float64
	AttackWeight       float64
	DefenseWeight      float64
	WinProbSlope       float64
	MaxRecommendations int
}

var profileMu sync.RWMutex

var DefaultProfiles = map[string]EvalProfile{
	"balanced": {
		Name:               "balanced",
		MaterialWeight:     1.0,
		PositionWeight:     0.3,
		MobilityWeight:     0.2,
		KingSafetyWeight:   0.4,
		CenterWeight:       0.15,
		DevelopmentWeight:  0.1,
		AttackWeight:       0.25,
		DefenseWeight:      0.2,
		WinProbSlope:       0.002,
		MaxRecommendations: 5,
	},
	"material": {
		Name:               "material",
		MaterialWeight:     1.2,
		PositionWeight:     0.15,
		MobilityWeight:     0.1,
		KingSafetyWeight:   0.3,
		CenterWeight:       0.1,
		DevelopmentWeight:  0.05,
		AttackWeight:       0.15,
		DefenseWeight:      0.15,
		WinProbSlope:       0.002,
		MaxRecommendations: 5,
	},
	"aggressive": {
		Name:               "aggressive",
		MaterialWeight:     0.9,
		PositionWeight:     0.35,
		MobilityWeight:     0.3,
		KingSafetyWeight:   0.25,
		CenterWeight:       0.25,
		DevelopmentWeight:  0.2,
		AttackWeight:       0.45,
		DefenseWeight:      0.1,
		WinProbSlope:       0.0025,
		MaxRecommendations: 5,
	},
	"defensive": {
		Name:               "defensive",
		MaterialWeight:     1.0,
		PositionWeight:     0.25,
		MobilityWeight:     0.15,
		KingSafetyWeight:   0.6,
		CenterWeight:       0.1,
		DevelopmentWeight:  0.05,
		AttackWeight:       0.15,
		DefenseWeight:      0.35,
		WinProbSlope:       0.0015,
		MaxRecommendations: 5,
	},
}

// GetProfile resolves a profile by name. A few friendly aliases map onto
// the canonical entries.
func GetProfile(name string) (EvalProfile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "standard":
		name = "balanced"
	case "attack", "sharp":
		name = "aggressive"
	case "solid", "safe":
		name = "defensive"
	case "greedy":
		name = "material"
	default:
		name = strings.ToLower(strings.TrimSpace(name))
	}
	profileMu.RLock()
	p, ok := DefaultProfiles[name]
	profileMu.RUnlock()
	if ok {
		return p, nil
	}
	return EvalProfile{}, fmt.Errorf("unknown eval profile: %s", name)
}

// RegisterProfile validates and stores a custom profile, replacing any
// existing entry with the same name.
func RegisterProfile(p EvalProfile) error {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return fmt.Errorf("eval profile name required")
	}
	if err := ValidateProfile(p); err != nil {
		return err
	}
	profileMu.Lock()
	DefaultProfiles[p.Name] = p
	profileMu.Unlock()
	return nil
}

// ProfileNames lists the registered profile names in sorted order.
func ProfileNames() []string {
	profileMu.RLock()
	names := make([]string, 0, len(DefaultProfiles))
	for name := range DefaultProfiles {
		names = append(names, name)
	}
	profileMu.RUnlock()
	sort.Strings(names)
	return names
}

func ValidateProfile(p EvalProfile) error {
	weights := []struct {
		name  string
		value float64
	}{
		{"material", p.MaterialWeight},
		{"position", p.PositionWeight},
		{"mobility", p.MobilityWeight},
		{"king safety", p.KingSafetyWeight},
		{"center control", p.CenterWeight},
		{"development", p.DevelopmentWeight},
		{"attack", p.AttackWeight},
		{"defense", p.DefenseWeight},
	}
	sum := 0.0
	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%s weight must be finite: %f", w.name, w.value)
		}
		if w.value < 0 {
			return fmt.Errorf("%s weight must be >= 0: %f", w.name, w.value)
		}
		sum += w.value
	}
	switch {
	case sum == 0:
		return fmt.Errorf("eval profile weights sum to zero")
	case p.WinProbSlope <= 0 || math.IsNaN(p.WinProbSlope) || math.IsInf(p.WinProbSlope, 0):
		return fmt.Errorf("win probability slope must be positive finite: %f", p.WinProbSlope)
	case p.MaxRecommendations <= 0:
		return fmt.Errorf("max recommendations must be > 0: %d", p.MaxRecommendations)
	}
	return nil
}
