package advisordto

type ProfileInfo struct {
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
