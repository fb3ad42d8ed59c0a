package advisordto

type EvaluationInfo struct {
	Material       float64
	Position       float64
	Mobility       float64
	KingSafety     float64
	CenterControl  float64
	Development    float64
	Attack         float64
	Defense        float64
	Total          float64
	WinProbability float64
	Situation      string
}

type RecommendationInfo struct {
	Move           MoveInfo
	Score          float64
	WinProbability float64
	Confidence     float64
	Reasoning      string
}

// AnalysisReport carries the outcome of one analysis cycle over a board
// snapshot.
type AnalysisReport struct {
	SessionUUID     string
	Seq             int64
	Phase           string
	MoveCount       int
	Evaluation      EvaluationInfo
	OpponentMove    *MoveInfo
	Recommendations []RecommendationInfo
	Threats         []string
	Opportunities   []string
}
