package advisordto

import "time"

type SessionState struct {
	SessionUUID string
	Room        string
	Player      string
	Side        string
	Profile     string
	Phase       string
	MoveCount   int
	Analyses    int
	StartedAt   time.Time
	UpdatedAt   time.Time
}

type SessionRecord struct {
	ID          int64
	SessionUUID string
	Profile     string
	PlayerSide  string
	Phase       string
	MoveCount   int
	Analyses    int
	Moves       []string
	FinalScore  float64
	FinalWinPct float64
	Summary     string
	StartedAt   time.Time
	EndedAt     time.Time
	Duration    time.Duration
}
