package domain

import "time"

type AdvisorSession struct {
	ID          int64
	SessionUUID string
	PlayerHash  string
	RoomHash    string
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
