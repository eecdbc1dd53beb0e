package model

import "time"

// PlayerResult is one line of a finished game's scoreboard.
type PlayerResult struct {
	PlayerID  string  `json:"playerId" bson:"playerId"`
	Username  string  `json:"username" bson:"username"`
	Score     int     `json:"score" bson:"score"`
	Streak    int     `json:"streak" bson:"streak"`
	FastestMs float64 `json:"fastestAnswer" bson:"fastestAnswer"`
	Lives     int     `json:"lives" bson:"lives"`
}

// MatchResult is the durable record of a finished game.
type MatchResult struct {
	ID          string         `json:"id" bson:"_id"`
	RoomID      string         `json:"roomId" bson:"roomId"`
	RoomName    string         `json:"roomName" bson:"roomName"`
	GameMode    GameMode       `json:"gameMode" bson:"gameMode"`
	WinnerID    string         `json:"winnerId,omitempty" bson:"winnerId,omitempty"` // empty when nobody survived
	WinnerName  string         `json:"winnerName,omitempty" bson:"winnerName,omitempty"`
	FinalScores []PlayerResult `json:"finalScores" bson:"finalScores"`
	TotalRounds int            `json:"totalRounds" bson:"totalRounds"`
	DurationMs  int64          `json:"durationMs" bson:"durationMs"`
	EndedAt     time.Time      `json:"endedAt" bson:"endedAt"`
}
