package model

// Outbound broadcast event names.
const (
	EventRoomCreated        = "room_created"
	EventRoomJoined         = "room_joined"
	EventPlayerJoined       = "player_joined"
	EventPlayerLeft         = "player_left"
	EventPlayerReady        = "player_ready"
	EventAllPlayersReady    = "all_players_ready"
	EventCountdownStarted   = "countdown_started"
	EventBattleStarted      = "battle_started"
	EventAnswerSubmitted    = "answer_submitted"
	EventRoundEnded         = "round_ended"
	EventGameEnded          = "game_ended"
	EventGamePaused         = "game_paused"
	EventGameResumed        = "game_resumed"
	EventPowerUpActivated   = "powerup_activated"
	EventPowerUpAwarded     = "powerup_awarded"
	EventAchievementUnlock  = "achievement_unlocked"
	EventHostChanged        = "host_changed"
	EventSettingsUpdated    = "settings_updated"
	EventKickedFromRoom     = "kicked_from_room"
	EventError              = "error"
)

// CountdownStartedEvent announces the pre-battle countdown.
type CountdownStartedEvent struct {
	DurationMs int64 `json:"durationMs"`
}

// BattleStartedEvent carries the first instruction of the game.
type BattleStartedEvent struct {
	Instruction *Instruction `json:"instruction"`
	RoundNumber int          `json:"roundNumber"`
	TimeLimitMs int          `json:"timeLimitMs"`
}

// AnswerSubmittedEvent reports one player's graded answer.
type AnswerSubmittedEvent struct {
	PlayerID  string          `json:"playerId"`
	IsCorrect bool            `json:"isCorrect"`
	Score     int             `json:"score"`
	Streak    int             `json:"streak"`
	Lives     int             `json:"lives"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}

// RoundEndedEvent closes a round and delivers the next instruction.
type RoundEndedEvent struct {
	RoundNumber     int           `json:"roundNumber"`
	NextInstruction *Instruction  `json:"nextInstruction"`
	PlayerStats     []PlayerStats `json:"playerStats"`
}

// GameEndedEvent is the terminal broadcast of a room.
type GameEndedEvent struct {
	Winner      *PlayerResult  `json:"winner,omitempty"` // nil when everyone was eliminated at once
	FinalScores []PlayerResult `json:"finalScores"`
	TotalRounds int            `json:"totalRounds"`
	DurationMs  int64          `json:"durationMs"`
}

// PowerUpActivatedEvent reports a consumed power-up and its effect text.
type PowerUpActivatedEvent struct {
	PlayerID string      `json:"playerId"`
	Type     PowerUpType `json:"type"`
	Effect   string      `json:"effect"`
}

// PowerUpAwardedEvent tells a player about a newly earned power-up.
type PowerUpAwardedEvent struct {
	PowerUp PowerUp `json:"powerUp"`
}

// AchievementUnlockedEvent announces a newly unlocked achievement.
type AchievementUnlockedEvent struct {
	PlayerID    string      `json:"playerId"`
	Achievement Achievement `json:"achievement"`
}

// KickedFromRoomEvent is delivered to the kicked player only.
type KickedFromRoomEvent struct {
	Reason string `json:"reason"`
}

// ErrorEvent carries a validation failure back to the offending player.
type ErrorEvent struct {
	Message string `json:"message"`
}
