package model

import "encoding/json"

// Intent names accepted over the player WebSocket.
const (
	IntentReady           = "ready"
	IntentStartBattle     = "start_battle"
	IntentSubmitAnswer    = "submit_answer"
	IntentActivatePowerUp = "activate_powerup"
	IntentPauseGame       = "pause_game"
	IntentResumeGame      = "resume_game"
	IntentLeaveRoom       = "leave_room"
	IntentKickPlayer      = "kick_player"
	IntentUpdateSettings  = "update_settings"
)

// Intent is the inbound WebSocket envelope. The payload shape depends
// on Type.
type Intent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateRoomRequest is the REST body for room creation.
type CreateRoomRequest struct {
	Name            string   `json:"name"`
	Username        string   `json:"username"`
	GameMode        GameMode `json:"gameMode"`
	MaxPlayers      int      `json:"maxPlayers"`
	TimeLimitMs     int      `json:"timeLimitMs"`
	Difficulty      int      `json:"difficulty"`
	PowerUpsEnabled bool     `json:"powerUpsEnabled"`
	IsPrivate       bool     `json:"isPrivate,omitempty"`
	Password        string   `json:"password,omitempty"`
}

// JoinRoomRequest is the REST body for joining a room.
type JoinRoomRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// SubmitAnswerIntent is the payload for submit_answer.
type SubmitAnswerIntent struct {
	Answer         string  `json:"answer"`
	ReactionTimeMs float64 `json:"reactionTimeMs"`
}

// ActivatePowerUpIntent is the payload for activate_powerup.
type ActivatePowerUpIntent struct {
	PowerUpType PowerUpType `json:"powerUpType"`
}

// KickPlayerIntent is the payload for kick_player.
type KickPlayerIntent struct {
	PlayerID string `json:"playerId"`
}

// UpdateSettingsIntent is the payload for update_settings.
type UpdateSettingsIntent struct {
	Settings RoomSettings `json:"settings"`
}
