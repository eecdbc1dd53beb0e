package game

import "errors"

// Validation failures are expected control flow in a live game: they are
// returned as values, broadcast as error events, and never panic.
var (
	ErrRoomNotFound     = errors.New("Room not found")
	ErrRoomFull         = errors.New("Room is full")
	ErrWrongPassword    = errors.New("Incorrect password")
	ErrGameStarted      = errors.New("Game already started")
	ErrRoomClosed       = errors.New("Room is closed")
	ErrUnknownPlayer    = errors.New("Player not in room")
	ErrNotHost          = errors.New("Only the host can do that")
	ErrKickSelf         = errors.New("Host cannot kick themselves")
	ErrNotEnoughPlayers = errors.New("Need at least 2 players")
	ErrNotAllReady      = errors.New("Not all players are ready")
	ErrRoundNotActive   = errors.New("Round is not active")
	ErrAlreadyAnswered  = errors.New("Already answered this round")
	ErrEliminated       = errors.New("No lives remaining")
	ErrNotPaused        = errors.New("Game is not paused")
	ErrSettingsLocked   = errors.New("Settings are locked once the game starts")
	ErrPowerUpsDisabled = errors.New("Power-ups are disabled in this room")
)
