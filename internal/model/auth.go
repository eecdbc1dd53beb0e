package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims is the room-scoped JWT issued on create/join.
type PlayerClaims struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

// JoinResponse is returned when a player creates or joins a room.
type JoinResponse struct {
	RoomID   string   `json:"roomId"`
	PlayerID string   `json:"playerId"`
	Token    string   `json:"token"`
	Room     RoomMeta `json:"room"`
}
