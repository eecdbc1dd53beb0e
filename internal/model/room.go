package model

import "time"

// RoomStatus is the lifecycle phase of a room. Transitions are monotonic
// except for the paused/active pair.
type RoomStatus string

const (
	RoomWaiting   RoomStatus = "waiting"
	RoomCountdown RoomStatus = "countdown"
	RoomActive    RoomStatus = "active"
	RoomPaused    RoomStatus = "paused"
	RoomFinished  RoomStatus = "finished"
)

// GameMode selects the score multiplier and lives configuration
type GameMode string

const (
	ModeClassic     GameMode = "classic"
	ModeDuel        GameMode = "duel"
	ModeSuddenDeath GameMode = "sudden-death"
)

// RoomSettings are host-tunable options, frozen once the room leaves waiting
type RoomSettings struct {
	AllowedTypes    []InstructionType `json:"allowedTypes,omitempty" bson:"allowedTypes,omitempty"` // empty means level-gated default
	Difficulty      int               `json:"difficulty" bson:"difficulty"`                         // base level, 1..30
	PowerUpsEnabled bool              `json:"powerUpsEnabled" bson:"powerUpsEnabled"`
	MaxRounds       int               `json:"maxRounds" bson:"maxRounds"`
}

// Room is the full mutable state of one game room. It is owned by a single
// room actor; nothing outside that goroutine mutates it.
type Room struct {
	ID           string       `json:"id" bson:"_id"`
	Name         string       `json:"name" bson:"name"`
	MaxPlayers   int          `json:"maxPlayers" bson:"maxPlayers"`
	Players      []*Player    `json:"players" bson:"players"` // join order preserved
	Status       RoomStatus   `json:"status" bson:"status"`
	GameMode     GameMode     `json:"gameMode" bson:"gameMode"`
	TimeLimitMs  int          `json:"timeLimitMs" bson:"timeLimitMs"`
	Lives        int          `json:"livesPerPlayer" bson:"livesPerPlayer"`
	IsPrivate    bool         `json:"isPrivate" bson:"isPrivate"`
	Password     string       `json:"-" bson:"password,omitempty"`
	CurrentRound int          `json:"currentRound" bson:"currentRound"`
	Settings     RoomSettings `json:"settings" bson:"settings"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
}

// FindPlayer returns the player with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Host returns the current host player, or nil for an empty room.
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// AlivePlayers returns the players with at least one life left.
func (r *Room) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Lives > 0 {
			alive = append(alive, p)
		}
	}
	return alive
}

// RoomMeta is the lightweight Redis projection of a room, used for
// public room listings and join-time lookups.
type RoomMeta struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       RoomStatus `json:"status"`
	GameMode     GameMode   `json:"gameMode"`
	PlayersCount int        `json:"playersCount"`
	MaxPlayers   int        `json:"maxPlayers"`
	IsPrivate    bool       `json:"isPrivate"`
	CreatedAt    time.Time  `json:"createdAt"`
}
