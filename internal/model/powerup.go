package model

import "time"

// PowerUpType is a closed enum of power-up kinds
type PowerUpType string

const (
	PowerUpShield          PowerUpType = "shield"
	PowerUpTimeFreeze      PowerUpType = "time-freeze"
	PowerUpScoreMultiplier PowerUpType = "score-multiplier"
	PowerUpLifeSteal       PowerUpType = "life-steal"
	PowerUpSpeedBoost      PowerUpType = "speed-boost"
	PowerUpMindReader      PowerUpType = "mind-reader"
)

// PowerUpTypes lists every power-up kind in canonical order
var PowerUpTypes = []PowerUpType{
	PowerUpShield,
	PowerUpTimeFreeze,
	PowerUpScoreMultiplier,
	PowerUpLifeSteal,
	PowerUpSpeedBoost,
	PowerUpMindReader,
}

// PowerUp is a single-use item held by a player until activated.
type PowerUp struct {
	ID   string      `json:"id" bson:"id"`
	Type PowerUpType `json:"type" bson:"type"`
}

// Modifier is a named, time-bounded effect applied by an activated
// power-up. The round actor and scoring consult unexpired modifiers on
// subsequent answers.
type Modifier struct {
	Type      PowerUpType `json:"type" bson:"type"`
	Factor    float64     `json:"factor,omitempty" bson:"factor,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt" bson:"expiresAt"`
}
