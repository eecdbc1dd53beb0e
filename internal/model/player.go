package model

import "time"

// NoAnswerYet is the sentinel FastestAnswerMs before a player's first
// correct answer. Winner tie-breaking prefers the lowest fastest time,
// so "never answered" must sort last.
const NoAnswerYet = 1 << 30

// Player represents a participant in a room. Created on join, mutated
// only by the owning room actor, destroyed on leave or room close.
type Player struct {
	ID             string        `json:"id" bson:"_id"`
	Username       string        `json:"username" bson:"username"`
	IsHost         bool          `json:"isHost" bson:"isHost"`
	IsReady        bool          `json:"isReady" bson:"isReady"`
	Score          int           `json:"score" bson:"score"`
	Lives          int           `json:"lives" bson:"lives"`
	Streak         int           `json:"streak" bson:"streak"`
	ComboStreak    int           `json:"comboStreak" bson:"comboStreak"`
	TotalCorrect   int           `json:"totalCorrect" bson:"totalCorrect"`
	TotalIncorrect int           `json:"totalIncorrect" bson:"totalIncorrect"`
	AverageMs      float64       `json:"averageReactionTime" bson:"averageReactionTime"`
	FastestMs      float64       `json:"fastestAnswer" bson:"fastestAnswer"`
	PerfectAnswers int           `json:"perfectAnswers" bson:"perfectAnswers"`
	PowerUps       []PowerUp     `json:"powerUps" bson:"powerUps"`
	Modifiers      []Modifier    `json:"modifiers,omitempty" bson:"modifiers,omitempty"`
	Achievements   []Achievement `json:"achievements" bson:"achievements"`
	JoinedAt       time.Time     `json:"joinedAt" bson:"joinedAt"`
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p *Player) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// HoldsPowerUp returns the index of the first held power-up of the given
// type, or -1 when none is held.
func (p *Player) HoldsPowerUp(t PowerUpType) int {
	for i, pu := range p.PowerUps {
		if pu.Type == t {
			return i
		}
	}
	return -1
}

// ActiveModifier returns the unexpired modifier of the given type, or nil.
func (p *Player) ActiveModifier(t PowerUpType, now time.Time) *Modifier {
	for i := range p.Modifiers {
		m := &p.Modifiers[i]
		if m.Type == t && now.Before(m.ExpiresAt) {
			return m
		}
	}
	return nil
}

// PruneModifiers drops expired modifiers in place.
func (p *Player) PruneModifiers(now time.Time) {
	kept := p.Modifiers[:0]
	for _, m := range p.Modifiers {
		if now.Before(m.ExpiresAt) {
			kept = append(kept, m)
		}
	}
	p.Modifiers = kept
}

// PlayerStats is the per-round broadcast projection of a player.
type PlayerStats struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Score     int     `json:"score"`
	Lives     int     `json:"lives"`
	Streak    int     `json:"streak"`
	AverageMs float64 `json:"averageReactionTime"`
	Answered  bool    `json:"answered"`
}

// Stats builds the broadcast projection for this player.
func (p *Player) Stats(answered bool) PlayerStats {
	return PlayerStats{
		ID:        p.ID,
		Username:  p.Username,
		Score:     p.Score,
		Lives:     p.Lives,
		Streak:    p.Streak,
		AverageMs: p.AverageMs,
		Answered:  answered,
	}
}
