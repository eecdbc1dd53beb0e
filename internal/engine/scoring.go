package engine

import (
	"math"

	"oppositerush/internal/model"
)

// ScoringConfig carries the tunable constants of the score formula.
type ScoringConfig struct {
	BaseScore          int
	GraceWindowMs      float64 // subtracted from raw reaction time
	StreakMultiplier   int
	MaxStreakBonus     int
	LevelMultiplier    int
	PerfectBonusBase   int
	PerfectThresholdMs float64 // effective reaction below this is a perfect round
	DefaultTimeLimitMs float64 // substituted for non-positive time limits
	ModeMultipliers    map[model.GameMode]float64
}

// DefaultScoringConfig returns the production constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:          100,
		GraceWindowMs:      100,
		StreakMultiplier:   25,
		MaxStreakBonus:     500,
		LevelMultiplier:    10,
		PerfectBonusBase:   50,
		PerfectThresholdMs: 300,
		DefaultTimeLimitMs: 3000,
		ModeMultipliers: map[model.GameMode]float64{
			model.ModeClassic:     1.0,
			model.ModeDuel:        1.2,
			model.ModeSuddenDeath: 1.5,
		},
	}
}

// speedThresholds maps the effective-time ratio to a multiplier.
// Ordered; first matching threshold wins.
var speedThresholds = []struct {
	ratio      float64
	multiplier float64
}{
	{0.2, 2.0},
	{0.4, 1.5},
	{0.6, 1.2},
	{0.8, 1.0},
	{1.0, 0.5},
}

const (
	minSpeedMultiplier = 0.1
	maxSpeedMultiplier = 2.0
)

// Score computes the full breakdown for one answer. It is pure, never
// panics during live play, and sanitizes every input before use: a
// non-finite or negative reaction time counts as 0, a non-positive time
// limit falls back to the configured default, and negative streak/level
// are clamped to 0/1.
func (c ScoringConfig) Score(reactionMs, timeLimitMs float64, streak, level int, mode model.GameMode, perfect bool) (b model.ScoreBreakdown) {
	if math.IsNaN(reactionMs) || math.IsInf(reactionMs, 0) || reactionMs < 0 {
		reactionMs = 0
	}
	if timeLimitMs <= 0 || math.IsNaN(timeLimitMs) || math.IsInf(timeLimitMs, 0) {
		timeLimitMs = c.DefaultTimeLimitMs
	}
	if streak < 0 {
		streak = 0
	}
	if level < 1 {
		level = 1
	}

	// A bug in the composed formula must degrade, not take the round
	// down with it.
	defer func() {
		if recover() != nil {
			b = c.fallbackScore(reactionMs, timeLimitMs, streak, level)
		}
	}()

	effective := reactionMs - c.GraceWindowMs
	if effective < 0 {
		effective = 0
	}
	ratio := effective / timeLimitMs

	b.BaseScore = c.BaseScore
	b.SpeedMultiplier = speedMultiplierFor(ratio)
	b.StreakBonus = minInt(streak*c.StreakMultiplier, c.MaxStreakBonus)
	b.LevelBonus = level * c.LevelMultiplier
	if perfect {
		b.PerfectBonus = c.PerfectBonusBase + level*5
	}
	b.GameModeMultiplier = c.modeMultiplier(mode)
	b.FinalScore = int(math.Floor(
		(float64(b.BaseScore)*b.SpeedMultiplier +
			float64(b.StreakBonus) +
			float64(b.LevelBonus) +
			float64(b.PerfectBonus)) * b.GameModeMultiplier))
	return b
}

// IsPerfect reports whether the effective reaction time qualifies as a
// perfect round.
func (c ScoringConfig) IsPerfect(reactionMs float64) bool {
	if math.IsNaN(reactionMs) || reactionMs < 0 {
		return false
	}
	effective := reactionMs - c.GraceWindowMs
	if effective < 0 {
		effective = 0
	}
	return effective < c.PerfectThresholdMs
}

func speedMultiplierFor(ratio float64) float64 {
	m := minSpeedMultiplier
	for _, t := range speedThresholds {
		if ratio <= t.ratio {
			m = t.multiplier
			break
		}
	}
	if m < minSpeedMultiplier {
		m = minSpeedMultiplier
	}
	if m > maxSpeedMultiplier {
		m = maxSpeedMultiplier
	}
	return m
}

func (c ScoringConfig) modeMultiplier(mode model.GameMode) float64 {
	if m, ok := c.ModeMultipliers[mode]; ok {
		return m
	}
	return 1.0
}

// fallbackScore is the simplified degradation formula:
// base*speed + streak + level.
func (c ScoringConfig) fallbackScore(reactionMs, timeLimitMs float64, streak, level int) model.ScoreBreakdown {
	speed := speedMultiplierFor(reactionMs / timeLimitMs)
	return model.ScoreBreakdown{
		BaseScore:          c.BaseScore,
		SpeedMultiplier:    speed,
		StreakBonus:        streak,
		LevelBonus:         level,
		GameModeMultiplier: 1.0,
		FinalScore:         int(math.Floor(float64(c.BaseScore)*speed)) + streak + level,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
