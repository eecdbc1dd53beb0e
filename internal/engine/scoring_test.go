package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/model"
)

func TestScore_SpeedThresholds(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	cfg.GraceWindowMs = 0

	tests := []struct {
		name       string
		reactionMs float64
		want       float64
	}{
		{"ratio 0.1", 100, 2.0},
		{"ratio 0.2 boundary", 200, 2.0},
		{"ratio 0.3", 300, 1.5},
		{"ratio 0.5", 500, 1.2},
		{"ratio 0.7", 700, 1.0},
		{"ratio 0.9", 900, 0.5},
		{"ratio above 1", 1500, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := cfg.Score(tt.reactionMs, 1000, 0, 1, model.ModeClassic, false)
			assert.Equal(t, tt.want, b.SpeedMultiplier)
		})
	}
}

func TestScore_SpeedMultiplierBounds(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	for reaction := 0.0; reaction <= 10000; reaction += 137 {
		for _, limit := range []float64{100, 1000, 3000} {
			b := cfg.Score(reaction, limit, 0, 1, model.ModeClassic, false)
			require.GreaterOrEqual(t, b.SpeedMultiplier, 0.1)
			require.LessOrEqual(t, b.SpeedMultiplier, 2.0)
		}
	}
}

func TestScore_FastAnswer(t *testing.T) {
	t.Parallel()
	// 100ms on a 1000ms window lands in the top speed bracket; with the
	// level-1 bonus of 10 the total is floor((100*2.0 + 10) * 1.0).
	cfg := DefaultScoringConfig()
	b := cfg.Score(100, 1000, 0, 1, model.ModeClassic, false)

	assert.Equal(t, 2.0, b.SpeedMultiplier)
	assert.Equal(t, 0, b.StreakBonus)
	assert.Equal(t, 10, b.LevelBonus)
	assert.Equal(t, 210, b.FinalScore)
}

func TestScore_StreakBonusMonotonicAndCapped(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	prev := -1
	for streak := 0; streak <= 40; streak++ {
		b := cfg.Score(500, 1000, streak, 1, model.ModeClassic, false)
		require.GreaterOrEqual(t, b.StreakBonus, prev, "streak bonus regressed at %d", streak)
		require.LessOrEqual(t, b.StreakBonus, cfg.MaxStreakBonus)
		prev = b.StreakBonus
	}
	b := cfg.Score(500, 1000, 1000, 1, model.ModeClassic, false)
	assert.Equal(t, cfg.MaxStreakBonus, b.StreakBonus)
}

func TestScore_LevelBonusExact(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	for level := 1; level <= 30; level++ {
		b := cfg.Score(500, 1000, 0, level, model.ModeClassic, false)
		require.Equal(t, level*cfg.LevelMultiplier, b.LevelBonus, "level %d", level)
	}
}

func TestScore_PerfectBonus(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()

	plain := cfg.Score(150, 1000, 0, 4, model.ModeClassic, false)
	assert.Equal(t, 0, plain.PerfectBonus)

	perfect := cfg.Score(150, 1000, 0, 4, model.ModeClassic, true)
	assert.Equal(t, cfg.PerfectBonusBase+4*5, perfect.PerfectBonus)
	assert.Greater(t, perfect.FinalScore, plain.FinalScore)
}

func TestScore_GameModeMultipliers(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	tests := []struct {
		mode model.GameMode
		want float64
	}{
		{model.ModeClassic, 1.0},
		{model.ModeDuel, 1.2},
		{model.ModeSuddenDeath, 1.5},
		{model.GameMode("ranked-nightmare"), 1.0}, // unknown modes default to 1.0
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			b := cfg.Score(500, 1000, 0, 1, tt.mode, false)
			assert.Equal(t, tt.want, b.GameModeMultiplier)
		})
	}
}

func TestScore_InputSanitization(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()

	tests := []struct {
		name       string
		reactionMs float64
		limitMs    float64
		streak     int
		level      int
	}{
		{"negative reaction", -50, 1000, 0, 1},
		{"NaN reaction", math.NaN(), 1000, 0, 1},
		{"infinite reaction", math.Inf(1), 1000, 0, 1},
		{"zero time limit", 100, 0, 0, 1},
		{"negative time limit", 100, -3, 0, 1},
		{"negative streak", 100, 1000, -7, 1},
		{"negative level", 100, 1000, 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := cfg.Score(tt.reactionMs, tt.limitMs, tt.streak, tt.level, model.ModeClassic, false)
			assert.GreaterOrEqual(t, b.FinalScore, 0)
			assert.GreaterOrEqual(t, b.SpeedMultiplier, 0.1)
			assert.LessOrEqual(t, b.SpeedMultiplier, 2.0)
			assert.GreaterOrEqual(t, b.StreakBonus, 0)
			assert.GreaterOrEqual(t, b.LevelBonus, cfg.LevelMultiplier)
		})
	}
}

func TestScore_GraceWindow(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	cfg.GraceWindowMs = 100

	// 250ms raw, 150ms effective -> ratio 0.15 -> top bracket.
	b := cfg.Score(250, 1000, 0, 1, model.ModeClassic, false)
	assert.Equal(t, 2.0, b.SpeedMultiplier)
}

func TestIsPerfect(t *testing.T) {
	t.Parallel()
	cfg := DefaultScoringConfig()
	assert.True(t, cfg.IsPerfect(150))
	assert.True(t, cfg.IsPerfect(350)) // 250ms effective after grace
	assert.False(t, cfg.IsPerfect(900))
	assert.False(t, cfg.IsPerfect(-1))
	assert.False(t, cfg.IsPerfect(math.NaN()))
}
