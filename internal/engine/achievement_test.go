package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/model"
)

func TestEvaluateAchievements_Thresholds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(p *model.Player)
		wantIDs []string
	}{
		{
			name:    "nothing earned",
			mutate:  func(p *model.Player) {},
			wantIDs: nil,
		},
		{
			name:    "first correct answer",
			mutate:  func(p *model.Player) { p.TotalCorrect = 1 },
			wantIDs: []string{"first_blood"},
		},
		{
			name:    "streak of five",
			mutate:  func(p *model.Player) { p.TotalCorrect = 5; p.Streak = 5 },
			wantIDs: []string{"first_blood", "streak_5"},
		},
		{
			name:    "three perfects",
			mutate:  func(p *model.Player) { p.TotalCorrect = 3; p.PerfectAnswers = 3 },
			wantIDs: []string{"first_blood", "perfect_3"},
		},
		{
			name:    "sub-150ms reflex",
			mutate:  func(p *model.Player) { p.TotalCorrect = 1; p.FastestMs = 120 },
			wantIDs: []string{"first_blood", "lightning"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.Player{ID: "p1", Lives: 3}
			tt.mutate(p)

			fresh := EvaluateAchievements(p)
			ids := make([]string, 0, len(fresh))
			for _, a := range fresh {
				ids = append(ids, a.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestEvaluateAchievements_Idempotent(t *testing.T) {
	t.Parallel()
	p := &model.Player{ID: "p1", TotalCorrect: 1, Streak: 5}

	first := EvaluateAchievements(p)
	require.NotEmpty(t, first)

	again := EvaluateAchievements(p)
	assert.Empty(t, again, "already-unlocked achievements must never be re-emitted")
	assert.Len(t, p.Achievements, len(first))
}

func TestEvaluateAchievements_UnsetFastestIsNotLightning(t *testing.T) {
	t.Parallel()
	p := &model.Player{ID: "p1", FastestMs: 0}
	for _, a := range EvaluateAchievements(p) {
		assert.NotEqual(t, "lightning", a.ID)
	}
}
