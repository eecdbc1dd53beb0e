package engine

import "oppositerush/internal/model"

// achievementCheck pairs a catalog entry with its unlock condition over
// a player's cumulative stats.
type achievementCheck struct {
	achievement model.Achievement
	unlocked    func(p *model.Player) bool
}

var achievementCatalog = []achievementCheck{
	{
		achievement: model.Achievement{ID: "first_blood", Name: "First Blood", Rarity: model.RarityCommon, Points: 10},
		unlocked:    func(p *model.Player) bool { return p.TotalCorrect >= 1 },
	},
	{
		achievement: model.Achievement{ID: "streak_5", Name: "On Fire", Rarity: model.RarityCommon, Points: 25},
		unlocked:    func(p *model.Player) bool { return p.Streak >= 5 },
	},
	{
		achievement: model.Achievement{ID: "streak_10", Name: "Unstoppable", Rarity: model.RarityRare, Points: 75},
		unlocked:    func(p *model.Player) bool { return p.Streak >= 10 },
	},
	{
		achievement: model.Achievement{ID: "perfect_3", Name: "Perfectionist", Rarity: model.RarityRare, Points: 50},
		unlocked:    func(p *model.Player) bool { return p.PerfectAnswers >= 3 },
	},
	{
		achievement: model.Achievement{ID: "lightning", Name: "Lightning Reflexes", Rarity: model.RarityEpic, Points: 100},
		unlocked:    func(p *model.Player) bool { return p.FastestMs > 0 && p.FastestMs < 150 },
	},
	{
		achievement: model.Achievement{ID: "marathon_50", Name: "Marathoner", Rarity: model.RarityEpic, Points: 150},
		unlocked:    func(p *model.Player) bool { return p.TotalCorrect >= 50 },
	},
	{
		achievement: model.Achievement{ID: "score_10k", Name: "High Roller", Rarity: model.RarityLegendary, Points: 250},
		unlocked:    func(p *model.Player) bool { return p.Score >= 10000 },
	},
}

// EvaluateAchievements checks the player's cumulative stats against the
// catalog and appends anything newly earned to the player's unlocked
// list. Already-unlocked achievements are never re-emitted; the return
// value is the newly unlocked subset only.
func EvaluateAchievements(p *model.Player) []model.Achievement {
	var fresh []model.Achievement
	for _, c := range achievementCatalog {
		if p.HasAchievement(c.achievement.ID) {
			continue
		}
		if c.unlocked(p) {
			p.Achievements = append(p.Achievements, c.achievement)
			fresh = append(fresh, c.achievement)
		}
	}
	return fresh
}
