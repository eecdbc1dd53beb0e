package model

// ScoreBreakdown is the full decomposition of one scored answer.
// Produced fresh per answer and never mutated afterwards.
//
//	FinalScore = floor((BaseScore*SpeedMultiplier + StreakBonus +
//	             LevelBonus + PerfectBonus) * GameModeMultiplier)
type ScoreBreakdown struct {
	BaseScore          int     `json:"baseScore"`
	SpeedMultiplier    float64 `json:"speedMultiplier"` // clamped to [0.1, 2.0]
	StreakBonus        int     `json:"streakBonus"`
	LevelBonus         int     `json:"levelBonus"`
	PerfectBonus       int     `json:"perfectBonus"`
	GameModeMultiplier float64 `json:"gameModeMultiplier"`
	FinalScore         int     `json:"finalScore"`
}
