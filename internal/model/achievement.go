package model

// AchievementRarity grades how hard an achievement is to earn
type AchievementRarity string

const (
	RarityCommon    AchievementRarity = "common"
	RarityRare      AchievementRarity = "rare"
	RarityEpic      AchievementRarity = "epic"
	RarityLegendary AchievementRarity = "legendary"
)

// Achievement is unlocked at most once per player and never re-awarded.
type Achievement struct {
	ID     string            `json:"id" bson:"id"`
	Name   string            `json:"name" bson:"name"`
	Rarity AchievementRarity `json:"rarity" bson:"rarity"`
	Points int               `json:"points" bson:"points"`
}
