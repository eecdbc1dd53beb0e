package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey = "leaderboard:global"
	usernamesKey   = "leaderboard:usernames"
)

// LeaderboardCache maintains the global all-time score ranking as a
// Redis ZSET, with a companion hash mapping player ids to usernames.
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, playerID, username string, score int) error
	GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, playerID string) (int64, error)
}

// LeaderboardEntry is a single ranked row.
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache.
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

// UpdateScore keeps a player's best score. GT only raises the stored
// score, so replaying a worse game never demotes anyone.
func (c *leaderboardCache) UpdateScore(ctx context.Context, playerID, username string, score int) error {
	if err := c.client.ZAddGT(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: playerID,
	}).Err(); err != nil {
		return err
	}
	return c.client.HSet(ctx, usernamesKey, playerID, username).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(results))
	for i, z := range results {
		id, _ := z.Member.(string)
		username, _ := c.client.HGet(ctx, usernamesKey, id).Result()
		entries[i] = LeaderboardEntry{
			PlayerID: id,
			Username: username,
			Score:    int(z.Score),
			Rank:     i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
