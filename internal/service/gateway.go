package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"oppositerush/internal/cache"
	"oppositerush/internal/model"
	"oppositerush/internal/repository"
)

const gatewayTimeout = 5 * time.Second

// Gateway is the asynchronous persistence fan-out behind the room
// actors. Every write runs in its own goroutine with a bounded timeout;
// failures are logged and dropped so storage can never stall a round.
type Gateway struct {
	roomRepo    repository.RoomRepo
	playerRepo  repository.PlayerRepo
	matchRepo   repository.MatchRepo
	roomCache   cache.RoomCache
	leaderboard cache.LeaderboardCache
	log         zerolog.Logger
}

// NewGateway creates the persistence gateway.
func NewGateway(
	roomRepo repository.RoomRepo,
	playerRepo repository.PlayerRepo,
	matchRepo repository.MatchRepo,
	roomCache cache.RoomCache,
	leaderboard cache.LeaderboardCache,
	logger zerolog.Logger,
) *Gateway {
	return &Gateway{
		roomRepo:    roomRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		roomCache:   roomCache,
		leaderboard: leaderboard,
		log:         logger.With().Str("component", "gateway").Logger(),
	}
}

// SaveRoom persists a newly created room document and its listing
// projection.
func (g *Gateway) SaveRoom(room *model.Room) {
	meta := metaOf(room)
	g.async("save room", func(ctx context.Context) error {
		if err := g.roomRepo.Create(ctx, room); err != nil {
			return err
		}
		return g.roomCache.SetMeta(ctx, room.ID, &meta)
	})
}

// UpdateRoom replaces the stored room document and refreshes the
// projection.
func (g *Gateway) UpdateRoom(room *model.Room) {
	meta := metaOf(room)
	g.async("update room", func(ctx context.Context) error {
		if err := g.roomRepo.Update(ctx, room); err != nil {
			return err
		}
		return g.roomCache.SetMeta(ctx, room.ID, &meta)
	})
}

// DeleteRoom removes the document and the projection.
func (g *Gateway) DeleteRoom(id string) {
	g.async("delete room", func(ctx context.Context) error {
		if err := g.roomRepo.Delete(ctx, id); err != nil {
			return err
		}
		return g.roomCache.Delete(ctx, id)
	})
}

// UpdatePlayerStats persists a player snapshot and bumps the global
// leaderboard.
func (g *Gateway) UpdatePlayerStats(p *model.Player) {
	snapshot := *p
	g.async("update player stats", func(ctx context.Context) error {
		if err := g.playerRepo.Upsert(ctx, &snapshot); err != nil {
			return err
		}
		return g.leaderboard.UpdateScore(ctx, snapshot.ID, snapshot.Username, snapshot.Score)
	})
}

// RecordMatch appends a finished game to the match history.
func (g *Gateway) RecordMatch(m *model.MatchResult) {
	g.async("record match", func(ctx context.Context) error {
		return g.matchRepo.Insert(ctx, m)
	})
}

func (g *Gateway) async(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			g.log.Error().Err(err).Str("op", op).Msg("persistence write failed")
		}
	}()
}

func metaOf(room *model.Room) model.RoomMeta {
	return model.RoomMeta{
		ID:           room.ID,
		Name:         room.Name,
		Status:       room.Status,
		GameMode:     room.GameMode,
		PlayersCount: len(room.Players),
		MaxPlayers:   room.MaxPlayers,
		IsPrivate:    room.IsPrivate,
		CreatedAt:    room.CreatedAt,
	}
}
