package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oppositerush/internal/model"
)

// MatchRepo is the append-only history of finished games.
type MatchRepo interface {
	Insert(ctx context.Context, match *model.MatchResult) error
	ListRecent(ctx context.Context, limit int) ([]*model.MatchResult, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]*model.MatchResult, error)
}

type matchRepo struct {
	collection *mongo.Collection
}

func NewMatchRepo(db *mongo.Database) MatchRepo {
	return &matchRepo{
		collection: db.Collection("matches"),
	}
}

func (r *matchRepo) Insert(ctx context.Context, match *model.MatchResult) error {
	_, err := r.collection.InsertOne(ctx, match)
	return err
}

func (r *matchRepo) ListRecent(ctx context.Context, limit int) ([]*model.MatchResult, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *matchRepo) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*model.MatchResult, error) {
	return r.find(ctx, bson.M{"finalScores.playerId": playerID}, limit)
}

func (r *matchRepo) find(ctx context.Context, filter bson.M, limit int) ([]*model.MatchResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "endedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []*model.MatchResult
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
