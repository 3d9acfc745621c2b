package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	QuestionsCollection     = "questions"
	TopicProgressCollection = "topic_progress"
	UserProgressCollection  = "user_progress"
	UsersCollection         = "users"
)

// EnsureIndexes creates the indexes every collection relies on.
// The unique keys on topic_progress and user_progress back the upserts in ProgressRepo.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []error

	errs = append(errs, createIndex(ctx, db.Collection(QuestionsCollection), bson.D{
		{Key: "category", Value: 1},
		{Key: "topic", Value: 1},
	}, false))

	errs = append(errs, createIndex(ctx, db.Collection(TopicProgressCollection), bson.D{
		{Key: "userId", Value: 1},
		{Key: "category", Value: 1},
		{Key: "topic", Value: 1},
	}, true))

	errs = append(errs, createIndex(ctx, db.Collection(UserProgressCollection), bson.D{{Key: "userId", Value: 1}}, true))
	errs = append(errs, createIndex(ctx, db.Collection(UsersCollection), bson.D{{Key: "email", Value: 1}}, true))

	return errors.Join(errs...)
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) error {
	opts := options.Index().SetUnique(unique)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil {
		return fmt.Errorf("create index on %s: %w", coll.Name(), err)
	}
	return nil
}
