package repository

import (
	"aptiprep/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepo persists topic progress and the per-user summary document.
// Every write is a single atomic document operation; nothing here does read-modify-write in memory.
type ProgressRepo interface {
	GetTopic(ctx context.Context, userID string, category model.Category, topic string) (*model.TopicProgress, error)
	ListTopics(ctx context.Context, userID string, category model.Category) ([]*model.TopicProgress, error)
	EnsureTopic(ctx context.Context, userID string, category model.Category, topic string, totalQuestions int) error
	AddCompletions(ctx context.Context, userID string, category model.Category, topic string, records []model.CompletionRecord) (int, error)

	NextRevision(ctx context.Context, userID string) (int64, error)
	CategoryTotals(ctx context.Context, userID string) ([]model.CategoryTotal, error)
	SaveSummary(ctx context.Context, userID string, summary model.CategorySummary, revision int64) (bool, error)
	GetUserProgress(ctx context.Context, userID string) (*model.UserProgress, error)
}

type progressRepo struct {
	topics *mongo.Collection
	users  *mongo.Collection
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *mongo.Database) ProgressRepo {
	return &progressRepo{
		topics: db.Collection(TopicProgressCollection),
		users:  db.Collection(UserProgressCollection),
	}
}

func topicFilter(userID string, category model.Category, topic string) bson.M {
	return bson.M{"userId": userID, "category": category, "topic": topic}
}

func (r *progressRepo) GetTopic(ctx context.Context, userID string, category model.Category, topic string) (*model.TopicProgress, error) {
	var tp model.TopicProgress
	err := r.topics.FindOne(ctx, topicFilter(userID, category, topic)).Decode(&tp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func (r *progressRepo) ListTopics(ctx context.Context, userID string, category model.Category) ([]*model.TopicProgress, error) {
	cursor, err := r.topics.Find(ctx, bson.M{"userId": userID, "category": category})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var topics []*model.TopicProgress
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *progressRepo) EnsureTopic(ctx context.Context, userID string, category model.Category, topic string, totalQuestions int) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"totalQuestions":     totalQuestions,
			"completedQuestions": bson.A{},
			"createdAt":          now,
			"updatedAt":          now,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.topics.UpdateOne(ctx, topicFilter(userID, category, topic), update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on the unique index; the loser's retry matches the winner's document.
		_, err = r.topics.UpdateOne(ctx, topicFilter(userID, category, topic), update, opts)
	}
	return err
}

func (r *progressRepo) AddCompletions(ctx context.Context, userID string, category model.Category, topic string, records []model.CompletionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now()
	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		filter := topicFilter(userID, category, topic)
		filter["completedQuestions.questionId"] = bson.M{"$ne": rec.QuestionID}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(bson.M{
				"$push": bson.M{"completedQuestions": rec},
				"$set":  bson.M{"updatedAt": now},
			}))
	}

	res, err := r.topics.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return int(res.ModifiedCount), nil
}

func (r *progressRepo) NextRevision(ctx context.Context, userID string) (int64, error) {
	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"revision": 1},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"categoriesSummary": model.NewCategorySummary(),
			"summaryRevision":   0,
			"createdAt":         now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var up model.UserProgress
	err := r.users.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&up)
	if mongo.IsDuplicateKeyError(err) {
		err = r.users.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&up)
	}
	if err != nil {
		return 0, err
	}
	return up.Revision, nil
}

func (r *progressRepo) CategoryTotals(ctx context.Context, userID string) ([]model.CategoryTotal, error) {
	cursor, err := r.topics.Aggregate(ctx, categoryTotalsPipeline(userID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []model.CategoryTotal
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepo) SaveSummary(ctx context.Context, userID string, summary model.CategorySummary, revision int64) (bool, error) {
	filter := bson.M{
		"userId":          userID,
		"summaryRevision": bson.M{"$lt": revision},
	}
	update := bson.M{
		"$set": bson.M{
			"categoriesSummary": summary,
			"summaryRevision":   revision,
			"updatedAt":         time.Now(),
		},
	}

	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *progressRepo) GetUserProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	var up model.UserProgress
	err := r.users.FindOne(ctx, bson.M{"userId": userID}).Decode(&up)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// categoryTotalsPipeline sums completions and snapshot totals per descriptive category for one user
func categoryTotalsPipeline(userID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "completed", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{"$completedQuestions", bson.A{}}},
			}}}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalQuestions"}}},
		}}},
	}
}
