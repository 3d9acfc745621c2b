package repository

import (
	"aptiprep/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepo reads the aptitude question bank
type QuestionRepo interface {
	InsertMany(ctx context.Context, questions []*model.Question) error
	FindByCategoryTopic(ctx context.Context, category model.Category, topic string) ([]*model.Question, error)
	CountByCategoryTopic(ctx context.Context, category model.Category, topic string) (int, error)
	QuestionIDs(ctx context.Context, category model.Category, topic string) ([]string, error)
	TopicCounts(ctx context.Context, category model.Category) ([]model.TopicCount, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection(QuestionsCollection),
	}
}

func (r *questionRepo) InsertMany(ctx context.Context, questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(questions))
	for i, q := range questions {
		// Generate ObjectID if not provided
		if q.ID == "" {
			q.ID = primitive.NewObjectID().Hex()
		}
		docs[i] = q
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *questionRepo) FindByCategoryTopic(ctx context.Context, category model.Category, topic string) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"category": category, "topic": topic}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *questionRepo) CountByCategoryTopic(ctx context.Context, category model.Category, topic string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"category": category, "topic": topic})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *questionRepo) QuestionIDs(ctx context.Context, category model.Category, topic string) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"category": category, "topic": topic}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *questionRepo) TopicCounts(ctx context.Context, category model.Category) ([]model.TopicCount, error) {
	cursor, err := r.collection.Aggregate(ctx, topicCountsPipeline(category))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []model.TopicCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}

// topicCountsPipeline groups a category's questions by topic, sorted by topic name
func topicCountsPipeline(category model.Category) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "category", Value: category}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$topic"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
