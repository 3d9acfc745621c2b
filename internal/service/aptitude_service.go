package service

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/cache"
	"aptiprep/internal/model"
	"aptiprep/internal/repository"
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AptitudeService tracks per-user completion of aptitude questions
type AptitudeService struct {
	questionRepo repository.QuestionRepo
	progressRepo repository.ProgressRepo
	summaryCache cache.SummaryCache
	broadcaster  Broadcaster
	log          *zap.Logger
}

// NewAptitudeService creates a new aptitude service. summaryCache may be nil.
func NewAptitudeService(
	questionRepo repository.QuestionRepo,
	progressRepo repository.ProgressRepo,
	summaryCache cache.SummaryCache,
	log *zap.Logger,
) *AptitudeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AptitudeService{
		questionRepo: questionRepo,
		progressRepo: progressRepo,
		summaryCache: summaryCache,
		log:          log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AptitudeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// percent returns part/whole*100 rounded to two decimals, or 0 for an empty whole
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

func parseCategory(raw string) (model.Category, error) {
	category, err := model.ParseCategory(raw)
	if err != nil {
		return "", apperr.BadRequest("invalid category: "+raw, "category must be one of arithmetic, logical-reasoning, verbal-reasoning, nonverbal-reasoning")
	}
	return category, nil
}

// GetTopicQuestions lists a topic's questions with the user's completion status
func (s *AptitudeService) GetTopicQuestions(ctx context.Context, userID, rawCategory, topic string) (*model.TopicQuestionsResponse, error) {
	topic = strings.TrimSpace(topic)
	if strings.TrimSpace(rawCategory) == "" || topic == "" {
		return nil, apperr.BadRequest("category and topic are required")
	}
	category, err := parseCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	var (
		questions []*model.Question
		progress  *model.TopicProgress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questionRepo.FindByCategoryTopic(gctx, category, topic)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = s.progressRepo.GetTopic(gctx, userID, category, topic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("failed to load topic questions", err)
	}

	if len(questions) == 0 {
		return nil, apperr.NotFound("no questions found for this topic and category")
	}

	done := map[string]struct{}{}
	if progress != nil {
		done = progress.CompletedSet()
	}

	out := make([]model.QuestionWithStatus, 0, len(questions))
	completed := 0
	for _, q := range questions {
		status := model.StatusPending
		if _, ok := done[q.ID]; ok {
			status = model.StatusCompleted
			completed++
		}
		out = append(out, model.QuestionWithStatus{Question: *q, Status: status})
	}

	return &model.TopicQuestionsResponse{
		Topic:           topic,
		Category:        category,
		ProgressPercent: percent(completed, len(questions)),
		TotalQuestions:  len(questions),
		CompletedCount:  completed,
		Questions:       out,
	}, nil
}

// GetCategoryTopics lists a category's topics with the user's completion counts
func (s *AptitudeService) GetCategoryTopics(ctx context.Context, userID, rawCategory string) (*model.CategoryTopicsResponse, error) {
	if strings.TrimSpace(rawCategory) == "" {
		return nil, apperr.BadRequest("category is required")
	}
	category, err := parseCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	counts, err := s.questionRepo.TopicCounts(ctx, category)
	if err != nil {
		return nil, apperr.Internal("failed to count topics", err)
	}
	progress, err := s.progressRepo.ListTopics(ctx, userID, category)
	if err != nil {
		return nil, apperr.Internal("failed to load topic progress", err)
	}

	completedByTopic := make(map[string]int, len(progress))
	for _, tp := range progress {
		completedByTopic[tp.Topic] = len(tp.CompletedQuestions)
	}

	topics := make([]model.TopicOverview, 0, len(counts))
	for _, c := range counts {
		completed := completedByTopic[c.Topic]
		topics = append(topics, model.TopicOverview{
			Topic:              c.Topic,
			TotalQuestions:     c.Total,
			CompletedQuestions: completed,
			ProgressPercent:    percent(completed, c.Total),
		})
	}

	return &model.CategoryTopicsResponse{
		Category: category,
		Topics:   topics,
	}, nil
}
