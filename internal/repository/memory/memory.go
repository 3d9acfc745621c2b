// Package memory provides in-process implementations of the repository interfaces.
// Each store guards its state with a mutex so every method is atomic, matching the
// single-document guarantees the MongoDB implementations rely on.
package memory

import (
	"aptiprep/internal/model"
	"aptiprep/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// QuestionStore is an in-memory question bank
type QuestionStore struct {
	mu        sync.RWMutex
	questions []*model.Question
	nextID    int
}

var _ repository.QuestionRepo = (*QuestionStore)(nil)

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{}
}

func (s *QuestionStore) InsertMany(_ context.Context, questions []*model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		if q.ID == "" {
			s.nextID++
			q.ID = fmt.Sprintf("q%04d", s.nextID)
		}
		cp := *q
		s.questions = append(s.questions, &cp)
	}
	return nil
}

func (s *QuestionStore) FindByCategoryTopic(_ context.Context, category model.Category, topic string) ([]*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Question
	for _, q := range s.questions {
		if q.Category == category && q.Topic == topic {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *QuestionStore) CountByCategoryTopic(ctx context.Context, category model.Category, topic string) (int, error) {
	qs, err := s.FindByCategoryTopic(ctx, category, topic)
	return len(qs), err
}

func (s *QuestionStore) QuestionIDs(ctx context.Context, category model.Category, topic string) ([]string, error) {
	qs, err := s.FindByCategoryTopic(ctx, category, topic)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids, nil
}

func (s *QuestionStore) TopicCounts(_ context.Context, category model.Category) ([]model.TopicCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, q := range s.questions {
		if q.Category == category {
			counts[q.Topic]++
		}
	}
	out := make([]model.TopicCount, 0, len(counts))
	for topic, n := range counts {
		out = append(out, model.TopicCount{Topic: topic, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out, nil
}

type topicKey struct {
	userID   string
	category model.Category
	topic    string
}

// ProgressStore is an in-memory ProgressRepo
type ProgressStore struct {
	mu     sync.Mutex
	topics map[topicKey]*model.TopicProgress
	order  []topicKey
	users  map[string]*model.UserProgress
}

var _ repository.ProgressRepo = (*ProgressStore)(nil)

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		topics: make(map[topicKey]*model.TopicProgress),
		users:  make(map[string]*model.UserProgress),
	}
}

func copyTopic(tp *model.TopicProgress) *model.TopicProgress {
	cp := *tp
	cp.CompletedQuestions = append([]model.CompletionRecord(nil), tp.CompletedQuestions...)
	return &cp
}

func (s *ProgressStore) GetTopic(_ context.Context, userID string, category model.Category, topic string) (*model.TopicProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tp, ok := s.topics[topicKey{userID, category, topic}]
	if !ok {
		return nil, nil
	}
	return copyTopic(tp), nil
}

func (s *ProgressStore) ListTopics(_ context.Context, userID string, category model.Category) ([]*model.TopicProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TopicProgress
	for _, k := range s.order {
		if k.userID == userID && k.category == category {
			out = append(out, copyTopic(s.topics[k]))
		}
	}
	return out, nil
}

// Topics returns every topic document for a user, across categories
func (s *ProgressStore) Topics(userID string) []*model.TopicProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TopicProgress
	for _, k := range s.order {
		if k.userID == userID {
			out = append(out, copyTopic(s.topics[k]))
		}
	}
	return out
}

func (s *ProgressStore) EnsureTopic(_ context.Context, userID string, category model.Category, topic string, totalQuestions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := topicKey{userID, category, topic}
	if _, ok := s.topics[k]; ok {
		return nil
	}
	now := time.Now()
	s.topics[k] = &model.TopicProgress{
		ID:                 fmt.Sprintf("tp%04d", len(s.order)+1),
		UserID:             userID,
		Topic:              topic,
		Category:           category,
		TotalQuestions:     totalQuestions,
		CompletedQuestions: []model.CompletionRecord{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.order = append(s.order, k)
	return nil
}

func (s *ProgressStore) AddCompletions(_ context.Context, userID string, category model.Category, topic string, records []model.CompletionRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tp, ok := s.topics[topicKey{userID, category, topic}]
	if !ok {
		return 0, nil
	}
	done := tp.CompletedSet()
	added := 0
	for _, rec := range records {
		if _, ok := done[rec.QuestionID]; ok {
			continue
		}
		done[rec.QuestionID] = struct{}{}
		tp.CompletedQuestions = append(tp.CompletedQuestions, rec)
		added++
	}
	if added > 0 {
		tp.UpdatedAt = time.Now()
	}
	return added, nil
}

func (s *ProgressStore) NextRevision(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	up, ok := s.users[userID]
	if !ok {
		now := time.Now()
		up = &model.UserProgress{
			ID:                userID,
			UserID:            userID,
			CategoriesSummary: model.NewCategorySummary(),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		s.users[userID] = up
	}
	up.Revision++
	return up.Revision, nil
}

func (s *ProgressStore) CategoryTotals(_ context.Context, userID string) ([]model.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byCategory := make(map[model.Category]*model.CategoryTotal)
	var out []model.CategoryTotal
	for _, k := range s.order {
		if k.userID != userID {
			continue
		}
		tp := s.topics[k]
		row, ok := byCategory[tp.Category]
		if !ok {
			row = &model.CategoryTotal{Category: tp.Category}
			byCategory[tp.Category] = row
		}
		row.Completed += len(tp.CompletedQuestions)
		row.Total += tp.TotalQuestions
	}
	for _, row := range byCategory {
		out = append(out, *row)
	}
	return out, nil
}

func (s *ProgressStore) SaveSummary(_ context.Context, userID string, summary model.CategorySummary, revision int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	up, ok := s.users[userID]
	if !ok || up.SummaryRevision >= revision {
		return false, nil
	}
	cp := make(model.CategorySummary, len(summary))
	for k, v := range summary {
		cp[k] = v
	}
	up.CategoriesSummary = cp
	up.SummaryRevision = revision
	up.UpdatedAt = time.Now()
	return true, nil
}

func (s *ProgressStore) GetUserProgress(_ context.Context, userID string) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	up, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *up
	cp.CategoriesSummary = make(model.CategorySummary, len(up.CategoriesSummary))
	for k, v := range up.CategoriesSummary {
		cp.CategoriesSummary[k] = v
	}
	return &cp, nil
}

// UserStore is an in-memory UserRepo
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

var _ repository.UserRepo = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*model.User)}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("u%04d", len(s.users)+1)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
