package model

import "time"

// CompletionRecord marks one question as done within a topic
type CompletionRecord struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	IsCorrect  bool   `json:"isCorrect" bson:"isCorrect"`
}

// TopicProgress is a user's completion record for one (topic, category) pair.
// CompletedQuestions holds at most one record per question id.
type TopicProgress struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	UserID             string             `json:"userId" bson:"userId"`
	Topic              string             `json:"topic" bson:"topic"`
	Category           Category           `json:"category" bson:"category"`
	TotalQuestions     int                `json:"totalQuestions" bson:"totalQuestions"`
	CompletedQuestions []CompletionRecord `json:"completedQuestions" bson:"completedQuestions"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CompletedSet returns the question ids already completed in this topic
func (tp *TopicProgress) CompletedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(tp.CompletedQuestions))
	for _, rec := range tp.CompletedQuestions {
		set[rec.QuestionID] = struct{}{}
	}
	return set
}

// CategoryCount is a completed/total pair for one summary key
type CategoryCount struct {
	Completed int `json:"completed" bson:"completed"`
	Total     int `json:"total" bson:"total"`
}

// CategorySummary maps each summary key to its counters
type CategorySummary map[SummaryKey]CategoryCount

// NewCategorySummary returns a summary with all four keys at zero
func NewCategorySummary() CategorySummary {
	s := make(CategorySummary, len(SummaryKeys))
	for _, k := range SummaryKeys {
		s[k] = CategoryCount{}
	}
	return s
}

// Totals sums completed and total across every key
func (s CategorySummary) Totals() (completed, total int) {
	for _, c := range s {
		completed += c.Completed
		total += c.Total
	}
	return completed, total
}

// CategoryTotal is one row of the per-category aggregation over topic progress
type CategoryTotal struct {
	Category  Category `bson:"_id"`
	Completed int      `bson:"completed"`
	Total     int      `bson:"total"`
}

// SummaryFromTotals folds per-category aggregation rows into a summary.
// Rows for categories outside the enumeration are ignored.
func SummaryFromTotals(rows []CategoryTotal) CategorySummary {
	s := NewCategorySummary()
	for _, row := range rows {
		key, ok := categoryToKey[row.Category]
		if !ok {
			continue
		}
		c := s[key]
		c.Completed += row.Completed
		c.Total += row.Total
		s[key] = c
	}
	return s
}

// UserProgress is the per-user summary document.
// Revision is bumped by every submission; SummaryRevision is the revision the stored summary was computed at.
type UserProgress struct {
	ID                string          `json:"id" bson:"_id,omitempty"`
	UserID            string          `json:"userId" bson:"userId"`
	CategoriesSummary CategorySummary `json:"categoriesSummary" bson:"categoriesSummary"`
	Revision          int64           `json:"-" bson:"revision"`
	SummaryRevision   int64           `json:"-" bson:"summaryRevision"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt" bson:"updatedAt"`
}
