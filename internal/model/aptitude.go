package model

import "encoding/json"

// TopicQuestionsResponse is returned by GET /v1/aptitude/questions
type TopicQuestionsResponse struct {
	Topic           string               `json:"topic"`
	Category        Category             `json:"category"`
	ProgressPercent float64              `json:"progressPercent"`
	TotalQuestions  int                  `json:"totalQuestions"`
	CompletedCount  int                  `json:"completedCount"`
	Questions       []QuestionWithStatus `json:"questions"`
}

// SubmitResultsRequest is the body of POST /v1/aptitude/results.
// DetailedResults stays raw so the list shape and each entry can be checked separately.
type SubmitResultsRequest struct {
	Category        string          `json:"category"`
	Topic           string          `json:"topic"`
	DetailedResults json.RawMessage `json:"detailedResults"`
}

// DetailedResult is one submitted answer; fields are untyped until validated
type DetailedResult struct {
	QuestionID interface{} `json:"questionID"`
	IsCorrect  interface{} `json:"isCorrect"`
}

// SubmitResultsResponse reports how many completions the topic now has
type SubmitResultsResponse struct {
	Message        string `json:"message"`
	TotalAttempted int    `json:"totalAttempted"`
	NewAttempts    int    `json:"newAttempts"`
}

// SummaryResponse is returned by GET /v1/aptitude/summary
type SummaryResponse struct {
	OverallProgress   float64         `json:"overallProgress"`
	CategoriesSummary CategorySummary `json:"categoriesSummary"`
}

// TopicOverview is one topic row in the category listing
type TopicOverview struct {
	Topic              string  `json:"topic"`
	TotalQuestions     int     `json:"totalQuestions"`
	CompletedQuestions int     `json:"completedQuestions"`
	ProgressPercent    float64 `json:"progressPercent"`
}

// CategoryTopicsResponse is returned by GET /v1/aptitude/categories/{category}/topics
type CategoryTopicsResponse struct {
	Category Category        `json:"category"`
	Topics   []TopicOverview `json:"topics"`
}

// ProgressEvent is pushed to the user's WebSocket clients after a submission
type ProgressEvent struct {
	Category          Category        `json:"category"`
	Topic             string          `json:"topic"`
	TotalAttempted    int             `json:"totalAttempted"`
	NewAttempts       int             `json:"newAttempts"`
	OverallProgress   float64         `json:"overallProgress"`
	CategoriesSummary CategorySummary `json:"categoriesSummary"`
}
