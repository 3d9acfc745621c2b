package model

// Question is a single aptitude practice question from the seeded bank
type Question struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Question    string   `json:"question" bson:"question"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Options     []string `json:"options" bson:"options"`
	AnswerText  string   `json:"answerText" bson:"answerText"`
	Explanation string   `json:"explanation" bson:"explanation"`
	Category    Category `json:"category" bson:"category"`
	Topic       string   `json:"topic" bson:"topic"`
}

// QuestionStatus marks whether the requesting user already completed a question
type QuestionStatus string

const (
	StatusCompleted QuestionStatus = "completed"
	StatusPending   QuestionStatus = "pending"
)

// QuestionWithStatus is a question annotated for one user
type QuestionWithStatus struct {
	Question
	Status QuestionStatus `json:"status"`
}

// TopicCount is one row of the per-topic question count aggregation
type TopicCount struct {
	Topic string `bson:"_id"`
	Total int    `bson:"total"`
}
