package domain

// QuestionType distinguishes the two quiz input modes.
type QuestionType string

const (
	QuestionMultiple QuestionType = "multiple"
	QuestionFreeText QuestionType = "free-text"
)

// QuizQuestion is one knowledge-check attached to an ad. Held only
// while the quiz overlay is open, discarded on close or completion.
type QuizQuestion struct {
	ID       int64        `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
}

// QuizResult is the graded outcome of one answer submission.
type QuizResult struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}
