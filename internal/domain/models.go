package domain

import "time"

// QuestionItem is a single multiple-choice question. Options keep their
// authoring order; AnswerIndex points at the correct one.
type QuestionItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// Quiz is a shareable quiz definition. Identity for duplicate detection is
// the (Name, Slug) pair; Slug alone is the lookup key.
type Quiz struct {
	Name          string         `json:"name"`
	Subject       string         `json:"subject"`
	Slug          string         `json:"slug"`
	RedirectToken string         `json:"redirectToken"`
	RedirectLink  string         `json:"redirectLink"`
	OriginalLink  string         `json:"originalLink"`
	Content       []QuestionItem `json:"content"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Verdict classifies one answered question for presentation.
type Verdict string

const (
	VerdictCorrect    Verdict = "correct"
	VerdictIncorrect  Verdict = "incorrectChosen"
	VerdictUnanswered Verdict = "unanswered"
)

// AttemptResult is the transient outcome of scoring one set of chosen
// options against a quiz. It is never persisted.
type AttemptResult struct {
	ChosenOptions   []string  `json:"chosenOptions"`
	Verdicts        []Verdict `json:"verdicts"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"totalQuestions"`
	ScorePercentage int       `json:"scorePercentage"`
	Band            string    `json:"band"`
}
