package domain

import (
	"fmt"
	"strings"
)

// MinOptions is the smallest allowed option list for a question.
const MinOptions = 4

// Validate checks the structural invariants of a single question.
func (q QuestionItem) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return &ValidationError{Field: "question", Reason: "is required"}
	}
	if len(q.Options) < MinOptions {
		return &ValidationError{Field: "options", Reason: fmt.Sprintf("at least %d options are required", MinOptions)}
	}
	if q.AnswerIndex < 0 {
		return &ValidationError{Field: "answerIndex", Reason: "cannot be negative"}
	}
	if q.AnswerIndex >= len(q.Options) {
		return &ValidationError{Field: "answerIndex", Reason: "out of bounds for options"}
	}
	return nil
}

// Validate checks a quiz before it is persisted. Name, subject and slug are
// expected to be trimmed already.
func (q Quiz) Validate() error {
	if q.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if q.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "is required"}
	}
	if q.Slug == "" {
		return &ValidationError{Field: "slug", Reason: "is required"}
	}
	if len(q.Content) == 0 {
		return &ValidationError{Field: "content", Reason: "must contain at least one question"}
	}
	for i, item := range q.Content {
		if err := item.Validate(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("content[%d]", i), Reason: err.Error()}
		}
	}
	return nil
}
