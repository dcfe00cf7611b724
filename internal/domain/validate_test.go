package domain

import (
	"errors"
	"testing"
)

func validItem() QuestionItem {
	return QuestionItem{
		Question:    "What is 2 + 2?",
		Options:     []string{"3", "4", "5", "6"},
		AnswerIndex: 1,
	}
}

func TestQuestionItemValidate(t *testing.T) {
	if err := validItem().Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}

	cases := []struct {
		name string
		item QuestionItem
	}{
		{"empty question", QuestionItem{Question: "  ", Options: []string{"a", "b", "c", "d"}}},
		{"too few options", QuestionItem{Question: "q", Options: []string{"a", "b", "c"}}},
		{"negative index", QuestionItem{Question: "q", Options: []string{"a", "b", "c", "d"}, AnswerIndex: -1}},
		{"index past end", QuestionItem{Question: "q", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 4}},
	}
	for _, tc := range cases {
		err := tc.item.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestQuizValidate(t *testing.T) {
	quiz := Quiz{
		Name:    "Math",
		Subject: "math",
		Slug:    "math",
		Content: []QuestionItem{validItem()},
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}

	empty := quiz
	empty.Content = nil
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for empty content")
	}

	badItem := quiz
	badItem.Content = []QuestionItem{{Question: "q", Options: []string{"a", "b", "c"}}}
	err := badItem.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "content[0]" {
		t.Fatalf("expected content[0] field, got %q", verr.Field)
	}
}
