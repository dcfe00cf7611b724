package app_test

import (
	"reflect"
	"testing"

	"quizshare-service/internal/app"
	"quizshare-service/internal/domain"
)

func fiveQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		Name:    "Capitals",
		Subject: "Geography",
		Slug:    "capitals",
		Content: []domain.QuestionItem{
			{Question: "Capital of France", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, AnswerIndex: 0},
			{Question: "Capital of Japan", Options: []string{"Osaka", "Kyoto", "Tokyo", "Nagoya"}, AnswerIndex: 2},
			{Question: "Capital of Italy", Options: []string{"Milan", "Rome", "Turin", "Naples"}, AnswerIndex: 1},
			{Question: "Capital of Spain", Options: []string{"Seville", "Valencia", "Bilbao", "Madrid"}, AnswerIndex: 3},
			{Question: "Capital of Egypt", Options: []string{"Cairo", "Giza", "Luxor", "Aswan"}, AnswerIndex: 0},
		},
	}
}

func TestAnswerKeyProjectsCorrectOptions(t *testing.T) {
	quiz := fiveQuestionQuiz()
	key := app.AnswerKey(quiz)
	if len(key) != len(quiz.Content) {
		t.Fatalf("expected %d entries, got %d", len(quiz.Content), len(key))
	}
	want := []string{"Paris", "Tokyo", "Rome", "Madrid", "Cairo"}
	if !reflect.DeepEqual(key, want) {
		t.Fatalf("expected %v, got %v", want, key)
	}
}

func TestScoreAllCorrect(t *testing.T) {
	quiz := fiveQuestionQuiz()
	result := app.Score(quiz, app.AnswerKey(quiz))
	if result.Score != 5 {
		t.Fatalf("expected score 5, got %d", result.Score)
	}
	if result.ScorePercentage != 100 {
		t.Fatalf("expected 100%%, got %d", result.ScorePercentage)
	}
	if result.Band != "Perfect Score!" {
		t.Fatalf("expected perfect band, got %q", result.Band)
	}
}

func TestScoreAllUnanswered(t *testing.T) {
	quiz := fiveQuestionQuiz()
	result := app.Score(quiz, []string{"", "", "", "", ""})
	if result.Score != 0 || result.ScorePercentage != 0 {
		t.Fatalf("expected zero score, got score=%d pct=%d", result.Score, result.ScorePercentage)
	}
	for i, v := range result.Verdicts {
		if v != domain.VerdictUnanswered {
			t.Fatalf("question %d: expected unanswered, got %s", i, v)
		}
	}
}

func TestScoreMixedAttempt(t *testing.T) {
	quiz := fiveQuestionQuiz()
	// 1-3 correct, 4 wrong, 5 not provided at all.
	result := app.Score(quiz, []string{"Paris", "Tokyo", "Rome", "Seville"})
	if result.Score != 3 {
		t.Fatalf("expected score 3, got %d", result.Score)
	}
	if result.ScorePercentage != 60 {
		t.Fatalf("expected 60%%, got %d", result.ScorePercentage)
	}
	want := []domain.Verdict{
		domain.VerdictCorrect,
		domain.VerdictCorrect,
		domain.VerdictCorrect,
		domain.VerdictIncorrect,
		domain.VerdictUnanswered,
	}
	if !reflect.DeepEqual(result.Verdicts, want) {
		t.Fatalf("expected verdicts %v, got %v", want, result.Verdicts)
	}
	if len(result.ChosenOptions) != 5 || result.ChosenOptions[4] != "" {
		t.Fatalf("expected chosen options padded to 5, got %v", result.ChosenOptions)
	}
}

func TestScorePercentageFloors(t *testing.T) {
	quiz := domain.Quiz{Content: []domain.QuestionItem{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
	}}
	result := app.Score(quiz, []string{"a", "b", "b"})
	// 1/3 = 33.33..., floored.
	if result.ScorePercentage != 33 {
		t.Fatalf("expected 33, got %d", result.ScorePercentage)
	}
}

func TestScoreEmptyQuizGuardsDivision(t *testing.T) {
	result := app.Score(domain.Quiz{}, nil)
	if result.Score != 0 || result.ScorePercentage != 0 || result.TotalQuestions != 0 {
		t.Fatalf("expected zero result, got %+v", result)
	}
}

func TestScoreIdempotent(t *testing.T) {
	quiz := fiveQuestionQuiz()
	chosen := []string{"Paris", "Kyoto", "", "Madrid", "Giza"}
	first := app.Score(quiz, chosen)
	second := app.Score(quiz, chosen)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

// Matching is by option text: a duplicated text in another slot still grades
// as correct when it equals the keyed text.
func TestScoreDuplicateOptionText(t *testing.T) {
	quiz := domain.Quiz{Content: []domain.QuestionItem{
		{Question: "pick four", Options: []string{"4", "3", "4", "5"}, AnswerIndex: 2},
	}}
	result := app.Score(quiz, []string{"4"})
	if result.Score != 1 || result.Verdicts[0] != domain.VerdictCorrect {
		t.Fatalf("expected text match to count, got %+v", result)
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{100, "Perfect Score!"},
		{85, "Excellent!"},
		{84, "Good job!"},
		{70, "Good job!"},
		{69, "Well done!"},
		{60, "Well done!"},
		{59, "Keep it up!"},
		{50, "Keep it up!"},
		{49, "Average!"},
		{40, "Average!"},
		{39, "Poor!"},
		{0, "Poor!"},
	}
	for _, tc := range cases {
		if got := app.Band(tc.pct); got != tc.want {
			t.Fatalf("Band(%d): expected %q, got %q", tc.pct, tc.want, got)
		}
	}
}

func TestOptionLabel(t *testing.T) {
	cases := []struct {
		i    int
		want string
	}{
		{0, "a)"},
		{1, "b)"},
		{3, "d)"},
		{25, "z)"},
		{26, "aa)"},
		{27, "ab)"},
	}
	for _, tc := range cases {
		if got := app.OptionLabel(tc.i); got != tc.want {
			t.Fatalf("OptionLabel(%d): expected %q, got %q", tc.i, tc.want, got)
		}
	}
}
