package app

import "quizshare-service/internal/domain"

// AnswerKey projects the correct option text for each question, in content
// order. The result always has one entry per question; a corrupt answer
// index yields an empty entry rather than a panic.
func AnswerKey(quiz domain.Quiz) []string {
	key := make([]string, len(quiz.Content))
	for i, item := range quiz.Content {
		if item.AnswerIndex >= 0 && item.AnswerIndex < len(item.Options) {
			key[i] = item.Options[item.AnswerIndex]
		}
	}
	return key
}

// Score grades a taker's chosen options against the quiz answer key.
//
// Entries are compared by option text, not by option position: a chosen
// string counts as correct whenever it equals the keyed text for that
// question. Missing or empty entries are unanswered and never correct.
// The function is pure; calling it twice with the same inputs yields an
// identical result.
func Score(quiz domain.Quiz, chosen []string) domain.AttemptResult {
	key := AnswerKey(quiz)
	n := len(quiz.Content)

	normalized := make([]string, n)
	verdicts := make([]domain.Verdict, n)
	score := 0
	for i := 0; i < n; i++ {
		pick := ""
		if i < len(chosen) {
			pick = chosen[i]
		}
		normalized[i] = pick
		switch {
		case pick == "":
			verdicts[i] = domain.VerdictUnanswered
		case pick == key[i]:
			verdicts[i] = domain.VerdictCorrect
			score++
		default:
			verdicts[i] = domain.VerdictIncorrect
		}
	}

	pct := 0
	if n > 0 {
		pct = score * 100 / n
	}

	return domain.AttemptResult{
		ChosenOptions:   normalized,
		Verdicts:        verdicts,
		Score:           score,
		TotalQuestions:  n,
		ScorePercentage: pct,
		Band:            Band(pct),
	}
}

// Band maps a score percentage to its qualitative message. Boundary values
// belong to the lower band: exactly 84 is "Good job!", 85 is "Excellent!".
func Band(pct int) string {
	switch {
	case pct == 100:
		return "Perfect Score!"
	case pct > 84:
		return "Excellent!"
	case pct > 69:
		return "Good job!"
	case pct > 59:
		return "Well done!"
	case pct > 49:
		return "Keep it up!"
	case pct > 39:
		return "Average!"
	default:
		return "Poor!"
	}
}

// OptionLabel returns the positional label for an option: "a)" through "z)",
// then "aa)", "ab)" and so on (bijective base-26).
func OptionLabel(i int) string {
	if i < 0 {
		return ""
	}
	n := i + 1
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf) + ")"
}
