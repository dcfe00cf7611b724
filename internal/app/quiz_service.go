package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quizshare-service/internal/domain"
)

// DefaultBaseURL is used for link derivation when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000"

const (
	tokenLength   = 16
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// QuizRepository abstracts how quizzes are stored (in-memory, Postgres,
// possibly behind a cache). Implementations assign CreatedAt/UpdatedAt on
// insert and return domain.ErrQuizNotFound for missing lookups.
type QuizRepository interface {
	FindByNameAndSlug(ctx context.Context, name, slug string) (domain.Quiz, error)
	FindBySlug(ctx context.Context, slug string) (domain.Quiz, error)
	FindByToken(ctx context.Context, token string) (domain.Quiz, error)
	List(ctx context.Context) ([]domain.Quiz, error)
	Insert(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// QuizService contains the quiz-sharing use cases: create with link
// derivation, lookup, short-link resolution, deletion and attempt scoring.
type QuizService struct {
	quizzes QuizRepository
	baseURL string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizService(quizzes QuizRepository, baseURL string) *QuizService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &QuizService{
		quizzes: quizzes,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create validates the quiz fields, rejects a duplicate (name, slug) pair,
// derives the shareable links and persists the quiz.
//
// The duplicate check and the insert are not atomic; the storage layer keeps
// a unique index on (name, slug) to close the race between concurrent
// creators, and its conflict surfaces as the same domain.ErrQuizExists.
func (s *QuizService) Create(ctx context.Context, name, subject, slug string, content []domain.QuestionItem) (domain.Quiz, error) {
	quiz := domain.Quiz{
		Name:    strings.TrimSpace(name),
		Subject: strings.TrimSpace(subject),
		Slug:    strings.TrimSpace(slug),
		Content: content,
	}
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, err
	}

	_, err := s.quizzes.FindByNameAndSlug(ctx, quiz.Name, quiz.Slug)
	if err == nil {
		return domain.Quiz{}, domain.ErrQuizExists
	}
	if !errors.Is(err, domain.ErrQuizNotFound) {
		return domain.Quiz{}, err
	}

	quiz.RedirectToken = s.randomToken()
	quiz.RedirectLink = s.baseURL + "/" + quiz.RedirectToken
	quiz.OriginalLink = s.baseURL + "/quiz/" + quiz.Slug

	return s.quizzes.Insert(ctx, quiz)
}

// GetBySlug returns the quiz published under slug.
func (s *QuizService) GetBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	return s.quizzes.FindBySlug(ctx, slug)
}

// Resolve looks up the quiz behind a short-link token so the transport can
// redirect to its canonical page.
func (s *QuizService) Resolve(ctx context.Context, token string) (domain.Quiz, error) {
	return s.quizzes.FindByToken(ctx, token)
}

// List returns all stored quizzes.
func (s *QuizService) List(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx)
}

// Delete removes the quiz published under slug.
func (s *QuizService) Delete(ctx context.Context, slug string) error {
	return s.quizzes.DeleteBySlug(ctx, slug)
}

// ScoreAttempt fetches the quiz and grades the chosen options against it.
// The quiz is returned alongside the result so callers can render the
// question-by-question review.
func (s *QuizService) ScoreAttempt(ctx context.Context, slug string, chosen []string) (domain.Quiz, domain.AttemptResult, error) {
	quiz, err := s.quizzes.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Quiz{}, domain.AttemptResult{}, err
	}
	return quiz, Score(quiz, chosen), nil
}

// randomToken draws a 16-character identifier from the alphanumeric
// alphabet. Uniqueness is probabilistic; the storage layer's unique index on
// the token column turns the astronomically unlikely collision into a
// visible conflict instead of a shadowed link.
func (s *QuizService) randomToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, tokenLength)
	for i := range buf {
		buf[i] = tokenAlphabet[s.rnd.Intn(len(tokenAlphabet))]
	}
	return string(buf)
}
