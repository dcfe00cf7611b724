package memory

import (
	"context"
	"sync"
	"time"

	"quizshare-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizRepository, used in
// tests and when no Postgres URL is configured. A single mutex serializes
// the duplicate check and the insert, so it has no creation race.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes []domain.Quiz
	clock   func() time.Time
}

func NewQuizStore() *QuizStore {
	return &QuizStore{clock: time.Now}
}

// NewQuizStoreWithClock is test-only for deterministic timestamps.
func NewQuizStoreWithClock(now func() time.Time) *QuizStore {
	return &QuizStore{clock: now}
}

func (s *QuizStore) FindByNameAndSlug(_ context.Context, name, slug string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quizzes {
		if q.Name == name && q.Slug == slug {
			return q, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *QuizStore) FindBySlug(_ context.Context, slug string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quizzes {
		if q.Slug == slug {
			return q, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *QuizStore) FindByToken(_ context.Context, token string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quizzes {
		if q.RedirectToken == token {
			return q, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *QuizStore) List(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Quiz, len(s.quizzes))
	copy(out, s.quizzes)
	return out, nil
}

func (s *QuizStore) Insert(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quizzes {
		if q.Name == quiz.Name && q.Slug == quiz.Slug {
			return domain.Quiz{}, domain.ErrQuizExists
		}
		if q.RedirectToken == quiz.RedirectToken {
			return domain.Quiz{}, domain.ErrQuizExists
		}
	}
	now := s.clock()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	s.quizzes = append(s.quizzes, quiz)
	return quiz, nil
}

func (s *QuizStore) DeleteBySlug(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.quizzes {
		if q.Slug == slug {
			s.quizzes = append(s.quizzes[:i], s.quizzes[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuizNotFound
}
