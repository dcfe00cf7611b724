package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"quizshare-service/internal/domain"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

// QuizRepository stores quizzes in Postgres with the question list as JSONB.
// The unique indexes on (name, slug) and redirect_token make the service's
// check-then-create race and token collisions surface as conflicts.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `name, subject, slug, redirect_token, redirect_link, original_link, content, created_at, updated_at`

func (r *QuizRepository) FindByNameAndSlug(ctx context.Context, name, slug string) (domain.Quiz, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE name=$1 AND slug=$2`, name, slug)
	return scanQuiz(row, "find by name and slug")
}

func (r *QuizRepository) FindBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE slug=$1 LIMIT 1`, slug)
	return scanQuiz(row, "find by slug")
}

func (r *QuizRepository) FindByToken(ctx context.Context, token string) (domain.Quiz, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE redirect_token=$1`, token)
	return scanQuiz(row, "find by token")
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows, "list")
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	return quizzes, nil
}

func (r *QuizRepository) Insert(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	content, err := json.Marshal(quiz.Content)
	if err != nil {
		return domain.Quiz{}, &domain.StorageError{Op: "insert", Err: err}
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (name, subject, slug, redirect_token, redirect_link, original_link, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		quiz.Name, quiz.Subject, quiz.Slug, quiz.RedirectToken, quiz.RedirectLink, quiz.OriginalLink, content)
	if err := row.Scan(&quiz.CreatedAt, &quiz.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Quiz{}, domain.ErrQuizExists
		}
		return domain.Quiz{}, &domain.StorageError{Op: "insert", Err: err}
	}
	return quiz, nil
}

func (r *QuizRepository) DeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE slug=$1`, slug)
	if err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuiz(row rowScanner, op string) (domain.Quiz, error) {
	var quiz domain.Quiz
	var content []byte
	err := row.Scan(&quiz.Name, &quiz.Subject, &quiz.Slug, &quiz.RedirectToken,
		&quiz.RedirectLink, &quiz.OriginalLink, &content, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quiz{}, domain.ErrQuizNotFound
		}
		return domain.Quiz{}, &domain.StorageError{Op: op, Err: err}
	}
	if err := json.Unmarshal(content, &quiz.Content); err != nil {
		return domain.Quiz{}, &domain.StorageError{Op: op, Err: err}
	}
	return quiz, nil
}
