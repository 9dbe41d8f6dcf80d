package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/internal/domain/repository"
)

const quizColumns = `id, title, subject_id, subject_name, author_id, author_name, questions, duration, difficulty, attempts, created_at, updated_at`

type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

func scanQuiz(row pgx.Row) (*entity.Quiz, error) {
	q := &entity.Quiz{}
	err := row.Scan(&q.ID, &q.Title, &q.SubjectID, &q.SubjectName, &q.AuthorID, &q.AuthorName,
		&q.Questions, &q.Duration, &q.Difficulty, &q.Attempts, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (r *QuizRepository) Create(ctx context.Context, q *entity.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO quizzes (id, title, subject_id, subject_name, author_id, author_name, questions, duration, difficulty, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, q.ID, q.Title, q.SubjectID, q.SubjectName, q.AuthorID, q.AuthorName, questions,
		q.Duration, q.Difficulty, q.Attempts, q.CreatedAt, q.UpdatedAt)
	return err
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (*entity.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

func (r *QuizRepository) List(ctx context.Context, subjectID string, limit int) ([]entity.Quiz, error) {
	q := `SELECT ` + quizColumns + ` FROM quizzes`
	args := []any{}
	if subjectID != "" {
		q += ` WHERE subject_id = $1`
		args = append(args, subjectID)
	}
	args = append(args, repository.ClampLimit(limit))
	if subjectID != "" {
		q += ` ORDER BY created_at DESC LIMIT $2`
	} else {
		q += ` ORDER BY created_at DESC LIMIT $1`
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Quiz
	for rows.Next() {
		item, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *QuizRepository) IncrementAttempts(ctx context.Context, id string) (int, error) {
	var attempts int
	err := r.pool.QueryRow(ctx, `
		UPDATE quizzes SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts
	`, id).Scan(&attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return attempts, err
}

func (r *QuizRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM quizzes`).Scan(&n)
	return n, err
}

var _ repository.QuizRepository = (*QuizRepository)(nil)
