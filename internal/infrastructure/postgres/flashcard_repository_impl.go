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

const flashcardColumns = `id, title, subject_id, subject_name, author_id, author_name, cards, views, created_at, updated_at`

type FlashcardRepository struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepository(pool *pgxpool.Pool) *FlashcardRepository {
	return &FlashcardRepository{pool: pool}
}

func scanFlashcard(row pgx.Row) (*entity.Flashcard, error) {
	f := &entity.Flashcard{}
	err := row.Scan(&f.ID, &f.Title, &f.SubjectID, &f.SubjectName, &f.AuthorID, &f.AuthorName,
		&f.Cards, &f.Views, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *FlashcardRepository) Create(ctx context.Context, f *entity.Flashcard) error {
	cards, err := json.Marshal(f.Cards)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO flashcards (id, title, subject_id, subject_name, author_id, author_name, cards, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, f.ID, f.Title, f.SubjectID, f.SubjectName, f.AuthorID, f.AuthorName, cards,
		f.Views, f.CreatedAt, f.UpdatedAt)
	return err
}

func (r *FlashcardRepository) GetByID(ctx context.Context, id string) (*entity.Flashcard, error) {
	return scanFlashcard(r.pool.QueryRow(ctx, `SELECT `+flashcardColumns+` FROM flashcards WHERE id = $1`, id))
}

func (r *FlashcardRepository) List(ctx context.Context, subjectID string, limit int) ([]entity.Flashcard, error) {
	q := `SELECT ` + flashcardColumns + ` FROM flashcards`
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

	var out []entity.Flashcard
	for rows.Next() {
		item, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *FlashcardRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx, `
		UPDATE flashcards SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return views, err
}

func (r *FlashcardRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM flashcards`).Scan(&n)
	return n, err
}

var _ repository.FlashcardRepository = (*FlashcardRepository)(nil)
